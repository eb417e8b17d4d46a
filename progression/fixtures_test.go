package progression

import "testing"

const (
	moduleA uint = 1
	moduleB uint = 2
	dayA1   uint = 10
	t1      uint = 100
	t2      uint = 101
	q1      uint = 200
)

// courseX is the two-module course used across the tests:
// A (order 1) / Day 1 / T1 text, T2 video; B (order 2) / Q1 test.
func courseX() *Course {
	return &Course{
		ID:    7,
		Title: "X",
		Slug:  "x",
		Modules: []Module{
			{
				ID:    moduleB,
				Title: "B",
				Order: 2,
				Contents: []Content{
					{ID: q1, Title: "Q1", Order: 1, Type: ContentTest},
				},
			},
			{
				ID:    moduleA,
				Title: "A",
				Order: 1,
				Days: []Day{
					{
						ID:    dayA1,
						Title: "Day 1",
						Order: 1,
						Contents: []Content{
							{ID: t2, Title: "T2", Order: 2, Type: ContentVideo},
							{ID: t1, Title: "T1", Order: 1, Type: ContentText},
						},
					},
				},
			},
		},
	}
}

func mustTree(tb testing.TB, c *Course) *Tree {
	tb.Helper()
	tree, err := NewTree(c)
	if err != nil {
		tb.Fatalf("NewTree: %v", err)
	}
	return tree
}

func ids(contents []Content) []uint {
	out := make([]uint, len(contents))
	for i, c := range contents {
		out[i] = c.ID
	}
	return out
}

func uintPtr(v uint) *uint { return &v }
