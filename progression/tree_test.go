package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTree_OrdersSiblingsAscending(t *testing.T) {
	tree := mustTree(t, courseX())

	modules := tree.OrderedModules()
	require.Len(t, modules, 2)
	assert.Equal(t, moduleA, modules[0].ID)
	assert.Equal(t, moduleB, modules[1].ID)

	days, err := tree.OrderedDays(moduleA)
	require.NoError(t, err)
	require.Len(t, days, 1)

	contents, err := tree.OrderedContent(dayA1)
	require.NoError(t, err)
	assert.Equal(t, []uint{t1, t2}, ids(contents))

	direct, err := tree.OrderedDirectContent(moduleB)
	require.NoError(t, err)
	assert.Equal(t, []uint{q1}, ids(direct))

	assert.Equal(t, []uint{t1, t2, q1}, ids(tree.Sequence()))
	assert.Empty(t, tree.OrderingIssues())
}

func TestNewTree_FillsParentIDs(t *testing.T) {
	tree := mustTree(t, courseX())

	c, err := tree.Content(t1)
	require.NoError(t, err)
	assert.Equal(t, moduleA, c.ModuleID)
	require.NotNil(t, c.DayID)
	assert.Equal(t, dayA1, *c.DayID)

	m, err := tree.Module(moduleB)
	require.NoError(t, err)
	assert.Equal(t, uint(7), m.CourseID)
}

func TestNewTree_DoesNotModifyInput(t *testing.T) {
	in := courseX()
	mustTree(t, in)

	assert.Equal(t, moduleB, in.Modules[0].ID)
	assert.Equal(t, t2, in.Modules[1].Days[0].Contents[0].ID)
	assert.Nil(t, in.Modules[1].Days[0].Contents[0].DayID)
}

func TestNewTree_TiesBreakByIDAndAreReported(t *testing.T) {
	c := &Course{
		ID: 1,
		Modules: []Module{
			{ID: 5, Order: 1, Contents: []Content{{ID: 52, Order: 3}, {ID: 51, Order: 3}}},
			{ID: 4, Order: 1},
			{ID: 6, Order: 2},
		},
	}
	tree := mustTree(t, c)

	modules := tree.OrderedModules()
	assert.Equal(t, uint(4), modules[0].ID)
	assert.Equal(t, uint(5), modules[1].ID)
	assert.Equal(t, uint(6), modules[2].ID)

	direct, err := tree.OrderedDirectContent(5)
	require.NoError(t, err)
	assert.Equal(t, []uint{51, 52}, ids(direct))

	issues := tree.OrderingIssues()
	require.Len(t, issues, 2)
	assert.Equal(t, OrderingIssue{Kind: "module", Parent: "course", ParentID: 1, Order: 1, IDs: []uint{4, 5}}, issues[0])
	assert.Equal(t, OrderingIssue{Kind: "content", Parent: "module", ParentID: 5, Order: 3, IDs: []uint{51, 52}}, issues[1])
	assert.Equal(t, "course 1 has modules [4 5] sharing order 1", issues[0].String())
}

func TestNewTree_RejectsContentFromAnotherModule(t *testing.T) {
	c := courseX()
	c.Modules[1].Days[0].Contents[0].ModuleID = moduleB

	_, err := NewTree(c)
	assert.ErrorIs(t, err, ErrInvalidTree)
}

func TestNewTree_RejectsDayFromAnotherModule(t *testing.T) {
	c := courseX()
	c.Modules[1].Days[0].ModuleID = moduleB

	_, err := NewTree(c)
	assert.ErrorIs(t, err, ErrInvalidTree)
}

func TestNewTree_RejectsDirectContentWithDay(t *testing.T) {
	c := courseX()
	c.Modules[0].Contents[0].DayID = uintPtr(dayA1)

	_, err := NewTree(c)
	assert.ErrorIs(t, err, ErrInvalidTree)
}

func TestNewTree_RejectsDuplicateContent(t *testing.T) {
	c := courseX()
	c.Modules[0].Contents = append(c.Modules[0].Contents, Content{ID: t1, Order: 2})

	_, err := NewTree(c)
	assert.ErrorIs(t, err, ErrInvalidTree)
}

func TestNewTree_RejectsModuleOfAnotherCourse(t *testing.T) {
	c := courseX()
	c.Modules[0].CourseID = 99

	_, err := NewTree(c)
	assert.ErrorIs(t, err, ErrInvalidTree)

	_, err = NewTree(nil)
	assert.ErrorIs(t, err, ErrInvalidTree)
}

func TestTree_UnknownParentIsNotFound(t *testing.T) {
	tree := mustTree(t, courseX())

	_, err := tree.OrderedDays(999)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = tree.OrderedContent(999)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = tree.Content(999)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "content", nf.Kind)
	assert.Equal(t, uint(999), nf.ID)
}

func TestTree_Location(t *testing.T) {
	tree := mustTree(t, courseX())

	loc, err := tree.Location(t2)
	require.NoError(t, err)
	assert.Equal(t, DayLocation{ModuleID: moduleA, DayID: dayA1}, loc)

	loc, err = tree.Location(q1)
	require.NoError(t, err)
	assert.Equal(t, ModuleDirectLocation{ModuleID: moduleB}, loc)
	assert.Equal(t, moduleB, loc.ParentModuleID())
}

func TestTree_ModuleContentIDs_DaysBeforeDirect(t *testing.T) {
	c := courseX()
	c.Modules[1].Contents = []Content{{ID: 150, Order: 0}}
	tree := mustTree(t, c)

	got, err := tree.ModuleContentIDs(moduleA)
	require.NoError(t, err)
	assert.Equal(t, []uint{t1, t2, 150}, got)
}
