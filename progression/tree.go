// Package progression decides how a learner moves through a course: which
// content comes before and after an item, whether a module is unlocked, which
// modules an enrollment's plan can see, and how quiz attempts are recorded.
//
// Everything here works on a snapshot of the course tree loaded once per
// request. Persistence sits behind the Store interface.
package progression

import (
	"cmp"
	"fmt"
	"slices"
)

type ContentType string

const (
	ContentVideo ContentType = "video"
	ContentText  ContentType = "text"
	ContentTest  ContentType = "test"
)

// Course is a snapshot of one course with its modules, days and content.
type Course struct {
	ID      uint     `json:"id"`
	Title   string   `json:"title"`
	Slug    string   `json:"slug"`
	Modules []Module `json:"modules"`
}

// Module holds days and direct content. PlanIDs restricts visibility; empty
// means every active enrollment sees it.
type Module struct {
	ID       uint      `json:"id"`
	CourseID uint      `json:"course_id"`
	Title    string    `json:"title"`
	Order    int       `json:"order"`
	PlanIDs  []uint    `json:"plan_ids,omitempty"`
	Days     []Day     `json:"days,omitempty"`
	Contents []Content `json:"contents,omitempty"`
}

type Day struct {
	ID       uint      `json:"id"`
	ModuleID uint      `json:"module_id"`
	Title    string    `json:"title"`
	Order    int       `json:"order"`
	Contents []Content `json:"contents,omitempty"`
}

type Content struct {
	ID       uint        `json:"id"`
	ModuleID uint        `json:"module_id"`
	DayID    *uint       `json:"day_id,omitempty"`
	Title    string      `json:"title"`
	Order    int         `json:"order"`
	Type     ContentType `json:"type"`
	Data     string      `json:"data,omitempty"`
}

// ContentLocation is either a DayLocation or a ModuleDirectLocation.
type ContentLocation interface {
	ParentModuleID() uint
	isLocation()
}

type DayLocation struct {
	ModuleID uint
	DayID    uint
}

func (l DayLocation) ParentModuleID() uint { return l.ModuleID }
func (DayLocation) isLocation() {}

type ModuleDirectLocation struct {
	ModuleID uint
}

func (l ModuleDirectLocation) ParentModuleID() uint { return l.ModuleID }
func (ModuleDirectLocation) isLocation() {}

// OrderingIssue reports siblings that share an order value. The tree still
// orders them, by id.
type OrderingIssue struct {
	Kind     string `json:"kind"`        // module, day or content
	Parent   string `json:"parent"`      // course, module or day
	ParentID uint   `json:"parent_id"`   // id of the parent
	Order    int    `json:"order"`       // the shared value
	IDs      []uint `json:"sibling_ids"` // in tie-break order
}

func (i OrderingIssue) String() string {
	return fmt.Sprintf("%s %d has %ss %v sharing order %d", i.Parent, i.ParentID, i.Kind, i.IDs, i.Order)
}

type dayPos struct {
	module int
	day    int
}

// Tree is an ordered, validated view of a course.
type Tree struct {
	course    Course
	modules   []Module
	moduleIdx map[uint]int
	dayIdx    map[uint]dayPos
	seq       []Content
	pos       map[uint]int
	locations map[uint]ContentLocation
	issues    []OrderingIssue
}

// NewTree sorts the course, checks parent references and flattens it into
// the learner sequence. The input is not modified.
func NewTree(course *Course) (*Tree, error) {
	if course == nil {
		return nil, fmt.Errorf("%w: nil course", ErrInvalidTree)
	}
	t := &Tree{
		course:    Course{ID: course.ID, Title: course.Title, Slug: course.Slug},
		moduleIdx: make(map[uint]int, len(course.Modules)),
		dayIdx:    make(map[uint]dayPos),
		pos:       make(map[uint]int),
		locations: make(map[uint]ContentLocation),
	}

	t.modules = make([]Module, len(course.Modules))
	for i, m := range course.Modules {
		if m.CourseID == 0 {
			m.CourseID = course.ID
		}
		if m.CourseID != course.ID {
			return nil, fmt.Errorf("%w: module %d belongs to course %d, not %d", ErrInvalidTree, m.ID, m.CourseID, course.ID)
		}
		m.PlanIDs = slices.Clone(m.PlanIDs)
		m.Days = slices.Clone(m.Days)
		m.Contents = slices.Clone(m.Contents)
		for j := range m.Days {
			m.Days[j].Contents = slices.Clone(m.Days[j].Contents)
		}
		t.modules[i] = m
	}
	sortSiblings(t.modules, func(m Module) (int, uint) { return m.Order, m.ID })
	t.issues = append(t.issues, findTies("module", "course", course.ID, t.modules, func(m Module) (int, uint) { return m.Order, m.ID })...)

	for mi := range t.modules {
		m := &t.modules[mi]
		if _, dup := t.moduleIdx[m.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate module %d", ErrInvalidTree, m.ID)
		}
		t.moduleIdx[m.ID] = mi

		sortSiblings(m.Days, func(d Day) (int, uint) { return d.Order, d.ID })
		t.issues = append(t.issues, findTies("day", "module", m.ID, m.Days, func(d Day) (int, uint) { return d.Order, d.ID })...)

		for di := range m.Days {
			d := &m.Days[di]
			if d.ModuleID == 0 {
				d.ModuleID = m.ID
			}
			if d.ModuleID != m.ID {
				return nil, fmt.Errorf("%w: day %d belongs to module %d, not %d", ErrInvalidTree, d.ID, d.ModuleID, m.ID)
			}
			if _, dup := t.dayIdx[d.ID]; dup {
				return nil, fmt.Errorf("%w: duplicate day %d", ErrInvalidTree, d.ID)
			}
			t.dayIdx[d.ID] = dayPos{module: mi, day: di}

			sortSiblings(d.Contents, contentKey)
			t.issues = append(t.issues, findTies("content", "day", d.ID, d.Contents, contentKey)...)
			for ci := range d.Contents {
				c := &d.Contents[ci]
				if c.ModuleID == 0 {
					c.ModuleID = m.ID
				}
				if c.ModuleID != m.ID {
					return nil, fmt.Errorf("%w: content %d under day %d carries module %d, not %d", ErrInvalidTree, c.ID, d.ID, c.ModuleID, m.ID)
				}
				if c.DayID == nil {
					id := d.ID
					c.DayID = &id
				}
				if *c.DayID != d.ID {
					return nil, fmt.Errorf("%w: content %d listed under day %d carries day %d", ErrInvalidTree, c.ID, d.ID, *c.DayID)
				}
				if err := t.push(*c, DayLocation{ModuleID: m.ID, DayID: d.ID}); err != nil {
					return nil, err
				}
			}
		}

		sortSiblings(m.Contents, contentKey)
		t.issues = append(t.issues, findTies("content", "module", m.ID, m.Contents, contentKey)...)
		for ci := range m.Contents {
			c := &m.Contents[ci]
			if c.ModuleID == 0 {
				c.ModuleID = m.ID
			}
			if c.ModuleID != m.ID {
				return nil, fmt.Errorf("%w: content %d carries module %d, not %d", ErrInvalidTree, c.ID, c.ModuleID, m.ID)
			}
			if c.DayID != nil {
				return nil, fmt.Errorf("%w: direct content %d of module %d carries day %d", ErrInvalidTree, c.ID, m.ID, *c.DayID)
			}
			if err := t.push(*c, ModuleDirectLocation{ModuleID: m.ID}); err != nil {
				return nil, err
			}
		}
	}
	return t, nil
}

func (t *Tree) push(c Content, loc ContentLocation) error {
	if _, dup := t.pos[c.ID]; dup {
		return fmt.Errorf("%w: duplicate content %d", ErrInvalidTree, c.ID)
	}
	t.pos[c.ID] = len(t.seq)
	t.seq = append(t.seq, c)
	t.locations[c.ID] = loc
	return nil
}

func contentKey(c Content) (int, uint) { return c.Order, c.ID }

func sortSiblings[T any](items []T, key func(T) (int, uint)) {
	slices.SortFunc(items, func(a, b T) int {
		ao, aid := key(a)
		bo, bid := key(b)
		if c := cmp.Compare(ao, bo); c != 0 {
			return c
		}
		return cmp.Compare(aid, bid)
	})
}

// findTies expects items already sorted.
func findTies[T any](kind, parent string, parentID uint, items []T, key func(T) (int, uint)) []OrderingIssue {
	var issues []OrderingIssue
	for i := 0; i < len(items); {
		order, _ := key(items[i])
		j := i + 1
		for j < len(items) {
			o, _ := key(items[j])
			if o != order {
				break
			}
			j++
		}
		if j-i > 1 {
			ids := make([]uint, 0, j-i)
			for _, it := range items[i:j] {
				_, id := key(it)
				ids = append(ids, id)
			}
			issues = append(issues, OrderingIssue{Kind: kind, Parent: parent, ParentID: parentID, Order: order, IDs: ids})
		}
		i = j
	}
	return issues
}

func (t *Tree) CourseID() uint { return t.course.ID }

// Course returns the course header without its modules.
func (t *Tree) Course() Course { return t.course }

// OrderingIssues lists sibling order collisions found while building the tree.
func (t *Tree) OrderingIssues() []OrderingIssue { return slices.Clone(t.issues) }

// OrderedModules returns the course modules ascending by order.
func (t *Tree) OrderedModules() []Module { return slices.Clone(t.modules) }

func (t *Tree) Module(moduleID uint) (Module, error) {
	i, ok := t.moduleIdx[moduleID]
	if !ok {
		return Module{}, notFound("module", moduleID)
	}
	return t.modules[i], nil
}

func (t *Tree) OrderedDays(moduleID uint) ([]Day, error) {
	m, err := t.Module(moduleID)
	if err != nil {
		return nil, err
	}
	return slices.Clone(m.Days), nil
}

// OrderedDirectContent returns the module content that is not bound to a day.
func (t *Tree) OrderedDirectContent(moduleID uint) ([]Content, error) {
	m, err := t.Module(moduleID)
	if err != nil {
		return nil, err
	}
	return slices.Clone(m.Contents), nil
}

func (t *Tree) OrderedContent(dayID uint) ([]Content, error) {
	p, ok := t.dayIdx[dayID]
	if !ok {
		return nil, notFound("day", dayID)
	}
	return slices.Clone(t.modules[p.module].Days[p.day].Contents), nil
}

func (t *Tree) Content(contentID uint) (Content, error) {
	i, ok := t.pos[contentID]
	if !ok {
		return Content{}, notFound("content", contentID)
	}
	return t.seq[i], nil
}

func (t *Tree) Location(contentID uint) (ContentLocation, error) {
	loc, ok := t.locations[contentID]
	if !ok {
		return nil, notFound("content", contentID)
	}
	return loc, nil
}

// Sequence returns every content item in learner order.
func (t *Tree) Sequence() []Content { return slices.Clone(t.seq) }

// ModuleContentIDs returns the ids of all content in a module, day-bound and
// direct alike.
func (t *Tree) ModuleContentIDs(moduleID uint) ([]uint, error) {
	m, err := t.Module(moduleID)
	if err != nil {
		return nil, err
	}
	return moduleContentIDs(m), nil
}

func moduleContentIDs(m Module) []uint {
	var ids []uint
	for _, d := range m.Days {
		for _, c := range d.Contents {
			ids = append(ids, c.ID)
		}
	}
	for _, c := range m.Contents {
		ids = append(ids, c.ID)
	}
	return ids
}
