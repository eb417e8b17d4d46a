package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsModuleLocked_CourseX(t *testing.T) {
	tree := mustTree(t, courseX())

	locked, err := tree.IsModuleLocked(moduleB, NewCompletedSet(t1))
	require.NoError(t, err)
	assert.True(t, locked)

	locked, err = tree.IsModuleLocked(moduleB, NewCompletedSet(t1, t2))
	require.NoError(t, err)
	assert.False(t, locked)

	locked, err = tree.IsModuleLocked(moduleA, NewCompletedSet())
	require.NoError(t, err)
	assert.False(t, locked, "first module is never locked")
}

func TestIsModuleLocked_AnyEarlierModuleGates(t *testing.T) {
	c := &Course{
		ID: 1,
		Modules: []Module{
			{ID: 1, Order: 1, Contents: []Content{{ID: 11, Order: 1}, {ID: 12, Order: 2}}},
			{ID: 2, Order: 2, Contents: []Content{{ID: 21, Order: 1}}},
			{ID: 3, Order: 3, Contents: []Content{{ID: 31, Order: 1}}},
		},
	}
	tree := mustTree(t, c)

	// Module 2 is done but module 1 is not.
	locked, err := tree.IsModuleLocked(3, NewCompletedSet(11, 21))
	require.NoError(t, err)
	assert.True(t, locked)

	locked, err = tree.IsModuleLocked(3, NewCompletedSet(11, 12, 21))
	require.NoError(t, err)
	assert.False(t, locked)
}

func TestIsModuleLocked_EmptyModuleImposesNothing(t *testing.T) {
	c := &Course{
		ID: 1,
		Modules: []Module{
			{ID: 1, Order: 1},
			{ID: 2, Order: 2, Days: []Day{{ID: 1, Order: 1}}},
			{ID: 3, Order: 3, Contents: []Content{{ID: 31, Order: 1}}},
		},
	}
	tree := mustTree(t, c)

	locked, err := tree.IsModuleLocked(3, NewCompletedSet())
	require.NoError(t, err)
	assert.False(t, locked)
}

func TestIsModuleLocked_SameOrderDoesNotLock(t *testing.T) {
	c := &Course{
		ID: 1,
		Modules: []Module{
			{ID: 1, Order: 1, Contents: []Content{{ID: 11, Order: 1}}},
			{ID: 2, Order: 1, Contents: []Content{{ID: 21, Order: 1}}},
		},
	}
	tree := mustTree(t, c)

	locked, err := tree.IsModuleLocked(2, NewCompletedSet())
	require.NoError(t, err)
	assert.False(t, locked)

	_, found, err := tree.PreviousModule(2)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestIsModuleLocked_UnknownModule(t *testing.T) {
	tree := mustTree(t, courseX())

	_, err := tree.IsModuleLocked(404, NewCompletedSet())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPreviousModule(t *testing.T) {
	tree := mustTree(t, courseX())

	prev, found, err := tree.PreviousModule(moduleB)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, moduleA, prev.ID)

	_, found, err = tree.PreviousModule(moduleA)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestModuleVisible(t *testing.T) {
	restricted := Module{ID: 1, PlanIDs: []uint{7}}
	open := Module{ID: 2}

	plan3 := &Enrollment{UserID: 1, CourseID: 1, PlanID: uintPtr(3), IsActive: true}
	assert.False(t, ModuleVisible(restricted, plan3))
	assert.True(t, ModuleVisible(open, plan3))

	plan7 := &Enrollment{UserID: 1, CourseID: 1, PlanID: uintPtr(7), IsActive: true}
	assert.True(t, ModuleVisible(restricted, plan7))

	noPlan := &Enrollment{UserID: 1, CourseID: 1, IsActive: true}
	assert.False(t, ModuleVisible(restricted, noPlan))
	assert.True(t, ModuleVisible(open, noPlan))

	inactive := &Enrollment{UserID: 1, CourseID: 1, PlanID: uintPtr(7)}
	assert.False(t, ModuleVisible(restricted, inactive))
	assert.False(t, ModuleVisible(open, inactive))

	assert.False(t, ModuleVisible(open, nil))
}

func TestVisibleModules_KeepsOrder(t *testing.T) {
	c := courseX()
	c.Modules = append(c.Modules, Module{ID: 3, Order: 3, PlanIDs: []uint{7}}, Module{ID: 4, Order: 0, PlanIDs: []uint{3, 7}})
	tree := mustTree(t, c)

	got := tree.VisibleModules(&Enrollment{PlanID: uintPtr(3), IsActive: true})
	require.Len(t, got, 3)
	assert.Equal(t, uint(4), got[0].ID)
	assert.Equal(t, moduleA, got[1].ID)
	assert.Equal(t, moduleB, got[2].ID)

	assert.Empty(t, tree.VisibleModules(nil))
}
