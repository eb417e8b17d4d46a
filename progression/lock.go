package progression

import "slices"

// CompletedSet holds the content ids a user has completed.
type CompletedSet map[uint]struct{}

func NewCompletedSet(ids ...uint) CompletedSet {
	s := make(CompletedSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s CompletedSet) Has(id uint) bool {
	_, ok := s[id]
	return ok
}

func (s CompletedSet) Add(id uint) { s[id] = struct{}{} }

// Enrollment is a user's access to a course. PlanID is nil when the
// enrollment carries no plan or its plan cannot be resolved.
type Enrollment struct {
	UserID   uint  `json:"user_id"`
	CourseID uint  `json:"course_id"`
	PlanID   *uint `json:"plan_id,omitempty"`
	IsActive bool  `json:"is_active"`
}

// PreviousModule returns the module with the largest order strictly below
// the given module's order.
func (t *Tree) PreviousModule(moduleID uint) (Module, bool, error) {
	i, ok := t.moduleIdx[moduleID]
	if !ok {
		return Module{}, false, notFound("module", moduleID)
	}
	order := t.modules[i].Order
	for j := i - 1; j >= 0; j-- {
		if t.modules[j].Order < order {
			return t.modules[j], true, nil
		}
	}
	return Module{}, false, nil
}

// IsModuleLocked reports whether any module ordered before moduleID still has
// content missing from completed. Modules without content never lock anything.
func (t *Tree) IsModuleLocked(moduleID uint, completed CompletedSet) (bool, error) {
	i, ok := t.moduleIdx[moduleID]
	if !ok {
		return false, notFound("module", moduleID)
	}
	order := t.modules[i].Order
	// Walk backwards so the immediately previous module is checked first.
	for j := i - 1; j >= 0; j-- {
		prev := t.modules[j]
		if prev.Order >= order {
			continue
		}
		for _, id := range moduleContentIDs(prev) {
			if !completed.Has(id) {
				return true, nil
			}
		}
	}
	return false, nil
}

// ModuleVisible applies the plan restriction. Nothing is visible without an
// active enrollment; a restricted module needs the enrollment's plan in its
// plan set.
func ModuleVisible(m Module, e *Enrollment) bool {
	if e == nil || !e.IsActive {
		return false
	}
	if len(m.PlanIDs) == 0 {
		return true
	}
	if e.PlanID == nil {
		return false
	}
	return slices.Contains(m.PlanIDs, *e.PlanID)
}

// VisibleModules returns the ordered modules the enrollment may see.
func (t *Tree) VisibleModules(e *Enrollment) []Module {
	out := make([]Module, 0, len(t.modules))
	for _, m := range t.modules {
		if ModuleVisible(m, e) {
			out = append(out, m)
		}
	}
	return out
}
