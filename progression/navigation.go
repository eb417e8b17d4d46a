package progression

// ContentRef is the link target for previous/next buttons.
type ContentRef struct {
	ID       uint        `json:"id"`
	ModuleID uint        `json:"module_id"`
	DayID    *uint       `json:"day_id,omitempty"`
	Title    string      `json:"title"`
	Type     ContentType `json:"type"`
}

type Navigation struct {
	Prev *ContentRef `json:"prev"`
	Next *ContentRef `json:"next"`
}

func refOf(c Content) *ContentRef {
	return &ContentRef{ID: c.ID, ModuleID: c.ModuleID, DayID: c.DayID, Title: c.Title, Type: c.Type}
}

// Navigation returns the neighbours of a content item in the learner
// sequence: modules ascending, and inside a module every day's content
// (days ascending) before the module's direct content. Lock state is not
// consulted here.
func (t *Tree) Navigation(contentID uint) (Navigation, error) {
	i, ok := t.pos[contentID]
	if !ok {
		return Navigation{}, notFound("content", contentID)
	}
	var nav Navigation
	if i > 0 {
		nav.Prev = refOf(t.seq[i-1])
	}
	if i+1 < len(t.seq) {
		nav.Next = refOf(t.seq[i+1])
	}
	return nav, nil
}

// VisibleNavigation is Navigation over the modules e can see. Content of
// hidden modules is stepped over.
func (t *Tree) VisibleNavigation(contentID uint, e *Enrollment) (Navigation, error) {
	i, ok := t.pos[contentID]
	if !ok {
		return Navigation{}, notFound("content", contentID)
	}
	visible := func(c Content) bool {
		return ModuleVisible(t.modules[t.moduleIdx[c.ModuleID]], e)
	}
	var nav Navigation
	for j := i - 1; j >= 0; j-- {
		if visible(t.seq[j]) {
			nav.Prev = refOf(t.seq[j])
			break
		}
	}
	for j := i + 1; j < len(t.seq); j++ {
		if visible(t.seq[j]) {
			nav.Next = refOf(t.seq[j])
			break
		}
	}
	return nav, nil
}
