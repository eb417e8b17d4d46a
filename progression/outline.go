package progression

import (
	"context"

	"golang.org/x/sync/errgroup"
)

type OutlineContent struct {
	ID        uint        `json:"id"`
	Title     string      `json:"title"`
	Type      ContentType `json:"type"`
	Order     int         `json:"order"`
	Completed bool        `json:"completed"`
}

type OutlineDay struct {
	ID       uint             `json:"id"`
	Title    string           `json:"title"`
	Order    int              `json:"order"`
	Contents []OutlineContent `json:"contents"`
}

type OutlineModule struct {
	ID                uint             `json:"id"`
	Title             string           `json:"title"`
	Order             int              `json:"order"`
	Locked            bool             `json:"locked"`
	Days              []OutlineDay     `json:"days"`
	Contents          []OutlineContent `json:"contents"`
	TotalContents     int              `json:"total_contents"`
	CompletedContents int              `json:"completed_contents"`
	Progress          float64          `json:"progress"`
}

// Outline is the learner's view of a course: visible modules only, with lock
// and completion state.
type Outline struct {
	CourseID          uint            `json:"course_id"`
	Title             string          `json:"title"`
	Slug              string          `json:"slug"`
	Modules           []OutlineModule `json:"modules"`
	TotalContents     int             `json:"total_contents"`
	CompletedContents int             `json:"completed_contents"`
	Progress          float64         `json:"progress"`
	ResumeContentID   *uint           `json:"resume_content_id,omitempty"`
}

func percent(done, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(done) / float64(total) * 100
}

// Outline builds the dashboard tree for an enrolled user.
func (s *Service) Outline(ctx context.Context, userID, courseID uint) (Outline, error) {
	if userID == 0 {
		return Outline{}, ErrUnauthorized
	}

	var (
		tree       *Tree
		enrollment *Enrollment
		completed  CompletedSet
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		tree, err = s.loadTree(gctx, courseID)
		return err
	})
	g.Go(func() (err error) {
		enrollment, err = s.store.Enrollment(gctx, userID, courseID)
		return err
	})
	g.Go(func() (err error) {
		completed, err = s.store.CompletedContentIDs(gctx, userID, courseID)
		return err
	})
	if err := g.Wait(); err != nil {
		return Outline{}, err
	}
	if enrollment == nil || !enrollment.IsActive {
		return Outline{}, ErrNotEnrolled
	}

	course := tree.Course()
	out := Outline{CourseID: course.ID, Title: course.Title, Slug: course.Slug}
	entry := func(c Content) OutlineContent {
		return OutlineContent{ID: c.ID, Title: c.Title, Type: c.Type, Order: c.Order, Completed: completed.Has(c.ID)}
	}

	for _, m := range tree.VisibleModules(enrollment) {
		locked, err := tree.IsModuleLocked(m.ID, completed)
		if err != nil {
			return Outline{}, err
		}
		om := OutlineModule{ID: m.ID, Title: m.Title, Order: m.Order, Locked: locked}
		for _, d := range m.Days {
			od := OutlineDay{ID: d.ID, Title: d.Title, Order: d.Order}
			for _, c := range d.Contents {
				od.Contents = append(od.Contents, entry(c))
			}
			om.Days = append(om.Days, od)
		}
		for _, c := range m.Contents {
			om.Contents = append(om.Contents, entry(c))
		}
		for _, id := range moduleContentIDs(m) {
			om.TotalContents++
			if completed.Has(id) {
				om.CompletedContents++
			} else if out.ResumeContentID == nil && !locked {
				resume := id
				out.ResumeContentID = &resume
			}
		}
		om.Progress = percent(om.CompletedContents, om.TotalContents)

		out.TotalContents += om.TotalContents
		out.CompletedContents += om.CompletedContents
		out.Modules = append(out.Modules, om)
	}
	out.Progress = percent(out.CompletedContents, out.TotalContents)
	return out, nil
}
