package progression

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"tracker/logger"
)

// ProgressKey addresses one progress record.
type ProgressKey struct {
	UserID    uint
	CourseID  uint
	ContentID uint
}

// Store is the persistence collaborator. Lookups of a missing single entity
// return an error matching ErrNotFound; Enrollment and Progress return nil
// when no row exists.
type Store interface {
	CourseTree(ctx context.Context, courseID uint) (*Course, error)
	CourseIDForContent(ctx context.Context, contentID uint) (uint, error)
	CourseIDForModule(ctx context.Context, moduleID uint) (uint, error)
	UserExists(ctx context.Context, userID uint) (bool, error)
	Enrollment(ctx context.Context, userID, courseID uint) (*Enrollment, error)
	CompletedContentIDs(ctx context.Context, userID, courseID uint) (CompletedSet, error)
	Progress(ctx context.Context, userID, contentID uint) (*ProgressRecord, error)

	// UpdateProgress runs fn against the record for key inside one
	// transaction, holding a row lock. A missing record is created. fn
	// returns false to leave the row as it was.
	UpdateProgress(ctx context.Context, key ProgressKey, fn func(rec *ProgressRecord) (bool, error)) (ProgressRecord, error)
}

type Service struct {
	store Store
	log   *logger.Logger
	quiz  QuizPolicy
	now   func() time.Time
}

type Option func(*Service)

func WithQuizPolicy(p QuizPolicy) Option {
	return func(s *Service) { s.quiz = p }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(store Store, log *logger.Logger, opts ...Option) *Service {
	if log == nil {
		log = logger.Nop()
	}
	s := &Service{
		store: store,
		log:   log,
		quiz:  DefaultQuizPolicy(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) QuizPolicy() QuizPolicy { return s.quiz }

func (s *Service) loadTree(ctx context.Context, courseID uint) (*Tree, error) {
	course, err := s.store.CourseTree(ctx, courseID)
	if err != nil {
		return nil, err
	}
	tree, err := NewTree(course)
	if err != nil {
		s.log.Error("course tree rejected", "course_id", courseID, "error", err)
		return nil, err
	}
	for _, issue := range tree.OrderingIssues() {
		s.log.Warn("inconsistent sibling ordering", "course_id", courseID, "issue", issue.String())
	}
	return tree, nil
}

// ResolveNavigation returns the previous and next items around contentID.
func (s *Service) ResolveNavigation(ctx context.Context, contentID uint) (Navigation, error) {
	courseID, err := s.store.CourseIDForContent(ctx, contentID)
	if err != nil {
		return Navigation{}, err
	}
	tree, err := s.loadTree(ctx, courseID)
	if err != nil {
		return Navigation{}, err
	}
	return tree.Navigation(contentID)
}

// IsModuleLocked reports whether the user still has to finish an earlier module.
func (s *Service) IsModuleLocked(ctx context.Context, userID, moduleID uint) (bool, error) {
	if userID == 0 {
		return false, ErrUnauthorized
	}
	courseID, err := s.store.CourseIDForModule(ctx, moduleID)
	if err != nil {
		return false, err
	}

	var (
		tree      *Tree
		completed CompletedSet
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		tree, err = s.loadTree(gctx, courseID)
		return err
	})
	g.Go(func() (err error) {
		completed, err = s.store.CompletedContentIDs(gctx, userID, courseID)
		return err
	})
	if err := g.Wait(); err != nil {
		return false, err
	}
	return tree.IsModuleLocked(moduleID, completed)
}

// VisibleModules returns the modules the user's enrollment plan may see. A
// user without an active enrollment sees none.
func (s *Service) VisibleModules(ctx context.Context, userID, courseID uint) ([]Module, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}

	var (
		tree       *Tree
		enrollment *Enrollment
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
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tree.VisibleModules(enrollment), nil
}

// access is everything the gate needs to know about one content item.
type access struct {
	tree       *Tree
	enrollment *Enrollment
	completed  CompletedSet
	content    Content
	module     Module
	locked     bool
}

func (s *Service) access(ctx context.Context, userID, contentID uint) (*access, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}
	courseID, err := s.store.CourseIDForContent(ctx, contentID)
	if err != nil {
		return nil, err
	}

	a := &access{}
	var userFound bool
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		userFound, err = s.store.UserExists(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		a.tree, err = s.loadTree(gctx, courseID)
		return err
	})
	g.Go(func() (err error) {
		a.enrollment, err = s.store.Enrollment(gctx, userID, courseID)
		return err
	})
	g.Go(func() (err error) {
		a.completed, err = s.store.CompletedContentIDs(gctx, userID, courseID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if !userFound {
		return nil, notFound("user", userID)
	}

	if a.content, err = a.tree.Content(contentID); err != nil {
		return nil, err
	}
	if a.module, err = a.tree.Module(a.content.ModuleID); err != nil {
		return nil, err
	}
	if a.enrollment == nil || !a.enrollment.IsActive {
		return nil, ErrNotEnrolled
	}
	if !ModuleVisible(a.module, a.enrollment) {
		return nil, ErrModuleHidden
	}
	if a.locked, err = a.tree.IsModuleLocked(a.module.ID, a.completed); err != nil {
		return nil, err
	}
	if a.locked {
		return nil, ErrModuleLocked
	}
	return a, nil
}

// MarkCompleted completes a video or text item. Repeated calls keep the first
// completion time.
func (s *Service) MarkCompleted(ctx context.Context, userID, contentID uint) (ProgressRecord, error) {
	a, err := s.access(ctx, userID, contentID)
	if err != nil {
		return ProgressRecord{}, err
	}
	if a.content.Type == ContentTest {
		return ProgressRecord{}, ErrQuizContent
	}

	key := ProgressKey{UserID: userID, CourseID: a.tree.CourseID(), ContentID: contentID}
	rec, err := s.store.UpdateProgress(ctx, key, func(rec *ProgressRecord) (bool, error) {
		return MarkRead(rec, s.now()), nil
	})
	if err != nil {
		return ProgressRecord{}, fmt.Errorf("mark content %d completed: %w", contentID, err)
	}
	s.log.Debug("content completed", "user_id", userID, "content_id", contentID)
	return rec, nil
}

// SubmitQuiz records one quiz attempt. Once the attempt cap is reached the
// result has status QuizAttemptsExhausted and nothing is written, whatever
// the submitted score. Out-of-range scores are rejected on open records only.
func (s *Service) SubmitQuiz(ctx context.Context, userID, contentID uint, score, totalQuestions int) (QuizResult, error) {
	sub := QuizSubmission{Score: score, TotalQuestions: totalQuestions}
	a, err := s.access(ctx, userID, contentID)
	if err != nil {
		return QuizResult{}, err
	}
	if a.content.Type != ContentTest {
		return QuizResult{}, ErrNotQuiz
	}

	var result QuizResult
	key := ProgressKey{UserID: userID, CourseID: a.tree.CourseID(), ContentID: contentID}
	_, err = s.store.UpdateProgress(ctx, key, func(rec *ProgressRecord) (bool, error) {
		if s.quiz.State(*rec) != QuizExhausted {
			if err := sub.Validate(); err != nil {
				return false, err
			}
		}
		result = s.quiz.Apply(rec, sub, s.now())
		return result.Status == QuizAccepted, nil
	})
	if err != nil {
		return QuizResult{}, fmt.Errorf("submit quiz %d: %w", contentID, err)
	}

	if result.Exhausted() {
		s.log.Info("quiz submission rejected, attempts exhausted", "user_id", userID, "content_id", contentID, "attempts", result.Attempts)
	} else {
		s.log.Debug("quiz submitted", "user_id", userID, "content_id", contentID, "attempts", result.Attempts, "best_score", result.BestScore)
	}
	return result, nil
}

// ContentPage is what the learner sees when opening one item.
type ContentPage struct {
	Content    Content         `json:"content"`
	ModuleID   uint            `json:"module_id"`
	ModuleName string          `json:"module_title"`
	Navigation Navigation      `json:"navigation"`
	Progress   *ProgressRecord `json:"progress"`
	Quiz       *QuizView       `json:"quiz,omitempty"`
}

// QuizView summarises attempt state for quiz content.
type QuizView struct {
	State             string `json:"state"`
	Attempts          int    `json:"attempts"`
	MaxAttempts       int    `json:"max_attempts"`
	RemainingAttempts int    `json:"remaining_attempts"`
	BestScore         int    `json:"best_score"`
}

// ContentPage gates the item by enrollment, plan and module lock, then
// resolves its neighbours among the modules the plan can see, and its stored
// progress.
func (s *Service) ContentPage(ctx context.Context, userID, contentID uint) (ContentPage, error) {
	a, err := s.access(ctx, userID, contentID)
	if err != nil {
		return ContentPage{}, err
	}
	nav, err := a.tree.VisibleNavigation(contentID, a.enrollment)
	if err != nil {
		return ContentPage{}, err
	}
	rec, err := s.store.Progress(ctx, userID, contentID)
	if err != nil {
		return ContentPage{}, err
	}

	page := ContentPage{
		Content:    a.content,
		ModuleID:   a.module.ID,
		ModuleName: a.module.Title,
		Navigation: nav,
		Progress:   rec,
	}
	if a.content.Type == ContentTest {
		var r ProgressRecord
		if rec != nil {
			r = *rec
		}
		page.Quiz = &QuizView{
			State:             s.quiz.State(r).String(),
			Attempts:          r.Attempts,
			MaxAttempts:       s.quiz.maxAttempts(),
			RemainingAttempts: s.quiz.Remaining(r),
			BestScore:         r.BestScore(),
		}
	}
	return page, nil
}

// CheckModuleCourse fails with a module NotFoundError unless moduleID belongs
// to courseID.
func (s *Service) CheckModuleCourse(ctx context.Context, courseID, moduleID uint) error {
	got, err := s.store.CourseIDForModule(ctx, moduleID)
	if err != nil {
		return err
	}
	if got != courseID {
		return notFound("module", moduleID)
	}
	return nil
}

// OrderingIssues lists sibling order collisions in a course.
func (s *Service) OrderingIssues(ctx context.Context, courseID uint) ([]OrderingIssue, error) {
	tree, err := s.loadTree(ctx, courseID)
	if err != nil {
		return nil, err
	}
	return tree.OrderingIssues(), nil
}
