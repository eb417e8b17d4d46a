package progression

import (
	"fmt"
	"time"
)

const DefaultMaxAttempts = 3

// ProgressRecord is the per-user, per-content completion state.
type ProgressRecord struct {
	UserID      uint       `json:"user_id"`
	ContentID   uint       `json:"content_id"`
	IsCompleted bool       `json:"is_completed"`
	Attempts    int        `json:"attempts"`
	Score       *int       `json:"score,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func (r ProgressRecord) BestScore() int {
	if r.Score == nil {
		return 0
	}
	return *r.Score
}

// MarkRead completes a video or text item. It reports false when the record
// was already complete, leaving CompletedAt untouched.
func MarkRead(rec *ProgressRecord, now time.Time) bool {
	if rec.IsCompleted {
		return false
	}
	rec.IsCompleted = true
	if rec.CompletedAt == nil {
		at := now
		rec.CompletedAt = &at
	}
	return true
}

type QuizState int

const (
	QuizNeverAttempted QuizState = iota
	QuizInProgress
	QuizExhausted
)

func (s QuizState) String() string {
	switch s {
	case QuizNeverAttempted:
		return "never_attempted"
	case QuizInProgress:
		return "in_progress"
	case QuizExhausted:
		return "exhausted"
	}
	return fmt.Sprintf("QuizState(%d)", int(s))
}

// QuizPolicy caps attempts and decides what counts as a pass. PassPercent 0
// passes every submission.
type QuizPolicy struct {
	MaxAttempts int
	PassPercent int
}

func DefaultQuizPolicy() QuizPolicy {
	return QuizPolicy{MaxAttempts: DefaultMaxAttempts}
}

func (p QuizPolicy) maxAttempts() int {
	if p.MaxAttempts < 1 {
		return DefaultMaxAttempts
	}
	return p.MaxAttempts
}

func (p QuizPolicy) State(rec ProgressRecord) QuizState {
	switch {
	case rec.Attempts >= p.maxAttempts():
		return QuizExhausted
	case rec.Attempts > 0:
		return QuizInProgress
	default:
		return QuizNeverAttempted
	}
}

func (p QuizPolicy) Remaining(rec ProgressRecord) int {
	if r := p.maxAttempts() - rec.Attempts; r > 0 {
		return r
	}
	return 0
}

type QuizSubmission struct {
	Score          int
	TotalQuestions int
}

func (s QuizSubmission) Validate() error {
	if s.TotalQuestions <= 0 {
		return fmt.Errorf("%w: total questions must be positive, got %d", ErrInvalidScore, s.TotalQuestions)
	}
	if s.Score < 0 || s.Score > s.TotalQuestions {
		return fmt.Errorf("%w: score %d outside 0..%d", ErrInvalidScore, s.Score, s.TotalQuestions)
	}
	return nil
}

func (p QuizPolicy) Passed(s QuizSubmission) bool {
	if p.PassPercent <= 0 {
		return true
	}
	return s.Score*100 >= p.PassPercent*s.TotalQuestions
}

type QuizStatus string

const (
	QuizAccepted          QuizStatus = "accepted"
	QuizAttemptsExhausted QuizStatus = "attempts_exhausted"
)

type QuizResult struct {
	Status            QuizStatus `json:"status"`
	Attempts          int        `json:"attempts"`
	BestScore         int        `json:"best_score"`
	Passed            bool       `json:"passed"`
	Completed         bool       `json:"completed"`
	RemainingAttempts int        `json:"remaining_attempts"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
}

func (r QuizResult) Exhausted() bool { return r.Status == QuizAttemptsExhausted }

// Apply records one submission on rec. An exhausted record is left unchanged
// and the result reports the stored attempts and best score.
func (p QuizPolicy) Apply(rec *ProgressRecord, s QuizSubmission, now time.Time) QuizResult {
	if p.State(*rec) == QuizExhausted {
		return QuizResult{
			Status:      QuizAttemptsExhausted,
			Attempts:    rec.Attempts,
			BestScore:   rec.BestScore(),
			Completed:   rec.IsCompleted,
			CompletedAt: rec.CompletedAt,
		}
	}

	rec.Attempts++
	best := max(rec.BestScore(), s.Score)
	rec.Score = &best

	passed := p.Passed(s)
	if passed && !rec.IsCompleted {
		rec.IsCompleted = true
	}
	if rec.IsCompleted && rec.CompletedAt == nil {
		at := now
		rec.CompletedAt = &at
	}

	return QuizResult{
		Status:            QuizAccepted,
		Attempts:          rec.Attempts,
		BestScore:         best,
		Passed:            passed,
		Completed:         rec.IsCompleted,
		RemainingAttempts: p.Remaining(*rec),
		CompletedAt:       rec.CompletedAt,
	}
}
