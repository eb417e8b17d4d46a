package progression

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotEnrolled  = errors.New("user not enrolled in this course")
	ErrModuleHidden = errors.New("module not available for this plan")
	ErrModuleLocked = errors.New("module locked until the previous modules are completed")
	ErrNotQuiz      = errors.New("content is not a quiz")
	ErrQuizContent  = errors.New("quiz content is completed by submitting it")
	ErrInvalidScore = errors.New("invalid quiz score")
	ErrInvalidTree  = errors.New("invalid course tree")
)

// NotFoundError names the missing entity. It matches ErrNotFound.
type NotFoundError struct {
	Kind string
	ID   uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func notFound(kind string, id uint) error {
	return &NotFoundError{Kind: kind, ID: id}
}
