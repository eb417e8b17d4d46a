package course

import (
	"time"

	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

// Enrollment tracks a user's access to a course
type Enrollment struct {
	gorm.Model
	UserID    uint       `json:"user_id" gorm:"index;not null"`
	CourseID  uint       `json:"course_id" gorm:"index;not null"`
	PlanID    *uint      `json:"plan_id" gorm:"index"`
	IsActive  bool       `json:"is_active" gorm:"not null"`
	ExpiresAt *time.Time `json:"expires_at"`
	IsDeleted bool       `gorm:"default:false"`
}

// ExpiryCutoff is the instant before which an expiry date no longer grants
// access at t. Access runs through the whole expiry day.
func ExpiryCutoff(t time.Time) time.Time {
	return now.With(t).BeginningOfDay()
}

// ActiveAt reports whether the enrollment grants access at t
func (e Enrollment) ActiveAt(t time.Time) bool {
	if !e.IsActive || e.IsDeleted {
		return false
	}
	return e.ExpiresAt == nil || !e.ExpiresAt.Before(ExpiryCutoff(t))
}
