package course

import (
	"time"

	"gorm.io/gorm"
)

// ProgressRecord is a user's state on one content item. One row per user and content.
type ProgressRecord struct {
	gorm.Model
	UserID      uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_progress_user_content"`
	ContentID   uint       `json:"content_id" gorm:"not null;uniqueIndex:idx_progress_user_content"`
	CourseID    uint       `json:"course_id" gorm:"index;not null"`
	IsCompleted bool       `json:"is_completed" gorm:"default:false"`
	Attempts    int        `json:"attempts" gorm:"default:0"`
	Score       *int       `json:"score"` // best score across attempts
	CompletedAt *time.Time `json:"completed_at"`
}
