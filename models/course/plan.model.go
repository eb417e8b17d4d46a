package course

import "gorm.io/gorm"

// Plan is a purchasable access tier for a course
type Plan struct {
	gorm.Model
	CourseID     uint   `json:"course_id" gorm:"index;not null"`
	Name         string `json:"name"`
	DurationDays int    `json:"duration_days" gorm:"default:0"` // 0 means lifetime access
	IsDeleted    bool   `gorm:"default:false"`
}
