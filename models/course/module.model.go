package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Module represents a section/module within a course
type Module struct {
	gorm.Model
	CourseID    uint                      `json:"course_id" gorm:"index;not null"`
	Title       string                    `json:"title"`
	Description string                    `json:"description"`
	Order       int                       `json:"order" gorm:"column:sort_order;default:0"` // Module order in course
	PlanIDs     datatypes.JSONSlice[uint] `json:"plan_ids"`                                 // Empty means every plan
	IsDeleted   bool                      `gorm:"default:false"`
}
