package models

import (
	"gorm.io/gorm"
)

// PermissionViewCourseHealth allows reading course data-quality reports
const PermissionViewCourseHealth = "view-course-health"

type Permission struct {
	gorm.Model
	UserID     uint   `gorm:"index;not null"`
	User       User   `gorm:"foreignKey:UserID"`
	Role       string
	Permission string `gorm:"type:varchar(255)"` // e.g., "view-course-health"
	IsDeleted  bool   `gorm:"default:false"`
}
