package models

import (
	"gorm.io/gorm"
)

// User is the learner or admin account issued by the identity provider
type User struct {
	gorm.Model
	Name      string `gorm:"default:''"`
	Email     string `gorm:"unique;not null"`
	Role      string `gorm:"default:'USER'"` // USER, ADMIN
	IsBlocked bool   `gorm:"default:false"`
	IsDeleted bool   `gorm:"default:false"`
}
