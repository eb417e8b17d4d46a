package course

import "gorm.io/gorm"

// Day groups content inside a module
type Day struct {
	gorm.Model
	ModuleID  uint   `json:"module_id" gorm:"index;not null"`
	Title     string `json:"title"`
	Order     int    `json:"order" gorm:"column:sort_order;default:0"` // Day order in module
	IsDeleted bool   `gorm:"default:false"`
}
