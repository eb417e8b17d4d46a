package course

import "gorm.io/gorm"

const (
	ContentTypeVideo = "video"
	ContentTypeText  = "text"
	ContentTypeTest  = "test"
)

// CourseContent represents content within a module, either bound to a day or
// listed directly under the module when DayID is nil
type CourseContent struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	ModuleID    uint   `json:"module_id" gorm:"index;not null"`
	DayID       *uint  `json:"day_id" gorm:"index"`
	Title       string `json:"title"`
	ContentType string `json:"content_type" gorm:"default:'text'"` // video, text, test
	Data        string `json:"data" gorm:"type:text"`              // URL, text or quiz JSON
	Order       int    `json:"order" gorm:"column:sort_order;default:0"`
	IsDeleted   bool   `gorm:"default:false"`
}
