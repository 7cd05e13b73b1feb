package db

import "gorm.io/gorm"

// Page represents a standalone marketing page such as About or Services.
type Page struct {
	gorm.Model
	Slug      string `gorm:"uniqueIndex;not null"`
	Title     string `gorm:"not null"`
	Summary   string
	Content   string `gorm:"type:text"` // markdown
	Published bool   `gorm:"default:true"`
}
