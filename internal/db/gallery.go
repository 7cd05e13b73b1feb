package db

import "gorm.io/gorm"

// Gallery 定义客片/作品集合模型，既可公开展示也可通过访问码私享。
type Gallery struct {
	gorm.Model
	Name        string `gorm:"not null"`
	Slug        string `gorm:"uniqueIndex;not null"`
	Description string `gorm:"type:text"`
	CoverKey    string `gorm:"size:500"` // 对象存储 key，非直链
	Published   bool   `gorm:"default:false"`
	ClientID    *uint  `gorm:"index"`
	ProjectID   *uint  `gorm:"index"`

	Client      *Client            `gorm:"foreignKey:ClientID"`
	Project     *Project           `gorm:"foreignKey:ProjectID"`
	Images      []GalleryImage     `gorm:"foreignKey:GalleryID"`
	Credentials []AccessCredential `gorm:"foreignKey:GalleryID"`
}

// GalleryImage 定义集合内的单张图片，只保存存储 key 与展示属性。
type GalleryImage struct {
	gorm.Model
	GalleryID uint   `gorm:"index;not null"`
	ObjectKey string `gorm:"size:500;not null"`
	AltText   string `gorm:"size:255"`
	SortOrder int    `gorm:"default:0"`
}
