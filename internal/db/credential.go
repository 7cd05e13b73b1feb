package db

import (
	"time"

	"gorm.io/gorm"
)

// AccessCredential 保存某个访问码的加盐哈希及其绑定的集合。
// 明文访问码从不落库，Hint 仅用于后台辨认（末 4 位）。
type AccessCredential struct {
	gorm.Model
	GalleryID uint       `gorm:"index;not null"`
	CodeHash  string     `gorm:"size:64;not null"`
	Salt      string     `gorm:"size:32;not null"`
	Hint      string     `gorm:"size:8"`
	ExpiresAt *time.Time `gorm:"index"`
	Active    bool       `gorm:"default:true;index"`

	Gallery *Gallery `gorm:"foreignKey:GalleryID"`
}
