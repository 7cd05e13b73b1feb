package db

import "gorm.io/gorm"

// Project 定义一次拍摄项目，可选归属某个客户。
type Project struct {
	gorm.Model
	Title       string `gorm:"not null"`
	Slug        string `gorm:"uniqueIndex;not null"`
	Category    string `gorm:"size:100;index"` // wedding, portrait, commercial ...
	Description string `gorm:"type:text"`
	ClientID    *uint  `gorm:"index"`

	Client *Client `gorm:"foreignKey:ClientID"`
}
