package db

import "gorm.io/gorm"

// Client 定义工作室客户模型
type Client struct {
	gorm.Model
	Name  string `gorm:"not null"`
	Email string `gorm:"size:255;index"`
	Phone string `gorm:"size:50"`
	Notes string `gorm:"type:text"`
}
