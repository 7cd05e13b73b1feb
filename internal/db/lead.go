package db

import "gorm.io/gorm"

const (
	// LeadStatusNew 表示尚未跟进的新询单。
	LeadStatusNew = "new"
	// LeadStatusContacted 表示已联系过的询单。
	LeadStatusContacted = "contacted"
)

// Lead 定义联系表单提交的询单，仅创建对公众开放，流转由后台完成。
type Lead struct {
	gorm.Model
	Name    string `gorm:"size:120;not null"`
	Email   string `gorm:"size:255;not null"`
	Phone   string `gorm:"size:50"`
	Message string `gorm:"type:text"`
	Status  string `gorm:"size:20;default:new;index"`
	Notes   string `gorm:"type:text"`
}
