package models

import (
	"time"
)

// TransactionCategory 交易类别（用户私有），一笔交易最多归属一个类别
// 删除采用归档方式：is_archived 置 true，历史交易仍保留引用
type TransactionCategory struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_category_user_name"`
	Name       string    `json:"name" gorm:"size:50;not null;uniqueIndex:idx_category_user_name"`
	Icon       string    `json:"icon" gorm:"size:50"`
	Color      string    `json:"color" gorm:"size:20;default:#64748b"` // 颜色代码，如 #ef4444
	IsVisible  bool      `json:"is_visible" gorm:"default:true"`
	IsArchived bool      `json:"is_archived" gorm:"default:false;index"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	User       User      `json:"-" gorm:"foreignKey:UserID"`
}

// TableName 设置表名
func (TransactionCategory) TableName() string {
	return "transaction_categories"
}
