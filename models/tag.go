package models

import (
	"time"
)

// TransactionTag 交易标签（用户私有），与交易为多对多关系，删除为硬删除
type TransactionTag struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_tag_user_name"`
	Name      string    `json:"name" gorm:"size:50;not null;uniqueIndex:idx_tag_user_name"`
	Icon      string    `json:"icon" gorm:"size:50"`
	Color     string    `json:"color" gorm:"size:20;default:#64748b"`
	IsVisible bool      `json:"is_visible" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	User      User      `json:"-" gorm:"foreignKey:UserID"`
}

// TableName 设置表名
func (TransactionTag) TableName() string {
	return "transaction_tags"
}
