package models

import (
	"time"

	"gorm.io/gorm"
)

// Wallet 钱包模型，一个用户可拥有多个钱包
type Wallet struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Name         string         `json:"name" gorm:"size:100;not null"`
	UserID       uint           `json:"user_id" gorm:"index;not null"`
	InitialValue float64        `json:"initial_value" gorm:"type:decimal(10,2);not null"`
	Currency     string         `json:"currency" gorm:"size:3;not null"` // usd/eur/gbp/pln
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
	User         User           `json:"-" gorm:"foreignKey:UserID"`
}

// TableName 设置表名
func (Wallet) TableName() string {
	return "wallets"
}
