package models

import (
	"time"

	"gorm.io/gorm"
)

// Transaction 交易记录模型
// 金额采用带符号单值约定：收入为正，支出为负，余额即 initial_value + SUM(amount)
// CreatedAt 即交易时间，创建后不可修改
type Transaction struct {
	ID         uint                 `json:"id" gorm:"primaryKey"`
	Note       string               `json:"note" gorm:"size:100"`
	Amount     float64              `json:"amount" gorm:"type:decimal(10,2);not null"`
	Currency   string               `json:"currency" gorm:"size:3;not null"` // 必须与所属钱包币种一致
	WalletID   uint                 `json:"wallet_id" gorm:"index;not null"`
	UserID     uint                 `json:"user_id" gorm:"index;not null"` // 创建者
	CategoryID *uint                `json:"category_id" gorm:"index"`
	CreatedAt  time.Time            `json:"created_at"`
	UpdatedAt  time.Time            `json:"updated_at"`
	DeletedAt  gorm.DeletedAt       `json:"-" gorm:"index"`
	Wallet     Wallet               `json:"-" gorm:"foreignKey:WalletID;constraint:OnDelete:CASCADE"`
	User       User                 `json:"-" gorm:"foreignKey:UserID"`
	Category   *TransactionCategory `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
	Tags       []TransactionTag     `json:"tags" gorm:"many2many:transaction_tag_links;"`
}

// TableName 设置表名
func (Transaction) TableName() string {
	return "transactions"
}
