package service

import (
	"walletbook/models"

	"gorm.io/gorm"
)

// SeedDefaultCategories 为新用户复制默认类别模板
// 幂等：该用户已有的同名类别会被跳过，重复调用不会产生重复记录
// 在注册流程中属尽力而为的副作用，失败由调用方记录日志，不回滚用户创建
func SeedDefaultCategories(db *gorm.DB, userID uint) error {
	// 已有类别名集合（含归档），避免重复插入
	var existing []string
	if err := db.Model(&models.TransactionCategory{}).
		Where("user_id = ?", userID).
		Pluck("name", &existing).Error; err != nil {
		return err
	}
	have := make(map[string]bool, len(existing))
	for _, name := range existing {
		have[name] = true
	}

	var cats []models.TransactionCategory
	for _, tpl := range models.DefaultCategories {
		if have[tpl.Name] {
			continue
		}
		cats = append(cats, models.TransactionCategory{
			UserID:    userID,
			Name:      tpl.Name,
			Icon:      tpl.Icon,
			Color:     tpl.Color,
			IsVisible: true,
		})
	}
	if len(cats) == 0 {
		return nil
	}
	return db.Create(&cats).Error
}
