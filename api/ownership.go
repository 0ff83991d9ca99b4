package api

import (
	"walletbook/database"
	"walletbook/models"
)

// 本文件统一所有"先验证归属，再操作"的查询
// 读路径和写路径使用同一组帮助函数，避免两边校验口径不一致
// 不存在与归属他人一律表现为 gorm.ErrRecordNotFound，调用方返回 404

// findOwnedWallet 按 (id, userID) 查找钱包
func findOwnedWallet(userID, walletID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := database.DB.Where("id = ? AND user_id = ?", walletID, userID).First(&wallet).Error; err != nil {
		return nil, err
	}
	return &wallet, nil
}

// findOwnedCategory 按 (id, userID) 查找类别（含归档类别，历史引用仍可解析）
func findOwnedCategory(userID, categoryID uint) (*models.TransactionCategory, error) {
	var cat models.TransactionCategory
	if err := database.DB.Where("id = ? AND user_id = ?", categoryID, userID).First(&cat).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

// findOwnedTag 按 (id, userID) 查找标签
func findOwnedTag(userID, tagID uint) (*models.TransactionTag, error) {
	var tag models.TransactionTag
	if err := database.DB.Where("id = ? AND user_id = ?", tagID, userID).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// findOwnedTags 批量查找标签并校验全部归属当前用户
// 第二个返回值为首个不归属（或不存在）的标签ID，用于错误提示
func findOwnedTags(userID uint, tagIDs []uint) ([]models.TransactionTag, *uint, error) {
	if len(tagIDs) == 0 {
		return nil, nil, nil
	}
	var tags []models.TransactionTag
	if err := database.DB.Where("user_id = ? AND id IN ?", userID, tagIDs).Find(&tags).Error; err != nil {
		return nil, nil, err
	}
	owned := make(map[uint]bool, len(tags))
	for _, tag := range tags {
		owned[tag.ID] = true
	}
	for _, id := range tagIDs {
		if !owned[id] {
			offending := id
			return nil, &offending, nil
		}
	}
	return tags, nil, nil
}

// findOwnedTransaction 通过钱包归属解析交易
// 账本以钱包为作用域：只要交易所在钱包归当前用户所有即可访问，不做单独的创建者校验
func findOwnedTransaction(userID, transactionID uint) (*models.Transaction, error) {
	ownedWallets := database.DB.Model(&models.Wallet{}).Select("id").Where("user_id = ?", userID)

	var txn models.Transaction
	if err := database.DB.
		Preload("Category").
		Preload("Tags").
		Where("id = ? AND wallet_id IN (?)", transactionID, ownedWallets).
		First(&txn).Error; err != nil {
		return nil, err
	}
	return &txn, nil
}
