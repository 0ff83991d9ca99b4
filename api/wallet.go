package api

import (
	"strconv"
	"strings"

	"walletbook/database"
	"walletbook/middleware"
	"walletbook/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// WalletHandler 钱包处理器
type WalletHandler struct{}

// NewWalletHandler 创建钱包处理器
func NewWalletHandler() *WalletHandler {
	return &WalletHandler{}
}

// CreateWalletRequest 创建钱包请求
type CreateWalletRequest struct {
	Name         string  `json:"name" binding:"required,min=1,max=100" example:"Monthly Budget"`
	InitialValue float64 `json:"initial_value" example:"1000.00"`
	Currency     string  `json:"currency" binding:"required,oneof=usd eur gbp pln" example:"usd"`
}

// UpdateWalletRequest 更新钱包请求
type UpdateWalletRequest struct {
	Name         string   `json:"name" binding:"omitempty,min=1,max=100" example:"Monthly Budget"`
	InitialValue *float64 `json:"initial_value" example:"1000.00"`
	Currency     string   `json:"currency" binding:"omitempty,oneof=usd eur gbp pln" example:"usd"`
}

// WalletResponse 钱包响应，附带实时计算的余额
type WalletResponse struct {
	models.Wallet
	Balance float64 `json:"balance"`
}

// computeBalance 计算钱包当前余额
// 余额 = initial_value + SUM(amount)，每次读取都重新聚合，从不缓存或落库
// 金额带符号：收入为正，支出为负
func computeBalance(wallet *models.Wallet) (float64, error) {
	var total float64
	err := database.DB.Model(&models.Transaction{}).
		Where("wallet_id = ?", wallet.ID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return wallet.InitialValue + total, nil
}

// List 获取当前用户的钱包列表
// @Summary 获取钱包列表
// @Description 获取当前用户的全部钱包，每个钱包附带实时计算的余额
// @Tags 钱包
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]WalletResponse} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/wallets [get]
func (h *WalletHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var wallets []models.Wallet
	if err := database.DB.Where("user_id = ?", userID).Order("id ASC").Find(&wallets).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	list := make([]WalletResponse, 0, len(wallets))
	for i := range wallets {
		balance, err := computeBalance(&wallets[i])
		if err != nil {
			InternalError(c, SafeErrorMessage(err, "余额计算失败"))
			return
		}
		list = append(list, WalletResponse{Wallet: wallets[i], Balance: balance})
	}

	Success(c, list)
}

// Create 创建钱包
// @Summary 创建钱包
// @Description 为当前用户创建一个新钱包，币种限定 usd/eur/gbp/pln
// @Tags 钱包
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateWalletRequest true "钱包信息"
// @Success 200 {object} Response{data=WalletResponse} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/wallets [post]
func (h *WalletHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		BadRequest(c, "钱包名称不能为空")
		return
	}

	wallet := models.Wallet{
		Name:         req.Name,
		UserID:       userID,
		InitialValue: req.InitialValue,
		Currency:     req.Currency,
	}

	if err := database.DB.Create(&wallet).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建钱包失败"))
		return
	}

	SuccessWithMessage(c, "创建成功", WalletResponse{Wallet: wallet, Balance: wallet.InitialValue})
}

// Get 获取单个钱包
// @Summary 获取钱包详情
// @Description 根据ID获取钱包详情及实时余额；钱包不存在或归属他人均返回 404
// @Tags 钱包
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "钱包ID"
// @Success 200 {object} Response{data=WalletResponse} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "钱包不存在"
// @Router /api/v1/wallets/{id} [get]
func (h *WalletHandler) Get(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	wallet, err := findOwnedWallet(userID, uint(id))
	if err != nil {
		NotFound(c, "钱包不存在")
		return
	}

	balance, err := computeBalance(wallet)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "余额计算失败"))
		return
	}

	Success(c, WalletResponse{Wallet: *wallet, Balance: balance})
}

// Update 更新钱包
// @Summary 更新钱包
// @Description 更新钱包名称、初始金额或币种；已有交易的钱包不允许改币种
// @Tags 钱包
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "钱包ID"
// @Param request body UpdateWalletRequest true "钱包信息"
// @Success 200 {object} Response{data=WalletResponse} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "钱包不存在"
// @Router /api/v1/wallets/{id} [put]
func (h *WalletHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	// 写路径同样先验证归属
	wallet, err := findOwnedWallet(userID, uint(id))
	if err != nil {
		NotFound(c, "钱包不存在")
		return
	}

	var req UpdateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		name := strings.TrimSpace(req.Name)
		if name == "" {
			BadRequest(c, "钱包名称不能为空")
			return
		}
		updates["name"] = name
	}
	if req.InitialValue != nil {
		updates["initial_value"] = *req.InitialValue
	}
	if req.Currency != "" && req.Currency != wallet.Currency {
		if !models.IsValidCurrency(req.Currency) {
			BadRequest(c, "不支持的币种: "+req.Currency)
			return
		}
		// 有交易后改币种会破坏"交易币种 == 钱包币种"的约束
		var txnCount int64
		if err := database.DB.Model(&models.Transaction{}).Where("wallet_id = ?", wallet.ID).Count(&txnCount).Error; err != nil {
			InternalError(c, SafeErrorMessage(err, "查询失败"))
			return
		}
		if txnCount > 0 {
			BadRequest(c, "钱包已有交易记录，不允许修改币种")
			return
		}
		updates["currency"] = req.Currency
	}

	if len(updates) > 0 {
		if err := database.DB.Model(wallet).Updates(updates).Error; err != nil {
			InternalError(c, SafeErrorMessage(err, "更新失败"))
			return
		}
	}

	// 重新获取更新后的记录
	if err := database.DB.First(wallet, wallet.ID).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	balance, err := computeBalance(wallet)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "余额计算失败"))
		return
	}

	SuccessWithMessage(c, "更新成功", WalletResponse{Wallet: *wallet, Balance: balance})
}

// Delete 删除钱包
// @Summary 删除钱包
// @Description 删除钱包并级联删除其全部交易记录，两者在同一事务中完成
// @Tags 钱包
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "钱包ID"
// @Success 200 {object} Response "删除成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "钱包不存在"
// @Router /api/v1/wallets/{id} [delete]
func (h *WalletHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	wallet, err := findOwnedWallet(userID, uint(id))
	if err != nil {
		NotFound(c, "钱包不存在")
		return
	}

	// 级联删除必须原子：交易和钱包要么都删，要么都不删
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("wallet_id = ?", wallet.ID).Delete(&models.Transaction{}).Error; err != nil {
			return err
		}
		return tx.Delete(wallet).Error
	})
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "删除失败"))
		return
	}

	SuccessWithMessage(c, "删除成功", nil)
}
