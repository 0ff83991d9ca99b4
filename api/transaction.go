package api

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"walletbook/database"
	"walletbook/middleware"
	"walletbook/models"

	"github.com/gin-gonic/gin"
)

// TransactionHandler 交易记录处理器
type TransactionHandler struct{}

// NewTransactionHandler 创建交易记录处理器
func NewTransactionHandler() *TransactionHandler {
	return &TransactionHandler{}
}

// CreateTransactionRequest 创建交易请求
// 金额带符号：收入为正，支出为负；币种必须与钱包一致
type CreateTransactionRequest struct {
	WalletID   uint    `json:"wallet_id" example:"1"` // 直接创建时必填；嵌套路由下取路径参数
	Note       string  `json:"note" binding:"omitempty,max=100" example:"Weekly groceries"`
	Amount     float64 `json:"amount" binding:"required" example:"-150.50"`
	Currency   string  `json:"currency" binding:"required,oneof=usd eur gbp pln" example:"usd"`
	CategoryID *uint   `json:"category_id" example:"3"`
	TagIDs     []uint  `json:"tag_ids" example:"1,2"`
}

// OptionalUint 可区分"字段缺省"与"显式 null"的可选ID
// 缺省表示保持原值，显式 null 表示清空引用
type OptionalUint struct {
	Set   bool
	Value *uint
}

// UnmarshalJSON 实现 json.Unmarshaler
func (o *OptionalUint) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var v uint
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// UpdateTransactionRequest 更新交易请求
// category_id 传 null 表示清除类别，不传表示保持不变
type UpdateTransactionRequest struct {
	Note       *string      `json:"note" binding:"omitempty"`
	Amount     *float64     `json:"amount"`
	Currency   *string      `json:"currency" binding:"omitempty,oneof=usd eur gbp pln"`
	CategoryID OptionalUint `json:"category_id"`
	TagIDs     *[]uint      `json:"tag_ids"`
}

// validateAndBuild 校验交易输入并组装模型，任何校验失败前都不写库
// 校验顺序：币种一致性 -> 类别归属 -> 标签归属
func validateAndBuild(userID uint, wallet *models.Wallet, req *CreateTransactionRequest) (*models.Transaction, string) {
	if req.Currency != wallet.Currency {
		return nil, fmt.Sprintf("币种不匹配：交易币种 %s 与钱包币种 %s 不一致", req.Currency, wallet.Currency)
	}

	txn := models.Transaction{
		Note:     req.Note,
		Amount:   req.Amount,
		Currency: req.Currency,
		WalletID: wallet.ID,
		UserID:   userID,
	}

	if req.CategoryID != nil {
		cat, err := findOwnedCategory(userID, *req.CategoryID)
		if err != nil {
			return nil, "类别不存在或不属于当前用户"
		}
		if cat.IsArchived {
			return nil, "类别已归档，不能用于新交易"
		}
		txn.CategoryID = req.CategoryID
		txn.Category = cat
	}

	tags, offending, err := findOwnedTags(userID, req.TagIDs)
	if err != nil {
		return nil, "标签查询失败"
	}
	if offending != nil {
		return nil, fmt.Sprintf("标签 %d 不存在或不属于当前用户", *offending)
	}
	txn.Tags = tags

	return &txn, ""
}

// createForWallet 面向已确认归属的钱包落库交易
func (h *TransactionHandler) createForWallet(c *gin.Context, userID uint, wallet *models.Wallet, req *CreateTransactionRequest) {
	txn, msg := validateAndBuild(userID, wallet, req)
	if msg != "" {
		BadRequest(c, msg)
		return
	}

	if err := database.DB.Create(txn).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建交易失败"))
		return
	}

	SuccessWithMessage(c, "创建成功", txn)
}

// CreateInWallet 在指定钱包下创建交易
// @Summary 创建交易（钱包路由）
// @Description 在指定钱包下创建一笔交易。交易币种必须与钱包一致，类别与标签必须属于当前用户
// @Tags 交易
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "钱包ID"
// @Param request body CreateTransactionRequest true "交易信息"
// @Success 200 {object} Response{data=models.Transaction} "创建成功"
// @Failure 400 {object} Response "校验失败（币种不匹配、类别/标签不归属当前用户等）"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "钱包不存在"
// @Router /api/v1/wallets/{id}/transactions [post]
func (h *TransactionHandler) CreateInWallet(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	walletID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的钱包ID")
		return
	}

	wallet, err := findOwnedWallet(userID, uint(walletID))
	if err != nil {
		NotFound(c, "钱包不存在")
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	h.createForWallet(c, userID, wallet, &req)
}

// Create 直接创建交易（请求体中携带钱包ID）
// @Summary 创建交易
// @Description 创建一笔交易，wallet_id 必填且必须是当前用户的钱包
// @Tags 交易
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTransactionRequest true "交易信息"
// @Success 200 {object} Response{data=models.Transaction} "创建成功"
// @Failure 400 {object} Response "校验失败"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "钱包不存在"
// @Router /api/v1/transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}
	if req.WalletID == 0 {
		BadRequest(c, "wallet_id 必填")
		return
	}

	wallet, err := findOwnedWallet(userID, req.WalletID)
	if err != nil {
		NotFound(c, "钱包不存在")
		return
	}

	h.createForWallet(c, userID, wallet, &req)
}

// ListByWallet 获取钱包在指定月份的交易列表
// @Summary 获取交易列表
// @Description 获取指定钱包在某个自然月内的交易记录，month/year 缺省为当前月份
// @Tags 交易
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "钱包ID"
// @Param month query int false "月份 (1-12)，默认当前月"
// @Param year query int false "年份，默认当前年"
// @Success 200 {object} Response{data=[]models.Transaction} "获取成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "钱包不存在"
// @Router /api/v1/wallets/{id}/transactions [get]
func (h *TransactionHandler) ListByWallet(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	walletID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的钱包ID")
		return
	}

	wallet, err := findOwnedWallet(userID, uint(walletID))
	if err != nil {
		NotFound(c, "钱包不存在")
		return
	}

	// month/year 缺省取当前日期
	now := time.Now()
	month := int(now.Month())
	year := now.Year()
	if s := c.Query("month"); s != "" {
		month, err = strconv.Atoi(s)
		if err != nil || month < 1 || month > 12 {
			BadRequest(c, "month 参数错误，应为 1-12")
			return
		}
	}
	if s := c.Query("year"); s != "" {
		year, err = strconv.Atoi(s)
		if err != nil || year < 2000 || year > 2100 {
			BadRequest(c, "year 参数错误，应为4位数字（如：2025）")
			return
		}
	}

	// 自然月窗口 [该月第一天, 下月第一天)
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0)

	var list []models.Transaction
	if err := database.DB.
		Preload("Category").
		Preload("Tags").
		Where("wallet_id = ? AND created_at >= ? AND created_at < ?", wallet.ID, start, end).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	Success(c, list)
}

// Get 获取单笔交易
// @Summary 获取交易详情
// @Description 根据ID获取交易详情，通过钱包归属解析：只有钱包属于当前用户才可见
// @Tags 交易
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "交易ID"
// @Success 200 {object} Response{data=models.Transaction} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "交易不存在"
// @Router /api/v1/transactions/{id} [get]
func (h *TransactionHandler) Get(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	txn, err := findOwnedTransaction(userID, uint(id))
	if err != nil {
		NotFound(c, "交易不存在")
		return
	}

	Success(c, txn)
}

// Update 更新交易
// @Summary 更新交易
// @Description 更新交易内容并按所属钱包重新校验币种/类别/标签；category_id 传 null 清除类别，不传保持不变；创建时间不可修改
// @Tags 交易
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "交易ID"
// @Param request body UpdateTransactionRequest true "交易信息"
// @Success 200 {object} Response{data=models.Transaction} "更新成功"
// @Failure 400 {object} Response "校验失败"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "交易不存在"
// @Router /api/v1/transactions/{id} [put]
func (h *TransactionHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	txn, err := findOwnedTransaction(userID, uint(id))
	if err != nil {
		NotFound(c, "交易不存在")
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	// 所有校验针对交易现有钱包，全部通过后才写库
	var wallet models.Wallet
	if err := database.DB.First(&wallet, txn.WalletID).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询钱包失败"))
		return
	}

	updates := make(map[string]interface{})
	if req.Note != nil {
		updates["note"] = *req.Note
	}
	if req.Amount != nil {
		updates["amount"] = *req.Amount
	}
	if req.Currency != nil {
		if *req.Currency != wallet.Currency {
			BadRequest(c, fmt.Sprintf("币种不匹配：交易币种 %s 与钱包币种 %s 不一致", *req.Currency, wallet.Currency))
			return
		}
		updates["currency"] = *req.Currency
	}
	if req.CategoryID.Set {
		if req.CategoryID.Value == nil {
			// 显式 null：清除类别引用
			updates["category_id"] = nil
		} else {
			cat, err := findOwnedCategory(userID, *req.CategoryID.Value)
			if err != nil {
				BadRequest(c, "类别不存在或不属于当前用户")
				return
			}
			if cat.IsArchived {
				BadRequest(c, "类别已归档，不能用于交易")
				return
			}
			updates["category_id"] = *req.CategoryID.Value
		}
	}

	var newTags []models.TransactionTag
	replaceTags := false
	if req.TagIDs != nil {
		tags, offending, err := findOwnedTags(userID, *req.TagIDs)
		if err != nil {
			InternalError(c, SafeErrorMessage(err, "标签查询失败"))
			return
		}
		if offending != nil {
			BadRequest(c, fmt.Sprintf("标签 %d 不存在或不属于当前用户", *offending))
			return
		}
		newTags = tags
		replaceTags = true
	}

	if len(updates) > 0 {
		// 不能用带预加载关联的 txn 作为 Model，否则 gorm 会先回写关联记录
		if err := database.DB.Model(&models.Transaction{}).Where("id = ?", txn.ID).Updates(updates).Error; err != nil {
			InternalError(c, SafeErrorMessage(err, "更新失败"))
			return
		}
	}
	if replaceTags {
		if err := database.DB.Model(txn).Association("Tags").Replace(newTags); err != nil {
			InternalError(c, SafeErrorMessage(err, "更新标签失败"))
			return
		}
	}

	// 重新获取更新后的记录
	fresh, err := findOwnedTransaction(userID, txn.ID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	SuccessWithMessage(c, "更新成功", fresh)
}

// Delete 删除交易
// @Summary 删除交易
// @Description 删除指定交易，通过钱包归属解析权限
// @Tags 交易
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "交易ID"
// @Success 200 {object} Response "删除成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "交易不存在"
// @Router /api/v1/transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	txn, err := findOwnedTransaction(userID, uint(id))
	if err != nil {
		NotFound(c, "交易不存在")
		return
	}

	if err := database.DB.Delete(txn).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "删除失败"))
		return
	}

	SuccessWithMessage(c, "删除成功", nil)
}
