package api

import (
	"strconv"
	"strings"

	"walletbook/database"
	"walletbook/middleware"
	"walletbook/models"

	"github.com/gin-gonic/gin"
)

// CategoryHandler 交易类别处理器（用户私有）
type CategoryHandler struct{}

// NewCategoryHandler 创建交易类别处理器
func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

// CreateCategoryRequest 创建类别请求
type CreateCategoryRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=50" example:"Groceries"`
	Icon  string `json:"icon" binding:"omitempty,max=50" example:"shopping-cart"`
	Color string `json:"color" binding:"omitempty,max=20" example:"#F97316"` // 颜色代码
}

// UpdateCategoryRequest 更新类别请求
type UpdateCategoryRequest struct {
	Name      string  `json:"name" binding:"omitempty,min=1,max=50" example:"Groceries"`
	Icon      *string `json:"icon" binding:"omitempty,max=50" example:"shopping-cart"`
	Color     *string `json:"color" binding:"omitempty,max=20" example:"#F97316"`
	IsVisible *bool   `json:"is_visible" example:"true"`
}

// CategoryResponse 类别响应，附带引用该类别的交易数
type CategoryResponse struct {
	models.TransactionCategory
	TransactionCount int64 `json:"transaction_count"`
}

// List 获取类别列表
// @Summary 获取类别列表
// @Description 获取当前用户的类别列表。已归档的类别始终不返回；is_visible=false 的类别仅在 include_hidden=true 时返回
// @Tags 类别
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param include_hidden query bool false "是否包含隐藏类别" default(false)
// @Success 200 {object} Response{data=[]CategoryResponse} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	includeHidden := strings.EqualFold(c.DefaultQuery("include_hidden", "false"), "true")

	query := database.DB.Model(&models.TransactionCategory{}).
		Where("user_id = ? AND is_archived = ?", userID, false)
	if !includeHidden {
		query = query.Where("is_visible = ?", true)
	}

	var cats []models.TransactionCategory
	if err := query.Order("id ASC").Find(&cats).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	list := make([]CategoryResponse, 0, len(cats))
	for i := range cats {
		var count int64
		if err := database.DB.Model(&models.Transaction{}).
			Where("category_id = ?", cats[i].ID).
			Count(&count).Error; err != nil {
			InternalError(c, SafeErrorMessage(err, "查询失败"))
			return
		}
		list = append(list, CategoryResponse{TransactionCategory: cats[i], TransactionCount: count})
	}

	Success(c, list)
}

// Create 创建类别
// @Summary 创建类别
// @Description 创建一个新类别；同一用户下类别名称唯一，重名返回 409
// @Tags 类别
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateCategoryRequest true "类别信息"
// @Success 200 {object} Response{data=models.TransactionCategory} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Failure 409 {object} Response "类别名称已存在"
// @Router /api/v1/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		BadRequest(c, "名称不能为空")
		return
	}

	// (user_id, name) 唯一，归档类别同样占用名称
	var existing models.TransactionCategory
	if err := database.DB.Where("user_id = ? AND name = ?", userID, req.Name).First(&existing).Error; err == nil {
		Conflict(c, "类别名称已存在")
		return
	}

	color := req.Color
	if color == "" {
		color = "#64748b" // 默认灰色
	}
	cat := models.TransactionCategory{
		UserID:    userID,
		Name:      req.Name,
		Icon:      req.Icon,
		Color:     color,
		IsVisible: true,
	}
	if err := database.DB.Create(&cat).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建失败"))
		return
	}

	SuccessWithMessage(c, "创建成功", cat)
}

// Update 更新类别
// @Summary 更新类别
// @Description 更新类别名称、图标、颜色或可见性
// @Tags 类别
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "类别ID"
// @Param request body UpdateCategoryRequest true "类别信息"
// @Success 200 {object} Response{data=models.TransactionCategory} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "类别不存在"
// @Failure 409 {object} Response "类别名称已存在"
// @Router /api/v1/categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	cat, err := findOwnedCategory(userID, uint(id))
	if err != nil {
		NotFound(c, "类别不存在")
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		name := strings.TrimSpace(req.Name)
		if name == "" {
			BadRequest(c, "名称不能为空")
			return
		}
		if name != cat.Name {
			var existing models.TransactionCategory
			if err := database.DB.Where("user_id = ? AND name = ? AND id != ?", userID, name, cat.ID).First(&existing).Error; err == nil {
				Conflict(c, "类别名称已存在")
				return
			}
			updates["name"] = name
		}
	}
	if req.Icon != nil {
		updates["icon"] = *req.Icon
	}
	if req.Color != nil {
		color := *req.Color
		if color == "" {
			color = "#64748b" // 默认灰色
		}
		updates["color"] = color
	}
	if req.IsVisible != nil {
		updates["is_visible"] = *req.IsVisible
	}
	if len(updates) == 0 {
		SuccessWithMessage(c, "无需更新", cat)
		return
	}

	if err := database.DB.Model(cat).Updates(updates).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "更新失败"))
		return
	}
	if err := database.DB.First(cat, cat.ID).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	SuccessWithMessage(c, "更新成功", cat)
}

// Archive 归档类别（软删除）
// @Summary 删除类别
// @Description 将类别标记为已归档。记录保留，引用该类别的历史交易不受影响
// @Tags 类别
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "类别ID"
// @Success 200 {object} Response "归档成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "类别不存在"
// @Router /api/v1/categories/{id} [delete]
func (h *CategoryHandler) Archive(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	cat, err := findOwnedCategory(userID, uint(id))
	if err != nil {
		NotFound(c, "类别不存在")
		return
	}

	// 只翻转归档标记，不动任何引用它的交易
	if err := database.DB.Model(cat).Update("is_archived", true).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "归档失败"))
		return
	}

	SuccessWithMessage(c, "归档成功", nil)
}
