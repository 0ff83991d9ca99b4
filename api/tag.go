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

// TagHandler 交易标签处理器（用户私有）
// 与类别不同：标签没有归档概念，删除即硬删除
type TagHandler struct{}

// NewTagHandler 创建交易标签处理器
func NewTagHandler() *TagHandler {
	return &TagHandler{}
}

// CreateTagRequest 创建标签请求
type CreateTagRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=50" example:"vacation"`
	Icon  string `json:"icon" binding:"omitempty,max=50" example:"plane"`
	Color string `json:"color" binding:"omitempty,max=20" example:"#0284C7"`
}

// UpdateTagRequest 更新标签请求
type UpdateTagRequest struct {
	Name      string  `json:"name" binding:"omitempty,min=1,max=50" example:"vacation"`
	Icon      *string `json:"icon" binding:"omitempty,max=50" example:"plane"`
	Color     *string `json:"color" binding:"omitempty,max=20" example:"#0284C7"`
	IsVisible *bool   `json:"is_visible" example:"true"`
}

// TagResponse 标签响应，附带打了该标签的交易数
type TagResponse struct {
	models.TransactionTag
	TransactionCount int64 `json:"transaction_count"`
}

// List 获取标签列表
// @Summary 获取标签列表
// @Description 获取当前用户的标签列表；is_visible=false 的标签仅在 include_hidden=true 时返回
// @Tags 标签
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param include_hidden query bool false "是否包含隐藏标签" default(false)
// @Success 200 {object} Response{data=[]TagResponse} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/tags [get]
func (h *TagHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	includeHidden := strings.EqualFold(c.DefaultQuery("include_hidden", "false"), "true")

	query := database.DB.Model(&models.TransactionTag{}).Where("user_id = ?", userID)
	if !includeHidden {
		query = query.Where("is_visible = ?", true)
	}

	var tags []models.TransactionTag
	if err := query.Order("id ASC").Find(&tags).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	// 统计只数未软删除的交易，关联关系本身不带删除标记
	list := make([]TagResponse, 0, len(tags))
	for i := range tags {
		var count int64
		if err := database.DB.Model(&models.Transaction{}).
			Joins("JOIN transaction_tag_links ON transaction_tag_links.transaction_id = transactions.id").
			Where("transaction_tag_links.transaction_tag_id = ?", tags[i].ID).
			Count(&count).Error; err != nil {
			InternalError(c, SafeErrorMessage(err, "查询失败"))
			return
		}
		list = append(list, TagResponse{TransactionTag: tags[i], TransactionCount: count})
	}

	Success(c, list)
}

// Create 创建标签
// @Summary 创建标签
// @Description 创建一个新标签；同一用户下标签名称唯一，重名返回 409
// @Tags 标签
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTagRequest true "标签信息"
// @Success 200 {object} Response{data=models.TransactionTag} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Failure 409 {object} Response "标签名称已存在"
// @Router /api/v1/tags [post]
func (h *TagHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		BadRequest(c, "名称不能为空")
		return
	}

	var existing models.TransactionTag
	if err := database.DB.Where("user_id = ? AND name = ?", userID, req.Name).First(&existing).Error; err == nil {
		Conflict(c, "标签名称已存在")
		return
	}

	color := req.Color
	if color == "" {
		color = "#64748b" // 默认灰色
	}
	tag := models.TransactionTag{
		UserID:    userID,
		Name:      req.Name,
		Icon:      req.Icon,
		Color:     color,
		IsVisible: true,
	}
	if err := database.DB.Create(&tag).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建失败"))
		return
	}

	SuccessWithMessage(c, "创建成功", tag)
}

// Update 更新标签
// @Summary 更新标签
// @Description 更新标签名称、图标、颜色或可见性
// @Tags 标签
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "标签ID"
// @Param request body UpdateTagRequest true "标签信息"
// @Success 200 {object} Response{data=models.TransactionTag} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "标签不存在"
// @Failure 409 {object} Response "标签名称已存在"
// @Router /api/v1/tags/{id} [put]
func (h *TagHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	tag, err := findOwnedTag(userID, uint(id))
	if err != nil {
		NotFound(c, "标签不存在")
		return
	}

	var req UpdateTagRequest
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
		if name != tag.Name {
			var existing models.TransactionTag
			if err := database.DB.Where("user_id = ? AND name = ? AND id != ?", userID, name, tag.ID).First(&existing).Error; err == nil {
				Conflict(c, "标签名称已存在")
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
		SuccessWithMessage(c, "无需更新", tag)
		return
	}

	if err := database.DB.Model(tag).Updates(updates).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "更新失败"))
		return
	}
	if err := database.DB.First(tag, tag.ID).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	SuccessWithMessage(c, "更新成功", tag)
}

// Delete 删除标签（硬删除）
// @Summary 删除标签
// @Description 硬删除标签，同时移除其与交易的关联关系
// @Tags 标签
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "标签ID"
// @Success 200 {object} Response "删除成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "标签不存在"
// @Router /api/v1/tags/{id} [delete]
func (h *TagHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	tag, err := findOwnedTag(userID, uint(id))
	if err != nil {
		NotFound(c, "标签不存在")
		return
	}

	// 关联关系和标签本身在同一事务中删除
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM transaction_tag_links WHERE transaction_tag_id = ?", tag.ID).Error; err != nil {
			return err
		}
		return tx.Delete(tag).Error
	})
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "删除失败"))
		return
	}

	SuccessWithMessage(c, "删除成功", nil)
}
