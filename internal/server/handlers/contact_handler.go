package handlers

import (
	"tech-site/internal/server/models"
	"tech-site/internal/server/repository"
	"tech-site/internal/shared/response"
	"tech-site/internal/shared/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ContactHandler 联系留言处理器
type ContactHandler struct {
	contacts *repository.ContactRepository
}

// NewContactHandler 创建联系留言处理器
func NewContactHandler(contacts *repository.ContactRepository) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

// ContactRequest 联系留言提交请求
type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Phone   string `json:"phone"`
	Message string `json:"message" binding:"required"`
}

// Create 提交联系留言，无需登录
func (h *ContactHandler) Create(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请提供姓名、邮箱和留言内容")
		return
	}
	if !utils.IsValidEmail(req.Email) {
		response.BadRequest(c, "邮箱格式不正确")
		return
	}
	if req.Phone != "" && !utils.IsValidPhone(req.Phone) {
		response.BadRequest(c, "手机号格式不正确")
		return
	}

	id, err := h.contacts.Create(c.Request.Context(), &models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	})
	if err != nil {
		logrus.WithError(err).Error("保存留言失败")
		response.InternalError(c, "留言提交失败")
		return
	}

	response.Created(c, "留言提交成功", gin.H{"id": id})
}

// List 获取留言列表
func (h *ContactHandler) List(c *gin.Context) {
	messages, err := h.contacts.GetAll(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("获取留言列表失败")
		response.InternalError(c, "获取留言列表失败")
		return
	}
	response.Success(c, "留言列表获取成功", messages)
}

// Get 获取留言详情
func (h *ContactHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的留言ID")
		return
	}

	message, err := h.contacts.GetByID(c.Request.Context(), id)
	if err != nil {
		if err == repository.ErrNotFound {
			response.NotFound(c, "未找到该留言")
			return
		}
		logrus.WithError(err).Error("获取留言失败")
		response.InternalError(c, "获取留言失败")
		return
	}
	response.Success(c, "留言获取成功", message)
}

// Delete 删除留言
func (h *ContactHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的留言ID")
		return
	}

	affected, err := h.contacts.Delete(c.Request.Context(), id)
	if err != nil {
		logrus.WithError(err).Error("删除留言失败")
		response.InternalError(c, "删除留言失败")
		return
	}
	if affected == 0 {
		response.NotFound(c, "未找到该留言")
		return
	}

	response.Success(c, "留言删除成功", gin.H{"id": id})
}
