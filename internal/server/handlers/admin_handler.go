package handlers

import (
	"tech-site/internal/server/repository"
	"tech-site/internal/shared/auth"
	"tech-site/internal/shared/response"
	"tech-site/internal/shared/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AdminHandler 管理员认证处理器
type AdminHandler struct {
	admins     *repository.AdminRepository
	jwtService *auth.JWTService
}

// NewAdminHandler 创建管理员处理器
func NewAdminHandler(admins *repository.AdminRepository, jwtService *auth.JWTService) *AdminHandler {
	return &AdminHandler{admins: admins, jwtService: jwtService}
}

// AdminLoginRequest 管理员登录请求
type AdminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	CurrentPassword    string `json:"currentPassword" binding:"required"`
	NewPassword        string `json:"newPassword" binding:"required"`
	ConfirmNewPassword string `json:"confirmNewPassword" binding:"required"`
}

// Login 管理员登录
func (h *AdminHandler) Login(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请提供用户名和密码")
		return
	}

	admin, err := h.admins.GetByUsername(c.Request.Context(), req.Username)
	if err != nil {
		if err == repository.ErrNotFound {
			response.Unauthorized(c, "用户名或密码错误")
			return
		}
		logrus.WithError(err).Error("查询管理员失败")
		response.InternalError(c, "登录失败：服务器内部错误")
		return
	}

	if !utils.CheckPassword(req.Password, admin.Password) {
		response.Unauthorized(c, "用户名或密码错误")
		return
	}

	token, err := h.jwtService.GenerateAdminToken(admin.ID, admin.Username)
	if err != nil {
		logrus.WithError(err).Error("签发管理员令牌失败")
		response.InternalError(c, "登录失败：服务器内部错误")
		return
	}

	response.Success(c, "登录成功", gin.H{
		"admin": gin.H{
			"id":       admin.ID,
			"username": admin.Username,
		},
		"token": token,
	})
}

// ChangePassword 修改当前管理员密码
func (h *AdminHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请提供当前密码、新密码和确认密码")
		return
	}

	if req.NewPassword != req.ConfirmNewPassword {
		response.BadRequest(c, "两次输入的新密码不一致")
		return
	}
	if len(req.NewPassword) < 6 {
		response.BadRequest(c, "新密码长度至少为6位")
		return
	}

	adminID := c.GetUint("admin_id")
	admin, err := h.admins.GetByID(c.Request.Context(), adminID)
	if err != nil {
		if err == repository.ErrNotFound {
			response.NotFound(c, "管理员不存在")
			return
		}
		logrus.WithError(err).Error("查询管理员失败")
		response.InternalError(c, "修改密码失败")
		return
	}

	if !utils.CheckPassword(req.CurrentPassword, admin.Password) {
		response.BadRequest(c, "当前密码错误")
		return
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		logrus.WithError(err).Error("密码哈希失败")
		response.InternalError(c, "修改密码失败")
		return
	}

	if _, err := h.admins.UpdatePassword(c.Request.Context(), admin.ID, hashed); err != nil {
		logrus.WithError(err).Error("更新管理员密码失败")
		response.InternalError(c, "修改密码失败")
		return
	}

	response.Success(c, "密码修改成功", nil)
}
