package handlers

import (
	"tech-site/internal/server/models"
	"tech-site/internal/server/repository"
	"tech-site/internal/shared/auth"
	"tech-site/internal/shared/response"
	"tech-site/internal/shared/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// UserHandler 客户用户处理器
type UserHandler struct {
	users      *repository.UserRepository
	jwtService *auth.JWTService
}

// NewUserHandler 创建客户用户处理器
func NewUserHandler(users *repository.UserRepository, jwtService *auth.JWTService) *UserHandler {
	return &UserHandler{users: users, jwtService: jwtService}
}

// RegisterRequest 用户注册请求
type RegisterRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserLoginRequest 用户登录请求
type UserLoginRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserUpdateRequest 用户资料更新请求
type UserUpdateRequest struct {
	Phone string `json:"phone" binding:"required"`
	Email string `json:"email" binding:"required"`
}

// Register 用户注册
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请提供手机号、邮箱和密码")
		return
	}
	if !utils.IsValidPhone(req.Phone) {
		response.BadRequest(c, "手机号格式不正确")
		return
	}
	if !utils.IsValidEmail(req.Email) {
		response.BadRequest(c, "邮箱格式不正确")
		return
	}
	if len(req.Password) < 6 {
		response.BadRequest(c, "密码长度不能少于6位")
		return
	}

	ctx := c.Request.Context()
	if _, err := h.users.GetByPhone(ctx, req.Phone); err == nil {
		response.BadRequest(c, "该手机号已被注册")
		return
	} else if err != repository.ErrNotFound {
		logrus.WithError(err).Error("查询用户失败")
		response.InternalError(c, "注册失败")
		return
	}
	if _, err := h.users.GetByEmail(ctx, req.Email); err == nil {
		response.BadRequest(c, "该邮箱已被注册")
		return
	} else if err != repository.ErrNotFound {
		logrus.WithError(err).Error("查询用户失败")
		response.InternalError(c, "注册失败")
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		logrus.WithError(err).Error("密码加密失败")
		response.InternalError(c, "注册失败")
		return
	}

	id, err := h.users.Create(ctx, &models.User{
		Phone:    req.Phone,
		Email:    req.Email,
		Password: hashed,
	})
	if err != nil {
		if err == repository.ErrDuplicate {
			response.BadRequest(c, "该手机号已被注册")
			return
		}
		logrus.WithError(err).Error("创建用户失败")
		response.InternalError(c, "注册失败")
		return
	}

	response.Created(c, "注册成功", gin.H{"id": id})
}

// Login 用户登录
func (h *UserHandler) Login(c *gin.Context) {
	var req UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请提供手机号和密码")
		return
	}

	user, err := h.users.GetByPhone(c.Request.Context(), req.Phone)
	if err != nil {
		if err == repository.ErrNotFound {
			response.Unauthorized(c, "手机号或密码错误")
			return
		}
		logrus.WithError(err).Error("查询用户失败")
		response.InternalError(c, "登录失败")
		return
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		response.Unauthorized(c, "手机号或密码错误")
		return
	}

	token, err := h.jwtService.GenerateUserToken(user.ID, user.Phone)
	if err != nil {
		logrus.WithError(err).Error("生成用户令牌失败")
		response.InternalError(c, "登录失败")
		return
	}

	response.Success(c, "登录成功", gin.H{
		"user": gin.H{
			"id":    user.ID,
			"phone": user.Phone,
			"email": user.Email,
		},
		"token": token,
	})
}

// List 获取用户列表
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.GetAll(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("获取用户列表失败")
		response.InternalError(c, "获取用户列表失败")
		return
	}
	response.Success(c, "用户列表获取成功", users)
}

// Get 获取用户详情
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的用户ID")
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		if err == repository.ErrNotFound {
			response.NotFound(c, "未找到该用户")
			return
		}
		logrus.WithError(err).Error("获取用户失败")
		response.InternalError(c, "获取用户失败")
		return
	}
	response.Success(c, "用户获取成功", user)
}

// Update 更新用户资料
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的用户ID")
		return
	}

	var req UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请提供手机号和邮箱")
		return
	}
	if !utils.IsValidPhone(req.Phone) {
		response.BadRequest(c, "手机号格式不正确")
		return
	}
	if !utils.IsValidEmail(req.Email) {
		response.BadRequest(c, "邮箱格式不正确")
		return
	}

	if _, err := h.users.GetByID(c.Request.Context(), id); err != nil {
		if err == repository.ErrNotFound {
			response.NotFound(c, "未找到该用户")
			return
		}
		logrus.WithError(err).Error("查询用户失败")
		response.InternalError(c, "更新用户失败")
		return
	}

	if _, err := h.users.Update(c.Request.Context(), id, req.Phone, req.Email); err != nil {
		if err == repository.ErrDuplicate {
			response.BadRequest(c, "手机号或邮箱已被其他用户使用")
			return
		}
		logrus.WithError(err).Error("更新用户失败")
		response.InternalError(c, "更新用户失败")
		return
	}

	response.Success(c, "用户更新成功", gin.H{"id": id})
}

// Delete 删除用户
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的用户ID")
		return
	}

	affected, err := h.users.Delete(c.Request.Context(), id)
	if err != nil {
		logrus.WithError(err).Error("删除用户失败")
		response.InternalError(c, "删除用户失败")
		return
	}
	if affected == 0 {
		response.NotFound(c, "未找到该用户")
		return
	}

	response.Success(c, "用户删除成功", gin.H{"id": id})
}

// Profile 当前登录用户信息
func (h *UserHandler) Profile(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), c.GetUint("user_id"))
	if err != nil {
		if err == repository.ErrNotFound {
			response.NotFound(c, "未找到该用户")
			return
		}
		logrus.WithError(err).Error("获取用户失败")
		response.InternalError(c, "获取用户失败")
		return
	}
	response.Success(c, "用户信息获取成功", user)
}
