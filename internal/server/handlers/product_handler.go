package handlers

import (
	"tech-site/internal/server/models"
	"tech-site/internal/server/repository"
	"tech-site/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ProductHandler 产品处理器
type ProductHandler struct {
	products *repository.ProductRepository
}

// NewProductHandler 创建产品处理器
func NewProductHandler(products *repository.ProductRepository) *ProductHandler {
	return &ProductHandler{products: products}
}

// ProductRequest 产品创建/更新请求
type ProductRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
	ImageURL    string `json:"image_url"`
}

// List 获取产品列表，支持 ?category= 过滤
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.products.GetAll(c.Request.Context(), c.Query("category"))
	if err != nil {
		logrus.WithError(err).Error("获取产品列表失败")
		response.InternalError(c, "获取产品列表失败")
		return
	}
	response.Success(c, "产品列表获取成功", products)
}

// Get 获取产品详情
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的产品ID")
		return
	}

	product, err := h.products.GetByID(c.Request.Context(), id)
	if err != nil {
		if err == repository.ErrNotFound {
			response.NotFound(c, "未找到该产品")
			return
		}
		logrus.WithError(err).Error("获取产品失败")
		response.InternalError(c, "获取产品失败")
		return
	}
	response.Success(c, "产品获取成功", product)
}

// Create 创建产品
func (h *ProductHandler) Create(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请提供产品名称")
		return
	}

	id, err := h.products.Create(c.Request.Context(), &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		logrus.WithError(err).Error("创建产品失败")
		response.InternalError(c, "创建产品失败")
		return
	}

	response.Created(c, "产品创建成功", gin.H{"id": id})
}

// Update 更新产品
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的产品ID")
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请提供产品名称")
		return
	}

	if _, err := h.products.GetByID(c.Request.Context(), id); err != nil {
		if err == repository.ErrNotFound {
			response.NotFound(c, "未找到该产品")
			return
		}
		logrus.WithError(err).Error("查询产品失败")
		response.InternalError(c, "更新产品失败")
		return
	}

	affected, err := h.products.Update(c.Request.Context(), id, &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		logrus.WithError(err).Error("更新产品失败")
		response.InternalError(c, "更新产品失败")
		return
	}
	if affected == 0 {
		response.BadRequest(c, "更新产品失败")
		return
	}

	response.Success(c, "产品更新成功", gin.H{"id": id})
}

// Delete 删除产品
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的产品ID")
		return
	}

	if _, err := h.products.GetByID(c.Request.Context(), id); err != nil {
		if err == repository.ErrNotFound {
			response.NotFound(c, "未找到该产品")
			return
		}
		logrus.WithError(err).Error("查询产品失败")
		response.InternalError(c, "删除产品失败")
		return
	}

	affected, err := h.products.Delete(c.Request.Context(), id)
	if err != nil {
		logrus.WithError(err).Error("删除产品失败")
		response.InternalError(c, "删除产品失败")
		return
	}
	if affected == 0 {
		response.BadRequest(c, "删除产品失败")
		return
	}

	response.Success(c, "产品删除成功", gin.H{"id": id})
}
