package handlers

import (
	"tech-site/internal/server/models"
	"tech-site/internal/server/repository"
	"tech-site/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// GoodsHandler 商品处理器
type GoodsHandler struct {
	goods *repository.GoodsRepository
}

// NewGoodsHandler 创建商品处理器
func NewGoodsHandler(goods *repository.GoodsRepository) *GoodsHandler {
	return &GoodsHandler{goods: goods}
}

// GoodsRequest 商品创建/更新请求
type GoodsRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	Category    string          `json:"category"`
	ImageURL    string          `json:"image_url"`
}

func (r *GoodsRequest) toModel() *models.Goods {
	currency := r.Currency
	if currency == "" {
		currency = models.DefaultCurrency
	}
	return &models.Goods{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Currency:    currency,
		Category:    r.Category,
		ImageURL:    r.ImageURL,
	}
}

// List 获取商品列表，支持 ?category= 过滤
func (h *GoodsHandler) List(c *gin.Context) {
	goods, err := h.goods.GetAll(c.Request.Context(), c.Query("category"))
	if err != nil {
		logrus.WithError(err).Error("获取商品列表失败")
		response.InternalError(c, "获取商品列表失败")
		return
	}
	response.Success(c, "商品列表获取成功", goods)
}

// Get 获取商品详情
func (h *GoodsHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的商品ID")
		return
	}

	goods, err := h.goods.GetByID(c.Request.Context(), id)
	if err != nil {
		if err == repository.ErrNotFound {
			response.NotFound(c, "未找到该商品")
			return
		}
		logrus.WithError(err).Error("获取商品失败")
		response.InternalError(c, "获取商品失败")
		return
	}
	response.Success(c, "商品获取成功", goods)
}

// Create 创建商品
func (h *GoodsHandler) Create(c *gin.Context) {
	var req GoodsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请提供商品名称")
		return
	}
	if req.Price.IsNegative() {
		response.BadRequest(c, "商品价格不能为负数")
		return
	}

	id, err := h.goods.Create(c.Request.Context(), req.toModel())
	if err != nil {
		logrus.WithError(err).Error("创建商品失败")
		response.InternalError(c, "创建商品失败")
		return
	}

	response.Created(c, "商品创建成功", gin.H{"id": id})
}

// Update 更新商品
func (h *GoodsHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的商品ID")
		return
	}

	var req GoodsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请提供商品名称")
		return
	}
	if req.Price.IsNegative() {
		response.BadRequest(c, "商品价格不能为负数")
		return
	}

	if _, err := h.goods.GetByID(c.Request.Context(), id); err != nil {
		if err == repository.ErrNotFound {
			response.NotFound(c, "未找到该商品")
			return
		}
		logrus.WithError(err).Error("查询商品失败")
		response.InternalError(c, "更新商品失败")
		return
	}

	affected, err := h.goods.Update(c.Request.Context(), id, req.toModel())
	if err != nil {
		logrus.WithError(err).Error("更新商品失败")
		response.InternalError(c, "更新商品失败")
		return
	}
	if affected == 0 {
		response.BadRequest(c, "更新商品失败")
		return
	}

	response.Success(c, "商品更新成功", gin.H{"id": id})
}

// Delete 删除商品
func (h *GoodsHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的商品ID")
		return
	}

	if _, err := h.goods.GetByID(c.Request.Context(), id); err != nil {
		if err == repository.ErrNotFound {
			response.NotFound(c, "未找到该商品")
			return
		}
		logrus.WithError(err).Error("查询商品失败")
		response.InternalError(c, "删除商品失败")
		return
	}

	affected, err := h.goods.Delete(c.Request.Context(), id)
	if err != nil {
		logrus.WithError(err).Error("删除商品失败")
		response.InternalError(c, "删除商品失败")
		return
	}
	if affected == 0 {
		response.BadRequest(c, "删除商品失败")
		return
	}

	response.Success(c, "商品删除成功", gin.H{"id": id})
}
