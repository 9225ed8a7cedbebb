package handlers

import (
	"encoding/json"
	"sort"
	"strings"

	"tech-site/internal/server/models"
	"tech-site/internal/server/repository"
	"tech-site/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CategoryHandler 分类处理器
type CategoryHandler struct {
	categories *repository.CategoryRepository
	products   *repository.ProductRepository
	goods      *repository.GoodsRepository
}

// NewCategoryHandler 创建分类处理器
func NewCategoryHandler(categories *repository.CategoryRepository, products *repository.ProductRepository, goods *repository.GoodsRepository) *CategoryHandler {
	return &CategoryHandler{categories: categories, products: products, goods: goods}
}

// CategoryRequest 分类创建/更新请求
type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CategoryItem 批量替换时的单个分类，兼容纯字符串和对象两种写法
type CategoryItem struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UnmarshalJSON 既接受 "名称" 也接受 {"name": "...", "description": "..."}
func (it *CategoryItem) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		it.Name = name
		it.Description = ""
		return nil
	}

	type plain CategoryItem
	var obj plain
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*it = CategoryItem(obj)
	return nil
}

// List 获取分类列表
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categories.GetAll(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("获取分类列表失败")
		response.InternalError(c, "获取分类列表失败")
		return
	}
	response.Success(c, "分类列表获取成功", categories)
}

// Create 创建分类，名称重复时返回400
func (h *CategoryHandler) Create(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请提供分类名称")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		response.BadRequest(c, "请提供分类名称")
		return
	}

	if _, err := h.categories.GetByName(c.Request.Context(), name); err == nil {
		response.BadRequest(c, "该分类已存在")
		return
	} else if err != repository.ErrNotFound {
		logrus.WithError(err).Error("查询分类失败")
		response.InternalError(c, "创建分类失败")
		return
	}

	id, err := h.categories.Create(c.Request.Context(), &models.Category{
		Name:        name,
		Description: req.Description,
	})
	if err != nil {
		if err == repository.ErrDuplicate {
			response.BadRequest(c, "该分类已存在")
			return
		}
		logrus.WithError(err).Error("创建分类失败")
		response.InternalError(c, "创建分类失败")
		return
	}

	response.Created(c, "分类创建成功", gin.H{"id": id})
}

// Update 更新分类
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的分类ID")
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请提供分类名称")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		response.BadRequest(c, "请提供分类名称")
		return
	}

	existing, err := h.categories.GetByID(c.Request.Context(), id)
	if err != nil {
		if err == repository.ErrNotFound {
			response.NotFound(c, "未找到该分类")
			return
		}
		logrus.WithError(err).Error("查询分类失败")
		response.InternalError(c, "更新分类失败")
		return
	}

	if name != existing.Name {
		if _, err := h.categories.GetByName(c.Request.Context(), name); err == nil {
			response.BadRequest(c, "该分类已存在")
			return
		} else if err != repository.ErrNotFound {
			logrus.WithError(err).Error("查询分类失败")
			response.InternalError(c, "更新分类失败")
			return
		}
	}

	if _, err := h.categories.Update(c.Request.Context(), id, &models.Category{
		Name:        name,
		Description: req.Description,
	}); err != nil {
		if err == repository.ErrDuplicate {
			response.BadRequest(c, "该分类已存在")
			return
		}
		logrus.WithError(err).Error("更新分类失败")
		response.InternalError(c, "更新分类失败")
		return
	}

	response.Success(c, "分类更新成功", gin.H{"id": id})
}

// Delete 删除分类
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的分类ID")
		return
	}

	affected, err := h.categories.Delete(c.Request.Context(), id)
	if err != nil {
		logrus.WithError(err).Error("删除分类失败")
		response.InternalError(c, "删除分类失败")
		return
	}
	if affected == 0 {
		response.NotFound(c, "未找到该分类")
		return
	}

	response.Success(c, "分类删除成功", gin.H{"id": id})
}

// ReplaceAll 用请求体整体替换分类表
func (h *CategoryHandler) ReplaceAll(c *gin.Context) {
	var items []CategoryItem
	if err := c.ShouldBindJSON(&items); err != nil {
		response.BadRequest(c, "请提供分类数组")
		return
	}

	categories := make([]models.Category, 0, len(items))
	for _, it := range items {
		name := strings.TrimSpace(it.Name)
		if name == "" {
			continue
		}
		categories = append(categories, models.Category{Name: name, Description: it.Description})
	}

	count, err := h.categories.ReplaceAll(c.Request.Context(), categories)
	if err != nil {
		logrus.WithError(err).Error("替换分类失败")
		response.InternalError(c, "替换分类失败")
		return
	}

	response.Success(c, "分类替换成功", gin.H{"count": count})
}

// Sync 从产品和商品中收集分类名称并重建分类表
func (h *CategoryHandler) Sync(c *gin.Context) {
	ctx := c.Request.Context()

	fromProducts, err := h.products.Categories(ctx)
	if err != nil {
		logrus.WithError(err).Error("收集产品分类失败")
		response.InternalError(c, "同步分类失败")
		return
	}
	fromGoods, err := h.goods.Categories(ctx)
	if err != nil {
		logrus.WithError(err).Error("收集商品分类失败")
		response.InternalError(c, "同步分类失败")
		return
	}

	seen := make(map[string]struct{})
	names := make([]string, 0, len(fromProducts)+len(fromGoods))
	for _, name := range append(fromProducts, fromGoods...) {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)

	categories := make([]models.Category, 0, len(names))
	for _, name := range names {
		categories = append(categories, models.Category{Name: name})
	}

	count, err := h.categories.ReplaceAll(ctx, categories)
	if err != nil {
		logrus.WithError(err).Error("同步分类失败")
		response.InternalError(c, "同步分类失败")
		return
	}

	response.Success(c, "分类同步成功", gin.H{"count": count, "categories": names})
}
