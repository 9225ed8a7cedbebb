package handlers

import (
	"strconv"

	"tech-site/internal/server/models"
	"tech-site/internal/server/repository"
	"tech-site/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// NewsHandler 新闻处理器
type NewsHandler struct {
	news *repository.NewsRepository
}

// NewNewsHandler 创建新闻处理器
func NewNewsHandler(news *repository.NewsRepository) *NewsHandler {
	return &NewsHandler{news: news}
}

// NewsRequest 新闻创建/更新请求
type NewsRequest struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content"`
	Author   string `json:"author"`
	ImageURL string `json:"image_url"`
}

// List 分页获取新闻列表
func (h *NewsHandler) List(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}

	items, total, err := h.news.GetAll(c.Request.Context(), page, limit)
	if err != nil {
		logrus.WithError(err).Error("获取新闻列表失败")
		response.InternalError(c, "获取新闻列表失败")
		return
	}

	response.Paged(c, "新闻列表获取成功", items, response.NewPagination(page, limit, total))
}

// Popular 获取热门新闻
func (h *NewsHandler) Popular(c *gin.Context) {
	items, err := h.news.GetPopular(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("获取热门新闻失败")
		response.InternalError(c, "获取热门新闻失败")
		return
	}
	response.Success(c, "热门新闻获取成功", items)
}

// Get 获取新闻详情，同时累加浏览次数
func (h *NewsHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的新闻ID")
		return
	}

	news, err := h.news.GetByID(c.Request.Context(), id)
	if err != nil {
		if err == repository.ErrNotFound {
			response.NotFound(c, "未找到该新闻")
			return
		}
		logrus.WithError(err).Error("获取新闻失败")
		response.InternalError(c, "获取新闻失败")
		return
	}

	if err := h.news.IncrementViews(c.Request.Context(), id); err != nil {
		logrus.WithError(err).Warn("更新新闻浏览次数失败")
	} else {
		news.Views++
	}

	response.Success(c, "新闻获取成功", news)
}

// Create 创建新闻
func (h *NewsHandler) Create(c *gin.Context) {
	var req NewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请提供新闻标题")
		return
	}

	id, err := h.news.Create(c.Request.Context(), &models.News{
		Title:    req.Title,
		Content:  req.Content,
		Author:   req.Author,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		logrus.WithError(err).Error("创建新闻失败")
		response.InternalError(c, "创建新闻失败")
		return
	}

	response.Created(c, "新闻创建成功", gin.H{"id": id})
}

// Update 更新新闻
func (h *NewsHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的新闻ID")
		return
	}

	var req NewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请提供新闻标题")
		return
	}

	if _, err := h.news.GetByID(c.Request.Context(), id); err != nil {
		if err == repository.ErrNotFound {
			response.NotFound(c, "未找到该新闻")
			return
		}
		logrus.WithError(err).Error("查询新闻失败")
		response.InternalError(c, "更新新闻失败")
		return
	}

	affected, err := h.news.Update(c.Request.Context(), id, &models.News{
		Title:    req.Title,
		Content:  req.Content,
		Author:   req.Author,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		logrus.WithError(err).Error("更新新闻失败")
		response.InternalError(c, "更新新闻失败")
		return
	}
	if affected == 0 {
		response.BadRequest(c, "更新新闻失败")
		return
	}

	response.Success(c, "新闻更新成功", gin.H{"id": id})
}

// Delete 删除新闻
func (h *NewsHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的新闻ID")
		return
	}

	if _, err := h.news.GetByID(c.Request.Context(), id); err != nil {
		if err == repository.ErrNotFound {
			response.NotFound(c, "未找到该新闻")
			return
		}
		logrus.WithError(err).Error("查询新闻失败")
		response.InternalError(c, "删除新闻失败")
		return
	}

	affected, err := h.news.Delete(c.Request.Context(), id)
	if err != nil {
		logrus.WithError(err).Error("删除新闻失败")
		response.InternalError(c, "删除新闻失败")
		return
	}
	if affected == 0 {
		response.BadRequest(c, "删除新闻失败")
		return
	}

	response.Success(c, "新闻删除成功", gin.H{"id": id})
}
