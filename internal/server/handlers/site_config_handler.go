package handlers

import (
	"tech-site/internal/server/models"
	"tech-site/internal/server/repository"
	"tech-site/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// SiteConfigHandler 网站配置处理器
type SiteConfigHandler struct {
	siteConfig *repository.SiteConfigRepository
}

// NewSiteConfigHandler 创建网站配置处理器
func NewSiteConfigHandler(siteConfig *repository.SiteConfigRepository) *SiteConfigHandler {
	return &SiteConfigHandler{siteConfig: siteConfig}
}

// SiteConfigRequest 网站配置更新请求
type SiteConfigRequest struct {
	CompanyName        string              `json:"company_name" binding:"required"`
	SiteURL            string              `json:"site_url"`
	ICPNumber          string              `json:"icp_number"`
	PoliceNumber       string              `json:"police_number"`
	CopyrightInfo      string              `json:"copyright_info"`
	CompanyDescription string              `json:"company_description"`
	SEOKeywords        string              `json:"seo_keywords"`
	SiteTitle          string              `json:"site_title"`
	FriendLinks        []models.FriendLink `json:"friend_links"`
}

// Get 获取网站配置，无需登录
func (h *SiteConfigHandler) Get(c *gin.Context) {
	cfg, err := h.siteConfig.Get(c.Request.Context())
	if err != nil {
		if err == repository.ErrNotFound {
			response.NotFound(c, "网站配置不存在")
			return
		}
		logrus.WithError(err).Error("获取网站配置失败")
		response.InternalError(c, "获取网站配置失败")
		return
	}
	response.Success(c, "网站配置获取成功", cfg)
}

// Update 更新网站配置，有则改无则插
func (h *SiteConfigHandler) Update(c *gin.Context) {
	var req SiteConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请提供公司名称")
		return
	}

	cfg := &models.SiteConfig{
		CompanyName:        req.CompanyName,
		SiteURL:            req.SiteURL,
		ICPNumber:          req.ICPNumber,
		PoliceNumber:       req.PoliceNumber,
		CopyrightInfo:      req.CopyrightInfo,
		CompanyDescription: req.CompanyDescription,
		SEOKeywords:        req.SEOKeywords,
		SiteTitle:          req.SiteTitle,
		FriendLinks:        req.FriendLinks,
	}
	if err := h.siteConfig.Upsert(c.Request.Context(), cfg); err != nil {
		logrus.WithError(err).Error("更新网站配置失败")
		response.InternalError(c, "更新网站配置失败")
		return
	}

	response.Success(c, "网站配置更新成功", cfg)
}
