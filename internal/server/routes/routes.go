package routes

import (
	"net/http"
	"os"
	"path/filepath"

	"tech-site/internal/server/handlers"
	"tech-site/internal/server/middleware"
	"tech-site/internal/server/repository"
	"tech-site/internal/server/store"
	"tech-site/internal/shared/auth"
	"tech-site/internal/shared/config"
	"tech-site/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// SetupRoutes 组装全部路由
func SetupRoutes(cfg *config.ServerConfig, st store.Store) *gin.Engine {
	router := gin.New()
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.CORSMiddleware())

	jwtService := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)

	productRepo := repository.NewProductRepository(st)
	goodsRepo := repository.NewGoodsRepository(st)
	newsRepo := repository.NewNewsRepository(st)
	categoryRepo := repository.NewCategoryRepository(st)
	contactRepo := repository.NewContactRepository(st)
	adminRepo := repository.NewAdminRepository(st)
	userRepo := repository.NewUserRepository(st)
	siteConfigRepo := repository.NewSiteConfigRepository(st)

	productHandler := handlers.NewProductHandler(productRepo)
	goodsHandler := handlers.NewGoodsHandler(goodsRepo)
	newsHandler := handlers.NewNewsHandler(newsRepo)
	categoryHandler := handlers.NewCategoryHandler(categoryRepo, productRepo, goodsRepo)
	contactHandler := handlers.NewContactHandler(contactRepo)
	adminHandler := handlers.NewAdminHandler(adminRepo, jwtService)
	userHandler := handlers.NewUserHandler(userRepo, jwtService)
	siteConfigHandler := handlers.NewSiteConfigHandler(siteConfigRepo)
	dashboardHandler := handlers.NewDashboardHandler(productRepo, goodsRepo, newsRepo, contactRepo, userRepo)

	// 健康检查
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": cfg.App.Name})
	})

	api := router.Group("/api")
	adminAuth := middleware.AdminAuthMiddleware(jwtService)
	userAuth := middleware.UserAuthMiddleware(jwtService)

	// API欢迎页
	api.GET("", func(c *gin.Context) {
		response.Success(c, "欢迎使用后台API", gin.H{"version": "1.0"})
	})

	// 产品：读公开，写需管理员
	products := api.Group("/products")
	{
		products.GET("", productHandler.List)
		products.GET("/:id", productHandler.Get)
		products.POST("", adminAuth, productHandler.Create)
		products.PUT("/:id", adminAuth, productHandler.Update)
		products.DELETE("/:id", adminAuth, productHandler.Delete)
	}

	// 商品：读公开，写需管理员
	goods := api.Group("/goods")
	{
		goods.GET("", goodsHandler.List)
		goods.GET("/:id", goodsHandler.Get)
		goods.POST("", adminAuth, goodsHandler.Create)
		goods.PUT("/:id", adminAuth, goodsHandler.Update)
		goods.DELETE("/:id", adminAuth, goodsHandler.Delete)
	}

	// 新闻：读公开，写需管理员。静态路径 popular 先于 :id 匹配
	news := api.Group("/news")
	{
		news.GET("", newsHandler.List)
		news.GET("/popular", newsHandler.Popular)
		news.GET("/:id", newsHandler.Get)
		news.POST("", adminAuth, newsHandler.Create)
		news.PUT("/:id", adminAuth, newsHandler.Update)
		news.DELETE("/:id", adminAuth, newsHandler.Delete)
	}

	// 分类：读公开，写需管理员
	categories := api.Group("/categories")
	{
		categories.GET("", categoryHandler.List)
		categories.POST("", adminAuth, categoryHandler.Create)
		categories.PUT("", adminAuth, categoryHandler.ReplaceAll)
		categories.PUT("/:id", adminAuth, categoryHandler.Update)
		categories.DELETE("/:id", adminAuth, categoryHandler.Delete)
		categories.POST("/sync", adminAuth, categoryHandler.Sync)
	}

	// 联系留言：提交公开，查看删除需管理员
	contact := api.Group("/contact")
	{
		contact.POST("", contactHandler.Create)
		contact.GET("", adminAuth, contactHandler.List)
		contact.GET("/:id", adminAuth, contactHandler.Get)
		contact.DELETE("/:id", adminAuth, contactHandler.Delete)
	}

	// 网站配置：读公开，改需管理员
	api.GET("/site-config", siteConfigHandler.Get)
	api.PUT("/site-config", adminAuth, siteConfigHandler.Update)

	// 管理员
	admin := api.Group("/admin")
	{
		admin.POST("/login", adminHandler.Login)
		admin.PUT("/change-password", adminAuth, adminHandler.ChangePassword)
		admin.GET("/dashboard", adminAuth, dashboardHandler.Overview)
	}

	// 客户用户：注册登录公开，个人信息需客户令牌，账户管理需管理员
	users := api.Group("/users")
	{
		users.POST("/register", userHandler.Register)
		users.POST("/login", userHandler.Login)
		users.GET("/profile", userAuth, userHandler.Profile)

		users.GET("", adminAuth, userHandler.List)
		users.GET("/:id", adminAuth, userHandler.Get)
		users.PUT("/:id", adminAuth, userHandler.Update)
		users.DELETE("/:id", adminAuth, userHandler.Delete)
	}

	// 非容器部署时由后端直接托管前端静态资源
	if !cfg.App.IsDocker {
		setupStatic(router, cfg.App.StaticDir)
	}

	return router
}

// setupStatic 托管前端构建产物，未匹配路由回落到 index.html
func setupStatic(router *gin.Engine, dir string) {
	if _, err := os.Stat(dir); err != nil {
		return
	}

	router.Static("/assets", filepath.Join(dir, "assets"))
	router.StaticFile("/", filepath.Join(dir, "index.html"))
	router.NoRoute(func(c *gin.Context) {
		if c.Request.Method == http.MethodGet {
			c.File(filepath.Join(dir, "index.html"))
			return
		}
		response.NotFound(c, "接口不存在")
	})
}
