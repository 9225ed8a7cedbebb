package middleware

import (
	"tech-site/internal/shared/auth"
	"tech-site/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// AdminAuthMiddleware 管理员认证中间件。
// 验证 Authorization 头中的Bearer令牌并要求管理员角色，
// 通过后把管理员身份注入请求上下文。
func AdminAuthMiddleware(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "缺少认证信息")
			c.Abort()
			return
		}

		token, err := auth.ExtractTokenFromHeader(authHeader)
		if err != nil {
			response.Unauthorized(c, "无效的认证格式")
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			response.Unauthorized(c, "无效的认证令牌")
			c.Abort()
			return
		}

		if claims.Role != auth.RoleAdmin {
			response.Forbidden(c, "需要管理员权限")
			c.Abort()
			return
		}

		c.Set("admin_id", claims.ID)
		c.Set("admin_username", claims.Name)

		c.Next()
	}
}

// UserAuthMiddleware 客户认证中间件
func UserAuthMiddleware(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "缺少认证信息")
			c.Abort()
			return
		}

		token, err := auth.ExtractTokenFromHeader(authHeader)
		if err != nil {
			response.Unauthorized(c, "无效的认证格式")
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			response.Unauthorized(c, "无效的认证令牌")
			c.Abort()
			return
		}

		if claims.Role != auth.RoleUser {
			response.Forbidden(c, "需要客户账户")
			c.Abort()
			return
		}

		c.Set("user_id", claims.ID)
		c.Set("user_phone", claims.Phone)

		c.Next()
	}
}
