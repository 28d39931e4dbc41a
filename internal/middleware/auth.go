// Package middleware 提供了处理 HTTP 请求的中间件。
package middleware

import (
	"net/http"
	"strings"

	"edu-counsel-go/internal/service"
	"edu-counsel-go/pkg/token"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware 创建一个 Gin 中间件，用于 JWT 认证。
// 它会从请求头中提取 token，验证其有效性与黑名单状态，
// 并将完整的 Admin 对象存入 Gin 的上下文中。
func AuthMiddleware(jwtManager *token.JWTManager, adminService service.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 从 Authorization 请求头中获取 token
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "请求未包含授权头"})
			return
		}

		// Token 以 "Bearer <token>" 的形式提供，提取出 token 本身
		const bearerPrefix = "Bearer "
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "无效的授权头格式"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, bearerPrefix)

		claims, err := jwtManager.VerifyToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "无效或已过期的 token"})
			return
		}

		// 已登出的 token 在过期前保留在黑名单中
		if adminService.IsTokenBlacklisted(tokenString) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token 已失效，请重新登录"})
			return
		}

		// 使用 claims 中的邮箱从数据库获取完整的管理员信息
		admin, err := adminService.GetByEmail(claims.Email)
		if err != nil {
			// 如果根据 token 中的信息无法找到账号，说明该账号可能已被删除
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "账号不存在"})
			return
		}

		// 将完整的 Admin 对象存储在 context 中，供后续处理函数使用
		c.Set("admin", admin)
		c.Set("claims", claims)

		c.Next()
	}
}
