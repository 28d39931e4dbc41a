// Package middleware 提供了处理 HTTP 请求的中间件。
package middleware

import (
	"net/http"

	"edu-counsel-go/internal/model"

	"github.com/gin-gonic/gin"
)

// AdminAuthMiddleware 检查当前账号是否具有管理员权限。
// 此中间件必须在 AuthMiddleware 之后使用。
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 从 AuthMiddleware 设置的上下文中获取 admin 对象
		admin, exists := c.Get("admin")
		if !exists {
			// admin 对象不存在说明 AuthMiddleware 未能成功解析
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "无法获取账号信息"})
			return
		}

		currentAdmin, ok := admin.(*model.Admin)
		if !ok {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "账号数据类型错误"})
			return
		}

		if currentAdmin.Role != model.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "权限不足，需要管理员权限"})
			return
		}

		c.Next()
	}
}
