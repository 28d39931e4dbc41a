// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"net/http"
	"strconv"

	"edu-counsel-go/internal/service"
	"edu-counsel-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// SearchHandler 负责处理项目全文搜索请求。
type SearchHandler struct {
	searchService service.SearchService
}

// NewSearchHandler 创建一个新的 SearchHandler 实例。
func NewSearchHandler(searchService service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// Search 处理 GET /api/programs/search?q=&limit= 请求。
func (h *SearchHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求：q 不能为空"})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求：limit 必须是整数"})
			return
		}
		limit = parsed
	}

	results, err := h.searchService.Search(c.Request.Context(), query, limit)
	if err != nil {
		log.Errorf("Search: Failed for query '%s': %v", query, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "搜索失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}
