package handlers

import (
	"net/http"

	"yatube/services"

	"github.com/gin-gonic/gin"
)

// CacheClear полностью сбрасывает кеш страниц (админский эндпоинт)
func CacheClear(c *gin.Context) {
	if services.PageCacheInstance == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Page cache not available"})
		return
	}

	if err := services.PageCacheInstance.Clear(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cache"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cache cleared successfully"})
}
