package api

import (
	"github.com/gin-gonic/gin"

	"github.com/jmt-genius/synapcity-hub/internal/metrics"
)

// SetupRoutes configures all API routes.
func SetupRoutes(router *gin.Engine, handler *Handler) {
	router.GET("/health", handler.Health)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	apiGroup := router.Group("/api")
	{
		apiGroup.POST("/extract-link", handler.ExtractLink)
		apiGroup.POST("/ai-search", handler.AISearch)
	}
}
