// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"gpustock/internal/infrastructure/http/v1/middleware"
)

// CatalogRouteHandler defines the interface for catalog handlers.
// All catalog handlers must implement these methods.
type CatalogRouteHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

// RegisterCatalogRoutes registers standard CRUD routes for a catalog.
// Reads are open to any authenticated user; mutations require staff.
//
// Usage:
//
//	handler := handlers.NewGpuHandler(baseHandler, gpuService)
//	RegisterCatalogRoutes(catalogs.Group("/gpus"), handler)
func RegisterCatalogRoutes(group *gin.RouterGroup, handler CatalogRouteHandler) {
	group.GET("", handler.List)
	group.GET("/:id", handler.Get)
	group.POST("", middleware.RequireStaff(), handler.Create)
	group.PUT("/:id", middleware.RequireStaff(), handler.Update)
	group.DELETE("/:id", middleware.RequireStaff(), handler.Delete)
}
