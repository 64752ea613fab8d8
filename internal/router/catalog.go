package router

import (
	"github.com/deppfellow/catalog-api/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerCatalogRoutes mounts the category and tag endpoints. protect guards
// the write routes.
func registerCatalogRoutes(api *echo.Group, h *handler.Handlers, protect echo.MiddlewareFunc) {
	categories := api.Group("/categories")
	categories.GET("", h.Category.ListCategories)
	categories.GET("/:id", h.Category.GetCategory)
	categories.POST("", h.Category.CreateCategory, protect)
	categories.PUT("/:id", h.Category.UpdateCategory, protect)
	categories.DELETE("/:id", h.Category.DeleteCategory, protect)

	tags := api.Group("/tags")
	tags.GET("", h.Tag.ListTags)
	tags.GET("/:id", h.Tag.GetTag)
	tags.POST("", h.Tag.CreateTag, protect)
	tags.PUT("/:id", h.Tag.UpdateTag, protect)
	tags.DELETE("/:id", h.Tag.DeleteTag, protect)
}
