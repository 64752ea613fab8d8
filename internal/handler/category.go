package handler

import (
	"net/http"

	"github.com/deppfellow/catalog-api/internal/model"
	"github.com/deppfellow/catalog-api/internal/model/category"
	"github.com/deppfellow/catalog-api/internal/server"
	"github.com/deppfellow/catalog-api/internal/service"
	"github.com/labstack/echo/v4"
)

type CategoryHandler struct {
	Handler
	categoryService *service.CategoryService
}

func NewCategoryHandler(s *server.Server, categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		Handler:         NewHandler(s),
		categoryService: categoryService,
	}
}

func (h *CategoryHandler) ListCategories(c echo.Context) error {
	return Handle(
		h.Handler,
		func(c echo.Context, payload *category.ListCategoriesPayload) ([]model.Category, error) {
			return h.categoryService.ListCategories(c.Request().Context())
		},
		http.StatusOK,
		&category.ListCategoriesPayload{},
	)(c)
}

func (h *CategoryHandler) GetCategory(c echo.Context) error {
	return Handle(
		h.Handler,
		func(c echo.Context, payload *category.GetCategoryByIDPayload) (*model.Category, error) {
			return h.categoryService.GetCategory(c.Request().Context(), payload.ID)
		},
		http.StatusOK,
		&category.GetCategoryByIDPayload{},
	)(c)
}

func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	return Handle(
		h.Handler,
		func(c echo.Context, payload *category.CreateCategoryPayload) (*model.Category, error) {
			return h.categoryService.CreateCategory(c.Request().Context(), payload)
		},
		http.StatusOK,
		&category.CreateCategoryPayload{},
	)(c)
}

func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	return Handle(
		h.Handler,
		func(c echo.Context, payload *category.UpdateCategoryPayload) (*model.MutationResult, error) {
			return h.categoryService.UpdateCategory(c.Request().Context(), payload)
		},
		http.StatusOK,
		&category.UpdateCategoryPayload{},
	)(c)
}

func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	return Handle(
		h.Handler,
		func(c echo.Context, payload *category.DeleteCategoryPayload) (*model.MutationResult, error) {
			return h.categoryService.DeleteCategory(c.Request().Context(), payload.ID)
		},
		http.StatusOK,
		&category.DeleteCategoryPayload{},
	)(c)
}
