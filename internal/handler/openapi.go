package handler

import (
	"fmt"
	"net/http"

	"github.com/deppfellow/catalog-api/internal/server"
	"github.com/deppfellow/catalog-api/static"
	"github.com/labstack/echo/v4"
)

// OpenAPIHandler serves the documentation UI. The page loads
// /static/openapi.json.
type OpenAPIHandler struct {
	Handler
}

func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
	}
}

func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "no-cache")

	if err := c.HTMLBlob(http.StatusOK, static.OpenAPIUI); err != nil {
		return fmt.Errorf("failed to write HTML response: %w", err)
	}

	return nil
}
