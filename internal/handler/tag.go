package handler

import (
	"net/http"

	"github.com/deppfellow/catalog-api/internal/model"
	"github.com/deppfellow/catalog-api/internal/model/tag"
	"github.com/deppfellow/catalog-api/internal/server"
	"github.com/deppfellow/catalog-api/internal/service"
	"github.com/labstack/echo/v4"
)

type TagHandler struct {
	Handler
	tagService *service.TagService
}

func NewTagHandler(s *server.Server, tagService *service.TagService) *TagHandler {
	return &TagHandler{
		Handler:    NewHandler(s),
		tagService: tagService,
	}
}

func (h *TagHandler) ListTags(c echo.Context) error {
	return Handle(
		h.Handler,
		func(c echo.Context, payload *tag.ListTagsPayload) ([]model.Tag, error) {
			return h.tagService.ListTags(c.Request().Context())
		},
		http.StatusOK,
		&tag.ListTagsPayload{},
	)(c)
}

func (h *TagHandler) GetTag(c echo.Context) error {
	return Handle(
		h.Handler,
		func(c echo.Context, payload *tag.GetTagByIDPayload) (*model.Tag, error) {
			return h.tagService.GetTag(c.Request().Context(), payload.ID)
		},
		http.StatusOK,
		&tag.GetTagByIDPayload{},
	)(c)
}

func (h *TagHandler) CreateTag(c echo.Context) error {
	return Handle(
		h.Handler,
		func(c echo.Context, payload *tag.CreateTagPayload) (*model.Tag, error) {
			return h.tagService.CreateTag(c.Request().Context(), payload)
		},
		http.StatusOK,
		&tag.CreateTagPayload{},
	)(c)
}

func (h *TagHandler) UpdateTag(c echo.Context) error {
	return Handle(
		h.Handler,
		func(c echo.Context, payload *tag.UpdateTagPayload) (*model.MutationResult, error) {
			return h.tagService.UpdateTag(c.Request().Context(), payload)
		},
		http.StatusOK,
		&tag.UpdateTagPayload{},
	)(c)
}

func (h *TagHandler) DeleteTag(c echo.Context) error {
	return Handle(
		h.Handler,
		func(c echo.Context, payload *tag.DeleteTagPayload) (*model.MutationResult, error) {
			return h.tagService.DeleteTag(c.Request().Context(), payload.ID)
		},
		http.StatusOK,
		&tag.DeleteTagPayload{},
	)(c)
}
