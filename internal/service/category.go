package service

import (
	"context"

	"github.com/deppfellow/catalog-api/internal/lib/cache"
	"github.com/deppfellow/catalog-api/internal/model"
	"github.com/deppfellow/catalog-api/internal/model/category"
	"github.com/deppfellow/catalog-api/internal/repository"
	"github.com/deppfellow/catalog-api/internal/server"
	"github.com/deppfellow/catalog-api/internal/sqlerr"
)

const entityCategory = "category"

type CategoryService struct {
	server *server.Server
	store  repository.Store
}

func NewCategoryService(s *server.Server, store repository.Store) *CategoryService {
	return &CategoryService{
		server: s,
		store:  store,
	}
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]model.Category, error) {
	key := func(gen int64) string { return cache.ListKey(resourceCategories, gen) }

	return readThrough(ctx, s.server.Cache, resourceCategories, key, func() ([]model.Category, error) {
		categories, err := s.store.Categories().List(ctx)
		if err != nil {
			requestLogger(ctx, s.server).Error().Err(err).Msg("failed to list categories")
			return nil, sqlerr.HandleError(err, entityCategory)
		}
		if categories == nil {
			categories = []model.Category{}
		}
		return categories, nil
	})
}

// GetCategory answers 404 when id does not exist.
func (s *CategoryService) GetCategory(ctx context.Context, id int) (*model.Category, error) {
	key := func(gen int64) string { return cache.ItemKey(resourceCategories, gen, id) }

	return readThrough(ctx, s.server.Cache, resourceCategories, key, func() (*model.Category, error) {
		c, err := s.store.Categories().GetByID(ctx, id)
		if err != nil {
			requestLogger(ctx, s.server).Error().Err(err).Int("category_id", id).Msg("failed to get category")
			return nil, sqlerr.HandleError(err, entityCategory)
		}
		return c, nil
	})
}

func (s *CategoryService) CreateCategory(ctx context.Context, payload *category.CreateCategoryPayload) (*model.Category, error) {
	c := &model.Category{CategoryName: payload.CategoryName}

	if err := s.store.Categories().Create(ctx, c); err != nil {
		requestLogger(ctx, s.server).Error().Err(err).Msg("failed to create category")
		return nil, sqlerr.HandleWriteError(err, "create", entityCategory)
	}

	c.Products = []model.Product{}

	invalidate(ctx, s.server, resourceCategories)
	return c, nil
}

// UpdateCategory renames the category. A missing id is not an error, it
// just affects no rows.
func (s *CategoryService) UpdateCategory(ctx context.Context, payload *category.UpdateCategoryPayload) (*model.MutationResult, error) {
	affected, err := s.store.Categories().Update(ctx, payload.ID, payload.CategoryName)
	if err != nil {
		requestLogger(ctx, s.server).Error().Err(err).Int("category_id", payload.ID).Msg("failed to update category")
		return nil, sqlerr.HandleWriteError(err, "update", entityCategory)
	}

	if affected > 0 {
		invalidate(ctx, s.server, resourceCategories)
	}
	return &model.MutationResult{AffectedRows: affected}, nil
}

func (s *CategoryService) DeleteCategory(ctx context.Context, id int) (*model.MutationResult, error) {
	affected, err := s.store.Categories().Delete(ctx, id)
	if err != nil {
		requestLogger(ctx, s.server).Error().Err(err).Int("category_id", id).Msg("failed to delete category")
		return nil, sqlerr.HandleWriteError(err, "delete", entityCategory)
	}

	// tag listings embed the products' category_id, nulled by the delete
	if affected > 0 {
		invalidate(ctx, s.server, resourceCategories, resourceTags)
	}
	return &model.MutationResult{AffectedRows: affected}, nil
}

// WarmCache stores a fresh category listing in the cache.
func (s *CategoryService) WarmCache(ctx context.Context) error {
	return warmListing(ctx, s.server.Cache, resourceCategories, func() ([]model.Category, error) {
		return s.store.Categories().List(ctx)
	})
}
