package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/deppfellow/catalog-api/internal/errs"
	"github.com/deppfellow/catalog-api/internal/lib/cache"
	"github.com/deppfellow/catalog-api/internal/model"
	"github.com/deppfellow/catalog-api/internal/model/tag"
	"github.com/deppfellow/catalog-api/internal/repository"
	"github.com/deppfellow/catalog-api/internal/server"
	"github.com/deppfellow/catalog-api/internal/sqlerr"
)

const entityTag = "tag"

// CodeInvalidProductIDs is returned when a new tag references unknown products.
const CodeInvalidProductIDs = "INVALID_PRODUCT_IDS"

type TagService struct {
	server *server.Server
	store  repository.Store
}

func NewTagService(s *server.Server, store repository.Store) *TagService {
	return &TagService{
		server: s,
		store:  store,
	}
}

func (s *TagService) ListTags(ctx context.Context) ([]model.Tag, error) {
	key := func(gen int64) string { return cache.ListKey(resourceTags, gen) }

	return readThrough(ctx, s.server.Cache, resourceTags, key, func() ([]model.Tag, error) {
		tags, err := s.store.Tags().List(ctx)
		if err != nil {
			requestLogger(ctx, s.server).Error().Err(err).Msg("failed to list tags")
			return nil, sqlerr.HandleError(err, entityTag)
		}
		if tags == nil {
			tags = []model.Tag{}
		}
		return tags, nil
	})
}

// GetTag answers 404 when id does not exist.
func (s *TagService) GetTag(ctx context.Context, id int) (*model.Tag, error) {
	key := func(gen int64) string { return cache.ItemKey(resourceTags, gen, id) }

	return readThrough(ctx, s.server.Cache, resourceTags, key, func() (*model.Tag, error) {
		t, err := s.store.Tags().GetByID(ctx, id)
		if err != nil {
			requestLogger(ctx, s.server).Error().Err(err).Int("tag_id", id).Msg("failed to get tag")
			return nil, sqlerr.HandleError(err, entityTag)
		}
		return t, nil
	})
}

// CreateTag creates the tag and links it to payload.ProductIDs in one
// transaction. If any product id does not exist nothing is written and the
// unknown ids are reported in input order.
func (s *TagService) CreateTag(ctx context.Context, payload *tag.CreateTagPayload) (*model.Tag, error) {
	t := &model.Tag{TagName: payload.TagName}

	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		if err := tx.Tags().Create(ctx, t); err != nil {
			return err
		}

		if len(payload.ProductIDs) == 0 {
			return nil
		}

		found, err := tx.Products().ExistingIDs(ctx, payload.ProductIDs)
		if err != nil {
			return err
		}

		if invalid := missingIDs(payload.ProductIDs, found); len(invalid) > 0 {
			return newInvalidProductIDsError(invalid)
		}

		return tx.Tags().AddProducts(ctx, model.NewProductTags(t.ID, payload.ProductIDs))
	})
	if err != nil {
		log := requestLogger(ctx, s.server)

		var httpErr *errs.HTTPError
		if errors.As(err, &httpErr) {
			log.Warn().Str("tag_name", payload.TagName).Msg(httpErr.Message)
		} else {
			log.Error().Err(err).Str("tag_name", payload.TagName).Msg("failed to create tag")
		}

		return nil, sqlerr.HandleWriteError(err, "create", entityTag)
	}

	t.Products = []model.Product{}

	invalidate(ctx, s.server, resourceTags)
	return t, nil
}

// UpdateTag renames the tag. A missing id affects no rows and is not an error.
func (s *TagService) UpdateTag(ctx context.Context, payload *tag.UpdateTagPayload) (*model.MutationResult, error) {
	affected, err := s.store.Tags().Update(ctx, payload.ID, payload.TagName)
	if err != nil {
		requestLogger(ctx, s.server).Error().Err(err).Int("tag_id", payload.ID).Msg("failed to update tag")
		return nil, sqlerr.HandleWriteError(err, "update", entityTag)
	}

	if affected > 0 {
		invalidate(ctx, s.server, resourceTags)
	}
	return &model.MutationResult{AffectedRows: affected}, nil
}

func (s *TagService) DeleteTag(ctx context.Context, id int) (*model.MutationResult, error) {
	affected, err := s.store.Tags().Delete(ctx, id)
	if err != nil {
		requestLogger(ctx, s.server).Error().Err(err).Int("tag_id", id).Msg("failed to delete tag")
		return nil, sqlerr.HandleWriteError(err, "delete", entityTag)
	}

	if affected > 0 {
		invalidate(ctx, s.server, resourceTags)
	}
	return &model.MutationResult{AffectedRows: affected}, nil
}

// WarmCache stores a fresh tag listing in the cache.
func (s *TagService) WarmCache(ctx context.Context) error {
	return warmListing(ctx, s.server.Cache, resourceTags, func() ([]model.Tag, error) {
		return s.store.Tags().List(ctx)
	})
}

// missingIDs returns the ids not in found, keeping their order in ids.
func missingIDs(ids, found []int) []int {
	valid := make(map[int]struct{}, len(found))
	for _, id := range found {
		valid[id] = struct{}{}
	}

	var missing []int
	for _, id := range ids {
		if _, ok := valid[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

func newInvalidProductIDsError(ids []int) *errs.HTTPError {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}

	code := CodeInvalidProductIDs
	return errs.NewBadRequestError("Invalid product IDs: "+strings.Join(parts, ", "), true, &code, nil, nil)
}
