package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/catalog-api/internal/lib/job"
	"github.com/deppfellow/catalog-api/internal/repository"
	"github.com/deppfellow/catalog-api/internal/server"
)

type Services struct {
	Auth     *AuthService
	Category *CategoryService
	Tag      *TagService
	Job      *job.JobService
}

func NewService(s *server.Server, store repository.Store) (*Services, error) {
	if store == nil {
		return nil, errors.New("services need a store")
	}

	return &Services{
		Auth:     NewAuthService(s),
		Category: NewCategoryService(s, store),
		Tag:      NewTagService(s, store),
		Job:      s.Job,
	}, nil
}

// WarmCache reloads the listing of resource into the cache. It backs the
// cache warm-up job.
func (s *Services) WarmCache(ctx context.Context, resource string) error {
	switch resource {
	case resourceCategories:
		return s.Category.WarmCache(ctx)
	case resourceTags:
		return s.Tag.WarmCache(ctx)
	default:
		return fmt.Errorf("unknown cache resource %q", resource)
	}
}
