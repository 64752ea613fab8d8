// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives validated data from the handler, performs
// business operations, and calls repository methods to interact
// with the data. Services also own the response cache: they read
// through it and invalidate it after every committed write.
package service

import (
	"context"

	"github.com/deppfellow/catalog-api/internal/lib/cache"
	"github.com/deppfellow/catalog-api/internal/lib/job"
	"github.com/deppfellow/catalog-api/internal/logger"
	"github.com/deppfellow/catalog-api/internal/server"
	"github.com/rs/zerolog"
)

const (
	resourceCategories = "categories"
	resourceTags       = "tags"
)

// requestLogger returns the request-scoped logger, or the server logger
// outside a request (e.g. in job handlers).
func requestLogger(ctx context.Context, s *server.Server) *zerolog.Logger {
	return logger.FromContext(ctx, s.Logger)
}

// readThrough serves key from the cache or calls load and stores its result.
// The generation is read before load runs, so a result that raced a write is
// stored under a generation nobody reads anymore.
func readThrough[T any](
	ctx context.Context,
	c *cache.Cache,
	resource string,
	key func(gen int64) string,
	load func() (T, error),
) (T, error) {
	gen, cached := c.Generation(ctx, resource)
	if cached {
		var hit T
		if c.Get(ctx, key(gen), &hit) {
			return hit, nil
		}
	}

	v, err := load()
	if err != nil {
		return v, err
	}

	if cached {
		c.Set(ctx, key(gen), v)
	}
	return v, nil
}

// invalidate bumps the cache generation of resources and schedules a
// warm-up of each listing.
func invalidate(ctx context.Context, s *server.Server, resources ...string) {
	s.Cache.Invalidate(ctx, resources...)
	for _, resource := range resources {
		scheduleCacheWarm(ctx, s, resource)
	}
}

// warmListing stores a fresh listing of resource under its current generation.
func warmListing[T any](ctx context.Context, c *cache.Cache, resource string, load func() ([]T, error)) error {
	gen, ok := c.Generation(ctx, resource)
	if !ok {
		return nil
	}

	list, err := load()
	if err != nil {
		return err
	}
	if list == nil {
		list = []T{}
	}

	c.Set(ctx, cache.ListKey(resource, gen), list)
	return nil
}

// scheduleCacheWarm asks the job workers to refill the listing of resource.
// Failures only cost a cache miss, so they are logged and dropped.
func scheduleCacheWarm(ctx context.Context, s *server.Server, resource string) {
	if s.Job == nil || !s.Cache.Enabled() {
		return
	}

	task, err := job.NewCacheWarmTask(resource)
	if err == nil {
		err = s.Job.Enqueue(ctx, task)
	}
	if err != nil {
		requestLogger(ctx, s).Warn().
			Err(err).
			Str("resource", resource).
			Msg("could not schedule cache warm-up")
	}
}
