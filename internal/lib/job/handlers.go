package job

import (
	"context"

	"github.com/hibiken/asynq"
)

// CacheWarmer reloads a resource listing into the cache.
type CacheWarmer interface {
	WarmCache(ctx context.Context, resource string) error
}

// InitHandlers registers the task handlers. It must run before Start.
func (j *JobService) InitHandlers(warmer CacheWarmer) {
	j.mux.HandleFunc(TaskCacheWarm, func(ctx context.Context, t *asynq.Task) error {
		return j.handleCacheWarmTask(ctx, t, warmer)
	})
}

func (j *JobService) handleCacheWarmTask(ctx context.Context, t *asynq.Task, warmer CacheWarmer) error {
	p, err := parseCacheWarmPayload(t)
	if err != nil {
		return err
	}

	j.logger.Debug().
		Str("type", TaskCacheWarm).
		Str("resource", p.Resource).
		Msg("Processing cache warm task")

	if err := warmer.WarmCache(ctx, p.Resource); err != nil {
		j.logger.Error().
			Str("type", TaskCacheWarm).
			Str("resource", p.Resource).
			Err(err).
			Msg("Failed to warm cache")
		return err
	}

	return nil
}
