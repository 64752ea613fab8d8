package job

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)

// TaskCacheWarm reloads a resource listing into the cache after a write.
const TaskCacheWarm = "catalog:cache_warm"

// cacheWarmUniqueFor collapses bursts of writes to one warm-up per resource.
const cacheWarmUniqueFor = 10 * time.Second

type CacheWarmPayload struct {
	Resource string `json:"resource"`
}

// NewCacheWarmTask builds the warm-up task for resource ("categories" or "tags").
func NewCacheWarmTask(resource string) (*asynq.Task, error) {
	payload, err := json.Marshal(CacheWarmPayload{Resource: resource})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskCacheWarm,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue(QueueLow),
		asynq.Timeout(30*time.Second),
		asynq.Unique(cacheWarmUniqueFor),
	), nil
}

func parseCacheWarmPayload(t *asynq.Task) (CacheWarmPayload, error) {
	var p CacheWarmPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return p, fmt.Errorf("failed to unmarshal cache warm payload: %w", err)
	}
	if p.Resource == "" {
		return p, fmt.Errorf("cache warm payload has no resource: %w", asynq.SkipRetry)
	}
	return p, nil
}
