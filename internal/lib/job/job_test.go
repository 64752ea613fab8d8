package job

import (
	"context"
	"errors"
	"testing"

	"github.com/deppfellow/catalog-api/internal/config"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWarmer struct {
	resources []string
	err       error
}

func (f *fakeWarmer) WarmCache(_ context.Context, resource string) error {
	f.resources = append(f.resources, resource)
	return f.err
}

func newTestJobService(t *testing.T) *JobService {
	t.Helper()

	logger := zerolog.Nop()
	cfg := &config.Config{Redis: config.RedisConfig{Address: "127.0.0.1:1"}}

	j := NewJobService(&logger, cfg)
	t.Cleanup(func() { _ = j.Client.Close() })
	return j
}

func TestNewCacheWarmTask(t *testing.T) {
	task, err := NewCacheWarmTask("tags")
	require.NoError(t, err)

	assert.Equal(t, TaskCacheWarm, task.Type())
	assert.JSONEq(t, `{"resource":"tags"}`, string(task.Payload()))
}

func TestHandleCacheWarmTask(t *testing.T) {
	j := newTestJobService(t)
	warmer := &fakeWarmer{}

	task, err := NewCacheWarmTask("categories")
	require.NoError(t, err)

	require.NoError(t, j.handleCacheWarmTask(context.Background(), task, warmer))
	assert.Equal(t, []string{"categories"}, warmer.resources)
}

func TestHandleCacheWarmTaskPropagatesFailure(t *testing.T) {
	j := newTestJobService(t)
	warmer := &fakeWarmer{err: errors.New("db down")}

	task, err := NewCacheWarmTask("tags")
	require.NoError(t, err)

	assert.Error(t, j.handleCacheWarmTask(context.Background(), task, warmer))
}

func TestHandleCacheWarmTaskRejectsEmptyResource(t *testing.T) {
	j := newTestJobService(t)
	warmer := &fakeWarmer{}

	err := j.handleCacheWarmTask(context.Background(), asynq.NewTask(TaskCacheWarm, []byte(`{}`)), warmer)
	require.Error(t, err)
	assert.ErrorIs(t, err, asynq.SkipRetry)
	assert.Empty(t, warmer.resources)
}

func TestRegisteredHandlerDispatches(t *testing.T) {
	j := newTestJobService(t)
	warmer := &fakeWarmer{}
	j.InitHandlers(warmer)

	task, err := NewCacheWarmTask("tags")
	require.NoError(t, err)

	require.NoError(t, j.mux.ProcessTask(context.Background(), task))
	assert.Equal(t, []string{"tags"}, warmer.resources)
}
