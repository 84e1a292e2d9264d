package services

import (
	"context"
	"testing"
	"time"

	"github.com/joshua-takyi/eventrentals/internal/apperrors"
	"github.com/joshua-takyi/eventrentals/internal/helpers"
	"github.com/joshua-takyi/eventrentals/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listItems(ctx context.Context, store models.Store) ([]models.Item, error) {
	return store.ListItems(ctx)
}

func TestWithFallbackUsesPrimaryWhenHealthy(t *testing.T) {
	remote := newRemote(t)
	local := newLocalStore(t)
	seedItems(t, remote, models.Item{ID: "remote-item"})
	seedItems(t, local, models.Item{ID: "local-item"})
	rec := &eventRecorder{}

	f := NewFailover(remote, local, rec, testLogger(), FailoverConfig{Timeout: time.Second})
	items, err := WithFallback(context.Background(), f, "items.list", listItems)
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, "remote-item", items[0].ID)
	assert.Empty(t, rec.recorded())
	assert.Equal(t, "remote+local", f.Mode())
	assert.Equal(t, "closed", f.BreakerState())
}

func TestWithFallbackServesFromFallbackAndRecordsEvent(t *testing.T) {
	local := newLocalStore(t)
	seedItems(t, local, models.Item{ID: "local-item"})
	rec := &eventRecorder{}

	f := NewFailover(newDownRemote(t), local, rec, testLogger(), FailoverConfig{Timeout: time.Second})
	ctx := helpers.WithRequestID(context.Background(), "req-42")

	items, err := WithFallback(ctx, f, "items.list", listItems)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "local-item", items[0].ID)

	events := rec.recorded()
	require.Len(t, events, 1)
	assert.Equal(t, "items.list", events[0].Operation)
	assert.Equal(t, "remote", events[0].Primary)
	assert.Equal(t, "local", events[0].Fallback)
	assert.Equal(t, "req-42", events[0].RequestID)
	assert.NotEmpty(t, events[0].Error)
}

func TestWithFallbackDoesNotMaskBusinessErrors(t *testing.T) {
	remote := newRemote(t)
	local := newLocalStore(t)
	seedItems(t, local, models.Item{ID: "chair-1"})
	rec := &eventRecorder{}

	f := NewFailover(remote, local, rec, testLogger(), FailoverConfig{})
	_, err := WithFallback(context.Background(), f, "items.get", func(ctx context.Context, store models.Store) (*models.Item, error) {
		return store.GetItem(ctx, "chair-1")
	})

	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
	assert.Empty(t, rec.recorded())
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	f := NewFailover(newDownRemote(t), newLocalStore(t), nil, testLogger(), FailoverConfig{
		MaxFailures: 2,
		Cooldown:    time.Minute,
	})

	for i := 0; i < 2; i++ {
		_, err := WithFallback(context.Background(), f, "items.list", listItems)
		require.NoError(t, err)
	}
	assert.Equal(t, "open", f.BreakerState())

	// an open breaker still diverts to the fallback store
	_, err := WithFallback(context.Background(), f, "items.list", listItems)
	require.NoError(t, err)

	// the authoritative store is not replaced
	_, err = OnAuthoritative(context.Background(), f, listItems)
	assert.True(t, apperrors.Is(err, apperrors.KindBackend))
}

func TestBusinessErrorsDoNotTripBreaker(t *testing.T) {
	f := NewFailover(newRemote(t), newLocalStore(t), nil, testLogger(), FailoverConfig{MaxFailures: 1})

	for i := 0; i < 3; i++ {
		_, err := WithFallback(context.Background(), f, "items.get", func(ctx context.Context, store models.Store) (*models.Item, error) {
			return store.GetItem(ctx, "missing")
		})
		assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
	}
	assert.Equal(t, "closed", f.BreakerState())
}

func TestLocalOnlyMode(t *testing.T) {
	local := newLocalStore(t)
	seedItems(t, local, models.Item{ID: "chair-1"})
	f := localOnly(t, local)

	items, err := WithFallback(context.Background(), f, "items.list", listItems)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "local", f.Mode())
	assert.Equal(t, "disabled", f.BreakerState())
}

func TestTimeoutCountsAsStoreFailure(t *testing.T) {
	local := newLocalStore(t)
	seedItems(t, local, models.Item{ID: "local-item"})
	f := NewFailover(newRemote(t), local, nil, testLogger(), FailoverConfig{Timeout: 20 * time.Millisecond})

	calls := 0
	items, err := WithFallback(context.Background(), f, "items.list", func(ctx context.Context, store models.Store) ([]models.Item, error) {
		calls++
		if store.Name() == "remote" {
			<-ctx.Done()
			return nil, apperrors.Backend(store.Name(), ctx.Err())
		}
		return store.ListItems(ctx)
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, "local-item", items[0].ID)
}
