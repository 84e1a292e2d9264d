package services

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"

	"github.com/joshua-takyi/eventrentals/internal/models"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// remoteStore stands in for the remote store. Pointing it at a directory
// makes every call fail like an unreachable server.
type remoteStore struct {
	*models.LocalRepo
}

func (remoteStore) Name() string { return "remote" }

func newRemote(t *testing.T) remoteStore {
	t.Helper()
	return remoteStore{models.LocalNewRepo(filepath.Join(t.TempDir(), "remote.json"))}
}

func newDownRemote(t *testing.T) remoteStore {
	t.Helper()
	return remoteStore{models.LocalNewRepo(t.TempDir())}
}

func newLocalStore(t *testing.T) *models.LocalRepo {
	t.Helper()
	return models.LocalNewRepo(filepath.Join(t.TempDir(), "db.json"))
}

func seedItems(t *testing.T, store interface{ Write(*models.Document) error }, items ...models.Item) {
	t.Helper()
	require.NoError(t, store.Write(&models.Document{Items: items}))
}

func stockOf(t *testing.T, store models.ItemRepo, id string) int {
	t.Helper()
	item, err := store.GetItem(context.Background(), id)
	require.NoError(t, err)
	return item.Quantity
}

type eventRecorder struct {
	mu     sync.Mutex
	events []*models.StoreEvent
}

func (r *eventRecorder) RecordStoreEvent(_ context.Context, event *models.StoreEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *eventRecorder) recorded() []*models.StoreEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*models.StoreEvent{}, r.events...)
}

// casStore lets a test intercept quantity writes.
type casStore struct {
	*models.LocalRepo
	cas func(ctx context.Context, id string, expected, next int) (bool, error)
}

func (s *casStore) CompareAndSetItemQuantity(ctx context.Context, id string, expected, next int) (bool, error) {
	if s.cas != nil {
		return s.cas(ctx, id, expected, next)
	}
	return s.LocalRepo.CompareAndSetItemQuantity(ctx, id, expected, next)
}

func localOnly(t *testing.T, local *models.LocalRepo) *Failover {
	t.Helper()
	return NewFailover(nil, local, nil, testLogger(), FailoverConfig{})
}
