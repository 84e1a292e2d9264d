package services

import (
	"context"
	"log/slog"

	"github.com/joshua-takyi/eventrentals/internal/apperrors"
	"github.com/joshua-takyi/eventrentals/internal/models"
)

const defaultStoreEventsLimit = 50

// StoreEventLister reads back recorded fallback activations.
type StoreEventLister interface {
	ListStoreEvents(ctx context.Context, limit int) ([]*models.StoreEvent, error)
}

type BackupService struct {
	stores *Failover
	events StoreEventLister
	logger *slog.Logger
}

func NewBackupService(stores *Failover, events StoreEventLister, logger *slog.Logger) *BackupService {
	return &BackupService{
		stores: stores,
		events: events,
		logger: logger,
	}
}

// Export collects every collection into one document.
func (bs *BackupService) Export(ctx context.Context) (*models.Document, error) {
	return WithFallback(ctx, bs.stores, "backup.export", func(ctx context.Context, store models.Store) (*models.Document, error) {
		return exportFrom(ctx, store)
	})
}

func exportFrom(ctx context.Context, store models.Store) (*models.Document, error) {
	var (
		doc = &models.Document{}
		err error
	)
	if doc.Items, err = store.ListItems(ctx); err != nil {
		return nil, err
	}
	if doc.Packages, err = store.ListPackages(ctx); err != nil {
		return nil, err
	}
	if doc.Bookings, err = store.ListBookings(ctx); err != nil {
		return nil, err
	}
	if doc.Messages, err = store.ListMessages(ctx); err != nil {
		return nil, err
	}
	if doc.Testimonials, err = store.ListTestimonials(ctx); err != nil {
		return nil, err
	}
	if doc.Users, err = store.ListUsers(ctx); err != nil {
		return nil, err
	}
	if doc.Settings, err = store.GetSettings(ctx); err != nil {
		return nil, err
	}
	doc.Normalize()
	return doc, nil
}

// Import replaces the authoritative store's contents with doc.
func (bs *BackupService) Import(ctx context.Context, doc *models.Document) error {
	if doc == nil {
		return apperrors.Validation("Backup document is required")
	}
	doc.Normalize()
	_, err := OnAuthoritative(ctx, bs.stores, func(ctx context.Context, store models.Store) (struct{}, error) {
		return struct{}{}, store.ReplaceAll(ctx, doc)
	})
	if err != nil {
		return err
	}
	bs.logger.Warn("Backup restored",
		"items", len(doc.Items),
		"bookings", len(doc.Bookings),
		"users", len(doc.Users),
	)
	return nil
}

// Reset removes every booking. Stock is not returned.
func (bs *BackupService) Reset(ctx context.Context) error {
	_, err := OnAuthoritative(ctx, bs.stores, func(ctx context.Context, store models.Store) (struct{}, error) {
		return struct{}{}, store.ClearBookings(ctx)
	})
	if err != nil {
		return err
	}
	bs.logger.Warn("All bookings cleared")
	return nil
}

func (bs *BackupService) StoreEvents(ctx context.Context, limit int) ([]*models.StoreEvent, error) {
	if bs.events == nil {
		return []*models.StoreEvent{}, nil
	}
	if limit <= 0 {
		limit = defaultStoreEventsLimit
	}
	events, err := bs.events.ListStoreEvents(ctx, limit)
	if err != nil {
		return nil, apperrors.Internal("failed to list store events", err)
	}
	return events, nil
}
