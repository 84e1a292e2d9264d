package services

import (
	"context"

	"github.com/joshua-takyi/eventrentals/internal/apperrors"
	"github.com/joshua-takyi/eventrentals/internal/models"
)

type SettingsService struct {
	stores *Failover
}

func NewSettingsService(stores *Failover) *SettingsService {
	return &SettingsService{stores: stores}
}

func (ss *SettingsService) GetSettings(ctx context.Context) (models.Settings, error) {
	settings, err := WithFallback(ctx, ss.stores, "settings.get", func(ctx context.Context, store models.Store) (models.Settings, error) {
		return store.GetSettings(ctx)
	})
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = models.Settings{}
	}
	return settings, nil
}

// MergeSettings overlays patch onto the stored settings; keys absent from
// patch keep their current value.
func (ss *SettingsService) MergeSettings(ctx context.Context, patch models.Settings) (models.Settings, error) {
	if len(patch) == 0 {
		return nil, apperrors.Validation("No settings to update")
	}
	return OnAuthoritative(ctx, ss.stores, func(ctx context.Context, store models.Store) (models.Settings, error) {
		current, err := store.GetSettings(ctx)
		if err != nil {
			return nil, err
		}
		merged := models.Settings{}
		for k, v := range current {
			merged[k] = v
		}
		for k, v := range patch {
			merged[k] = v
		}
		return store.SaveSettings(ctx, merged)
	})
}
