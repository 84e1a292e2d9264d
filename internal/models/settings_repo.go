package models

import (
	"context"

	"github.com/joshua-takyi/eventrentals/internal/apperrors"
	"github.com/supabase-community/postgrest-go"
)

type SettingsRepo interface {
	GetSettings(ctx context.Context) (Settings, error)
	SaveSettings(ctx context.Context, settings Settings) (Settings, error)
}

// settingsRow is the single remote row holding the settings blob.
type settingsRow struct {
	ID      string   `json:"id"`
	Content Settings `json:"content"`
}

func (su *SupabaseRepo) GetSettings(ctx context.Context) (Settings, error) {
	rows, err := selectRows[settingsRow](ctx, su, SettingsTable, FieldMap{}, func(q *postgrest.FilterBuilder) *postgrest.FilterBuilder {
		return q.Eq("id", SettingsRowID)
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 || rows[0].Content == nil {
		return Settings{}, nil
	}
	return rows[0].Content, nil
}

func (su *SupabaseRepo) SaveSettings(ctx context.Context, settings Settings) (Settings, error) {
	if settings == nil {
		settings = Settings{}
	}
	row := settingsRow{ID: SettingsRowID, Content: settings}
	raw, err := su.execute(ctx, su.from(SettingsTable).Insert(row, true, "id", "representation", ""))
	if err != nil {
		return nil, err
	}
	rows, err := decodeRows[settingsRow](raw, FieldMap{})
	if err != nil {
		return nil, apperrors.Backend(su.Name(), err)
	}
	if len(rows) == 0 {
		return settings, nil
	}
	return rows[0].Content, nil
}
