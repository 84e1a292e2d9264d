package models

import (
	"context"
	"strconv"

	"github.com/joshua-takyi/eventrentals/internal/apperrors"
	"github.com/supabase-community/postgrest-go"
)

type ItemRepo interface {
	ListItems(ctx context.Context) ([]Item, error)
	GetItem(ctx context.Context, id string) (*Item, error)
	GetItemsByIDs(ctx context.Context, ids []string) ([]Item, error)
	CreateItem(ctx context.Context, item *Item) (*Item, error)
	UpdateItem(ctx context.Context, id string, fields map[string]any) (*Item, error)
	DeleteItem(ctx context.Context, id string) error
	// CompareAndSetItemQuantity writes next only if the stored quantity still
	// equals expected. It reports whether the write happened.
	CompareAndSetItemQuantity(ctx context.Context, id string, expected, next int) (bool, error)
}

func (su *SupabaseRepo) ListItems(ctx context.Context) ([]Item, error) {
	return selectRows[Item](ctx, su, ItemsTable, ItemFields, func(q *postgrest.FilterBuilder) *postgrest.FilterBuilder {
		return q.Order(ItemFields.Column("createdAt"), newestFirst)
	})
}

func (su *SupabaseRepo) GetItem(ctx context.Context, id string) (*Item, error) {
	return selectByID[Item](ctx, su, ItemsTable, ItemFields, id, "Item")
}

func (su *SupabaseRepo) GetItemsByIDs(ctx context.Context, ids []string) ([]Item, error) {
	if len(ids) == 0 {
		return []Item{}, nil
	}
	return selectRows[Item](ctx, su, ItemsTable, ItemFields, func(q *postgrest.FilterBuilder) *postgrest.FilterBuilder {
		return q.In("id", ids)
	})
}

func (su *SupabaseRepo) CreateItem(ctx context.Context, item *Item) (*Item, error) {
	return insertRow[Item](ctx, su, ItemsTable, ItemFields, item)
}

func (su *SupabaseRepo) UpdateItem(ctx context.Context, id string, fields map[string]any) (*Item, error) {
	return updateRow[Item](ctx, su, ItemsTable, ItemFields, id, fields, "Item")
}

func (su *SupabaseRepo) DeleteItem(ctx context.Context, id string) error {
	return deleteRow(ctx, su, ItemsTable, id, "Item")
}

func (su *SupabaseRepo) CompareAndSetItemQuantity(ctx context.Context, id string, expected, next int) (bool, error) {
	query := su.from(ItemsTable).
		Update(map[string]any{"quantity": next}, "representation", "").
		Eq("id", id).
		Eq("quantity", strconv.Itoa(expected))

	raw, err := su.execute(ctx, query)
	if err != nil {
		return false, err
	}
	rows, err := decodeRows[Item](raw, ItemFields)
	if err != nil {
		return false, apperrors.Backend(su.Name(), err)
	}
	return len(rows) == 1, nil
}
