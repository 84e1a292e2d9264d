package models

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/joshua-takyi/eventrentals/internal/apperrors"
	"github.com/supabase-community/postgrest-go"
)

const (
	ItemsTable        = "items"
	PackagesTable     = "packages"
	BookingsTable     = "bookings"
	MessagesTable     = "messages"
	TestimonialsTable = "testimonials"
	UsersTable        = "users"
	SettingsTable     = "settings"
)

var newestFirst = &postgrest.OrderOpts{Ascending: false}

type queryResult struct {
	raw []byte
	err error
}

// execute runs a PostgREST request, bounded by ctx. The underlying client has
// no cancellation hook, so a timed-out request is abandoned rather than
// aborted.
func (su *SupabaseRepo) execute(ctx context.Context, query *postgrest.FilterBuilder) ([]byte, error) {
	resultChan := make(chan queryResult, 1)
	go func() {
		raw, _, err := query.Execute()
		resultChan <- queryResult{raw: raw, err: err}
	}()

	select {
	case res := <-resultChan:
		if res.err != nil {
			return nil, su.classify(res.err)
		}
		return res.raw, nil
	case <-ctx.Done():
		return nil, apperrors.Backend(su.Name(), fmt.Errorf("query timed out: %w", ctx.Err()))
	}
}

// classify separates data errors the caller must see from store failures.
func (su *SupabaseRepo) classify(err error) error {
	msg := err.Error()
	if strings.Contains(msg, "23505") || strings.Contains(msg, "duplicate key") {
		return apperrors.Conflict("record already exists")
	}
	return apperrors.Backend(su.Name(), err)
}

func (su *SupabaseRepo) from(table string) *postgrest.QueryBuilder {
	return su.supabaseClient.From(table)
}

func selectRows[T any](ctx context.Context, su *SupabaseRepo, table string, m FieldMap, filter func(*postgrest.FilterBuilder) *postgrest.FilterBuilder) ([]T, error) {
	query := su.from(table).Select("*", "", false)
	if filter != nil {
		query = filter(query)
	}
	raw, err := su.execute(ctx, query)
	if err != nil {
		return nil, err
	}
	rows, err := decodeRows[T](raw, m)
	if err != nil {
		return nil, apperrors.Backend(su.Name(), err)
	}
	return rows, nil
}

func selectByID[T any](ctx context.Context, su *SupabaseRepo, table string, m FieldMap, id, resource string) (*T, error) {
	rows, err := selectRows[T](ctx, su, table, m, func(q *postgrest.FilterBuilder) *postgrest.FilterBuilder {
		return q.Eq("id", id)
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperrors.NotFound(resource)
	}
	return &rows[0], nil
}

func insertRow[T any](ctx context.Context, su *SupabaseRepo, table string, m FieldMap, v any) (*T, error) {
	row, err := ToRow(v, m)
	if err != nil {
		return nil, apperrors.Internal("failed to map record", err)
	}
	raw, err := su.execute(ctx, su.from(table).Insert(row, false, "", "representation", ""))
	if err != nil {
		return nil, err
	}
	rows, err := decodeRows[T](raw, m)
	if err != nil {
		return nil, apperrors.Backend(su.Name(), err)
	}
	if len(rows) == 0 {
		return nil, apperrors.Backend(su.Name(), errors.New("insert returned no rows"))
	}
	return &rows[0], nil
}

func updateRow[T any](ctx context.Context, su *SupabaseRepo, table string, m FieldMap, id string, fields map[string]any, resource string) (*T, error) {
	if len(fields) == 0 {
		return selectByID[T](ctx, su, table, m, id, resource)
	}
	raw, err := su.execute(ctx, su.from(table).Update(m.ToStorage(fields), "representation", "").Eq("id", id))
	if err != nil {
		return nil, err
	}
	rows, err := decodeRows[T](raw, m)
	if err != nil {
		return nil, apperrors.Backend(su.Name(), err)
	}
	if len(rows) == 0 {
		return nil, apperrors.NotFound(resource)
	}
	return &rows[0], nil
}

func deleteRow(ctx context.Context, su *SupabaseRepo, table, id, resource string) error {
	raw, err := su.execute(ctx, su.from(table).Delete("representation", "").Eq("id", id))
	if err != nil {
		return err
	}
	var deleted []map[string]any
	if err := json.Unmarshal(raw, &deleted); err != nil {
		return apperrors.Backend(su.Name(), err)
	}
	if len(deleted) == 0 {
		return apperrors.NotFound(resource)
	}
	return nil
}

func (su *SupabaseRepo) clearTable(ctx context.Context, table string) error {
	// PostgREST refuses unfiltered deletes; every row has an id.
	_, err := su.execute(ctx, su.from(table).Delete("minimal", "").Not("id", "is", "null"))
	return err
}

// replaceTable upserts records and then prunes rows absent from them, so a
// failed upsert leaves the previous rows in place.
func (su *SupabaseRepo) replaceTable(ctx context.Context, table string, m FieldMap, records []any) error {
	rows := make([]map[string]any, 0, len(records))
	keep := make([]string, 0, len(records))
	for _, rec := range records {
		row, err := ToRow(rec, m)
		if err != nil {
			return apperrors.Internal("failed to map record", err)
		}
		if id, ok := row["id"].(string); ok && id != "" {
			keep = append(keep, strconv.Quote(id))
		}
		rows = append(rows, row)
	}

	if len(rows) > 0 {
		if _, err := su.execute(ctx, su.from(table).Insert(rows, true, "id", "minimal", "")); err != nil {
			return err
		}
	}
	if len(keep) == 0 {
		return su.clearTable(ctx, table)
	}
	_, err := su.execute(ctx, su.from(table).Delete("minimal", "").Not("id", "in", "("+strings.Join(keep, ",")+")"))
	return err
}

func (su *SupabaseRepo) ReplaceAll(ctx context.Context, doc *Document) error {
	doc.Normalize()
	collections := []struct {
		table   string
		fields  FieldMap
		records []any
	}{
		{BookingsTable, BookingFields, toAny(doc.Bookings)},
		{ItemsTable, ItemFields, toAny(doc.Items)},
		{PackagesTable, PackageFields, toAny(doc.Packages)},
		{MessagesTable, MessageFields, toAny(doc.Messages)},
		{TestimonialsTable, TestimonialFields, toAny(doc.Testimonials)},
		{UsersTable, UserFields, toAny(doc.Users)},
	}
	for _, c := range collections {
		if err := su.replaceTable(ctx, c.table, c.fields, c.records); err != nil {
			return fmt.Errorf("failed to restore %s: %w", c.table, err)
		}
	}
	if _, err := su.SaveSettings(ctx, doc.Settings); err != nil {
		return fmt.Errorf("failed to restore settings: %w", err)
	}
	return nil
}

func toAny[T any](in []T) []any {
	out := make([]any, len(in))
	for i := range in {
		out[i] = in[i]
	}
	return out
}
