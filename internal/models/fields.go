package models

import (
	"encoding/json"
	"fmt"
)

// FieldMap translates record keys between the application-facing naming
// (camelCase, identifier under "_id") and the remote store's column naming
// (snake_case, identifier under "id"). Keys without an entry are identical in
// both conventions.
type FieldMap struct {
	toStorage  map[string]string
	toExternal map[string]string
}

func NewFieldMap(externalToStorage map[string]string) FieldMap {
	m := FieldMap{
		toStorage:  make(map[string]string, len(externalToStorage)),
		toExternal: make(map[string]string, len(externalToStorage)),
	}
	for ext, col := range externalToStorage {
		m.toStorage[ext] = col
		m.toExternal[col] = ext
	}
	return m
}

var (
	ItemFields = NewFieldMap(map[string]string{
		"_id":         "id",
		"pricePerDay": "price_per_day",
		"isFeatured":  "is_featured",
		"createdAt":   "created_at",
	})
	PackageFields = NewFieldMap(map[string]string{
		"_id":        "id",
		"isFeatured": "is_featured",
		"createdAt":  "created_at",
	})
	BookingFields = NewFieldMap(map[string]string{
		"_id":          "id",
		"customerName": "customer_name",
		"eventDate":    "event_date",
		"eventType":    "event_type",
		"totalAmount":  "total_amount",
		"createdAt":    "created_at",
	})
	MessageFields = NewFieldMap(map[string]string{
		"_id":       "id",
		"isRead":    "is_read",
		"createdAt": "created_at",
	})
	TestimonialFields = NewFieldMap(map[string]string{
		"_id":       "id",
		"eventType": "event_type",
		"createdAt": "created_at",
	})
	UserFields = NewFieldMap(map[string]string{
		"_id":          "id",
		"passwordHash": "password_hash",
		"createdAt":    "created_at",
	})
)

// Column returns the storage column for an external key.
func (m FieldMap) Column(external string) string {
	if col, ok := m.toStorage[external]; ok {
		return col
	}
	return external
}

func (m FieldMap) ToStorage(rec map[string]any) map[string]any {
	out := make(map[string]any, len(rec))
	for k, v := range rec {
		out[m.Column(k)] = v
	}
	return out
}

func (m FieldMap) FromStorage(row map[string]any) map[string]any {
	out := make(map[string]any, len(row))
	for k, v := range row {
		if ext, ok := m.toExternal[k]; ok {
			out[ext] = v
			continue
		}
		out[k] = v
	}
	return out
}

// toRecord converts an entity into a generic map keyed by its json names.
func toRecord(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record: %v", err)
	}
	var rec map[string]any
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %v", err)
	}
	return rec, nil
}

func fromRecord[T any](rec map[string]any) (T, error) {
	var out T
	data, err := json.Marshal(rec)
	if err != nil {
		return out, fmt.Errorf("failed to marshal record: %v", err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("failed to convert record: %v", err)
	}
	return out, nil
}

// ToRow converts an entity into a storage row.
func ToRow(v any, m FieldMap) (map[string]any, error) {
	rec, err := toRecord(v)
	if err != nil {
		return nil, err
	}
	return m.ToStorage(rec), nil
}

// FromRow converts a storage row back into an entity.
func FromRow[T any](row map[string]any, m FieldMap) (T, error) {
	return fromRecord[T](m.FromStorage(row))
}

func decodeRows[T any](raw []byte, m FieldMap) ([]T, error) {
	var rows []map[string]any
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rows: %v", err)
	}
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		v, err := FromRow[T](row, m)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// applyFields overlays a partial update (external keys) onto a record.
func applyFields[T any](rec T, fields map[string]any) (T, error) {
	base, err := toRecord(rec)
	if err != nil {
		return rec, err
	}
	for k, v := range fields {
		base[k] = v
	}
	return fromRecord[T](base)
}
