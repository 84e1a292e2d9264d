package models

import (
	"context"

	"github.com/joshua-takyi/eventrentals/internal/apperrors"
	"github.com/supabase-community/postgrest-go"
)

type BookingRepo interface {
	// ListBookings returns bookings newest first.
	ListBookings(ctx context.Context) ([]Booking, error)
	GetBooking(ctx context.Context, id string) (*Booking, error)
	CreateBooking(ctx context.Context, booking *Booking) (*Booking, error)
	UpdateBooking(ctx context.Context, id string, fields map[string]any) (*Booking, error)
	// CancelBooking applies fields and sets the status to Cancelled as one
	// conditional write. cancelled reports whether the booking was not
	// cancelled before this call.
	CancelBooking(ctx context.Context, id string, fields map[string]any) (booking *Booking, cancelled bool, err error)
	DeleteBooking(ctx context.Context, id string) error
	ClearBookings(ctx context.Context) error
}

func (su *SupabaseRepo) ListBookings(ctx context.Context) ([]Booking, error) {
	return selectRows[Booking](ctx, su, BookingsTable, BookingFields, func(q *postgrest.FilterBuilder) *postgrest.FilterBuilder {
		return q.Order(BookingFields.Column("createdAt"), newestFirst)
	})
}

func (su *SupabaseRepo) GetBooking(ctx context.Context, id string) (*Booking, error) {
	return selectByID[Booking](ctx, su, BookingsTable, BookingFields, id, "Booking")
}

func (su *SupabaseRepo) CreateBooking(ctx context.Context, booking *Booking) (*Booking, error) {
	return insertRow[Booking](ctx, su, BookingsTable, BookingFields, booking)
}

func (su *SupabaseRepo) UpdateBooking(ctx context.Context, id string, fields map[string]any) (*Booking, error) {
	return updateRow[Booking](ctx, su, BookingsTable, BookingFields, id, fields, "Booking")
}

func (su *SupabaseRepo) CancelBooking(ctx context.Context, id string, fields map[string]any) (*Booking, bool, error) {
	cancel := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		cancel[k] = v
	}
	cancel["status"] = string(StatusCancelled)

	query := su.from(BookingsTable).
		Update(BookingFields.ToStorage(cancel), "representation", "").
		Eq("id", id).
		Neq("status", string(StatusCancelled))
	raw, err := su.execute(ctx, query)
	if err != nil {
		return nil, false, err
	}
	rows, err := decodeRows[Booking](raw, BookingFields)
	if err != nil {
		return nil, false, apperrors.Backend(su.Name(), err)
	}
	if len(rows) > 0 {
		return &rows[0], true, nil
	}

	// missing, or cancelled by someone else first
	booking, err := su.UpdateBooking(ctx, id, cancel)
	return booking, false, err
}

func (su *SupabaseRepo) DeleteBooking(ctx context.Context, id string) error {
	return deleteRow(ctx, su, BookingsTable, id, "Booking")
}

func (su *SupabaseRepo) ClearBookings(ctx context.Context) error {
	return su.clearTable(ctx, BookingsTable)
}
