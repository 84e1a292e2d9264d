package services

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/joshua-takyi/eventrentals/internal/apperrors"
	"github.com/joshua-takyi/eventrentals/internal/metrics"
	"github.com/joshua-takyi/eventrentals/internal/models"
)

type BookingService struct {
	stores    *Failover
	inventory *InventoryService
	logger    *slog.Logger
}

func NewBookingService(stores *Failover, inventory *InventoryService, logger *slog.Logger) *BookingService {
	return &BookingService{
		stores:    stores,
		inventory: inventory,
		logger:    logger,
	}
}

// CreateBooking reserves stock and persists a Pending booking on the remote
// store, or on the local store when the remote store is unavailable.
func (bs *BookingService) CreateBooking(ctx context.Context, in *models.BookingInput) (*models.Booking, error) {
	in.Sanitize()
	if err := models.Validate.Struct(in); err != nil {
		metrics.BookingsRejectedTotal.WithLabelValues("validation").Inc()
		return nil, apperrors.Validation("%s", models.ValidationMessage(err))
	}

	var persistedOn string
	booking, err := WithFallback(ctx, bs.stores, "bookings.create", func(ctx context.Context, store models.Store) (*models.Booking, error) {
		created, err := bs.createOn(ctx, store, in)
		if err == nil {
			persistedOn = store.Name()
		}
		return created, err
	})
	if err != nil {
		metrics.BookingsRejectedTotal.WithLabelValues(rejectReason(err)).Inc()
		return nil, err
	}

	metrics.BookingsCreatedTotal.WithLabelValues(persistedOn).Inc()
	bs.logger.Info("Booking created",
		"booking_id", booking.ID,
		"store", persistedOn,
		"lines", len(booking.Items),
	)
	return booking, nil
}

func (bs *BookingService) createOn(ctx context.Context, store models.Store, in *models.BookingInput) (*models.Booking, error) {
	reservation, err := bs.inventory.Reserve(ctx, store, in.Items)
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{
		ID:           uuid.NewString(),
		CustomerName: in.CustomerName,
		Email:        in.Email,
		Phone:        in.Phone,
		EventDate:    in.EventDate,
		EventType:    in.EventType,
		Location:     in.Location,
		Items:        reservation.Lines,
		Status:       models.StatusPending,
		Notes:        in.Notes,
		CreatedAt:    time.Now().UTC(),
	}
	if in.TotalAmount != nil {
		booking.TotalAmount = *in.TotalAmount
	} else {
		booking.TotalAmount = LinesTotal(reservation.Lines)
	}

	created, err := store.CreateBooking(ctx, booking)
	if err != nil {
		if relErr := bs.inventory.Release(ctx, store, reservation.Applied); relErr != nil {
			bs.logger.Error("Failed to release stock after booking insert failed",
				"store", store.Name(),
				"error", relErr,
			)
		}
		return nil, err
	}
	return created, nil
}

// LinesTotal sums pricePerDay * quantity over the lines.
func LinesTotal(lines []models.BookingLine) float64 {
	var total float64
	for _, line := range lines {
		total += line.PricePerDay * float64(line.Quantity)
	}
	return total
}

func rejectReason(err error) string {
	switch apperrors.KindOf(err) {
	case apperrors.KindStockInsufficient:
		return "insufficient_stock"
	case apperrors.KindValidation:
		return "validation"
	case apperrors.KindConflict:
		return "conflict"
	default:
		return "store_error"
	}
}

func (bs *BookingService) ListBookings(ctx context.Context) ([]models.Booking, error) {
	bookings, err := WithFallback(ctx, bs.stores, "bookings.list", func(ctx context.Context, store models.Store) ([]models.Booking, error) {
		return store.ListBookings(ctx)
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})
	return bookings, nil
}

func (bs *BookingService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	if id == "" {
		return nil, apperrors.Validation("Booking id is required")
	}
	return WithFallback(ctx, bs.stores, "bookings.get", func(ctx context.Context, store models.Store) (*models.Booking, error) {
		return store.GetBooking(ctx, id)
	})
}

// UpdateBooking applies the provided fields on the authoritative store.
// Moving a booking into Cancelled returns its items to stock.
func (bs *BookingService) UpdateBooking(ctx context.Context, id string, upd models.BookingUpdate) (*models.Booking, error) {
	if id == "" {
		return nil, apperrors.Validation("Booking id is required")
	}
	upd.Sanitize()
	if err := models.Validate.Struct(upd); err != nil {
		return nil, apperrors.Validation("%s", models.ValidationMessage(err))
	}
	if upd.Status != nil && !upd.Status.Valid() {
		return nil, apperrors.Validation("Invalid status: %s", *upd.Status)
	}
	fields := upd.Fields()
	if len(fields) == 0 {
		return nil, apperrors.Validation("No fields to update")
	}

	cancelling := upd.Status != nil && *upd.Status == models.StatusCancelled
	return OnAuthoritative(ctx, bs.stores, func(ctx context.Context, store models.Store) (*models.Booking, error) {
		if !cancelling {
			return store.UpdateBooking(ctx, id, fields)
		}
		booking, cancelled, err := store.CancelBooking(ctx, id, fields)
		if err != nil {
			return nil, err
		}
		if cancelled {
			bs.restock(ctx, store, booking)
		}
		return booking, nil
	})
}

func (bs *BookingService) restock(ctx context.Context, store models.Store, booking *models.Booking) {
	changes := make([]StockChange, 0, len(booking.Items))
	for _, line := range booking.Items {
		changes = append(changes, StockChange{ItemID: line.ID, Name: line.Name, Quantity: line.Quantity})
	}
	if err := bs.inventory.Release(ctx, store, changes); err != nil {
		bs.logger.Error("Failed to restock cancelled booking",
			"booking_id", booking.ID,
			"error", err,
		)
		return
	}
	bs.logger.Info("Cancelled booking restocked", "booking_id", booking.ID, "lines", len(changes))
}

func (bs *BookingService) DeleteBooking(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.Validation("Booking id is required")
	}
	_, err := OnAuthoritative(ctx, bs.stores, func(ctx context.Context, store models.Store) (struct{}, error) {
		return struct{}{}, store.DeleteBooking(ctx, id)
	})
	return err
}
