package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/joshua-takyi/eventrentals/internal/apperrors"
	"github.com/joshua-takyi/eventrentals/internal/metrics"
	"github.com/joshua-takyi/eventrentals/internal/models"
)

const (
	defaultReserveAttempts = 5
	releaseTimeout         = 5 * time.Second
)

// StockChange is a quantity taken from (or returned to) one item.
type StockChange struct {
	ItemID   string
	Name     string
	Quantity int
}

// Reservation is the outcome of a successful Reserve. Lines are the request
// lines aggregated by item id with name and price snapshots filled in;
// Applied lists the decrements that were written.
type Reservation struct {
	Lines   []models.BookingLine
	Applied []StockChange
}

type InventoryService struct {
	logger      *slog.Logger
	maxAttempts int
}

func NewInventoryService(logger *slog.Logger) *InventoryService {
	return &InventoryService{
		logger:      logger,
		maxAttempts: defaultReserveAttempts,
	}
}

// AggregateLines merges lines that reference the same item, keeping the
// order in which each item first appears.
func AggregateLines(lines []models.BookingLine) ([]models.BookingLine, error) {
	out := make([]models.BookingLine, 0, len(lines))
	index := make(map[string]int, len(lines))
	for _, line := range lines {
		if line.ID == "" {
			return nil, apperrors.Validation("Booking item id is required")
		}
		if line.Quantity <= 0 {
			return nil, apperrors.Validation("Invalid quantity for item %s", line.ID)
		}
		if i, ok := index[line.ID]; ok {
			out[i].Quantity += line.Quantity
			continue
		}
		index[line.ID] = len(out)
		out = append(out, models.BookingLine{ID: line.ID, Quantity: line.Quantity})
	}
	return out, nil
}

// Reserve checks every line against current stock and, only when all of them
// fit, decrements each referenced item with a compare-and-set write. A
// concurrent stock change undoes the decrements made so far and starts over
// from a fresh read. Items that do not exist in the store are not
// constrained.
func (is *InventoryService) Reserve(ctx context.Context, store models.ItemRepo, lines []models.BookingLine) (*Reservation, error) {
	lines, err := AggregateLines(lines)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return &Reservation{Lines: lines}, nil
	}

	ids := make([]string, len(lines))
	for i, line := range lines {
		ids[i] = line.ID
	}

	for attempt := 1; attempt <= is.maxAttempts; attempt++ {
		items, err := store.GetItemsByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		stock := make(map[string]models.Item, len(items))
		for _, item := range items {
			stock[item.ID] = item
		}

		snapshot := make([]models.BookingLine, len(lines))
		for i, line := range lines {
			snapshot[i] = line
			item, ok := stock[line.ID]
			if !ok {
				continue
			}
			if line.Quantity > item.Quantity {
				return nil, apperrors.StockInsufficient(item.Name, item.Quantity)
			}
			snapshot[i].Name = item.Name
			snapshot[i].PricePerDay = item.PricePerDay
		}

		applied, committed, err := is.commit(ctx, store, snapshot, stock)
		if err != nil {
			return nil, err
		}
		if committed {
			return &Reservation{Lines: snapshot, Applied: applied}, nil
		}

		metrics.InventoryCASRetriesTotal.Inc()
		is.logger.Debug("Stock changed during reservation, retrying", "attempt", attempt)
	}

	return nil, apperrors.Conflict("stock changed concurrently, please retry")
}

// commit writes the decrements in line order. On a lost compare-and-set it
// reverts what it applied and reports committed=false.
func (is *InventoryService) commit(ctx context.Context, store models.ItemRepo, lines []models.BookingLine, stock map[string]models.Item) ([]StockChange, bool, error) {
	applied := make([]StockChange, 0, len(lines))
	for _, line := range lines {
		item, ok := stock[line.ID]
		if !ok {
			continue
		}
		swapped, err := store.CompareAndSetItemQuantity(ctx, item.ID, item.Quantity, item.Quantity-line.Quantity)
		if err != nil {
			is.revert(ctx, store, applied)
			return nil, false, err
		}
		if !swapped {
			is.revert(ctx, store, applied)
			return nil, false, nil
		}
		applied = append(applied, StockChange{ItemID: item.ID, Name: item.Name, Quantity: line.Quantity})
	}
	return applied, true, nil
}

func (is *InventoryService) revert(ctx context.Context, store models.ItemRepo, applied []StockChange) {
	if len(applied) == 0 {
		return
	}
	if err := is.Release(ctx, store, applied); err != nil {
		is.logger.Error("Failed to revert stock decrements", "error", err)
	}
}

// Release returns stock to each item. Items that no longer exist are
// skipped. It keeps running after the caller's context ends so that a
// timed-out request still gets its stock back.
func (is *InventoryService) Release(ctx context.Context, store models.ItemRepo, changes []StockChange) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
	defer cancel()

	var errs []error
	for _, change := range changes {
		if change.Quantity <= 0 {
			continue
		}
		if err := is.increment(ctx, store, change); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (is *InventoryService) increment(ctx context.Context, store models.ItemRepo, change StockChange) error {
	for attempt := 1; attempt <= is.maxAttempts; attempt++ {
		item, err := store.GetItem(ctx, change.ItemID)
		if apperrors.Is(err, apperrors.KindNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		swapped, err := store.CompareAndSetItemQuantity(ctx, item.ID, item.Quantity, item.Quantity+change.Quantity)
		if err != nil {
			return err
		}
		if swapped {
			return nil
		}
	}
	return apperrors.Conflict("stock changed concurrently, please retry")
}
