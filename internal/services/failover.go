package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/joshua-takyi/eventrentals/internal/apperrors"
	"github.com/joshua-takyi/eventrentals/internal/helpers"
	"github.com/joshua-takyi/eventrentals/internal/metrics"
	"github.com/joshua-takyi/eventrentals/internal/models"
	"github.com/sony/gobreaker"
)

const eventRecordTimeout = 2 * time.Second

type StoreEventRecorder interface {
	RecordStoreEvent(ctx context.Context, event *models.StoreEvent) error
}

type FailoverConfig struct {
	// Timeout bounds every single store call; a timeout counts as a
	// connectivity failure.
	Timeout     time.Duration
	MaxFailures uint32
	Cooldown    time.Duration
}

// Failover selects between the remote store and the local fallback store.
// Calls go to the remote store through a circuit breaker; infrastructure
// failures (and an open breaker) divert the call to the local store.
// Business-rule errors are returned as-is and never trip the breaker.
type Failover struct {
	primary  models.Store
	fallback models.Store
	breaker  *gobreaker.CircuitBreaker
	recorder StoreEventRecorder
	logger   *slog.Logger
	timeout  time.Duration
}

// NewFailover builds the store selector. primary may be nil, in which case
// every call is served by fallback. recorder may be nil.
func NewFailover(primary, fallback models.Store, recorder StoreEventRecorder, logger *slog.Logger, cfg FailoverConfig) *Failover {
	if cfg.MaxFailures == 0 {
		cfg.MaxFailures = 3
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = 30 * time.Second
	}

	f := &Failover{
		primary:  primary,
		fallback: fallback,
		recorder: recorder,
		logger:   logger,
		timeout:  cfg.Timeout,
	}

	f.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "remote-store",
		MaxRequests: 1,
		Timeout:     cfg.Cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.MaxFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || apperrors.IsBusiness(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Store circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})
	return f
}

// Mode describes the configured persistence topology.
func (f *Failover) Mode() string {
	if f.primary == nil {
		return f.fallback.Name()
	}
	return f.primary.Name() + "+" + f.fallback.Name()
}

func (f *Failover) BreakerState() string {
	if f.primary == nil {
		return "disabled"
	}
	return f.breaker.State().String()
}

func (f *Failover) Fallback() models.Store {
	return f.fallback
}

func (f *Failover) bounded(ctx context.Context) (context.Context, context.CancelFunc) {
	if f.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, f.timeout)
}

func callStore[T any](ctx context.Context, f *Failover, store models.Store, fn func(context.Context, models.Store) (T, error)) (T, error) {
	ctx, cancel := f.bounded(ctx)
	defer cancel()
	return fn(ctx, store)
}

func callPrimary[T any](ctx context.Context, f *Failover, fn func(context.Context, models.Store) (T, error)) (T, error) {
	var result T
	_, err := f.breaker.Execute(func() (interface{}, error) {
		r, err := callStore(ctx, f, f.primary, fn)
		if err != nil {
			return nil, err
		}
		result = r
		return nil, nil
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		err = apperrors.Backend(f.primary.Name(), err)
	}
	return result, err
}

// WithFallback runs fn against the remote store, falling back to the local
// store when the remote store is unavailable. The error is returned only when
// it is a business error or the fallback store failed as well.
func WithFallback[T any](ctx context.Context, f *Failover, op string, fn func(context.Context, models.Store) (T, error)) (T, error) {
	if f.primary == nil {
		return callStore(ctx, f, f.fallback, fn)
	}

	result, err := callPrimary(ctx, f, fn)
	if err == nil || apperrors.IsBusiness(err) {
		return result, err
	}

	f.activated(ctx, op, err)
	return callStore(ctx, f, f.fallback, fn)
}

// OnAuthoritative runs fn against the authoritative store only: the remote
// store when configured, otherwise the local store. There is no fallback.
func OnAuthoritative[T any](ctx context.Context, f *Failover, fn func(context.Context, models.Store) (T, error)) (T, error) {
	if f.primary == nil {
		return callStore(ctx, f, f.fallback, fn)
	}
	return callPrimary(ctx, f, fn)
}

func (f *Failover) activated(ctx context.Context, op string, cause error) {
	requestID := helpers.RequestIDFrom(ctx)
	f.logger.Warn("Primary store failed, serving from fallback store",
		"operation", op,
		"primary", f.primary.Name(),
		"fallback", f.fallback.Name(),
		"request_id", requestID,
		"error", cause,
	)
	metrics.StoreFallbacksTotal.WithLabelValues(op).Inc()

	if f.recorder == nil {
		return
	}
	recordCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), eventRecordTimeout)
	defer cancel()
	event := &models.StoreEvent{
		Operation: op,
		Primary:   f.primary.Name(),
		Fallback:  f.fallback.Name(),
		Error:     cause.Error(),
		RequestID: requestID,
	}
	if err := f.recorder.RecordStoreEvent(recordCtx, event); err != nil {
		f.logger.Error("Failed to record store event", "operation", op, "error", err)
	}
}
