package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/joshua-takyi/eventrentals/internal/apperrors"
	"github.com/joshua-takyi/eventrentals/internal/models"
)

type TestimonialService struct {
	stores *Failover
}

func NewTestimonialService(stores *Failover) *TestimonialService {
	return &TestimonialService{stores: stores}
}

func (ts *TestimonialService) ListTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	return WithFallback(ctx, ts.stores, "testimonials.list", func(ctx context.Context, store models.Store) ([]models.Testimonial, error) {
		return store.ListTestimonials(ctx)
	})
}

func (ts *TestimonialService) CreateTestimonial(ctx context.Context, t *models.Testimonial) (*models.Testimonial, error) {
	t.Sanitize()
	if err := models.Validate.Struct(t); err != nil {
		return nil, apperrors.Validation("%s", models.ValidationMessage(err))
	}
	t.ID = uuid.NewString()
	t.CreatedAt = time.Now().UTC()

	return WithFallback(ctx, ts.stores, "testimonials.create", func(ctx context.Context, store models.Store) (*models.Testimonial, error) {
		return store.CreateTestimonial(ctx, t)
	})
}

func (ts *TestimonialService) DeleteTestimonial(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.Validation("Testimonial id is required")
	}
	_, err := OnAuthoritative(ctx, ts.stores, func(ctx context.Context, store models.Store) (struct{}, error) {
		return struct{}{}, store.DeleteTestimonial(ctx, id)
	})
	return err
}
