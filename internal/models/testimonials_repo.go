package models

import (
	"context"

	"github.com/supabase-community/postgrest-go"
)

type TestimonialRepo interface {
	ListTestimonials(ctx context.Context) ([]Testimonial, error)
	CreateTestimonial(ctx context.Context, t *Testimonial) (*Testimonial, error)
	DeleteTestimonial(ctx context.Context, id string) error
}

func (su *SupabaseRepo) ListTestimonials(ctx context.Context) ([]Testimonial, error) {
	return selectRows[Testimonial](ctx, su, TestimonialsTable, TestimonialFields, func(q *postgrest.FilterBuilder) *postgrest.FilterBuilder {
		return q.Order(TestimonialFields.Column("createdAt"), newestFirst)
	})
}

func (su *SupabaseRepo) CreateTestimonial(ctx context.Context, t *Testimonial) (*Testimonial, error) {
	return insertRow[Testimonial](ctx, su, TestimonialsTable, TestimonialFields, t)
}

func (su *SupabaseRepo) DeleteTestimonial(ctx context.Context, id string) error {
	return deleteRow(ctx, su, TestimonialsTable, id, "Testimonial")
}
