package models

import (
	"strings"
	"time"
)

type Item struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name" validate:"required"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	PricePerDay float64   `json:"pricePerDay" validate:"gte=0"`
	Quantity    int       `json:"quantity" validate:"gte=0"`
	Images      []string  `json:"images"`
	IsFeatured  bool      `json:"isFeatured"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (i *Item) Sanitize() {
	i.Name = strings.TrimSpace(i.Name)
	i.Category = strings.TrimSpace(i.Category)
	i.Description = strings.TrimSpace(i.Description)
	if i.Images == nil {
		i.Images = []string{}
	}
}

// ItemUpdate is a partial update; nil fields are left untouched.
type ItemUpdate struct {
	Name        *string   `json:"name" validate:"omitempty,min=1"`
	Category    *string   `json:"category"`
	Description *string   `json:"description"`
	PricePerDay *float64  `json:"pricePerDay" validate:"omitempty,gte=0"`
	Quantity    *int      `json:"quantity" validate:"omitempty,gte=0"`
	Images      *[]string `json:"images"`
	IsFeatured  *bool     `json:"isFeatured"`
}

// Fields returns the provided fields keyed by their external names.
func (u ItemUpdate) Fields() map[string]any {
	fields := map[string]any{}
	if u.Name != nil {
		fields["name"] = strings.TrimSpace(*u.Name)
	}
	if u.Category != nil {
		fields["category"] = strings.TrimSpace(*u.Category)
	}
	if u.Description != nil {
		fields["description"] = *u.Description
	}
	if u.PricePerDay != nil {
		fields["pricePerDay"] = *u.PricePerDay
	}
	if u.Quantity != nil {
		fields["quantity"] = *u.Quantity
	}
	if u.Images != nil {
		fields["images"] = *u.Images
	}
	if u.IsFeatured != nil {
		fields["isFeatured"] = *u.IsFeatured
	}
	return fields
}
