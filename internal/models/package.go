package models

import (
	"strings"
	"time"
)

// Package is a priced bundle shown in the catalog. It carries no stock.
type Package struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description"`
	Price       float64   `json:"price" validate:"gte=0"`
	Images      []string  `json:"images"`
	IsFeatured  bool      `json:"isFeatured"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (p *Package) Sanitize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)
	if p.Images == nil {
		p.Images = []string{}
	}
}

type PackageUpdate struct {
	Name        *string   `json:"name" validate:"omitempty,min=1"`
	Description *string   `json:"description"`
	Price       *float64  `json:"price" validate:"omitempty,gte=0"`
	Images      *[]string `json:"images"`
	IsFeatured  *bool     `json:"isFeatured"`
}

func (u PackageUpdate) Fields() map[string]any {
	fields := map[string]any{}
	if u.Name != nil {
		fields["name"] = strings.TrimSpace(*u.Name)
	}
	if u.Description != nil {
		fields["description"] = *u.Description
	}
	if u.Price != nil {
		fields["price"] = *u.Price
	}
	if u.Images != nil {
		fields["images"] = *u.Images
	}
	if u.IsFeatured != nil {
		fields["isFeatured"] = *u.IsFeatured
	}
	return fields
}
