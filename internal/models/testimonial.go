package models

import (
	"strings"
	"time"
)

type Testimonial struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name" validate:"required"`
	EventType string    `json:"eventType"`
	Content   string    `json:"content" validate:"required"`
	Rating    int       `json:"rating" validate:"min=1,max=5"`
	CreatedAt time.Time `json:"createdAt"`
}

func (t *Testimonial) Sanitize() {
	t.Name = strings.TrimSpace(t.Name)
	t.EventType = strings.TrimSpace(t.EventType)
	t.Content = strings.TrimSpace(t.Content)
	if t.Rating == 0 {
		t.Rating = 5
	}
}
