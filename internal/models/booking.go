package models

import (
	"strings"
	"time"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "Pending"
	StatusApproved  BookingStatus = "Approved"
	StatusCompleted BookingStatus = "Completed"
	StatusCancelled BookingStatus = "Cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// BookingLine references an Item by id. Name and PricePerDay are a snapshot
// taken at creation time; nothing ties the line back to the item afterwards.
type BookingLine struct {
	ID          string  `json:"id" validate:"required"`
	Quantity    int     `json:"quantity" validate:"gt=0"`
	Name        string  `json:"name,omitempty"`
	PricePerDay float64 `json:"pricePerDay,omitempty"`
}

type Booking struct {
	ID           string        `json:"_id"`
	CustomerName string        `json:"customerName"`
	Email        string        `json:"email"`
	Phone        string        `json:"phone"`
	EventDate    string        `json:"eventDate"`
	EventType    string        `json:"eventType"`
	Location     string        `json:"location"`
	Items        []BookingLine `json:"items"`
	TotalAmount  float64       `json:"totalAmount"`
	Status       BookingStatus `json:"status"`
	Notes        string        `json:"notes"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// BookingInput is the public booking request.
type BookingInput struct {
	CustomerName string        `json:"customerName" validate:"required"`
	Email        string        `json:"email" validate:"omitempty,email"`
	Phone        string        `json:"phone" validate:"required"`
	EventDate    string        `json:"eventDate" validate:"required"`
	EventType    string        `json:"eventType" validate:"required"`
	Location     string        `json:"location" validate:"required"`
	Items        []BookingLine `json:"items" validate:"dive"`
	TotalAmount  *float64      `json:"totalAmount" validate:"omitempty,gte=0"`
	Notes        string        `json:"notes"`
}

func (in *BookingInput) Sanitize() {
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.EventDate = strings.TrimSpace(in.EventDate)
	in.EventType = strings.TrimSpace(in.EventType)
	in.Location = strings.TrimSpace(in.Location)
	in.Notes = strings.TrimSpace(in.Notes)
	for i := range in.Items {
		in.Items[i].ID = strings.TrimSpace(in.Items[i].ID)
	}
}

// BookingUpdate carries the fields an admin may change.
type BookingUpdate struct {
	Status       *BookingStatus `json:"status"`
	CustomerName *string        `json:"customerName" validate:"omitempty,min=1"`
	Email        *string        `json:"email" validate:"omitempty,email"`
	Phone        *string        `json:"phone" validate:"omitempty,min=1"`
	EventDate    *string        `json:"eventDate" validate:"omitempty,min=1"`
	EventType    *string        `json:"eventType"`
	Location     *string        `json:"location" validate:"omitempty,min=1"`
	TotalAmount  *float64       `json:"totalAmount" validate:"omitempty,gte=0"`
	Notes        *string        `json:"notes"`
}

// Sanitize trims the provided values so blank input fails validation
// instead of clearing a required field.
func (u *BookingUpdate) Sanitize() {
	for _, v := range []*string{u.CustomerName, u.Email, u.Phone, u.EventDate, u.EventType, u.Location, u.Notes} {
		if v != nil {
			*v = strings.TrimSpace(*v)
		}
	}
}

func (u BookingUpdate) Fields() map[string]any {
	fields := map[string]any{}
	set := func(key string, v *string) {
		if v != nil {
			fields[key] = *v
		}
	}
	if u.Status != nil {
		fields["status"] = string(*u.Status)
	}
	set("customerName", u.CustomerName)
	set("email", u.Email)
	set("phone", u.Phone)
	set("eventDate", u.EventDate)
	set("eventType", u.EventType)
	set("location", u.Location)
	set("notes", u.Notes)
	if u.TotalAmount != nil {
		fields["totalAmount"] = *u.TotalAmount
	}
	return fields
}
