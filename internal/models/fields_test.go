package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func TestItemRowRoundTrip(t *testing.T) {
	item := Item{
		ID:          "chair-1",
		Name:        "Chiavari Chair",
		Category:    "Seating",
		Description: "Gold chair",
		PricePerDay: 12.5,
		Quantity:    40,
		Images:      []string{"https://cdn.example.com/chair.jpg"},
		IsFeatured:  true,
		CreatedAt:   fixedTime,
	}

	row, err := ToRow(item, ItemFields)
	require.NoError(t, err)

	assert.Equal(t, "chair-1", row["id"])
	assert.Equal(t, 12.5, row["price_per_day"])
	assert.Equal(t, true, row["is_featured"])
	assert.Contains(t, row, "created_at")
	assert.NotContains(t, row, "_id")
	assert.NotContains(t, row, "pricePerDay")

	back, err := FromRow[Item](row, ItemFields)
	require.NoError(t, err)
	assert.Equal(t, item, back)
}

func TestBookingRowKeepsLineKeys(t *testing.T) {
	booking := Booking{
		ID:           "b-1",
		CustomerName: "Ama Mensah",
		EventDate:    "2025-06-01",
		Items:        []BookingLine{{ID: "chair-1", Quantity: 3, Name: "Chair", PricePerDay: 2}},
		TotalAmount:  6,
		Status:       StatusPending,
		CreatedAt:    fixedTime,
	}

	row, err := ToRow(booking, BookingFields)
	require.NoError(t, err)

	assert.Equal(t, "Ama Mensah", row["customer_name"])
	assert.Equal(t, "2025-06-01", row["event_date"])
	assert.Equal(t, float64(6), row["total_amount"])

	lines, ok := row["items"].([]any)
	require.True(t, ok)
	line := lines[0].(map[string]any)
	assert.Equal(t, "chair-1", line["id"])
	assert.Equal(t, "Chair", line["name"])
	assert.Equal(t, float64(2), line["pricePerDay"])

	back, err := FromRow[Booking](row, BookingFields)
	require.NoError(t, err)
	assert.Equal(t, booking, back)
}

func TestFieldMapUnknownKeysPassThrough(t *testing.T) {
	out := ItemFields.ToStorage(map[string]any{"name": "Tent", "pricePerDay": 10})
	assert.Equal(t, map[string]any{"name": "Tent", "price_per_day": 10}, out)

	assert.Equal(t, "price_per_day", ItemFields.Column("pricePerDay"))
	assert.Equal(t, "category", ItemFields.Column("category"))
	assert.Equal(t, "id", UserFields.Column("_id"))
}

func TestApplyFieldsOverlaysPartialUpdate(t *testing.T) {
	item := Item{ID: "tent-1", Name: "Tent", Quantity: 2, PricePerDay: 100, CreatedAt: fixedTime}

	updated, err := applyFields(item, map[string]any{"quantity": 7, "isFeatured": true})
	require.NoError(t, err)

	assert.Equal(t, 7, updated.Quantity)
	assert.True(t, updated.IsFeatured)
	assert.Equal(t, "Tent", updated.Name)
	assert.Equal(t, float64(100), updated.PricePerDay)
}

func TestValidationMessage(t *testing.T) {
	in := BookingInput{Email: "not-an-email"}
	err := Validate.Struct(in)
	require.Error(t, err)

	msg := ValidationMessage(err)
	assert.Contains(t, msg, "Missing required fields: customerName, phone, eventDate, eventType, location")
	assert.Contains(t, msg, "Invalid fields: email (email)")
}
