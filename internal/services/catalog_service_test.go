package services

import (
	"context"
	"testing"

	"github.com/joshua-takyi/eventrentals/internal/apperrors"
	"github.com/joshua-takyi/eventrentals/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeImages struct {
	folders []string
}

func (f *fakeImages) UploadImages(_ context.Context, images []string, folder string) ([]string, error) {
	f.folders = append(f.folders, folder)
	out := make([]string, len(images))
	for i := range images {
		out[i] = "https://cdn.example.com/" + folder + "/" + images[i]
	}
	return out, nil
}

func TestItemServiceCRUDAndFilters(t *testing.T) {
	local := newLocalStore(t)
	images := &fakeImages{}
	is := NewItemService(localOnly(t, local), images)
	ctx := context.Background()

	_, err := is.CreateItem(ctx, &models.Item{Name: "", Quantity: 1})
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))

	_, err = is.CreateItem(ctx, &models.Item{Name: "Chair", Quantity: -1})
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))

	chairItem, err := is.CreateItem(ctx, &models.Item{Name: " Chair ", Category: "Seating", Quantity: 10, Images: []string{"chair.png"}})
	require.NoError(t, err)
	assert.Equal(t, "Chair", chairItem.Name)
	assert.Equal(t, []string{"https://cdn.example.com/items/chair.png"}, chairItem.Images)

	_, err = is.CreateItem(ctx, &models.Item{Name: "Tent", Category: "Shelter", Quantity: 2, IsFeatured: true})
	require.NoError(t, err)

	featured, err := is.ListItems(ctx, ItemFilter{FeaturedOnly: true})
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Equal(t, "Tent", featured[0].Name)

	seating, err := is.ListItems(ctx, ItemFilter{Category: "seating"})
	require.NoError(t, err)
	require.Len(t, seating, 1)
	assert.Equal(t, "Chair", seating[0].Name)

	qty := 12
	updated, err := is.UpdateItem(ctx, chairItem.ID, models.ItemUpdate{Quantity: &qty})
	require.NoError(t, err)
	assert.Equal(t, 12, updated.Quantity)
	assert.Equal(t, "Seating", updated.Category)

	_, err = is.UpdateItem(ctx, chairItem.ID, models.ItemUpdate{})
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))

	require.NoError(t, is.DeleteItem(ctx, chairItem.ID))
	_, err = is.GetItem(ctx, chairItem.ID)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}

func TestMessageServiceMarkRead(t *testing.T) {
	ms := NewMessageService(localOnly(t, newLocalStore(t)))
	ctx := context.Background()

	_, err := ms.CreateMessage(ctx, &models.Message{Name: "Esi", Email: "bad", Message: "hi"})
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))

	msg, err := ms.CreateMessage(ctx, &models.Message{Name: "Esi", Email: "esi@example.com", Message: "Do you deliver?"})
	require.NoError(t, err)
	assert.False(t, msg.IsRead)

	read, err := ms.MarkRead(ctx, msg.ID, true)
	require.NoError(t, err)
	assert.True(t, read.IsRead)
	assert.Equal(t, "Do you deliver?", read.Message)

	_, err = ms.MarkRead(ctx, "missing", true)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}

func TestTestimonialDefaultRating(t *testing.T) {
	ts := NewTestimonialService(localOnly(t, newLocalStore(t)))
	ctx := context.Background()

	created, err := ts.CreateTestimonial(ctx, &models.Testimonial{Name: "Yaw", Content: "Great tents"})
	require.NoError(t, err)
	assert.Equal(t, 5, created.Rating)

	_, err = ts.CreateTestimonial(ctx, &models.Testimonial{Name: "Yaw", Content: "Meh", Rating: 9})
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))
}

func TestSettingsMerge(t *testing.T) {
	ss := NewSettingsService(localOnly(t, newLocalStore(t)))
	ctx := context.Background()

	empty, err := ss.GetSettings(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = ss.MergeSettings(ctx, models.Settings{"phone": "020", "email": "info@example.com"})
	require.NoError(t, err)
	merged, err := ss.MergeSettings(ctx, models.Settings{"phone": "024"})
	require.NoError(t, err)

	assert.Equal(t, models.Settings{"phone": "024", "email": "info@example.com"}, merged)
}

func TestBackupExportImportAndReset(t *testing.T) {
	local := newLocalStore(t)
	seedItems(t, local, chair(5))
	f := localOnly(t, local)
	bs := NewBackupService(f, nil, testLogger())
	bookings := newBookingService(f)
	ctx := context.Background()

	_, err := bookings.CreateBooking(ctx, bookingInput(models.BookingLine{ID: "chair-1", Quantity: 1}))
	require.NoError(t, err)

	doc, err := bs.Export(ctx)
	require.NoError(t, err)
	assert.Len(t, doc.Items, 1)
	assert.Len(t, doc.Bookings, 1)

	require.NoError(t, bs.Reset(ctx))
	cleared, err := bs.Export(ctx)
	require.NoError(t, err)
	assert.Empty(t, cleared.Bookings)
	assert.Equal(t, 4, cleared.Items[0].Quantity)

	require.NoError(t, bs.Import(ctx, doc))
	restored, err := bs.Export(ctx)
	require.NoError(t, err)
	assert.Len(t, restored.Bookings, 1)

	events, err := bs.StoreEvents(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, events)
}
