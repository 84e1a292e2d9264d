package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joshua-takyi/eventrentals/internal/apperrors"
	"github.com/joshua-takyi/eventrentals/internal/helpers"
	"github.com/joshua-takyi/eventrentals/internal/models"
)

// ImageStore turns image references into hosted URLs.
type ImageStore interface {
	UploadImages(ctx context.Context, images []string, folder string) ([]string, error)
}

type ItemFilter struct {
	FeaturedOnly bool
	Category     string
}

func (f ItemFilter) matches(item models.Item) bool {
	if f.FeaturedOnly && !item.IsFeatured {
		return false
	}
	if f.Category != "" && !strings.EqualFold(item.Category, f.Category) {
		return false
	}
	return true
}

type ItemService struct {
	stores *Failover
	images ImageStore
}

func NewItemService(stores *Failover, images ImageStore) *ItemService {
	return &ItemService{
		stores: stores,
		images: images,
	}
}

func (is *ItemService) ListItems(ctx context.Context, filter ItemFilter) ([]models.Item, error) {
	items, err := WithFallback(ctx, is.stores, "items.list", func(ctx context.Context, store models.Store) ([]models.Item, error) {
		return store.ListItems(ctx)
	})
	if err != nil {
		return nil, err
	}
	filtered := make([]models.Item, 0, len(items))
	for _, item := range items {
		if filter.matches(item) {
			filtered = append(filtered, item)
		}
	}
	return filtered, nil
}

func (is *ItemService) GetItem(ctx context.Context, id string) (*models.Item, error) {
	if id == "" {
		return nil, apperrors.Validation("Item id is required")
	}
	return WithFallback(ctx, is.stores, "items.get", func(ctx context.Context, store models.Store) (*models.Item, error) {
		return store.GetItem(ctx, id)
	})
}

func (is *ItemService) CreateItem(ctx context.Context, item *models.Item) (*models.Item, error) {
	item.Sanitize()
	if err := models.Validate.Struct(item); err != nil {
		return nil, apperrors.Validation("%s", models.ValidationMessage(err))
	}

	images, err := is.upload(ctx, item.Images, helpers.ItemsFolder)
	if err != nil {
		return nil, err
	}
	item.Images = images
	item.ID = uuid.NewString()
	item.CreatedAt = time.Now().UTC()

	return OnAuthoritative(ctx, is.stores, func(ctx context.Context, store models.Store) (*models.Item, error) {
		return store.CreateItem(ctx, item)
	})
}

func (is *ItemService) UpdateItem(ctx context.Context, id string, upd models.ItemUpdate) (*models.Item, error) {
	if id == "" {
		return nil, apperrors.Validation("Item id is required")
	}
	if err := models.Validate.Struct(upd); err != nil {
		return nil, apperrors.Validation("%s", models.ValidationMessage(err))
	}
	fields := upd.Fields()
	if len(fields) == 0 {
		return nil, apperrors.Validation("No fields to update")
	}
	if upd.Images != nil {
		images, err := is.upload(ctx, *upd.Images, helpers.ItemsFolder)
		if err != nil {
			return nil, err
		}
		fields["images"] = images
	}

	return OnAuthoritative(ctx, is.stores, func(ctx context.Context, store models.Store) (*models.Item, error) {
		return store.UpdateItem(ctx, id, fields)
	})
}

func (is *ItemService) DeleteItem(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.Validation("Item id is required")
	}
	_, err := OnAuthoritative(ctx, is.stores, func(ctx context.Context, store models.Store) (struct{}, error) {
		return struct{}{}, store.DeleteItem(ctx, id)
	})
	return err
}

func (is *ItemService) upload(ctx context.Context, images []string, folder string) ([]string, error) {
	if is.images == nil {
		return images, nil
	}
	urls, err := is.images.UploadImages(ctx, images, folder)
	if err != nil {
		return nil, apperrors.Internal("failed to upload images", err)
	}
	return urls, nil
}
