package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/joshua-takyi/eventrentals/internal/apperrors"
	"github.com/joshua-takyi/eventrentals/internal/models"
)

type MessageService struct {
	stores *Failover
}

func NewMessageService(stores *Failover) *MessageService {
	return &MessageService{stores: stores}
}

func (ms *MessageService) ListMessages(ctx context.Context) ([]models.Message, error) {
	return WithFallback(ctx, ms.stores, "messages.list", func(ctx context.Context, store models.Store) ([]models.Message, error) {
		return store.ListMessages(ctx)
	})
}

// CreateMessage stores a contact-form submission. Like bookings it is
// accepted by the local store when the remote store is down.
func (ms *MessageService) CreateMessage(ctx context.Context, msg *models.Message) (*models.Message, error) {
	msg.Sanitize()
	if err := models.Validate.Struct(msg); err != nil {
		return nil, apperrors.Validation("%s", models.ValidationMessage(err))
	}
	msg.ID = uuid.NewString()
	msg.IsRead = false
	msg.CreatedAt = time.Now().UTC()

	return WithFallback(ctx, ms.stores, "messages.create", func(ctx context.Context, store models.Store) (*models.Message, error) {
		return store.CreateMessage(ctx, msg)
	})
}

func (ms *MessageService) MarkRead(ctx context.Context, id string, isRead bool) (*models.Message, error) {
	if id == "" {
		return nil, apperrors.Validation("Message id is required")
	}
	return OnAuthoritative(ctx, ms.stores, func(ctx context.Context, store models.Store) (*models.Message, error) {
		return store.SetMessageRead(ctx, id, isRead)
	})
}

func (ms *MessageService) DeleteMessage(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.Validation("Message id is required")
	}
	_, err := OnAuthoritative(ctx, ms.stores, func(ctx context.Context, store models.Store) (struct{}, error) {
		return struct{}{}, store.DeleteMessage(ctx, id)
	})
	return err
}
