package models

import (
	"context"

	"github.com/supabase-community/postgrest-go"
)

type MessageRepo interface {
	ListMessages(ctx context.Context) ([]Message, error)
	CreateMessage(ctx context.Context, msg *Message) (*Message, error)
	SetMessageRead(ctx context.Context, id string, isRead bool) (*Message, error)
	DeleteMessage(ctx context.Context, id string) error
}

func (su *SupabaseRepo) ListMessages(ctx context.Context) ([]Message, error) {
	return selectRows[Message](ctx, su, MessagesTable, MessageFields, func(q *postgrest.FilterBuilder) *postgrest.FilterBuilder {
		return q.Order(MessageFields.Column("createdAt"), newestFirst)
	})
}

func (su *SupabaseRepo) CreateMessage(ctx context.Context, msg *Message) (*Message, error) {
	return insertRow[Message](ctx, su, MessagesTable, MessageFields, msg)
}

func (su *SupabaseRepo) SetMessageRead(ctx context.Context, id string, isRead bool) (*Message, error) {
	return updateRow[Message](ctx, su, MessagesTable, MessageFields, id, map[string]any{"isRead": isRead}, "Message")
}

func (su *SupabaseRepo) DeleteMessage(ctx context.Context, id string) error {
	return deleteRow(ctx, su, MessagesTable, id, "Message")
}
