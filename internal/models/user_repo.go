package models

import (
	"context"

	"github.com/joshua-takyi/eventrentals/internal/apperrors"
	"github.com/supabase-community/postgrest-go"
)

type UserRepo interface {
	ListUsers(ctx context.Context) ([]User, error)
	GetUser(ctx context.Context, id string) (*User, error)
	// FindUserByEmail returns a NotFound error when no user has the email.
	FindUserByEmail(ctx context.Context, email string) (*User, error)
	CreateUser(ctx context.Context, user *User) (*User, error)
	UpdateUser(ctx context.Context, id string, fields map[string]any) (*User, error)
	DeleteUser(ctx context.Context, id string) error
}

func (su *SupabaseRepo) ListUsers(ctx context.Context) ([]User, error) {
	return selectRows[User](ctx, su, UsersTable, UserFields, func(q *postgrest.FilterBuilder) *postgrest.FilterBuilder {
		return q.Order(UserFields.Column("createdAt"), newestFirst)
	})
}

func (su *SupabaseRepo) GetUser(ctx context.Context, id string) (*User, error) {
	return selectByID[User](ctx, su, UsersTable, UserFields, id, "User")
}

func (su *SupabaseRepo) FindUserByEmail(ctx context.Context, email string) (*User, error) {
	users, err := selectRows[User](ctx, su, UsersTable, UserFields, func(q *postgrest.FilterBuilder) *postgrest.FilterBuilder {
		return q.Eq("email", NormalizeEmail(email))
	})
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, apperrors.NotFound("User")
	}
	return &users[0], nil
}

func (su *SupabaseRepo) CreateUser(ctx context.Context, user *User) (*User, error) {
	return insertRow[User](ctx, su, UsersTable, UserFields, user)
}

func (su *SupabaseRepo) UpdateUser(ctx context.Context, id string, fields map[string]any) (*User, error) {
	return updateRow[User](ctx, su, UsersTable, UserFields, id, fields, "User")
}

func (su *SupabaseRepo) DeleteUser(ctx context.Context, id string) error {
	return deleteRow(ctx, su, UsersTable, id, "User")
}
