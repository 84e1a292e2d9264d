package services

import (
	"context"
	"testing"
	"time"

	"github.com/joshua-takyi/eventrentals/internal/apperrors"
	"github.com/joshua-takyi/eventrentals/internal/helpers"
	"github.com/joshua-takyi/eventrentals/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newUserService(t *testing.T) (*UserService, *models.LocalRepo) {
	t.Helper()
	local := newLocalStore(t)
	us := NewUserService(localOnly(t, local), TokenConfig{Secret: testSecret, TTL: time.Hour}, testLogger())
	return us, local
}

func TestCreateUserHashesPassword(t *testing.T) {
	us, local := newUserService(t)

	user, err := us.CreateUser(context.Background(), &models.UserInput{
		Name:     "Kofi",
		Email:    " Kofi@Example.com ",
		Password: "s3cretpass",
	})
	require.NoError(t, err)

	assert.Equal(t, "kofi@example.com", user.Email)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.Empty(t, user.PasswordHash)

	stored, err := local.FindUserByEmail(context.Background(), "kofi@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, stored.PasswordHash)
	assert.NotEqual(t, "s3cretpass", stored.PasswordHash)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	us, _ := newUserService(t)
	in := func() *models.UserInput {
		return &models.UserInput{Name: "Kofi", Email: "kofi@example.com", Password: "s3cretpass"}
	}

	_, err := us.CreateUser(context.Background(), in())
	require.NoError(t, err)

	_, err = us.CreateUser(context.Background(), in())
	require.True(t, apperrors.Is(err, apperrors.KindConflict))
	assert.Equal(t, "User with this email already exists", apperrors.AsAppError(err).Message)
	assert.Equal(t, 400, apperrors.AsAppError(err).StatusCode())
}

func TestCreateUserShortPassword(t *testing.T) {
	us, _ := newUserService(t)

	_, err := us.CreateUser(context.Background(), &models.UserInput{Name: "Kofi", Email: "kofi@example.com", Password: "short"})
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))
}

func TestAuthenticateAndChangePassword(t *testing.T) {
	us, _ := newUserService(t)
	ctx := context.Background()
	require.NoError(t, us.EnsureAdmin(ctx, "admin@example.com", "changeme123"))

	_, err := us.Authenticate(ctx, "admin@example.com", "wrong-password")
	require.True(t, apperrors.Is(err, apperrors.KindUnauthorized))
	assert.Equal(t, "Invalid credentials", apperrors.AsAppError(err).Message)

	_, err = us.Authenticate(ctx, "nobody@example.com", "changeme123")
	assert.True(t, apperrors.Is(err, apperrors.KindUnauthorized))

	result, err := us.Authenticate(ctx, "ADMIN@example.com", "changeme123")
	require.NoError(t, err)
	assert.Empty(t, result.User.PasswordHash)

	claims, err := helpers.ValidateToken(testSecret, result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.UserID)
	assert.True(t, claims.IsAdmin())

	require.NoError(t, us.ChangePassword(ctx, "admin@example.com", "changeme123", "brandnew456"))
	_, err = us.Authenticate(ctx, "admin@example.com", "changeme123")
	assert.True(t, apperrors.Is(err, apperrors.KindUnauthorized))
	_, err = us.Authenticate(ctx, "admin@example.com", "brandnew456")
	assert.NoError(t, err)
}

func TestEnsureAdminOnlyWhenNoUsers(t *testing.T) {
	us, local := newUserService(t)
	ctx := context.Background()

	require.NoError(t, us.EnsureAdmin(ctx, "admin@example.com", "changeme123"))
	require.NoError(t, us.EnsureAdmin(ctx, "other@example.com", "changeme123"))

	users, err := local.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "admin@example.com", users[0].Email)
}

func TestUpdateUserEmailConflict(t *testing.T) {
	us, _ := newUserService(t)
	ctx := context.Background()

	a, err := us.CreateUser(ctx, &models.UserInput{Name: "A", Email: "a@example.com", Password: "password1"})
	require.NoError(t, err)
	_, err = us.CreateUser(ctx, &models.UserInput{Name: "B", Email: "b@example.com", Password: "password2"})
	require.NoError(t, err)

	taken := "b@example.com"
	_, err = us.UpdateUser(ctx, a.ID, models.UserUpdate{Email: &taken})
	assert.True(t, apperrors.Is(err, apperrors.KindConflict))

	name := "Abena"
	updated, err := us.UpdateUser(ctx, a.ID, models.UserUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Abena", updated.Name)
	assert.Empty(t, updated.PasswordHash)
}

func TestUpdateUserRejectsBlankName(t *testing.T) {
	us, _ := newUserService(t)
	ctx := context.Background()

	a, err := us.CreateUser(ctx, &models.UserInput{Name: "Abena", Email: "a@example.com", Password: "password1"})
	require.NoError(t, err)

	blank := "  "
	_, err = us.UpdateUser(ctx, a.ID, models.UserUpdate{Name: &blank})
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))

	email := "  A@Example.com "
	updated, err := us.UpdateUser(ctx, a.ID, models.UserUpdate{Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", updated.Email)
	assert.Equal(t, "Abena", updated.Name)
}
