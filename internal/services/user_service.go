package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/joshua-takyi/eventrentals/internal/apperrors"
	"github.com/joshua-takyi/eventrentals/internal/helpers"
	"github.com/joshua-takyi/eventrentals/internal/models"
	"golang.org/x/crypto/bcrypt"
)

const (
	msgInvalidCredentials = "Invalid credentials"
	msgDuplicateEmail     = "User with this email already exists"
	msgWeakPassword       = "Password must be at least 8 characters"
)

type TokenConfig struct {
	Secret string
	TTL    time.Duration
}

// AuthResult is returned by a successful sign-in.
type AuthResult struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

type UserService struct {
	stores *Failover
	tokens TokenConfig
	logger *slog.Logger
}

func NewUserService(stores *Failover, tokens TokenConfig, logger *slog.Logger) *UserService {
	return &UserService{
		stores: stores,
		tokens: tokens,
		logger: logger,
	}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", apperrors.Internal("failed to hash password", err)
	}
	return string(hash), nil
}

func publicUsers(users []models.User) []models.User {
	out := make([]models.User, len(users))
	for i, u := range users {
		out[i] = u.Public()
	}
	return out
}

func (us *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := WithFallback(ctx, us.stores, "users.list", func(ctx context.Context, store models.Store) ([]models.User, error) {
		return store.ListUsers(ctx)
	})
	if err != nil {
		return nil, err
	}
	return publicUsers(users), nil
}

func (us *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	if id == "" {
		return nil, apperrors.Validation("User id is required")
	}
	user, err := WithFallback(ctx, us.stores, "users.get", func(ctx context.Context, store models.Store) (*models.User, error) {
		return store.GetUser(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	public := user.Public()
	return &public, nil
}

func (us *UserService) CreateUser(ctx context.Context, in *models.UserInput) (*models.User, error) {
	in.Sanitize()
	if err := models.Validate.Struct(in); err != nil {
		return nil, apperrors.Validation("%s", models.ValidationMessage(err))
	}
	if !helpers.IsPasswordStrong(in.Password) {
		return nil, apperrors.Validation(msgWeakPassword)
	}
	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := OnAuthoritative(ctx, us.stores, func(ctx context.Context, store models.Store) (*models.User, error) {
		if err := ensureEmailFree(ctx, store, user.Email, ""); err != nil {
			return nil, err
		}
		return store.CreateUser(ctx, user)
	})
	if apperrors.Is(err, apperrors.KindConflict) {
		return nil, apperrors.Conflict(msgDuplicateEmail)
	}
	if err != nil {
		return nil, err
	}
	public := created.Public()
	return &public, nil
}

// ensureEmailFree fails with a Conflict when another user (not exceptID)
// already holds email.
func ensureEmailFree(ctx context.Context, store models.Store, email, exceptID string) error {
	existing, err := store.FindUserByEmail(ctx, email)
	if apperrors.Is(err, apperrors.KindNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID == exceptID {
		return nil
	}
	return apperrors.Conflict(msgDuplicateEmail)
}

func (us *UserService) UpdateUser(ctx context.Context, id string, upd models.UserUpdate) (*models.User, error) {
	if id == "" {
		return nil, apperrors.Validation("User id is required")
	}
	upd.Sanitize()
	if err := models.Validate.Struct(upd); err != nil {
		return nil, apperrors.Validation("%s", models.ValidationMessage(err))
	}

	fields := map[string]any{}
	if upd.Name != nil {
		fields["name"] = *upd.Name
	}
	if upd.Email != nil {
		fields["email"] = *upd.Email
	}
	if upd.Role != nil {
		fields["role"] = *upd.Role
	}
	if upd.Password != nil {
		if !helpers.IsPasswordStrong(*upd.Password) {
			return nil, apperrors.Validation(msgWeakPassword)
		}
		hash, err := hashPassword(*upd.Password)
		if err != nil {
			return nil, err
		}
		fields["passwordHash"] = hash
	}
	if len(fields) == 0 {
		return nil, apperrors.Validation("No fields to update")
	}

	updated, err := OnAuthoritative(ctx, us.stores, func(ctx context.Context, store models.Store) (*models.User, error) {
		if email, ok := fields["email"].(string); ok {
			if err := ensureEmailFree(ctx, store, email, id); err != nil {
				return nil, err
			}
		}
		return store.UpdateUser(ctx, id, fields)
	})
	if err != nil {
		return nil, err
	}
	public := updated.Public()
	return &public, nil
}

func (us *UserService) DeleteUser(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.Validation("User id is required")
	}
	_, err := OnAuthoritative(ctx, us.stores, func(ctx context.Context, store models.Store) (struct{}, error) {
		return struct{}{}, store.DeleteUser(ctx, id)
	})
	return err
}

func (us *UserService) verify(ctx context.Context, email, password string) (*models.User, error) {
	email = models.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperrors.Validation("Email and password are required")
	}
	user, err := WithFallback(ctx, us.stores, "auth.lookup", func(ctx context.Context, store models.Store) (*models.User, error) {
		return store.FindUserByEmail(ctx, email)
	})
	if apperrors.Is(err, apperrors.KindNotFound) {
		return nil, apperrors.Unauthorized(msgInvalidCredentials)
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.Unauthorized(msgInvalidCredentials)
	}
	return user, nil
}

// Authenticate checks credentials and issues a signed admin token.
func (us *UserService) Authenticate(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := us.verify(ctx, email, password)
	if err != nil {
		return nil, err
	}
	token, err := helpers.IssueToken(us.tokens.Secret, us.tokens.TTL, user.ID, user.Email, user.Role)
	if err != nil {
		return nil, apperrors.Internal("failed to issue token", err)
	}
	us.logger.Info("User signed in", "user_id", user.ID, "role", user.Role)
	return &AuthResult{User: user.Public(), Token: token}, nil
}

func (us *UserService) ChangePassword(ctx context.Context, email, currentPassword, newPassword string) error {
	user, err := us.verify(ctx, email, currentPassword)
	if err != nil {
		return err
	}
	if !helpers.IsPasswordStrong(newPassword) {
		return apperrors.Validation(msgWeakPassword)
	}
	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	_, err = OnAuthoritative(ctx, us.stores, func(ctx context.Context, store models.Store) (*models.User, error) {
		return store.UpdateUser(ctx, user.ID, map[string]any{"passwordHash": hash})
	})
	return err
}

// EnsureAdmin creates the bootstrap admin account when no user exists yet.
func (us *UserService) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	users, err := OnAuthoritative(ctx, us.stores, func(ctx context.Context, store models.Store) ([]models.User, error) {
		return store.ListUsers(ctx)
	})
	if err != nil {
		return err
	}
	if len(users) > 0 {
		return nil
	}
	created, err := us.CreateUser(ctx, &models.UserInput{
		Name:     "Administrator",
		Email:    email,
		Password: password,
		Role:     models.RoleAdmin,
	})
	if err != nil {
		return err
	}
	us.logger.Info("Bootstrap admin created", "user_id", created.ID, "email", created.Email)
	return nil
}
