package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/eospatial/geoforestry/internal/logger"
	"github.com/eospatial/geoforestry/internal/model"
)

// Auth manages admin accounts and sign-in sessions.
type Auth struct {
	userStore model.UserStore
	sessions  model.SessionManager
	logger    *logger.Logger
}

func NewAuth(
	userStore model.UserStore,
	sessions model.SessionManager,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore: userStore,
		sessions:  sessions,
		logger:    logger,
	}
}

// AddAdminParams contains parameters to create an admin account.
type AddAdminParams struct {
	Username string
	Email    string
	Password string
	Role     model.Role
}

// SignIn checks credentials and issues a session token. Unknown usernames and
// wrong passwords are deliberately indistinguishable to callers.
func (a *Auth) SignIn(ctx context.Context, username, password string) (string, error) {
	user, err := a.userStore.GetByUsername(ctx, username)
	if errors.Is(err, model.ErrNotFound) {
		a.logger.Warn("Auth service: sign-in for unknown user", "username", username)
		return "", model.ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("failed to get user by username: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		a.logger.Warn("Auth service: wrong password", "username", username)
		return "", model.ErrInvalidCredentials
	}

	token, err := a.sessions.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}

	a.logger.Info("Auth service: admin signed in", "username", username, "role", user.Role)
	return token, nil
}

// AddAdmin creates a new admin account with a hashed password.
func (a *Auth) AddAdmin(ctx context.Context, params AddAdminParams) (model.User, error) {
	taken, err := a.userStore.ExistsByUsername(ctx, params.Username)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		return model.User{}, fmt.Errorf("%w: username %s", model.ErrUserExists, params.Username)
	}

	taken, err = a.userStore.ExistsByEmail(ctx, params.Email)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return model.User{}, fmt.Errorf("%w: email %s", model.ErrUserExists, params.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := a.userStore.Create(ctx, model.User{
		ID:           uuid.New(),
		Username:     params.Username,
		Email:        params.Email,
		PasswordHash: hash,
		Role:         params.Role,
	})
	if err != nil {
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	a.logger.Info("Auth service: admin created", "username", user.Username, "role", user.Role)
	return user, nil
}

// UpdatePassword replaces an admin's password hash.
func (a *Auth) UpdatePassword(ctx context.Context, userID uuid.UUID, newPassword string) error {
	if _, err := a.userStore.GetByID(ctx, userID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return fmt.Errorf("%w: user %s", model.ErrNotFound, userID)
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := a.userStore.UpdatePassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	a.logger.Info("Auth service: password updated", "user_id", userID)
	return nil
}

// Bootstrap ensures the configured super-admin account exists. Called once at
// startup.
func (a *Auth) Bootstrap(ctx context.Context, username, email, password string) error {
	exists, err := a.userStore.ExistsByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to check bootstrap admin: %w", err)
	}
	if exists {
		a.logger.Info("Auth service: bootstrap admin already present", "username", username)
		return nil
	}

	if _, err := a.AddAdmin(ctx, AddAdminParams{
		Username: username,
		Email:    email,
		Password: password,
		Role:     model.RoleSuperAdmin,
	}); err != nil {
		return fmt.Errorf("failed to create bootstrap admin: %w", err)
	}

	a.logger.Info("Auth service: bootstrap admin created", "username", username)
	return nil
}
