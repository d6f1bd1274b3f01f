package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/userhub-io/userhub/internal/domain"
	"github.com/userhub-io/userhub/internal/platform/mail"
	"github.com/userhub-io/userhub/internal/service/auth"
	"github.com/userhub-io/userhub/internal/store"
)

// TokenPair is an access/refresh credential pair issued on login or refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// ProfileUpdate carries the optional fields of a partial profile update.
// Nil pointers mean "leave unchanged".
type ProfileUpdate struct {
	Username *string
	Avatar   *string
}

// UserService provides the account lifecycle: registration with mailbox
// verification, activation, login/logout, password change, and profile
// management.
type UserService interface {
	// Register validates the email (format, duplicates, live mailbox
	// probe), creates an inactive user with a hashed password, and sends
	// the activation email.
	Register(ctx context.Context, email, username, password string) (*domain.User, error)

	// Activate verifies an activation token and marks the referenced user
	// active. Returns alreadyActive=true (and no error) when the user was
	// activated earlier; repeated activation performs no write.
	Activate(ctx context.Context, token string) (alreadyActive bool, err error)

	// Login verifies credentials and issues a fresh token pair.
	Login(ctx context.Context, email, password string) (*TokenPair, error)

	// Logout revokes the given refresh token so it can no longer be used
	// to obtain access tokens.
	Logout(ctx context.Context, refreshToken string) error

	// Refresh exchanges a valid, unrevoked refresh token for a new pair.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)

	// ChangePassword verifies the old password and persists a new hash.
	ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error

	// UpdateProfile applies only the provided fields to the user's profile.
	UpdateProfile(ctx context.Context, userID uuid.UUID, update ProfileUpdate) (*domain.User, error)

	// GetUser retrieves a user by their ID.
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// ListUsers retrieves users, newest first.
	ListUsers(ctx context.Context, limit, offset int) ([]*domain.User, error)

	// DeleteUser deletes a user by their ID.
	DeleteUser(ctx context.Context, userID uuid.UUID) error
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore  store.UserStore
	tokenStore store.TokenStore
	jwtService auth.JWTService
	hasher     auth.PasswordHasher
	verifier   auth.PasswordVerifier
	mailer     mail.Mailer
	prober     mail.Prober // nil disables the mailbox-existence probe
	db         *sql.DB
	logger     *slog.Logger
}

// NewUserService creates a new UserService. A nil prober disables the
// mailbox-existence check during registration.
func NewUserService(
	userStore store.UserStore,
	tokenStore store.TokenStore,
	jwtService auth.JWTService,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	mailer mail.Mailer,
	prober mail.Prober,
	db *sql.DB,
	logger *slog.Logger,
) UserService {
	return &UserServiceImpl{
		userStore:  userStore,
		tokenStore: tokenStore,
		jwtService: jwtService,
		hasher:     hasher,
		verifier:   verifier,
		mailer:     mailer,
		prober:     prober,
		db:         db,
		logger:     logger.With("component", "user_service"),
	}
}

// Register implements UserService.Register
func (s *UserServiceImpl) Register(ctx context.Context, email, username, password string) (*domain.User, error) {
	// Syntactic check comes first: no probe and no store access for input
	// that could never be an address.
	if !domain.ValidEmailFormat(email) {
		return nil, ErrInvalidEmailFormat
	}

	if _, err := s.userStore.GetByEmail(ctx, email); err == nil {
		s.logger.Debug("registration attempted with existing email")
		return nil, ErrEmailAlreadyRegistered
	} else if !errors.Is(err, store.ErrUserNotFound) {
		s.logger.Error("failed to check for existing email", "error", err)
		return nil, fmt.Errorf("failed to check for existing email: %w", err)
	}

	if s.prober != nil {
		if err := s.prober.Verify(ctx, email); err != nil {
			s.logger.Debug("mailbox probe rejected registration", "error", err)
			return nil, fmt.Errorf("%w: %v", ErrMailboxNotFound, err)
		}
	}

	user, err := domain.NewUser(email, username, password)
	if err != nil {
		return nil, err
	}

	hashed, err := s.hasher.Hash(user.Password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			// Lost a race with a concurrent registration.
			return nil, ErrEmailAlreadyRegistered
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.jwtService.GenerateActivationToken(ctx, user.ID)
	if err != nil {
		s.logger.Error("failed to generate activation token",
			"error", err,
			"user_id", user.ID)
		return nil, fmt.Errorf("%w: %v", ErrActivationMailFailed, err)
	}

	if err := s.mailer.SendActivationEmail(ctx, user.Email, user.Username, token); err != nil {
		// The account exists but cannot be activated until a mail goes
		// out; surface the failure so the caller can retry registration
		// handling, rather than silently stranding the account.
		s.logger.Error("failed to send activation email",
			"error", err,
			"user_id", user.ID)
		return nil, fmt.Errorf("%w: %v", ErrActivationMailFailed, err)
	}

	s.logger.Info("user registered, activation email sent",
		"user_id", user.ID)
	return user, nil
}

// Activate implements UserService.Activate
func (s *UserServiceImpl) Activate(ctx context.Context, token string) (bool, error) {
	claims, err := s.jwtService.ValidateActivationToken(ctx, token)
	if err != nil {
		if errors.Is(err, auth.ErrWrongTokenType) {
			return false, auth.ErrInvalidActivationToken
		}
		return false, err
	}

	user, err := s.userStore.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			// A valid signature referencing a vanished user reads the same
			// as a bad token from the outside.
			s.logger.Debug("activation token references unknown user",
				"user_id", claims.UserID)
			return false, auth.ErrInvalidActivationToken
		}
		return false, fmt.Errorf("failed to retrieve user for activation: %w", err)
	}

	if user.Active {
		s.logger.Debug("activation of already-active user is a no-op",
			"user_id", user.ID)
		return true, nil
	}

	user.Active = true
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).Update(ctx, user)
	})
	if err != nil {
		return false, fmt.Errorf("failed to activate user: %w", err)
	}

	s.logger.Info("user activated", "user_id", user.ID)
	return false, nil
}

// Login implements UserService.Login
func (s *UserServiceImpl) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, store.ErrUserNotFound
		}
		s.logger.Error("failed to retrieve user for login", "error", err)
		return nil, fmt.Errorf("failed to retrieve user for login: %w", err)
	}

	if !user.Active {
		s.logger.Debug("login attempt on inactive account", "user_id", user.ID)
		return nil, ErrAccountNotActivated
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		s.logger.Debug("login attempt with wrong password", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	return s.issueTokenPair(ctx, user.ID)
}

// Logout implements UserService.Logout
func (s *UserServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.jwtService.ValidateRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrWrongTokenType) {
			return auth.ErrInvalidRefreshToken
		}
		return err
	}

	err = s.tokenStore.Revoke(ctx, claims.ID, claims.UserID, claims.ExpiresAt)
	if err != nil {
		if errors.Is(err, store.ErrTokenRevoked) {
			// Logging out twice with the same token is an error per the
			// API contract: the token was already unusable.
			return auth.ErrInvalidRefreshToken
		}
		s.logger.Error("failed to revoke refresh token", "error", err)
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	s.logger.Info("user logged out", "user_id", claims.UserID)
	return nil
}

// Refresh implements UserService.Refresh
func (s *UserServiceImpl) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.jwtService.ValidateRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrWrongTokenType) {
			return nil, auth.ErrInvalidRefreshToken
		}
		return nil, err
	}

	revoked, err := s.tokenStore.IsRevoked(ctx, claims.ID)
	if err != nil {
		s.logger.Error("failed to check token revocation", "error", err)
		return nil, fmt.Errorf("failed to check token revocation: %w", err)
	}
	if revoked {
		s.logger.Debug("refresh attempt with revoked token",
			"user_id", claims.UserID)
		return nil, auth.ErrInvalidRefreshToken
	}

	return s.issueTokenPair(ctx, claims.UserID)
}

// issueTokenPair mints a fresh access/refresh pair for the user.
func (s *UserServiceImpl) issueTokenPair(ctx context.Context, userID uuid.UUID) (*TokenPair, error) {
	access, err := s.jwtService.GenerateToken(ctx, userID)
	if err != nil {
		s.logger.Error("failed to generate access token",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refresh, err := s.jwtService.GenerateRefreshToken(ctx, userID)
	if err != nil {
		s.logger.Error("failed to generate refresh token",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// ChangePassword implements UserService.ChangePassword
func (s *UserServiceImpl) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		user, err := txStore.GetByID(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to retrieve user for password change: %w", err)
		}

		if err := s.verifier.Compare(user.HashedPassword, oldPassword); err != nil {
			s.logger.Debug("password change with wrong old password",
				"user_id", userID)
			return ErrWrongPassword
		}

		if len(newPassword) < 8 {
			return domain.ErrPasswordTooShort
		}
		if len(newPassword) > 72 {
			return domain.ErrPasswordTooLong
		}

		hashed, err := s.hasher.Hash(newPassword)
		if err != nil {
			return fmt.Errorf("failed to hash new password: %w", err)
		}
		user.HashedPassword = hashed

		if err := txStore.Update(ctx, user); err != nil {
			return fmt.Errorf("failed to update password: %w", err)
		}

		s.logger.Info("password changed", "user_id", userID)
		return nil
	})
}

// UpdateProfile implements UserService.UpdateProfile
func (s *UserServiceImpl) UpdateProfile(ctx context.Context, userID uuid.UUID, update ProfileUpdate) (*domain.User, error) {
	var updated *domain.User

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		user, err := txStore.GetByID(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to retrieve user for profile update: %w", err)
		}

		if update.Username != nil {
			if *update.Username == "" {
				return domain.NewValidationError("username", "cannot be empty", domain.ErrValidation)
			}
			user.Username = *update.Username
		}
		if update.Avatar != nil {
			user.Avatar = *update.Avatar
		}

		if err := txStore.Update(ctx, user); err != nil {
			if errors.Is(err, store.ErrUsernameExists) {
				return domain.NewValidationError("username", "is already taken", domain.ErrValidation)
			}
			return fmt.Errorf("failed to update profile: %w", err)
		}

		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("profile updated", "user_id", userID)
	return updated, nil
}

// GetUser implements UserService.GetUser
func (s *UserServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, nil
}

// ListUsers implements UserService.ListUsers
func (s *UserServiceImpl) ListUsers(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	users, err := s.userStore.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// DeleteUser implements UserService.DeleteUser
func (s *UserServiceImpl) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.userStore.WithTx(tx).Delete(ctx, userID); err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		s.logger.Info("user deleted", "user_id", userID)
		return nil
	})
}
