package service_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/userhub-io/userhub/internal/domain"
	"github.com/userhub-io/userhub/internal/mocks"
	"github.com/userhub-io/userhub/internal/service"
	"github.com/userhub-io/userhub/internal/service/auth"
	"github.com/userhub-io/userhub/internal/store"
)

func testLogger() *slog.Logger {
	return slog.Default()
}

// userServiceFixture bundles a service.UserService with its mock collaborators.
type userServiceFixture struct {
	service    service.UserService
	userStore  *mocks.MockUserStore
	tokenStore *mocks.MockTokenStore
	jwt        *mocks.MockJWTService
	hasher     *mocks.MockPasswordHasher
	mailer     *mocks.MockMailer
	prober     *mocks.MockProber
	sqlMock    sqlmock.Sqlmock
}

func newUserServiceFixture(t *testing.T) *userServiceFixture {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	f := &userServiceFixture{
		userStore:  mocks.NewMockUserStore(),
		tokenStore: mocks.NewMockTokenStore(),
		jwt:        &mocks.MockJWTService{},
		hasher:     &mocks.MockPasswordHasher{},
		mailer:     &mocks.MockMailer{},
		prober:     &mocks.MockProber{},
		sqlMock:    sqlMock,
	}
	f.service = service.NewUserService(
		f.userStore,
		f.tokenStore,
		f.jwt,
		f.hasher,
		f.hasher,
		f.mailer,
		f.prober,
		db,
		testLogger(),
	)
	return f
}

// expectTx arms the underlying DB for one committed transaction.
func (f *userServiceFixture) expectTx() {
	f.sqlMock.ExpectBegin()
	f.sqlMock.ExpectCommit()
}

// expectTxRollback arms the underlying DB for one rolled-back transaction.
func (f *userServiceFixture) expectTxRollback() {
	f.sqlMock.ExpectBegin()
	f.sqlMock.ExpectRollback()
}

func activeUser(t *testing.T, email string) *domain.User {
	t.Helper()
	user, err := domain.NewUser(email, "tester", "password123")
	require.NoError(t, err)
	user.HashedPassword = "hashed:password123"
	user.Password = ""
	user.Active = true
	return user
}

func TestRegisterSuccess(t *testing.T) {
	f := newUserServiceFixture(t)
	f.jwt.ActivationToken = "activation-token"
	f.expectTx()

	user, err := f.service.Register(context.Background(), "new@example.com", "newbie", "password123")
	require.NoError(t, err)

	assert.Equal(t, "new@example.com", user.Email)
	assert.False(t, user.Active)
	assert.Equal(t, "hashed:password123", user.HashedPassword)
	assert.Empty(t, user.Password)

	// The user was persisted and the activation mail went out.
	_, err = f.userStore.GetByEmail(context.Background(), "new@example.com")
	assert.NoError(t, err)
	assert.Equal(t, []string{"new@example.com"}, f.mailer.SentTo)
	assert.Equal(t, []string{"activation-token"}, f.mailer.SentTokens)
	assert.Equal(t, []string{"new@example.com"}, f.prober.Verified)
}

func TestRegisterRejectsBadEmailFormat(t *testing.T) {
	f := newUserServiceFixture(t)

	for _, email := range []string{"", "nodomain", "@example.com", "user@", "user@nodot"} {
		_, err := f.service.Register(context.Background(), email, "tester", "password123")
		assert.ErrorIs(t, err, service.ErrInvalidEmailFormat, "email %q", email)
	}

	// Nothing reached the probe or the store.
	assert.Empty(t, f.prober.Verified)
	assert.Empty(t, f.userStore.Users)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	f := newUserServiceFixture(t)
	existing := activeUser(t, "taken@example.com")
	f.userStore.Users[existing.Email] = existing

	_, err := f.service.Register(context.Background(), "taken@example.com", "other", "password123")
	assert.ErrorIs(t, err, service.ErrEmailAlreadyRegistered)
	assert.Empty(t, f.prober.Verified, "duplicate check must precede the probe")
}

func TestRegisterRejectsUnverifiableMailbox(t *testing.T) {
	f := newUserServiceFixture(t)
	f.prober.Err = errors.New("550 no such user")

	_, err := f.service.Register(context.Background(), "ghost@example.com", "ghost", "password123")
	assert.ErrorIs(t, err, service.ErrMailboxNotFound)
	assert.Empty(t, f.userStore.Users, "no account may be created for an unverified mailbox")
}

func TestRegisterSkipsProbeWhenDisabled(t *testing.T) {
	f := newUserServiceFixture(t)
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	sqlMock.ExpectBegin()
	sqlMock.ExpectCommit()

	// nil prober disables the mailbox check entirely.
	svc := service.NewUserService(
		f.userStore, f.tokenStore, f.jwt, f.hasher, f.hasher, f.mailer, nil, db, testLogger())

	_, err = svc.Register(context.Background(), "new@example.com", "newbie", "password123")
	require.NoError(t, err)
	assert.Empty(t, f.prober.Verified)
}

func TestRegisterSurfacesMailFailure(t *testing.T) {
	f := newUserServiceFixture(t)
	f.mailer.Err = errors.New("smtp relay down")
	f.expectTx()

	_, err := f.service.Register(context.Background(), "new@example.com", "newbie", "password123")
	assert.ErrorIs(t, err, service.ErrActivationMailFailed)

	// The account row stays; re-registration reports the duplicate.
	_, err = f.userStore.GetByEmail(context.Background(), "new@example.com")
	assert.NoError(t, err)
}

func TestRegisterMapsCreateRaceToDuplicate(t *testing.T) {
	f := newUserServiceFixture(t)
	f.userStore.CreateError = store.ErrEmailExists
	f.expectTxRollback()

	_, err := f.service.Register(context.Background(), "race@example.com", "racer", "password123")
	assert.ErrorIs(t, err, service.ErrEmailAlreadyRegistered)
}

func TestActivateSuccess(t *testing.T) {
	f := newUserServiceFixture(t)
	user := activeUser(t, "pending@example.com")
	user.Active = false
	f.userStore.Users[user.Email] = user
	f.jwt.Claims = &auth.Claims{UserID: user.ID, TokenType: auth.TokenTypeActivation}
	f.expectTx()

	alreadyActive, err := f.service.Activate(context.Background(), "some-token")
	require.NoError(t, err)
	assert.False(t, alreadyActive)
	assert.True(t, user.Active)
}

func TestActivateAlreadyActiveIsNoOp(t *testing.T) {
	f := newUserServiceFixture(t)
	user := activeUser(t, "done@example.com")
	f.userStore.Users[user.Email] = user
	f.jwt.Claims = &auth.Claims{UserID: user.ID, TokenType: auth.TokenTypeActivation}

	// No transaction expectations armed: a repeat activation must not write.
	alreadyActive, err := f.service.Activate(context.Background(), "some-token")
	require.NoError(t, err)
	assert.True(t, alreadyActive)
}

func TestActivateUnknownUserReadsAsInvalidToken(t *testing.T) {
	f := newUserServiceFixture(t)
	f.jwt.Claims = &auth.Claims{UserID: uuid.New(), TokenType: auth.TokenTypeActivation}

	_, err := f.service.Activate(context.Background(), "orphan-token")
	assert.ErrorIs(t, err, auth.ErrInvalidActivationToken)
}

func TestActivateRejectsInvalidToken(t *testing.T) {
	f := newUserServiceFixture(t)
	f.jwt.ValidateErr = auth.ErrInvalidActivationToken

	_, err := f.service.Activate(context.Background(), "garbage")
	assert.ErrorIs(t, err, auth.ErrInvalidActivationToken)
}

func TestActivateRejectsWrongTokenType(t *testing.T) {
	f := newUserServiceFixture(t)
	f.jwt.ValidateErr = auth.ErrWrongTokenType

	_, err := f.service.Activate(context.Background(), "an-access-token")
	assert.ErrorIs(t, err, auth.ErrInvalidActivationToken)
}

func TestLoginSuccess(t *testing.T) {
	f := newUserServiceFixture(t)
	user := activeUser(t, "login@example.com")
	f.userStore.Users[user.Email] = user
	f.jwt.Token = "access"
	f.jwt.RefreshToken = "refresh"

	pair, err := f.service.Login(context.Background(), "login@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "access", pair.AccessToken)
	assert.Equal(t, "refresh", pair.RefreshToken)
}

func TestLoginRejectsInactiveAccount(t *testing.T) {
	f := newUserServiceFixture(t)
	user := activeUser(t, "inactive@example.com")
	user.Active = false
	f.userStore.Users[user.Email] = user

	_, err := f.service.Login(context.Background(), "inactive@example.com", "password123")
	assert.ErrorIs(t, err, service.ErrAccountNotActivated)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	f := newUserServiceFixture(t)
	user := activeUser(t, "login@example.com")
	f.userStore.Users[user.Email] = user
	f.hasher.CompareErr = errors.New("mismatch")

	_, err := f.service.Login(context.Background(), "login@example.com", "wrongpass")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	f := newUserServiceFixture(t)

	_, err := f.service.Login(context.Background(), "nobody@example.com", "password123")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	f := newUserServiceFixture(t)
	userID := uuid.New()
	f.jwt.Claims = &auth.Claims{
		UserID:    userID,
		TokenType: auth.TokenTypeRefresh,
		ID:        "jti-1",
		ExpiresAt: time.Now().Add(time.Hour),
	}

	require.NoError(t, f.service.Logout(context.Background(), "refresh-token"))

	revoked, err := f.tokenStore.IsRevoked(context.Background(), "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	// A second logout with the same token is rejected.
	err = f.service.Logout(context.Background(), "refresh-token")
	assert.ErrorIs(t, err, auth.ErrInvalidRefreshToken)
}

func TestRefreshIssuesNewPair(t *testing.T) {
	f := newUserServiceFixture(t)
	f.jwt.Claims = &auth.Claims{
		UserID:    uuid.New(),
		TokenType: auth.TokenTypeRefresh,
		ID:        "jti-2",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	f.jwt.Token = "new-access"
	f.jwt.RefreshToken = "new-refresh"

	pair, err := f.service.Refresh(context.Background(), "refresh-token")
	require.NoError(t, err)
	assert.Equal(t, "new-access", pair.AccessToken)
	assert.Equal(t, "new-refresh", pair.RefreshToken)
}

func TestRefreshRejectsRevokedToken(t *testing.T) {
	f := newUserServiceFixture(t)
	f.jwt.Claims = &auth.Claims{
		UserID:    uuid.New(),
		TokenType: auth.TokenTypeRefresh,
		ID:        "jti-3",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	f.tokenStore.Revoked["jti-3"] = time.Now().Add(time.Hour)

	_, err := f.service.Refresh(context.Background(), "refresh-token")
	assert.ErrorIs(t, err, auth.ErrInvalidRefreshToken)
}

func TestChangePasswordSuccess(t *testing.T) {
	f := newUserServiceFixture(t)
	user := activeUser(t, "change@example.com")
	f.userStore.Users[user.Email] = user
	f.expectTx()

	err := f.service.ChangePassword(context.Background(), user.ID, "password123", "newsecret99")
	require.NoError(t, err)
	assert.Equal(t, "hashed:newsecret99", user.HashedPassword)
}

func TestChangePasswordRejectsWrongOldPassword(t *testing.T) {
	f := newUserServiceFixture(t)
	user := activeUser(t, "change@example.com")
	f.userStore.Users[user.Email] = user
	f.hasher.CompareErr = errors.New("mismatch")
	f.expectTxRollback()

	err := f.service.ChangePassword(context.Background(), user.ID, "nottheoldone", "newsecret99")
	assert.ErrorIs(t, err, service.ErrWrongPassword)
	assert.Equal(t, "hashed:password123", user.HashedPassword)
}

func TestChangePasswordRejectsShortNewPassword(t *testing.T) {
	f := newUserServiceFixture(t)
	user := activeUser(t, "change@example.com")
	f.userStore.Users[user.Email] = user
	f.expectTxRollback()

	err := f.service.ChangePassword(context.Background(), user.ID, "password123", "short")
	assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
}

func TestUpdateProfilePartial(t *testing.T) {
	f := newUserServiceFixture(t)
	user := activeUser(t, "profile@example.com")
	user.Avatar = "old.png"
	f.userStore.Users[user.Email] = user
	f.expectTx()

	newName := "renamed"
	updated, err := f.service.UpdateProfile(context.Background(), user.ID, service.ProfileUpdate{
		Username: &newName,
	})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Username)
	assert.Equal(t, "old.png", updated.Avatar, "unset fields stay untouched")
}

func TestUpdateProfileRejectsEmptyUsername(t *testing.T) {
	f := newUserServiceFixture(t)
	user := activeUser(t, "profile@example.com")
	f.userStore.Users[user.Email] = user
	f.expectTxRollback()

	empty := ""
	_, err := f.service.UpdateProfile(context.Background(), user.ID, service.ProfileUpdate{
		Username: &empty,
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDeleteUser(t *testing.T) {
	f := newUserServiceFixture(t)
	user := activeUser(t, "gone@example.com")
	f.userStore.Users[user.Email] = user
	f.expectTx()

	require.NoError(t, f.service.DeleteUser(context.Background(), user.ID))
	assert.Empty(t, f.userStore.Users)
}
