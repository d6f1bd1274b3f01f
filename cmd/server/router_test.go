package main

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/userhub-io/userhub/internal/config"
	"github.com/userhub-io/userhub/internal/domain"
	"github.com/userhub-io/userhub/internal/mocks"
	"github.com/userhub-io/userhub/internal/service"
	"github.com/userhub-io/userhub/internal/service/auth"
)

func testApplication(t *testing.T, jwt *mocks.MockJWTService) *application {
	t.Helper()

	user, err := domain.NewUser("a@b.com", "u", "password123")
	require.NoError(t, err)
	user.HashedPassword = "hash"
	user.Password = ""

	return &application{
		config:     &config.Config{Server: config.ServerConfig{Port: 8080, LogLevel: "info"}},
		logger:     slog.Default(),
		jwtService: jwt,
		userService: &mocks.MockUserService{
			User: user,
			Pair: &service.TokenPair{AccessToken: "a", RefreshToken: "r"},
		},
		interestService: &mocks.MockInterestService{},
	}
}

func TestHealthEndpoint(t *testing.T) {
	app := testApplication(t, &mocks.MockJWTService{})
	router := app.setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK", rr.Body.String())
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	app := testApplication(t, &mocks.MockJWTService{ValidateErr: auth.ErrInvalidToken})
	router := app.setupRouter()

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/users/logout"},
		{http.MethodPost, "/api/users/refresh"},
		{http.MethodPost, "/api/users/change_password"},
		{http.MethodPut, "/api/users/update_profile"},
		{http.MethodGet, "/api/users/showinterest"},
		{http.MethodPost, "/api/users/update_interests"},
		{http.MethodGet, "/api/users"},
		{http.MethodGet, "/api/users/" + uuid.NewString()},
		{http.MethodDelete, "/api/users/" + uuid.NewString()},
		{http.MethodGet, "/api/interests"},
		{http.MethodPost, "/api/interests"},
	}

	for _, route := range routes {
		req := httptest.NewRequest(route.method, route.path, strings.NewReader("{}"))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code,
			"%s %s must require authentication", route.method, route.path)
	}
}

func TestPublicRoutesSkipAuth(t *testing.T) {
	// The JWT service rejects everything; public routes must not consult it.
	jwt := &mocks.MockJWTService{
		ValidateTokenFn: func(ctx context.Context, tokenString string) (*auth.Claims, error) {
			t.Fatal("public route must not validate access tokens")
			return nil, nil
		},
	}
	app := testApplication(t, jwt)
	router := app.setupRouter()

	t.Run("register", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/users",
			strings.NewReader(`{"email":"a@b.com","username":"u","password":"password123"}`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.NotEqual(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("login", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/users/login",
			strings.NewReader(`{"email":"a@b.com","password":"password123"}`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.NotEqual(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("activate", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/activate/some-token", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.NotEqual(t, http.StatusUnauthorized, rr.Code)
	})
}
