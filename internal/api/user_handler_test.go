package api

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/userhub-io/userhub/internal/domain"
	"github.com/userhub-io/userhub/internal/mocks"
	"github.com/userhub-io/userhub/internal/service"
	"github.com/userhub-io/userhub/internal/store"
)

func TestUpdateProfileHandlerForwardsPresentFields(t *testing.T) {
	userID := uuid.New()
	user := testUser(t)

	var gotUpdate service.ProfileUpdate
	svc := &mocks.MockUserService{
		UpdateProfileFn: func(ctx context.Context, id uuid.UUID, update service.ProfileUpdate) (*domain.User, error) {
			assert.Equal(t, userID, id)
			gotUpdate = update
			return user, nil
		},
	}
	h := NewUserHandler(svc, slog.Default())

	body, err := json.Marshal(map[string]string{"avatar": "new.png"})
	require.NoError(t, err)
	req := withAuthenticatedUser(
		httptest.NewRequest(http.MethodPut, "/api/users/update_profile", bytes.NewReader(body)),
		userID)
	rr := httptest.NewRecorder()
	h.UpdateProfile(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, gotUpdate.Avatar)
	assert.Equal(t, "new.png", *gotUpdate.Avatar)
	assert.Nil(t, gotUpdate.Username, "absent fields stay nil")

	var resp UserResponse
	decodeBody(t, rr, &resp)
	assert.Equal(t, user.ID, resp.ID)
}

func TestUpdateProfileHandlerRejectsEmptyBody(t *testing.T) {
	svc := &mocks.MockUserService{}
	h := NewUserHandler(svc, slog.Default())

	req := withAuthenticatedUser(
		httptest.NewRequest(http.MethodPut, "/api/users/update_profile", bytes.NewReader([]byte("{}"))),
		uuid.New())
	rr := httptest.NewRecorder()
	h.UpdateProfile(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUpdateProfileHandlerRequiresAuth(t *testing.T) {
	svc := &mocks.MockUserService{}
	h := NewUserHandler(svc, slog.Default())

	req := httptest.NewRequest(http.MethodPut, "/api/users/update_profile", bytes.NewReader([]byte("{}")))
	rr := httptest.NewRecorder()
	h.UpdateProfile(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestUserResourceHandlers(t *testing.T) {
	user := testUser(t)

	newRouter := func(svc *mocks.MockUserService) *chi.Mux {
		h := NewUserHandler(svc, slog.Default())
		r := chi.NewRouter()
		r.Get("/api/users", h.List)
		r.Get("/api/users/{id}", h.Get)
		r.Delete("/api/users/{id}", h.Delete)
		return r
	}

	t.Run("get", func(t *testing.T) {
		svc := &mocks.MockUserService{User: user}
		r := newRouter(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/users/"+user.ID.String(), nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("get unknown is 404", func(t *testing.T) {
		svc := &mocks.MockUserService{Err: store.ErrUserNotFound}
		r := newRouter(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/users/"+uuid.NewString(), nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("get with malformed id", func(t *testing.T) {
		svc := &mocks.MockUserService{}
		r := newRouter(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/users/not-a-uuid", nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("list", func(t *testing.T) {
		svc := &mocks.MockUserService{Users: []*domain.User{user}}
		r := newRouter(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/users?limit=10", nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)

		var resp []UserResponse
		decodeBody(t, rr, &resp)
		assert.Len(t, resp, 1)
	})

	t.Run("delete", func(t *testing.T) {
		svc := &mocks.MockUserService{}
		r := newRouter(svc)

		req := httptest.NewRequest(http.MethodDelete, "/api/users/"+user.ID.String(), nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusNoContent, rr.Code)
	})
}
