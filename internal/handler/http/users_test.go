// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-fullstack-auth/internal/app"
	"github.com/MKhiriev/go-fullstack-auth/internal/service"
	"github.com/MKhiriev/go-fullstack-auth/models"
)

func ptr[T any](v T) *T { return &v }

// ─────────────────────────────────────────────
// /users/me
// ─────────────────────────────────────────────

func TestGetMe(t *testing.T) {
	rr := doRequest(t, newTestHandler(t, nil, nil), http.MethodGet, "/api/v1/users/me", nil, userToken)

	require.Equal(t, http.StatusOK, rr.Code)
	got := decodeBody[models.User](t, rr)
	assert.Equal(t, regularUser.ID, got.ID)
	assert.Equal(t, regularUser.Email, got.Email)
}

func TestUpdateMe(t *testing.T) {
	users := &fakeUserService{
		updateMeFn: func(_ context.Context, id uuid.UUID, req models.UpdateMeRequest) (models.User, error) {
			assert.Equal(t, regularUser.ID, id)
			require.NotNil(t, req.FullName)
			assert.Nil(t, req.Email)

			updated := regularUser
			updated.FullName = *req.FullName
			return updated, nil
		},
	}

	rr := doRequest(t, newTestHandler(t, nil, users), http.MethodPatch, "/api/v1/users/me",
		models.UpdateMeRequest{FullName: ptr("Alice Liddell")}, userToken)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Alice Liddell", decodeBody[models.User](t, rr).FullName)
}

func TestUpdateMe_DuplicateEmail(t *testing.T) {
	users := &fakeUserService{
		updateMeFn: func(context.Context, uuid.UUID, models.UpdateMeRequest) (models.User, error) {
			return models.User{}, service.ErrDuplicateEmail
		},
	}

	rr := doRequest(t, newTestHandler(t, nil, users), http.MethodPatch, "/api/v1/users/me",
		models.UpdateMeRequest{Email: ptr("admin@example.com")}, userToken)

	assertErrorKind(t, rr, http.StatusConflict, "duplicate_email")
}

func TestUpdatePassword(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   string
	}{
		{"success", nil, http.StatusOK, ""},
		{"wrong current password", service.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
		{"same password", service.ErrInvalidDataProvided, http.StatusBadRequest, "invalid_data"},
		{"weak password", service.ErrWeakPassword, http.StatusUnprocessableEntity, "weak_password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := &fakeUserService{
				updatePasswordFn: func(_ context.Context, id uuid.UUID, req models.UpdatePasswordRequest) error {
					assert.Equal(t, regularUser.ID, id)
					assert.Equal(t, "old password", req.CurrentPassword)
					return tt.err
				},
			}

			rr := doRequest(t, newTestHandler(t, nil, users), http.MethodPatch, "/api/v1/users/me/password",
				models.UpdatePasswordRequest{CurrentPassword: "old password", NewPassword: "new password"}, userToken)

			if tt.err == nil {
				assert.Equal(t, http.StatusOK, rr.Code)
				return
			}
			assertErrorKind(t, rr, tt.wantStatus, tt.wantKind)
		})
	}
}

// ─────────────────────────────────────────────
// /users/{id}
// ─────────────────────────────────────────────

func TestGetUser(t *testing.T) {
	other := models.User{ID: uuid.MustParse("0194f1a2-0000-7000-8000-000000000003"), Email: "bob@example.com", IsActive: true}

	users := &fakeUserService{
		getUserFn: func(_ context.Context, id uuid.UUID) (models.User, error) {
			if id == other.ID {
				return other, nil
			}
			return models.User{}, service.ErrUserNotFound
		},
	}
	h := newTestHandler(t, nil, users)

	t.Run("self", func(t *testing.T) {
		rr := doRequest(t, h, http.MethodGet, "/api/v1/users/"+regularUser.ID.String(), nil, userToken)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, regularUser.ID, decodeBody[models.User](t, rr).ID)
	})

	t.Run("other user as regular user", func(t *testing.T) {
		rr := doRequest(t, h, http.MethodGet, "/api/v1/users/"+other.ID.String(), nil, userToken)
		assertErrorKind(t, rr, http.StatusForbidden, "forbidden")
	})

	t.Run("other user as superuser", func(t *testing.T) {
		rr := doRequest(t, h, http.MethodGet, "/api/v1/users/"+other.ID.String(), nil, adminToken)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, other.Email, decodeBody[models.User](t, rr).Email)
	})

	t.Run("missing user as superuser", func(t *testing.T) {
		rr := doRequest(t, h, http.MethodGet, "/api/v1/users/"+uuid.NewString(), nil, adminToken)
		assertErrorKind(t, rr, http.StatusNotFound, "user_not_found")
	})

	t.Run("uuid-shaped but malformed id", func(t *testing.T) {
		rr := doRequest(t, h, http.MethodGet, "/api/v1/users/"+strings.Repeat("-", 36), nil, userToken)
		assertErrorKind(t, rr, http.StatusBadRequest, "invalid_data")
	})

	t.Run("non-uuid path segment", func(t *testing.T) {
		rr := doRequest(t, h, http.MethodGet, "/api/v1/users/not-a-uuid", nil, userToken)
		assertErrorKind(t, rr, http.StatusNotFound, "not_found")
	})
}

// ─────────────────────────────────────────────
// superuser routes
// ─────────────────────────────────────────────

func TestListUsers(t *testing.T) {
	users := &fakeUserService{
		listUsersFn: func(_ context.Context, skip, limit uint64) ([]models.User, int64, error) {
			assert.Equal(t, uint64(10), skip)
			assert.Equal(t, uint64(5), limit)
			return []models.User{regularUser, superUser}, 12, nil
		},
	}

	rr := doRequest(t, newTestHandler(t, nil, users), http.MethodGet, "/api/v1/users/?skip=10&limit=5", nil, adminToken)

	require.Equal(t, http.StatusOK, rr.Code)
	got := decodeBody[models.UsersPublic](t, rr)
	assert.Len(t, got.Data, 2)
	assert.Equal(t, int64(12), got.Count)
}

func TestListUsers_EmptyIsArray(t *testing.T) {
	users := &fakeUserService{
		listUsersFn: func(context.Context, uint64, uint64) ([]models.User, int64, error) {
			return nil, 0, nil
		},
	}

	rr := doRequest(t, newTestHandler(t, nil, users), http.MethodGet, "/api/v1/users/", nil, adminToken)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"data":[],"count":0}`, rr.Body.String())
}

func TestListUsers_InvalidQuery(t *testing.T) {
	rr := doRequest(t, newTestHandler(t, nil, nil), http.MethodGet, "/api/v1/users/?limit=-1", nil, adminToken)

	assertErrorKind(t, rr, http.StatusBadRequest, "invalid_data")
}

func TestSuperuserRoutes_DenyRegularUsers(t *testing.T) {
	h := newTestHandler(t, nil, nil)
	target := "/api/v1/users/" + superUser.ID.String()

	tests := []struct {
		method string
		target string
		body   any
	}{
		{http.MethodGet, "/api/v1/users/", nil},
		{http.MethodPost, "/api/v1/users/", models.AdminCreateUserRequest{Email: "x@example.com"}},
		{http.MethodPatch, target, models.AdminUpdateUserRequest{IsSuperuser: ptr(true)}},
		{http.MethodDelete, target, nil},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			rr := doRequest(t, h, tt.method, tt.target, tt.body, userToken)
			assertErrorKind(t, rr, http.StatusForbidden, "forbidden")
		})
	}
}

func TestCreateUser(t *testing.T) {
	users := &fakeUserService{
		createUserFn: func(_ context.Context, req models.AdminCreateUserRequest) (models.User, error) {
			assert.True(t, req.IsSuperuser)
			return models.User{ID: uuid.New(), Email: req.Email, IsActive: true, IsSuperuser: true}, nil
		},
	}

	rr := doRequest(t, newTestHandler(t, nil, users), http.MethodPost, "/api/v1/users/",
		models.AdminCreateUserRequest{Email: "new@example.com", Password: "long enough pw", IsSuperuser: true}, adminToken)

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.True(t, decodeBody[models.User](t, rr).IsSuperuser)
}

func TestUpdateUser(t *testing.T) {
	users := &fakeUserService{
		updateUserFn: func(_ context.Context, id uuid.UUID, req models.AdminUpdateUserRequest) (models.User, error) {
			assert.Equal(t, regularUser.ID, id)
			require.NotNil(t, req.IsActive)

			updated := regularUser
			updated.IsActive = *req.IsActive
			return updated, nil
		},
	}

	rr := doRequest(t, newTestHandler(t, nil, users), http.MethodPatch, "/api/v1/users/"+regularUser.ID.String(),
		models.AdminUpdateUserRequest{IsActive: ptr(false)}, adminToken)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.False(t, decodeBody[models.User](t, rr).IsActive)
}

func TestDeactivateUser(t *testing.T) {
	users := &fakeUserService{
		deactivateUserFn: func(_ context.Context, actorID, id uuid.UUID) error {
			assert.Equal(t, superUser.ID, actorID)
			if actorID == id {
				return service.ErrForbidden
			}
			return nil
		},
	}
	h := newTestHandler(t, nil, users)

	rr := doRequest(t, h, http.MethodDelete, "/api/v1/users/"+regularUser.ID.String(), nil, adminToken)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, app.MsgUserDeactivated, decodeBody[models.Message](t, rr).Message)

	rr = doRequest(t, h, http.MethodDelete, "/api/v1/users/"+superUser.ID.String(), nil, adminToken)
	assertErrorKind(t, rr, http.StatusForbidden, "forbidden")
}
