// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MKhiriev/go-fullstack-auth/internal/app"
	"github.com/MKhiriev/go-fullstack-auth/internal/logger"
	"github.com/MKhiriev/go-fullstack-auth/internal/utils"
	"github.com/MKhiriev/go-fullstack-auth/models"
)

func (h *Handler) getMe(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) updateMe(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.UpdateMeRequest
	if err = utils.ReadJSON(w, r, &req); err != nil {
		writeError(w, r, invalidBody(err))
		return
	}

	updated, err := h.services.UserService.UpdateMe(r.Context(), user.ID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) updatePassword(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.UpdatePasswordRequest
	if err = utils.ReadJSON(w, r, &req); err != nil {
		writeError(w, r, invalidBody(err))
		return
	}

	if err = h.services.UserService.UpdatePassword(r.Context(), user.ID, req); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.Message{Message: app.MsgPasswordUpdated}, http.StatusOK)
}

// getUser returns any user to a superuser and only the caller's own record
// to everyone else.
func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	id, err := userIDParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if id == user.ID {
		utils.WriteJSON(w, user, http.StatusOK)
		return
	}

	if err = h.services.AuthService.Authorize(user, models.RoleSuperuser); err != nil {
		writeError(w, r, err)
		return
	}

	found, err := h.services.UserService.GetUser(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, found, http.StatusOK)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	skip, err := uintQueryParam(r, "skip")
	if err != nil {
		writeError(w, r, err)
		return
	}
	limit, err := uintQueryParam(r, "limit")
	if err != nil {
		writeError(w, r, err)
		return
	}

	users, count, err := h.services.UserService.ListUsers(r.Context(), skip, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if users == nil {
		users = []models.User{}
	}

	utils.WriteJSON(w, models.UsersPublic{Data: users, Count: count}, http.StatusOK)
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var req models.AdminCreateUserRequest
	if err := utils.ReadJSON(w, r, &req); err != nil {
		writeError(w, r, invalidBody(err))
		return
	}

	user, err := h.services.UserService.CreateUser(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Str("created_user_id", user.ID.String()).Msg("user created by superuser")
	utils.WriteJSON(w, user, http.StatusCreated)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	id, err := userIDParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.AdminUpdateUserRequest
	if err = utils.ReadJSON(w, r, &req); err != nil {
		writeError(w, r, invalidBody(err))
		return
	}

	user, err := h.services.UserService.UpdateUser(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) deactivateUser(w http.ResponseWriter, r *http.Request) {
	actor, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	id, err := userIDParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.UserService.DeactivateUser(r.Context(), actor.ID, id); err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Str("deactivated_user_id", id.String()).Msg("user deactivated")
	utils.WriteJSON(w, models.Message{Message: app.MsgUserDeactivated}, http.StatusOK)
}

func userIDParam(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %w", ErrInvalidUserID, err)
	}
	return id, nil
}

// uintQueryParam parses an optional non-negative integer query parameter.
// A missing parameter yields zero.
func uintQueryParam(r *http.Request, name string) (uint64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}

	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, invalidBody(fmt.Errorf("query parameter %q: %w", name, err))
	}
	return value, nil
}
