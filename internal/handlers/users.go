// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"interiorlib/internal/middleware"
	"interiorlib/internal/models"
	"interiorlib/internal/store"
)

// Users provides admin account management.
type Users struct {
	userStore *store.UserStore
}

// NewUsers creates a new Users handler group.
func NewUsers(userStore *store.UserStore) *Users {
	return &Users{userStore: userStore}
}

// List returns all accounts.
func (u *Users) List(w http.ResponseWriter, r *http.Request) {
	users, err := u.userStore.List()
	if err != nil {
		slog.Error("user list failed", "error", err)
		writeError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}

type createUserRequest struct {
	Email       string      `json:"email"`
	Password    string      `json:"password"`
	DisplayName string      `json:"display_name"`
	Role        models.Role `json:"role"`
}

// Create adds a new account with the given role.
func (u *Users) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		writeError(w, "valid email is required", http.StatusBadRequest)
		return
	}
	if len(req.Password) < 8 {
		writeError(w, "password must be at least 8 characters", http.StatusBadRequest)
		return
	}
	if !req.Role.Valid() {
		writeError(w, "role must be admin, staff, or client", http.StatusBadRequest)
		return
	}

	existing, err := u.userStore.FindByEmail(req.Email)
	if err != nil {
		slog.Error("user lookup failed", "error", err)
		writeError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if existing != nil {
		writeError(w, "email already registered", http.StatusConflict)
		return
	}

	user, err := u.userStore.Create(req.Email, req.Password, req.DisplayName, req.Role)
	if err != nil {
		slog.Error("user create failed", "error", err)
		writeError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

type updateRoleRequest struct {
	Role models.Role `json:"role"`
}

// UpdateRole changes an account's role claim. Admins cannot demote
// themselves; that guards against locking everyone out.
func (u *Users) UpdateRole(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, "invalid user id", http.StatusBadRequest)
		return
	}

	var req updateRoleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if !req.Role.Valid() {
		writeError(w, "role must be admin, staff, or client", http.StatusBadRequest)
		return
	}

	sess := middleware.SessionFromCtx(r.Context())
	if sess != nil && sess.UserID == id && req.Role != models.RoleAdmin {
		writeError(w, "cannot change your own admin role", http.StatusBadRequest)
		return
	}

	user, err := u.userStore.FindByID(id)
	if err != nil {
		slog.Error("user lookup failed", "error", err)
		writeError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if user == nil {
		writeError(w, "user not found", http.StatusNotFound)
		return
	}

	if err := u.userStore.UpdateRole(id, req.Role); err != nil {
		slog.Error("role update failed", "user", id, "error", err)
		writeError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	user.Role = req.Role
	writeJSON(w, http.StatusOK, user)
}

// Delete removes an account. Self-deletion is rejected.
func (u *Users) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, "invalid user id", http.StatusBadRequest)
		return
	}

	sess := middleware.SessionFromCtx(r.Context())
	if sess != nil && sess.UserID == id {
		writeError(w, "cannot delete your own account", http.StatusBadRequest)
		return
	}

	if err := u.userStore.Delete(id); err != nil {
		slog.Error("user delete failed", "user", id, "error", err)
		writeError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
