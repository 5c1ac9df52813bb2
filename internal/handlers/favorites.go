// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"interiorlib/internal/middleware"
	"interiorlib/internal/models"
	"interiorlib/internal/store"
)

// Favorites manages the per-user favorite media set.
type Favorites struct {
	userStore *store.UserStore
}

// NewFavorites creates a new Favorites handler group.
func NewFavorites(userStore *store.UserStore) *Favorites {
	return &Favorites{userStore: userStore}
}

// List returns the caller's favorites enriched with the media rows,
// newest first.
func (f *Favorites) List(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	items, err := f.userStore.Favorites(sess.UserID)
	if err != nil {
		slog.Error("favorites list failed", "user", sess.UserID, "error", err)
		writeError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if items == nil {
		items = []models.MediaItem{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

type favoriteRequest struct {
	MediaID uuid.UUID `json:"media_id"`
}

// Add marks a media item as a favorite. Idempotent.
func (f *Favorites) Add(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	var req favoriteRequest
	if err := decodeJSON(r, &req); err != nil || req.MediaID == uuid.Nil {
		writeError(w, "media_id is required", http.StatusBadRequest)
		return
	}

	if err := f.userStore.AddFavorite(sess.UserID, req.MediaID); err != nil {
		slog.Error("favorite add failed", "user", sess.UserID, "media", req.MediaID, "error", err)
		writeError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Remove unmarks a favorite. Removing a non-favorite is a no-op.
func (f *Favorites) Remove(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	mediaID, err := uuid.Parse(chi.URLParam(r, "mediaID"))
	if err != nil {
		writeError(w, "invalid media id", http.StatusBadRequest)
		return
	}

	if err := f.userStore.RemoveFavorite(sess.UserID, mediaID); err != nil {
		slog.Error("favorite remove failed", "user", sess.UserID, "media", mediaID, "error", err)
		writeError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
