// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"interiorlib/internal/catalog"
	"interiorlib/internal/models"
	"interiorlib/internal/reconciler"
	"interiorlib/internal/slug"
)

// Categories serves the merged category view and admin mutations on it.
type Categories struct {
	rec *reconciler.Reconciler
}

// NewCategories creates a new Categories handler group.
func NewCategories(rec *reconciler.Reconciler) *Categories {
	return &Categories{rec: rec}
}

// List returns the merged category view. Never blocks on the database.
func (c *Categories) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"categories": c.rec.Categories(),
	})
}

// Tags returns the curated filter tag list.
func (c *Categories) Tags(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"tags": catalog.Tags})
}

// Get returns a single category from the merged view.
func (c *Categories) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	cat := c.rec.Category(id)
	if cat == nil {
		writeError(w, "category not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, cat)
}

type createCategoryRequest struct {
	Name          string `json:"name"`
	Icon          string `json:"icon"`
	Emoji         string `json:"emoji"`
	Description   string `json:"description"`
	Color         string `json:"color"`
	SubCategories []struct {
		Name string `json:"name"`
	} `json:"subCategories"`
}

// Create adds a new category. The ID is derived from the name and is
// immutable afterwards. The change is visible immediately; persistence
// happens in the background.
func (c *Categories) Create(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, "name is required", http.StatusBadRequest)
		return
	}

	id := slug.Generate(req.Name)
	if id == "" {
		writeError(w, "name must contain letters or digits", http.StatusBadRequest)
		return
	}
	if c.rec.Category(id) != nil {
		writeError(w, "category already exists", http.StatusConflict)
		return
	}

	cat := models.Category{
		ID:          id,
		Name:        req.Name,
		Icon:        req.Icon,
		Emoji:       req.Emoji,
		Description: req.Description,
		Color:       req.Color,
	}
	seen := make(map[string]bool)
	for _, sc := range req.SubCategories {
		name := strings.TrimSpace(sc.Name)
		if name == "" {
			continue
		}
		sid := slug.Generate(name)
		if sid == "" || seen[sid] {
			continue
		}
		seen[sid] = true
		cat.SubCategories = append(cat.SubCategories, models.SubCategory{ID: sid, Name: name})
	}

	c.rec.Add(r.Context(), cat)
	writeJSON(w, http.StatusCreated, c.rec.Category(id))
}

// Update applies a partial update to a category. Counters are not
// editable here; the recount job owns them.
func (c *Categories) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if c.rec.Category(id) == nil {
		writeError(w, "category not found", http.StatusNotFound)
		return
	}

	var patch models.CategoryPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	c.rec.Update(r.Context(), id, patch)
	writeJSON(w, http.StatusOK, c.rec.Category(id))
}

// ForceSync overwrites every stored category row with the merged view.
func (c *Categories) ForceSync(w http.ResponseWriter, r *http.Request) {
	res := c.rec.ForceSync(r.Context())
	writeJSON(w, http.StatusOK, res)
}
