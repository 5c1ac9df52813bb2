// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"interiorlib/internal/locator"
	"interiorlib/internal/models"
	"interiorlib/internal/store"
	"interiorlib/internal/uploader"
)

// maxUploadMemory is the in-memory buffer for multipart parsing; larger
// files spill to temp files.
const maxUploadMemory = 32 << 20 // 32 MB

// ObjectRemover deletes an object from storage after its metadata row is
// gone. Satisfied by *storage.Client; may be nil when storage is not
// configured. ExtractKey recovers the key for rows that predate the
// storage_key column.
type ObjectRemover interface {
	Delete(ctx context.Context, key string) error
	ExtractKey(rawURL string) (string, bool)
}

// Media serves media listings, uploads, and deletion.
type Media struct {
	mediaStore *store.MediaStore
	loc        *locator.Locator   // legacy fallback, may be nil
	up         *uploader.Uploader // may be nil when storage is not configured
	remover    ObjectRemover
}

// NewMedia creates a new Media handler group.
func NewMedia(mediaStore *store.MediaStore, loc *locator.Locator, up *uploader.Uploader, remover ObjectRemover) *Media {
	return &Media{
		mediaStore: mediaStore,
		loc:        loc,
		up:         up,
		remover:    remover,
	}
}

// List returns media rows across all categories, newest first, with
// limit/offset paging.
func (m *Media) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := 50, 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}

	items, err := m.mediaStore.List(limit, offset)
	if err != nil {
		slog.Error("media list failed", "error", err)
		writeError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	total, err := m.mediaStore.Count()
	if err != nil {
		slog.Error("media count failed", "error", err)
		writeError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if items == nil {
		items = []models.MediaItem{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "total": total})
}

// ListBySubCategory returns media rows for a subcategory. When the table
// has no rows for the triple, the legacy locator probes object storage
// directly — that backlog predates the media table.
func (m *Media) ListBySubCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "id")
	subCategoryID := chi.URLParam(r, "subID")

	typ := models.MediaType(r.URL.Query().Get("type"))
	if typ == "" {
		typ = models.TypeImage
	}
	if !typ.Valid() {
		writeError(w, "type must be image or video", http.StatusBadRequest)
		return
	}

	items, err := m.mediaStore.ListBySubCategory(categoryID, subCategoryID, typ)
	if err != nil {
		slog.Error("media list failed", "category", categoryID, "sub", subCategoryID, "error", err)
		writeError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if len(items) > 0 || m.loc == nil {
		if items == nil {
			items = []models.MediaItem{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items, "source": "database"})
		return
	}

	descriptors, err := m.loc.Locate(r.Context(), categoryID, subCategoryID, typ)
	if err != nil {
		slog.Error("storage scan failed", "category", categoryID, "sub", subCategoryID, "error", err)
		writeError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if descriptors == nil {
		descriptors = []locator.Descriptor{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": descriptors, "source": "storage"})
}

// Upload accepts a multipart batch of files for one subcategory. Fields:
// category_id, sub_category_id, type, tags (comma-separated), files.
// Individual file failures are reported per file without failing the batch.
func (m *Media) Upload(w http.ResponseWriter, r *http.Request) {
	if m.up == nil {
		writeError(w, "media storage is not configured", http.StatusServiceUnavailable)
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, "invalid multipart request", http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	categoryID := r.FormValue("category_id")
	subCategoryID := r.FormValue("sub_category_id")
	typ := models.MediaType(r.FormValue("type"))

	var tags []string
	if raw := strings.TrimSpace(r.FormValue("tags")); raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
	}

	fileHeaders := r.MultipartForm.File["files"]
	if len(fileHeaders) == 0 {
		writeError(w, "no files provided", http.StatusBadRequest)
		return
	}

	var files []uploader.File
	for _, fh := range fileHeaders {
		f, err := fh.Open()
		if err != nil {
			writeError(w, "could not read uploaded file", http.StatusBadRequest)
			return
		}
		defer f.Close()

		contentType := fh.Header.Get("Content-Type")
		files = append(files, uploader.File{
			Name:        fh.Filename,
			ContentType: contentType,
			Size:        fh.Size,
			Body:        f,
		})
	}

	res, err := m.up.UploadBatch(r.Context(), categoryID, subCategoryID, typ, tags, files)
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	status := http.StatusCreated
	if len(res.Items) == 0 && len(res.Failed) > 0 {
		status = http.StatusBadGateway
	}
	writeJSON(w, status, res)
}

// Delete removes a media row and its stored object. The row is deleted
// first; object cleanup failure is logged, not surfaced, since the row is
// already gone and recovery would just skip the orphan's URL.
func (m *Media) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, "invalid media id", http.StatusBadRequest)
		return
	}

	deleted, err := m.mediaStore.Delete(id)
	if err != nil {
		slog.Error("media delete failed", "id", id, "error", err)
		writeError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if deleted == nil {
		writeError(w, "media not found", http.StatusNotFound)
		return
	}

	if m.remover != nil {
		key := deleted.StorageKey
		if key == "" {
			key, _ = m.remover.ExtractKey(deleted.URL)
		}
		if key != "" {
			if err := m.remover.Delete(r.Context(), key); err != nil {
				slog.Warn("object cleanup failed", "key", key, "error", err)
			}
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{"deleted": deleted.ID})
}
