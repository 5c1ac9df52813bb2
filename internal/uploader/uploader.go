// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package uploader writes media files to object storage under the
// canonical key layout and records a metadata row for each. The canonical
// key is what lets the rest of the system skip path guessing for anything
// uploaded through here.
package uploader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"interiorlib/internal/catalog"
	"interiorlib/internal/models"
)

// ErrTimeout marks an upload cancelled by the per-file deadline. Callers
// check it with errors.Is to drive distinct user messaging.
var ErrTimeout = errors.New("upload timed out")

// DefaultTimeout is the per-file upload deadline.
const DefaultTimeout = 5 * time.Minute

// ObjectStore is satisfied by *storage.Client.
type ObjectStore interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	FileURL(key string) string
}

// MediaStore is satisfied by *store.MediaStore.
type MediaStore interface {
	Create(*models.MediaItem) (*models.MediaItem, error)
}

// CounterBumper receives optimistic count increments after a successful
// batch. Satisfied by *reconciler.Reconciler; may be nil.
type CounterBumper interface {
	BumpCounts(ctx context.Context, categoryID, subCategoryID string, typ models.MediaType, delta int)
}

// File is one pending upload.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// FileError pairs a failed file with its error.
type FileError struct {
	Name  string `json:"name"`
	Error string `json:"error"`

	err error
}

// Unwrap exposes the underlying error for errors.Is checks in callers.
func (e *FileError) Unwrap() error { return e.err }

// BatchResult reports a batch upload. One file failing never aborts the
// rest of the batch.
type BatchResult struct {
	Items  []models.MediaItem `json:"items"`
	Failed []FileError        `json:"failed,omitempty"`
}

// Uploader runs batch uploads. Timeout applies per file, not per batch.
type Uploader struct {
	objects ObjectStore
	media   MediaStore
	counter CounterBumper

	Timeout time.Duration

	// now is swapped in tests for deterministic keys.
	now func() time.Time
}

func New(objects ObjectStore, media MediaStore, counter CounterBumper) *Uploader {
	return &Uploader{
		objects: objects,
		media:   media,
		counter: counter,
		Timeout: DefaultTimeout,
		now:     time.Now,
	}
}

// UploadBatch uploads files sequentially into the given subcategory.
// The triple must resolve against the catalog; an unknown category,
// subcategory or type fails the whole batch up front. Individual file
// failures land in BatchResult.Failed while the batch continues. After
// the batch, counters are bumped optimistically by the success count;
// the recount job remains authoritative.
func (u *Uploader) UploadBatch(ctx context.Context, categoryID, subCategoryID string, typ models.MediaType, tags []string, files []File) (*BatchResult, error) {
	if !typ.Valid() {
		return nil, fmt.Errorf("invalid media type %q", typ)
	}
	cat := catalog.Find(categoryID)
	if cat == nil {
		return nil, fmt.Errorf("unknown category %q", categoryID)
	}
	sub := cat.SubCategory(subCategoryID)
	if sub == nil {
		return nil, fmt.Errorf("unknown subcategory %q in %q", subCategoryID, categoryID)
	}
	if tags == nil {
		tags = []string{}
	}

	res := &BatchResult{}
	for _, f := range files {
		item, err := u.uploadOne(ctx, cat.Name, sub.Name, categoryID, subCategoryID, typ, tags, f)
		if err != nil {
			slog.Error("upload failed", "file", f.Name, "error", err)
			res.Failed = append(res.Failed, FileError{Name: f.Name, Error: err.Error(), err: err})
			continue
		}
		res.Items = append(res.Items, *item)
	}

	if u.counter != nil && len(res.Items) > 0 {
		u.counter.BumpCounts(ctx, categoryID, subCategoryID, typ, len(res.Items))
	}

	slog.Info("upload batch complete",
		"category", categoryID, "sub", subCategoryID,
		"uploaded", len(res.Items), "failed", len(res.Failed))
	return res, nil
}

func (u *Uploader) uploadOne(ctx context.Context, categoryName, subName, categoryID, subCategoryID string, typ models.MediaType, tags []string, f File) (*models.MediaItem, error) {
	key := fmt.Sprintf("interior-library/%s/%s/%s/%d_%s",
		categoryName, subName, typ, u.now().UnixMilli(), f.Name)

	uctx, cancel := context.WithTimeout(ctx, u.Timeout)
	defer cancel()

	if err := u.objects.Upload(uctx, key, f.ContentType, f.Body, f.Size); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(uctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%s: %w", f.Name, ErrTimeout)
		}
		return nil, fmt.Errorf("uploading %s: %w", f.Name, err)
	}

	item := &models.MediaItem{
		Name:          f.Name,
		URL:           u.objects.FileURL(key),
		Type:          typ,
		CategoryID:    categoryID,
		SubCategoryID: subCategoryID,
		Tags:          tags,
		SizeBytes:     f.Size,
		ContentType:   f.ContentType,
		StorageKey:    key,
	}
	created, err := u.media.Create(item)
	if err != nil {
		return nil, fmt.Errorf("recording %s: %w", f.Name, err)
	}
	return created, nil
}
