// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package recovery rebuilds media metadata from the object store and
// refreshes the denormalized category counters. Both jobs are manually
// triggered by administrators; neither runs on a schedule.
package recovery

import (
	"context"
	"errors"
	"log/slog"
	"path"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"interiorlib/internal/catalog"
	"interiorlib/internal/models"
	"interiorlib/internal/storage"
	"interiorlib/internal/store"
)

// ObjectStore is the storage surface the jobs need. Satisfied by
// *storage.Client.
type ObjectStore interface {
	List(ctx context.Context, prefix string) ([]storage.Object, error)
	Head(ctx context.Context, key string) (*storage.Metadata, error)
	FileURL(key string) string
}

// MediaStore is satisfied by *store.MediaStore.
type MediaStore interface {
	Create(*models.MediaItem) (*models.MediaItem, error)
	ExistsByURL(url string) (bool, error)
	CountsByGroup() ([]store.GroupCount, error)
}

// CategoryStore is satisfied by *store.CategoryStore.
type CategoryStore interface {
	List() ([]models.Category, error)
	UpdateSubCategories(id string, subs []models.SubCategory) error
}

// ErrNoStorage is returned by Recover when no object store is configured.
// Recount does not need one and still works.
var ErrNoStorage = errors.New("object storage not configured")

// Report summarizes a recovery run.
type Report struct {
	Recovered int `json:"recovered"`
	Skipped   int `json:"skipped"`
	Errors    int `json:"errors"`
	Recounted int `json:"recounted"`
}

const defaultWorkers = 4

// Roots are the storage prefixes recovery walks. The "files/" root covers
// an old uploader that mangled folder separators into literal "-2F".
var roots = []string{"interior-library/", "files/"}

// Job walks the object store and recreates media rows for objects that
// have none, then recounts the per-subcategory counters.
type Job struct {
	objects ObjectStore
	media   MediaStore
	cats    CategoryStore
	lookup  *catalog.Lookup
	workers int
}

func NewJob(objects ObjectStore, media MediaStore, cats CategoryStore) *Job {
	return &Job{
		objects: objects,
		media:   media,
		cats:    cats,
		lookup:  catalog.NewLookup(),
		workers: defaultWorkers,
	}
}

// Recover scans every object under the known roots and creates a media
// row for each object whose content-address URL is not yet known. Objects
// whose path cannot be mapped to a category and subcategory are skipped
// and logged, never written as partial rows. Per-object failures are
// isolated; the run always completes with a full report. When anything
// was recovered the counter recount runs afterwards.
func (j *Job) Recover(ctx context.Context) (*Report, error) {
	if j.objects == nil {
		return nil, ErrNoStorage
	}

	var report Report
	var mu sync.Mutex

	// Per-run dedup set so N objects resolving to the same URL cost one
	// store lookup at most, and only the first creates a row.
	seen := make(map[string]struct{})

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(j.workers)

	for _, root := range roots {
		objects, err := j.objects.List(ctx, root)
		if err != nil {
			slog.Error("recovery: listing root failed", "root", root, "error", err)
			mu.Lock()
			report.Errors++
			mu.Unlock()
			continue
		}

		for _, obj := range objects {
			g.Go(func() error {
				outcome := j.processObject(ctx, obj, seen, &mu)
				mu.Lock()
				switch outcome {
				case outcomeRecovered:
					report.Recovered++
				case outcomeSkipped:
					report.Skipped++
				case outcomeError:
					report.Errors++
				}
				mu.Unlock()
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return &report, err
	}
	if err := ctx.Err(); err != nil {
		return &report, err
	}

	slog.Info("recovery complete",
		"recovered", report.Recovered, "skipped", report.Skipped, "errors", report.Errors)

	if report.Recovered > 0 {
		updated, err := j.Recount(ctx)
		if err != nil {
			slog.Error("recount after recovery failed", "error", err)
			report.Errors++
		}
		report.Recounted = updated
	}

	return &report, nil
}

type outcome int

const (
	outcomeRecovered outcome = iota
	outcomeSkipped
	outcomeError
)

func (j *Job) processObject(ctx context.Context, obj storage.Object, seen map[string]struct{}, mu *sync.Mutex) outcome {
	categoryID, subCategoryID, ok := j.inferPlacement(obj.Key)
	if !ok {
		slog.Warn("recovery: could not map object to catalog", "key", obj.Key)
		return outcomeSkipped
	}

	url := j.objects.FileURL(obj.Key)

	mu.Lock()
	_, dup := seen[url]
	if !dup {
		seen[url] = struct{}{}
	}
	mu.Unlock()
	if dup {
		return outcomeSkipped
	}

	exists, err := j.media.ExistsByURL(url)
	if err != nil {
		slog.Error("recovery: existence check failed", "key", obj.Key, "error", err)
		return outcomeError
	}
	if exists {
		return outcomeSkipped
	}

	meta, err := j.objects.Head(ctx, obj.Key)
	if err != nil {
		slog.Error("recovery: metadata fetch failed", "key", obj.Key, "error", err)
		return outcomeError
	}

	item := &models.MediaItem{
		Name:          path.Base(obj.Key),
		URL:           url,
		Type:          inferType(obj.Key),
		CategoryID:    categoryID,
		SubCategoryID: subCategoryID,
		Tags:          []string{},
		SizeBytes:     meta.Size,
		ContentType:   meta.ContentType,
		StorageKey:    obj.Key,
	}
	if _, err := j.media.Create(item); err != nil {
		slog.Error("recovery: media insert failed", "key", obj.Key, "error", err)
		return outcomeError
	}

	slog.Info("recovered media", "key", obj.Key, "category", categoryID, "sub", subCategoryID)
	return outcomeRecovered
}

// inferPlacement maps a storage key to catalog ids by matching path
// segments against the name and id lookup tables. The category must
// resolve from an earlier segment than the subcategory.
func (j *Job) inferPlacement(key string) (categoryID, subCategoryID string, ok bool) {
	segments := splitKey(key)

	for _, seg := range segments {
		if categoryID == "" {
			if id := j.lookup.CategoryID(seg); id != "" {
				categoryID = id
			}
			continue
		}
		if id := j.lookup.SubCategoryID(seg); id != "" {
			subCategoryID = id
			break
		}
	}

	return categoryID, subCategoryID, categoryID != "" && subCategoryID != ""
}

// inferType detects videos by the "video" token or a video file
// extension; everything else counts as an image.
func inferType(key string) models.MediaType {
	lower := strings.ToLower(key)
	if strings.Contains(lower, "video") {
		return models.TypeVideo
	}
	switch strings.ToLower(path.Ext(key)) {
	case ".mp4", ".webm", ".mov", ".avi", ".mkv":
		return models.TypeVideo
	}
	return models.TypeImage
}

// splitKey breaks a storage key into candidate segments. Legacy keys use
// literal "-2F" in place of slashes, so those are separators too.
func splitKey(key string) []string {
	out := make([]string, 0, 8)
	for _, p := range strings.Split(key, "/") {
		for _, seg := range strings.Split(p, "-2F") {
			if seg != "" {
				out = append(out, seg)
			}
		}
	}
	return out
}
