// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package locator lists media straight from object storage for
// subcategories whose objects predate the media table. Folder naming in
// the bucket drifted over the years (spaces vs hyphens, URL-encoded
// segments, old "files/" roots), so the locator probes a fixed priority
// list of candidate prefixes and stops at the first one that holds
// objects. New uploads persist a canonical storage key and never need
// this package; it exists for the legacy backlog only.
package locator

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"time"

	"github.com/redis/go-redis/v9"

	"interiorlib/internal/catalog"
	"interiorlib/internal/models"
	"interiorlib/internal/storage"
)

// ObjectLister is the storage surface the locator needs. Satisfied by
// *storage.Client.
type ObjectLister interface {
	List(ctx context.Context, prefix string) ([]storage.Object, error)
	FileURL(key string) string
}

// Descriptor is a lightweight media reference built from a bare object
// listing. Size and content type are placeholders since fetching
// per-object metadata would multiply the request count.
type Descriptor struct {
	Name          string           `json:"name"`
	URL           string           `json:"url"`
	Type          models.MediaType `json:"type"`
	CategoryID    string           `json:"categoryId"`
	SubCategoryID string           `json:"subCategoryId"`
	SizeBytes     int64            `json:"size_bytes"`
	ContentType   string           `json:"content_type"`
	StorageKey    string           `json:"storage_key"`
}

const prefixCacheTTL = time.Hour

// Locator probes candidate storage prefixes for legacy media. The
// optional cache remembers which prefix won per triple so repeat lookups
// skip the probe sequence.
type Locator struct {
	lister ObjectLister
	cache  *redis.Client // may be nil
}

func New(lister ObjectLister, cache *redis.Client) *Locator {
	return &Locator{lister: lister, cache: cache}
}

// Locate lists objects for a category/subcategory/type triple. Prefixes
// are tried in priority order and the first non-empty listing wins;
// results from lower-priority prefixes are never merged in. An empty
// result means either no media or no matching prefix, the two are not
// distinguishable here.
func (l *Locator) Locate(ctx context.Context, categoryID, subCategoryID string, typ models.MediaType) ([]Descriptor, error) {
	cat := catalog.Find(categoryID)
	if cat == nil {
		return nil, nil
	}
	sub := cat.SubCategory(subCategoryID)
	if sub == nil {
		return nil, nil
	}

	if hit := l.cachedPrefix(ctx, categoryID, subCategoryID, typ); hit != "" {
		objs, err := l.lister.List(ctx, hit)
		if err == nil && len(objs) > 0 {
			return l.describe(objs, categoryID, subCategoryID, typ), nil
		}
		// Cached prefix went stale, fall through to the probe.
	}

	for _, prefix := range candidatePrefixes(cat.Name, categoryID, sub.Name, subCategoryID, typ) {
		objs, err := l.lister.List(ctx, prefix)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			slog.Debug("prefix probe failed", "prefix", prefix, "error", err)
			continue
		}
		if len(objs) == 0 {
			continue
		}

		l.rememberPrefix(ctx, categoryID, subCategoryID, typ, prefix)
		return l.describe(objs, categoryID, subCategoryID, typ), nil
	}

	return nil, nil
}

func (l *Locator) describe(objs []storage.Object, categoryID, subCategoryID string, typ models.MediaType) []Descriptor {
	contentType := "image/jpeg"
	if typ == models.TypeVideo {
		contentType = "video/mp4"
	}

	out := make([]Descriptor, 0, len(objs))
	for _, o := range objs {
		out = append(out, Descriptor{
			Name:          path.Base(o.Key),
			URL:           l.lister.FileURL(o.Key),
			Type:          typ,
			CategoryID:    categoryID,
			SubCategoryID: subCategoryID,
			SizeBytes:     0,
			ContentType:   contentType,
			StorageKey:    o.Key,
		})
	}
	return out
}

func (l *Locator) cachedPrefix(ctx context.Context, categoryID, subCategoryID string, typ models.MediaType) string {
	if l.cache == nil {
		return ""
	}
	hit, err := l.cache.Get(ctx, prefixCacheKey(categoryID, subCategoryID, typ)).Result()
	if err != nil {
		return ""
	}
	return hit
}

func (l *Locator) rememberPrefix(ctx context.Context, categoryID, subCategoryID string, typ models.MediaType, prefix string) {
	if l.cache == nil {
		return
	}
	if err := l.cache.Set(ctx, prefixCacheKey(categoryID, subCategoryID, typ), prefix, prefixCacheTTL).Err(); err != nil {
		slog.Debug("prefix cache write failed", "error", err)
	}
}

func prefixCacheKey(categoryID, subCategoryID string, typ models.MediaType) string {
	return fmt.Sprintf("locator:prefix:%s:%s:%s", categoryID, subCategoryID, typ)
}

// candidatePrefixes returns the probe order for a triple, most likely
// convention first. The "files/2F..." entries cover an era when an
// uploader wrote URL-encoded folder names with the slashes mangled into
// literal "-2F" sequences.
func candidatePrefixes(categoryName, categoryID, subName, subID string, typ models.MediaType) []string {
	t := string(typ)
	return []string{
		fmt.Sprintf("files/2Finterior_library-2F%s-2F%s-2F%s", categoryName, subName, t),
		fmt.Sprintf("files/2Finterior_library-2F%s-2F%s-2F%s", categoryID, subID, t),
		fmt.Sprintf("interior-library/%s/%s/%s", categoryName, subName, t),
		fmt.Sprintf("interior-library/%s/%s/%s", categoryID, subID, t),
		fmt.Sprintf("files/interior_library/%s/%s/%s", categoryName, subName, t),
		fmt.Sprintf("%s/%s/%s", categoryName, subName, t),
		fmt.Sprintf("%s/%s/%s", categoryID, subID, t),
	}
}
