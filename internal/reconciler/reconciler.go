// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package reconciler maintains the merged category view: structure comes
// from the hand-authored catalog, per-subcategory media counters come from
// the database. The view is local-first — reads never block on the
// database, and local mutations are visible immediately while persistence
// happens in the background.
package reconciler

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"interiorlib/internal/catalog"
	"interiorlib/internal/models"
)

// CategoryStore is the persistence surface the reconciler needs. It is
// satisfied by *store.CategoryStore.
type CategoryStore interface {
	List() ([]models.Category, error)
	Upsert(*models.Category) error
}

const (
	// snapshotKey is the Valkey key holding the merged view as JSON for
	// cheap cross-process reads.
	snapshotKey = "categories:snapshot"

	// snapshotTTL bounds staleness if the process dies without refreshing.
	snapshotTTL = 10 * time.Minute
)

// SyncResult reports the outcome of a force sync.
type SyncResult struct {
	Synced int `json:"synced"`
	Errors int `json:"errors"`
}

// Reconciler holds the merged category view. Construct with New and
// release with Close; there is no package-level instance.
type Reconciler struct {
	store CategoryStore
	cache *redis.Client // optional snapshot cache, may be nil

	mu        sync.RWMutex
	local     []models.Category // catalog base plus locally added categories
	merged    []models.Category // last-known-good merged view
	listeners map[int]func([]models.Category)
	nextSub   int

	wg sync.WaitGroup
}

// New builds a reconciler whose initial view is the static catalog.
// The cache client is optional and may be nil.
func New(store CategoryStore, cache *redis.Client) *Reconciler {
	local := catalog.Default()
	return &Reconciler{
		store:     store,
		cache:     cache,
		local:     local,
		merged:    cloneAll(local),
		listeners: make(map[int]func([]models.Category)),
	}
}

// Close waits for in-flight background persistence and drops all
// subscriptions.
func (r *Reconciler) Close() {
	r.wg.Wait()
	r.mu.Lock()
	r.listeners = make(map[int]func([]models.Category))
	r.mu.Unlock()
}

// Categories returns a deep copy of the current merged view. Never blocks
// on the database; before the first successful Sync this is the static
// catalog.
func (r *Reconciler) Categories() []models.Category {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneAll(r.merged)
}

// Category returns the merged view of a single category, or nil.
func (r *Reconciler) Category(id string) *models.Category {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.merged {
		if r.merged[i].ID == id {
			c := r.merged[i].Clone()
			return &c
		}
	}
	return nil
}

// Subscribe registers a listener invoked synchronously with a snapshot on
// every mutation of the merged view. The returned function unsubscribes.
func (r *Reconciler) Subscribe(fn func([]models.Category)) func() {
	r.mu.Lock()
	id := r.nextSub
	r.nextSub++
	r.listeners[id] = fn
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		delete(r.listeners, id)
		r.mu.Unlock()
	}
}

// Sync merges the remote category rows into the view. Idempotent;
// overlapping calls are allowed and the last to complete wins, which is
// safe because the merge converges on identical inputs. Categories present
// locally but missing remotely are pushed with zero counts. On error the
// previous view stays in place.
func (r *Reconciler) Sync(ctx context.Context) error {
	remote, err := r.store.List()
	if err != nil {
		slog.Warn("category sync failed, keeping current view", "error", err)
		return err
	}

	remoteByID := make(map[string]models.Category, len(remote))
	for _, c := range remote {
		remoteByID[c.ID] = c
	}

	r.mu.Lock()
	merged := merge(r.local, remote)
	r.merged = merged
	snapshot := cloneAll(merged)
	r.mu.Unlock()

	// Push local categories the store has never seen.
	var pushed int
	for i := range snapshot {
		if _, ok := remoteByID[snapshot[i].ID]; ok {
			continue
		}
		c := snapshot[i].Clone()
		if err := r.store.Upsert(&c); err != nil {
			slog.Warn("failed to push category", "category", c.ID, "error", err)
			continue
		}
		pushed++
	}

	r.notify(snapshot)
	r.refreshSnapshot(ctx, snapshot)

	slog.Info("categories synced", "remote", len(remote), "pushed", pushed, "merged", len(snapshot))
	return nil
}

// Add inserts a new category into the view immediately and persists it in
// the background. Persistence failure is logged, never rolled back: the
// view intentionally favors availability over store consistency.
func (r *Reconciler) Add(ctx context.Context, cat models.Category) {
	now := time.Now()
	cat.CreatedAt = now
	cat.UpdatedAt = now

	r.mu.Lock()
	r.local = append(r.local, cat.Clone())
	r.merged = append(r.merged, cat.Clone())
	snapshot := cloneAll(r.merged)
	r.mu.Unlock()

	r.notify(snapshot)
	r.refreshSnapshot(ctx, snapshot)
	r.persist(&cat)
}

// Update applies a partial update to the in-memory view immediately, then
// persists in the background. Unknown ids are ignored.
func (r *Reconciler) Update(ctx context.Context, id string, patch models.CategoryPatch) {
	var updated *models.Category

	r.mu.Lock()
	for i := range r.merged {
		if r.merged[i].ID == id {
			patch.Apply(&r.merged[i])
			c := r.merged[i].Clone()
			updated = &c
			break
		}
	}
	for i := range r.local {
		if r.local[i].ID == id {
			patch.Apply(&r.local[i])
			break
		}
	}
	snapshot := cloneAll(r.merged)
	r.mu.Unlock()

	if updated == nil {
		return
	}

	r.notify(snapshot)
	r.refreshSnapshot(ctx, snapshot)
	r.persist(updated)
}

// BumpCounts applies an optimistic counter increment after a successful
// upload. This is a read-your-writes convenience: the recount job remains
// the authority and will overwrite these numbers.
func (r *Reconciler) BumpCounts(ctx context.Context, categoryID, subCategoryID string, typ models.MediaType, delta int) {
	var updated *models.Category

	r.mu.Lock()
	for i := range r.merged {
		if r.merged[i].ID != categoryID {
			continue
		}
		if sub := r.merged[i].SubCategory(subCategoryID); sub != nil {
			if typ == models.TypeVideo {
				sub.VideoCount += delta
			} else {
				sub.ImageCount += delta
			}
			r.merged[i].UpdatedAt = time.Now()
			c := r.merged[i].Clone()
			updated = &c
		}
		break
	}
	snapshot := cloneAll(r.merged)
	r.mu.Unlock()

	if updated == nil {
		return
	}

	r.notify(snapshot)
	r.refreshSnapshot(ctx, snapshot)
	r.persist(updated)
}

// ForceSync unconditionally overwrites every remote category row with the
// current merged view. Administrative escape hatch.
func (r *Reconciler) ForceSync(ctx context.Context) SyncResult {
	snapshot := r.Categories()

	var res SyncResult
	for i := range snapshot {
		c := snapshot[i].Clone()
		if err := r.store.Upsert(&c); err != nil {
			slog.Error("force sync failed for category", "category", c.ID, "error", err)
			res.Errors++
			continue
		}
		res.Synced++
	}

	r.refreshSnapshot(ctx, snapshot)
	slog.Info("force sync complete", "synced", res.Synced, "errors", res.Errors)
	return res
}

// persist writes a category in the background. Close waits for completion.
func (r *Reconciler) persist(c *models.Category) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		if err := r.store.Upsert(c); err != nil {
			slog.Warn("category persisted locally only, will sync later",
				"category", c.ID, "error", err)
		}
	}()
}

// notify invokes all listeners synchronously with the given snapshot.
func (r *Reconciler) notify(snapshot []models.Category) {
	r.mu.RLock()
	fns := make([]func([]models.Category), 0, len(r.listeners))
	for _, fn := range r.listeners {
		fns = append(fns, fn)
	}
	r.mu.RUnlock()

	for _, fn := range fns {
		fn(cloneAll(snapshot))
	}
}

// refreshSnapshot mirrors the merged view into Valkey. Best effort.
func (r *Reconciler) refreshSnapshot(ctx context.Context, snapshot []models.Category) {
	if r.cache == nil {
		return
	}
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, snapshotKey, payload, snapshotTTL).Err(); err != nil {
		slog.Debug("snapshot cache refresh failed", "error", err)
	}
}

// merge combines the local base with remote rows. Structural fields
// (name, icon, emoji, description, color, subcategory identity and order)
// always come from local; per-subcategory counters come from the remote
// counterpart matched by id, defaulting to the local value (zero in the
// catalog) when no match exists. Remote-only categories are appended
// verbatim. Deterministic given its two inputs.
func merge(local, remote []models.Category) []models.Category {
	merged := cloneAll(local)
	index := make(map[string]int, len(merged))
	for i := range merged {
		index[merged[i].ID] = i
	}

	for _, rc := range remote {
		i, ok := index[rc.ID]
		if !ok {
			merged = append(merged, rc.Clone())
			continue
		}

		remoteSubs := make(map[string]models.SubCategory, len(rc.SubCategories))
		for _, s := range rc.SubCategories {
			remoteSubs[s.ID] = s
		}
		for j := range merged[i].SubCategories {
			if rs, ok := remoteSubs[merged[i].SubCategories[j].ID]; ok {
				merged[i].SubCategories[j].ImageCount = rs.ImageCount
				merged[i].SubCategories[j].VideoCount = rs.VideoCount
			}
		}
		if !rc.CreatedAt.IsZero() {
			merged[i].CreatedAt = rc.CreatedAt
		}
		if !rc.UpdatedAt.IsZero() {
			merged[i].UpdatedAt = rc.UpdatedAt
		}
	}

	return merged
}

func cloneAll(cats []models.Category) []models.Category {
	out := make([]models.Category, len(cats))
	for i := range cats {
		out[i] = cats[i].Clone()
	}
	return out
}
