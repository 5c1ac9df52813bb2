// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package reconciler

import (
	"context"
	"errors"
	"sync"
	"testing"

	"interiorlib/internal/catalog"
	"interiorlib/internal/models"
)

type fakeStore struct {
	mu      sync.Mutex
	rows    map[string]models.Category
	listErr error
	upErr   error
	upserts int
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: make(map[string]models.Category)}
}

func (f *fakeStore) List() ([]models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.Category, 0, len(f.rows))
	for _, c := range f.rows {
		out = append(out, c.Clone())
	}
	return out, nil
}

func (f *fakeStore) Upsert(c *models.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserts++
	if f.upErr != nil {
		return f.upErr
	}
	f.rows[c.ID] = c.Clone()
	return nil
}

func (f *fakeStore) get(id string) (models.Category, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.rows[id]
	return c, ok
}

func TestSyncRemoteCountsLocalStructure(t *testing.T) {
	st := newFakeStore()
	st.rows["kitchen"] = models.Category{
		ID:   "kitchen",
		Name: "Renamed Elsewhere",
		SubCategories: []models.SubCategory{
			{ID: "island", Name: "Old Label", ImageCount: 5, VideoCount: 2},
		},
	}

	r := New(st, nil)
	defer r.Close()

	if err := r.Sync(context.Background()); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	kitchen := r.Category("kitchen")
	if kitchen == nil {
		t.Fatal("kitchen missing from merged view")
	}
	if kitchen.Name != "Kitchen" {
		t.Errorf("name = %q, want local %q", kitchen.Name, "Kitchen")
	}
	island := kitchen.SubCategory("island")
	if island == nil {
		t.Fatal("island subcategory missing")
	}
	if island.ImageCount != 5 || island.VideoCount != 2 {
		t.Errorf("counts = %d/%d, want remote 5/2", island.ImageCount, island.VideoCount)
	}
	if island.Name != "Island Kitchen" {
		t.Errorf("subcategory name = %q, want local %q", island.Name, "Island Kitchen")
	}
}

func TestSyncAppendsRemoteOnlyCategory(t *testing.T) {
	st := newFakeStore()
	st.rows["custom-project"] = models.Category{
		ID:   "custom-project",
		Name: "Custom Project",
		SubCategories: []models.SubCategory{
			{ID: "phase-one", Name: "Phase One", ImageCount: 3},
		},
	}

	r := New(st, nil)
	defer r.Close()

	if err := r.Sync(context.Background()); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	got := r.Category("custom-project")
	if got == nil {
		t.Fatal("remote-only category not appended")
	}
	if got.SubCategories[0].ImageCount != 3 {
		t.Errorf("ImageCount = %d, want 3", got.SubCategories[0].ImageCount)
	}
	if len(r.Categories()) != len(catalog.Default())+1 {
		t.Errorf("merged view has %d categories, want %d", len(r.Categories()), len(catalog.Default())+1)
	}
}

func TestSyncPushesMissingCategories(t *testing.T) {
	st := newFakeStore()
	r := New(st, nil)
	defer r.Close()

	if err := r.Sync(context.Background()); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	if len(st.rows) != len(catalog.Default()) {
		t.Errorf("pushed %d categories, want %d", len(st.rows), len(catalog.Default()))
	}
	kitchen, ok := st.get("kitchen")
	if !ok {
		t.Fatal("kitchen not pushed")
	}
	for _, s := range kitchen.SubCategories {
		if s.ImageCount != 0 || s.VideoCount != 0 {
			t.Errorf("pushed %s/%s with nonzero counts", kitchen.ID, s.ID)
		}
	}
}

func TestSyncFailureKeepsView(t *testing.T) {
	st := newFakeStore()
	r := New(st, nil)
	defer r.Close()

	st.mu.Lock()
	st.listErr = errors.New("connection refused")
	st.mu.Unlock()

	before := len(r.Categories())
	if err := r.Sync(context.Background()); err == nil {
		t.Fatal("Sync: want error")
	}
	if len(r.Categories()) != before {
		t.Errorf("view changed after failed sync")
	}
}

func TestAddIsLocalFirst(t *testing.T) {
	st := newFakeStore()
	st.upErr = errors.New("write denied")

	r := New(st, nil)
	r.Add(context.Background(), models.Category{
		ID:   "showroom",
		Name: "Showroom",
		SubCategories: []models.SubCategory{
			{ID: "main-hall", Name: "Main Hall"},
		},
	})

	// Visible before persistence settles and despite the store failing.
	if r.Category("showroom") == nil {
		t.Fatal("added category not visible in merged view")
	}

	r.Close()
	if _, ok := st.get("showroom"); ok {
		t.Error("upsert should have failed, row present")
	}
}

func TestUpdatePatchesViewAndPersists(t *testing.T) {
	st := newFakeStore()
	r := New(st, nil)

	name := "Cook Space"
	r.Update(context.Background(), "kitchen", models.CategoryPatch{Name: &name})

	got := r.Category("kitchen")
	if got.Name != "Cook Space" {
		t.Errorf("name = %q, want %q", got.Name, "Cook Space")
	}

	r.Close()
	row, ok := st.get("kitchen")
	if !ok {
		t.Fatal("updated category not persisted")
	}
	if row.Name != "Cook Space" {
		t.Errorf("persisted name = %q, want %q", row.Name, "Cook Space")
	}
}

func TestBumpCounts(t *testing.T) {
	st := newFakeStore()
	r := New(st, nil)
	defer r.Close()

	r.BumpCounts(context.Background(), "kitchen", "island", models.TypeImage, 1)
	r.BumpCounts(context.Background(), "kitchen", "island", models.TypeVideo, 1)
	r.BumpCounts(context.Background(), "kitchen", "no-such-sub", models.TypeImage, 1)

	island := r.Category("kitchen").SubCategory("island")
	if island.ImageCount != 1 || island.VideoCount != 1 {
		t.Errorf("counts = %d/%d, want 1/1", island.ImageCount, island.VideoCount)
	}
}

func TestSubscribe(t *testing.T) {
	st := newFakeStore()
	r := New(st, nil)
	defer r.Close()

	var calls int
	unsub := r.Subscribe(func(cats []models.Category) {
		calls++
		if len(cats) == 0 {
			t.Error("listener received empty snapshot")
		}
	})

	name := "Sleep Space"
	r.Update(context.Background(), "bedroom", models.CategoryPatch{Name: &name})
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}

	unsub()
	r.Update(context.Background(), "bedroom", models.CategoryPatch{Name: &name})
	if calls != 1 {
		t.Errorf("calls after unsubscribe = %d, want 1", calls)
	}
}

func TestForceSync(t *testing.T) {
	st := newFakeStore()
	r := New(st, nil)
	defer r.Close()

	res := r.ForceSync(context.Background())
	if res.Synced != len(catalog.Default()) {
		t.Errorf("Synced = %d, want %d", res.Synced, len(catalog.Default()))
	}
	if res.Errors != 0 {
		t.Errorf("Errors = %d, want 0", res.Errors)
	}

	st.mu.Lock()
	st.upErr = errors.New("write denied")
	st.mu.Unlock()

	res = r.ForceSync(context.Background())
	if res.Errors != len(catalog.Default()) {
		t.Errorf("Errors = %d, want %d", res.Errors, len(catalog.Default()))
	}
}
