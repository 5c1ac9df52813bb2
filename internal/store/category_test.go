package store

import (
	"testing"

	"github.com/google/uuid"

	"interiorlib/internal/models"
)

func testCategory(id string) *models.Category {
	return &models.Category{
		ID:          id,
		Name:        "Test Kitchen",
		Icon:        "ChefHat",
		Emoji:       "🍳",
		Description: "test category",
		Color:       "#f59e0b",
		SubCategories: []models.SubCategory{
			{ID: "island", Name: "Island Kitchen", ImageCount: 0, VideoCount: 0},
			{ID: "l-shape", Name: "L-Shape Kitchen", ImageCount: 2, VideoCount: 1},
		},
	}
}

func TestCategoryStoreUpsertAndFind(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)

	id := "test-cat-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanCategories(t, db, id) })

	cat := testCategory(id)
	if err := s.Upsert(cat); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	found, err := s.Find(id)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if found == nil {
		t.Fatal("expected category, got nil")
	}
	if found.Name != "Test Kitchen" {
		t.Errorf("name: got %q, want %q", found.Name, "Test Kitchen")
	}
	if len(found.SubCategories) != 2 {
		t.Fatalf("subcategories: got %d, want 2", len(found.SubCategories))
	}
	// Order must be preserved as stored (display-significant).
	if found.SubCategories[0].ID != "island" || found.SubCategories[1].ID != "l-shape" {
		t.Errorf("subcategory order changed: %+v", found.SubCategories)
	}
	if found.SubCategories[1].ImageCount != 2 {
		t.Errorf("counter: got %d, want 2", found.SubCategories[1].ImageCount)
	}

	// Upsert again with changed fields overwrites.
	cat.Name = "Renamed"
	cat.SubCategories[0].ImageCount = 7
	if err := s.Upsert(cat); err != nil {
		t.Fatalf("second Upsert: %v", err)
	}
	found, _ = s.Find(id)
	if found.Name != "Renamed" || found.SubCategories[0].ImageCount != 7 {
		t.Errorf("upsert did not overwrite: %+v", found)
	}

	// Not found.
	missing, err := s.Find("no-such-category")
	if err != nil {
		t.Fatalf("Find missing: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for unknown id")
	}
}

func TestCategoryStoreUpdateSubCategories(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)

	id := "test-cat-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanCategories(t, db, id) })

	if err := s.Upsert(testCategory(id)); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	subs := []models.SubCategory{
		{ID: "island", Name: "Island Kitchen", ImageCount: 5, VideoCount: 3},
		{ID: "l-shape", Name: "L-Shape Kitchen", ImageCount: 2, VideoCount: 1},
	}
	if err := s.UpdateSubCategories(id, subs); err != nil {
		t.Fatalf("UpdateSubCategories: %v", err)
	}

	found, _ := s.Find(id)
	if found.SubCategories[0].ImageCount != 5 || found.SubCategories[0].VideoCount != 3 {
		t.Errorf("counters not updated: %+v", found.SubCategories[0])
	}
	// Structural fields untouched.
	if found.Name != "Test Kitchen" {
		t.Errorf("name changed by counter update: %q", found.Name)
	}
}

func TestCategoryStoreList(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)

	id := "test-cat-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanCategories(t, db, id) })

	if err := s.Upsert(testCategory(id)); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	items, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var seen bool
	for _, c := range items {
		if c.ID == id {
			seen = true
		}
	}
	if !seen {
		t.Errorf("upserted category %s missing from List", id)
	}
}
