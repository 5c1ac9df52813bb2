package store

import (
	"testing"

	"github.com/google/uuid"

	"interiorlib/internal/models"
)

func testMedia(url string) *models.MediaItem {
	return &models.MediaItem{
		Name:          "a.jpg",
		URL:           url,
		Type:          models.TypeImage,
		CategoryID:    "kitchen",
		SubCategoryID: "island",
		Tags:          []string{"modern"},
		SizeBytes:     1024,
		ContentType:   "image/jpeg",
		StorageKey:    "interior-library/Kitchen/Island Kitchen/image/a.jpg",
	}
}

func TestMediaStoreCreateAndFind(t *testing.T) {
	db := testDB(t)
	s := NewMediaStore(db)

	url := "https://cdn.test/" + uuid.NewString() + "/a.jpg"
	t.Cleanup(func() { cleanMediaByURL(t, db, url) })

	created, err := s.Create(testMedia(url))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Error("expected non-nil UUID")
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected server-assigned timestamp")
	}
	if len(created.Tags) != 1 || created.Tags[0] != "modern" {
		t.Errorf("tags roundtrip: %v", created.Tags)
	}

	found, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found == nil {
		t.Fatal("expected media, got nil")
	}
	if found.URL != url {
		t.Errorf("url: got %q, want %q", found.URL, url)
	}

	// Not found.
	missing, _ := s.FindByID(uuid.New())
	if missing != nil {
		t.Error("expected nil for random UUID")
	}
}

func TestMediaStoreURLUnique(t *testing.T) {
	db := testDB(t)
	s := NewMediaStore(db)

	url := "https://cdn.test/" + uuid.NewString() + "/dup.jpg"
	t.Cleanup(func() { cleanMediaByURL(t, db, url) })

	if _, err := s.Create(testMedia(url)); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	if _, err := s.Create(testMedia(url)); err == nil {
		t.Error("expected unique violation for duplicate URL")
	}

	exists, err := s.ExistsByURL(url)
	if err != nil {
		t.Fatalf("ExistsByURL: %v", err)
	}
	if !exists {
		t.Error("expected ExistsByURL true")
	}

	exists, _ = s.ExistsByURL("https://cdn.test/never-stored.jpg")
	if exists {
		t.Error("expected ExistsByURL false for unknown URL")
	}
}

func TestMediaStoreListBySubCategory(t *testing.T) {
	db := testDB(t)
	s := NewMediaStore(db)

	urlA := "https://cdn.test/" + uuid.NewString() + "/a.jpg"
	urlB := "https://cdn.test/" + uuid.NewString() + "/b.mp4"
	t.Cleanup(func() { cleanMediaByURL(t, db, urlA, urlB) })

	s.Create(testMedia(urlA))
	video := testMedia(urlB)
	video.Name = "b.mp4"
	video.Type = models.TypeVideo
	video.ContentType = "video/mp4"
	s.Create(video)

	images, err := s.ListBySubCategory("kitchen", "island", models.TypeImage)
	if err != nil {
		t.Fatalf("ListBySubCategory: %v", err)
	}
	for _, m := range images {
		if m.Type != models.TypeImage {
			t.Errorf("image listing contains %s item %s", m.Type, m.URL)
		}
	}

	videos, err := s.ListBySubCategory("kitchen", "island", models.TypeVideo)
	if err != nil {
		t.Fatalf("ListBySubCategory videos: %v", err)
	}
	var seen bool
	for _, m := range videos {
		if m.URL == urlB {
			seen = true
		}
	}
	if !seen {
		t.Error("expected uploaded video in video listing")
	}
}

func TestMediaStoreCountsByGroup(t *testing.T) {
	db := testDB(t)
	s := NewMediaStore(db)

	// Unique subcategory id isolates this test from other rows.
	subID := "count-test-" + uuid.NewString()[:8]
	urls := []string{
		"https://cdn.test/" + uuid.NewString() + "/1.jpg",
		"https://cdn.test/" + uuid.NewString() + "/2.jpg",
		"https://cdn.test/" + uuid.NewString() + "/3.mp4",
	}
	t.Cleanup(func() { cleanMediaByURL(t, db, urls...) })

	for i, u := range urls {
		m := testMedia(u)
		m.SubCategoryID = subID
		if i == 2 {
			m.Type = models.TypeVideo
		}
		if _, err := s.Create(m); err != nil {
			t.Fatalf("Create %d: %v", i, err)
		}
	}

	groups, err := s.CountsByGroup()
	if err != nil {
		t.Fatalf("CountsByGroup: %v", err)
	}

	var found bool
	for _, g := range groups {
		if g.CategoryID == "kitchen" && g.SubCategoryID == subID {
			found = true
			if g.ImageCount != 2 || g.VideoCount != 1 {
				t.Errorf("counts: got %d images / %d videos, want 2/1", g.ImageCount, g.VideoCount)
			}
		}
	}
	if !found {
		t.Error("expected aggregation bucket for test subcategory")
	}
}

func TestMediaStoreDelete(t *testing.T) {
	db := testDB(t)
	s := NewMediaStore(db)

	url := "https://cdn.test/" + uuid.NewString() + "/del.jpg"
	created, err := s.Create(testMedia(url))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	deleted, err := s.Delete(created.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if deleted == nil || deleted.StorageKey == "" {
		t.Error("expected deleted row returned with storage key for cleanup")
	}

	if found, _ := s.FindByID(created.ID); found != nil {
		t.Error("expected media gone after delete")
	}
}
