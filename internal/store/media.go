// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"interiorlib/internal/models"
)

// MediaStore handles all media metadata database operations. Media rows
// are the ground truth from which category counters are derived.
type MediaStore struct {
	db *sql.DB
}

// NewMediaStore creates a new MediaStore with the given database connection.
func NewMediaStore(db *sql.DB) *MediaStore {
	return &MediaStore{db: db}
}

const mediaColumns = `id, name, url, type, category_id, sub_category_id,
	tags, size_bytes, content_type, storage_key, created_at`

// scanMedia scans a media row from the result set.
func scanMedia(scanner interface{ Scan(...any) error }) (*models.MediaItem, error) {
	var m models.MediaItem
	var tags []byte
	err := scanner.Scan(
		&m.ID, &m.Name, &m.URL, &m.Type, &m.CategoryID, &m.SubCategoryID,
		&tags, &m.SizeBytes, &m.ContentType, &m.StorageKey, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(tags, &m.Tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	return &m, nil
}

// Create inserts a new media record and returns it with the generated ID
// and server-assigned timestamp.
func (s *MediaStore) Create(m *models.MediaItem) (*models.MediaItem, error) {
	tags := m.Tags
	if tags == nil {
		tags = []string{}
	}
	payload, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("encode tags: %w", err)
	}

	row := s.db.QueryRow(`
		INSERT INTO media (name, url, type, category_id, sub_category_id,
			tags, size_bytes, content_type, storage_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+mediaColumns,
		m.Name, m.URL, m.Type, m.CategoryID, m.SubCategoryID,
		payload, m.SizeBytes, m.ContentType, m.StorageKey,
	)
	created, err := scanMedia(row)
	if err != nil {
		return nil, fmt.Errorf("create media: %w", err)
	}
	return created, nil
}

// ExistsByURL reports whether a media record with the given content-address
// URL already exists. Used by recovery to dedup across runs.
func (s *MediaStore) ExistsByURL(url string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`SELECT EXISTS (SELECT 1 FROM media WHERE url = $1)`, url).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("media exists by url: %w", err)
	}
	return exists, nil
}

// FindByID retrieves a single media record by its UUID.
func (s *MediaStore) FindByID(id uuid.UUID) (*models.MediaItem, error) {
	row := s.db.QueryRow(`SELECT `+mediaColumns+` FROM media WHERE id = $1`, id)
	m, err := scanMedia(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find media by id: %w", err)
	}
	return m, nil
}

// List returns media items ordered by creation date, with pagination.
func (s *MediaStore) List(limit, offset int) ([]models.MediaItem, error) {
	rows, err := s.db.Query(`
		SELECT `+mediaColumns+`
		FROM media
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}
	defer rows.Close()
	return collectMedia(rows)
}

// ListBySubCategory returns media for one (category, subcategory, type)
// triple, newest first.
func (s *MediaStore) ListBySubCategory(categoryID, subCategoryID string, typ models.MediaType) ([]models.MediaItem, error) {
	rows, err := s.db.Query(`
		SELECT `+mediaColumns+`
		FROM media
		WHERE category_id = $1 AND sub_category_id = $2 AND type = $3
		ORDER BY created_at DESC
	`, categoryID, subCategoryID, typ)
	if err != nil {
		return nil, fmt.Errorf("list media by subcategory: %w", err)
	}
	defer rows.Close()
	return collectMedia(rows)
}

func collectMedia(rows *sql.Rows) ([]models.MediaItem, error) {
	var items []models.MediaItem
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, fmt.Errorf("scan media: %w", err)
		}
		items = append(items, *m)
	}
	return items, rows.Err()
}

// GroupCount is one aggregation bucket from CountsByGroup.
type GroupCount struct {
	CategoryID    string
	SubCategoryID string
	ImageCount    int
	VideoCount    int
}

// CountsByGroup aggregates media counts per (category, subcategory) pair.
// This is the ground-truth input for the recount job.
func (s *MediaStore) CountsByGroup() ([]GroupCount, error) {
	rows, err := s.db.Query(`
		SELECT category_id, sub_category_id,
		       COUNT(*) FILTER (WHERE type = 'image') AS image_count,
		       COUNT(*) FILTER (WHERE type = 'video') AS video_count
		FROM media
		GROUP BY category_id, sub_category_id
	`)
	if err != nil {
		return nil, fmt.Errorf("counts by group: %w", err)
	}
	defer rows.Close()

	var out []GroupCount
	for rows.Next() {
		var g GroupCount
		if err := rows.Scan(&g.CategoryID, &g.SubCategoryID, &g.ImageCount, &g.VideoCount); err != nil {
			return nil, fmt.Errorf("scan group count: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// Delete removes a media record and returns it so the caller can clean
// up the corresponding stored object.
func (s *MediaStore) Delete(id uuid.UUID) (*models.MediaItem, error) {
	row := s.db.QueryRow(`
		DELETE FROM media WHERE id = $1
		RETURNING `+mediaColumns, id)
	m, err := scanMedia(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("delete media: %w", err)
	}
	return m, nil
}

// Count returns the total number of media items.
func (s *MediaStore) Count() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM media`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count media: %w", err)
	}
	return count, nil
}
