// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"interiorlib/internal/models"
)

// CategoryStore manages category documents in the database. Each row keeps
// the full document shape including the JSONB subcategory list with its
// denormalized counters.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `id, name, icon, emoji, description, color, sub_categories, created_at, updated_at`

// scanCategory scans a row into a Category struct, decoding the JSONB
// subcategory list.
func scanCategory(scanner interface{ Scan(...any) error }) (*models.Category, error) {
	var c models.Category
	var subs []byte
	err := scanner.Scan(
		&c.ID, &c.Name, &c.Icon, &c.Emoji, &c.Description, &c.Color,
		&subs, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(subs, &c.SubCategories); err != nil {
		return nil, fmt.Errorf("decode subcategories for %s: %w", c.ID, err)
	}
	return &c, nil
}

// List returns all category documents ordered by name.
func (s *CategoryStore) List() ([]models.Category, error) {
	rows, err := s.db.Query(`SELECT ` + categoryColumns + ` FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// Find retrieves a category by ID. Returns nil if not found.
func (s *CategoryStore) Find(id string) (*models.Category, error) {
	row := s.db.QueryRow(`SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category: %w", err)
	}
	return c, nil
}

// Upsert writes the full category document, inserting or overwriting by ID.
// This is the write path for reconciler pushes and force syncs.
func (s *CategoryStore) Upsert(c *models.Category) error {
	subs, err := json.Marshal(c.SubCategories)
	if err != nil {
		return fmt.Errorf("encode subcategories for %s: %w", c.ID, err)
	}

	_, err = s.db.Exec(`
		INSERT INTO categories (id, name, icon, emoji, description, color, sub_categories)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			icon = EXCLUDED.icon,
			emoji = EXCLUDED.emoji,
			description = EXCLUDED.description,
			color = EXCLUDED.color,
			sub_categories = EXCLUDED.sub_categories,
			updated_at = NOW()
	`, c.ID, c.Name, c.Icon, c.Emoji, c.Description, c.Color, subs)
	if err != nil {
		return fmt.Errorf("upsert category %s: %w", c.ID, err)
	}
	return nil
}

// UpdateSubCategories replaces only the subcategory list of a category.
// Used by the recount job, which rewrites counters without touching the
// structural display fields.
func (s *CategoryStore) UpdateSubCategories(id string, subs []models.SubCategory) error {
	payload, err := json.Marshal(subs)
	if err != nil {
		return fmt.Errorf("encode subcategories for %s: %w", id, err)
	}

	_, err = s.db.Exec(`
		UPDATE categories SET sub_categories = $1, updated_at = NOW() WHERE id = $2
	`, payload, id)
	if err != nil {
		return fmt.Errorf("update subcategories %s: %w", id, err)
	}
	return nil
}

// Delete removes a category document by ID.
func (s *CategoryStore) Delete(id string) error {
	_, err := s.db.Exec(`DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category %s: %w", id, err)
	}
	return nil
}
