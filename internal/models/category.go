// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import "time"

// SubCategory is a taxonomy node nested under a Category. The counters
// are denormalized aggregates derived from media rows; they are refreshed
// by the recount job and must not be treated as authoritative between runs.
type SubCategory struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ImageCount int    `json:"imageCount"`
	VideoCount int    `json:"videoCount"`
}

// Category is a top-level taxonomy node for organizing media. The ID is a
// stable human-readable slug, immutable once created. Subcategory order is
// display-significant and preserved as stored.
type Category struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Icon          string        `json:"icon"`
	Emoji         string        `json:"emoji"`
	Description   string        `json:"description"`
	Color         string        `json:"color"`
	SubCategories []SubCategory `json:"subCategories"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// SubCategory returns the subcategory with the given ID, or nil.
func (c *Category) SubCategory(id string) *SubCategory {
	for i := range c.SubCategories {
		if c.SubCategories[i].ID == id {
			return &c.SubCategories[i]
		}
	}
	return nil
}

// Clone returns a deep copy so callers can mutate the result without
// affecting the shared merged view.
func (c *Category) Clone() Category {
	out := *c
	out.SubCategories = make([]SubCategory, len(c.SubCategories))
	copy(out.SubCategories, c.SubCategories)
	return out
}

// CategoryPatch carries partial updates for a category. Nil fields are
// left unchanged. The subcategory list is replaced wholesale when set.
type CategoryPatch struct {
	Name          *string        `json:"name,omitempty"`
	Icon          *string        `json:"icon,omitempty"`
	Emoji         *string        `json:"emoji,omitempty"`
	Description   *string        `json:"description,omitempty"`
	Color         *string        `json:"color,omitempty"`
	SubCategories *[]SubCategory `json:"subCategories,omitempty"`
}

// Apply writes the non-nil patch fields onto the category and bumps
// UpdatedAt.
func (p *CategoryPatch) Apply(c *Category) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Icon != nil {
		c.Icon = *p.Icon
	}
	if p.Emoji != nil {
		c.Emoji = *p.Emoji
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.Color != nil {
		c.Color = *p.Color
	}
	if p.SubCategories != nil {
		c.SubCategories = make([]SubCategory, len(*p.SubCategories))
		copy(c.SubCategories, *p.SubCategories)
	}
	c.UpdatedAt = time.Now()
}
