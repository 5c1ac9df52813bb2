// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import "strings"

// Lookup resolves object-store path segments back to catalog IDs. Folder
// names in the store drifted over time (display names vs ids, spaces vs
// hyphens, mixed case), so both the display name and the id of every node
// map to its id, and matching is case-insensitive with hyphen/space
// normalization.
type Lookup struct {
	categories    map[string]string
	subCategories map[string]string
}

// NewLookup builds the lookup tables from the built-in catalog.
func NewLookup() *Lookup {
	l := &Lookup{
		categories:    make(map[string]string),
		subCategories: make(map[string]string),
	}
	for _, cat := range defaults {
		l.categories[normalize(cat.Name)] = cat.ID
		l.categories[normalize(cat.ID)] = cat.ID
		for _, s := range cat.SubCategories {
			l.subCategories[normalize(s.Name)] = s.ID
			l.subCategories[normalize(s.ID)] = s.ID
		}
	}
	return l
}

// CategoryID resolves a path segment to a category ID. Returns "" when no
// catalog entry matches.
func (l *Lookup) CategoryID(segment string) string {
	return l.categories[normalize(segment)]
}

// SubCategoryID resolves a path segment to a subcategory ID. Subcategory
// names are treated as globally unique, matching the original recovery
// tooling; for ambiguous short ids the category context does not
// participate.
func (l *Lookup) SubCategoryID(segment string) string {
	return l.subCategories[normalize(segment)]
}

// normalize folds case and treats hyphens, underscores, and URL-encoded
// spaces as plain spaces so "Island Kitchen", "island-kitchen", and
// "Island%20Kitchen" all collide.
func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "%20", " ")
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	return strings.Join(strings.Fields(s), " ")
}
