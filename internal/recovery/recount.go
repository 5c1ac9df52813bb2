// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package recovery

import (
	"context"
	"log/slog"

	"interiorlib/internal/models"
	"interiorlib/internal/store"
)

// Recount recomputes every per-subcategory counter from the media table
// and writes back only the categories whose counters actually changed.
// Subcategories with no media rows are reset to zero. Returns the number
// of categories written.
func (j *Job) Recount(ctx context.Context) (int, error) {
	groups, err := j.media.CountsByGroup()
	if err != nil {
		return 0, err
	}

	counts := make(map[string]map[string]store.GroupCount, len(groups))
	for _, g := range groups {
		if counts[g.CategoryID] == nil {
			counts[g.CategoryID] = make(map[string]store.GroupCount)
		}
		counts[g.CategoryID][g.SubCategoryID] = g
	}

	cats, err := j.cats.List()
	if err != nil {
		return 0, err
	}

	var updated int
	for _, cat := range cats {
		if err := ctx.Err(); err != nil {
			return updated, err
		}

		changed := false
		subs := make([]models.SubCategory, len(cat.SubCategories))
		copy(subs, cat.SubCategories)
		for i := range subs {
			g := counts[cat.ID][subs[i].ID]
			if subs[i].ImageCount != g.ImageCount || subs[i].VideoCount != g.VideoCount {
				subs[i].ImageCount = g.ImageCount
				subs[i].VideoCount = g.VideoCount
				changed = true
			}
		}
		if !changed {
			continue
		}

		if err := j.cats.UpdateSubCategories(cat.ID, subs); err != nil {
			slog.Error("recount: counter write failed", "category", cat.ID, "error", err)
			continue
		}
		updated++
	}

	slog.Info("recount complete", "categories", len(cats), "updated", updated)
	return updated, nil
}
