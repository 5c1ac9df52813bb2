// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"interiorlib/internal/reconciler"
	"interiorlib/internal/recovery"
)

// Jobs exposes the manually triggered maintenance jobs.
type Jobs struct {
	job *recovery.Job
	rec *reconciler.Reconciler
}

// NewJobs creates a new Jobs handler group.
func NewJobs(job *recovery.Job, rec *reconciler.Reconciler) *Jobs {
	return &Jobs{job: job, rec: rec}
}

// Recount recomputes every per-subcategory counter from the media table,
// then refreshes the in-memory view.
func (j *Jobs) Recount(w http.ResponseWriter, r *http.Request) {
	updated, err := j.job.Recount(r.Context())
	if err != nil {
		slog.Error("recount failed", "error", err)
		writeError(w, "recount failed", http.StatusInternalServerError)
		return
	}

	if err := j.rec.Sync(r.Context()); err != nil {
		slog.Warn("view refresh after recount failed", "error", err)
	}

	writeJSON(w, http.StatusOK, map[string]int{"updated": updated})
}

// Recover walks object storage, recreates missing media rows, and
// refreshes counters. Runs synchronously; the response carries the full
// report.
func (j *Jobs) Recover(w http.ResponseWriter, r *http.Request) {
	report, err := j.job.Recover(r.Context())
	if err != nil {
		if errors.Is(err, recovery.ErrNoStorage) {
			writeError(w, "media storage is not configured", http.StatusServiceUnavailable)
			return
		}
		slog.Error("recovery failed", "error", err)
		writeError(w, "recovery failed", http.StatusInternalServerError)
		return
	}

	if err := j.rec.Sync(r.Context()); err != nil {
		slog.Warn("view refresh after recovery failed", "error", err)
	}

	writeJSON(w, http.StatusOK, report)
}
