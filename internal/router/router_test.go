// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router tests verify the HTTP routing configuration, middleware
// chains, and the health endpoint.
package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"interiorlib/internal/handlers"
)

func TestHealthHandler(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/health", nil)

	healthHandler(w, r)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}

	ct := resp.Header.Get("Content-Type")
	if ct != "application/json" {
		t.Errorf("content-type: got %q, want %q", ct, "application/json")
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field: got %q, want %q", body["status"], "ok")
	}
}

// TestRouteTable builds the router with zero-value handler groups and
// walks the route tree. Handlers are never invoked, so nil dependencies
// are fine here.
func TestRouteTable(t *testing.T) {
	r := New(nil,
		&handlers.Auth{}, &handlers.Categories{}, &handlers.Media{},
		&handlers.Jobs{}, &handlers.Favorites{}, &handlers.Users{})

	routes := make(map[string]bool)
	err := chi.Walk(r, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes[method+" "+route] = true
		return nil
	})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}

	want := []string{
		"GET /health",
		"POST /api/auth/login",
		"POST /api/auth/logout",
		"GET /api/auth/me",
		"GET /api/tags",
		"GET /api/categories/",
		"POST /api/categories/",
		"GET /api/categories/{id}",
		"PUT /api/categories/{id}",
		"POST /api/categories/force-sync",
		"GET /api/categories/{id}/sub/{subID}/media",
		"GET /api/media/",
		"POST /api/media/upload",
		"DELETE /api/media/{id}",
		"POST /api/jobs/recount",
		"POST /api/jobs/recover",
		"GET /api/favorites/",
		"POST /api/favorites/",
		"DELETE /api/favorites/{mediaID}",
		"GET /api/users/",
		"POST /api/users/",
		"PUT /api/users/{id}/role",
		"DELETE /api/users/{id}",
	}
	for _, w := range want {
		if !routes[w] {
			t.Errorf("route %s not registered", w)
		}
	}
}
