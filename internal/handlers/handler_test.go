// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler
// integration tests. Tests are skipped when PostgreSQL or Valkey are
// unavailable. Object storage is replaced with an in-memory fake so the
// full upload/recover paths run without S3.
package handlers

import (
	"context"
	"database/sql"
	"io"
	"net/http"
	"os"
	"path"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"interiorlib/internal/database"
	"interiorlib/internal/locator"
	"interiorlib/internal/middleware"
	"interiorlib/internal/models"
	"interiorlib/internal/reconciler"
	"interiorlib/internal/recovery"
	"interiorlib/internal/session"
	"interiorlib/internal/storage"
	"interiorlib/internal/store"
	"interiorlib/internal/uploader"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "interiorlib")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "interiorlib")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testValkeyClient returns a Redis client for handler tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		for _, pattern := range []string{"session:*", "locator:*", "categories:*"} {
			keys, _ := client.Keys(ctx, pattern).Result()
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
		}
		client.Close()
	})

	return client
}

// memObjects is an in-memory object store standing in for S3. It
// satisfies the storage interfaces of the uploader, locator, recovery
// job, and media handler.
type memObjects struct {
	mu      sync.Mutex
	objects map[string][]byte // key -> body
	types   map[string]string // key -> content type
}

func newMemObjects() *memObjects {
	return &memObjects{
		objects: make(map[string][]byte),
		types:   make(map[string]string),
	}
}

func (m *memObjects) put(key, contentType string, body []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = body
	m.types[key] = contentType
}

func (m *memObjects) Upload(_ context.Context, key, contentType string, body io.Reader, _ int64) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.put(key, contentType, data)
	return nil
}

func (m *memObjects) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	delete(m.types, key)
	return nil
}

func (m *memObjects) List(_ context.Context, prefix string) ([]storage.Object, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []storage.Object
	for key, body := range m.objects {
		if strings.HasPrefix(key, prefix) {
			out = append(out, storage.Object{Key: key, Size: int64(len(body))})
		}
	}
	return out, nil
}

func (m *memObjects) Head(_ context.Context, key string) (*storage.Metadata, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	body, ok := m.objects[key]
	if !ok {
		return nil, os.ErrNotExist
	}
	return &storage.Metadata{Key: key, Size: int64(len(body)), ContentType: m.types[key]}, nil
}

func (m *memObjects) FileURL(key string) string {
	return "https://media.test/interiorlib-media/" + key
}

func (m *memObjects) ExtractKey(rawURL string) (string, bool) {
	const prefix = "https://media.test/interiorlib-media/"
	if !strings.HasPrefix(rawURL, prefix) {
		return "", false
	}
	return rawURL[len(prefix):], true
}

func (m *memObjects) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[key]
	return ok
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB            *sql.DB
	Valkey        *redis.Client
	Sessions      *session.Store
	CategoryStore *store.CategoryStore
	MediaStore    *store.MediaStore
	UserStore     *store.UserStore
	Objects       *memObjects
	Reconciler    *reconciler.Reconciler
	Auth          *Auth
	Categories    *Categories
	Media         *Media
	Jobs          *Jobs
	Favorites     *Favorites
	Users         *Users
}

// newTestEnv creates a complete test environment with all handler
// dependencies. The reconciler is NOT synced, so the database is left
// alone until a test asks for persistence.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	vk := testValkeyClient(t)

	sessions := session.NewStore(vk, false)
	categoryStore := store.NewCategoryStore(db)
	mediaStore := store.NewMediaStore(db)
	userStore := store.NewUserStore(db)
	objects := newMemObjects()

	rec := reconciler.New(categoryStore, nil)
	t.Cleanup(rec.Close)

	loc := locator.New(objects, nil)
	up := uploader.New(objects, mediaStore, rec)
	job := recovery.NewJob(objects, mediaStore, categoryStore)

	return &testEnv{
		DB:            db,
		Valkey:        vk,
		Sessions:      sessions,
		CategoryStore: categoryStore,
		MediaStore:    mediaStore,
		UserStore:     userStore,
		Objects:       objects,
		Reconciler:    rec,
		Auth:          NewAuth(sessions, userStore),
		Categories:    NewCategories(rec),
		Media:         NewMedia(mediaStore, loc, up, objects),
		Jobs:          NewJobs(job, rec),
		Favorites:     NewFavorites(userStore),
		Users:         NewUsers(userStore),
	}
}

// createTestUser inserts a user with a unique email and registers cleanup.
func (env *testEnv) createTestUser(t *testing.T, role models.Role) *models.User {
	t.Helper()

	email := strings.ToLower(path.Base(t.Name())) + "-" + uuid.NewString()[:8] + "@handlers.test"
	user, err := env.UserStore.Create(email, "secret-password", "Handler Test", role)
	if err != nil {
		t.Fatalf("create test user: %v", err)
	}
	t.Cleanup(func() { env.UserStore.Delete(user.ID) })
	return user
}

// withSession attaches session data for the given user to the request
// context, simulating the state after LoadSession has run.
func withSession(r *http.Request, user *models.User) *http.Request {
	data := &session.Data{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        user.Role,
	}
	ctx := context.WithValue(r.Context(), middleware.SessionKey, data)
	return r.WithContext(ctx)
}

// cleanMediaByURL removes media rows created by a test.
func (env *testEnv) cleanMediaByURL(t *testing.T, urlPrefix string) {
	t.Helper()
	t.Cleanup(func() {
		env.DB.Exec(`DELETE FROM media WHERE url LIKE $1`, urlPrefix+"%")
	})
}

// cleanCategory removes a category row created by a test. Waits for
// pending background persists first so none re-insert after the delete.
func (env *testEnv) cleanCategory(t *testing.T, id string) {
	t.Helper()
	t.Cleanup(func() {
		env.Reconciler.Close()
		env.DB.Exec(`DELETE FROM categories WHERE id = $1`, id)
	})
}
