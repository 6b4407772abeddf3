//go:build integration
// +build integration

package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mapadf/pontos/internal/adapters/postgres"
	"github.com/mapadf/pontos/internal/core/domain"
	"github.com/mapadf/pontos/internal/pkg/config"
)

// setupTestDB connects to the test database and removes leftover seed rows.
func setupTestDB(t *testing.T) *postgres.DB {
	cfg, err := config.Load("pontos-test")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	pool, err := pgxpool.New(context.Background(), cfg.Database.DSN())
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("ping db: %v", err)
	}

	// Seed rows from earlier runs share the itest_ prefix.
	if _, err := pool.Exec(ctx, `DELETE FROM points WHERE name LIKE 'itest_%'`); err != nil {
		t.Fatalf("clean points: %v", err)
	}

	return &postgres.DB{Pool: pool}
}

// seedTestPoint inserts a point directly and returns its id.
func seedTestPoint(t *testing.T, repo *postgres.PointRepo, name, description, category string) int64 {
	id, err := repo.Create(context.Background(), name, description, -15.7942, -47.8822, category)
	if err != nil {
		t.Fatalf("seed point %s: %v", name, err)
	}
	return id
}

// TestPointRepo_Search_Integration exercises the ILIKE search over name
// and description against a real database.
func TestPointRepo_Search_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := setupTestDB(t)
	defer db.Pool.Close()
	repo := postgres.NewPointRepo(db)
	ctx := context.Background()

	seedTestPoint(t, repo, "itest_Delegacia Central", "", "delegacia")
	seedTestPoint(t, repo, "itest_Posto Sul", "próximo à rodoviária central", "posto_fronteira")
	seedTestPoint(t, repo, "itest_Posto Norte", "sem descrição relevante", "posto_fronteira")

	// Case-insensitive, matches name OR description.
	pts, err := repo.List(ctx, domain.PointFilter{Search: "central"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(pts) != 2 {
		t.Fatalf("expected 2 matches for 'central', got %d", len(pts))
	}
	for _, p := range pts {
		if p.Name != "itest_Delegacia Central" && p.Name != "itest_Posto Sul" {
			t.Errorf("unexpected match: %s", p.Name)
		}
	}

	// Category filter combines with search (AND).
	pts, err = repo.List(ctx, domain.PointFilter{Category: "posto_fronteira", Search: "CENTRAL"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(pts) != 1 || pts[0].Name != "itest_Posto Sul" {
		t.Errorf("expected only itest_Posto Sul, got %v", pts)
	}
}

// TestPointRepo_ListOrdering_Integration checks newest-first ordering.
func TestPointRepo_ListOrdering_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := setupTestDB(t)
	defer db.Pool.Close()
	repo := postgres.NewPointRepo(db)
	ctx := context.Background()

	first := seedTestPoint(t, repo, "itest_Primeiro", "", "outros")
	second := seedTestPoint(t, repo, "itest_Segundo", "", "outros")

	pts, err := repo.List(ctx, domain.PointFilter{Search: "itest_"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(pts) != 2 {
		t.Fatalf("expected 2 points, got %d", len(pts))
	}
	// Same created_at resolution falls back to id DESC, so the later
	// insert always lists first.
	if pts[0].ID != second || pts[1].ID != first {
		t.Errorf("expected newest first (%d, %d), got (%d, %d)", second, first, pts[0].ID, pts[1].ID)
	}
}

// TestPointRepo_Lifecycle_Integration covers get, update, delete and the
// aggregate counts against a real database.
func TestPointRepo_Lifecycle_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := setupTestDB(t)
	defer db.Pool.Close()
	repo := postgres.NewPointRepo(db)
	ctx := context.Background()

	seedTestPoint(t, repo, "itest_Delegacia A", "", "delegacia")
	seedTestPoint(t, repo, "itest_Delegacia B", "", "delegacia")
	id := seedTestPoint(t, repo, "itest_Posto", "", "posto_fronteira")

	p, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.Name != "itest_Posto" || p.Category != "posto_fronteira" {
		t.Errorf("unexpected point: %+v", p)
	}
	if p.CreatedAt.IsZero() {
		t.Error("store must assign created_at")
	}

	counts, err := repo.CountByCategory(ctx)
	if err != nil {
		t.Fatalf("count by category: %v", err)
	}
	if counts["delegacia"] < 2 || counts["posto_fronteira"] < 1 {
		t.Errorf("unexpected counts: %v", counts)
	}

	ok, err := repo.Update(ctx, id, "itest_Posto Renomeado", "nova descrição", "outros")
	if err != nil || !ok {
		t.Fatalf("update: ok=%v err=%v", ok, err)
	}
	p, err = repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if p.Name != "itest_Posto Renomeado" || p.Category != "outros" {
		t.Errorf("update not applied: %+v", p)
	}

	ok, err = repo.Delete(ctx, id)
	if err != nil || !ok {
		t.Fatalf("delete: ok=%v err=%v", ok, err)
	}
	if _, err = repo.GetByID(ctx, id); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	ok, err = repo.Delete(ctx, id)
	if err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if ok {
		t.Error("second delete must report no row affected")
	}
}
