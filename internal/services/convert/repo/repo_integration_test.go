//go:build integration_pg
// +build integration_pg

package repo

import (
	"context"
	"fmt"
	"testing"
	"time"

	"itemsexport/internal/platform/store/pg"
	"itemsexport/internal/services/convert/domain"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startPostgres(t *testing.T) string {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	t.Cleanup(cancel)

	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "postgres",
				"POSTGRES_DB":       "postgres",
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForLog("database system is ready to accept connections"),
			).WithDeadline(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("container host: %v", err)
	}
	port, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("mapped port: %v", err)
	}
	return fmt.Sprintf("postgres://postgres:postgres@%s:%s/postgres?sslmode=disable", host, port.Port())
}

func TestLoad_Integration(t *testing.T) {
	dsn := startPostgres(t)

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	db, err := pg.Open(ctx, pg.Config{URL: dsn, MaxConns: 2}, nil, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	store := NewPG(db, "items")
	items := []domain.Item{
		item("0b8f3c52-6a57-4d0c-9a59-8d1a7f0f4c11"),
		item("5a0c1f9e-2b1e-4d8e-9c55-0f4f1b7d2a10"),
	}
	n, err := store.Load(ctx, items)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if n != 2 {
		t.Fatalf("loaded %d, want 2", n)
	}

	var (
		title   string
		author  *string
		season  int64
		redo    bool
		updated time.Time
	)
	err = db.Pool.QueryRow(ctx, `
		SELECT title, author, season, redo, updated_date
		FROM items WHERE id = $1
	`, "0b8f3c52-6a57-4d0c-9a59-8d1a7f0f4c11").Scan(&title, &author, &season, &redo, &updated)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if title != "Show" || author != nil || season != 3 || redo {
		t.Fatalf("row = %q %v %d %v", title, author, season, redo)
	}
	if !updated.Equal(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("updated_date = %v", updated)
	}

	// a second load of the same ids violates the primary key and rolls back whole
	if _, err := store.Load(ctx, items); err == nil {
		t.Fatalf("expected duplicate key error")
	}
	var count int
	if err := db.Pool.QueryRow(ctx, `SELECT count(*) FROM items`).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("rows = %d, want 2", count)
	}
}
