package pg

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
)

// WithTestDB opens and pings a PG client, runs fn and closes the client on cleanup
func WithTestDB(t *testing.T, dsn string, tracer QueryTracer, poolMut func(*pgxpool.Config), fn func(p *PG)) {
	t.Helper()
	ctx := context.Background()
	client, err := Open(ctx, Config{URL: dsn, MaxConns: 2}, tracer, poolMut)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(client.Close)
	if err := client.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}
	fn(client)
}

// AcquireConn returns one acquired connection and releases it on cleanup.
// TEMP tables and session settings live on a single session
func AcquireConn(t *testing.T, p *PG, ctx context.Context) *pgxpool.Conn {
	t.Helper()
	conn, err := p.Pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	t.Cleanup(conn.Release)
	return conn
}
