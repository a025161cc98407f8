//go:build integration_pg
// +build integration_pg

package repo

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"textguard/internal/platform/store"
	"textguard/internal/services/findings/domain"
)

func startPostgres(t *testing.T) (dsn string, stop func()) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)

	req := tc.ContainerRequest{
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
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		cancel()
		t.Fatalf("failed to start postgres container: %v", err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get container host: %v", err)
	}
	mapped, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get mapped port: %v", err)
	}

	dsn = fmt.Sprintf("postgres://postgres:postgres@%s:%s/postgres?sslmode=disable", host, mapped.Port())
	stop = func() {
		_ = c.Terminate(context.Background())
		cancel()
	}
	return dsn, stop
}

const findingsDDL = `
	CREATE TABLE IF NOT EXISTS findings (
		id uuid PRIMARY KEY,
		request_id text NOT NULL,
		service text NOT NULL,
		kind text NOT NULL,
		source text NOT NULL,
		span_start int NOT NULL,
		span_end int NOT NULL,
		score double precision NOT NULL,
		detector_version int NOT NULL,
		created_at timestamptz NOT NULL,
		UNIQUE (request_id, kind, span_start, span_end)
	)`

func TestWriteBatch_And_AggByKind_Integration(t *testing.T) {
	dsn, stop := startPostgres(t)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	st, err := store.Open(ctx, store.Config{
		AppName: "textguard-findings-integration",
		PG:      store.PGConfig{Enabled: true, URL: dsn, MaxConns: 2},
	})
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	defer func() { _ = st.Close(context.Background()) }()

	if _, err := st.PG.Exec(ctx, findingsDDL); err != nil {
		t.Fatalf("create table: %v", err)
	}

	repo := NewPG().Bind(st.PG)
	now := time.Now().UTC().Truncate(time.Second)

	rows := []domain.Finding{
		{
			ID: uuid.New(), RequestID: "req-1", Service: "pii", Kind: "EMAIL_ADDRESS",
			Source: "structured", SpanStart: 12, SpanEnd: 28, Score: 1,
			DetectorVersion: 3, CreatedAt: now,
		},
		{
			ID: uuid.New(), RequestID: "req-1", Service: "pii", Kind: "US_SSN",
			Source: "structured", SpanStart: 40, SpanEnd: 51, Score: 0.85,
			DetectorVersion: 3, CreatedAt: now,
		},
		{
			ID: uuid.New(), RequestID: "req-2", Service: "moderate", Kind: "profanity",
			Source: "structured", SpanStart: 0, SpanEnd: 4, Score: 1,
			DetectorVersion: 3, CreatedAt: now,
		},
	}
	if err := repo.WriteBatch(ctx, rows); err != nil {
		t.Fatalf("write batch: %v", err)
	}

	// same request, kind, and span must be deduplicated
	dupe := rows[0]
	dupe.ID = uuid.New()
	if err := repo.WriteBatch(ctx, []domain.Finding{dupe}); err != nil {
		t.Fatalf("write dupe: %v", err)
	}

	got, err := repo.AggByKind(ctx, domain.Window{
		Since: now.Add(-time.Hour),
		Until: now.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("agg by kind: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d buckets, want 3: %+v", len(got), got)
	}
	for _, row := range got {
		if row.Findings != 1 {
			t.Fatalf("bucket %s/%s has %d findings, want 1 (dupe not ignored?)", row.Service, row.Kind, row.Findings)
		}
	}
}
