package store

import (
	"context"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestPostgresStoreRoundTrip spins up a disposable Postgres container,
// hydrates a dictionary row and a finished game result through
// PostgresStore, and reads both back. Skipped automatically when Docker is
// unavailable in the environment running the tests.
func TestPostgresStoreRoundTrip(t *testing.T) {
	ctx := context.Background()

	ctr, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("yeet_test"),
		postgres.WithUsername("yeet"),
		postgres.WithPassword("yeet"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2).WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Skipf("skipping: could not start postgres container: %v", err)
	}
	t.Cleanup(func() { _ = ctr.Terminate(ctx) })

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("connection string: %v", err)
	}

	s, err := Connect(ctx, dsn)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer s.Close()

	if err := s.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}

	if _, err := s.pool.Exec(ctx,
		`INSERT INTO dictionary (word, language, length, score) VALUES ($1, $2, $3, $4)`,
		"CAT", "en", 3, 5,
	); err != nil {
		t.Fatalf("insert dictionary row: %v", err)
	}

	words, err := s.LoadWords(ctx)
	if err != nil {
		t.Fatalf("LoadWords: %v", err)
	}
	if len(words) != 1 || words[0].Word != "CAT" {
		t.Fatalf("LoadWords = %+v, want one CAT row", words)
	}

	result := GameResult{
		RoomID:    "room-1",
		Language:  "en",
		StartedAt: time.Now().Add(-time.Minute),
		EndedAt:   time.Now(),
		Players: []PlayerResult{
			{PlayerID: "p1", Name: "Alice", Score: 42, Position: 1},
		},
	}
	gameID, err := s.SaveGameResult(ctx, result)
	if err != nil {
		t.Fatalf("SaveGameResult: %v", err)
	}
	if gameID == "" {
		t.Fatalf("expected a non-empty game id")
	}
}
