package store

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements DictionaryReader and ResultWriter against a
// pgx connection pool. The schema mirrors the original dictionary table
// (word, language, length, score) plus a games/game_players pair for
// match results.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// Connect opens a pgx pool against dsn and verifies it with a ping.
func Connect(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("store: connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	log.Printf("[store] connected to postgres")
	return &PostgresStore{pool: pool}, nil
}

// Close releases the underlying pool.
func (s *PostgresStore) Close() { s.pool.Close() }

// EnsureSchema creates the dictionary/games/game_players tables if absent.
// Mirrors the original database.py init_db shape, scoped to what this
// server actually needs (no user-account table — out of this repo's
// persistence contract).
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS dictionary (
			word TEXT NOT NULL,
			language TEXT NOT NULL,
			length INT NOT NULL,
			score INT NOT NULL,
			PRIMARY KEY (word, language)
		);
		CREATE TABLE IF NOT EXISTS games (
			id TEXT PRIMARY KEY,
			room_id TEXT NOT NULL,
			language TEXT NOT NULL,
			started_at TIMESTAMPTZ NOT NULL,
			ended_at TIMESTAMPTZ NOT NULL
		);
		CREATE TABLE IF NOT EXISTS game_players (
			game_id TEXT NOT NULL REFERENCES games(id),
			player_id TEXT NOT NULL,
			name TEXT NOT NULL,
			score INT NOT NULL,
			position INT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("store: ensure schema: %w", err)
	}
	return nil
}

// LoadWords implements DictionaryReader.
func (s *PostgresStore) LoadWords(ctx context.Context) ([]WordRow, error) {
	rows, err := s.pool.Query(ctx, `SELECT word, language, length, score FROM dictionary`)
	if err != nil {
		return nil, fmt.Errorf("store: load words: %w", err)
	}
	defer rows.Close()

	var out []WordRow
	for rows.Next() {
		var w WordRow
		if err := rows.Scan(&w.Word, &w.Language, &w.Length, &w.Score); err != nil {
			return nil, fmt.Errorf("store: scan word row: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// SaveGameResult implements ResultWriter.
func (s *PostgresStore) SaveGameResult(ctx context.Context, r GameResult) (string, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	gameID := r.RoomID + "-" + r.EndedAt.Format("20060102150405")
	if _, err := tx.Exec(ctx,
		`INSERT INTO games (id, room_id, language, started_at, ended_at) VALUES ($1, $2, $3, $4, $5)`,
		gameID, r.RoomID, r.Language, r.StartedAt, r.EndedAt,
	); err != nil {
		return "", fmt.Errorf("store: insert game: %w", err)
	}

	for _, p := range r.Players {
		if _, err := tx.Exec(ctx,
			`INSERT INTO game_players (game_id, player_id, name, score, position) VALUES ($1, $2, $3, $4, $5)`,
			gameID, p.PlayerID, p.Name, p.Score, p.Position,
		); err != nil {
			return "", fmt.Errorf("store: insert game_player: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("store: commit: %w", err)
	}
	log.Printf("[store] saved game result room=%s game=%s players=%d", r.RoomID, gameID, len(r.Players))
	return gameID, nil
}
