package game

import (
	"context"
	"testing"

	"github.com/scythe504/yeet-backend/internal/board"
	"github.com/scythe504/yeet-backend/internal/dictionary"
	"github.com/scythe504/yeet-backend/internal/store"
)

type fakeReader struct{ rows []store.WordRow }

func (f fakeReader) LoadWords(ctx context.Context) ([]store.WordRow, error) { return f.rows, nil }

func testDict(t *testing.T) *dictionary.Dictionary {
	t.Helper()
	rows := []store.WordRow{
		{Word: "ELEPHANT", Language: "en", Length: 8, Score: 20},
		{Word: "CAT", Language: "en", Length: 3, Score: 5},
		{Word: "CATS", Language: "en", Length: 4, Score: 7},
		{Word: "AT", Language: "en", Length: 2, Score: 2},
	}
	d, err := dictionary.Load(context.Background(), fakeReader{rows})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return d
}

func newTestRoom(t *testing.T) *RoomEngine {
	t.Helper()
	return NewRoomEngine(Config{
		ID:         "room1",
		Lang:       "en",
		Mode:       "normal",
		MaxPlayers: 4,
		Dict:       testDict(t),
		BagSeed:    42,
	})
}

func TestHostIsFirstJoinedStillPresent(t *testing.T) {
	r := newTestRoom(t)
	p1 := NewPlayer("p1", "Alice", "#fff", nil)
	p2 := NewPlayer("p2", "Bob", "#000", nil)
	if err := r.AddPlayer(p1); err != nil {
		t.Fatalf("AddPlayer p1: %v", err)
	}
	if err := r.AddPlayer(p2); err != nil {
		t.Fatalf("AddPlayer p2: %v", err)
	}
	if got := r.Host(); got != "p1" {
		t.Fatalf("Host() = %q, want p1", got)
	}
	r.RemovePlayer("p1")
	if got := r.Host(); got != "p2" {
		t.Fatalf("Host() after p1 leaves = %q, want p2", got)
	}
}

func TestUpdateSettingsHostOnly(t *testing.T) {
	r := newTestRoom(t)
	p1 := NewPlayer("p1", "Alice", "#fff", nil)
	_ = r.AddPlayer(p1)
	p2 := NewPlayer("p2", "Bob", "#000", nil)
	_ = r.AddPlayer(p2)

	if err := r.UpdateSettings("p2", "long", "", 0); err == nil {
		t.Fatalf("expected non-host settings change to be rejected")
	}
	if err := r.UpdateSettings("p1", "long", "", 0); err != nil {
		t.Fatalf("host settings change should succeed: %v", err)
	}
	if r.Mode != "long" {
		t.Fatalf("Mode = %q, want long", r.Mode)
	}
}

func TestStartMatchSeedsBoardAndDealsHands(t *testing.T) {
	r := newTestRoom(t)
	p1 := NewPlayer("p1", "Alice", "#fff", nil)
	_ = r.AddPlayer(p1)

	if err := r.StartMatch("p1"); err != nil {
		t.Fatalf("StartMatch: %v", err)
	}
	if !r.board.Occupied(board.Point{0, 0}) {
		t.Fatalf("expected a starting word seeded at the origin")
	}
	handCount := 0
	for _, letter := range p1.Rack {
		if letter != 0 {
			handCount++
		}
	}
	if handCount == 0 {
		t.Fatalf("expected player to be dealt a starting hand")
	}
}

func TestPlaceTileRejectsNonAdjacent(t *testing.T) {
	r := newTestRoom(t)
	p1 := NewPlayer("p1", "Alice", "#fff", nil)
	_ = r.AddPlayer(p1)
	_ = r.StartMatch("p1")

	p1.Rack[0] = 'Z'
	err := r.PlaceTile("p1", board.Point{100, 100}, 'Z', 0)
	if err == nil {
		t.Fatalf("expected placement far from any tile to be rejected")
	}
}

func TestRerollBlockedWhilePending(t *testing.T) {
	r := newTestRoom(t)
	p1 := NewPlayer("p1", "Alice", "#fff", nil)
	_ = r.AddPlayer(p1)
	_ = r.StartMatch("p1")

	// Place a letter under the origin tile: the vertical fragment "EL" is
	// still a live prefix of ELEPHANT, so the tile stays pending.
	r.mu.Lock()
	_, atOrigin := r.board.Get(board.Point{0, 0})
	r.mu.Unlock()
	if !atOrigin {
		t.Skip("starting word not seeded with this fake dictionary, skipping adjacency setup")
	}

	p1.Rack[0] = 'L'
	if err := r.PlaceTile("p1", board.Point{0, 1}, 'L', 0); err != nil {
		t.Fatalf("PlaceTile: %v", err)
	}

	if err := r.Reroll("p1"); err == nil {
		t.Fatalf("expected reroll to be blocked while a tile is pending")
	}
}
