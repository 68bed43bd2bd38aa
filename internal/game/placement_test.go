package game

import (
	"testing"

	"github.com/scythe504/yeet-backend/internal/board"
)

// activeEmptyRoom returns a room in Active status with a genuinely empty
// board and pending set, bypassing StartMatch's starting-word seeding so
// placement tests can exercise the first-tile and immediate-finalize rules
// in isolation.
func activeEmptyRoom(t *testing.T) *RoomEngine {
	t.Helper()
	r := newTestRoom(t)
	r.mu.Lock()
	r.status = Active
	r.mu.Unlock()
	return r
}

func TestPlaceTileFirstTileSkipsAdjacency(t *testing.T) {
	r := activeEmptyRoom(t)
	p1 := NewPlayer("p1", "Alice", "#fff", nil)
	_ = r.AddPlayer(p1)
	p1.Rack[0] = 'Z'

	if err := r.PlaceTile("p1", board.Point{X: 5, Y: 5}, 'Z', 0); err != nil {
		t.Fatalf("first placement on an empty board should skip the adjacency check: %v", err)
	}
	if _, ok := r.pending.Get(board.Point{X: 5, Y: 5}); !ok {
		t.Fatalf("expected the first tile to land in pending")
	}
}

func TestPlaceTileSecondTileStillRequiresAdjacency(t *testing.T) {
	r := activeEmptyRoom(t)
	p1 := NewPlayer("p1", "Alice", "#fff", nil)
	_ = r.AddPlayer(p1)
	p1.Rack[0] = 'Z'
	p1.Rack[1] = 'Q'

	if err := r.PlaceTile("p1", board.Point{X: 5, Y: 5}, 'Z', 0); err != nil {
		t.Fatalf("first placement: %v", err)
	}
	if err := r.PlaceTile("p1", board.Point{X: 50, Y: 50}, 'Q', 1); err == nil {
		t.Fatalf("expected the second placement to still require adjacency once the board is non-empty")
	}
}

// TestPlaceTileFinalizesValidWordImmediately grounds spec scenario #1:
// building "CAT" one letter at a time, with open ends, finalizes as soon as
// the whole word is dictionary-valid rather than falling through to the
// deferred timer.
func TestPlaceTileFinalizesValidWordImmediately(t *testing.T) {
	r := activeEmptyRoom(t)
	p1 := NewPlayer("p1", "Alice", "#fff", nil)
	_ = r.AddPlayer(p1)
	p1.Rack[0] = 'C'
	p1.Rack[1] = 'A'
	p1.Rack[2] = 'T'

	if err := r.PlaceTile("p1", board.Point{X: 0, Y: 0}, 'C', 0); err != nil {
		t.Fatalf("place C: %v", err)
	}
	if err := r.PlaceTile("p1", board.Point{X: 1, Y: 0}, 'A', 1); err != nil {
		t.Fatalf("place A: %v", err)
	}
	if err := r.PlaceTile("p1", board.Point{X: 2, Y: 0}, 'T', 2); err != nil {
		t.Fatalf("place T: %v", err)
	}

	for _, p := range []board.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}} {
		if !r.board.Occupied(p) {
			t.Fatalf("expected %v to be promoted onto the board once CAT finalized", p)
		}
		if _, stillPending := r.pending.Get(p); stillPending {
			t.Fatalf("expected %v to have left the pending set", p)
		}
	}
	if p1.Score <= 0 {
		t.Fatalf("expected a positive score after finalizing CAT, got %d", p1.Score)
	}
}

func TestApplyPenaltyFloorsAtZero(t *testing.T) {
	r := activeEmptyRoom(t)
	p1 := NewPlayer("p1", "Alice", "#fff", nil)
	p1.Score = 0

	r.mu.Lock()
	r.applyPenaltyLocked(p1)
	r.mu.Unlock()

	if p1.Score != 0 {
		t.Fatalf("Score = %d, want 0 (penalty must floor at zero)", p1.Score)
	}
}
