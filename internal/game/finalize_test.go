package game

import (
	"testing"

	"github.com/scythe504/yeet-backend/internal/board"
)

// TestFinalizeFailureKeepsTileWithLiveCrossTimer grounds the requirement
// that a failed group only ever evicts a tile once that tile has no live
// timer left in either direction — a tile still anchoring a pending
// crossing word must stay put.
func TestFinalizeFailureKeepsTileWithLiveCrossTimer(t *testing.T) {
	r := activeEmptyRoom(t)
	p1 := NewPlayer("p1", "Alice", "#fff", nil)
	if err := r.AddPlayer(p1); err != nil {
		t.Fatalf("AddPlayer: %v", err)
	}

	// AddPlayer into an Active room deals a full hand; empty the three slots
	// the pending tiles below were taken from, as PlaceTile would have.
	p1.Rack[0], p1.Rack[1], p1.Rack[2] = 0, 0, 0

	r.mu.Lock()
	pt1 := r.pending.Place(board.Point{X: 0, Y: 0}, 'X', "p1", "#111", 0)
	pt2 := r.pending.Place(board.Point{X: 1, Y: 0}, 'Y', "p1", "#111", 1)
	_ = r.pending.Place(board.Point{X: 0, Y: 1}, 'Z', "p1", "#111", 2)
	r.groupTimers[groupTimerKey{board.Vertical, pt1.VGroup}] = func() {}

	r.finalizeFailureLocked(board.Horizontal, pt1.HGroup, "XY", []*board.PendingTile{pt1, pt2})

	_, pt1StillPending := r.pending.Get(board.Point{X: 0, Y: 0})
	_, pt2StillPending := r.pending.Get(board.Point{X: 1, Y: 0})
	r.mu.Unlock()

	if !pt1StillPending {
		t.Fatalf("pt1 still has a live vertical timer and must survive its horizontal group's failure")
	}
	if pt2StillPending {
		t.Fatalf("pt2 has no cross-direction activity and should have been evicted from pending")
	}
	if p1.Rack[1] != 'Y' {
		t.Fatalf("Rack[1] = %q, want Y restored after eviction", p1.Rack[1])
	}
}

// TestFinalizeSuccessRecolorsCapturedTerritory grounds "territory capture":
// extending an already-finalized word must recolor every cell spanning the
// new word, including the older cells that were not part of this
// placement.
func TestFinalizeSuccessRecolorsCapturedTerritory(t *testing.T) {
	r := activeEmptyRoom(t)
	p1 := NewPlayer("p1", "Alice", "#fff", nil)
	if err := r.AddPlayer(p1); err != nil {
		t.Fatalf("AddPlayer: %v", err)
	}
	p1.Rack[0] = 'S'

	r.mu.Lock()
	for i, letter := range []rune("CAT") {
		r.board.Set(board.Point{X: i, Y: 0}, board.Tile{Letter: letter, Color: "#999", Owner: "earlier-player"})
	}
	r.mu.Unlock()

	if err := r.PlaceTile("p1", board.Point{X: 3, Y: 0}, 'S', 0); err != nil {
		t.Fatalf("extending CAT into CATS: %v", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	newTile, ok := r.board.Get(board.Point{X: 3, Y: 0})
	if !ok {
		t.Fatalf("expected S to be promoted onto the board")
	}
	if newTile.Color == "#999" {
		t.Fatalf("expected the new tile to carry the capturing color, not the stale one")
	}
	for _, p := range []board.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}} {
		tile, ok := r.board.Get(p)
		if !ok {
			t.Fatalf("expected %v to remain on the board", p)
		}
		if tile.Color != newTile.Color {
			t.Fatalf("expected %v recolored to %q, got %q", p, newTile.Color, tile.Color)
		}
	}
}
