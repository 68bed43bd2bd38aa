// Package board holds the infinite-grid board, the set of not-yet-finalized
// pending tiles, and the directional group bookkeeping used to decide when a
// run of pending tiles is ready to be validated as a word.
package board

import "sync"

// Point is a grid coordinate. It is a plain comparable struct so it can be
// used directly as a map key, without string-encoding.
type Point struct {
	X, Y int
}

// Tile is a permanently placed, already-validated letter on the board.
type Tile struct {
	Letter rune
	Color  string
	Owner  string
}

// PendingTile is a letter placed by a player that has not yet been
// validated into a finalized word. HGroup/VGroup are the ids of the
// horizontal/vertical pending groups this tile currently belongs to; a tile
// with no pending neighbor in a direction starts a fresh group of its own
// there, and an id is only cleared to empty when DissolveGroup retires it.
type PendingTile struct {
	Point
	Letter    rune
	PlayerID  string
	Color     string
	HGroup    string
	VGroup    string
	HandIndex int
}

// Board is the set of finalized tiles. Safe for concurrent use by a single
// owning RoomEngine, which serializes all access under its own lock — the
// embedded mutex here exists so board can also be read from a fan-out
// broadcast goroutine without racing the engine.
type Board struct {
	mu    sync.RWMutex
	tiles map[Point]Tile
}

// New returns an empty board.
func New() *Board {
	return &Board{tiles: make(map[Point]Tile)}
}

// Get returns the tile at p, if any.
func (b *Board) Get(p Point) (Tile, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	t, ok := b.tiles[p]
	return t, ok
}

// Set places or overwrites a finalized tile at p.
func (b *Board) Set(p Point, t Tile) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tiles[p] = t
}

// Occupied reports whether p already carries a finalized tile.
func (b *Board) Occupied(p Point) bool {
	_, ok := b.Get(p)
	return ok
}

// Len reports how many finalized tiles the board holds.
func (b *Board) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.tiles)
}

// Snapshot returns a shallow copy of all finalized tiles, safe to hand to a
// broadcast goroutine outside the board's lock.
func (b *Board) Snapshot() map[Point]Tile {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make(map[Point]Tile, len(b.tiles))
	for p, t := range b.tiles {
		out[p] = t
	}
	return out
}

// WordAt reads the contiguous run of letters through p in direction
// (dx, dy), returning the full run and the point where it starts. It walks
// the run in combined, a caller-supplied view of the board that may overlay
// pending tiles on top of it (see RoomEngine.groupViewLocked).
func WordAt(combined map[Point]rune, p Point, dx, dy int) (word []rune, start Point) {
	cur := p
	for {
		prev := Point{cur.X - dx, cur.Y - dy}
		if _, ok := combined[prev]; !ok {
			break
		}
		cur = prev
	}
	start = cur
	for {
		r, ok := combined[cur]
		if !ok {
			break
		}
		word = append(word, r)
		cur = Point{cur.X + dx, cur.Y + dy}
	}
	return word, start
}
