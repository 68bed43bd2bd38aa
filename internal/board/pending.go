package board

import (
	"sort"

	"github.com/google/uuid"
)

// Direction distinguishes horizontal and vertical pending groups; a single
// pending tile can belong to one group of each.
type Direction int

const (
	Horizontal Direction = iota
	Vertical
)

func (d Direction) delta() (dx, dy int) {
	if d == Horizontal {
		return 1, 0
	}
	return 0, 1
}

func (d Direction) String() string {
	if d == Horizontal {
		return "h"
	}
	return "v"
}

// PendingGroupIndex tracks, per direction, which pending tiles currently
// form a contiguous run ("group") and bridges/merges runs as new tiles fill
// gaps between them. Unlike Board, it holds no lock itself: callers
// serialize access under the owning RoomEngine's room-wide lock.
type PendingGroupIndex struct {
	tiles  map[Point]*PendingTile
	groups [2]map[string]map[Point]bool // indexed by Direction
}

// NewPendingGroupIndex returns an empty index.
func NewPendingGroupIndex() *PendingGroupIndex {
	return &PendingGroupIndex{
		tiles: make(map[Point]*PendingTile),
		groups: [2]map[string]map[Point]bool{
			Horizontal: make(map[string]map[Point]bool),
			Vertical:   make(map[string]map[Point]bool),
		},
	}
}

// Get returns the pending tile at p, if any.
func (idx *PendingGroupIndex) Get(p Point) (*PendingTile, bool) {
	t, ok := idx.tiles[p]
	return t, ok
}

// Len reports how many pending tiles are currently tracked.
func (idx *PendingGroupIndex) Len() int { return len(idx.tiles) }

// All returns a shallow copy of every pending tile, keyed by point — used
// to build a broadcast snapshot without exposing the live internal map.
func (idx *PendingGroupIndex) All() map[Point]*PendingTile {
	out := make(map[Point]*PendingTile, len(idx.tiles))
	for p, t := range idx.tiles {
		out[p] = t
	}
	return out
}

// Place records a new pending tile at p and bridges it into whichever
// horizontal/vertical groups its immediate neighbors belong to, merging two
// groups into one when p connects them. Returns the stored tile.
func (idx *PendingGroupIndex) Place(p Point, letter rune, playerID, color string, handIndex int) *PendingTile {
	pt := &PendingTile{Point: p, Letter: letter, PlayerID: playerID, Color: color, HandIndex: handIndex}
	idx.tiles[p] = pt
	pt.HGroup = idx.bridge(Horizontal, p)
	pt.VGroup = idx.bridge(Vertical, p)
	return pt
}

// bridge assigns p into the group(s) touching it along direction d,
// creating a fresh group if p has no pending neighbor in that direction and
// merging two groups if p connects them both.
func (idx *PendingGroupIndex) bridge(d Direction, p Point) string {
	dx, dy := d.delta()
	neighborIDs := map[string]bool{}
	for _, n := range []Point{{p.X - dx, p.Y - dy}, {p.X + dx, p.Y + dy}} {
		if nt, ok := idx.tiles[n]; ok {
			gid := nt.HGroup
			if d == Vertical {
				gid = nt.VGroup
			}
			if gid != "" {
				neighborIDs[gid] = true
			}
		}
	}

	switch len(neighborIDs) {
	case 0:
		gid := uuid.NewString()
		idx.groups[d][gid] = map[Point]bool{p: true}
		return gid
	case 1:
		var gid string
		for id := range neighborIDs {
			gid = id
		}
		idx.groups[d][gid][p] = true
		idx.setGroupID(d, p, gid)
		return gid
	default:
		return idx.merge(d, neighborIDs, p)
	}
}

// merge combines every group in ids plus p into the group with the
// lexicographically smallest id, which is a deterministic, replica-free
// total order any two engines computing the same sequence of placements
// will agree on.
func (idx *PendingGroupIndex) merge(d Direction, ids map[string]bool, p Point) string {
	sorted := make([]string, 0, len(ids))
	for id := range ids {
		sorted = append(sorted, id)
	}
	sort.Strings(sorted)
	survivor := sorted[0]
	survivorSet := idx.groups[d][survivor]
	survivorSet[p] = true
	idx.setGroupID(d, p, survivor)

	for _, id := range sorted[1:] {
		for pt := range idx.groups[d][id] {
			survivorSet[pt] = true
			idx.setGroupID(d, pt, survivor)
		}
		delete(idx.groups[d], id)
	}
	return survivor
}

func (idx *PendingGroupIndex) setGroupID(d Direction, p Point, gid string) {
	t := idx.tiles[p]
	if d == Horizontal {
		t.HGroup = gid
	} else {
		t.VGroup = gid
	}
}

// GroupPoints returns the set of points currently in group gid along
// direction d.
func (idx *PendingGroupIndex) GroupPoints(d Direction, gid string) map[Point]bool {
	return idx.groups[d][gid]
}

// DissolveGroup retires group gid along direction d without discarding its
// tiles: every tile loses its gid for direction d (so it can never be
// matched against that dead group again) but keeps its point in the index
// and its membership in the *other* direction's group untouched. Use this
// when a group fails finalize — whether its tiles are actually removed from
// the index depends on whether they still have live activity in the other
// direction, which only the caller (holding the group-timer table) can
// decide; see RoomEngine.finalizeFailureLocked.
func (idx *PendingGroupIndex) DissolveGroup(d Direction, gid string) []*PendingTile {
	points := idx.groups[d][gid]
	out := make([]*PendingTile, 0, len(points))
	for p := range points {
		t, ok := idx.tiles[p]
		if !ok {
			continue
		}
		if d == Horizontal {
			t.HGroup = ""
		} else {
			t.VGroup = ""
		}
		out = append(out, t)
	}
	delete(idx.groups[d], gid)
	return out
}

// RemoveGroup deletes every pending tile in group gid along direction d,
// also detaching each tile's membership in the *other* direction's group
// (a tile removed because its horizontal word failed must stop
// participating in whatever vertical group it was also part of). Two paths
// use it: a successful finalize, which promotes every tile of the group to
// the board, and the substring-reject path in RoomEngine.PlaceTile, which
// bounces the whole run containing the rejected tile back to its owners'
// racks, not only the tile just placed. A failed finalize uses
// DissolveGroup instead, since a tile can still have live cross-direction
// activity worth preserving.
func (idx *PendingGroupIndex) RemoveGroup(d Direction, gid string) []*PendingTile {
	points := idx.groups[d][gid]
	removed := make([]*PendingTile, 0, len(points))
	for p := range points {
		t, ok := idx.tiles[p]
		if !ok {
			continue
		}
		removed = append(removed, t)
		other := Vertical
		otherGID := t.VGroup
		if d == Vertical {
			other = Horizontal
			otherGID = t.HGroup
		}
		if otherGID != "" {
			delete(idx.groups[other][otherGID], p)
			if len(idx.groups[other][otherGID]) == 0 {
				delete(idx.groups[other], otherGID)
			}
		}
		delete(idx.tiles, p)
	}
	delete(idx.groups[d], gid)
	return removed
}

// RemoveTile detaches a single pending tile from both its groups and from
// the index, shrinking or deleting any group that becomes empty.
func (idx *PendingGroupIndex) RemoveTile(p Point) (*PendingTile, bool) {
	t, ok := idx.tiles[p]
	if !ok {
		return nil, false
	}
	for _, pair := range []struct {
		d   Direction
		gid string
	}{{Horizontal, t.HGroup}, {Vertical, t.VGroup}} {
		if pair.gid == "" {
			continue
		}
		delete(idx.groups[pair.d][pair.gid], p)
		if len(idx.groups[pair.d][pair.gid]) == 0 {
			delete(idx.groups[pair.d], pair.gid)
		}
	}
	delete(idx.tiles, p)
	return t, true
}

// HasActiveGroup reports whether gid along direction d still has any
// pending tiles. Used by the finalize path to decide whether a timer firing
// for a now-empty or already-finalized group should no-op.
func (idx *PendingGroupIndex) HasActiveGroup(d Direction, gid string) bool {
	return len(idx.groups[d][gid]) > 0
}
