package game

import (
	"fmt"
	"log"
	"math"
	"sort"
	"time"

	"github.com/scythe504/yeet-backend/internal/board"
)

// finalizeGroupLocked validates the word formed by the pending group (dir,
// gid) and either promotes it to the board with score and replenishment, or
// tears it down with a penalty. Callers must hold r.mu. A group that no
// longer exists (already finalized, or emptied by a sibling-direction
// removal) is silently a no-op — this is what makes the timer-cancellation
// race in timer.go safe. Neither branch performs any I/O: both queue their
// events onto r.outbox for the caller to drain and flush once r.mu is
// released.
func (r *RoomEngine) finalizeGroupLocked(dir board.Direction, gid string) {
	points := r.pending.GroupPoints(dir, gid)
	if len(points) == 0 {
		return
	}

	var anyPoint board.Point
	for p := range points {
		anyPoint = p
		break
	}

	combined := r.groupViewLocked(points)
	dx, dy := dirDelta(dir)
	word, start := board.WordAt(combined, anyPoint, dx, dy)
	wordStr := string(word)

	contributors := make([]*board.PendingTile, 0, len(points))
	for p := range points {
		if t, ok := r.pending.Get(p); ok {
			contributors = append(contributors, t)
		}
	}
	// Map iteration order is random; sort along the word's own run so
	// "the first contributing tile" (the capture-color source in
	// finalizeSuccessLocked) is a deterministic, reproducible choice.
	sort.Slice(contributors, func(i, j int) bool {
		if dir == board.Horizontal {
			return contributors[i].X < contributors[j].X
		}
		return contributors[i].Y < contributors[j].Y
	})

	score, valid := r.dict.Lookup(wordStr)
	if valid && !r.crossChecksOKLocked(contributors) {
		valid = false
	}

	if valid {
		r.finalizeSuccessLocked(dir, gid, wordStr, score, contributors, start, dx, dy, len(word))
	} else {
		r.finalizeFailureLocked(dir, gid, wordStr, contributors)
	}
}

// groupViewLocked overlays only this group's own pending tiles on top of
// the finalized board — deliberately excluding every other still-pending
// group, so a finalize decision never depends on tiles that might still be
// rejected or rerolled elsewhere on the board.
func (r *RoomEngine) groupViewLocked(points map[board.Point]bool) map[board.Point]rune {
	out := make(map[board.Point]rune)
	for p, t := range r.board.Snapshot() {
		out[p] = t.Letter
	}
	for p := range points {
		if t, ok := r.pending.Get(p); ok {
			out[p] = t.Letter
		}
	}
	return out
}

// crossChecksOKLocked validates the perpendicular word at every tile in the
// group against already-finalized board letters plus the group's own
// tiles, so a newly formed cross word is checked too, not just the primary
// direction's word.
func (r *RoomEngine) crossChecksOKLocked(contributors []*board.PendingTile) bool {
	groupPoints := make(map[board.Point]bool, len(contributors))
	for _, t := range contributors {
		groupPoints[t.Point] = true
	}
	view := r.groupViewLocked(groupPoints)

	for _, t := range contributors {
		for _, dir := range []board.Direction{board.Horizontal, board.Vertical} {
			dx, dy := dirDelta(dir)
			word, _ := board.WordAt(view, t.Point, dx, dy)
			if len(word) <= 1 {
				continue
			}
			if _, ok := r.dict.Lookup(string(word)); !ok {
				return false
			}
		}
	}
	return true
}

// finalizeSuccessLocked promotes a completed group's tiles to the board,
// pays out score, redraws one replacement letter per contributor, and
// recolors every cell spanning the word — including cells that already
// belonged to an earlier word — to the capturing color, matching the
// "territory capture" rule: the whole word shares one color, taken from
// the first contributing pending tile.
func (r *RoomEngine) finalizeSuccessLocked(dir board.Direction, gid, word string, score int, contributors []*board.PendingTile, start board.Point, dx, dy, length int) {
	perTile := int(math.Floor(math.Pow(float64(length), 1.5))) / len(contributors)
	newColor := contributors[0].Color

	contributingPlayers := map[string]bool{}
	tileViews := make([]TileView, 0, length)

	cur := start
	for i := 0; i < length; i++ {
		if t, ok := r.pending.Get(cur); ok {
			r.board.Set(cur, board.Tile{Letter: t.Letter, Color: newColor, Owner: t.PlayerID})
		} else if existing, ok := r.board.Get(cur); ok {
			existing.Color = newColor
			r.board.Set(cur, existing)
		}
		if tile, ok := r.board.Get(cur); ok {
			tileViews = append(tileViews, TileView{X: cur.X, Y: cur.Y, Letter: string(tile.Letter), Color: tile.Color})
		}
		cur = board.Point{X: cur.X + dx, Y: cur.Y + dy}
	}

	for _, t := range contributors {
		contributingPlayers[t.PlayerID] = true
		if p, ok := r.players[t.PlayerID]; ok {
			p.Score += perTile
		}
	}

	r.pending.RemoveGroup(dir, gid)

	for _, t := range contributors {
		p, ok := r.players[t.PlayerID]
		if !ok {
			continue
		}
		letters := r.bag.Draw(1)
		p.Fill(letters)
	}

	log.Printf("[room %s] finalized %q (%d points, %d contributors)", r.ID, word, perTile*len(contributors), len(contributingPlayers))

	r.queueLocked(Envelope{Type: TypeWordCompleted, Data: WordCompletedPayload{Word: word, Tiles: tileViews}})
	r.queueStateLocked()
	r.queueLocked(Envelope{Type: TypeModal, Data: ModalPayload{Message: fmt.Sprintf("Word completed: %s", word)}})
}

// finalizeFailureLocked dissolves the failing direction's group without
// discarding any tile that still has live activity in the other direction.
// Only a tile left with no live timer in either direction is actually
// evicted from pending and has its letter returned to its owner's rack.
func (r *RoomEngine) finalizeFailureLocked(dir board.Direction, gid, word string, contributors []*board.PendingTile) {
	skipPenalty := len([]rune(word)) < 2

	contributingPlayers := map[string]bool{}
	for _, t := range contributors {
		contributingPlayers[t.PlayerID] = true
	}

	r.pending.DissolveGroup(dir, gid)

	var removed []*board.PendingTile
	for _, t := range contributors {
		if r.hasLiveTimerLocked(t) {
			continue
		}
		if _, ok := r.pending.RemoveTile(t.Point); ok {
			removed = append(removed, t)
		}
	}
	for _, t := range removed {
		p, ok := r.players[t.PlayerID]
		if !ok {
			continue
		}
		if slot := p.EmptySlot(t.HandIndex); slot >= 0 {
			p.Rack[slot] = t.Letter
		}
	}

	penalized := false
	if !skipPenalty {
		now := time.Now()
		for pid := range contributingPlayers {
			p, ok := r.players[pid]
			if !ok {
				continue
			}
			if last, seen := r.penaltyCooldowns[pid]; seen && now.Sub(last) < penaltyCooldown {
				continue
			}
			p.Score = max(0, p.Score-finalizePenalty)
			r.penaltyCooldowns[pid] = now
			penalized = true
		}
	}

	log.Printf("[room %s] finalize failed for %q (skipPenalty=%v, removed=%d)", r.ID, word, skipPenalty, len(removed))

	if penalized {
		r.queueLocked(Envelope{Type: TypeModal, Data: ModalPayload{Message: fmt.Sprintf("Invalid word: %s. -%d points penalty!", word, finalizePenalty)}})
	}
	if len(removed) > 0 {
		r.queueLocked(Envelope{Type: TypeTileRemoved, Data: TileRemovedPayload{Tiles: pendingTileViews(removed)}})
	}
	r.queueStateLocked()
}

// hasLiveTimerLocked reports whether t still has a running group timer in
// either direction — the gate deciding whether a tile caught up in a failed
// group actually leaves pending state.
func (r *RoomEngine) hasLiveTimerLocked(t *board.PendingTile) bool {
	if t.HGroup != "" {
		if _, ok := r.groupTimers[groupTimerKey{board.Horizontal, t.HGroup}]; ok {
			return true
		}
	}
	if t.VGroup != "" {
		if _, ok := r.groupTimers[groupTimerKey{board.Vertical, t.VGroup}]; ok {
			return true
		}
	}
	return false
}
