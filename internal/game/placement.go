package game

import (
	"fmt"
	"log"

	"github.com/scythe504/yeet-backend/internal/board"
)

// substringPenalty is charged when a placement is rejected outright because
// it can never grow into a valid word in one of its directions — a cheaper
// penalty than a failed finalize, since the mistake is caught immediately.
const substringPenalty = 1

// finalizePenalty is charged when a completed group fails its cross-check
// at finalize time.
const finalizePenalty = 5

// PlaceTile attempts to place letter (from the player's rack slot
// handIndex) at p. It bridges the tile into whichever pending groups its
// neighbors belong to, prunes placements that can no longer grow into any
// valid word, and either finalizes a direction immediately (when its word
// is already dictionary-valid with a trivial-or-valid crossing word) or
// (re)schedules that direction's deferred finalize timer.
func (r *RoomEngine) PlaceTile(playerID string, p board.Point, letter rune, handIndex int) error {
	r.mu.Lock()

	player, ok := r.players[playerID]
	if !ok {
		r.mu.Unlock()
		return validationError("unknown player")
	}
	if r.status != Active {
		r.mu.Unlock()
		return gameLogicError("match is not active")
	}
	if handIndex < 0 || handIndex >= HandSize || player.Rack[handIndex] != letter {
		r.mu.Unlock()
		return validationError("hand slot does not hold that letter")
	}
	if r.board.Occupied(p) {
		r.mu.Unlock()
		return validationError("cell already occupied")
	}
	if _, pending := r.pending.Get(p); pending {
		r.mu.Unlock()
		return validationError("cell already pending")
	}
	if !r.isFirstTileLocked() && !r.hasNeighborLocked(p) {
		r.mu.Unlock()
		return validationError("placement must be adjacent to an existing tile")
	}

	player.RemoveLetter(handIndex, letter)
	pt := r.pending.Place(p, letter, playerID, player.Color, handIndex)

	type dirWord struct {
		gid   string
		word  []rune
		start board.Point
	}
	words := make(map[board.Direction]dirWord, 2)

	for _, dir := range []board.Direction{board.Horizontal, board.Vertical} {
		gid := pt.HGroup
		if dir == board.Vertical {
			gid = pt.VGroup
		}
		if gid == "" {
			continue
		}
		dx, dy := dirDelta(dir)
		word, start := board.WordAt(r.combinedLettersLocked(), p, dx, dy)
		if len(word) > 1 && !r.dict.Trie(r.Lang).HasSubstringAtEdge(string(word)) {
			r.rejectPlacementLocked(player, pt, dir, gid)
			events := r.drainLocked()
			r.mu.Unlock()
			r.flush(events)
			return gameLogicError("placement cannot extend into any known word")
		}
		words[dir] = dirWord{gid: gid, word: word, start: start}
	}

	validDir := func(dir board.Direction) bool {
		dw, ok := words[dir]
		if !ok || len(dw.word) < 2 {
			return true
		}
		_, valid := r.dict.Lookup(string(dw.word))
		return valid
	}

	finalizedAny := false
	scheduledAny := false
	for dir, dw := range words {
		other := board.Vertical
		if dir == board.Vertical {
			other = board.Horizontal
		}
		if len(dw.word) >= 2 && validDir(dir) && validDir(other) {
			r.cancelGroupTimer(dir, dw.gid)
			r.finalizeGroupLocked(dir, dw.gid)
			finalizedAny = true
		} else {
			r.scheduleGroupTimer(dir, dw.gid)
			scheduledAny = true
		}
	}

	log.Printf("[room %s] player %s placed %c at (%d,%d)", r.ID, playerID, letter, p.X, p.Y)
	if !finalizedAny {
		if scheduledAny {
			r.queueStateWithTimerLocked(int(groupFinalizeDelay.Seconds()))
		} else {
			r.queueStateLocked()
		}
	}
	events := r.drainLocked()
	r.mu.Unlock()
	r.flush(events)
	return nil
}

func dirDelta(d board.Direction) (int, int) {
	if d == board.Horizontal {
		return 1, 0
	}
	return 0, 1
}

// isFirstTileLocked reports whether no tile, finalized or pending, exists
// anywhere in the room yet — the sole case in which a placement is allowed
// to skip the adjacency requirement.
func (r *RoomEngine) isFirstTileLocked() bool {
	return r.board.Len() == 0 && r.pending.Len() == 0
}

// rejectPlacementLocked undoes a just-made placement that can never form a
// valid word, returns every displaced tile's letter to its own owner's
// hand, and charges the lighter immediate-rejection penalty to the placing
// player. Callers must hold r.mu.
func (r *RoomEngine) rejectPlacementLocked(player *Player, pt *board.PendingTile, failedDir board.Direction, failedGID string) {
	removed := r.pending.RemoveGroup(failedDir, failedGID)
	if _, stillPending := r.pending.Get(pt.Point); stillPending {
		if t, ok := r.pending.RemoveTile(pt.Point); ok {
			removed = append(removed, t)
		}
	}
	for _, t := range removed {
		owner, ok := r.players[t.PlayerID]
		if !ok {
			continue
		}
		if slot := owner.EmptySlot(t.HandIndex); slot >= 0 {
			owner.Rack[slot] = t.Letter
		}
	}
	r.applyPenaltyLocked(player)
	log.Printf("[room %s] rejected placement by %s at (%d,%d): unextendable", r.ID, player.ID, pt.X, pt.Y)

	r.queueStateLocked()
	if len(removed) > 0 {
		r.queueLocked(Envelope{Type: TypeTileRemoved, Data: TileRemovedPayload{Tiles: pendingTileViews(removed)}})
	}
	r.queueLocked(Envelope{Type: TypeModal, Data: ModalPayload{Message: fmt.Sprintf("Invalid placement! -%d points", substringPenalty)}})
}

func (r *RoomEngine) applyPenaltyLocked(player *Player) {
	player.Score = max(0, player.Score-substringPenalty)
}

// hasNeighborLocked reports whether p touches an existing board or pending
// tile in any of the four cardinal directions.
func (r *RoomEngine) hasNeighborLocked(p board.Point) bool {
	for _, d := range []board.Point{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}} {
		n := board.Point{X: p.X + d.X, Y: p.Y + d.Y}
		if r.board.Occupied(n) {
			return true
		}
		if _, ok := r.pending.Get(n); ok {
			return true
		}
	}
	return false
}

// combinedLettersLocked overlays every pending tile's letter on top of the
// finalized board, for use by WordAt when walking a still-forming word.
func (r *RoomEngine) combinedLettersLocked() map[board.Point]rune {
	out := make(map[board.Point]rune)
	for p, t := range r.board.Snapshot() {
		out[p] = t.Letter
	}
	for p, t := range r.pending.All() {
		out[p] = t.Letter
	}
	return out
}
