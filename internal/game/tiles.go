package game

import "log"

// Draw deals count additional letters into a player's rack, filling empty
// slots left to right up to however many actually fit. A no-op beyond the
// state broadcast if the rack is already full.
func (r *RoomEngine) Draw(playerID string, count int) error {
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
	if count <= 0 {
		r.mu.Unlock()
		return validationError("count must be positive")
	}

	letters := r.bag.Draw(count)
	placed := player.Fill(letters)
	if placed < len(letters) {
		r.bag.Return(letters[placed:])
	}

	log.Printf("[room %s] player %s drew %d tiles", r.ID, playerID, placed)
	r.queueStateLocked()
	events := r.drainLocked()
	r.mu.Unlock()
	r.flush(events)
	return nil
}

// Destroy discards the single letter held in a player's rack slot and
// redraws a replacement, per the DESTROY_TILE operation — distinct from
// DestroyRoom, which tears down the entire room.
func (r *RoomEngine) Destroy(playerID string, slot int) error {
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
	if slot < 0 || slot >= HandSize || player.Rack[slot] == 0 {
		r.mu.Unlock()
		return validationError("hand slot is empty")
	}

	discarded := player.Rack[slot]
	player.Rack[slot] = 0
	r.bag.Return([]rune{discarded})
	letters := r.bag.Draw(1)
	player.Fill(letters)

	log.Printf("[room %s] player %s discarded slot %d", r.ID, playerID, slot)
	r.queueStateLocked()
	events := r.drainLocked()
	r.mu.Unlock()
	r.flush(events)
	return nil
}
