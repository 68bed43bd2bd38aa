package game

import "log"

// Reroll returns a player's entire hand to the bag, reshuffles, and deals
// them a fresh hand of the same size. A player may reroll only when every
// rack slot they own is actually theirs to give back — i.e. they have no
// tiles currently tied up in an unfinalized pending group, since those
// tiles are no longer "in hand" to trade away.
func (r *RoomEngine) Reroll(playerID string) error {
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
	for _, t := range r.pending.All() {
		if t.PlayerID == playerID {
			r.mu.Unlock()
			return gameLogicError("cannot reroll while a placement is still pending")
		}
	}

	var held []rune
	for i, letter := range player.Rack {
		if letter != 0 {
			held = append(held, letter)
			player.Rack[i] = 0
		}
	}
	r.bag.Return(held)
	fresh := r.bag.Draw(len(held))
	player.Fill(fresh)

	log.Printf("[room %s] player %s rerolled %d tiles", r.ID, playerID, len(held))
	r.queueStateLocked()
	events := r.drainLocked()
	r.mu.Unlock()
	r.flush(events)
	return nil
}
