package game

import "log"

// flush fans queued events out to every connected peer, in order, then
// returns. It must never be called while the caller still holds r.mu —
// it takes its own brief lock only to snapshot the peer list, matching the
// lock-snapshot-unlock-then-write pattern used everywhere a send touches
// the network. A single slow or dead peer must never stall the room, so a
// write failure is logged and dropped, never escalated.
func (r *RoomEngine) flush(events []Envelope) {
	if len(events) == 0 {
		return
	}
	r.mu.Lock()
	peers := make([]*Player, 0, len(r.players))
	for _, p := range r.players {
		if p.Connected {
			peers = append(peers, p)
		}
	}
	r.mu.Unlock()

	for _, env := range events {
		for _, p := range peers {
			sendTo(p, env)
		}
	}
}

// sendTo writes env to a single player, ignoring a send failure beyond
// logging it (per the PeerSendFailure class: never fatal to the room).
// Plain function, not a RoomEngine method — it touches nothing but the
// player's own connection, so it carries no locking obligation.
func sendTo(p *Player, env Envelope) {
	if err := p.SafeWriteJSON(env); err != nil {
		log.Printf("[game] send to %s failed: %v", p.ID, err)
	}
}
