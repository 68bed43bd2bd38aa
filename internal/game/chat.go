package game

// Chat relays message to every peer in the room unmodified, tagged with
// the sender's display name and id. It mutates no room state, so there is
// nothing to queue onto the outbox from a held lock — the lookup and the
// flush are independent of any other in-flight mutation.
func (r *RoomEngine) Chat(playerID, message string) error {
	r.mu.Lock()
	player, ok := r.players[playerID]
	if !ok {
		r.mu.Unlock()
		return validationError("unknown player")
	}
	sender := player.Name
	r.mu.Unlock()

	r.flush([]Envelope{{Type: TypeChat, Data: ChatPayload{Sender: sender, SenderID: playerID, Message: message}}})
	return nil
}
