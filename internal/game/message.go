package game

import "github.com/scythe504/yeet-backend/internal/board"

// Envelope is the outer shape of every message exchanged over the
// WebSocket connection, tagged by Type so ConnectionHandler can dispatch
// without a full unmarshal up front.
type Envelope struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// Message type tags. These are the fixed wire vocabulary every client
// integration is written against — never invent a new one in place of an
// existing tag.
const (
	TypeInit               = "INIT"
	TypeUpdate              = "UPDATE"
	TypeWordCompleted       = "WORD_COMPLETED"
	TypeTileRemoved         = "TILE_REMOVED"
	TypeModal               = "MODAL"
	TypeChat                = "CHAT"
	TypeGameStartCountdown  = "GAME_START_COUNTDOWN"
	TypeGameStarted         = "GAME_STARTED"
	TypeGameOver            = "GAME_OVER"
	TypeError               = "ERROR"
	TypeTimer               = "TIMER"
)

// TileView is the wire representation of one finalized board tile.
type TileView struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Letter string `json:"letter"`
	Color  string `json:"color"`
}

// PendingTileView is the wire representation of one pending tile.
type PendingTileView struct {
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Letter   string `json:"letter"`
	PlayerID string `json:"player_id"`
	Color    string `json:"color"`
}

// PlayerView is the public-facing shape of a player.
type PlayerView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	Score     int    `json:"score"`
	Connected bool   `json:"connected"`
	IsHost    bool   `json:"is_host"`
}

// StateSnapshot is the full room state carried by an UPDATE, INIT, or
// GAME_OVER message.
type StateSnapshot struct {
	RoomID  string            `json:"room_id"`
	Status  string            `json:"status"`
	Mode    string            `json:"mode"`
	Lang    string            `json:"lang"`
	Players []PlayerView      `json:"players"`
	Board   []TileView        `json:"board"`
	Pending []PendingTileView `json:"pending"`
}

// InitPayload is sent once, privately, to a player right after they're
// seated, so they learn their own id alongside the room's current state.
type InitPayload struct {
	PlayerID string        `json:"player_id"`
	State    StateSnapshot `json:"state"`
}

// UpdatePayload is the broadcast state delta. Timer is only set on the
// placement round-trip that just scheduled a new 3-second group timer.
type UpdatePayload struct {
	State StateSnapshot `json:"state"`
	Timer *int          `json:"timer,omitempty"`
}

// WordCompletedPayload carries the full run of tiles spanning a just
// finalized word, already recolored to the capturing color.
type WordCompletedPayload struct {
	Word  string     `json:"word"`
	Tiles []TileView `json:"tiles"`
}

// TileRemovedPayload lists the pending tiles that were just bounced back
// to their owners' racks, for the client's removal animation.
type TileRemovedPayload struct {
	Tiles []PendingTileView `json:"tiles"`
}

// ModalPayload is a one-shot, non-state notification string.
type ModalPayload struct {
	Message string `json:"message"`
}

// ChatPayload is relayed to every peer unmodified, sender-display fields
// included.
type ChatPayload struct {
	Sender   string `json:"sender"`
	SenderID string `json:"senderId"`
	Message  string `json:"message"`
}

// CountdownPayload announces the pre-match countdown length.
type CountdownPayload struct {
	Seconds int `json:"seconds"`
}

// GameOverPayload reports the match's end. GameID is empty when the
// persistence write failed or there was nothing to persist.
type GameOverPayload struct {
	GameID string        `json:"game_id"`
	State  StateSnapshot `json:"state"`
	Reason string        `json:"reason,omitempty"`
}

// ErrorPayload is sent to a single sender whose request was rejected.
type ErrorPayload struct {
	Message string `json:"message"`
}

// TimerPayload is broadcast once per second while a match is in progress.
type TimerPayload struct {
	Time int `json:"time"`
}

func statusString(s Status) string {
	switch s {
	case Lobby:
		return "lobby"
	case Active:
		return "active"
	default:
		return "finished"
	}
}

// snapshotLocked builds the current StateSnapshot. Callers must hold r.mu.
func (r *RoomEngine) snapshotLocked() StateSnapshot {
	host := r.hostLocked()
	snap := StateSnapshot{
		RoomID: r.ID,
		Status: statusString(r.status),
		Mode:   r.Mode,
		Lang:   r.Lang,
	}
	for _, id := range r.playerOrder {
		p, ok := r.players[id]
		if !ok {
			continue
		}
		snap.Players = append(snap.Players, PlayerView{
			ID: p.ID, Name: p.Name, Color: p.Color, Score: p.Score,
			Connected: p.Connected, IsHost: p.ID == host,
		})
	}
	for pt, tile := range r.board.Snapshot() {
		snap.Board = append(snap.Board, TileView{X: pt.X, Y: pt.Y, Letter: string(tile.Letter), Color: tile.Color})
	}
	for _, pt := range r.pending.All() {
		snap.Pending = append(snap.Pending, pendingTileView(*pt))
	}
	return snap
}

// Snapshot returns the current room state for a one-off read (e.g. the
// INIT message sent to a newly seated player).
func (r *RoomEngine) Snapshot() StateSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

func pendingTileView(p board.PendingTile) PendingTileView {
	return PendingTileView{X: p.X, Y: p.Y, Letter: string(p.Letter), PlayerID: p.PlayerID, Color: p.Color}
}

func pendingTileViews(tiles []*board.PendingTile) []PendingTileView {
	out := make([]PendingTileView, 0, len(tiles))
	for _, t := range tiles {
		out = append(out, pendingTileView(*t))
	}
	return out
}

// queueLocked appends env to the outbound queue for this mutation. Callers
// must hold r.mu and must not perform any I/O themselves — draining and
// sending only happens after the lock is released, via drainLocked+flush.
func (r *RoomEngine) queueLocked(env Envelope) {
	r.outbox = append(r.outbox, env)
}

// drainLocked returns and clears the queued events. Callers must hold
// r.mu when calling this, then unlock before handing the result to flush.
func (r *RoomEngine) drainLocked() []Envelope {
	events := r.outbox
	r.outbox = nil
	return events
}

// queueStateLocked queues a plain UPDATE carrying the current snapshot.
func (r *RoomEngine) queueStateLocked() {
	r.queueLocked(Envelope{Type: TypeUpdate, Data: UpdatePayload{State: r.snapshotLocked()}})
}

// queueStateWithTimerLocked queues an UPDATE carrying the current snapshot
// plus a timer hint, used right after a placement schedules a fresh
// 3-second group timer without finalizing anything immediately.
func (r *RoomEngine) queueStateWithTimerLocked(seconds int) {
	r.queueLocked(Envelope{Type: TypeUpdate, Data: UpdatePayload{State: r.snapshotLocked(), Timer: &seconds}})
}
