package game

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// HandSize is the number of letter slots a player's rack holds at once.
const HandSize = 10

// Player is one connected participant in a room. Conn may be nil for a
// player who has disconnected but whose seat is still held open for the
// remainder of the match.
type Player struct {
	ID       string
	Name     string
	Color    string
	Score    int
	Rack     [HandSize]rune
	Conn     *websocket.Conn
	Connected bool
	JoinedAt time.Time

	writeMu sync.Mutex
}

// NewPlayer returns a Player with an empty rack.
func NewPlayer(id, name, color string, conn *websocket.Conn) *Player {
	return &Player{
		ID:        id,
		Name:      name,
		Color:     color,
		Conn:      conn,
		Connected: true,
		JoinedAt:  time.Now(),
	}
}

// SafeWriteJSON serializes msg and writes it to the player's socket under a
// per-connection write lock. gorilla/websocket forbids concurrent writers
// on the same *websocket.Conn, so every broadcast path must funnel through
// here rather than calling Conn.WriteJSON directly.
func (p *Player) SafeWriteJSON(v any) error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	if p.Conn == nil {
		return ErrPeerSend
	}
	if err := p.Conn.WriteJSON(v); err != nil {
		log.Printf("[player] write failed player=%s: %v", p.ID, err)
		return ErrPeerSend
	}
	return nil
}

// EmptySlot returns the first empty rack index, preferring preferred if it
// is itself empty. This is the exact slot-recovery order used whenever a
// tile returns to a player's hand (the substring-reject and finalize-failure
// paths both call this the same way).
func (p *Player) EmptySlot(preferred int) int {
	if preferred >= 0 && preferred < HandSize && p.Rack[preferred] == 0 {
		return preferred
	}
	for i, r := range p.Rack {
		if r == 0 {
			return i
		}
	}
	return -1
}

// Fill places letters into the player's empty slots, left to right, up to
// however many fit.
func (p *Player) Fill(letters []rune) (placed int) {
	i := 0
	for slot := 0; slot < HandSize && i < len(letters); slot++ {
		if p.Rack[slot] == 0 {
			p.Rack[slot] = letters[i]
			i++
			placed++
		}
	}
	return placed
}

// RemoveLetter clears the rack slot at index if it currently holds letter.
func (p *Player) RemoveLetter(index int, letter rune) bool {
	if index < 0 || index >= HandSize || p.Rack[index] != letter {
		return false
	}
	p.Rack[index] = 0
	return true
}
