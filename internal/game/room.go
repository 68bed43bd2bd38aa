// Package game implements the per-room word-placement engine: pending-tile
// orchestration, dual-direction validation, scoring, timers, and broadcast.
package game

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/scythe504/yeet-backend/internal/board"
	"github.com/scythe504/yeet-backend/internal/dictionary"
	"github.com/scythe504/yeet-backend/internal/store"
	"github.com/scythe504/yeet-backend/internal/tilebag"
)

// Status is the room lifecycle state.
type Status int

const (
	Lobby Status = iota
	Active
	Finished
)

// DurationMap maps a match-length name to its wall-clock duration, mirroring
// the original's DURATION_MAP setting.
var DurationMap = map[string]time.Duration{
	"short":  3 * time.Minute,
	"normal": 5 * time.Minute,
	"long":   10 * time.Minute,
}

// RoomEngine is a single room's entire mutable state plus the mutex that
// serializes every operation on it. All exported operations acquire r.mu
// for their full duration, mutate state, snapshot what a broadcast needs,
// release the lock, and only then call SafeWriteJSON on peers — holding a
// lock across a network write would let one slow client stall the room.
type RoomEngine struct {
	ID       string
	Lang     string
	Mode     string
	MaxPlayers int

	mu          sync.Mutex
	status      Status
	players     map[string]*Player
	playerOrder []string

	board   *board.Board
	pending *board.PendingGroupIndex
	bag     *tilebag.TileBag
	dict    *dictionary.Dictionary

	groupTimers      map[groupTimerKey]context.CancelFunc
	global           *globalTimer
	penaltyCooldowns map[string]time.Time

	results   store.ResultWriter
	startedAt time.Time

	outbox []Envelope

	onDestroy func(roomID string)
}

// Config bundles everything needed to construct a room.
type Config struct {
	ID         string
	Lang       string
	Mode       string
	MaxPlayers int
	Dict       *dictionary.Dictionary
	Results    store.ResultWriter
	OnDestroy  func(roomID string)
	BagSeed    int64
}

// NewRoomEngine constructs an empty, lobby-status room.
func NewRoomEngine(cfg Config) *RoomEngine {
	lang := tilebag.English
	if cfg.Lang == "ko" {
		lang = tilebag.Korean
	}
	return &RoomEngine{
		ID:               cfg.ID,
		Lang:             cfg.Lang,
		Mode:             cfg.Mode,
		MaxPlayers:       cfg.MaxPlayers,
		status:           Lobby,
		players:          make(map[string]*Player),
		board:            board.New(),
		pending:          board.NewPendingGroupIndex(),
		bag:              tilebag.New(lang, cfg.BagSeed),
		dict:             cfg.Dict,
		groupTimers:      make(map[groupTimerKey]context.CancelFunc),
		penaltyCooldowns: make(map[string]time.Time),
		results:          cfg.Results,
		onDestroy:        cfg.OnDestroy,
	}
}

// AddPlayer seats a new player, or reattaches a reconnecting player's
// socket. The seat limit is enforced only in the lobby; a player who joins
// a match already in progress is seated and dealt a full hand. Broadcasts
// the updated room state to everyone after releasing the lock.
func (r *RoomEngine) AddPlayer(p *Player) error {
	r.mu.Lock()

	if existing, ok := r.players[p.ID]; ok {
		existing.Conn = p.Conn
		existing.Connected = true
		log.Printf("[room %s] player %s reconnected", r.ID, p.ID)
		r.queueStateLocked()
		events := r.drainLocked()
		r.mu.Unlock()
		r.flush(events)
		return nil
	}

	if r.status == Lobby && len(r.players) >= r.MaxPlayers {
		r.mu.Unlock()
		return validationError("room is full")
	}

	r.players[p.ID] = p
	r.playerOrder = append(r.playerOrder, p.ID)
	if r.status == Active {
		letters := r.bag.Draw(HandSize)
		p.Fill(letters)
	}
	log.Printf("[room %s] player %s joined (total=%d)", r.ID, p.ID, len(r.players))

	r.queueStateLocked()
	events := r.drainLocked()
	r.mu.Unlock()
	r.flush(events)
	return nil
}

// RemovePlayer marks a player disconnected. In the lobby this frees their
// seat entirely; mid-match their seat (and rack) is held so a reconnect can
// resume, per spec's reconnection-friendly room model.
func (r *RoomEngine) RemovePlayer(playerID string) {
	r.mu.Lock()

	p, ok := r.players[playerID]
	if !ok {
		r.mu.Unlock()
		return
	}

	if r.status == Lobby {
		delete(r.players, playerID)
		r.removeFromOrderLocked(playerID)
	} else {
		p.Connected = false
		p.Conn = nil
	}
	log.Printf("[room %s] player %s left (status=%v)", r.ID, playerID, r.status)

	empty := len(r.players) == 0
	r.queueStateLocked()
	events := r.drainLocked()
	r.mu.Unlock()

	if empty {
		r.destroyInternal()
		return
	}
	r.flush(events)
}

func (r *RoomEngine) removeFromOrderLocked(playerID string) {
	for i, id := range r.playerOrder {
		if id == playerID {
			r.playerOrder = append(r.playerOrder[:i], r.playerOrder[i+1:]...)
			return
		}
	}
}

// Host returns the id of the first player, by join order, still seated and
// connected, so a host who disconnects mid-match hands the role on.
// Recomputed on every call rather than cached, so it never drifts from the
// authoritative player map.
func (r *RoomEngine) Host() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hostLocked()
}

func (r *RoomEngine) hostLocked() string {
	for _, id := range r.playerOrder {
		if p, ok := r.players[id]; ok && p.Connected {
			return id
		}
	}
	return ""
}

// Joinable reports whether the room is still in its lobby with a free seat.
func (r *RoomEngine) Joinable() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status == Lobby && len(r.players) < r.MaxPlayers
}

// UpdateSettings applies host-only lobby settings. Changing language after
// the match has started is rejected outright, matching DESIGN.md's
// resolution of the corresponding open question.
func (r *RoomEngine) UpdateSettings(playerID, mode, lang string, maxPlayers int) error {
	r.mu.Lock()

	if playerID != r.hostLocked() {
		r.mu.Unlock()
		return validationError("only the host may change settings")
	}
	if lang != "" && lang != r.Lang && r.status != Lobby {
		r.mu.Unlock()
		return validationError("cannot change language after the match has started")
	}
	if r.status != Lobby {
		r.mu.Unlock()
		return validationError("settings are locked once the match starts")
	}
	if mode != "" {
		r.Mode = mode
	}
	if lang != "" {
		r.Lang = lang
	}
	if maxPlayers > 0 {
		r.MaxPlayers = maxPlayers
	}

	r.queueStateLocked()
	events := r.drainLocked()
	r.mu.Unlock()
	r.flush(events)
	return nil
}

// DestroyRoom tears the room down immediately: cancels all timers and
// notifies the registry so it stops routing new connections here. This is
// a host administrative action distinct from Destroy, which discards a
// single rack slot.
func (r *RoomEngine) DestroyRoom(playerID string) error {
	r.mu.Lock()
	if playerID != r.hostLocked() {
		r.mu.Unlock()
		return validationError("only the host may destroy the room")
	}
	r.mu.Unlock()
	r.destroyInternal()
	return nil
}

func (r *RoomEngine) destroyInternal() {
	r.mu.Lock()
	r.cancelGlobalTimerLocked()
	for key, cancel := range r.groupTimers {
		cancel()
		delete(r.groupTimers, key)
	}
	r.mu.Unlock()

	if r.onDestroy != nil {
		r.onDestroy(r.ID)
	}
	log.Printf("[room %s] destroyed", r.ID)
}
