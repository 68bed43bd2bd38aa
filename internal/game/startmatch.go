package game

import (
	"log"
	"time"

	"github.com/scythe504/yeet-backend/internal/board"
)

// neutralColor marks the board's starting words, which belong to no player.
const neutralColor = "#94a3b8"

// startingWordMinLength and its fallback mirror the original generator's
// "prefer a long word, settle for a shorter one" sampling order.
const (
	startingWordMinLength         = 10
	startingWordFallbackMinLength = 8
)

// startingWordCount returns how many starting words seed the board, scaling
// gently with the player count so a two-player room isn't buried in
// pre-placed words it didn't ask for.
func startingWordCount(players int) int {
	count := 1 + (players-1)/5
	if count > 4 {
		count = 4
	}
	if count < 1 {
		count = 1
	}
	return count
}

// countdownDelay is how long clients get to show the GAME_START_COUNTDOWN
// before the match actually begins; kept slightly longer than the
// countdown itself so the last tick is visibly on screen before it ends.
const countdownDelay = 3500 * time.Millisecond

// BeginCountdown is the host-initiated START_GAME entry point: it validates
// eligibility, broadcasts the pre-match countdown, and starts the match
// itself once the countdown elapses. Splitting this from StartMatch lets
// the lobby see the countdown run before the board, racks, and timer exist.
func (r *RoomEngine) BeginCountdown(playerID string) error {
	r.mu.Lock()
	if playerID != r.hostLocked() {
		r.mu.Unlock()
		return validationError("only the host may start the match")
	}
	if r.status != Lobby {
		r.mu.Unlock()
		return gameLogicError("match already started")
	}
	if len(r.players) == 0 {
		r.mu.Unlock()
		return gameLogicError("cannot start with no players")
	}

	seconds := int(countdownDelay / time.Second)
	r.queueLocked(Envelope{Type: TypeGameStartCountdown, Data: CountdownPayload{Seconds: seconds}})
	events := r.drainLocked()
	r.mu.Unlock()
	r.flush(events)

	time.AfterFunc(countdownDelay, func() {
		if err := r.StartMatch(playerID); err != nil {
			log.Printf("[room %s] countdown finished but match failed to start: %v", r.ID, err)
		}
	})
	return nil
}

// StartMatch transitions the room from Lobby to Active: seeds the board
// with a zigzag chain of starting words, deals every seated player a full
// hand, and starts the match's global timer. Normally only reached via
// BeginCountdown's delayed call, but kept exported for direct use by
// tests and any caller that wants to skip the countdown.
func (r *RoomEngine) StartMatch(playerID string) error {
	r.mu.Lock()

	if playerID != r.hostLocked() {
		r.mu.Unlock()
		return validationError("only the host may start the match")
	}
	if r.status != Lobby {
		r.mu.Unlock()
		return gameLogicError("match already started")
	}
	if len(r.players) == 0 {
		r.mu.Unlock()
		return gameLogicError("cannot start with no players")
	}

	r.initializeStartingWordsLocked()
	for _, p := range r.players {
		letters := r.bag.Draw(HandSize)
		p.Fill(letters)
	}
	r.status = Active
	r.startedAt = time.Now()

	duration, ok := DurationMap[r.Mode]
	if !ok {
		duration = DurationMap["normal"]
	}
	r.startGlobalTimerLocked(duration)

	log.Printf("[room %s] match started mode=%s lang=%s players=%d", r.ID, r.Mode, r.Lang, len(r.players))
	r.queueLocked(Envelope{Type: TypeGameStarted})
	r.queueStateLocked()
	events := r.drainLocked()
	r.mu.Unlock()
	r.flush(events)
	return nil
}

// initializeStartingWordsLocked lays down startingWordCount words in a
// zigzag chain: word 0 is horizontal at the origin, each following word
// alternates direction and begins at the previous word's last cell so the
// whole chain stays connected. Callers must hold r.mu.
func (r *RoomEngine) initializeStartingWordsLocked() {
	count := startingWordCount(len(r.players))
	cur := board.Point{X: 0, Y: 0}

	for i := 0; i < count; i++ {
		word, ok := r.dict.RandomWord(startingWordMinLength)
		if !ok {
			word, ok = r.dict.RandomWord(startingWordFallbackMinLength)
		}
		if !ok || word == "" {
			continue
		}

		dir := board.Horizontal
		if i%2 == 1 {
			dir = board.Vertical
		}
		dx, dy := dirDelta(dir)

		p := cur
		for _, letter := range word {
			r.board.Set(p, board.Tile{Letter: letter, Color: neutralColor})
			p = board.Point{X: p.X + dx, Y: p.Y + dy}
		}
		// p has advanced one past the last cell; step back to land exactly
		// on the last placed letter, which becomes the next word's start.
		cur = board.Point{X: p.X - dx, Y: p.Y - dy}
	}
}
