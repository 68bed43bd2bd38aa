package game

import (
	"context"
	"log"
	"time"

	"github.com/scythe504/yeet-backend/internal/board"
	"github.com/scythe504/yeet-backend/internal/store"
)

// cleanupDelay is how long a finished room stays addressable after its
// match ends, so a client still reading the final standings doesn't have
// its connection yanked mid-read.
const cleanupDelay = 60 * time.Second

// endGameLocked eagerly finalizes every pending group still on the board,
// persists the match result, marks the room Finished, and schedules
// destruction. reason is included on the queued GAME_OVER event; pass ""
// for a host-initiated end, reasonTimeUp for a timer-driven one. Callers
// must hold r.mu. Persistence runs synchronously, while the lock is still
// held, so the real stored game id can be embedded in GAME_OVER rather
// than always reporting empty — acceptable since ending a match is rare
// and terminal, unlike every other locked section in this package.
func (r *RoomEngine) endGameLocked(reason string) {
	if r.status == Finished {
		return
	}
	r.cancelGlobalTimerLocked()

	type pendingGroup struct {
		dir board.Direction
		gid string
	}
	var remaining []pendingGroup
	for key := range r.groupTimers {
		remaining = append(remaining, pendingGroup{key.dir, key.gid})
	}
	for _, p := range remaining {
		r.cancelGroupTimer(p.dir, p.gid)
		r.finalizeGroupLocked(p.dir, p.gid)
	}

	r.status = Finished
	standings := r.calculateFinalResultsLocked()

	var gameID string
	if r.results != nil {
		result := store.GameResult{
			RoomID:    r.ID,
			Language:  r.Lang,
			StartedAt: r.startedAt,
			EndedAt:   time.Now(),
		}
		for _, s := range standings {
			result.Players = append(result.Players, store.PlayerResult{
				PlayerID: s.PlayerID, Name: s.Name, Score: s.Score, Position: s.Position,
			})
		}
		id, err := r.results.SaveGameResult(context.Background(), result)
		if err != nil {
			log.Printf("[room %s] failed to persist game result: %v", r.ID, err)
		} else {
			gameID = id
		}
	}

	log.Printf("[room %s] game ended reason=%q, %d players ranked", r.ID, reason, len(standings))

	time.AfterFunc(cleanupDelay, r.destroyInternal)

	r.queueLocked(Envelope{Type: TypeGameOver, Data: GameOverPayload{GameID: gameID, State: r.snapshotLocked(), Reason: reason}})
}

// EndGame lets the host end the match early, e.g. when everyone agrees to
// stop before the timer runs out.
func (r *RoomEngine) EndGame(playerID string) error {
	r.mu.Lock()
	if playerID != r.hostLocked() {
		r.mu.Unlock()
		return validationError("only the host may end the match early")
	}
	if r.status != Active {
		r.mu.Unlock()
		return gameLogicError("match is not active")
	}
	r.endGameLocked("")
	events := r.drainLocked()
	r.mu.Unlock()
	r.flush(events)
	return nil
}
