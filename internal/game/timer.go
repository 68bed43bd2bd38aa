package game

import (
	"context"
	"log"
	"time"

	"github.com/scythe504/yeet-backend/internal/board"
)

// groupFinalizeDelay is how long a pending group waits, untouched, before
// it is automatically finalized.
const groupFinalizeDelay = 3 * time.Second

// penaltyCooldown is the minimum time between two penalties charged to the
// same player, regardless of which group triggered them.
const penaltyCooldown = 5 * time.Second

// reasonTimeUp is the GAME_OVER reason reported when the match ends because
// its global timer ran out, as opposed to a host-initiated early end.
const reasonTimeUp = "TIME_UP"

type groupTimerKey struct {
	dir board.Direction
	gid string
}

// scheduleGroupTimer starts (or restarts) the deferred-finalize countdown
// for one group. The stored cancel func also marks this timer stale (under
// r.mu) as the "current task" identity check: once the timer has been
// cancelled or replaced by a new timer under the same key, the old
// goroutine's wakeup is a silent no-op, even if its deadline had already
// passed.
func (r *RoomEngine) scheduleGroupTimer(dir board.Direction, gid string) {
	key := groupTimerKey{dir, gid}
	ctx, cancel := context.WithTimeout(context.Background(), groupFinalizeDelay)
	if old, ok := r.groupTimers[key]; ok {
		old()
	}
	stale := new(bool)
	r.groupTimers[key] = func() { *stale = true; cancel() }
	go r.waitAndFinalizeGroup(ctx, key, stale)
}

// cancelGroupTimer cancels and forgets the timer for key, if any. Called
// when a group finalizes immediately (cross-check already satisfied) so
// the deferred path never double-finalizes it.
func (r *RoomEngine) cancelGroupTimer(dir board.Direction, gid string) {
	key := groupTimerKey{dir, gid}
	if cancel, ok := r.groupTimers[key]; ok {
		cancel()
		delete(r.groupTimers, key)
	}
}

func (r *RoomEngine) waitAndFinalizeGroup(ctx context.Context, key groupTimerKey, stale *bool) {
	<-ctx.Done()

	r.mu.Lock()

	// stale is set by this timer's own cancel func: if it was cancelled or a
	// newer timer replaced it in the map, this wakeup must not finalize.
	if *stale {
		r.mu.Unlock()
		return
	}
	if _, ok := r.groupTimers[key]; !ok {
		r.mu.Unlock()
		return // already cancelled and removed by an immediate finalize
	}
	delete(r.groupTimers, key)

	if !r.pending.HasActiveGroup(key.dir, key.gid) {
		r.mu.Unlock()
		return
	}
	log.Printf("[room %s] group timer fired dir=%v group=%s", r.ID, key.dir, key.gid)
	r.finalizeGroupLocked(key.dir, key.gid)
	events := r.drainLocked()
	r.mu.Unlock()
	r.flush(events)
}

// globalTimer drives match duration and end-of-game.
type globalTimer struct {
	cancel   context.CancelFunc
	deadline time.Time
}

// startGlobalTimerLocked begins the match countdown. Every second it
// broadcasts the remaining time; when the deadline passes it eagerly
// finalizes any remaining pending groups and ends the game with
// reasonTimeUp. Callers must hold r.mu.
func (r *RoomEngine) startGlobalTimerLocked(duration time.Duration) {
	ctx, cancel := context.WithCancel(context.Background())
	owner := &globalTimer{cancel: cancel, deadline: time.Now().Add(duration)}
	r.global = owner
	go r.runGlobalTimer(ctx, owner)
}

func (r *RoomEngine) runGlobalTimer(ctx context.Context, owner *globalTimer) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if r.tickGlobalTimer(owner) {
				return
			}
		}
	}
}

// tickGlobalTimer runs one second's worth of global-timer bookkeeping and
// reports whether the timer has now expired (and the goroutine driving it
// should stop). Broken out from runGlobalTimer so every lock/queue/drain/
// flush cycle stays inside its own clearly bounded call.
func (r *RoomEngine) tickGlobalTimer(owner *globalTimer) bool {
	r.mu.Lock()
	if r.global != owner {
		r.mu.Unlock()
		return true // superseded or already ended
	}

	remaining := int(time.Until(owner.deadline).Round(time.Second).Seconds())
	if remaining < 0 {
		remaining = 0
	}
	r.queueLocked(Envelope{Type: TypeTimer, Data: TimerPayload{Time: remaining}})

	if remaining <= 0 {
		log.Printf("[room %s] global timer elapsed", r.ID)
		r.endGameLocked(reasonTimeUp)
	}
	events := r.drainLocked()
	r.mu.Unlock()
	r.flush(events)
	return remaining <= 0
}

// StartTimer lets the host override the running match's remaining time,
// e.g. to extend or shorten a round on the fly. It cancels whatever global
// timer is currently running and starts a fresh one for durationSeconds.
func (r *RoomEngine) StartTimer(playerID string, durationSeconds int) error {
	r.mu.Lock()
	if playerID != r.hostLocked() {
		r.mu.Unlock()
		return validationError("only the host may adjust the timer")
	}
	if r.status != Active {
		r.mu.Unlock()
		return gameLogicError("match is not active")
	}
	if durationSeconds <= 0 {
		r.mu.Unlock()
		return validationError("duration must be positive")
	}

	r.cancelGlobalTimerLocked()
	r.startGlobalTimerLocked(time.Duration(durationSeconds) * time.Second)

	r.queueStateLocked()
	events := r.drainLocked()
	r.mu.Unlock()
	r.flush(events)
	return nil
}

// cancelGlobalTimerLocked stops the match countdown early, e.g. when the
// room is destroyed or ended before time runs out.
func (r *RoomEngine) cancelGlobalTimerLocked() {
	if r.global != nil {
		r.global.cancel()
		r.global = nil
	}
}
