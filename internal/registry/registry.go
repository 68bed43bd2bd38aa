// Package registry maps room codes to their RoomEngine, creating rooms on
// demand and removing them once destroyed.
package registry

import (
	"log"
	"math/rand"
	"sync"

	"github.com/scythe504/yeet-backend/internal/dictionary"
	"github.com/scythe504/yeet-backend/internal/game"
	"github.com/scythe504/yeet-backend/internal/store"
)

// Registry owns every live room in the process. Unlike the teacher's
// package-level global map, this is an instance cmd/server constructs and
// injects, so tests can spin up isolated registries.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*game.RoomEngine

	dict    *dictionary.Dictionary
	results store.ResultWriter
}

// New returns an empty registry bound to the given dictionary and result
// sink, both shared read-only across every room it creates.
func New(dict *dictionary.Dictionary, results store.ResultWriter) *Registry {
	return &Registry{
		rooms:   make(map[string]*game.RoomEngine),
		dict:    dict,
		results: results,
	}
}

// Get returns the room for code, if one exists.
func (reg *Registry) Get(code string) (*game.RoomEngine, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	r, ok := reg.rooms[code]
	return r, ok
}

// GetOrCreate returns the existing room for code, or creates a fresh lobby
// room with the given language/mode/capacity if none exists yet.
func (reg *Registry) GetOrCreate(code, lang, mode string, maxPlayers int) *game.RoomEngine {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if r, ok := reg.rooms[code]; ok {
		return r
	}

	r := game.NewRoomEngine(game.Config{
		ID:         code,
		Lang:       lang,
		Mode:       mode,
		MaxPlayers: maxPlayers,
		Dict:       reg.dict,
		Results:    reg.results,
		OnDestroy:  reg.remove,
		BagSeed:    rand.Int63(),
	})
	reg.rooms[code] = r
	log.Printf("[registry] created room %s (lang=%s mode=%s)", code, lang, mode)
	return r
}

// JoinableRoom returns the code of any room still in its lobby with a free
// seat, for clients that want to join rather than create.
func (reg *Registry) JoinableRoom() (string, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	for code, r := range reg.rooms {
		if r.Joinable() {
			return code, true
		}
	}
	return "", false
}

// Count reports how many rooms are currently live.
func (reg *Registry) Count() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.rooms)
}

func (reg *Registry) remove(code string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	delete(reg.rooms, code)
	log.Printf("[registry] removed room %s", code)
}
