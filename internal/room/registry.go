package room

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/UmutSen2662/Mono/internal/game"
)

// Registry is the keyed store of live matches. It is the only state
// shared between rooms; matches themselves never touch each other.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*game.Match
	rng   *rand.Rand
}

func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[string]*game.Match),
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Create builds an empty lobby under the given id. A blank name gets the
// "Room NNNN" default.
func (r *Registry) Create(id, name, password string) *game.Match {
	r.mu.Lock()
	defer r.mu.Unlock()
	if name == "" {
		name = fmt.Sprintf("Room %d", 1000+r.rng.Intn(9000))
	}
	m := game.NewMatch(id, name, password)
	r.rooms[id] = m
	return m
}

func (r *Registry) Get(id string) (*game.Match, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.rooms[id]
	return m, ok
}

func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rooms, id)
}

// List returns all matches sorted by name for stable lobby output.
func (r *Registry) List() []*game.Match {
	r.mu.RLock()
	out := make([]*game.Match, 0, len(r.rooms))
	for _, m := range r.rooms {
		out = append(out, m)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Cleanup drops rooms that no longer hold a human player.
func (r *Registry) Cleanup() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, m := range r.rooms {
		if m.HumanCount() == 0 {
			delete(r.rooms, id)
		}
	}
}
