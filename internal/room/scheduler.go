package room

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/UmutSen2662/Mono/internal/config"
	"github.com/UmutSen2662/Mono/internal/game"
)

// Scheduler drives bot turns on delayed one-shot timers so a game keeps
// moving without any client attached. Every scheduled tick captures the
// match generation and re-validates it when the timer fires; a tick from
// a game that has since ended or restarted is discarded without touching
// anything.
type Scheduler struct {
	registry *Registry
	cfg      config.Bot
	log      *zap.Logger

	mu  sync.Mutex
	pub Publisher
	// pending marks rooms with a tick timer already armed, so repeated
	// Evaluate calls (join, reconnect, human action) cannot stack a
	// second timer onto the same turn.
	pending map[string]bool
}

func NewScheduler(registry *Registry, cfg config.Bot, log *zap.Logger) *Scheduler {
	return &Scheduler{
		registry: registry,
		cfg:      cfg,
		log:      log,
		pub:      NopPublisher{},
		pending:  make(map[string]bool),
	}
}

// SetPublisher attaches the transport once it exists. The hub and the
// scheduler reference each other, so one side has to be wired late.
func (s *Scheduler) SetPublisher(pub Publisher) {
	s.mu.Lock()
	s.pub = pub
	s.mu.Unlock()
}

func (s *Scheduler) publisher() Publisher {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pub
}

// Evaluate inspects a room after an externally observable mutation and,
// if the seat on turn belongs to a bot, schedules its next action. The
// transport layer calls this after every human action; the scheduler
// calls it itself after every bot action.
func (s *Scheduler) Evaluate(roomID string) {
	s.schedule(roomID, false)
}

func (s *Scheduler) schedule(roomID string, fastPass bool) {
	m, ok := s.registry.Get(roomID)
	if !ok {
		return
	}
	version, handSize, ok := m.BotPending()
	if !ok {
		return
	}

	s.mu.Lock()
	if s.pending[roomID] {
		s.mu.Unlock()
		return
	}
	s.pending[roomID] = true
	s.mu.Unlock()

	delay := s.delay(handSize, fastPass)
	time.AfterFunc(delay, func() {
		s.tick(roomID, version)
	})
}

// delay picks the simulated thinking time. The fast pass is used right
// after a bot draws a playable card, so the player does not sit through
// a second full pause.
func (s *Scheduler) delay(handSize int, fastPass bool) time.Duration {
	if fastPass {
		return s.cfg.FastPass
	}
	d := s.cfg.ThinkBase + time.Duration(handSize)*s.cfg.ThinkPerCard
	if s.cfg.ThinkJitter > 0 {
		d += time.Duration(rand.Int63n(int64(s.cfg.ThinkJitter)))
	}
	if d > s.cfg.ThinkMax {
		d = s.cfg.ThinkMax
	}
	return d
}

func (s *Scheduler) tick(roomID string, version uint64) {
	s.mu.Lock()
	delete(s.pending, roomID)
	s.mu.Unlock()

	m, ok := s.registry.Get(roomID)
	if !ok {
		return
	}
	res, err := m.BotTurn(version)
	if err != nil {
		// Stale or superseded tick. Nothing was mutated.
		if !errors.Is(err, game.ErrStaleVersion) && !errors.Is(err, game.ErrNotPlaying) {
			s.log.Warn("bot tick rejected",
				zap.String("room", roomID),
				zap.Error(err),
			)
		}
		return
	}

	if res.Win {
		s.log.Info("bot won the game",
			zap.String("room", roomID),
			zap.String("winner", res.WinnerName),
		)
		s.FinishGame(roomID, version)
		return
	}

	s.publisher().PublishRoom(roomID)
	s.schedule(roomID, res.TurnRetained)
}

// FinishGame publishes the winning position, waits out the win animation
// and then resets the room to its lobby. The reset is version-guarded the
// same way ticks are, so a room that already restarted is left alone.
func (s *Scheduler) FinishGame(roomID string, version uint64) {
	s.publisher().PublishRoom(roomID)
	time.AfterFunc(s.cfg.WinResetDelay, func() {
		m, ok := s.registry.Get(roomID)
		if !ok {
			return
		}
		if !m.ResetIfVersion(version) {
			return
		}
		s.publisher().PublishRoom(roomID)
		s.publisher().PublishLobby()
	})
}
