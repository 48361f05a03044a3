package game

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/UmutSen2662/Mono/internal/card"
)

// State is the lifecycle stage of a match.
type State int

const (
	StateLobby State = iota
	StateStarting
	StatePlaying
	StatePendingDrawTwo
	StatePendingDrawFour
)

func (s State) String() string {
	switch s {
	case StateLobby:
		return "lobby"
	case StateStarting:
		return "starting"
	case StatePlaying:
		return "playing"
	case StatePendingDrawTwo:
		return "pending_draw_two"
	case StatePendingDrawFour:
		return "pending_draw_four"
	default:
		return "unknown"
	}
}

// MaxSeats is the seat cap per room, humans and bots combined.
const MaxSeats = 4

const handSize = 7

var botNames = []string{
	"AI Tinker", "AI Poppy", "AI Breezey", "AI Riff", "AI Sparky",
	"AI Doodle", "AI Bop", "AI Whisk", "AI Zippy",
}

// Player is a seat in a match. Hand order is insertion order and is
// semantically visible: bots scan it front to back.
type Player struct {
	ID    string
	Name  string
	Hand  []card.Card
	Ready bool
	Bot   bool
	Score int
}

// Result reports the outcome of a state-mutating turn action.
type Result struct {
	Win        bool
	WinnerID   string
	WinnerName string
	// TurnRetained is true when a draw produced a playable card and the
	// turn stayed with the drawing player.
	TurnRetained bool
}

// Match owns all mutable state of one game room. All exported methods
// take the match lock; a match never shares state with another match.
type Match struct {
	mu sync.Mutex

	id           string
	name         string
	passwordHash []byte

	players []*Player
	deck    []card.Card
	discard []card.Card

	state         State
	current       int
	reversed      bool
	pendingDraw   int
	awaitingColor bool

	// version invalidates bot timers scheduled against an earlier game.
	// Bumped on every start and every reset to lobby.
	version uint64

	rng *rand.Rand
}

// NewMatch creates an empty lobby. password may be empty for an open room.
func NewMatch(id, name, password string) *Match {
	m := &Match{
		id:          id,
		name:        name,
		state:       StateLobby,
		pendingDraw: 1,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err == nil {
			m.passwordHash = hash
		}
	}
	return m
}

func (m *Match) ID() string   { return m.id }
func (m *Match) Name() string { return m.name }

// CheckPassword reports whether the given password opens this room.
func (m *Match) CheckPassword(password string) bool {
	if len(m.passwordHash) == 0 {
		return true
	}
	return bcrypt.CompareHashAndPassword(m.passwordHash, []byte(password)) == nil
}

// HasPassword reports whether the room is password-protected.
func (m *Match) HasPassword() bool { return len(m.passwordHash) > 0 }

// --- Seat management ---

// AddPlayer seats a player. Bots come in ready, humans do not.
func (m *Match) AddPlayer(id, name string, isBot bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.addPlayerLocked(id, name, isBot)
}

func (m *Match) addPlayerLocked(id, name string, isBot bool) error {
	if m.state != StateLobby {
		return ErrNotInLobby
	}
	if len(m.players) >= MaxSeats {
		return ErrRoomFull
	}
	m.players = append(m.players, &Player{
		ID:    id,
		Name:  name,
		Ready: isBot,
		Bot:   isBot,
	})
	return nil
}

// AddBot seats a bot with an unused name from the pool.
func (m *Match) AddBot() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	taken := make(map[string]bool, len(m.players))
	for _, p := range m.players {
		taken[p.Name] = true
	}
	free := make([]string, 0, len(botNames))
	for _, n := range botNames {
		if !taken[n] {
			free = append(free, n)
		}
	}
	name := "Bot " + uuid.NewString()[:4]
	if len(free) > 0 {
		name = free[m.rng.Intn(len(free))]
	}
	return m.addPlayerLocked(newBotID(), name, true)
}

func newBotID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// RemovePlayer drops a seat and force-unreadies the remaining humans so a
// stale majority cannot auto-start the next game. A departure mid-game
// aborts the game back to the lobby.
func (m *Match) RemovePlayer(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.players[:0]
	for _, p := range m.players {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	m.players = kept
	for _, p := range m.players {
		if !p.Bot {
			p.Ready = false
		}
	}

	if m.state != StateLobby {
		m.resetToLobbyLocked()
	}
}

// ReplaceWithBot hands a disconnected human's seat to a bot so the game
// can continue without them.
func (m *Match) ReplaceWithBot(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.players {
		if p.ID == id && !p.Bot {
			p.Bot = true
			p.Ready = true
			p.Name = "AI Replaced"
			return true
		}
	}
	return false
}

// ReclaimSeat re-attaches a returning session to its seat, taking it back
// from the replacement bot if one took over.
func (m *Match) ReclaimSeat(id, name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.players {
		if p.ID == id {
			p.Bot = false
			p.Name = name
			if m.state == StateLobby {
				p.Ready = false
			}
			return true
		}
	}
	return false
}

// SetReady flips a seat's ready flag. No-op outside the lobby.
func (m *Match) SetReady(id string, ready bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateLobby {
		return ErrNotInLobby
	}
	for _, p := range m.players {
		if p.ID == id {
			p.Ready = ready
			return nil
		}
	}
	return ErrUnknownPlayer
}

// Seated reports whether the player holds a seat.
func (m *Match) Seated(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.players {
		if p.ID == id {
			return true
		}
	}
	return false
}

// PlayerCount returns the number of occupied seats.
func (m *Match) PlayerCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.players)
}

// HumanCount returns the number of seats held by humans.
func (m *Match) HumanCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, p := range m.players {
		if !p.Bot {
			n++
		}
	}
	return n
}

// State returns the current lifecycle stage.
func (m *Match) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Version returns the current match generation.
func (m *Match) Version() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.version
}

// --- Lifecycle ---

// TryStartGame starts a game if the lobby holds at least two seats and
// everyone is ready. Returns a rejection reason otherwise.
func (m *Match) TryStartGame() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateLobby {
		return ErrNotInLobby
	}
	if len(m.players) < 2 {
		return ErrNeedPlayers
	}
	for _, p := range m.players {
		if !p.Ready {
			return ErrNotAllReady
		}
	}

	m.version++
	m.state = StateStarting
	m.reversed = false
	m.current = 0
	m.pendingDraw = 1
	m.awaitingColor = false

	m.deck = card.NewDeck()
	card.Shuffle(m.deck, m.rng)

	// Flip the initial discard, re-drawing while the revealed card is a
	// wild. The skipped wilds stay in the pile and recycle later.
	m.discard = m.discard[:0]
	m.discard = append(m.discard, m.pop())
	for m.top().IsWild() {
		m.discard = append(m.discard, m.pop())
	}

	for _, p := range m.players {
		p.Hand = p.Hand[:0]
		for i := 0; i < handSize; i++ {
			p.Hand = append(p.Hand, m.pop())
		}
	}
	return nil
}

// ResetToLobby ends the current game: hands are cleared, humans unready,
// and the version bump invalidates any bot timer still in flight.
func (m *Match) ResetToLobby() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetToLobbyLocked()
}

func (m *Match) resetToLobbyLocked() {
	m.state = StateLobby
	m.version++
	m.current = 0
	m.pendingDraw = 1
	m.awaitingColor = false
	for _, p := range m.players {
		p.Hand = nil
		if !p.Bot {
			p.Ready = false
		}
	}
}

// ResetIfVersion resets to the lobby only if the match generation still
// matches. Used by the delayed end-of-game flow so a reset that already
// happened (human left, room restarted) is not repeated.
func (m *Match) ResetIfVersion(version uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateLobby || m.version != version {
		return false
	}
	m.resetToLobbyLocked()
	return true
}

// --- Turn actions ---

// PlayCard plays c from the current player's hand. On a win the match is
// left as-is; the caller drives the delayed reset to the lobby.
func (m *Match) PlayCard(playerID string, c card.Card) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playCardLocked(playerID, c)
}

func (m *Match) playCardLocked(playerID string, c card.Card) (Result, error) {
	if m.state == StateLobby {
		return Result{}, ErrNotPlaying
	}
	if m.awaitingColor {
		return Result{}, ErrAwaitingColor
	}
	p := m.players[m.current]
	if p.ID != playerID {
		return Result{}, ErrOutOfTurn
	}
	idx := indexOf(p.Hand, c)
	if idx < 0 {
		return Result{}, ErrCardNotInHand
	}
	if !m.playableLocked(c) {
		return Result{}, ErrCardNotPlayable
	}

	p.Hand = append(p.Hand[:idx], p.Hand[idx+1:]...)
	m.discard = append(m.discard, c)
	m.state = StatePlaying

	if len(p.Hand) == 0 {
		p.Score++
		return Result{Win: true, WinnerID: p.ID, WinnerName: p.Name}, nil
	}

	switch {
	case c.Rank == card.WildDraw4:
		// Turn pauses until the color is picked.
		m.awaitingColor = true
		m.state = StatePendingDrawFour
		m.raisePending(4)
	case c.Rank == card.WildColor:
		m.awaitingColor = true
	case c.Rank == card.Draw2:
		m.state = StatePendingDrawTwo
		m.raisePending(2)
		m.advance(1)
	case c.Rank == card.Skip:
		m.advance(2)
	case c.Rank == card.Reverse:
		m.reversed = !m.reversed
		m.advance(1)
	default:
		m.advance(1)
	}
	return Result{}, nil
}

// PickColor resolves the wild sitting on top of the discard pile and
// releases the paused turn.
func (m *Match) PickColor(playerID string, color card.Color) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pickColorLocked(playerID, color)
}

func (m *Match) pickColorLocked(playerID string, color card.Color) error {
	if m.state == StateLobby {
		return ErrNotPlaying
	}
	p := m.players[m.current]
	if p.ID != playerID {
		return ErrOutOfTurn
	}
	if !m.awaitingColor || !m.top().Unresolved() {
		return ErrNoWildOnTop
	}
	m.discard[len(m.discard)-1].Resolved = color
	m.awaitingColor = false
	m.advance(1)
	return nil
}

// DrawCard draws for the current player. With a penalty pending the full
// stack is drawn and the turn passes; otherwise a single card is drawn
// and the turn is kept only if that card is immediately playable.
func (m *Match) DrawCard(playerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.drawCardLocked(playerID)
}

func (m *Match) drawCardLocked(playerID string) error {
	if m.state == StateLobby {
		return ErrNotPlaying
	}
	if m.awaitingColor {
		return ErrAwaitingColor
	}
	p := m.players[m.current]
	if p.ID != playerID {
		return ErrOutOfTurn
	}

	if len(m.deck) < m.pendingDraw+1 {
		m.recycleDiscard()
	}

	if m.pendingDraw != 1 {
		// Penalty accepted, no counter-play.
		m.give(p, m.pendingDraw)
		m.pendingDraw = 1
		m.advance(1)
	} else {
		drawn := m.give(p, 1)
		if len(drawn) == 0 || !m.playableLocked(drawn[0]) {
			m.advance(1)
		}
	}

	m.state = StatePlaying
	return nil
}

// --- Rules ---

// playableLocked is the state-dependent legality check.
func (m *Match) playableLocked(c card.Card) bool {
	switch m.state {
	case StatePendingDrawFour:
		return c.Rank == card.WildDraw4
	case StatePendingDrawTwo:
		return c.Rank == card.Draw2
	default:
		return Playable(m.top(), c)
	}
}

// Playable is the normal-state legality rule: a wild always plays, a
// standard card plays on a color or rank match against the top card with
// its resolved-wild form normalized to color-first.
func Playable(top, c card.Card) bool {
	if c.IsWild() {
		return true
	}
	topColor, topRank := normalizeTop(top)
	return c.Color == topColor || c.Rank == topRank
}

// normalizeTop maps the top discard to the color and rank used for
// matching. A resolved wild matches by its picked color; a resolved
// draw-four also rank-matches standard draw-twos.
func normalizeTop(top card.Card) (card.Color, card.Rank) {
	if !top.IsWild() {
		return top.Color, top.Rank
	}
	rank := card.Rank(-1)
	if top.Rank == card.WildDraw4 {
		rank = card.Draw2
	}
	return top.Resolved, rank
}

// raisePending applies the stacking rule: the first card of a stack puts
// value-1 on top of the baseline single draw, every later card the full
// value.
func (m *Match) raisePending(value int) {
	if m.pendingDraw != 1 {
		m.pendingDraw += value
	} else {
		m.pendingDraw += value - 1
	}
}

func (m *Match) advance(skip int) {
	dir := skip
	if m.reversed {
		dir = -skip
	}
	m.current = floorMod(m.current+dir, len(m.players))
}

// floorMod returns a value in [0, mod) for any x and positive mod.
func floorMod(x, mod int) int {
	return ((x % mod) + mod) % mod
}

// --- Pile plumbing ---

func (m *Match) top() card.Card {
	return m.discard[len(m.discard)-1]
}

func (m *Match) pop() card.Card {
	c := m.deck[len(m.deck)-1]
	m.deck = m.deck[:len(m.deck)-1]
	return c
}

// give moves up to n cards from the deck into p's hand and returns them.
func (m *Match) give(p *Player, n int) []card.Card {
	if len(m.deck) < n {
		m.recycleDiscard()
	}
	if len(m.deck) < n {
		n = len(m.deck)
	}
	drawn := make([]card.Card, 0, n)
	for i := 0; i < n; i++ {
		drawn = append(drawn, m.pop())
	}
	p.Hand = append(p.Hand, drawn...)
	return drawn
}

// recycleDiscard shuffles everything under the top card back into the
// deck. Recycled wilds lose their picked color.
func (m *Match) recycleDiscard() {
	if len(m.discard) < 2 {
		return
	}
	top := m.top()
	for _, c := range m.discard[:len(m.discard)-1] {
		c.Resolved = card.ColorNone
		m.deck = append(m.deck, c)
	}
	m.discard = m.discard[:0]
	m.discard = append(m.discard, top)
	card.Shuffle(m.deck, m.rng)
}

func indexOf(hand []card.Card, c card.Card) int {
	for i, h := range hand {
		if h == c {
			return i
		}
	}
	return -1
}
