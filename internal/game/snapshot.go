package game

import "github.com/UmutSen2662/Mono/internal/card"

// PlayerSnapshot is a seat as seen by one viewer. Hand tokens are present
// only for the viewer's own seat; opponents get the count.
type PlayerSnapshot struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Ready    bool     `json:"ready"`
	Bot      bool     `json:"bot"`
	Score    int      `json:"score"`
	HandSize int      `json:"handSize"`
	Hand     []string `json:"hand,omitempty"`
}

// Snapshot is the full serializable room state delivered to clients.
type Snapshot struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	HasPassword   bool             `json:"hasPassword"`
	State         string           `json:"state"`
	Players       []PlayerSnapshot `json:"players"`
	DiscardTop    string           `json:"discardTop,omitempty"`
	DeckSize      int              `json:"deckSize"`
	CurrentPlayer int              `json:"currentPlayer"`
	Reversed      bool             `json:"reversed"`
	PendingDraw   int              `json:"pendingDraw"`
	AwaitingColor bool             `json:"awaitingColor"`
}

// Snapshot renders the match for the given viewer. An empty viewerID
// produces an unredacted snapshot with every hand visible, for the
// server's own use.
func (m *Match) Snapshot(viewerID string) Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := Snapshot{
		ID:            m.id,
		Name:          m.name,
		HasPassword:   len(m.passwordHash) > 0,
		State:         m.state.String(),
		DeckSize:      len(m.deck),
		CurrentPlayer: m.current,
		Reversed:      m.reversed,
		PendingDraw:   m.pendingDraw,
		AwaitingColor: m.awaitingColor,
	}
	if len(m.discard) > 0 {
		snap.DiscardTop = m.top().Token()
	}

	snap.Players = make([]PlayerSnapshot, 0, len(m.players))
	for _, p := range m.players {
		ps := PlayerSnapshot{
			ID:       p.ID,
			Name:     p.Name,
			Ready:    p.Ready,
			Bot:      p.Bot,
			Score:    p.Score,
			HandSize: len(p.Hand),
		}
		if viewerID == "" || p.ID == viewerID {
			ps.Hand = tokens(p.Hand)
		}
		snap.Players = append(snap.Players, ps)
	}
	return snap
}

func tokens(hand []card.Card) []string {
	out := make([]string, len(hand))
	for i, c := range hand {
		out[i] = c.Token()
	}
	return out
}
