package game

import "github.com/UmutSen2662/Mono/internal/card"

// ActionType is what a bot decided to do with its turn.
type ActionType int

const (
	ActionDraw ActionType = iota
	ActionPlay
)

// Action is one bot decision. Color is set when Card is a wild.
type Action struct {
	Type  ActionType
	Card  card.Card
	Color card.Color
}

// ChooseAction picks a bot's move from the visible turn state. It is a
// pure function: same state and hand order, same decision.
//
// Priority: stack onto a pending draw-four, stack onto a pending
// draw-two, play the first playable card in hand order, otherwise draw.
func ChooseAction(state State, hand []card.Card, top card.Card, pendingDraw int) Action {
	switch state {
	case StatePendingDrawFour:
		for _, c := range hand {
			if c.Rank == card.WildDraw4 {
				return Action{Type: ActionPlay, Card: c, Color: chooseColor(hand, c)}
			}
		}
		return Action{Type: ActionDraw}
	case StatePendingDrawTwo:
		for _, c := range hand {
			if c.Rank == card.Draw2 {
				return Action{Type: ActionPlay, Card: c}
			}
		}
		return Action{Type: ActionDraw}
	}

	for _, c := range hand {
		if Playable(top, c) {
			act := Action{Type: ActionPlay, Card: c}
			if c.IsWild() {
				act.Color = chooseColor(hand, c)
			}
			return act
		}
	}
	return Action{Type: ActionDraw}
}

// chooseColor tallies the hand that remains after playing the wild and
// picks the majority color. With no colored cards left, or on a tie kept
// by the scan order, the fallback indexes the color table by the
// remaining hand size, which keeps the pick deterministic.
func chooseColor(hand []card.Card, playing card.Card) card.Color {
	counts := map[card.Color]int{}
	remaining := 0
	for _, c := range hand {
		if c == playing {
			continue
		}
		remaining++
		if !c.IsWild() {
			counts[c.Color]++
		}
	}

	best := card.ColorNone
	bestCount := 0
	for _, col := range card.Colors {
		if counts[col] > bestCount {
			best = col
			bestCount = counts[col]
		}
	}
	if best != card.ColorNone {
		return best
	}
	return card.Colors[remaining%len(card.Colors)]
}

// BotPending reports whether the current seat belongs to a bot in a
// running game, along with the data a scheduler needs to plan the tick:
// the match generation to guard against and the bot's hand size for the
// thinking delay.
func (m *Match) BotPending() (version uint64, handSize int, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateLobby || len(m.players) == 0 {
		return 0, 0, false
	}
	p := m.players[m.current]
	if !p.Bot {
		return 0, 0, false
	}
	return m.version, len(p.Hand), true
}

// BotTurn runs one bot turn scheduled against the given match generation.
// A tick whose generation no longer matches is rejected without touching
// any state; this is the guard that keeps a timer from a finished or
// restarted game from mutating the new one.
func (m *Match) BotTurn(version uint64) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == StateLobby {
		return Result{}, ErrNotPlaying
	}
	if m.version != version {
		return Result{}, ErrStaleVersion
	}
	p := m.players[m.current]
	if !p.Bot {
		return Result{}, ErrNotBotTurn
	}

	act := ChooseAction(m.state, p.Hand, m.top(), m.pendingDraw)
	if act.Type == ActionDraw {
		before := m.current
		if err := m.drawCardLocked(p.ID); err != nil {
			return Result{}, err
		}
		return Result{TurnRetained: m.current == before}, nil
	}

	res, err := m.playCardLocked(p.ID, act.Card)
	if err != nil {
		return Result{}, err
	}
	if res.Win {
		return res, nil
	}
	if m.awaitingColor {
		if err := m.pickColorLocked(p.ID, act.Color); err != nil {
			return Result{}, err
		}
	}
	return res, nil
}
