package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UmutSen2662/Mono/internal/card"
)

func TestChooseActionStacksDrawFour(t *testing.T) {
	top := mustCard(t, "sp0r")
	h := hand(t, "r50", "gp0", "sp2", "y30")

	act := ChooseAction(StatePendingDrawFour, h, top, 4)
	assert.Equal(t, ActionPlay, act.Type)
	assert.Equal(t, mustCard(t, "sp2"), act.Card)
	assert.NotEqual(t, card.ColorNone, act.Color)

	// Without a draw-four in hand the bot must draw, even holding a
	// draw-two.
	act = ChooseAction(StatePendingDrawFour, hand(t, "gp0", "r50"), top, 4)
	assert.Equal(t, ActionDraw, act.Type)
}

func TestChooseActionStacksDrawTwo(t *testing.T) {
	top := mustCard(t, "bp0")
	h := hand(t, "r50", "sp2", "gp1")

	act := ChooseAction(StatePendingDrawTwo, h, top, 2)
	assert.Equal(t, ActionPlay, act.Type)
	assert.Equal(t, mustCard(t, "gp1"), act.Card, "wilds do not counter a draw-two")

	act = ChooseAction(StatePendingDrawTwo, hand(t, "r50", "sc0"), top, 2)
	assert.Equal(t, ActionDraw, act.Type)
}

func TestChooseActionScansFrontToBack(t *testing.T) {
	top := mustCard(t, "r50")

	act := ChooseAction(StatePlaying, hand(t, "b30", "r70", "r90"), top, 1)
	assert.Equal(t, ActionPlay, act.Type)
	assert.Equal(t, mustCard(t, "r70"), act.Card)

	// A wild earlier in hand order wins over a later color match.
	act = ChooseAction(StatePlaying, hand(t, "b30", "sc1", "r70"), top, 1)
	assert.Equal(t, mustCard(t, "sc1"), act.Card)
	assert.NotEqual(t, card.ColorNone, act.Color)

	act = ChooseAction(StatePlaying, hand(t, "b30", "g70", "y21"), top, 1)
	assert.Equal(t, ActionDraw, act.Type)
}

func TestChooseColorMajority(t *testing.T) {
	playing := mustCard(t, "sc0")
	h := hand(t, "sc0", "y30", "y70", "b20")
	assert.Equal(t, card.Yellow, chooseColor(h, playing))
}

func TestChooseColorDeterministicFallback(t *testing.T) {
	playing := mustCard(t, "sp0")

	// Only wilds left: index the color table by remaining hand size.
	h := hand(t, "sp0", "sc1", "sc2")
	assert.Equal(t, card.Colors[2], chooseColor(h, playing))

	// Same input, same pick.
	assert.Equal(t, chooseColor(h, playing), chooseColor(h, playing))
}

func TestBotPending(t *testing.T) {
	m := playingMatch(t, "r50",
		hand(t, "g30", "b40"),
		hand(t, "y40"),
	)
	_, _, ok := m.BotPending()
	assert.False(t, ok, "current seat is human")

	m.players[0].Bot = true
	version, handSize, ok := m.BotPending()
	require.True(t, ok)
	assert.Equal(t, m.version, version)
	assert.Equal(t, 2, handSize)

	m.state = StateLobby
	_, _, ok = m.BotPending()
	assert.False(t, ok)
}

func TestBotTurnStaleVersionIsNoOp(t *testing.T) {
	m := playingMatch(t, "r50",
		hand(t, "r90", "g30"),
		hand(t, "y40"),
	)
	m.players[0].Bot = true
	stale := m.version - 1

	before := m.Snapshot("")
	_, err := m.BotTurn(stale)
	assert.ErrorIs(t, err, ErrStaleVersion)
	assert.Equal(t, before, m.Snapshot(""), "stale tick must not mutate")

	m.state = StateLobby
	_, err = m.BotTurn(m.version)
	assert.ErrorIs(t, err, ErrNotPlaying)
}

func TestBotTurnPlaysWildAndResolvesColor(t *testing.T) {
	m := playingMatch(t, "r50",
		hand(t, "sc0", "y30", "y70"),
		hand(t, "b40"),
	)
	m.players[0].Bot = true

	res, err := m.BotTurn(m.version)
	require.NoError(t, err)
	assert.False(t, res.Win)
	assert.False(t, m.awaitingColor, "bot resolves its own wild")
	assert.Equal(t, "sc0y", m.top().Token())
	assert.Equal(t, 1, m.current)
}

func TestBotTurnDrawReportsRetention(t *testing.T) {
	m := playingMatch(t, "r50",
		hand(t, "g30"),
		hand(t, "y40"),
	)
	m.players[0].Bot = true
	m.deck = hand(t, "b20", "r90")

	res, err := m.BotTurn(m.version)
	require.NoError(t, err)
	assert.True(t, res.TurnRetained, "drawn r90 plays on r50")
	assert.Equal(t, 0, m.current)

	// Next tick plays the drawn card.
	res, err = m.BotTurn(m.version)
	require.NoError(t, err)
	assert.False(t, res.TurnRetained)
	assert.Equal(t, "r90", m.top().Token())
}

func TestBotTurnAcceptsPenalty(t *testing.T) {
	m := playingMatch(t, "gp0",
		hand(t, "r50", "b30"),
		hand(t, "y40"),
	)
	m.players[0].Bot = true
	m.state = StatePendingDrawTwo
	m.pendingDraw = 2

	res, err := m.BotTurn(m.version)
	require.NoError(t, err)
	assert.False(t, res.TurnRetained)
	assert.Len(t, m.players[0].Hand, 4)
	assert.Equal(t, 1, m.pendingDraw)
	assert.Equal(t, 1, m.current)
}

func totalCards(m *Match) int {
	n := len(m.deck) + len(m.discard)
	for _, p := range m.players {
		n += len(p.Hand)
	}
	return n
}

// Two bots play a full game through the scheduler's entry points. The
// game must end with a win, and no card may be created or lost along the
// way.
func TestBotsPlayFullGame(t *testing.T) {
	m := NewMatch("m1", "Bot Arena", "")
	require.NoError(t, m.AddBot())
	require.NoError(t, m.AddBot())
	require.NoError(t, m.TryStartGame())

	version, _, ok := m.BotPending()
	require.True(t, ok)

	won := false
	for i := 0; i < 10000; i++ {
		res, err := m.BotTurn(version)
		require.NoError(t, err)
		require.Equal(t, card.DeckSize, totalCards(m), "card conservation")
		if res.Win {
			won = true
			assert.NotEmpty(t, res.WinnerID)
			break
		}
	}
	require.True(t, won, "bot game did not finish")

	m.ResetToLobby()
	assert.Equal(t, StateLobby, m.State())
	scores := 0
	for _, p := range m.players {
		scores += p.Score
	}
	assert.Equal(t, 1, scores)
}
