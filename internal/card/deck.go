package card

import "math/rand"

// DeckSize is the number of cards in a fresh deck: per color one zero and
// two of every other rank, plus 4 wild draw-fours and 4 wild color-changes.
const DeckSize = 108

// NewDeck builds the full unshuffled 108-card set. The top of a deck is
// the end of the slice.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, col := range Colors {
		deck = append(deck, Card{Color: col, Rank: Rank0})
		for rank := Rank1; rank <= Reverse; rank++ {
			deck = append(deck,
				Card{Color: col, Rank: rank, Inst: 0},
				Card{Color: col, Rank: rank, Inst: 1},
			)
		}
	}
	for i := 0; i < 4; i++ {
		deck = append(deck,
			Card{Color: ColorWild, Rank: WildDraw4, Inst: i},
			Card{Color: ColorWild, Rank: WildColor, Inst: i},
		)
	}
	return deck
}

// Shuffle performs an unbiased in-place shuffle using the caller's rng.
func Shuffle(deck []Card, rng *rand.Rand) {
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
}
