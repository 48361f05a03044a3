package card

import "fmt"

// Color is the suit of a card. Wild cards carry ColorWild until a color
// is picked for them, which lands in Card.Resolved.
type Color int

const (
	ColorNone Color = iota
	Red
	Green
	Blue
	Yellow
	ColorWild
)

// Colors lists the four pickable colors in token order.
var Colors = [4]Color{Red, Green, Blue, Yellow}

func (c Color) Letter() byte {
	switch c {
	case Red:
		return 'r'
	case Green:
		return 'g'
	case Blue:
		return 'b'
	case Yellow:
		return 'y'
	case ColorWild:
		return 's'
	}
	return '?'
}

func (c Color) String() string {
	if c == ColorNone {
		return "none"
	}
	return string(c.Letter())
}

// Rank is the face of a card: 0-9 plus the action ranks.
type Rank int

const (
	Rank0 Rank = iota
	Rank1
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
	Rank9
	Draw2
	Skip
	Reverse
	WildDraw4
	WildColor
)

func (r Rank) letter() byte {
	switch {
	case r <= Rank9:
		return byte('0' + r)
	case r == Draw2 || r == WildDraw4:
		return 'p'
	case r == Skip:
		return 's'
	case r == Reverse:
		return 'r'
	case r == WildColor:
		return 'c'
	}
	return '?'
}

// Card is the structured form of a card token. Rule logic works on this
// form; the string tokens exist only at the serialization boundary.
//
// Inst distinguishes the physical copies of a card (zeros are singletons,
// other standard cards come in pairs, wilds in fours). It never affects
// legality.
type Card struct {
	Color    Color
	Rank     Rank
	Inst     int
	Resolved Color
}

func (c Card) IsWild() bool {
	return c.Rank == WildDraw4 || c.Rank == WildColor
}

// Unresolved reports whether c is a wild still waiting for a color pick.
func (c Card) Unresolved() bool {
	return c.IsWild() && c.Resolved == ColorNone
}

// Token encodes c in the wire format: "r50" for the first red five,
// "sp2" for the third wild draw-four, "sp2r" once resolved red.
func (c Card) Token() string {
	b := make([]byte, 0, 4)
	b = append(b, c.Color.Letter(), c.Rank.letter(), byte('0'+c.Inst))
	if c.Resolved != ColorNone {
		b = append(b, c.Resolved.Letter())
	}
	return string(b)
}

func (c Card) String() string { return c.Token() }

func parseColor(b byte) (Color, bool) {
	switch b {
	case 'r':
		return Red, true
	case 'g':
		return Green, true
	case 'b':
		return Blue, true
	case 'y':
		return Yellow, true
	}
	return ColorNone, false
}

// ParseColor decodes a single-letter color token ("r", "g", "b", "y").
func ParseColor(s string) (Color, error) {
	if len(s) == 1 {
		if col, ok := parseColor(s[0]); ok {
			return col, nil
		}
	}
	return ColorNone, fmt.Errorf("invalid color token %q", s)
}

// Parse decodes a card token. Accepted shapes:
//
//	"r5"   standard card, instance defaults to 0
//	"r50"  standard card with instance suffix
//	"sp2"  wild draw-four
//	"sc0"  wild color-change
//	"sp2r" resolved wild
func Parse(token string) (Card, error) {
	if len(token) < 2 || len(token) > 4 {
		return Card{}, fmt.Errorf("invalid card token %q", token)
	}

	if token[0] == 's' {
		var rank Rank
		switch token[1] {
		case 'p':
			rank = WildDraw4
		case 'c':
			rank = WildColor
		default:
			return Card{}, fmt.Errorf("invalid wild token %q", token)
		}
		if len(token) < 3 || token[2] < '0' || token[2] > '3' {
			return Card{}, fmt.Errorf("invalid wild token %q", token)
		}
		c := Card{Color: ColorWild, Rank: rank, Inst: int(token[2] - '0')}
		if len(token) == 4 {
			res, ok := parseColor(token[3])
			if !ok {
				return Card{}, fmt.Errorf("invalid resolved color in %q", token)
			}
			c.Resolved = res
		}
		return c, nil
	}

	col, ok := parseColor(token[0])
	if !ok {
		return Card{}, fmt.Errorf("invalid card token %q", token)
	}
	var rank Rank
	switch {
	case token[1] >= '0' && token[1] <= '9':
		rank = Rank(token[1] - '0')
	case token[1] == 'p':
		rank = Draw2
	case token[1] == 's':
		rank = Skip
	case token[1] == 'r':
		rank = Reverse
	default:
		return Card{}, fmt.Errorf("invalid rank in %q", token)
	}
	c := Card{Color: col, Rank: rank}
	if len(token) >= 3 {
		if token[2] != '0' && token[2] != '1' {
			return Card{}, fmt.Errorf("invalid instance in %q", token)
		}
		c.Inst = int(token[2] - '0')
	}
	if len(token) == 4 {
		return Card{}, fmt.Errorf("invalid card token %q", token)
	}
	return c, nil
}
