package card

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrUnknownCard = errors.New("unknown card")

// Card is one of the 54 cards of a bridge deck with two jokers.
// Clubs are 1-13, diamonds 14-26, hearts 27-39, spades 40-52,
// followed by the two jokers.
type Card int

const (
	JokerA Card = 53
	JokerB Card = 54
)

const (
	First Card = 1
	Last  Card = JokerB
	Count      = int(Last)
)

// Suit of a non-joker card
type Suit int

const (
	NoSuit Suit = iota
	Clubs
	Diamonds
	Hearts
	Spades
)

var suitCodes = [...]string{"", "C", "D", "H", "S"}
var suitNames = [...]string{"", "Clubs", "Diamonds", "Hearts", "Spades"}

// Code returns the one-letter suit code (C, D, H, S)
func (s Suit) Code() string {
	if s < NoSuit || s > Spades {
		return ""
	}
	return suitCodes[s]
}

func (s Suit) String() string {
	if s < NoSuit || s > Spades {
		return ""
	}
	return suitNames[s]
}

// Red reports whether the suit is printed in red.
func (s Suit) Red() bool {
	return s == Diamonds || s == Hearts
}

var rankCodes = [...]string{"", "A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}
var rankNames = [...]string{
	"", "Ace", "Two", "Three", "Four", "Five", "Six", "Seven",
	"Eight", "Nine", "Ten", "Jack", "Queen", "King",
}

// Valid reports whether c is in the range 1..54
func (c Card) Valid() bool {
	return c >= First && c <= Last
}

func (c Card) IsJoker() bool {
	return c == JokerA || c == JokerB
}

// Suit returns NoSuit for jokers and invalid cards.
func (c Card) Suit() Suit {
	if !c.Valid() || c.IsJoker() {
		return NoSuit
	}
	return Suit((int(c)-1)/13 + 1)
}

// Rank returns 1 (ace) through 13 (king), or 0 for jokers.
func (c Card) Rank() int {
	if !c.Valid() || c.IsJoker() {
		return 0
	}
	return (int(c)-1)%13 + 1
}

// Code returns the short code of the card, e.g. AC, 10D, KS, JA, JB.
func (c Card) Code() string {
	switch {
	case c == JokerA:
		return "JA"
	case c == JokerB:
		return "JB"
	case !c.Valid():
		return "??"
	}
	return rankCodes[c.Rank()] + c.Suit().Code()
}

// Name returns the human readable name, e.g. "Queen of Hearts".
func (c Card) Name() string {
	switch {
	case c == JokerA:
		return "Joker A"
	case c == JokerB:
		return "Joker B"
	case !c.Valid():
		return fmt.Sprintf("Invalid card %d", int(c))
	}
	return rankNames[c.Rank()] + " of " + c.Suit().String()
}

func (c Card) String() string {
	return c.Code()
}

// Parse reads a card either from its short code (case-insensitive)
// or from its numeric value 1..54.
func Parse(s string) (Card, error) {
	code := strings.ToUpper(strings.TrimSpace(s))
	if code == "" {
		return 0, fmt.Errorf("%w: empty code", ErrUnknownCard)
	}

	if n, err := strconv.Atoi(code); err == nil {
		c := Card(n)
		if !c.Valid() {
			return 0, fmt.Errorf("%w: %d is out of range", ErrUnknownCard, n)
		}
		return c, nil
	}

	switch code {
	case "JA":
		return JokerA, nil
	case "JB":
		return JokerB, nil
	}

	rank, suit := code[:len(code)-1], code[len(code)-1:]
	suitIdx := 0
	for i := Clubs; i <= Spades; i++ {
		if suitCodes[i] == suit {
			suitIdx = int(i)
			break
		}
	}
	if suitIdx == 0 {
		return 0, fmt.Errorf("%w: %s", ErrUnknownCard, s)
	}
	for r := 1; r < len(rankCodes); r++ {
		if rankCodes[r] == rank {
			return Card((suitIdx-1)*13 + r), nil
		}
	}

	return 0, fmt.Errorf("%w: %s", ErrUnknownCard, s)
}

// ParseAll parses a list of card codes, stopping at the first bad one.
func ParseAll(codes []string) ([]Card, error) {
	cards := make([]Card, 0, len(codes))
	for i, code := range codes {
		c, err := Parse(code)
		if err != nil {
			return nil, fmt.Errorf("card #%d: %w", i+1, err)
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// Codes converts cards to their short codes.
func Codes(cards []Card) []string {
	codes := make([]string, len(cards))
	for i, c := range cards {
		codes[i] = c.Code()
	}
	return codes
}
