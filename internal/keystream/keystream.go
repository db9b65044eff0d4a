package keystream

import (
	"errors"
	"fmt"

	"github.com/arcanaland/pontifex/internal/card"
	"github.com/arcanaland/pontifex/internal/deck"
)

// MaxJokerDraws bounds consecutive joker draws. Reaching it means the deck logic is broken.
const MaxJokerDraws = 10000

var ErrStalled = errors.New("keystream stalled on consecutive joker draws")

// Advance performs one mixing round: both joker moves, the triple cut and the count cut.
func Advance(d *deck.Deck) error {
	if err := d.MoveJoker(card.JokerA, 1); err != nil {
		return err
	}
	if err := d.MoveJoker(card.JokerB, 2); err != nil {
		return err
	}
	if err := d.TripleCut(); err != nil {
		return err
	}
	return d.CountCut()
}

// Generator draws keystream values from a deck it owns exclusively.
type Generator struct {
	deck     *deck.Deck
	maxDraws int
}

// New starts a generator on d. The deck is advanced in place by every call to Next.
func New(d *deck.Deck) *Generator {
	return &Generator{deck: d, maxDraws: MaxJokerDraws}
}

// Next advances the deck until a non-joker card is drawn and returns its value in 1..26.
func (g *Generator) Next() (int, error) {
	for i := 0; i < g.maxDraws; i++ {
		if err := Advance(g.deck); err != nil {
			return 0, err
		}
		c, err := g.deck.PeekOutput()
		if err != nil {
			return 0, err
		}
		if c.IsJoker() {
			continue
		}
		return Value(c), nil
	}
	return 0, fmt.Errorf("%w: %d in a row", ErrStalled, g.maxDraws)
}

// Value maps a non-joker card onto 1..26; hearts and spades fold onto clubs and diamonds.
func Value(c card.Card) int {
	v := int(c)
	if v > 26 {
		v -= 26
	}
	return v
}
