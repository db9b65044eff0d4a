package deck

import (
	"errors"
	"fmt"
	"strings"

	"github.com/arcanaland/pontifex/internal/card"
)

const Size = card.Count

var (
	ErrCorruptState  = errors.New("deck is not a permutation of 1..54")
	ErrJokerNotFound = fmt.Errorf("%w: joker not found", ErrCorruptState)
)

// Deck is the ordered state of the cipher, top card first.
// It is a value type: assigning a Deck copies it.
type Deck struct {
	cards [Size]card.Card
}

// KeyMaterial is an exported copy of a deck ordering.
type KeyMaterial []card.Card

func (k KeyMaterial) Codes() []string {
	return card.Codes(k)
}

func (k KeyMaterial) String() string {
	return strings.Join(k.Codes(), " ")
}

// Ordered returns the canonical deck: AC..KS followed by Joker A and Joker B.
func Ordered() Deck {
	var d Deck
	for i := range d.cards {
		d.cards[i] = card.Card(i + 1)
	}
	return d
}

// New builds a deck from an ordering; the ordering must be a permutation of 1..54.
func New(cards []card.Card) (Deck, error) {
	var d Deck
	if len(cards) != Size {
		return d, fmt.Errorf("%w: got %d cards", ErrCorruptState, len(cards))
	}
	copy(d.cards[:], cards)
	if err := d.Validate(); err != nil {
		return Deck{}, err
	}
	return d, nil
}

// Validate checks the permutation invariant.
func (d Deck) Validate() error {
	var seen [Size + 1]bool
	for i, c := range d.cards {
		if !c.Valid() {
			return fmt.Errorf("%w: invalid card %d at position %d", ErrCorruptState, int(c), i+1)
		}
		if seen[c] {
			return fmt.Errorf("%w: duplicate %s at position %d", ErrCorruptState, c, i+1)
		}
		seen[c] = true
	}
	return nil
}

// Cards returns a copy of the ordering.
func (d Deck) Cards() KeyMaterial {
	out := make(KeyMaterial, Size)
	copy(out, d.cards[:])
	return out
}

func (d Deck) Top() card.Card {
	return d.cards[0]
}

func (d Deck) Bottom() card.Card {
	return d.cards[Size-1]
}

func (d Deck) indexOf(c card.Card) int {
	for i, x := range d.cards {
		if x == c {
			return i
		}
	}
	return -1
}

// MoveJoker moves the joker down by the given number of positions.
// The deck is circular but a joker never becomes the top card:
// moving past the bottom continues right after the top card.
func (d *Deck) MoveJoker(which card.Card, by int) error {
	if !which.IsJoker() {
		return fmt.Errorf("move joker: %s is not a joker", which)
	}
	if by < 0 {
		return fmt.Errorf("move joker: negative distance %d", by)
	}
	if err := d.Validate(); err != nil {
		return err
	}
	from := d.indexOf(which)
	if from < 0 {
		return fmt.Errorf("%w: %s", ErrJokerNotFound, which)
	}

	// with the joker lifted out, 53 cards remain and it can be
	// put back in any of the gaps 1..53 (gap 0 is above the top card)
	gaps := Size - 1
	to := from + by
	for to > gaps {
		to -= gaps
	}

	if to > from {
		copy(d.cards[from:to], d.cards[from+1:to+1])
	} else if to < from {
		copy(d.cards[to+1:from+1], d.cards[to:from])
	}
	d.cards[to] = which
	return nil
}

// TripleCut swaps the cards above the first joker with the cards below the second one.
func (d *Deck) TripleCut() error {
	if err := d.Validate(); err != nil {
		return err
	}
	first, second := d.indexOf(card.JokerA), d.indexOf(card.JokerB)
	if first < 0 || second < 0 {
		return ErrJokerNotFound
	}
	if first > second {
		first, second = second, first
	}

	var out [Size]card.Card
	n := copy(out[:], d.cards[second+1:])
	n += copy(out[n:], d.cards[first:second+1])
	copy(out[n:], d.cards[:first])
	d.cards = out
	return nil
}

// CountCut cuts as many cards as the value of the bottom card, a joker counting as 54.
func (d *Deck) CountCut() error {
	if err := d.Validate(); err != nil {
		return err
	}
	return d.countCut(int(d.Bottom()))
}

// CountCutWith is CountCut with an explicit count, used for keying.
func (d *Deck) CountCutWith(n int) error {
	if n < 0 {
		return fmt.Errorf("count cut: negative count %d", n)
	}
	if err := d.Validate(); err != nil {
		return err
	}
	return d.countCut(n)
}

func (d *Deck) countCut(n int) error {
	// the bottom card stays put, so cutting 53 or more is a no-op
	if n >= Size-1 || n == 0 {
		return nil
	}
	var out [Size]card.Card
	k := copy(out[:], d.cards[n:Size-1])
	copy(out[k:], d.cards[:n])
	out[Size-1] = d.cards[Size-1]
	d.cards = out
	return nil
}

// PeekOutput returns the card found by counting down the value of the top card
// (a joker counting as 53). The deck is not changed.
func (d Deck) PeekOutput() (card.Card, error) {
	if err := d.Validate(); err != nil {
		return 0, err
	}
	m := int(d.Top())
	if d.Top().IsJoker() {
		m = int(card.JokerA)
	}
	return d.cards[m], nil
}
