package keying

import (
	crand "crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/rs/zerolog"

	"github.com/arcanaland/pontifex/internal/card"
	"github.com/arcanaland/pontifex/internal/codec"
	"github.com/arcanaland/pontifex/internal/deck"
	"github.com/arcanaland/pontifex/internal/keystream"
)

const (
	// Passes is the number of times the passphrase is run through the deck.
	Passes = 2
	// MinPassphraseLetters is the length below which a passphrase is reported as weak.
	MinPassphraseLetters = 64
)

const (
	lowEntropyAdvisory = "passphrase has fewer than 64 letters; " +
		"at about 1.4 bits of entropy per letter of English text, " +
		"use at least 64 letters to approach the strength of a shuffled deck"
	generatedKeyAdvisory = "key was generated by the computer; " +
		"a deck shuffled by hand and written down is the recommended way to make a key"
)

var (
	ErrInvalidKey        = errors.New("invalid key")
	ErrInvalidPassphrase = errors.New("invalid passphrase")
)

// Scheduler builds initial decks from explicit keys, passphrases or the system random source.
type Scheduler struct {
	logger *zerolog.Logger
}

func NewScheduler(logger *zerolog.Logger) *Scheduler {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Scheduler{logger: logger}
}

// FromExplicitKey uses perm as the deck ordering, top card first.
func (s *Scheduler) FromExplicitKey(perm []card.Card) (deck.Deck, error) {
	d, err := deck.New(perm)
	if err != nil {
		return deck.Deck{}, fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}
	return d, nil
}

// FromPassphrase keys the ordered deck with every letter of text, twice over.
// Characters other than A-Z are ignored.
func (s *Scheduler) FromPassphrase(text string) (deck.Deck, error) {
	letters := codec.Normalize(text)
	if len(letters) == 0 {
		return deck.Deck{}, fmt.Errorf("%w: no letters", ErrInvalidPassphrase)
	}
	if len(letters) < MinPassphraseLetters {
		s.logger.Warn().
			Int("letters", len(letters)).
			Int("recommended", MinPassphraseLetters).
			Msg(lowEntropyAdvisory)
	}

	d, err := key(letters, Passes)
	if err != nil {
		return deck.Deck{}, err
	}
	s.logger.Debug().Int("letters", len(letters)).Int("passes", Passes).Msg("Keyed deck from passphrase")
	return d, nil
}

func key(letters string, passes int) (deck.Deck, error) {
	d := deck.Ordered()
	for p := 0; p < passes; p++ {
		for i := 0; i < len(letters); i++ {
			if err := keystream.Advance(&d); err != nil {
				return deck.Deck{}, err
			}
			if err := d.CountCutWith(codec.LetterValue(letters[i])); err != nil {
				return deck.Deck{}, err
			}
		}
	}
	return d, nil
}

// Generate shuffles a deck using the operating system's random source.
func (s *Scheduler) Generate() (deck.Deck, error) {
	perm := deck.Ordered().Cards()
	for i := len(perm) - 1; i > 0; i-- {
		n, err := crand.Int(crand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return deck.Deck{}, fmt.Errorf("shuffle deck: %w", err)
		}
		j := int(n.Int64())
		perm[i], perm[j] = perm[j], perm[i]
	}
	s.logger.Warn().Msg(generatedKeyAdvisory)
	return deck.New(perm)
}
