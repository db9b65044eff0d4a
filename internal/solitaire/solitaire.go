// Package solitaire is the entry point to the Solitaire (Pontifex) cipher.
//
// A Cipher is keyed once, from exactly one key source, and keeps the keyed
// deck read-only. Each Encode and Decode call works on its own copy of that
// deck, so calls are independent of each other and safe to run concurrently.
//
// Solitaire is a pencil-and-paper cipher. It is not a substitute for modern
// cryptography.
package solitaire

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/arcanaland/pontifex/internal/card"
	"github.com/arcanaland/pontifex/internal/codec"
	"github.com/arcanaland/pontifex/internal/deck"
	"github.com/arcanaland/pontifex/internal/keying"
)

var ErrInvalidConfiguration = errors.New("exactly one key source must be given")

type keySource int

const (
	sourceExplicit keySource = iota + 1
	sourcePassphrase
	sourceGenerated
)

type options struct {
	sources    []keySource
	key        []card.Card
	passphrase string
	logger     *zerolog.Logger
}

type Option func(*options)

// WithKey keys the cipher with an explicit deck ordering, top card first.
func WithKey(perm []card.Card) Option {
	return func(o *options) {
		o.sources = append(o.sources, sourceExplicit)
		o.key = perm
	}
}

// WithPassphrase keys the cipher from a passphrase.
func WithPassphrase(passphrase string) Option {
	return func(o *options) {
		o.sources = append(o.sources, sourcePassphrase)
		o.passphrase = passphrase
	}
}

// WithGeneratedKey keys the cipher with a randomly shuffled deck.
func WithGeneratedKey() Option {
	return func(o *options) {
		o.sources = append(o.sources, sourceGenerated)
	}
}

// WithLogger sets the logger receiving keying advisories.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

type Cipher struct {
	initial deck.Deck
}

func New(opts ...Option) (*Cipher, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if len(o.sources) != 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidConfiguration, len(o.sources))
	}

	sched := keying.NewScheduler(o.logger)
	var (
		d   deck.Deck
		err error
	)
	switch o.sources[0] {
	case sourceExplicit:
		d, err = sched.FromExplicitKey(o.key)
	case sourcePassphrase:
		d, err = sched.FromPassphrase(o.passphrase)
	case sourceGenerated:
		d, err = sched.Generate()
	}
	if err != nil {
		return nil, err
	}

	return &Cipher{initial: d}, nil
}

// Encode returns the ciphertext of message in groups of five letters.
func (c *Cipher) Encode(message string) (string, error) {
	return codec.Encode(c.initial, message)
}

// Decode returns the plaintext of ciphertext in groups of five letters,
// including any filler added by Encode.
func (c *Cipher) Decode(ciphertext string) (string, error) {
	return codec.Decode(c.initial, ciphertext)
}

// Key exports the keyed deck. The result can be passed to WithKey.
func (c *Cipher) Key() deck.KeyMaterial {
	return c.initial.Cards()
}

// Deck exports the keyed deck as card codes (AC, 2C, ..., JA, JB).
func (c *Cipher) Deck() []string {
	return c.initial.Cards().Codes()
}
