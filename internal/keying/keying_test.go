package keying

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/pontifex/internal/card"
	"github.com/arcanaland/pontifex/internal/codec"
	"github.com/arcanaland/pontifex/internal/deck"
	"github.com/arcanaland/pontifex/internal/keystream"
)

func newTestScheduler() (*Scheduler, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := zerolog.New(buf)
	return NewScheduler(&logger), buf
}

func toCards(values []int) []card.Card {
	out := make([]card.Card, len(values))
	for i, v := range values {
		out[i] = card.Card(v)
	}
	return out
}

var cryptonomiconKey = []int{
	51, 53, 50, 29, 24, 23, 1, 48, 17, 52, 22, 28, 14, 15, 16, 12, 3, 20,
	25, 19, 39, 40, 47, 10, 11, 27, 30, 54, 26, 6, 18, 31, 32, 5, 35, 36,
	37, 38, 33, 41, 42, 43, 44, 45, 46, 34, 8, 49, 9, 7, 4, 2, 13, 21,
}

func TestFromPassphrase_PinnedDeck(t *testing.T) {
	s, _ := newTestScheduler()
	d, err := s.FromPassphrase("cryptonomicon")
	require.NoError(t, err)
	assert.Equal(t, deck.KeyMaterial(toCards(cryptonomiconKey)), d.Cards())
}

func TestFromPassphrase_IgnoresCaseAndPunctuation(t *testing.T) {
	s, _ := newTestScheduler()
	a, err := s.FromPassphrase("cryptonomicon")
	require.NoError(t, err)
	b, err := s.FromPassphrase("Crypto-Nomicon!")
	require.NoError(t, err)
	assert.Equal(t, a.Cards(), b.Cards())
}

func TestFromPassphrase_Deterministic(t *testing.T) {
	s, _ := newTestScheduler()
	a, err := s.FromPassphrase("the quick brown fox")
	require.NoError(t, err)
	b, err := s.FromPassphrase("the quick brown fox")
	require.NoError(t, err)
	assert.Equal(t, a.Cards(), b.Cards())
	assert.NoError(t, a.Validate())
}

func TestFromPassphrase_NoLetters(t *testing.T) {
	s, _ := newTestScheduler()
	for _, p := range []string{"", "   ", "1234 !?"} {
		_, err := s.FromPassphrase(p)
		assert.ErrorIs(t, err, ErrInvalidPassphrase, "passphrase %q", p)
	}
}

func TestFromPassphrase_LowEntropyAdvisory(t *testing.T) {
	s, buf := newTestScheduler()
	_, err := s.FromPassphrase("short")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), "fewer than 64 letters")
	assert.Contains(t, buf.String(), `"letters":5`)

	s, buf = newTestScheduler()
	_, err = s.FromPassphrase(strings.Repeat("abcdefgh", 8))
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "fewer than 64 letters")
}

func TestFromPassphrase_NilLogger(t *testing.T) {
	s := NewScheduler(nil)
	_, err := s.FromPassphrase("abc")
	assert.NoError(t, err)
}

// A single keying pass must reproduce the published keystream for CRYPTONOMICON,
// which plaintext SOLITAIRE turns into KIRAK SFJAN under plain mod 26 addition.
func TestKey_SinglePassMatchesPublishedStream(t *testing.T) {
	d, err := key("CRYPTONOMICON", 1)
	require.NoError(t, err)

	g := keystream.New(&d)
	want := []int{18, 20, 6, 18, 17, 18, 23, 18, 22, 16}
	for i, w := range want {
		v, err := g.Next()
		require.NoError(t, err)
		assert.Equal(t, w, v, "keystream value #%d", i+1)
	}
}

func TestKey_TwoPassesDifferFromOne(t *testing.T) {
	one, err := key("CRYPTONOMICON", 1)
	require.NoError(t, err)
	two, err := key("CRYPTONOMICON", Passes)
	require.NoError(t, err)
	assert.NotEqual(t, one.Cards(), two.Cards())
}

func TestFromExplicitKey(t *testing.T) {
	s, _ := newTestScheduler()

	d, err := s.FromExplicitKey(toCards(cryptonomiconKey))
	require.NoError(t, err)
	assert.Equal(t, deck.KeyMaterial(toCards(cryptonomiconKey)), d.Cards())

	bad := toCards(cryptonomiconKey)
	bad[0] = bad[1]
	_, err = s.FromExplicitKey(bad)
	assert.ErrorIs(t, err, ErrInvalidKey)
	assert.ErrorIs(t, err, deck.ErrCorruptState)

	_, err = s.FromExplicitKey(toCards(cryptonomiconKey[:10]))
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestCryptonomiconVector(t *testing.T) {
	s, _ := newTestScheduler()
	d, err := s.FromPassphrase("cryptonomicon")
	require.NoError(t, err)

	ct, err := codec.Encode(d, "Oh Mary had a little lambabcde")
	require.NoError(t, err)
	assert.Equal(t, "SJXCR WHVTN LATDC DLKFN JBAEW", ct)

	pt, err := codec.Decode(d, ct)
	require.NoError(t, err)
	assert.Equal(t, "OHMAR YHADA LITTL ELAMB ABCDE", pt)
}

func TestGenerate(t *testing.T) {
	s, buf := newTestScheduler()
	a, err := s.Generate()
	require.NoError(t, err)
	b, err := s.Generate()
	require.NoError(t, err)

	assert.NoError(t, a.Validate())
	assert.NoError(t, b.Validate())
	assert.NotEqual(t, a.Cards(), b.Cards(), "two shuffles should not coincide")
	assert.Contains(t, buf.String(), "generated by the computer")
}
