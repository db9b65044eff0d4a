package codec

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/pontifex/internal/deck"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"mixed case", "Oh Mary", "OHMARY"},
		{"punctuation and digits", "a1-b2, c3!", "ABC"},
		{"only symbols", "!!! ,,,", ""},
		{"non ascii letters are dropped", "Café Über", "CAFBER"},
		{"whitespace", "\tab \n cd", "ABCD"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestPad(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"A", "AXXXX"},
		{"ABCD", "ABCDX"},
		{"ABCDE", "ABCDE"},
		{"ABCDEF", "ABCDEFXXXX"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Pad(tt.input))
		})
	}
}

func TestGroup(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"ABC", "ABC"},
		{"ABCDE", "ABCDE"},
		{"ABCDEFGHIJ", "ABCDE FGHIJ"},
		{"ABCDEFGHIJKLMNO", "ABCDE FGHIJ KLMNO"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Group(tt.input))
		})
	}
}

func TestEncode_OrderedDeckVectors(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"all a", "AAAAAAAAAA", "DWJXH YRFDG"},
		{"padded", "Hello, world", "KAUIV UFWOJ"},
		{"pangram", "The quick brown fox jumps over the lazy dog", "WDNNB GTPEX HIFMD RDLJY RMRCY VVZCL UPXTS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(deck.Ordered(), tt.message)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecode_OrderedDeckVectors(t *testing.T) {
	got, err := Decode(deck.Ordered(), "kauiv ufwoj")
	require.NoError(t, err)
	assert.Equal(t, "HELLO WORLD", got)

	got, err = Decode(deck.Ordered(), "DWJXHYRFDG")
	require.NoError(t, err)
	assert.Equal(t, "AAAAA AAAAA", got)
}

func TestEncode_Empty(t *testing.T) {
	for _, msg := range []string{"", "!!! ,,,", "12345"} {
		got, err := Encode(deck.Ordered(), msg)
		require.NoError(t, err)
		assert.Equal(t, "", got)
	}
}

func TestDecode_InvalidCiphertext(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"no letters", " 123 !! "},
		{"four letters", "ABCD"},
		{"six letters", "ABCDE F"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(deck.Ordered(), tt.input)
			assert.ErrorIs(t, err, ErrInvalidCiphertext)
		})
	}
}

func TestEncode_Deterministic(t *testing.T) {
	d := deck.Ordered()
	first, err := Encode(d, "attack at dawn")
	require.NoError(t, err)
	second, err := Encode(d, "attack at dawn")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, deck.Ordered().Cards(), d.Cards(), "Encode must not mutate the caller's deck")
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ .,!?-'0123456789"

	// a scrambled starting deck
	start := deck.Ordered()
	for i := 0; i < 17; i++ {
		require.NoError(t, start.CountCutWith(rng.Intn(26)+1))
		require.NoError(t, start.TripleCut())
		require.NoError(t, start.MoveJoker(53, 1))
	}

	for i := 0; i < 200; i++ {
		var b strings.Builder
		for n := rng.Intn(80); n > 0; n-- {
			b.WriteByte(alphabet[rng.Intn(len(alphabet))])
		}
		msg := b.String()

		ct, err := Encode(start, msg)
		require.NoError(t, err)

		want := Group(Pad(Normalize(msg)))
		if want == "" {
			assert.Equal(t, "", ct)
			continue
		}

		pt, err := Decode(start, ct)
		require.NoError(t, err)
		assert.Equal(t, want, pt, "message %q", msg)
	}
}
