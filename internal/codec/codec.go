package codec

import (
	"errors"
	"fmt"
	"strings"

	"github.com/arcanaland/pontifex/internal/deck"
	"github.com/arcanaland/pontifex/internal/keystream"
)

const (
	GroupSize = 5
	Filler    = 'X'
)

var ErrInvalidCiphertext = errors.New("invalid ciphertext")

// Normalize upper-cases s and drops everything but the letters A-Z.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c >= 'A' && c <= 'Z' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Pad appends filler letters until the length is a multiple of the group size.
func Pad(letters string) string {
	if rem := len(letters) % GroupSize; rem != 0 {
		return letters + strings.Repeat(string(Filler), GroupSize-rem)
	}
	return letters
}

// Group splits letters into space separated groups of five.
func Group(letters string) string {
	if len(letters) == 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(len(letters) + len(letters)/GroupSize)
	for i := 0; i < len(letters); i += GroupSize {
		if i > 0 {
			b.WriteByte(' ')
		}
		end := min(i+GroupSize, len(letters))
		b.WriteString(letters[i:end])
	}
	return b.String()
}

// LetterValue returns 1 for A through 26 for Z.
func LetterValue(c byte) int {
	return int(c-'A') + 1
}

func letter(v int) byte {
	return byte('A' + v - 1)
}

// Encode enciphers message with a keystream drawn from d.
// d is received by value, so the caller's deck is left untouched.
func Encode(d deck.Deck, message string) (string, error) {
	letters := Normalize(message)
	if len(letters) == 0 {
		return "", nil
	}
	letters = Pad(letters)

	out, err := combine(&d, letters, func(p, k int) int {
		return (p-1+k-1)%26 + 1
	})
	if err != nil {
		return "", err
	}
	return Group(out), nil
}

// Decode reverses Encode. Filler letters added by Encode are kept.
func Decode(d deck.Deck, ciphertext string) (string, error) {
	letters := Normalize(ciphertext)
	if len(letters) == 0 {
		return "", fmt.Errorf("%w: no letters", ErrInvalidCiphertext)
	}
	if len(letters)%GroupSize != 0 {
		return "", fmt.Errorf(
			"%w: %d letters is not a multiple of %d", ErrInvalidCiphertext, len(letters), GroupSize,
		)
	}

	out, err := combine(&d, letters, func(c, k int) int {
		return (c-1-(k-1)+26)%26 + 1
	})
	if err != nil {
		return "", err
	}
	return Group(out), nil
}

func combine(d *deck.Deck, letters string, op func(letter, key int) int) (string, error) {
	gen := keystream.New(d)
	out := make([]byte, len(letters))
	for i := 0; i < len(letters); i++ {
		k, err := gen.Next()
		if err != nil {
			return "", err
		}
		out[i] = letter(op(LetterValue(letters[i]), k))
	}
	return string(out), nil
}
