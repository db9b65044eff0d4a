package card

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode"
)

var rankWords = map[string]int{
	"a": 1, "ace": 1, "one": 1,
	"two": 2, "three": 3, "four": 4, "five": 5, "six": 6,
	"seven": 7, "eight": 8, "nine": 9, "ten": 10, "t": 10,
	"j": 11, "jack": 11, "knave": 11,
	"q": 12, "queen": 12,
	"k": 13, "king": 13,
}

var suitWords = map[string]Suit{
	"c": Clubs, "club": Clubs, "clubs": Clubs,
	"d": Diamonds, "diamond": Diamonds, "diamonds": Diamonds,
	"h": Hearts, "heart": Hearts, "hearts": Hearts,
	"s": Spades, "spade": Spades, "spades": Spades,
}

var jokerWords = map[string]Card{
	"a": JokerA, "1": JokerA,
	"b": JokerB, "2": JokerB,
}

var suitSymbols = strings.NewReplacer(
	"♣", " c ", "♧", " c ",
	"♦", " d ", "♢", " d ",
	"♥", " h ", "♡", " h ",
	"♠", " s ", "♤", " s ",
)

// Match is a forgiving Parse for cards typed by hand. On top of the short
// codes it accepts spaced codes ("10 d"), names ("ace of spades", "Joker B"),
// rank and suit words in any case ("q hearts") and suit symbols ("K♠").
func Match(s string) (Card, error) {
	if c, err := Parse(s); err == nil {
		return c, nil
	}

	words := strings.FieldsFunc(strings.ToLower(suitSymbols.Replace(s)), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	words = slices.DeleteFunc(words, func(w string) bool {
		return w == "of" || w == "the"
	})

	if len(words) > 1 {
		if c, err := Parse(strings.Join(words, "")); err == nil {
			return c, nil
		}
	}
	if c, ok := matchWords(words); ok {
		return c, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownCard, strings.TrimSpace(s))
}

func matchWords(words []string) (Card, bool) {
	if len(words) != 2 {
		return 0, false
	}
	if words[0] == "joker" {
		c, ok := jokerWords[words[1]]
		return c, ok
	}

	rank, ok := rankOf(words[0])
	if !ok {
		return 0, false
	}
	suit, ok := suitWords[words[1]]
	if !ok {
		return 0, false
	}
	return Card((int(suit)-1)*13 + rank), true
}

func rankOf(w string) (int, bool) {
	if r, ok := rankWords[w]; ok {
		return r, true
	}
	if n, err := strconv.Atoi(w); err == nil && n >= 1 && n <= 13 {
		return n, true
	}
	return 0, false
}
