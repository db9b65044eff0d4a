package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/arcanaland/pontifex/internal/card"
	"github.com/arcanaland/pontifex/internal/deck"
)

var rejectedCard = color.New(color.FgYellow)

// readCards reads a deck one card per line, top card first. Unknown and
// repeated cards are reported and skipped, so a typo never ends the session.
func readCards(r io.Reader, w io.Writer) (deck.KeyMaterial, error) {
	fmt.Fprintf(w, "Enter the %d cards from the top of the deck, one per line (e.g. AS, 10 d, queen of hearts, joker a).\n", deck.Size)

	cards := make(deck.KeyMaterial, 0, deck.Size)
	seen := make(map[card.Card]int, deck.Size)
	scanner := bufio.NewScanner(r)
	for len(cards) < deck.Size && scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		toGo := deck.Size - len(cards)

		c, err := card.Match(line)
		if err != nil {
			fmt.Fprintln(w, rejectedCard.Sprintf("? unknown card %q, %d cards to go", line, toGo))
			continue
		}
		if pos, ok := seen[c]; ok {
			fmt.Fprintln(w, rejectedCard.Sprintf("! %s is already card #%d, %d cards to go", c.Name(), pos, toGo))
			continue
		}

		cards = append(cards, c)
		seen[c] = len(cards)
		fmt.Fprintf(w, "%3d  %s %s, %d to go\n", len(cards), cardStyle(c).Sprintf("%-3s", c.Code()), c.Name(), toGo-1)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading cards: %w", err)
	}
	if len(cards) < deck.Size {
		return nil, fmt.Errorf("input ended after %d of %d cards", len(cards), deck.Size)
	}
	return cards, nil
}
