package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/arcanaland/pontifex/internal/card"
	"github.com/arcanaland/pontifex/internal/deck"
)

const (
	cellWidth  = 4
	labelWidth = 5
	maxColumns = 13
)

var (
	redCard   = color.New(color.FgRed, color.Bold)
	blackCard = color.New(color.FgHiWhite)
	jokerCard = color.New(color.FgYellow, color.Bold, color.ReverseVideo)
	dimText   = color.New(color.Faint)
)

var showColumns int

var showCmd = &cobra.Command{
	Use:   "show [key_name]",
	Short: "Display the deck of a key",
	Long: `Show prints the deck order of a key as a grid of card codes, top card first.
Red suits are shown in red and the jokers are highlighted.

You can name a key from your keyring (XDG_DATA_HOME/pontifex/keys) or give the
path to a key file. If no key is given, the default key from your config is used.

Examples:
  pontifex show
  pontifex show field
  pontifex show ./keys/travel.toml`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := keyArg(args)
		if err != nil {
			return err
		}

		kf, err := openKeyring().Load(name)
		if err != nil {
			return err
		}
		d, err := kf.Deck()
		if err != nil {
			return fmt.Errorf("error loading key: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (%s)\n", kf.Key.Name, kf.Key.Source)
		if kf.Key.Description != "" {
			fmt.Fprintln(out, dimText.Sprint(kf.Key.Description))
		}
		if !kf.Key.CreatedDate.IsZero() {
			fmt.Fprintln(out, dimText.Sprintf("created %s", kf.Key.CreatedDate.Format("2006-01-02 15:04")))
		}
		fmt.Fprintln(out)

		columns := showColumns
		if columns <= 0 {
			columns = gridColumns()
		}
		displayDeck(out, d, columns)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(showCmd)

	showCmd.Flags().IntVar(&showColumns, "columns", 0, "Cards per row (default: fit the terminal)")
}

// gridColumns fits the grid to the terminal, one suit per row when there is room
func gridColumns() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return maxColumns
	}
	return max(1, min(maxColumns, (width-labelWidth)/cellWidth))
}

func displayDeck(w io.Writer, d deck.Deck, columns int) {
	cards := d.Cards()
	for start := 0; start < len(cards); start += columns {
		end := min(start+columns, len(cards))

		var row strings.Builder
		row.WriteString(dimText.Sprintf("%3d  ", start+1))
		for _, c := range cards[start:end] {
			row.WriteString(cardStyle(c).Sprintf("%-3s", c.Code()))
			row.WriteString(" ")
		}
		fmt.Fprintln(w, strings.TrimRight(row.String(), " "))
	}
}

func cardStyle(c card.Card) *color.Color {
	switch {
	case c.IsJoker():
		return jokerCard
	case c.Suit().Red():
		return redCard
	default:
		return blackCard
	}
}
