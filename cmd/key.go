package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arcanaland/pontifex/internal/card"
	"github.com/arcanaland/pontifex/internal/config"
	"github.com/arcanaland/pontifex/internal/keyring"
	"github.com/arcanaland/pontifex/internal/solitaire"
)

var keyNewFlags struct {
	passphrase  string
	ask         bool
	generate    bool
	cards       string
	input       bool
	description string
}

// keyCmd represents the key command group
var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage keys in your keyring",
	Long:  `Commands for managing the deck orderings stored in your keyring.`,
}

// keyListCmd represents the key ls command
var keyListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List the keys in your keyring",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		k := openKeyring()

		if !k.Exists() {
			fmt.Fprintf(out, "Keyring at %s does not exist.\n", k.Path)
			fmt.Fprintln(out, "Run 'pontifex key init' to create it.")
			return nil
		}

		entries, err := k.List()
		if err != nil {
			return err
		}

		if len(entries) == 0 {
			fmt.Fprintln(out, "No keys found in your keyring.")
			fmt.Fprintln(out, "Create one with 'pontifex key new NAME --ask'.")
			return nil
		}

		defaultSlug := strings.TrimSuffix(keyring.FileName(cfg.DefaultKey), ".toml")
		for _, entry := range entries {
			if cfg.DefaultKey != "" && entry.Slug == defaultSlug {
				fmt.Fprintf(out, "* %s (%s, %s) [DEFAULT]\n", entry.Slug, entry.File.Key.Name, entry.File.Key.Source)
			} else {
				fmt.Fprintf(out, "  %s (%s, %s)\n", entry.Slug, entry.File.Key.Name, entry.File.Key.Source)
			}
		}
		return nil
	},
}

// keySetDefaultCmd represents the key set-default command
var keySetDefaultCmd = &cobra.Command{
	Use:   "set-default [key_name]",
	Short: "Set the default key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		keyName := args[0]

		// Make sure the key loads before pointing the config at it
		kf, err := openKeyring().Load(keyName)
		if err != nil {
			return err
		}
		if _, err := kf.Deck(); err != nil {
			return fmt.Errorf("not a valid key: %w", err)
		}

		if err := config.SetDefaultKey(keyName); err != nil {
			return fmt.Errorf("error setting default key: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Default key set to: %s\n", keyName)
		return nil
	},
}

// keyInitCmd represents the key init command
var keyInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the keyring",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		k := openKeyring()
		if err := k.Init(); err != nil {
			return err
		}

		fmt.Fprintln(out, "Keyring initialized at:", k.Path)
		fmt.Fprintln(out, "Config file at:", config.GetConfigFilePath())
		return nil
	},
}

// keyNewCmd represents the key new command
var keyNewCmd = &cobra.Command{
	Use:   "new [key_name]",
	Short: "Create a key and store it in your keyring",
	Long: `New stores a deck ordering in your keyring under the given name.

The ordering comes from exactly one of:
  --passphrase TEXT   key the deck from a passphrase (the passphrase is not stored)
  --ask               same, prompting for the passphrase
  --cards "AC 2C .."  an ordering typed in from a shuffled deck, top card first
  --input             same, entered one card per line with each card checked as it is typed
  --generate          a random ordering from the computer

Examples:
  pontifex key new field --ask
  pontifex key new desk --input
  pontifex key new travel --generate --description "one-time pad for the trip"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		opts := []solitaire.Option{solitaire.WithLogger(logger)}
		var source string
		if cmd.Flags().Changed("passphrase") {
			opts = append(opts, solitaire.WithPassphrase(keyNewFlags.passphrase))
			source = keyring.SourcePassphrase
		}
		if keyNewFlags.ask {
			passphrase, err := askPassphrase(cmd)
			if err != nil {
				return err
			}
			opts = append(opts, solitaire.WithPassphrase(passphrase))
			source = keyring.SourcePassphrase
		}
		if keyNewFlags.cards != "" {
			cards, err := card.ParseAll(strings.FieldsFunc(keyNewFlags.cards, func(r rune) bool {
				return r == ' ' || r == ',' || r == '\n' || r == '\t'
			}))
			if err != nil {
				return err
			}
			opts = append(opts, solitaire.WithKey(cards))
			source = keyring.SourceExplicit
		}
		if keyNewFlags.input {
			cards, err := readCards(cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			opts = append(opts, solitaire.WithKey(cards))
			source = keyring.SourceExplicit
		}
		if keyNewFlags.generate {
			opts = append(opts, solitaire.WithGeneratedKey())
			source = keyring.SourceGenerated
		}

		c, err := solitaire.New(opts...)
		if err != nil {
			return err
		}

		k := openKeyring()
		if err := k.Init(); err != nil {
			return err
		}
		kf, err := k.Save(name, source, keyNewFlags.description, c.Key())
		if err != nil {
			return err
		}

		logger.Info().Str("id", kf.Key.ID).Str("source", source).Msg("Key saved")
		fmt.Fprintf(cmd.OutOrStdout(), "Key %s saved to %s\n", name, kf.Path)
		return nil
	},
}

// keyExportCmd represents the key export command
var keyExportCmd = &cobra.Command{
	Use:   "export [key_name]",
	Short: "Print a key's deck as card codes, top card first",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := keyArg(args)
		if err != nil {
			return err
		}

		kf, err := openKeyring().Load(name)
		if err != nil {
			return err
		}
		material, err := kf.Material()
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), material.String())
		return nil
	},
}

// keyArg returns the key named on the command line, or the default key
func keyArg(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.DefaultKey == "" {
		return "", errors.New("no key given and no default key set")
	}
	return cfg.DefaultKey, nil
}

func init() {
	RootCmd.AddCommand(keyCmd)
	keyCmd.AddCommand(keyListCmd)
	keyCmd.AddCommand(keySetDefaultCmd)
	keyCmd.AddCommand(keyInitCmd)
	keyCmd.AddCommand(keyNewCmd)
	keyCmd.AddCommand(keyExportCmd)

	keyNewCmd.Flags().StringVarP(&keyNewFlags.passphrase, "passphrase", "p", "", "Key the deck from a passphrase")
	keyNewCmd.Flags().BoolVar(&keyNewFlags.ask, "ask", false, "Prompt for the passphrase without echoing it")
	keyNewCmd.Flags().BoolVar(&keyNewFlags.generate, "generate", false, "Generate a random deck")
	keyNewCmd.Flags().StringVar(&keyNewFlags.cards, "cards", "", "Deck order as card codes, top card first")
	keyNewCmd.Flags().BoolVar(&keyNewFlags.input, "input", false, "Enter the deck order one card per line")
	keyNewCmd.Flags().StringVarP(&keyNewFlags.description, "description", "d", "", "Description stored with the key")
}
