package cmd

import (
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/arcanaland/pontifex/internal/config"
	"github.com/arcanaland/pontifex/internal/keyring"
	"github.com/arcanaland/pontifex/internal/logging"
)

var (
	cfg    *config.Config
	logger *zerolog.Logger

	logLevelFlag  string
	logOutputFlag string
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "pontifex",
	Short: "Encrypt and decrypt messages with the Solitaire card cipher",
	Long: `Pontifex implements Bruce Schneier's Solitaire cipher, a keystream cipher
driven by a deck of 52 playing cards and two jokers.

Keys are deck orderings. They can be derived from a passphrase, generated,
or typed in from a physically shuffled deck, and stored in your keyring
(XDG_DATA_HOME/pontifex/keys).

Solitaire is a pencil-and-paper cipher; do not rely on it for real secrets.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.LoadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			loaded.LogLevel = logLevelFlag
		}
		if cmd.Flags().Changed("log-output") {
			loaded.LogOutput = logOutputFlag
		}

		l, err := logging.Provide(logging.Config{LogLevel: loaded.LogLevel, LogOutput: loaded.LogOutput})
		if err != nil {
			return err
		}
		cfg, logger = loaded, l
		logger.Debug().Str("command", cmd.CommandPath()).Msg("Starting")
		return nil
	},
}

func init() {
	RootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level (debug, info, warn, error)")
	RootCmd.PersistentFlags().StringVar(&logOutputFlag, "log-output", "", "Log format (console, stderr, json)")

	RootCmd.AddCommand(validateCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	cmd, err := RootCmd.ExecuteC()
	if err != nil && logger != nil {
		logger.Debug().Err(err).Str("command", cmd.CommandPath()).Msg("Command failed")
	}
	return err
}

func openKeyring() *keyring.Keyring {
	return keyring.New(config.GetKeyringPath(), clockwork.NewRealClock())
}
