package cmd

import (
	"github.com/spf13/cobra"
)

var encryptFlags keyFlags

// encryptCmd represents the encrypt command
var encryptCmd = &cobra.Command{
	Use:     "encrypt [message...]",
	Aliases: []string{"enc"},
	Short:   "Encrypt a message",
	Long: `Encrypt turns a message into ciphertext in groups of five letters.

Only the letters A-Z of the message are kept; everything else is dropped and the
result is padded with X to a multiple of five.

If no key flag is given, the default key from your config is used.

Examples:
  pontifex encrypt --key field "Meet at dawn"
  pontifex encrypt --passphrase cryptonomicon < message.txt
  pontifex encrypt --ask --copy --in message.txt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		message, err := encryptFlags.readMessage(cmd, args)
		if err != nil {
			return err
		}

		c, err := encryptFlags.cipher(cmd)
		if err != nil {
			return err
		}

		ciphertext, err := c.Encode(message)
		if err != nil {
			return err
		}
		if ciphertext == "" {
			logger.Warn().Msg("Message has no letters, nothing to encrypt")
		}

		return encryptFlags.output(cmd, ciphertext)
	},
}

func init() {
	RootCmd.AddCommand(encryptCmd)
	encryptFlags.register(encryptCmd)
}
