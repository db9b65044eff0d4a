package cmd

import (
	"github.com/spf13/cobra"
)

var decryptFlags keyFlags

// decryptCmd represents the decrypt command
var decryptCmd = &cobra.Command{
	Use:     "decrypt [ciphertext...]",
	Aliases: []string{"dec"},
	Short:   "Decrypt a message",
	Long: `Decrypt turns ciphertext back into plaintext, in groups of five letters.

Spaces and punctuation in the ciphertext are ignored, but the number of letters
must be a multiple of five. Padding added on encryption is not removed.

Examples:
  pontifex decrypt --key field "KAUIV UFWOJ"
  pontifex decrypt --ask --in ciphertext.txt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ciphertext, err := decryptFlags.readMessage(cmd, args)
		if err != nil {
			return err
		}

		c, err := decryptFlags.cipher(cmd)
		if err != nil {
			return err
		}

		plaintext, err := c.Decode(ciphertext)
		if err != nil {
			return err
		}

		return decryptFlags.output(cmd, plaintext)
	},
}

func init() {
	RootCmd.AddCommand(decryptCmd)
	decryptFlags.register(decryptCmd)
}
