package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/arcanaland/pontifex/internal/solitaire"
)

// keyFlags are the key source flags shared by encrypt and decrypt
type keyFlags struct {
	key        string
	passphrase string
	ask        bool
	in         string
	copy       bool
}

func (f *keyFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.key, "key", "k", "", "Key name from your keyring or path to a key file")
	cmd.Flags().StringVarP(&f.passphrase, "passphrase", "p", "", "Key the deck from a passphrase")
	cmd.Flags().BoolVar(&f.ask, "ask", false, "Prompt for the passphrase without echoing it")
	cmd.Flags().StringVarP(&f.in, "in", "i", "", "Read the message from a file")
	cmd.Flags().BoolVarP(&f.copy, "copy", "c", false, "Also copy the result to the clipboard")
}

// cipher builds a cipher from the key flags, falling back to the default key.
// Conflicting sources are passed through so the cipher rejects them.
func (f *keyFlags) cipher(cmd *cobra.Command) (*solitaire.Cipher, error) {
	opts := []solitaire.Option{solitaire.WithLogger(logger)}

	keyName := f.key
	hasPassphrase := cmd.Flags().Changed("passphrase") || f.ask
	if keyName == "" && !hasPassphrase && cfg != nil {
		keyName = cfg.DefaultKey
	}

	if keyName != "" {
		kf, err := openKeyring().Load(keyName)
		if err != nil {
			return nil, err
		}
		material, err := kf.Material()
		if err != nil {
			return nil, fmt.Errorf("error reading key %s: %w", keyName, err)
		}
		logger.Debug().Str("key", kf.Key.Name).Str("source", kf.Key.Source).Msg("Using stored key")
		opts = append(opts, solitaire.WithKey(material))
	}

	if cmd.Flags().Changed("passphrase") {
		opts = append(opts, solitaire.WithPassphrase(f.passphrase))
	}
	if f.ask {
		passphrase, err := askPassphrase(cmd)
		if err != nil {
			return nil, err
		}
		opts = append(opts, solitaire.WithPassphrase(passphrase))
	}

	c, err := solitaire.New(opts...)
	if errors.Is(err, solitaire.ErrInvalidConfiguration) && len(opts) == 1 {
		return nil, fmt.Errorf("%w: use --key, --passphrase or --ask, or set a default key with 'pontifex key set-default'", err)
	}
	return c, err
}

func askPassphrase(cmd *cobra.Command) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("--ask needs an interactive terminal")
	}
	fmt.Fprint(cmd.ErrOrStderr(), "Passphrase: ")
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("error reading passphrase: %w", err)
	}
	return string(b), nil
}

// readMessage returns the message from the arguments, the --in file or stdin, in that order.
func (f *keyFlags) readMessage(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		if f.in != "" {
			return "", errors.New("give the message as arguments or with --in, not both")
		}
		return strings.Join(args, " "), nil
	}

	var r io.Reader = cmd.InOrStdin()
	if f.in != "" {
		file, err := os.Open(f.in)
		if err != nil {
			return "", fmt.Errorf("error opening message: %w", err)
		}
		defer file.Close()
		r = file
	}

	b, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("error reading message: %w", err)
	}
	return string(b), nil
}

func (f *keyFlags) output(cmd *cobra.Command, result string) error {
	fmt.Fprintln(cmd.OutOrStdout(), result)
	if !f.copy {
		return nil
	}
	if err := clipboard.WriteAll(result); err != nil {
		return fmt.Errorf("error copying to clipboard: %w", err)
	}
	logger.Info().Msg("Copied to clipboard")
	return nil
}
