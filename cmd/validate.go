package cmd

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/pontifex/internal/validator"
)

var errValidationFailed = errors.New("validation failed")

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [key_name|path]",
	Short: "Validate a key file",
	Long: `Validate checks that a key file holds a complete deck of 54 distinct cards
and the metadata pontifex expects. Problems that make the key unusable are
reported as errors; anything else worth knowing is reported as a warning.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		keyPath, err := openKeyring().Resolve(args[0])
		if err != nil {
			return err
		}

		results, err := validator.NewValidator(keyPath).Validate()
		if err != nil {
			return fmt.Errorf("validation error: %w", err)
		}

		out := cmd.OutOrStdout()
		red := color.New(color.FgRed).SprintFunc()
		green := color.New(color.FgGreen).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()

		fmt.Fprintln(out, "Validation Results:")
		fmt.Fprintln(out, "-------------------")

		if len(results.Errors) == 0 {
			fmt.Fprintf(out, "%s Key '%s' is valid.\n", green("✓"), keyPath)
		} else {
			fmt.Fprintf(out, "%s Key '%s' has %d validation errors:\n", red("✗"), keyPath, len(results.Errors))
			for i, err := range results.Errors {
				fmt.Fprintf(out, "%d. %s\n", i+1, err)
			}
		}

		if len(results.Warnings) > 0 {
			fmt.Fprintln(out, "\n"+yellow("Warnings:"))
			for i, warn := range results.Warnings {
				fmt.Fprintf(out, "%d. %s\n", i+1, warn)
			}
		}

		if len(results.Errors) > 0 {
			return errValidationFailed
		}
		return nil
	},
}
