package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcanaland/cardglyph/internal/config"
	"github.com/arcanaland/cardglyph/internal/validator"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [samples-dir]",
	Short: "Validate a directory of labeled sample screenshots",
	Long: `Validate checks that every sample file name carries a rank and suit label, that the
sample used for each label decodes and is large enough for the configured glyph anchors,
and reports missing or duplicated labels. Without an argument the configured sample
directory is checked.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		dir := cfg.SampleDir
		if len(args) == 1 {
			dir = args[0]
		}

		// Create validator and run validation
		v := validator.NewValidator(dir, cfg.Layout)
		results, err := v.Validate()
		if err != nil {
			return fmt.Errorf("validation error: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Validation Results:")
		fmt.Fprintln(out, "-------------------")

		if len(results.Errors) == 0 {
			fmt.Fprintf(out, "✅ Samples in '%s' are usable.\n", dir)
		} else {
			fmt.Fprintf(out, "❌ Samples in '%s' have %d validation errors:\n", dir, len(results.Errors))
			for i, err := range results.Errors {
				fmt.Fprintf(out, "%d. %s\n", i+1, err)
			}
			return fmt.Errorf("validation failed")
		}

		if len(results.Warnings) > 0 {
			fmt.Fprintln(out, "\nWarnings:")
			for i, warn := range results.Warnings {
				fmt.Fprintf(out, "%d. %s\n", i+1, warn)
			}
		}

		return nil
	},
}
