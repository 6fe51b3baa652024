package cmd

import (
	"fmt"
	"os"

	"github.com/arcanaland/whogoesfirst/internal/validator"
	"github.com/spf13/cobra"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [catalog.toml]",
	Short: "Validate a catalog definition file",
	Long: `Validate checks that a catalog definition can be served: every card has an
English name, only declared languages are used, and no two cards share a URL.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalogPath := args[0]
		out := cmd.OutOrStdout()

		// Check if path exists
		if _, err := os.Stat(catalogPath); os.IsNotExist(err) {
			return fmt.Errorf("catalog definition not found: %s", catalogPath)
		}

		// Create validator and run validation
		v := validator.NewValidator(catalogPath)
		results, err := v.Validate()
		if err != nil {
			return fmt.Errorf("validation error: %v", err)
		}

		// Display validation results
		fmt.Fprintln(out, "Validation Results:")
		fmt.Fprintln(out, "-------------------")

		if len(results.Errors) == 0 {
			fmt.Fprintf(out, "✅ Catalog '%s' is valid.\n", catalogPath)
		} else {
			fmt.Fprintf(out, "❌ Catalog '%s' has %d validation errors:\n", catalogPath, len(results.Errors))
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
