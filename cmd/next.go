package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// nextCmd represents the next command
var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Draw the next card and print its URL",
	Long: `Next reconciles the saved deck with the current catalog, moves to the next
card and prints its URL. After the last card the title page is shown and the
deck is reshuffled.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, slot, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer slot.Close()

		target, err := s.Next(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), target.String())
		return nil
	},
}

func init() {
	RootCmd.AddCommand(nextCmd)
}
