package cmd

import (
	"fmt"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/whogoesfirst/internal/config"
	"github.com/arcanaland/whogoesfirst/internal/session"
)

// deckCmd represents the deck command group
var deckCmd = &cobra.Command{
	Use:   "deck",
	Short: "Manage the saved deck",
	Long:  `Commands for inspecting and managing the saved deck and its configuration.`,
}

// deckStatusCmd represents the deck status command
var deckStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the saved deck without contacting the catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		slot, err := openSlot()
		if err != nil {
			return err
		}
		defer slot.Close()

		d, ok, err := session.New(nil, slot).Saved(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if !ok {
			fmt.Fprintln(out, "No saved deck.")
			fmt.Fprintln(out, "Run 'whogoesfirst next' to deal one.")
			return nil
		}

		target := d.Current()
		fmt.Fprintln(out, colorize.CyanString("Language: ")+colorize.HiWhiteString("%s", d.PreferredLanguage))
		fmt.Fprintln(out, colorize.CyanString("Position: ")+colorize.HiWhiteString("%s", positionLabel(d)))
		fmt.Fprintln(out, colorize.CyanString("Left:     ")+colorize.HiWhiteString("%d", d.Remaining()))
		fmt.Fprintln(out, colorize.CyanString("Current:  ")+colorize.HiWhiteString("%s", target.String()))
		return nil
	},
}

// deckResetCmd represents the deck reset command
var deckResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget the saved deck so the next draw deals a fresh one",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		slot, err := openSlot()
		if err != nil {
			return err
		}
		defer slot.Close()

		if err := session.New(nil, slot).Reset(cmd.Context()); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Saved deck cleared.")
		return nil
	},
}

// deckSetLanguageCmd represents the deck set-language command
var deckSetLanguageCmd = &cobra.Command{
	Use:   "set-language [lang]",
	Short: "Set the default preferred language",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.SetPreferredLanguage(args[0]); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Preferred language set to: %s\n", args[0])
		return nil
	},
}

// deckInitCmd represents the deck init command
var deckInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		configPath := config.GetConfigFilePath()

		_, created, err := config.InitConfig()
		if err != nil {
			return err
		}

		if created {
			fmt.Fprintln(out, "Config file initialized at:", configPath)
		} else {
			fmt.Fprintln(out, "Config file already exists at:", configPath)
		}
		fmt.Fprintln(out, "Set root_path to the catalog URL before drawing cards.")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(deckCmd)
	deckCmd.AddCommand(deckStatusCmd)
	deckCmd.AddCommand(deckResetCmd)
	deckCmd.AddCommand(deckSetLanguageCmd)
	deckCmd.AddCommand(deckInitCmd)
}
