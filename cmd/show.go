package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/arcanaland/whogoesfirst/internal/deck"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the card currently on top of the deck",
	Long: `Show reconciles the saved deck with the current catalog and displays the
card on top without drawing a new one.

Examples:
  whogoesfirst show --root https://whogoesfirst.example.com
  whogoesfirst show --lang fr --history`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, d, slot, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer slot.Close()

		history, _ := cmd.Flags().GetBool("history")
		displayCard(cmd.OutOrStdout(), d, history)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(showCmd)

	showCmd.Flags().Bool("history", false, "Also list the cards already drawn in this lap")
}

// displayCard prints the card on top of the deck
func displayCard(w io.Writer, d *deck.Deck, history bool) {
	target := d.Current()
	width := terminalWidth()

	var infoLines []string
	if target.Title {
		infoLines = append(infoLines, colorize.CyanString("Card: ")+colorize.HiWhiteString("(title)"))
	} else {
		infoLines = append(infoLines, colorize.CyanString("Card: ")+colorize.HiWhiteString("%s", target.ID))
	}

	for i, line := range wrapText(target.String(), width-6) {
		label := "      "
		if i == 0 {
			label = "URL:  "
		}
		infoLines = append(infoLines, colorize.CyanString("%s", label)+colorize.HiWhiteString("%s", line))
	}

	infoLines = append(infoLines, colorize.CyanString("Lang: ")+localeLine(target))
	infoLines = append(infoLines, colorize.CyanString("Deck: ")+
		colorize.HiWhiteString("%s · %d left", positionLabel(d), d.Remaining()))

	for _, line := range infoLines {
		fmt.Fprintln(w, line)
	}

	if history && d.Position >= 0 {
		fmt.Fprintln(w, colorize.CyanString("%s", strings.Repeat("─", min(width, 40))))
		for i := d.Position; i >= 0; i-- {
			id := d.Order[i]
			fmt.Fprintf(w, "%3d. %s\n", i+1, id)
		}
	}
}

// localeLine describes the locale a card is served in
func localeLine(target deck.Target) string {
	if target.Override {
		return colorize.YellowString("%s (not available in %s)", target.Locale, target.Preferred)
	}
	return colorize.HiWhiteString("%s", target.Locale)
}

// positionLabel formats the deck position for display
func positionLabel(d *deck.Deck) string {
	if d.Position < 0 {
		return fmt.Sprintf("not started, %d cards", d.Len())
	}
	return fmt.Sprintf("card %d of %d", d.Position+1, d.Len())
}

// terminalWidth returns the width of stdout, or 80 when it is not a terminal
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// wrapText breaks a URL into lines of at most width characters, splitting
// after '/'. A single segment longer than width stays on its own line.
func wrapText(text string, width int) []string {
	// Ensure width is reasonable
	if width < 10 {
		width = 40
	}

	if len(text) <= width {
		return []string{text}
	}

	var result []string
	var currentLine string
	for _, part := range strings.SplitAfter(text, "/") {
		if part == "" {
			continue
		}
		if currentLine != "" && len(currentLine)+len(part) > width {
			result = append(result, currentLine)
			currentLine = ""
		}
		currentLine += part
	}

	if currentLine != "" {
		result = append(result, currentLine)
	}

	return result
}
