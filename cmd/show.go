package cmd

import (
	"fmt"
	"image"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/arcanaland/cardglyph/internal/glyph"
	"github.com/arcanaland/cardglyph/internal/imageio"
	"github.com/arcanaland/cardglyph/internal/preview"
	"github.com/arcanaland/cardglyph/internal/recognizer"
)

var showCmd = &cobra.Command{
	Use:   "show [image]",
	Short: "Display the glyph extracted from one table slot with ANSI art",
	Long: `Show extracts the rank or suit glyph of one table slot, renders it as ANSI
terminal art and prints how it matched against the glyph library.

Examples:
  cardglyph show table1.png
  cardglyph show --slot 3 --kind suit table1.png
  cardglyph show --mask --slot 1 table1.png`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		slot, _ := cmd.Flags().GetInt("slot")
		kind, _ := cmd.Flags().GetString("kind")
		mask, _ := cmd.Flags().GetBool("mask")

		if kind != "rank" && kind != "suit" {
			return fmt.Errorf("--kind must be rank or suit, got %q", kind)
		}

		r, err := loadRecognizer(cmd)
		if err != nil {
			return err
		}

		if slot < 0 || slot >= r.Layout().Cards {
			return fmt.Errorf("--slot must be between 0 and %d", r.Layout().Cards-1)
		}

		grid, err := imageio.Load(args[0])
		if err != nil {
			return err
		}

		var m recognizer.SlotMatch
		var anchor image.Point
		lib := r.Ranks()
		if kind == "rank" {
			m = r.RankAt(grid, slot)
			anchor = r.Layout().RankAnchor(slot)
		} else {
			m = r.SuitAt(grid, slot)
			anchor = r.Layout().SuitAnchor(slot)
			lib = r.Suits()
		}
		dx, dy := glyph.Trim(grid, anchor.X, anchor.Y)

		art := preview.ANSI(m.Window, 1)
		if mask {
			art = preview.Mask(m.Window)
		}

		var infoLines []string
		infoLines = append(infoLines, color.CyanString("Image:  ")+color.HiWhiteString("%s", args[0]))
		infoLines = append(infoLines, color.CyanString("Slot:   ")+color.HiWhiteString("%d (%s)", slot, kind))
		infoLines = append(infoLines, color.CyanString("Anchor: ")+color.HiWhiteString("(%d,%d) trimmed by (%d,%d)", anchor.X, anchor.Y, dx, dy))
		if m.Label == "" {
			infoLines = append(infoLines, color.CyanString("Match:  ")+color.RedString("none under %d", r.Layout().Threshold))
		} else {
			infoLines = append(infoLines, color.CyanString("Match:  ")+color.HiGreenString("%s", m.Label)+
				color.HiWhiteString(" at distance %d", m.Distance))
		}

		infoLines = append(infoLines, "", color.CyanString("Distances:"))
		for _, g := range lib.Glyphs() {
			infoLines = append(infoLines, fmt.Sprintf("  %-3s %d", g.Label, glyph.Distance(&m.Window, &g.Window)))
		}

		displayGlyph(cmd.OutOrStdout(), art, infoLines)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(showCmd)

	showCmd.Flags().StringP("samples", "s", "", "Directory of labeled sample screenshots")
	showCmd.Flags().IntP("slot", "n", 0, "Table slot to extract (0-4)")
	showCmd.Flags().StringP("kind", "k", "rank", "Glyph to extract: rank or suit")
	showCmd.Flags().Bool("mask", false, "Show the background/ink classification instead of colours")
}

// displayGlyph prints the art on the left and the info lines on the right
func displayGlyph(out io.Writer, art string, infoLines []string) {
	artLines := strings.Split(strings.TrimRight(art, "\n"), "\n")
	maxArtWidth := 0
	for _, line := range artLines {
		if w := len([]rune(preview.StripANSI(line))); w > maxArtWidth {
			maxArtWidth = w
		}
	}

	// Get terminal width
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		width = 80
	}

	spacing := 4
	infoStartCol := maxArtWidth + spacing
	sideBySide := infoStartCol+20 <= width

	fmt.Fprintln(out)
	if !sideBySide {
		for _, line := range artLines {
			fmt.Fprintln(out, "  "+line)
		}
		fmt.Fprintln(out)
		for _, line := range infoLines {
			fmt.Fprintln(out, "  "+line)
		}
		fmt.Fprintln(out)
		return
	}

	maxLines := max(len(artLines), len(infoLines))
	for i := 0; i < maxLines; i++ {
		fmt.Fprint(out, "  ")
		if i < len(artLines) {
			fmt.Fprint(out, artLines[i])
			visibleWidth := len([]rune(preview.StripANSI(artLines[i])))
			fmt.Fprint(out, strings.Repeat(" ", infoStartCol-visibleWidth))
		} else {
			fmt.Fprint(out, strings.Repeat(" ", infoStartCol))
		}

		if i < len(infoLines) {
			fmt.Fprint(out, infoLines[i])
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintln(out)
}
