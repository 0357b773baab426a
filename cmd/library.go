package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/cardglyph/internal/config"
	"github.com/arcanaland/cardglyph/internal/glyph"
)

// libraryCmd represents the library command group
var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Inspect the glyph library built from your samples",
	Long:  `Commands for inspecting and setting up the reference glyph library.`,
}

// libraryListCmd represents the library ls command
var libraryListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List the rank and suit glyphs and the sample each one comes from",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := loadRecognizer(cmd)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		printLibrary(cmd, "Ranks", r.Ranks())
		fmt.Fprintln(out)
		printLibrary(cmd, "Suits", r.Suits())
		return nil
	},
}

func printLibrary(cmd *cobra.Command, title string, lib *glyph.Library) {
	out := cmd.OutOrStdout()
	color.New(color.FgCyan).Fprintf(out, "%s (%d):\n", title, lib.Len())
	for _, g := range lib.Glyphs() {
		fmt.Fprintf(out, "  %-3s %s\n", g.Label, filepath.Base(g.Source))
	}
}

// libraryInitCmd represents the library init command
var libraryInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the sample directory and the config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		dir := sampleDir(cmd, cfg)

		// Create the sample directory if it doesn't exist
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating sample directory: %w", err)
		}

		if dir != cfg.SampleDir {
			cfg.SampleDir = dir
			if err := config.SaveConfig(cfg); err != nil {
				return err
			}
		}

		fmt.Fprintln(out, "Sample directory initialized at:", dir)
		fmt.Fprintln(out, "Add labeled screenshots named like Kh1.png or 10s2.png to this directory.")
		fmt.Fprintln(out, "Config file initialized at:", config.GetConfigFilePath())
		return nil
	},
}

func init() {
	RootCmd.AddCommand(libraryCmd)
	libraryCmd.AddCommand(libraryListCmd)
	libraryCmd.AddCommand(libraryInitCmd)

	libraryCmd.PersistentFlags().StringP("samples", "s", "", "Directory of labeled sample screenshots")
}
