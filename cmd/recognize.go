package cmd

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/cardglyph/internal/config"
	"github.com/arcanaland/cardglyph/internal/imageio"
	"github.com/arcanaland/cardglyph/internal/recognizer"
)

// recognizeCmd represents the recognize command
var recognizeCmd = &cobra.Command{
	Use:   "recognize [dir]",
	Short: "Recognize the cards in every screenshot of a directory",
	Long: `Recognize prints one line per screenshot in the form "<file> - <cards>", where
<cards> concatenates the rank and suit of each of the five table slots, e.g.
"table1.png - AsKhQdJc10s". Unrecognized glyphs contribute nothing to the line.

If no directory is given, input_dir from the config file is used. With --check the
file names are treated as the expected hands and mismatches are reported.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		inputDir := cfg.InputDir
		if len(args) == 1 {
			inputDir = args[0]
		}
		if inputDir == "" {
			return errors.New("no input directory given and input_dir is not configured")
		}

		paths, err := imageio.List(inputDir)
		if err != nil {
			return err
		}

		r, err := loadRecognizer(cmd)
		if err != nil {
			return err
		}

		check, _ := cmd.Flags().GetBool("check")
		out := cmd.OutOrStdout()
		if !check {
			return r.RecognizeDir(inputDir, out)
		}

		var mismatches []recognizer.Result
		err = r.RecognizeAll(paths, func(res recognizer.Result) error {
			if !res.Matches() {
				mismatches = append(mismatches, res)
			}
			_, err := fmt.Fprintln(out, res.String())
			return err
		})
		if err != nil {
			return err
		}

		errOut := cmd.ErrOrStderr()
		if len(mismatches) == 0 {
			color.New(color.FgGreen).Fprintf(errOut, "✅ All %d screenshots match their file names.\n", len(paths))
			return nil
		}

		color.New(color.FgRed).Fprintf(errOut, "❌ %d of %d screenshots do not match their file names:\n",
			len(mismatches), len(paths))
		for i, res := range mismatches {
			fmt.Fprintf(errOut, "%d. %s: got %q, want %q\n", i+1, res.Name, res.Hand.String(), res.Expected())
		}
		return fmt.Errorf("check failed")
	},
}

func init() {
	RootCmd.AddCommand(recognizeCmd)

	recognizeCmd.Flags().StringP("samples", "s", "", "Directory of labeled sample screenshots")
	recognizeCmd.Flags().Bool("check", false, "Compare each result with the hand encoded in its file name")
}
