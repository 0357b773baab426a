package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcanaland/cardglyph/internal/config"
	"github.com/arcanaland/cardglyph/internal/imageio"
	"github.com/arcanaland/cardglyph/internal/log"
	"github.com/arcanaland/cardglyph/internal/recognizer"
	"github.com/arcanaland/cardglyph/internal/samples"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "cardglyph",
	Short: "Read card ranks and suits from poker table screenshots",
	Long: `Cardglyph recognizes the rank and suit glyphs of up to five cards in fixed-layout
poker table screenshots by comparing them with reference glyphs cut from labeled samples.

Sample files are named <rank><suit><anything>.<ext>, e.g. "Kh3.png" or "10s.png".`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		config.SetConfigFilePath(configPath)

		level, _ := cmd.Flags().GetString("log-level")
		if level == "" {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			level = cfg.LogLevel
		}
		log.Init(level)
		return nil
	},
}

func init() {
	RootCmd.PersistentFlags().String("config", "", "Path to the config file (default $XDG_CONFIG_HOME/cardglyph/config.toml)")
	RootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	RootCmd.AddCommand(validateCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}

// sampleDir returns the --samples flag or the configured sample directory
func sampleDir(cmd *cobra.Command, cfg *config.Config) string {
	if dir, _ := cmd.Flags().GetString("samples"); dir != "" {
		return dir
	}
	return cfg.SampleDir
}

// loadRecognizer builds the glyph libraries once for the whole command
func loadRecognizer(cmd *cobra.Command) (*recognizer.Recognizer, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	dir := sampleDir(cmd, cfg)
	set, err := samples.Scan(dir, cfg.Layout.LabelSource())
	if err != nil {
		return nil, fmt.Errorf("error loading samples: %w", err)
	}

	r, err := recognizer.FromSamples(set, cfg.Layout, imageio.Load)
	if err != nil {
		return nil, err
	}

	log.Info("glyph libraries ready", "samples", dir,
		"ranks", r.Ranks().Len(), "suits", r.Suits().Len())
	return r, nil
}
