package config

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/arcanaland/cardglyph/internal/card"
)

// Layout describes where the table renders its card glyphs
type Layout struct {
	RankX int `toml:"rank_x"`
	RankY int `toml:"rank_y"`
	SuitX int `toml:"suit_x"`
	SuitY int `toml:"suit_y"`

	// Anchors used when extracting reference glyphs from sample images
	SampleRankX int `toml:"sample_rank_x"`
	SampleRankY int `toml:"sample_rank_y"`
	SampleSuitX int `toml:"sample_suit_x"`
	SampleSuitY int `toml:"sample_suit_y"`
	// Which card of a sample file name labels the rank and the suit glyph,
	// counted from 0. A sample named after a whole hand ("AsKh.png") whose
	// rank glyph is cut from the second card uses sample_rank_card = 1.
	SampleRankCard int `toml:"sample_rank_card"`
	SampleSuitCard int `toml:"sample_suit_card"`

	Pitch     int `toml:"pitch"`
	Cards     int `toml:"cards"`
	Threshold int `toml:"threshold"`
}

// Config represents the application configuration
type Config struct {
	SampleDir string `toml:"sample_dir"`
	InputDir  string `toml:"input_dir"`
	LogLevel  string `toml:"log_level"`
	Layout    Layout `toml:"layout"`
}

// DefaultLayout returns the geometry of the supported table rendering
func DefaultLayout() Layout {
	return Layout{
		RankX:       147,
		RankY:       591,
		SuitX:       170,
		SuitY:       639,
		SampleRankX: 147,
		SampleRankY: 591,
		SampleSuitX: 170,
		SampleSuitY: 639,
		Pitch:       71,
		Cards:       5,
		Threshold:   140,
	}
}

// RankAnchor returns the rank anchor of the given slot
func (l Layout) RankAnchor(slot int) image.Point {
	return image.Pt(l.RankX+slot*l.Pitch, l.RankY)
}

// SuitAnchor returns the suit anchor of the given slot
func (l Layout) SuitAnchor(slot int) image.Point {
	return image.Pt(l.SuitX+slot*l.Pitch, l.SuitY)
}

// SampleRankAnchor returns the anchor used for rank reference glyphs
func (l Layout) SampleRankAnchor() image.Point {
	return image.Pt(l.SampleRankX, l.SampleRankY)
}

// SampleSuitAnchor returns the anchor used for suit reference glyphs
func (l Layout) SampleSuitAnchor() image.Point {
	return image.Pt(l.SampleSuitX, l.SampleSuitY)
}

// LabelSource returns which sample file name cards supply the labels
func (l Layout) LabelSource() card.LabelSource {
	return card.LabelSource{RankCard: l.SampleRankCard, SuitCard: l.SampleSuitCard}
}

// Validate checks that the layout can be used for recognition
func (l Layout) Validate() error {
	if l.Cards < 1 || l.Cards > card.Slots {
		return fmt.Errorf("layout.cards must be between 1 and %d, got %d", card.Slots, l.Cards)
	}
	if l.Pitch < 0 {
		return fmt.Errorf("layout.pitch must not be negative, got %d", l.Pitch)
	}
	if l.Threshold < 1 {
		return fmt.Errorf("layout.threshold must be positive, got %d", l.Threshold)
	}
	if l.SampleRankCard < 0 || l.SampleRankCard >= card.Slots {
		return fmt.Errorf("layout.sample_rank_card must be between 0 and %d, got %d", card.Slots-1, l.SampleRankCard)
	}
	if l.SampleSuitCard < 0 || l.SampleSuitCard >= card.Slots {
		return fmt.Errorf("layout.sample_suit_card must be between 0 and %d, got %d", card.Slots-1, l.SampleSuitCard)
	}
	return nil
}

var configFilePath string

// GetXDGDataHome returns XDG_DATA_HOME or default path
func GetXDGDataHome() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return xdgData
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".local", "share")
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetDataDir returns the cardglyph data directory
func GetDataDir() string {
	return filepath.Join(GetXDGDataHome(), "cardglyph")
}

// GetDefaultSampleDir returns the default sample directory
func GetDefaultSampleDir() string {
	return filepath.Join(GetDataDir(), "samples")
}

// SetConfigFilePath overrides the config file location. An empty path restores the default.
func SetConfigFilePath(path string) {
	configFilePath = path
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	if configFilePath != "" {
		return configFilePath
	}
	return filepath.Join(GetXDGConfigHome(), "cardglyph", "config.toml")
}

// Default returns the config written on first use
func Default() *Config {
	return &Config{
		SampleDir: GetDefaultSampleDir(),
		LogLevel:  "info",
		Layout:    DefaultLayout(),
	}
}

// LoadConfig loads the config file
func LoadConfig() (*Config, error) {
	configPath := GetConfigFilePath()

	// Create default config if it doesn't exist
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig()
	}

	// Keys missing from the file keep their defaults
	config := Default()
	if _, err := toml.DecodeFile(configPath, config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}

	if err := config.Layout.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configPath, err)
	}

	return config, nil
}

// createDefaultConfig creates a default config file
func createDefaultConfig() (*Config, error) {
	config := Default()
	if err := SaveConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveConfig writes config to the config file
func SaveConfig(config *Config) error {
	configPath := GetConfigFilePath()

	// Ensure the config directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(config); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}

	// os.WriteFile returns close errors too
	if err := os.WriteFile(configPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}
