// Package config provides configuration management for the toolbelt binaries.
// It supports a shared YAML configuration file, environment variables, and
// sensible defaults.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mhersch/toolbelt/internal/marker"
	"github.com/mhersch/toolbelt/internal/util"
)

// Config represents the complete toolbelt configuration. Each tool reads its
// own section; the output section is shared.
type Config struct {
	// Markcat configures marker-block extraction defaults
	Markcat MarkcatConfig `yaml:"markcat"`

	// Decomment configures the comment-stripping filter
	Decomment DecommentConfig `yaml:"decomment"`

	// Hop configures the directory bookmark store
	Hop HopConfig `yaml:"hop"`

	// Output configures display preferences
	Output OutputConfig `yaml:"output"`
}

// MarkcatConfig holds marker-extraction settings.
type MarkcatConfig struct {
	// LineNumbers shows a right-aligned line-number gutter
	LineNumbers bool `yaml:"line_numbers"`
	// Filenames emits a file header before a source's first block
	Filenames bool `yaml:"filenames"`
	// MaxLineLength aborts a source whose line exceeds this many bytes (-1 = unlimited)
	MaxLineLength int `yaml:"max_line_length"`
	// TabWidth is the tab-stop width used when expanding tabs for the gutter
	TabWidth int `yaml:"tab_width"`
}

// DecommentConfig holds comment-stripping settings.
type DecommentConfig struct {
	// StylesPath points at a TOML file of additional comment styles
	StylesPath string `yaml:"styles_path,omitempty"`
	// KeepBlanks replaces stripped lines with blank lines instead of dropping them
	KeepBlanks bool `yaml:"keep_blanks"`
}

// HopConfig holds bookmark-store settings.
type HopConfig struct {
	// MarksDir is the directory holding bookmark symlinks
	MarksDir string `yaml:"marks_dir"`
}

// OutputConfig holds display preferences.
type OutputConfig struct {
	// Color controls color output (auto, always, never)
	Color string `yaml:"color"`
	// Verbose enables verbose output
	Verbose bool `yaml:"verbose"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Markcat: MarkcatConfig{
			LineNumbers:   false,
			Filenames:     false,
			MaxLineLength: marker.DefaultMaxLineLength,
			TabWidth:      8,
		},
		Decomment: DecommentConfig{
			KeepBlanks: false,
		},
		Hop: HopConfig{
			MarksDir: filepath.Join(util.DataDir(), "marks"),
		},
		Output: OutputConfig{
			Color:   "auto",
			Verbose: false,
		},
	}
}

// configFileName is the name of the config file.
const configFileName = "config.yaml"

// FilePath returns the path to the config file.
func FilePath() string {
	return filepath.Join(util.ConfigDir(), configFileName)
}

// Load loads the configuration from file, merging with defaults.
// If the config file doesn't exist, returns default configuration.
func Load() (*Config, error) {
	cfg := Default()

	configPath := FilePath()
	// #nosec G304 - configPath is constructed from trusted config directory
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// No config file, use defaults with environment overrides
			cfg.applyEnvironment()
			return cfg, nil
		}
		return nil, err
	}

	// Parse YAML over defaults
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	cfg.applyEnvironment()

	return cfg, nil
}

// LoadFromPath loads configuration from a specific path.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	// #nosec G304 - path is provided by caller
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	cfg.applyEnvironment()
	return cfg, nil
}

// Save writes the configuration to the config file.
func (c *Config) Save() error {
	configPath := FilePath()

	if err := os.MkdirAll(filepath.Dir(configPath), 0o750); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	// #nosec G306 - config file should be readable by user
	return os.WriteFile(configPath, data, 0o644)
}

// applyEnvironment applies environment variable overrides.
// Environment variables follow the pattern TOOLBELT_<SECTION>_<KEY>.
func (c *Config) applyEnvironment() {
	// Markcat settings
	if v := os.Getenv("TOOLBELT_MARKCAT_LINE_NUMBERS"); v != "" {
		c.Markcat.LineNumbers = parseBool(v)
	}
	if v := os.Getenv("TOOLBELT_MARKCAT_FILENAMES"); v != "" {
		c.Markcat.Filenames = parseBool(v)
	}
	if v := os.Getenv("TOOLBELT_MARKCAT_MAX_LINE_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && (n == -1 || n > 0) {
			c.Markcat.MaxLineLength = n
		}
	}
	if v := os.Getenv("TOOLBELT_MARKCAT_TAB_WIDTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Markcat.TabWidth = n
		}
	}

	// Decomment settings
	if v := os.Getenv("TOOLBELT_DECOMMENT_STYLES_PATH"); v != "" {
		c.Decomment.StylesPath = v
	}
	if v := os.Getenv("TOOLBELT_DECOMMENT_KEEP_BLANKS"); v != "" {
		c.Decomment.KeepBlanks = parseBool(v)
	}

	// Hop settings
	if v := os.Getenv("TOOLBELT_HOP_MARKS_DIR"); v != "" {
		c.Hop.MarksDir = v
	}

	// Output settings
	if v := os.Getenv("TOOLBELT_OUTPUT_COLOR"); v != "" {
		c.Output.Color = v
	}
	if v := os.Getenv("TOOLBELT_OUTPUT_VERBOSE"); v != "" {
		c.Output.Verbose = parseBool(v)
	}
}

// parseBool parses common boolean representations.
func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
