package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = "responseclean.yaml"

// ErrInvalidVariant is returned for a coding variant outside ValidVariants.
var ErrInvalidVariant = errors.New("invalid variant")

// Config holds all responseclean configuration.
type Config struct {
	Data     DataConfig     `yaml:"data"`
	Columns  ColumnsConfig  `yaml:"columns"`
	Labeling LabelingConfig `yaml:"labeling"`
	Coding   CodingConfig   `yaml:"coding"`
	Cleaning CleaningConfig `yaml:"cleaning"`
	Rename   RenameConfig   `yaml:"rename"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DataConfig locates the dataset and describes how it is encoded.
type DataConfig struct {
	Input         string   `yaml:"input"`
	Output        string   `yaml:"output"`
	Delimiter     string   `yaml:"delimiter"`
	MissingValues []string `yaml:"missing_values"`
}

// ColumnsConfig names the columns the cleaning passes read and write.
type ColumnsConfig struct {
	ScenarioOrder string `yaml:"scenario_order"`
	Scenario      string `yaml:"scenario"`
	Text          string `yaml:"text"`     // free-text answer that gets coded
	Response      string `yaml:"response"` // short answer, "N_A" when unusable
	Gender        string `yaml:"gender"`
	Proximal      string `yaml:"proximal"`
	Distal        string `yaml:"distal"`
	Direct        string `yaml:"direct"`
	Absent        string `yaml:"absent"`
}

// LabelingConfig configures scenario labelling.
type LabelingConfig struct {
	BlockSize int  `yaml:"block_size"`
	Strict    bool `yaml:"strict"`
}

// CodingConfig configures response coding.
type CodingConfig struct {
	Variant       Variant `yaml:"variant"`
	VariantMarker string  `yaml:"variant_marker"`
}

// CleaningConfig configures the fill and report passes.
type CleaningConfig struct {
	FillValue     string `yaml:"fill_value"`
	ReportMissing bool   `yaml:"report_missing"`
}

// RenameConfig configures the file renamer.
type RenameConfig struct {
	Dir string `yaml:"dir"`
	Tag string `yaml:"tag"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console, json
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Input:         "data/exp2_child.csv",
			Output:        "data/exp2_child_clean.csv",
			Delimiter:     ",",
			MissingValues: DefaultMissingValues(),
		},
		Columns: ColumnsConfig{
			ScenarioOrder: "scenario_order",
			Scenario:      "scenario",
			Text:          "full_response",
			Response:      "response",
			Gender:        "gender_order",
			Proximal:      "proximal",
			Distal:        "distal",
			Direct:        "direct",
			Absent:        "absent",
		},
		Labeling: LabelingConfig{
			BlockSize: 6,
			Strict:    true,
		},
		Coding: CodingConfig{
			Variant:       VariantAuto,
			VariantMarker: "exp2",
		},
		Cleaning: CleaningConfig{
			FillValue: "0",
		},
		Rename: RenameConfig{
			Tag: "exp2",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// DefaultMissingValues returns the tokens read as a missing cell. They match
// what pandas treats as NA by default; "N_A" is deliberately absent.
func DefaultMissingValues() []string {
	return []string{
		"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
		"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None",
		"n/a", "nan", "null",
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Defaults plus environment when no file exists
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("RESPONSECLEAN_VARIANT"); v != "" {
		c.Coding.Variant = Variant(strings.ToLower(v))
	}
	if v := os.Getenv("RESPONSECLEAN_INPUT"); v != "" {
		c.Data.Input = v
	}
	if v := os.Getenv("RESPONSECLEAN_OUTPUT"); v != "" {
		c.Data.Output = v
	}
	if v := os.Getenv("RESPONSECLEAN_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Coding.Variant.Validate(); err != nil {
		return err
	}
	if c.Coding.Variant == VariantAuto && c.Coding.VariantMarker == "" {
		return fmt.Errorf("coding.variant_marker is required when variant is %q", VariantAuto)
	}
	if c.Labeling.BlockSize < 2 || c.Labeling.BlockSize%2 != 0 {
		return fmt.Errorf("labeling.block_size must be an even number >= 2, got %d", c.Labeling.BlockSize)
	}
	if _, err := c.Comma(); err != nil {
		return err
	}
	if c.Rename.Tag == "" {
		return fmt.Errorf("rename.tag must not be empty")
	}
	return nil
}

// Comma returns the configured CSV delimiter as a rune.
func (c *Config) Comma() (rune, error) {
	if c.Data.Delimiter == "" {
		return ',', nil
	}
	r := []rune(c.Data.Delimiter)
	if len(r) != 1 || r[0] == '"' || r[0] == '\n' || r[0] == '\r' {
		return 0, fmt.Errorf("data.delimiter must be a single character other than quote or newline, got %q", c.Data.Delimiter)
	}
	return r[0], nil
}
