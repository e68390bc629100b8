/*
PURPOSE:
  Defines the configuration structure and loading logic for ei-reports.
  Adheres to "Config IS Code" philosophy.

REQUIREMENTS:
  User-specified:
  - Two primary parameters: the input workbook and the output folder.

  Implementation-discovered:
  - Needs to support YAML parsing.
  - Needs to support Environment variables overrides (EIREPORT_...), applied after the file.
  - The temporary chart folder must be explicit so it can be handed to the batch driver.

ARCHITECTURE INTEGRATION:
  - Used by: internal/cli, internal/engine
  - Dependencies: gopkg.in/yaml.v3, github.com/kelseyhightower/envconfig,
    github.com/go-playground/validator/v10

ERROR HANDLING:
  - Returns explicit error if config file is invalid.
  - Missing default files fall back to defaults; a missing explicit file is an error.

IMPLEMENTATION RULES:
  - Config struct tags must cover yaml, envconfig and validate.
  - Defaults: ei_assessment_data.xlsx -> reports_from_excel/.

USAGE:
  cfg, err := config.Load("ei_reports.yaml")

SELF-HEALING INSTRUCTIONS:
  - If new fields are needed, add to Config struct and update DefaultConfig().

RELATED FILES:
  - internal/cli/root.go

MAINTENANCE:
  - Update when adding new tuning parameters.
*/

package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment overrides, e.g. EIREPORT_OUTPUT_DIR.
const EnvPrefix = "EIREPORT"

// DefaultFiles are searched in order when no config path is given.
var DefaultFiles = []string{"ei_reports.yaml", "reports.yaml"}

// Config represents the full configuration for ei-reports.
type Config struct {
	InputFile string `yaml:"input_file" envconfig:"INPUT_FILE" validate:"required"`
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR" validate:"required"`
	// ChartDir holds transient chart images; removed at the end of a run when empty.
	ChartDir    string `yaml:"chart_dir" envconfig:"CHART_DIR" validate:"required"`
	Sheet       string `yaml:"sheet" envconfig:"SHEET"`
	PreviewFile string `yaml:"preview_file" envconfig:"PREVIEW_FILE" validate:"required"`
	// Manifest controls the report_manifest.csv / .jsonl files in OutputDir.
	Manifest    bool   `yaml:"manifest" envconfig:"MANIFEST"`
	MetricsFile string `yaml:"metrics_file" envconfig:"METRICS_FILE"`
	LogLevel    string `yaml:"log_level" envconfig:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	LogFormat   string `yaml:"log_format" envconfig:"LOG_FORMAT" validate:"oneof=text json"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		InputFile:   "ei_assessment_data.xlsx",
		OutputDir:   "reports_from_excel",
		ChartDir:    "temp_charts",
		PreviewFile: "data_preview.png",
		Manifest:    true,
		LogLevel:    "info",
		LogFormat:   "text",
	}
}

// Load reads configuration from a file.
// If path is specified, it attempts to load that file.
// If path is empty, it searches DefaultFiles in order.
// Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	var data []byte
	var err error

	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		for _, name := range DefaultFiles {
			data, err = os.ReadFile(name)
			if err == nil {
				path = name
				break
			}
		}
	}

	if path != "" {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to apply %s_* environment: %w", EnvPrefix, err)
	}

	return cfg, nil
}

// Validate checks the configuration after flag overrides have been applied.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
