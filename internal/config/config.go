package config

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fwessels/clex/internal/errors"
	"github.com/fwessels/clex/internal/logger"
	"github.com/fwessels/clex/internal/preprocessor"
)

// Output formats
const (
	FormatTable   = "table"
	FormatSummary = "summary"
	FormatSource  = "source"
	FormatNone    = "none"
)

// Config is the clex configuration file.
type Config struct {
	// Keywords is the path of the keyword list.
	Keywords string `yaml:"keywords"`
	// CreateKeywords writes the built-in list to Keywords when it is missing.
	CreateKeywords bool   `yaml:"create_keywords"`
	LogLevel       string `yaml:"log_level"`
	// KeepLineNumbers blanks removed lines instead of deleting them.
	KeepLineNumbers bool `yaml:"keep_line_numbers"`
	// Substitute bakes macro values into the scanned text.
	Substitute bool              `yaml:"substitute"`
	Format     string            `yaml:"format"`
	Defines    map[string]string `yaml:"defines"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Keywords:       "keywords.csv",
		CreateKeywords: true,
		LogLevel:       "info",
		Substitute:     true,
		Format:         FormatTable,
	}
}

// Load reads path on top of Default. Unknown fields are rejected.
func Load(path string, log *logger.Logger) (*Config, error) {
	if log != nil {
		log.Debug("Loading configuration", slog.String("path", path))
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.ConfigNotFound(path)
	}
	if err != nil {
		return nil, errors.ConfigParseError(path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		if errors.CodeOf(err) != "" {
			return nil, err
		}
		return nil, errors.ConfigParseError(path, err)
	}

	if log != nil {
		log.Info("Configuration loaded",
			slog.String("path", path),
			slog.Int("define_count", len(cfg.Defines)),
		)
	}
	return cfg, nil
}

// Parse decodes YAML data on top of Default and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && err != io.EOF {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, errors.Wrap(
			err,
			errors.ErrCodeConfigValidation,
			"Configuration validation failed",
			"Configuration contains invalid values",
			"Review the error details and fix the configuration file",
		)
	}
	return cfg, nil
}

// Validate checks field values.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}
	switch cfg.Format {
	case FormatTable, FormatSummary, FormatSource, FormatNone:
	default:
		return fmt.Errorf("invalid format %q (want table, summary, source or none)", cfg.Format)
	}
	if _, err := logger.ParseLevel(cfg.LogLevel); err != nil {
		return err
	}
	if cfg.Keywords == "" {
		return fmt.Errorf("keywords path is empty")
	}
	for name := range cfg.Defines {
		if !preprocessor.ValidName(name) {
			return fmt.Errorf("invalid define name %q", name)
		}
	}
	return nil
}
