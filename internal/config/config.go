// Package config loads plate-locator settings from an optional YAML file
// and the environment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/ironsheep/plate-locator/internal/imaging"
	"github.com/ironsheep/plate-locator/internal/plate"
)

// LogLevelEnv overrides the configured log level when set.
const LogLevelEnv = "PLATE_LOG_LEVEL"

// Defaults for the output section.
const (
	DefaultOutputDir = "output_images"
	DefaultSuffix    = "_output"
	DefaultLineWidth = 2
	DefaultLogLevel  = "info"
)

// Config represents the application configuration loaded from YAML.
type Config struct {
	// Detection holds the pipeline tuning.
	Detection struct {
		Threshold   int     `yaml:"threshold"`
		Dilations   int     `yaml:"dilations"`
		Erosions    int     `yaml:"erosions"`
		MinAspect   float64 `yaml:"min_aspect"`
		MaxAspect   float64 `yaml:"max_aspect"`
		BoxStrategy string  `yaml:"box_strategy"`
	} `yaml:"detection"`

	// Output controls where and how annotated images are written.
	Output struct {
		// Dir receives annotated images when no output path is given.
		Dir string `yaml:"dir"`

		// Suffix is appended to the input file stem.
		Suffix string `yaml:"suffix"`

		// BoxColor is the outline colour as a hex string.
		BoxColor string `yaml:"box_color"`

		// LineWidth is the outline thickness in pixels.
		LineWidth int `yaml:"line_width"`
	} `yaml:"output"`

	// LogLevel is any level logrus can parse (debug, info, warn, ...).
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}

	p := plate.DefaultParams()
	cfg.Detection.Threshold = p.Threshold
	cfg.Detection.Dilations = p.Dilations
	cfg.Detection.Erosions = p.Erosions
	cfg.Detection.MinAspect = p.MinAspect
	cfg.Detection.MaxAspect = p.MaxAspect
	cfg.Detection.BoxStrategy = string(p.Box)

	cfg.Output.Dir = DefaultOutputDir
	cfg.Output.Suffix = DefaultSuffix
	cfg.Output.BoxColor = imaging.DefaultBoxColor
	cfg.Output.LineWidth = DefaultLineWidth

	cfg.LogLevel = DefaultLogLevel
	return cfg
}

// Load reads the YAML file at path over the defaults and applies
// environment overrides. An empty path skips the file; a path that does
// not exist is an error. Keys missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := Decode(bytes.NewReader(data), cfg); err != nil {
			return nil, err
		}
	}

	if level := os.Getenv(LogLevelEnv); level != "" {
		cfg.LogLevel = level
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode parses YAML from r into cfg. Unknown keys are rejected.
// An empty document leaves cfg unchanged.
func Decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

// Validate checks every field and names the first offending one.
func (c *Config) Validate() error {
	if _, err := c.Params(); err != nil {
		return fmt.Errorf("detection: %w", err)
	}
	if c.Output.Dir == "" {
		return errors.New("output.dir: must not be empty")
	}
	if c.Output.BoxColor != "" {
		if _, err := imaging.ParseHexColor(c.Output.BoxColor); err != nil {
			return fmt.Errorf("output.box_color: %w", err)
		}
	}
	if c.Output.LineWidth < 1 {
		return fmt.Errorf("output.line_width: must be >= 1, got %d", c.Output.LineWidth)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

// Params converts the detection section to validated plate.Params.
func (c *Config) Params() (plate.Params, error) {
	box, err := plate.ParseBoxStrategy(c.Detection.BoxStrategy)
	if err != nil {
		return plate.Params{}, err
	}
	p := plate.Params{
		Threshold: c.Detection.Threshold,
		Dilations: c.Detection.Dilations,
		Erosions:  c.Detection.Erosions,
		MinAspect: c.Detection.MinAspect,
		MaxAspect: c.Detection.MaxAspect,
		Box:       box,
	}
	if err := p.Validate(); err != nil {
		return plate.Params{}, err
	}
	return p, nil
}

// Logger builds a logger writing to stderr at the configured level.
// stdout is left alone so it can carry protocol traffic.
func (c *Config) Logger() *logrus.Logger {
	return c.loggerTo(os.Stderr)
}

func (c *Config) loggerTo(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)
	return l
}

// Save writes cfg to path as YAML.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// OutputPath returns where the annotated copy of input is written when no
// explicit path is given: <Output.Dir>/<stem><Output.Suffix>.png.
func (c *Config) OutputPath(input string) string {
	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(c.Output.Dir, stem+c.Output.Suffix+".png")
}
