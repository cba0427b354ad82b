// Package config loads the chart settings shared by the CLI and the viewer.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/oxygen/api-performance-counters-ui/src/charts"
	"github.com/oxygen/api-performance-counters-ui/src/logging"
	"github.com/oxygen/api-performance-counters-ui/src/widget"
)

// Config is the YAML settings file. Keys left out keep their defaults.
type Config struct {
	Language             string   `yaml:"language"`
	FontSize             int      `yaml:"fontSize"`
	FontColor            string   `yaml:"fontColor"`
	IgnoredFunctionNames []string `yaml:"ignoredFunctionNames"`
	Palette              string   `yaml:"palette"`
	Compact              bool     `yaml:"compact"`
	Animations           bool     `yaml:"animations"`
	Width                int      `yaml:"width"`
	LogLevel             string   `yaml:"logLevel"`
	// Texts adds or overrides translations by language code.
	Texts map[string]charts.Texts `yaml:"texts"`
}

// Default returns the settings of a widget created without options.
func Default() Config {
	ignored := make([]string, len(widget.DefaultIgnoredFunctionNames))
	copy(ignored, widget.DefaultIgnoredFunctionNames)
	return Config{
		Language:             charts.DefaultLanguage,
		FontSize:             widget.DefaultFontSize,
		FontColor:            widget.DefaultFontColor,
		IgnoredFunctionNames: ignored,
		Palette:              charts.DefaultScheme,
		Width:                900,
		LogLevel:             "info",
	}
}

// Load reads path over the defaults. An empty path returns Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.FontSize <= 0 {
		errs = append(errs, fmt.Errorf("fontSize must be positive, got %d", c.FontSize))
	}
	if _, err := charts.ParseColor(c.FontColor); err != nil {
		errs = append(errs, fmt.Errorf("fontColor: %w", err))
	}
	if _, err := charts.NewPalette(c.Palette); err != nil {
		errs = append(errs, fmt.Errorf("palette: %w", err))
	}
	if c.Width < 0 {
		errs = append(errs, fmt.Errorf("width must not be negative, got %d", c.Width))
	}
	if _, ok := logging.ParseLevel(c.LogLevel); !ok {
		errs = append(errs, fmt.Errorf("unknown logLevel %q", c.LogLevel))
	}
	return errors.Join(errs...)
}

// Apply registers configured translations and sets the log level.
func (c Config) Apply() {
	for code, t := range c.Texts {
		charts.RegisterTexts(code, t)
	}
	if !logging.SetLogLevel(c.LogLevel) {
		logging.Warnf("unknown log level %q; keeping %s", c.LogLevel, logging.GetLogLevel())
	}
}

// WidgetOptions converts the settings into widget options.
func (c Config) WidgetOptions() ([]widget.Option, error) {
	p, err := charts.NewPalette(c.Palette)
	if err != nil {
		return nil, err
	}
	return []widget.Option{
		widget.WithLanguage(c.Language),
		widget.WithFontSize(c.FontSize),
		widget.WithFontColor(c.FontColor),
		widget.WithIgnoredFunctionNames(c.IgnoredFunctionNames),
		widget.WithPalette(p),
		widget.WithCompact(c.Compact),
	}, nil
}
