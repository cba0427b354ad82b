package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/oxygen/api-performance-counters-ui/src/charts"
	"github.com/oxygen/api-performance-counters-ui/src/logging"
	"github.com/oxygen/api-performance-counters-ui/src/widget"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "apc.yaml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load empty path: %v", err)
	}
	if cfg.FontSize != widget.DefaultFontSize || cfg.Language != "en" || len(cfg.IgnoredFunctionNames) != 2 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadOverridesOnlyGivenKeys(t *testing.T) {
	p := writeFile(t, `
language: ro
fontSize: 8
compact: true
palette: cb-Set1
ignoredFunctionNames: [health.check]
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Language != "ro" || cfg.FontSize != 8 || !cfg.Compact || cfg.Palette != "cb-Set1" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.FontColor != widget.DefaultFontColor {
		t.Fatalf("fontColor default lost: %q", cfg.FontColor)
	}
	if len(cfg.IgnoredFunctionNames) != 1 || cfg.IgnoredFunctionNames[0] != "health.check" {
		t.Fatalf("ignored names: %v", cfg.IgnoredFunctionNames)
	}

	opts, err := cfg.WidgetOptions()
	if err != nil {
		t.Fatalf("widget options: %v", err)
	}
	w := widget.New(nil, opts...)
	if w.Language() != "ro" || w.FontSize() != 8 || !w.Compact() || w.Palette().Scheme() != "cb-Set1" {
		t.Fatalf("options not applied: %s %d %v %s", w.Language(), w.FontSize(), w.Compact(), w.Palette().Scheme())
	}
}

func TestLoadReportsAllErrors(t *testing.T) {
	p := writeFile(t, `
fontSize: 0
fontColor: white
palette: rainbow
logLevel: loud
`)
	_, err := Load(p)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, want := range []string{"fontSize", "fontColor", "palette", "logLevel"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q does not mention %s", err, want)
		}
	}
	if !errors.Is(err, charts.ErrUnknownScheme) {
		t.Fatalf("expected ErrUnknownScheme in %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestLoadBadYAML(t *testing.T) {
	if _, err := Load(writeFile(t, "fontSize: [")); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestApplyRegistersTexts(t *testing.T) {
	p := writeFile(t, `
logLevel: debug
texts:
  de:
    callsCount: Anzahl Aufrufe
    call: Aufruf
    calls: Aufrufe
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	defer logging.SetLogLevel("info")
	cfg.Apply()
	if logging.GetLogLevel() != logging.LevelDebug {
		t.Fatalf("log level not applied")
	}
	tx := charts.TextsFor("de-DE")
	if tx.Title(charts.CallsCount) != "Anzahl Aufrufe" || tx.Calls != "Aufrufe" {
		t.Fatalf("texts not registered: %+v", tx)
	}
}
