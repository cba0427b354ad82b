// apcharts renders a performance-counter snapshot headlessly.
//
// Two output formats:
//  1. png (default): one image per chart bucket written into the -out directory (callsCount.png, ...).
//  2. html: a single standalone page with all six charts, loadable in any browser without a build step.
//
// Notes:
//   - The snapshot is {"metrics": {name: record}}; a .jsonl file is read as history and its latest line wins.
//   - Settings come from the optional YAML -config file; flags given on the command line override it.
//   - -summary prints the formatted rows of every bucket instead of (or in addition to) rendering.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/oxygen/api-performance-counters-ui/src/charts"
	"github.com/oxygen/api-performance-counters-ui/src/config"
	"github.com/oxygen/api-performance-counters-ui/src/counters"
	"github.com/oxygen/api-performance-counters-ui/src/logging"
	"github.com/oxygen/api-performance-counters-ui/src/render/htmlchart"
	"github.com/oxygen/api-performance-counters-ui/src/render/pngchart"
	"github.com/oxygen/api-performance-counters-ui/src/types"
	"github.com/oxygen/api-performance-counters-ui/src/widget"
)

func main() {
	countersPath := flag.String("counters", counters.DefaultFile, "Path to the performance counters snapshot (.json or .jsonl)")
	configPath := flag.String("config", "", "Optional YAML settings file")
	format := flag.String("format", "png", "Output format (png|html)")
	out := flag.String("out", "", "Output directory for png, output file for html (default ./charts or ./charts.html)")
	lang := flag.String("lang", "", "Language of titles and units (en, ro, ro_RO.UTF-8, ...)")
	fontSize := flag.Int("font-size", 0, "Axis and legend font size")
	fontColor := flag.String("font-color", "", "Font color as #rrggbb")
	palette := flag.String("palette", "", "Color scheme: mpn65 or a ColorBrewer qualitative scheme such as cb-Set1")
	compact := flag.Bool("compact", false, "Compact sizing for small screens")
	width := flag.Int("width", 0, "Chart width in pixels")
	animations := flag.Bool("animations", false, "Enable chart animations (html only)")
	ignore := flag.String("ignore", "", "Comma separated function names to leave out (replaces the configured list)")
	logLevel := flag.String("log-level", "", "Log level (debug|info|warn|error)")
	summary := flag.Bool("summary", false, "Print the formatted rows of each chart")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("[config] %v\n", err)
		os.Exit(1)
	}
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["lang"] {
		cfg.Language = *lang
	}
	if set["font-size"] {
		cfg.FontSize = *fontSize
	}
	if set["font-color"] {
		cfg.FontColor = *fontColor
	}
	if set["palette"] {
		cfg.Palette = *palette
	}
	if set["compact"] {
		cfg.Compact = *compact
	}
	if set["width"] {
		cfg.Width = *width
	}
	if set["animations"] {
		cfg.Animations = *animations
	}
	if set["ignore"] {
		cfg.IgnoredFunctionNames = splitList(*ignore)
	}
	if set["log-level"] {
		cfg.LogLevel = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("[config] %v\n", err)
		os.Exit(1)
	}
	cfg.Apply()

	pc, err := counters.Load(*countersPath)
	if err != nil {
		fmt.Printf("[counters] %v\n", err)
		os.Exit(1)
	}
	if *summary {
		printSummary(pc, cfg)
	}

	switch strings.ToLower(*format) {
	case "png":
		dir := *out
		if dir == "" {
			dir = "charts"
		}
		err = renderPNG(pc, cfg, dir)
	case "html":
		file := *out
		if file == "" {
			file = "charts.html"
		}
		err = renderHTML(pc, cfg, file)
	default:
		err = fmt.Errorf("unknown format %q (want png or html)", *format)
	}
	if err != nil {
		fmt.Printf("[render] %v\n", err)
		os.Exit(1)
	}
}

func newWidget(backend charts.Backend, cfg config.Config) (*widget.Widget, error) {
	opts, err := cfg.WidgetOptions()
	if err != nil {
		return nil, err
	}
	return widget.New(backend, opts...), nil
}

func renderPNG(pc *types.PerformanceCounters, cfg config.Config, dir string) error {
	w, err := newWidget(pngchart.New(cfg.Width), cfg)
	if err != nil {
		return err
	}
	defer w.Destroy()
	if err := w.Update(pc, true, false); err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, p := range w.Container().Panels() {
		c, ok := p.Chart.(*pngchart.Chart)
		if !ok {
			continue
		}
		path := filepath.Join(dir, p.Bucket.String()+".png")
		if err := writePNG(path, c); err != nil {
			return err
		}
		fmt.Printf("[png] %s: %s (%s, %dpx)\n", p.Title, path, p.Mode, p.Height)
	}
	return nil
}

func writePNG(path string, c *pngchart.Chart) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := c.WritePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func renderHTML(pc *types.PerformanceCounters, cfg config.Config, file string) error {
	backend := htmlchart.New(cfg.Width)
	w, err := newWidget(backend, cfg)
	if err != nil {
		return err
	}
	defer w.Destroy()
	if err := w.Update(pc, true, cfg.Animations); err != nil {
		return err
	}
	if dir := filepath.Dir(file); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	if err := backend.Render(f, htmlchart.DefaultTitle); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("[html] %d charts: %s\n", len(backend.Live()), file)
	return nil
}

// printSummary writes one block per bucket with the labels as they are drawn.
func printSummary(pc *types.PerformanceCounters, cfg config.Config) {
	texts := charts.TextsFor(cfg.Language)
	formatted := charts.Format(pc.Metrics, cfg.IgnoredFunctionNames)
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, b := range charts.Buckets {
		rows := formatted.Get(b)
		fmt.Fprintf(tw, "== %s (%d)\n", texts.Title(b), len(rows))
		labels := charts.NewDataLabels(texts, b, cfg.FontColor)
		for _, r := range rows {
			fmt.Fprintf(tw, "  %s\t%s\n", r.Category, labels.Text(r.Value))
		}
	}
	if err := tw.Flush(); err != nil {
		logging.Warnf("summary: %v", err)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
