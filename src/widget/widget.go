// Package widget hosts the six performance-counter charts. It owns one chart
// handle per bucket and recreates it on every update; there is no incremental
// update path.
package widget

import (
	"errors"
	"fmt"
	"time"

	"github.com/oxygen/api-performance-counters-ui/src/charts"
	"github.com/oxygen/api-performance-counters-ui/src/logging"
	"github.com/oxygen/api-performance-counters-ui/src/types"
)

// ErrDestroyed is returned by operations on a destroyed widget.
var ErrDestroyed = errors.New("widget destroyed")

var log = logging.For("widget")

// Defaults of a new widget (dark background).
const (
	DefaultFontColor = "#ffffff"
	DefaultFontSize  = 16
	// CompactFontSize is the suggested font size for small screens.
	CompactFontSize = 8
)

// DefaultIgnoredFunctionNames are the counter endpoints themselves.
var DefaultIgnoredFunctionNames = []string{
	"rpc.performanceCounters",
	"sql_performance_counters",
}

// panel is the resource record of one bucket.
type panel struct {
	bucket charts.Bucket
	title  string
	mode   charts.Mode
	height int
	chart  charts.Handle
}

// destroyChart tears down the live chart; the handle is dropped even when
// Destroy fails.
func (p *panel) destroyChart() error {
	if p.chart == nil {
		return nil
	}
	h := p.chart
	p.chart = nil
	if err := h.Destroy(); err != nil {
		return fmt.Errorf("destroy %s chart: %w", p.bucket, err)
	}
	return nil
}

// release disposes the panel for good.
func (p *panel) release() error {
	err := p.destroyChart()
	p.title = ""
	p.height = 0
	p.mode = ""
	return err
}

// Widget renders performance counters through a charts.Backend. Calls must
// be serialized by the owner.
type Widget struct {
	backend   charts.Backend
	language  string
	fontSize  int
	fontColor string
	ignored   []string
	compact   bool
	palette   *charts.Palette

	panels    [charts.NumBuckets]panel
	container *Container

	// resources is released in order by Destroy; nil once destroyed.
	resources []*panel
}

// Option configures a Widget.
type Option func(*Widget)

// WithLanguage sets the label language ("en", "ro", "ro-RO", ...).
func WithLanguage(code string) Option { return func(w *Widget) { w.language = code } }

// WithFontSize sets the axis and legend font size.
func WithFontSize(n int) Option { return func(w *Widget) { w.fontSize = n } }

// WithFontColor sets the axis, legend and outside-label color.
func WithFontColor(c string) Option { return func(w *Widget) { w.fontColor = c } }

// WithIgnoredFunctionNames replaces the default ignore list.
func WithIgnoredFunctionNames(names []string) Option {
	return func(w *Widget) { w.ignored = append([]string(nil), names...) }
}

// WithPalette shares a palette between widgets or selects another scheme.
func WithPalette(p *charts.Palette) Option { return func(w *Widget) { w.palette = p } }

// WithCompact uses the small-screen canvas sizing.
func WithCompact(compact bool) Option { return func(w *Widget) { w.compact = compact } }

// New creates the widget and its six (empty) panels.
func New(backend charts.Backend, opts ...Option) *Widget {
	w := &Widget{
		backend:   backend,
		language:  charts.DefaultLanguage,
		fontSize:  DefaultFontSize,
		fontColor: DefaultFontColor,
		ignored:   append([]string(nil), DefaultIgnoredFunctionNames...),
	}
	for _, o := range opts {
		o(w)
	}
	if w.palette == nil {
		w.palette = charts.DefaultPalette()
	}
	w.initPanels()
	return w
}

func (w *Widget) initPanels() {
	texts := w.Texts()
	for _, b := range charts.Buckets {
		w.panels[b] = panel{bucket: b, title: texts.Title(b)}
		w.resources = append(w.resources, &w.panels[b])
	}
	w.container = &Container{w: w}
}

// Destroyed reports whether Destroy has run.
func (w *Widget) Destroyed() bool { return w.resources == nil }

// Update renders a snapshot into all six panels. clearExisting destroys the
// current charts first; animations is passed to the backend.
func (w *Widget) Update(pc *types.PerformanceCounters, clearExisting, animations bool) error {
	if w.Destroyed() {
		return ErrDestroyed
	}
	if err := pc.Validate(); err != nil {
		return err
	}
	defer log.TimeTrack(time.Now(), "update charts")
	if clearExisting {
		w.Clear()
	}
	formatted := charts.Format(pc.Metrics, w.ignored)
	var errs []error
	for _, b := range charts.Buckets {
		if err := w.UpdateChart(b, formatted.Get(b), animations); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// UpdateChart replaces the chart of one bucket with a chart of rows.
func (w *Widget) UpdateChart(b charts.Bucket, rows []charts.Row, animations bool) error {
	if w.Destroyed() {
		return ErrDestroyed
	}
	if !b.Valid() {
		return fmt.Errorf("update chart: invalid bucket %d", int(b))
	}
	p := &w.panels[b]
	data := charts.BuildChartData(rows, w.palette)
	if err := p.destroyChart(); err != nil {
		log.Errorf("%v", err)
	}

	mode := charts.ModeFor(b, data)
	height := charts.CanvasHeight(mode, data.Rows, len(data.Datasets), w.compact)
	cfg := charts.ChartConfig{
		Name:       b.String(),
		Title:      p.title,
		Mode:       mode,
		Data:       data,
		Labels:     charts.NewDataLabels(w.Texts(), b, w.fontColor),
		FontSize:   w.fontSize,
		FontColor:  w.fontColor,
		Animations: animations,
		Height:     height,
	}
	h, err := w.backend.Create(cfg)
	if err != nil {
		p.mode = ""
		p.height = 0
		return fmt.Errorf("create %s chart: %w", b, err)
	}
	p.chart = h
	p.mode = mode
	p.height = height
	log.Debugf("%s: %d categories, %d datasets, mode=%s height=%d", b, len(data.Categories), len(data.Datasets), mode, height)
	return nil
}

// Clear destroys every live chart to free resources. Failures are logged
// and do not stop the remaining teardown.
func (w *Widget) Clear() {
	for i := range w.panels {
		if err := w.panels[i].destroyChart(); err != nil {
			log.Errorf("%v", err)
		}
	}
}

// Destroy releases all panels and detaches the container. Calling it again
// is a no-op.
func (w *Widget) Destroy() {
	if w.resources == nil {
		return
	}
	w.Clear()
	for _, r := range w.resources {
		if err := r.release(); err != nil {
			log.Errorf("%v", err)
		}
	}
	w.resources = nil
	w.container.detach()
}

// Container returns the view the consumer attaches to its page.
func (w *Widget) Container() *Container { return w.container }

// Texts returns the translation table of the current language.
func (w *Widget) Texts() charts.Texts { return charts.TextsFor(w.language) }

// Language returns the configured language code.
func (w *Widget) Language() string { return w.language }

// SetLanguage changes the label language and re-titles the panels. Charts
// pick up the new units on the next update.
func (w *Widget) SetLanguage(code string) {
	w.language = code
	if w.Destroyed() {
		return
	}
	texts := w.Texts()
	for _, b := range charts.Buckets {
		w.panels[b].title = texts.Title(b)
	}
}

func (w *Widget) FontSize() int { return w.fontSize }

func (w *Widget) SetFontSize(n int) { w.fontSize = n }

func (w *Widget) FontColor() string { return w.fontColor }

func (w *Widget) SetFontColor(c string) { w.fontColor = c }

// IgnoredFunctionNames returns a copy of the ignore list.
func (w *Widget) IgnoredFunctionNames() []string {
	return append([]string(nil), w.ignored...)
}

// SetIgnoredFunctionNames replaces the ignore list.
func (w *Widget) SetIgnoredFunctionNames(names []string) {
	w.ignored = append(w.ignored[:0], names...)
}

// Compact reports whether small-screen sizing is used.
func (w *Widget) Compact() bool { return w.compact }

func (w *Widget) SetCompact(compact bool) { w.compact = compact }

// Palette returns the palette used for chart colors.
func (w *Widget) Palette() *charts.Palette { return w.palette }
