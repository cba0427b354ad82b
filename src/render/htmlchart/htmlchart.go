// Package htmlchart builds go-echarts charts and renders them as one
// standalone HTML page.
package htmlchart

import (
	"errors"
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	apc "github.com/oxygen/api-performance-counters-ui/src/charts"
	"github.com/oxygen/api-performance-counters-ui/src/logging"
)

// ErrDestroyed is returned when a chart is used after Destroy.
var ErrDestroyed = errors.New("chart destroyed")

var log = logging.For("htmlchart")

const (
	DefaultWidth    = 900
	DefaultTitle    = "API performance counters"
	backgroundColor = "#121212"
	missing         = "-" // echarts skips "-" points
)

// echart is what both Bar and Line provide.
type echart interface {
	components.Charter
	Render(w io.Writer) error
}

// Backend keeps every live chart in creation order.
type Backend struct {
	Width int

	mu   sync.Mutex
	seq  int
	live []*Chart
}

func New(width int) *Backend {
	return &Backend{Width: width}
}

// Create builds the echarts chart for cfg and registers it as live.
func (b *Backend) Create(cfg apc.ChartConfig) (apc.Handle, error) {
	width := b.Width
	if width <= 0 {
		width = DefaultWidth
	}
	b.mu.Lock()
	b.seq++
	id := fmt.Sprintf("%s_%d", cfg.Name, b.seq)
	b.mu.Unlock()

	var ec echart
	switch cfg.Mode {
	case apc.ModeLine:
		ec = lineChart(cfg, id, width)
	case apc.ModeHorizontalBar, apc.ModeGroupedBar:
		ec = barChart(cfg, id, width)
	default:
		return nil, fmt.Errorf("chart %s: unknown mode %q", cfg.Name, cfg.Mode)
	}

	c := &Chart{backend: b, id: id, name: cfg.Name, title: cfg.Title, mode: cfg.Mode, chart: ec}
	b.mu.Lock()
	b.live = append(b.live, c)
	b.mu.Unlock()
	log.Debugf("html chart %s created (%s, %d categories)", id, cfg.Mode, len(cfg.Data.Categories))
	return c, nil
}

// Live returns the charts that have not been destroyed, oldest first.
func (b *Backend) Live() []*Chart {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]*Chart, len(b.live))
	copy(out, b.live)
	return out
}

// Page collects every live chart into one page.
func (b *Backend) Page(title string) *components.Page {
	if title == "" {
		title = DefaultTitle
	}
	page := components.NewPage()
	page.SetPageTitle(title)
	for _, c := range b.Live() {
		page.AddCharts(c.chart)
	}
	return page
}

// Render writes a standalone HTML page with every live chart.
func (b *Backend) Render(w io.Writer, title string) error {
	if err := b.Page(title).Render(w); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}

func (b *Backend) remove(c *Chart) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, l := range b.live {
		if l == c {
			b.live = append(b.live[:i], b.live[i+1:]...)
			return true
		}
	}
	return false
}

// Chart is one live echarts chart.
type Chart struct {
	backend *Backend
	id      string
	name    string
	title   string
	mode    apc.Mode
	chart   echart
}

func (c *Chart) ID() string     { return c.id }
func (c *Chart) Name() string   { return c.name }
func (c *Chart) Title() string  { return c.title }
func (c *Chart) Mode() apc.Mode { return c.mode }

// Render writes this chart alone as an HTML document.
func (c *Chart) Render(w io.Writer) error {
	if !c.Live() {
		return ErrDestroyed
	}
	return c.chart.Render(w)
}

// Live reports whether the chart is still registered with its backend.
func (c *Chart) Live() bool {
	for _, l := range c.backend.Live() {
		if l == c {
			return true
		}
	}
	return false
}

// Destroy removes the chart from its backend. A second call returns ErrDestroyed.
func (c *Chart) Destroy() error {
	if !c.backend.remove(c) {
		return ErrDestroyed
	}
	return nil
}

func globalOptions(cfg apc.ChartConfig, id string, width int) []charts.GlobalOpts {
	text := &opts.TextStyle{Color: cfg.FontColor, FontSize: cfg.FontSize}
	showLegend := len(cfg.Data.Datasets) > 1
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			ChartID:         id,
			PageTitle:       cfg.Title,
			Width:           fmt.Sprintf("%dpx", width),
			Height:          fmt.Sprintf("%dpx", cfg.Height),
			BackgroundColor: backgroundColor,
		}),
		charts.WithTitleOpts(opts.Title{Title: cfg.Title, TitleStyle: text}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(showLegend), Top: "28", TextStyle: text}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithAnimation(cfg.Animations),
	}
}

func barChart(cfg apc.ChartConfig, id string, width int) *charts.Bar {
	bar := charts.NewBar()
	gopts := globalOptions(cfg, id, width)
	axisLabel := &opts.AxisLabel{Color: cfg.FontColor, FontSize: cfg.FontSize}
	lo, hi := cfg.Data.Extent()
	if cfg.Mode == apc.ModeHorizontalBar {
		gopts = append(gopts,
			charts.WithXAxisOpts(opts.XAxis{Type: "value", AxisLabel: axisLabel}),
			charts.WithYAxisOpts(opts.YAxis{Type: "category", Inverse: opts.Bool(true), AxisLabel: axisLabel}),
			charts.WithGridOpts(opts.Grid{Left: "3%", Right: "12%", ContainLabel: opts.Bool(true)}),
		)
		bar.XYReversal()
	} else {
		gopts = append(gopts,
			charts.WithXAxisOpts(opts.XAxis{Type: "category", AxisLabel: axisLabel}),
			charts.WithYAxisOpts(opts.YAxis{Type: "value", AxisLabel: axisLabel}),
			charts.WithGridOpts(opts.Grid{Top: "70", ContainLabel: opts.Bool(true)}),
		)
	}
	bar.SetGlobalOptions(gopts...)
	bar.SetXAxis(cfg.Data.Categories)

	points := len(cfg.Data.Categories)
	for _, ds := range cfg.Data.Datasets {
		items := make([]opts.BarData, len(ds.Values))
		for i, v := range ds.Values {
			if math.IsNaN(v) {
				items[i] = opts.BarData{Value: missing}
				continue
			}
			label := cfg.Labels.Text(v)
			fits := apc.LabelFits(width, len(cfg.Data.Datasets), points, label)
			place := cfg.Labels.Place(cfg.Mode, v, lo, hi, ds.Color(i), fits)
			items[i] = opts.BarData{
				Value:     v,
				ItemStyle: &opts.ItemStyle{Color: ds.Color(i)},
				Label: &opts.Label{
					Show:      opts.Bool(true),
					Color:     place.Color,
					FontSize:  apc.DataLabelFontSize,
					Position:  labelPosition(cfg.Mode, place),
					Formatter: types.FuncStr(label),
				},
			}
		}
		bar.AddSeries(ds.Label, items, charts.WithItemStyleOpts(opts.ItemStyle{Color: ds.Color(0)}))
	}
	return bar
}

func lineChart(cfg apc.ChartConfig, id string, width int) *charts.Line {
	line := charts.NewLine()
	axisLabel := &opts.AxisLabel{Color: cfg.FontColor, FontSize: cfg.FontSize}
	gopts := append(globalOptions(cfg, id, width),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", AxisLabel: axisLabel}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", AxisLabel: axisLabel}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "inside"}),
	)
	line.SetGlobalOptions(gopts...)
	line.SetXAxis(cfg.Data.Categories)
	for _, ds := range cfg.Data.Datasets {
		items := make([]opts.LineData, len(ds.Values))
		for i, v := range ds.Values {
			if math.IsNaN(v) {
				items[i] = opts.LineData{Value: missing}
				continue
			}
			items[i] = opts.LineData{Value: v}
		}
		line.AddSeries(ds.Label, items,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: ds.Color(0)}),
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(true)}),
		)
	}
	return line
}

// labelPosition maps anchor/align rules onto echarts label positions.
func labelPosition(mode apc.Mode, p apc.Placement) string {
	if mode == apc.ModeHorizontalBar {
		switch {
		case p.Inside && p.Anchor == "end":
			return "insideRight"
		case p.Inside:
			return "insideLeft"
		case p.Anchor == "start":
			return "left"
		default:
			return "right"
		}
	}
	switch {
	case p.Inside && p.Anchor == "end":
		return "insideTop"
	case p.Inside:
		return "insideBottom"
	case p.Anchor == "start":
		return "bottom"
	default:
		return "top"
	}
}
