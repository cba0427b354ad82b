// Package pngchart draws chart configurations as raster images with go-chart.
package pngchart

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"sync"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/oxygen/api-performance-counters-ui/src/charts"
	"github.com/oxygen/api-performance-counters-ui/src/logging"
)

// ErrDestroyed is returned when a chart is used after Destroy.
var ErrDestroyed = errors.New("chart destroyed")

var log = logging.For("pngchart")

const (
	DefaultWidth = 900
	minWidth     = 320
	minHeight    = 60

	defaultFontColor = "#ffffff"
)

// Backend renders every chart at a fixed pixel width.
type Backend struct {
	Width int
}

// New returns a backend drawing charts width pixels wide.
func New(width int) *Backend {
	return &Backend{Width: width}
}

func (b *Backend) width() int {
	if b == nil || b.Width <= 0 {
		return DefaultWidth
	}
	if b.Width < minWidth {
		return minWidth
	}
	return b.Width
}

// Create renders cfg and returns the image behind a destroyable handle.
func (b *Backend) Create(cfg charts.ChartConfig) (charts.Handle, error) {
	defer log.TimeTrack(time.Now(), "render "+cfg.Name)
	if cfg.Animations {
		log.Debugf("chart %s: animations are not supported by raster output", cfg.Name)
	}
	img, err := Render(cfg, b.width())
	if err != nil {
		return nil, err
	}
	return &Chart{name: cfg.Name, title: cfg.Title, mode: cfg.Mode, img: img}, nil
}

// Render draws cfg into an image width pixels wide and cfg.Height tall.
func Render(cfg charts.ChartConfig, width int) (image.Image, error) {
	if cfg.Height < minHeight {
		cfg.Height = minHeight
	}
	cfg.FontColor = fontColorOr(cfg.Name, cfg.FontColor)
	cfg.Labels.FontColor = fontColorOr(cfg.Name, cfg.Labels.FontColor)
	if cfg.FontSize <= 0 {
		cfg.FontSize = 12
	}
	if !hasValues(cfg.Data) {
		return Placeholder(width, cfg.Height, cfg.Title, cfg.FontColor), nil
	}
	switch cfg.Mode {
	case charts.ModeLine:
		return lineChart(cfg, width)
	case charts.ModeHorizontalBar, charts.ModeGroupedBar:
		return barChart(cfg, width)
	default:
		return nil, fmt.Errorf("chart %s: unknown mode %q", cfg.Name, cfg.Mode)
	}
}

// fontColorOr returns c when it is a #rrggbb color and the default otherwise.
func fontColorOr(name, c string) string {
	if c == "" {
		return defaultFontColor
	}
	if _, err := charts.ParseColor(c); err != nil {
		log.Warnf("chart %s: font color %q ignored: %v", name, c, err)
		return defaultFontColor
	}
	return c
}

// Placeholder is the dark image shown where there is no chart to draw.
func Placeholder(width, height int, caption, fontColor string) image.Image {
	return drawCaption(blank(width, height), caption, hexColor(fontColor))
}

func barChart(cfg charts.ChartConfig, width int) (image.Image, error) {
	r, err := chart.PNG(width, cfg.Height)
	if err != nil {
		return nil, fmt.Errorf("chart %s: %w", cfg.Name, err)
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("chart %s: load font: %w", cfg.Name, err)
	}
	c := &canvas{
		r:         r,
		base:      chart.Style{Font: font},
		fontSize:  float64(cfg.FontSize),
		fontColor: hexColor(cfg.FontColor),
		w:         width,
		h:         cfg.Height,
	}
	c.rect(0, 0, width, cfg.Height, bgColor)
	if cfg.Mode == charts.ModeHorizontalBar {
		horizontalBars(c, cfg)
	} else {
		groupedBars(c, cfg)
	}

	var buf bytes.Buffer
	if err := r.Save(&buf); err != nil {
		return nil, fmt.Errorf("chart %s: encode: %w", cfg.Name, err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("chart %s: decode: %w", cfg.Name, err)
	}
	return img, nil
}

// Chart is a rendered chart owned by its caller until Destroy.
type Chart struct {
	mu    sync.Mutex
	name  string
	title string
	mode  charts.Mode
	img   image.Image
}

func (c *Chart) Name() string      { return c.name }
func (c *Chart) Title() string     { return c.title }
func (c *Chart) Mode() charts.Mode { return c.mode }

// Image returns the rendered image, or nil once destroyed.
func (c *Chart) Image() image.Image {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.img
}

// WritePNG encodes the image to w.
func (c *Chart) WritePNG(w io.Writer) error {
	img := c.Image()
	if img == nil {
		return ErrDestroyed
	}
	return png.Encode(w, img)
}

// Destroy releases the image. A second call returns ErrDestroyed.
func (c *Chart) Destroy() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.img == nil {
		return ErrDestroyed
	}
	c.img = nil
	return nil
}
