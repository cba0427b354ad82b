package pngchart

import (
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/oxygen/api-performance-counters-ui/src/charts"
)

const (
	padOuter     = 12
	tickArea     = 24
	legendRow    = 22
	labelGap     = 4
	barFill      = 0.8
	maxLeftShare = 3 // category labels take at most 1/maxLeftShare of the width
)

var (
	bgColor   = drawing.Color{R: background.R, G: background.G, B: background.B, A: 255}
	gridColor = drawing.Color{R: 60, G: 60, B: 60, A: 255}
	axisColor = drawing.Color{R: 120, G: 120, B: 120, A: 255}
)

// canvas bundles the renderer with the fonts and colors of one chart.
type canvas struct {
	r         chart.Renderer
	base      chart.Style // carries the font
	fontSize  float64
	fontColor drawing.Color
	w, h      int
}

func (c *canvas) textStyle(size float64, col drawing.Color) chart.Style {
	return chart.Style{Font: c.base.Font, FontSize: size, FontColor: col}
}

func (c *canvas) measure(text string, size float64) chart.Box {
	return chart.Draw.MeasureText(c.r, text, c.textStyle(size, c.fontColor))
}

func (c *canvas) text(text string, x, y int, size float64, col drawing.Color) {
	chart.Draw.Text(c.r, text, x, y, c.textStyle(size, col))
}

func (c *canvas) rect(left, top, right, bottom int, col drawing.Color) {
	if right < left {
		left, right = right, left
	}
	if bottom < top {
		top, bottom = bottom, top
	}
	if right == left {
		right++
	}
	if bottom == top {
		bottom++
	}
	chart.Draw.Box(c.r, chart.Box{Left: left, Top: top, Right: right, Bottom: bottom},
		chart.Style{FillColor: col, StrokeColor: col, StrokeWidth: 1})
}

func (c *canvas) line(x0, y0, x1, y1 int, col drawing.Color) {
	c.r.SetStrokeColor(col)
	c.r.SetStrokeWidth(1)
	c.r.MoveTo(x0, y0)
	c.r.LineTo(x1, y1)
	c.r.Stroke()
	c.r.ResetStyle()
}

// legend draws one swatch per labelled dataset and returns the height used.
func (c *canvas) legend(data charts.ChartData) int {
	x := padOuter
	y := padOuter
	drawn := false
	for _, ds := range data.Datasets {
		if ds.Label == "" {
			continue
		}
		tw := c.measure(ds.Label, c.fontSize).Width()
		if x+14+tw > c.w-padOuter && x > padOuter {
			x = padOuter
			y += legendRow
		}
		c.rect(x, y+3, x+10, y+13, hexColor(ds.Color(0)))
		c.text(ds.Label, x+14, y+13, c.fontSize, c.fontColor)
		x += 14 + tw + 16
		drawn = true
	}
	if !drawn {
		return 0
	}
	return y + legendRow - padOuter
}

func (c *canvas) widestLabel(cfg charts.ChartConfig) int {
	widest := 0
	for _, ds := range cfg.Data.Datasets {
		for _, v := range ds.Values {
			if math.IsNaN(v) {
				continue
			}
			if w := c.measure(cfg.Labels.Text(v), charts.DataLabelFontSize).Width(); w > widest {
				widest = w
			}
		}
	}
	return widest
}

// horizontalBars draws categories top to bottom with values along the x axis.
func horizontalBars(c *canvas, cfg charts.ChartConfig) {
	data := cfg.Data
	lo, hi := valueAxis(data.Extent())

	top := padOuter + c.legend(data)
	bottom := c.h - tickArea
	left := padOuter
	for _, cat := range data.Categories {
		if w := c.measure(cat, c.fontSize).Width() + padOuter + labelGap; w > left {
			left = w
		}
	}
	if left > c.w/maxLeftShare {
		left = c.w / maxLeftShare
	}
	right := c.w - padOuter - min(c.widestLabel(cfg)+labelGap, c.w/4)
	if right <= left+1 || bottom <= top+1 {
		return
	}

	scale := func(v float64) int {
		return left + int((v-lo)/(hi-lo)*float64(right-left))
	}
	for _, t := range niceTicks(lo, hi, valueTicks) {
		x := scale(t.Value)
		c.line(x, top, x, bottom, gridColor)
		tw := c.measure(t.Label, c.fontSize).Width()
		c.text(t.Label, x-tw/2, bottom+tickArea-6, c.fontSize, c.fontColor)
	}
	zero := scale(0)
	c.line(zero, top, zero, bottom, axisColor)

	band := float64(bottom-top) / float64(len(data.Categories))
	sub := band * barFill / float64(len(data.Datasets))
	for i, cat := range data.Categories {
		bandTop := float64(top) + band*float64(i)
		th := c.measure(cat, c.fontSize).Height()
		tw := c.measure(cat, c.fontSize).Width()
		c.text(cat, left-labelGap-tw, int(bandTop+band/2)+th/2, c.fontSize, c.fontColor)

		for j, ds := range data.Datasets {
			v := ds.Values[i]
			if math.IsNaN(v) {
				continue
			}
			y0 := int(bandTop + band*(1-barFill)/2 + sub*float64(j))
			y1 := int(bandTop + band*(1-barFill)/2 + sub*float64(j+1))
			if y1-y0 > 1 {
				y1--
			}
			end := scale(v)
			barColor := ds.Color(i)
			c.rect(zero, y0, end, y1, hexColor(barColor))

			label := cfg.Labels.Text(v)
			place := cfg.Labels.Place(charts.ModeHorizontalBar, v, lo, hi, barColor, true)
			lw := c.measure(label, charts.DataLabelFontSize).Width()
			lh := c.measure(label, charts.DataLabelFontSize).Height()
			var x int
			switch place.Align {
			case "left":
				x = end - labelGap - lw
			default:
				x = end + labelGap
			}
			c.text(label, x, (y0+y1)/2+lh/2, charts.DataLabelFontSize, hexColor(place.Color))
		}
	}
}

// groupedBars draws categories left to right with one bar per dataset.
func groupedBars(c *canvas, cfg charts.ChartConfig) {
	data := cfg.Data
	lo, hi := valueAxis(data.Extent())
	ticks := niceTicks(lo, hi, valueTicks)

	top := padOuter + c.legend(data) + charts.DataLabelFontSize + labelGap
	bottom := c.h - tickArea
	left := padOuter
	for _, t := range ticks {
		if w := c.measure(t.Label, c.fontSize).Width() + padOuter + labelGap; w > left {
			left = w
		}
	}
	right := c.w - padOuter
	if right <= left+1 || bottom <= top+1 {
		return
	}

	scale := func(v float64) int {
		return bottom - int((v-lo)/(hi-lo)*float64(bottom-top))
	}
	for _, t := range ticks {
		y := scale(t.Value)
		c.line(left, y, right, y, gridColor)
		tw := c.measure(t.Label, c.fontSize).Width()
		th := c.measure(t.Label, c.fontSize).Height()
		c.text(t.Label, left-labelGap-tw, y+th/2, c.fontSize, c.fontColor)
	}
	zero := scale(0)
	c.line(left, zero, right, zero, axisColor)

	points := len(data.Categories)
	band := float64(right-left) / float64(points)
	sub := band * barFill / float64(len(data.Datasets))
	for i, cat := range data.Categories {
		bandLeft := float64(left) + band*float64(i)
		name := fitText(c, cat, int(band)-labelGap)
		tw := c.measure(name, c.fontSize).Width()
		c.text(name, int(bandLeft+band/2)-tw/2, bottom+tickArea-6, c.fontSize, c.fontColor)

		for j, ds := range data.Datasets {
			v := ds.Values[i]
			if math.IsNaN(v) {
				continue
			}
			x0 := int(bandLeft + band*(1-barFill)/2 + sub*float64(j))
			x1 := int(bandLeft + band*(1-barFill)/2 + sub*float64(j+1))
			if x1-x0 > 1 {
				x1--
			}
			end := scale(v)
			barColor := ds.Color(i)
			c.rect(x0, zero, x1, end, hexColor(barColor))

			label := cfg.Labels.Text(v)
			fits := charts.LabelFits(c.w, len(data.Datasets), points, label)
			place := cfg.Labels.Place(charts.ModeGroupedBar, v, lo, hi, barColor, fits)
			lw := c.measure(label, charts.DataLabelFontSize).Width()
			lh := c.measure(label, charts.DataLabelFontSize).Height()
			var y int
			switch place.Align {
			case "bottom":
				y = end + labelGap + lh
			default:
				y = end - labelGap
			}
			c.text(label, (x0+x1)/2-lw/2, y, charts.DataLabelFontSize, hexColor(place.Color))
		}
	}
}

// fitText shortens s with an ellipsis until it is at most width pixels wide.
func fitText(c *canvas, s string, width int) string {
	if c.measure(s, c.fontSize).Width() <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 1 {
		r = r[:len(r)-1]
		t := string(r) + "…"
		if c.measure(t, c.fontSize).Width() <= width {
			return t
		}
	}
	return ""
}

// hexColor converts "#rrggbb"; anything else draws white.
func hexColor(s string) drawing.Color {
	c, err := charts.ParseColor(s)
	if err != nil {
		return drawing.ColorWhite
	}
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}
