package pngchart

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/oxygen/api-performance-counters-ui/src/charts"
)

// maxCategoryTicks bounds the labels on a dense category axis.
const maxCategoryTicks = 20

// lineChart renders dense data as one line per dataset with a dot on each point.
func lineChart(cfg charts.ChartConfig, width int) (image.Image, error) {
	data := cfg.Data
	fontColor := hexColor(cfg.FontColor)
	lo, hi := valueAxis(data.Extent())
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}

	xs := make([]float64, len(data.Categories))
	for i := range xs {
		xs[i] = float64(i + 1)
	}
	var series, named []chart.Series
	for _, ds := range data.Datasets {
		col := hexColor(ds.Color(0))
		style := chart.Style{StrokeColor: col, StrokeWidth: 1.5, DotWidth: 2, DotColor: col}
		for k, run := range runs(xs, ds.Values) {
			s := chart.ContinuousSeries{XValues: run[0], YValues: run[1], Style: style}
			if k == 0 {
				s.Name = ds.Label
				named = append(named, s)
			}
			series = append(series, s)
		}
	}

	axisStyle := chart.Style{FontColor: fontColor, StrokeColor: axisColor, FontSize: float64(cfg.FontSize)}
	ch := chart.Chart{
		Width:      width,
		Height:     cfg.Height,
		Font:       font,
		Background: chart.Style{FillColor: bgColor, Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 14}},
		Canvas:     chart.Style{FillColor: bgColor},
		XAxis: chart.XAxis{
			Style: axisStyle,
			Ticks: categoryTicks(data.Categories, maxCategoryTicks),
			Range: &chart.ContinuousRange{Min: 0.5, Max: float64(len(data.Categories)) + 0.5},
		},
		YAxis: chart.YAxis{
			Style:          axisStyle,
			Range:          &chart.ContinuousRange{Min: lo, Max: hi},
			Ticks:          niceTicks(lo, hi, valueTicks),
			GridMajorStyle: chart.Style{StrokeColor: gridColor, StrokeWidth: 1},
		},
		Series: series,
	}
	if len(named) > 1 || (len(named) == 1 && named[0].GetName() != "") {
		ch.Elements = []chart.Renderable{chart.Legend(&chart.Chart{Series: named, Font: font}, chart.Style{
			FillColor:   drawing.Color{R: 30, G: 30, B: 30, A: 255},
			FontColor:   fontColor,
			StrokeColor: axisColor,
		})}
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render line chart %s: %w", cfg.Name, err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode line chart %s: %w", cfg.Name, err)
	}
	return img, nil
}

// runs splits ys at NaN gaps into contiguous [xs, ys] pieces.
func runs(xs, ys []float64) [][2][]float64 {
	var out [][2][]float64
	start := -1
	for i := 0; i <= len(ys); i++ {
		gap := i == len(ys) || math.IsNaN(ys[i])
		switch {
		case gap && start >= 0:
			out = append(out, [2][]float64{xs[start:i], ys[start:i]})
			start = -1
		case !gap && start < 0:
			start = i
		}
	}
	return out
}

// hasValues reports whether any cell carries data.
func hasValues(data charts.ChartData) bool {
	for _, ds := range data.Datasets {
		for _, v := range ds.Values {
			if !math.IsNaN(v) {
				return true
			}
		}
	}
	return false
}
