package charts

import (
	"math"
	"strconv"
)

// DataLabelFontSize is the font size of the value printed next to each bar.
const DataLabelFontSize = 13

// lightBarChannelSum separates light bars (black label) from dark ones (white label).
const lightBarChannelSum = 120 * 3

// DataLabels formats and places the value labels of one chart.
type DataLabels struct {
	Singular  string
	Plural    string
	FontColor string
}

// Placement says where and in which color a data label is drawn.
type Placement struct {
	Anchor string // "end" or "start"
	Align  string // "left", "right", "top" or "bottom"
	Color  string
	Inside bool
}

// NewDataLabels builds the label rules of bucket b.
func NewDataLabels(t Texts, b Bucket, fontColor string) DataLabels {
	s, p := t.Units(b)
	return DataLabels{Singular: s, Plural: p, FontColor: fontColor}
}

// Text renders "5 calls" / "1 call"; values without a unit print bare.
func (l DataLabels) Text(v float64) string {
	s := FormatValue(v)
	if l.Plural == "" {
		return s
	}
	if s == "1" {
		return s + " " + l.Singular
	}
	return s + " " + l.Plural
}

// FormatValue prints v in the shortest exact form.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Magnitude is |v| relative to the axis extent on the side of v.
func Magnitude(v, axisMin, axisMax float64) float64 {
	ref := axisMax
	if v < 0 {
		ref = axisMin
	}
	return math.Abs(v / math.Max(0.00000001, math.Abs(ref)))
}

// LabelFits reports whether a grouped-bar label fits the width of its bar.
func LabelFits(chartWidth, datasets, points int, label string) bool {
	if datasets <= 0 || points <= 0 {
		return false
	}
	perBar := float64(chartWidth) / float64(datasets) / float64(points)
	return perBar >= DataLabelFontSize*float64(len(label))*1.1
}

// Place decides anchor, alignment and color for the label of value v drawn
// over a bar of barColor. fits is only consulted for grouped bars.
func (l DataLabels) Place(mode Mode, v, axisMin, axisMax float64, barColor string, fits bool) Placement {
	p := Placement{Anchor: "end", Color: l.FontColor}
	if v < 0 {
		p.Anchor = "start"
	}
	inside := Magnitude(v, axisMin, axisMax) > 0.5
	if mode == ModeHorizontalBar {
		switch {
		case v < 0 && inside:
			p.Align = "right"
		case v < 0:
			p.Align = "left"
		case inside:
			p.Align = "left"
		default:
			p.Align = "right"
		}
	} else {
		switch {
		case v < 0 && inside:
			p.Align = "top"
		case v < 0:
			p.Align = "bottom"
		case inside:
			p.Align = "bottom"
		default:
			p.Align = "top"
		}
	}

	if mode == ModeLine || (mode == ModeGroupedBar && !fits) {
		return p
	}
	if inside {
		p.Inside = true
		if ChannelSum(barColor) > lightBarChannelSum {
			p.Color = "#000000"
		} else {
			p.Color = "#ffffff"
		}
	}
	return p
}
