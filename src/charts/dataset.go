package charts

import (
	"math"
	"sort"
)

// Dataset is one labeled series aligned to ChartData.Categories. Missing
// cells hold NaN so that backends draw a gap instead of a zero bar.
type Dataset struct {
	Label  string
	Values []float64
	// Colors holds one color per category when the chart has a single
	// dataset, otherwise exactly one color for the whole dataset.
	Colors []string
}

// Color returns the color of the i-th point.
func (d Dataset) Color(i int) string {
	switch {
	case len(d.Colors) == 0:
		return ""
	case len(d.Colors) == 1:
		return d.Colors[0]
	case i >= 0 && i < len(d.Colors):
		return d.Colors[i]
	}
	return d.Colors[len(d.Colors)-1]
}

// ChartData is the category axis plus the dense dataset matrix.
type ChartData struct {
	Categories []string
	Datasets   []Dataset
	// Rows is the number of input rows the data was built from.
	Rows int
}

// Empty reports whether there is nothing to plot.
func (d ChartData) Empty() bool { return len(d.Categories) == 0 }

// Extent returns the smallest and largest defined value, including 0.
func (d ChartData) Extent() (lo, hi float64) {
	for _, ds := range d.Datasets {
		for _, v := range ds.Values {
			if math.IsNaN(v) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	return lo, hi
}

// BuildChartData aligns rows into a category axis and one dataset per
// distinct row label, then assigns colors from p.
func BuildChartData(rows []Row, p *Palette) ChartData {
	var labels []string
	byLabel := map[string][]float64{}
	seen := map[string]struct{}{}
	var axis []string
	for _, r := range rows {
		if _, ok := byLabel[r.Label]; !ok {
			byLabel[r.Label] = nil
			labels = append(labels, r.Label)
		}
		if _, ok := seen[r.Category]; !ok {
			seen[r.Category] = struct{}{}
			axis = append(axis, r.Category)
		}
	}
	sort.Strings(axis)
	index := make(map[string]int, len(axis))
	for i, c := range axis {
		index[c] = i
	}
	for _, l := range labels {
		vals := make([]float64, len(axis))
		for i := range vals {
			vals[i] = math.NaN()
		}
		byLabel[l] = vals
	}
	for _, r := range rows {
		byLabel[r.Label][index[r.Category]] = r.Value
	}

	colors := p.ColorsFor(len(rows))
	if len(labels) == 1 {
		colors = colorsPerCategory(axis, colors)
	}

	data := ChartData{Categories: axis, Rows: len(rows)}
	for i, l := range labels {
		ds := Dataset{Label: l, Values: byLabel[l]}
		if len(labels) == 1 {
			ds.Colors = colors
		} else {
			ds.Colors = []string{colors[i]}
		}
		data.Datasets = append(data.Datasets, ds)
	}
	return data
}

// colorsPerCategory gives each distinct category the next palette color and
// returns the colors in axis order; a category always keeps its color.
func colorsPerCategory(axis []string, palette []string) []string {
	byCategory := make(map[string]string, len(axis))
	next := 0
	for _, c := range axis {
		if _, ok := byCategory[c]; ok {
			continue
		}
		byCategory[c] = palette[next]
		next++
	}
	out := make([]string, 0, len(axis))
	for _, c := range axis {
		out = append(out, byCategory[c])
	}
	return out
}
