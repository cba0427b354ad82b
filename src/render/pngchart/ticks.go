package pngchart

import (
	"math"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"
)

// valueTicks is the number of value-axis ticks aimed for.
const valueTicks = 6

// valueAxis returns bounds covering [lo,hi] and zero, rounded outward to whole
// tick steps. A bound that lands exactly on the data gets one more step so the
// longest bar leaves room for its label.
func valueAxis(lo, hi float64) (float64, float64) {
	lo, hi = math.Min(lo, 0), math.Max(hi, 0)
	if hi <= lo {
		hi = lo + 1
	}
	step := tickStep(hi-lo, valueTicks)
	min := math.Floor(lo/step) * step
	max := math.Ceil(hi/step) * step
	if lo < 0 && min == lo {
		min -= step
	}
	if hi > 0 && max == hi {
		max += step
	}
	return min, max
}

// tickStep returns the 1, 2, 2.5 or 5 times a power of ten step that splits
// span into about n ticks.
func tickStep(span float64, n int) float64 {
	if n < 2 {
		n = 2
	}
	raw := span / float64(n-1)
	if raw <= 0 || math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 1
	}
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range []float64{1, 2, 2.5, 5} {
		if raw <= m*mag {
			return m * mag
		}
	}
	return 10 * mag
}

// niceTicks places ticks on multiples of tickStep inside [min,max].
func niceTicks(min, max float64, n int) []chart.Tick {
	if math.IsNaN(min) || math.IsNaN(max) || max <= min {
		return nil
	}
	step := tickStep(max-min, n)
	first := math.Ceil(min/step - 1e-9)
	var ticks []chart.Tick
	for i := 0.0; ; i++ {
		v := (first + i) * step
		if v > max+step*1e-9 {
			break
		}
		ticks = append(ticks, chart.Tick{Value: v, Label: formatTick(v, step)})
	}
	return ticks
}

// formatTick prints v with as many decimals as step needs.
func formatTick(v, step float64) string {
	decimals := 0
	for p := 1.0; decimals < 6; decimals++ {
		if s := step * p; math.Abs(s-math.Round(s)) < 1e-9 {
			break
		}
		p *= 10
	}
	if math.Abs(v) < step*1e-9 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

// categoryTicks labels every k-th category so that at most max labels show.
func categoryTicks(categories []string, max int) []chart.Tick {
	step := 1
	if max > 0 && len(categories) > max {
		step = int(math.Ceil(float64(len(categories)) / float64(max)))
	}
	ticks := make([]chart.Tick, 0, len(categories)/step+1)
	for i := 0; i < len(categories); i += step {
		ticks = append(ticks, chart.Tick{Value: float64(i + 1), Label: categories[i]})
	}
	return ticks
}
