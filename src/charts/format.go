package charts

import (
	"math"
	"sort"

	"github.com/oxygen/api-performance-counters-ui/src/types"
)

// Row is one (category, value) pair of a bucket. Label names the dataset the
// row belongs to; the widget always leaves it empty.
type Row struct {
	Category string  `json:"category"`
	Value    float64 `json:"value"`
	Label    string  `json:"label,omitempty"`
}

// Formatted holds the rows of every bucket, indexed by Bucket.
type Formatted [NumBuckets][]Row

// Get returns the rows of b.
func (f *Formatted) Get(b Bucket) []Row {
	if !b.Valid() {
		return nil
	}
	return f[b]
}

// ByName returns the rows keyed by bucket wire name.
func (f *Formatted) ByName() map[string][]Row {
	out := make(map[string][]Row, NumBuckets)
	for _, b := range Buckets {
		out[b.String()] = f[b]
	}
	return out
}

// Format splits a snapshot into the six buckets. Functions listed in ignored
// are skipped and zero fields produce no row. The success total is reported in
// whole seconds from one second up; the error total stays in rounded
// milliseconds.
func Format(metrics map[string]types.MetricRecord, ignored []string) Formatted {
	skip := make(map[string]struct{}, len(ignored))
	for _, n := range ignored {
		skip[n] = struct{}{}
	}
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		if _, ok := skip[name]; ok {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	var out Formatted
	add := func(b Bucket, name string, v float64) {
		out[b] = append(out[b], Row{Category: name, Value: v})
	}
	for _, name := range names {
		m := metrics[name]
		if m.SuccessCount != 0 {
			add(CallsCount, name, m.SuccessCount)
		}
		if m.ErrorCount != 0 {
			add(CallsCountErrors, name, m.ErrorCount)
		}
		if m.SuccessMillisecondsTotal >= 1000 {
			add(CallTimeTotal, name, millisecondsToSeconds(m.SuccessMillisecondsTotal))
		}
		if m.ErrorMillisecondsTotal != 0 {
			add(CallTimeTotalErrors, name, roundHalfUp(m.ErrorMillisecondsTotal))
		}
		if m.SuccessMillisecondsAverage != 0 {
			add(CallTimeAverage, name, m.SuccessMillisecondsAverage)
		}
		if m.ErrorMillisecondsAverage != 0 {
			add(CallTimeAverageErrors, name, m.ErrorMillisecondsAverage)
		}
	}
	return out
}

// millisecondsToSeconds rounds half up, 1500ms -> 2s.
func millisecondsToSeconds(ms float64) float64 {
	return roundHalfUp(ms / 1000)
}

func roundHalfUp(v float64) float64 { return math.Floor(v + 0.5) }
