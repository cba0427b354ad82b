// Package types holds the performance-counter payload consumed by the charts.
package types

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidPayload is returned for snapshots that carry no metrics object.
var ErrInvalidPayload = errors.New("invalid metrics payload")

// MetricRecord is the aggregated counter set of one function. A zero field
// means "no data" for the series it feeds.
type MetricRecord struct {
	SuccessCount               float64 `json:"successCount,omitempty"`
	ErrorCount                 float64 `json:"errorCount,omitempty"`
	SuccessMillisecondsTotal   float64 `json:"successMillisecondsTotal,omitempty"`
	ErrorMillisecondsTotal     float64 `json:"errorMillisecondsTotal,omitempty"`
	SuccessMillisecondsAverage float64 `json:"successMillisecondsAverage,omitempty"`
	ErrorMillisecondsAverage   float64 `json:"errorMillisecondsAverage,omitempty"`
}

// PerformanceCounters is one snapshot keyed by function name.
type PerformanceCounters struct {
	Metrics map[string]MetricRecord `json:"metrics"`
}

// Validate fails fast on a snapshot without metrics instead of letting a nil
// map reach the formatter.
func (pc *PerformanceCounters) Validate() error {
	if pc == nil || pc.Metrics == nil {
		return ErrInvalidPayload
	}
	return nil
}

// Len returns the number of functions in the snapshot.
func (pc *PerformanceCounters) Len() int {
	if pc == nil {
		return 0
	}
	return len(pc.Metrics)
}

// Decode parses one JSON snapshot. A missing or null "metrics" key yields
// ErrInvalidPayload.
func Decode(b []byte) (*PerformanceCounters, error) {
	var pc PerformanceCounters
	if err := json.Unmarshal(b, &pc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if err := pc.Validate(); err != nil {
		return nil, err
	}
	return &pc, nil
}
