// Package charts shapes performance-counter snapshots into chart data: the six
// buckets, the category axis and value matrix, colors, chart modes, data labels
// and localized texts. Drawing is left to a Backend.
package charts

import "fmt"

// Bucket identifies one of the six series derived from a snapshot.
type Bucket int

const (
	CallsCount Bucket = iota
	CallTimeTotal
	CallTimeAverage
	CallsCountErrors
	CallTimeTotalErrors
	CallTimeAverageErrors

	NumBuckets = 6
)

// Buckets lists every bucket in panel order.
var Buckets = [NumBuckets]Bucket{
	CallsCount,
	CallTimeTotal,
	CallTimeAverage,
	CallsCountErrors,
	CallTimeTotalErrors,
	CallTimeAverageErrors,
}

var bucketNames = [NumBuckets]string{
	"callsCount",
	"callTimeTotal",
	"callTimeAverage",
	"callsCountErrors",
	"callTimeTotalErrors",
	"callTimeAverageErrors",
}

// String returns the wire name (e.g. "callTimeTotal").
func (b Bucket) String() string {
	if !b.Valid() {
		return fmt.Sprintf("Bucket(%d)", int(b))
	}
	return bucketNames[b]
}

// Valid reports whether b is one of the six buckets.
func (b Bucket) Valid() bool { return b >= 0 && b < NumBuckets }

// ParseBucket maps a wire name back to its Bucket.
func ParseBucket(name string) (Bucket, error) {
	for i, n := range bucketNames {
		if n == name {
			return Bucket(i), nil
		}
	}
	return 0, fmt.Errorf("unknown bucket %q", name)
}

// HorizontalBarBuckets is the allow-list of buckets always drawn as
// horizontal bars. Every known bucket is on it.
var HorizontalBarBuckets = [NumBuckets]bool{true, true, true, true, true, true}
