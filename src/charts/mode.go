package charts

// Mode is the rendering style of one chart.
type Mode string

const (
	ModeGroupedBar    Mode = "bar"
	ModeHorizontalBar Mode = "horizontalBar"
	ModeLine          Mode = "line"
)

// denseCellLimit is the categories x datasets product above which bars become
// unreadable and a line chart is used instead.
const denseCellLimit = 200

// SelectMode picks the chart mode from the data volume. forceHorizontal
// overrides everything else.
func SelectMode(categories, datasets int, forceHorizontal bool) Mode {
	if forceHorizontal {
		return ModeHorizontalBar
	}
	if categories*datasets > denseCellLimit {
		return ModeLine
	}
	if datasets == 1 {
		return ModeHorizontalBar
	}
	return ModeGroupedBar
}

// ModeFor selects the mode of a bucket chart, applying HorizontalBarBuckets.
func ModeFor(b Bucket, d ChartData) Mode {
	return SelectMode(len(d.Categories), len(d.Datasets), b.Valid() && HorizontalBarBuckets[b])
}
