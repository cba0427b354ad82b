package charts

// Legend heights in pixels for regular and compact (mobile) layouts.
const (
	legendHeight        = 40
	legendHeightCompact = 20
	horizontalRowHeight = 30
	verticalBarsHeight  = 8 * 40
)

// CanvasHeight returns the pixel height of a chart canvas.
func CanvasHeight(mode Mode, rows, datasets int, compact bool) int {
	legend := legendHeight
	perLine := 3.5
	if compact {
		legend = legendHeightCompact
		perLine = 7
	}
	if mode == ModeHorizontalBar {
		return rows*horizontalRowHeight + legend*2
	}
	topLegend := int(float64(datasets)/perLine*40 + float64(legend))
	return verticalBarsHeight + topLegend + legend
}
