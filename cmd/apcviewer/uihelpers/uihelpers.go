package uihelpers

import (
	"path/filepath"
	"time"
)

// ComputeChartWidth derives the chart image width from the window width.
// Uses ~95% of the window minus a small margin for scrollbars, clamped to [480, 1600].
func ComputeChartWidth(windowW float32) int {
	w := int(windowW*0.95) - 12
	if w < 480 {
		w = 480
	}
	if w > 1600 {
		w = 1600
	}
	return w
}

// ComputePanelHeight keeps a panel readable when the chart asked for very little space.
func ComputePanelHeight(canvasHeight int, compact bool) int {
	min := 80
	if compact {
		min = 40
	}
	if canvasHeight < min {
		return min
	}
	return canvasHeight
}

// WatchIntervalLabels are the choices of the auto-reload selector, shortest last.
var WatchIntervalLabels = []string{"Off", "2s", "5s", "10s", "30s", "1m"}

// ParseWatchInterval maps a selector label to a polling interval. "Off" and
// anything unparsable return 0.
func ParseWatchInterval(label string) time.Duration {
	d, err := time.ParseDuration(label)
	if err != nil || d <= 0 {
		return 0
	}
	return d
}

// FileChanged reports whether a file looks different from the last load.
func FileChanged(prevMod time.Time, prevSize int64, mod time.Time, size int64) bool {
	return !mod.Equal(prevMod) || size != prevSize
}

// AddRecent puts path first, drops duplicates and keeps at most max entries.
func AddRecent(list []string, path string, max int) []string {
	out := []string{path}
	for _, f := range list {
		if f != path && f != "" && len(out) < max {
			out = append(out, f)
		}
	}
	return out
}

// TruncatePath shortens p to about n characters, always keeping the base name.
func TruncatePath(p string, n int) string {
	if len(p) <= n {
		return p
	}
	base := filepath.Base(p)
	if len(base)+4 >= n {
		return "..." + base
	}
	dir := filepath.Dir(p)
	left := n - len(base) - 4
	if left <= 0 {
		return "..." + base
	}
	if len(dir) > left {
		dir = dir[:left]
	}
	return dir + "/..." + base
}
