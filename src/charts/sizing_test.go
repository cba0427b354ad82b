package charts

import "testing"

func TestCanvasHeight(t *testing.T) {
	cases := []struct {
		mode     Mode
		rows     int
		datasets int
		compact  bool
		want     int
	}{
		{ModeHorizontalBar, 10, 1, false, 10*30 + 80},
		{ModeHorizontalBar, 10, 1, true, 10*30 + 40},
		{ModeHorizontalBar, 0, 0, false, 80},
		{ModeGroupedBar, 20, 7, false, 320 + 120 + 40},
		{ModeGroupedBar, 20, 7, true, 320 + 60 + 20},
		{ModeLine, 300, 1, false, 320 + 51 + 40},
	}
	for _, c := range cases {
		if got := CanvasHeight(c.mode, c.rows, c.datasets, c.compact); got != c.want {
			t.Fatalf("CanvasHeight(%s,%d,%d,%v)=%d want %d", c.mode, c.rows, c.datasets, c.compact, got, c.want)
		}
	}
}
