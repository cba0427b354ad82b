package charts

import "testing"

func TestDataLabelText(t *testing.T) {
	l := NewDataLabels(TextsFor("en"), CallsCount, "#ffffff")
	cases := []struct {
		v    float64
		want string
	}{
		{1, "1 call"},
		{0, "0 calls"},
		{5, "5 calls"},
		{2.5, "2.5 calls"},
		{1200, "1200 calls"},
	}
	for _, c := range cases {
		if got := l.Text(c.v); got != c.want {
			t.Fatalf("Text(%v)=%q want %q", c.v, got, c.want)
		}
	}
	ro := NewDataLabels(TextsFor("ro"), CallTimeTotal, "#ffffff")
	if got := ro.Text(1); got != "1 secundă" {
		t.Fatalf("ro singular: %q", got)
	}
	if got := (DataLabels{}).Text(7); got != "7" {
		t.Fatalf("unit-less label: %q", got)
	}
}

func TestPlaceHorizontal(t *testing.T) {
	l := DataLabels{FontColor: "#abcdef"}
	// long bar on a light color: inside, black text
	p := l.Place(ModeHorizontalBar, 90, 0, 100, "#ffed6f", true)
	if !p.Inside || p.Align != "left" || p.Anchor != "end" || p.Color != "#000000" {
		t.Fatalf("light inside: %+v", p)
	}
	// long bar on a dark color: white text
	p = l.Place(ModeHorizontalBar, 90, 0, 100, "#377eb8", true)
	if p.Color != "#ffffff" {
		t.Fatalf("dark inside: %+v", p)
	}
	// short bar: outside in font color
	p = l.Place(ModeHorizontalBar, 10, 0, 100, "#ffed6f", true)
	if p.Inside || p.Align != "right" || p.Color != "#abcdef" {
		t.Fatalf("outside: %+v", p)
	}
	// negative values mirror
	p = l.Place(ModeHorizontalBar, -90, -100, 0, "#377eb8", true)
	if p.Anchor != "start" || p.Align != "right" || !p.Inside {
		t.Fatalf("negative inside: %+v", p)
	}
	p = l.Place(ModeHorizontalBar, -10, -100, 0, "#377eb8", true)
	if p.Align != "left" || p.Inside {
		t.Fatalf("negative outside: %+v", p)
	}
}

func TestPlaceVerticalAndLine(t *testing.T) {
	l := DataLabels{FontColor: "#eeeeee"}
	p := l.Place(ModeGroupedBar, 90, 0, 100, "#ffed6f", false)
	if p.Align != "bottom" || p.Color != "#eeeeee" || p.Inside {
		t.Fatalf("grouped bar that does not fit uses font color: %+v", p)
	}
	p = l.Place(ModeGroupedBar, 90, 0, 100, "#ffed6f", true)
	if p.Color != "#000000" || !p.Inside {
		t.Fatalf("grouped bar that fits gets contrast color: %+v", p)
	}
	p = l.Place(ModeLine, 90, 0, 100, "#ffed6f", true)
	if p.Color != "#eeeeee" || p.Align != "bottom" {
		t.Fatalf("line mode: %+v", p)
	}
	p = l.Place(ModeGroupedBar, 10, 0, 100, "#ffed6f", true)
	if p.Align != "top" {
		t.Fatalf("short vertical bar: %+v", p)
	}
}

func TestLabelFits(t *testing.T) {
	// 800 / 2 / 4 = 100px per bar; "12 calls" needs 13*8*1.1 = 114.4
	if LabelFits(800, 2, 4, "12 calls") {
		t.Fatalf("label should not fit")
	}
	if !LabelFits(1200, 2, 4, "12 calls") {
		t.Fatalf("label should fit in 150px")
	}
	if LabelFits(800, 0, 4, "x") {
		t.Fatalf("no datasets cannot fit")
	}
}

func TestMagnitudeZeroAxis(t *testing.T) {
	if m := Magnitude(0, 0, 0); m != 0 {
		t.Fatalf("zero over zero axis should be 0, got %v", m)
	}
	if m := Magnitude(5, 0, 10); m != 0.5 {
		t.Fatalf("got %v", m)
	}
}
