package widget

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/oxygen/api-performance-counters-ui/src/charts"
	"github.com/oxygen/api-performance-counters-ui/src/logging"
	"github.com/oxygen/api-performance-counters-ui/src/render/pngchart"
	"github.com/oxygen/api-performance-counters-ui/src/types"
)

type fakeHandle struct {
	cfg       charts.ChartConfig
	destroyed int
	failWith  error
}

func (h *fakeHandle) Destroy() error {
	h.destroyed++
	return h.failWith
}

type fakeBackend struct {
	created    []*fakeHandle
	failNames  map[string]bool
	destroyErr error
}

func (b *fakeBackend) Create(cfg charts.ChartConfig) (charts.Handle, error) {
	if b.failNames[cfg.Name] {
		return nil, errors.New("backend refused " + cfg.Name)
	}
	h := &fakeHandle{cfg: cfg, failWith: b.destroyErr}
	b.created = append(b.created, h)
	return h, nil
}

func (b *fakeBackend) last(name string) *fakeHandle {
	for i := len(b.created) - 1; i >= 0; i-- {
		if b.created[i].cfg.Name == name {
			return b.created[i]
		}
	}
	return nil
}

type fakeHost struct{ detached int }

func (h *fakeHost) Detach(*Container) { h.detached++ }

func snapshot() *types.PerformanceCounters {
	return &types.PerformanceCounters{Metrics: map[string]types.MetricRecord{
		"foo":                     {SuccessCount: 5, SuccessMillisecondsTotal: 1500, SuccessMillisecondsAverage: 300},
		"bar":                     {SuccessCount: 2, ErrorCount: 1, ErrorMillisecondsAverage: 40},
		"rpc.performanceCounters": {SuccessCount: 1000},
	}}
}

func TestUpdateRendersSixCharts(t *testing.T) {
	be := &fakeBackend{}
	w := New(be)
	if err := w.Update(snapshot(), false, false); err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(be.created) != charts.NumBuckets {
		t.Fatalf("expected %d charts got %d", charts.NumBuckets, len(be.created))
	}
	calls := be.last("callsCount").cfg
	if got := calls.Data.Categories; len(got) != 2 || got[0] != "bar" || got[1] != "foo" {
		t.Fatalf("ignored names must be skipped and axis sorted: %v", got)
	}
	if calls.Mode != charts.ModeHorizontalBar {
		t.Fatalf("mode %s", calls.Mode)
	}
	if calls.Title != "Calls count" || calls.FontSize != DefaultFontSize || calls.FontColor != DefaultFontColor {
		t.Fatalf("unexpected config: %+v", calls)
	}
	if calls.Height != 2*30+80 {
		t.Fatalf("height %d", calls.Height)
	}
	total := be.last("callTimeTotal").cfg
	if len(total.Data.Categories) != 1 || total.Data.Datasets[0].Values[0] != 2 {
		t.Fatalf("callTimeTotal: %+v", total.Data)
	}
	if total.Labels.Text(2) != "2 seconds" {
		t.Fatalf("units: %q", total.Labels.Text(2))
	}
	if got := be.last("callTimeTotalErrors").cfg.Data; !got.Empty() {
		t.Fatalf("error totals should be empty: %+v", got)
	}
	for _, p := range w.Container().Panels() {
		if p.Chart == nil {
			t.Fatalf("%s has no chart", p.Bucket)
		}
	}
}

func TestUpdateRecreatesCharts(t *testing.T) {
	be := &fakeBackend{}
	w := New(be)
	if err := w.Update(snapshot(), false, false); err != nil {
		t.Fatalf("update: %v", err)
	}
	first := be.last("callsCount")
	if err := w.Update(snapshot(), false, true); err != nil {
		t.Fatalf("update: %v", err)
	}
	second := be.last("callsCount")
	if first == second {
		t.Fatalf("chart should be recreated")
	}
	if first.destroyed != 1 || second.destroyed != 0 {
		t.Fatalf("destroy counts first=%d second=%d", first.destroyed, second.destroyed)
	}
	if !second.cfg.Animations {
		t.Fatalf("animations flag not forwarded")
	}
	p, _ := w.Container().Panel(charts.CallsCount)
	if p.Chart != charts.Handle(second) {
		t.Fatalf("panel should hold the new chart")
	}
}

func TestUpdateClearExisting(t *testing.T) {
	be := &fakeBackend{}
	w := New(be)
	_ = w.Update(snapshot(), false, false)
	firstRound := append([]*fakeHandle(nil), be.created...)
	if err := w.Update(snapshot(), true, false); err != nil {
		t.Fatalf("update: %v", err)
	}
	for _, h := range firstRound {
		if h.destroyed != 1 {
			t.Fatalf("%s destroyed %d times", h.cfg.Name, h.destroyed)
		}
	}
}

func TestUpdateInvalidPayload(t *testing.T) {
	w := New(&fakeBackend{})
	if err := w.Update(nil, false, false); !errors.Is(err, types.ErrInvalidPayload) {
		t.Fatalf("nil snapshot: %v", err)
	}
	if err := w.Update(&types.PerformanceCounters{}, false, false); !errors.Is(err, types.ErrInvalidPayload) {
		t.Fatalf("missing metrics: %v", err)
	}
}

func TestUpdateContinuesAfterBackendError(t *testing.T) {
	be := &fakeBackend{failNames: map[string]bool{"callTimeTotal": true}}
	w := New(be)
	err := w.Update(snapshot(), false, false)
	if err == nil || !strings.Contains(err.Error(), "callTimeTotal") {
		t.Fatalf("expected callTimeTotal error, got %v", err)
	}
	if len(be.created) != charts.NumBuckets-1 {
		t.Fatalf("other charts should still render, got %d", len(be.created))
	}
}

func TestFailedRecreateResetsPanel(t *testing.T) {
	be := &fakeBackend{failNames: map[string]bool{}}
	w := New(be)
	if err := w.Update(snapshot(), false, false); err != nil {
		t.Fatalf("first update: %v", err)
	}
	if p, _ := w.Container().Panel(charts.CallTimeTotal); p.Chart == nil || p.Mode == "" || p.Height == 0 {
		t.Fatalf("panel should be rendered: %+v", p)
	}
	be.failNames["callTimeTotal"] = true
	if err := w.Update(snapshot(), false, false); err == nil {
		t.Fatalf("expected callTimeTotal error")
	}
	p, _ := w.Container().Panel(charts.CallTimeTotal)
	if p.Chart != nil || p.Mode != "" || p.Height != 0 {
		t.Fatalf("failed panel should be reset: %+v", p)
	}
	if p.Title == "" {
		t.Fatalf("title should survive a failed render")
	}
}

func TestClearLogsDestroyFailuresAndContinues(t *testing.T) {
	var buf bytes.Buffer
	logging.SetOutput(&buf)
	defer logging.SetOutput(os.Stderr)

	be := &fakeBackend{destroyErr: errors.New("canvas gone")}
	w := New(be)
	_ = w.Update(snapshot(), false, false)
	w.Clear()
	for _, h := range be.created {
		if h.destroyed != 1 {
			t.Fatalf("%s destroyed %d times", h.cfg.Name, h.destroyed)
		}
	}
	if got := strings.Count(buf.String(), "canvas gone"); got != charts.NumBuckets {
		t.Fatalf("expected %d logged failures got %d: %s", charts.NumBuckets, got, buf.String())
	}
	for _, p := range w.Container().Panels() {
		if p.Chart != nil {
			t.Fatalf("%s still holds a chart after Clear", p.Bucket)
		}
	}
}

func TestDestroyTwice(t *testing.T) {
	be := &fakeBackend{}
	w := New(be)
	host := &fakeHost{}
	w.Container().Attach(host)
	_ = w.Update(snapshot(), false, false)

	w.Destroy()
	w.Destroy()

	if !w.Destroyed() {
		t.Fatalf("widget should report destroyed")
	}
	if host.detached != 1 {
		t.Fatalf("host detached %d times", host.detached)
	}
	for _, h := range be.created {
		if h.destroyed != 1 {
			t.Fatalf("%s destroyed %d times", h.cfg.Name, h.destroyed)
		}
	}
	if w.Container().Panels() != nil || w.Container().Attached() {
		t.Fatalf("destroyed container should be empty and detached")
	}
	if err := w.Update(snapshot(), false, false); !errors.Is(err, ErrDestroyed) {
		t.Fatalf("update after destroy: %v", err)
	}
}

func TestSettings(t *testing.T) {
	w := New(&fakeBackend{}, WithLanguage("ro-RO"), WithFontSize(CompactFontSize), WithCompact(true), WithFontColor("#222222"))
	if p, _ := w.Container().Panel(charts.CallsCount); p.Title != "Număr apeluri" {
		t.Fatalf("ro title: %q", p.Title)
	}
	w.SetLanguage("en")
	if p, _ := w.Container().Panel(charts.CallsCount); p.Title != "Calls count" {
		t.Fatalf("retitle: %q", p.Title)
	}
	if w.FontSize() != CompactFontSize || w.FontColor() != "#222222" || !w.Compact() {
		t.Fatalf("options not applied")
	}

	names := w.IgnoredFunctionNames()
	names[0] = "mutated"
	if w.IgnoredFunctionNames()[0] != DefaultIgnoredFunctionNames[0] {
		t.Fatalf("ignore list leaked")
	}
	be := &fakeBackend{}
	w2 := New(be)
	w2.SetIgnoredFunctionNames([]string{"foo"})
	_ = w2.Update(snapshot(), false, false)
	cats := be.last("callsCount").cfg.Data.Categories
	if len(cats) != 2 || cats[0] != "bar" || cats[1] != "rpc.performanceCounters" {
		t.Fatalf("custom ignore list not applied: %v", cats)
	}
}

func TestUpdateChartInvalidBucket(t *testing.T) {
	w := New(&fakeBackend{})
	if err := w.UpdateChart(charts.Bucket(-1), nil, false); err == nil {
		t.Fatalf("expected error")
	}
}

func TestUpdateWithMalformedFontColor(t *testing.T) {
	for _, c := range []string{"white", "#12345", "#zzzzzz", "rgb(1,2,3)"} {
		w := New(pngchart.New(400))
		w.SetFontColor(c)
		if err := w.Update(snapshot(), true, false); err != nil {
			t.Fatalf("font color %q: %v", c, err)
		}
		for _, p := range w.Container().Panels() {
			pc, ok := p.Chart.(*pngchart.Chart)
			if !ok || pc.Image() == nil {
				t.Fatalf("font color %q: %s has no image", c, p.Bucket)
			}
		}
		w.Destroy()
	}
}
