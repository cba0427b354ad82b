package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	png "image/png"
	"io"
	"os"
	"strings"
	"time"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/oxygen/api-performance-counters-ui/cmd/apcviewer/uihelpers"
	"github.com/oxygen/api-performance-counters-ui/src/charts"
	"github.com/oxygen/api-performance-counters-ui/src/config"
	"github.com/oxygen/api-performance-counters-ui/src/counters"
	"github.com/oxygen/api-performance-counters-ui/src/logging"
	"github.com/oxygen/api-performance-counters-ui/src/render/htmlchart"
	"github.com/oxygen/api-performance-counters-ui/src/render/pngchart"
	"github.com/oxygen/api-performance-counters-ui/src/types"
	apcwidget "github.com/oxygen/api-performance-counters-ui/src/widget"
)

// paletteChoices are the schemes offered in the toolbar.
var viewerLog = logging.For("viewer")

var paletteChoices = []string{"mpn65", "cb-Set1", "cb-Set2", "cb-Set3", "cb-Dark2", "cb-Paired", "cb-Accent", "cb-Pastel1", "cb-Pastel2"}

type uiState struct {
	app      fyne.App
	window   fyne.Window
	filePath string
	cfg      config.Config

	backend *pngchart.Backend
	charts  *apcwidget.Widget
	last    *types.PerformanceCounters

	// one title + image per bucket, in bucket order
	titles [charts.NumBuckets]*widget.Label
	images [charts.NumBuckets]*canvas.Image
	status *widget.Label

	// auto reload
	watch     time.Duration
	stopWatch chan struct{}
	lastMod   time.Time
	lastSize  int64
}

// Detach is called when the widget is destroyed; the panels go blank.
func (s *uiState) Detach(c *apcwidget.Container) {
	for i := range s.images {
		if s.images[i] == nil {
			continue
		}
		s.images[i].Image = nil
		s.images[i].Refresh()
	}
	if s.status != nil {
		s.status.SetText("charts closed")
	}
}

// dark theme wrapper
type darkTheme struct{}

func (d *darkTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	return theme.DefaultTheme().Color(name, theme.VariantDark)
}
func (d *darkTheme) Font(style fyne.TextStyle) fyne.Resource { return theme.DefaultTheme().Font(style) }
func (d *darkTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}
func (d *darkTheme) Size(name fyne.ThemeSizeName) float32 { return theme.DefaultTheme().Size(name) }

func main() {
	var fileFlag, configFlag, screenshotsDir string
	var screenshots bool
	var screenshotsWidth int
	flag.StringVar(&fileFlag, "file", "", "Path to a performance counters snapshot (.json or .jsonl)")
	flag.StringVar(&configFlag, "config", "", "Optional YAML settings file")
	flag.BoolVar(&screenshots, "screenshots", false, "Render all charts to PNG files and exit (no window)")
	flag.StringVar(&screenshotsDir, "screenshots-dir", "screenshots", "Output directory for -screenshots")
	flag.IntVar(&screenshotsWidth, "screenshots-width", 1100, "Chart width for -screenshots")
	flag.Parse()

	cfg, err := config.Load(configFlag)
	if err != nil {
		fmt.Printf("[viewer] config: %v\n", err)
		os.Exit(1)
	}
	cfg.Apply()

	if screenshots {
		if err := RunScreenshotsMode(fileFlag, screenshotsDir, cfg, screenshotsWidth); err != nil {
			fmt.Printf("[viewer] screenshots: %v\n", err)
			os.Exit(1)
		}
		return
	}

	a := app.NewWithID("com.apc.viewer")
	a.Settings().SetTheme(&darkTheme{})
	w := a.NewWindow("API Performance Charts")
	w.Resize(fyne.NewSize(1100, 800))

	state := &uiState{
		app:      a,
		window:   w,
		filePath: fileFlag,
		cfg:      cfg,
		backend:  pngchart.New(uihelpers.ComputeChartWidth(1100)),
	}
	loadPrefs(state)
	if err := rebuildWidget(state); err != nil {
		dialog.ShowError(err, w)
	}

	fileLabel := widget.NewLabel(uihelpers.TruncatePath(state.filePath, 60))
	state.status = widget.NewLabel("")

	langSelect := widget.NewSelect(charts.Languages(), nil)
	langSelect.Selected = state.cfg.Language
	paletteSelect := widget.NewSelect(paletteChoices, nil)
	paletteSelect.Selected = state.cfg.Palette
	watchSelect := widget.NewSelect(uihelpers.WatchIntervalLabels, nil)
	watchSelect.Selected = watchLabel(state.watch)
	compactChk := widget.NewCheck("Compact", nil)
	compactChk.SetChecked(state.cfg.Compact)
	reloadBtn := widget.NewButton("Reload", func() { loadAll(state, fileLabel) })

	panels := container.NewVBox()
	for _, b := range charts.Buckets {
		state.titles[b] = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
		img := canvas.NewImageFromImage(nil)
		img.FillMode = canvas.ImageFillContain
		state.images[b] = img
		panels.Add(state.titles[b])
		panels.Add(img)
	}

	// callbacks are wired once every widget exists
	langSelect.OnChanged = func(v string) {
		state.cfg.Language = v
		state.charts.SetLanguage(v)
		savePrefs(state)
		buildMenus(state, fileLabel)
		rerender(state)
	}
	paletteSelect.OnChanged = func(v string) {
		state.cfg.Palette = v
		if err := rebuildWidget(state); err != nil {
			dialog.ShowError(err, w)
			return
		}
		savePrefs(state)
		rerender(state)
	}
	compactChk.OnChanged = func(b bool) {
		state.cfg.Compact = b
		state.charts.SetCompact(b)
		if b {
			state.charts.SetFontSize(apcwidget.CompactFontSize)
		} else {
			state.charts.SetFontSize(state.cfg.FontSize)
		}
		savePrefs(state)
		rerender(state)
	}
	watchSelect.OnChanged = func(v string) {
		state.watch = uihelpers.ParseWatchInterval(v)
		savePrefs(state)
		startWatch(state, fileLabel)
	}

	top := container.NewVBox(
		container.NewHBox(widget.NewLabel("File:"), fileLabel, reloadBtn),
		container.NewHBox(
			widget.NewLabel("Language"), langSelect,
			widget.NewLabel("Colors"), paletteSelect,
			compactChk,
			widget.NewLabel("Auto reload"), watchSelect,
		),
	)
	w.SetContent(container.NewBorder(top, state.status, nil, nil, container.NewVScroll(panels)))
	w.SetOnClosed(func() {
		stopWatch(state)
		if state.charts != nil {
			state.charts.Destroy()
		}
	})

	buildMenus(state, fileLabel)
	loadAll(state, fileLabel)
	startWatch(state, fileLabel)

	w.ShowAndRun()
}

// rebuildWidget replaces the chart widget, e.g. after a palette change.
func rebuildWidget(state *uiState) error {
	opts, err := state.cfg.WidgetOptions()
	if err != nil {
		return err
	}
	if state.cfg.Compact {
		opts = append(opts, apcwidget.WithFontSize(apcwidget.CompactFontSize))
	}
	if state.charts != nil {
		state.charts.Destroy()
	}
	state.charts = apcwidget.New(state.backend, opts...)
	state.charts.Container().Attach(state)
	return nil
}

// menus and dialogs
func buildMenus(state *uiState, fileLabel *widget.Label) {
	if state == nil || state.window == nil || state.app == nil {
		return
	}
	var items []*fyne.MenuItem
	for _, f := range recentFiles(state) {
		f := f
		items = append(items, fyne.NewMenuItem(uihelpers.TruncatePath(f, 60), func() {
			state.filePath = f
			fileLabel.SetText(uihelpers.TruncatePath(state.filePath, 60))
			savePrefs(state)
			loadAll(state, fileLabel)
		}))
	}
	clearRecent := fyne.NewMenuItem("Clear Recent", func() { clearRecentFiles(state); buildMenus(state, fileLabel) })
	recentMenu := fyne.NewMenu("Open Recent", append(items, clearRecent)...)

	fileItems := []*fyne.MenuItem{
		fyne.NewMenuItem("Open…", func() { openFileDialog(state, fileLabel) }),
		fyne.NewMenuItem("Reload", func() { loadAll(state, fileLabel) }),
		fyne.NewMenuItemSeparator(),
	}
	for i, label := range exportLabels(state.cfg.Language) {
		b := charts.Buckets[i]
		fileItems = append(fileItems, fyne.NewMenuItem(label, func() { exportChartPNG(state, b) }))
	}
	fileItems = append(fileItems,
		fyne.NewMenuItem("Export HTML Page…", func() { exportHTML(state) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { state.window.Close() }),
	)
	state.window.SetMainMenu(fyne.NewMainMenu(fyne.NewMenu("File", fileItems...), recentMenu))

	canv := state.window.Canvas()
	if canv != nil {
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { openFileDialog(state, fileLabel) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { openFileDialog(state, fileLabel) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyR, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { loadAll(state, fileLabel) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyR, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { loadAll(state, fileLabel) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { state.window.Close() })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { state.window.Close() })
	}
}

// exportLabels returns the per-bucket export menu labels in bucket order.
func exportLabels(lang string) []string {
	texts := charts.TextsFor(lang)
	out := make([]string, 0, charts.NumBuckets)
	for _, b := range charts.Buckets {
		out = append(out, "Export "+texts.Title(b)+"…")
	}
	return out
}

func openFileDialog(state *uiState, fileLabel *widget.Label) {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		defer rc.Close()
		state.filePath = rc.URI().Path()
		fileLabel.SetText(uihelpers.TruncatePath(state.filePath, 60))
		addRecentFile(state, state.filePath)
		savePrefs(state)
		buildMenus(state, fileLabel)
		loadAll(state, fileLabel)
	}, state.window)
	d.Show()
}

// loadAll reads the snapshot and recreates every chart.
func loadAll(state *uiState, fileLabel *widget.Label) {
	if state.filePath == "" {
		if _, err := os.Stat(counters.DefaultFile); err != nil {
			return
		}
		state.filePath = counters.DefaultFile
		if fileLabel != nil {
			fileLabel.SetText(uihelpers.TruncatePath(state.filePath, 60))
		}
	}
	if fi, err := os.Stat(state.filePath); err == nil {
		state.lastMod, state.lastSize = fi.ModTime(), fi.Size()
	}
	pc, err := counters.Load(state.filePath)
	if err != nil {
		dialog.ShowError(err, state.window)
		return
	}
	state.last = pc
	rerender(state)
	fmt.Printf("[viewer] loaded %d functions from %s\n", pc.Len(), state.filePath)
}

// rerender recreates the charts from the last snapshot at the current window width.
func rerender(state *uiState) {
	if state.last == nil || state.charts == nil {
		redrawCharts(state)
		return
	}
	state.backend.Width = chartWidth(state)
	if err := state.charts.Update(state.last, true, false); err != nil {
		viewerLog.Errorf("update: %v", err)
		if state.status != nil {
			state.status.SetText(err.Error())
		}
	} else if state.status != nil {
		state.status.SetText(fmt.Sprintf("%d functions, updated %s", state.last.Len(), time.Now().Format("15:04:05")))
	}
	redrawCharts(state)
}

func redrawCharts(state *uiState) {
	if state.charts == nil {
		return
	}
	width := chartWidth(state)
	for _, p := range state.charts.Container().Panels() {
		if t := state.titles[p.Bucket]; t != nil {
			t.SetText(p.Title)
		}
		img := state.images[p.Bucket]
		if img == nil {
			continue
		}
		img.Image = panelImage(p, width, state.cfg.Compact, state.cfg.FontColor)
		b := img.Image.Bounds()
		img.SetMinSize(fyne.NewSize(float32(b.Dx()), float32(b.Dy())))
		img.Refresh()
	}
}

// panelImage returns the rendered chart of p, or a placeholder when there is none.
func panelImage(p apcwidget.Panel, width int, compact bool, fontColor string) image.Image {
	if c, ok := p.Chart.(*pngchart.Chart); ok {
		if img := c.Image(); img != nil {
			return img
		}
	}
	return pngchart.Placeholder(width, uihelpers.ComputePanelHeight(p.Height, compact), p.Title, fontColor)
}

// chartWidth follows the window width so charts use the available space.
func chartWidth(state *uiState) int {
	if state == nil || state.window == nil || state.window.Canvas() == nil {
		return uihelpers.ComputeChartWidth(1100)
	}
	return uihelpers.ComputeChartWidth(state.window.Canvas().Size().Width)
}

// auto reload
func startWatch(state *uiState, fileLabel *widget.Label) {
	stopWatch(state)
	if state.watch <= 0 {
		return
	}
	stop := make(chan struct{})
	state.stopWatch = stop
	interval := state.watch
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-stop:
				return
			case <-t.C:
				fyne.Do(func() {
					if state.filePath == "" {
						return
					}
					fi, err := os.Stat(state.filePath)
					if err != nil {
						return
					}
					if uihelpers.FileChanged(state.lastMod, state.lastSize, fi.ModTime(), fi.Size()) {
						viewerLog.Debugf("%s changed, reloading", state.filePath)
						loadAll(state, fileLabel)
					}
				})
			}
		}
	}()
}

func stopWatch(state *uiState) {
	if state.stopWatch != nil {
		close(state.stopWatch)
		state.stopWatch = nil
	}
}

func watchLabel(d time.Duration) string {
	for _, l := range uihelpers.WatchIntervalLabels {
		if uihelpers.ParseWatchInterval(l) == d {
			return l
		}
	}
	return uihelpers.WatchIntervalLabels[0]
}

// export PNG
func exportChartPNG(state *uiState, b charts.Bucket) {
	p, ok := state.charts.Container().Panel(b)
	var img image.Image
	if ok {
		if c, isPNG := p.Chart.(*pngchart.Chart); isPNG {
			img = c.Image()
		}
	}
	if img == nil {
		dialog.ShowInformation("Export", "No chart to export.", state.window)
		return
	}
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()
		if err := png.Encode(wc, img); err != nil {
			dialog.ShowError(err, state.window)
		}
	}, state.window)
	fs.SetFileName(b.String() + ".png")
	fs.Show()
}

// export HTML
func exportHTML(state *uiState) {
	if state.last == nil {
		dialog.ShowInformation("Export", "Nothing loaded yet.", state.window)
		return
	}
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()
		if err := writeHTML(wc, state.last, state.cfg, chartWidth(state)); err != nil {
			dialog.ShowError(err, state.window)
		}
	}, state.window)
	fs.SetFileName("charts.html")
	fs.Show()
}

// writeHTML renders pc with the html backend using the viewer settings.
func writeHTML(w io.Writer, pc *types.PerformanceCounters, cfg config.Config, width int) error {
	backend := htmlchart.New(width)
	opts, err := cfg.WidgetOptions()
	if err != nil {
		return err
	}
	cw := apcwidget.New(backend, opts...)
	defer cw.Destroy()
	if err := cw.Update(pc, true, cfg.Animations); err != nil {
		return err
	}
	return backend.Render(w, htmlchart.DefaultTitle)
}

// recent files helpers
func recentFiles(state *uiState) []string {
	raw := state.app.Preferences().StringWithFallback("recentFiles", "")
	if raw == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(raw, "\n") {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			out = append(out, p)
		}
	}
	return out
}

func addRecentFile(state *uiState, path string) {
	list := uihelpers.AddRecent(recentFiles(state), path, 10)
	state.app.Preferences().SetString("recentFiles", strings.Join(list, "\n"))
}

func clearRecentFiles(state *uiState) {
	if state == nil || state.app == nil {
		return
	}
	state.app.Preferences().SetString("recentFiles", "")
}

// prefs
func savePrefs(state *uiState) {
	if state == nil || state.app == nil {
		return
	}
	prefs := state.app.Preferences()
	prefs.SetString("lastFile", state.filePath)
	prefs.SetString("language", state.cfg.Language)
	prefs.SetString("palette", state.cfg.Palette)
	prefs.SetBool("compact", state.cfg.Compact)
	prefs.SetString("watch", watchLabel(state.watch))
}

// loadPrefs overlays saved preferences on the config; an explicit -file wins.
func loadPrefs(state *uiState) {
	if state == nil || state.app == nil {
		return
	}
	prefs := state.app.Preferences()
	if state.filePath == "" {
		state.filePath = prefs.StringWithFallback("lastFile", "")
	}
	state.cfg.Language = prefs.StringWithFallback("language", state.cfg.Language)
	if p := prefs.StringWithFallback("palette", state.cfg.Palette); p != "" {
		if _, err := charts.NewPalette(p); err == nil {
			state.cfg.Palette = p
		}
	}
	state.cfg.Compact = prefs.BoolWithFallback("compact", state.cfg.Compact)
	state.watch = uihelpers.ParseWatchInterval(prefs.StringWithFallback("watch", "Off"))
}
