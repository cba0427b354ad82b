package main

import (
	"bytes"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/oxygen/api-performance-counters-ui/src/config"
	"github.com/oxygen/api-performance-counters-ui/src/counters"
	"github.com/oxygen/api-performance-counters-ui/src/render/pngchart"
	apcwidget "github.com/oxygen/api-performance-counters-ui/src/widget"
)

// RunScreenshotsMode renders all six charts and writes them as PNGs under outDir.
// It runs headlessly without creating a UI window; buckets without data get a placeholder.
func RunScreenshotsMode(filePath, outDir string, cfg config.Config, width int) error {
	if filePath == "" {
		filePath = counters.DefaultFile
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create out dir: %w", err)
	}
	pc, err := counters.Load(filePath)
	if err != nil {
		return err
	}
	opts, err := cfg.WidgetOptions()
	if err != nil {
		return err
	}
	cw := apcwidget.New(pngchart.New(width), opts...)
	defer cw.Destroy()
	if err := cw.Update(pc, true, false); err != nil {
		return err
	}

	for _, p := range cw.Container().Panels() {
		img := panelImage(p, width, cfg.Compact, cfg.FontColor)
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return fmt.Errorf("png encode %s: %w", p.Bucket, err)
		}
		outPath := filepath.Join(outDir, p.Bucket.String()+".png")
		if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", outPath, err)
		}
	}
	return nil
}
