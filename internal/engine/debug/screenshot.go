// Package debug provides developer utilities for the viewer.
package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/orbitshade/internal/logger"
)

// ScreenshotCapture writes frames as timestamped PNG files.
type ScreenshotCapture struct {
	outputDir string
	prefix    string
	now       func() time.Time
	log       *zap.Logger
}

// NewScreenshotCapture creates a new screenshot capture handler.
func NewScreenshotCapture(outputDir, prefix string) *ScreenshotCapture {
	return &ScreenshotCapture{
		outputDir: outputDir,
		prefix:    prefix,
		now:       time.Now,
		log:       logger.Named("screenshot"),
	}
}

// SetOutputDir sets the output directory for screenshots.
func (sc *ScreenshotCapture) SetOutputDir(dir string) {
	sc.outputDir = dir
}

// GenerateFilename returns the path the next capture would be written to.
// Captures within the same second get a numeric suffix.
func (sc *ScreenshotCapture) GenerateFilename() string {
	base := fmt.Sprintf("%s_%s", sc.prefix, sc.now().Format("2006-01-02_15-04-05"))
	name := filepath.Join(sc.outputDir, base+".png")
	for i := 2; fileExists(name); i++ {
		name = filepath.Join(sc.outputDir, fmt.Sprintf("%s_%d.png", base, i))
	}
	return name
}

// CaptureFromImage saves img and returns the file name.
func (sc *ScreenshotCapture) CaptureFromImage(img image.Image) (string, error) {
	if sc.outputDir != "" {
		if err := os.MkdirAll(sc.outputDir, 0o755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := sc.GenerateFilename()
	if err := WritePNG(filename, img); err != nil {
		return "", err
	}

	b := img.Bounds()
	sc.log.Info("screenshot saved",
		zap.String("path", filename),
		zap.Int("width", b.Dx()),
		zap.Int("height", b.Dy()))
	return filename, nil
}

// WritePNG encodes img to path through a temporary file, so a failed
// encode never leaves a truncated image behind.
func WritePNG(path string, img image.Image) error {
	tmp := path + ".tmp"
	file, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}

	if err := png.Encode(file, img); err != nil {
		file.Close()
		os.Remove(tmp)
		return fmt.Errorf("encoding PNG: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("closing file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming file: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
