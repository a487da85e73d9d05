package ffmpeg

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"flashcut/domain/frame"
)

// Extractor implements frame.Extractor using ffmpeg's fps filter.
type Extractor struct {
	ffmpegPath string
	runner     CommandRunner
}

// ExtractorOption is a functional option for configuring Extractor
type ExtractorOption func(*Extractor)

// WithExtractorFFmpegPath sets a custom ffmpeg executable path
func WithExtractorFFmpegPath(path string) ExtractorOption {
	return func(e *Extractor) {
		e.ffmpegPath = path
	}
}

// WithExtractorCommandRunner sets a custom command runner (for testing)
func WithExtractorCommandRunner(runner CommandRunner) ExtractorOption {
	return func(e *Extractor) {
		e.runner = runner
	}
}

// NewExtractor creates a new FFmpeg-based frame extractor
func NewExtractor(opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		ffmpegPath: "ffmpeg",
		runner:     NewExecCommandRunner(slog.Default()),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Extract implements frame.Extractor. Frames come back as sequentially
// numbered PNGs; the returned paths are sorted so that path index i is
// frame index i.
func (e *Extractor) Extract(ctx context.Context, videoPath, outputDir string, opts frame.ExtractOptions) ([]string, error) {
	pattern := filepath.Join(outputDir, "frame_%06d.png")

	args := []string{
		"-i", videoPath,
		"-vf", fmt.Sprintf("fps=%g,scale=%d:-1", opts.FrameRate, opts.ScaleWidth),
		"-y",
		pattern,
	}

	if err := e.runner.Run(ctx, e.ffmpegPath, args...); err != nil {
		return nil, fmt.Errorf("ffmpeg frame extraction failed: %w", err)
	}

	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list extracted frames: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".png") {
			continue
		}
		paths = append(paths, filepath.Join(outputDir, entry.Name()))
	}
	// ffmpeg numbers frames with zero padding, so a name sort is an
	// index sort.
	sort.Strings(paths)

	return paths, nil
}

// VerifyInstalled checks that ffmpeg is available
func (e *Extractor) VerifyInstalled(ctx context.Context) error {
	_, err := e.runner.Output(ctx, e.ffmpegPath, "-version")
	if err != nil {
		return fmt.Errorf("ffmpeg not found or not executable: %w", err)
	}
	return nil
}

// Ensure Extractor implements frame.Extractor
var _ frame.Extractor = (*Extractor)(nil)
