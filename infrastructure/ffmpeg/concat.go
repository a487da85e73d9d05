package ffmpeg

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"flashcut/domain/reel"
)

// Concatenator implements reel.Concatenator using ffmpeg's concat demuxer.
// The cut segments share codec and container, so the join is a stream copy.
type Concatenator struct {
	ffmpegPath string
	runner     CommandRunner
}

// ConcatenatorOption is a functional option for configuring Concatenator
type ConcatenatorOption func(*Concatenator)

// WithConcatFFmpegPath sets a custom ffmpeg executable path
func WithConcatFFmpegPath(path string) ConcatenatorOption {
	return func(c *Concatenator) {
		c.ffmpegPath = path
	}
}

// WithConcatCommandRunner sets a custom command runner (for testing)
func WithConcatCommandRunner(runner CommandRunner) ConcatenatorOption {
	return func(c *Concatenator) {
		c.runner = runner
	}
}

// NewConcatenator creates a new FFmpeg-based concatenator
func NewConcatenator(opts ...ConcatenatorOption) *Concatenator {
	c := &Concatenator{
		ffmpegPath: "ffmpeg",
		runner:     NewExecCommandRunner(slog.Default()),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Concat implements reel.Concatenator
func (c *Concatenator) Concat(ctx context.Context, partPaths []string, outputPath string) error {
	if len(partPaths) == 0 {
		return fmt.Errorf("no segments to concatenate")
	}

	listPath, err := writeConcatList(partPaths)
	if err != nil {
		return fmt.Errorf("failed to create concat list: %w", err)
	}
	defer os.Remove(listPath)

	args := []string{
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-c", "copy",
		"-y",
		outputPath,
	}

	if err := c.runner.Run(ctx, c.ffmpegPath, args...); err != nil {
		return fmt.Errorf("ffmpeg concat failed: %w", err)
	}

	return nil
}

// writeConcatList writes the demuxer's file list with absolute paths.
func writeConcatList(paths []string) (string, error) {
	tmp, err := os.CreateTemp("", "flashcut-concat-*.txt")
	if err != nil {
		return "", err
	}
	defer tmp.Close()

	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			os.Remove(tmp.Name())
			return "", err
		}
		if _, err := fmt.Fprintf(tmp, "file '%s'\n", abs); err != nil {
			os.Remove(tmp.Name())
			return "", err
		}
	}

	return tmp.Name(), nil
}

// Ensure Concatenator implements reel.Concatenator
var _ reel.Concatenator = (*Concatenator)(nil)
