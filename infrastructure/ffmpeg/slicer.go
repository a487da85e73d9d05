package ffmpeg

import (
	"context"
	"fmt"
	"log/slog"

	"flashcut/domain/reel"
	"flashcut/domain/segment"
)

// Slicer implements reel.Slicer using ffmpeg.
type Slicer struct {
	ffmpegPath string
	runner     CommandRunner
	reEncode   bool
}

// SlicerOption is a functional option for configuring Slicer
type SlicerOption func(*Slicer)

// WithSlicerFFmpegPath sets a custom ffmpeg executable path
func WithSlicerFFmpegPath(path string) SlicerOption {
	return func(s *Slicer) {
		s.ffmpegPath = path
	}
}

// WithSlicerCommandRunner sets a custom command runner (for testing)
func WithSlicerCommandRunner(runner CommandRunner) SlicerOption {
	return func(s *Slicer) {
		s.runner = runner
	}
}

// WithReEncode re-encodes cuts instead of stream-copying. Slower, but the
// cut lands exactly on the requested start instead of the previous keyframe.
func WithReEncode() SlicerOption {
	return func(s *Slicer) {
		s.reEncode = true
	}
}

// NewSlicer creates a new FFmpeg-based segment slicer
func NewSlicer(opts ...SlicerOption) *Slicer {
	s := &Slicer{
		ffmpegPath: "ffmpeg",
		runner:     NewExecCommandRunner(slog.Default()),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Cut implements reel.Slicer. It seeks to the spec's start and cuts for
// its duration; clamped specs near t=0 simply yield a shorter piece.
func (s *Slicer) Cut(ctx context.Context, sourcePath string, spec segment.Spec, outputPath string) error {
	args := []string{
		"-ss", fmt.Sprintf("%.3f", spec.StartTime),
		"-i", sourcePath,
		"-t", fmt.Sprintf("%.3f", spec.EndTime-spec.StartTime),
	}

	if s.reEncode {
		args = append(args, "-c:v", "libx264", "-preset", "fast", "-c:a", "aac")
	} else {
		args = append(args, "-c", "copy")
	}

	args = append(args, "-y", outputPath)

	if err := s.runner.Run(ctx, s.ffmpegPath, args...); err != nil {
		return fmt.Errorf("ffmpeg segment cut at %.3fs failed: %w", spec.StartTime, err)
	}

	return nil
}

// VerifyInstalled checks that ffmpeg is available
func (s *Slicer) VerifyInstalled(ctx context.Context) error {
	_, err := s.runner.Output(ctx, s.ffmpegPath, "-version")
	if err != nil {
		return fmt.Errorf("ffmpeg not found or not executable: %w", err)
	}
	return nil
}

// Ensure Slicer implements reel.Slicer
var _ reel.Slicer = (*Slicer)(nil)
