package ffmpeg

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"flashcut/domain/frame"
	"flashcut/domain/segment"
)

// recordingRunner captures invocations instead of executing them.
type recordingRunner struct {
	commands [][]string
	runErr   error
}

func (r *recordingRunner) Run(ctx context.Context, name string, args ...string) error {
	r.commands = append(r.commands, append([]string{name}, args...))
	return r.runErr
}

func (r *recordingRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	r.commands = append(r.commands, append([]string{name}, args...))
	return nil, r.runErr
}

func (r *recordingRunner) last() []string {
	return r.commands[len(r.commands)-1]
}

func TestExtractor(t *testing.T) {
	t.Run("builds fps and scale filter", func(t *testing.T) {
		runner := &recordingRunner{}
		e := NewExtractor(WithExtractorCommandRunner(runner))

		dir := t.TempDir()
		_, err := e.Extract(context.Background(), "in.mp4", dir, frame.ExtractOptions{FrameRate: 6, ScaleWidth: 640})
		if err != nil {
			t.Fatalf("Extract failed: %v", err)
		}

		cmd := strings.Join(runner.last(), " ")
		if !strings.Contains(cmd, "fps=6,scale=640:-1") {
			t.Errorf("expected fps/scale filter in command, got %q", cmd)
		}
		if !strings.Contains(cmd, "frame_%06d.png") {
			t.Errorf("expected numbered png pattern in command, got %q", cmd)
		}
	})

	t.Run("returns frames in index order", func(t *testing.T) {
		runner := &recordingRunner{}
		e := NewExtractor(WithExtractorCommandRunner(runner))

		dir := t.TempDir()
		for _, name := range []string{"frame_000002.png", "frame_000010.png", "frame_000001.png"} {
			if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
				t.Fatalf("failed to seed frame file: %v", err)
			}
		}

		paths, err := e.Extract(context.Background(), "in.mp4", dir, frame.ExtractOptions{FrameRate: 6, ScaleWidth: 640})
		if err != nil {
			t.Fatalf("Extract failed: %v", err)
		}

		if len(paths) != 3 {
			t.Fatalf("expected 3 frames, got %d", len(paths))
		}
		if filepath.Base(paths[0]) != "frame_000001.png" || filepath.Base(paths[2]) != "frame_000010.png" {
			t.Errorf("frames not in index order: %v", paths)
		}
	})

	t.Run("propagates ffmpeg failure", func(t *testing.T) {
		runner := &recordingRunner{runErr: errors.New("boom")}
		e := NewExtractor(WithExtractorCommandRunner(runner))

		if _, err := e.Extract(context.Background(), "in.mp4", t.TempDir(), frame.ExtractOptions{FrameRate: 6, ScaleWidth: 640}); err == nil {
			t.Error("expected error when ffmpeg fails")
		}
	})
}

func TestSlicer(t *testing.T) {
	t.Run("stream copies by default", func(t *testing.T) {
		runner := &recordingRunner{}
		s := NewSlicer(WithSlicerCommandRunner(runner))

		spec := segment.Spec{StartTime: 97, EndTime: 102, Duration: 5}
		if err := s.Cut(context.Background(), "in.mp4", spec, "part.mp4"); err != nil {
			t.Fatalf("Cut failed: %v", err)
		}

		cmd := strings.Join(runner.last(), " ")
		if !strings.Contains(cmd, "-ss 97.000") {
			t.Errorf("expected seek to 97.000, got %q", cmd)
		}
		if !strings.Contains(cmd, "-t 5.000") {
			t.Errorf("expected 5.000s duration, got %q", cmd)
		}
		if !strings.Contains(cmd, "-c copy") {
			t.Errorf("expected stream copy, got %q", cmd)
		}
	})

	t.Run("clamped spec cuts a shorter piece", func(t *testing.T) {
		runner := &recordingRunner{}
		s := NewSlicer(WithSlicerCommandRunner(runner))

		spec := segment.Spec{StartTime: 0, EndTime: 3, Duration: 5}
		if err := s.Cut(context.Background(), "in.mp4", spec, "part.mp4"); err != nil {
			t.Fatalf("Cut failed: %v", err)
		}

		cmd := strings.Join(runner.last(), " ")
		if !strings.Contains(cmd, "-ss 0.000") || !strings.Contains(cmd, "-t 3.000") {
			t.Errorf("expected cut from 0 for 3s, got %q", cmd)
		}
	})

	t.Run("re-encode option switches codecs", func(t *testing.T) {
		runner := &recordingRunner{}
		s := NewSlicer(WithSlicerCommandRunner(runner), WithReEncode())

		spec := segment.Spec{StartTime: 10, EndTime: 15, Duration: 5}
		if err := s.Cut(context.Background(), "in.mp4", spec, "part.mp4"); err != nil {
			t.Fatalf("Cut failed: %v", err)
		}

		cmd := strings.Join(runner.last(), " ")
		if !strings.Contains(cmd, "libx264") {
			t.Errorf("expected re-encode codec, got %q", cmd)
		}
	})
}

func TestConcatenator(t *testing.T) {
	t.Run("uses concat demuxer", func(t *testing.T) {
		runner := &recordingRunner{}
		c := NewConcatenator(WithConcatCommandRunner(runner))

		if err := c.Concat(context.Background(), []string{"a.mp4", "b.mp4"}, "reel.mp4"); err != nil {
			t.Fatalf("Concat failed: %v", err)
		}

		cmd := strings.Join(runner.last(), " ")
		if !strings.Contains(cmd, "-f concat") || !strings.Contains(cmd, "-c copy") {
			t.Errorf("expected concat demuxer with stream copy, got %q", cmd)
		}
	})

	t.Run("rejects empty input", func(t *testing.T) {
		c := NewConcatenator(WithConcatCommandRunner(&recordingRunner{}))
		if err := c.Concat(context.Background(), nil, "reel.mp4"); err == nil {
			t.Error("expected error for empty segment list")
		}
	})
}
