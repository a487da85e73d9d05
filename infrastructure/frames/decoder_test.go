package frames

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeTestPNG(t *testing.T, w, h int, c color.RGBA) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}

	path := filepath.Join(t.TempDir(), "frame.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create png: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return path
}

func TestPNGDecoder(t *testing.T) {
	decoder := NewPNGDecoder()

	t.Run("decodes into a valid 3-channel buffer", func(t *testing.T) {
		path := writeTestPNG(t, 8, 6, color.RGBA{R: 200, G: 30, B: 10, A: 255})

		buf, err := decoder.Decode(path)
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}

		if buf.Width != 8 || buf.Height != 6 || buf.Channels != 3 {
			t.Errorf("dimensions = %dx%dx%d, expected 8x6x3", buf.Width, buf.Height, buf.Channels)
		}
		if err := buf.Validate(); err != nil {
			t.Errorf("decoded buffer failed validation: %v", err)
		}
		if buf.At(3, 2, 0) != 200 || buf.At(3, 2, 1) != 30 || buf.At(3, 2, 2) != 10 {
			t.Errorf("pixel = %d/%d/%d, expected 200/30/10",
				buf.At(3, 2, 0), buf.At(3, 2, 1), buf.At(3, 2, 2))
		}
	})

	t.Run("missing file fails", func(t *testing.T) {
		if _, err := decoder.Decode(filepath.Join(t.TempDir(), "missing.png")); err == nil {
			t.Error("expected error for missing frame file")
		}
	})

	t.Run("corrupt file fails", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.png")
		if err := os.WriteFile(path, []byte("not a png"), 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
		if _, err := decoder.Decode(path); err == nil {
			t.Error("expected error for corrupt frame file")
		}
	})
}
