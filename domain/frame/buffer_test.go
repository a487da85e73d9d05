package frame

import (
	"errors"
	"testing"
)

// fillBuffer creates a w x h 3-channel buffer with every pixel set to rgb.
func fillBuffer(w, h int, rgb [3]byte) *PixelBuffer {
	pix := make([]byte, w*h*3)
	for i := 0; i < w*h; i++ {
		pix[i*3] = rgb[0]
		pix[i*3+1] = rgb[1]
		pix[i*3+2] = rgb[2]
	}
	return &PixelBuffer{Width: w, Height: h, Channels: 3, Pix: pix}
}

func TestPixelBufferValidate(t *testing.T) {
	t.Run("accepts matching dimensions", func(t *testing.T) {
		buf := fillBuffer(12, 9, [3]byte{10, 20, 30})
		if err := buf.Validate(); err != nil {
			t.Errorf("expected valid buffer, got %v", err)
		}
	})

	t.Run("rejects length mismatch", func(t *testing.T) {
		buf := &PixelBuffer{Width: 4, Height: 4, Channels: 3, Pix: make([]byte, 47)}
		err := buf.Validate()
		if !errors.Is(err, ErrMalformedBuffer) {
			t.Errorf("expected ErrMalformedBuffer, got %v", err)
		}
	})

	t.Run("rejects zero dimensions", func(t *testing.T) {
		buf := &PixelBuffer{Width: 0, Height: 4, Channels: 3}
		if !errors.Is(buf.Validate(), ErrMalformedBuffer) {
			t.Error("expected ErrMalformedBuffer for zero width")
		}
	})

	t.Run("rejects fewer than three channels", func(t *testing.T) {
		buf := &PixelBuffer{Width: 4, Height: 4, Channels: 1, Pix: make([]byte, 16)}
		if !errors.Is(buf.Validate(), ErrMalformedBuffer) {
			t.Error("expected ErrMalformedBuffer for grayscale buffer")
		}
	})
}

func TestPixelBufferAt(t *testing.T) {
	buf := &PixelBuffer{Width: 2, Height: 2, Channels: 3, Pix: []byte{
		1, 2, 3, 4, 5, 6,
		7, 8, 9, 10, 11, 12,
	}}

	if got := buf.At(1, 0, ChannelGreen); got != 5 {
		t.Errorf("At(1,0,green) = %d, expected 5", got)
	}
	if got := buf.At(0, 1, ChannelRed); got != 7 {
		t.Errorf("At(0,1,red) = %d, expected 7", got)
	}
}
