package frame

import "fmt"

// PixelBuffer is a decoded frame: row-major interleaved channel bytes.
// The buffer is read-only for the duration of a scoring call and is owned
// by the caller, never by a scorer.
type PixelBuffer struct {
	Width    int
	Height   int
	Channels int
	Pix      []byte
}

// Validate checks that the byte slice matches the declared dimensions.
// A mismatch is reported as ErrMalformedBuffer; callers treat the frame
// as a non-event and keep going.
func (b *PixelBuffer) Validate() error {
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrMalformedBuffer, b.Width, b.Height)
	}
	if b.Channels < 3 {
		return fmt.Errorf("%w: need at least 3 channels, got %d", ErrMalformedBuffer, b.Channels)
	}
	expected := b.Width * b.Height * b.Channels
	if len(b.Pix) != expected {
		return fmt.Errorf("%w: buffer length %d, expected %d (%dx%dx%d)",
			ErrMalformedBuffer, len(b.Pix), expected, b.Width, b.Height, b.Channels)
	}
	return nil
}

// PixelCount returns the number of pixels in the frame.
func (b *PixelBuffer) PixelCount() int {
	return b.Width * b.Height
}

// At returns the value of channel c for the pixel at (x, y).
// Bounds are the caller's responsibility; Validate guards the batch path.
func (b *PixelBuffer) At(x, y, c int) byte {
	return b.Pix[(y*b.Width+x)*b.Channels+c]
}
