// Package frames decodes extracted frame images into pixel buffers.
package frames

import (
	"fmt"
	"image"
	"os"

	// Extracted frames are PNG; register the decoder.
	_ "image/png"

	"flashcut/domain/frame"
)

// PNGDecoder implements frame.Decoder for the PNGs the extractor produces.
type PNGDecoder struct{}

// NewPNGDecoder creates a new decoder
func NewPNGDecoder() *PNGDecoder {
	return &PNGDecoder{}
}

// Decode reads one frame file into a 3-channel row-major RGB buffer.
func (d *PNGDecoder) Decode(path string) (*frame.PixelBuffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open frame %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode frame %s: %w", path, err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pix := make([]byte, w*h*3)

	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			pix[i] = byte(r >> 8)
			pix[i+1] = byte(g >> 8)
			pix[i+2] = byte(b >> 8)
			i += 3
		}
	}

	return &frame.PixelBuffer{Width: w, Height: h, Channels: 3, Pix: pix}, nil
}

// Ensure PNGDecoder implements frame.Decoder
var _ frame.Decoder = (*PNGDecoder)(nil)
