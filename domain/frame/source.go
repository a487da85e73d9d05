package frame

import "context"

// ExtractOptions controls how frames are pulled from the source media.
type ExtractOptions struct {
	// FrameRate is the sampling rate in frames per second
	FrameRate float64

	// ScaleWidth scales extracted frames to this width, preserving aspect
	ScaleWidth int
}

// Extractor pulls an ordered stream of still frames out of a video.
// This is a port implemented by the ffmpeg adapter; the returned paths are
// in frame-index order, index 0 first.
type Extractor interface {
	Extract(ctx context.Context, videoPath, outputDir string, opts ExtractOptions) ([]string, error)
}

// Decoder turns one extracted frame file into a pixel buffer.
type Decoder interface {
	Decode(path string) (*PixelBuffer, error)
}
