package frame

// Sample is one per-frame scoring result. Immutable once produced.
type Sample struct {
	// Index is the zero-based frame index in extraction order
	Index int

	// Timestamp is the frame's position in seconds, Index / frameRate
	Timestamp float64

	// Confidence is the scorer's output, always in [0, 1]
	Confidence float64
}

// NewSample derives the timestamp from the frame index and frame rate.
func NewSample(index int, frameRate, confidence float64) Sample {
	return Sample{
		Index:      index,
		Timestamp:  float64(index) / frameRate,
		Confidence: confidence,
	}
}
