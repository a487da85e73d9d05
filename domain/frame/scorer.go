package frame

import "fmt"

// Scorer scores a single decoded frame against one visual signature.
// Implementations are pure: no shared mutable state, no I/O, safe to call
// from any number of goroutines on independent buffers.
type Scorer interface {
	// Name returns the strategy name the scorer was registered under
	Name() string

	// Score returns a confidence in [0, 1] for the given buffer
	Score(buf *PixelBuffer) (float64, error)
}

// Strategy names form a closed set; each maps to one scoring heuristic.
const (
	StrategyDominance  = "dominance"
	StrategyBrightness = "brightness"
	StrategyRadial     = "radial"
	StrategyTemplate   = "template"
)

// Classify applies the saturation threshold to a confidence score.
// Strictly-above semantics: a score exactly at the threshold is not a hit.
func Classify(confidence, threshold float64) bool {
	return confidence > threshold
}

// Channel indices into an RGB(A) pixel buffer.
const (
	ChannelRed   = 0
	ChannelGreen = 1
	ChannelBlue  = 2
)

// ParseChannel maps a configured channel name to its buffer index.
func ParseChannel(name string) (int, error) {
	switch name {
	case "red":
		return ChannelRed, nil
	case "green":
		return ChannelGreen, nil
	case "blue":
		return ChannelBlue, nil
	default:
		return 0, fmt.Errorf("%w: %q (expected red, green, or blue)", ErrUnknownChannel, name)
	}
}
