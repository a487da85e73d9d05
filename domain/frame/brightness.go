package frame

import "math"

// BrightnessConfig tunes the whole-frame brightness flash signature.
type BrightnessConfig struct {
	// SpreadNorm normalizes the luminance standard deviation; frames with a
	// spread at or above it are treated as fully non-uniform
	SpreadNorm float64
}

// DefaultBrightnessConfig returns the tuned defaults for a white flash.
func DefaultBrightnessConfig() BrightnessConfig {
	return BrightnessConfig{SpreadNorm: 80}
}

// BrightnessScorer detects a whole-frame brightness flash: high mean
// luminance with low spread, the signature of a screen washed to white.
type BrightnessScorer struct {
	cfg BrightnessConfig
}

// NewBrightnessScorer creates a scorer for the given configuration.
func NewBrightnessScorer(cfg BrightnessConfig) *BrightnessScorer {
	return &BrightnessScorer{cfg: cfg}
}

// Name implements Scorer.
func (s *BrightnessScorer) Name() string { return StrategyBrightness }

// Score implements Scorer.
func (s *BrightnessScorer) Score(buf *PixelBuffer) (float64, error) {
	if err := buf.Validate(); err != nil {
		return 0, err
	}

	n := float64(buf.PixelCount())
	var sum, sumSq float64
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			l := luminance(buf, x, y)
			sum += l
			sumSq += l * l
		}
	}

	mean := sum / n
	variance := sumSq/n - mean*mean
	if variance < 0 {
		variance = 0
	}
	spread := math.Sqrt(variance)

	flatness := 1 - min(1, spread/s.cfg.SpreadNorm)
	return (mean / 255) * flatness, nil
}

// luminance is the ITU-R BT.601 luma approximation.
func luminance(buf *PixelBuffer, x, y int) float64 {
	r := float64(buf.At(x, y, ChannelRed))
	g := float64(buf.At(x, y, ChannelGreen))
	b := float64(buf.At(x, y, ChannelBlue))
	return 0.299*r + 0.587*g + 0.114*b
}

var _ Scorer = (*BrightnessScorer)(nil)
