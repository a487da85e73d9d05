package frame

// RadialConfig tunes the radial flash signature.
type RadialConfig struct {
	// FalloffNorm normalizes the center-to-edge luminance drop
	FalloffNorm float64
}

// DefaultRadialConfig returns the tuned defaults for a shockwave effect.
func DefaultRadialConfig() RadialConfig {
	return RadialConfig{FalloffNorm: 128}
}

// RadialScorer detects a radial-gradient effect: a bright frame center
// falling off toward the edges, typical of explosion or shockwave overlays.
type RadialScorer struct {
	cfg RadialConfig
}

// NewRadialScorer creates a scorer for the given configuration.
func NewRadialScorer(cfg RadialConfig) *RadialScorer {
	return &RadialScorer{cfg: cfg}
}

// Name implements Scorer.
func (s *RadialScorer) Name() string { return StrategyRadial }

// Score implements Scorer.
func (s *RadialScorer) Score(buf *PixelBuffer) (float64, error) {
	if err := buf.Validate(); err != nil {
		return 0, err
	}

	// Center is the middle third box; edge is everything in the outer
	// sixth of either axis. The band between them is ignored so a soft
	// gradient does not dilute both means.
	x0, x1 := buf.Width/3, buf.Width*2/3
	y0, y1 := buf.Height/3, buf.Height*2/3
	ex, ey := buf.Width/6, buf.Height/6

	var centerSum, edgeSum float64
	var centerN, edgeN int

	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			switch {
			case x >= x0 && x < x1 && y >= y0 && y < y1:
				centerSum += luminance(buf, x, y)
				centerN++
			case x < ex || x >= buf.Width-ex || y < ey || y >= buf.Height-ey:
				edgeSum += luminance(buf, x, y)
				edgeN++
			}
		}
	}

	if centerN == 0 || edgeN == 0 {
		// Frame too small to carve regions out of; no signature.
		return 0, nil
	}

	center := centerSum / float64(centerN)
	edge := edgeSum / float64(edgeN)

	falloff := min(1, max(0, center-edge)/s.cfg.FalloffNorm)
	return (center / 255) * falloff, nil
}

var _ Scorer = (*RadialScorer)(nil)
