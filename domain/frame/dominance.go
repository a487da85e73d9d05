package frame

// gridSize fixes the analysis grid at 3x3. The grid exists to tell a
// whole-screen tint apart from one localized colorful object, so its
// resolution is part of the signature, not a tuning knob.
const gridSize = 3

// Sub-score weights for the dominance signature.
const (
	weightCoverage   = 0.4
	weightUniformity = 0.3
	weightIntensity  = 0.2
	weightResidual   = 0.1
)

// DominanceConfig tunes the whole-frame color dominance signature.
// The defaults are empirically chosen; they are configuration, not protocol.
type DominanceConfig struct {
	// Channel is the designated dominant channel index (ChannelRed etc.)
	Channel int

	// BrightnessFloor is the minimum value the dominant channel must exceed
	BrightnessFloor byte

	// CellCoverageMin is the dominant-pixel fraction a grid cell must exceed
	// to count toward uniformity
	CellCoverageMin float64

	// MarginNorm normalizes the average dominance margin into [0, 1]
	MarginNorm float64
}

// DefaultDominanceConfig returns the tuned defaults for a red kill-screen flash.
func DefaultDominanceConfig() DominanceConfig {
	return DominanceConfig{
		Channel:         ChannelRed,
		BrightnessFloor: 100,
		CellCoverageMin: 0.3,
		MarginNorm:      100,
	}
}

// DominanceScorer detects a whole-frame color tint: most pixels saturated
// toward one designated channel, spread across the entire frame.
type DominanceScorer struct {
	cfg DominanceConfig
}

// NewDominanceScorer creates a scorer for the given configuration.
func NewDominanceScorer(cfg DominanceConfig) *DominanceScorer {
	return &DominanceScorer{cfg: cfg}
}

// Name implements Scorer.
func (s *DominanceScorer) Name() string { return StrategyDominance }

// breakdown carries the four sub-scores, kept separate for testability.
type breakdown struct {
	coverage   float64
	uniformity float64
	intensity  float64
	residual   float64
}

func (b breakdown) combine() float64 {
	return weightCoverage*b.coverage +
		weightUniformity*b.uniformity +
		weightIntensity*b.intensity +
		weightResidual*b.residual
}

// Score implements Scorer.
func (s *DominanceScorer) Score(buf *PixelBuffer) (float64, error) {
	b, err := s.analyze(buf)
	if err != nil {
		return 0, err
	}
	return b.combine(), nil
}

// analyze partitions the frame into a 3x3 grid and accumulates dominant-pixel
// counts and dominance margins per cell.
func (s *DominanceScorer) analyze(buf *PixelBuffer) (breakdown, error) {
	if err := buf.Validate(); err != nil {
		return breakdown{}, err
	}

	var cellDominant [gridSize * gridSize]int
	var cellMarginSum [gridSize * gridSize]float64
	var cellPixels [gridSize * gridSize]int

	dom := s.cfg.Channel
	otherA := (dom + 1) % 3
	otherB := (dom + 2) % 3
	floor := s.cfg.BrightnessFloor

	for y := 0; y < buf.Height; y++ {
		row := y * gridSize / buf.Height
		for x := 0; x < buf.Width; x++ {
			cell := row*gridSize + x*gridSize/buf.Width
			cellPixels[cell]++

			d := buf.At(x, y, dom)
			a := buf.At(x, y, otherA)
			bb := buf.At(x, y, otherB)
			if d <= floor || d <= a || d <= bb {
				continue
			}

			other := a
			if bb > other {
				other = bb
			}
			cellDominant[cell]++
			cellMarginSum[cell] += float64(d - other)
		}
	}

	var out breakdown
	totalDominant := 0
	uniformCells := 0
	intensitySum := 0.0

	for cell := 0; cell < gridSize*gridSize; cell++ {
		totalDominant += cellDominant[cell]
		if cellPixels[cell] == 0 {
			continue
		}
		fraction := float64(cellDominant[cell]) / float64(cellPixels[cell])
		if fraction > s.cfg.CellCoverageMin {
			uniformCells++
		}
		// A cell with no dominant pixels contributes 0 intensity, never NaN.
		if cellDominant[cell] > 0 {
			avgMargin := cellMarginSum[cell] / float64(cellDominant[cell])
			intensitySum += min(1, avgMargin/s.cfg.MarginNorm)
		}
	}

	// Coverage saturates at 50% of the whole frame being dominant.
	out.coverage = min(1, 2*float64(totalDominant)/float64(buf.PixelCount()))
	out.uniformity = float64(uniformCells) / float64(gridSize*gridSize)
	out.intensity = intensitySum / float64(gridSize*gridSize)
	out.residual = max(0, 1-3*(1-out.coverage))

	return out, nil
}

var _ Scorer = (*DominanceScorer)(nil)
