//go:build detection

package detection

import (
	"fmt"

	"gocv.io/x/gocv"

	"flashcut/domain/frame"
)

// TemplateScorer implements frame.Scorer using GoCV template matching.
// It targets kill screens that always render the same fixed-position
// artwork, where a pixel-statistics heuristic has nothing to key on.
type TemplateScorer struct {
	templatePath string
	template     gocv.Mat
	loaded       bool
}

// NewTemplateScorer creates a template-based scorer for one template image
func NewTemplateScorer(templatePath string) *TemplateScorer {
	return &TemplateScorer{templatePath: templatePath}
}

// Load reads the template image. Must be called before Score.
func (s *TemplateScorer) Load() error {
	mat := gocv.IMRead(s.templatePath, gocv.IMReadGrayScale)
	if mat.Empty() {
		return fmt.Errorf("failed to load template image: %s", s.templatePath)
	}
	s.template = mat
	s.loaded = true
	return nil
}

// Close releases the loaded template
func (s *TemplateScorer) Close() {
	if s.loaded {
		s.template.Close()
		s.loaded = false
	}
}

// Name implements frame.Scorer
func (s *TemplateScorer) Name() string { return frame.StrategyTemplate }

// Score implements frame.Scorer. The normalized correlation coefficient
// can go negative; it is clamped so confidence stays in [0, 1].
func (s *TemplateScorer) Score(buf *frame.PixelBuffer) (float64, error) {
	if !s.loaded {
		return 0, fmt.Errorf("template not loaded")
	}
	if err := buf.Validate(); err != nil {
		return 0, err
	}

	mat, err := gocv.NewMatFromBytes(buf.Height, buf.Width, gocv.MatTypeCV8UC3, buf.Pix)
	if err != nil {
		return 0, fmt.Errorf("failed to wrap pixel buffer: %w", err)
	}
	defer mat.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorRGBToGray)

	if gray.Rows() < s.template.Rows() || gray.Cols() < s.template.Cols() {
		return 0, fmt.Errorf("frame %dx%d smaller than template %dx%d",
			gray.Cols(), gray.Rows(), s.template.Cols(), s.template.Rows())
	}

	result := gocv.NewMat()
	defer result.Close()
	gocv.MatchTemplate(gray, s.template, &result, gocv.TmCcoeffNormed, gocv.NewMat())
	_, maxVal, _, _ := gocv.MinMaxLoc(result)

	return min(1, max(0, float64(maxVal))), nil
}

// Ensure TemplateScorer implements frame.Scorer
var _ frame.Scorer = (*TemplateScorer)(nil)
