//go:build !detection

package detection

import (
	"fmt"

	"flashcut/domain/frame"
)

// TemplateScorer is a stub when GoCV/OpenCV is not available
type TemplateScorer struct {
	templatePath string
}

// NewTemplateScorer creates a stub scorer (requires building with -tags=detection)
func NewTemplateScorer(templatePath string) *TemplateScorer {
	return &TemplateScorer{templatePath: templatePath}
}

// Load returns an error indicating template matching is not available
func (s *TemplateScorer) Load() error {
	return fmt.Errorf("template strategy not available: build with '-tags=detection' and install OpenCV/GoCV")
}

// Close is a no-op in stub mode
func (s *TemplateScorer) Close() {}

// Name implements frame.Scorer
func (s *TemplateScorer) Name() string { return frame.StrategyTemplate }

// Score returns an error indicating template matching is not available
func (s *TemplateScorer) Score(buf *frame.PixelBuffer) (float64, error) {
	return 0, fmt.Errorf("template strategy not available: build with '-tags=detection' and install OpenCV/GoCV")
}

// Ensure TemplateScorer implements frame.Scorer
var _ frame.Scorer = (*TemplateScorer)(nil)
