package config

import (
	"errors"
	"fmt"

	"flashcut/domain/frame"
	"flashcut/domain/project"
)

// ErrInvalidConfig marks configuration errors. They are detected before
// any frame is processed and are fatal to the whole run.
var ErrInvalidConfig = errors.New("invalid configuration")

var knownStrategies = map[string]bool{
	frame.StrategyDominance:  true,
	frame.StrategyBrightness: true,
	frame.StrategyRadial:     true,
	frame.StrategyTemplate:   true,
}

// Validate checks every processing parameter before a run starts.
func (c *Config) Validate() error {
	d := c.Detection

	if !knownStrategies[d.Strategy] {
		return fmt.Errorf("%w: detection.strategy %q is not a known strategy", ErrInvalidConfig, d.Strategy)
	}
	if _, err := frame.ParseChannel(d.Channel); err != nil {
		return fmt.Errorf("%w: detection.channel: %v", ErrInvalidConfig, err)
	}
	if d.ConfidenceThreshold < 0 || d.ConfidenceThreshold > 1 {
		return fmt.Errorf("%w: detection.confidence_threshold %.3f must be in [0, 1]", ErrInvalidConfig, d.ConfidenceThreshold)
	}
	if d.MergeWindowSeconds <= 0 {
		return fmt.Errorf("%w: detection.merge_window_seconds %.3f must be positive", ErrInvalidConfig, d.MergeWindowSeconds)
	}
	if d.MinClusterSize < 1 {
		return fmt.Errorf("%w: detection.min_cluster_size %d must be at least 1", ErrInvalidConfig, d.MinClusterSize)
	}
	if d.BrightnessFloor < 0 || d.BrightnessFloor > 255 {
		return fmt.Errorf("%w: detection.brightness_floor %d must be in [0, 255]", ErrInvalidConfig, d.BrightnessFloor)
	}
	if d.CellCoverageMin < 0 || d.CellCoverageMin > 1 {
		return fmt.Errorf("%w: detection.cell_coverage_min %.3f must be in [0, 1]", ErrInvalidConfig, d.CellCoverageMin)
	}
	if d.MarginNorm <= 0 {
		return fmt.Errorf("%w: detection.margin_norm %.3f must be positive", ErrInvalidConfig, d.MarginNorm)
	}
	if d.Strategy == frame.StrategyTemplate && d.TemplatePath == "" {
		return fmt.Errorf("%w: detection.template_path is required for the template strategy", ErrInvalidConfig)
	}

	if c.Output.LeadSeconds < 0 {
		return fmt.Errorf("%w: output.lead_seconds %.3f must not be negative", ErrInvalidConfig, c.Output.LeadSeconds)
	}
	if c.Output.TrailSeconds < 0 {
		return fmt.Errorf("%w: output.trail_seconds %.3f must not be negative", ErrInvalidConfig, c.Output.TrailSeconds)
	}

	if c.Video.FrameRate <= 0 {
		return fmt.Errorf("%w: video.frame_rate %.3f must be positive", ErrInvalidConfig, c.Video.FrameRate)
	}
	if c.Video.ScaleWidth <= 0 {
		return fmt.Errorf("%w: video.scale_width %d must be positive", ErrInvalidConfig, c.Video.ScaleWidth)
	}

	return nil
}

// Settings captures the effective processing configuration recorded into
// a project file alongside the detection results.
func (c *Config) Settings() project.Settings {
	return project.Settings{
		Strategy:            c.Detection.Strategy,
		Channel:             c.Detection.Channel,
		ConfidenceThreshold: c.Detection.ConfidenceThreshold,
		MergeWindowSeconds:  c.Detection.MergeWindowSeconds,
		MinClusterSize:      c.Detection.MinClusterSize,
		LeadSeconds:         c.Output.LeadSeconds,
		TrailSeconds:        c.Output.TrailSeconds,
		FrameRate:           c.Video.FrameRate,
		ScaleWidth:          c.Video.ScaleWidth,
	}
}
