package config

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		if err := Default().Validate(); err != nil {
			t.Errorf("expected default config to validate, got %v", err)
		}
	})

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown strategy", func(c *Config) { c.Detection.Strategy = "hough" }},
		{"unknown channel", func(c *Config) { c.Detection.Channel = "magenta" }},
		{"threshold above 1", func(c *Config) { c.Detection.ConfidenceThreshold = 1.5 }},
		{"threshold below 0", func(c *Config) { c.Detection.ConfidenceThreshold = -0.1 }},
		{"zero merge window", func(c *Config) { c.Detection.MergeWindowSeconds = 0 }},
		{"zero min cluster size", func(c *Config) { c.Detection.MinClusterSize = 0 }},
		{"brightness floor above 255", func(c *Config) { c.Detection.BrightnessFloor = 300 }},
		{"negative lead", func(c *Config) { c.Output.LeadSeconds = -1 }},
		{"negative trail", func(c *Config) { c.Output.TrailSeconds = -0.5 }},
		{"zero frame rate", func(c *Config) { c.Video.FrameRate = 0 }},
		{"negative scale width", func(c *Config) { c.Video.ScaleWidth = -640 }},
		{"template strategy without template path", func(c *Config) { c.Detection.Strategy = "template" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			if !errors.Is(cfg.Validate(), ErrInvalidConfig) {
				t.Error("expected ErrInvalidConfig")
			}
		})
	}
}

func TestSettings(t *testing.T) {
	s := Default().Settings()

	if s.Strategy != "dominance" {
		t.Errorf("strategy = %q, expected dominance", s.Strategy)
	}
	if s.ConfidenceThreshold != 0.8 {
		t.Errorf("threshold = %f, expected 0.8", s.ConfidenceThreshold)
	}
	if s.FrameRate != 6 {
		t.Errorf("frame rate = %f, expected 6", s.FrameRate)
	}
	if s.MergeWindowSeconds != 2 || s.MinClusterSize != 2 {
		t.Errorf("clustering settings = %f/%d, expected 2/2", s.MergeWindowSeconds, s.MinClusterSize)
	}
}
