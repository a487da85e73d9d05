package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the complete application configuration
type Config struct {
	Paths     PathsConfig     `yaml:"paths"`
	Video     VideoConfig     `yaml:"video"`
	Detection DetectionConfig `yaml:"detection"`
	Output    OutputConfig    `yaml:"output"`
	Google    GoogleConfig    `yaml:"google"`
}

// PathsConfig contains directory paths for project files and reel output
type PathsConfig struct {
	ProjectDirectory string `yaml:"project_directory"`
	OutputDirectory  string `yaml:"output_directory"`
}

// VideoConfig contains frame sampling settings
type VideoConfig struct {
	FrameRate  float64 `yaml:"frame_rate"`
	ScaleWidth int     `yaml:"scale_width"`
	FFmpegPath string  `yaml:"ffmpeg_path"`
}

// DetectionConfig contains scoring and clustering settings. The threshold
// values are empirically tuned defaults, not protocol constants; every one
// can be overridden per deployment.
type DetectionConfig struct {
	Strategy            string  `yaml:"strategy"`
	Channel             string  `yaml:"channel"`
	ConfidenceThreshold float64 `yaml:"confidence_threshold"`
	MergeWindowSeconds  float64 `yaml:"merge_window_seconds"`
	MinClusterSize      int     `yaml:"min_cluster_size"`
	BrightnessFloor     int     `yaml:"brightness_floor"`
	CellCoverageMin     float64 `yaml:"cell_coverage_min"`
	MarginNorm          float64 `yaml:"margin_norm"`
	TemplatePath        string  `yaml:"template_path"`
}

// OutputConfig contains segment planning and reel encoding settings
type OutputConfig struct {
	LeadSeconds  float64 `yaml:"lead_seconds"`
	TrailSeconds float64 `yaml:"trail_seconds"`
	ReEncode     bool    `yaml:"reencode"`
}

// GoogleConfig contains Google Drive upload settings
type GoogleConfig struct {
	CredentialsFile string `yaml:"credentials_file"`
	TokenFile       string `yaml:"token_file"`
	FolderID        string `yaml:"folder_id"`
}

// Default returns the tuned default configuration.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			ProjectDirectory: "projects",
			OutputDirectory:  "reels",
		},
		Video: VideoConfig{
			FrameRate:  6,
			ScaleWidth: 640,
			FFmpegPath: "ffmpeg",
		},
		Detection: DetectionConfig{
			Strategy:            "dominance",
			Channel:             "red",
			ConfidenceThreshold: 0.8,
			MergeWindowSeconds:  2,
			MinClusterSize:      2,
			BrightnessFloor:     100,
			CellCoverageMin:     0.3,
			MarginNorm:          100,
		},
		Output: OutputConfig{
			LeadSeconds:  3,
			TrailSeconds: 2,
		},
		Google: GoogleConfig{
			TokenFile: "drive_token.json",
		},
	}
}

// Load reads and parses the configuration from the specified YAML file.
// Unset fields fall back to the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the specified YAML file
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
