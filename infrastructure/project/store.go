// Package project persists detection projects as YAML files.
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"flashcut/domain/event"
	domproject "flashcut/domain/project"
)

// YAMLStore implements project.Store with one YAML document per project.
type YAMLStore struct{}

// NewYAMLStore creates a new store
func NewYAMLStore() *YAMLStore {
	return &YAMLStore{}
}

// projectFile is the on-disk schema. It is kept separate from the domain
// types so field tags and schema evolution stay a persistence concern.
type projectFile struct {
	SchemaVersion int          `yaml:"schema_version"`
	Source        string       `yaml:"source"`
	CreatedAt     time.Time    `yaml:"created_at"`
	Settings      settingsFile `yaml:"settings"`
	Summary       summaryFile  `yaml:"summary"`
	Events        []eventFile  `yaml:"events"`
}

type settingsFile struct {
	Strategy            string  `yaml:"strategy"`
	Channel             string  `yaml:"channel"`
	ConfidenceThreshold float64 `yaml:"confidence_threshold"`
	MergeWindowSeconds  float64 `yaml:"merge_window_seconds"`
	MinClusterSize      int     `yaml:"min_cluster_size"`
	LeadSeconds         float64 `yaml:"lead_seconds"`
	TrailSeconds        float64 `yaml:"trail_seconds"`
	FrameRate           float64 `yaml:"frame_rate"`
	ScaleWidth          int     `yaml:"scale_width"`
}

type summaryFile struct {
	FramesProcessed int     `yaml:"frames_processed"`
	RawDetections   int     `yaml:"raw_detections"`
	Clusters        int     `yaml:"clusters"`
	DroppedClusters int     `yaml:"dropped_clusters"`
	FinalDetections int     `yaml:"final_detections"`
	MeanClusterSize float64 `yaml:"mean_cluster_size"`
	MaxClusterSize  int     `yaml:"max_cluster_size"`
}

type eventFile struct {
	ID         int     `yaml:"id"`
	Timestamp  float64 `yaml:"timestamp"`
	FrameIndex int     `yaml:"frame_index"`
	Confidence float64 `yaml:"confidence"`
	Enabled    bool    `yaml:"enabled"`
	Note       string  `yaml:"note,omitempty"`
}

// Load implements project.Store. Structural violations surface as
// project.ErrInvalidProject; a generation run treats them as fatal.
func (s *YAMLStore) Load(path string) (*domproject.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project file: %w", err)
	}

	var pf projectFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("%w: %v", domproject.ErrInvalidProject, err)
	}

	p := &domproject.Project{
		Version:   pf.SchemaVersion,
		Source:    pf.Source,
		CreatedAt: pf.CreatedAt,
		Settings:  domproject.Settings(pf.Settings),
		Summary:   domproject.Summary(pf.Summary),
	}
	for _, e := range pf.Events {
		p.Events = append(p.Events, event.Record(e))
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

// Save implements project.Store. The file is written to a sibling temp
// path and renamed so a failed write never corrupts an existing project.
func (s *YAMLStore) Save(p *domproject.Project, path string) error {
	pf := projectFile{
		SchemaVersion: p.Version,
		Source:        p.Source,
		CreatedAt:     p.CreatedAt,
		Settings:      settingsFile(p.Settings),
		Summary:       summaryFile(p.Summary),
	}
	for _, e := range p.Events {
		pf.Events = append(pf.Events, eventFile(e))
	}

	data, err := yaml.Marshal(&pf)
	if err != nil {
		return fmt.Errorf("failed to serialize project: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create project directory: %w", err)
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write project file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace project file: %w", err)
	}

	return nil
}

// Ensure YAMLStore implements project.Store
var _ domproject.Store = (*YAMLStore)(nil)
