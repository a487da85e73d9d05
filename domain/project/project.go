package project

import (
	"fmt"
	"time"

	"flashcut/domain/event"
)

// SchemaVersion is the current project file schema.
const SchemaVersion = 1

// Project is the persisted hand-off between a detection run and a later
// generation run. The event list stays sorted by timestamp with ids 1..N;
// an operator may flip Enabled or edit Note between runs.
type Project struct {
	Version   int
	Source    string
	CreatedAt time.Time
	Settings  Settings
	Summary   Summary
	Events    []event.Record
}

// Settings is the effective processing configuration recorded with the run.
type Settings struct {
	Strategy            string
	Channel             string
	ConfidenceThreshold float64
	MergeWindowSeconds  float64
	MinClusterSize      int
	LeadSeconds         float64
	TrailSeconds        float64
	FrameRate           float64
	ScaleWidth          int
}

// Summary accounts for every sample and cluster seen during detection,
// including the ones the pipeline dropped.
type Summary struct {
	FramesProcessed int
	RawDetections   int
	Clusters        int
	DroppedClusters int
	FinalDetections int
	MeanClusterSize float64
	MaxClusterSize  int
}

// New assembles a project from one detection run.
func New(source string, settings Settings, summary Summary, events []event.Record) *Project {
	return &Project{
		Version:   SchemaVersion,
		Source:    source,
		CreatedAt: time.Now().UTC(),
		Settings:  settings,
		Summary:   summary,
		Events:    events,
	}
}

// EnabledEvents returns the records a generation run plans segments for.
func (p *Project) EnabledEvents() []event.Record {
	var enabled []event.Record
	for _, e := range p.Events {
		if e.Enabled {
			enabled = append(enabled, e)
		}
	}
	return enabled
}

// Validate checks the structural invariants a generation run relies on.
func (p *Project) Validate() error {
	if p.Version != SchemaVersion {
		return fmt.Errorf("%w: schema version %d (expected %d)", ErrInvalidProject, p.Version, SchemaVersion)
	}
	if p.Source == "" {
		return fmt.Errorf("%w: source media path is empty", ErrInvalidProject)
	}
	for i, e := range p.Events {
		if e.ID != i+1 {
			return fmt.Errorf("%w: event %d has id %d, expected %d", ErrInvalidProject, i, e.ID, i+1)
		}
		if e.Confidence < 0 || e.Confidence > 1 {
			return fmt.Errorf("%w: event %d confidence %.3f outside [0, 1]", ErrInvalidProject, e.ID, e.Confidence)
		}
		if i > 0 && e.Timestamp < p.Events[i-1].Timestamp {
			return fmt.Errorf("%w: event %d timestamp %.3f precedes event %d", ErrInvalidProject, e.ID, e.Timestamp, e.ID-1)
		}
	}
	return nil
}
