// Package generate orchestrates a generation run: load a persisted
// project, plan a segment per enabled event, cut the segments, and
// concatenate them into a reel.
package generate

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"flashcut/domain/project"
	"flashcut/domain/reel"
	"flashcut/domain/segment"
)

// Service runs the generation pipeline entirely from a persisted project;
// scoring and clustering are never repeated. Operators may hand-edit the
// project (disable events, add notes) between the two runs.
type Service struct {
	store      project.Store
	slicer     reel.Slicer
	concat     reel.Concatenator
	checker    reel.FileChecker
	workspaces reel.WorkspaceProvider
	logger     *slog.Logger
	output     io.Writer
}

// NewService creates a new generate service
func NewService(
	store project.Store,
	slicer reel.Slicer,
	concat reel.Concatenator,
	checker reel.FileChecker,
	workspaces reel.WorkspaceProvider,
	logger *slog.Logger,
	output io.Writer,
) *Service {
	return &Service{
		store:      store,
		slicer:     slicer,
		concat:     concat,
		checker:    checker,
		workspaces: workspaces,
		logger:     logger,
		output:     output,
	}
}

// Input contains all input parameters for a generation run
type Input struct {
	// ProjectPath is the project file from a previous detection run
	ProjectPath string

	// SourceOverride replaces the project's recorded media path (for
	// moved or re-encoded source files)
	SourceOverride string

	// OutputPath is the reel destination
	OutputPath string
}

// Result contains the results of a successful generation run
type Result struct {
	OutputPath string
	Segments   int
	Disabled   int
}

// Run cuts one segment per enabled event and joins them in order. A
// missing or structurally invalid project file is fatal with no output
// produced; cancellation or a slicing failure discards the partial cuts
// and leaves the project file untouched.
func (s *Service) Run(ctx context.Context, input Input) (*Result, error) {
	proj, err := s.store.Load(input.ProjectPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load project: %w", err)
	}

	source := proj.Source
	if input.SourceOverride != "" {
		source = input.SourceOverride
	}
	if !s.checker.Exists(source) {
		return nil, fmt.Errorf("source video not found: %s", source)
	}

	enabled := proj.EnabledEvents()
	if len(enabled) == 0 {
		return nil, project.ErrNoEvents
	}
	disabled := len(proj.Events) - len(enabled)

	fmt.Fprintf(s.output, "Generating reel from %d of %d events...\n", len(enabled), len(proj.Events))

	ws, err := s.workspaces.Acquire("flashcut-parts")
	if err != nil {
		return nil, err
	}
	defer ws.Release()

	lead := proj.Settings.LeadSeconds
	trail := proj.Settings.TrailSeconds

	var parts []string
	for i, rec := range enabled {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		spec := segment.Plan(rec, lead, trail)
		partPath := filepath.Join(ws.Dir(), fmt.Sprintf("part_%03d.mp4", i+1))

		s.logger.Debug("cutting segment", "event", rec.ID, "start", spec.StartTime, "end", spec.EndTime)
		fmt.Fprintf(s.output, "  [%d/%d] event %d at %.1fs (confidence %.2f)\n",
			i+1, len(enabled), rec.ID, rec.Timestamp, rec.Confidence)

		if err := s.slicer.Cut(ctx, source, spec, partPath); err != nil {
			return nil, fmt.Errorf("failed to cut segment for event %d: %w", rec.ID, err)
		}
		parts = append(parts, partPath)
	}

	if err := s.concat.Concat(ctx, parts, input.OutputPath); err != nil {
		return nil, fmt.Errorf("failed to concatenate reel: %w", err)
	}

	fmt.Fprintf(s.output, "Reel written to %s\n", input.OutputPath)

	return &Result{
		OutputPath: input.OutputPath,
		Segments:   len(parts),
		Disabled:   disabled,
	}, nil
}
