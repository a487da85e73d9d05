//go:build integration

package steps

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	appgenerate "flashcut/application/generate"
	"flashcut/domain/event"
	"flashcut/domain/project"
	"flashcut/domain/segment"

	"github.com/cucumber/godog"
)

// mockReelSlicer records cut segments for verification
type mockReelSlicer struct {
	specs   []segment.Spec
	outputs []string
}

func (m *mockReelSlicer) Cut(ctx context.Context, sourcePath string, spec segment.Spec, outputPath string) error {
	m.specs = append(m.specs, spec)
	m.outputs = append(m.outputs, outputPath)
	return nil
}

// mockReelConcat records the final join
type mockReelConcat struct {
	parts  []string
	output string
}

func (m *mockReelConcat) Concat(ctx context.Context, partPaths []string, outputPath string) error {
	m.parts = partPaths
	m.output = outputPath
	return nil
}

// generateContext holds test state for generate scenarios
type generateContext struct {
	store       *memoryProjectStore
	slicer      *mockReelSlicer
	concat      *mockReelConcat
	fileChecker *memoryFileChecker
	workspaces  *memoryWorkspaceProvider
	output      *bytes.Buffer
	proj        *project.Project
	result      *appgenerate.Result
	err         error
}

// SharedGenerateContext is reset before each scenario via Before hook
var SharedGenerateContext *generateContext

func getGenerateContext() *generateContext {
	return SharedGenerateContext
}

func InitializeGenerateScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		SharedGenerateContext = &generateContext{
			store:       &memoryProjectStore{projects: make(map[string]*project.Project)},
			slicer:      &mockReelSlicer{},
			concat:      &mockReelConcat{},
			fileChecker: &memoryFileChecker{existingFiles: make(map[string]bool)},
			workspaces:  &memoryWorkspaceProvider{},
			output:      &bytes.Buffer{},
		}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		SharedGenerateContext = nil
		return c, nil
	})

	ctx.Step(`^a project for "([^"]*)" with lead (\d+) and trail (\d+) seconds$`, aProjectWithLeadAndTrail)
	ctx.Step(`^the project has an enabled event at ([0-9.]+) seconds$`, theProjectHasAnEnabledEventAt)
	ctx.Step(`^the project has a disabled event at ([0-9.]+) seconds$`, theProjectHasADisabledEventAt)
	ctx.Step(`^the source video exists$`, theSourceVideoExists)
	ctx.Step(`^I generate the reel to "([^"]*)"$`, iGenerateTheReelTo)
	ctx.Step(`^I attempt to generate the reel$`, iAttemptToGenerateTheReel)
	ctx.Step(`^the reel should contain (\d+) segments?$`, theReelShouldContainSegments)
	ctx.Step(`^segment (\d+) should cover ([0-9.]+) to ([0-9.]+) seconds$`, segmentShouldCover)
	ctx.Step(`^the reel should be written to "([^"]*)"$`, theReelShouldBeWrittenTo)
	ctx.Step(`^generation should fail because no events are enabled$`, generationShouldFailNoEvents)
	ctx.Step(`^the parts workspace should be released$`, thePartsWorkspaceShouldBeReleased)
}

func aProjectWithLeadAndTrail(source string, lead, trail int) error {
	g := getGenerateContext()
	g.proj = project.New(source, project.Settings{
		Strategy:     "dominance",
		Channel:      "red",
		LeadSeconds:  float64(lead),
		TrailSeconds: float64(trail),
		FrameRate:    1,
	}, project.Summary{}, nil)
	g.store.projects["session.yaml"] = g.proj
	return nil
}

func addEvent(timestamp float64, enabled bool) error {
	g := getGenerateContext()
	if g.proj == nil {
		return fmt.Errorf("no project in scenario")
	}
	g.proj.Events = append(g.proj.Events, event.Record{
		ID:         len(g.proj.Events) + 1,
		Timestamp:  timestamp,
		FrameIndex: int(timestamp),
		Confidence: 0.9,
		Enabled:    enabled,
	})
	return nil
}

func theProjectHasAnEnabledEventAt(timestamp float64) error {
	return addEvent(timestamp, true)
}

func theProjectHasADisabledEventAt(timestamp float64) error {
	return addEvent(timestamp, false)
}

func theSourceVideoExists() error {
	g := getGenerateContext()
	if g.proj == nil {
		return fmt.Errorf("no project in scenario")
	}
	g.fileChecker.existingFiles[g.proj.Source] = true
	return nil
}

func runGenerate(outputPath string) (*appgenerate.Result, error) {
	g := getGenerateContext()
	service := appgenerate.NewService(
		g.store,
		g.slicer,
		g.concat,
		g.fileChecker,
		g.workspaces,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		g.output,
	)
	return service.Run(context.Background(), appgenerate.Input{
		ProjectPath: "session.yaml",
		OutputPath:  outputPath,
	})
}

func iGenerateTheReelTo(outputPath string) error {
	g := getGenerateContext()
	g.result, g.err = runGenerate(outputPath)
	if g.err != nil {
		return fmt.Errorf("unexpected error: %v", g.err)
	}
	return nil
}

func iAttemptToGenerateTheReel() error {
	g := getGenerateContext()
	g.result, g.err = runGenerate("reel.mp4")
	return nil
}

func theReelShouldContainSegments(count int) error {
	g := getGenerateContext()
	if len(g.slicer.specs) != count {
		return fmt.Errorf("expected %d segments, got %d", count, len(g.slicer.specs))
	}
	if len(g.concat.parts) != count {
		return fmt.Errorf("expected %d concatenated parts, got %d", count, len(g.concat.parts))
	}
	return nil
}

func segmentShouldCover(index int, start, end float64) error {
	g := getGenerateContext()
	if index < 1 || index > len(g.slicer.specs) {
		return fmt.Errorf("no segment %d", index)
	}
	spec := g.slicer.specs[index-1]
	if spec.StartTime != start || spec.EndTime != end {
		return fmt.Errorf("segment %d covers %g to %g, expected %g to %g",
			index, spec.StartTime, spec.EndTime, start, end)
	}
	return nil
}

func theReelShouldBeWrittenTo(outputPath string) error {
	g := getGenerateContext()
	if g.concat.output != outputPath {
		return fmt.Errorf("reel written to %q, expected %q", g.concat.output, outputPath)
	}
	if !strings.Contains(g.output.String(), outputPath) {
		return fmt.Errorf("expected the output path in the progress output")
	}
	return nil
}

func generationShouldFailNoEvents() error {
	g := getGenerateContext()
	if !errors.Is(g.err, project.ErrNoEvents) {
		return fmt.Errorf("expected ErrNoEvents, got: %v", g.err)
	}
	return nil
}

func thePartsWorkspaceShouldBeReleased() error {
	g := getGenerateContext()
	if len(g.workspaces.workspaces) == 0 {
		return fmt.Errorf("no workspace was acquired")
	}
	for _, ws := range g.workspaces.workspaces {
		if !ws.released {
			return fmt.Errorf("workspace was not released")
		}
	}
	return nil
}
