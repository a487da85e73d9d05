//go:build integration

package steps

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	appdetect "flashcut/application/detect"
	"flashcut/domain/frame"
	"flashcut/domain/project"
	"flashcut/domain/reel"
	"flashcut/infrastructure/config"

	"github.com/cucumber/godog"
)

// mockFrameSource scripts the extracted frames and their confidences. The
// confidence is carried in the buffer's first byte, in percent, so the
// scorer can recover it for any frame regardless of worker scheduling.
type mockFrameSource struct {
	confidences map[string]byte
	paths       []string
}

func (m *mockFrameSource) Extract(ctx context.Context, videoPath, outputDir string, opts frame.ExtractOptions) ([]string, error) {
	return m.paths, nil
}

func (m *mockFrameSource) Decode(path string) (*frame.PixelBuffer, error) {
	return &frame.PixelBuffer{
		Width: 1, Height: 1, Channels: 3,
		Pix: []byte{m.confidences[path], 0, 0},
	}, nil
}

// mockConfidenceScorer reads the scripted confidence back out of the buffer
type mockConfidenceScorer struct{}

func (m *mockConfidenceScorer) Name() string { return "scripted" }

func (m *mockConfidenceScorer) Score(buf *frame.PixelBuffer) (float64, error) {
	return float64(buf.Pix[0]) / 100, nil
}

// memoryProjectStore implements project.Store in memory
type memoryProjectStore struct {
	projects map[string]*project.Project
}

func (m *memoryProjectStore) Load(path string) (*project.Project, error) {
	p, ok := m.projects[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s not found", project.ErrInvalidProject, path)
	}
	return p, nil
}

func (m *memoryProjectStore) Save(p *project.Project, path string) error {
	m.projects[path] = p
	return nil
}

// memoryFileChecker simulates file existence
type memoryFileChecker struct {
	existingFiles map[string]bool
}

func (m *memoryFileChecker) Exists(path string) bool {
	return m.existingFiles[path]
}

// memoryWorkspace is a workspace that never touches the filesystem
type memoryWorkspace struct {
	released bool
}

func (m *memoryWorkspace) Dir() string { return "/tmp/feature-workspace" }
func (m *memoryWorkspace) Release()    { m.released = true }

type memoryWorkspaceProvider struct {
	workspaces []*memoryWorkspace
}

func (m *memoryWorkspaceProvider) Acquire(prefix string) (reel.Workspace, error) {
	ws := &memoryWorkspace{}
	m.workspaces = append(m.workspaces, ws)
	return ws, nil
}

// detectionContext holds test state for detection scenarios
type detectionContext struct {
	cfg         *config.Config
	source      *mockFrameSource
	store       *memoryProjectStore
	fileChecker *memoryFileChecker
	workspaces  *memoryWorkspaceProvider
	output      *bytes.Buffer
	result      *appdetect.Result
	err         error
}

// SharedDetectionContext is reset before each scenario via Before hook
var SharedDetectionContext *detectionContext

func getDetectionContext() *detectionContext {
	return SharedDetectionContext
}

func InitializeDetectionScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		cfg := config.Default()
		cfg.Video.FrameRate = 1
		SharedDetectionContext = &detectionContext{
			cfg:         cfg,
			source:      &mockFrameSource{confidences: make(map[string]byte)},
			store:       &memoryProjectStore{projects: make(map[string]*project.Project)},
			fileChecker: &memoryFileChecker{existingFiles: make(map[string]bool)},
			workspaces:  &memoryWorkspaceProvider{},
			output:      &bytes.Buffer{},
		}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		SharedDetectionContext = nil
		return c, nil
	})

	ctx.Step(`^a recording at "([^"]*)" sampled at 1 fps$`, aRecordingSampledAtOneFPS)
	ctx.Step(`^no recording exists at "([^"]*)"$`, noRecordingExistsAt)
	ctx.Step(`^the per-second confidences are "([^"]*)"$`, thePerSecondConfidencesAre)
	ctx.Step(`^the merge window is (\d+(?:\.\d+)?) seconds$`, theMergeWindowIs)
	ctx.Step(`^the minimum cluster size is (\d+)$`, theMinimumClusterSizeIs)
	ctx.Step(`^I run detection$`, iRunDetection)
	ctx.Step(`^I attempt to run detection$`, iAttemptToRunDetection)
	ctx.Step(`^the project should contain (\d+) events?$`, theProjectShouldContainEvents)
	ctx.Step(`^event (\d+) should be at ([0-9.]+) seconds$`, eventShouldBeAtSeconds)
	ctx.Step(`^event (\d+) should have confidence ([0-9.]+)$`, eventShouldHaveConfidence)
	ctx.Step(`^the summary should report (\d+) raw detections and (\d+) dropped clusters$`, theSummaryShouldReport)
	ctx.Step(`^detection should fail with a missing source error$`, detectionShouldFailMissingSource)
	ctx.Step(`^the frame workspace should be released$`, theFrameWorkspaceShouldBeReleased)
}

func aRecordingSampledAtOneFPS(path string) error {
	d := getDetectionContext()
	d.fileChecker.existingFiles[path] = true
	return nil
}

func noRecordingExistsAt(path string) error {
	d := getDetectionContext()
	d.fileChecker.existingFiles[path] = false
	return nil
}

// thePerSecondConfidencesAre scripts one frame per second, confidence in
// percent, e.g. "0 85 90 0".
func thePerSecondConfidencesAre(list string) error {
	d := getDetectionContext()
	for i, field := range strings.Fields(list) {
		percent, err := strconv.Atoi(field)
		if err != nil {
			return fmt.Errorf("bad confidence %q: %w", field, err)
		}
		path := fmt.Sprintf("frame_%06d.png", i+1)
		d.source.paths = append(d.source.paths, path)
		d.source.confidences[path] = byte(percent)
	}
	return nil
}

func theMergeWindowIs(window float64) error {
	getDetectionContext().cfg.Detection.MergeWindowSeconds = window
	return nil
}

func theMinimumClusterSizeIs(size int) error {
	getDetectionContext().cfg.Detection.MinClusterSize = size
	return nil
}

func runDetection(source string) (*appdetect.Result, error) {
	d := getDetectionContext()
	service := appdetect.NewService(
		d.source,
		d.source,
		&mockConfidenceScorer{},
		d.store,
		d.fileChecker,
		d.workspaces,
		d.cfg,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		d.output,
	)
	return service.Run(context.Background(), appdetect.Input{
		SourcePath:  source,
		ProjectPath: "session.yaml",
	})
}

func iRunDetection() error {
	d := getDetectionContext()
	d.result, d.err = runDetection("match.mp4")
	if d.err != nil {
		return fmt.Errorf("unexpected error: %v", d.err)
	}
	return nil
}

func iAttemptToRunDetection() error {
	d := getDetectionContext()
	d.result, d.err = runDetection("missing.mp4")
	return nil
}

func theProjectShouldContainEvents(count int) error {
	d := getDetectionContext()
	if d.result == nil {
		return fmt.Errorf("no detection result")
	}
	if len(d.result.Project.Events) != count {
		return fmt.Errorf("expected %d events, got %d", count, len(d.result.Project.Events))
	}
	return nil
}

func eventShouldBeAtSeconds(id int, timestamp float64) error {
	d := getDetectionContext()
	for _, e := range d.result.Project.Events {
		if e.ID == id {
			if diff := e.Timestamp - timestamp; diff > 1e-9 || diff < -1e-9 {
				return fmt.Errorf("event %d at %f, expected %f", id, e.Timestamp, timestamp)
			}
			return nil
		}
	}
	return fmt.Errorf("no event with id %d", id)
}

func eventShouldHaveConfidence(id int, confidence float64) error {
	d := getDetectionContext()
	for _, e := range d.result.Project.Events {
		if e.ID == id {
			if diff := e.Confidence - confidence; diff > 1e-9 || diff < -1e-9 {
				return fmt.Errorf("event %d confidence %f, expected %f", id, e.Confidence, confidence)
			}
			return nil
		}
	}
	return fmt.Errorf("no event with id %d", id)
}

func theSummaryShouldReport(raw, dropped int) error {
	d := getDetectionContext()
	s := d.result.Project.Summary
	if s.RawDetections != raw {
		return fmt.Errorf("raw detections = %d, expected %d", s.RawDetections, raw)
	}
	if s.DroppedClusters != dropped {
		return fmt.Errorf("dropped clusters = %d, expected %d", s.DroppedClusters, dropped)
	}
	return nil
}

func detectionShouldFailMissingSource() error {
	d := getDetectionContext()
	if d.err == nil {
		return fmt.Errorf("expected an error, got none")
	}
	if !strings.Contains(d.err.Error(), "not found") {
		return fmt.Errorf("expected a missing source error, got: %v", d.err)
	}
	return nil
}

func theFrameWorkspaceShouldBeReleased() error {
	d := getDetectionContext()
	if len(d.workspaces.workspaces) == 0 {
		return fmt.Errorf("no workspace was acquired")
	}
	for _, ws := range d.workspaces.workspaces {
		if !ws.released {
			return fmt.Errorf("workspace was not released")
		}
	}
	return nil
}
