// Package detect orchestrates a detection run: extract frames, score them,
// cluster the hits, and persist the resulting project.
package detect

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"

	"flashcut/domain/event"
	"flashcut/domain/frame"
	"flashcut/domain/project"
	"flashcut/domain/reel"
	"flashcut/infrastructure/config"
)

// Service runs the detection pipeline. It owns no scoring or clustering
// logic itself, only sequencing, persistence hand-off, and progress.
type Service struct {
	extractor  frame.Extractor
	decoder    frame.Decoder
	scorer     frame.Scorer
	store      project.Store
	checker    reel.FileChecker
	workspaces reel.WorkspaceProvider
	cfg        *config.Config
	logger     *slog.Logger
	output     io.Writer
}

// NewService creates a new detect service
func NewService(
	extractor frame.Extractor,
	decoder frame.Decoder,
	scorer frame.Scorer,
	store project.Store,
	checker reel.FileChecker,
	workspaces reel.WorkspaceProvider,
	cfg *config.Config,
	logger *slog.Logger,
	output io.Writer,
) *Service {
	return &Service{
		extractor:  extractor,
		decoder:    decoder,
		scorer:     scorer,
		store:      store,
		checker:    checker,
		workspaces: workspaces,
		cfg:        cfg,
		logger:     logger,
		output:     output,
	}
}

// Input contains all input parameters for a detection run
type Input struct {
	// SourcePath is the video to analyze
	SourcePath string

	// ProjectPath is where the resulting project file is written
	ProjectPath string

	// Workers caps the scoring worker pool; 0 means NumCPU
	Workers int
}

// Result contains the results of a successful detection run
type Result struct {
	Project     *project.Project
	ProjectPath string
}

// Run executes the full detection pipeline. Configuration problems are
// fatal before any frame is processed; a frame that fails to decode or
// score is a non-event, never fatal to the batch. On error or
// cancellation the frame workspace is discarded and no project is written.
func (s *Service) Run(ctx context.Context, input Input) (*Result, error) {
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}
	if !s.checker.Exists(input.SourcePath) {
		return nil, fmt.Errorf("source video not found: %s", input.SourcePath)
	}

	ws, err := s.workspaces.Acquire("flashcut-frames")
	if err != nil {
		return nil, err
	}
	defer ws.Release()

	fmt.Fprintf(s.output, "Extracting frames at %g fps (scaled to %d px wide)...\n",
		s.cfg.Video.FrameRate, s.cfg.Video.ScaleWidth)

	paths, err := s.extractor.Extract(ctx, input.SourcePath, ws.Dir(), frame.ExtractOptions{
		FrameRate:  s.cfg.Video.FrameRate,
		ScaleWidth: s.cfg.Video.ScaleWidth,
	})
	if err != nil {
		return nil, fmt.Errorf("frame extraction failed: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no frames extracted from %s", input.SourcePath)
	}

	fmt.Fprintf(s.output, "Scoring %d frames with the %s strategy...\n", len(paths), s.scorer.Name())

	samples, failed, err := s.scoreFrames(ctx, paths, input.Workers)
	if err != nil {
		return nil, err
	}
	if failed > 0 {
		fmt.Fprintf(s.output, "Warning: %d frames failed to decode or score and were treated as non-events\n", failed)
	}

	hits := thresholdFilter(samples, s.cfg.Detection.ConfidenceThreshold)

	clusterer := &event.Clusterer{
		MergeWindowSeconds: s.cfg.Detection.MergeWindowSeconds,
		MinClusterSize:     s.cfg.Detection.MinClusterSize,
	}
	clustered := clusterer.Cluster(hits)
	diag := event.Diagnose(hits)

	proj := project.New(input.SourcePath, s.cfg.Settings(), project.Summary{
		FramesProcessed: len(paths),
		RawDetections:   clustered.RawSamples,
		Clusters:        clustered.Clusters,
		DroppedClusters: clustered.Dropped,
		FinalDetections: len(clustered.Records),
		MeanClusterSize: diag.MeanSize,
		MaxClusterSize:  diag.MaxSize,
	}, clustered.Records)

	if err := s.store.Save(proj, input.ProjectPath); err != nil {
		return nil, fmt.Errorf("failed to persist project: %w", err)
	}

	fmt.Fprintf(s.output, "Found %d events (%d raw hits, %d clusters, %d dropped)\n",
		len(clustered.Records), clustered.RawSamples, clustered.Clusters, clustered.Dropped)
	fmt.Fprintf(s.output, "Project written to %s\n", input.ProjectPath)

	return &Result{Project: proj, ProjectPath: input.ProjectPath}, nil
}

// scoreFrames scores every frame on a bounded worker pool. Frames are
// independent and carry explicit indices, so workers may finish in any
// order; the results slice is indexed by frame index, which restores
// chronological order for the clustering stage.
func (s *Service) scoreFrames(ctx context.Context, paths []string, workers int) ([]frame.Sample, int, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	samples := make([]frame.Sample, len(paths))
	var failed atomic.Int64

	type job struct {
		index int
		path  string
	}
	jobs := make(chan job)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				confidence, ok := s.scoreOne(j.path)
				if !ok {
					failed.Add(1)
				}
				samples[j.index] = frame.NewSample(j.index, s.cfg.Video.FrameRate, confidence)
			}
		}()
	}

	var cancelErr error
feed:
	for i, p := range paths {
		if err := ctx.Err(); err != nil {
			cancelErr = err
			break feed
		}
		select {
		case jobs <- job{index: i, path: p}:
		case <-ctx.Done():
			cancelErr = ctx.Err()
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if cancelErr != nil {
		return nil, 0, cancelErr
	}
	return samples, int(failed.Load()), nil
}

// scoreOne decodes and scores a single frame; any failure scores 0 and is
// reported as not ok.
func (s *Service) scoreOne(path string) (float64, bool) {
	buf, err := s.decoder.Decode(path)
	if err != nil {
		s.logger.Debug("frame decode failed", "path", path, "error", err)
		return 0, false
	}

	confidence, err := s.scorer.Score(buf)
	if err != nil {
		s.logger.Debug("frame scoring failed", "path", path, "error", err)
		return 0, false
	}
	return confidence, true
}

// thresholdFilter keeps samples at or above the confidence threshold.
// Thresholding happens here, not in the clusterer.
func thresholdFilter(samples []frame.Sample, threshold float64) []frame.Sample {
	var hits []frame.Sample
	for _, s := range samples {
		if s.Confidence >= threshold {
			hits = append(hits, s)
		}
	}
	return hits
}
