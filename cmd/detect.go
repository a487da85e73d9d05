package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	appdetect "flashcut/application/detect"
	"flashcut/domain/frame"
	"flashcut/infrastructure/config"
	"flashcut/infrastructure/detection"
	"flashcut/infrastructure/ffmpeg"
	"flashcut/infrastructure/filesystem"
	"flashcut/infrastructure/frames"
	infraproject "flashcut/infrastructure/project"

	"github.com/spf13/cobra"
)

var (
	detectInputPath   string
	detectProjectPath string
	detectWorkers     int
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Scan a recording for kill-screen flashes",
	Long: `Scan a gameplay recording for kill-screen flashes and write the
detections to a project file:

1. Sample frames from the recording with ffmpeg
2. Score each frame for the configured flash signature
3. Cluster nearby hits into discrete events
4. Save the events, settings, and run summary as a YAML project

The project file is the input to the generate command. Edit it (or use
the review command) to disable false positives before cutting the reel.

Example:
  flashcut detect --input match.mp4

  flashcut detect \
    --input match.mp4 \
    --project projects/match.yaml \
    --workers 4`,
	RunE: runDetect,
}

func init() {
	rootCmd.AddCommand(detectCmd)
	detectCmd.Flags().StringVar(&detectInputPath, "input", "", "Path to the source recording (required)")
	detectCmd.Flags().StringVar(&detectProjectPath, "project", "", "Project file destination (defaults to the project directory)")
	detectCmd.Flags().IntVar(&detectWorkers, "workers", 0, "Scoring workers (default: number of CPUs)")

	detectCmd.MarkFlagRequired("input")
}

func runDetect(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	ctx := cmd.Context()

	projectPath := detectProjectPath
	if projectPath == "" {
		projectPath = defaultProjectPath(cfg, detectInputPath)
	}

	scorer, err := buildScorer(cfg)
	if err != nil {
		return err
	}

	runner := ffmpeg.NewExecCommandRunner(GetLogger())
	extractor := ffmpeg.NewExtractor(
		ffmpeg.WithExtractorFFmpegPath(cfg.Video.FFmpegPath),
		ffmpeg.WithExtractorCommandRunner(runner),
	)

	verifyCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := extractor.VerifyInstalled(verifyCtx); err != nil {
		return fmt.Errorf("ffmpeg verification failed: %w", err)
	}

	service := appdetect.NewService(
		extractor,
		frames.NewPNGDecoder(),
		scorer,
		infraproject.NewYAMLStore(),
		filesystem.NewChecker(),
		filesystem.NewTempProvider(),
		cfg,
		GetLogger(),
		os.Stdout,
	)

	_, err = service.Run(ctx, appdetect.Input{
		SourcePath:  detectInputPath,
		ProjectPath: projectPath,
		Workers:     detectWorkers,
	})
	return err
}

// buildScorer maps the configured strategy name to a scorer. Template
// matching needs the gocv adapter, which only exists behind the detection
// build tag.
func buildScorer(cfg *config.Config) (frame.Scorer, error) {
	switch cfg.Detection.Strategy {
	case frame.StrategyDominance:
		channel, err := frame.ParseChannel(cfg.Detection.Channel)
		if err != nil {
			return nil, err
		}
		return frame.NewDominanceScorer(frame.DominanceConfig{
			Channel:         channel,
			BrightnessFloor: byte(cfg.Detection.BrightnessFloor),
			CellCoverageMin: cfg.Detection.CellCoverageMin,
			MarginNorm:      cfg.Detection.MarginNorm,
		}), nil
	case frame.StrategyBrightness:
		return frame.NewBrightnessScorer(frame.DefaultBrightnessConfig()), nil
	case frame.StrategyRadial:
		return frame.NewRadialScorer(frame.DefaultRadialConfig()), nil
	case frame.StrategyTemplate:
		scorer := detection.NewTemplateScorer(cfg.Detection.TemplatePath)
		if err := scorer.Load(); err != nil {
			return nil, fmt.Errorf("failed to load template: %w", err)
		}
		return scorer, nil
	default:
		return nil, fmt.Errorf("%w: %q", frame.ErrUnknownStrategy, cfg.Detection.Strategy)
	}
}

// defaultProjectPath derives projects/<source>.yaml from the source name.
func defaultProjectPath(cfg *config.Config, sourcePath string) string {
	base := filepath.Base(sourcePath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(cfg.Paths.ProjectDirectory, base+".yaml")
}
