package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	appgenerate "flashcut/application/generate"
	"flashcut/infrastructure/config"
	"flashcut/infrastructure/ffmpeg"
	"flashcut/infrastructure/filesystem"
	infraproject "flashcut/infrastructure/project"

	"github.com/spf13/cobra"
)

var (
	generateProjectPath string
	generateSourcePath  string
	generateOutputPath  string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Cut a highlight reel from a saved project",
	Long: `Cut a highlight reel from the events of a saved project file.

Each enabled event becomes one segment (lead seconds before the event,
trail seconds after), and the segments are joined in order. Detection is
never re-run; disable unwanted events in the project first, with the
review command or a text editor.

Example:
  flashcut generate --project projects/match.yaml

  flashcut generate \
    --project projects/match.yaml \
    --source /mnt/archive/match.mp4 \
    --output reels/match.mp4`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVar(&generateProjectPath, "project", "", "Project file from a detection run (required)")
	generateCmd.Flags().StringVar(&generateSourcePath, "source", "", "Override the recorded source video path")
	generateCmd.Flags().StringVar(&generateOutputPath, "output", "", "Reel destination (defaults to the output directory)")

	generateCmd.MarkFlagRequired("project")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	ctx := cmd.Context()

	outputPath := generateOutputPath
	if outputPath == "" {
		outputPath = defaultReelPath(cfg, generateProjectPath)
	}

	runner := ffmpeg.NewExecCommandRunner(GetLogger())
	slicerOpts := []ffmpeg.SlicerOption{
		ffmpeg.WithSlicerFFmpegPath(cfg.Video.FFmpegPath),
		ffmpeg.WithSlicerCommandRunner(runner),
	}
	if cfg.Output.ReEncode {
		slicerOpts = append(slicerOpts, ffmpeg.WithReEncode())
	}
	slicer := ffmpeg.NewSlicer(slicerOpts...)
	concat := ffmpeg.NewConcatenator(
		ffmpeg.WithConcatFFmpegPath(cfg.Video.FFmpegPath),
		ffmpeg.WithConcatCommandRunner(runner),
	)

	verifyCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := slicer.VerifyInstalled(verifyCtx); err != nil {
		return fmt.Errorf("ffmpeg verification failed: %w", err)
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	service := appgenerate.NewService(
		infraproject.NewYAMLStore(),
		slicer,
		concat,
		filesystem.NewChecker(),
		filesystem.NewTempProvider(),
		GetLogger(),
		os.Stdout,
	)

	_, err := service.Run(ctx, appgenerate.Input{
		ProjectPath:    generateProjectPath,
		SourceOverride: generateSourcePath,
		OutputPath:     outputPath,
	})
	return err
}

// defaultReelPath derives reels/<project>_reel.mp4 from the project name.
func defaultReelPath(cfg *config.Config, projectPath string) string {
	base := filepath.Base(projectPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(cfg.Paths.OutputDirectory, base+"_reel.mp4")
}
