package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"flashcut/infrastructure/config"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
	cfg     *config.Config
	logger  *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "flashcut",
	Short: "Detect kill-screen flashes in gameplay footage and cut highlight reels",
	Long: `flashcut scans gameplay recordings for kill-screen flashes and turns
the detections into a highlight reel:

  - Sample frames from the recording with ffmpeg
  - Score each frame for a screen-filling flash of the configured color
  - Cluster nearby hits into discrete events and save them as a project file
  - Review the project, then cut and join a segment per event
  - Optionally upload the finished reel to Google Drive

Example:
  flashcut detect --input match.mp4 --project match.yaml
  flashcut generate --project match.yaml --output match_reel.mp4`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")
}

func initConfig() {
	if cfgFile == "" {
		cfgFile = "config/config.yaml"
	}

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		// A missing config file is fine; the defaults cover every command
		// except upload.
		cfg = config.Default()
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: level}))
}

// GetConfig returns the loaded configuration
func GetConfig() *config.Config {
	return cfg
}

// GetLogger returns the process-wide logger
func GetLogger() *slog.Logger {
	if logger == nil {
		logger = slog.New(tint.NewHandler(os.Stderr, nil))
	}
	return logger
}
