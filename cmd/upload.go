package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"flashcut/domain/reel"
	"flashcut/infrastructure/drive"

	"github.com/spf13/cobra"
)

var uploadFilePath string

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload a reel to Google Drive with public sharing",
	Long: `Upload a finished reel to Google Drive and set public sharing.

By default the most recently modified reel in the output directory is
uploaded. The file is made accessible to anyone with the link, and the
link is printed.

Requires Google credentials; run setup to configure them.

Example:
  flashcut upload
  flashcut upload --file reels/match_reel.mp4`,
	RunE: runUpload,
}

func init() {
	rootCmd.AddCommand(uploadCmd)
	uploadCmd.Flags().StringVar(&uploadFilePath, "file", "", "Reel to upload (defaults to newest in the output directory)")
}

func runUpload(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	if cfg.Google.CredentialsFile == "" {
		return fmt.Errorf("google credentials not configured; run setup first")
	}

	filePath := uploadFilePath
	if filePath == "" {
		var err error
		filePath, err = findLatestFile(cfg.Paths.OutputDirectory, ".mp4")
		if err != nil {
			return fmt.Errorf("no file specified and could not find latest reel: %w", err)
		}
	}

	ctx := cmd.Context()
	opts := []drive.ClientOption{}
	if cfg.Google.FolderID != "" {
		opts = append(opts, drive.WithFolderID(cfg.Google.FolderID))
	}
	client, err := drive.NewClient(ctx, cfg.Google.CredentialsFile, cfg.Google.TokenFile, opts...)
	if err != nil {
		return fmt.Errorf("failed to create Google Drive client: %w", err)
	}

	return RunUploadWithClient(ctx, client, filePath, os.Stdout)
}

// RunUploadWithClient runs the upload with an injected client (for testing)
func RunUploadWithClient(ctx context.Context, uploader reel.Uploader, filePath string, output io.Writer) error {
	fmt.Fprintf(output, "Uploading %s...\n", filepath.Base(filePath))

	link, err := uploader.UploadAndShare(ctx, filePath)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	fmt.Fprintf(output, "Upload complete!\n")
	fmt.Fprintf(output, "  Shareable URL: %s\n", link)
	return nil
}

// findLatestFile finds the most recently modified file with given extension in directory
func findLatestFile(dir, ext string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read directory: %w", err)
	}

	var latestPath string
	var latestTime time.Time

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if filepath.Ext(entry.Name()) != ext {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latestPath = filepath.Join(dir, entry.Name())
		}
	}

	if latestPath == "" {
		return "", fmt.Errorf("no %s files found in %s", ext, dir)
	}

	return latestPath, nil
}
