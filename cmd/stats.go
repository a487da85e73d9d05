package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"flashcut/domain/project"
	infraproject "flashcut/infrastructure/project"

	"github.com/spf13/cobra"
)

var statsProjectPath string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the detection summary of a project",
	Long: `Print the run summary and event table of a project file.

The summary reports how many frames were scored, how many raw hits
survived the threshold, and how the hits clustered. Use it to judge
whether the threshold or merge window needs tuning before a re-run.

Example:
  flashcut stats --project projects/match.yaml`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringVar(&statsProjectPath, "project", "", "Project file to inspect (required)")

	statsCmd.MarkFlagRequired("project")
}

func runStats(cmd *cobra.Command, args []string) error {
	return RunStats(infraproject.NewYAMLStore(), statsProjectPath, os.Stdout)
}

// RunStats prints the project summary to the given writer (for testing)
func RunStats(store project.Store, projectPath string, output io.Writer) error {
	proj, err := store.Load(projectPath)
	if err != nil {
		return fmt.Errorf("failed to load project: %w", err)
	}

	s := proj.Summary
	fmt.Fprintf(output, "Source:    %s\n", proj.Source)
	fmt.Fprintf(output, "Created:   %s\n", proj.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(output, "Strategy:  %s", proj.Settings.Strategy)
	if proj.Settings.Channel != "" {
		fmt.Fprintf(output, " (%s)", proj.Settings.Channel)
	}
	fmt.Fprintln(output)
	fmt.Fprintln(output)

	fmt.Fprintf(output, "Frames processed:  %d\n", s.FramesProcessed)
	fmt.Fprintf(output, "Raw detections:    %d\n", s.RawDetections)
	fmt.Fprintf(output, "Clusters:          %d (%d dropped below minimum size)\n", s.Clusters, s.DroppedClusters)
	fmt.Fprintf(output, "Final events:      %d\n", s.FinalDetections)
	if s.Clusters > 0 {
		fmt.Fprintf(output, "Cluster size:      mean %.1f, max %d\n", s.MeanClusterSize, s.MaxClusterSize)
	}
	fmt.Fprintln(output)

	if len(proj.Events) == 0 {
		fmt.Fprintln(output, "No events.")
		return nil
	}

	w := tabwriter.NewWriter(output, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tCONFIDENCE\tSTATUS\tNOTE")
	for _, e := range proj.Events {
		status := "enabled"
		if !e.Enabled {
			status = "disabled"
		}
		fmt.Fprintf(w, "%d\t%.1fs\t%.2f\t%s\t%s\n", e.ID, e.Timestamp, e.Confidence, status, e.Note)
	}
	return w.Flush()
}
