package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"flashcut/domain/event"
	"flashcut/domain/project"
	infraproject "flashcut/infrastructure/project"

	"github.com/spf13/cobra"
)

var reviewProjectPath string

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review detected events before generating a reel",
	Long: `Interactively review the events of a project file.

Each event can be kept, disabled, or annotated. Disabled events stay in
the project but are skipped by the generate command, so a review is
always reversible.

Example:
  flashcut review --project projects/match.yaml`,
	RunE: runReview,
}

func init() {
	rootCmd.AddCommand(reviewCmd)
	reviewCmd.Flags().StringVar(&reviewProjectPath, "project", "", "Project file to review (required)")

	reviewCmd.MarkFlagRequired("project")
}

func runReview(cmd *cobra.Command, args []string) error {
	return RunReviewWithPrompter(DefaultPrompter, infraproject.NewYAMLStore(), reviewProjectPath, os.Stdout)
}

const (
	reviewChoiceSave    = "Save and exit"
	reviewChoiceDiscard = "Discard changes"
)

// RunReviewWithPrompter runs the review loop with a given prompter and
// store (for testing). Changes are only persisted by an explicit save.
func RunReviewWithPrompter(prompter Prompter, store project.Store, projectPath string, output io.Writer) error {
	proj, err := store.Load(projectPath)
	if err != nil {
		return fmt.Errorf("failed to load project: %w", err)
	}
	if len(proj.Events) == 0 {
		return project.ErrNoEvents
	}

	fmt.Fprintf(output, "Reviewing %d events from %s\n", len(proj.Events), proj.Source)

	for {
		options := make([]string, 0, len(proj.Events)+2)
		for _, e := range proj.Events {
			options = append(options, describeEvent(e))
		}
		options = append(options, reviewChoiceSave, reviewChoiceDiscard)

		choice, err := prompter.Select("Select an event", options, reviewChoiceSave)
		if err != nil {
			return fmt.Errorf("prompt cancelled")
		}

		switch choice {
		case reviewChoiceSave:
			if err := store.Save(proj, projectPath); err != nil {
				return fmt.Errorf("failed to save project: %w", err)
			}
			fmt.Fprintf(output, "Project saved to %s\n", projectPath)
			return nil
		case reviewChoiceDiscard:
			fmt.Fprintln(output, "Changes discarded.")
			return nil
		}

		idx := eventIndexForChoice(proj, choice)
		if idx < 0 {
			continue
		}
		if err := reviewEvent(prompter, proj, idx); err != nil {
			return err
		}
	}
}

func reviewEvent(prompter Prompter, proj *project.Project, idx int) error {
	e := &proj.Events[idx]

	toggleLabel := "Disable"
	if !e.Enabled {
		toggleLabel = "Enable"
	}

	action, err := prompter.Select(
		fmt.Sprintf("Event %d at %.1fs", e.ID, e.Timestamp),
		[]string{toggleLabel, "Edit note", "Back"},
		"Back",
	)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}

	switch action {
	case "Disable", "Enable":
		e.Enabled = !e.Enabled
	case "Edit note":
		note, err := prompter.Input("Note", e.Note)
		if err != nil {
			return fmt.Errorf("prompt cancelled")
		}
		e.Note = note
	}
	return nil
}

// describeEvent renders one event as a menu line, ID first so the choice
// can be mapped back to the record.
func describeEvent(e event.Record) string {
	status := "enabled"
	if !e.Enabled {
		status = "disabled"
	}
	line := fmt.Sprintf("[%d] %.1fs  confidence %.2f  (%s)", e.ID, e.Timestamp, e.Confidence, status)
	if e.Note != "" {
		line += "  " + e.Note
	}
	return line
}

func eventIndexForChoice(proj *project.Project, choice string) int {
	open := strings.Index(choice, "[")
	end := strings.Index(choice, "]")
	if open != 0 || end < 0 {
		return -1
	}
	id, err := strconv.Atoi(choice[1:end])
	if err != nil {
		return -1
	}
	for i, e := range proj.Events {
		if e.ID == id {
			return i
		}
	}
	return -1
}
