package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"flashcut/domain/event"
	"flashcut/domain/project"
)

// scriptedPrompter implements Prompter with canned answers
type scriptedPrompter struct {
	selects []string
	inputs  []string
}

func (p *scriptedPrompter) Input(message, defaultValue string) (string, error) {
	if len(p.inputs) == 0 {
		return defaultValue, nil
	}
	answer := p.inputs[0]
	p.inputs = p.inputs[1:]
	return answer, nil
}

func (p *scriptedPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	return defaultValue, nil
}

func (p *scriptedPrompter) Select(message string, options []string, defaultValue string) (string, error) {
	if len(p.selects) == 0 {
		return "", errors.New("out of scripted answers")
	}
	want := p.selects[0]
	p.selects = p.selects[1:]
	for _, opt := range options {
		if strings.HasPrefix(opt, want) {
			return opt, nil
		}
	}
	return "", errors.New("scripted answer " + want + " not offered")
}

// memoryStore implements project.Store in memory
type memoryStore struct {
	proj  *project.Project
	saved *project.Project
}

func (m *memoryStore) Load(path string) (*project.Project, error) {
	if m.proj == nil {
		return nil, project.ErrInvalidProject
	}
	return m.proj, nil
}

func (m *memoryStore) Save(p *project.Project, path string) error {
	m.saved = p
	return nil
}

func reviewProject() *project.Project {
	return project.New("match.mp4", project.Settings{Strategy: "dominance"}, project.Summary{}, []event.Record{
		{ID: 1, Timestamp: 12.5, FrameIndex: 75, Confidence: 0.91, Enabled: true},
		{ID: 2, Timestamp: 48.0, FrameIndex: 288, Confidence: 0.84, Enabled: true},
	})
}

func TestReviewDisableAndSave(t *testing.T) {
	store := &memoryStore{proj: reviewProject()}
	prompter := &scriptedPrompter{
		selects: []string{"[2]", "Disable", reviewChoiceSave},
	}

	err := RunReviewWithPrompter(prompter, store, "match.yaml", &bytes.Buffer{})
	if err != nil {
		t.Fatalf("review failed: %v", err)
	}

	if store.saved == nil {
		t.Fatal("expected save on exit")
	}
	if store.saved.Events[1].Enabled {
		t.Error("expected event 2 to be disabled")
	}
	if !store.saved.Events[0].Enabled {
		t.Error("expected event 1 to stay enabled")
	}
}

func TestReviewEditNote(t *testing.T) {
	store := &memoryStore{proj: reviewProject()}
	prompter := &scriptedPrompter{
		selects: []string{"[1]", "Edit note", reviewChoiceSave},
		inputs:  []string{"double kill"},
	}

	err := RunReviewWithPrompter(prompter, store, "match.yaml", &bytes.Buffer{})
	if err != nil {
		t.Fatalf("review failed: %v", err)
	}

	if store.saved.Events[0].Note != "double kill" {
		t.Errorf("note = %q, expected it to be updated", store.saved.Events[0].Note)
	}
}

func TestReviewDiscardDoesNotSave(t *testing.T) {
	store := &memoryStore{proj: reviewProject()}
	prompter := &scriptedPrompter{
		selects: []string{"[1]", "Disable", reviewChoiceDiscard},
	}

	err := RunReviewWithPrompter(prompter, store, "match.yaml", &bytes.Buffer{})
	if err != nil {
		t.Fatalf("review failed: %v", err)
	}

	if store.saved != nil {
		t.Error("expected no save after discard")
	}
}

func TestReviewEmptyProject(t *testing.T) {
	store := &memoryStore{proj: project.New("match.mp4", project.Settings{}, project.Summary{}, nil)}

	err := RunReviewWithPrompter(&scriptedPrompter{}, store, "match.yaml", &bytes.Buffer{})
	if !errors.Is(err, project.ErrNoEvents) {
		t.Errorf("expected ErrNoEvents, got %v", err)
	}
}
