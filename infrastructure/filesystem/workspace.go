package filesystem

import (
	"fmt"
	"os"

	"flashcut/domain/reel"
)

// Workspace is the scope-bound temporary directory a run extracts frames
// or cuts segments into. It is acquired at orchestration start and must be
// released on every exit path; releasing discards all partial artifacts.
type Workspace struct {
	dir string
}

// NewWorkspace creates a temporary directory with the given name prefix.
func NewWorkspace(prefix string) (*Workspace, error) {
	dir, err := os.MkdirTemp("", prefix+"-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}
	return &Workspace{dir: dir}, nil
}

// Dir returns the workspace directory path.
func (w *Workspace) Dir() string {
	return w.dir
}

// Release removes the workspace and everything in it. Safe to call more
// than once.
func (w *Workspace) Release() {
	if w.dir == "" {
		return
	}
	os.RemoveAll(w.dir)
	w.dir = ""
}

// TempProvider implements reel.WorkspaceProvider over os.MkdirTemp.
type TempProvider struct{}

// NewTempProvider creates a new temp-directory workspace provider
func NewTempProvider() TempProvider {
	return TempProvider{}
}

// Acquire creates a fresh workspace
func (TempProvider) Acquire(prefix string) (reel.Workspace, error) {
	return NewWorkspace(prefix)
}

// Ensure TempProvider implements reel.WorkspaceProvider
var _ reel.WorkspaceProvider = TempProvider{}

