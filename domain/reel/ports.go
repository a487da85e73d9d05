// Package reel defines the ports for turning planned segments into a
// finished highlight reel. The adapters live under infrastructure.
package reel

import (
	"context"

	"flashcut/domain/segment"
)

// Slicer cuts one planned segment out of the source media.
type Slicer interface {
	// Cut extracts the interval described by spec into outputPath
	Cut(ctx context.Context, sourcePath string, spec segment.Spec, outputPath string) error
}

// Concatenator joins cut segments, in order, into a single output file.
type Concatenator interface {
	Concat(ctx context.Context, partPaths []string, outputPath string) error
}

// Uploader publishes a finished reel and returns a shareable link.
type Uploader interface {
	UploadAndShare(ctx context.Context, path string) (string, error)
}

// FileChecker reports whether a path exists.
type FileChecker interface {
	Exists(path string) bool
}

// Workspace is a scope-bound temporary directory owned by one run. It is
// acquired at orchestration start and released on every exit path;
// releasing discards all partial artifacts.
type Workspace interface {
	Dir() string
	Release()
}

// WorkspaceProvider acquires a fresh workspace per run.
type WorkspaceProvider interface {
	Acquire(prefix string) (Workspace, error)
}
