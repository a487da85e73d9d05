package filesystem

import (
	"os"

	"flashcut/domain/reel"
)

// Checker implements reel.FileChecker using the os package
type Checker struct{}

// NewChecker creates a new filesystem checker
func NewChecker() *Checker {
	return &Checker{}
}

// Exists returns true if the file exists
func (c *Checker) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Ensure Checker implements reel.FileChecker
var _ reel.FileChecker = (*Checker)(nil)
