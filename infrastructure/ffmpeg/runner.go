package ffmpeg

import (
	"context"
	"log/slog"
	"os/exec"
)

// CommandRunner defines the interface for running external commands
// This allows mocking exec.Command in tests
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) error
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecCommandRunner is the production implementation using os/exec.
// Every invocation is logged at debug level; ffmpeg's own stderr chatter
// is captured into the returned error on failure rather than streamed.
type ExecCommandRunner struct {
	logger *slog.Logger
}

// NewExecCommandRunner creates a runner that logs through the given logger.
func NewExecCommandRunner(logger *slog.Logger) *ExecCommandRunner {
	return &ExecCommandRunner{logger: logger}
}

// Run executes a command and returns any error
func (r *ExecCommandRunner) Run(ctx context.Context, name string, args ...string) error {
	r.logger.Debug("running command", "cmd", name, "args", args)
	cmd := exec.CommandContext(ctx, name, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		r.logger.Debug("command failed", "cmd", name, "output", string(out))
		return err
	}
	return nil
}

// Output executes a command and returns its stdout
func (r *ExecCommandRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	r.logger.Debug("running command", "cmd", name, "args", args)
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.Output()
}
