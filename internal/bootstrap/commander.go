package bootstrap

import (
	"bytes"
	"context"
	"os/exec"
)

// Commander runs an external program and captures its combined output.
// The indirection keeps real subprocesses out of unit tests.
type Commander interface {
	Run(ctx context.Context, dir, name string, args ...string) (string, error)
}

// execCommander is the production Commander backed by os/exec.
type execCommander struct{}

// NewCommander returns a Commander that launches real processes.
func NewCommander() Commander {
	return execCommander{}
}

func (execCommander) Run(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	return out.String(), err
}
