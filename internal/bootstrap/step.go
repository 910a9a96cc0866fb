package bootstrap

import (
	"fmt"
	"time"
)

// StepKind identifies one of the fixed setup phases.
type StepKind int

const (
	StepCreateVenv StepKind = iota
	StepUpgradePip
	StepCreateSrc
	StepInstall
)

// String returns a short identifier for logs.
func (k StepKind) String() string {
	switch k {
	case StepCreateVenv:
		return "create_venv"
	case StepUpgradePip:
		return "upgrade_pip"
	case StepCreateSrc:
		return "create_src"
	case StepInstall:
		return "install"
	default:
		return "unknown"
	}
}

// Step is one planned unit of work. Package is set only for install steps.
type Step struct {
	Kind    StepKind
	Package string
}

// Title returns the human-readable label shown in the progress log.
func (s Step) Title() string {
	switch s.Kind {
	case StepCreateVenv:
		return "Creating virtual environment"
	case StepUpgradePip:
		return "Upgrading pip"
	case StepCreateSrc:
		return "Creating src folder"
	case StepInstall:
		return fmt.Sprintf("Installing %s", s.Package)
	default:
		return "Unknown step"
	}
}

// StepResult is the outcome of one executed step. Results are pushed to a
// Sink as they happen and are not persisted anywhere.
type StepResult struct {
	Step      Step
	Succeeded bool
	Skipped   bool // step had nothing to do (e.g. venv already present)
	Output    string
	Err       error
	Duration  time.Duration
}

// Sink receives step results as the runner produces them. Implementations
// must treat the stream as append-only: results arrive in execution order
// and are never retracted.
type Sink interface {
	Publish(StepResult)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(StepResult)

// Publish implements Sink.
func (f SinkFunc) Publish(r StepResult) { f(r) }
