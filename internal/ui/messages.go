package ui

import (
	"time"

	"pystart/internal/bootstrap"
)

// RunStartedMsg announces that the worker accepted the run.
type RunStartedMsg struct {
	TotalSteps int
	Dir        string
}

// StepStartedMsg marks the beginning of one setup step.
type StepStartedMsg struct {
	Step bootstrap.Step
}

// StepResultMsg carries the outcome of one setup step.
type StepResultMsg struct {
	Result bootstrap.StepResult
}

// RunFinishedMsg marks the end of the run, successful or not.
type RunFinishedMsg struct {
	Err      error
	Duration time.Duration
}
