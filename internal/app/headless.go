package app

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"pystart/internal/bootstrap"
	"pystart/internal/config"
)

// RunHeadless executes one setup run without the TUI, writing one line per
// step result to out. Used by the `pystart run` subcommand for scripting.
func RunHeadless(ctx context.Context, cfg *config.Config, req bootstrap.Request, out io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	runner := bootstrap.NewRunner(bootstrap.Options{
		Python:        cfg.Setup.Python,
		VenvName:      cfg.Setup.VenvName,
		SrcName:       cfg.Setup.SrcName,
		StepTimeout:   cfg.Setup.StepTimeout,
		HaltOnFailure: cfg.Setup.HaltOnFailure,
	}, nil)

	return runner.Run(ctx, req, textSink(out))
}

// textSink renders step results as plain lines for non-interactive use.
func textSink(out io.Writer) bootstrap.Sink {
	return bootstrap.SinkFunc(func(res bootstrap.StepResult) {
		switch {
		case res.Skipped:
			fmt.Fprintf(out, "- %s: %s\n", res.Step.Title(), res.Output)
		case res.Succeeded:
			fmt.Fprintf(out, "ok %s (%s)\n", res.Step.Title(), res.Duration.Round(time.Millisecond))
		default:
			fmt.Fprintf(out, "FAIL %s: %v\n", res.Step.Title(), res.Err)
			for _, line := range strings.Split(strings.TrimSpace(res.Output), "\n") {
				if line != "" {
					fmt.Fprintf(out, "    %s\n", line)
				}
			}
		}
	})
}
