package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"

	"pystart/internal/catalog"
	"pystart/internal/logging"
)

// Options control how a Runner executes the setup sequence.
type Options struct {
	Python        string        // interpreter used to create the venv (e.g. "python3")
	VenvName      string        // directory name of the environment, usually "venv"
	SrcName       string        // directory name of the source folder, usually "src"
	StepTimeout   time.Duration // per-step subprocess deadline, 0 = none
	HaltOnFailure bool          // stop the sequence on the first failed step
}

// Runner executes the fixed setup sequence against one target directory.
// Steps run sequentially, each blocking until its subprocess exits. Results
// stream to the injected Sink; the Runner holds no UI state.
type Runner struct {
	opts Options
	cmd  Commander
}

// NewRunner creates a Runner with the given options and commander.
func NewRunner(opts Options, cmd Commander) *Runner {
	if opts.Python == "" {
		opts.Python = "python3"
	}
	if opts.VenvName == "" {
		opts.VenvName = "venv"
	}
	if opts.SrcName == "" {
		opts.SrcName = "src"
	}
	if cmd == nil {
		cmd = NewCommander()
	}
	return &Runner{opts: opts, cmd: cmd}
}

// Plan returns the steps Run will execute, in order. The install list is the
// de-duplicated union of selected and custom names, so the UI can size its
// progress bar before the run starts.
func (r *Runner) Plan(req Request) []Step {
	steps := []Step{
		{Kind: StepCreateVenv},
		{Kind: StepUpgradePip},
		{Kind: StepCreateSrc},
	}
	for _, name := range catalog.Union(req.Selected, req.Custom) {
		steps = append(steps, Step{Kind: StepInstall, Package: name})
	}
	return steps
}

// Run validates the request and executes the setup sequence, publishing one
// StepResult per step. It returns the first error when HaltOnFailure is set,
// or an error summarizing failures otherwise. Cancelling ctx stops the run
// between steps and publishes one final cancelled result; no subprocess is
// launched before validation passes.
func (r *Runner) Run(ctx context.Context, req Request, sink Sink) error {
	if err := req.Validate(); err != nil {
		return err
	}

	runID := uuid.NewString()
	steps := r.Plan(req)
	logging.Info("setup run starting",
		"run_id", runID,
		"dir", req.TargetDir,
		"steps", len(steps))

	var failed []string
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			logging.Warn("setup run cancelled", "run_id", runID, "step", step.Kind.String())
			cancelled := fmt.Errorf("setup cancelled: %w", err)
			// The step that would have run next carries the terminal result.
			sink.Publish(StepResult{Step: step, Err: cancelled})
			return cancelled
		}

		res := r.runStep(ctx, req, step)
		sink.Publish(res)

		if res.Err != nil {
			logging.Error("setup step failed",
				"run_id", runID,
				"step", step.Kind.String(),
				"error", res.Err)
			failed = append(failed, step.Title())
			if r.opts.HaltOnFailure {
				return res.Err
			}
			continue
		}
		logging.Debug("setup step done",
			"run_id", runID,
			"step", step.Kind.String(),
			"skipped", res.Skipped,
			"duration", res.Duration)
	}

	if len(failed) > 0 {
		return fmt.Errorf("%d step(s) failed: %s", len(failed), strings.Join(failed, "; "))
	}
	logging.Info("setup run complete", "run_id", runID)
	return nil
}

func (r *Runner) runStep(ctx context.Context, req Request, step Step) StepResult {
	start := time.Now()

	execCtx := ctx
	if r.opts.StepTimeout > 0 {
		var cancel context.CancelFunc
		execCtx, cancel = context.WithTimeout(ctx, r.opts.StepTimeout)
		defer cancel()
	}

	res := StepResult{Step: step}
	switch step.Kind {
	case StepCreateVenv:
		res = r.createVenv(execCtx, req)
	case StepUpgradePip:
		res = r.upgradePip(execCtx, req)
	case StepCreateSrc:
		res = r.createSrc(req)
	case StepInstall:
		res = r.install(execCtx, req, step.Package)
	}
	res.Step = step
	res.Duration = time.Since(start)
	return res
}

// createVenv creates <target>/venv. An existing environment is reported as a
// skip so re-running against a bootstrapped directory stays deterministic.
func (r *Runner) createVenv(ctx context.Context, req Request) StepResult {
	venvDir := req.VenvDir(r.opts.VenvName)
	if _, err := os.Stat(venvDir); err == nil {
		return StepResult{
			Succeeded: true,
			Skipped:   true,
			Output:    "virtual environment already exists",
		}
	}

	out, err := r.cmd.Run(ctx, req.TargetDir, r.opts.Python, "-m", "venv", r.opts.VenvName)
	if err != nil {
		return StepResult{
			Output: out,
			Err:    fmt.Errorf("environment creation failed: %w", err),
		}
	}
	return StepResult{Succeeded: true, Output: out}
}

func (r *Runner) upgradePip(ctx context.Context, req Request) StepResult {
	out, err := r.cmd.Run(ctx, req.TargetDir, r.venvPython(req),
		"-m", "pip", "install", "--upgrade", "pip")
	if err != nil {
		return StepResult{
			Output: out,
			Err:    fmt.Errorf("pip upgrade failed: %w", err),
		}
	}
	return StepResult{Succeeded: true, Output: out}
}

func (r *Runner) createSrc(req Request) StepResult {
	srcDir := filepath.Join(req.TargetDir, r.opts.SrcName)
	if info, err := os.Stat(srcDir); err == nil && info.IsDir() {
		return StepResult{
			Succeeded: true,
			Skipped:   true,
			Output:    r.opts.SrcName + " folder already exists",
		}
	}
	if err := os.MkdirAll(srcDir, 0755); err != nil {
		return StepResult{Err: fmt.Errorf("folder creation failed: %w", err)}
	}
	return StepResult{Succeeded: true}
}

func (r *Runner) install(ctx context.Context, req Request, pkg string) StepResult {
	out, err := r.cmd.Run(ctx, req.TargetDir, r.venvPython(req),
		"-m", "pip", "install", pkg)
	if err != nil {
		return StepResult{
			Output: out,
			Err:    fmt.Errorf("install %s failed: %w", pkg, err),
		}
	}
	return StepResult{Succeeded: true, Output: out}
}

// venvPython returns the interpreter inside the created environment, so pip
// operations target the venv rather than the system installation.
func (r *Runner) venvPython(req Request) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(req.VenvDir(r.opts.VenvName), "Scripts", "python.exe")
	}
	return filepath.Join(req.VenvDir(r.opts.VenvName), "bin", "python")
}
