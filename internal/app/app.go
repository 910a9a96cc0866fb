package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"pystart/internal/bootstrap"
	"pystart/internal/config"
	"pystart/internal/logging"
	"pystart/internal/ui"
)

// App wires the config, the setup runner and the TUI together. The runner
// executes on a worker goroutine and reports back through the tea.Program's
// message queue, so the display stays responsive while subprocesses block.
type App struct {
	config  *config.Config
	runner  *bootstrap.Runner
	tui     *ui.Model
	program *tea.Program

	mu        sync.Mutex
	runCancel context.CancelFunc
}

// New creates the application.
func New(cfg *config.Config, initialDir string) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	runner := bootstrap.NewRunner(bootstrap.Options{
		Python:        cfg.Setup.Python,
		VenvName:      cfg.Setup.VenvName,
		SrcName:       cfg.Setup.SrcName,
		StepTimeout:   cfg.Setup.StepTimeout,
		HaltOnFailure: cfg.Setup.HaltOnFailure,
	}, nil)

	a := &App{
		config: cfg,
		runner: runner,
		tui:    ui.NewModel(cfg, cfg.EffectiveCatalog(), initialDir),
	}
	a.tui.SetCallbacks(a.startRun, a.cancelRun, a.quit)
	return a, nil
}

// Run starts the TUI and blocks until the user quits.
func (a *App) Run() error {
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if a.config.UI.MouseMode != "disabled" {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	a.program = tea.NewProgram(a.tui, opts...)

	_, err := a.program.Run()
	a.cancelRun()
	return err
}

// startRun validates the request and launches the setup worker. Called from
// the TUI when the user presses Start; returning an error keeps the form
// open with the error displayed and launches nothing.
func (a *App) startRun(req bootstrap.Request) error {
	if err := req.Validate(); err != nil {
		return err
	}

	a.mu.Lock()
	if a.runCancel != nil {
		a.mu.Unlock()
		return fmt.Errorf("a setup run is already active")
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.runCancel = cancel
	a.mu.Unlock()

	plan := a.runner.Plan(req)

	// All Sends happen off the UI goroutine; Send blocks when called from
	// inside Update.
	go func() {
		start := time.Now()
		a.program.Send(ui.RunStartedMsg{TotalSteps: len(plan), Dir: req.TargetDir})
		a.program.Send(ui.StepStartedMsg{Step: plan[0]})

		sink := progressSink(plan, a.config.Setup.HaltOnFailure, a.program.Send)
		err := a.runner.Run(ctx, req, sink)
		a.program.Send(ui.RunFinishedMsg{Err: err, Duration: time.Since(start)})

		a.mu.Lock()
		a.runCancel = nil
		a.mu.Unlock()
		cancel()
	}()

	return nil
}

// progressSink forwards step results to the TUI and announces the next step
// of the plan while the sequence is still advancing. After a failed result
// under halt-on-failure (or a cancellation) the runner executes nothing more,
// so no further step is announced.
func progressSink(plan []bootstrap.Step, haltOnFailure bool, send func(tea.Msg)) bootstrap.Sink {
	done := 0
	return bootstrap.SinkFunc(func(res bootstrap.StepResult) {
		send(ui.StepResultMsg{Result: res})
		done++
		if done < len(plan) && (res.Err == nil || !haltOnFailure) {
			send(ui.StepStartedMsg{Step: plan[done]})
		}
	})
}

// cancelRun aborts the active run, if any.
func (a *App) cancelRun() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.runCancel != nil {
		a.runCancel()
	}
}

func (a *App) quit() {
	a.cancelRun()
	logging.Close()
}
