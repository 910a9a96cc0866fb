package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"pystart/internal/bootstrap"
	"pystart/internal/catalog"
	"pystart/internal/config"
)

// State represents the current phase of the TUI.
type State int

const (
	StateForm State = iota
	StateRunning
	StateDone
)

// Model is the main TUI model.
type Model struct {
	form     FormModel
	log      LogPanel
	spinner  spinner.Model
	progress progress.Model
	styles   *Styles

	state  State
	width  int
	height int

	clearLogBetweenRuns bool

	totalSteps  int
	doneSteps   int
	currentStep string
	runErr      error
	runDuration time.Duration

	// Callbacks wired by the app layer. onStart must validate the request
	// and either launch the worker or return the validation error.
	onStart  func(req bootstrap.Request) error
	onCancel func()
	onQuit   func()
}

// NewModel creates the main TUI model.
func NewModel(cfg *config.Config, cat catalog.Catalog, initialDir string) *Model {
	styles := DefaultStyles()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Running

	return &Model{
		form:                NewFormModel(cat, initialDir, styles),
		log:                 NewLogPanel(styles),
		spinner:             sp,
		progress:            progress.New(progress.WithDefaultGradient()),
		styles:              styles,
		state:               StateForm,
		clearLogBetweenRuns: cfg.UI.ClearLogBetweenRuns,
	}
}

// SetCallbacks wires the app-layer callbacks.
func (m *Model) SetCallbacks(onStart func(bootstrap.Request) error, onCancel, onQuit func()) {
	m.onStart = onStart
	m.onCancel = onCancel
	m.onQuit = onQuit
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Leave room for header, progress bar and key hints.
		logHeight := msg.Height - 8
		if logHeight < 3 {
			logHeight = 3
		}
		m.log.SetSize(msg.Width-4, logHeight)
		m.progress.Width = msg.Width - 8
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case RunStartedMsg:
		if m.clearLogBetweenRuns {
			m.log.Clear()
		}
		m.state = StateRunning
		m.totalSteps = msg.TotalSteps
		m.doneSteps = 0
		m.runErr = nil
		m.currentStep = ""
		m.log.Append(m.styles.Title.Render("Setting up " + msg.Dir))
		return m, m.spinner.Tick

	case StepStartedMsg:
		m.currentStep = msg.Step.Title()
		return m, nil

	case StepResultMsg:
		m.doneSteps++
		m.currentStep = ""
		for _, line := range formatResult(m.styles, msg.Result) {
			m.log.Append(line)
		}
		return m, nil

	case RunFinishedMsg:
		m.state = StateDone
		m.runErr = msg.Err
		m.runDuration = msg.Duration
		// A step announced just before a halt or cancel never ran.
		m.currentStep = ""
		if msg.Err != nil {
			m.log.Append(m.styles.Error.Render("✗ " + msg.Err.Error()))
		} else {
			m.log.Append(m.styles.Success.Render(
				fmt.Sprintf("✓ Setup complete in %s", formatDuration(msg.Duration))))
		}
		return m, nil
	}

	// Forward remaining events (mouse scroll etc.) to the log panel.
	if m.state != StateForm {
		var cmd tea.Cmd
		m.log, cmd = m.log.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		if m.state == StateRunning && m.onCancel != nil {
			m.onCancel()
			return m, nil
		}
		if m.onQuit != nil {
			m.onQuit()
		}
		return m, tea.Quit
	}

	switch m.state {
	case StateForm:
		switch key {
		case "q":
			// Only quit on q when no text input is focused.
			if m.form.focus == focusCatalog {
				if m.onQuit != nil {
					m.onQuit()
				}
				return m, tea.Quit
			}
		case "enter":
			req := bootstrap.Request{
				TargetDir: m.form.Dir(),
				Selected:  m.form.Selected(),
				Custom:    m.form.Custom(),
			}
			if m.onStart != nil {
				if err := m.onStart(req); err != nil {
					m.form.SetError(err.Error())
					return m, nil
				}
				m.form.SetError("")
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd

	case StateRunning:
		if key == "esc" && m.onCancel != nil {
			m.onCancel()
			return m, nil
		}

	case StateDone:
		switch key {
		case "enter", "n":
			m.state = StateForm
			return m, nil
		case "q", "esc":
			if m.onQuit != nil {
				m.onQuit()
			}
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.log, cmd = m.log.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.state == StateForm {
		return m.form.View()
	}

	var b strings.Builder
	b.WriteString(m.log.View())
	b.WriteString("\n")

	if m.totalSteps > 0 {
		percent := float64(m.doneSteps) / float64(m.totalSteps)
		b.WriteString("  " + m.progress.ViewAs(percent))
		b.WriteString(fmt.Sprintf("  %d/%d\n", m.doneSteps, m.totalSteps))
	}

	switch m.state {
	case StateRunning:
		if m.currentStep != "" {
			b.WriteString("  " + m.spinner.View() + " " +
				m.styles.Running.Render(m.currentStep+"...") + "\n")
		}
		b.WriteString("\n" + m.styles.Hint.Render("esc cancel"))
	case StateDone:
		if m.runErr != nil {
			b.WriteString("  " + m.styles.Error.Render("Setup failed") + "\n")
		} else {
			b.WriteString("  " + m.styles.Success.Render("Setup complete") + "\n")
		}
		b.WriteString("\n" + m.styles.Hint.Render("enter new run  │  q quit"))
	}

	return b.String()
}

// formatResult renders one step result into log lines.
func formatResult(styles *Styles, res bootstrap.StepResult) []string {
	title := res.Step.Title()

	switch {
	case res.Skipped:
		return []string{styles.Skip.Render("↷ "+title) + styles.Hint.Render(" — "+res.Output)}

	case res.Succeeded:
		line := styles.Success.Render("✓ "+title) +
			styles.Hint.Render(" ("+formatDuration(res.Duration)+")")
		return []string{line}

	default:
		lines := []string{styles.Error.Render("✗ " + title + " — " + res.Err.Error())}
		for _, out := range strings.Split(strings.TrimSpace(res.Output), "\n") {
			if out = strings.TrimRight(out, " \t"); out != "" {
				lines = append(lines, styles.Hint.Render("    "+out))
			}
		}
		return lines
	}
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
}
