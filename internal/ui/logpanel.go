package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// LogPanel is the read-only progress log. Lines are only ever appended while
// a run is active; Clear is called between runs and only when configured.
type LogPanel struct {
	viewport viewport.Model
	content  strings.Builder
	styles   *Styles
	ready    bool
}

// NewLogPanel creates an empty log panel.
func NewLogPanel(styles *Styles) LogPanel {
	return LogPanel{styles: styles}
}

// Append adds one rendered line to the log and scrolls to the bottom.
func (p *LogPanel) Append(line string) {
	p.content.WriteString(line)
	p.content.WriteString("\n")
	if p.ready {
		p.viewport.SetContent(p.content.String())
		p.viewport.GotoBottom()
	}
}

// Clear empties the log. Callers must only do this between runs.
func (p *LogPanel) Clear() {
	p.content.Reset()
	if p.ready {
		p.viewport.SetContent("")
	}
}

// Len returns the current log length in bytes. Monotonically non-decreasing
// during a run.
func (p *LogPanel) Len() int {
	return p.content.Len()
}

// SetSize resizes the panel's viewport.
func (p *LogPanel) SetSize(width, height int) {
	if !p.ready {
		p.viewport = viewport.New(width, height)
		p.viewport.MouseWheelEnabled = true
		p.ready = true
	} else {
		p.viewport.Width = width
		p.viewport.Height = height
	}
	p.viewport.SetContent(p.content.String())
	p.viewport.GotoBottom()
}

// Update forwards scroll events to the viewport.
func (p LogPanel) Update(msg tea.Msg) (LogPanel, tea.Cmd) {
	if !p.ready {
		return p, nil
	}
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return p, cmd
}

// View renders the log panel.
func (p LogPanel) View() string {
	if !p.ready {
		return ""
	}
	return p.styles.LogPanel.Render(p.viewport.View())
}
