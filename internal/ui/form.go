package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"pystart/internal/catalog"
)

// focusZone identifies which part of the form receives key input.
type focusZone int

const (
	focusDir focusZone = iota
	focusCatalog
	focusCustom
)

// formRow is one visible line of the catalog list. Header rows are not
// selectable; the cursor skips over them.
type formRow struct {
	header  bool
	label   string // category name for headers, library name otherwise
	checked bool
}

// FormModel is the selection form: target directory, catalog checkboxes and
// the free-text field for additional libraries.
type FormModel struct {
	dirInput    textinput.Model
	customInput textinput.Model
	rows        []formRow
	cursor      int // index into rows, always on a non-header row
	focus       focusZone
	styles      *Styles
	errText     string
}

// NewFormModel builds the form from the catalog, pre-checking defaults.
func NewFormModel(cat catalog.Catalog, initialDir string, styles *Styles) FormModel {
	dir := textinput.New()
	dir.Placeholder = "/path/to/project"
	dir.Prompt = ""
	dir.CharLimit = 512
	dir.SetValue(initialDir)
	dir.Focus()

	custom := textinput.New()
	custom.Placeholder = "extra libraries, comma separated"
	custom.Prompt = ""
	custom.CharLimit = 1024

	var rows []formRow
	for _, c := range cat.Categories {
		rows = append(rows, formRow{header: true, label: c.Name})
		for _, lib := range c.Libraries {
			rows = append(rows, formRow{label: lib.Name, checked: lib.Default})
		}
	}

	m := FormModel{
		dirInput:    dir,
		customInput: custom,
		rows:        rows,
		focus:       focusDir,
		styles:      styles,
	}
	m.cursor = m.nextSelectable(-1, 1)
	return m
}

// Dir returns the entered target directory, trimmed.
func (m FormModel) Dir() string {
	return strings.TrimSpace(m.dirInput.Value())
}

// Selected returns the checked library names in catalog order.
func (m FormModel) Selected() []string {
	var names []string
	for _, row := range m.rows {
		if !row.header && row.checked {
			names = append(names, row.label)
		}
	}
	return names
}

// Custom returns the parsed free-text library names.
func (m FormModel) Custom() []string {
	return catalog.ParseCustom(m.customInput.Value())
}

// SetError displays a validation error under the form.
func (m *FormModel) SetError(text string) {
	m.errText = text
}

// nextSelectable finds the next non-header row from idx in direction dir.
func (m FormModel) nextSelectable(idx, dir int) int {
	for i := idx + dir; i >= 0 && i < len(m.rows); i += dir {
		if !m.rows[i].header {
			return i
		}
	}
	return idx
}

// Update handles key input for the form.
func (m FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "tab":
		m.setFocus((m.focus + 1) % 3)
		return m, nil
	case "shift+tab":
		m.setFocus((m.focus + 2) % 3)
		return m, nil
	}

	switch m.focus {
	case focusDir:
		var cmd tea.Cmd
		m.dirInput, cmd = m.dirInput.Update(msg)
		return m, cmd

	case focusCustom:
		var cmd tea.Cmd
		m.customInput, cmd = m.customInput.Update(msg)
		return m, cmd

	case focusCatalog:
		switch keyMsg.String() {
		case "up", "k":
			m.cursor = m.nextSelectable(m.cursor, -1)
		case "down", "j":
			m.cursor = m.nextSelectable(m.cursor, 1)
		case " ", "x":
			m.rows[m.cursor].checked = !m.rows[m.cursor].checked
		}
	}
	return m, nil
}

func (m *FormModel) setFocus(zone focusZone) {
	m.focus = zone
	m.dirInput.Blur()
	m.customInput.Blur()
	switch zone {
	case focusDir:
		m.dirInput.Focus()
	case focusCustom:
		m.customInput.Focus()
	}
}

// View renders the form.
func (m FormModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("pystart — Python project setup"))
	b.WriteString("\n\n")

	dirLabel := "Target folder"
	if m.focus == focusDir {
		dirLabel = m.styles.Focused.Render("▸ " + dirLabel)
	} else {
		dirLabel = m.styles.Label.Render("  " + dirLabel)
	}
	b.WriteString(dirLabel + "\n  " + m.dirInput.View() + "\n\n")

	for i, row := range m.rows {
		if row.header {
			b.WriteString(m.styles.Category.Render(row.label) + "\n")
			continue
		}

		check := "[ ]"
		label := m.styles.Label.Render(row.label)
		if row.checked {
			check = m.styles.Checked.Render("[x]")
			label = m.styles.Checked.Render(row.label)
		}

		cursor := "  "
		if m.focus == focusCatalog && i == m.cursor {
			cursor = m.styles.Cursor.Render("▸ ")
		}
		b.WriteString(cursor + check + " " + label + "\n")
	}
	b.WriteString("\n")

	customLabel := "Other libraries"
	if m.focus == focusCustom {
		customLabel = m.styles.Focused.Render("▸ " + customLabel)
	} else {
		customLabel = m.styles.Label.Render("  " + customLabel)
	}
	b.WriteString(customLabel + "\n  " + m.customInput.View() + "\n")

	if m.errText != "" {
		b.WriteString("\n" + m.styles.Error.Render("✗ "+m.errText) + "\n")
	}

	b.WriteString("\n" + m.styles.Hint.Render(
		"tab switch  │  space toggle  │  enter start  │  q quit"))

	return b.String()
}
