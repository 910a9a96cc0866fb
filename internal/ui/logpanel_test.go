package ui

import (
	"strings"
	"testing"
)

func TestLogPanelAppendIsMonotonic(t *testing.T) {
	panel := NewLogPanel(DefaultStyles())
	panel.SetSize(80, 10)

	prev := panel.Len()
	for _, line := range []string{"step one", "step two", "", "step three"} {
		panel.Append(line)
		if panel.Len() <= prev {
			t.Fatalf("log length did not grow after append: %d -> %d", prev, panel.Len())
		}
		prev = panel.Len()
	}
}

func TestLogPanelClear(t *testing.T) {
	panel := NewLogPanel(DefaultStyles())
	panel.Append("something")
	if panel.Len() == 0 {
		t.Fatal("append had no effect")
	}

	panel.Clear()
	if panel.Len() != 0 {
		t.Errorf("log not empty after clear: %d bytes", panel.Len())
	}
}

func TestLogPanelAppendBeforeSize(t *testing.T) {
	// Lines appended before the first WindowSizeMsg must survive resize.
	panel := NewLogPanel(DefaultStyles())
	panel.Append("early line")
	panel.SetSize(80, 10)

	if !strings.Contains(panel.View(), "early line") {
		t.Error("pre-resize content lost")
	}
}
