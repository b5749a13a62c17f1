package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/trimworks/flashing/pkg/core/metrics"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m tea.Model, keys ...string) tea.Model {
	for _, k := range keys {
		m, _ = m.Update(key(k))
	}
	return m
}

func testRows() []metrics.Row {
	return []metrics.Row{
		{Index: 0, Name: "Barge", Folds: 3, GirthText: "180"},
		{Index: 1, Name: "Apron", Folds: 1, GirthText: "60"},
		{Index: 2, Name: "Broken", Invalid: true},
	}
}

func TestDiagramListSelectCursor(t *testing.T) {
	m := press(NewDiagramListModel(testRows()), "down", "enter").(DiagramListModel)
	if len(m.Selected) != 1 || m.Selected[0] != 1 {
		t.Errorf("selected = %v, want [1]", m.Selected)
	}
}

func TestDiagramListMarked(t *testing.T) {
	m := press(NewDiagramListModel(testRows()), " ", "down", "down", " ", "enter").(DiagramListModel)
	if got := m.Selected; len(got) != 2 || got[0] != 0 || got[1] != 2 {
		t.Errorf("selected = %v, want [0 2]", got)
	}

	m = press(NewDiagramListModel(testRows()), "a", "enter").(DiagramListModel)
	if len(m.Selected) != 3 {
		t.Errorf("select all = %v", m.Selected)
	}
}

func TestDiagramListCursorBounds(t *testing.T) {
	m := press(NewDiagramListModel(testRows()), "k", "down", "down", "down", "down").(DiagramListModel)
	if m.Cursor != 2 {
		t.Errorf("cursor = %d, want 2", m.Cursor)
	}
}

func TestDiagramListScroll(t *testing.T) {
	m := NewDiagramListModel(testRows())
	m.Height = 1
	m = press(m, "down", "down").(DiagramListModel)
	if m.Offset != 2 {
		t.Errorf("offset = %d, want 2", m.Offset)
	}
	if view := m.View(); !strings.Contains(view, "Broken") || strings.Contains(view, "Barge") {
		t.Errorf("view should show only the row under the cursor:\n%s", view)
	}
}

func TestDiagramListQuit(t *testing.T) {
	m := press(NewDiagramListModel(testRows()), "q").(DiagramListModel)
	if !m.Cancelled || m.Selected != nil {
		t.Errorf("quit: cancelled=%v selected=%v", m.Cancelled, m.Selected)
	}
}

func TestOrderList(t *testing.T) {
	m := press(NewOrderListModel([]string{"A-1", "A-2"}), "j", "enter").(OrderListModel)
	if m.Selected != "A-2" {
		t.Errorf("selected = %q", m.Selected)
	}
	if !strings.Contains(m.View(), "> A-2") {
		t.Errorf("view should mark the cursor:\n%s", m.View())
	}

	m = press(NewOrderListModel(nil), "enter").(OrderListModel)
	if m.Selected != "" {
		t.Errorf("empty list selected %q", m.Selected)
	}
}

func TestSummaryTable(t *testing.T) {
	out := summaryTable(metrics.Summary{Rows: testRows()})
	for _, want := range []string{"Barge", "Apron", "Broken", "Girth", "Q×L"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q", want)
		}
	}
}
