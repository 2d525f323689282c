package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/nomiskit/pkg/nomis"
)

func testDatasets() []nomis.Dataset {
	return []nomis.Dataset{
		{ID: "NM_1_1", Name: "Jobseeker's Allowance"},
		{ID: "NM_7_1", Name: "Claimant count by age"},
		{ID: "NM_17_5", Name: "Annual population survey"},
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m DatasetListModel, keys ...string) DatasetListModel {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(DatasetListModel)
	}
	return m
}

func TestDatasetListNavigation(t *testing.T) {
	m := NewDatasetListModel(testDatasets())

	m = press(m, "j", "j", "j")
	if m.Cursor != 2 {
		t.Errorf("cursor = %d, want 2 (clamped)", m.Cursor)
	}
	m = press(m, "k")
	if m.Cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.Cursor)
	}
	m = press(m, "k", "k")
	if m.Cursor != 0 {
		t.Errorf("cursor = %d, want 0 (clamped)", m.Cursor)
	}
}

func TestDatasetListSelect(t *testing.T) {
	m := press(NewDatasetListModel(testDatasets()), "j")

	next, cmd := m.Update(key("enter"))
	m = next.(DatasetListModel)
	if m.Selected == nil || m.Selected.ID != "NM_7_1" {
		t.Fatalf("selected = %+v, want NM_7_1", m.Selected)
	}
	if cmd == nil {
		t.Error("enter should quit the program")
	}
}

func TestDatasetListQuit(t *testing.T) {
	next, cmd := NewDatasetListModel(testDatasets()).Update(key("q"))
	if next.(DatasetListModel).Selected != nil {
		t.Error("quit should not select")
	}
	if cmd == nil {
		t.Error("q should quit the program")
	}
}

func TestDatasetListEmptyEnter(t *testing.T) {
	next, cmd := NewDatasetListModel(nil).Update(key("enter"))
	if next.(DatasetListModel).Selected != nil || cmd != nil {
		t.Error("enter on empty list should do nothing")
	}
}

func TestDatasetListScroll(t *testing.T) {
	m := NewDatasetListModel(testDatasets())
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 2})
	m = next.(DatasetListModel)
	if m.Height != 5 {
		t.Errorf("height = %d, want minimum 5", m.Height)
	}

	m.Height = 2
	m = press(m, "j", "j")
	if m.Offset != 1 {
		t.Errorf("offset = %d, want 1", m.Offset)
	}
	m = press(m, "k", "k")
	if m.Offset != 0 {
		t.Errorf("offset = %d, want 0", m.Offset)
	}
}

func TestDatasetListView(t *testing.T) {
	view := NewDatasetListModel(testDatasets()).View()
	for _, want := range []string{"Select Dataset", "NM_1_1", "Annual population survey", "[1/3]"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"a longer description", 8, "a longe…"},
		{"Région", 4, "Rég…"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
