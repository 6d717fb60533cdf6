package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pthm/gtlint/internal/stats"
)

func testSums() *stats.Sums {
	return &stats.Sums{
		Name: "overall", Total: 5, Distinct: 3,
		Children: []*stats.Sums{
			{Name: "L", Total: 4, Distinct: 2, Children: []*stats.Sums{
				{Name: "LATIN", Total: 4, Distinct: 2, Children: []*stats.Sums{
					{Name: "Ll", Total: 4, Distinct: 2, Counts: []stats.CharCount{{Rune: 'a', Count: 3}, {Rune: 'b', Count: 1}}},
				}},
			}},
			{Name: "P", Total: 1, Distinct: 1, Children: []*stats.Sums{
				{Name: "COMMA", Total: 1, Distinct: 1, Children: []*stats.Sums{
					{Name: "Po", Total: 1, Distinct: 1, Counts: []stats.CharCount{{Rune: ',', Count: 1}}},
				}},
			}},
		},
	}
}

func press(t *testing.T, m TreeModel, keys ...string) TreeModel {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		updated, _ := m.Update(msg)
		m = updated.(TreeModel)
	}
	return m
}

func TestTreeModelInitialState(t *testing.T) {
	m := NewTreeModel([]*stats.Sums{testSums()}, nil)
	if m.Visible() != 3 {
		t.Errorf("Visible() = %d, want 3 (root and majors)", m.Visible())
	}
	if got := m.Selected().Name; got != "overall" {
		t.Errorf("Selected() = %q, want overall", got)
	}
	if m.View() != "Initializing..." {
		t.Errorf("View() before sizing = %q", m.View())
	}
}

func TestTreeModelExpandAll(t *testing.T) {
	m := NewTreeModel([]*stats.Sums{testSums()}, nil)
	m.ExpandAll()
	if m.Visible() != 10 {
		t.Errorf("Visible() = %d, want 10", m.Visible())
	}

	out := m.Render()
	for _, want := range []string{
		"▼ overall  5\n",
		"|- ▼ L  4  80.0%\n",
		"|        |- 'a' U+0061 LATIN SMALL LETTER A  3  75.0%\n",
		"`- ▼ P  1  20.0%\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() missing %q\n%s", want, out)
		}
	}

	// Hiding characters leaves the seven category rows
	m = press(t, m, "c")
	if m.Visible() != 7 {
		t.Errorf("Visible() without characters = %d, want 7", m.Visible())
	}
	for _, n := range m.nodes {
		if n.IsChar {
			t.Errorf("character row %q visible after hiding characters", n.Name)
		}
	}
	m = press(t, m, "c")
	if m.Visible() != 10 {
		t.Errorf("Visible() with characters again = %d, want 10", m.Visible())
	}
	m = press(t, m, "c")
	m = press(t, m, "p")
	if strings.Contains(m.Render(), "%") {
		t.Error("percentages must be hidden after toggling")
	}
}

func TestTreeModelNavigation(t *testing.T) {
	m := NewTreeModel([]*stats.Sums{testSums()}, nil)

	m = press(t, m, "down", "right")
	if m.Selected().Name != "L" || m.Visible() != 4 {
		t.Fatalf("after expanding L: selected %q, visible %d", m.Selected().Name, m.Visible())
	}

	m = press(t, m, "j")
	if m.Selected().Name != "LATIN" {
		t.Fatalf("selected %q, want LATIN", m.Selected().Name)
	}

	// Left on a collapsed node jumps to its parent and collapses it
	m = press(t, m, "left")
	if m.Selected().Name != "L" || m.Visible() != 3 {
		t.Errorf("after left: selected %q, visible %d", m.Selected().Name, m.Visible())
	}

	m = press(t, m, "up", "up", "up")
	if m.Selected().Name != "overall" {
		t.Errorf("cursor must stop at the top, got %q", m.Selected().Name)
	}

	m = press(t, m, "enter")
	if m.Visible() != 1 {
		t.Errorf("collapsed root shows %d rows, want 1", m.Visible())
	}
}

func TestTreeModelView(t *testing.T) {
	m := NewTreeModel([]*stats.Sums{testSums()}, nil)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 20})
	m = updated.(TreeModel)

	view := m.View()
	if !strings.Contains(view, "overall  Total: 5  Children: 2") {
		t.Errorf("status bar missing\n%s", view)
	}
	if !strings.Contains(view, "q quit") {
		t.Errorf("help bar missing\n%s", view)
	}

	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}); cmd == nil {
		t.Error("q must return a quit command")
	}
}

func TestTreeModelEmpty(t *testing.T) {
	m := NewTreeModel(nil, nil)
	if m.Selected() != nil || m.Visible() != 0 {
		t.Error("empty browser must have no rows")
	}
	m = press(t, m, "down", "left", "enter")
	if m.Render() != "" {
		t.Errorf("Render() = %q", m.Render())
	}
}

func TestTreeNodePath(t *testing.T) {
	m := NewTreeModel([]*stats.Sums{testSums()}, nil)
	m.ExpandAll()
	for _, n := range m.nodes {
		if n.IsChar && n.Rune == ',' {
			if got := strings.Join(n.Parent.Path(), "/"); got != "overall/P/COMMA/Po" {
				t.Errorf("Path() = %q", got)
			}
			return
		}
	}
	t.Fatal("comma row not found")
}
