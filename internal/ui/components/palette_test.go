package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestHints(t *testing.T) {
	t.Parallel()
	if got := Hints(""); len(got) != len(paletteHints) {
		t.Fatalf("expected all hints for empty input, got %v", got)
	}
	got := Hints("goal:cr Run")
	if len(got) != 1 || got[0] != "goal:create <name>" {
		t.Fatalf("expected goal:create hint, got %v", got)
	}
	if got := Hints("nope"); len(got) != 0 {
		t.Fatalf("expected no hints, got %v", got)
	}
}

func TestPaletteSubmitAndCancel(t *testing.T) {
	t.Parallel()
	p := NewPalette()
	p.Open()
	p.input.SetValue("  goal:sync ")
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if p.Visible() {
		t.Fatal("palette should close on enter")
	}
	msg, ok := cmd().(PaletteSubmitMsg)
	if !ok || msg.Input != "goal:sync" {
		t.Fatalf("expected trimmed submit, got %#v", msg)
	}

	p.Open()
	p, cmd = p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if p.Visible() {
		t.Fatal("palette should close on esc")
	}
	if _, ok := cmd().(PaletteCancelMsg); !ok {
		t.Fatal("expected cancel message")
	}
}
