package agenda

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	agendadto "planr/internal/modules/agenda/dto"
	agendain "planr/internal/modules/agenda/port/in"
)

type fakeActions struct {
	view      agendain.View
	items     []agendadto.ItemOutput
	completed []agendadto.ItemOutput
	deleted   []agendadto.ItemOutput
}

func (f *fakeActions) Load(context.Context) error {
	f.view.SetAgendaItems(f.items)
	f.view.SetMarkedDates(agendadto.MarkedDatesOutput{"2026-03-01": {Marked: true}})
	return nil
}

func (f *fakeActions) HandleDelete(_ context.Context, item agendadto.ItemOutput) error {
	f.deleted = append(f.deleted, item)
	f.view.SetAgendaItems(f.items[1:])
	f.view.SetMarkedDates(agendadto.MarkedDatesOutput{})
	return nil
}

func (f *fakeActions) HandleComplete(_ context.Context, item agendadto.ItemOutput) error {
	f.completed = append(f.completed, item)
	done := append([]agendadto.ItemOutput(nil), f.items...)
	done[0].Completed = true
	f.view.SetAgendaItems(done)
	return nil
}

func newLoaded(t *testing.T) (Model, *fakeActions) {
	t.Helper()
	actions := &fakeActions{items: []agendadto.ItemOutput{
		{GoalID: 1, TaskID: 1, Name: "5k", Date: "2026-03-01"},
		{GoalID: 1, TaskID: 2, Name: "10k", Date: "2026-03-02"},
	}}
	m := New(func(v agendain.View) Actions {
		actions.view = v
		return actions
	})
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m, _ = m.Update(m.Reload()())
	return m, actions
}

func press(m Model, key string) (Model, tea.Msg) {
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
	if cmd == nil {
		return m, nil
	}
	return m, cmd()
}

func TestLoadSetsItemsAndMarks(t *testing.T) {
	t.Parallel()
	m, _ := newLoaded(t)
	item, ok := m.Selected()
	if !ok || item.Name != "5k" {
		t.Fatalf("expected first item selected, got %+v %v", item, ok)
	}
	if !m.Marks()["2026-03-01"].Marked {
		t.Fatalf("expected marked date, got %+v", m.Marks())
	}
}

func TestCompleteKeepsMarkedDates(t *testing.T) {
	t.Parallel()
	m, actions := newLoaded(t)
	m, msg := press(m, "c")
	updated, ok := msg.(UpdatedMsg)
	if !ok || !updated.HasItems || updated.HasMarks {
		t.Fatalf("expected items-only update, got %#v", msg)
	}
	m, _ = m.Update(updated)
	if len(actions.completed) != 1 || actions.completed[0].TaskID != 1 {
		t.Fatalf("expected first item completed, got %+v", actions.completed)
	}
	if item, _ := m.Selected(); !item.Completed {
		t.Fatalf("expected selection to reflect completion, got %+v", item)
	}
	if !m.Marks()["2026-03-01"].Marked {
		t.Fatal("complete must not reset marked dates")
	}
}

func TestDeleteRefreshesMarkedDates(t *testing.T) {
	t.Parallel()
	m, actions := newLoaded(t)
	m, msg := press(m, "d")
	m, _ = m.Update(msg)
	if len(actions.deleted) != 1 {
		t.Fatalf("expected one delete, got %+v", actions.deleted)
	}
	if len(m.Marks()) != 0 {
		t.Fatalf("expected marks replaced, got %+v", m.Marks())
	}
	if item, _ := m.Selected(); item.Name != "10k" {
		t.Fatalf("expected remaining item selected, got %+v", item)
	}
}

func TestNilBinderIsInert(t *testing.T) {
	t.Parallel()
	m := New(nil)
	msg := m.Reload()()
	if _, ok := msg.(UpdatedMsg); !ok {
		t.Fatalf("expected empty update, got %#v", msg)
	}
	m, _ = m.Update(msg)
	if _, ok := m.Selected(); ok {
		t.Fatal("expected no selection")
	}
}
