package goals

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	goaldto "planr/internal/modules/goal/dto"
	"planr/internal/ui/theme"
)

type GoalsPort interface {
	List(ctx context.Context) ([]goaldto.GoalOutput, error)
	Sync(ctx context.Context) (goaldto.SyncOutput, error)
}

type LoadedMsg struct {
	Goals []goaldto.GoalOutput
	Err   error
}

type SyncedMsg struct {
	Out goaldto.SyncOutput
	Err error
}

type goalItem struct {
	goal goaldto.GoalOutput
}

func (i goalItem) Title() string { return i.goal.Name }
func (i goalItem) Description() string {
	desc := fmt.Sprintf("#%d", i.goal.GoalID)
	if i.goal.DueDate != nil {
		desc += "  due " + i.goal.DueDate.UTC().Format("2006-01-02")
	}
	if i.goal.Description != "" {
		desc += "  " + i.goal.Description
	}
	return desc
}
func (i goalItem) FilterValue() string { return i.goal.Name }

type Model struct {
	port GoalsPort
	list list.Model
}

func New(port GoalsPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Peach).BorderForeground(theme.Peach)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Peach)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Goals"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	return Model{port: port, list: l}
}

func (m Model) Init() tea.Cmd {
	return m.Reload()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
	case LoadedMsg:
		if msg.Err == nil {
			cmds = append(cmds, m.setGoals(msg.Goals))
		}
	case SyncedMsg:
		if msg.Err == nil {
			cmds = append(cmds, m.setGoals(msg.Out.Goals))
		}
	case tea.KeyMsg:
		if !m.Filtering() {
			switch msg.String() {
			case "s":
				return m, m.SyncNow()
			case "r":
				return m, m.Reload()
			}
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	return m.list.View()
}

func (m Model) Reload() tea.Cmd {
	port := m.port
	return func() tea.Msg {
		if port == nil {
			return LoadedMsg{}
		}
		goals, err := port.List(context.Background())
		return LoadedMsg{Goals: goals, Err: err}
	}
}

func (m Model) SyncNow() tea.Cmd {
	port := m.port
	return func() tea.Msg {
		if port == nil {
			return SyncedMsg{}
		}
		out, err := port.Sync(context.Background())
		return SyncedMsg{Out: out, Err: err}
	}
}

// Selected returns the highlighted goal, if any.
func (m Model) Selected() (goaldto.GoalOutput, bool) {
	if it, ok := m.list.SelectedItem().(goalItem); ok {
		return it.goal, true
	}
	return goaldto.GoalOutput{}, false
}

// Filtering reports whether the list's search filter is currently active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m *Model) setGoals(goals []goaldto.GoalOutput) tea.Cmd {
	items := make([]list.Item, len(goals))
	for i, g := range goals {
		items[i] = goalItem{goal: g}
	}
	return m.list.SetItems(items)
}
