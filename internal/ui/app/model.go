package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	goaldto "planr/internal/modules/goal/dto"
	taskdto "planr/internal/modules/task/dto"
	"planr/internal/ui/components"
	"planr/internal/ui/theme"
	agendaview "planr/internal/ui/views/agenda"
	goalsview "planr/internal/ui/views/goals"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type goalPort interface {
	List(ctx context.Context) ([]goaldto.GoalOutput, error)
	Sync(ctx context.Context) (goaldto.SyncOutput, error)
	Create(ctx context.Context, name, description string, dueDate *time.Time) (goaldto.GoalOutput, error)
	Delete(ctx context.Context, goalID int) (goaldto.DeleteOutput, error)
}

type taskPort interface {
	Add(ctx context.Context, goalID int, name string, dueDate *time.Time) (taskdto.TaskOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabGoals tabID = iota
	tabAgenda
	tabCount
)

var tabLabels = [tabCount]string{"Goals", "Agenda"}

// ─── async messages ───────────────────────────────────────────────────────────

type actionDoneMsg struct {
	status string
	err    error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab      key.Binding
	Help     key.Binding
	Palette  key.Binding
	Quit     key.Binding
	Move     key.Binding
	Sync     key.Binding
	Complete key.Binding
	Delete   key.Binding
	Reload   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette:  key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "command")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Move:     key.NewBinding(key.WithKeys("j", "k"), key.WithHelp("j/k", "move")),
		Sync:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sync goals")),
		Complete: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "complete item")),
		Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete item")),
		Reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Move, k.Reload},
		{k.Sync, k.Complete, k.Delete},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the help overlay
// and the command palette; rendering of goals and agenda belongs to the views.
type Model struct {
	goals goalPort
	tasks taskPort

	goalsView  goalsview.Model
	agendaView agendaview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

func NewModel(goals goalPort, tasks taskPort, agenda agendaview.Binder) Model {
	return Model{
		goals:      goals,
		tasks:      tasks,
		goalsView:  goalsview.New(goals),
		agendaView: agendaview.New(agenda),
		activeTab:  tabAgenda,
		keys:       defaultKeys(),
		help:       help.New(),
		palette:    components.NewPalette(),
		status:     "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.goalsView.Init(), m.agendaView.Init())
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
		m.goalsView, _ = m.goalsView.Update(sz)
		m.agendaView, _ = m.agendaView.Update(sz)
		return m, nil

	case goalsview.LoadedMsg:
		if msg.Err != nil {
			m.status = "goals: " + msg.Err.Error()
		}
		var cmd tea.Cmd
		m.goalsView, cmd = m.goalsView.Update(msg)
		return m, cmd

	case goalsview.SyncedMsg:
		if msg.Err != nil {
			m.status = "sync failed: " + msg.Err.Error()
		} else {
			m.status = fmt.Sprintf("synced %d goal(s) since %s", msg.Out.Fetched, msg.Out.Since)
		}
		var cmd tea.Cmd
		m.goalsView, cmd = m.goalsView.Update(msg)
		return m, tea.Batch(cmd, m.agendaView.Reload())

	case agendaview.UpdatedMsg:
		if msg.Err != nil {
			m.status = "agenda: " + msg.Err.Error()
		}
		var cmd tea.Cmd
		m.agendaView, cmd = m.agendaView.Update(msg)
		return m, cmd

	case actionDoneMsg:
		if msg.err != nil {
			m.status = msg.status + ": " + msg.err.Error()
			return m, nil
		}
		m.status = msg.status
		return m, tea.Batch(m.goalsView.Reload(), m.agendaView.Reload())

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if m.activeTab == tabGoals && m.goalsView.Filtering() {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = true
			return m, nil
		case ":":
			return m, m.palette.Open()
		}
	}

	var cmd tea.Cmd
	switch m.activeTab {
	case tabGoals:
		m.goalsView, cmd = m.goalsView.Update(msg)
	case tabAgenda:
		m.agendaView, cmd = m.agendaView.Update(msg)
	}
	return m, cmd
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := max(m.height-lipgloss.Height(tabBar)-lipgloss.Height(statusBar), 1)

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	case m.activeTab == tabGoals:
		content = m.goalsView.View()
	default:
		content = m.agendaView.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + tabLabels[i] + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + tabLabels[i] + " ")
		}
	}
	bar := "planr  " + strings.Join(parts, theme.Muted.Render(" │ "))
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	right := theme.Muted.Render("?:help  tab:switch  ::command  q:quit")
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}
	rest := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))
	selected, hasSelected := m.goalsView.Selected()

	switch parts[0] {
	case "goal:create":
		if rest == "" {
			m.status = "usage: goal:create <name>"
			return m, nil
		}
		return m, m.action("goal created", func(ctx context.Context) error {
			_, err := m.goals.Create(ctx, rest, "", nil)
			return err
		})

	case "goal:delete":
		if !hasSelected {
			m.status = "no goal selected"
			return m, nil
		}
		return m, m.action(fmt.Sprintf("goal %d deleted", selected.GoalID), func(ctx context.Context) error {
			_, err := m.goals.Delete(ctx, selected.GoalID)
			return err
		})

	case "goal:sync":
		return m, m.goalsView.SyncNow()

	case "task:add":
		if !hasSelected {
			m.status = "no goal selected"
			return m, nil
		}
		name, due, err := parseTaskInput(rest)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		return m, m.action("task added to "+selected.Name, func(ctx context.Context) error {
			_, err := m.tasks.Add(ctx, selected.GoalID, name, due)
			return err
		})

	case "agenda:reload":
		m.activeTab = tabAgenda
		return m, m.agendaView.Reload()

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// parseTaskInput splits "<name> [yyyy-mm-dd]"; a trailing date is the due date.
func parseTaskInput(input string) (string, *time.Time, error) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return "", nil, fmt.Errorf("usage: task:add <name> [yyyy-mm-dd]")
	}
	last := fields[len(fields)-1]
	if due, err := time.Parse("2006-01-02", last); err == nil {
		if len(fields) == 1 {
			return "", nil, fmt.Errorf("usage: task:add <name> [yyyy-mm-dd]")
		}
		return strings.Join(fields[:len(fields)-1], " "), &due, nil
	}
	return strings.Join(fields, " "), nil, nil
}

func (m Model) action(status string, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return actionDoneMsg{status: status, err: fn(context.Background())}
	}
}
