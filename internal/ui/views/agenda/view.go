package agenda

import (
	"context"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	agendadto "planr/internal/modules/agenda/dto"
	agendain "planr/internal/modules/agenda/port/in"
	"planr/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

// Actions are the agenda handlers bound to one view.
type Actions interface {
	Load(ctx context.Context) error
	HandleDelete(ctx context.Context, item agendadto.ItemOutput) error
	HandleComplete(ctx context.Context, item agendadto.ItemOutput) error
}

// Binder returns the agenda handlers that push their results into view.
type Binder func(view agendain.View) Actions

// ─── messages ────────────────────────────────────────────────────────────────

// UpdatedMsg carries whatever the handlers pushed during one action.
type UpdatedMsg struct {
	Items    []agendadto.ItemOutput
	Marks    agendadto.MarkedDatesOutput
	HasItems bool
	HasMarks bool
	Err      error
}

// collector is the agenda View for the duration of one command. Bubble Tea
// models are values, so state set by handlers travels back as UpdatedMsg.
type collector struct {
	msg UpdatedMsg
}

func (c *collector) SetAgendaItems(items []agendadto.ItemOutput) {
	c.msg.Items = items
	c.msg.HasItems = true
}

func (c *collector) SetMarkedDates(marks agendadto.MarkedDatesOutput) {
	c.msg.Marks = marks
	c.msg.HasMarks = true
}

// ─── list item ───────────────────────────────────────────────────────────────

type agendaItem struct {
	item agendadto.ItemOutput
}

func (i agendaItem) Title() string {
	if i.item.Completed {
		return theme.Done.Render("✓ " + i.item.Name)
	}
	return "○ " + i.item.Name
}
func (i agendaItem) Description() string { return i.item.Date + "  " + i.item.GoalName }
func (i agendaItem) FilterValue() string { return i.item.Name }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	bind    Binder
	list    list.Model
	spinner spinner.Model
	marks   agendadto.MarkedDatesOutput
	loading bool
	err     error
	width   int
	height  int
}

func New(bind Binder) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Agenda"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		bind:    bind,
		list:    l,
		spinner: sp,
		marks:   agendadto.MarkedDatesOutput{},
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, max(msg.Height-2, 1))

	case UpdatedMsg:
		m.loading = false
		m.err = msg.Err
		if msg.HasItems {
			cmds = append(cmds, m.setItems(msg.Items))
		}
		if msg.HasMarks {
			m.marks = msg.Marks
		}

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "c":
			if item, ok := m.Selected(); ok {
				return m, m.run(func(a Actions, ctx context.Context) error { return a.HandleComplete(ctx, item) })
			}
			return m, nil
		case "d":
			if item, ok := m.Selected(); ok {
				return m, m.run(func(a Actions, ctx context.Context) error { return a.HandleDelete(ctx, item) })
			}
			return m, nil
		case "r":
			return m, m.Reload()
		}
	}

	if !m.loading {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading agenda…")
	}
	footer := m.renderMarks()
	if m.err != nil {
		footer = theme.Error.Render(m.err.Error())
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.list.View(), footer)
}

// Reload fetches the agenda and its marked dates.
func (m Model) Reload() tea.Cmd {
	return m.run(func(a Actions, ctx context.Context) error { return a.Load(ctx) })
}

// Selected returns the highlighted agenda item, if any.
func (m Model) Selected() (agendadto.ItemOutput, bool) {
	if it, ok := m.list.SelectedItem().(agendaItem); ok {
		return it.item, true
	}
	return agendadto.ItemOutput{}, false
}

// Marks returns the marked dates last pushed by the handlers.
func (m Model) Marks() agendadto.MarkedDatesOutput {
	return m.marks
}

func (m Model) run(action func(Actions, context.Context) error) tea.Cmd {
	bind := m.bind
	return func() tea.Msg {
		if bind == nil {
			return UpdatedMsg{}
		}
		c := &collector{}
		c.msg.Err = action(bind(c), context.Background())
		return c.msg
	}
}

func (m *Model) setItems(items []agendadto.ItemOutput) tea.Cmd {
	listItems := make([]list.Item, len(items))
	for i, it := range items {
		listItems[i] = agendaItem{item: it}
	}
	return m.list.SetItems(listItems)
}

func (m Model) renderMarks() string {
	if len(m.marks) == 0 {
		return theme.Muted.Render("no dated tasks")
	}
	dates := make([]string, 0, len(m.marks))
	for date := range m.marks {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	parts := make([]string, 0, len(dates))
	for _, date := range dates {
		if m.marks[date].AllDone {
			parts = append(parts, theme.Done.Render(date))
		} else {
			parts = append(parts, theme.Pending.Render(date))
		}
	}
	return strings.Join(parts, theme.Muted.Render(" · "))
}
