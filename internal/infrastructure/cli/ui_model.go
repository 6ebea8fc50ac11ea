package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/felixgeelhaar/tasker/pkg/application"
	"github.com/felixgeelhaar/tasker/pkg/domain/todo"
)

// Styles
var (
	uiTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			PaddingLeft(1).
			PaddingRight(1)
	uiErrorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	uiNoticeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	uiLabelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	uiActiveTabStyle = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("#7D56F4"))
	uiTabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	uiDoneStyle      = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("242"))
	uiCursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true)
	uiEmptyStyle     = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("242"))
)

type uiFocus int

const (
	focusAdd uiFocus = iota
	focusGoal
	focusList
)

type uiKeyMap struct {
	next     key.Binding
	submit   key.Binding
	up       key.Binding
	down     key.Binding
	toggle   key.Binding
	del      key.Binding
	clear    key.Binding
	filter   key.Binding
	all      key.Binding
	active   key.Binding
	done     key.Binding
	addMode  key.Binding
	goalMode key.Binding
	dismiss  key.Binding
	quit     key.Binding
}

func newUIKeyMap() uiKeyMap {
	return uiKeyMap{
		next:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch field")),
		submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		toggle:   key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle")),
		del:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		clear:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear completed")),
		filter:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "next filter")),
		all:      key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "all")),
		active:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "active")),
		done:     key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "completed")),
		addMode:  key.NewBinding(key.WithKeys("a", "i"), key.WithHelp("a", "add task")),
		goalMode: key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "auto-plan")),
		dismiss:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss/list")),
		quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// generatedMsg carries the outcome of a goal expansion back to the UI.
type generatedMsg struct {
	result application.GenerationResult
	err    error
}

type uiModel struct {
	ctx   context.Context
	store *application.TaskStore
	goals *application.GoalService

	addInput  textinput.Model
	goalInput textinput.Model
	spin      spinner.Model
	help      help.Model
	keys      uiKeyMap

	focus      uiFocus
	cursor     int
	generating bool
	errMsg     string
	notice     string
}

func newUIModel(ctx context.Context, store *application.TaskStore, goals *application.GoalService) uiModel {
	add := textinput.New()
	add.Placeholder = "What needs to be done?"
	add.CharLimit = 200
	add.Focus()

	goal := textinput.New()
	goal.Placeholder = "Describe a goal, e.g. Plan a trip to Japan"
	goal.CharLimit = 300

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	return uiModel{
		ctx:       ctx,
		store:     store,
		goals:     goals,
		addInput:  add,
		goalInput: goal,
		spin:      sp,
		help:      help.New(),
		keys:      newUIKeyMap(),
		focus:     focusAdd,
	}
}

func (m uiModel) Init() tea.Cmd { return textinput.Blink }

func (m uiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case generatedMsg:
		m.generating = false
		if msg.err != nil {
			m.errMsg = application.UserMessage(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.notice = msg.result.Warning
		m.goalInput.Reset()
		m.cursor = 0
		return m, nil

	case spinner.TickMsg:
		if !m.generating {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.quit) {
			return m, tea.Quit
		}
		if m.focus == focusList {
			return m.updateList(msg)
		}
		return m.updateInput(msg)
	}
	return m, nil
}

func (m uiModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.next):
		return m.setFocus((m.focus + 1) % 3)
	case key.Matches(msg, m.keys.dismiss):
		if m.errMsg != "" || m.notice != "" {
			m.errMsg, m.notice = "", ""
			return m, nil
		}
		return m.setFocus(focusList)
	case key.Matches(msg, m.keys.submit):
		if m.focus == focusGoal {
			return m.submitGoal()
		}
		return m.submitTask()
	case msg.Type == tea.KeyUp:
		m.moveCursor(-1)
		return m, nil
	case msg.Type == tea.KeyDown:
		m.moveCursor(1)
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == focusGoal {
		m.goalInput, cmd = m.goalInput.Update(msg)
	} else {
		m.addInput, cmd = m.addInput.Update(msg)
	}
	return m, cmd
}

func (m uiModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.next), key.Matches(msg, m.keys.addMode):
		return m.setFocus(focusAdd)
	case key.Matches(msg, m.keys.goalMode):
		return m.setFocus(focusGoal)
	case key.Matches(msg, m.keys.dismiss):
		m.errMsg, m.notice = "", ""
	case key.Matches(msg, m.keys.up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.toggle):
		if t, ok := m.selected(); ok {
			_, err := m.store.Toggle(t.ID)
			m.report(err)
		}
	case key.Matches(msg, m.keys.del):
		if t, ok := m.selected(); ok {
			_, err := m.store.Delete(t.ID)
			m.report(err)
		}
	case key.Matches(msg, m.keys.clear):
		_, err := m.store.ClearCompleted()
		m.report(err)
	case key.Matches(msg, m.keys.all):
		m.setFilter(todo.FilterAll)
	case key.Matches(msg, m.keys.active):
		m.setFilter(todo.FilterActive)
	case key.Matches(msg, m.keys.done):
		m.setFilter(todo.FilterCompleted)
	case key.Matches(msg, m.keys.filter):
		m.setFilter(nextFilter(m.store.Filter()))
	}
	m.clampCursor()
	return m, nil
}

func (m uiModel) setFocus(f uiFocus) (tea.Model, tea.Cmd) {
	m.focus = f
	m.addInput.Blur()
	m.goalInput.Blur()
	switch f {
	case focusAdd:
		return m, m.addInput.Focus()
	case focusGoal:
		return m, m.goalInput.Focus()
	}
	return m, nil
}

func (m uiModel) submitTask() (tea.Model, tea.Cmd) {
	text := m.addInput.Value()
	if strings.TrimSpace(text) == "" {
		return m, nil
	}
	_, err := m.store.Add(text)
	m.report(err)
	m.addInput.Reset()
	m.cursor = 0
	return m, nil
}

func (m uiModel) submitGoal() (tea.Model, tea.Cmd) {
	if m.generating {
		return m, nil
	}
	goal := strings.TrimSpace(m.goalInput.Value())
	if goal == "" {
		m.errMsg = application.UserMessage(todo.ErrEmptyGoal)
		return m, nil
	}
	m.generating = true
	m.errMsg = ""
	return m, tea.Batch(m.spin.Tick, m.generate(goal))
}

func (m uiModel) generate(goal string) tea.Cmd {
	ctx, goals := m.ctx, m.goals
	return func() tea.Msg {
		result, err := goals.GenerateFromGoal(ctx, goal)
		return generatedMsg{result: result, err: err}
	}
}

// report surfaces a store error without blocking further edits.
func (m *uiModel) report(err error) {
	if err != nil {
		m.errMsg = application.UserMessage(err)
	}
}

func (m *uiModel) setFilter(f todo.Filter) {
	_ = m.store.SetFilter(f)
	m.cursor = 0
}

func (m *uiModel) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *uiModel) clampCursor() {
	n := len(m.store.Visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m uiModel) selected() (todo.Task, bool) {
	visible := m.store.Visible()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return todo.Task{}, false
	}
	return visible[m.cursor], true
}

func nextFilter(f todo.Filter) todo.Filter {
	filters := todo.AllFilters()
	for i, candidate := range filters {
		if candidate == f {
			return filters[(i+1)%len(filters)]
		}
	}
	return todo.FilterAll
}

func (m uiModel) View() string {
	var b strings.Builder

	b.WriteString(uiTitleStyle.Render("Smart Tasker"))
	b.WriteString("\n\n")

	if m.errMsg != "" {
		b.WriteString(uiErrorStyle.Render("! " + m.errMsg))
		b.WriteString("\n\n")
	}
	if m.notice != "" {
		b.WriteString(uiNoticeStyle.Render(m.notice))
		b.WriteString("\n\n")
	}

	b.WriteString(uiLabelStyle.Render("Add task"))
	b.WriteString("\n")
	b.WriteString(m.addInput.View())
	b.WriteString("\n\n")

	goalLabel := "Auto-plan goal"
	if m.generating {
		goalLabel += "  " + m.spin.View() + " Generating…"
	}
	b.WriteString(uiLabelStyle.Render(goalLabel))
	b.WriteString("\n")
	b.WriteString(m.goalInput.View())
	b.WriteString("\n\n")

	current := m.store.Filter()
	tabs := make([]string, 0, 3)
	for _, f := range todo.AllFilters() {
		if f == current {
			tabs = append(tabs, uiActiveTabStyle.Render(f.Label()))
		} else {
			tabs = append(tabs, uiTabStyle.Render(f.Label()))
		}
	}
	b.WriteString(strings.Join(tabs, "  "))
	b.WriteString("\n\n")

	visible := m.store.Visible()
	if len(visible) == 0 {
		b.WriteString(uiEmptyStyle.Render(current.EmptyMessage()))
		b.WriteString("\n")
	}
	for i, t := range visible {
		prefix := "  "
		if m.focus == focusList && i == m.cursor {
			prefix = uiCursorStyle.Render("> ")
		}
		text := t.Text
		if t.Completed {
			text = uiDoneStyle.Render(text)
		}
		fmt.Fprintf(&b, "%s%s %s\n", prefix, checkbox(t), text)
	}

	footer := todo.RemainingLabel(m.store.ActiveCount())
	if m.store.HasCompleted() {
		footer += "  ·  c: clear completed"
	}
	b.WriteString("\n")
	b.WriteString(uiLabelStyle.Render(footer))
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(m.helpKeys()))
	b.WriteString("\n")

	return b.String()
}

func (m uiModel) helpKeys() []key.Binding {
	if m.focus == focusList {
		return []key.Binding{m.keys.up, m.keys.down, m.keys.toggle, m.keys.del, m.keys.clear, m.keys.filter, m.keys.addMode, m.keys.goalMode, m.keys.quit}
	}
	return []key.Binding{m.keys.next, m.keys.submit, m.keys.dismiss, m.keys.quit}
}
