// Package tui is the terminal front-end of the admin console.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/EO-DataHub/eodhp-admin-console/internal/actions"
	"github.com/EO-DataHub/eodhp-admin-console/internal/dashboard"
	"github.com/EO-DataHub/eodhp-admin-console/internal/render"
	"github.com/EO-DataHub/eodhp-admin-console/models"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	noticeTimeout  = 4 * time.Second
	maxColumnWidth = 40
	minColumnWidth = 4
	tableHeight    = 12
)

// Controller is the part of *dashboard.Controller the terminal drives.
type Controller interface {
	Start(ctx context.Context)
	LoadList(ctx context.Context, kind models.ListKind)
	LoadStats(ctx context.Context)
	Dispatch(tag, id string) bool
	Cancel()
	Confirm(ctx context.Context) error
	Toggle(ctx context.Context, flag string) bool
	Flags() []string
}

type clearNoticeMsg struct{ seq int }

type Model struct {
	ctx  context.Context
	ctrl Controller

	keys    keyMap
	help    help.Model
	spinner spinner.Model
	table   table.Model

	active  models.ListKind
	title   string
	empty   string
	rows    []render.Row
	loading bool
	listErr string

	stats       models.Stats
	statsLoaded bool
	flags       map[string]bool

	confirmVisible bool
	confirmEnabled bool
	prompt         string

	notice    *noticeMsg
	noticeSeq int
	width     int
}

// New returns the initial model showing the user list.
func New(ctx context.Context, ctrl Controller) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(accent)

	t := table.New(
		table.WithFocused(true),
		table.WithHeight(tableHeight),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(muted).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(accent).
		Bold(false)
	t.SetStyles(styles)

	return Model{
		ctx:     ctx,
		ctrl:    ctrl,
		keys:    newKeyMap(),
		help:    help.New(),
		spinner: s,
		table:   t,
		active:  models.ListUsers,
		loading: true,
		flags:   map[string]bool{},
	}
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, ctrl Controller, bridge *Bridge, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(New(ctx, ctrl), opts...)
	bridge.Attach(p.Send)

	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.do(func() { m.ctrl.Start(m.ctx) }),
		m.do(func() { m.ctrl.LoadList(m.ctx, m.active) }),
	)
}

// do runs a controller call off the event loop. The controller reports back
// through the bridge, so the command itself produces no message.
func (m Model) do(fn func()) tea.Cmd {
	return func() tea.Msg {
		fn()
		return nil
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case confirmMsg:
		m.confirmVisible = true
		m.confirmEnabled = true
		m.prompt = msg.prompt
	case hideConfirmMsg:
		m.confirmVisible = false
		m.prompt = ""
	case confirmEnabledMsg:
		m.confirmEnabled = msg.enabled

	case loadingMsg:
		if msg.kind == m.active {
			m.loading = true
			m.listErr = ""
		}
	case tableMsg:
		if msg.table.Kind == m.active {
			m.setTable(msg.table)
		}
	case listErrorMsg:
		if msg.kind == m.active {
			m.loading = false
			m.listErr = msg.message
		}

	case statsMsg:
		m.stats = msg.stats
		m.statsLoaded = true
	case flagMsg:
		m.flags[msg.name] = msg.enabled

	case noticeMsg:
		m.noticeSeq++
		n := msg
		m.notice = &n
		seq := m.noticeSeq
		return m, tea.Tick(noticeTimeout, func(time.Time) tea.Msg {
			return clearNoticeMsg{seq: seq}
		})
	case clearNoticeMsg:
		if msg.seq == m.noticeSeq {
			m.notice = nil
		}
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.quit) {
		return m, tea.Quit
	}

	// The prompt is modal: only confirm and cancel reach the controller.
	if m.confirmVisible {
		switch {
		case key.Matches(msg, m.keys.confirm):
			if !m.confirmEnabled {
				return m, nil
			}
			return m, m.do(func() { _ = m.ctrl.Confirm(m.ctx) })
		case key.Matches(msg, m.keys.cancel):
			return m, m.do(m.ctrl.Cancel)
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.users):
		return m.switchList(models.ListUsers)
	case key.Matches(msg, m.keys.groups):
		return m.switchList(models.ListGroups)
	case key.Matches(msg, m.keys.projects):
		return m.switchList(models.ListProjects)
	case key.Matches(msg, m.keys.refresh):
		kind := m.active
		return m, tea.Batch(
			m.do(func() { m.ctrl.LoadList(m.ctx, kind) }),
			m.do(func() { m.ctrl.LoadStats(m.ctx) }),
		)
	case key.Matches(msg, m.keys.remove):
		return m, m.dispatchSelected(func(k actions.Kind) bool { return k != actions.ResetPassword })
	case key.Matches(msg, m.keys.reset):
		return m, m.dispatchSelected(func(k actions.Kind) bool { return k == actions.ResetPassword })
	case key.Matches(msg, m.keys.toggle):
		flags := m.ctrl.Flags()
		if len(flags) == 0 {
			return m, nil
		}
		flag := flags[0]
		return m, m.do(func() { m.ctrl.Toggle(m.ctx, flag) })
	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) switchList(kind models.ListKind) (tea.Model, tea.Cmd) {
	if kind == m.active && !m.loading && m.listErr == "" {
		return m, nil
	}
	m.active = kind
	m.loading = true
	m.listErr = ""
	m.rows = nil
	m.table.SetRows(nil)
	return m, m.do(func() { m.ctrl.LoadList(m.ctx, kind) })
}

// dispatchSelected hands the first control of the selected row that matches
// to the controller. Rows without a matching control do nothing.
func (m Model) dispatchSelected(match func(actions.Kind) bool) tea.Cmd {
	row, ok := m.selected()
	if !ok {
		return nil
	}
	for _, c := range row.Controls {
		if match(c.Action) {
			tag, id := c.Tag, c.ID
			return m.do(func() { m.ctrl.Dispatch(tag, id) })
		}
	}
	return nil
}

func (m Model) selected() (render.Row, bool) {
	if m.loading || len(m.rows) == 0 {
		return render.Row{}, false
	}
	i := m.table.Cursor()
	if i < 0 || i >= len(m.rows) {
		return render.Row{}, false
	}
	return m.rows[i], true
}

func (m *Model) setTable(t render.Table) {
	m.loading = false
	m.listErr = ""
	m.title = t.Title
	m.empty = t.Placeholder
	m.rows = t.Rows

	headers, cells := render.Plain(t)
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	rows := make([]table.Row, 0, len(cells))
	for _, r := range cells {
		for i, c := range r {
			if w := lipgloss.Width(c); w > widths[i] {
				widths[i] = w
			}
		}
		rows = append(rows, table.Row(r))
	}

	cols := make([]table.Column, len(headers))
	total := 0
	for i, h := range headers {
		cols[i] = table.Column{Title: h, Width: min(max(widths[i], minColumnWidth), maxColumnWidth)}
		// cells are padded by one on each side
		total += cols[i].Width + 2
	}

	// Rows must be cleared first: the table renders existing rows against
	// the new columns.
	m.table.SetRows(nil)
	m.table.SetColumns(cols)
	m.table.SetRows(rows)
	m.table.SetWidth(total)
	m.table.SetCursor(0)
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("EO DataHub admin console"))
	b.WriteString("\n")
	b.WriteString(m.statsView())
	b.WriteString("\n")
	b.WriteString(m.flagsView())
	b.WriteString("\n\n")
	b.WriteString(m.tabsView())
	b.WriteString("\n\n")

	if m.confirmVisible {
		b.WriteString(m.confirmView())
	} else {
		b.WriteString(m.listView())
	}
	b.WriteString("\n")

	if m.notice != nil {
		style := successStyle
		if m.notice.level == dashboard.LevelDanger {
			style = dangerStyle
		}
		b.WriteString("\n")
		b.WriteString(style.Render(m.notice.message))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) statsView() string {
	if !m.statsLoaded {
		return statStyle.Render("Users - | Groups - | Projects -")
	}
	return statStyle.Render(fmt.Sprintf("Users %d | Groups %d | Projects %d",
		m.stats.Users, m.stats.Groups, m.stats.Projects))
}

func (m Model) flagsView() string {
	parts := make([]string, 0, len(m.ctrl.Flags()))
	for _, f := range m.ctrl.Flags() {
		state := offStyle.Render("off")
		if m.flags[f] {
			state = onStyle.Render("on")
		}
		parts = append(parts, f+": "+state)
	}
	return strings.Join(parts, "  ")
}

func (m Model) tabsView() string {
	tabs := make([]string, 0, 3)
	for i, kind := range models.ListKinds() {
		label := fmt.Sprintf("%d %s", i+1, kind)
		if kind == m.active {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) listView() string {
	switch {
	case m.listErr != "":
		return errorStyle.Render(m.listErr)
	case m.loading:
		return m.spinner.View() + " Loading " + string(m.active) + "..."
	case m.empty != "":
		return placeholder.Render(m.empty)
	}
	return titleStyle.Render(m.title) + "\n" + m.table.View()
}

func (m Model) confirmView() string {
	controls := "[y] confirm   [n] cancel"
	if !m.confirmEnabled {
		controls = m.spinner.View() + " working..."
	}
	return modalStyle.Render(m.prompt + "\n\n" + controls)
}
