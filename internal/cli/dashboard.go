package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/pagepace/internal/app"
	"github.com/alexanderramin/pagepace/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func newDashboardCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"dash"},
		Short:   "Browse works and their pace interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.interactive() {
				return fmt.Errorf("dashboard needs a terminal; use 'status' instead")
			}
			_, err := tea.NewProgram(newDashboardModel(a), tea.WithAltScreen()).Run()
			return err
		},
	}
}

// ── keys ─────────────────────────────────────────────────────────────────────

type dashboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	AllDone key.Binding
	Refresh key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func (k dashboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Refresh, k.Help, k.Quit}
}

func (k dashboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.AllDone, k.Refresh},
		{k.Help, k.Quit},
	}
}

var dashboardKeys = dashboardKeyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	AllDone: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "toggle done works")),
	Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// ── messages ─────────────────────────────────────────────────────────────────

type dashboardLoadedMsg struct {
	status *app.StatusResponse
	err    error
}

// ── model ────────────────────────────────────────────────────────────────────

const dashLeftPaneWidth = 40

type dashboardModel struct {
	app         *App
	keys        dashboardKeyMap
	help        help.Model
	detail      viewport.Model
	status      *app.StatusResponse
	includeDone bool
	cursor      int
	loading     bool
	err         error
	width       int
	height      int
}

func newDashboardModel(a *App) *dashboardModel {
	return &dashboardModel{
		app:     a,
		keys:    dashboardKeys,
		help:    help.New(),
		detail:  viewport.New(0, 0),
		loading: true,
	}
}

func (m *dashboardModel) Init() tea.Cmd {
	return m.load()
}

func (m *dashboardModel) load() tea.Cmd {
	a, includeDone := m.app, m.includeDone
	return func() tea.Msg {
		req := newStatusRequest(a, nil)
		req.IncludeDone = includeDone
		status, err := a.Status.GetStatus(context.Background(), req)
		return dashboardLoadedMsg{status: status, err: err}
	}
}

func (m *dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case dashboardLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.status = msg.status
		if m.status != nil && m.cursor >= len(m.status.Works) {
			m.cursor = max(0, len(m.status.Works)-1)
		}
		m.refreshDetail()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			m.resize()
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.refreshDetail()
			}
		case key.Matches(msg, m.keys.Down):
			if m.status != nil && m.cursor < len(m.status.Works)-1 {
				m.cursor++
				m.refreshDetail()
			}
		case key.Matches(msg, m.keys.AllDone):
			m.includeDone = !m.includeDone
			m.loading = true
			return m, m.load()
		case key.Matches(msg, m.keys.Refresh):
			m.loading = true
			return m, m.load()
		default:
			var cmd tea.Cmd
			m.detail, cmd = m.detail.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// resize fits the detail pane between the header and the help footer.
func (m *dashboardModel) resize() {
	helpHeight := lipgloss.Height(m.help.View(m.keys))
	m.detail.Width = max(m.width-dashLeftPaneWidth-3, 20)
	m.detail.Height = max(m.height-helpHeight-4, 5)
}

func (m *dashboardModel) selected() *app.WorkStatusView {
	if m.status == nil || m.cursor >= len(m.status.Works) {
		return nil
	}
	return &m.status.Works[m.cursor]
}

func (m *dashboardModel) refreshDetail() {
	if v := m.selected(); v != nil {
		m.detail.SetContent(renderWorkDetailPane(v))
	} else {
		m.detail.SetContent(formatter.Dim("No works yet. Add one with 'pagepace work add'."))
	}
	m.detail.GotoTop()
}

// ── view ─────────────────────────────────────────────────────────────────────

func (m *dashboardModel) View() string {
	if m.loading && m.status == nil {
		return "\n  " + formatter.Dim("Loading...")
	}
	if m.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+m.err.Error())
	}

	var b strings.Builder
	b.WriteString(m.renderHeader() + "\n\n")

	left := lipgloss.NewStyle().Width(dashLeftPaneWidth).Render(m.renderList())
	divider := lipgloss.NewStyle().Foreground(formatter.ColorDim).Render("│")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, " "+divider+" ", m.detail.View()))
	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}

func (m *dashboardModel) renderHeader() string {
	s := m.status.Summary
	header := formatter.StyleHeader.Render("PAGEPACE") + "  " + formatter.Dim(fmt.Sprintf(
		"%d works · %d critical · %d behind · %d on track · %d ahead",
		s.CountsTotal, s.CountsCritical, s.CountsBehind, s.CountsOnTrack, s.CountsAhead))
	if m.includeDone {
		header += "  " + formatter.Dim("(incl. done)")
	}
	return header
}

func (m *dashboardModel) renderList() string {
	if len(m.status.Works) == 0 {
		return formatter.Dim("No works.")
	}
	var b strings.Builder
	for i, v := range m.status.Works {
		cursor := "  "
		title := formatter.StyleFg
		if i == m.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			title = formatter.StyleBold
		}
		name := v.Title
		if len([]rune(name)) > 20 {
			name = string([]rune(name)[:19]) + "…"
		}
		dot := formatter.Dim("○")
		if p := v.PaceStatus(); p != "" {
			dot = formatter.PaceColor(p).Render("●")
		}
		fmt.Fprintf(&b, "%s%s %s %s\n",
			cursor,
			dot,
			title.Render(fmt.Sprintf("%-20s", name)),
			formatter.RenderProgress(v.PercentComplete, 8),
		)
	}
	return b.String()
}

func renderWorkDetailPane(v *app.WorkStatusView) string {
	var b strings.Builder
	b.WriteString(formatter.StyleBold.Render(v.Title) + "  " + formatter.StatusPill(v.Status) + "\n")
	b.WriteString(formatter.Dim(v.WorkID) + "\n\n")

	row := func(label, value string) {
		fmt.Fprintf(&b, "%s %s\n", formatter.Dim(fmt.Sprintf("%-18s", label)), value)
	}
	deadline := "none"
	if v.Deadline != nil {
		deadline = *v.Deadline
	}
	row("Deadline", deadline)
	row("Progress", formatter.RenderProgress(v.PercentComplete, 16))
	row("Leaves", fmt.Sprintf("%d / %d", v.CompletedLeaves, v.LeafCount))
	row("Remaining", formatter.FormatHoursFixed(v.RemainingHours)+" of "+formatter.FormatHoursFixed(v.EstimatedHours))

	if p := v.Pace; p != nil {
		b.WriteString("\n")
		row("Pace", formatter.PaceIndicator(p.PaceStatus))
		row("Days left", fmt.Sprintf("%d (%d workable)", p.DaysUntilDeadline, p.WorkableDaysUntilDeadline))
		row("Workable hours", formatter.FormatHoursFixed(p.RemainingWorkableHours))
		row("Needed per day", formatter.FormatHoursFixed(p.DailyRequiredHours))
		row("Needed today", formatter.FormatHoursFixed(p.TodayRequiredHours))
		row("Pressure", fmt.Sprintf("%.2f", v.Pressure))
	}

	if len(v.Notes) > 0 {
		b.WriteString("\n")
		for _, n := range v.Notes {
			b.WriteString(formatter.StyleYellow.Render("! ") + n + "\n")
		}
	}
	return b.String()
}
