package cli

import (
	"context"
	"strings"
	"time"

	"github.com/alexanderramin/horizon/internal/app"
	"github.com/alexanderramin/horizon/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const defaultRefreshInterval = time.Minute

// dashboardView is one rendered snapshot of the dashboard.
type dashboardView struct {
	stats    *app.DashboardStats
	timeline *app.TimelineResponse
}

// loadDashboard computes stats and the timeline summary against the same
// clock and over the same projects, closed ones included.
func loadDashboard(ctx context.Context, a *App) (*dashboardView, error) {
	now := a.now()
	stats, err := a.Dashboard.Stats(ctx, now)
	if err != nil {
		return nil, err
	}
	req := app.NewTimelineRequest()
	req.Now = &now
	req.IncludeClosed = true
	tl, err := a.timelineUseCase().GetTimeline(ctx, req)
	if err != nil {
		return nil, err
	}
	return &dashboardView{stats: stats, timeline: tl}, nil
}

func (v *dashboardView) render() string {
	var b strings.Builder
	b.WriteString(formatter.FormatDashboard(v.stats))
	b.WriteString("\n")
	b.WriteString(formatter.FormatTimeline(v.timeline))
	return b.String()
}

// ── messages ─────────────────────────────────────────────────────────────────

type dashboardLoadedMsg struct {
	view *dashboardView
	err  error
}

type dashboardTickMsg time.Time

// ── model ────────────────────────────────────────────────────────────────────

type dashboardKeyMap struct {
	Refresh key.Binding
	Quit    key.Binding
}

func defaultDashboardKeys() dashboardKeyMap {
	return dashboardKeyMap{
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

// dashboardModel is the live `dashboard --watch` screen. Timelines are
// recomputed on every tick so statuses move with the clock.
type dashboardModel struct {
	app      *App
	keys     dashboardKeyMap
	interval time.Duration
	view     *dashboardView
	err      error
	loading  bool
}

func newDashboardModel(a *App) *dashboardModel {
	interval := a.RefreshInterval
	if interval <= 0 {
		interval = defaultRefreshInterval
	}
	return &dashboardModel{
		app:      a,
		keys:     defaultDashboardKeys(),
		interval: interval,
		loading:  true,
	}
}

func (m *dashboardModel) Init() tea.Cmd {
	return tea.Batch(m.load(), m.tick())
}

func (m *dashboardModel) load() tea.Cmd {
	a := m.app
	return func() tea.Msg {
		view, err := loadDashboard(context.Background(), a)
		return dashboardLoadedMsg{view: view, err: err}
	}
}

func (m *dashboardModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return dashboardTickMsg(t)
	})
}

func (m *dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.view = msg.view
		}
		return m, nil

	case dashboardTickMsg:
		return m, tea.Batch(m.load(), m.tick())

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			m.loading = true
			return m, m.load()
		}
	}
	return m, nil
}

func (m *dashboardModel) View() string {
	var b strings.Builder
	switch {
	case m.view != nil:
		b.WriteString(m.view.render())
	case m.loading:
		b.WriteString("\n  " + formatter.Dim("Loading...") + "\n")
	}
	if m.err != nil {
		b.WriteString("\n  " + formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n")
	}

	help := []string{
		m.keys.Refresh.Help().Key + " " + m.keys.Refresh.Help().Desc,
		m.keys.Quit.Help().Key + " " + m.keys.Quit.Help().Desc,
	}
	b.WriteString("\n" + formatter.Dim(strings.Join(help, " · ")+" · every "+m.interval.String()) + "\n")
	return b.String()
}
