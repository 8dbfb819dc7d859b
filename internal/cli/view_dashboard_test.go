package cli

import (
	"testing"
	"time"

	"github.com/alexanderramin/horizon/internal/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardModel_LoadsOnInit(t *testing.T) {
	a := testApp(t)
	seedTimelinePortfolio(t, a)

	d := teatest.New(t, newDashboardModel(a))
	d.DrainInit()

	view := ansiPattern.ReplaceAllString(d.View(), "")
	assert.Contains(t, view, "DASHBOARD")
	assert.Contains(t, view, "Late Launch")
	assert.Contains(t, view, "every 1h0m0s")
	assert.Equal(t, 1, d.Skipped, "the refresh tick is still pending")
}

func TestDashboardModel_RefreshPicksUpChanges(t *testing.T) {
	a := testApp(t)

	d := teatest.New(t, newDashboardModel(a))
	d.DrainInit()
	assert.Contains(t, ansiPattern.ReplaceAllString(d.View(), ""), "No projects found.")

	seedProject(t, a, "WEB01", "Website", "2024-01-01", "2024-12-31")
	d.PressKey('r')

	assert.Contains(t, ansiPattern.ReplaceAllString(d.View(), ""), "Website")
}

func TestDashboardModel_TickReloadsWithClock(t *testing.T) {
	a := testApp(t)
	seedProject(t, a, "NEAR01", "Near Deadline", "2024-01-01", "2024-06-10")

	clock := fixedNow
	a.Now = func() time.Time { return clock }

	d := teatest.New(t, newDashboardModel(a))
	d.DrainInit()
	assert.Contains(t, ansiPattern.ReplaceAllString(d.View(), ""), "1 Near Deadline")

	clock = time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)
	d.Send(dashboardTickMsg(clock))

	view := ansiPattern.ReplaceAllString(d.View(), "")
	assert.Contains(t, view, "1 Overdue")
	assert.Contains(t, view, "2d overdue")
}

func TestDashboardModel_Quit(t *testing.T) {
	a := testApp(t)
	d := teatest.New(t, newDashboardModel(a))
	d.DrainInit()

	d.PressKey('q')
	require.True(t, d.Quitting)
}

func TestDashboardModel_DefaultInterval(t *testing.T) {
	a := testApp(t)
	a.RefreshInterval = 0
	m := newDashboardModel(a)
	assert.Equal(t, defaultRefreshInterval, m.interval)
}
