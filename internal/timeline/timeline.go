package timeline

import (
	"fmt"
	"math"
	"time"
)

const day = 24 * time.Hour

// DangerZoneFraction is the share of a project's planned duration that, once
// it is all that remains before the end date, puts the project in the danger zone.
const DangerZoneFraction = 0.1

// Window is a project's planned start/end pair.
type Window struct {
	Start time.Time
	End   time.Time
}

// Status is the derived progress and risk view of a Window at a reference time.
// It is recomputed on every request and never persisted.
type Status struct {
	ProgressPct   int
	DaysTotal     int
	DaysElapsed   int
	DaysRemaining int
	DaysOverdue   int
	IsDangerZone  bool
	IsOverdue     bool
}

// Compute converts a project window and a reference time into a Status.
//
// A window whose end is not after its start has no meaningful duration; it is
// treated as already complete once now reaches start (100%), and as not
// started (0%) before that. Such a window is never in the danger zone.
func Compute(start, end, now time.Time) Status {
	total := end.Sub(start)
	elapsed := now.Sub(start)

	var pct float64
	if total > 0 {
		pct = float64(elapsed) / float64(total) * 100
		pct = math.Max(0, math.Min(100, pct))
	} else if !now.Before(start) {
		pct = 100
	}

	daysTotal := ceilDays(total)
	daysElapsed := ceilDays(elapsed)

	// Before the start date the whole window is still ahead.
	remaining := max(daysTotal-max(daysElapsed, 0), 0)

	st := Status{
		ProgressPct:   int(math.Round(pct)),
		DaysTotal:     daysTotal,
		DaysElapsed:   daysElapsed,
		DaysRemaining: remaining,
		IsOverdue:     now.After(end),
	}

	if st.IsOverdue {
		st.DaysOverdue = ceilDays(now.Sub(end))
		st.DaysRemaining = 0
	}

	timeRemaining := end.Sub(now)
	st.IsDangerZone = float64(timeRemaining) <= float64(total)*DangerZoneFraction && timeRemaining > 0

	return st
}

// Status returns the window's Status at now.
func (w Window) Status(now time.Time) Status {
	return Compute(w.Start, w.End, now)
}

// Badge returns the short label used next to progress bars, e.g. "3d left".
func (s Status) Badge() string {
	if s.IsOverdue {
		return fmt.Sprintf("%dd overdue", s.DaysOverdue)
	}
	return fmt.Sprintf("%dd left", s.DaysRemaining)
}

// Long returns the spelled-out remaining/overdue label.
func (s Status) Long() string {
	if s.IsOverdue {
		return fmt.Sprintf("%d days overdue", s.DaysOverdue)
	}
	return fmt.Sprintf("%d days remaining", s.DaysRemaining)
}

// AtRisk reports whether the status is either overdue or in the danger zone.
func (s Status) AtRisk() bool {
	return s.IsOverdue || s.IsDangerZone
}

func ceilDays(d time.Duration) int {
	return int(math.Ceil(float64(d) / float64(day)))
}
