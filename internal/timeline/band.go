package timeline

import "time"

// Band is the display classification of a Status.
type Band string

const (
	BandOverdue     Band = "overdue"
	BandDanger      Band = "danger"
	BandHealthyHigh Band = "healthy_high"
	BandHealthyMid  Band = "healthy_mid"
	BandHealthyLow  Band = "healthy_low"
)

// Progress thresholds for the healthy bands.
const (
	HighProgressPct = 75
	MidProgressPct  = 50
)

// Classify maps a Status onto its display band. Overdue wins over danger,
// and healthy projects are split by progress.
func Classify(s Status) Band {
	switch {
	case s.IsOverdue:
		return BandOverdue
	case s.IsDangerZone:
		return BandDanger
	case s.ProgressPct >= HighProgressPct:
		return BandHealthyHigh
	case s.ProgressPct >= MidProgressPct:
		return BandHealthyMid
	default:
		return BandHealthyLow
	}
}

// BandPriority returns a sort key: lower values need attention first.
func BandPriority(b Band) int {
	switch b {
	case BandOverdue:
		return 0
	case BandDanger:
		return 1
	case BandHealthyLow:
		return 2
	case BandHealthyMid:
		return 3
	case BandHealthyHigh:
		return 4
	default:
		return 5
	}
}

// RiskCounts is the at-risk tally across a set of windows.
type RiskCounts struct {
	Overdue      int
	NearDeadline int
}

// AtRisk is the displayed "at risk" total.
func (c RiskCounts) AtRisk() int {
	return c.Overdue + c.NearDeadline
}

// Add folds a single status into the counts.
func (c *RiskCounts) Add(s Status) {
	if s.IsOverdue {
		c.Overdue++
	}
	if s.IsDangerZone {
		c.NearDeadline++
	}
}

// Tally classifies every window at now and counts overdue and near-deadline ones.
func Tally(windows []Window, now time.Time) RiskCounts {
	var c RiskCounts
	for _, w := range windows {
		c.Add(w.Status(now))
	}
	return c
}
