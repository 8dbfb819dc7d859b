package timeline

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		st   Status
		want Band
	}{
		{"overdue wins", Status{IsOverdue: true, ProgressPct: 100}, BandOverdue},
		{"danger", Status{IsDangerZone: true, ProgressPct: 92}, BandDanger},
		{"75 is high", Status{ProgressPct: 75}, BandHealthyHigh},
		{"74 is mid", Status{ProgressPct: 74}, BandHealthyMid},
		{"50 is mid", Status{ProgressPct: 50}, BandHealthyMid},
		{"49 is low", Status{ProgressPct: 49}, BandHealthyLow},
		{"not started", Status{}, BandHealthyLow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.st))
		})
	}
}

func TestBandPriority_Order(t *testing.T) {
	assert.Less(t, BandPriority(BandOverdue), BandPriority(BandDanger))
	assert.Less(t, BandPriority(BandDanger), BandPriority(BandHealthyLow))
	assert.Less(t, BandPriority(BandHealthyLow), BandPriority(BandHealthyHigh))
}

func TestTally(t *testing.T) {
	now := date(2024, 6, 1)
	windows := []Window{
		{Start: date(2024, 1, 1), End: date(2024, 5, 1)},   // overdue
		{Start: date(2024, 1, 1), End: date(2024, 5, 20)},  // overdue
		{Start: date(2024, 1, 1), End: date(2024, 6, 10)},  // danger: 9 of 161 days left
		{Start: date(2024, 5, 1), End: date(2024, 12, 31)}, // healthy
		{Start: date(2024, 7, 1), End: date(2024, 8, 1)},   // not started
	}

	c := Tally(windows, now)
	assert.Equal(t, 2, c.Overdue)
	assert.Equal(t, 1, c.NearDeadline)
	assert.Equal(t, 3, c.AtRisk())
}

func TestTally_Empty(t *testing.T) {
	c := Tally(nil, date(2024, 1, 1))
	assert.Zero(t, c.AtRisk())
}

func TestTally_ConcurrentMatchesSequential(t *testing.T) {
	now := date(2024, 6, 1)
	var windows []Window
	for i := 0; i < 200; i++ {
		start := date(2024, 1, 1).AddDate(0, 0, i)
		windows = append(windows, Window{Start: start, End: start.AddDate(0, 0, 120)})
	}

	want := Tally(windows, now)

	results := make([]Status, len(windows))
	var wg sync.WaitGroup
	for i, w := range windows {
		wg.Add(1)
		go func(i int, w Window) {
			defer wg.Done()
			results[i] = w.Status(now)
		}(i, w)
	}
	wg.Wait()

	var got RiskCounts
	for _, st := range results {
		got.Add(st)
	}
	assert.Equal(t, want, got)
}
