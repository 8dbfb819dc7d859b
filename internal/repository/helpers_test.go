package repository

import (
	"context"
	"database/sql"
	"sort"
	"testing"
	"time"

	"github.com/alexanderramin/horizon/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTime_KeepsMicroseconds(t *testing.T) {
	in := time.Date(2024, 3, 1, 10, 30, 0, 123456000, time.UTC)
	s := formatTime(in)
	assert.Equal(t, "2024-03-01T10:30:00.123456Z", s)

	out, err := parseTime(s, "at")
	require.NoError(t, err)
	assert.True(t, out.Equal(in))
}

func TestFormatTime_SortsAsString(t *testing.T) {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.FixedZone("CEST", 2*3600))
	times := []time.Time{
		base.Add(1500 * time.Millisecond),
		base,
		base.Add(time.Microsecond),
		base.Add(-time.Hour),
		base.Add(999999 * time.Microsecond),
	}
	strs := make([]string, len(times))
	for i, tm := range times {
		strs[i] = formatTime(tm)
		assert.Len(t, strs[i], len("2006-01-02T15:04:05.000000Z"))
	}
	sort.Strings(strs)
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })
	for i := range times {
		assert.Equal(t, formatTime(times[i]), strs[i])
	}
}

func TestParseTime_AcceptsSecondPrecision(t *testing.T) {
	out, err := parseTime("2025-01-01T00:00:00Z", "at")
	require.NoError(t, err)
	assert.True(t, out.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))

	assert.NotNil(t, parseNullableTime(sql.NullString{String: "2025-01-01T00:00:00Z", Valid: true}))
	assert.Nil(t, parseNullableTime(sql.NullString{String: "yesterday", Valid: true}))
}

func TestMilestoneRepo_SubSecondDueDates(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	projects := NewSQLiteProjectRepo(db)
	repo := NewSQLiteMilestoneRepo(db)

	proj := testutil.NewTestProject("Synced")
	require.NoError(t, projects.Create(ctx, proj))

	now := time.Date(2024, 6, 1, 12, 0, 0, 500000000, time.UTC)
	m := testutil.NewTestMilestone(proj.ID, "Cutover", testutil.WithDueDate(now.Add(-250*time.Millisecond)))
	require.NoError(t, repo.Upsert(ctx, m))

	got, err := repo.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.True(t, got.DueDate.Equal(m.DueDate), "due date round-trips exactly")

	n, err := repo.CountOverdue(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = repo.CountOverdue(ctx, now.Add(-time.Second))
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
