package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateShortID_Valid(t *testing.T) {
	cases := []string{"WEB01", "INFRA02", "ABC1234", "ABCDEF01", "XYZ99", ""}
	for _, id := range cases {
		p := &Project{ShortID: id}
		assert.NoError(t, p.ValidateShortID(), "should accept %q", id)
	}
}

func TestValidateShortID_Lowercase(t *testing.T) {
	p := &Project{ShortID: "web01"}
	err := p.ValidateShortID()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "uppercase")
}

func TestValidateShortID_TooShort(t *testing.T) {
	p := &Project{ShortID: "AB1"}
	assert.Error(t, p.ValidateShortID())
}

func TestValidateShortID_NoDigits(t *testing.T) {
	p := &Project{ShortID: "WEBSITE"}
	assert.Error(t, p.ValidateShortID())
}

func TestValidateWindow(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	ok := &Project{StartDate: start, EndDate: start.AddDate(0, 1, 0)}
	assert.NoError(t, ok.ValidateWindow())

	same := &Project{StartDate: start, EndDate: start}
	require.Error(t, same.ValidateWindow())
	assert.Contains(t, same.ValidateWindow().Error(), "must be after")

	inverted := &Project{StartDate: start, EndDate: start.AddDate(0, 0, -1)}
	assert.Error(t, inverted.ValidateWindow())
}

func TestDisplayID_WithShortID(t *testing.T) {
	p := &Project{ID: "550e8400-e29b-41d4-a716-446655440000", ShortID: "WEB01"}
	assert.Equal(t, "WEB01", p.DisplayID())
}

func TestDisplayID_WithoutShortID(t *testing.T) {
	p := &Project{ID: "550e8400-e29b-41d4-a716-446655440000"}
	assert.Equal(t, "550e8400", p.DisplayID())
}

func TestDisplayID_ShortUUID(t *testing.T) {
	p := &Project{ID: "abc"}
	assert.Equal(t, "abc", p.DisplayID())
}

func TestIsActive(t *testing.T) {
	for _, st := range ProjectStages {
		p := &Project{Stage: st}
		want := st != StageClosing && st != StageClosed
		assert.Equal(t, want, p.IsActive(), "stage %s", st)
	}
}

func TestProjectTimeline(t *testing.T) {
	p := &Project{
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC),
	}
	st := p.Timeline(time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 50, st.ProgressPct)
	assert.Equal(t, p.StartDate, p.Window().Start)
	assert.Equal(t, p.EndDate, p.Window().End)
}

func TestParseProjectStage(t *testing.T) {
	st, err := ParseProjectStage("execution")
	require.NoError(t, err)
	assert.Equal(t, StageExecution, st)

	_, err = ParseProjectStage("launch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "initiation, planning, execution, monitoring, closing, closed")
}
