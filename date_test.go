package gtd_test

import (
	"testing"
	"time"

	"github.com/nicolagi/gtd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	testCases := []struct {
		in       string
		expected time.Time
	}{
		{"2025-01-02", time.Date(2025, time.January, 2, 0, 0, 0, 0, time.Local)},
		{"2025-01-02T17:05", time.Date(2025, time.January, 2, 17, 5, 0, 0, time.Local)},
		{"2025-01-02 17:05:09", time.Date(2025, time.January, 2, 17, 5, 9, 0, time.Local)},
		{"2025-01-02T17:05:09.5", time.Date(2025, time.January, 2, 17, 5, 9, int(500*time.Millisecond), time.Local)},
		{"2025-01-02T17:05:00Z", time.Date(2025, time.January, 2, 17, 5, 0, 0, time.UTC)},
		{"2025-01-02T17:05:00.000Z", time.Date(2025, time.January, 2, 17, 5, 0, 0, time.UTC)},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			actual, ok := gtd.ParseDate(tc.in)
			require.True(t, ok)
			assert.True(t, tc.expected.Equal(actual), "got %v", actual)
		})
	}
}

func TestParseDateOffset(t *testing.T) {
	actual, ok := gtd.ParseDate("2025-01-02T17:05:00+02:00")
	require.True(t, ok)
	_, offset := actual.Zone()
	assert.Equal(t, 2*60*60, offset)
	assert.Equal(t, 17, actual.Hour())

	actual, ok = gtd.ParseDate("2025-01-02T17:05-0130")
	require.True(t, ok)
	_, offset = actual.Zone()
	assert.Equal(t, -90*60, offset)
}

func TestParseDateInvalid(t *testing.T) {
	for _, in := range []string{"", "tomorrow", "2025-13-01", "2025-02-30", "2025-01-02T25:00", "2025-01-02T10:00:00+zz:00"} {
		t.Run(in, func(t *testing.T) {
			_, ok := gtd.ParseDate(in)
			assert.False(t, ok)
		})
	}
}

func TestParseDueDate(t *testing.T) {
	due, ok := gtd.ParseDueDate("2025-01-02")
	require.True(t, ok)
	assert.Equal(t, 23, due.Hour())
	assert.Equal(t, 59, due.Minute())
	assert.Equal(t, 2, due.Day())

	due, ok = gtd.ParseDueDate("2025-01-02T08:00")
	require.True(t, ok)
	assert.Equal(t, 8, due.Hour())
}

func TestHasTimeComponent(t *testing.T) {
	assert.True(t, gtd.HasTimeComponent("2025-01-02T08:00"))
	assert.True(t, gtd.HasTimeComponent("2025-01-02 08:00"))
	assert.False(t, gtd.HasTimeComponent("2025-01-02"))
	assert.True(t, gtd.HasTimezone("2025-01-02T08:00:00Z"))
	assert.True(t, gtd.HasTimezone("2025-01-02T08:00:00-05:00"))
	assert.False(t, gtd.HasTimezone("2025-01-02"))
	assert.False(t, gtd.HasTimezone("2025-01-02T08:00"))
}

func TestParseDateExpression(t *testing.T) {
	now := time.Date(2025, time.January, 31, 10, 0, 0, 0, time.UTC) // A Friday
	testCases := []struct {
		expr     string
		expected string
		ok       bool
	}{
		{"today", "2025-01-31", true},
		{"Tomorrow 5PM", "2025-02-01T17:00:00Z", true},
		{"yesterday", "2025-01-30", true},
		{"friday", "2025-02-07", true},
		{"next monday", "2025-02-03", true},
		{"next month", "2025-02-28", true},
		{"in 1 month", "2025-02-28", true},
		{"in 2 weeks", "2025-02-14", true},
		{"12am", "2025-01-31T00:00:00Z", true},
		{"12pm", "2025-01-31T12:00:00Z", true},
		{"midnight", "2025-01-31T00:00:00Z", true},
		{"2025-02-10 at 7:15pm", "2025-02-10T19:15:00Z", true},
		{"tomorrow maybe", "2025-02-01", false},
		{"", "", false},
		{"17", "", false},
		{"in two days", "", false},
	}
	for _, tc := range testCases {
		t.Run(tc.expr, func(t *testing.T) {
			actual, ok := gtd.ParseDateExpression(tc.expr, now)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestTaskDueTime(t *testing.T) {
	task := &gtd.Task{ID: "t", DueDate: "2025-01-02T08:00:00Z"}
	assert.Equal(t, time.Date(2025, time.January, 2, 8, 0, 0, 0, time.UTC), task.DueTime())
	task.DueDate = "soon"
	assert.True(t, task.DueTime().IsZero())
	task.DueDate = ""
	assert.True(t, task.DueTime().IsZero())
}
