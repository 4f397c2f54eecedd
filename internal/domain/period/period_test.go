package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamboard/core/internal/domain/entities"
)

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 29, DaysInMonth(2028, time.February))
	assert.Equal(t, 28, DaysInMonth(2026, time.February))
	assert.Equal(t, 29, DaysInMonth(2000, time.February))
	assert.Equal(t, 28, DaysInMonth(2100, time.February))
	assert.Equal(t, 31, DaysInMonth(2026, time.December))
	assert.Equal(t, 30, DaysInMonth(2026, time.April))
}

func TestMonthGridShape(t *testing.T) {
	for year := 2024; year <= 2029; year++ {
		for month := time.January; month <= time.December; month++ {
			grid := MonthGrid(year, month)
			lead := int(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday())
			days := DaysInMonth(year, month)

			require.Len(t, grid, lead+days, "%d-%02d", year, month)
			for i := 0; i < lead; i++ {
				assert.True(t, grid[i].IsBlank())
			}
			for d := 1; d <= days; d++ {
				assert.Equal(t, d, grid[lead+d-1].Day)
			}
		}
	}
}

func TestMonthGridDates(t *testing.T) {
	// October 2026 starts on a Thursday.
	grid := MonthGrid(2026, time.October)
	require.Len(t, grid, 4+31)
	assert.Equal(t, "2026-10-01", grid[4].Date)
	assert.Equal(t, "2026-10-31", grid[len(grid)-1].Date)
	assert.Empty(t, grid[0].Date)
}

func TestDDay(t *testing.T) {
	now := time.Date(2026, 10, 14, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		target  string
		label   string
		urgency Urgency
		days    int
	}{
		{"2026-10-14", "D-Day", UrgencyDue, 0},
		{"2026-10-15", "D-1", UrgencySoon, 1},
		{"2026-10-17", "D-3", UrgencySoon, 3},
		{"2026-10-18", "D-4", UrgencyNormal, 4},
		{"2026-10-12", "D+2", UrgencyOverdue, -2},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			c, err := DDay(tt.target, now)
			require.NoError(t, err)
			assert.Equal(t, tt.label, c.Label)
			assert.Equal(t, tt.urgency, c.Urgency)
			assert.Equal(t, tt.days, c.Days)
		})
	}
}

func TestDDayNearMidnight(t *testing.T) {
	loc := time.FixedZone("KST", 9*60*60)
	lateEvening := time.Date(2026, 10, 14, 23, 59, 0, 0, loc)
	earlyMorning := time.Date(2026, 10, 14, 0, 1, 0, 0, loc)

	for _, now := range []time.Time{lateEvening, earlyMorning} {
		c, err := DDay("2026-10-15", now)
		require.NoError(t, err)
		assert.Equal(t, "D-1", c.Label)

		c, err = DDay("2026-10-14", now)
		require.NoError(t, err)
		assert.Equal(t, "D-Day", c.Label)
	}
}

func TestDDayInvalidDate(t *testing.T) {
	_, err := DDay("14/10/2026", time.Now())
	assert.ErrorIs(t, err, entities.ErrInvalidDate)
}

func TestCountdownIsAlert(t *testing.T) {
	assert.True(t, countdownFor(0).IsAlert())
	assert.True(t, countdownFor(2).IsAlert())
	assert.False(t, countdownFor(4).IsAlert())
	assert.False(t, countdownFor(-1).IsAlert())
}

func TestMeetingCountdown(t *testing.T) {
	now := time.Date(2026, 10, 13, 9, 0, 0, 0, time.UTC)

	c, err := MeetingCountdown("2026-10-13", now)
	require.NoError(t, err)
	assert.Equal(t, "today", c.Label)

	c, _ = MeetingCountdown("2026-10-14", now)
	assert.Equal(t, "tomorrow", c.Label)

	c, _ = MeetingCountdown("2026-10-16", now)
	assert.Equal(t, "D-3", c.Label)

	c, _ = MeetingCountdown("2026-10-07", now)
	assert.Equal(t, "passed", c.Label)
}

func TestWeekdayAnchors(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		this string
		next string
	}{
		// 2026-10-11 is a Sunday.
		{"sunday", time.Date(2026, 10, 11, 10, 0, 0, 0, time.UTC), "2026-10-14", "2026-10-14"},
		{"tuesday", time.Date(2026, 10, 13, 10, 0, 0, 0, time.UTC), "2026-10-14", "2026-10-14"},
		{"wednesday", time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC), "2026-10-14", "2026-10-21"},
		{"friday", time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC), "2026-10-14", "2026-10-21"},
		{"saturday", time.Date(2026, 10, 17, 23, 0, 0, 0, time.UTC), "2026-10-14", "2026-10-21"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.this, FormatDate(ThisWeekday(tt.now, time.Wednesday)))
			next := NextWeekday(tt.now, time.Wednesday)
			assert.Equal(t, tt.next, FormatDate(next))
			assert.True(t, next.After(tt.now))
		})
	}
}

func TestQuarterOf(t *testing.T) {
	assert.Equal(t, entities.Q1, QuarterOf(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, entities.Q1, QuarterOf(time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, entities.Q2, QuarterOf(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, entities.Q4, QuarterOf(time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)))
}

func TestQuarterBounds(t *testing.T) {
	r, err := QuarterBounds(2028, entities.Q1)
	require.NoError(t, err)
	assert.Equal(t, Range{Start: "2028-01-01", End: "2028-03-31"}, r)

	r, err = QuarterBounds(2026, entities.Q4)
	require.NoError(t, err)
	assert.Equal(t, Range{Start: "2026-10-01", End: "2026-12-31"}, r)

	_, err = QuarterBounds(2026, entities.Quarter("Q0"))
	assert.ErrorIs(t, err, entities.ErrInvalidQuarter)
}

func TestReportRange(t *testing.T) {
	today := time.Date(2026, 10, 14, 18, 0, 0, 0, time.UTC)

	assert.Equal(t, Range{Start: "2026-10-07", End: "2026-10-14"}, ReportRange(Weekly, today))
	assert.Equal(t, Range{Start: "2026-09-14", End: "2026-10-14"}, ReportRange(Monthly, today))
	assert.Equal(t, Range{Start: "2026-10-14", End: "2026-10-21"}, WeekAhead(today))
}

func TestRangeContains(t *testing.T) {
	r := Range{Start: "2026-10-01", End: "2026-10-31"}
	assert.True(t, r.Contains("2026-10-01"))
	assert.True(t, r.Contains("2026-10-31"))
	assert.False(t, r.Contains("2026-09-30"))
	assert.False(t, r.Contains("2026-11-01"))
}

func TestMonthKey(t *testing.T) {
	assert.Equal(t, "2026-03", MonthKey(2026, time.March))
	assert.Equal(t, "2026-12", MonthKey(2026, time.December))
}
