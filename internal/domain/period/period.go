// Package period derives calendar grids, week anchors, quarters, report ranges and
// D-day countdowns from a date and a "now" reference.
package period

import (
	"fmt"
	"time"

	"github.com/teamboard/core/internal/domain/entities"
)

// DateLayout is the fixed-width, zero-padded format stored for every date-only field.
// Lexicographic order on it equals chronological order.
const DateLayout = "2006-01-02"

type Urgency string

const (
	UrgencyOverdue Urgency = "overdue"
	UrgencyDue     Urgency = "due"
	UrgencySoon    Urgency = "soon"
	UrgencyNormal  Urgency = "normal"
)

// Countdown is a D-day label with the number of whole days left (negative when past).
type Countdown struct {
	Label   string  `json:"label"`
	Days    int     `json:"days"`
	Urgency Urgency `json:"urgency"`
}

// Cell is one slot of a Sunday-first month grid. Day is 0 for a leading blank.
type Cell struct {
	Day  int    `json:"day"`
	Date string `json:"date,omitempty"`
}

func (c Cell) IsBlank() bool {
	return c.Day == 0
}

type Kind string

const (
	Weekly  Kind = "weekly"
	Monthly Kind = "monthly"
)

func (k Kind) IsValid() bool {
	return k == Weekly || k == Monthly
}

// Range is an inclusive span of ISO dates.
type Range struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Contains compares on the string form; valid because DateLayout is fixed width.
func (r Range) Contains(date string) bool {
	return date >= r.Start && date <= r.End
}

// FormatDate renders t as YYYY-MM-DD in its own location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD string as midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", entities.ErrInvalidDate, s)
	}
	return t, nil
}

// ValidDate reports whether s is a well-formed YYYY-MM-DD date.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// Midnight truncates t to the start of its calendar day in its own location.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Today returns midnight of now's calendar day in loc.
func Today(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return Midnight(now.In(loc))
}

// MonthKey is the YYYY-MM prefix shared by every date of the month.
func MonthKey(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}

// DaysInMonth uses day 0 of the following month, which normalises to the last day.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthGrid lays the month out over 7 Sunday-first columns: one blank cell per weekday
// before day 1, then every day of the month. Trailing blanks are not emitted.
func MonthGrid(year int, month time.Month) []Cell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	lead := int(first.Weekday())
	days := DaysInMonth(year, month)

	cells := make([]Cell, 0, lead+days)
	for i := 0; i < lead; i++ {
		cells = append(cells, Cell{})
	}
	for d := 1; d <= days; d++ {
		cells = append(cells, Cell{
			Day:  d,
			Date: fmt.Sprintf("%s-%02d", MonthKey(year, month), d),
		})
	}
	return cells
}

// daysBetween counts calendar days from a to b, ignoring time of day and DST shifts.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

// DaysUntil returns the whole-day difference between target and now's calendar day.
// Both sides are compared as dates in now's location.
func DaysUntil(target string, now time.Time) (int, error) {
	t, err := ParseDate(target, now.Location())
	if err != nil {
		return 0, err
	}
	return daysBetween(now, t), nil
}

// DDay labels a due date: "D-Day" on the day, "D+N" past it, "D-N" before it.
// One to three days ahead is flagged soon.
func DDay(target string, now time.Time) (Countdown, error) {
	diff, err := DaysUntil(target, now)
	if err != nil {
		return Countdown{}, err
	}
	return countdownFor(diff), nil
}

func countdownFor(diff int) Countdown {
	switch {
	case diff == 0:
		return Countdown{Label: "D-Day", Days: 0, Urgency: UrgencyDue}
	case diff < 0:
		return Countdown{Label: fmt.Sprintf("D+%d", -diff), Days: diff, Urgency: UrgencyOverdue}
	case diff <= 3:
		return Countdown{Label: fmt.Sprintf("D-%d", diff), Days: diff, Urgency: UrgencySoon}
	default:
		return Countdown{Label: fmt.Sprintf("D-%d", diff), Days: diff, Urgency: UrgencyNormal}
	}
}

// IsAlert reports whether a countdown belongs in the upcoming-deadline alerts.
func (c Countdown) IsAlert() bool {
	return c.Urgency == UrgencyDue || c.Urgency == UrgencySoon
}

// MeetingCountdown is the wording used for the weekly meeting anchor.
func MeetingCountdown(anchor string, now time.Time) (Countdown, error) {
	diff, err := DaysUntil(anchor, now)
	if err != nil {
		return Countdown{}, err
	}
	switch {
	case diff == 0:
		return Countdown{Label: "today", Days: 0, Urgency: UrgencyDue}, nil
	case diff < 0:
		return Countdown{Label: "passed", Days: diff, Urgency: UrgencyOverdue}, nil
	case diff == 1:
		return Countdown{Label: "tomorrow", Days: 1, Urgency: UrgencySoon}, nil
	default:
		return Countdown{Label: fmt.Sprintf("D-%d", diff), Days: diff, Urgency: UrgencyNormal}, nil
	}
}

// ThisWeekday returns the given weekday of the current Sunday-first week, which is in the
// past once that weekday has gone by.
func ThisWeekday(now time.Time, wd time.Weekday) time.Time {
	today := Midnight(now)
	return today.AddDate(0, 0, int(wd)-int(today.Weekday()))
}

// NextWeekday returns the next occurrence of wd strictly after today.
func NextWeekday(now time.Time, wd time.Weekday) time.Time {
	today := Midnight(now)
	diff := (int(wd) - int(today.Weekday()) + 7) % 7
	if diff == 0 {
		diff = 7
	}
	return today.AddDate(0, 0, diff)
}

// QuarterOf maps a month onto Q1..Q4.
func QuarterOf(t time.Time) entities.Quarter {
	q := (int(t.Month()) + 2) / 3
	return entities.Quarter(fmt.Sprintf("Q%d", q))
}

// QuarterBounds returns the first and last date of a quarter.
func QuarterBounds(year int, q entities.Quarter) (Range, error) {
	if !q.IsValid() {
		return Range{}, entities.ErrInvalidQuarter
	}
	n := int(q[1] - '0')
	startMonth := time.Month((n-1)*3 + 1)
	start := time.Date(year, startMonth, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 3, -1)
	return Range{Start: FormatDate(start), End: FormatDate(end)}, nil
}

// ReportRange is the look-back window for a period report ending today.
func ReportRange(kind Kind, today time.Time) Range {
	today = Midnight(today)
	start := today.AddDate(0, 0, -7)
	if kind == Monthly {
		start = today.AddDate(0, -1, 0)
	}
	return Range{Start: FormatDate(start), End: FormatDate(today)}
}

// WeekAhead spans today through seven days from now.
func WeekAhead(today time.Time) Range {
	today = Midnight(today)
	return Range{Start: FormatDate(today), End: FormatDate(today.AddDate(0, 0, 7))}
}
