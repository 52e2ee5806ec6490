// Package period implements calendar-bucket filtering shared by the
// ledgers: a record matches when its date falls in the same period
// instance (day, week, month or year) as the anchor date.
package period

import (
	"strconv"
	"strings"
	"time"
)

type Period string

const (
	Daily   Period = "daily"
	Weekly  Period = "weekly"
	Monthly Period = "monthly"
	Yearly  Period = "yearly"
)

func (p Period) Valid() bool {
	switch p {
	case Daily, Weekly, Monthly, Yearly:
		return true
	}
	return false
}

func (p Period) Title() string {
	if p == "" {
		return ""
	}
	return strings.ToUpper(string(p[:1])) + string(p[1:])
}

// ParseDate is deliberately lenient: ISO first, then a 3-part date split
// on slash or dash, year-first or month-day-year. Malformed dates are
// reported, not guessed.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{"2006-01-02", "2006-01-02T15:04:05", time.RFC3339} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '/' || r == '-' })
	if len(parts) != 3 {
		return time.Time{}, false
	}
	var iso string
	if len(parts[0]) == 4 {
		iso = parts[0] + "-" + pad2(parts[1]) + "-" + pad2(parts[2])
	} else {
		// month-day-year
		iso = parts[2] + "-" + pad2(parts[0]) + "-" + pad2(parts[1])
	}
	t, err := time.ParseInLocation("2006-01-02", iso, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

// Matches reports whether record falls into the same period instance as
// anchor. Weekly compares the ISO week number within the same calendar
// year, so records around a New Year boundary never cross-match.
func Matches(record, anchor time.Time, p Period) bool {
	switch p {
	case Daily:
		return record.Year() == anchor.Year() && record.YearDay() == anchor.YearDay()
	case Weekly:
		return record.Year() == anchor.Year() && isoWeek(record) == isoWeek(anchor)
	case Monthly:
		return record.Year() == anchor.Year() && record.Month() == anchor.Month()
	case Yearly:
		return record.Year() == anchor.Year()
	}
	return false
}

func isoWeek(t time.Time) int {
	_, w := t.ISOWeek()
	return w
}

// Anchor resolves the filter anchor from whichever inputs the period
// needs: a day for daily/weekly, month+year for monthly, year for yearly.
// An absent or invalid input yields no anchor (and an empty result set
// downstream), never an error.
func Anchor(p Period, day, month, year string) (time.Time, bool) {
	switch p {
	case Daily, Weekly:
		return ParseDate(day)
	case Monthly:
		y, errY := strconv.Atoi(strings.TrimSpace(year))
		m, errM := strconv.Atoi(strings.TrimSpace(month))
		if errY != nil || errM != nil || m < 1 || m > 12 {
			return time.Time{}, false
		}
		return time.Date(y, time.Month(m), 1, 0, 0, 0, 0, time.Local), true
	case Yearly:
		y, err := strconv.Atoi(strings.TrimSpace(year))
		if err != nil {
			return time.Time{}, false
		}
		return time.Date(y, time.January, 1, 0, 0, 0, 0, time.Local), true
	}
	return time.Time{}, false
}

// SameDay reports whether two instants share a local calendar date.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// DayKey buckets an instant by its local calendar date.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// EndOfDay extends a date to its final instant so an inclusive range
// covers everything recorded on the last day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999_000_000, t.Location())
}
