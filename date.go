package gtd

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Layouts of the date strings found in data files. Values with an offset are RFC 3339; values without one are
// local wall-clock times, with or without the time of day.
const (
	DateLayout          = "2006-01-02"
	LocalDateTimeLayout = "2006-01-02T15:04"
)

var (
	timezonePattern  = regexp.MustCompile(`(Z|[+-]\d{2}:?\d{2})$`)
	localDatePattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})(?:[T ](\d{2})(?::(\d{2})(?::(\d{2})(?:\.(\d{1,9}))?)?)?)?$`)
	timePattern      = regexp.MustCompile(`[T ]\d{2}:\d{2}`)
)

// HasTimezone reports whether the date string ends with Z or a numeric offset.
func HasTimezone(value string) bool {
	return timezonePattern.MatchString(value)
}

// HasTimeComponent reports whether the date string includes a time of day.
func HasTimeComponent(value string) bool {
	return timePattern.MatchString(value)
}

// ParseDate parses a date string as stored in a data file. Strings with an offset keep it, strings without one are
// interpreted in time.Local. The second return value is false if the string is empty or malformed.
func ParseDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	if !HasTimezone(value) {
		m := localDatePattern.FindStringSubmatch(value)
		if m == nil {
			return time.Time{}, false
		}
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		hour, _ := strconv.Atoi(m[4])
		minute, _ := strconv.Atoi(m[5])
		second, _ := strconv.Atoi(m[6])
		nsec := 0
		if m[7] != "" {
			nsec, _ = strconv.Atoi((m[7] + "00000000")[:9])
		}
		if month < 1 || month > 12 || day < 1 || day > daysIn(time.Month(month), year) || hour > 23 || minute > 59 || second > 59 {
			return time.Time{}, false
		}
		return time.Date(year, time.Month(month), day, hour, minute, second, nsec, time.Local), true
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04Z07:00", "2006-01-02T15:04:05Z0700", "2006-01-02T15:04Z0700"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseDueDate is like ParseDate, except that a value without a time of day is taken to mean the end of that day.
func ParseDueDate(value string) (time.Time, bool) {
	t, ok := ParseDate(value)
	if !ok {
		return t, false
	}
	if !HasTimeComponent(value) {
		t = time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
	}
	return t, true
}

// formatLike formats t in the same shape as the reference string: RFC 3339 if the reference has an offset, a local
// date-time if it has a time of day, a date otherwise. An empty reference gives RFC 3339.
func formatLike(reference string, t time.Time) string {
	switch {
	case reference == "" || HasTimezone(reference):
		return t.Format(time.RFC3339)
	case HasTimeComponent(reference):
		return t.Format(LocalDateTimeLayout)
	default:
		return t.Format(DateLayout)
	}
}

func daysIn(month time.Month, year int) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// addMonths moves t by n calendar months, clamping the day to the end of the target month (Jan 31 + 1 month is the
// last day of February, not early March as with time.AddDate).
func addMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	if last := daysIn(first.Month(), first.Year()); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday,
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tues": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thur": time.Thursday, "thurs": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
}

var clockPattern = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?(am|pm)?$`)

// parseClock parses a time of day such as 5pm, 5:30pm or 17:00.
func parseClock(word string) (hour, minute int, ok bool) {
	switch word {
	case "noon":
		return 12, 0, true
	case "midnight":
		return 0, 0, true
	}
	m := clockPattern.FindStringSubmatch(word)
	if m == nil {
		return 0, 0, false
	}
	// A bare number is a day count or garbage, not a time.
	if m[2] == "" && m[3] == "" {
		return 0, 0, false
	}
	hour, _ = strconv.Atoi(m[1])
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}
	switch m[3] {
	case "am", "pm":
		if hour < 1 || hour > 12 {
			return 0, 0, false
		}
		hour %= 12
		if m[3] == "pm" {
			hour += 12
		}
	}
	if hour > 23 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}

// parseDay parses the date part of an expression from the start of words. It returns the midnight of the resolved
// day (in now's location) and the number of words consumed, zero if none could be parsed.
func parseDay(words []string, now time.Time) (time.Time, int) {
	if len(words) == 0 {
		return time.Time{}, 0
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	w := words[0]
	switch w {
	case "today", "tonight":
		return today, 1
	case "tomorrow", "tmr":
		return today.AddDate(0, 0, 1), 1
	case "yesterday":
		return today.AddDate(0, 0, -1), 1
	case "next":
		if len(words) > 1 {
			if words[1] == "week" {
				return today.AddDate(0, 0, 7), 2
			}
			if words[1] == "month" {
				return addMonths(today, 1), 2
			}
			if wd, ok := weekdayNames[words[1]]; ok {
				return nextWeekday(today, wd), 2
			}
		}
		return time.Time{}, 0
	case "in":
		if len(words) < 3 {
			return time.Time{}, 0
		}
		n, err := strconv.Atoi(words[1])
		if err != nil || n < 0 {
			return time.Time{}, 0
		}
		switch strings.TrimSuffix(words[2], "s") {
		case "day":
			return today.AddDate(0, 0, n), 3
		case "week":
			return today.AddDate(0, 0, 7*n), 3
		case "month":
			return addMonths(today, n), 3
		}
		return time.Time{}, 0
	}
	if wd, ok := weekdayNames[w]; ok {
		return nextWeekday(today, wd), 1
	}
	if t, err := time.ParseInLocation(DateLayout, w, now.Location()); err == nil {
		return t, 1
	}
	return time.Time{}, 0
}

// nextWeekday returns the first day strictly after today that falls on wd.
func nextWeekday(today time.Time, wd time.Weekday) time.Time {
	offset := (int(wd) - int(today.Weekday()) + 7) % 7
	if offset == 0 {
		offset = 7
	}
	return today.AddDate(0, 0, offset)
}

// parseDateExpression parses as many of the given words as form a date expression: a day, a time of day, or a day
// followed by a time of day. It returns the formatted due value (RFC 3339 when a time is given, a date otherwise)
// and the number of words consumed; zero consumed words means no expression was recognized.
func parseDateExpression(words []string, now time.Time) (string, int) {
	lower := make([]string, len(words))
	for i, w := range words {
		lower[i] = strings.ToLower(w)
	}
	day, n := parseDay(lower, now)
	if n == 0 {
		hour, minute, ok := parseClock(firstOf(lower))
		if !ok {
			return "", 0
		}
		t := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
		return t.Format(time.RFC3339), 1
	}
	if n < len(lower) {
		// "at" is optional between the day and the time.
		k := n
		if lower[k] == "at" && k+1 < len(lower) {
			k++
		}
		if hour, minute, ok := parseClock(lower[k]); ok {
			t := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
			return t.Format(time.RFC3339), k + 1
		}
	}
	return day.Format(DateLayout), n
}

// ParseDateExpression resolves a relative or absolute date expression such as "tomorrow 5pm", "friday", "in 3 days"
// or "2025-01-15 17:00" against now. It returns false unless the whole expression is understood.
func ParseDateExpression(expr string, now time.Time) (string, bool) {
	words := strings.Fields(expr)
	if len(words) == 0 {
		return "", false
	}
	value, n := parseDateExpression(words, now)
	return value, n == len(words)
}

func firstOf(words []string) string {
	if len(words) == 0 {
		return ""
	}
	return words[0]
}
