package fields

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var delimitedDate = regexp.MustCompile(`^(\d{1,2})[./-](\d{1,2})[./-](\d{2,4})$`)

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2 Jan 2006",
	"02 Jan 2006",
	"2-Jan-2006",
	"2-Jan-06",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 January 2006",
}

// spreadsheet serial day numbers count from 1899-12-30
var serialEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// Serials below minSerial (1954-10-03) are treated as plain numbers, so a bare
// year like "2025" is not read as a 1905 date.
const (
	minSerial = 20000
	maxSerial = 2958466
)

// ParseDate reads D.M.Y, D/M/Y or D-M-Y (two-digit years are 20YY), then a set
// of general layouts, then spreadsheet serial numbers. Anything else yields now,
// tagged Defaulted.
func ParseDate(s string, now time.Time) Result[time.Time] {
	s = strings.TrimSpace(s)
	if s == "" {
		return defaulted(now)
	}

	if m := delimitedDate.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if year < 100 {
			year += 2000
		}
		if t, ok := validDate(year, month, day, now.Location()); ok {
			return parsed(t)
		}
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, now.Location()); err == nil {
			return parsed(t)
		}
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial >= minSerial && serial < maxSerial {
		t := serialEpoch.AddDate(0, 0, int(serial))
		return parsed(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, now.Location()))
	}

	return defaulted(now)
}

// validDate rejects dates that time.Date would normalize, like 31.02.2025.
func validDate(year, month, day int, loc *time.Location) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, false
	}
	return t, true
}

type DateRange struct {
	Start time.Time
	End   *time.Time
}

var rangeSeparator = regexp.MustCompile(`(?i) to `)

// ParseDateRange splits "start to end". A missing end stays nil; an empty start
// becomes now.
func ParseDateRange(s string, now time.Time) Result[DateRange] {
	parts := rangeSeparator.Split(strings.TrimSpace(s), 2)

	start := ParseDate(parts[0], now)
	out := DateRange{Start: start.Value}
	outcome := start.Outcome

	if len(parts) == 2 {
		end := ParseDate(parts[1], now)
		out.End = &end.Value
		if end.WasDefaulted() {
			outcome = Defaulted
		}
	}
	return Result[DateRange]{Value: out, Outcome: outcome}
}
