package contract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	dateRangeRe  = regexp.MustCompile(`(\d{1,2})\s*[–-]\s*(\d{1,2})\s*([a-z]+)\s*(\d{4})`)
	singleDateRe = regexp.MustCompile(`(\d{1,2})\s*([a-z]+)\s*(\d{4})`)
)

// ParseStartDate extracts the first day of a textual date as an ISO date.
// Returns "" when the text has no parseable date.
func ParseStartDate(dateStr string) string {
	if dateStr == "" {
		return ""
	}
	t := strings.ToLower(dateStr)

	if m := dateRangeRe.FindStringSubmatch(t); m != nil {
		return toISO(m[1], m[3], m[4])
	}
	if m := singleDateRe.FindStringSubmatch(t); m != nil {
		return toISO(m[1], m[2], m[3])
	}
	return ""
}

// ParseEndDate extracts the last day of a textual date as an ISO date.
// A single date yields the same value as ParseStartDate.
func ParseEndDate(dateStr string) string {
	if dateStr == "" {
		return ""
	}
	t := strings.ToLower(dateStr)

	if m := dateRangeRe.FindStringSubmatch(t); m != nil {
		return toISO(m[2], m[3], m[4])
	}
	return ParseStartDate(dateStr)
}

// toISO parses "<day> <Month> <year>" with a full month name. Anything
// else (abbreviated months included) yields "".
func toISO(day, month, year string) string {
	d, err := strconv.Atoi(day)
	if err != nil {
		return ""
	}

	if month == "" {
		return ""
	}
	month = strings.ToUpper(month[:1]) + month[1:]

	t, err := time.Parse("2 January 2006", strconv.Itoa(d)+" "+month+" "+year)
	if err != nil {
		return ""
	}
	return t.Format("2006-01-02")
}
