// Package dateparse normalizes free-form date strings into calendar
// timestamps. The inputs come from uncontrolled sources (bank statements,
// tax authority exports, marketplace reports) and mix ISO dates, numeric
// dates with ambiguous ordering, and long-form Spanish dates such as
// "17 de noviembre de 2025 08:23 hs.".
package dateparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// strategy is one named parsing attempt over an already-cleaned string.
type strategy func(string) (time.Time, bool)

// Strategies run in fixed priority order; the first success wins.
var strategies = []strategy{parseISO, parseLongForm, parseNumeric}

var (
	timeSuffixRe = regexp.MustCompile(`\b(?:hs|hrs|hr|h)\.?$`)
	longFormRe   = regexp.MustCompile(`(\d{1,2})\s*(?:de\s*)?([a-záéíóúñ]+)\s*(?:de\s*)?(\d{2,4})(?:\s+(\d{1,2}):(\d{2}))?`)
	numericRe    = regexp.MustCompile(`(\d{1,4})[/\-.](\d{1,2})[/\-.](\d{1,4})(?:\s+(\d{1,2}):(\d{2}))?`)
)

// Spanish month names, full and abbreviated. Lookups fall back to the first
// three letters, so "septiembre", "setiembre", "sep" and "set" all resolve
// to September.
var months = map[string]int{
	"enero": 1, "ene": 1,
	"febrero": 2, "feb": 2,
	"marzo": 3, "mar": 3,
	"abril": 4, "abr": 4,
	"mayo": 5, "may": 5,
	"junio": 6, "jun": 6,
	"julio": 7, "jul": 7,
	"agosto": 8, "ago": 8,
	"septiembre": 9, "setiembre": 9, "sep": 9, "set": 9,
	"octubre": 10, "oct": 10,
	"noviembre": 11, "nov": 11,
	"diciembre": 12, "dic": 12,
}

// Parse converts a date string in any of the supported formats into a
// timestamp. It never fails loudly: malformed input reports ok=false.
func Parse(text string) (time.Time, bool) {
	cleaned := clean(text)
	if cleaned == "" {
		return time.Time{}, false
	}

	for _, attempt := range strategies {
		if t, ok := attempt(cleaned); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// clean lower-cases, strips a trailing time-unit suffix ("hs.", "hr", ...)
// and collapses interior whitespace. Commas become spaces so that strings
// like "17 de noviembre, 2025" still split cleanly.
func clean(text string) string {
	t := strings.ToLower(strings.TrimSpace(text))
	t = strings.TrimSpace(timeSuffixRe.ReplaceAllString(t, ""))
	t = strings.ReplaceAll(t, ",", " ")
	return strings.Join(strings.Fields(t), " ")
}

var isoLayouts = []string{
	"2006-01-02t15:04:05",
	"2006-01-02t15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseISO accepts strict ISO-8601 dates and date-times. The input is
// already lower-cased, hence the lower-case 't' separator in the layouts.
func parseISO(text string) (time.Time, bool) {
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseLongForm handles "<day> [de] <month-name> [de] <year> [hh:mm]".
// An unrecognized month name fails the attempt so the numeric strategy
// still gets its turn.
func parseLongForm(text string) (time.Time, bool) {
	m := longFormRe.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}

	month, ok := monthNumber(m[2])
	if !ok {
		return time.Time{}, false
	}

	day := atoi(m[1])
	year := expandYear(atoi(m[3]))
	hour, minute := clockOf(m[4], m[5])
	return makeDate(year, month, day, hour, minute)
}

// parseNumeric handles "<A>/<B>/<C> [hh:mm]" with '/', '-' or '.' as the
// separator. Ordering is disambiguated by magnitude: a first component
// beyond 31 forces year-first, a third component beyond 31 forces
// year-last, and everything else defaults to day/month/year with
// two-digit-year expansion.
func parseNumeric(text string) (time.Time, bool) {
	m := numericRe.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}

	a, b, c := atoi(m[1]), atoi(m[2]), atoi(m[3])

	var day, month, year int
	switch {
	case a > 31:
		year, month, day = a, b, c
	case c > 31:
		day, month, year = a, b, c
	default:
		day, month, year = a, b, c
	}
	year = expandYear(year)

	hour, minute := clockOf(m[4], m[5])
	return makeDate(year, month, day, hour, minute)
}

func monthNumber(name string) (int, bool) {
	if n, ok := months[name]; ok {
		return n, true
	}
	if r := []rune(name); len(r) > 3 {
		if n, ok := months[string(r[:3])]; ok {
			return n, true
		}
	}
	return 0, false
}

// expandYear applies the two-digit-year rule: 25 means 2025.
func expandYear(year int) int {
	if year < 100 {
		return year + 2000
	}
	return year
}

func clockOf(hour, minute string) (int, int) {
	if hour == "" {
		return 0, 0
	}
	return atoi(hour), atoi(minute)
}

// makeDate builds the timestamp and rejects values that do not exist on the
// calendar (month 13, April 31). Nothing is clamped: a bad component fails
// the whole parse.
func makeDate(year, month, day, hour, minute int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || hour > 23 || minute > 59 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
