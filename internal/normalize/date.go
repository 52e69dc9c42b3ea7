package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/amishk599/jobmerge/internal/model"
)

// DisplayLayout is the fixed MM/DD/YYYY rendering of resolved dates.
const DisplayLayout = "01/02/2006"

var (
	ageDaysRegex  = regexp.MustCompile(`(?i)(\d+)\s*d`)
	usDateRegex   = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{2}|\d{4})$`)
	monthDayRegex = regexp.MustCompile(`^([A-Za-z]{3,9})\.?\s+(\d{1,2})$`)
)

// monthDayLayouts cover "Sep 05" and "September 5", as posted without a year.
var monthDayLayouts = []string{"Jan 2", "January 2"}

// ParseDate resolves a free-form age or date string relative to now.
// The first rule that matches wins:
//
//	"3d" (anywhere in the text)  -> now minus 3 days
//	"today"                      -> now
//	"yesterday"                  -> now minus 1 day
//	"Sep 05" (no year)           -> the latest such date not after now
//	ISO 8601, "May 3, 2024", ... -> the parsed date
//	M/D/YYYY or M/D/YY (20YY)    -> the constructed date
//
// Relative results are truncated to midnight in now's location. When nothing
// matches, or the result is not after model.UnknownInstant, the instant is
// model.UnknownInstant and Display is the raw text.
func ParseDate(raw string, now time.Time) model.DatePosted {
	t, ok := resolveDate(strings.TrimSpace(raw), now)
	if !ok || !t.After(model.UnknownInstant) {
		return model.DatePosted{Display: raw, Instant: model.UnknownInstant}
	}
	return model.DatePosted{Display: t.Format(DisplayLayout), Instant: t}
}

func resolveDate(s string, now time.Time) (time.Time, bool) {
	if m := ageDaysRegex.FindStringSubmatch(s); m != nil {
		if days, err := strconv.Atoi(m[1]); err == nil {
			return daysBefore(now, days), true
		}
	}

	switch strings.ToLower(s) {
	case "today":
		return daysBefore(now, 0), true
	case "yesterday":
		return daysBefore(now, 1), true
	}

	// Every calendar form we accept carries at least one digit.
	if !strings.ContainsAny(s, "0123456789") {
		return time.Time{}, false
	}

	if m := monthDayRegex.FindStringSubmatch(s); m != nil {
		if t, ok := parseMonthDay(m[1]+" "+m[2], now); ok {
			return t, true
		}
	}

	if t, ok := parseCalendar(s, now.Location()); ok {
		if t.Year() == 0 {
			t = withInferredYear(t, now)
		}
		return t, true
	}

	if m := usDateRegex.FindStringSubmatch(s); m != nil {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if len(m[3]) == 2 {
			year += 2000
		}
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, now.Location()), true
	}

	return time.Time{}, false
}

// parseCalendar treats a panic inside dateparse as a failed parse; a single
// odd cell must not take down the pipeline.
func parseCalendar(s string, loc *time.Location) (t time.Time, ok bool) {
	defer func() {
		if recover() != nil {
			t, ok = time.Time{}, false
		}
	}()
	t, err := dateparse.ParseIn(s, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func parseMonthDay(s string, now time.Time) (time.Time, bool) {
	for _, layout := range monthDayLayouts {
		if t, err := time.ParseInLocation(layout, s, now.Location()); err == nil {
			return withInferredYear(t, now), true
		}
	}
	return time.Time{}, false
}

// withInferredYear places a year-less date in now's year, or the year before
// when that would land after now.
func withInferredYear(t, now time.Time) time.Time {
	year := now.Year()
	d := time.Date(year, t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), now.Location())
	if d.After(now) {
		d = time.Date(year-1, t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), now.Location())
	}
	return d
}

func daysBefore(now time.Time, days int) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d-days, 0, 0, 0, 0, now.Location())
}
