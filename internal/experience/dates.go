package experience

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// PresentLabel is the end date recorded for current positions.
const PresentLabel = "Present"

var dateLayouts = []string{"January 2006", "Jan 2006", "2006-01", "01/2006"}

var yearOnlyRe = regexp.MustCompile(`^\d{4}$`)

// ParseDate parses the month-and-year forms found in resumes: "January 2020",
// "Jan 2020", "2020-01", "01/2020" and a bare year, which maps to January.
func ParseDate(value string) (time.Time, error) {
	s := strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	if yearOnlyRe.MatchString(s) {
		t, err := time.Parse("2006", s)
		if err != nil {
			return time.Time{}, &DateParseError{Value: value, Cause: err}
		}
		return t, nil
	}
	return time.Time{}, &DateParseError{Value: value}
}

// Span is a calendar difference in whole years and months.
type Span struct {
	Years  int
	Months int
}

// Between returns the whole years and months from start to end. A partial
// month is not counted. Negative spans are clamped to zero.
func Between(start, end time.Time) Span {
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if end.Day() < start.Day() {
		months--
	}
	if months < 0 {
		months = 0
	}
	return Span{Years: months / 12, Months: months % 12}
}

// String renders the span as "X years Y months", dropping zero parts.
// A zero span renders as "".
func (s Span) String() string {
	switch {
	case s.Years > 0 && s.Months > 0:
		return fmt.Sprintf("%d years %d months", s.Years, s.Months)
	case s.Years > 0:
		return fmt.Sprintf("%d years", s.Years)
	case s.Months > 0:
		return fmt.Sprintf("%d months", s.Months)
	}
	return ""
}

// Duration describes the time between two resume dates. end may be
// PresentLabel, in which case now is used. It returns "" when either date
// cannot be parsed.
func Duration(start, end string, now time.Time) string {
	from, err := ParseDate(start)
	if err != nil {
		return ""
	}
	to := now
	if end != PresentLabel {
		if to, err = ParseDate(end); err != nil {
			return ""
		}
	}
	return Between(from, to).String()
}
