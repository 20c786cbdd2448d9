package main

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// dateTimeRE matches the ISO-8601-with-Z combined date and time form the
// --after flag accepts: YYYY-MM-DDThh[:mm[:ss[.fffffffff]]]Z.
var dateTimeRE = regexp.MustCompile(
	`^(?P<year>20[0-9]{2})-(?P<month>0[1-9]|1[012])-(?P<day>0[1-9]|[12][0-9]|3[01])T` +
		`(?P<hour>[01][0-9]|2[0123])` +
		`(:(?P<minute>[0-5][0-9])` +
		`(:(?P<second>[0-5][0-9])` +
		`(\.(?P<fraction>[0-9]{1,9}))?` +
		`)?` +
		`)?Z$`,
)

// malformedAfterError represents a malformed or out-of-range --after value.
type malformedAfterError struct {
	Value string
}

func (e malformedAfterError) Error() string {
	return fmt.Sprintf("malformed --after date and time value %q", e.Value)
}

// parseAfterNs parses text (ISO-8601-with-Z combined form) into
// nanoseconds since the Unix epoch.
func parseAfterNs(text string) (int64, error) {
	match := dateTimeRE.FindStringSubmatch(text)
	if match == nil {
		return 0, malformedAfterError{Value: text}
	}

	group := func(name string) int {
		v := match[dateTimeRE.SubexpIndex(name)]
		if v == "" {
			return 0
		}
		n, _ := strconv.Atoi(v)
		return n
	}

	year, month, day := group("year"), group("month"), group("day")
	hour, minute, second := group("hour"), group("minute"), group("second")

	t := time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return 0, malformedAfterError{Value: text}
	}

	ns := t.UnixNano()

	fraction := match[dateTimeRE.SubexpIndex("fraction")]
	if fraction != "" {
		for len(fraction) < 9 {
			fraction += "0"
		}
		frac, err := strconv.ParseInt(fraction, 10, 64)
		if err != nil {
			return 0, malformedAfterError{Value: text}
		}
		ns += frac
	}

	return ns, nil
}
