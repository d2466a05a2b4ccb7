package schedule

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

// ErrBadTime reports a malformed or out-of-range clock/date string.
var ErrBadTime = errors.New("bad time format")

const (
	// DateLayout is the wire format for calendar dates.
	DateLayout = "2006-01-02"
	// MinutesPerDay is the exclusive upper bound for minute offsets.
	MinutesPerDay = 24 * 60
)

var clockRe = regexp.MustCompile(`^\d{2}:\d{2}$`)

// TimeToMinutes converts a zero-padded "HH:MM" string to a minute offset
// in [0, 1439]. The shape and the numeric ranges are both enforced.
func TimeToMinutes(clock string) (int, error) {
	if !clockRe.MatchString(clock) {
		return 0, fmt.Errorf("%w: %q", ErrBadTime, clock)
	}

	hour := int(clock[0]-'0')*10 + int(clock[1]-'0')
	minute := int(clock[3]-'0')*10 + int(clock[4]-'0')

	if hour > 23 || minute > 59 {
		return 0, fmt.Errorf("%w: %q out of range", ErrBadTime, clock)
	}

	return hour*60 + minute, nil
}

// MinutesToTime converts a minute offset back to "HH:MM". It is the inverse
// of TimeToMinutes for every offset in [0, 1439].
func MinutesToTime(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ParseDate parses a "YYYY-MM-DD" calendar date.
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadTime, date)
	}
	return t, nil
}
