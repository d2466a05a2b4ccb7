package schedule

import "github.com/meetsync/meetsync/internal/model"

// WithinAvailability decides whether the requested interval fits the owner's
// recurring weekly availability on the given date.
//
// An empty rule set means the owner never configured availability and is
// treated as fully available. Otherwise the rule for the date's weekday must
// exist, be enabled, and at least one of its windows must fully contain the
// requested interval. A meeting spilling past a window's edge does not count.
func WithinAvailability(date string, startMin, endMin int, rules []model.AvailabilityRule) (bool, error) {
	if len(rules) == 0 {
		return true, nil
	}

	day, err := ParseDate(date)
	if err != nil {
		return false, err
	}
	weekday := int(day.Weekday())

	var rule *model.AvailabilityRule
	for i := range rules {
		if rules[i].Weekday == weekday && rules[i].Enabled {
			rule = &rules[i]
			break
		}
	}
	if rule == nil {
		return false, nil
	}

	for _, window := range rule.Windows {
		windowStart, err := TimeToMinutes(window.Start)
		if err != nil {
			return false, err
		}
		windowEnd, err := TimeToMinutes(window.End)
		if err != nil {
			return false, err
		}
		if windowStart <= startMin && endMin <= windowEnd {
			return true, nil
		}
	}

	return false, nil
}
