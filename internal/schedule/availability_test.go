package schedule

import (
	"testing"

	"github.com/meetsync/meetsync/internal/model"
)

// 2024-01-08 is a Monday, 2024-01-09 a Tuesday.
const (
	monday  = "2024-01-08"
	tuesday = "2024-01-09"
)

func mondayNineToFive(enabled bool) []model.AvailabilityRule {
	return []model.AvailabilityRule{
		{
			Weekday: 1,
			Enabled: enabled,
			Windows: []model.AvailabilityWindow{{Start: "09:00", End: "17:00"}},
		},
	}
}

func TestWithinAvailability_EmptyRulesIsPermissive(t *testing.T) {
	ok, err := WithinAvailability(monday, 0, MinutesPerDay-1, nil)
	if err != nil {
		t.Fatalf("WithinAvailability: %v", err)
	}
	if !ok {
		t.Error("empty rule set should allow any interval")
	}
}

func TestWithinAvailability_InsideWindow(t *testing.T) {
	ok, err := WithinAvailability(monday, 540, 600, mondayNineToFive(true))
	if err != nil {
		t.Fatalf("WithinAvailability: %v", err)
	}
	if !ok {
		t.Error("Monday 09:00-10:00 should fit Monday 09:00-17:00")
	}
}

func TestWithinAvailability_PastWindowEnd(t *testing.T) {
	// 16:30-17:30 extends past the 17:00 edge; partial fit does not count.
	ok, err := WithinAvailability(monday, 990, 1050, mondayNineToFive(true))
	if err != nil {
		t.Fatalf("WithinAvailability: %v", err)
	}
	if ok {
		t.Error("interval spilling past the window end must not be available")
	}
}

func TestWithinAvailability_NoRuleForWeekday(t *testing.T) {
	ok, err := WithinAvailability(tuesday, 540, 600, mondayNineToFive(true))
	if err != nil {
		t.Fatalf("WithinAvailability: %v", err)
	}
	if ok {
		t.Error("no rule for Tuesday means no availability")
	}
}

func TestWithinAvailability_DisabledRule(t *testing.T) {
	ok, err := WithinAvailability(monday, 540, 600, mondayNineToFive(false))
	if err != nil {
		t.Fatalf("WithinAvailability: %v", err)
	}
	if ok {
		t.Error("disabled rule must contribute no availability")
	}
}

func TestWithinAvailability_UnsortedWindows(t *testing.T) {
	rules := []model.AvailabilityRule{
		{
			Weekday: 1,
			Enabled: true,
			Windows: []model.AvailabilityWindow{
				{Start: "14:00", End: "18:00"},
				{Start: "08:00", End: "12:00"},
			},
		},
	}
	ok, err := WithinAvailability(monday, 540, 600, rules)
	if err != nil {
		t.Fatalf("WithinAvailability: %v", err)
	}
	if !ok {
		t.Error("windows are a union of candidates regardless of order")
	}
}

func TestWithinAvailability_BadDate(t *testing.T) {
	if _, err := WithinAvailability("not-a-date", 540, 600, mondayNineToFive(true)); err == nil {
		t.Error("expected error for malformed date")
	}
}
