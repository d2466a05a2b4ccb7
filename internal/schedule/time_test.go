package schedule

import (
	"errors"
	"testing"
)

func TestTimeToMinutes(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"09:00", 540},
		{"09:30", 570},
		{"23:59", 1439},
	}
	for _, c := range cases {
		got, err := TimeToMinutes(c.in)
		if err != nil {
			t.Fatalf("TimeToMinutes(%q): %v", c.in, err)
		}
		if got != c.want {
			t.Errorf("TimeToMinutes(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestTimeToMinutes_Rejects(t *testing.T) {
	bad := []string{"", "9:00", "09:0", "0900", "ab:cd", "24:00", "09:60", "99:99", "09:00:00", "-1:00"}
	for _, in := range bad {
		if _, err := TimeToMinutes(in); !errors.Is(err, ErrBadTime) {
			t.Errorf("TimeToMinutes(%q): expected ErrBadTime, got %v", in, err)
		}
	}
}

func TestMinutesToTime_RoundTrip(t *testing.T) {
	for m := 0; m < MinutesPerDay; m++ {
		clock := MinutesToTime(m)
		back, err := TimeToMinutes(clock)
		if err != nil {
			t.Fatalf("round trip %d -> %q: %v", m, clock, err)
		}
		if back != m {
			t.Fatalf("round trip %d -> %q -> %d", m, clock, back)
		}
	}
}

func TestParseDate(t *testing.T) {
	day, err := ParseDate("2024-01-08")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if int(day.Weekday()) != 1 {
		t.Errorf("2024-01-08 should be Monday, got weekday %d", int(day.Weekday()))
	}

	if _, err := ParseDate("08/01/2024"); !errors.Is(err, ErrBadTime) {
		t.Errorf("expected ErrBadTime for slash date, got %v", err)
	}
}
