package schedule

import "testing"

func TestHasOverlap(t *testing.T) {
	cases := []struct {
		name                   string
		aStart, aEnd           int
		bStart, bEnd           int
		want                   bool
	}{
		{"adjacent is not overlap", 540, 600, 600, 660, false},
		{"partial overlap", 540, 630, 600, 660, true},
		{"contained", 540, 660, 570, 600, true},
		{"identical", 540, 600, 540, 600, true},
		{"disjoint", 540, 600, 720, 780, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := HasOverlap(c.aStart, c.aEnd, c.bStart, c.bEnd)
			if got != c.want {
				t.Errorf("HasOverlap(%d,%d,%d,%d) = %v, want %v", c.aStart, c.aEnd, c.bStart, c.bEnd, got, c.want)
			}
			// overlap is symmetric
			if HasOverlap(c.bStart, c.bEnd, c.aStart, c.aEnd) != got {
				t.Errorf("HasOverlap not symmetric for %+v", c)
			}
		})
	}
}
