package meetlink

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"zoom.us/j/123", "https://zoom.us/j/123"},
		{"https://zoom.us/j/123", "https://zoom.us/j/123"},
		{"HTTP://example.com/room", "HTTP://example.com/room"},
		{"  https://meet.google.com/abc  ", "https://meet.google.com/abc"},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNewGoogleMeetLink(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		link := NewGoogleMeetLink()
		if !strings.HasPrefix(link, "https://meet.google.com/") {
			t.Fatalf("unexpected prefix: %q", link)
		}
		code := strings.TrimPrefix(link, "https://meet.google.com/")
		if len(code) != 10 {
			t.Fatalf("code length = %d, want 10", len(code))
		}
		for _, r := range code {
			if !strings.ContainsRune(meetAlphabet, r) {
				t.Fatalf("code %q contains %q outside the alphabet", code, r)
			}
		}
		seen[link] = true
	}
	if len(seen) < 2 {
		t.Error("links are not random")
	}
}
