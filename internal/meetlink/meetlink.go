// Package meetlink covers meeting-link glue: normalization of user-entered
// links, Google Meet style link templating and the Microsoft Teams API call.
package meetlink

import (
	"crypto/rand"
	"regexp"
	"strings"
)

var schemeRe = regexp.MustCompile(`(?i)^https?://`)

const meetAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Normalize trims a user-entered meeting link and prefixes https:// when the
// scheme is missing. An empty or blank link stays empty.
func Normalize(link string) string {
	trimmed := strings.TrimSpace(link)
	if trimmed == "" {
		return ""
	}
	if schemeRe.MatchString(trimmed) {
		return trimmed
	}
	return "https://" + trimmed
}

// NewGoogleMeetLink generates a Meet-style link with a random code. This is
// string templating only; it does not create a calendar event.
func NewGoogleMeetLink() string {
	buf := make([]byte, 10)
	rand.Read(buf)
	for i, b := range buf {
		buf[i] = meetAlphabet[int(b)%len(meetAlphabet)]
	}
	return "https://meet.google.com/" + string(buf)
}
