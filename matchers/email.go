package matchers

import (
	"regexp"
	"strings"
)

// emailShape accepts anything that looks like local@domain.tld. The notification
// service does the real validation.
var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// MatchesEmailShape reports whether the trimmed address has the local@domain.tld shape.
func MatchesEmailShape(email string) bool {
	return emailShape.MatchString(strings.TrimSpace(email))
}
