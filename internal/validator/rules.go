package validator

import (
	"regexp"
)

var (
	// 2 digits, 3 letters, 3 digits: the institutional roll number format.
	rollNumberRe = regexp.MustCompile(`^[0-9]{2}[a-z]{3}[0-9]{3}$`)
	emailRe      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// ValidRollNumber reports whether s normalizes to a valid roll number.
func ValidRollNumber(s string) bool {
	normalized := NormalizeRollNumber(s)
	return len(normalized) == 8 && rollNumberRe.MatchString(normalized)
}

// ValidEmail bounds length to 5..100 on top of the shape check.
func ValidEmail(s string) bool {
	return len(s) >= 5 && len(s) <= 100 && emailRe.MatchString(s)
}

