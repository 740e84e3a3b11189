package validation

import (
	"regexp"
	"strings"
)

// Validation rule patterns for instructor fields
var (
	// Email validation pattern
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`

	// Course identifier pattern - letters, digits, dots, dashes, underscores and dollar signs
	CourseIDPattern = `^[a-zA-Z0-9.$_\-]+$`

	// Google identifier pattern - the local part of a Google account, possibly email-shaped
	GoogleIDPattern = `^[a-zA-Z0-9._%+\-]+(@[a-z0-9.\-]+\.[a-z]{2,4})?$`
)

// Field length limits
var (
	CourseIDMaxLength = 40
	GoogleIDMaxLength = 45
	EmailMaxLength    = 254
	NameMaxLength     = 100
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	Email    *regexp.Regexp
	CourseID *regexp.Regexp
	GoogleID *regexp.Regexp
}{
	Email:    regexp.MustCompile(EmailPattern),
	CourseID: regexp.MustCompile(CourseIDPattern),
	GoogleID: regexp.MustCompile(GoogleIDPattern),
}

// IsValidEmail reports whether value is a plausible contact address
func IsValidEmail(value string) bool {
	if value == "" || len(value) > EmailMaxLength {
		return false
	}
	return CompiledPatterns.Email.MatchString(strings.ToLower(value))
}

// IsValidCourseID reports whether value is an acceptable course identifier
func IsValidCourseID(value string) bool {
	if value == "" || len(value) > CourseIDMaxLength {
		return false
	}
	return CompiledPatterns.CourseID.MatchString(value)
}

// IsValidGoogleID reports whether value is an acceptable external identity string
func IsValidGoogleID(value string) bool {
	if value == "" || len(value) > GoogleIDMaxLength {
		return false
	}
	return CompiledPatterns.GoogleID.MatchString(value)
}

// IsValidName reports whether value is an acceptable display name
func IsValidName(value string) bool {
	trimmed := strings.TrimSpace(value)
	return trimmed != "" && len(trimmed) <= NameMaxLength
}
