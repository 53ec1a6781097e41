// Package validation holds the field rules shared by the workforce API
// handlers. The rules mirror what the console relies on the backend to
// enforce: it surfaces whatever error text is returned here.
package validation

import (
	"fmt"
	"regexp"
	"time"
)

const DateLayout = "2006-01-02"

var (
	namePattern  = regexp.MustCompile(`^[A-Za-z ]+$`)
	emailPattern = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.com$`)
)

// ValidName reports whether name contains only letters and spaces.
func ValidName(name string) bool {
	return name != "" && namePattern.MatchString(name)
}

// ValidEmail applies the loose address shape check plus the ".com" suffix
// rule inherited from the legacy service.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ParseDate parses a yyyy-mm-dd value; the error text is surfaced verbatim
// to API clients.
func ParseDate(value, fieldName string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("%s is required", fieldName)
	}
	parsed, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("Invalid %s format. Use yyyy-mm-dd", fieldName)
	}
	return parsed, nil
}

// ParseOptionalDate is ParseDate for fields that may be empty.
func ParseOptionalDate(value, fieldName string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := ParseDate(value, fieldName)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// NotFuture rejects dates after today. Today is the local calendar date,
// reparsed through the wire layout so the comparison stays at date
// granularity and "today" is always accepted.
func NotFuture(date time.Time, fieldName string) error {
	today, _ := time.Parse(DateLayout, time.Now().Format(DateLayout))
	if date.After(today) {
		return fmt.Errorf("%s cannot be in the future", fieldName)
	}
	return nil
}
