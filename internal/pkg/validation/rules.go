// Package validation holds the field rules shared by request binding and the services.
package validation

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// DateLayout is the wire format of calendar days
const DateLayout = "2006-01-02"

// Length limits
const (
	PasswordMinLength = 8
	NameMinLength     = 2
	NameMaxLength     = 100
)

var (
	emailPattern        = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)
	collegeIDPattern    = regexp.MustCompile(`^[A-Za-z0-9\-]{3,32}$`) // e.g. 2024CS017
	supervisorIDPattern = regexp.MustCompile(`^[A-Za-z0-9\-_]{2,32}$`)
	mobilePattern       = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
)

// NormalizeEmail lowercases and trims an address before it is validated or stored
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidEmail checks the normalized form of email
func ValidEmail(email string) bool {
	return emailPattern.MatchString(NormalizeEmail(email))
}

// ValidName accepts trimmed names of NameMinLength..NameMaxLength characters
func ValidName(name string) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(name))
	return n >= NameMinLength && n <= NameMaxLength
}

func ValidCollegeID(id string) bool { return collegeIDPattern.MatchString(strings.TrimSpace(id)) }

func ValidSupervisorID(id string) bool { return supervisorIDPattern.MatchString(strings.TrimSpace(id)) }

func ValidMobile(number string) bool { return mobilePattern.MatchString(number) }

// IsValidDate reports whether s is a YYYY-MM-DD calendar date
func IsValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
