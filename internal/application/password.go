package application

import (
	"regexp"
	"unicode/utf8"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 100
)

var (
	hasUpper   = regexp.MustCompile(`[A-Z]`)
	hasLower   = regexp.MustCompile(`[a-z]`)
	hasDigit   = regexp.MustCompile(`[0-9]`)
	hasSpecial = regexp.MustCompile(`[^A-Za-z0-9]`)
)

// passwordLengthProblems checks the length bounds of a signup password.
func passwordLengthProblems(password string) []string {
	var problems []string
	n := utf8.RuneCountInString(password)
	if n < minPasswordLength {
		problems = append(problems, "password must be at least 8 characters")
	}
	if n > maxPasswordLength {
		problems = append(problems, "password is too long")
	}
	return problems
}

// PasswordProblems returns every signup password rule that password violates,
// in a stable order. An empty result means the password is acceptable.
func PasswordProblems(password string) []string {
	problems := passwordLengthProblems(password)
	if !hasUpper.MatchString(password) {
		problems = append(problems, "password must contain at least one uppercase letter")
	}
	if !hasLower.MatchString(password) {
		problems = append(problems, "password must contain at least one lowercase letter")
	}
	if !hasDigit.MatchString(password) {
		problems = append(problems, "password must contain at least one number")
	}
	if !hasSpecial.MatchString(password) {
		problems = append(problems, "password must contain at least one special character")
	}
	return problems
}
