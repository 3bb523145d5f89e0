package service

import (
	"regexp"
	"strings"
	"unicode/utf8"

	autherror "github.com/AnthoniusHendriyanto/marketplace-api/internal/errors"
)

const (
	maxNameLength  = 32
	minEmailLength = 4
	maxEmailLength = 254
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func validateName(name string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(name))
	if n == 0 {
		return autherror.ErrMissingFields
	}
	if n > maxNameLength {
		return autherror.Validation("name must be at most 32 characters")
	}
	return nil
}

// validateEmail expects an already normalised address.
func validateEmail(email string) error {
	if email == "" {
		return autherror.ErrMissingFields
	}
	if len(email) < minEmailLength || len(email) > maxEmailLength || !emailPattern.MatchString(email) {
		return autherror.Validation("please fill a valid email address")
	}
	return nil
}
