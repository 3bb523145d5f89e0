package service

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	autherror "github.com/AnthoniusHendriyanto/marketplace-api/internal/errors"
)

const (
	maxShopNameLength    = 64
	maxProductNameLength = 32
	maxDescriptionLength = 100

	maxShopDescriptionLength = 500

	maxCustomerNameLength = 64
	maxAddressLength      = 128
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// cleanText trims s and checks its length in runes. required rejects an
// empty result.
func cleanText(field, s string, limit int, required bool) (string, error) {
	s = strings.TrimSpace(s)
	n := utf8.RuneCountInString(s)
	if required && n == 0 {
		return "", autherror.Validation(field + " is required")
	}
	if n > limit {
		return "", autherror.Validation(field + " is too long")
	}
	return s, nil
}

func checkNonNegative(field string, v int64) error {
	if v < 0 {
		return autherror.Validation(field + " must not be negative")
	}
	return nil
}

// checkQuantity bounds stock counts to what the INTEGER columns can hold.
func checkQuantity(field string, v, lowest int) error {
	if v < lowest {
		return autherror.Validation(field + " must be at least " + strconv.Itoa(lowest))
	}
	if v > math.MaxInt32 {
		return autherror.Validation(field + " is too large")
	}
	return nil
}
