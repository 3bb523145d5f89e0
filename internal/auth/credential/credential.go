// Package credential hashes and verifies account passwords.
package credential

import (
	"crypto/rand"
	"crypto/subtle"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"golang.org/x/crypto/scrypt"

	autherror "github.com/AnthoniusHendriyanto/marketplace-api/internal/errors"
)

const (
	MinPasswordLength = 5

	saltLen = 16
	keyLen  = 64

	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
)

// randRead is swapped in tests to simulate entropy failure.
var randRead = rand.Read

// ValidatePassword rejects passwords shorter than MinPasswordLength once
// surrounding whitespace is removed. An all-whitespace password fails.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(strings.TrimSpace(password)) < MinPasswordLength {
		return autherror.ErrPasswordTooShort
	}
	return nil
}

// Hash derives a key from password with a freshly generated salt. The
// password is hashed exactly as given.
func Hash(password string) (salt, hash []byte, err error) {
	salt = make([]byte, saltLen)
	if _, err := randRead(salt); err != nil {
		return nil, nil, errors.Wrap(err, "failed to generate salt")
	}
	hash, err = derive(password, salt)
	if err != nil {
		return nil, nil, err
	}
	return salt, hash, nil
}

// Verify reports whether password matches the stored salt and hash.
func Verify(password string, salt, hash []byte) bool {
	if len(salt) == 0 || len(hash) == 0 {
		return false
	}
	candidate, err := derive(password, salt)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(candidate, hash) == 1
}

func derive(password string, salt []byte) ([]byte, error) {
	dk, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, keyLen)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return dk, nil
}
