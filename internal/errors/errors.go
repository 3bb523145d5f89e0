// Package errors holds the error taxonomy shared by every layer of the API.
// Each failure carries exactly one Kind, and the HTTP boundary maps that kind
// to a status code.
package errors

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// HTTPStatus returns the status code the boundary answers with for k.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified failure. Message is safe to show to clients; Err is
// the underlying cause and is only ever logged.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Wrap classifies err under kind with a client-facing message.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(msg string) *Error   { return New(KindValidation, msg) }
func Unauthorized(msg string) *Error { return New(KindUnauthorized, msg) }
func Forbidden(msg string) *Error    { return New(KindForbidden, msg) }
func NotFound(msg string) *Error     { return New(KindNotFound, msg) }
func Conflict(msg string) *Error     { return New(KindConflict, msg) }

func Internal(err error) *Error {
	return Wrap(KindInternal, "internal server error", err)
}

// KindOf reports the kind of the first *Error in err's chain. Unclassified
// errors are internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// PublicMessage returns the text that may be sent to a client for err.
func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return e.Message
	}
	return "internal server error"
}

var (
	ErrInvalidInput      = Validation("invalid input")
	ErrMissingFields     = Validation("valid fields are required")
	ErrPasswordTooShort  = Validation("password must be at least 5 characters")
	ErrEmailAlreadyInUse = Conflict("email already in use")

	ErrUserNotFound  = Unauthorized("user not found")
	ErrWrongPassword = Unauthorized("wrong password")

	ErrMissingAuthHeader  = Unauthorized("authorization header missing")
	ErrInvalidAccessToken = Unauthorized("invalid access token")
	ErrAccessTokenExpired = Unauthorized("access token expired")

	ErrNoSessionCookie      = Unauthorized("no session cookie")
	ErrInvalidSessionCookie = Unauthorized("invalid session cookie")
	ErrSessionExpired       = Unauthorized("session expired")
	ErrSessionMismatch      = Forbidden("session does not match")

	ErrNotOwner  = Forbidden("forbidden: not the owner of this resource")
	ErrNotSeller = Forbidden("forbidden: account is not a seller")

	ErrAccountNotFound  = NotFound("account not found")
	ErrShopNotFound     = NotFound("shop not found")
	ErrProductNotFound  = NotFound("product not found")
	ErrOrderNotFound    = NotFound("order not found")
	ErrCartItemNotFound = NotFound("cart item not found")

	ErrAccountOwnsShop = Conflict("account still owns a shop")
	ErrShopHasProducts = Conflict("shop still has products")

	ErrInsufficientStock = Conflict("insufficient stock")
	ErrCartItemCancelled = Conflict("cart item already cancelled")
	ErrCartItemChanged   = Conflict("cart item status changed, reload and retry")
)
