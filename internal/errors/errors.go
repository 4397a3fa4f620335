package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned when the login identifier or password
	// is wrong. The message is identical for both cases on purpose.
	ErrInvalidCredentials = errors.New("incorrect email or password")
	// ErrEmailNotVerified is returned when a valid login hits an unverified account.
	ErrEmailNotVerified = errors.New("email not verified")
	// ErrUserExists is returned when signup hits an already registered email
	// or username. The insert-time unique violation does not say which index
	// fired, so the message names both.
	ErrUserExists = errors.New("user with this email or username already exists")
	// ErrUserNotFound is returned when a user lookup comes up empty.
	ErrUserNotFound = errors.New("user not found")
	// ErrContactNotFound is returned when a contact is absent or owned by
	// someone else. The two cases are deliberately indistinguishable.
	ErrContactNotFound = errors.New("contact not found")
	// ErrForbidden is returned when an authenticated user lacks the required role.
	ErrForbidden = errors.New("operation not permitted")
	// ErrVerification is returned when a verification token points at no user.
	ErrVerification = errors.New("verification error")
)

// ContactExistsError reports a duplicate (owner, email) pair on contact creation.
type ContactExistsError struct {
	Email string
}

func (e *ContactExistsError) Error() string {
	return fmt.Sprintf("contact with email '%s' already exists for this user", e.Email)
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var conflict *ContactExistsError
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrEmailNotVerified):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "EMAIL_NOT_VERIFIED")
	case errors.Is(err, ErrUserExists):
		return NewHTTPError(http.StatusConflict, err.Error(), "USER_ALREADY_EXISTS")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrContactNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "CONTACT_NOT_FOUND")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrVerification):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "VERIFICATION_ERROR")
	case errors.As(err, &conflict):
		return NewHTTPError(http.StatusConflict, conflict.Error(), "CONTACT_ALREADY_EXISTS")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
