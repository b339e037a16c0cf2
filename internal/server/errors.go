package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// statusCoder lets service errors carry their own HTTP status.
type statusCoder interface {
	httpStatus() int
}

// HTTPStatus maps a service error to a response status code, defaulting to 500.
func HTTPStatus(err error) int {
	var sc statusCoder
	if errors.As(err, &sc) {
		return sc.httpStatus()
	}
	return http.StatusInternalServerError
}

// ErrEmailAlreadyExists is returned when registering an email that is taken.
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

func (e *ErrEmailAlreadyExists) httpStatus() int { return http.StatusConflict }

// ErrInvalidCredentials is returned on failed login. The message stays vague
// so it does not reveal whether the email exists.
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string { return "invalid email or password" }

func (e *ErrInvalidCredentials) httpStatus() int { return http.StatusUnauthorized }

// ErrUserNotFound is returned when a user ID resolves to no row.
type ErrUserNotFound struct {
	UserID uuid.UUID
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

func (e *ErrUserNotFound) httpStatus() int { return http.StatusNotFound }

// ErrPasswordMismatch is returned when the supplied current password is wrong.
type ErrPasswordMismatch struct{}

func (e *ErrPasswordMismatch) Error() string { return "current password is incorrect" }

func (e *ErrPasswordMismatch) httpStatus() int { return http.StatusUnauthorized }

// ErrValidation is returned when a request body fails validation.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

func (e *ErrValidation) httpStatus() int { return http.StatusBadRequest }
