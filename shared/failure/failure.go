// Package failure carries errors that map onto HTTP status codes. Anything
// that is not a *Failure is treated as an internal error by GetCode and its
// text is kept out of responses.
package failure

import (
	"errors"
	"net/http"
)

const internalMessage = "internal server error"

type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var ForbiddenError = New(http.StatusForbidden, "You don't have the required permissions")

func New(code int, message string) *Failure {
	return &Failure{Code: code, Message: message}
}

func (e *Failure) Error() string {
	return e.Message
}

// Is matches failures by code and message so wrapped sentinels still compare.
func (e *Failure) Is(target error) bool {
	var other *Failure
	if !errors.As(target, &other) {
		return false
	}

	return e.Code == other.Code && e.Message == other.Message
}

// BadRequest wraps a validation error. A nil error stays nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return New(http.StatusBadRequest, err.Error())
}

func BadRequestFromString(msg string) error {
	return New(http.StatusBadRequest, msg)
}

func Unauthorized(msg string) error {
	return New(http.StatusUnauthorized, msg)
}

func Forbidden(msg string) error {
	return New(http.StatusForbidden, msg)
}

func NotFound(msg string) error {
	return New(http.StatusNotFound, msg)
}

func Conflict(msg string) error {
	return New(http.StatusConflict, msg)
}

// UnprocessableEntity is used when the request is well formed but the entity
// is in a state that does not allow the operation.
func UnprocessableEntity(msg string) error {
	return New(http.StatusUnprocessableEntity, msg)
}

// MultiStatus reports a batch where only some items succeeded.
func MultiStatus(msg string) error {
	return New(http.StatusMultiStatus, msg)
}

func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// PublicMessage is the text safe to show a client for err.
func PublicMessage(err error) string {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Message
	}

	return internalMessage
}
