// Package outcome carries the expected results of hold and booking
// operations. A rejected operation is a value, not an error: errors are
// reserved for infrastructure failures.
package outcome

import (
	"fmt"

	"innkeep/shared/failure"
)

type Kind string

const (
	KindNone            Kind = ""
	KindNotFound        Kind = "not_found"
	KindConflict        Kind = "conflict"
	KindForbidden       Kind = "forbidden"
	KindInvalidState    Kind = "invalid_state"
	KindValidationError Kind = "validation_error"
	KindPartialFailure  Kind = "partial_failure"
)

type Result struct {
	Success bool   `json:"success"`
	Payload string `json:"payload,omitempty"`
	Reason  string `json:"reason,omitempty"`
	Kind    Kind   `json:"kind,omitempty"`
}

func OK(payload string) Result {
	return Result{Success: true, Payload: payload}
}

func Fail(kind Kind, format string, args ...any) Result {
	return Result{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) Result {
	return Fail(KindNotFound, format, args...)
}

func Conflict(format string, args ...any) Result {
	return Fail(KindConflict, format, args...)
}

// Forbidden rejects a caller that is not the owner of the entity.
func Forbidden(format string, args ...any) Result {
	return Fail(KindForbidden, format, args...)
}

func InvalidState(format string, args ...any) Result {
	return Fail(KindInvalidState, format, args...)
}

func Invalid(format string, args ...any) Result {
	return Fail(KindValidationError, format, args...)
}

// Partial reports a batch that did not fully succeed. The payload keeps the
// identifiers that were created.
func Partial(payload string, format string, args ...any) Result {
	res := Fail(KindPartialFailure, format, args...)
	res.Payload = payload

	return res
}

// Err converts a rejected result into an HTTP-coded failure. Successful
// results return nil.
func (r Result) Err() error {
	if r.Success {
		return nil
	}

	switch r.Kind {
	case KindNotFound:
		return failure.NotFound(r.Reason) //nolint:wrapcheck
	case KindConflict:
		return failure.Conflict(r.Reason) //nolint:wrapcheck
	case KindForbidden:
		return failure.Forbidden(r.Reason) //nolint:wrapcheck
	case KindInvalidState:
		return failure.UnprocessableEntity(r.Reason) //nolint:wrapcheck
	case KindValidationError:
		return failure.BadRequestFromString(r.Reason) //nolint:wrapcheck
	case KindPartialFailure:
		return failure.MultiStatus(r.Reason) //nolint:wrapcheck
	default:
		return failure.UnprocessableEntity(r.Reason) //nolint:wrapcheck
	}
}
