// Package rerr provides structured, code-tagged errors shared across the
// ECS runtime and the dungeon generation pipeline: a stable Code plus a
// human message and an optional wrapped cause.
package rerr

import "fmt"

// Code identifies the category of failure. Codes are stable strings so
// callers (including non-Go bindings that exchange the share-code/trace
// wire format) can switch on them without depending on message text.
type Code string

const (
	// Config / seed errors.
	CodeConfigInvalid           Code = "CONFIG_INVALID"
	CodeConfigDimensionTooSmall Code = "CONFIG_DIMENSION_TOO_SMALL"
	CodeConfigDimensionTooLarge Code = "CONFIG_DIMENSION_TOO_LARGE"
	CodeConfigRoomSizeInvalid   Code = "CONFIG_ROOM_SIZE_INVALID"
	CodeSeedDecodeFailed        Code = "SEED_DECODE_FAILED"

	// Generation errors.
	CodeGenerationFailed    Code = "GENERATION_FAILED"
	CodeRoomPlacementFailed Code = "ROOM_PLACEMENT_FAILED"
	CodePathConnectionFailed Code = "PATH_CONNECTION_FAILED"

	// Pipeline errors.
	CodePipelineFailed Code = "PIPELINE_FAILED"

	// Relation errors.
	CodeSelfParent    Code = "SELF_PARENT"
	CodeCycleDetected Code = "CYCLE_DETECTED"

	// Capacity errors — fatal, no recovery.
	CodeCapacityExceeded Code = "CAPACITY_EXCEEDED"
)

// Error is a code-tagged error with an optional wrapped cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "rerr: nil error"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the wrapped cause to errors.Is/errors.As.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// New creates an Error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an Error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error that wraps cause under the given code and message.
// Returns nil if cause is nil.
func Wrap(cause error, code Code, message string) *Error {
	if cause == nil {
		return nil
	}
	return &Error{Code: code, Message: message, Cause: cause}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(cause error, code Code, format string, args ...any) *Error {
	if cause == nil {
		return nil
	}
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether err is an *Error carrying the given code. It walks
// the unwrap chain, so a wrapped Error is still matched by its own code.
func Is(err error, code Code) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			if e.Code == code {
				return true
			}
			err = e.Cause
			continue
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
