package apperror

import (
	"errors"
	"fmt"
)

type Code string

const (
	CodeValidation   Code = "validation"
	CodeNotFound     Code = "not_found"
	CodeConflict     Code = "conflict"
	CodeUnauthorized Code = "unauthorized"
	CodeInternal     Code = "internal"
)

type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf builds an error that carries its own message but still matches base
// with errors.Is.
func Newf(base *Error, format string, args ...any) *Error {
	return &Error{
		Code:    base.Code,
		Message: fmt.Sprintf(format, args...),
		cause:   base,
	}
}

func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

func Validation(message string) *Error {
	return New(CodeValidation, message)
}

func Conflict(message string) *Error {
	return New(CodeConflict, message)
}

func GetCode(err error) Code {
	if err == nil {
		return ""
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}

	return CodeInternal
}

// Message returns the user-facing message for typed errors and a generic one
// for everything else.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Code != CodeInternal {
		return appErr.Message
	}
	return "internal server error"
}
