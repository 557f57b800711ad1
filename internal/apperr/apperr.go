// Package apperr defines the error taxonomy shared by every layer.
// Errors are tagged with a Kind where they occur; translation to an
// HTTP status happens once, at the router's error handler.
package apperr

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

type Kind int

const (
	BadRequest Kind = iota + 1
	Conflict
	Unauthenticated
	NotFound
	UploadFailed
	DeleteFailed
	Internal
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
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

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf reports the Kind carried by err, or Internal when err is not
// a tagged error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// MessageOf returns the client-facing message for err. Untagged errors
// deliberately collapse to a generic message so internals never leak.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Internal server error"
}

// Status maps a Kind to its HTTP status. Conflict maps to 400, not
// 409: duplicate registration is reported as a plain bad request.
func (k Kind) Status() int {
	switch k {
	case BadRequest, Conflict:
		return fiber.StatusBadRequest
	case Unauthenticated:
		return fiber.StatusUnauthorized
	case NotFound:
		return fiber.StatusNotFound
	case UploadFailed, DeleteFailed:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
