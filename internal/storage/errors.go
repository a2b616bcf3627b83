// ABOUTME: Error taxonomy shared by every post store implementation.
// ABOUTME: Sentinels for errors.Is plus typed errors that carry caller-facing messages.
package storage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/2389-research/postboard/internal/models"
)

var (
	// ErrPostNotFound reports that no post has the requested id.
	ErrPostNotFound = errors.New("post not found")

	// ErrInvalidArgument reports an unrecognized sort field or direction.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrBadRequest reports a missing or unparseable request body.
	ErrBadRequest = errors.New("bad request")

	// ErrValidation reports missing required fields on create.
	ErrValidation = errors.New("validation failed")
)

// NotFoundError names the id that could not be found.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Post with id %s not found.", e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrPostNotFound }

// NewNotFoundError builds a NotFoundError for an integer id.
func NewNotFoundError(id int) *NotFoundError {
	return &NotFoundError{ID: fmt.Sprintf("%d", id)}
}

// InvalidArgumentError carries the message reported to the caller.
type InvalidArgumentError struct {
	Message string
}

func (e *InvalidArgumentError) Error() string { return e.Message }

func (e *InvalidArgumentError) Unwrap() error { return ErrInvalidArgument }

// BadRequestError carries the message reported to the caller.
type BadRequestError struct {
	Message string
}

func (e *BadRequestError) Error() string { return e.Message }

func (e *BadRequestError) Unwrap() error { return ErrBadRequest }

// ValidationError carries per-field messages.
type ValidationError struct {
	Fields models.FieldErrors
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, key := range []string{"title", "content"} {
		if msg, ok := e.Fields[key]; ok {
			parts = append(parts, msg)
		}
	}
	for key, msg := range e.Fields {
		if key != "title" && key != "content" {
			parts = append(parts, msg)
		}
	}
	return strings.Join(parts, " ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NoInputError is the BadRequest raised when a write has no usable body.
func NoInputError() *BadRequestError {
	return &BadRequestError{Message: "No input data provided"}
}
