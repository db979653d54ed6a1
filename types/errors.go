package types

import (
	"context"
	"errors"
)

// Category classifies a device pipeline failure
type Category string

const (
	CategoryNone          Category = ""
	CategoryTransport     Category = "transport"
	CategoryEmptyOutput   Category = "empty_output"
	CategoryParseMismatch Category = "parse_mismatch"
	CategoryPersistence   Category = "persistence"
)

var (
	// ErrTransport covers connect, authentication, timeout and rejected commands
	ErrTransport = errors.New("transport failure")

	// ErrEmptyOutput means the command ran but returned no usable lines
	ErrEmptyOutput = errors.New("empty output")

	// ErrParseMismatch means the output did not fit the expected grammar
	ErrParseMismatch = errors.New("parse mismatch")

	// ErrPersistence means a record could not be written
	ErrPersistence = errors.New("persistence failure")
)

// Classify maps an error to its category.
// Unknown errors and context cancellation are treated as transport failures.
func Classify(err error) Category {
	switch {
	case err == nil:
		return CategoryNone
	case errors.Is(err, ErrEmptyOutput):
		return CategoryEmptyOutput
	case errors.Is(err, ErrParseMismatch):
		return CategoryParseMismatch
	case errors.Is(err, ErrPersistence):
		return CategoryPersistence
	case errors.Is(err, ErrTransport),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return CategoryTransport
	default:
		return CategoryTransport
	}
}
