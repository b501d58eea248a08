package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
)

// NotFound builds a not-found error for one entity.
func NotFound(entity string, id int64) error {
	return fmt.Errorf("%s %d: %w", entity, id, ErrNotFound)
}

// ValidationError reports a caller input that cannot be used.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Invalid wraps an arbitrary validation failure (e.g. ozzo errors).
func Invalid(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrValidation, err)
}

// BackendError is a non-success response reported by the data backend.
type BackendError struct {
	Op      string
	Table   string
	Message string
}

func (e *BackendError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "request failed"
	}
	return fmt.Sprintf("backend %s %s: %s", e.Op, e.Table, msg)
}

type RecordFailure struct {
	Index   int    `json:"index"`
	Message string `json:"message"`
}

// BatchError is returned when one or more records of a multi-record call
// failed. Failures holds all of them; Error() leads with the first.
type BatchError struct {
	Op        string
	Table     string
	Total     int
	Failures  []RecordFailure
	Succeeded []Record
}

func (e *BatchError) Error() string {
	first := e.Failures[0]
	msg := first.Message
	if msg == "" {
		msg = e.Op + " failed"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s: record %d of %d: %s", e.Op, e.Table, first.Index+1, e.Total, msg)
	if n := len(e.Failures) - 1; n > 0 {
		fmt.Fprintf(&b, " (and %d more)", n)
	}
	return b.String()
}
