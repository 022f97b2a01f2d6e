// internal/errors/errors.go
package appErrors

import (
    "errors"
    "fmt"
)

// InvalidInputError covers bad caller input: empty variant lists, missing
// instruction fields, malformed request bodies.
type InvalidInputError struct {
    Reason string
}

func (e *InvalidInputError) Error() string {
    return fmt.Sprintf("invalid input: %s", e.Reason)
}

func NewInvalidInput(format string, args ...any) error {
    return &InvalidInputError{Reason: fmt.Sprintf(format, args...)}
}

// NotFoundError covers lookups by unknown task/A-B-test/campaign id.
// Absence is a normal outcome, never retried.
type NotFoundError struct {
    Kind string
    ID   string
}

func (e *NotFoundError) Error() string {
    return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

func NewNotFound(kind, id string) error {
    return &NotFoundError{Kind: kind, ID: id}
}

// UpstreamError wraps a failure from the analysis or generation collaborator.
// It aborts the remaining pipeline stages.
type UpstreamError struct {
    Stage string
    Err   error
}

func (e *UpstreamError) Error() string {
    return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func NewUpstream(stage string, err error) error {
    return &UpstreamError{Stage: stage, Err: err}
}

// PersistenceError wraps a store write failure. The orchestration boundary
// logs and swallows it; durability is best-effort relative to the response.
type PersistenceError struct {
    Op  string
    Err error
}

func (e *PersistenceError) Error() string {
    return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func NewPersistence(op string, err error) error {
    return &PersistenceError{Op: op, Err: err}
}

func IsInvalidInput(err error) bool {
    var e *InvalidInputError
    return errors.As(err, &e)
}

func IsNotFound(err error) bool {
    var e *NotFoundError
    return errors.As(err, &e)
}

func IsUpstream(err error) bool {
    var e *UpstreamError
    return errors.As(err, &e)
}
