package wsmfs

import (
	"errors"
	"fmt"

	"github.com/jcd386/WSM-File-System/pkg/tree"
)

// ErrorKind categorizes service failures so the HTTP boundary can turn any
// error into a uniform outcome. Callers of the service react to the kind,
// never to raw store errors.
type ErrorKind string

const (
	// ErrorValidation marks a rejected input: empty or over-long name,
	// forbidden characters, missing anchor.
	ErrorValidation ErrorKind = "ValidationError"
	// ErrorNotFound marks a reference to an id that does not exist.
	ErrorNotFound ErrorKind = "NotFoundError"
	// ErrorCycle marks a move that would make a node its own descendant,
	// including the no-op self-move.
	ErrorCycle ErrorKind = "CycleError"
	// ErrorStructural marks a traversal that exceeded the depth bound,
	// which signals pre-existing corruption rather than a bad request.
	ErrorStructural ErrorKind = "StructuralError"
	// ErrorInternal covers store and transport failures.
	ErrorInternal ErrorKind = "InternalError"
)

// Error is the service's error type. Validation and structural checks run
// before any mutation, so an operation that fails with one of these kinds is
// guaranteed to have left the store unchanged (template application is the
// documented exception, see ApplyTemplate).
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func validationError(format string, args ...any) *Error {
	return &Error{Kind: ErrorValidation, Message: fmt.Sprintf(format, args...)}
}

func notFoundError(format string, args ...any) *Error {
	return &Error{Kind: ErrorNotFound, Message: fmt.Sprintf(format, args...)}
}

func cycleError(format string, args ...any) *Error {
	return &Error{Kind: ErrorCycle, Message: fmt.Sprintf(format, args...)}
}

func structuralError(err error) *Error {
	return &Error{Kind: ErrorStructural, Message: "tree traversal exceeded safety depth", Err: err}
}

// wrapWalkErr converts tree-engine failures into service errors. A depth
// overrun becomes a StructuralError; anything else is a store failure.
func wrapWalkErr(err error) error {
	if errors.Is(err, tree.ErrDepthExceeded) {
		return structuralError(err)
	}
	return err
}

// KindOf extracts the error kind, defaulting to ErrorInternal for raw store
// or transport errors.
func KindOf(err error) ErrorKind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return ErrorInternal
}
