package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a failure for translation at the HTTP boundary.
type Kind int

const (
	// KindNotFound: the requested resource does not exist (404).
	KindNotFound Kind = iota + 1
	// KindPool: no connection could be acquired from the pool (500, message in body).
	KindPool
	// KindQuery: a statement failed to prepare or execute (500).
	KindQuery
	// KindMapping: a row could not be converted into an entity (500).
	KindMapping
)

// String returns a stable, log-friendly name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindPool:
		return "pool_error"
	case KindQuery:
		return "query_error"
	case KindMapping:
		return "mapping_error"
	default:
		return "unknown"
	}
}

// Error is the single error type produced by the data access layer.
// Op names the failing operation (e.g. "list.create"); Err is the cause.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Err == nil && e.Op == "":
		return e.Kind.String()
	case e.Err == nil:
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	case e.Op == "":
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// ErrNotFound is the canonical not-found error; compare with errors.Is.
var ErrNotFound = &Error{Kind: KindNotFound}

// Is matches any *Error of the same kind when the target carries no cause,
// so errors.Is(err, ErrNotFound) works for wrapped not-found errors.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Err == nil && t.Op == "" && t.Kind == e.Kind
}

// NotFound returns a not-found error for op.
func NotFound(op string) error {
	return &Error{Kind: KindNotFound, Op: op}
}

// PoolError wraps a connection acquisition failure.
func PoolError(err error) error {
	return &Error{Kind: KindPool, Op: "pool.acquire", Err: err}
}

// QueryError wraps a failed statement.
func QueryError(op string, err error) error {
	return &Error{Kind: KindQuery, Op: op, Err: err}
}

// MappingError wraps a row that could not be scanned into an entity.
func MappingError(op string, err error) error {
	return &Error{Kind: KindMapping, Op: op, Err: err}
}

// KindOf reports the kind of err, or 0 when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsKind reports whether err (or anything it wraps) is an *Error of kind k.
func IsKind(err error, k Kind) bool {
	return KindOf(err) == k
}
