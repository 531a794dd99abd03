package poll

import (
	"errors"
	"fmt"
)

// Kind tags the outcome of one poll cycle.
type Kind int

const (
	KindCollection Kind = iota // non-empty collection
	KindEmpty                  // well-formed, zero records
	KindFailure                // see Result.Reason
)

func (k Kind) String() string {
	switch k {
	case KindCollection:
		return "collection"
	case KindEmpty:
		return "empty"
	case KindFailure:
		return "failure"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// FailureReason classifies a failed cycle.
type FailureReason int

const (
	FailureNone      FailureReason = iota
	FailureTransport               // network, timeout, non-2xx status
	FailureShape                   // response was not the expected collection
)

func (r FailureReason) String() string {
	switch r {
	case FailureNone:
		return "none"
	case FailureTransport:
		return "transport"
	case FailureShape:
		return "shape"
	default:
		return fmt.Sprintf("reason(%d)", int(r))
	}
}

// ErrShape marks errors caused by a response that is not shaped like the
// expected collection. Fetchers wrap it so Classify can tell it apart from
// transport failures.
var ErrShape = errors.New("unexpected response shape")

// Result is the tagged outcome of a fetch.
type Result[T any] struct {
	Kind   Kind
	Items  []T
	Reason FailureReason
	Err    error
}

// Collection returns a success result. A zero-length collection is tagged
// KindEmpty.
func Collection[T any](items []T) Result[T] {
	if len(items) == 0 {
		return Empty[T]()
	}
	return Result[T]{Kind: KindCollection, Items: items}
}

// Empty returns a successful result with no records.
func Empty[T any]() Result[T] {
	return Result[T]{Kind: KindEmpty, Items: []T{}}
}

// Failure returns a failed result.
func Failure[T any](reason FailureReason, err error) Result[T] {
	return Result[T]{Kind: KindFailure, Reason: reason, Err: err}
}

// Classify turns a plain (items, err) pair into a tagged result. Errors that
// wrap ErrShape are shape failures; every other error is a transport failure.
func Classify[T any](items []T, err error) Result[T] {
	switch {
	case err == nil:
		return Collection(items)
	case errors.Is(err, ErrShape):
		return Failure[T](FailureShape, err)
	default:
		return Failure[T](FailureTransport, err)
	}
}

// FetchError is the failure published by a source. Message is the text a
// view shows; Err keeps the underlying cause for logs.
type FetchError struct {
	Source  string
	Reason  FailureReason
	Message string
	Err     error
}

func (e *FetchError) Error() string { return e.Message }

func (e *FetchError) Unwrap() error { return e.Err }
