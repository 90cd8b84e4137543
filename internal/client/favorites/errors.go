package favorites

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindBackend Kind = iota + 1
	KindUnauthorized
	KindInvalid
	KindCorrupt
)

func (k Kind) String() string {
	switch k {
	case KindBackend:
		return "backend"
	case KindUnauthorized:
		return "unauthorized"
	case KindInvalid:
		return "invalid"
	case KindCorrupt:
		return "corrupt"
	default:
		return "unknown"
	}
}

// Error is the failure half of every store operation.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("favorites %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("favorites %s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error by Kind, so errors.Is(err, &Error{Kind: KindCorrupt}) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind && t.Op == "" && t.Err == nil
}

var (
	ErrInvalidEntry = errors.New("invalid favorite entry")
	ErrInvalidPage  = errors.New("page and page size must be positive")
)

// KindOf returns the Kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return 0
}

func newError(kind Kind, op string, err error) error {
	return &Error{Kind: kind, Op: op, Err: err}
}
