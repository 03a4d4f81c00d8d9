package marker

import (
	"errors"
	"fmt"
)

// Kind classifies a failure. Every kind is fatal at the CLI.
type Kind int

const (
	// KindIO covers filesystem reads, writes and stats.
	KindIO Kind = iota + 1
	// KindExec covers failure to replace the process with the editor.
	KindExec
	// KindClock covers modification times that cannot be compared to now.
	KindClock
)

// Sentinels matched by errors.Is against an *Error of the same kind.
var (
	ErrIO    = errors.New("filesystem error")
	ErrExec  = errors.New("exec error")
	ErrClock = errors.New("clock error")
)

func (k Kind) sentinel() error {
	switch k {
	case KindIO:
		return ErrIO
	case KindExec:
		return ErrExec
	case KindClock:
		return ErrClock
	default:
		return nil
	}
}

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindExec:
		return "exec"
	case KindClock:
		return "clock"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error records the operation and path that failed.
type Error struct {
	Kind Kind
	Op   string
	Path string
	Err  error
}

// NewError wraps err with kind, op and path.
func NewError(kind Kind, op, path string, err error) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}

func (e *Error) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel for e.Kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

func ioError(op, path string, err error) error {
	return NewError(KindIO, op, path, err)
}
