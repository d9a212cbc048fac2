// Failure kinds of a training run.
//
// Usage:
//
// ```
// return xerrors.NotFound("load", path, err)
// ...
// if errors.Is(err, xerrors.ErrNotFound) { ... }
// ```
//
// Every *Error carries the operation and whatever diagnostics were known
// when it was raised (path, rows, cols), so an operator can act on the message
// without re-running the job.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound = errors.New("not found")
	ErrRead     = errors.New("read error")
	ErrConfig   = errors.New("config error")
	ErrWrite    = errors.New("write error")
)

type Error struct {
	Kind error
	Op   string
	Path string

	// Rows and Cols are the shape of the batch being handled, -1 when unknown.
	Rows int
	Cols int

	Err error
}

func (e *Error) Error() string {
	b := new(strings.Builder)
	fmt.Fprintf(b, "%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		fmt.Fprintf(b, " (path=%s)", e.Path)
	}
	if e.Rows >= 0 || e.Cols >= 0 {
		fmt.Fprintf(b, " (shape=%d,%d)", e.Rows, e.Cols)
	}
	if e.Err != nil {
		fmt.Fprintf(b, " <- %s", e.Err.Error())
	}
	return b.String()
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

// WithShape returns a copy of e annotated with the batch shape.
func (e *Error) WithShape(rows, cols int) *Error {
	c := *e
	c.Rows, c.Cols = rows, cols
	return &c
}

func newError(kind error, op, path string, err error) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Rows: -1, Cols: -1, Err: err}
}

func NotFound(op, path string, err error) *Error {
	return newError(ErrNotFound, op, path, err)
}

func Read(op, path string, err error) *Error {
	return newError(ErrRead, op, path, err)
}

func Write(op, path string, err error) *Error {
	return newError(ErrWrite, op, path, err)
}

// Config reports a bad setting. format/args describe which one.
func Config(op string, format string, args ...any) *Error {
	return newError(ErrConfig, op, "", fmt.Errorf(format, args...))
}
