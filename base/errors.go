package base

import (
	"fmt"

	"github.com/pkg/errors"
)

type ErrorKind int

const (
	FormatError ErrorKind = iota
	UnsupportedOpcode
	RangeError
	OverflowError
	NumericError
	IOError
)

var errorKindNames = map[ErrorKind]string{
	FormatError:       "format error",
	UnsupportedOpcode: "unsupported opcode",
	RangeError:        "range error",
	OverflowError:     "overflow",
	NumericError:      "numeric error",
	IOError:           "I/O error",
}

func (k ErrorKind) String() string {
	name, found := errorKindNames[k]
	if !found {
		return fmt.Sprintf("error kind %d", int(k))
	}
	return name
}

// Error is the one error type returned by the conversion core. Every
// error is fatal for the run that produced it.
type Error struct {
	Kind   ErrorKind
	Line   int32 // 1-based script line, zero if not applicable
	Opcode int   // Offending VGM opcode, -1 if not applicable
	Msg    string
	cause  error
}

func (e *Error) Error() string {
	msg := e.Kind.String() + ": " + e.Msg
	if e.Line > 0 {
		msg += fmt.Sprintf(" (line %d)", e.Line)
	}
	if e.Opcode >= 0 {
		msg += fmt.Sprintf(" (opcode 0x%02x)", e.Opcode)
	}
	if e.cause != nil {
		msg += ": " + e.cause.Error()
	}
	return msg
}

func (e *Error) Cause() error  { return e.cause }
func (e *Error) Unwrap() error { return e.cause }

func Errorf(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Opcode: -1, Msg: fmt.Sprintf(format, args...)}
}

func LineErrorf(kind ErrorKind, line int32, format string, args ...interface{}) *Error {
	e := Errorf(kind, format, args...)
	e.Line = line
	return e
}

func OpcodeError(opcode byte) *Error {
	e := Errorf(UnsupportedOpcode, "unsupported VGM opcode")
	e.Opcode = int(opcode)
	return e
}

// Attaches a script line number to a core error that has none.
func AtLine(err error, line int32) error {
	var e *Error
	if errors.As(err, &e) && e.Line == 0 {
		e.Line = line
	}
	return err
}

// Wraps a read/write/seek failure as an IOError. A nil error gives nil.
func WrapIO(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	e := Errorf(IOError, format, args...)
	e.cause = errors.WithStack(err)
	return e
}

// Returns the kind of a core error, looking through any wrapping.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

func IsKind(err error, kind ErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
