package dossier

import (
	"errors"
	"fmt"
)

// FatalError is raised (as a panic value) for content bugs, resource
// exhaustion and blitter precondition violations. None of these are
// recoverable; Engine.Run catches the panic, tears everything down and
// returns the error.
type FatalError struct {
	Msg string
}

func (e *FatalError) Error() string { return e.Msg }

// fatal raises a FatalError.
func fatal(msg string) {
	panic(&FatalError{Msg: msg})
}

// fatalf raises a formatted FatalError.
func fatalf(format string, args ...any) {
	panic(&FatalError{Msg: fmt.Sprintf(format, args...)})
}

// assert raises "Assertion failed" when v is false.
func assert(v bool) {
	if !v {
		fatal("Assertion failed")
	}
}

// CatchFatal runs fn and converts a FatalError panic into a returned error.
// Any other panic propagates.
func CatchFatal(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fe, ok := r.(*FatalError)
			if !ok {
				panic(r)
			}
			err = fe
		}
	}()
	fn()
	return nil
}

// IsFatal reports whether err is, or wraps, a FatalError.
func IsFatal(err error) bool {
	var fe *FatalError
	return errors.As(err, &fe)
}
