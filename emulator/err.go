package emulator

import (
	"errors"

	"github.com/ezrec/asm8/token"
	"github.com/ezrec/asm8/translate"
)

var f = translate.From

var (
	// Emulator errors
	ErrNoProgram   = errors.New(f("no program loaded"))
	ErrBreakpoint  = errors.New(f("breakpoint"))
	ErrStepLimit   = errors.New(f("step limit reached"))
	ErrUnassembled = errors.New(f("no code assembled from line"))
)

// ErrRuntime indicates the source location of a runtime error.
type ErrRuntime struct {
	Loc token.Location
	Err error
}

func (err *ErrRuntime) Error() string {
	return f("%v: %v", err.Loc, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
