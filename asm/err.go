package asm

import (
	"errors"

	"github.com/ezrec/asm8/token"
	"github.com/ezrec/asm8/translate"
)

var f = translate.From

var (
	// Assembler errors
	ErrTreeBroken      = errors.New(f("tree has errors"))
	ErrOpcodeMissing   = errors.New(f("no opcode for addressing mode"))
	ErrOperandMissing  = errors.New(f("operand missing"))
	ErrLabelUnresolved = errors.New(f("label address unresolved"))
	ErrBranchRange     = errors.New(f("branch target out of range"))
	ErrValueRange      = errors.New(f("value does not fit"))
	ErrSymbolUnknown   = errors.New(f("symbolic constant unknown"))
)

// ErrAssemble is an error encoding one node.
type ErrAssemble struct {
	Loc  token.Location
	Text string
	Err  error
}

func (err *ErrAssemble) Error() string {
	return f("%v: %v '%v'", err.Loc, err.Err, err.Text)
}

func (err *ErrAssemble) Unwrap() error {
	return err.Err
}
