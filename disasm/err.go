package disasm

import (
	"errors"

	"github.com/ezrec/asm8/translate"
)

var f = translate.From

var (
	// Disassembler errors
	ErrOpcodeUnknown = errors.New(f("unknown opcode"))
	ErrTruncated     = errors.New(f("instruction runs past end"))
)

// ErrDecode is the address where disassembly halted.
type ErrDecode struct {
	Address uint64
	Opcode  byte
	Err     error
}

func (err *ErrDecode) Error() string {
	return f("$%04X: opcode $%02X: %v", err.Address, err.Opcode, err.Err)
}

func (err *ErrDecode) Unwrap() error {
	return err.Err
}
