package cpu

import (
	"errors"

	"github.com/ezrec/asm8/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrNotReset       = errors.New(f("cpu not reset"))
	ErrHalted         = errors.New(f("cpu halted until reconfigured"))
	ErrNoStatus       = errors.New(f("no status register"))
	ErrOperandMissing = errors.New(f("operand missing"))
	ErrAddressMissing = errors.New(f("effective address missing"))
)

// ErrRegisterMissing is a register the engine needs that is not configured.
type ErrRegisterMissing string

func (err ErrRegisterMissing) Error() string {
	return f("register %v missing", string(err))
}

// ErrFlagMissing is a flag not present in the status register.
type ErrFlagMissing string

func (err ErrFlagMissing) Error() string {
	return f("flag %v missing", string(err))
}

// ErrOpcodeUnknown is an opcode not in the instruction table.
type ErrOpcodeUnknown struct {
	Address uint64
	Opcode  byte
}

func (err *ErrOpcodeUnknown) Error() string {
	return f("unknown opcode $%02X at $%04X", err.Opcode, err.Address)
}

// ErrRoutineMissing is a mnemonic without a semantic routine.
type ErrRoutineMissing string

func (err ErrRoutineMissing) Error() string {
	return f("no routine for %v", string(err))
}
