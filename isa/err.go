package isa

import (
	"github.com/ezrec/asm8/translate"
)

var f = translate.From

// ErrMnemonicUnknown is an instruction name not in the table.
type ErrMnemonicUnknown string

func (err ErrMnemonicUnknown) Error() string {
	return f("unknown mnemonic '%v'", string(err))
}

// ErrMnemonicDuplicate is a mnemonic defined twice in a table.
type ErrMnemonicDuplicate string

func (err ErrMnemonicDuplicate) Error() string {
	return f("mnemonic %v defined twice", string(err))
}

// ErrModeInvalid is an operand no addressing mode of the mnemonic accepts.
type ErrModeInvalid struct {
	Mnemonic string
	Operand  string
}

func (err *ErrModeInvalid) Error() string {
	if len(err.Operand) == 0 {
		return f("%v requires an operand", err.Mnemonic)
	}
	return f("%v does not accept operand '%v'", err.Mnemonic, err.Operand)
}

// ErrModeUnknown is a table entry for a mode the architecture does not list.
type ErrModeUnknown struct {
	Mnemonic string
	Mode     string
}

func (err *ErrModeUnknown) Error() string {
	return f("%v uses unlisted addressing mode %v", err.Mnemonic, err.Mode)
}

// ErrOpcodeDuplicate is an opcode assigned to two table entries.
type ErrOpcodeDuplicate struct {
	Opcode byte
	First  Entry
	Second Entry
}

func (err *ErrOpcodeDuplicate) Error() string {
	return f("opcode $%02X used by both %v and %v", err.Opcode, err.First, err.Second)
}
