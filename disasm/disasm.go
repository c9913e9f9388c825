// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package disasm walks memory known to contain code and renders it back
// into a transcript, using the same instruction table the assembler
// encodes with.
package disasm

import (
	"log"

	"github.com/ezrec/asm8/cpu"
	"github.com/ezrec/asm8/isa"
	"github.com/ezrec/asm8/listing"
)

// Disassembler decodes instructions from memory.
type Disassembler struct {
	Verbose bool                // If set, logs each decoded instruction.
	Arch    *isa.Architecture   // Architecture whose table decodes.
	Labels  map[uint64][]string // Optional names to attach to rows.
}

// Disassemble decodes [start, end) of memory with an architecture's table.
func Disassemble(arch *isa.Architecture, mem *cpu.Memory, start, end uint64) (listing.Transcript, error) {
	dis := &Disassembler{Arch: arch}
	return dis.Disassemble(mem, start, end)
}

// Disassemble walks forward from start, one instruction at a time. An
// unknown opcode halts the walk; the rows decoded so far are returned with
// the error.
func (dis *Disassembler) Disassemble(mem *cpu.Memory, start, end uint64) (transcript listing.Transcript, err error) {
	mask := dis.Arch.AddressMask()
	for addr := start; addr < end; {
		opcode := mem.Read(addr)
		entry, ok := dis.Arch.Table.Decode(opcode)
		if !ok {
			err = &ErrDecode{Address: addr, Opcode: opcode, Err: ErrOpcodeUnknown}
			return
		}

		length := uint64(entry.Mode.Length)
		if addr+length > end {
			err = &ErrDecode{Address: addr, Opcode: opcode, Err: ErrTruncated}
			return
		}

		code := mem.Slice(addr, addr+length)
		raw := dis.Arch.Decode(code[1:])
		next := (addr + length) & mask

		row := listing.Row{
			Address:  addr,
			Labels:   dis.Labels[addr],
			Mnemonic: entry.Mnemonic,
			Mode:     entry.Mode,
			Operand:  entry.Mode.Render(raw, next, mask),
			Bytes:    code,
		}
		if dis.Verbose {
			log.Printf("disasm: $%04X: %v", addr, row.Text())
		}
		transcript = transcript.Append(row)

		addr += length
	}

	return
}
