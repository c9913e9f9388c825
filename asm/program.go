// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"iter"

	"github.com/ezrec/asm8/ast"
	"github.com/ezrec/asm8/cpu"
	"github.com/ezrec/asm8/isa"
	"github.com/ezrec/asm8/listing"
)

// Program is the result of an assembly.
type Program struct {
	Arch       *isa.Architecture
	Tree       *ast.Tree
	Mem        *cpu.Memory
	Transcript listing.Transcript
	Map        listing.AssemblyMap
	Start      uint64 // Lowest assembled address.
	End        uint64 // Address after the highest assembled byte.
	Entry      uint64 // Address of the first instruction.
}

// Debug is the transcript row covering an address.
type Debug struct {
	*listing.Row
	Index int // Byte of the row the address is.
}

// Debug finds the row covering an address; Row is nil if there is none.
func (prog *Program) Debug(addr uint64) (dbg Debug) {
	row, index, ok := prog.Transcript.Find(addr)
	if ok {
		dbg = Debug{Row: row, Index: index}
	}
	return
}

// Binary returns the image between Start and End.
func (prog *Program) Binary() []byte {
	return prog.Mem.Slice(prog.Start, prog.End)
}

// Codes iterates over the assembled bytes of instructions, by address.
func (prog *Program) Codes() iter.Seq2[uint64, byte] {
	return func(yield func(addr uint64, code byte) bool) {
		for _, row := range prog.Transcript.Rows() {
			if row.Mode == nil {
				continue
			}
			for n, b := range row.Bytes {
				if !yield(row.Address+uint64(n), b) {
					return
				}
			}
		}
	}
}

// Contains returns true if an address was assembled.
func (prog *Program) Contains(addr uint64) bool {
	_, ok := prog.Map.Lookup(addr)
	return ok
}
