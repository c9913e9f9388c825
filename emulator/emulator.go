// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator drives the execution engine over an assembled program:
// it loads the image, steps it, maps the program counter back to source
// and stops at breakpoints.
package emulator

import (
	"fmt"
	"iter"
	"log"
	"maps"
	"slices"

	"github.com/ezrec/asm8/asm"
	"github.com/ezrec/asm8/cpu"
	"github.com/ezrec/asm8/internal"
	"github.com/ezrec/asm8/isa"
	"github.com/ezrec/asm8/token"
)

// Emulator state. CPU + the program it runs.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *asm.Program // Reference to the currently running program.

	breakpoints map[uint64]bool
}

// NewEmulator creates a new emulator for an architecture.
func NewEmulator(arch *isa.Architecture, behaviour cpu.Behaviour) (emu *Emulator) {
	emu = &Emulator{
		Cpu:         cpu.NewCpu(arch, behaviour),
		breakpoints: map[uint64]bool{},
	}

	return
}

// Defines returns an iterator over the equates a hosted program may use.
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	text := func(seq iter.Seq2[string, uint64]) iter.Seq2[string, string] {
		return func(yield func(string, string) bool) {
			for name, value := range seq {
				if !yield(name, fmt.Sprintf("%d", value)) {
					return
				}
			}
		}
	}

	memory := map[string]uint64{
		"MEMORY_SIZE": uint64(emu.Cpu.Mem.Size()),
	}

	return internal.Concat2(text(maps.All(memory)), text(maps.All(emu.Cpu.Arch.Equates)))
}

// Reset loads the program image into memory and resets the CPU to the
// program entry.
func (emu *Emulator) Reset() (err error) {
	prog := emu.Program
	if prog == nil {
		err = ErrNoProgram
		return
	}

	mem := emu.Cpu.Mem
	mem.Clear()
	for addr := range prog.Map {
		mem.Write(addr, prog.Mem.Read(addr))
		mem.SetMark(addr, prog.Mem.Mark(addr))
	}

	emu.Cpu.Verbose = emu.Verbose

	err = emu.Cpu.Reset(prog.Entry)
	if err != nil {
		return
	}

	if emu.Verbose {
		log.Printf("emulator: reset, %d bytes, entry $%04X", len(prog.Map), prog.Entry)
	}

	return
}

// Steps returns the total instructions executed since a reset.
func (emu *Emulator) Steps() int {
	return emu.Cpu.Steps
}

// Debug returns the transcript row at the program counter.
func (emu *Emulator) Debug() asm.Debug {
	if emu.Program == nil {
		return asm.Debug{}
	}
	return emu.Program.Debug(emu.Cpu.PC())
}

// Loc returns the source location of the executing instruction.
func (emu *Emulator) Loc() (loc token.Location) {
	if emu.Program != nil {
		loc, _ = emu.Program.Map.Lookup(emu.Cpu.PC())
	}
	return
}

// LineNo returns the current line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	return emu.Loc().Line
}

// executable returns true if an address starts an assembled instruction.
func (emu *Emulator) executable(addr uint64) bool {
	if emu.Program == nil {
		return false
	}
	dbg := emu.Program.Debug(addr)
	return dbg.Row != nil && dbg.Mode != nil && dbg.Index == 0
}

// Tick performs a single instruction. It is done once the program counter
// leaves the assembled instructions, as a BRK into an empty vector does.
func (emu *Emulator) Tick() (done bool, err error) {
	emu.Cpu.Verbose = emu.Verbose

	if !emu.executable(emu.Cpu.PC()) {
		done = true
		return
	}

	loc := emu.Loc()
	defer func() {
		if err != nil {
			err = &ErrRuntime{Loc: loc, Err: err}
		}
	}()

	err = emu.Cpu.Step()
	if err != nil {
		return
	}

	done = !emu.executable(emu.Cpu.PC())
	return
}

// Run ticks until done, a breakpoint, or limit instructions; a limit of
// zero or less runs unbounded. The instruction at the starting address
// always executes, so Run resumes from a breakpoint.
func (emu *Emulator) Run(limit int) (done bool, err error) {
	for steps := 0; ; steps++ {
		if limit > 0 && steps >= limit {
			err = ErrStepLimit
			return
		}
		if steps > 0 && emu.breakpoints[emu.Cpu.PC()] {
			err = ErrBreakpoint
			return
		}
		done, err = emu.Tick()
		if done || err != nil {
			return
		}
	}
}

// SetBreakpoint stops Run before executing an address.
func (emu *Emulator) SetBreakpoint(addr uint64) {
	emu.breakpoints[addr&emu.Cpu.Arch.AddressMask()] = true
}

// SetLineBreakpoint stops Run before the first instruction of a source line.
func (emu *Emulator) SetLineBreakpoint(file string, line int) (err error) {
	if emu.Program == nil {
		err = ErrNoProgram
		return
	}
	for _, addr := range emu.Program.Map.Addresses(file, line) {
		if emu.executable(addr) {
			emu.SetBreakpoint(addr)
			return
		}
	}
	err = ErrUnassembled
	return
}

// ClearBreakpoint removes a breakpoint.
func (emu *Emulator) ClearBreakpoint(addr uint64) {
	delete(emu.breakpoints, addr)
}

// Breakpoints returns the breakpoint addresses in order.
func (emu *Emulator) Breakpoints() []uint64 {
	return slices.Sorted(maps.Keys(emu.breakpoints))
}
