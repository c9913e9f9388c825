// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/ezrec/asm8/isa"
)

// Operand is what an addressing mode resolved for an instruction.
type Operand struct {
	Raw        uint64 // Encoded operand bytes.
	Value      uint64 // Operand value.
	HasValue   bool
	Address    uint64 // Effective address.
	HasAddress bool
}

// Load returns the operand value.
func (op Operand) Load() (value uint64, err error) {
	if !op.HasValue {
		err = ErrOperandMissing
		return
	}
	value = op.Value
	return
}

// Target returns the effective address.
func (op Operand) Target() (addr uint64, err error) {
	if !op.HasAddress {
		err = ErrAddressMissing
		return
	}
	addr = op.Address
	return
}

// Behaviour is the architecture specific half of the engine.
type Behaviour interface {
	// Required registers, checked before every step.
	Required() []string
	// Reset puts the registers in their power-on state.
	Reset(cpu *Cpu)
	// Resolve computes the operand of an instruction at pc.
	Resolve(cpu *Cpu, mode *isa.Mode, raw uint64, pc uint64) (op Operand, err error)
	// Execute runs the semantic routine of an instruction at pc. Routines
	// that set the program counter return the next address and jumped.
	Execute(cpu *Cpu, entry isa.Entry, op Operand, pc uint64) (next uint64, jumped bool, err error)
}

// Cpu is the fetch-decode-execute engine.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Arch      *isa.Architecture
	Behaviour Behaviour
	Regs      *RegisterFile
	Mem       *Memory

	Steps int // Instructions executed since reset.

	reset bool
	fault error
}

// NewCpu creates an engine with the registers and memory of an architecture.
func NewCpu(arch *isa.Architecture, behaviour Behaviour) (cpu *Cpu) {
	cpu = &Cpu{
		Arch:      arch,
		Behaviour: behaviour,
		Regs:      NewRegisterFile(arch.Registers),
		Mem:       NewMemory(arch.AddressWidth, arch.ByteOrder),
	}

	return
}

// Configure installs a register file, clearing any fault. The engine must be
// reset again before stepping.
func (cpu *Cpu) Configure(regs *RegisterFile) {
	cpu.Regs = regs
	cpu.fault = nil
	cpu.reset = false
}

// Fault is the latched configuration error, if any.
func (cpu *Cpu) Fault() error {
	return cpu.fault
}

// Register gets a register by name.
func (cpu *Cpu) Register(name string) (reg *Register, err error) {
	reg, ok := cpu.Regs.Get(name)
	if !ok {
		err = ErrRegisterMissing(name)
	}
	return
}

// Flag reads a status flag.
func (cpu *Cpu) Flag(flag string) (set bool, err error) {
	status, ok := cpu.Regs.Status()
	if !ok {
		err = ErrNoStatus
		return
	}
	return status.Flag(flag)
}

// SetFlag writes a status flag.
func (cpu *Cpu) SetFlag(flag string, set bool) (err error) {
	status, ok := cpu.Regs.Status()
	if !ok {
		err = ErrNoStatus
		return
	}
	return status.SetFlag(flag, set)
}

// PC returns the program counter.
func (cpu *Cpu) PC() uint64 {
	reg, ok := cpu.Regs.Get(cpu.Arch.PC)
	if !ok {
		return 0
	}
	return reg.Value
}

// String returns the current register state as a string.
func (cpu *Cpu) String() (text string) {
	for reg := range cpu.Regs.All() {
		digits := (reg.Width + 3) / 4
		text += fmt.Sprintf("% 5s: %0*X", reg.Name, digits, reg.Value)
		if len(reg.Flags) != 0 {
			var flags strings.Builder
			for bit := len(reg.Flags) - 1; bit >= 0; bit-- {
				name := reg.Flags[bit]
				switch {
				case len(name) == 0:
					flags.WriteByte('-')
				case (reg.Value>>bit)&1 == 1:
					flags.WriteString(strings.ToUpper(name))
				default:
					flags.WriteString(strings.ToLower(name))
				}
			}
			text += " " + flags.String()
		}
		text += "\n"
	}

	return
}

// check latches a fault if a required register is missing.
func (cpu *Cpu) check() (err error) {
	required := append([]string{cpu.Arch.PC}, cpu.Behaviour.Required()...)
	for _, name := range required {
		_, err = cpu.Register(name)
		if err != nil {
			cpu.fault = err
			return
		}
	}
	return
}

// Reset clears the registers and sets the program counter to entry, which
// must be an address assigned by an assembly.
func (cpu *Cpu) Reset(entry uint64) (err error) {
	if cpu.Verbose {
		log.Printf("cpu: reset to $%04X", entry)
	}

	err = cpu.check()
	if err != nil {
		return
	}

	cpu.Regs.Clear()
	cpu.Behaviour.Reset(cpu)
	pc, _ := cpu.Register(cpu.Arch.PC)
	pc.Set(entry)
	cpu.Steps = 0
	cpu.reset = true

	return
}

// Step executes one instruction. A missing register latches a fault and
// the engine refuses to step until reconfigured. Any other error aborts
// only the current instruction: the program counter is not advanced, and
// writes the routine made before failing are kept.
func (cpu *Cpu) Step() (err error) {
	if cpu.fault != nil {
		err = errors.Join(ErrHalted, cpu.fault)
		return
	}

	if !cpu.reset {
		err = ErrNotReset
		return
	}

	err = cpu.check()
	if err != nil {
		return
	}

	pcReg, _ := cpu.Register(cpu.Arch.PC)
	pc := pcReg.Value

	opcode := cpu.Mem.Read(pc)
	entry, ok := cpu.Arch.Table.Decode(opcode)
	if !ok {
		err = &ErrOpcodeUnknown{Address: pc, Opcode: opcode}
		return
	}

	var raw uint64
	if size := entry.Mode.OperandSize(); size > 0 {
		raw = cpu.Mem.ReadWord(pc+1, size)
	}

	op, err := cpu.Behaviour.Resolve(cpu, entry.Mode, raw, pc)
	if err != nil {
		return
	}

	if cpu.Verbose {
		log.Printf("cpu: $%04X %v %v", pc, entry.Mnemonic, entry.Mode.Render(raw, pc+uint64(entry.Length()), cpu.Arch.AddressMask()))
	}

	next, jumped, err := cpu.Behaviour.Execute(cpu, entry, op, pc)
	if err != nil {
		return
	}

	if !jumped {
		next = pc + uint64(entry.Length())
	}
	pcReg.Set(next & cpu.Arch.AddressMask())
	cpu.Steps++

	return
}
