// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

// Stack is a descending byte stack in memory, addressed by a stack pointer
// register relative to a base address.
type Stack struct {
	Register string // Stack pointer register.
	Base     uint64 // Address of stack pointer zero.
}

func (s Stack) pointer(cpu *Cpu) (sp *Register, err error) {
	return cpu.Register(s.Register)
}

// Push stores a byte at the stack pointer, then decrements it.
func (s Stack) Push(cpu *Cpu, value byte) (err error) {
	sp, err := s.pointer(cpu)
	if err != nil {
		return
	}
	cpu.Mem.Write(s.Base+sp.Value, value)
	sp.Set(sp.Value - 1)
	return
}

// Pull increments the stack pointer, then loads the byte it addresses.
func (s Stack) Pull(cpu *Cpu) (value byte, err error) {
	sp, err := s.pointer(cpu)
	if err != nil {
		return
	}
	sp.Set(sp.Value + 1)
	value = cpu.Mem.Read(s.Base + sp.Value)
	return
}

// Peek loads the byte a Pull would return, without moving the pointer.
func (s Stack) Peek(cpu *Cpu) (value byte, err error) {
	sp, err := s.pointer(cpu)
	if err != nil {
		return
	}
	value = cpu.Mem.Read(s.Base + ((sp.Value + 1) & sp.Mask()))
	return
}

// PushWord pushes a value high byte first, so it reads back in little
// endian order from the stack pointer up.
func (s Stack) PushWord(cpu *Cpu, value uint64, size int) (err error) {
	for n := size - 1; n >= 0; n-- {
		err = s.Push(cpu, byte(value>>(8*n)))
		if err != nil {
			return
		}
	}
	return
}

// PullWord pulls a value pushed by PushWord.
func (s Stack) PullWord(cpu *Cpu, size int) (value uint64, err error) {
	for n := range size {
		var b byte
		b, err = s.Pull(cpu)
		if err != nil {
			return
		}
		value |= uint64(b) << (8 * n)
	}
	return
}
