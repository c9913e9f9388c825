package mos6502

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/asm8/cpu"
)

// run loads code at the origin, resets, and executes steps instructions.
func run(t *testing.T, steps int, code []byte, setup func(c *cpu.Cpu)) (c *cpu.Cpu) {
	assert := assert.New(t)

	c = cpu.NewCpu(Architecture(), Behaviour{})
	c.Mem.Load(ORIGIN, code, cpu.MARK_PROGRAM)
	assert.NoError(c.Reset(ORIGIN))
	if setup != nil {
		setup(c)
	}

	for n := range steps {
		err := c.Step()
		if !assert.NoError(err, "step %d", n) {
			t.Log(c.String())
			t.FailNow()
		}
	}
	return
}

func reg(c *cpu.Cpu, name string) uint64 {
	r, _ := c.Register(name)
	return r.Value
}

func flag(c *cpu.Cpu, name string) bool {
	set, _ := c.Flag(name)
	return set
}

func TestTable(t *testing.T) {
	assert := assert.New(t)

	assert.Len(Mnemonics, 56)
	assert.Equal(151, arch.Table.Len())

	for entry := range arch.Table.Entries() {
		_, ok := routines[entry.Mnemonic]
		assert.True(ok, entry.Mnemonic)
	}
	assert.Len(routines, len(Mnemonics))
}

func TestReset(t *testing.T) {
	assert := assert.New(t)

	c := run(t, 0, nil, nil)
	assert.Equal(uint64(0xFD), reg(c, REG_SP))
	assert.Equal(uint64(0x24), reg(c, REG_P))
	assert.Equal(uint64(ORIGIN), c.PC())
}

func TestADC(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		carry   bool
		a       byte
		operand byte
		result  uint64
		c, z    bool
		v, n    bool
	}){
		{"positive overflow", false, 0x7F, 0x01, 0x80, false, false, true, true},
		{"carry out", false, 0xFF, 0x01, 0x00, true, true, false, false},
		{"carry in", true, 0x10, 0x10, 0x21, false, false, false, false},
		{"negative overflow", false, 0x80, 0xFF, 0x7F, true, false, true, false},
	}

	for _, entry := range table {
		c := run(t, 2, []byte{0xA9, entry.a, 0x69, entry.operand}, func(c *cpu.Cpu) {
			_ = c.SetFlag(FLAG_C, entry.carry)
		})
		assert.Equal(entry.result, reg(c, REG_A), entry.name)
		assert.Equal(entry.c, flag(c, FLAG_C), entry.name)
		assert.Equal(entry.z, flag(c, FLAG_Z), entry.name)
		assert.Equal(entry.v, flag(c, FLAG_V), entry.name)
		assert.Equal(entry.n, flag(c, FLAG_N), entry.name)
	}
}

func TestSBC(t *testing.T) {
	assert := assert.New(t)

	// SEC; LDA #$50; SBC #$F0
	c := run(t, 3, []byte{0x38, 0xA9, 0x50, 0xE9, 0xF0}, nil)
	assert.Equal(uint64(0x60), reg(c, REG_A))
	assert.False(flag(c, FLAG_C))
	assert.False(flag(c, FLAG_V))

	// SEC; LDA #$80; SBC #$01
	c = run(t, 3, []byte{0x38, 0xA9, 0x80, 0xE9, 0x01}, nil)
	assert.Equal(uint64(0x7F), reg(c, REG_A))
	assert.True(flag(c, FLAG_C))
	assert.True(flag(c, FLAG_V))
}

func TestBranchLoop(t *testing.T) {
	assert := assert.New(t)

	code := []byte{
		0xA2, 0x03, // LDX #$03
		0xCA,       // loop: DEX
		0xD0, 0xFD, // BNE loop
	}
	c := run(t, 7, code, nil)
	assert.Equal(uint64(0), reg(c, REG_X))
	assert.True(flag(c, FLAG_Z))
	assert.Equal(uint64(ORIGIN+5), c.PC())
}

func TestBranchTaken(t *testing.T) {
	assert := assert.New(t)

	// SEC; BCS +$10
	c := run(t, 2, []byte{0x38, 0xB0, 0x10}, nil)
	assert.Equal(uint64(ORIGIN+3+0x10), c.PC())

	// CLC; BCS +$10
	c = run(t, 2, []byte{0x18, 0xB0, 0x10}, nil)
	assert.Equal(uint64(ORIGIN+3), c.PC())
}

func TestJSR(t *testing.T) {
	assert := assert.New(t)

	c := cpu.NewCpu(Architecture(), Behaviour{})
	c.Mem.Load(0x1234, []byte{0x20, 0x00, 0x20}, cpu.MARK_PROGRAM) // JSR $2000
	c.Mem.Load(0x2000, []byte{0x60}, cpu.MARK_PROGRAM)             // RTS
	assert.NoError(c.Reset(0x1234))

	assert.NoError(c.Step())
	assert.Equal(uint64(0x2000), c.PC())
	assert.Equal(uint64(0xFB), reg(c, REG_SP))
	assert.Equal(byte(0x12), c.Mem.Read(0x01FD))
	assert.Equal(byte(0x36), c.Mem.Read(0x01FC))

	assert.NoError(c.Step())
	assert.Equal(uint64(0x1237), c.PC())
	assert.Equal(uint64(0xFD), reg(c, REG_SP))
}

func TestBRK(t *testing.T) {
	assert := assert.New(t)

	c := run(t, 0, []byte{0x00}, func(c *cpu.Cpu) {
		c.Mem.WriteWord(VECTOR_IRQ, 2, 0x0300)
		c.Mem.Write(0x0300, 0x40) // RTI
	})

	assert.NoError(c.Step())
	assert.Equal(uint64(0x0300), c.PC())
	assert.Equal(uint64(0xFA), reg(c, REG_SP))
	assert.Equal(byte(0x34), c.Mem.Read(0x01FB))
	assert.True(flag(c, FLAG_I))

	assert.NoError(c.Step())
	assert.Equal(uint64(ORIGIN+2), c.PC())
	assert.Equal(uint64(0x24), reg(c, REG_P))
	assert.Equal(uint64(0xFD), reg(c, REG_SP))
}

func TestJMPIndirectPageWrap(t *testing.T) {
	assert := assert.New(t)

	c := run(t, 1, []byte{0x6C, 0xFF, 0x10}, func(c *cpu.Cpu) {
		c.Mem.Write(0x10FF, 0x34)
		c.Mem.Write(0x1000, 0x12)
		c.Mem.Write(0x1100, 0x56)
	})
	assert.Equal(uint64(0x1234), c.PC())
}

func TestIndirectIndexed(t *testing.T) {
	assert := assert.New(t)

	// LDX #$04; LDA ($20,X)
	c := run(t, 2, []byte{0xA2, 0x04, 0xA1, 0x20}, func(c *cpu.Cpu) {
		c.Mem.WriteWord(0x24, 2, 0x3000)
		c.Mem.Write(0x3000, 0x99)
	})
	assert.Equal(uint64(0x99), reg(c, REG_A))
	assert.True(flag(c, FLAG_N))

	// LDY #$10; LDA ($20),Y
	c = run(t, 2, []byte{0xA0, 0x10, 0xB1, 0x20}, func(c *cpu.Cpu) {
		c.Mem.WriteWord(0x20, 2, 0x3000)
		c.Mem.Write(0x3010, 0x77)
	})
	assert.Equal(uint64(0x77), reg(c, REG_A))

	// The pointer wraps within the zero page.
	c = run(t, 2, []byte{0xA0, 0x00, 0xB1, 0xFF}, func(c *cpu.Cpu) {
		c.Mem.Write(0xFF, 0x00)
		c.Mem.Write(0x00, 0x40)
		c.Mem.Write(0x4000, 0x11)
	})
	assert.Equal(uint64(0x11), reg(c, REG_A))
}

func TestZeroPageIndexWrap(t *testing.T) {
	assert := assert.New(t)

	// LDX #$FF; LDA $80,X
	c := run(t, 2, []byte{0xA2, 0xFF, 0xB5, 0x80}, func(c *cpu.Cpu) {
		c.Mem.Write(0x7F, 0x5A)
	})
	assert.Equal(uint64(0x5A), reg(c, REG_A))

	// LDX #$FF; STA $0180,X does not wrap.
	c = run(t, 3, []byte{0xA2, 0xFF, 0xA9, 0x01, 0x9D, 0x80, 0x01}, nil)
	assert.Equal(byte(0x01), c.Mem.Read(0x027F))
}

func TestStackOps(t *testing.T) {
	assert := assert.New(t)

	// LDA #$42; PHA; LDA #$00; PLA
	c := run(t, 4, []byte{0xA9, 0x42, 0x48, 0xA9, 0x00, 0x68}, nil)
	assert.Equal(uint64(0x42), reg(c, REG_A))
	assert.False(flag(c, FLAG_Z))
	assert.Equal(uint64(0xFD), reg(c, REG_SP))

	// SEC; PHP; CLC; PLP
	c = run(t, 4, []byte{0x38, 0x08, 0x18, 0x28}, nil)
	assert.True(flag(c, FLAG_C))
	assert.False(flag(c, FLAG_B))
}

func TestShifts(t *testing.T) {
	assert := assert.New(t)

	// LDA #$81; ASL A
	c := run(t, 2, []byte{0xA9, 0x81, 0x0A}, nil)
	assert.Equal(uint64(0x02), reg(c, REG_A))
	assert.True(flag(c, FLAG_C))
	assert.False(flag(c, FLAG_N))

	// SEC; LDA #$02; ROR A
	c = run(t, 3, []byte{0x38, 0xA9, 0x02, 0x6A}, nil)
	assert.Equal(uint64(0x81), reg(c, REG_A))
	assert.False(flag(c, FLAG_C))
	assert.True(flag(c, FLAG_N))

	// ASL $10
	c = run(t, 1, []byte{0x06, 0x10}, func(c *cpu.Cpu) {
		c.Mem.Write(0x10, 0x40)
	})
	assert.Equal(byte(0x80), c.Mem.Read(0x10))
	assert.True(flag(c, FLAG_N))
	assert.False(flag(c, FLAG_C))

	// LDA #$01; LSR A
	c = run(t, 2, []byte{0xA9, 0x01, 0x4A}, nil)
	assert.Equal(uint64(0x00), reg(c, REG_A))
	assert.True(flag(c, FLAG_C))
	assert.True(flag(c, FLAG_Z))

	// SEC; LDA #$80; ROL A
	c = run(t, 3, []byte{0x38, 0xA9, 0x80, 0x2A}, nil)
	assert.Equal(uint64(0x01), reg(c, REG_A))
	assert.True(flag(c, FLAG_C))
}

func TestCompareAndBit(t *testing.T) {
	assert := assert.New(t)

	// LDA #$10; CMP #$20
	c := run(t, 2, []byte{0xA9, 0x10, 0xC9, 0x20}, nil)
	assert.False(flag(c, FLAG_C))
	assert.False(flag(c, FLAG_Z))
	assert.True(flag(c, FLAG_N))

	// LDX #$20; CPX #$20
	c = run(t, 2, []byte{0xA2, 0x20, 0xE0, 0x20}, nil)
	assert.True(flag(c, FLAG_C))
	assert.True(flag(c, FLAG_Z))

	// LDA #$01; BIT $10
	c = run(t, 2, []byte{0xA9, 0x01, 0x24, 0x10}, func(c *cpu.Cpu) {
		c.Mem.Write(0x10, 0xC0)
	})
	assert.True(flag(c, FLAG_Z))
	assert.True(flag(c, FLAG_N))
	assert.True(flag(c, FLAG_V))
	assert.Equal(uint64(0x01), reg(c, REG_A))
}

func TestIncDec(t *testing.T) {
	assert := assert.New(t)

	// INC $10
	c := run(t, 1, []byte{0xE6, 0x10}, func(c *cpu.Cpu) {
		c.Mem.Write(0x10, 0xFF)
	})
	assert.Equal(byte(0x00), c.Mem.Read(0x10))
	assert.True(flag(c, FLAG_Z))

	// DEY
	c = run(t, 1, []byte{0x88}, nil)
	assert.Equal(uint64(0xFF), reg(c, REG_Y))
	assert.True(flag(c, FLAG_N))
}

func TestTransfers(t *testing.T) {
	assert := assert.New(t)

	// LDX #$80; LDA #$01; TXS
	c := run(t, 3, []byte{0xA2, 0x80, 0xA9, 0x01, 0x9A}, nil)
	assert.Equal(uint64(0x80), reg(c, REG_SP))
	assert.False(flag(c, FLAG_N))

	// LDA #$00; TAY
	c = run(t, 2, []byte{0xA9, 0x00, 0xA8}, nil)
	assert.Equal(uint64(0x00), reg(c, REG_Y))
	assert.True(flag(c, FLAG_Z))

	// TSX
	c = run(t, 1, []byte{0xBA}, nil)
	assert.Equal(uint64(0xFD), reg(c, REG_X))
	assert.True(flag(c, FLAG_N))
}

func TestFlagOps(t *testing.T) {
	assert := assert.New(t)

	// SED; SEI; CLI; SEC; CLV
	c := run(t, 5, []byte{0xF8, 0x78, 0x58, 0x38, 0xB8}, nil)
	assert.True(flag(c, FLAG_D))
	assert.False(flag(c, FLAG_I))
	assert.True(flag(c, FLAG_C))
	assert.False(flag(c, FLAG_V))

	// Decimal mode is stored but arithmetic stays binary.
	c = run(t, 4, []byte{0xF8, 0x18, 0xA9, 0x09, 0x69, 0x01}, nil)
	assert.Equal(uint64(0x0A), reg(c, REG_A))
}

func FuzzStep(f *testing.F) {
	for opcode := range 256 {
		f.Add(byte(opcode), byte(0x10), byte(0x02), byte(0x80))
	}

	f.Fuzz(func(t *testing.T, opcode byte, lo byte, hi byte, a byte) {
		assert := assert.New(t)

		c := cpu.NewCpu(Architecture(), Behaviour{})
		c.Mem.Load(ORIGIN, []byte{opcode, lo, hi}, cpu.MARK_PROGRAM)
		assert.NoError(c.Reset(ORIGIN))
		acc, _ := c.Register(REG_A)
		acc.Set(uint64(a))

		err := c.Step()

		entry, ok := arch.Table.Decode(opcode)
		if !ok {
			var unknown *cpu.ErrOpcodeUnknown
			assert.ErrorAs(err, &unknown)
			assert.Equal(uint64(ORIGIN), c.PC())
			assert.Equal(0, c.Steps)
			return
		}

		assert.NoError(err, entry.String())
		assert.Equal(1, c.Steps)
		assert.NoError(c.Fault())
		assert.LessOrEqual(reg(c, REG_SP), uint64(0xFF))
		assert.Equal(uint64(0), reg(c, REG_P)&bitB, entry.String())
		assert.NotEqual(uint64(0), reg(c, REG_P)&bitUnused, entry.String())
	})
}
