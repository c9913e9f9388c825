package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var toyStack = Stack{Register: "SP", Base: 0x0100}

func TestStack_Push(t *testing.T) {
	assert := assert.New(t)

	cpu := newToy(t)
	sp, _ := cpu.Register("SP")
	sp.Set(0xFF)

	assert.NoError(toyStack.Push(cpu, 0x12))
	assert.Equal(uint64(0xFE), sp.Value)
	assert.Equal(byte(0x12), cpu.Mem.Read(0x01FF))

	val, err := toyStack.Peek(cpu)
	assert.NoError(err)
	assert.Equal(byte(0x12), val)
	assert.Equal(uint64(0xFE), sp.Value)

	val, err = toyStack.Pull(cpu)
	assert.NoError(err)
	assert.Equal(byte(0x12), val)
	assert.Equal(uint64(0xFF), sp.Value)
}

func TestStack_Wrap(t *testing.T) {
	assert := assert.New(t)

	cpu := newToy(t)
	sp, _ := cpu.Register("SP")
	sp.Set(0x00)

	assert.NoError(toyStack.Push(cpu, 0xAB))
	assert.Equal(uint64(0xFF), sp.Value)
	assert.Equal(byte(0xAB), cpu.Mem.Read(0x0100))

	val, err := toyStack.Pull(cpu)
	assert.NoError(err)
	assert.Equal(byte(0xAB), val)
	assert.Equal(uint64(0x00), sp.Value)
}

func TestStack_Word(t *testing.T) {
	assert := assert.New(t)

	cpu := newToy(t)
	sp, _ := cpu.Register("SP")
	sp.Set(0xFD)

	assert.NoError(toyStack.PushWord(cpu, 0x1234, 2))
	assert.Equal(uint64(0xFB), sp.Value)
	// Little endian from the stack pointer up.
	assert.Equal(uint64(0x1234), cpu.Mem.ReadWord(0x01FC, 2))

	value, err := toyStack.PullWord(cpu, 2)
	assert.NoError(err)
	assert.Equal(uint64(0x1234), value)
	assert.Equal(uint64(0xFD), sp.Value)
}

func TestStack_Missing(t *testing.T) {
	assert := assert.New(t)

	cpu := newToy(t)
	bad := Stack{Register: "S", Base: 0x0100}
	assert.Equal(ErrRegisterMissing("S"), bad.Push(cpu, 0))
}
