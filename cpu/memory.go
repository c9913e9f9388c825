// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"encoding/binary"
)

// Mark is the provenance of a memory byte. Execution ignores it.
type Mark byte

//go:generate go tool stringer -linecomment -type=Mark
const (
	MARK_UNUSED   = Mark(0) // unused
	MARK_PROGRAM  = Mark(1) // program
	MARK_DATA     = Mark(2) // data
	MARK_EDITABLE = Mark(3) // editable
)

// Memory is a byte addressable store. Addresses wrap at the address width.
type Memory struct {
	Order binary.ByteOrder // Multi-byte access order.

	data  []byte
	marks []Mark
	mask  uint64
}

// NewMemory makes a memory spanning an address width in bits.
func NewMemory(width int, order binary.ByteOrder) (mem *Memory) {
	size := uint64(1) << width
	mem = &Memory{
		Order: order,
		data:  make([]byte, size),
		marks: make([]Mark, size),
		mask:  size - 1,
	}
	if mem.Order == nil {
		mem.Order = binary.LittleEndian
	}
	return
}

// Size is the number of bytes.
func (mem *Memory) Size() int {
	return len(mem.data)
}

// Mask is the address mask.
func (mem *Memory) Mask() uint64 {
	return mem.mask
}

// Clear zeros all bytes and marks.
func (mem *Memory) Clear() {
	clear(mem.data)
	clear(mem.marks)
}

// Read a byte.
func (mem *Memory) Read(addr uint64) byte {
	return mem.data[addr&mem.mask]
}

// Write a byte.
func (mem *Memory) Write(addr uint64, value byte) {
	mem.data[addr&mem.mask] = value
}

// ReadWord reads a size byte value in memory order.
func (mem *Memory) ReadWord(addr uint64, size int) (value uint64) {
	for n := range size {
		value |= uint64(mem.Read(addr+uint64(n))) << mem.shift(n, size)
	}
	return
}

func (mem *Memory) shift(n int, size int) int {
	if mem.Order == binary.BigEndian {
		return 8 * (size - 1 - n)
	}
	return 8 * n
}

// WriteWord writes the low size bytes of value in memory order.
func (mem *Memory) WriteWord(addr uint64, size int, value uint64) {
	for n := range size {
		mem.Write(addr+uint64(n), byte(value>>mem.shift(n, size)))
	}
}

// Load copies bytes into memory, marking them.
func (mem *Memory) Load(addr uint64, data []byte, mark Mark) {
	for n, b := range data {
		mem.Write(addr+uint64(n), b)
		mem.SetMark(addr+uint64(n), mark)
	}
}

// Slice copies the bytes in [start, end).
func (mem *Memory) Slice(start, end uint64) (data []byte) {
	for addr := start; addr < end; addr++ {
		data = append(data, mem.Read(addr))
	}
	return
}

// Mark returns the provenance of a byte.
func (mem *Memory) Mark(addr uint64) Mark {
	return mem.marks[addr&mem.mask]
}

// SetMark sets the provenance of a byte.
func (mem *Memory) SetMark(addr uint64, mark Mark) {
	mem.marks[addr&mem.mask] = mark
}
