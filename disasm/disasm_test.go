package disasm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/asm8/arch/mos6502"
	"github.com/ezrec/asm8/asm"
	"github.com/ezrec/asm8/cpu"
)

// Operand text and encoded operand bytes, per addressing mode, for an
// instruction at the origin.
var operands = map[string]struct {
	text  string
	bytes []byte
}{
	"imp": {"", nil},
	"acc": {"A", nil},
	"imm": {"#$12", []byte{0x12}},
	"idx": {"($12,X)", []byte{0x12}},
	"idy": {"($12),Y", []byte{0x12}},
	"ind": {"($1234)", []byte{0x34, 0x12}},
	"zpx": {"$12,X", []byte{0x12}},
	"zpy": {"$12,Y", []byte{0x12}},
	"zpg": {"$12", []byte{0x12}},
	"abx": {"$1234,X", []byte{0x34, 0x12}},
	"aby": {"$1234,Y", []byte{0x34, 0x12}},
	"abs": {"$1234", []byte{0x34, 0x12}},
	"rel": {"$0200", []byte{0xFE}},
}

func TestRoundTrip(t *testing.T) {
	assert := assert.New(t)

	arch := mos6502.Architecture()
	for entry := range arch.Table.Entries() {
		operand, ok := operands[entry.Mode.Name]
		if !assert.True(ok, entry.String()) {
			continue
		}

		code := append([]byte{entry.Opcode}, operand.bytes...)
		mem := cpu.NewMemory(arch.AddressWidth, arch.ByteOrder)
		mem.Load(arch.Origin, code, cpu.MARK_PROGRAM)

		transcript, err := Disassemble(arch, mem, arch.Origin, arch.Origin+uint64(len(code)))
		if !assert.NoError(err, entry.String()) {
			continue
		}
		rows := transcript.Rows()
		if !assert.Len(rows, 1, entry.String()) {
			continue
		}
		row := rows[0]
		assert.Equal(entry.Mnemonic, row.Mnemonic, entry.String())
		assert.Equal(entry.Mode, row.Mode, entry.String())
		assert.Equal(operand.text, row.Operand, entry.String())
		assert.Equal(code, row.Bytes, entry.String())

		// The rendered text assembles back to the same bytes.
		tree, err := asm.NewAssembler(arch).Parse("t.s", strings.NewReader(" "+row.Text()+"\n"))
		if !assert.NoError(err, row.Text()) {
			continue
		}
		built, err := asm.NewAssembler(arch).Assemble(tree, nil)
		if assert.NoError(err, row.Text()) {
			assert.Equal(code, built.Binary(), row.Text())
		}
	}
}

func TestDisassembleProgram(t *testing.T) {
	assert := assert.New(t)

	arch := mos6502.Architecture()
	a := asm.NewAssembler(arch)
	tree, err := a.Parse("t.s", strings.NewReader("start: LDX #3\nloop: DEX\n BNE loop\n RTS\n"))
	assert.NoError(err)
	prog, err := a.Assemble(tree, nil)
	assert.NoError(err)

	dis := &Disassembler{
		Arch:   arch,
		Labels: map[uint64][]string{0x0200: {"start"}, 0x0202: {"loop"}},
	}
	transcript, err := dis.Disassemble(prog.Mem, prog.Start, prog.End)
	assert.NoError(err)

	var text []string
	for _, row := range transcript.Rows() {
		text = append(text, row.Text())
	}
	assert.Equal([]string{"LDX #$03", "DEX", "BNE $0202", "RTS"}, text)
	assert.Equal([]string{"loop"}, transcript.Rows()[1].Labels)

	// Same rows as the assembler transcript, labels aside.
	for n, row := range prog.Transcript.Rows() {
		assert.Equal(row.Text(), text[n])
		assert.Equal(row.Bytes, transcript.Rows()[n].Bytes)
	}
}

func TestDisassembleUnknownOpcode(t *testing.T) {
	assert := assert.New(t)

	arch := mos6502.Architecture()
	mem := cpu.NewMemory(arch.AddressWidth, arch.ByteOrder)
	mem.Load(0x0200, []byte{0xEA, 0xE8, 0x02, 0xEA}, cpu.MARK_PROGRAM)

	transcript, err := Disassemble(arch, mem, 0x0200, 0x0204)
	assert.ErrorIs(err, ErrOpcodeUnknown)
	var halted *ErrDecode
	if assert.ErrorAs(err, &halted) {
		assert.Equal(uint64(0x0202), halted.Address)
		assert.Equal(byte(0x02), halted.Opcode)
	}
	assert.Len(transcript.Rows(), 2)
}

func TestDisassembleTruncated(t *testing.T) {
	assert := assert.New(t)

	arch := mos6502.Architecture()
	mem := cpu.NewMemory(arch.AddressWidth, arch.ByteOrder)
	mem.Load(0x0200, []byte{0xEA, 0x4C, 0x00}, cpu.MARK_PROGRAM)

	transcript, err := Disassemble(arch, mem, 0x0200, 0x0203)
	assert.ErrorIs(err, ErrTruncated)
	var halted *ErrDecode
	if assert.ErrorAs(err, &halted) {
		assert.Equal(uint64(0x0201), halted.Address)
		assert.Equal(byte(0x4C), halted.Opcode)
	}
	assert.Len(transcript, 1)
}

func TestDisassembleEmpty(t *testing.T) {
	assert := assert.New(t)

	arch := mos6502.Architecture()
	mem := cpu.NewMemory(arch.AddressWidth, arch.ByteOrder)
	transcript, err := Disassemble(arch, mem, 0x0200, 0x0200)
	assert.NoError(err)
	assert.Empty(transcript)
}
