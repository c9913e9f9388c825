// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"errors"
	"log"
	"strings"

	"github.com/ezrec/asm8/ast"
	"github.com/ezrec/asm8/cpu"
	"github.com/ezrec/asm8/listing"
	"github.com/ezrec/asm8/token"
)

// Assemble lays out and encodes a tree into memory. A tree with errors is
// refused. An error encoding a node skips only that node; all errors are
// joined in err and the program is returned regardless.
func (asm *Assembler) Assemble(tree *ast.Tree, mem *cpu.Memory) (prog *Program, err error) {
	if treeErr := tree.Err(); treeErr != nil {
		err = errors.Join(ErrTreeBroken, treeErr)
		return
	}

	if mem == nil {
		mem = cpu.NewMemory(asm.Arch.AddressWidth, asm.Arch.ByteOrder)
	}

	prog = &Program{
		Arch: asm.Arch,
		Tree: tree,
		Mem:  mem,
		Map:  listing.AssemblyMap{},
	}

	errs := asm.layout(tree)

	first := true
	entry := false
	for _, node := range tree.Walk() {
		var row listing.Row
		var nodeErr error
		switch node.Kind {
		case ast.KIND_INSTRUCTION:
			row, nodeErr = asm.encodeInstruction(tree, node)
			if nodeErr == nil {
				mem.Load(node.Address, row.Bytes, cpu.MARK_PROGRAM)
				if !entry {
					prog.Entry = node.Address
					entry = true
				}
			}
		case ast.KIND_INITIALIZED_DATA:
			row, nodeErr = asm.encodeData(tree, node)
			if nodeErr == nil {
				mem.Load(node.Address, row.Bytes, cpu.MARK_DATA)
			}
		case ast.KIND_UNINITIALIZED_DATA:
			row = listing.Row{
				Mnemonic: node.Directive.Name,
				Bytes:    make([]byte, node.Size()),
			}
			mem.Load(node.Address, row.Bytes, cpu.MARK_EDITABLE)
		default:
			continue
		}
		if nodeErr != nil {
			errs = append(errs, &ErrAssemble{Loc: node.Loc(), Text: token.Join(token.Trim(node.Tokens)), Err: nodeErr})
			continue
		}
		if len(row.Bytes) == 0 {
			continue
		}

		row.Address = node.Address
		row.Loc = node.Loc()
		row.Labels = tree.Labels.At(node.Address)
		prog.Transcript = prog.Transcript.Append(row)
		for n := range row.Bytes {
			prog.Map[node.Address+uint64(n)] = row.Loc
		}

		end := node.Address + uint64(len(row.Bytes))
		if first || node.Address < prog.Start {
			prog.Start = node.Address
		}
		if first || end > prog.End {
			prog.End = end
		}
		first = false
	}
	if !entry {
		prog.Entry = prog.Start
	}

	err = errors.Join(errs...)
	tree.Assembled = err == nil

	if asm.Verbose {
		log.Printf("asm: %v: $%04X-$%04X, %d rows, %d errors", tree.File, prog.Start, prog.End, len(prog.Transcript), len(errs))
	}

	return
}

// layout is pass one: it assigns every node and label its address. Labels
// directly in front of aligned data move past the padding with it.
func (asm *Assembler) layout(tree *ast.Tree) (errs []error) {
	mask := asm.Arch.AddressMask()
	addr := asm.Origin & mask
	var pending []*ast.Node
	for _, node := range tree.Walk() {
		switch node.Kind {
		case ast.KIND_SET_PC:
			value, err := node.Value.ValueIn(asm.Arch.Syntax)
			if err != nil {
				errs = append(errs, &ErrAssemble{Loc: node.Loc(), Text: token.Join(token.Trim(node.Tokens)), Err: err})
				break
			}
			addr = uint64(value) & mask
		case ast.KIND_INITIALIZED_DATA, ast.KIND_UNINITIALIZED_DATA:
			if size := uint64(node.Directive.Size); node.Directive.Aligned && size > 1 {
				aligned := (addr + size - 1) / size * size
				for _, prior := range pending {
					label := tree.Labels.Get(prior.Label)
					if label != nil && label.Address == prior.Address {
						label.Address = aligned
					}
					prior.Address = aligned
				}
				addr = aligned
			}
		}

		node.Place(addr)
		if node.Kind == ast.KIND_LABEL {
			label := tree.Labels.Get(node.Label)
			if !label.Placed {
				label.Address = node.Address
				label.Placed = true
			}
			pending = append(pending, node)
		} else {
			pending = pending[:0]
		}

		addr = (node.Address + uint64(node.Size())) & mask
	}
	return
}

// value evaluates an operand: a constant, or the address of its label.
// A word that is not a label names an architecture equate when the
// architecture allows symbolic data.
func (asm *Assembler) value(tree *ast.Tree, op ast.Operand) (value uint64, err error) {
	if op.Word() && op.Ref == ast.NO_LABEL && asm.Arch.SymbolicData {
		var ok bool
		value, ok = asm.Arch.Equates[op.Token.Text]
		if !ok {
			err = ErrSymbolUnknown
		}
		return
	}
	if op.Word() {
		label := tree.Labels.Get(op.Ref)
		if label == nil || !label.Placed {
			err = ErrLabelUnresolved
			return
		}
		value = label.Address
		return
	}
	v, err := op.Token.ValueIn(asm.Arch.Syntax)
	value = uint64(v)
	return
}

func mask(size int) uint64 {
	if size >= 8 {
		return ^uint64(0)
	}
	return (uint64(1) << (8 * size)) - 1
}

// encodeInstruction is pass two for an instruction.
func (asm *Assembler) encodeInstruction(tree *ast.Tree, node *ast.Node) (row listing.Row, err error) {
	entry, ok := asm.Arch.Table.Lookup(node.Mnemonic, node.Mode)
	if !ok {
		err = ErrOpcodeMissing
		return
	}

	mode := entry.Mode
	size := mode.OperandSize()
	var raw uint64
	if mode.Operand >= 0 && size > 0 {
		if len(node.Operands) == 0 {
			err = ErrOperandMissing
			return
		}
		var value uint64
		value, err = asm.value(tree, node.Operands[0])
		if err != nil {
			return
		}
		raw = value & mask(size)
		if mode.Relative {
			next := node.Address + uint64(mode.Length)
			disp := int64(value) - int64(next)
			limit := int64(1) << (8*size - 1)
			if !asm.WrapBranches && (disp < -limit || disp >= limit) {
				err = ErrBranchRange
				return
			}
			raw = uint64(disp) & mask(size)
		}
	}

	code := append([]byte{entry.Opcode}, asm.Arch.Encode(raw, size)...)

	row = listing.Row{
		Mnemonic: entry.Mnemonic,
		Mode:     mode,
		Operand:  mode.Render(raw, node.Address+uint64(mode.Length), asm.Arch.AddressMask()),
		Bytes:    code,
	}
	return
}

// encodeData is pass two for initialized data.
func (asm *Assembler) encodeData(tree *ast.Tree, node *ast.Node) (row listing.Row, err error) {
	dir := node.Directive
	var data []byte
	put := func(value uint64) {
		data = append(data, asm.Arch.Encode(value, dir.Size)...)
	}

	var text []string
	for _, op := range node.Operands {
		text = append(text, op.Token.Text)
		if op.Token.Kind == token.KIND_STRING {
			var str string
			str, err = op.Token.Unquote()
			if err != nil {
				return
			}
			for _, c := range []byte(str) {
				put(uint64(c))
			}
			continue
		}
		var value uint64
		value, err = asm.value(tree, op)
		if err != nil {
			return
		}
		if !fits(int64(value), dir.Size) {
			err = ErrValueRange
			return
		}
		put(value)
	}

	row = listing.Row{
		Mnemonic: dir.Name,
		Operand:  strings.Join(text, ", "),
		Bytes:    data,
	}
	return
}

// fits returns true if a value is representable, signed or unsigned, in
// size bytes.
func fits(value int64, size int) bool {
	if size >= 8 {
		return true
	}
	bits := 8 * size
	return value >= -(int64(1)<<(bits-1)) && value < int64(1)<<bits
}
