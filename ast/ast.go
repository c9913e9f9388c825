// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package ast is the syntax tree of an assembly source file.
//
// Every element is a Node tagged by its Kind. Sections hold the elements of
// a file in order, and the Root holds the sections. Labels live in a table
// owned by the Tree; nodes refer to them by LabelId.
package ast

import (
	"github.com/ezrec/asm8/isa"
	"github.com/ezrec/asm8/token"
)

// Kind of a syntax tree node.
type Kind int

//go:generate go tool stringer -linecomment -type=Kind
const (
	KIND_LABEL              = Kind(0) // label
	KIND_INSTRUCTION        = Kind(1) // instruction
	KIND_INITIALIZED_DATA   = Kind(2) // initialized-data
	KIND_UNINITIALIZED_DATA = Kind(3) // uninitialized-data
	KIND_SECTION_START      = Kind(4) // section-start
	KIND_GLOBAL             = Kind(5) // global
	KIND_SET_PC             = Kind(6) // set-pc
	KIND_SECTION            = Kind(7) // section
	KIND_ROOT               = Kind(8) // root
)

// LabelId indexes the label table of a tree.
type LabelId int

// NO_LABEL is the id of no label.
const NO_LABEL = LabelId(-1)

// Operand of an instruction or a data directive.
type Operand struct {
	Token token.Token
	Ref   LabelId // Label the word operand links to, or NO_LABEL.
}

// Word returns true if the operand is symbolic.
func (op Operand) Word() bool {
	return op.Token.Kind == token.KIND_WORD
}

// Node is a syntax tree element.
type Node struct {
	Kind   Kind
	Tokens []token.Token // Constituent tokens.

	Label LabelId // KIND_LABEL and linked KIND_GLOBAL: the label.
	Scope LabelId // Enclosing parent label, for sub-label references.

	Mnemonic  string             // KIND_INSTRUCTION: mnemonic.
	Mode      *isa.Mode          // KIND_INSTRUCTION: addressing mode.
	Directive *isa.DataDirective // KIND_*_DATA: the directive.
	Operands  []Operand          // Instruction operand, or data values.
	Count     int                // KIND_UNINITIALIZED_DATA: reserved elements.
	Value     token.Token        // KIND_SET_PC: the new program counter.

	Section SectionKind // KIND_SECTION_START and KIND_SECTION.
	Nodes   []Node      // KIND_SECTION and KIND_ROOT children.

	Address uint64 // Assigned by the first assembly pass.
	Placed  bool   // Address has been assigned.
}

// Loc is the location of the first token of the node.
func (n *Node) Loc() (loc token.Location) {
	if len(n.Tokens) > 0 {
		loc = n.Tokens[0].Loc
	}
	return
}

// Place assigns the node address. Only the first assignment counts.
func (n *Node) Place(address uint64) {
	if n.Placed {
		return
	}
	n.Address = address
	n.Placed = true
}

// Size is the number of bytes the node occupies, excluding alignment.
func (n *Node) Size() int {
	switch n.Kind {
	case KIND_INSTRUCTION:
		if n.Mode != nil {
			return n.Mode.Length
		}
	case KIND_INITIALIZED_DATA:
		return n.Directive.Size * n.Elements()
	case KIND_UNINITIALIZED_DATA:
		return n.Directive.Size * n.Count
	}
	return 0
}

// Elements is the number of data elements of an initialized data node.
// String operands contribute one element per character.
func (n *Node) Elements() (count int) {
	for _, op := range n.Operands {
		if op.Token.Kind == token.KIND_STRING {
			text, err := op.Token.Unquote()
			if err == nil {
				count += len(text)
				continue
			}
		}
		count++
	}
	return
}

// NewInstruction makes an instruction node.
func NewInstruction(tokens []token.Token, mnemonic string, mode *isa.Mode, operand *token.Token, scope LabelId) (node Node) {
	node = Node{
		Kind:     KIND_INSTRUCTION,
		Tokens:   tokens,
		Label:    NO_LABEL,
		Scope:    scope,
		Mnemonic: mnemonic,
		Mode:     mode,
	}
	if operand != nil {
		node.Operands = []Operand{{Token: *operand, Ref: NO_LABEL}}
	}
	return
}

// NewData makes an initialized data node.
func NewData(tokens []token.Token, dir *isa.DataDirective, values []token.Token, scope LabelId) (node Node) {
	node = Node{
		Kind:      KIND_INITIALIZED_DATA,
		Tokens:    tokens,
		Label:     NO_LABEL,
		Scope:     scope,
		Directive: dir,
	}
	for _, value := range values {
		node.Operands = append(node.Operands, Operand{Token: value, Ref: NO_LABEL})
	}
	return
}

// NewReserve makes an uninitialized data node.
func NewReserve(tokens []token.Token, dir *isa.DataDirective, count int) Node {
	return Node{
		Kind:      KIND_UNINITIALIZED_DATA,
		Tokens:    tokens,
		Label:     NO_LABEL,
		Scope:     NO_LABEL,
		Directive: dir,
		Count:     count,
	}
}

// NewLabel makes a label declaration node.
func NewLabel(tokens []token.Token, id LabelId) Node {
	return Node{Kind: KIND_LABEL, Tokens: tokens, Label: id, Scope: NO_LABEL}
}

// NewGlobal makes a .global node. The label is found when linking.
func NewGlobal(tokens []token.Token, name token.Token) Node {
	return Node{Kind: KIND_GLOBAL, Tokens: tokens, Label: NO_LABEL, Scope: NO_LABEL,
		Operands: []Operand{{Token: name, Ref: NO_LABEL}}}
}

// NewSetPC makes a `* = address` node.
func NewSetPC(tokens []token.Token, value token.Token) Node {
	return Node{Kind: KIND_SET_PC, Tokens: tokens, Label: NO_LABEL, Scope: NO_LABEL, Value: value}
}

// NewSectionStart makes a section directive node.
func NewSectionStart(tokens []token.Token, section SectionKind) Node {
	return Node{Kind: KIND_SECTION_START, Tokens: tokens, Label: NO_LABEL, Scope: NO_LABEL, Section: section}
}

// NewSection makes a section holding nodes.
func NewSection(section SectionKind, nodes []Node) Node {
	return Node{Kind: KIND_SECTION, Label: NO_LABEL, Scope: NO_LABEL, Section: section, Nodes: nodes}
}
