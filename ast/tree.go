// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package ast

import (
	"errors"
	"iter"
	"slices"

	"github.com/ezrec/asm8/token"
)

// PreKind is the kind of a pre-processor side table entry.
type PreKind int

//go:generate go tool stringer -linecomment -type=PreKind
const (
	PRE_IMPORT    = PreKind(0) // import
	PRE_COMMENT   = PreKind(1) // comment
	PRE_EQUATE    = PreKind(2) // equate
	PRE_MACRO     = PreKind(3) // macro
	PRE_EXPANSION = PreKind(4) // expansion
)

// Preresolved records source text consumed by a pre-processor.
type Preresolved struct {
	Kind   PreKind
	Name   string
	Tokens []token.Token
}

// Tree is the syntax tree of one source file.
type Tree struct {
	File        string
	Root        Node
	Labels      LabelTable
	Preresolved []Preresolved
	Diagnostics []Diagnostic
	Assembled   bool // Set once the tree has been assembled without errors.
}

// NewTree makes an empty tree.
func NewTree(file string) *Tree {
	return &Tree{
		File: file,
		Root: Node{Kind: KIND_ROOT, Label: NO_LABEL, Scope: NO_LABEL},
	}
}

// Report appends diagnostics.
func (t *Tree) Report(diags ...Diagnostic) {
	t.Diagnostics = append(t.Diagnostics, diags...)
}

// Errors returns the error diagnostics, in report order.
func (t *Tree) Errors() (diags []Diagnostic) {
	for _, diag := range t.Diagnostics {
		if diag.Severity == SEVERITY_ERROR {
			diags = append(diags, diag)
		}
	}
	return
}

// Err joins every error diagnostic, or is nil for a clean tree.
func (t *Tree) Err() error {
	var errs []error
	for _, diag := range t.Errors() {
		errs = append(errs, diag)
	}
	return errors.Join(errs...)
}

// Sections iterates over the sections of the tree.
func (t *Tree) Sections() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for n := range t.Root.Nodes {
			if !yield(&t.Root.Nodes[n]) {
				return
			}
		}
	}
}

// Walk iterates over every element, with its section, in layout order.
func (t *Tree) Walk() iter.Seq2[*Node, *Node] {
	return func(yield func(*Node, *Node) bool) {
		for section := range t.Sections() {
			for n := range section.Nodes {
				if !yield(section, &section.Nodes[n]) {
					return
				}
			}
		}
	}
}

// Graft appends copies of the sections of another tree. Labels of the other
// tree are copied into this tree's table, and every copy loses its address.
func (t *Tree) Graft(other *Tree) {
	base := LabelId(t.Labels.Len())
	remap := func(id LabelId) LabelId {
		if id == NO_LABEL {
			return id
		}
		return id + base
	}

	for _, label := range other.Labels.labels {
		label.Parent = remap(label.Parent)
		label.Address = 0
		label.Placed = false
		t.Labels.labels = append(t.Labels.labels, label)
	}

	for _, section := range other.Root.Nodes {
		t.Root.Nodes = append(t.Root.Nodes, section.clone(remap))
	}
}

func (n Node) clone(remap func(LabelId) LabelId) Node {
	n.Label = remap(n.Label)
	n.Scope = remap(n.Scope)
	n.Address = 0
	n.Placed = false
	n.Operands = slices.Clone(n.Operands)
	for i := range n.Operands {
		n.Operands[i].Ref = remap(n.Operands[i].Ref)
	}
	if n.Nodes != nil {
		nodes := make([]Node, len(n.Nodes))
		for i, child := range n.Nodes {
			nodes[i] = child.clone(remap)
		}
		n.Nodes = nodes
	}
	return n
}
