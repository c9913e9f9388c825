// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package parser

import (
	"github.com/ezrec/asm8/ast"
	"github.com/ezrec/asm8/isa"
)

type scopedName struct {
	parent ast.LabelId
	name   string
}

// Link removes duplicate labels, moving the sub-labels of a dropped parent
// to the parent it duplicates. It then binds .global directives to their labels,
// and resolves the word operands of instructions and data. Sub-label
// references resolve in the scope of the referencing node; other
// references by global name, then by full `parent.sub` name.
func Link(arch *isa.Architecture, tree *ast.Tree) {
	seen := map[scopedName]ast.LabelId{}
	// Dropped parents are replaced by the label they duplicate.
	moved := map[ast.LabelId]ast.LabelId{}
	for section := range tree.Sections() {
		kept := section.Nodes[:0]
		for _, node := range section.Nodes {
			if to, ok := moved[node.Scope]; ok {
				node.Scope = to
			}
			if node.Kind == ast.KIND_LABEL {
				label := tree.Labels.Get(node.Label)
				if to, ok := moved[label.Parent]; ok {
					label.Parent = to
				}
				key := scopedName{parent: label.Parent, name: label.Name}
				if first, ok := seen[key]; ok {
					tree.Report(ast.Error(ast.ErrLabelDuplicate, node.Tokens...))
					label.Dropped = true
					moved[node.Label] = first
					continue
				}
				seen[key] = node.Label
			}
			kept = append(kept, node)
		}
		section.Nodes = kept
	}

	for section := range tree.Sections() {
		kept := section.Nodes[:0]
		for _, node := range section.Nodes {
			switch node.Kind {
			case ast.KIND_GLOBAL:
				name := node.Operands[0].Token
				id, ok := resolve(arch, tree, ast.NO_LABEL, name.Text)
				if !ok {
					tree.Report(ast.Error(ast.ErrGlobalMissing, node.Tokens...))
					continue
				}
				node.Label = id
				node.Operands[0].Ref = id
				tree.Labels.Get(id).Global = true
			case ast.KIND_INSTRUCTION, ast.KIND_INITIALIZED_DATA:
				for n := range node.Operands {
					op := &node.Operands[n]
					op.Ref = ast.NO_LABEL
					if !op.Word() {
						continue
					}
					id, ok := resolve(arch, tree, node.Scope, op.Token.Text)
					if ok {
						op.Ref = id
						continue
					}
					if arch.SymbolicData && node.Kind == ast.KIND_INITIALIZED_DATA {
						continue
					}
					tree.Report(ast.Error(ast.ErrLabelMissing(op.Token.Text), op.Token))
				}
			}
			kept = append(kept, node)
		}
		section.Nodes = kept
	}
}

// resolve finds the label a word refers to from a scope.
func resolve(arch *isa.Architecture, tree *ast.Tree, scope ast.LabelId, name string) (id ast.LabelId, ok bool) {
	if arch.Syntax.IsSubLabel(name) {
		return tree.Labels.Lookup(scope, name)
	}
	id, ok = tree.Labels.Lookup(ast.NO_LABEL, name)
	if ok {
		return
	}
	return tree.Labels.LookupFull(name)
}
