// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package asm is the compile driver: it runs the tokenizer, the
// pre-processors, the parser and the linker over a source file, and
// assembles the resulting tree into memory in two passes.
package asm

import (
	"fmt"
	"io"
	"log"
	"maps"
	"strings"

	"github.com/ezrec/asm8/ast"
	"github.com/ezrec/asm8/isa"
	"github.com/ezrec/asm8/lexer"
	"github.com/ezrec/asm8/parser"
	"github.com/ezrec/asm8/preproc"
	"github.com/ezrec/asm8/token"
)

// Resolver finds already assembled trees for #import.
type Resolver = preproc.Resolver

// Files resolves imports from a map of file name to tree.
type Files map[string]*ast.Tree

// Lookup finds a tree by file name.
func (files Files) Lookup(name string) (tree *ast.Tree, ok bool) {
	tree, ok = files[name]
	return
}

// Assembler is a two pass macro assembler.
type Assembler struct {
	Verbose      bool              // If set, verbosely logs the assembler actions.
	Arch         *isa.Architecture // Target architecture.
	Files        Resolver          // Import lookup.
	Origin       uint64            // Address of the first node.
	WrapBranches bool              // Truncate out of range branches instead of failing.

	predefine map[string]string // Predefines
}

// NewAssembler makes an assembler for an architecture at its default origin.
func NewAssembler(arch *isa.Architecture) *Assembler {
	return &Assembler{
		Arch:   arch,
		Origin: arch.Origin,
	}
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// defines are the system equates plus the predefines.
func (asm *Assembler) defines() (defines map[string]string) {
	hex := func(value uint64) string {
		if prefixes := asm.Arch.Syntax.HexPrefix; len(prefixes) != 0 {
			return fmt.Sprintf("%s%X", prefixes[0], value)
		}
		return fmt.Sprintf("%d", value)
	}

	defines = map[string]string{
		"ORIGIN":        hex(asm.Origin),
		"ADDRESS_WIDTH": fmt.Sprintf("%d", asm.Arch.AddressWidth),
	}
	maps.Copy(defines, asm.predefine)
	return
}

// Parse compiles source text into a syntax tree. The tree is always
// returned; err joins its error diagnostics.
func (asm *Assembler) Parse(name string, input io.Reader) (tree *ast.Tree, err error) {
	var text strings.Builder
	_, err = io.Copy(&text, input)
	if err != nil {
		return
	}

	ctx := &token.Context{}

	tokens, lexErr := lexer.Tokenize(ctx, asm.Arch.Syntax, text.String(), name)

	pp := &preproc.Preprocessor{
		Verbose: asm.Verbose,
		Syntax:  asm.Arch.Syntax,
		Context: ctx,
		Files:   asm.Files,
		Defines: asm.defines(),
	}
	result := pp.Run(name, tokens)
	if lexErr != nil {
		// The scan stopped at the bad character; report it first.
		result.Diagnostics = append([]ast.Diagnostic{lexDiagnostic(lexErr)}, result.Diagnostics...)
	}

	ps := &parser.Parser{Verbose: asm.Verbose, Arch: asm.Arch}
	tree = ps.Parse(result)

	if asm.Verbose {
		log.Printf("asm: %v: parsed, %d diagnostics", name, len(tree.Diagnostics))
	}

	err = tree.Err()
	return
}

func lexDiagnostic(err error) ast.Diagnostic {
	if lexErr, ok := err.(*lexer.ErrLex); ok {
		return ast.Error(err, token.Token{Kind: token.KIND_SYMBOL, Text: lexErr.Text, Loc: lexErr.Loc})
	}
	return ast.Error(err)
}
