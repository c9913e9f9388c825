// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Command asm8 assembles, disassembles and runs 8-bit programs.
package main

import (
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/ezrec/asm8/arch/mos6502"
	"github.com/ezrec/asm8/asm"
	"github.com/ezrec/asm8/ast"
	"github.com/ezrec/asm8/cpu"
	"github.com/ezrec/asm8/isa"
	"github.com/ezrec/asm8/translate"
)

// target is an architecture and its execution semantics.
type target struct {
	Arch      *isa.Architecture
	Behaviour cpu.Behaviour
}

var targets = map[string]target{
	"6502": {Arch: mos6502.Architecture(), Behaviour: mos6502.Behaviour{}},
}

var (
	archName string
	verbose  bool
	lang     string
)

var rootCmd = &cobra.Command{
	Use:   "asm8",
	Short: "Assembler, disassembler and emulator for 8-bit accumulator machines",
	Long: `asm8 assembles source files into memory images, disassembles images
back into listings, and runs assembled programs one instruction at a time.
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
		if len(lang) == 0 {
			return
		}
		tag, err := language.Parse(lang)
		if err != nil {
			return
		}
		translate.SetLanguage(tag)
		return
	},
}

func init() {
	var names []string
	for name := range targets {
		names = append(names, name)
	}
	slices.Sort(names)

	rootCmd.PersistentFlags().StringVarP(&archName, "arch", "m", "6502", "target architecture ("+strings.Join(names, ", ")+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose mode")
	rootCmd.PersistentFlags().StringVar(&lang, "lang", "", "message language, ie en-US; default from the locale")
}

// selected returns the target chosen by --arch.
func selected() target {
	tgt, ok := targets[archName]
	if !ok {
		log.Fatalf("%v: unknown architecture %q", os.Args[0], archName)
	}
	return tgt
}

// sources resolves #import by assembling the named file, relative to the
// directory of the importing source. Every file gets its own resolver, and
// all of them share one cache of trees keyed by path.
type sources struct {
	Dir   string
	Asm   *asm.Assembler
	trees map[string]*ast.Tree
}

func newSources(dir string, assembler *asm.Assembler) *sources {
	return &sources{Dir: dir, Asm: assembler, trees: map[string]*ast.Tree{}}
}

func (src *sources) Lookup(name string) (tree *ast.Tree, ok bool) {
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(src.Dir, name)
	}
	path = filepath.Clean(path)

	if tree, ok = src.trees[path]; ok {
		// A nil entry is an import cycle.
		ok = tree != nil
		return
	}

	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	src.trees[path] = nil

	// The imported file resolves its own imports from its directory.
	child := *src.Asm
	child.Files = &sources{Dir: filepath.Dir(path), Asm: &child, trees: src.trees}

	tree, err = child.Parse(path, inf)
	src.trees[path] = tree
	if err == nil {
		// Assembling marks the tree as built.
		_, _ = child.Assemble(tree, nil)
	}

	return tree, true
}

// compile parses and assembles a source file.
func compile(tgt target, file string, configure func(*asm.Assembler)) (prog *asm.Program, tree *ast.Tree, err error) {
	assembler := asm.NewAssembler(tgt.Arch)
	assembler.Verbose = verbose
	files := newSources(filepath.Dir(file), assembler)
	// The top-level file is always mid-parse.
	files.trees[filepath.Clean(file)] = nil
	assembler.Files = files
	if configure != nil {
		configure(assembler)
	}

	inf, err := os.Open(file)
	if err != nil {
		return
	}
	defer inf.Close()

	tree, err = assembler.Parse(file, inf)
	if err != nil {
		return
	}

	prog, err = assembler.Assemble(tree, nil)
	return
}

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
