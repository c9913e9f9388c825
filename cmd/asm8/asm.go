// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"log"
	"os"
	"strings"

	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"

	"github.com/ezrec/asm8/asm"
)

var asmFlags struct {
	output  string
	tree    bool
	listing bool
	origin  uint64
	wrap    bool
	defines []string
}

var asmCmd = &cobra.Command{
	Use:   "asm sourceFile",
	Short: "Assemble a source file into a memory image",
	Long: `Asm runs the pre-processors, the parser, the linker and the two pass
assembler over one source file. #import directives name further source
files, relative to the importing file, which are assembled first.

The image between the lowest and highest assembled address is written to
the output file. A listing of every assembled element can be printed.
`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		tgt := selected()
		file := args[0]

		prog, tree, err := compile(tgt, file, func(assembler *asm.Assembler) {
			if cmd.Flags().Changed("origin") {
				assembler.Origin = asmFlags.origin
			}
			assembler.WrapBranches = asmFlags.wrap
			for _, define := range asmFlags.defines {
				name, value, ok := strings.Cut(define, "=")
				if !ok {
					value = "1"
				}
				assembler.Predefine(name, value)
			}
		})
		if asmFlags.tree && tree != nil {
			pp.Println(tree)
		}
		if err != nil {
			log.Fatalf("%v: %v", file, err)
		}
		for _, diag := range tree.Diagnostics {
			log.Printf("%v", diag)
		}

		if asmFlags.listing {
			_, err = prog.Transcript.WriteTo(os.Stdout)
			if err != nil {
				log.Fatalf("%v: %v", file, err)
			}
		}

		if len(asmFlags.output) != 0 {
			err = os.WriteFile(asmFlags.output, prog.Binary(), 0o644)
			if err != nil {
				log.Fatalf("%v: %v", asmFlags.output, err)
			}
		}
	},
}

func init() {
	flags := asmCmd.Flags()
	flags.StringVarP(&asmFlags.output, "output", "o", "", "binary image to write")
	flags.BoolVar(&asmFlags.tree, "tree", false, "dump the syntax tree")
	flags.BoolVarP(&asmFlags.listing, "listing", "l", false, "print the assembly listing")
	flags.Uint64Var(&asmFlags.origin, "origin", 0, "address of the first element")
	flags.BoolVar(&asmFlags.wrap, "wrap-branches", false, "truncate out of range branches")
	flags.StringArrayVarP(&asmFlags.defines, "define", "D", nil, "predefine an equate, as name=value")

	rootCmd.AddCommand(asmCmd)
}
