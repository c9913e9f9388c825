// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/ezrec/asm8/cpu"
	"github.com/ezrec/asm8/disasm"
)

var disFlags struct {
	origin uint64
}

var disCmd = &cobra.Command{
	Use:   "dis imageFile",
	Short: "Disassemble a memory image",
	Long: `Dis loads a binary image at the origin and decodes it one instruction
at a time. Decoding stops at the first byte that is not an opcode.
`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		tgt := selected()
		file := args[0]

		image, err := os.ReadFile(file)
		if err != nil {
			log.Fatalf("%v: %v", file, err)
		}

		origin := tgt.Arch.Origin
		if cmd.Flags().Changed("origin") {
			origin = disFlags.origin
		}

		mem := cpu.NewMemory(tgt.Arch.AddressWidth, tgt.Arch.ByteOrder)
		mem.Load(origin, image, cpu.MARK_PROGRAM)

		dis := &disasm.Disassembler{Verbose: verbose, Arch: tgt.Arch}
		transcript, err := dis.Disassemble(mem, origin, origin+uint64(len(image)))
		_, werr := transcript.WriteTo(os.Stdout)
		if werr != nil {
			log.Fatalf("%v", werr)
		}
		if err != nil {
			log.Fatalf("%v: %v", file, err)
		}
	},
}

func init() {
	disCmd.Flags().Uint64Var(&disFlags.origin, "origin", 0, "load address of the image")

	rootCmd.AddCommand(disCmd)
}
