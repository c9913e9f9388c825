// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/ezrec/asm8/asm"
	"github.com/ezrec/asm8/emulator"
)

var runFlags struct {
	steps  int
	breaks []int
}

var runCmd = &cobra.Command{
	Use:   "run sourceFile",
	Short: "Assemble and run a source file",
	Long: `Run assembles a source file and executes it from its first instruction
until the program counter leaves the assembled code, a breakpoint line is
reached, or the step limit runs out. The registers are printed at the end.
`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		tgt := selected()
		file := args[0]

		emu := emulator.NewEmulator(tgt.Arch, tgt.Behaviour)
		emu.Verbose = verbose

		prog, _, err := compile(tgt, file, func(assembler *asm.Assembler) {
			for name, value := range emu.Defines() {
				assembler.Predefine(name, value)
			}
		})
		if err != nil {
			log.Fatalf("%v: %v", file, err)
		}
		emu.Program = prog

		for _, line := range runFlags.breaks {
			err = emu.SetLineBreakpoint(file, line)
			if err != nil {
				log.Fatalf("%v:%d: %v", file, line, err)
			}
		}

		err = emu.Reset()
		if err != nil {
			log.Fatalf("%v: %v", file, err)
		}

		_, err = emu.Run(runFlags.steps)
		switch {
		case errors.Is(err, emulator.ErrBreakpoint):
			fmt.Printf("break at line %d\n", emu.LineNo())
		case errors.Is(err, emulator.ErrStepLimit):
			fmt.Printf("stopped after %d steps\n", emu.Steps())
		case err != nil:
			log.Fatalf("%v", err)
		}

		fmt.Print(emu.Cpu.String())
	},
}

func init() {
	flags := runCmd.Flags()
	flags.IntVar(&runFlags.steps, "steps", 0, "maximum instructions to run, 0 for no limit")
	flags.IntSliceVar(&runFlags.breaks, "break", nil, "source lines to stop before")

	rootCmd.AddCommand(runCmd)
}
