// Package cpu implements the execution engine.
//
// The engine is architecture independent: it fetches the opcode at the
// program counter, decodes it with the instruction table of the
// architecture, and hands the operand to a Behaviour, which resolves the
// addressing mode and runs the semantic routine of the mnemonic. Registers
// and memory are mutated in place; the caller drives execution by calling
// Step.
package cpu
