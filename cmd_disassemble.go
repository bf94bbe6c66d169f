package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/loxvm/loxvm/bytecode"
	"github.com/loxvm/loxvm/compiler"
)

// disassembleCmd compiles a source file and prints its bytecode listing
// without executing it.
type disassembleCmd struct{}

func (*disassembleCmd) Name() string     { return "disassemble" }
func (*disassembleCmd) Synopsis() string { return "Compile a Lox source file and print its bytecode" }
func (*disassembleCmd) Usage() string {
	return `disassemble <path>:
  Compile path and print its instruction listing; does not execute it.
`
}

func (*disassembleCmd) SetFlags(_ *flag.FlagSet) {}

func (*disassembleCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "disassemble: missing source file")
		return subcommands.ExitUsageError
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "disassemble: %v\n", err)
		return subcommands.ExitFailure
	}

	chunk, err := compiler.Compile(string(data))
	if err != nil {
		return subcommands.ExitFailure
	}

	bytecode.DisassembleChunk(chunk, args[0], os.Stdout)
	return subcommands.ExitSuccess
}
