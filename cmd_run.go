package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/loxvm/loxvm/compiler"
	"github.com/loxvm/loxvm/internal/tracelog"
	"github.com/loxvm/loxvm/vm"
)

// runCmd compiles and executes a single Lox source file.
type runCmd struct {
	trace bool
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "Compile and execute a Lox source file" }
func (*runCmd) Usage() string {
	return `run <path>:
  Compile and execute the Lox program at path.
`
}

func (cmd *runCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&cmd.trace, "trace", false, "log a per-instruction execution trace")
}

func (cmd *runCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "run: missing source file")
		return subcommands.ExitUsageError
	}

	tracelog.SetTraceEnabled(cmd.trace)

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "run: %v\n", err)
		return subcommands.ExitFailure
	}

	chunk, err := compiler.Compile(string(data))
	if err != nil {
		return subcommands.ExitFailure
	}

	machine := vm.New()
	machine.SetTrace(cmd.trace)
	if err := machine.Run(chunk); err != nil {
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
