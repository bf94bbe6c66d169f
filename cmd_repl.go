package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/subcommands"

	"github.com/loxvm/loxvm/compiler"
	"github.com/loxvm/loxvm/internal/tracelog"
	"github.com/loxvm/loxvm/vm"
)

// replCmd runs an interactive read-compile-interpret loop: each non-empty
// line is compiled and run as its own expression, on a fresh
// VirtualMachine, independent of every prior line.
type replCmd struct {
	trace bool
}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "Start an interactive Lox REPL" }
func (*replCmd) Usage() string {
	return `repl:
  Read lines from stdin; compile and interpret each non-empty one.
`
}

func (cmd *replCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&cmd.trace, "trace", false, "log a per-instruction execution trace")
}

func (cmd *replCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	tracelog.SetTraceEnabled(cmd.trace)

	rl, err := readline.New("lox> ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "repl: %v\n", err)
		return subcommands.ExitFailure
	}
	defer rl.Close()

	hadError := false
	for {
		line, err := rl.Readline()
		if err == io.EOF || err == readline.ErrInterrupt {
			break
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "repl: %v\n", err)
			return subcommands.ExitFailure
		}

		if strings.TrimSpace(line) == "" {
			continue
		}

		chunk, err := compiler.Compile(line)
		if err != nil {
			hadError = true
			continue
		}

		machine := vm.New()
		machine.SetTrace(cmd.trace)
		if err := machine.Run(chunk); err != nil {
			hadError = true
		}
	}

	if hadError {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
