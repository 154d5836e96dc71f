// Command pl0 compiles and runs a PL/0 source file.
package main

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/urfave/cli"

	"github.com/pl0-lang/pl0/bytecode"
	"github.com/pl0-lang/pl0/compiler"
	"github.com/pl0-lang/pl0/parser"
	"github.com/pl0-lang/pl0/vm"
)

func run(path string, debug bool) error {
	src, err := ioutil.ReadFile(path)
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("reading %s: %s", path, err), 1)
	}

	prog, errs := parser.Parse(string(src))
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e)
		}
		return cli.NewExitError("failed to parse", 1)
	}

	chunk, err := compiler.Compile(prog)
	if err != nil {
		if errs, ok := err.(compiler.Errors); ok {
			for _, e := range errs {
				fmt.Fprintln(os.Stderr, e)
			}
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		return cli.NewExitError("failed to compile", 1)
	}

	machine := vm.New(vm.Hooks{
		Write: vm.DefaultWrite(os.Stdout),
		Read:  vm.DefaultRead(os.Stdin),
	})
	if debug {
		machine.SetTrace(func(pc int, instr bytecode.Instruction, base, top int, tos int32) {
			fmt.Fprintf(os.Stderr, "%04d: %-24s base=%d top=%d tos=%d\n", pc, instr, base, top, tos)
		})
	}

	if err := machine.Load(chunk); err != nil {
		return cli.NewExitError(fmt.Sprintf("loading chunk: %s", err), 1)
	}
	if err := machine.Run(); err != nil {
		return cli.NewExitError(fmt.Sprintf("%s", err), 1)
	}
	return nil
}

func main() {
	app := cli.NewApp()
	app.Name = "pl0"
	app.Usage = "compile and run a PL/0 source file"
	app.ArgsUsage = "file"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "debug",
			Usage: "trace each instruction as it executes",
		},
	}
	app.Action = func(c *cli.Context) error {
		if c.NArg() < 1 {
			return cli.NewExitError("expected a source file argument", 1)
		}
		return run(c.Args().First(), c.Bool("debug"))
	}

	app.Run(os.Args)
}
