// Command pl0dump compiles a PL/0 source file and prints its
// disassembly without running it.
package main

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/urfave/cli"

	"github.com/pl0-lang/pl0/compiler"
	"github.com/pl0-lang/pl0/parser"
)

func dump(path string) error {
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

	fmt.Print(chunk.String())
	return nil
}

func main() {
	app := cli.NewApp()
	app.Name = "pl0dump"
	app.Usage = "compile a PL/0 source file and print its bytecode"
	app.ArgsUsage = "file"
	app.Action = func(c *cli.Context) error {
		if c.NArg() < 1 {
			return cli.NewExitError("expected a source file argument", 1)
		}
		return dump(c.Args().First())
	}

	app.Run(os.Args)
}
