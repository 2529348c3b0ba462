// Rill is an interpreter for the rill programming language: a small,
// indentation-structured language with first-class functions, pipelines and
// task-based concurrency. It is suitable for both interactive use and
// scripting.
package main

import (
	"os"

	"src.rill.dev/pkg/buildinfo"
	"src.rill.dev/pkg/lsp"
	"src.rill.dev/pkg/prog"
	"src.rill.dev/pkg/shell"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(buildinfo.Program, lsp.Program{}, shell.Program{})))
}
