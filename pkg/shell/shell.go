// Package shell is the entry point for the interpreter: it runs scripts and
// the interactive read-eval-print loop.
package shell

import (
	"os"

	"src.rill.dev/pkg/eval"
	"src.rill.dev/pkg/logutil"
	"src.rill.dev/pkg/prog"
)

var logger = logutil.GetLogger("[shell] ")

// Program is the interpreter subprogram. It accepts any invocation, so it
// must come last in a Composite.
type Program struct{}

func (p Program) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	ev := eval.NewEvaler()
	ev.Ports = eval.Ports{In: fds[0], Out: fds[1], Err: fds[2]}

	if len(args) > 0 {
		exit := script(ev, fds, args, &scriptCfg{
			Cmd: f.CodeInArg, CompileOnly: f.CompileOnly, JSON: f.JSON})
		return prog.Exit(exit)
	}
	if f.CodeInArg {
		return prog.BadUsage("argument required to -c")
	}
	if f.CompileOnly {
		return prog.BadUsage("missing script to check")
	}

	interact(ev, fds, &interactCfg{NoRc: f.NoRc, RC: f.RC, DB: f.DB})
	return nil
}
