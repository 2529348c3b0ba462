// Package progtest provides a fixture for testing subprograms end to end:
// it runs a Program with the standard files connected to pipes and captures
// the exit status and both output streams.
package progtest

import (
	"os"
	"strings"

	"src.rill.dev/pkg/must"
	"src.rill.dev/pkg/prog"
)

// Result is the outcome of running a subprogram once.
type Result struct {
	Exit   int
	Stdout string
	Stderr string
}

// Run runs a subprogram with empty standard input. args should not include
// the program name.
func Run(p prog.Program, args ...string) Result {
	return RunWithStdin(p, "", args...)
}

// RunWithStdin is Run with the given standard input.
func RunWithStdin(p prog.Program, stdin string, args ...string) Result {
	r0, w0 := must.Pipe()
	r1, w1 := must.Pipe()
	r2, w2 := must.Pipe()

	go func() {
		if stdin != "" {
			w0.WriteString(stdin)
		}
		w0.Close()
	}()

	// Drain the output pipes concurrently so a noisy program cannot fill a
	// pipe buffer and deadlock.
	stdout := make(chan string, 1)
	stderr := make(chan string, 1)
	go func() { stdout <- string(must.ReadAllAndClose(r1)) }()
	go func() { stderr <- string(must.ReadAllAndClose(r2)) }()

	exit := prog.Run([3]*os.File{r0, w1, w2}, append([]string{"rill"}, args...), p)
	w1.Close()
	w2.Close()
	r0.Close()

	return Result{Exit: exit, Stdout: <-stdout, Stderr: <-stderr}
}

// StdoutContains reports whether the captured stdout contains s.
func (r Result) StdoutContains(s string) bool { return strings.Contains(r.Stdout, s) }

// StderrContains reports whether the captured stderr contains s.
func (r Result) StderrContains(s string) bool { return strings.Contains(r.Stderr, s) }
