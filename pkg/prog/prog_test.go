package prog_test

import (
	"errors"
	"os"
	"testing"

	. "src.rill.dev/pkg/prog"
	"src.rill.dev/pkg/prog/progtest"
)

// testProgram runs a canned body, or defers to the next subprogram.
type testProgram struct {
	notSuitable bool
	body        func(fds [3]*os.File, f *Flags, args []string) error
}

func (p testProgram) Run(fds [3]*os.File, f *Flags, args []string) error {
	if p.notSuitable {
		return ErrNotSuitable
	}
	if p.body != nil {
		return p.body(fds, f, args)
	}
	fds[1].WriteString("ran\n")
	return nil
}

func TestCommonFlagHandling(t *testing.T) {
	r := progtest.Run(testProgram{}, "-bad-flag")
	if r.Exit != 2 {
		t.Errorf("bad flag exited %d, want 2", r.Exit)
	}
	if !r.StderrContains("flag provided but not defined: -bad-flag\nUsage:") {
		t.Errorf("bad flag printed %q to stderr", r.Stderr)
	}

	// -h is treated as a bad flag.
	r = progtest.Run(testProgram{}, "-h")
	if r.Exit != 2 || !r.StderrContains("flag provided but not defined: -h") {
		t.Errorf("-h got exit %d, stderr %q", r.Exit, r.Stderr)
	}

	r = progtest.Run(testProgram{}, "-help")
	if r.Exit != 0 || !r.StdoutContains("Usage: rill [flags] [script]") {
		t.Errorf("-help got exit %d, stdout %q", r.Exit, r.Stdout)
	}
}

func TestFlagsArePassedToProgram(t *testing.T) {
	var got *Flags
	var gotArgs []string
	p := testProgram{body: func(fds [3]*os.File, f *Flags, args []string) error {
		got, gotArgs = f, args
		return nil
	}}
	r := progtest.Run(p, "-compileonly", "-json", "prog.rill")
	if r.Exit != 0 {
		t.Fatalf("exited %d, stderr %q", r.Exit, r.Stderr)
	}
	if !got.CompileOnly || !got.JSON {
		t.Errorf("flags not set: %+v", got)
	}
	if len(gotArgs) != 1 || gotArgs[0] != "prog.rill" {
		t.Errorf("args = %v, want [prog.rill]", gotArgs)
	}
}

func TestNoSuitableSubprogram(t *testing.T) {
	r := progtest.Run(testProgram{notSuitable: true})
	if r.Exit != 2 || !r.StderrContains("internal error: no suitable subprogram") {
		t.Errorf("got exit %d, stderr %q", r.Exit, r.Stderr)
	}
}

func TestComposite(t *testing.T) {
	r := progtest.Run(Composite(testProgram{notSuitable: true}, testProgram{}))
	if r.Exit != 0 || r.Stdout != "ran\n" {
		t.Errorf("got exit %d, stdout %q", r.Exit, r.Stdout)
	}
}

func TestBadUsage(t *testing.T) {
	p := testProgram{body: func([3]*os.File, *Flags, []string) error {
		return BadUsage("lorem ipsum")
	}}
	r := progtest.Run(p)
	if r.Exit != 2 || !r.StderrContains("lorem ipsum") || !r.StderrContains("Usage:") {
		t.Errorf("got exit %d, stderr %q", r.Exit, r.Stderr)
	}
}

func TestExit(t *testing.T) {
	p := testProgram{body: func([3]*os.File, *Flags, []string) error {
		return Exit(3)
	}}
	r := progtest.Run(p)
	if r.Exit != 3 || r.Stderr != "" {
		t.Errorf("got exit %d, stderr %q", r.Exit, r.Stderr)
	}

	if Exit(0) != nil {
		t.Errorf("Exit(0) is not nil")
	}
}

func TestGenericError(t *testing.T) {
	p := testProgram{body: func([3]*os.File, *Flags, []string) error {
		return errors.New("some error")
	}}
	r := progtest.Run(p)
	if r.Exit != 2 || !r.StderrContains("some error") {
		t.Errorf("got exit %d, stderr %q", r.Exit, r.Stderr)
	}
}
