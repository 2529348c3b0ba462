package shell

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"src.rill.dev/pkg/diag"
	"src.rill.dev/pkg/eval"
	"src.rill.dev/pkg/lex"
	"src.rill.dev/pkg/store"
)

// Configuration for the interactive mode.
type interactCfg struct {
	NoRc bool
	RC   string
	DB   string
}

// interact runs an interactive session: it reads input units, evaluates each
// against the shared evaler, and shows errors without terminating the
// session.
func interact(ev *eval.Evaler, fds [3]*os.File, cfg *interactCfg) {
	rc := rcConfig{Prompt: ">>> "}
	if !cfg.NoRc {
		path := cfg.RC
		if path == "" {
			path, _ = rcPath()
		}
		if err := loadRC(path, &rc); err != nil {
			fmt.Fprintln(fds[2], "Warning:", err)
		}
	}

	tty := isatty.IsTerminal(fds[0].Fd())

	var st *store.Store
	dbPath := cfg.DB
	if dbPath == "" {
		dbPath = rc.DB
	}
	if dbPath == "" {
		dbPath, _ = defaultDBPath()
	}
	if dbPath != "" {
		var err error
		st, err = store.Open(dbPath)
		if err != nil {
			fmt.Fprintln(fds[2], "Warning: cannot open history:", err)
			fmt.Fprintln(fds[2], "Continuing without command history.")
		} else {
			defer st.Close()
		}
	}

	in := bufio.NewScanner(fds[0])
	cmdNum := 0
	for {
		code, ok := readUnit(in, fds[1], rc.Prompt, tty)
		if !ok {
			if tty {
				fmt.Fprintln(fds[1])
			}
			return
		}
		if strings.TrimSpace(code) == "" {
			continue
		}
		cmdNum++
		if st != nil {
			if _, err := st.AddCmd(code); err != nil {
				logger.Println("cannot save command:", err)
			}
		}
		name := fmt.Sprintf("[tty %d]", cmdNum)
		err := ev.EvalSource(lex.Source{Name: name, Code: code})
		if err != nil {
			diag.ShowError(fds[2], err)
		}
	}
}

// readUnit reads one unit of input: a single line, or, when the line ends in
// a colon, every further line until a blank one, so block constructs can be
// entered interactively.
func readUnit(in *bufio.Scanner, out *os.File, prompt string, tty bool) (string, bool) {
	if tty {
		fmt.Fprint(out, prompt)
	}
	if !in.Scan() {
		return "", false
	}
	line := in.Text()
	if !strings.HasSuffix(strings.TrimRight(line, " \t"), ":") {
		return line, true
	}
	var b strings.Builder
	b.WriteString(line)
	for {
		if tty {
			fmt.Fprint(out, "... ")
		}
		if !in.Scan() {
			return b.String(), true
		}
		line = in.Text()
		if strings.TrimSpace(line) == "" {
			return b.String(), true
		}
		b.WriteString("\n")
		b.WriteString(line)
	}
}
