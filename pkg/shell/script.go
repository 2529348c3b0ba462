package shell

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"src.rill.dev/pkg/diag"
	"src.rill.dev/pkg/eval"
	"src.rill.dev/pkg/lex"
	"src.rill.dev/pkg/parse"
)

// Configuration for the script mode.
type scriptCfg struct {
	Cmd         bool
	CompileOnly bool
	JSON        bool
}

// Executes a script from a file or, with Cmd, from the first argument.
func script(ev *eval.Evaler, fds [3]*os.File, args []string, cfg *scriptCfg) int {
	arg0 := args[0]

	var name, code string
	if cfg.Cmd {
		name = "code from -c"
		code = arg0
	} else {
		var err error
		name, err = filepath.Abs(arg0)
		if err != nil {
			fmt.Fprintf(fds[2],
				"cannot get full path of script %q: %v\n", arg0, err)
			return 2
		}
		code, err = readFileUTF8(name)
		if err != nil {
			fmt.Fprintf(fds[2], "cannot read script %q: %v\n", name, err)
			return 2
		}
	}

	src := lex.Source{Name: name, Code: code, IsFile: true}
	if cfg.CompileOnly {
		_, err := parse.Parse(src)
		if cfg.JSON {
			fmt.Fprintf(fds[1], "%s\n", errorToJSON(err))
		} else if err != nil {
			diag.ShowError(fds[2], err)
		}
		if err != nil {
			return 2
		}
		return 0
	}

	if err := ev.EvalSource(src); err != nil {
		diag.ShowError(fds[2], err)
		return 2
	}
	return 0
}

var errSourceNotUTF8 = errors.New("source is not UTF-8")

func readFileUTF8(fname string) (string, error) {
	bytes, err := os.ReadFile(fname)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(bytes) {
		return "", errSourceNotUTF8
	}
	return string(bytes), nil
}

// An auxiliary struct for converting errors with diagnostic information to
// JSON.
type errorInJSON struct {
	FileName string `json:"fileName"`
	Line     int    `json:"line"`
	Col      int    `json:"col"`
	Message  string `json:"message"`
}

// Converts a lex or parse error into a JSON array, empty when err is nil.
func errorToJSON(err error) []byte {
	converted := []errorInJSON{}
	var derr *diag.Error
	if errors.As(err, &derr) {
		converted = append(converted, errorInJSON{
			derr.Context.Name, derr.Context.Pos.Line, derr.Context.Pos.Col,
			derr.Message})
	} else if err != nil {
		converted = append(converted, errorInJSON{Message: err.Error()})
	}

	out, errMarshal := json.Marshal(converted)
	if errMarshal != nil {
		return []byte(`[{"message":"unable to convert the errors to JSON"}]`)
	}
	return out
}
