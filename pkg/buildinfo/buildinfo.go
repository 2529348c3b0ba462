// Package buildinfo contains build information.
//
// Build information should be set during compilation by passing
// -ldflags "-X src.rill.dev/pkg/buildinfo.Var=value" to "go build".
package buildinfo

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"src.rill.dev/pkg/prog"
)

// Version identifies the version of rill. On development commits, it
// identifies the next release.
const Version = "v0.3.0"

// VersionSuffix is appended to Version in the output of "rill -version" and
// "rill -buildinfo" to build the full version string. It can be overridden
// when building rill.
var VersionSuffix = "-dev.unknown"

// Program is the buildinfo subprogram.
var Program prog.Program = program{}

type program struct{}

func (program) Run(fds [3]*os.File, f *prog.Flags, _ []string) error {
	if !f.Version && !f.BuildInfo {
		return prog.ErrNotSuitable
	}
	fullVersion := Version + VersionSuffix
	if f.Version {
		fmt.Fprintln(fds[1], fullVersion)
		return nil
	}
	if f.JSON {
		b, err := json.Marshal(struct {
			Version   string `json:"version"`
			GoVersion string `json:"goversion"`
		}{fullVersion, runtime.Version()})
		if err != nil {
			return err
		}
		fmt.Fprintln(fds[1], string(b))
	} else {
		fmt.Fprintln(fds[1], "Version:", fullVersion)
		fmt.Fprintln(fds[1], "Go version:", runtime.Version())
	}
	return nil
}
