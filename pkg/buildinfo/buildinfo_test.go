package buildinfo

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"testing"

	"src.rill.dev/pkg/prog"
	"src.rill.dev/pkg/prog/progtest"
)

func TestVersion(t *testing.T) {
	r := progtest.Run(Program, "-version")
	if want := Version + VersionSuffix + "\n"; r.Stdout != want {
		t.Errorf("-version printed %q, want %q", r.Stdout, want)
	}
}

func TestBuildInfo(t *testing.T) {
	r := progtest.Run(Program, "-buildinfo")
	want := fmt.Sprintf("Version: %s\nGo version: %s\n",
		Version+VersionSuffix, runtime.Version())
	if r.Stdout != want {
		t.Errorf("-buildinfo printed %q, want %q", r.Stdout, want)
	}
}

func TestBuildInfo_JSON(t *testing.T) {
	r := progtest.Run(Program, "-buildinfo", "-json")
	var got struct {
		Version   string `json:"version"`
		GoVersion string `json:"goversion"`
	}
	if err := json.Unmarshal([]byte(r.Stdout), &got); err != nil {
		t.Fatalf("-buildinfo -json printed %q: %v", r.Stdout, err)
	}
	if got.Version != Version+VersionSuffix || got.GoVersion != runtime.Version() {
		t.Errorf("got %+v", got)
	}
}

func TestNotSuitableWithoutFlags(t *testing.T) {
	err := Program.Run([3]*os.File{}, &prog.Flags{}, nil)
	if err != prog.ErrNotSuitable {
		t.Errorf("got error %v, want ErrNotSuitable", err)
	}
}
