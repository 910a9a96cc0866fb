package bootstrap

import (
	"fmt"
	"os"
	"path/filepath"
)

// Request describes a single workspace setup run. It is built once from the
// form (or CLI flags) and never mutated while the run executes.
type Request struct {
	TargetDir string
	Selected  []string // names ticked in the catalog
	Custom    []string // names typed into the free-text field
}

// ErrDirectoryInvalid reports a target directory that cannot host a run.
type ErrDirectoryInvalid struct {
	Dir    string
	Reason string
}

func (e *ErrDirectoryInvalid) Error() string {
	return fmt.Sprintf("invalid target directory %s: %s", e.Dir, e.Reason)
}

// Validate checks the target directory before any subprocess is launched.
// The run must not start against a missing, non-directory, or read-only path.
func (r Request) Validate() error {
	if r.TargetDir == "" {
		return &ErrDirectoryInvalid{Dir: r.TargetDir, Reason: "no directory selected"}
	}

	info, err := os.Stat(r.TargetDir)
	if err != nil {
		if os.IsNotExist(err) {
			return &ErrDirectoryInvalid{Dir: r.TargetDir, Reason: "does not exist"}
		}
		return &ErrDirectoryInvalid{Dir: r.TargetDir, Reason: err.Error()}
	}
	if !info.IsDir() {
		return &ErrDirectoryInvalid{Dir: r.TargetDir, Reason: "not a directory"}
	}

	// Probe writability directly; permission bits lie on some filesystems.
	probe, err := os.CreateTemp(r.TargetDir, ".pystart-probe-*")
	if err != nil {
		return &ErrDirectoryInvalid{Dir: r.TargetDir, Reason: "not writable"}
	}
	probe.Close()
	os.Remove(probe.Name())

	return nil
}

// VenvDir returns the virtual environment path for this request.
func (r Request) VenvDir(venvName string) string {
	return filepath.Join(r.TargetDir, venvName)
}
