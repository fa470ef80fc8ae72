// Package testutil provides shared test helpers for scriptgate tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// ScriptName is the file name every accepted script path ends with.
const ScriptName = "__print_numbers.py"

// WriteScript writes body to dir/__print_numbers.py and returns the path.
// Tests run scripts with sh as the interpreter, so body is shell.
func WriteScript(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, ScriptName)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

// TempScript writes body to a fresh temp directory. See WriteScript.
func TempScript(t *testing.T, body string) string {
	t.Helper()
	return WriteScript(t, t.TempDir(), body)
}

// ShortTempDir creates a short temp directory for socket files.
// Unix socket paths have a length limit (~104 chars on macOS, ~108 on Linux)
// that t.TempDir() can exceed.
func ShortTempDir(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("/tmp", "sock")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })
	return dir
}
