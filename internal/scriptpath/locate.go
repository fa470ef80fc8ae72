package scriptpath

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// HostBuildDir is the directory name the host runs from during development.
// Locate treats it as a child of the application directory.
const HostBuildDir = "src-tauri"

// ErrScriptNotFound is returned by Locate when the script is absent.
var ErrScriptNotFound = errors.New("Failed to find Python script (" + ScriptName + ") in app directory!")

// Locate returns the absolute path of ScriptName inside the application
// directory rooted at dir. If dir is the host build directory, its parent is
// used instead.
func Locate(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve app directory: %w", err)
	}
	if filepath.Base(abs) == HostBuildDir {
		abs = filepath.Dir(abs)
	}

	script := filepath.Join(abs, ScriptName)
	info, err := os.Stat(script)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrScriptNotFound
		}
		return "", fmt.Errorf("stat script: %w", err)
	}
	if info.IsDir() {
		return "", ErrScriptNotFound
	}
	return script, nil
}
