package testutil

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
)

var modName = regexp.MustCompile(`(?m)^module +([\w\-_/.]+)\s*$`)

const moduleName = "minicrossword"

func isWorkspaceRoot(currentdir string) bool {
	mod, err := os.ReadFile(filepath.Join(currentdir, "go.mod"))
	if err != nil {
		return false
	}
	matches := modName.FindSubmatch(mod)
	return len(matches) >= 2 && string(matches[1]) == moduleName
}

// WorkspaceRoot walks up from the working directory to the directory holding
// this module's go.mod.
func WorkspaceRoot() (string, error) {
	currentdir, err := filepath.Abs(".")
	if err != nil {
		return "", err
	}

	for {
		if isWorkspaceRoot(currentdir) {
			return currentdir, nil
		}
		parent := filepath.Dir(currentdir)
		if parent == currentdir {
			return "", os.ErrNotExist
		}
		currentdir = parent
	}
}

// MiniPagePath is the saved puzzle page shared by the tests of several packages.
func MiniPagePath(t testing.TB) string {
	root, err := WorkspaceRoot()
	if err != nil {
		t.Fatal(err)
	}
	return filepath.Join(root, "lib", "clues", "testdata", "mini.html")
}

func ReadMiniPage(t testing.TB) string {
	contents, err := os.ReadFile(MiniPagePath(t))
	if err != nil {
		t.Fatal(err)
	}
	return string(contents)
}
