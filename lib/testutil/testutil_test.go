package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWorkspaceRoot(t *testing.T) {
	root, err := WorkspaceRoot()
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(root, "go.mod"))
	require.NoError(t, err)
	require.True(t, isWorkspaceRoot(root))
	require.False(t, isWorkspaceRoot(t.TempDir()))
}

func TestReadMiniPage(t *testing.T) {
	require.Contains(t, ReadMiniPage(t), "xwd__clue-list--wrapper")
}
