package diff_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhishekk2305/ai-safety-sandbox/internal/diff"
	"github.com/abhishekk2305/ai-safety-sandbox/internal/snapshot"
	"github.com/abhishekk2305/ai-safety-sandbox/internal/workspace"
	"github.com/abhishekk2305/ai-safety-sandbox/pkg/errclass"
	"github.com/abhishekk2305/ai-safety-sandbox/pkg/model"
)

func setup(t *testing.T) (*workspace.Manager, string, string) {
	ws := workspace.NewManager(t.TempDir())
	require.NoError(t, ws.Init())
	root, err := ws.Path(model.EnvDev)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(root, "same.txt"), []byte("same"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "edited.txt"), []byte("v1"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "removed.txt"), []byte("x"), 0644))

	snap, err := snapshot.NewManager(ws).Create(model.EnvDev)
	require.NoError(t, err)
	return ws, root, snap.Name
}

func TestWorkspace_NoChanges(t *testing.T) {
	ws, _, snapName := setup(t)

	result, err := diff.Workspace(ws, model.EnvDev, snapName)
	require.NoError(t, err)
	assert.Equal(t, model.EnvDev, result.Env)
	assert.Equal(t, snapName, result.Snapshot)
	assert.Empty(t, result.Changes)
}

func TestWorkspace_ClassifiesChanges(t *testing.T) {
	ws, root, snapName := setup(t)

	require.NoError(t, os.WriteFile(filepath.Join(root, "edited.txt"), []byte("v2"), 0644))
	require.NoError(t, os.Remove(filepath.Join(root, "removed.txt")))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "added.txt"), []byte("new"), 0644))

	result, err := diff.Workspace(ws, model.EnvDev, snapName)
	require.NoError(t, err)

	// Sorted by path.
	require.Len(t, result.Changes, 3)
	assert.Equal(t, diff.Change{Path: "edited.txt", Type: diff.ChangeModified}, result.Changes[0])
	assert.Equal(t, diff.Change{Path: "removed.txt", Type: diff.ChangeRemoved}, result.Changes[1])
	assert.Equal(t, diff.Change{Path: filepath.Join("sub", "added.txt"), Type: diff.ChangeAdded}, result.Changes[2])
}

func TestWorkspace_SameSizeDifferentContent(t *testing.T) {
	ws, root, snapName := setup(t)

	// "v1" -> "vX": identical length, different bytes. Hash comparison must
	// still catch it.
	require.NoError(t, os.WriteFile(filepath.Join(root, "edited.txt"), []byte("vX"), 0644))

	result, err := diff.Workspace(ws, model.EnvDev, snapName)
	require.NoError(t, err)
	require.Len(t, result.Changes, 1)
	assert.Equal(t, diff.ChangeModified, result.Changes[0].Type)
}

func TestWorkspace_UnknownSnapshot(t *testing.T) {
	ws, _, _ := setup(t)

	_, err := diff.Workspace(ws, model.EnvDev, "dev-20990101T000000Z")
	require.Error(t, err)
	assert.ErrorIs(t, err, errclass.ErrSnapshotNotFound)
}
