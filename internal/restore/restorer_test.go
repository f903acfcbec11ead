package restore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhishekk2305/ai-safety-sandbox/internal/restore"
	"github.com/abhishekk2305/ai-safety-sandbox/internal/snapshot"
	"github.com/abhishekk2305/ai-safety-sandbox/internal/workspace"
	"github.com/abhishekk2305/ai-safety-sandbox/pkg/errclass"
	"github.com/abhishekk2305/ai-safety-sandbox/pkg/model"
)

func setup(t *testing.T) (*workspace.Manager, string) {
	ws := workspace.NewManager(t.TempDir())
	require.NoError(t, ws.Init())
	root, err := ws.Path(model.EnvDev)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(root, "keep.txt"), []byte("original"), 0644))
	return ws, root
}

func TestRestore_RevertsMutations(t *testing.T) {
	ws, root := setup(t)

	snap, err := snapshot.NewManager(ws).Create(model.EnvDev)
	require.NoError(t, err)

	// Mutate after the snapshot: modify, add, delete.
	require.NoError(t, os.WriteFile(filepath.Join(root, "keep.txt"), []byte("changed"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "new.txt"), []byte("x"), 0644))

	require.NoError(t, restore.NewRestorer(ws).Restore(model.EnvDev, snap.Name))

	data, err := os.ReadFile(filepath.Join(root, "keep.txt"))
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))
	_, err = os.Stat(filepath.Join(root, "new.txt"))
	assert.True(t, os.IsNotExist(err), "files added after the snapshot must be gone")
}

func TestRestore_RoundTripPreservesEmptyDirs(t *testing.T) {
	ws, root := setup(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty"), 0755))

	snap, err := snapshot.NewManager(ws).Create(model.EnvDev)
	require.NoError(t, err)

	require.NoError(t, os.RemoveAll(filepath.Join(root, "empty")))
	require.NoError(t, restore.NewRestorer(ws).Restore(model.EnvDev, snap.Name))

	info, err := os.Stat(filepath.Join(root, "empty"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestRestore_SnapshotSurvives(t *testing.T) {
	ws, _ := setup(t)

	snaps := snapshot.NewManager(ws)
	snap, err := snaps.Create(model.EnvDev)
	require.NoError(t, err)

	require.NoError(t, restore.NewRestorer(ws).Restore(model.EnvDev, snap.Name))

	// Restoring reads from the snapshot but never mutates it; it can be
	// restored again.
	require.NoError(t, restore.NewRestorer(ws).Restore(model.EnvDev, snap.Name))
	data, err := os.ReadFile(filepath.Join(snap.Path, "keep.txt"))
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))
}

func TestRestore_UnknownSnapshot(t *testing.T) {
	ws, _ := setup(t)

	err := restore.NewRestorer(ws).Restore(model.EnvDev, "dev-20990101T000000Z")
	require.Error(t, err)
	assert.ErrorIs(t, err, errclass.ErrSnapshotNotFound)
}

func TestRestore_EnvMismatch(t *testing.T) {
	ws, _ := setup(t)

	snap, err := snapshot.NewManager(ws).Create(model.EnvDev)
	require.NoError(t, err)

	err = restore.NewRestorer(ws).Restore(model.EnvProd, snap.Name)
	require.Error(t, err)
	assert.ErrorIs(t, err, errclass.ErrSnapshotNotFound)
}
