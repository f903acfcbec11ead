package snapshot_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhishekk2305/ai-safety-sandbox/internal/snapshot"
	"github.com/abhishekk2305/ai-safety-sandbox/internal/workspace"
	"github.com/abhishekk2305/ai-safety-sandbox/pkg/errclass"
	"github.com/abhishekk2305/ai-safety-sandbox/pkg/model"
)

func setupWorkspace(t *testing.T) *workspace.Manager {
	ws := workspace.NewManager(t.TempDir())
	require.NoError(t, ws.Init())
	return ws
}

func populate(t *testing.T, ws *workspace.Manager, env model.Environment) string {
	root, err := ws.Path(env)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "data"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "data", "file.txt"), []byte("content"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "top.txt"), []byte("top"), 0644))
	// An empty directory must survive the snapshot round trip.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty"), 0755))
	return root
}

func TestCreate(t *testing.T) {
	ws := setupWorkspace(t)
	populate(t, ws, model.EnvDev)
	mgr := snapshot.NewManager(ws)

	info, err := mgr.Create(model.EnvDev)
	require.NoError(t, err)
	assert.Equal(t, model.EnvDev, info.Env)
	assert.True(t, strings.HasPrefix(info.Name, "dev-"))

	data, err := os.ReadFile(filepath.Join(info.Path, "data", "file.txt"))
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))

	emptyInfo, err := os.Stat(filepath.Join(info.Path, "empty"))
	require.NoError(t, err)
	assert.True(t, emptyInfo.IsDir())
}

func TestCreate_SnapshotIsIndependentCopy(t *testing.T) {
	ws := setupWorkspace(t)
	root := populate(t, ws, model.EnvDev)
	mgr := snapshot.NewManager(ws)

	info, err := mgr.Create(model.EnvDev)
	require.NoError(t, err)

	// Later workspace mutations must not leak into the snapshot.
	require.NoError(t, os.WriteFile(filepath.Join(root, "top.txt"), []byte("mutated"), 0644))

	data, err := os.ReadFile(filepath.Join(info.Path, "top.txt"))
	require.NoError(t, err)
	assert.Equal(t, "top", string(data))
}

func TestCreate_SameSecondGetsDistinctNames(t *testing.T) {
	ws := setupWorkspace(t)
	populate(t, ws, model.EnvDev)
	mgr := snapshot.NewManager(ws)

	first, err := mgr.Create(model.EnvDev)
	require.NoError(t, err)
	second, err := mgr.Create(model.EnvDev)
	require.NoError(t, err)

	assert.NotEqual(t, first.Name, second.Name)
	assert.NotEqual(t, first.Path, second.Path)
}

func TestCreate_InvalidEnv(t *testing.T) {
	ws := setupWorkspace(t)
	mgr := snapshot.NewManager(ws)

	_, err := mgr.Create(model.Environment("qa"))
	require.Error(t, err)
	assert.ErrorIs(t, err, errclass.ErrEnvInvalid)
}

func TestList_NewestFirstAndFiltered(t *testing.T) {
	ws := setupWorkspace(t)
	snapRoot := ws.SnapshotRoot()
	for _, name := range []string{
		"dev-20250101T000000Z",
		"dev-20250102T000000Z",
		"prod-20250101T120000Z",
		"not-a-snapshot",
	} {
		require.NoError(t, os.Mkdir(filepath.Join(snapRoot, name), 0755))
	}

	mgr := snapshot.NewManager(ws)

	devOnly, err := mgr.List(model.EnvDev)
	require.NoError(t, err)
	require.Len(t, devOnly, 2)
	assert.Equal(t, "dev-20250102T000000Z", devOnly[0].Name)
	assert.Equal(t, "dev-20250101T000000Z", devOnly[1].Name)

	all, err := mgr.List("")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestResolve(t *testing.T) {
	ws := setupWorkspace(t)
	name := "dev-20250101T000000Z"
	require.NoError(t, os.Mkdir(filepath.Join(ws.SnapshotRoot(), name), 0755))

	mgr := snapshot.NewManager(ws)

	path, err := mgr.Resolve(model.EnvDev, name)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(ws.SnapshotRoot(), name), path)
}

func TestResolve_Missing(t *testing.T) {
	ws := setupWorkspace(t)
	mgr := snapshot.NewManager(ws)

	_, err := mgr.Resolve(model.EnvDev, "dev-20990101T000000Z")
	require.Error(t, err)
	assert.ErrorIs(t, err, errclass.ErrSnapshotNotFound)
}

func TestResolve_EnvMismatch(t *testing.T) {
	ws := setupWorkspace(t)
	name := "prod-20250101T000000Z"
	require.NoError(t, os.Mkdir(filepath.Join(ws.SnapshotRoot(), name), 0755))

	mgr := snapshot.NewManager(ws)
	_, err := mgr.Resolve(model.EnvDev, name)
	require.Error(t, err)
	assert.ErrorIs(t, err, errclass.ErrSnapshotNotFound)
}

func TestResolve_RejectsTraversalNames(t *testing.T) {
	ws := setupWorkspace(t)
	mgr := snapshot.NewManager(ws)

	_, err := mgr.Resolve(model.EnvDev, "../escape")
	require.Error(t, err)
	assert.ErrorIs(t, err, errclass.ErrNameInvalid)
}
