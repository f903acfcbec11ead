package workspace_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhishekk2305/ai-safety-sandbox/internal/workspace"
	"github.com/abhishekk2305/ai-safety-sandbox/pkg/errclass"
	"github.com/abhishekk2305/ai-safety-sandbox/pkg/model"
)

func TestInit_CreatesLayout(t *testing.T) {
	base := t.TempDir()
	mgr := workspace.NewManager(base)
	require.NoError(t, mgr.Init())

	for _, dir := range []string{
		filepath.Join(base, "workspaces", "dev"),
		filepath.Join(base, "workspaces", "staging"),
		filepath.Join(base, "workspaces", "prod"),
		filepath.Join(base, "snapshots"),
		filepath.Join(base, "logs"),
		filepath.Join(base, "locks"),
	} {
		info, err := os.Stat(dir)
		require.NoError(t, err, dir)
		assert.True(t, info.IsDir(), dir)
	}
}

func TestInit_Idempotent(t *testing.T) {
	mgr := workspace.NewManager(t.TempDir())
	require.NoError(t, mgr.Init())
	assert.NoError(t, mgr.Init())
}

func TestPath(t *testing.T) {
	base := t.TempDir()
	mgr := workspace.NewManager(base)

	root, err := mgr.Path(model.EnvStaging)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "workspaces", "staging"), root)

	_, err = mgr.Path(model.Environment("qa"))
	require.Error(t, err)
	assert.ErrorIs(t, err, errclass.ErrEnvInvalid)
}

func TestAuditLogPath(t *testing.T) {
	base := t.TempDir()
	mgr := workspace.NewManager(base)
	assert.Equal(t, filepath.Join(base, "logs", "actions.jsonl"), mgr.AuditLogPath())
}

func TestSeed(t *testing.T) {
	base := t.TempDir()
	mgr := workspace.NewManager(base)
	require.NoError(t, mgr.Init())

	created, err := mgr.Seed(model.EnvDev)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join("tmp", "output.txt"),
		filepath.Join("old", "legacy.sql"),
	}, created)

	root, _ := mgr.Path(model.EnvDev)
	data, err := os.ReadFile(filepath.Join(root, "tmp", "output.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	data, err = os.ReadFile(filepath.Join(root, "old", "legacy.sql"))
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestSeed_LeavesExistingFilesAlone(t *testing.T) {
	base := t.TempDir()
	mgr := workspace.NewManager(base)
	require.NoError(t, mgr.Init())

	root, _ := mgr.Path(model.EnvDev)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "tmp"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "tmp", "output.txt"), []byte("mine"), 0644))

	created, err := mgr.Seed(model.EnvDev)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join("old", "legacy.sql")}, created)

	data, _ := os.ReadFile(filepath.Join(root, "tmp", "output.txt"))
	assert.Equal(t, "mine", string(data))
}
