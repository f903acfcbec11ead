package doctor_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhishekk2305/ai-safety-sandbox/internal/doctor"
	"github.com/abhishekk2305/ai-safety-sandbox/internal/snapshot"
	"github.com/abhishekk2305/ai-safety-sandbox/internal/workspace"
	"github.com/abhishekk2305/ai-safety-sandbox/pkg/model"
)

func TestRun_HealthyLayout(t *testing.T) {
	ws := workspace.NewManager(t.TempDir())
	require.NoError(t, ws.Init())

	report := doctor.Run(ws)
	assert.True(t, report.Healthy)
	// One check per environment plus snapshots plus audit.
	assert.Len(t, report.Checks, 5)
	for _, check := range report.Checks {
		assert.True(t, check.OK, check.Name)
	}
}

func TestRun_MissingWorkspace(t *testing.T) {
	ws := workspace.NewManager(t.TempDir())
	require.NoError(t, ws.Init())
	root, err := ws.Path(model.EnvStaging)
	require.NoError(t, err)
	require.NoError(t, os.RemoveAll(root))

	report := doctor.Run(ws)
	assert.False(t, report.Healthy)

	var failed []string
	for _, check := range report.Checks {
		if !check.OK {
			failed = append(failed, check.Name)
		}
	}
	assert.Equal(t, []string{"workspace:staging"}, failed)
}

func TestRun_ReportsSnapshotCount(t *testing.T) {
	ws := workspace.NewManager(t.TempDir())
	require.NoError(t, ws.Init())
	_, err := snapshot.NewManager(ws).Create(model.EnvDev)
	require.NoError(t, err)

	report := doctor.Run(ws)
	require.True(t, report.Healthy)

	found := false
	for _, check := range report.Checks {
		if check.Name == "snapshots" {
			found = true
			assert.Equal(t, "1 snapshots", check.Detail)
		}
	}
	assert.True(t, found)
}

func TestRun_CorruptAuditLog(t *testing.T) {
	ws := workspace.NewManager(t.TempDir())
	require.NoError(t, ws.Init())
	require.NoError(t, os.WriteFile(ws.AuditLogPath(), []byte("garbage\n"), 0644))

	report := doctor.Run(ws)
	assert.False(t, report.Healthy)

	for _, check := range report.Checks {
		if check.Name == "audit" {
			assert.False(t, check.OK)
		}
	}
}
