// Package workspace resolves and lays out per-environment workspace roots.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/abhishekk2305/ai-safety-sandbox/pkg/errclass"
	"github.com/abhishekk2305/ai-safety-sandbox/pkg/model"
)

const (
	workspacesDirName = "workspaces"
	snapshotsDirName  = "snapshots"
	logsDirName       = "logs"
	auditLogFileName  = "actions.jsonl"
	locksDirName      = "locks"
)

// Manager resolves environment workspace roots under a base directory and
// owns the on-disk layout:
//
//	<base>/workspaces/{dev,staging,prod}
//	<base>/snapshots
//	<base>/logs/actions.jsonl
//	<base>/locks
type Manager struct {
	baseDir string
}

// NewManager creates a manager rooted at baseDir.
func NewManager(baseDir string) *Manager {
	return &Manager{baseDir: baseDir}
}

// BaseDir returns the base directory.
func (m *Manager) BaseDir() string {
	return m.baseDir
}

// Init creates the full directory layout. It is idempotent.
func (m *Manager) Init() error {
	dirs := []string{
		filepath.Join(m.baseDir, snapshotsDirName),
		filepath.Join(m.baseDir, logsDirName),
		filepath.Join(m.baseDir, locksDirName),
	}
	for _, env := range model.Environments() {
		dirs = append(dirs, filepath.Join(m.baseDir, workspacesDirName, env.String()))
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// Path returns the workspace root for env.
func (m *Manager) Path(env model.Environment) (string, error) {
	if !env.Valid() {
		return "", errclass.ErrEnvInvalid.WithMessagef("unknown environment: %s", env)
	}
	return filepath.Join(m.baseDir, workspacesDirName, env.String()), nil
}

// SnapshotRoot returns the directory holding all snapshots.
func (m *Manager) SnapshotRoot() string {
	return filepath.Join(m.baseDir, snapshotsDirName)
}

// AuditLogPath returns the path of the append-only audit log.
func (m *Manager) AuditLogPath() string {
	return filepath.Join(m.baseDir, logsDirName, auditLogFileName)
}

// LockDir returns the directory holding per-environment lock files.
func (m *Manager) LockDir() string {
	return filepath.Join(m.baseDir, locksDirName)
}

// Seed creates the demo files in env's workspace: tmp/output.txt containing
// "hello" and an empty old/legacy.sql. Existing files are left untouched.
// Returns the relative paths it created.
func (m *Manager) Seed(env model.Environment) ([]string, error) {
	root, err := m.Path(env)
	if err != nil {
		return nil, err
	}

	seeds := []struct {
		rel     string
		content string
	}{
		{filepath.Join("tmp", "output.txt"), "hello"},
		{filepath.Join("old", "legacy.sql"), ""},
	}

	var created []string
	for _, s := range seeds {
		target := filepath.Join(root, s.rel)
		if _, err := os.Stat(target); err == nil {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return created, fmt.Errorf("create seed dir: %w", err)
		}
		if err := os.WriteFile(target, []byte(s.content), 0644); err != nil {
			return created, fmt.Errorf("write seed file: %w", err)
		}
		created = append(created, s.rel)
	}
	return created, nil
}
