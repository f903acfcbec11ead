// Package snapshot creates and enumerates full workspace snapshots.
package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/abhishekk2305/ai-safety-sandbox/internal/engine"
	"github.com/abhishekk2305/ai-safety-sandbox/internal/workspace"
	"github.com/abhishekk2305/ai-safety-sandbox/pkg/errclass"
	"github.com/abhishekk2305/ai-safety-sandbox/pkg/logging"
	"github.com/abhishekk2305/ai-safety-sandbox/pkg/model"
	"github.com/abhishekk2305/ai-safety-sandbox/pkg/pathutil"
)

// maxNameCollisionRetries bounds the suffix search for snapshots taken
// within the same second.
const maxNameCollisionRetries = 100

// Manager captures point-in-time full copies of workspace trees under
// the snapshot root, named <env>-<UTC timestamp>.
type Manager struct {
	ws  *workspace.Manager
	eng engine.Engine
	now func() time.Time
}

// NewManager creates a snapshot manager over the given workspace layout.
func NewManager(ws *workspace.Manager) *Manager {
	return &Manager{ws: ws, eng: engine.NewCopyEngine(), now: time.Now}
}

// Create snapshots the entire live workspace of env, including empty
// directories, and returns the new snapshot's metadata. Snapshot I/O errors
// are fatal for the operation; there is no safe partial state to report.
func (m *Manager) Create(env model.Environment) (*model.SnapshotInfo, error) {
	root, err := m.ws.Path(env)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(root); err != nil {
		return nil, errclass.ErrSnapshotIO.WithMessagef("workspace missing for %s: %v", env, err)
	}

	createdAt := m.now().UTC()
	name := model.SnapshotName(env, createdAt)
	path, err := m.reserveDir(name)
	if err != nil {
		return nil, err
	}

	if err := m.eng.Clone(root, path); err != nil {
		os.RemoveAll(path)
		return nil, errclass.ErrSnapshotIO.WithMessagef("clone workspace: %v", err)
	}

	info := &model.SnapshotInfo{
		Name:      filepath.Base(path),
		Env:       env,
		Path:      path,
		CreatedAt: createdAt,
	}
	logging.Info("snapshot created", map[string]any{
		"env":      env.String(),
		"snapshot": info.Name,
	})
	return info, nil
}

// reserveDir creates the snapshot directory, resolving same-second name
// collisions with a numeric suffix rather than merging into an existing
// snapshot.
func (m *Manager) reserveDir(name string) (string, error) {
	base := filepath.Join(m.ws.SnapshotRoot(), name)
	candidate := base
	for i := 2; ; i++ {
		err := os.Mkdir(candidate, 0755)
		if err == nil {
			return candidate, nil
		}
		if !os.IsExist(err) {
			return "", errclass.ErrSnapshotIO.WithMessagef("create snapshot dir: %v", err)
		}
		if i > maxNameCollisionRetries {
			return "", errclass.ErrSnapshotIO.WithMessagef("too many snapshot name collisions for %s", name)
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

// List enumerates snapshots, newest first. An empty env lists all
// environments; otherwise only names with the <env>- prefix are returned.
func (m *Manager) List(env model.Environment) ([]model.SnapshotInfo, error) {
	entries, err := os.ReadDir(m.ws.SnapshotRoot())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errclass.ErrSnapshotIO.WithMessagef("read snapshot root: %v", err)
	}

	var infos []model.SnapshotInfo
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		name := e.Name()
		snapEnv, createdAt, perr := model.ParseSnapshotName(name)
		if perr != nil {
			continue
		}
		if env != "" && snapEnv != env {
			continue
		}
		infos = append(infos, model.SnapshotInfo{
			Name:      name,
			Env:       snapEnv,
			Path:      filepath.Join(m.ws.SnapshotRoot(), name),
			CreatedAt: createdAt,
		})
	}

	// Timestamp format makes lexicographic order chronological; descending
	// puts the newest snapshot first.
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name > infos[j].Name })
	return infos, nil
}

// Resolve validates a snapshot name for env and returns its on-disk path.
func (m *Manager) Resolve(env model.Environment, name string) (string, error) {
	if err := pathutil.ValidateName(name); err != nil {
		return "", err
	}
	snapEnv, _, err := model.ParseSnapshotName(name)
	if err != nil {
		return "", errclass.ErrSnapshotNotFound.WithMessagef("%v", err)
	}
	if env != "" && snapEnv != env {
		return "", errclass.ErrSnapshotNotFound.WithMessagef(
			"snapshot %s belongs to %s, not %s", name, snapEnv, env)
	}

	path := filepath.Join(m.ws.SnapshotRoot(), name)
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return "", errclass.ErrSnapshotNotFound.WithMessagef("snapshot not found: %s", name)
	}
	return path, nil
}
