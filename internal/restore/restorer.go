// Package restore rolls a workspace back to a prior snapshot.
package restore

import (
	"os"

	"github.com/abhishekk2305/ai-safety-sandbox/internal/engine"
	"github.com/abhishekk2305/ai-safety-sandbox/internal/lock"
	"github.com/abhishekk2305/ai-safety-sandbox/internal/snapshot"
	"github.com/abhishekk2305/ai-safety-sandbox/internal/workspace"
	"github.com/abhishekk2305/ai-safety-sandbox/pkg/errclass"
	"github.com/abhishekk2305/ai-safety-sandbox/pkg/logging"
	"github.com/abhishekk2305/ai-safety-sandbox/pkg/model"
)

// Restorer replaces a live workspace with the contents of a snapshot.
type Restorer struct {
	ws    *workspace.Manager
	snaps *snapshot.Manager
	eng   engine.Engine
	locks *lock.Manager
}

// NewRestorer creates a restorer over the given workspace layout.
func NewRestorer(ws *workspace.Manager) *Restorer {
	return &Restorer{
		ws:    ws,
		snaps: snapshot.NewManager(ws),
		eng:   engine.NewCopyEngine(),
		locks: lock.NewManager(ws.LockDir(), 0),
	}
}

// Restore destructively replaces env's live workspace: the current tree is
// removed entirely, then the snapshot tree is copied into its place. The
// snapshot itself is never mutated. The per-environment lock excludes a
// concurrent execute or restore on the same environment.
func (r *Restorer) Restore(env model.Environment, snapshotName string) error {
	snapPath, err := r.snaps.Resolve(env, snapshotName)
	if err != nil {
		return err
	}

	rec, err := r.locks.Acquire(env, "restore")
	if err != nil {
		return err
	}
	defer r.locks.Release(env, rec.HolderID)

	root, err := r.ws.Path(env)
	if err != nil {
		return err
	}

	if err := os.RemoveAll(root); err != nil {
		return errclass.ErrSnapshotIO.WithMessagef("wipe workspace: %v", err)
	}
	if err := r.eng.Clone(snapPath, root); err != nil {
		return errclass.ErrSnapshotIO.WithMessagef("copy snapshot back: %v", err)
	}

	logging.Info("workspace restored", map[string]any{
		"env":      env.String(),
		"snapshot": snapshotName,
	})
	return nil
}
