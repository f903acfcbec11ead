// Package diff compares a snapshot against the live workspace.
package diff

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/abhishekk2305/ai-safety-sandbox/internal/integrity"
	"github.com/abhishekk2305/ai-safety-sandbox/internal/snapshot"
	"github.com/abhishekk2305/ai-safety-sandbox/internal/workspace"
	"github.com/abhishekk2305/ai-safety-sandbox/pkg/model"
)

// ChangeType classifies one filesystem change.
type ChangeType string

const (
	ChangeAdded    ChangeType = "added"
	ChangeRemoved  ChangeType = "removed"
	ChangeModified ChangeType = "modified"
)

// Change is a single file-level difference, relative to the workspace root.
type Change struct {
	Path string     `json:"path"`
	Type ChangeType `json:"type"`
}

// Result describes how the live workspace diverges from a snapshot.
// Added means present in the workspace but not the snapshot.
type Result struct {
	Env      model.Environment `json:"env"`
	Snapshot string            `json:"snapshot"`
	Changes  []Change          `json:"changes"`
}

// Workspace compares env's live workspace against a snapshot by content
// hash. Directories are compared through the files they contain.
func Workspace(ws *workspace.Manager, env model.Environment, snapshotName string) (*Result, error) {
	snaps := snapshot.NewManager(ws)
	snapPath, err := snaps.Resolve(env, snapshotName)
	if err != nil {
		return nil, err
	}
	root, err := ws.Path(env)
	if err != nil {
		return nil, err
	}

	snapFiles, err := hashTree(snapPath)
	if err != nil {
		return nil, err
	}
	liveFiles, err := hashTree(root)
	if err != nil {
		return nil, err
	}

	var changes []Change
	for rel, liveHash := range liveFiles {
		snapHash, ok := snapFiles[rel]
		switch {
		case !ok:
			changes = append(changes, Change{Path: rel, Type: ChangeAdded})
		case snapHash != liveHash:
			changes = append(changes, Change{Path: rel, Type: ChangeModified})
		}
	}
	for rel := range snapFiles {
		if _, ok := liveFiles[rel]; !ok {
			changes = append(changes, Change{Path: rel, Type: ChangeRemoved})
		}
	}

	sort.Slice(changes, func(i, j int) bool { return changes[i].Path < changes[j].Path })
	return &Result{Env: env, Snapshot: snapshotName, Changes: changes}, nil
}

// hashTree maps each regular file's relative path to its content hash.
// Symlinks are keyed by their target string rather than followed.
func hashTree(root string) (map[string]string, error) {
	files := make(map[string]string)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if d.Type()&os.ModeSymlink != 0 {
			target, err := os.Readlink(path)
			if err != nil {
				return err
			}
			files[rel] = "link:" + target
			return nil
		}
		hash, err := integrity.HashFile(path)
		if err != nil {
			return err
		}
		files[rel] = hash
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
