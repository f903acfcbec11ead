package model

import (
	"fmt"
	"strings"
	"time"
)

// SnapshotTimeFormat is the UTC, second-precision timestamp embedded in
// snapshot names. Lexicographic order of names equals chronological order.
const SnapshotTimeFormat = "20060102T150405Z"

// SnapshotInfo describes one snapshot directory under the snapshot root.
type SnapshotInfo struct {
	Name      string      `json:"name"` // <env>-<timestamp>
	Env       Environment `json:"env"`
	Path      string      `json:"path"`
	CreatedAt time.Time   `json:"created_at"`
}

// SnapshotName builds the directory name for a snapshot of env taken at t.
func SnapshotName(env Environment, t time.Time) string {
	return fmt.Sprintf("%s-%s", env, t.UTC().Format(SnapshotTimeFormat))
}

// ParseSnapshotName splits a snapshot directory name into its environment
// and creation time. Collision suffixes ("-2", "-3", ...) are accepted.
func ParseSnapshotName(name string) (Environment, time.Time, error) {
	idx := strings.Index(name, "-")
	if idx < 0 {
		return "", time.Time{}, fmt.Errorf("malformed snapshot name: %q", name)
	}
	env := Environment(name[:idx])
	if !env.Valid() {
		return "", time.Time{}, fmt.Errorf("snapshot name has unknown environment: %q", name)
	}
	stamp := name[idx+1:]
	if cut := strings.Index(stamp, "-"); cut >= 0 {
		stamp = stamp[:cut] // strip collision suffix
	}
	t, err := time.Parse(SnapshotTimeFormat, stamp)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("snapshot name has bad timestamp: %q", name)
	}
	return env, t, nil
}
