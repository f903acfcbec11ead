// Package gc prunes old snapshots according to a retention policy.
package gc

import (
	"os"
	"time"

	"github.com/abhishekk2305/ai-safety-sandbox/internal/snapshot"
	"github.com/abhishekk2305/ai-safety-sandbox/internal/workspace"
	"github.com/abhishekk2305/ai-safety-sandbox/pkg/errclass"
	"github.com/abhishekk2305/ai-safety-sandbox/pkg/logging"
	"github.com/abhishekk2305/ai-safety-sandbox/pkg/model"
)

// Collector plans and applies snapshot retention per environment. The most
// recent KeepMinSnapshots snapshots of each environment are always kept;
// older ones are deleted only once they exceed KeepMinAge.
type Collector struct {
	ws               *workspace.Manager
	snaps            *snapshot.Manager
	keepMinSnapshots int
	keepMinAge       time.Duration
	now              func() time.Time
}

// Plan lists the snapshots a collection run would keep and delete.
type Plan struct {
	Keep   []model.SnapshotInfo `json:"keep"`
	Delete []model.SnapshotInfo `json:"delete"`
}

// NewCollector creates a collector with the given retention settings.
func NewCollector(ws *workspace.Manager, keepMinSnapshots int, keepMinAge time.Duration) *Collector {
	if keepMinSnapshots < 0 {
		keepMinSnapshots = 0
	}
	return &Collector{
		ws:               ws,
		snaps:            snapshot.NewManager(ws),
		keepMinSnapshots: keepMinSnapshots,
		keepMinAge:       keepMinAge,
		now:              time.Now,
	}
}

// Plan computes the retention plan across all environments without touching
// the filesystem.
func (c *Collector) Plan() (*Plan, error) {
	plan := &Plan{}
	cutoff := c.now().UTC().Add(-c.keepMinAge)

	for _, env := range model.Environments() {
		infos, err := c.snaps.List(env)
		if err != nil {
			return nil, err
		}
		// infos is newest first
		for i, info := range infos {
			if i < c.keepMinSnapshots || info.CreatedAt.After(cutoff) {
				plan.Keep = append(plan.Keep, info)
				continue
			}
			plan.Delete = append(plan.Delete, info)
		}
	}
	return plan, nil
}

// Apply deletes every snapshot in the plan and returns how many were removed.
func (c *Collector) Apply(plan *Plan) (int, error) {
	removed := 0
	for _, info := range plan.Delete {
		if err := os.RemoveAll(info.Path); err != nil {
			return removed, errclass.ErrSnapshotIO.WithMessagef("delete snapshot %s: %v", info.Name, err)
		}
		removed++
		logging.Info("snapshot pruned", map[string]any{
			"env":      info.Env.String(),
			"snapshot": info.Name,
		})
	}
	return removed, nil
}
