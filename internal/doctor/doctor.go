// Package doctor runs health checks over the sandbox layout.
package doctor

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/abhishekk2305/ai-safety-sandbox/internal/audit"
	"github.com/abhishekk2305/ai-safety-sandbox/internal/snapshot"
	"github.com/abhishekk2305/ai-safety-sandbox/internal/workspace"
	"github.com/abhishekk2305/ai-safety-sandbox/pkg/model"
)

// Check is the outcome of one health probe.
type Check struct {
	Name   string `json:"name"`
	OK     bool   `json:"ok"`
	Detail string `json:"detail,omitempty"`
}

// Report aggregates all checks.
type Report struct {
	Checks  []Check `json:"checks"`
	Healthy bool    `json:"healthy"`
}

// Run probes the workspace layout, workspace writability, snapshot
// enumerability, and audit log integrity.
func Run(ws *workspace.Manager) *Report {
	report := &Report{Healthy: true}
	add := func(name string, ok bool, detail string) {
		report.Checks = append(report.Checks, Check{Name: name, OK: ok, Detail: detail})
		if !ok {
			report.Healthy = false
		}
	}

	for _, env := range model.Environments() {
		root, err := ws.Path(env)
		if err != nil {
			add("workspace:"+env.String(), false, err.Error())
			continue
		}
		info, err := os.Stat(root)
		if err != nil || !info.IsDir() {
			add("workspace:"+env.String(), false, fmt.Sprintf("missing workspace directory: %s", root))
			continue
		}
		if err := probeWritable(root); err != nil {
			add("workspace:"+env.String(), false, fmt.Sprintf("not writable: %v", err))
			continue
		}
		add("workspace:"+env.String(), true, "")
	}

	snaps := snapshot.NewManager(ws)
	infos, err := snaps.List("")
	if err != nil {
		add("snapshots", false, err.Error())
	} else {
		add("snapshots", true, fmt.Sprintf("%d snapshots", len(infos)))
	}

	appender := audit.NewFileAppender(ws.AuditLogPath())
	count, err := appender.Verify()
	if err != nil {
		add("audit", false, err.Error())
	} else {
		add("audit", true, fmt.Sprintf("%d records verified", count))
	}

	return report
}

func probeWritable(dir string) error {
	probe := filepath.Join(dir, ".doctor-probe")
	if err := os.WriteFile(probe, []byte("ok"), 0644); err != nil {
		return err
	}
	return os.Remove(probe)
}
