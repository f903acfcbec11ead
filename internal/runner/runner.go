// Package runner orchestrates one execution batch: approval gate, lock,
// pre-execution snapshot, per-action execution, and the audit append.
package runner

import (
	"time"

	"github.com/abhishekk2305/ai-safety-sandbox/internal/audit"
	"github.com/abhishekk2305/ai-safety-sandbox/internal/executor"
	"github.com/abhishekk2305/ai-safety-sandbox/internal/lock"
	"github.com/abhishekk2305/ai-safety-sandbox/internal/policy"
	"github.com/abhishekk2305/ai-safety-sandbox/internal/snapshot"
	"github.com/abhishekk2305/ai-safety-sandbox/internal/workspace"
	"github.com/abhishekk2305/ai-safety-sandbox/pkg/errclass"
	"github.com/abhishekk2305/ai-safety-sandbox/pkg/logging"
	"github.com/abhishekk2305/ai-safety-sandbox/pkg/model"
)

// autoApproveNote is recorded when a Low-risk batch needs no human gate.
const autoApproveNote = "Auto-approved (Low risk)"

// Request describes one batch to run.
type Request struct {
	Env      model.Environment
	Task     string
	Actions  []model.Action
	Analysis model.Analysis
	Approval model.ApprovalDecision
}

// Result is the outcome of a completed batch.
type Result struct {
	Record   model.AuditRecord
	Snapshot model.SnapshotInfo
	AllOK    bool
}

// Runner wires the snapshot manager, executor, audit log and per-environment
// lock into the snapshot -> execute -> append sequence.
type Runner struct {
	ws    *workspace.Manager
	snaps *snapshot.Manager
	exec  *executor.Executor
	log   *audit.FileAppender
	locks *lock.Manager
	now   func() time.Time
}

// New creates a runner over the given workspace layout.
func New(ws *workspace.Manager) *Runner {
	return &Runner{
		ws:    ws,
		snaps: snapshot.NewManager(ws),
		exec:  executor.New(),
		log:   audit.NewFileAppender(ws.AuditLogPath()),
		locks: lock.NewManager(ws.LockDir(), 0),
		now:   time.Now,
	}
}

// Run executes one batch. The approval gate is checked first: a batch that
// requires approval and was not granted it fails with E_APPROVAL_REQUIRED
// before any snapshot or mutation. Snapshot and audit failures are fatal;
// individual action failures are not — execution continues and the failures
// are carried in the audit record.
func (r *Runner) Run(req Request) (*Result, error) {
	required := policy.NeedsApproval(req.Analysis, req.Env)
	if required && !req.Approval.Granted {
		return nil, errclass.ErrApprovalRequired.WithMessagef(
			"risk %s in %s requires approval", req.Analysis.Risk, req.Env)
	}

	lockRec, err := r.locks.Acquire(req.Env, "execute")
	if err != nil {
		return nil, err
	}
	defer r.locks.Release(req.Env, lockRec.HolderID)

	snap, err := r.snaps.Create(req.Env)
	if err != nil {
		return nil, err
	}

	root, err := r.ws.Path(req.Env)
	if err != nil {
		return nil, err
	}

	results := make([]model.ActionResult, 0, len(req.Actions))
	allOK := true
	for _, a := range req.Actions {
		res := r.exec.Apply(root, a)
		if !res.OK {
			allOK = false
		}
		results = append(results, res)
	}

	note := req.Approval.Note
	if !required && note == "" {
		note = autoApproveNote
	}

	record := model.AuditRecord{
		Timestamp:    r.now().UTC(),
		Env:          req.Env,
		Task:         req.Task,
		Risk:         req.Analysis.Risk,
		Reasons:      req.Analysis.Reasons,
		Approved:     !required || req.Approval.Granted,
		ApproverNote: note,
		PreSnapshot:  snap.Path,
		Results:      results,
	}

	if err := r.log.Append(&record); err != nil {
		return nil, err
	}

	logging.Info("batch executed", map[string]any{
		"env":     req.Env.String(),
		"risk":    req.Analysis.Risk.String(),
		"actions": len(results),
		"all_ok":  allOK,
	})

	return &Result{Record: record, Snapshot: *snap, AllOK: allOK}, nil
}
