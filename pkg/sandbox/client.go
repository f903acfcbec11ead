package sandbox

import (
	"time"

	"github.com/abhishekk2305/ai-safety-sandbox/internal/audit"
	"github.com/abhishekk2305/ai-safety-sandbox/internal/diff"
	"github.com/abhishekk2305/ai-safety-sandbox/internal/executor"
	"github.com/abhishekk2305/ai-safety-sandbox/internal/gc"
	"github.com/abhishekk2305/ai-safety-sandbox/internal/plan"
	"github.com/abhishekk2305/ai-safety-sandbox/internal/policy"
	"github.com/abhishekk2305/ai-safety-sandbox/internal/restore"
	"github.com/abhishekk2305/ai-safety-sandbox/internal/runner"
	"github.com/abhishekk2305/ai-safety-sandbox/internal/snapshot"
	"github.com/abhishekk2305/ai-safety-sandbox/internal/workspace"
	"github.com/abhishekk2305/ai-safety-sandbox/pkg/config"
	"github.com/abhishekk2305/ai-safety-sandbox/pkg/model"
)

// Client provides high-level sandbox operations over one base directory.
type Client struct {
	ws     *workspace.Manager
	cfg    *config.Config
	snaps  *snapshot.Manager
	run    *runner.Runner
	exec   *executor.Executor
	auditL *audit.FileAppender
}

// RunOptions configures one batch execution.
type RunOptions struct {
	Env      model.Environment
	Task     string
	Actions  []model.Action
	Analysis model.Analysis
	Approval model.ApprovalDecision
}

// Open initializes the directory layout under baseDir and loads its config.
// A malformed config file falls back to defaults; the error is returned
// alongside a usable client so callers can warn and proceed.
func Open(baseDir string) (*Client, error) {
	ws := workspace.NewManager(baseDir)
	if err := ws.Init(); err != nil {
		return nil, err
	}

	cfg, cfgErr := config.Load(baseDir)
	c := &Client{
		ws:     ws,
		cfg:    cfg,
		snaps:  snapshot.NewManager(ws),
		run:    runner.New(ws),
		exec:   executor.New(),
		auditL: audit.NewFileAppender(ws.AuditLogPath()),
	}
	return c, cfgErr
}

// Policy returns the currently loaded policy value.
func (c *Client) Policy() model.Policy {
	return c.cfg.Policy
}

// ReloadConfig re-reads the config file and replaces the held value
// wholesale.
func (c *Client) ReloadConfig() error {
	cfg, err := config.Load(c.ws.BaseDir())
	c.cfg = cfg
	return err
}

// Parse turns plan text into an ordered action sequence.
func (c *Client) Parse(text string) []model.Action {
	return plan.Parse(text)
}

// Evaluate classifies actions against env using the loaded policy.
func (c *Client) Evaluate(actions []model.Action, env model.Environment) model.Analysis {
	return policy.Evaluate(actions, env, c.cfg.Policy)
}

// NeedsApproval reports whether the batch requires a human approval.
func (c *Client) NeedsApproval(analysis model.Analysis, env model.Environment) bool {
	return policy.NeedsApproval(analysis, env)
}

// Execute applies a single action inside env's workspace. It never returns
// an error; failures are carried in the result.
func (c *Client) Execute(env model.Environment, action model.Action) (model.ActionResult, error) {
	root, err := c.ws.Path(env)
	if err != nil {
		return model.ActionResult{}, err
	}
	return c.exec.Apply(root, action), nil
}

// Run executes a full batch: approval gate, per-environment lock,
// pre-execution snapshot, ordered execution, audit append.
func (c *Client) Run(opts RunOptions) (*runner.Result, error) {
	return c.run.Run(runner.Request{
		Env:      opts.Env,
		Task:     opts.Task,
		Actions:  opts.Actions,
		Analysis: opts.Analysis,
		Approval: opts.Approval,
	})
}

// Snapshot captures env's workspace and returns the snapshot metadata.
func (c *Client) Snapshot(env model.Environment) (*model.SnapshotInfo, error) {
	return c.snaps.Create(env)
}

// Snapshots lists snapshots newest first; empty env lists all environments.
func (c *Client) Snapshots(env model.Environment) ([]model.SnapshotInfo, error) {
	return c.snaps.List(env)
}

// Restore replaces env's live workspace with the named snapshot.
func (c *Client) Restore(env model.Environment, snapshotName string) error {
	return restore.NewRestorer(c.ws).Restore(env, snapshotName)
}

// AppendAudit appends a record to the audit log.
func (c *Client) AppendAudit(record *model.AuditRecord) error {
	return c.auditL.Append(record)
}

// LastAudit returns the final record in the audit log, if one is intact.
func (c *Client) LastAudit() (*model.AuditRecord, bool) {
	return c.auditL.Last()
}

// VerifyAudit recomputes every audit line's checksum and returns the number
// of verified records.
func (c *Client) VerifyAudit() (int, error) {
	return c.auditL.Verify()
}

// Diff compares env's live workspace against the named snapshot.
func (c *Client) Diff(env model.Environment, snapshotName string) (*diff.Result, error) {
	return diff.Workspace(c.ws, env, snapshotName)
}

// GC returns a collector configured from the loaded retention settings.
// An unparseable keep_min_age falls back to 24h.
func (c *Client) GC() *gc.Collector {
	age, err := time.ParseDuration(c.cfg.Retention.KeepMinAge)
	if err != nil {
		age = 24 * time.Hour
	}
	return gc.NewCollector(c.ws, c.cfg.Retention.KeepMinSnapshots, age)
}

// Seed writes the demo files into env's workspace.
func (c *Client) Seed(env model.Environment) ([]string, error) {
	return c.ws.Seed(env)
}

// Workspace exposes the underlying layout manager.
func (c *Client) Workspace() *workspace.Manager {
	return c.ws
}
