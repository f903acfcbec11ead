package model

import "time"

// ActionResult is the outcome of executing one action. The executor never
// raises; every failure is carried here as (ok=false, msg).
type ActionResult struct {
	Action  string `json:"action"`
	OK      bool   `json:"ok"`
	Message string `json:"msg"`
}

// AuditRecord is one entry per executed batch in the append-only log.
type AuditRecord struct {
	Timestamp    time.Time      `json:"ts"`
	Env          Environment    `json:"env"`
	Task         string         `json:"task"`
	Risk         RiskLevel      `json:"risk"`
	Reasons      []string       `json:"reasons"`
	Approved     bool           `json:"approved"`
	ApproverNote string         `json:"approver_note"`
	PreSnapshot  string         `json:"pre_snapshot"`
	Results      []ActionResult `json:"results"`
}

// AuditLine is the on-disk JSONL shape: a SHA-256 checksum of the record's
// canonical serialization plus the record itself. The checksum authenticates
// only its own line; lines are not chained to each other.
type AuditLine struct {
	Checksum string      `json:"checksum"`
	Record   AuditRecord `json:"record"`
}

// ApprovalDecision captures the human gate for one batch.
type ApprovalDecision struct {
	Required bool   `json:"required"`
	Granted  bool   `json:"granted"`
	Note     string `json:"note"`
}
