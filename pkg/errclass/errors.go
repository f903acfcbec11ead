package errclass

import "fmt"

// SandboxError is a stable, machine-readable error class.
type SandboxError struct {
	Code    string
	Message string
}

func (e *SandboxError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *SandboxError) Is(target error) bool {
	t, ok := target.(*SandboxError)
	return ok && e.Code == t.Code
}

// WithMessage returns a new SandboxError with the same Code but a specific message.
func (e *SandboxError) WithMessage(msg string) *SandboxError {
	return &SandboxError{Code: e.Code, Message: msg}
}

// WithMessagef returns a new SandboxError with a formatted message.
func (e *SandboxError) WithMessagef(format string, args ...any) *SandboxError {
	return &SandboxError{Code: e.Code, Message: fmt.Sprintf(format, args...)}
}

// All stable error classes.
var (
	ErrEnvInvalid       = &SandboxError{Code: "E_ENV_INVALID"}
	ErrNameInvalid      = &SandboxError{Code: "E_NAME_INVALID"}
	ErrPathEscape       = &SandboxError{Code: "E_PATH_ESCAPE"}
	ErrSnapshotNotFound = &SandboxError{Code: "E_SNAPSHOT_NOT_FOUND"}
	ErrSnapshotIO       = &SandboxError{Code: "E_SNAPSHOT_IO"}
	ErrAuditIO          = &SandboxError{Code: "E_AUDIT_IO"}
	ErrAuditCorrupt     = &SandboxError{Code: "E_AUDIT_CORRUPT"}
	ErrLockConflict     = &SandboxError{Code: "E_LOCK_CONFLICT"}
	ErrLockNotHeld      = &SandboxError{Code: "E_LOCK_NOT_HELD"}
	ErrApprovalRequired = &SandboxError{Code: "E_APPROVAL_REQUIRED"}
	ErrConfigInvalid    = &SandboxError{Code: "E_CONFIG_INVALID"}
	ErrPlanEmpty        = &SandboxError{Code: "E_PLAN_EMPTY"}
)
