// Package lock provides per-environment mutual exclusion via lock files.
package lock

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/abhishekk2305/ai-safety-sandbox/pkg/errclass"
	"github.com/abhishekk2305/ai-safety-sandbox/pkg/model"
	"github.com/abhishekk2305/ai-safety-sandbox/pkg/uuidutil"
)

// DefaultTTL bounds how long a crashed holder can block an environment.
const DefaultTTL = 10 * time.Minute

// Record is the JSON content of a lock file.
type Record struct {
	Env        model.Environment `json:"env"`
	HolderID   string            `json:"holder_id"`
	Purpose    string            `json:"purpose"`
	AcquiredAt time.Time         `json:"acquired_at"`
	ExpiresAt  time.Time         `json:"expires_at"`
}

// Expired reports whether the lock's TTL has elapsed.
func (r *Record) Expired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

// Manager serializes batch execution and restore per environment. The design
// assumes at most one in-flight batch per environment; this lock enforces it
// across processes via O_CREAT|O_EXCL lock files with TTL-based stale
// takeover.
type Manager struct {
	lockDir string
	ttl     time.Duration
	mu      sync.Mutex
}

// NewManager creates a lock manager storing lock files under lockDir.
func NewManager(lockDir string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{lockDir: lockDir, ttl: ttl}
}

// Acquire attempts to take the exclusive lock for env. A live lock held by
// someone else yields E_LOCK_CONFLICT; an expired lock is taken over.
func (m *Manager) Acquire(env model.Environment, purpose string) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := os.MkdirAll(m.lockDir, 0755); err != nil {
		return nil, fmt.Errorf("create lock dir: %w", err)
	}

	lockPath := m.lockPath(env)
	file, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		if !os.IsExist(err) {
			return nil, fmt.Errorf("create lock file: %w", err)
		}

		existing, readErr := m.readLock(lockPath)
		if readErr != nil {
			// Unreadable lock file: treat as stale and take over.
			os.Remove(lockPath)
			return m.acquireFresh(lockPath, env, purpose)
		}
		if !existing.Expired(time.Now().UTC()) {
			return nil, errclass.ErrLockConflict.WithMessagef(
				"environment %s locked by %s for %s until %s",
				env, existing.HolderID, existing.Purpose,
				existing.ExpiresAt.Format(time.RFC3339))
		}
		os.Remove(lockPath)
		return m.acquireFresh(lockPath, env, purpose)
	}

	return m.writeLock(file, env, purpose)
}

// Release drops the lock for env if holderID still owns it.
func (m *Manager) Release(env model.Environment, holderID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	lockPath := m.lockPath(env)
	existing, err := m.readLock(lockPath)
	if err != nil {
		if os.IsNotExist(err) {
			return errclass.ErrLockNotHeld.WithMessagef("no lock held for %s", env)
		}
		return fmt.Errorf("read lock: %w", err)
	}
	if existing.HolderID != holderID {
		return errclass.ErrLockNotHeld.WithMessagef(
			"lock for %s held by %s, not %s", env, existing.HolderID, holderID)
	}
	return os.Remove(lockPath)
}

// Inspect returns the current lock record for env, or nil if unlocked.
func (m *Manager) Inspect(env model.Environment) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, err := m.readLock(m.lockPath(env))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func (m *Manager) acquireFresh(lockPath string, env model.Environment, purpose string) (*Record, error) {
	file, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		if os.IsExist(err) {
			return nil, errclass.ErrLockConflict.WithMessagef("lost takeover race for %s", env)
		}
		return nil, fmt.Errorf("create lock file: %w", err)
	}
	return m.writeLock(file, env, purpose)
}

func (m *Manager) writeLock(file *os.File, env model.Environment, purpose string) (*Record, error) {
	defer file.Close()

	now := time.Now().UTC()
	rec := &Record{
		Env:        env,
		HolderID:   uuidutil.NewV4(),
		Purpose:    purpose,
		AcquiredAt: now,
		ExpiresAt:  now.Add(m.ttl),
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshal lock record: %w", err)
	}
	if _, err := file.Write(data); err != nil {
		os.Remove(file.Name())
		return nil, fmt.Errorf("write lock record: %w", err)
	}
	if err := file.Sync(); err != nil {
		os.Remove(file.Name())
		return nil, fmt.Errorf("sync lock record: %w", err)
	}
	return rec, nil
}

func (m *Manager) readLock(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parse lock record: %w", err)
	}
	return &rec, nil
}

func (m *Manager) lockPath(env model.Environment) string {
	return filepath.Join(m.lockDir, env.String()+".lock")
}
