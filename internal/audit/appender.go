// Package audit maintains the append-only, checksum-verified execution log.
package audit

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/abhishekk2305/ai-safety-sandbox/internal/integrity"
	"github.com/abhishekk2305/ai-safety-sandbox/pkg/errclass"
	"github.com/abhishekk2305/ai-safety-sandbox/pkg/model"
)

// FileAppender appends audit records to a JSONL file. Each line carries a
// SHA-256 checksum of the record's canonical serialization; the checksum
// authenticates only its own line, not the log's history. Lines are written
// with a single write followed by fsync, so a crash leaves either a full
// line or nothing.
type FileAppender struct {
	path string
	mu   sync.Mutex
}

// NewFileAppender creates an appender for the log file at path.
func NewFileAppender(path string) *FileAppender {
	return &FileAppender{path: path}
}

// Path returns the log file location.
func (a *FileAppender) Path() string {
	return a.path
}

// Append serializes record, computes its checksum, and appends one line.
// I/O failures here are fatal for the operation: a batch without its audit
// line must surface, not be swallowed.
func (a *FileAppender) Append(record *model.AuditRecord) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(a.path), 0755); err != nil {
		return errclass.ErrAuditIO.WithMessagef("create audit dir: %v", err)
	}

	checksum, err := integrity.ChecksumRecord(record)
	if err != nil {
		return errclass.ErrAuditIO.WithMessagef("checksum record: %v", err)
	}

	line, err := json.Marshal(model.AuditLine{Checksum: checksum, Record: *record})
	if err != nil {
		return errclass.ErrAuditIO.WithMessagef("marshal audit line: %v", err)
	}

	file, err := os.OpenFile(a.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return errclass.ErrAuditIO.WithMessagef("open audit log: %v", err)
	}
	defer file.Close()

	if err := syscall.Flock(int(file.Fd()), syscall.LOCK_EX); err != nil {
		return errclass.ErrAuditIO.WithMessagef("flock audit log: %v", err)
	}
	defer syscall.Flock(int(file.Fd()), syscall.LOCK_UN)

	if _, err := file.Write(append(line, '\n')); err != nil {
		return errclass.ErrAuditIO.WithMessagef("write audit line: %v", err)
	}
	if err := file.Sync(); err != nil {
		return errclass.ErrAuditIO.WithMessagef("sync audit log: %v", err)
	}

	return nil
}

// Last returns the record embedded in the final line of the log. An absent,
// empty, or corrupt log yields (nil, false); read failures are swallowed by
// contract, never raised.
func (a *FileAppender) Last() (*model.AuditRecord, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	data, err := os.ReadFile(a.path)
	if err != nil {
		return nil, false
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	last := lines[len(lines)-1]
	if strings.TrimSpace(last) == "" {
		return nil, false
	}

	var entry model.AuditLine
	if err := json.Unmarshal([]byte(last), &entry); err != nil {
		return nil, false
	}
	return &entry.Record, true
}

// Verify re-reads the whole log and recomputes every line's checksum.
// It returns the number of verified lines. A mismatch or unparseable line
// yields E_AUDIT_CORRUPT naming the offending line number.
func (a *FileAppender) Verify() (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	file, err := os.Open(a.path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, errclass.ErrAuditIO.WithMessagef("open audit log: %v", err)
	}
	defer file.Close()

	count := 0
	lineNo := 0
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		lineNo++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		var entry model.AuditLine
		if err := json.Unmarshal([]byte(text), &entry); err != nil {
			return count, errclass.ErrAuditCorrupt.WithMessagef("line %d: unparseable: %v", lineNo, err)
		}

		computed, err := integrity.ChecksumRecord(&entry.Record)
		if err != nil {
			return count, errclass.ErrAuditCorrupt.WithMessagef("line %d: checksum: %v", lineNo, err)
		}
		if computed != entry.Checksum {
			return count, errclass.ErrAuditCorrupt.WithMessagef(
				"line %d: checksum mismatch: stored %s, computed %s", lineNo, entry.Checksum, computed)
		}
		count++
	}
	if err := scanner.Err(); err != nil {
		return count, errclass.ErrAuditIO.WithMessagef("scan audit log: %v", err)
	}

	return count, nil
}

// All returns every intact record in log order, skipping corrupt lines.
// Used for display; Verify is the strict integrity pass.
func (a *FileAppender) All() []model.AuditRecord {
	a.mu.Lock()
	defer a.mu.Unlock()

	file, err := os.Open(a.path)
	if err != nil {
		return nil
	}
	defer file.Close()

	var records []model.AuditRecord
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		var entry model.AuditLine
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			continue
		}
		records = append(records, entry.Record)
	}
	return records
}
