// Package integrity provides checksum computation for audit records and
// workspace content.
package integrity

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/abhishekk2305/ai-safety-sandbox/pkg/jsonutil"
	"github.com/abhishekk2305/ai-safety-sandbox/pkg/model"
)

// ChecksumRecord computes the SHA-256 checksum of an audit record over its
// canonical JSON serialization. Computing it again over a stored record must
// reproduce the stored checksum unless the record was tampered with.
func ChecksumRecord(rec *model.AuditRecord) (string, error) {
	data, err := jsonutil.CanonicalMarshal(rec)
	if err != nil {
		return "", fmt.Errorf("canonical marshal record: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// HashFile returns the hex SHA-256 of a file's contents.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
