package uuidutil_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhishekk2305/ai-safety-sandbox/pkg/uuidutil"
)

var uuidRe = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

func TestNewV4_Format(t *testing.T) {
	for i := 0; i < 100; i++ {
		assert.Regexp(t, uuidRe, uuidutil.NewV4())
	}
}

func TestNewV4_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		u := uuidutil.NewV4()
		assert.False(t, seen[u], "duplicate uuid: %s", u)
		seen[u] = true
	}
}
