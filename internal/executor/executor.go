// Package executor applies actions inside a confined workspace root.
package executor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/abhishekk2305/ai-safety-sandbox/internal/engine"
	"github.com/abhishekk2305/ai-safety-sandbox/pkg/model"
	"github.com/abhishekk2305/ai-safety-sandbox/pkg/pathutil"
)

// Executor applies one action at a time to a workspace root. It never
// returns an error to its caller: confinement violations, malformed
// arguments, and filesystem failures all become (ok=false, message) results
// so one bad action cannot abort the surrounding batch.
type Executor struct {
	eng engine.Engine
}

// New creates an Executor. The engine backs cross-device move fallback.
func New() *Executor {
	return &Executor{eng: engine.NewCopyEngine()}
}

// Apply executes a single action against root and reports the outcome.
func (e *Executor) Apply(root string, a model.Action) model.ActionResult {
	ok, msg := e.apply(root, a)
	return model.ActionResult{Action: a.Raw, OK: ok, Message: msg}
}

func (e *Executor) apply(root string, a model.Action) (bool, string) {
	switch a.Kind {
	case model.KindWrite:
		rel, content, err := twoArgs(a)
		if err != nil {
			return false, "Error: " + err.Error()
		}
		target, ok := e.confine(root, rel)
		if !ok {
			return false, "Path traversal blocked"
		}
		if err := ensureParent(target); err != nil {
			return false, "Error: " + err.Error()
		}
		if err := os.WriteFile(target, []byte(content), 0644); err != nil {
			return false, "Error: " + err.Error()
		}
		return true, fmt.Sprintf("Wrote %s", rel)

	case model.KindAppend:
		rel, content, err := twoArgs(a)
		if err != nil {
			return false, "Error: " + err.Error()
		}
		target, ok := e.confine(root, rel)
		if !ok {
			return false, "Path traversal blocked"
		}
		if err := ensureParent(target); err != nil {
			return false, "Error: " + err.Error()
		}
		// Content is always prefixed with a newline, even on first write.
		// Audit comparisons depend on this byte-for-byte.
		f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return false, "Error: " + err.Error()
		}
		_, werr := f.WriteString("\n" + content)
		cerr := f.Close()
		if werr != nil {
			return false, "Error: " + werr.Error()
		}
		if cerr != nil {
			return false, "Error: " + cerr.Error()
		}
		return true, fmt.Sprintf("Appended %s", rel)

	case model.KindDeleteFile:
		rel, err := oneArg(a)
		if err != nil {
			return false, "Error: " + err.Error()
		}
		target, ok := e.confine(root, rel)
		if !ok {
			return false, "Path traversal blocked"
		}
		info, err := os.Stat(target)
		if err != nil {
			if os.IsNotExist(err) {
				return false, fmt.Sprintf("Not found: %s", rel)
			}
			return false, "Error: " + err.Error()
		}
		if info.IsDir() {
			return false, "Refusing to delete directories"
		}
		if err := os.Remove(target); err != nil {
			return false, "Error: " + err.Error()
		}
		return true, fmt.Sprintf("Deleted %s", rel)

	case model.KindMove:
		src, dst, err := twoArgs(a)
		if err != nil {
			return false, "Error: " + err.Error()
		}
		srcAbs, ok := e.confine(root, src)
		if !ok {
			return false, "Path traversal blocked"
		}
		dstAbs, ok := e.confine(root, dst)
		if !ok {
			return false, "Path traversal blocked"
		}
		if err := ensureParent(dstAbs); err != nil {
			return false, "Error: " + err.Error()
		}
		if err := e.move(srcAbs, dstAbs); err != nil {
			return false, "Error: " + err.Error()
		}
		return true, fmt.Sprintf("Moved %s -> %s", src, dst)

	case model.KindMakeDir:
		rel, err := oneArg(a)
		if err != nil {
			return false, "Error: " + err.Error()
		}
		target, ok := e.confine(root, rel)
		if !ok {
			return false, "Path traversal blocked"
		}
		if err := os.MkdirAll(target, 0755); err != nil {
			return false, "Error: " + err.Error()
		}
		return true, fmt.Sprintf("Created dir %s", rel)

	default:
		return false, fmt.Sprintf("Action not allowed: %s", a.Kind)
	}
}

// move renames src to dst. An existing destination file is silently replaced
// (POSIX rename semantics). On cross-device rename failures it falls back to
// a full copy followed by deletion of the source.
func (e *Executor) move(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}

	var linkErr *os.LinkError
	if errors.As(err, &linkErr) && errors.Is(linkErr.Err, syscall.EXDEV) {
		info, statErr := os.Stat(src)
		if statErr != nil {
			return statErr
		}
		if info.IsDir() {
			if cerr := e.eng.Clone(src, dst); cerr != nil {
				return cerr
			}
		} else {
			data, rerr := os.ReadFile(src)
			if rerr != nil {
				return rerr
			}
			if werr := os.WriteFile(dst, data, info.Mode()); werr != nil {
				return werr
			}
		}
		return os.RemoveAll(src)
	}

	return err
}

// confine resolves rel against root and verifies confinement before any
// filesystem touch.
func (e *Executor) confine(root, rel string) (string, bool) {
	target, err := pathutil.ConfineRelative(root, rel)
	if err != nil {
		return "", false
	}
	return target, true
}

func ensureParent(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0755)
}

func oneArg(a model.Action) (string, error) {
	if len(a.Args) < 1 {
		return "", fmt.Errorf("%s requires 1 argument, got %d", a.Kind, len(a.Args))
	}
	return a.Args[0], nil
}

func twoArgs(a model.Action) (string, string, error) {
	if len(a.Args) < 2 {
		return "", "", fmt.Errorf("%s requires 2 arguments, got %d", a.Kind, len(a.Args))
	}
	return a.Args[0], a.Args[1], nil
}
