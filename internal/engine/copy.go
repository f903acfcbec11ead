package engine

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/abhishekk2305/ai-safety-sandbox/pkg/fsutil"
)

// CopyEngine performs a full recursive copy of directory trees, preserving
// empty directories, symlinks, file modes and modification times.
type CopyEngine struct{}

// NewCopyEngine creates a new CopyEngine.
func NewCopyEngine() *CopyEngine {
	return &CopyEngine{}
}

// Name returns the engine identifier.
func (e *CopyEngine) Name() string {
	return "copy"
}

// Clone recursively copies src to dst.
func (e *CopyEngine) Clone(src, dst string) error {
	err := filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return fmt.Errorf("relative path: %w", err)
		}
		dstPath := filepath.Join(dst, rel)

		switch {
		case info.IsDir():
			return e.copyDir(dstPath, info)

		case info.Mode()&os.ModeSymlink != 0:
			return e.copySymlink(path, dstPath)

		default:
			return e.copyFile(path, dstPath, info)
		}
	})
	if err != nil {
		return fmt.Errorf("copy: %w", err)
	}

	if err := fsutil.FsyncDir(dst); err != nil {
		return fmt.Errorf("fsync dst: %w", err)
	}
	return nil
}

func (e *CopyEngine) copyDir(dst string, info os.FileInfo) error {
	if err := os.MkdirAll(dst, info.Mode().Perm()); err != nil {
		return fmt.Errorf("mkdir %s: %w", dst, err)
	}
	return nil
}

func (e *CopyEngine) copyFile(src, dst string, info os.FileInfo) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open src %s: %w", src, err)
	}
	defer srcFile.Close()

	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("create dst %s: %w", dst, err)
	}
	defer dstFile.Close()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return fmt.Errorf("copy %s to %s: %w", src, dst, err)
	}

	if err := dstFile.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", dst, err)
	}

	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}

func (e *CopyEngine) copySymlink(src, dst string) error {
	target, err := os.Readlink(src)
	if err != nil {
		return fmt.Errorf("readlink %s: %w", src, err)
	}
	return os.Symlink(target, dst)
}
