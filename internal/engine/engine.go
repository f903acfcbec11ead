// Package engine implements the directory tree copy backing snapshots.
package engine

// Engine clones directory trees. Snapshots and restores are full,
// non-incremental copies in both directions.
type Engine interface {
	// Name returns the engine identifier.
	Name() string

	// Clone copies the tree rooted at src to dst, creating dst as needed.
	Clone(src, dst string) error
}
