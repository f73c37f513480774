// Package adapter contains the infrastructure adapters of the modpatch CLI:
// filesystem access, patch file lookup, resolution lockfile decoding and
// source discovery.
package adapter

import (
	"os"
	"path/filepath"

	m "modpatch.dev/pkg/modpatch/internal/model"
)

// ProjectFS abstracts the filesystem operations the domain layer relies on
// when reading a user project. It hides direct os access so workflow logic
// can be tested without touching the disk.
type ProjectFS interface {
	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// FileInfo returns metadata for a path so callers can check existence
	// or distinguish files from directories.
	FileInfo(path m.Path) (os.FileInfo, error)

	// Walk traverses the tree rooted at root in lexical order.
	Walk(root m.Path, fn FilepathWalkFunc) error
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk. It is
// defined here to avoid leaking the standard-library type into the domain.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// LocalProjectFS is the concrete ProjectFS backed by the local filesystem.
type LocalProjectFS struct{}

// NewLocalProjectFS constructs a LocalProjectFS ready to be wired into the
// workflow.
func NewLocalProjectFS() *LocalProjectFS {
	return &LocalProjectFS{}
}

// ReadFile loads file contents from disk.
func (a *LocalProjectFS) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalProjectFS) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// Walk iterates over files under root in lexical order.
func (a *LocalProjectFS) Walk(root m.Path, fn FilepathWalkFunc) error {
	return filepath.Walk(string(root), func(path string, info os.FileInfo, err error) error {
		return fn(path, info, err)
	})
}
