package adapter

import (
	"fmt"
	"os"
	"path/filepath"

	m "modpatch.dev/pkg/modpatch/internal/model"
)

// PatchFileName is the conventional name of a module patch file, looked up
// at the top of a source root.
const PatchFileName = "module-info-patch.txt"

// PatchStore locates and reads module-info-patch files. A missing patch file
// is not an error: the implicit test-module-path behavior applies instead.
type PatchStore interface {
	// Locate returns the path of the first patch file found at the top of
	// the given roots, or empty when none of them has one.
	Locate(roots []m.Path) (m.Path, error)

	// ReadPatch returns the content of the patch file at path.
	ReadPatch(path m.Path) ([]byte, error)
}

// LocalPatchStore reads patch files through a ProjectFS.
type LocalPatchStore struct {
	fs ProjectFS
}

// NewLocalPatchStore constructs a LocalPatchStore backed by fs.
func NewLocalPatchStore(fs ProjectFS) *LocalPatchStore {
	return &LocalPatchStore{fs: fs}
}

// Locate returns the first module-info-patch.txt found at the top of the
// given roots, in root order.
func (s *LocalPatchStore) Locate(roots []m.Path) (m.Path, error) {
	for _, root := range roots {
		candidate := m.Path(filepath.Join(string(root), PatchFileName))

		info, err := s.fs.FileInfo(candidate)
		if os.IsNotExist(err) {
			continue
		}

		if err != nil {
			return "", fmt.Errorf("stat %s: %w", candidate, err)
		}

		if !info.IsDir() {
			return candidate, nil
		}
	}

	return "", nil
}

// ReadPatch returns the content of the patch file at path.
func (s *LocalPatchStore) ReadPatch(path m.Path) ([]byte, error) {
	data, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return data, nil
}
