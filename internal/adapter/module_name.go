package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	m "modpatch.dev/pkg/modpatch/internal/model"
)

// moduleInfoFileName is the module declaration file looked up at the top of
// a source root.
const moduleInfoFileName = "module-info.java"

// ModuleNameReader reads the module name declared by a source root, used to
// seed the default module name when no patch file declares one.
type ModuleNameReader interface {
	// ReadModuleName returns the name declared in root/module-info.java,
	// or empty when the root has no module declaration.
	ReadModuleName(root m.Path) (string, error)
}

// moduleDeclaration matches the module name of a module-info.java once
// comments have been stripped. The "open" modifier is tolerated.
var moduleDeclaration = regexp.MustCompile(`(?:^|\s)(?:open\s+)?module\s+([A-Za-z_$][A-Za-z0-9_$]*(?:\.[A-Za-z_$][A-Za-z0-9_$]*)*)\s*\{`)

var (
	lineComments  = regexp.MustCompile(`//[^\n]*`)
	blockComments = regexp.MustCompile(`(?s)/\*.*?\*/`)
)

// LocalModuleNameReader reads module declarations through a ProjectFS.
type LocalModuleNameReader struct {
	fs ProjectFS
}

// NewLocalModuleNameReader constructs a LocalModuleNameReader backed by fs.
func NewLocalModuleNameReader(fs ProjectFS) *LocalModuleNameReader {
	return &LocalModuleNameReader{fs: fs}
}

// ReadModuleName scans root/module-info.java for the declared module name.
func (r *LocalModuleNameReader) ReadModuleName(root m.Path) (string, error) {
	path := m.Path(filepath.Join(string(root), moduleInfoFileName))

	data, err := r.fs.ReadFile(path)
	if os.IsNotExist(err) {
		return "", nil
	}

	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	stripped := blockComments.ReplaceAll(data, []byte(" "))
	stripped = lineComments.ReplaceAll(stripped, nil)

	match := moduleDeclaration.FindSubmatch(stripped)
	if match == nil {
		return "", fmt.Errorf("%s: no module declaration found", path)
	}

	return string(match[1]), nil
}
