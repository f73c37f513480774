package adapter

import (
	"fmt"

	"gopkg.in/yaml.v3"

	m "modpatch.dev/pkg/modpatch/internal/model"
)

// ResolutionLoader decodes the dependency resolver's output into the ordered
// view consumed by the classifier.
type ResolutionLoader interface {
	// Load reads the resolution lockfile at path. An empty path yields a
	// nil view, which the classifier treats as "no implicit options".
	Load(path m.Path) (m.ResolvedDependencies, error)
}

// resolutionFile is the YAML shape of a resolution lockfile. Entry order in
// the file is the resolver's order and is preserved.
type resolutionFile struct {
	Dependencies []resolutionEntry `yaml:"dependencies"`
}

type resolutionEntry struct {
	ID       string   `yaml:"id"`
	Scope    string   `yaml:"scope"`
	Path     string   `yaml:"path"`
	Module   string   `yaml:"module,omitempty"`
	Requires []string `yaml:"requires,omitempty"`
}

// LocalResolutionLoader reads resolution lockfiles through a ProjectFS.
type LocalResolutionLoader struct {
	fs ProjectFS
}

// NewLocalResolutionLoader constructs a LocalResolutionLoader backed by fs.
func NewLocalResolutionLoader(fs ProjectFS) *LocalResolutionLoader {
	return &LocalResolutionLoader{fs: fs}
}

// Load reads and decodes the lockfile at path, keeping entry order.
func (l *LocalResolutionLoader) Load(path m.Path) (m.ResolvedDependencies, error) {
	if path == "" {
		return nil, nil
	}

	data, err := l.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read resolution lockfile %s: %w", path, err)
	}

	var file resolutionFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode resolution lockfile %s: %w", path, err)
	}

	deps := make(m.ResolvedDependencies, 0, len(file.Dependencies))

	for i, entry := range file.Dependencies {
		scope, err := m.ParseScope(entry.Scope)
		if err != nil {
			return nil, fmt.Errorf("resolution lockfile %s, entry %d: %w", path, i+1, err)
		}

		deps = append(deps, m.ResolvedDependency{
			ID:       entry.ID,
			Scope:    scope,
			Path:     m.Path(entry.Path),
			Module:   entry.Module,
			Requires: entry.Requires,
		})
	}

	return deps, nil
}
