package domain

import (
	"sort"

	"modpatch.dev/pkg/modpatch/internal/model"
	"modpatch.dev/pkg/modpatch/pkg/ordered"
)

// SourcesForRelease holds the source files targeting one release, together
// with the root directories contributing them, keyed by module name. The
// empty key stands for sources outside any named module.
type SourcesForRelease struct {
	// Release is the targeted release; NoRelease means "no version".
	Release model.Release

	// Files lists every source file for this release, in discovery order.
	Files []model.Path

	// Roots maps module names to the root directories contributing files.
	Roots *ordered.Map[string, *ordered.Set[model.Path]]

	// lastDirectory caches the directory of the previously added file.
	// Consecutive files usually come from the same directory, so this
	// avoids a map access per file.
	lastDirectory *model.SourceDirectory
}

func newSourcesForRelease(release model.Release) *SourcesForRelease {
	return &SourcesForRelease{
		Release: release,
		Roots:   ordered.NewMap[string, *ordered.Set[model.Path]](),
	}
}

func (s *SourcesForRelease) add(source model.SourceFile) {
	if s.lastDirectory != source.Directory {
		s.lastDirectory = source.Directory
		roots := s.Roots.GetOrCreate(source.Directory.Module, func() *ordered.Set[model.Path] {
			return ordered.NewSet[model.Path]()
		})
		roots.Add(source.Directory.Root)
	}

	s.Files = append(s.Files, source.Path)
}

// GroupByReleaseAndModule groups the given source files first by release,
// then by module name. Buckets are returned in ascending release order, the
// "no version" sentinel first, which matches the increasing order of Java
// releases required for multi-release output. Files keep their input order
// within each bucket.
func GroupByReleaseAndModule(sources []model.SourceFile) []*SourcesForRelease {
	buckets := make(map[model.Release]*SourcesForRelease)

	for _, source := range sources {
		release := model.NoRelease
		if source.Directory != nil {
			release = source.Directory.Release
		}

		bucket, ok := buckets[release]
		if !ok {
			bucket = newSourcesForRelease(release)
			buckets[release] = bucket
		}

		bucket.add(source)
	}

	result := make([]*SourcesForRelease, 0, len(buckets))
	for _, bucket := range buckets {
		result = append(result, bucket)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Release < result[j].Release
	})

	return result
}
