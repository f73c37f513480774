package adapter

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	m "modpatch.dev/pkg/modpatch/internal/model"
)

// javaFileSuffix is the extension of compilable source files in a KindSource
// root; other roots contribute every regular file.
const javaFileSuffix = ".java"

// SourceScanner discovers the source files under the configured roots.
type SourceScanner interface {
	// Scan walks each directory and returns the discovered files, tagged
	// with their owning directory. Results keep the directory order and,
	// within a directory, the walk order, so the partitioner input is
	// deterministic. Roots that do not exist are skipped.
	Scan(ctx context.Context, dirs []*m.SourceDirectory) ([]m.SourceFile, error)
}

// LocalSourceScanner walks source roots through a ProjectFS.
type LocalSourceScanner struct {
	fs ProjectFS
}

// NewLocalSourceScanner constructs a LocalSourceScanner backed by fs.
func NewLocalSourceScanner(fs ProjectFS) *LocalSourceScanner {
	return &LocalSourceScanner{fs: fs}
}

// Scan walks the roots concurrently, one goroutine per directory, and
// concatenates the per-root results in directory order.
func (s *LocalSourceScanner) Scan(ctx context.Context, dirs []*m.SourceDirectory) ([]m.SourceFile, error) {
	results := make([][]m.SourceFile, len(dirs))

	g, ctx := errgroup.WithContext(ctx)

	for i, dir := range dirs {
		g.Go(func() error {
			files, err := s.scanRoot(ctx, dir)
			if err != nil {
				return err
			}

			results[i] = files

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []m.SourceFile
	for _, files := range results {
		all = append(all, files...)
	}

	return all, nil
}

func (s *LocalSourceScanner) scanRoot(ctx context.Context, dir *m.SourceDirectory) ([]m.SourceFile, error) {
	if _, err := s.fs.FileInfo(dir.Root); os.IsNotExist(err) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	var files []m.SourceFile

	err := s.fs.Walk(dir.Root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		if info.IsDir() || !s.accepts(dir.FileKind, path) {
			return nil
		}

		files = append(files, m.SourceFile{Path: m.Path(path), Directory: dir})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

func (s *LocalSourceScanner) accepts(kind m.FileKind, path string) bool {
	if kind == m.KindSource {
		return strings.HasSuffix(path, javaFileSuffix)
	}

	return filepath.Base(path) != PatchFileName
}
