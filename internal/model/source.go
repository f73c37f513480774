// Package model defines the value types shared by the modpatch domain,
// adapters and controllers.
package model

import (
	"fmt"
	"path/filepath"
	"strconv"
)

// Path represents a file system path.
type Path string

// Release is a Java language release number. The zero value means
// "no specific release" and sorts before every numbered release.
type Release int

// NoRelease is the sentinel for sources that are not release-specific.
const NoRelease Release = 0

// ParseRelease parses a release number. The empty string maps to NoRelease.
func ParseRelease(s string) (Release, error) {
	if s == "" {
		return NoRelease, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return NoRelease, fmt.Errorf("invalid release %q", s)
	}

	return Release(n), nil
}

// IsSpecified reports whether the release is a real release number.
func (r Release) IsSpecified() bool {
	return r != NoRelease
}

func (r Release) String() string {
	if r == NoRelease {
		return ""
	}

	return strconv.Itoa(int(r))
}

// FileKind identifies the content of a source directory or output directory.
type FileKind int

// Available FileKind values.
const (
	// KindSource marks directories of compilable source files.
	KindSource FileKind = iota
	// KindClass marks directories of compiled classes.
	KindClass
	// KindOther marks directories of resources copied as-is.
	KindOther
)

// SourceDirectory is a single root directory of source files, associated with
// an optional module name and an optional target release. The directory also
// carries its output directory because that location depends on both the
// module name and the release.
//
// Instances are immutable once constructed.
type SourceDirectory struct {
	// Root is the root directory of all source files.
	Root Path

	// FileKind is the kind of files under Root, usually KindSource.
	FileKind FileKind

	// Module is the module owning these sources, or empty if none.
	Module string

	// Release is the targeted release, or NoRelease for the default one.
	Release Release

	// OutputDirectory is where compilation results for this root go.
	// Starting from the base output directory, the module name is appended
	// if present, then "META-INF/versions/<n>" if the root is release-specific.
	OutputDirectory Path

	// OutputFileKind is the kind of files written under OutputDirectory.
	OutputFileKind FileKind
}

// NewSourceDirectory creates a source directory and computes its output
// directory from the given base.
func NewSourceDirectory(root Path, kind FileKind, module string, release Release, baseOutput Path) *SourceDirectory {
	output := string(baseOutput)
	if release.IsSpecified() {
		if module != "" {
			output = filepath.Join(output, module, "META-INF", "versions", release.String())
		} else {
			output = filepath.Join(output, "META-INF", "versions", release.String())
		}
	} else if module != "" {
		output = filepath.Join(output, module)
	}

	return &SourceDirectory{
		Root:            root,
		FileKind:        kind,
		Module:          module,
		Release:         release,
		OutputDirectory: Path(output),
		OutputFileKind:  KindClass,
	}
}

// Equal reports whether the two directories have the same root, module name,
// release and output directory.
func (d *SourceDirectory) Equal(other *SourceDirectory) bool {
	if d == nil || other == nil {
		return d == other
	}

	return d.Release == other.Release &&
		d.Module == other.Module &&
		d.Root == other.Root &&
		d.OutputDirectory == other.OutputDirectory
}

func (d *SourceDirectory) String() string {
	s := fmt.Sprintf("%q", d.Root)
	if d.Module != "" {
		s += fmt.Sprintf(" for module %q", d.Module)
	}

	if d.Release.IsSpecified() {
		s += " on release " + d.Release.String()
	}

	return s
}

// SourceFile is one discovered source file together with its owning directory.
type SourceFile struct {
	Path      Path
	Directory *SourceDirectory
}
