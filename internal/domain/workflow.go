package domain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"modpatch.dev/pkg/modpatch/internal/adapter"
	"modpatch.dev/pkg/modpatch/internal/controller"
	"modpatch.dev/pkg/modpatch/internal/model"
	"modpatch.dev/pkg/modpatch/pkg/ordered"
)

// OptionsArgs are the inputs of the option computation workflow.
type OptionsArgs struct {
	// Sources are the configured source roots.
	Sources []*model.SourceDirectory

	// DefaultModule seeds the patched module's name when no patch file
	// declares one. When empty, the name is read from a module-info.java
	// found at the top of a source root.
	DefaultModule string

	// Resolution is the path of the dependency resolution lockfile, or
	// empty when resolution results are unavailable.
	Resolution model.Path

	// MainOutput is the compiled main classes directory. When set it is
	// prepended to the patched module's --patch-module paths, so the
	// sources under compilation see the main classes as part of the same
	// module.
	MainOutput model.Path

	// Runtime selects the runtime pass instead of the compile pass.
	Runtime bool

	// Opens controls whether --add-opens options are emitted.
	Opens bool
}

// PlanArgs are the inputs of the plan workflow.
type PlanArgs struct {
	Sources []*model.SourceDirectory
}

// Workflow is the use-case layer of the modpatch CLI.
type Workflow interface {
	// ComputeOptions derives the module-graph compiler options for the
	// configured sources and displays them.
	ComputeOptions(ctx context.Context, args OptionsArgs) error

	// Plan partitions the sources by release and module and displays the
	// resulting layout.
	Plan(ctx context.Context, args PlanArgs) error

	// Check validates the given patch files and displays any findings.
	// It returns an error when at least one file is invalid.
	Check(ctx context.Context, paths []model.Path) error
}

type workflow struct {
	adapter.PatchStore
	adapter.ResolutionLoader
	adapter.SourceScanner
	adapter.ModuleNameReader
	controller.UI
}

// NewWorkflow creates a Workflow instance with the provided dependencies.
func NewWorkflow(
	patches adapter.PatchStore,
	resolution adapter.ResolutionLoader,
	scanner adapter.SourceScanner,
	moduleNames adapter.ModuleNameReader,
	ui controller.UI,
) Workflow {
	return &workflow{
		PatchStore:       patches,
		ResolutionLoader: resolution,
		SourceScanner:    scanner,
		ModuleNameReader: moduleNames,
		UI:               ui,
	}
}

func (w *workflow) ComputeOptions(ctx context.Context, args OptionsArgs) error {
	roots := make([]model.Path, 0, len(args.Sources))
	for _, dir := range args.Sources {
		roots = append(roots, dir.Root)
	}

	defaultModule, err := w.defaultModule(args)
	if err != nil {
		return err
	}

	shared := NewSharedModules()
	patch := NewModulePatch(defaultModule, shared)

	patchPath, err := w.Locate(roots)
	if err != nil {
		return err
	}

	if patchPath != "" {
		slog.Debug("loading module patch", "path", patchPath)

		data, err := w.ReadPatch(patchPath)
		if err != nil {
			return err
		}

		if err := patch.Load(bytes.NewReader(data)); err != nil {
			return fmt.Errorf("%s: %w", patchPath, err)
		}
	}

	deps, err := w.ResolutionLoader.Load(args.Resolution)
	if err != nil {
		return err
	}

	patch.AddTestModulePath(deps, args.Runtime)

	var opts model.Options
	for _, writer := range w.optionWriters(patch, args.Sources) {
		writer.WriteTo(&opts, args.Opens)
	}

	w.writePatchModuleOptions(&opts, patch.ModuleName(), args.MainOutput, args.Sources)

	return w.DisplayOptions(ctx, &opts)
}

// defaultModule resolves the name of the module being patched: the
// configured name first, then the first named source root, then a
// module-info.java declaration found at the top of a root.
func (w *workflow) defaultModule(args OptionsArgs) (string, error) {
	if args.DefaultModule != "" {
		return args.DefaultModule, nil
	}

	for _, dir := range args.Sources {
		if dir.Module != "" {
			return dir.Module, nil
		}
	}

	for _, dir := range args.Sources {
		name, err := w.ReadModuleName(dir.Root)
		if err != nil {
			return "", err
		}

		if name != "" {
			return name, nil
		}
	}

	return "", nil
}

// optionWriters returns the patch followed by a reads-only derivation for
// every other named module among the sources. Sibling modules without their
// own patch file inherit the implicit read set this way.
func (w *workflow) optionWriters(patch *ModulePatch, sources []*model.SourceDirectory) []OptionWriter {
	writers := []OptionWriter{patch}
	seen := map[string]bool{patch.ModuleName(): true}

	for _, dir := range sources {
		if dir.Module == "" || seen[dir.Module] {
			continue
		}

		seen[dir.Module] = true

		if derived := patch.PatchWithSameReads(dir.Module); derived != nil {
			writers = append(writers, derived)
		}
	}

	return writers
}

// writePatchModuleOptions emits one --patch-module option per named module,
// with the source roots that patch it. Roots without a module fall back to
// the patched module's name; sources that still have no module produce no
// option. The patched module's paths start with the main output directory
// when one is configured.
func (w *workflow) writePatchModuleOptions(opts *model.Options, defaultModule string, mainOutput model.Path, sources []*model.SourceDirectory) {
	byModule := ordered.NewMap[string, []string]()

	if defaultModule != "" && mainOutput != "" {
		byModule.Set(defaultModule, []string{string(mainOutput)})
	}

	for _, dir := range sources {
		name := dir.Module
		if name == "" {
			name = defaultModule
		}

		if name == "" {
			continue
		}

		existing, _ := byModule.Get(name)
		byModule.Set(name, append(existing, string(dir.Root)))
	}

	for _, name := range byModule.Keys() {
		paths, _ := byModule.Get(name)
		opts.AddIfNonBlank("--patch-module", name+"="+strings.Join(paths, string(os.PathListSeparator)))
	}
}

func (w *workflow) Plan(ctx context.Context, args PlanArgs) error {
	files, err := w.Scan(ctx, args.Sources)
	if err != nil {
		return fmt.Errorf("scan sources: %w", err)
	}

	fileCounts := make(map[*model.SourceDirectory]int)
	outputs := make(map[model.Path]model.Path)

	for _, file := range files {
		fileCounts[file.Directory]++
		outputs[file.Directory.Root] = file.Directory.OutputDirectory
	}

	countByRoot := make(map[model.Path]int)
	for dir, count := range fileCounts {
		countByRoot[dir.Root] += count
	}

	var rows []controller.PlanRow

	for _, bucket := range GroupByReleaseAndModule(files) {
		for _, moduleName := range bucket.Roots.Keys() {
			moduleRoots, _ := bucket.Roots.Get(moduleName)
			for _, root := range moduleRoots.Values() {
				rows = append(rows, controller.PlanRow{
					Release:   bucket.Release,
					Module:    moduleName,
					Root:      root,
					Output:    outputs[root],
					FileCount: countByRoot[root],
				})
			}
		}
	}

	return w.DisplayPlan(ctx, rows)
}

func (w *workflow) Check(ctx context.Context, paths []model.Path) error {
	var findings []controller.CheckFinding

	for _, path := range paths {
		data, err := w.ReadPatch(path)
		if err != nil {
			findings = append(findings, controller.CheckFinding{File: path, Message: err.Error()})
			continue
		}

		patch := NewModulePatch("", NewSharedModules())
		if err := patch.Load(bytes.NewReader(data)); err != nil {
			finding := controller.CheckFinding{File: path, Message: err.Error()}

			var patchErr *PatchError
			if errors.As(err, &patchErr) {
				finding.Line = patchErr.Line
				finding.Message = patchErr.Message
			}

			findings = append(findings, finding)
		}
	}

	if err := w.DisplayCheckFindings(ctx, findings); err != nil {
		return err
	}

	if len(findings) > 0 {
		return fmt.Errorf("%d invalid patch file(s)", len(findings))
	}

	return nil
}
