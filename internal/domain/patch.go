// Package domain contains the core modpatch algorithms: the patch language
// parser, the module patch model, the dependency classifier, the option
// emitter and the source partitioner.
package domain

import (
	"io"
	"strings"

	"modpatch.dev/pkg/modpatch/internal/model"
	"modpatch.dev/pkg/modpatch/pkg/ordered"
)

// testModulePath is the Maven-style keyword meaning "every module resolved on
// the test module path". It is expanded by the classifier and is never passed
// to the compiler. Other special tokens such as "ALL-MODULE-PATH" are
// understood by the compiler and pass through unchanged.
const testModulePath = "TEST-MODULE-PATH"

// allUnnamed targets the unnamed module (classpath dependencies).
const allUnnamed = "ALL-UNNAMED"

var (
	addModulesSpecialCases = map[string]bool{"ALL-MODULE-PATH": true, testModulePath: true}
	addExportsSpecialCases = map[string]bool{allUnnamed: true, testModulePath: true}
)

type (
	stringSet    = ordered.Set[string]
	qualifiedMap = ordered.Map[string, *stringSet]
)

func newStringSet() *stringSet { return ordered.NewSet[string]() }

// SharedModules is the single --add-modules value of one compilation unit.
// The option is global rather than per-module, so every ModulePatch of the
// unit holds the same SharedModules and contributes to it; the first emitter
// call writes the option and drains the set so that no later call repeats it.
type SharedModules struct {
	modules *stringSet
	emitted bool
}

// NewSharedModules creates an empty shared --add-modules context.
func NewSharedModules() *SharedModules {
	return &SharedModules{modules: newStringSet()}
}

// Add inserts a module name and reports whether it was not already present.
func (s *SharedModules) Add(name string) bool {
	return s.modules.Add(name)
}

// Values returns the accumulated module names in insertion order.
func (s *SharedModules) Values() []string {
	return s.modules.Values()
}

// writeTo emits --add-modules on the first call and drains the set.
func (s *SharedModules) writeTo(target *model.Options) {
	if s.emitted {
		return
	}

	s.emitted = true
	target.AddIfNonBlank("--add-modules", strings.Join(s.modules.Values(), ","))
	s.modules.Clear()
}

// OptionWriter is the capability shared by full module patches and their
// reads-only derivations.
type OptionWriter interface {
	// ModuleName returns the name of the patched module, or empty if unknown.
	ModuleName() string

	// WriteTo serializes the final options. opens controls whether the
	// --add-opens options are included; they are wanted for test compilation
	// but not for the main one.
	WriteTo(target *model.Options, opens bool)
}

// ModulePatch is the module graph override for one module being compiled:
// the parsed content of its module-info-patch file, merged with the modules
// contributed by test-scoped dependencies.
type ModulePatch struct {
	// moduleName is the module this patch applies to. It is seeded with a
	// default before parsing and overwritten by the parsed declaration.
	// When empty, only the global options may be emitted.
	moduleName string

	// shared accumulates the global --add-modules values for the whole
	// compilation unit.
	shared *SharedModules

	limitModules *stringSet
	addReads     *stringSet
	addExports   *qualifiedMap
	addOpens     *qualifiedMap

	// addAllTestModulePath and readAllTestModulePath request the implicit
	// expansion of the test module path into --add-modules and --add-reads.
	// Both are true when no patch file exists and are reset by Load unless
	// the file names TEST-MODULE-PATH explicitly.
	addAllTestModulePath  bool
	readAllTestModulePath bool

	// exportsToTestModulePath lists the packages exported to TEST-MODULE-PATH;
	// the classifier replaces the keyword with concrete module names.
	exportsToTestModulePath *stringSet
}

// NewModulePatch creates an empty patch for the given default module.
// The implicit test-module-path behavior is enabled until a patch file
// is loaded.
func NewModulePatch(defaultModule string, shared *SharedModules) *ModulePatch {
	return &ModulePatch{
		moduleName:              strings.TrimSpace(defaultModule),
		shared:                  shared,
		limitModules:            newStringSet(),
		addReads:                newStringSet(),
		addExports:              ordered.NewMap[string, *stringSet](),
		addOpens:                ordered.NewMap[string, *stringSet](),
		addAllTestModulePath:    true,
		readAllTestModulePath:   true,
		exportsToTestModulePath: newStringSet(),
	}
}

// ModuleName returns the name of the module to patch, or empty if unknown.
func (mp *ModulePatch) ModuleName() string {
	return mp.moduleName
}

// Load parses a module-info-patch file and merges its directives into the
// patch. The reader is not closed. A *PatchError is returned for any grammar
// violation; the patch must not be used after a failed Load.
func (mp *ModulePatch) Load(source io.Reader) error {
	data, err := io.ReadAll(source)
	if err != nil {
		return err
	}

	p := &parser{lex: newLexer(string(data)), patch: mp}

	return p.parse()
}

// AddTestModulePath expands the TEST-MODULE-PATH shorthand using the
// dependency resolver's output. Dependencies on the test module path are
// added to the shared --add-modules set and to --add-reads, depending on
// which shorthand is active. When neither shorthand is active, or the view
// is empty, this is a no-op: the patch file enumerated everything itself.
//
// runtime selects the execution pass: test-only dependencies apply to the
// compile pass, test-runtime dependencies to the runtime pass, and plain
// test dependencies to both.
func (mp *ModulePatch) AddTestModulePath(deps model.ResolvedDependencies, runtime bool) {
	if len(deps) == 0 || !(mp.addAllTestModulePath || mp.readAllTestModulePath) {
		return
	}

	// Modules already handled in this pass, including the requirements of
	// every module actually added. Skipping those keeps the generated
	// command line short; it is a readability simplification, not a
	// correctness requirement.
	done := make(map[string]struct{})
	testModules := newStringSet()

	for _, dep := range deps {
		switch dep.Scope {
		case model.ScopeTest:
		case model.ScopeTestOnly:
			if runtime {
				continue
			}
		case model.ScopeTestRuntime:
			if !runtime {
				continue
			}
		default:
			// Non-test dependencies are already in the main module graph.
			continue
		}

		name := dep.Module
		if name == "" {
			if mp.readAllTestModulePath {
				mp.addReads.Add(allUnnamed)
			}

			continue
		}

		testModules.Add(name)

		if _, seen := done[name]; seen {
			continue
		}

		done[name] = struct{}{}
		modified := false

		if mp.addAllTestModulePath && mp.shared.Add(name) {
			modified = true
		}

		if mp.readAllTestModulePath && mp.addReads.Add(name) {
			modified = true
		}

		if modified {
			for _, required := range dep.Requires {
				done[required] = struct{}{}
			}
		}
	}

	// Replace the TEST-MODULE-PATH keyword of qualified exports with the
	// concrete module names found above.
	for _, pkg := range mp.exportsToTestModulePath.Values() {
		targets := mp.addExports.GetOrCreate(pkg, newStringSet)
		for _, name := range testModules.Values() {
			targets.Add(name)
		}
	}
}

// PatchWithSameReads returns a patch for another module carrying the same
// --add-reads values by shared reference and nothing else. It is used to
// replicate the implicit read set to sibling modules that have no patch file
// of their own. Returns nil when otherModule is empty.
func (mp *ModulePatch) PatchWithSameReads(otherModule string) *ReadsOnlyPatch {
	otherModule = strings.TrimSpace(otherModule)
	if otherModule == "" {
		return nil
	}

	return &ReadsOnlyPatch{moduleName: otherModule, addReads: mp.addReads}
}

// WriteTo serializes the accumulated options in a fixed order: the global
// --add-modules (exactly once per compilation unit, see SharedModules),
// --limit-modules, then the per-module --add-reads, --add-exports and
// optionally --add-opens. Options with empty values are omitted.
func (mp *ModulePatch) WriteTo(target *model.Options, opens bool) {
	mp.shared.writeTo(target)
	writeSet(target, "--limit-modules", "", mp.limitModules)

	if mp.moduleName == "" {
		return
	}

	writeSet(target, "--add-reads", mp.moduleName, mp.addReads)
	writeQualified(target, "--add-exports", mp.moduleName, mp.addExports)

	if opens {
		writeQualified(target, "--add-opens", mp.moduleName, mp.addOpens)
	}
}

// ReadsOnlyPatch is the reduced form of a module patch: the same --add-reads
// values as its parent, for a sibling module. The read set is shared by
// reference, so later classifier passes on the parent are visible here.
type ReadsOnlyPatch struct {
	moduleName string
	addReads   *stringSet
}

// ModuleName returns the name of the patched module.
func (rp *ReadsOnlyPatch) ModuleName() string {
	return rp.moduleName
}

// WriteTo serializes the --add-reads option for the sibling module. The
// reduced patch never contributes the global options.
func (rp *ReadsOnlyPatch) WriteTo(target *model.Options, _ bool) {
	writeSet(target, "--add-reads", rp.moduleName, rp.addReads)
}

func writeSet(target *model.Options, flag, prefix string, values *stringSet) {
	if values.Len() == 0 {
		return
	}

	joined := strings.Join(values.Values(), ",")
	if prefix != "" {
		joined = prefix + "=" + joined
	}

	target.AddIfNonBlank(flag, joined)
}

func writeQualified(target *model.Options, flag, moduleName string, values *qualifiedMap) {
	for _, pkg := range values.Keys() {
		targets, _ := values.Get(pkg)
		writeSet(target, flag, moduleName+"/"+pkg, targets)
	}
}
