package model

import "fmt"

// Scope is the resolution scope a dependency was declared with.
type Scope int

// Available Scope values. Only the three test scopes participate in
// test-module-path classification; the others are listed for completeness
// and are skipped by the classifier.
const (
	ScopeNone Scope = iota
	ScopeCompile
	ScopeRuntime
	ScopeProvided
	ScopeTest
	ScopeTestOnly
	ScopeTestRuntime
)

var scopeNames = map[Scope]string{
	ScopeNone:        "",
	ScopeCompile:     "compile",
	ScopeRuntime:     "runtime",
	ScopeProvided:    "provided",
	ScopeTest:        "test",
	ScopeTestOnly:    "test-only",
	ScopeTestRuntime: "test-runtime",
}

// ParseScope parses the scope names used in resolution lockfiles.
func ParseScope(s string) (Scope, error) {
	for scope, name := range scopeNames {
		if name == s {
			return scope, nil
		}
	}

	return ScopeNone, fmt.Errorf("unknown dependency scope %q", s)
}

func (s Scope) String() string {
	return scopeNames[s]
}

// IsTest reports whether the scope is one of the test scopes.
func (s Scope) IsTest() bool {
	return s == ScopeTest || s == ScopeTestOnly || s == ScopeTestRuntime
}

// ResolvedDependency is one entry of the dependency resolver's output: a
// dependency descriptor together with the path it resolved to, the module
// name found there (empty when the artifact is unnamed) and the modules that
// its module descriptor requires.
type ResolvedDependency struct {
	ID       string
	Scope    Scope
	Path     Path
	Module   string
	Requires []string
}

// ResolvedDependencies is the ordered view of the resolver's output.
// Iteration order is the resolver's order and is semantically relevant:
// it decides which module "owns" the pruning of its transitive requirements.
type ResolvedDependencies []ResolvedDependency
