package domain

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func loadPatch(t *testing.T, src string) *ModulePatch {
	t.Helper()

	mp := NewModulePatch("", NewSharedModules())
	if err := mp.Load(strings.NewReader(src)); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	return mp
}

func loadPatchError(t *testing.T, src string) *PatchError {
	t.Helper()

	mp := NewModulePatch("", NewSharedModules())
	err := mp.Load(strings.NewReader(src))
	if err == nil {
		t.Fatalf("Load() expected an error")
	}

	var patchErr *PatchError
	if !errors.As(err, &patchErr) {
		t.Fatalf("Load() error = %T, want *PatchError", err)
	}

	return patchErr
}

func TestLoad_FullPatchFile(t *testing.T) {
	mp := loadPatch(t, `
		// Overrides for the test compilation of my.module.
		patch-module my.module {
			limit-modules java.base, java.sql, my.module;
			add-reads lib.one, lib.two;
			add-exports my.module.internal to lib.one, ALL-UNNAMED;
			add-opens my.module.internal to lib.two;
		}`)

	if mp.ModuleName() != "my.module" {
		t.Fatalf("ModuleName() = %q, want %q", mp.ModuleName(), "my.module")
	}

	if got, want := mp.limitModules.Values(), []string{"java.base", "java.sql", "my.module"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("limitModules = %v, want %v", got, want)
	}

	if got, want := mp.addReads.Values(), []string{"lib.one", "lib.two"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("addReads = %v, want %v", got, want)
	}

	exports, ok := mp.addExports.Get("my.module.internal")
	if !ok {
		t.Fatalf("addExports is missing my.module.internal")
	}

	if got, want := exports.Values(), []string{"lib.one", "ALL-UNNAMED"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("addExports targets = %v, want %v", got, want)
	}

	opens, ok := mp.addOpens.Get("my.module.internal")
	if !ok || !opens.Contains("lib.two") {
		t.Fatalf("addOpens is missing my.module.internal -> lib.two")
	}

	if mp.addAllTestModulePath || mp.readAllTestModulePath {
		t.Fatalf("shorthand flags should be disabled after parsing a patch file")
	}
}

func TestLoad_CommentsAreIgnored(t *testing.T) {
	mp := loadPatch(t, `
		/* block comment
		   spanning lines */
		patch-module my.module { // trailing comment
			add-reads /* inline */ lib.one;
		}`)

	if !mp.addReads.Contains("lib.one") {
		t.Fatalf("addReads should contain lib.one")
	}
}

func TestLoad_TestModulePathShorthand(t *testing.T) {
	mp := loadPatch(t, `patch-module ok { add-reads X, TEST-MODULE-PATH; }`)

	if !mp.readAllTestModulePath {
		t.Fatalf("TEST-MODULE-PATH in add-reads should set the read-all flag")
	}

	if got, want := mp.addReads.Values(), []string{"X"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("addReads = %v, want %v (keyword must be consumed)", got, want)
	}

	if mp.addAllTestModulePath {
		t.Fatalf("add-all flag should stay disabled")
	}
}

func TestLoad_AddModulesSpecialCases(t *testing.T) {
	shared := NewSharedModules()
	mp := NewModulePatch("", shared)

	src := `patch-module ok { add-modules ALL-MODULE-PATH, TEST-MODULE-PATH, lib.extra; }`
	if err := mp.Load(strings.NewReader(src)); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !mp.addAllTestModulePath {
		t.Fatalf("TEST-MODULE-PATH in add-modules should set the add-all flag")
	}

	if got, want := shared.Values(), []string{"ALL-MODULE-PATH", "lib.extra"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("shared modules = %v, want %v", got, want)
	}
}

func TestLoad_ExportsToTestModulePath(t *testing.T) {
	mp := loadPatch(t, `patch-module ok {
		add-exports some.pkg to ModA, TEST-MODULE-PATH;
		add-exports other.pkg to ModB;
	}`)

	if !mp.exportsToTestModulePath.Contains("some.pkg") {
		t.Fatalf("some.pkg should be marked for export to the test module path")
	}

	if mp.exportsToTestModulePath.Contains("other.pkg") {
		t.Fatalf("other.pkg should not be marked")
	}

	targets, _ := mp.addExports.Get("some.pkg")
	if targets.Contains(testModulePath) {
		t.Fatalf("the keyword must be removed from the literal target set")
	}

	if !targets.Contains("ModA") {
		t.Fatalf("literal targets must be kept")
	}
}

func TestLoad_DefaultModuleNameIsOverwritten(t *testing.T) {
	mp := NewModulePatch("default.module", NewSharedModules())
	if err := mp.Load(strings.NewReader(`patch-module declared.module { }`)); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if mp.ModuleName() != "declared.module" {
		t.Fatalf("ModuleName() = %q, want the declared name", mp.ModuleName())
	}
}

func TestLoad_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantLine int
		wantMsg  string
	}{
		{
			name:     "module name starting with a digit",
			src:      "patch-module 9bad { add-reads X; }",
			wantLine: 1,
			wantMsg:  `invalid module name "9bad"`,
		},
		{
			name:     "missing comma in name list",
			src:      "patch-module ok { add-reads X Y; }",
			wantLine: 1,
			wantMsg:  `expected "," or ";" but found "Y"`,
		},
		{
			name:     "unknown keyword",
			src:      "patch-module ok {\n  frobnicate X;\n}",
			wantLine: 2,
			wantMsg:  `unknown keyword "frobnicate"`,
		},
		{
			name:     "missing opening brace",
			src:      "patch-module ok add-reads X; }",
			wantLine: 1,
			wantMsg:  `expected "{" but found "add-reads"`,
		},
		{
			name:     "missing semicolon",
			src:      "patch-module ok {\n  add-reads X\n}",
			wantLine: 3,
			wantMsg:  `expected "," or ";" but found "}"`,
		},
		{
			name:     "missing closing brace",
			src:      "patch-module ok {\n  add-reads X;",
			wantLine: 2,
			wantMsg:  `expected a directive or "}" but found end of file`,
		},
		{
			name:     "trailing content",
			src:      "patch-module ok { } extra",
			wantLine: 1,
			wantMsg:  `expected end of file but found "extra"`,
		},
		{
			name:     "wrong leading keyword",
			src:      "module ok { }",
			wantLine: 1,
			wantMsg:  `expected "patch-module" but found "module"`,
		},
		{
			name:     "invalid package name",
			src:      "patch-module ok { add-exports bad..pkg to X; }",
			wantLine: 1,
			wantMsg:  `invalid package name "bad..pkg"`,
		},
		{
			name:     "missing to keyword",
			src:      "patch-module ok { add-exports some.pkg X; }",
			wantLine: 1,
			wantMsg:  `expected "to" but found "X"`,
		},
		{
			name:     "special case rejected outside its context",
			src:      "patch-module ok { limit-modules TEST-MODULE-PATH; }",
			wantLine: 1,
			wantMsg:  `invalid module name "TEST-MODULE-PATH"`,
		},
		{
			name:     "unexpected character",
			src:      "patch-module ok { add-reads X=Y; }",
			wantLine: 1,
			wantMsg:  `unexpected character '='`,
		},
		{
			name:     "unterminated block comment",
			src:      "patch-module ok { /* never closed",
			wantLine: 1,
			wantMsg:  "unterminated comment",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := loadPatchError(t, tt.src)
			if err.Line != tt.wantLine {
				t.Fatalf("error line = %d, want %d (%s)", err.Line, tt.wantLine, err.Message)
			}

			if err.Message != tt.wantMsg {
				t.Fatalf("error message = %q, want %q", err.Message, tt.wantMsg)
			}
		})
	}
}

func TestLoad_ErrorLineNumbers(t *testing.T) {
	err := loadPatchError(t, `patch-module ok {
	/* a comment
	   spanning three
	   lines */
	add-reads lib.one;
	bogus X;
}`)

	if err.Line != 6 {
		t.Fatalf("error line = %d, want 6", err.Line)
	}
}
