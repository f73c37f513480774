package domain

import (
	"fmt"
	"unicode"
)

// parser consumes the token stream of one module-info-patch file and fills a
// ModulePatch in place. Parsing is strict: any unknown keyword, missing
// delimiter, invalid name or trailing content is fatal.
type parser struct {
	lex   *lexer
	patch *ModulePatch
}

func (p *parser) parse() error {
	if err := p.expectWord("patch-module"); err != nil {
		return err
	}

	name, err := p.nextName(true)
	if err != nil {
		return err
	}

	p.patch.moduleName = name
	// An explicit patch file disables the implicit test-module-path
	// behavior unless the file itself re-requests it.
	p.patch.addAllTestModulePath = false
	p.patch.readAllTestModulePath = false

	if err := p.expect(tokLBrace); err != nil {
		return err
	}

	for {
		tok, err := p.lex.next()
		if err != nil {
			return err
		}

		if tok.kind == tokRBrace {
			break
		}

		if tok.kind != tokWord {
			return &PatchError{Line: tok.line, Message: fmt.Sprintf("expected a directive or \"}\" but found %s", tok.describe())}
		}

		if err := p.parseDirective(tok); err != nil {
			return err
		}
	}

	tok, err := p.lex.next()
	if err != nil {
		return err
	}

	if tok.kind != tokEOF {
		return &PatchError{Line: tok.line, Message: fmt.Sprintf("expected end of file but found %s", tok.describe())}
	}

	return nil
}

func (p *parser) parseDirective(keyword token) error {
	switch keyword.text {
	case "add-modules":
		if err := p.parseNameList(p.patch.shared.modules, addModulesSpecialCases); err != nil {
			return err
		}

		if p.patch.shared.modules.Remove(testModulePath) {
			p.patch.addAllTestModulePath = true
		}

		return nil

	case "limit-modules":
		return p.parseNameList(p.patch.limitModules, nil)

	case "add-reads":
		if err := p.parseNameList(p.patch.addReads, map[string]bool{testModulePath: true}); err != nil {
			return err
		}

		if p.patch.addReads.Remove(testModulePath) {
			p.patch.readAllTestModulePath = true
		}

		return nil

	case "add-exports":
		pkg, targets, err := p.parseQualified(p.patch.addExports, addExportsSpecialCases)
		if err != nil {
			return err
		}

		if targets.Remove(testModulePath) {
			p.patch.exportsToTestModulePath.Add(pkg)
		}

		return nil

	case "add-opens":
		_, _, err := p.parseQualified(p.patch.addOpens, nil)

		return err

	default:
		return &PatchError{Line: keyword.line, Message: fmt.Sprintf("unknown keyword %q", keyword.text)}
	}
}

// parseNameList reads name ("," name)* ";" into target. Names listed in
// specialCases bypass identifier validation.
func (p *parser) parseNameList(target *stringSet, specialCases map[string]bool) error {
	for {
		tok, err := p.lex.next()
		if err != nil {
			return err
		}

		if tok.kind != tokWord {
			return &PatchError{Line: tok.line, Message: fmt.Sprintf("expected a module name but found %s", tok.describe())}
		}

		if !specialCases[tok.text] {
			if err := validateName(tok, true); err != nil {
				return err
			}
		}

		target.Add(tok.text)

		tok, err = p.lex.next()
		if err != nil {
			return err
		}

		switch tok.kind {
		case tokComma:
			continue
		case tokSemicolon:
			return nil
		default:
			return &PatchError{Line: tok.line, Message: fmt.Sprintf("expected \",\" or \";\" but found %s", tok.describe())}
		}
	}
}

// parseQualified reads a package name, the "to" keyword and a name list.
// Used by add-exports and add-opens. It returns the package name and its
// target set so the caller can post-process special cases.
func (p *parser) parseQualified(target *qualifiedMap, specialCases map[string]bool) (string, *stringSet, error) {
	pkg, err := p.nextName(false)
	if err != nil {
		return "", nil, err
	}

	if err := p.expectWord("to"); err != nil {
		return "", nil, err
	}

	values := target.GetOrCreate(pkg, newStringSet)
	if err := p.parseNameList(values, specialCases); err != nil {
		return "", nil, err
	}

	return pkg, values, nil
}

func (p *parser) nextName(module bool) (string, error) {
	tok, err := p.lex.next()
	if err != nil {
		return "", err
	}

	what := "package"
	if module {
		what = "module"
	}

	if tok.kind != tokWord {
		return "", &PatchError{Line: tok.line, Message: fmt.Sprintf("expected a %s name but found %s", what, tok.describe())}
	}

	if err := validateName(tok, module); err != nil {
		return "", err
	}

	return tok.text, nil
}

func (p *parser) expect(kind tokenKind) error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}

	if tok.kind != kind {
		want := token{kind: kind}

		return &PatchError{Line: tok.line, Message: fmt.Sprintf("expected %s but found %s", want.describe(), tok.describe())}
	}

	return nil
}

func (p *parser) expectWord(word string) error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}

	if tok.kind != tokWord || tok.text != word {
		return &PatchError{Line: tok.line, Message: fmt.Sprintf("expected %q but found %s", word, tok.describe())}
	}

	return nil
}

// validateName checks that a token is a dot-separated sequence of identifier
// segments: each segment starts with an identifier-start character followed
// by identifier-part characters.
func validateName(tok token, module bool) error {
	expectFirst := true

	for _, r := range tok.text {
		if expectFirst {
			if !isIdentifierStart(r) {
				return invalidName(tok, module)
			}

			expectFirst = false

			continue
		}

		if isIdentifierPart(r) {
			continue
		}

		if r == '.' {
			expectFirst = true

			continue
		}

		return invalidName(tok, module)
	}

	// Also rejects the empty name and a trailing dot.
	if expectFirst {
		return invalidName(tok, module)
	}

	return nil
}

func invalidName(tok token, module bool) error {
	what := "package"
	if module {
		what = "module"
	}

	return &PatchError{Line: tok.line, Message: fmt.Sprintf("invalid %s name %q", what, tok.text)}
}

func isIdentifierStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_' || r == '$'
}

func isIdentifierPart(r rune) bool {
	return isIdentifierStart(r) || unicode.IsDigit(r)
}
