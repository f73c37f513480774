package domain

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// PatchError is a syntax error in a module-info-patch file. It carries the
// line number where the offending token starts. Parsing stops at the first
// error; a malformed patch file is never partially applied.
type PatchError struct {
	Line    int
	Message string
}

func (e *PatchError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokWord
	tokLBrace
	tokRBrace
	tokSemicolon
	tokComma
)

type token struct {
	kind tokenKind
	text string
	line int
}

func (t token) describe() string {
	switch t.kind {
	case tokEOF:
		return "end of file"
	case tokLBrace:
		return `"{"`
	case tokRBrace:
		return `"}"`
	case tokSemicolon:
		return `";"`
	case tokComma:
		return `","`
	default:
		return fmt.Sprintf("%q", t.text)
	}
}

// lexer splits patch text into words and punctuation, tracking line numbers
// so parse errors can name the offending line. Both // and /* */ comments
// are skipped wherever a token boundary is allowed.
type lexer struct {
	src  string
	pos  int
	line int
}

func newLexer(src string) *lexer {
	return &lexer{src: src, line: 1}
}

// isWordRune reports whether r may appear inside a word token. Words cover
// dotted names and the dashed keywords and special tokens of the patch
// language; name validity is checked by the parser, not here.
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '-' || r == '_' || r == '$'
}

func (l *lexer) next() (token, error) {
	if err := l.skipSpaceAndComments(); err != nil {
		return token{}, err
	}

	if l.pos >= len(l.src) {
		return token{kind: tokEOF, line: l.line}, nil
	}

	start := l.pos
	startLine := l.line
	r, size := utf8.DecodeRuneInString(l.src[l.pos:])

	switch r {
	case '{':
		l.pos += size
		return token{kind: tokLBrace, text: "{", line: startLine}, nil
	case '}':
		l.pos += size
		return token{kind: tokRBrace, text: "}", line: startLine}, nil
	case ';':
		l.pos += size
		return token{kind: tokSemicolon, text: ";", line: startLine}, nil
	case ',':
		l.pos += size
		return token{kind: tokComma, text: ",", line: startLine}, nil
	}

	if !isWordRune(r) {
		return token{}, &PatchError{Line: startLine, Message: fmt.Sprintf("unexpected character %q", r)}
	}

	for l.pos < len(l.src) {
		r, size = utf8.DecodeRuneInString(l.src[l.pos:])
		if !isWordRune(r) {
			break
		}

		l.pos += size
	}

	return token{kind: tokWord, text: l.src[start:l.pos], line: startLine}, nil
}

func (l *lexer) skipSpaceAndComments() error {
	for l.pos < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])

		switch {
		case r == '\n':
			l.line++
			l.pos += size
		case unicode.IsSpace(r):
			l.pos += size
		case r == '/' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '/':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
		case r == '/' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '*':
			if err := l.skipBlockComment(); err != nil {
				return err
			}
		default:
			return nil
		}
	}

	return nil
}

func (l *lexer) skipBlockComment() error {
	startLine := l.line
	l.pos += 2 // consume "/*"

	for l.pos < len(l.src) {
		if l.src[l.pos] == '\n' {
			l.line++
			l.pos++

			continue
		}

		if l.src[l.pos] == '*' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '/' {
			l.pos += 2
			return nil
		}

		l.pos++
	}

	return &PatchError{Line: startLine, Message: "unterminated comment"}
}
