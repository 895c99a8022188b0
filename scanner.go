/*
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package clex

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const eof = -1

// Scanner turns preprocessed text into tokens. It holds no state
// between calls to Tokenize and may be shared between goroutines.
type Scanner struct {
	keywords KeywordSet
}

// NewScanner returns a scanner that classifies identifiers found in
// keywords as Keyword tokens.
func NewScanner(keywords KeywordSet) *Scanner {
	return &Scanner{keywords: keywords}
}

// Tokenize scans text in a single left-to-right pass. It never fails:
// unknown characters become Error tokens and unterminated literals end
// at the end of the input.
func (s *Scanner) Tokenize(text string) []Token {
	l := &lexer{
		input:    text,
		line:     1,
		column:   1,
		keywords: s.keywords,
		tokens:   make([]Token, 0, len(text)/3+1),
	}
	l.run()
	return l.tokens
}

// Tokenize is shorthand for NewScanner(keywords).Tokenize(text).
func Tokenize(text string, keywords KeywordSet) []Token {
	return NewScanner(keywords).Tokenize(text)
}

// lexer is the per-call scan state.
type lexer struct {
	input    string
	cursor   int // byte offset
	line     int
	column   int
	keywords KeywordSet
	tokens   []Token

	// position of the token being scanned
	start     int
	startLine int
	startCol  int
}

// A rule inspects the character under the cursor. When it applies it
// consumes input (emitting at most one token) and returns true.
type rule func(l *lexer) bool

// rules are tried in order; the first one that applies wins. The order
// is significant: a dot followed by a digit must reach number before
// loneDot sees it, and two-character operators must be tried before
// their one-character prefixes.
var rules = [...]rule{
	(*lexer).whitespace,
	(*lexer).delimiter,
	(*lexer).stringLiteral,
	(*lexer).charLiteral,
	(*lexer).twoCharOperator,
	(*lexer).oneCharOperator,
	(*lexer).number,
	(*lexer).identifier,
	(*lexer).directive,
	(*lexer).loneDot,
	(*lexer).unknown,
}

func (l *lexer) run() {
	for l.cursor < len(l.input) {
		l.start, l.startLine, l.startCol = l.cursor, l.line, l.column
		for _, r := range rules {
			if r(l) {
				break
			}
		}
	}
}

// peek returns the rune offset characters past the cursor, or eof.
func (l *lexer) peek(offset int) rune {
	pos := l.cursor
	for ; offset > 0 && pos < len(l.input); offset-- {
		_, w := utf8.DecodeRuneInString(l.input[pos:])
		pos += w
	}
	if pos >= len(l.input) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(l.input[pos:])
	return r
}

// advance consumes one character and updates the line/column counters.
// An invalid UTF-8 byte counts as one character.
func (l *lexer) advance() rune {
	r, w := utf8.DecodeRuneInString(l.input[l.cursor:])
	l.cursor += w
	if r == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return r
}

// emit records the text consumed since the start of the current step.
func (l *lexer) emit(cat Category) {
	l.tokens = append(l.tokens, Token{
		Category: cat,
		Lexeme:   l.input[l.start:l.cursor],
		Line:     l.startLine,
		Column:   l.startCol,
	})
}

func (l *lexer) whitespace() bool {
	if !unicode.IsSpace(l.peek(0)) {
		return false
	}
	l.advance()
	return true
}

func (l *lexer) delimiter() bool {
	if !isDelimiter(l.peek(0)) {
		return false
	}
	l.advance()
	l.emit(Delimiter)
	return true
}

func (l *lexer) stringLiteral() bool {
	return l.quoted('"', String)
}

func (l *lexer) charLiteral() bool {
	return l.quoted('\'', Char)
}

// quoted scans a literal delimited by quote. A backslash makes the next
// character literal. Running out of input ends the literal silently.
func (l *lexer) quoted(quote rune, cat Category) bool {
	if l.peek(0) != quote {
		return false
	}
	l.advance()
	escaped := false
	for l.cursor < len(l.input) {
		c := l.advance()
		if escaped {
			escaped = false
			continue
		}
		if c == '\\' {
			escaped = true
			continue
		}
		if c == quote {
			break
		}
	}
	l.emit(cat)
	return true
}

var twoCharOperators = [...]string{"==", "!=", "<=", ">=", "&&", "||", "++", "--"}

func (l *lexer) twoCharOperator() bool {
	rest := l.input[l.cursor:]
	for _, op := range twoCharOperators {
		if strings.HasPrefix(rest, op) {
			l.advance()
			l.advance()
			l.emit(Operator)
			return true
		}
	}
	return false
}

// oneCharOperator never matches '.': a dot either starts a number or is
// a Delimiter.
func (l *lexer) oneCharOperator() bool {
	if !isOperatorChar(l.peek(0)) {
		return false
	}
	l.advance()
	l.emit(Operator)
	return true
}

// number scans digits with at most one dot. A second dot ends the run.
func (l *lexer) number() bool {
	ch := l.peek(0)
	if !unicode.IsDigit(ch) && !(ch == '.' && unicode.IsDigit(l.peek(1))) {
		return false
	}
	dot := false
	for {
		p := l.peek(0)
		if unicode.IsDigit(p) {
			l.advance()
		} else if p == '.' && !dot {
			dot = true
			l.advance()
		} else {
			break
		}
	}
	if dot {
		l.emit(Float)
	} else {
		l.emit(Integer)
	}
	return true
}

func (l *lexer) identifier() bool {
	ch := l.peek(0)
	if !unicode.IsLetter(ch) && ch != '_' {
		return false
	}
	for isIdentPart(l.peek(0)) {
		l.advance()
	}
	if l.keywords.Contains(l.input[l.start:l.cursor]) {
		l.emit(Keyword)
	} else {
		l.emit(Identifier)
	}
	return true
}

// directive passes a '#' line through as one token, without the newline.
func (l *lexer) directive() bool {
	if l.peek(0) != '#' {
		return false
	}
	for p := l.peek(0); p != eof && p != '\n'; p = l.peek(0) {
		l.advance()
	}
	l.emit(PreprocessorLine)
	return true
}

func (l *lexer) loneDot() bool {
	if l.peek(0) != '.' {
		return false
	}
	l.advance()
	l.emit(Delimiter)
	return true
}

func (l *lexer) unknown() bool {
	l.advance()
	l.emit(Error)
	return true
}

func isDelimiter(r rune) bool {
	return r != eof && strings.ContainsRune("()[]{},;", r)
}

func isOperatorChar(r rune) bool {
	return r != eof && strings.ContainsRune("+-*/%!=<>&|", r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
