package preprocessor

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ---------------- Preprocessor ----------------

// Preprocessor strips comments, collects object-like #define macros and
// substitutes them back into the text. An instance accumulates the macro
// table of one document; use a fresh instance (or Reset) per document.
type Preprocessor struct {
	// KeepLineNumbers replaces removed comments and #define lines with
	// the newlines they occupied so token lines match the original file.
	KeepLineNumbers bool

	obj   map[string]string
	order []string // first-definition order, used to break length ties
}

func NewPreprocessor() *Preprocessor {
	return &Preprocessor{
		obj: map[string]string{},
	}
}

// DefineObject records name → value. A later definition of the same
// name replaces the value but keeps the original position. An empty
// name is ignored.
func (p *Preprocessor) DefineObject(name, value string) {
	if name == "" {
		return
	}
	if _, ok := p.obj[name]; !ok {
		p.order = append(p.order, name)
	}
	p.obj[name] = value
}

// Defines returns a copy of the macro table.
func (p *Preprocessor) Defines() map[string]string {
	m := make(map[string]string, len(p.obj))
	for k, v := range p.obj {
		m[k] = v
	}
	return m
}

// Names returns the macro names in the order they were first defined.
func (p *Preprocessor) Names() []string {
	return append([]string(nil), p.order...)
}

// Reset forgets all macros.
func (p *Preprocessor) Reset() {
	p.obj = map[string]string{}
	p.order = nil
}

var (
	reBlockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)
	reLineComment  = regexp.MustCompile(`//.*`)
	reDefine       = regexp.MustCompile(`^\s*#\s*define\s+([A-Za-z_]\w*)\s+(.*)$`)
)

// StripComments removes /* */ comments (non-nested, possibly spanning
// lines) and then // comments up to the end of the line. Comment markers
// are not special inside string literals and are stripped there too.
func (p *Preprocessor) StripComments(text string) string {
	if p.KeepLineNumbers {
		text = reBlockComment.ReplaceAllStringFunc(text, func(c string) string {
			return strings.Repeat("\n", strings.Count(c, "\n"))
		})
	} else {
		text = reBlockComment.ReplaceAllLiteralString(text, "")
	}
	return reLineComment.ReplaceAllLiteralString(text, "")
}

// CollectDefines records every `#define NAME value` line and removes it
// from the text. Line endings are normalized to \n. It returns the
// remaining text and a copy of the macro table.
//
// A directive that does not match (no value separator, bad name,
// misspelled keyword) is left in place.
func (p *Preprocessor) CollectDefines(text string) (string, map[string]string) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	kept := lines[:0]
	for _, ln := range lines {
		if m := reDefine.FindStringSubmatch(ln); m != nil {
			p.DefineObject(m[1], strings.TrimSpace(m[2]))
			if p.KeepLineNumbers {
				kept = append(kept, "")
			}
			continue
		}
		kept = append(kept, ln)
	}
	return strings.Join(kept, "\n"), p.Defines()
}

// ApplyDefinesToText replaces every whole-word occurrence of each macro
// name with its value. Longer names are substituted first. Each macro is
// applied to the output of the previous one, so a value that contains
// another macro's name is expanded again when that macro comes later.
func (p *Preprocessor) ApplyDefinesToText(text string) string {
	if len(p.obj) == 0 {
		return text
	}
	for _, name := range p.substitutionOrder() {
		text = replaceWord(text, name, p.obj[name])
	}
	return text
}

// replaceWord substitutes value for each occurrence of name that is not
// preceded or followed by a word character. Word characters are the ones
// the scanner accepts inside an identifier, Unicode letters included.
func replaceWord(text, name, value string) string {
	if name == "" {
		return text
	}
	var b strings.Builder
	pos := 0
	for {
		i := strings.Index(text[pos:], name)
		if i < 0 {
			break
		}
		i += pos
		end := i + len(name)
		if !wordBefore(text, i) && !wordAfter(text, end) {
			b.WriteString(text[pos:i])
			b.WriteString(value)
			pos = end
			continue
		}
		_, w := utf8.DecodeRuneInString(text[i:])
		b.WriteString(text[pos : i+w])
		pos = i + w
	}
	b.WriteString(text[pos:])
	return b.String()
}

func wordBefore(text string, i int) bool {
	if i == 0 {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return isWordRune(r)
}

func wordAfter(text string, end int) bool {
	if end >= len(text) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(text[end:])
	return isWordRune(r)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func (p *Preprocessor) substitutionOrder() []string {
	names := p.Names()
	sort.SliceStable(names, func(i, j int) bool {
		return len(names[i]) > len(names[j])
	})
	return names
}

// Preprocess strips comments and collects defines. Substitution is left
// to ApplyDefinesToText so callers can show the intermediate text.
func (p *Preprocessor) Preprocess(text string) string {
	text = p.StripComments(text)
	text, _ = p.CollectDefines(text)
	return text
}

// ValidName reports whether s has identifier syntax.
func ValidName(s string) bool {
	if s == "" || !isIdentStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isIdentPart(s[i]) {
			return false
		}
	}
	return true
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

// ParseDefine splits a command-line definition "NAME=VALUE". A bare
// NAME defines it as "1".
func ParseDefine(s string) (name, value string) {
	if i := strings.IndexByte(s, '='); i >= 0 {
		return s[:i], s[i+1:]
	}
	return s, "1"
}
