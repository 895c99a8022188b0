// Package report renders token lists for people: aligned tables,
// per-category summaries and the mapping from a token back to the text
// it was scanned from.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/fwessels/clex"
)

// FormatTable writes tokens as a LEXEME/TYPE/LINE/COL table.
func FormatTable(w io.Writer, tokens []clex.Token) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	headers := []string{"LEXEME", "TYPE", "LINE", "COL"}
	fmt.Fprintln(tw, strings.Join(headers, "\t"))

	sep := make([]string, len(headers))
	for i := range headers {
		sep[i] = strings.Repeat("-", len(headers[i]))
	}
	fmt.Fprintln(tw, strings.Join(sep, "\t"))

	for _, tok := range tokens {
		fmt.Fprintln(tw, strings.Join([]string{
			displayLexeme(tok.Lexeme),
			tok.Category.String(),
			strconv.Itoa(tok.Line),
			strconv.Itoa(tok.Column),
		}, "\t"))
	}

	return tw.Flush()
}

// displayLexeme escapes characters that would break table alignment.
func displayLexeme(s string) string {
	if !strings.ContainsAny(s, "\t\n\r") {
		return s
	}
	return strings.NewReplacer("\t", `\t`, "\n", `\n`, "\r", `\r`).Replace(s)
}

// CategoryCount is the number of tokens of one category.
type CategoryCount struct {
	Category clex.Category
	Count    int
}

// Counts groups tokens by category in order of first appearance.
func Counts(tokens []clex.Token) []CategoryCount {
	var counts []CategoryCount
	index := map[clex.Category]int{}
	for _, tok := range tokens {
		i, ok := index[tok.Category]
		if !ok {
			i = len(counts)
			index[tok.Category] = i
			counts = append(counts, CategoryCount{Category: tok.Category})
		}
		counts[i].Count++
	}
	return counts
}

// Summary renders "TOKENS: n  |  IDENT:3  |  OP:1 ...".
func Summary(tokens []clex.Token) string {
	var b strings.Builder
	fmt.Fprintf(&b, "TOKENS: %d", len(tokens))
	for _, c := range Counts(tokens) {
		fmt.Fprintf(&b, "  |  %s:%d", c.Category, c.Count)
	}
	return b.String()
}

// Span maps tok to the byte range [start, end) of text with line endings
// normalized to \n. The range is clamped to the text; ok is false when
// the token's line does not exist.
func Span(text string, tok clex.Token) (start, end int, ok bool) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	if tok.Line <= 0 || tok.Line > len(lines) {
		return 0, 0, false
	}

	for i := 0; i < tok.Line-1; i++ {
		start += len(lines[i]) + 1
	}
	line := lines[tok.Line-1]
	for col := 1; col < tok.Column && line != ""; col++ {
		_, w := utf8.DecodeRuneInString(line)
		start += w
		line = line[w:]
	}

	start = min(start, len(text))
	end = min(start+len(tok.Lexeme), len(text))
	return start, end, true
}

// Excerpt returns the line tok starts on followed by a caret under its
// first character.
func Excerpt(text string, tok clex.Token) string {
	start, _, ok := Span(text, tok)
	if !ok {
		return ""
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lineStart := strings.LastIndexByte(text[:start], '\n') + 1
	lineEnd := len(text)
	if i := strings.IndexByte(text[start:], '\n'); i >= 0 {
		lineEnd = start + i
	}

	var marker strings.Builder
	for _, r := range text[lineStart:start] {
		if r == '\t' {
			marker.WriteByte('\t')
		} else {
			marker.WriteByte(' ')
		}
	}
	marker.WriteByte('^')
	return text[lineStart:lineEnd] + "\n" + marker.String()
}
