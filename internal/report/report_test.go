package report

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/fwessels/clex"
)

func TestFormatTable(t *testing.T) {
	tokens := clex.Tokenize("if (x)\n\"a\tb\"", clex.NewKeywordSet("if"))

	var buf bytes.Buffer
	if err := FormatTable(&buf, tokens); err != nil {
		t.Fatal(err)
	}
	want := "" +
		"LEXEME  TYPE     LINE  COL\n" +
		"------  ----     ----  ---\n" +
		"if      KEYWORD  1     1\n" +
		"(       DELIM    1     4\n" +
		"x       IDENT    1     5\n" +
		")       DELIM    1     6\n" +
		"\"a\\tb\"  STRING   2     1\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestSummary(t *testing.T) {
	tokens := clex.Tokenize("x = y + 1; @", nil)

	wantCounts := []CategoryCount{
		{clex.Identifier, 2},
		{clex.Operator, 2},
		{clex.Integer, 1},
		{clex.Delimiter, 1},
		{clex.Error, 1},
	}
	if diff := cmp.Diff(wantCounts, Counts(tokens)); diff != "" {
		t.Errorf("Counts mismatch (-want +got):\n%s", diff)
	}

	want := "TOKENS: 7  |  IDENT:2  |  OP:2  |  INT:1  |  DELIM:1  |  ERROR:1"
	if got := Summary(tokens); got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
	if got := Summary(nil); got != "TOKENS: 0" {
		t.Errorf("Summary(nil) = %q", got)
	}
}

func TestSpan(t *testing.T) {
	text := "int a;\r\n  größe = \"xy\";\nlast"
	norm := "int a;\n  größe = \"xy\";\nlast"

	for _, tok := range clex.Tokenize(text, nil) {
		start, end, ok := Span(text, tok)
		if !ok {
			t.Fatalf("no span for %v", tok)
		}
		if got := norm[start:end]; got != tok.Lexeme {
			t.Errorf("Span(%v) selects %q", tok, got)
		}
	}

	if _, _, ok := Span(text, clex.Token{Line: 4, Column: 1}); ok {
		t.Errorf("line past the end should not map")
	}
	if _, _, ok := Span(text, clex.Token{Line: 0, Column: 1}); ok {
		t.Errorf("line 0 should not map")
	}

	start, end, ok := Span(text, clex.Token{Line: 3, Column: 3, Lexeme: "stuff"})
	if !ok || start != len(norm)-2 || end != len(norm) {
		t.Errorf("clamped span = %d, %d, %v", start, end, ok)
	}
}

func TestExcerpt(t *testing.T) {
	text := "int a;\n\tb = @;\n"
	tokens := clex.Tokenize(text, nil)
	errTok := tokens[len(tokens)-2]
	if errTok.Category != clex.Error {
		t.Fatalf("unexpected token %v", errTok)
	}

	want := "\tb = @;\n\t    ^"
	if got := Excerpt(text, errTok); got != want {
		t.Errorf("Excerpt() = %q, want %q", got, want)
	}
	if got := Excerpt(text, clex.Token{Line: 9}); got != "" {
		t.Errorf("Excerpt of missing line = %q", got)
	}
}
