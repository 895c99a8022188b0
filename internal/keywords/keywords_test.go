package keywords

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/fwessels/clex"
	"github.com/fwessels/clex/internal/errors"
	"github.com/fwessels/clex/internal/logger"
)

func words(set clex.KeywordSet) []string {
	out := make([]string, 0, len(set))
	for w := range set {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

func quietLogger() *logger.Logger {
	return logger.New("test", &logger.Config{Output: &bytes.Buffer{}})
}

func TestLoad(t *testing.T) {
	set, err := Load(strings.NewReader("if\n  while \n\n\t\nif\r\nelse\nIf\n"))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"If", "else", "if", "while"}, words(set)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadByteOrderMark(t *testing.T) {
	set, err := Load(strings.NewReader("\ufeffif\r\nwhile\r\n"))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"if", "while"}, words(set)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if !set.Contains("if") {
		t.Errorf("first keyword kept the byte-order mark")
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.csv"), nil)
	if err == nil {
		t.Fatal("expected an error")
	}
	if got := errors.CodeOf(err); got != errors.ErrCodeKeywordsNotFound {
		t.Errorf("code = %q, want %q", got, errors.ErrCodeKeywordsNotFound)
	}
}

func TestSaveLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keywords.csv")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := Save(f, clex.NewKeywordSet("while", "do", "if")); err != nil {
		t.Fatal(err)
	}
	f.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff("do\nif\nwhile\n", string(data)); diff != "" {
		t.Errorf("file mismatch (-want +got):\n%s", diff)
	}

	set, err := LoadFile(path, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"do", "if", "while"}, words(set)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestEnsure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keywords.csv")

	created, err := Ensure(path, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	if !created {
		t.Fatal("Ensure did not create the file")
	}
	set, err := LoadFile(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(words(Default()), words(set)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	if err := os.WriteFile(path, []byte("only\n"), 0644); err != nil {
		t.Fatal(err)
	}
	created, err = Ensure(path, nil)
	if err != nil || created {
		t.Fatalf("Ensure on existing file = %v, %v", created, err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "only\n" {
		t.Errorf("existing file overwritten: %q", data)
	}
}

func TestEnsureUnwritable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "keywords.csv")
	_, err := Ensure(path, nil)
	if got := errors.CodeOf(err); got != errors.ErrCodeKeywordsWriteError {
		t.Errorf("code = %q, want %q", got, errors.ErrCodeKeywordsWriteError)
	}
}

func TestDefault(t *testing.T) {
	kw := Default()
	for _, w := range []string{"if", "while", "return", "define", "ifndef"} {
		if !kw.Contains(w) {
			t.Errorf("default list lacks %q", w)
		}
	}
	if kw.Len() != len(defaultWords) {
		t.Errorf("default list has duplicates: %d != %d", kw.Len(), len(defaultWords))
	}
}
