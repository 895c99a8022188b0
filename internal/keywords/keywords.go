// Package keywords loads and stores the keyword list used to tell
// keywords from identifiers. The file format is one word per line;
// surrounding whitespace and blank lines are ignored.
package keywords

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/fwessels/clex"
	"github.com/fwessels/clex/internal/errors"
	"github.com/fwessels/clex/internal/logger"
)

var defaultWords = []string{
	"if", "else", "while", "for", "do", "switch", "case", "default", "break", "continue", "return",
	"int", "float", "double", "char", "void", "long", "short", "signed", "unsigned", "const", "static",
	"struct", "union", "enum", "typedef", "sizeof", "extern", "register", "volatile", "auto", "goto",
	"include", "define", "elif", "endif", "ifdef", "ifndef",
}

// Default returns the built-in C keyword list.
func Default() clex.KeywordSet {
	return clex.NewKeywordSet(defaultWords...)
}

// Load reads a keyword list, collapsing duplicates. A leading UTF-8
// byte-order mark is skipped.
func Load(r io.Reader) (clex.KeywordSet, error) {
	set := clex.NewKeywordSet()
	scanner := bufio.NewScanner(r)
	for first := true; scanner.Scan(); first = false {
		line := scanner.Text()
		if first {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		if w := strings.TrimSpace(line); w != "" {
			set.Add(w)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return set, nil
}

// LoadFile loads the keyword list at path.
func LoadFile(path string, log *logger.Logger) (clex.KeywordSet, error) {
	if log != nil {
		log.Debug("Loading keywords", slog.String("path", path))
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.KeywordsNotFound(path)
	}
	if err != nil {
		return nil, readError(path, err)
	}
	defer f.Close()

	set, err := Load(f)
	if err != nil {
		return nil, readError(path, err)
	}

	if log != nil {
		log.Info("Keywords loaded", slog.String("path", path), slog.Int("count", set.Len()))
	}
	return set, nil
}

func readError(path string, err error) error {
	return errors.Wrap(
		err,
		errors.ErrCodeKeywordsReadError,
		fmt.Sprintf("Failed to read keyword list: %s", path),
		"Permission denied or file is not readable",
		"Check file permissions and ensure the file is readable",
	)
}

// Save writes set sorted, one word per line.
func Save(w io.Writer, set clex.KeywordSet) error {
	words := make([]string, 0, set.Len())
	for word := range set {
		words = append(words, word)
	}
	sort.Strings(words)

	bw := bufio.NewWriter(w)
	for _, word := range words {
		if _, err := fmt.Fprintln(bw, word); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Ensure creates path with the default list when it does not exist. It
// reports whether the file was created.
func Ensure(path string, log *logger.Logger) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, readError(path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return false, writeError(path, err)
	}
	if err := Save(f, Default()); err != nil {
		f.Close()
		return false, writeError(path, err)
	}
	if err := f.Close(); err != nil {
		return false, writeError(path, err)
	}

	if log != nil {
		log.Info("Created default keyword list", slog.String("path", path), slog.Int("count", len(defaultWords)))
	}
	return true, nil
}

func writeError(path string, err error) error {
	return errors.Wrap(
		err,
		errors.ErrCodeKeywordsWriteError,
		fmt.Sprintf("Failed to write keyword list: %s", path),
		"The directory does not exist or is not writable",
		"Create the directory or point --keywords at a writable location",
	)
}
