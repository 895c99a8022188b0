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

// Package clex is a small lexical analyzer for C-like source text.
//
// Source is first run through a preprocessor that strips comments and
// collects object-like #define macros, the macro values are substituted
// back into the text, and the result is scanned into classified tokens:
//
//	res := clex.Analyze(src, clex.NewKeywordSet("if", "while"), nil)
//	for _, tok := range res.Tokens {
//		fmt.Println(tok)
//	}
package clex

import (
	"sort"

	"github.com/fwessels/clex/internal/preprocessor"
)

// Options tune Analyze. With the zero value, comments and #define lines
// are deleted and macro values are substituted.
type Options struct {
	// Defines are added to the macro table after the #define lines of
	// the document have been collected; they override same-named
	// definitions from the source.
	Defines map[string]string
	// KeepLineNumbers keeps removed comments and #define lines as blank
	// lines so reported positions match the unprocessed source.
	KeepLineNumbers bool
	// SkipSubstitution scans the comment- and define-stripped text
	// without substituting macro values.
	SkipSubstitution bool
}

// Result is the outcome of Analyze.
type Result struct {
	// Stripped is the text after comment and #define removal.
	Stripped string
	// Source is the text that was scanned; token positions refer to it.
	Source  string
	Defines map[string]string
	Tokens  []Token
}

// Analyze preprocesses text and scans it. Every call uses its own
// preprocessor, so Analyze may run concurrently for different documents.
func Analyze(text string, keywords KeywordSet, opts *Options) *Result {
	if opts == nil {
		opts = &Options{}
	}
	pp := preprocessor.NewPreprocessor()
	pp.KeepLineNumbers = opts.KeepLineNumbers

	stripped := pp.Preprocess(text)
	for _, name := range sortedKeys(opts.Defines) {
		pp.DefineObject(name, opts.Defines[name])
	}

	source := stripped
	if !opts.SkipSubstitution {
		source = pp.ApplyDefinesToText(stripped)
	}

	return &Result{
		Stripped: stripped,
		Source:   source,
		Defines:  pp.Defines(),
		Tokens:   Tokenize(source, keywords),
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
