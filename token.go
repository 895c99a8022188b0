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

import "fmt"

// Category classifies a token.
type Category int

const (
	Delimiter Category = iota
	String
	Char
	Operator
	Integer
	Float
	Identifier
	Keyword
	PreprocessorLine
	Error
)

var categoryNames = [...]string{
	Delimiter:        "DELIM",
	String:           "STRING",
	Char:             "CHAR",
	Operator:         "OP",
	Integer:          "INT",
	Float:            "FLOAT",
	Identifier:       "IDENT",
	Keyword:          "KEYWORD",
	PreprocessorLine: "PREPROC",
	Error:            "ERROR",
}

func (c Category) String() string {
	if c >= 0 && int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// Token is a single classified lexeme. Line and Column are 1-based and
// point at the first character of the lexeme.
type Token struct {
	Category Category
	Lexeme   string
	Line     int
	Column   int
}

func (t Token) String() string {
	return fmt.Sprintf("%d:%d %s %q", t.Line, t.Column, t.Category, t.Lexeme)
}

// KeywordSet is a case-sensitive set of reserved words.
type KeywordSet map[string]struct{}

// NewKeywordSet builds a set from words, collapsing duplicates.
func NewKeywordSet(words ...string) KeywordSet {
	set := make(KeywordSet, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// Contains reports whether word is a keyword. A nil set contains nothing.
func (k KeywordSet) Contains(word string) bool {
	_, ok := k[word]
	return ok
}

// Add inserts word into the set.
func (k KeywordSet) Add(word string) {
	k[word] = struct{}{}
}

// Len returns the number of distinct keywords.
func (k KeywordSet) Len() int {
	return len(k)
}
