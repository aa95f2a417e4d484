// Package pattern holds the fixed lexical detectors applied to session
// transcripts. Patterns compile once into a Set that callers thread
// through the analysis pipeline; there is no package-level mutable state.
package pattern

import (
	"fmt"
	"regexp"
	"strings"
)

// Category identifies one detector in the table.
type Category int

const (
	Enthusiasm Category = iota
	Confusion
	Compaction
	CodeBlock
	Exchange
)

// Default vocabularies. Word lists are alternations matched
// case-insensitively anywhere in the transcript.
var defaultVocab = map[Category][]string{
	Enthusiasm: {
		"excellent", "great", "perfect", "amazing", "awesome", "fantastic",
		"wonderful", "brilliant", "outstanding", "superb", "terrific",
		"love it", "exactly", "precisely",
	},
	Confusion: {
		"confused", "unclear", "not sure", "don't understand",
		"what do you mean", "can you clarify", "help me understand",
		"i'm lost", "not following",
	},
	Compaction: {
		"concise", "brief", "short", "summarize", "compact", "terse",
		"reduce", "minimize", "streamline",
	},
}

// Non-vocabulary detectors: complete fenced regions and turn-boundary
// role markers at the start of a line.
const (
	codeBlockExpr = "```[\\s\\S]*?```"
	exchangeExpr  = `^(Human:|Assistant:)`
)

// Set is a compiled detector table.
type Set struct {
	res map[Category]*regexp.Regexp
}

// Compile builds a Set from the default vocabularies plus any extra words
// per category. Extras extend the alternation; they never replace the
// defaults.
func Compile(extra map[Category][]string) (*Set, error) {
	res := make(map[Category]*regexp.Regexp, 5)

	for _, cat := range []Category{Enthusiasm, Confusion, Compaction} {
		words := append([]string{}, defaultVocab[cat]...)
		for _, w := range extra[cat] {
			if w = strings.TrimSpace(w); w != "" {
				words = append(words, regexp.QuoteMeta(strings.ToLower(w)))
			}
		}
		re, err := regexp.Compile("(?i)(" + strings.Join(words, "|") + ")")
		if err != nil {
			return nil, fmt.Errorf("compiling vocabulary %d: %w", cat, err)
		}
		res[cat] = re
	}

	res[CodeBlock] = regexp.MustCompile(codeBlockExpr)
	res[Exchange] = regexp.MustCompile(exchangeExpr)

	return &Set{res: res}, nil
}

// MustCompile is Compile with no extras, for the common startup path.
// The defaults are known-good, so this never panics in practice.
func MustCompile() *Set {
	s, err := Compile(nil)
	if err != nil {
		panic(err)
	}
	return s
}

// Count returns the number of matches of one vocabulary category in the
// content. Matching is case-insensitive and non-overlapping.
func (s *Set) Count(cat Category, content string) int {
	return len(s.res[cat].FindAllStringIndex(content, -1))
}

// CountCodeBlocks counts complete fenced regions: a triple-backtick
// opener up to the next closer, non-greedy, spanning newlines. An
// unclosed trailing fence is not counted.
func (s *Set) CountCodeBlocks(content string) int {
	return len(s.res[CodeBlock].FindAllStringIndex(content, -1))
}

// CountExchanges counts lines whose content begins with a role marker
// ("Human:" or "Assistant:").
func (s *Set) CountExchanges(content string) int {
	re := s.res[Exchange]
	count := 0
	for line := range strings.Lines(content) {
		if re.MatchString(line) {
			count++
		}
	}
	return count
}
