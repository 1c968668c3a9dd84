package nlp

import (
	"sort"
	"strings"
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"
	"github.com/samber/lo"
)

// DefaultPhrases are multi-word expressions frequent in disaster messages
// that lose their meaning once split into words.
var DefaultPhrases = []string{
	"search and rescue",
	"clean water",
	"drinking water",
	"first aid",
	"food aid",
	"medical help",
	"missing people",
	"red cross",
	"death toll",
	"power outage",
	"emergency shelter",
	"tent city",
}

// PhraseMatcher joins known phrases into a single underscore token,
// so "Search-and-Rescue" becomes "search_and_rescue".
type PhraseMatcher struct {
	matcher *goahocorasick.Machine
	tokens  map[string]string // normalized pattern -> joined token
}

type textMapping struct {
	normalized []rune
	origIdx    []int
}

type span struct {
	start, end int // rune offsets in the original text, end exclusive
	token      string
}

// NewPhraseMatcher builds the Aho-Corasick automaton over the normalized phrases.
// Phrases made only of noise or single words are ignored.
func NewPhraseMatcher(phrases []string) (PhraseMatcher, error) {
	tokens := make(map[string]string)
	var patterns [][]rune
	for _, p := range phrases {
		words := strings.Fields(strings.ToLower(p))
		if len(words) < 2 {
			continue
		}
		pattern := normalizeRunes([]rune(p))
		if len(pattern) == 0 {
			continue
		}
		if _, ok := tokens[string(pattern)]; ok {
			continue
		}
		tokens[string(pattern)] = strings.Join(words, "_")
		patterns = append(patterns, pattern)
	}
	if len(patterns) == 0 {
		return PhraseMatcher{}, nil
	}

	sort.Slice(patterns, func(i, j int) bool { return string(patterns[i]) < string(patterns[j]) })
	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return PhraseMatcher{}, err
	}
	return PhraseMatcher{matcher: m, tokens: tokens}, nil
}

// Join replaces every phrase found on word boundaries by its joined token.
// Overlapping matches keep the leftmost, then the longest.
func (m PhraseMatcher) Join(original string) string {
	if m.matcher == nil {
		return original
	}
	mapping := normalize(original)
	if len(mapping.normalized) == 0 {
		return original
	}

	origRunes := []rune(original)
	terms := m.matcher.MultiPatternSearch(mapping.normalized, false)
	if len(terms) == 0 {
		return original
	}

	spans := make([]span, 0, len(terms))
	for _, term := range terms {
		normStart := term.Pos
		normEnd := normStart + len(term.Word)
		if normStart < 0 || normEnd > len(mapping.origIdx) {
			continue
		}
		start := mapping.origIdx[normStart]
		end := mapping.origIdx[normEnd-1] + 1
		if !isBoundary(origRunes, start-1) || !isBoundary(origRunes, end) {
			continue
		}
		if lo.SomeBy(origRunes[start:end], isBreak) {
			continue
		}
		spans = append(spans, span{start: start, end: end, token: m.tokens[string(term.Word)]})
	}
	if len(spans) == 0 {
		return original
	}

	sort.Slice(spans, func(i, j int) bool {
		if spans[i].start != spans[j].start {
			return spans[i].start < spans[j].start
		}
		return spans[i].end > spans[j].end
	})

	var b strings.Builder
	cursor := 0
	for _, s := range spans {
		if s.start < cursor {
			continue
		}
		b.WriteString(string(origRunes[cursor:s.start]))
		b.WriteString(s.token)
		cursor = s.end
	}
	b.WriteString(string(origRunes[cursor:]))
	return b.String()
}

// Phrases returns the joined tokens the matcher can produce.
func (m PhraseMatcher) Phrases() []string {
	tokens := lo.Values(m.tokens)
	sort.Strings(tokens)
	return tokens
}

// normalize lower-cases the input, drops noise and tracks original rune positions.
func normalize(input string) textMapping {
	origRunes := []rune(input)
	norm := make([]rune, 0, len(origRunes))
	origIdx := make([]int, 0, len(origRunes))

	for i, r := range origRunes {
		if isNoise(r) {
			continue
		}
		norm = append(norm, unicode.ToLower(r))
		origIdx = append(origIdx, i)
	}
	return textMapping{normalized: norm, origIdx: origIdx}
}

func normalizeRunes(input []rune) []rune {
	out := make([]rune, 0, len(input))
	for _, r := range input {
		if isNoise(r) {
			continue
		}
		out = append(out, unicode.ToLower(r))
	}
	return out
}

func isNoise(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r)
}

// isBreak reports whether r ends a sentence or a clause. A phrase never spans one.
func isBreak(r rune) bool {
	return unicode.Is(unicode.Terminal_Punctuation, r) || r == ',' || r == ';' || r == ':'
}

// isBoundary reports whether position i is outside the text or not a word character.
func isBoundary(runes []rune, i int) bool {
	if i < 0 || i >= len(runes) {
		return true
	}
	r := runes[i]
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
