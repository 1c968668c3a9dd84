// Package nlp turns free-text messages into the tokens fed to the vectorizer.
package nlp

import (
	"regexp"
	"strings"

	"github.com/abadojack/whatlanggo"
	"github.com/blugelabs/bluge/analysis"
	"github.com/blugelabs/bluge/analysis/lang/en"
	"github.com/blugelabs/bluge/analysis/token"
	"github.com/blugelabs/bluge/analysis/tokenizer"
	"github.com/samber/lo"
)

const URLPlaceholder = "urlplaceholder"

var urlPattern = regexp.MustCompile(`http[s]?://(?:[a-zA-Z]|[0-9]|[$-_@.&+]|[!*\(\),]|(?:%[0-9a-fA-F][0-9a-fA-F]))+`)

// Tokenizer is safe for concurrent use once built.
type Tokenizer struct {
	english *analysis.Analyzer
	generic *analysis.Analyzer
	phrases PhraseMatcher
}

func NewTokenizer(phrases []string) (*Tokenizer, error) {
	matcher, err := NewPhraseMatcher(phrases)
	if err != nil {
		return nil, err
	}
	return &Tokenizer{
		english: en.NewAnalyzer(),
		generic: &analysis.Analyzer{
			Tokenizer:    tokenizer.NewUnicodeTokenizer(),
			TokenFilters: []analysis.TokenFilter{token.NewLowerCaseFilter()},
		},
		phrases: matcher,
	}, nil
}

// Tokenize replaces URLs, joins known phrases, then runs the analyzer
// matching the detected language. Short or ambiguous texts count as English.
func (t *Tokenizer) Tokenize(text string) []string {
	text = urlPattern.ReplaceAllString(text, URLPlaceholder)
	text = t.phrases.Join(text)

	analyzer := t.english
	if info := whatlanggo.Detect(strings.ToLower(text)); info.IsReliable() && info.Lang != whatlanggo.Eng {
		analyzer = t.generic
	}
	stream := analyzer.Analyze([]byte(text))
	return lo.FilterMap(stream, func(tok *analysis.Token, _ int) (string, bool) {
		return string(tok.Term), len(tok.Term) > 0
	})
}

// TokenizeAll tokenizes every document, keeping the input order.
func (t *Tokenizer) TokenizeAll(texts []string) [][]string {
	return lo.Map(texts, func(text string, _ int) []string { return t.Tokenize(text) })
}
