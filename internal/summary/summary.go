// Package summary implements the mock "AI summary": an extractive summary made of
// the leading sentences plus a keyword frequency ranking. It is deterministic and
// performs no external calls.
package summary

import (
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	EmptyMessage = "No content to summarize."

	maxSentences   = 3
	maxKeywords    = 5
	minKeywordLen  = 4
	sentenceMarker = ". "
)

type Summary struct {
	Summary  string   `json:"summary"`
	Keywords []string `json:"keywords"`
}

var punctuation = strings.NewReplacer(
	".", "", ",", "", "!", "", "?", "", ";", "", ":", "", "(", "", ")", "",
)

// Summarize returns the first three sentence segments and the five most frequent
// non stop-word tokens. Equal counts keep first-seen order.
func Summarize(text string) Summary {
	if strings.TrimSpace(text) == "" {
		return Summary{Summary: EmptyMessage, Keywords: []string{}}
	}

	return Summary{
		Summary:  leadingSentences(text),
		Keywords: keywords(text),
	}
}

func leadingSentences(text string) string {
	var sentences []string
	for _, s := range strings.Split(text, sentenceMarker) {
		if s != "" {
			sentences = append(sentences, s)
		}
	}
	if len(sentences) == 0 {
		return ""
	}
	if len(sentences) > maxSentences {
		sentences = sentences[:maxSentences]
	}
	return strings.Join(sentences, sentenceMarker) + "."
}

func keywords(text string) []string {
	counts := make(map[string]int)
	var order []string

	for _, word := range strings.Fields(punctuation.Replace(strings.ToLower(text))) {
		if utf8.RuneCountInString(word) < minKeywordLen || stopWords[word] {
			continue
		}
		if counts[word] == 0 {
			order = append(order, word)
		}
		counts[word]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > maxKeywords {
		order = order[:maxKeywords]
	}
	if order == nil {
		return []string{}
	}
	return order
}
