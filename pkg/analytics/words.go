package analytics

import (
	"sort"
	"strings"
	"unicode"

	"mailprobe/pkg/domain"
)

// WordFrequency tokenizes the corpus text and returns the n most frequent
// tokens after dropping stopwords, non-alphabetic tokens and tokens shorter
// than the configured minimum. Ties are broken by first-encountered order.
// When the corpus yields no usable tokens the sentinel pair list is returned
// with ok=false instead of failing the aggregation.
func (a *Analyzer) WordFrequency(posts []domain.Post, n int) (words []domain.WordCount, ok bool) {
	counts := map[string]int{}
	var order []string

	for i := range posts {
		for _, token := range tokenize(posts[i].CombinedText()) {
			if len(token) < a.cfg.MinWordLength {
				continue
			}
			if _, stop := a.stopwords[token]; stop {
				continue
			}
			if _, seen := counts[token]; !seen {
				order = append(order, token)
			}
			counts[token]++
		}
	}

	if len(order) == 0 {
		return sentinelWords(), false
	}

	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })
	if n < 0 {
		n = 0
	}
	if n < len(order) {
		order = order[:n]
	}

	words = make([]domain.WordCount, 0, len(order))
	for _, w := range order {
		words = append(words, domain.WordCount{Word: w, Count: counts[w]})
	}
	return words, true
}

// tokenize splits lowercased text on non-letter runes, so every token is
// alphabetic by construction.
func tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool { return !unicode.IsLetter(r) })
}

// sentinelWords is the fallback result when tokenization produced nothing
func sentinelWords() []domain.WordCount {
	return []domain.WordCount{{Word: "analysis", Count: 1}, {Word: "unavailable", Count: 1}}
}
