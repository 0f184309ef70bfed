package classify

import (
	"strings"
	"unicode/utf8"

	"github.com/go-pkgz/lgr"

	"mailprobe/pkg/config"
	"mailprobe/pkg/domain"
)

// Filter decides whether a post describes a genuine target problem. It runs
// three independent rule sets over the post's text: include phrases and
// exclude phrases match as plain substrings of the combined text, anchor
// tokens match as substrings of the title alone. Exclusion always wins.
//
// Note the matching here is deliberately NOT word-boundary anchored, unlike
// the Tagger: "mail" as a filter token matches inside "maillist". The two
// strategies are kept asymmetric on purpose, unifying them changes recall.
type Filter struct {
	include []string
	exclude []string
	anchors []string
}

// NewFilter creates a filter from the configured rule sets. Phrases are
// lowercased once here; classification works on lowercased text only.
func NewFilter(rules config.RulesConfig) *Filter {
	return &Filter{
		include: lowerAll(rules.Include),
		exclude: lowerAll(rules.Exclude),
		anchors: lowerAll(rules.Anchors),
	}
}

// Classify reports whether the post belongs in the analysis corpus.
func (f *Filter) Classify(post *domain.Post) bool {
	return f.Inspect(post).Kept
}

// Inspect classifies the post and reports which rule decided the outcome.
func (f *Filter) Inspect(post *domain.Post) domain.FilterOutcome {
	combined := post.CombinedText()
	title := strings.ToLower(post.Title)

	// exclusion is evaluated unconditionally, never short-circuited
	excluded := containsAny(combined, f.exclude)
	hasProblem := containsAny(combined, f.include)
	anchored := containsAny(title, f.anchors)

	switch {
	case excluded:
		return domain.FilterOutcome{Reason: domain.ReasonExcluded}
	case !hasProblem:
		return domain.FilterOutcome{Reason: domain.ReasonNoProblemPhrase}
	case !anchored:
		return domain.FilterOutcome{Reason: domain.ReasonNoTitleAnchor}
	}
	return domain.FilterOutcome{Kept: true, Reason: domain.ReasonKept}
}

// Apply classifies every post and returns the kept subset, preserving input
// order. Each decision is logged with the rule that fired.
func (f *Filter) Apply(posts []domain.Post) []domain.Post {
	kept := make([]domain.Post, 0, len(posts))
	for i := range posts {
		outcome := f.Inspect(&posts[i])
		if outcome.Kept {
			lgr.Printf("[DEBUG] KEEP %q (%d upvotes)", truncate(posts[i].Title, 60), posts[i].Score)
			kept = append(kept, posts[i])
			continue
		}
		lgr.Printf("[DEBUG] DELETE %q, %s", truncate(posts[i].Title, 60), outcome.Reason)
	}
	return kept
}

func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

func lowerAll(ss []string) []string {
	res := make([]string, len(ss))
	for i, s := range ss {
		res[i] = strings.ToLower(s)
	}
	return res
}

// truncate cuts s to at most n bytes without splitting a multi-byte rune
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
