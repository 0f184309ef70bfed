package classify

import (
	"fmt"
	"regexp"
	"strings"

	"mailprobe/pkg/config"
	"mailprobe/pkg/domain"
)

// Tagger maps a post's combined text to zero or more problem categories and
// zero or more solution categories. Each category compiles to a single
// word-boundary-anchored alternation of its keywords, so keywords match as
// whole words only (unlike the Filter's substring phrases). Categories are
// independent: a post may land in none, one, or many.
type Tagger struct {
	problems  []category
	solutions []category
}

type category struct {
	name string
	re   *regexp.Regexp
}

// NewTagger compiles the configured category keyword lists. Declaration
// order is preserved, it is the tie-break order everywhere downstream.
func NewTagger(problems, solutions []config.Category) (*Tagger, error) {
	compile := func(cats []config.Category) ([]category, error) {
		res := make([]category, 0, len(cats))
		for _, c := range cats {
			quoted := make([]string, len(c.Keywords))
			for i, kw := range c.Keywords {
				quoted[i] = regexp.QuoteMeta(strings.ToLower(kw))
			}
			re, err := regexp.Compile(`\b(?:` + strings.Join(quoted, "|") + `)\b`)
			if err != nil {
				return nil, fmt.Errorf("compile category %q: %w", c.Name, err)
			}
			res = append(res, category{name: c.Name, re: re})
		}
		return res, nil
	}

	probs, err := compile(problems)
	if err != nil {
		return nil, err
	}
	sols, err := compile(solutions)
	if err != nil {
		return nil, err
	}
	return &Tagger{problems: probs, solutions: sols}, nil
}

// Tag returns the problem and solution categories matching the post.
func (t *Tagger) Tag(post *domain.Post) (problems, solutions []string) {
	text := post.CombinedText()
	for _, c := range t.problems {
		if c.re.MatchString(text) {
			problems = append(problems, c.name)
		}
	}
	for _, c := range t.solutions {
		if c.re.MatchString(text) {
			solutions = append(solutions, c.name)
		}
	}
	return problems, solutions
}

// Classify wraps a post with its derived tags and relevance flag.
func (t *Tagger) Classify(post domain.Post, relevant bool) domain.ClassifiedPost {
	problems, solutions := t.Tag(&post)
	return domain.ClassifiedPost{Post: post, Relevant: relevant, Categories: problems, Solutions: solutions}
}

// ProblemNames returns problem category names in declaration order.
func (t *Tagger) ProblemNames() []string {
	return names(t.problems)
}

// SolutionNames returns solution category names in declaration order.
func (t *Tagger) SolutionNames() []string {
	return names(t.solutions)
}

// ProblemMentions counts every keyword occurrence per problem category in
// the text. A category's count may exceed one for a single post.
func (t *Tagger) ProblemMentions(text string) map[string]int {
	return mentions(t.problems, text)
}

// SolutionMentions counts every keyword occurrence per solution category.
func (t *Tagger) SolutionMentions(text string) map[string]int {
	return mentions(t.solutions, text)
}

func mentions(cats []category, text string) map[string]int {
	res := make(map[string]int, len(cats))
	for _, c := range cats {
		res[c.name] = len(c.re.FindAllStringIndex(text, -1))
	}
	return res
}

func names(cats []category) []string {
	res := make([]string, len(cats))
	for i, c := range cats {
		res[i] = c.name
	}
	return res
}
