package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mailprobe/pkg/config"
	"mailprobe/pkg/domain"
)

func testTagger(t *testing.T) *Tagger {
	t.Helper()
	cfg := config.Default()
	tagger, err := NewTagger(cfg.Categories.Problems, cfg.Categories.Solutions)
	require.NoError(t, err)
	return tagger
}

func TestTagger_Tag_MultiLabel(t *testing.T) {
	tagger := testTagger(t)

	post := domain.Post{
		Title: "Spam everywhere and I can't organize anything",
		Body:  "my inbox is full of junk and clutter, need to sort and label it all",
	}
	problems, _ := tagger.Tag(&post)
	assert.Contains(t, problems, "Spam & Clutter")
	assert.Contains(t, problems, "Organization Issues")
}

func TestTagger_Tag_ZeroCategories(t *testing.T) {
	tagger := testTagger(t)

	post := domain.Post{Title: "hello", Body: "nothing relevant here at all"}
	problems, solutions := tagger.Tag(&post)
	assert.Empty(t, problems)
	assert.Empty(t, solutions)
}

func TestTagger_WordBoundary(t *testing.T) {
	tagger, err := NewTagger(
		[]config.Category{{Name: "Organization Issues", Keywords: []string{"organize", "sort"}}},
		nil,
	)
	require.NoError(t, err)

	// "organized" must not match the whole-word keyword "organize"
	noMatch := domain.Post{Title: "I am very organized", Body: "sorted already"}
	problems, _ := tagger.Tag(&noMatch)
	assert.Empty(t, problems)

	match := domain.Post{Title: "help me organize this", Body: ""}
	problems, _ = tagger.Tag(&match)
	assert.Equal(t, []string{"Organization Issues"}, problems)
}

func TestTagger_Mentions(t *testing.T) {
	tagger, err := NewTagger(
		[]config.Category{{Name: "Email Overload", Keywords: []string{"overload", "too many"}}},
		[]config.Category{{Name: "Techniques", Keywords: []string{"inbox zero"}}},
	)
	require.NoError(t, err)

	text := "overload again, too many messages, overload everywhere, inbox zero helps"
	problems := tagger.ProblemMentions(text)
	assert.Equal(t, 3, problems["Email Overload"], "every occurrence counts")

	solutions := tagger.SolutionMentions(text)
	assert.Equal(t, 1, solutions["Techniques"])
}

func TestTagger_SpecialCharKeywords(t *testing.T) {
	// keywords with regexp metacharacters must be quoted, not interpreted
	tagger, err := NewTagger(nil, []config.Category{{Name: "Productivity Tools", Keywords: []string{"hey.com"}}})
	require.NoError(t, err)

	match := domain.Post{Title: "switched to hey.com", Body: ""}
	_, solutions := tagger.Tag(&match)
	assert.Equal(t, []string{"Productivity Tools"}, solutions)

	// the dot is literal: "heyXcom" must not match
	noMatch := domain.Post{Title: "heyxcom is not a thing", Body: ""}
	_, solutions = tagger.Tag(&noMatch)
	assert.Empty(t, solutions)
}

func TestTagger_DeclarationOrder(t *testing.T) {
	cfg := config.Default()
	tagger, err := NewTagger(cfg.Categories.Problems, cfg.Categories.Solutions)
	require.NoError(t, err)

	want := make([]string, 0, len(cfg.Categories.Problems))
	for _, c := range cfg.Categories.Problems {
		want = append(want, c.Name)
	}
	assert.Equal(t, want, tagger.ProblemNames())
}

func TestTagger_Classify(t *testing.T) {
	tagger := testTagger(t)

	post := domain.Post{URL: "u1", Title: "spam spam spam", Body: "junk mail clutter"}
	classified := tagger.Classify(post, true)
	assert.True(t, classified.Relevant)
	assert.Equal(t, "u1", classified.URL)
	assert.Contains(t, classified.Categories, "Spam & Clutter")

	irrelevant := tagger.Classify(post, false)
	assert.False(t, irrelevant.Relevant)
}
