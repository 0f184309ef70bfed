package report

import (
	"os"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mailprobe/pkg/config"
	"mailprobe/pkg/domain"
)

func testStats() domain.Statistics {
	avg := 55.5
	return domain.Statistics{
		TotalPosts:  10,
		DateFrom:    time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC),
		DateTo:      time.Date(2025, 4, 20, 0, 0, 0, 0, time.UTC),
		Sources:     3,
		AvgScore:    42.5,
		AvgComments: 7.1,
		TopSource:   "r/gmail",
		TopTitle:    "I hate my inbox",
		Problems: []domain.CategoryStat{
			{Name: "Missing Important Emails", PostsAffected: 4, Percentage: 40, TotalMentions: 6, AvgScore: &avg},
			{Name: "Email Overload", PostsAffected: 7, Percentage: 70, TotalMentions: 12, AvgScore: &avg},
			{Name: "Time Management", PostsAffected: 4, Percentage: 40, TotalMentions: 5, AvgScore: &avg},
			{Name: "Stress & Anxiety", PostsAffected: 0, Percentage: 0, TotalMentions: 0},
		},
		Solutions: []domain.SolutionCount{
			{Name: "Gmail Features", Mentions: 3},
			{Name: "Email Clients", Mentions: 0},
			{Name: "Automation", Mentions: 8},
		},
		Quotes: []domain.Quote{
			{Title: strings.Repeat("long title ", 20), Preview: strings.Repeat("body ", 100), Score: 99, Comments: 12, Source: "r/gmail"},
			{Title: "short", Preview: "", Score: 5, Comments: 1, Source: "r/productivity"},
		},
		Words:   []domain.WordCount{{Word: "inbox", Count: 12}, {Word: "clutter", Count: 7}},
		WordsOK: true,
	}
}

func testBuilder() *Builder {
	return NewBuilder(config.Default().Report)
}

func TestBuilder_Build_SectionOrder(t *testing.T) {
	rep := testBuilder().Build(testStats())

	titles := make([]string, 0, len(rep.Sections))
	for _, s := range rep.Sections {
		titles = append(titles, s.Title)
	}
	assert.Equal(t, []string{
		"EXECUTIVE SUMMARY",
		"DATASET OVERVIEW",
		"EMAIL PROBLEM BREAKDOWN",
		"TOP USER COMPLAINTS",
		"EXISTING SOLUTIONS MENTIONED",
		"MOST COMMON WORDS IN COMPLAINTS",
		"KEY PRODUCT MANAGER INSIGHTS",
		"RECOMMENDED SOLUTION STRATEGY",
		"TECHNICAL IMPLEMENTATION",
		"BUSINESS CASE & METRICS",
		"CONCLUSION & NEXT STEPS",
	}, titles)
}

func TestBuilder_Build_ProblemRanking(t *testing.T) {
	rep := testBuilder().Build(testStats())

	var breakdown domain.Section
	for _, s := range rep.Sections {
		if s.Title == "EMAIL PROBLEM BREAKDOWN" {
			breakdown = s
		}
	}
	require.NotEmpty(t, breakdown.Lines)

	// percentage descending, declaration order breaks the 40% tie
	assert.Contains(t, breakdown.Lines[1], "1. Email Overload: 70.0%")
	assert.Contains(t, breakdown.Lines[3], "2. Missing Important Emails: 40.0%")
	assert.Contains(t, breakdown.Lines[5], "3. Time Management: 40.0%")

	// zero-affected category has no engagement line after it
	last := breakdown.Lines[len(breakdown.Lines)-1]
	assert.Contains(t, last, "Stress & Anxiety: 0.0%")
}

func TestBuilder_Build_Truncation(t *testing.T) {
	cfg := config.Default().Report
	rep := NewBuilder(cfg).Build(testStats())

	var complaints domain.Section
	for _, s := range rep.Sections {
		if s.Title == "TOP USER COMPLAINTS" {
			complaints = s
		}
	}
	require.NotEmpty(t, complaints.Lines)

	// first quote's long title and preview are cut to their budgets
	assert.LessOrEqual(t, len(complaints.Lines[0]), cfg.TitleBudget+10)
	assert.Contains(t, complaints.Lines[0], "...")
	found := false
	for _, l := range complaints.Lines {
		if strings.HasPrefix(l, "   Preview: ") {
			found = true
			assert.LessOrEqual(t, len(l), cfg.PreviewBudget+20)
		}
	}
	assert.True(t, found)
}

func TestTruncate_RuneBoundary(t *testing.T) {
	// 3-byte runes: a 4-byte budget cannot split the second rune
	s := "日本語のメール"
	cut := truncate(s, 4)
	assert.True(t, utf8.ValidString(cut))
	assert.Equal(t, "日...", cut)

	assert.Equal(t, "short", truncate("short", 10))
	assert.True(t, utf8.ValidString(truncate("émail überload", 7)))
}

func TestBuilder_Build_Solutions(t *testing.T) {
	rep := testBuilder().Build(testStats())

	var sols domain.Section
	for _, s := range rep.Sections {
		if s.Title == "EXISTING SOLUTIONS MENTIONED" {
			sols = s
		}
	}
	require.Len(t, sols.Lines, 2, "zero-mention solutions filtered out")
	assert.Contains(t, sols.Lines[0], "Automation: 8")
	assert.Contains(t, sols.Lines[1], "Gmail Features: 3")
}

func TestBuilder_Build_NoData(t *testing.T) {
	rep := testBuilder().Build(domain.Statistics{})

	require.Len(t, rep.Sections, 1)
	text := Render(rep)
	assert.Contains(t, text, "No data to analyze.")
	assert.NotContains(t, text, "NaN")
	assert.NotContains(t, text, "nan%")
}

func TestRender(t *testing.T) {
	rep := testBuilder().Build(testStats())
	text := Render(rep)

	assert.True(t, strings.HasPrefix(text, ruleHeavy))
	assert.Contains(t, text, "EMAIL PRODUCTIVITY PROBLEM ANALYSIS REPORT")
	assert.Contains(t, text, "40% of users report missing important emails")
	assert.Contains(t, text, "END OF REPORT")
}

func TestSave_NoOverwrite(t *testing.T) {
	dir := t.TempDir()
	rep := testBuilder().Build(testStats())

	first, err := Save(rep, dir)
	require.NoError(t, err)
	second, err := Save(rep, dir)
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "same-minute reports get distinct names")
	for _, p := range []string{first, second} {
		data, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.Contains(t, string(data), "END OF REPORT")
	}
}
