package analytics

import (
	"sort"
	"strings"
	"time"

	"mailprobe/pkg/config"
	"mailprobe/pkg/domain"
)

// Analyzer computes corpus-wide statistics: per-category breakdowns, the
// dataset overview, engagement ranking and the word-frequency distribution.
// Every analysis pass recomputes everything from scratch, nothing is cached
// between invocations.
type Analyzer struct {
	tagger    Tagger
	cfg       config.AnalysisConfig
	stopwords map[string]struct{}
}

// Tagger provides category keyword matching for aggregation
type Tagger interface {
	ProblemNames() []string
	SolutionNames() []string
	ProblemMentions(text string) map[string]int
	SolutionMentions(text string) map[string]int
}

// New creates an analyzer with the configured stopword set. Domain
// stopwords from the config are merged with the generic English set.
func New(tagger Tagger, cfg config.AnalysisConfig) *Analyzer {
	stop := make(map[string]struct{}, len(config.GenericStopwords)+len(cfg.Stopwords))
	for _, w := range config.GenericStopwords {
		stop[w] = struct{}{}
	}
	for _, w := range cfg.Stopwords {
		stop[strings.ToLower(w)] = struct{}{}
	}
	return &Analyzer{tagger: tagger, cfg: cfg, stopwords: stop}
}

// Aggregate computes Statistics over the corpus. An empty corpus yields a
// well-defined zero Statistics, callers render it as "no data to analyze".
func (a *Analyzer) Aggregate(posts []domain.Post) domain.Statistics {
	stats := domain.Statistics{TotalPosts: len(posts)}
	if len(posts) == 0 {
		return stats
	}

	a.overview(posts, &stats)
	a.problemStats(posts, &stats)
	a.solutionStats(posts, &stats)
	stats.Quotes = a.topQuotes(posts, a.cfg.TopQuotes)
	stats.Words, stats.WordsOK = a.WordFrequency(posts, a.cfg.TopWords)
	return stats
}

// overview fills the dataset-level descriptive stats
func (a *Analyzer) overview(posts []domain.Post, stats *domain.Statistics) {
	stats.DateFrom = posts[0].CreatedAt
	stats.DateTo = posts[0].CreatedAt
	topScore := posts[0].Score
	stats.TopTitle = posts[0].Title

	var sumScore, sumComments int
	sourceCounts := map[string]int{}
	sourceOrder := []string{}
	monthly := map[time.Time]int{}

	for i := range posts {
		p := &posts[i]
		if p.CreatedAt.Before(stats.DateFrom) {
			stats.DateFrom = p.CreatedAt
		}
		if p.CreatedAt.After(stats.DateTo) {
			stats.DateTo = p.CreatedAt
		}
		if p.Score > topScore {
			topScore = p.Score
			stats.TopTitle = p.Title
		}
		sumScore += p.Score
		sumComments += p.NumComments
		if _, seen := sourceCounts[p.Source]; !seen {
			sourceOrder = append(sourceOrder, p.Source)
		}
		sourceCounts[p.Source]++
		month := time.Date(p.CreatedAt.Year(), p.CreatedAt.Month(), 1, 0, 0, 0, 0, time.UTC)
		monthly[month]++
		stats.Scores = append(stats.Scores, p.Score)
	}

	stats.Sources = len(sourceCounts)
	stats.AvgScore = float64(sumScore) / float64(len(posts))
	stats.AvgComments = float64(sumComments) / float64(len(posts))

	// sources descending by count, first-seen order breaks ties
	stats.SourceCounts = make([]domain.SourceCount, 0, len(sourceOrder))
	for _, src := range sourceOrder {
		stats.SourceCounts = append(stats.SourceCounts, domain.SourceCount{Source: src, Count: sourceCounts[src]})
	}
	sort.SliceStable(stats.SourceCounts, func(i, j int) bool {
		return stats.SourceCounts[i].Count > stats.SourceCounts[j].Count
	})
	stats.TopSource = stats.SourceCounts[0].Source

	months := make([]time.Time, 0, len(monthly))
	for m := range monthly {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })
	for _, m := range months {
		stats.Monthly = append(stats.Monthly, domain.MonthCount{Month: m, Count: monthly[m]})
	}
}

// problemStats computes a CategoryStat per problem category in declaration
// order. Percentage is over the full corpus, average score only over the
// affected posts and nil when none are.
func (a *Analyzer) problemStats(posts []domain.Post, stats *domain.Statistics) {
	names := a.tagger.ProblemNames()
	affected := make(map[string]int, len(names))
	mentions := make(map[string]int, len(names))
	scoreSum := make(map[string]int, len(names))

	for i := range posts {
		text := posts[i].CombinedText()
		for name, count := range a.tagger.ProblemMentions(text) {
			if count == 0 {
				continue
			}
			affected[name]++
			mentions[name] += count
			scoreSum[name] += posts[i].Score
		}
	}

	total := float64(len(posts))
	stats.Problems = make([]domain.CategoryStat, 0, len(names))
	for _, name := range names {
		stat := domain.CategoryStat{
			Name:          name,
			PostsAffected: affected[name],
			Percentage:    100 * float64(affected[name]) / total,
			TotalMentions: mentions[name],
		}
		if affected[name] > 0 {
			avg := float64(scoreSum[name]) / float64(affected[name])
			stat.AvgScore = &avg
		}
		stats.Problems = append(stats.Problems, stat)
	}
}

func (a *Analyzer) solutionStats(posts []domain.Post, stats *domain.Statistics) {
	names := a.tagger.SolutionNames()
	mentions := make(map[string]int, len(names))
	for i := range posts {
		text := posts[i].CombinedText()
		for name, count := range a.tagger.SolutionMentions(text) {
			mentions[name] += count
		}
	}
	stats.Solutions = make([]domain.SolutionCount, 0, len(names))
	for _, name := range names {
		stats.Solutions = append(stats.Solutions, domain.SolutionCount{Name: name, Mentions: mentions[name]})
	}
}

// TopEngaged returns up to n posts ranked by score plus comments,
// descending. The sort is stable: equal engagement keeps original corpus
// order. The input slice is never reordered. Negative n is treated as zero.
func TopEngaged(posts []domain.Post, n int) []domain.Post {
	if n < 0 {
		n = 0
	}
	ranked := make([]domain.Post, len(posts))
	copy(ranked, posts)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Engagement() > ranked[j].Engagement()
	})
	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

func (a *Analyzer) topQuotes(posts []domain.Post, n int) []domain.Quote {
	top := TopEngaged(posts, n)
	quotes := make([]domain.Quote, 0, len(top))
	for i := range top {
		quotes = append(quotes, domain.Quote{
			Title:    top[i].Title,
			Preview:  top[i].Body,
			Score:    top[i].Score,
			Comments: top[i].NumComments,
			Source:   top[i].Source,
		})
	}
	return quotes
}
