package domain

import "time"

// CategoryStat aggregates one category over a corpus.
type CategoryStat struct {
	Name          string
	PostsAffected int      // distinct posts with at least one keyword match
	Percentage    float64  // 100 * PostsAffected / total posts, 0 when corpus is empty
	TotalMentions int      // every match occurrence, may exceed PostsAffected
	AvgScore      *float64 // nil when no posts affected
}

// SolutionCount is the number of posts mentioning one solution theme.
type SolutionCount struct {
	Name     string
	Mentions int
}

// Quote is a high-engagement post extracted for the report.
type Quote struct {
	Title    string
	Preview  string
	Score    int
	Comments int
	Source   string
}

// WordCount is one entry of the word-frequency distribution.
type WordCount struct {
	Word  string
	Count int
}

// SourceCount is the number of posts from one source community.
type SourceCount struct {
	Source string
	Count  int
}

// MonthCount is the number of posts created in one calendar month.
type MonthCount struct {
	Month time.Time
	Count int
}

// Statistics holds every aggregate computed over a corpus. A zero
// TotalPosts means "no data": ranges and averages are undefined and
// renderers must print placeholders instead of numbers.
type Statistics struct {
	TotalPosts  int
	DateFrom    time.Time
	DateTo      time.Time
	Sources     int
	AvgScore    float64
	AvgComments float64
	TopSource   string
	TopTitle    string // title of the highest-scored post

	Problems  []CategoryStat // in category declaration order
	Solutions []SolutionCount
	Quotes    []Quote
	Words     []WordCount
	WordsOK   bool // false when tokenization produced the fallback sentinel

	SourceCounts []SourceCount // descending by count
	Monthly      []MonthCount  // ascending by month
	Scores       []int         // raw score values, for the histogram
}

// Report is an ordered sequence of sections, purely derivative of
// Statistics.
type Report struct {
	GeneratedAt time.Time
	Sections    []Section
}

// Section is one titled block of report lines.
type Section struct {
	Title string
	Lines []string
}
