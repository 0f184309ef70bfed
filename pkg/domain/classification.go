package domain

// FilterReason explains which relevance rule decided a post's fate.
type FilterReason string

const (
	// ReasonKept - post passed all relevance rules
	ReasonKept FilterReason = "kept"
	// ReasonExcluded - post matched an exclude phrase, dominant over everything else
	ReasonExcluded FilterReason = "excluded"
	// ReasonNoProblemPhrase - no include phrase found in combined text
	ReasonNoProblemPhrase FilterReason = "no-problem-phrase"
	// ReasonNoTitleAnchor - title carries no anchor token
	ReasonNoTitleAnchor FilterReason = "no-title-anchor"
)

// FilterOutcome is the verbose result of relevance classification,
// for callers that need to report KEEP/DELETE with the rule that fired.
type FilterOutcome struct {
	Kept   bool
	Reason FilterReason
}
