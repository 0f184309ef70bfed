package config

// Default returns the built-in configuration: the search matrix, rule sets
// and category keyword lists for the email-organization research domain.
// A YAML config file overrides any of it.
func Default() *Config {
	cfg := &Config{}

	cfg.Searches = []Search{
		// gmail specific
		{Subreddit: "gmail", Query: "organization"},
		{Subreddit: "gmail", Query: "organize"},
		{Subreddit: "gmail", Query: "cluttered"},
		{Subreddit: "gmail", Query: "too many emails"},
		{Subreddit: "gmail", Query: "inbox management"},
		{Subreddit: "gmail", Query: "email management"},
		{Subreddit: "gmail", Query: "overwhelmed"},
		{Subreddit: "gmail", Query: "productivity"},
		{Subreddit: "gmail", Query: "hard to find"},
		{Subreddit: "gmail", Query: "search emails"},

		// general email in productivity communities
		{Subreddit: "productivity", Query: "email cluttered"},
		{Subreddit: "productivity", Query: "email organization"},
		{Subreddit: "productivity", Query: "gmail organization"},
		{Subreddit: "productivity", Query: "inbox cluttered"},
		{Subreddit: "productivity", Query: "too many emails"},
		{Subreddit: "productivity", Query: "email overwhelmed"},
		{Subreddit: "productivity", Query: "inbox overwhelmed"},
		{Subreddit: "productivity", Query: "email productivity"},

		// help requests
		{Subreddit: "NoStupidQuestions", Query: "email organization"},
		{Subreddit: "NoStupidQuestions", Query: "gmail organization"},
		{Subreddit: "NoStupidQuestions", Query: "too many emails"},
		{Subreddit: "NoStupidQuestions", Query: "inbox management"},

		// tips communities, might contain problems
		{Subreddit: "LifeProTips", Query: "email organization"},
		{Subreddit: "LifeProTips", Query: "gmail tips"},
		{Subreddit: "LifeProTips", Query: "inbox management"},

		// tech help
		{Subreddit: "techsupport", Query: "gmail organization"},
		{Subreddit: "techsupport", Query: "email management"},
	}

	cfg.Rules = RulesConfig{
		Include: []string{
			"organize email", "organize gmail", "email organization", "gmail organization",
			"inbox organization", "cluttered inbox", "messy inbox", "inbox management",
			"too many emails", "email overload", "overwhelmed by email",
			"can't find email", "lost email", "search email", "find email",
			"email productivity", "inbox zero", "manage email", "email management",
			"sort email", "categorize email", "filter email", "email chaos",
			"unread email", "thousands of email", "hundreds of email",
		},
		Exclude: []string{
			"eating the frog", "productivity method", "asking myself", "rewired my life",
			"angry email", "never send", "amazon smile", "meal plan", "recipe",
			"job interview", "resume", "career", "dating", "relationship",
			"apartment", "rent", "landlord", "turkey", "thanksgiving",
			"wasn't unproductive", "functional human", "task management system",
			"habit tracker", "planner", "productivity hack", "time blocking",
			"pomodoro", "focus session", "getting things done",
		},
		Anchors: []string{"email", "gmail", "inbox", "mail"},
	}

	cfg.Categories.Problems = []Category{
		{Name: "Missing Important Emails", Keywords: []string{
			"miss", "missed", "missing", "forget", "forgot", "overlooked", "ignore", "ignored",
			"important", "crucial", "urgent", "priority", "deadline", "interview",
		}},
		{Name: "Email Overload", Keywords: []string{
			"overwhelm", "too many", "flood", "hundreds", "thousands", "drowning",
			"overload", "bombarded", "swamped", "buried", "avalanche",
		}},
		{Name: "Spam & Clutter", Keywords: []string{
			"spam", "promotional", "newsletter", "marketing", "ads", "clutter",
			"noise", "junk", "unwanted", "unsubscribe", "garbage",
		}},
		{Name: "Organization Issues", Keywords: []string{
			"organize", "organization", "messy", "chaos", "scattered", "lost",
			"find", "search", "folder", "label", "sort", "categorize",
		}},
		{Name: "Time Management", Keywords: []string{
			"time", "waste", "wasting", "hours", "productivity", "efficient",
			"slow", "takes forever", "all day", "constantly checking",
		}},
		{Name: "Stress & Anxiety", Keywords: []string{
			"stress", "stressful", "anxiety", "anxious", "overwhelming", "panic",
			"dread", "hate", "frustrated", "annoying", "exhausting",
		}},
		{Name: "Mobile/Technical Issues", Keywords: []string{
			"mobile", "phone", "app", "slow", "crash", "bug", "glitch",
			"sync", "notification", "loading", "freezing",
		}},
	}

	cfg.Categories.Solutions = []Category{
		{Name: "Gmail Features", Keywords: []string{"gmail", "google mail", "labels", "filters", "priority inbox"}},
		{Name: "Email Clients", Keywords: []string{"outlook", "thunderbird", "apple mail", "spark", "airmail"}},
		{Name: "Productivity Tools", Keywords: []string{"boomerang", "mixmax", "superhuman", "hey.com", "sanebox"}},
		{Name: "Techniques", Keywords: []string{"inbox zero", "unsubscribe", "batch processing", "schedule", "folders"}},
		{Name: "Automation", Keywords: []string{"automate", "automation", "rules", "zapier", "ifttt", "filter"}},
	}

	cfg.Analysis.Stopwords = []string{
		"email", "emails", "im", "dont", "cant", "would", "could", "one", "get", "getting",
	}

	cfg.setDefaults()
	return cfg
}

// GenericStopwords is the baseline English stopword set applied to word
// frequency in addition to the configured domain stopwords.
var GenericStopwords = []string{
	"a", "about", "above", "after", "again", "against", "all", "am", "an", "and",
	"any", "are", "aren", "as", "at", "be", "because", "been", "before", "being",
	"below", "between", "both", "but", "by", "can", "couldn", "did", "didn",
	"do", "does", "doesn", "doing", "don", "down", "during", "each", "few",
	"for", "from", "further", "had", "hadn", "has", "hasn", "have", "haven",
	"having", "he", "her", "here", "hers", "herself", "him", "himself", "his",
	"how", "i", "if", "in", "into", "is", "isn", "it", "its", "itself", "just",
	"ll", "me", "mightn", "more", "most", "mustn", "my", "myself", "needn",
	"no", "nor", "not", "now", "of", "off", "on", "once", "only", "or",
	"other", "our", "ours", "ourselves", "out", "over", "own", "re", "s",
	"same", "shan", "she", "should", "shouldn", "so", "some", "such", "t",
	"than", "that", "the", "their", "theirs", "them", "themselves", "then",
	"there", "these", "they", "this", "those", "through", "to", "too", "under",
	"until", "up", "ve", "very", "was", "wasn", "we", "were", "weren", "what",
	"when", "where", "which", "while", "who", "whom", "why", "will", "with",
	"won", "wouldn", "y", "you", "your", "yours", "yourself", "yourselves",
}
