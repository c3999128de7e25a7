package models

import "time"

// Commit is a single mined commit with its conventional-commit
// classification.
type Commit struct {
	Hash       string    `json:"hash"`
	Author     string    `json:"author"`
	Date       time.Time `json:"date"`
	Message    string    `json:"message"`
	RawMessage string    `json:"raw_message"`
	Category   string    `json:"category"`
	Scope      string    `json:"scope,omitempty"`
	Breaking   bool      `json:"breaking"`
	Insertions int       `json:"insertions"`
	Deletions  int       `json:"deletions"`
	Files      int       `json:"files_changed"`
}

// Commit categories produced by the classifier.
const (
	CategoryFeatures    = "features"
	CategoryBugfixes    = "bugfixes"
	CategoryRefactoring = "refactoring"
	CategoryDocs        = "docs"
	CategoryTest        = "test"
	CategoryChore       = "chore"
	CategoryCI          = "ci"
	CategoryStyle       = "style"
	CategoryBuild       = "build"
	CategoryReverts     = "reverts"
	CategoryMerges      = "merges"
	CategoryOther       = "other"
)

// CategoryStat holds per-category commit counts.
type CategoryStat struct {
	Category string  `json:"category"`
	Count    int     `json:"count"`
	Percent  float64 `json:"percent"`
}

// AuthorActivity aggregates one author's contribution totals.
type AuthorActivity struct {
	Author     string `json:"author"`
	Commits    int    `json:"commits"`
	Insertions int    `json:"insertions"`
	Deletions  int    `json:"deletions"`
	Files      int    `json:"files_changed"`
}

// HistorySummary aggregates a mined commit history.
type HistorySummary struct {
	TotalCommits int              `json:"total_commits"`
	Breaking     int              `json:"breaking_changes"`
	Categories   []CategoryStat   `json:"categories"`
	Authors      []AuthorActivity `json:"authors"`
}

// BranchComparison holds one-sided commit counts between two refs.
type BranchComparison struct {
	Base        string `json:"base"`
	Head        string `json:"head"`
	AheadCount  int    `json:"ahead_count"`
	BehindCount int    `json:"behind_count"`
}
