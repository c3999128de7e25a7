package models

// FileChurn holds change-frequency counters for one file. Changes is the
// sum of insertions and deletions across the window.
type FileChurn struct {
	Path       string `json:"path"`
	Changes    int    `json:"changes"`
	Commits    int    `json:"commits"`
	Insertions int    `json:"insertions"`
	Deletions  int    `json:"deletions"`
}

// ChurnReport ranks files by change volume over a history window.
type ChurnReport struct {
	Files   []FileChurn  `json:"files"`
	Summary ChurnSummary `json:"summary"`
}

// ChurnSummary aggregates churn across the window.
type ChurnSummary struct {
	WindowDays   int `json:"window_days"`
	TotalFiles   int `json:"total_files"`
	TotalChanges int `json:"total_changes"`
}
