package models

import "time"

// AnalysisMode selects how much of the pipeline runs.
type AnalysisMode string

const (
	ModeGit       AnalysisMode = "git"
	ModeFilesOnly AnalysisMode = "files_only"
)

// Metadata describes one analysis run.
type Metadata struct {
	Path       string       `json:"path"`
	Since      string       `json:"since,omitempty"`
	Until      string       `json:"until,omitempty"`
	Author     string       `json:"author,omitempty"`
	WindowDays int          `json:"duration_days"`
	AnalyzedAt time.Time    `json:"analyzed_at"`
	Mode       AnalysisMode `json:"mode"`
	Branch     string       `json:"branch,omitempty"`
}

// RepoStats is a git-free overview of the working tree.
type RepoStats struct {
	TotalFiles int            `json:"total_files"`
	TotalLines int            `json:"total_lines"`
	Extensions map[string]int `json:"extensions"`
}

// Report is the full analysis result. Sections that failed or were skipped
// stay at their zero value.
type Report struct {
	Metadata   Metadata          `json:"metadata"`
	Stats      RepoStats         `json:"stats"`
	Commits    []Commit          `json:"history,omitempty"`
	History    HistorySummary    `json:"history_summary"`
	Entities   []Entity          `json:"entities,omitempty"`
	Complexity *ComplexityReport `json:"complexity,omitempty"`
	Graph      *DependencyGraph  `json:"dependency_graph,omitempty"`
	Debt       *DebtMetrics      `json:"tech_debt,omitempty"`
	Churn      *ChurnReport      `json:"file_churn,omitempty"`
}
