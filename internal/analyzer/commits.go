// Package analyzer implements the heuristic analysis passes: commit
// classification, structural extraction, complexity, dependency graphing,
// tech-debt scoring, and churn ranking.
package analyzer

import (
	"regexp"
	"sort"

	"github.com/lumenhq/lumen/pkg/models"
)

var (
	conventionalRe = regexp.MustCompile(`^(\w+)(?:\(([^)]+)\))?(!)?:\s*(.*)$`)
	breakingRe     = regexp.MustCompile(`(?is)BREAKING[ -]CHANGE[:\s]`)
)

// categoryMap folds conventional-commit types into report categories.
// Unknown types land in "other".
var categoryMap = map[string]string{
	"feat":     models.CategoryFeatures,
	"fix":      models.CategoryBugfixes,
	"perf":     models.CategoryRefactoring,
	"refactor": models.CategoryRefactoring,
	"docs":     models.CategoryDocs,
	"test":     models.CategoryTest,
	"chore":    models.CategoryChore,
	"ci":       models.CategoryCI,
	"style":    models.CategoryStyle,
	"build":    models.CategoryBuild,
	"revert":   models.CategoryReverts,
	"merge":    models.CategoryMerges,
}

// Classify fills the conventional-commit fields of a mined commit from its
// subject and full message body.
func Classify(c *models.Commit) {
	if m := conventionalRe.FindStringSubmatch(c.Message); m != nil {
		category, ok := categoryMap[m[1]]
		if !ok {
			category = models.CategoryOther
		}
		c.Category = category
		c.Scope = m[2]
		c.Breaking = m[3] == "!"
		c.Message = m[4]
	} else {
		c.Category = models.CategoryOther
	}

	if !c.Breaking && breakingRe.MatchString(c.RawMessage) {
		c.Breaking = true
	}
}

// ClassifyAll classifies every commit in place.
func ClassifyAll(commits []models.Commit) {
	for i := range commits {
		Classify(&commits[i])
	}
}

// SummarizeHistory builds category and author aggregates from classified
// commits. Categories and authors are sorted by descending count, ties by
// name so output stays stable.
func SummarizeHistory(commits []models.Commit) models.HistorySummary {
	summary := models.HistorySummary{TotalCommits: len(commits)}

	categories := make(map[string]int)
	authors := make(map[string]*models.AuthorActivity)

	for _, c := range commits {
		categories[c.Category]++
		if c.Breaking {
			summary.Breaking++
		}

		a, ok := authors[c.Author]
		if !ok {
			a = &models.AuthorActivity{Author: c.Author}
			authors[c.Author] = a
		}
		a.Commits++
		a.Insertions += c.Insertions
		a.Deletions += c.Deletions
		a.Files += c.Files
	}

	total := float64(len(commits))
	for category, count := range categories {
		stat := models.CategoryStat{Category: category, Count: count}
		if total > 0 {
			stat.Percent = float64(count) / total * 100
		}
		summary.Categories = append(summary.Categories, stat)
	}
	sort.Slice(summary.Categories, func(i, j int) bool {
		if summary.Categories[i].Count != summary.Categories[j].Count {
			return summary.Categories[i].Count > summary.Categories[j].Count
		}
		return summary.Categories[i].Category < summary.Categories[j].Category
	})

	for _, a := range authors {
		summary.Authors = append(summary.Authors, *a)
	}
	sort.Slice(summary.Authors, func(i, j int) bool {
		if summary.Authors[i].Commits != summary.Authors[j].Commits {
			return summary.Authors[i].Commits > summary.Authors[j].Commits
		}
		return summary.Authors[i].Author < summary.Authors[j].Author
	})

	return summary
}
