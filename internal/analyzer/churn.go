package analyzer

import (
	"sort"

	"github.com/lumenhq/lumen/pkg/models"
)

// RankChurn orders per-file churn by descending change volume, ties broken
// by path, and builds the window summary. A non-positive top keeps every
// file.
func RankChurn(stats map[string]*models.FileChurn, windowDays, top int) *models.ChurnReport {
	report := &models.ChurnReport{
		Summary: models.ChurnSummary{
			WindowDays: windowDays,
			TotalFiles: len(stats),
		},
	}

	for _, fc := range stats {
		report.Files = append(report.Files, *fc)
		report.Summary.TotalChanges += fc.Changes
	}
	sort.Slice(report.Files, func(i, j int) bool {
		if report.Files[i].Changes != report.Files[j].Changes {
			return report.Files[i].Changes > report.Files[j].Changes
		}
		return report.Files[i].Path < report.Files[j].Path
	})

	if top > 0 && len(report.Files) > top {
		report.Files = report.Files[:top]
	}
	return report
}
