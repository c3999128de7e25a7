package analyzer

import "github.com/lumenhq/lumen/pkg/models"

// Category groupings for debt scoring. These are matched against the
// classifier's category values, so legacy singular forms are kept
// alongside the produced plural ones.
var (
	debtCategories        = stringSet("chore", "refactor", "style", "ci")
	featureCategories     = stringSet("feat", "bugfix", "features", "bugfixes")
	maintenanceCategories = stringSet("docs", "test")
)

func stringSet(items ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(items))
	for _, item := range items {
		s[item] = struct{}{}
	}
	return s
}

// ScoreDebt computes tech-debt metrics from classified commits and
// optional complexity aggregates. Zero commits yields all-zero metrics.
func ScoreDebt(commits []models.Commit, complexity *models.ComplexitySummary) *models.DebtMetrics {
	total := len(commits)
	if total == 0 {
		return &models.DebtMetrics{}
	}

	m := &models.DebtMetrics{TotalCommits: total}
	for _, c := range commits {
		if _, ok := debtCategories[c.Category]; ok {
			m.DebtCommits++
		}
		if _, ok := featureCategories[c.Category]; ok {
			m.FeatureCommits++
		}
		if _, ok := maintenanceCategories[c.Category]; ok {
			m.MaintenanceCommits++
		}
	}

	m.DebtPercent = float64(m.DebtCommits) / float64(total) * 100
	m.FeaturePercent = float64(m.FeatureCommits) / float64(total) * 100
	m.MaintenancePercent = float64(m.MaintenanceCommits) / float64(total) * 100

	if m.DebtPercent > 0 {
		m.HealthScore = m.FeaturePercent/m.DebtPercent*50 + 50
		if m.HealthScore > 100 {
			m.HealthScore = 100
		}
	} else {
		m.HealthScore = 100
	}

	if complexity != nil {
		m.ComplexityScore = 100 - complexity.AvgComplexity
		if m.ComplexityScore < 0 {
			m.ComplexityScore = 0
		}
		m.Maintainability = complexity.AvgMaintainability
	} else {
		m.Maintainability = 75
	}
	return m
}
