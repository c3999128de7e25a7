package models

// DebtMetrics scores technical debt from classified commit history and
// optional complexity metrics.
type DebtMetrics struct {
	TotalCommits       int     `json:"total_commits"`
	DebtCommits        int     `json:"debt_commits"`
	FeatureCommits     int     `json:"feature_commits"`
	MaintenanceCommits int     `json:"maintenance_commits"`
	DebtPercent        float64 `json:"debt_percentage"`
	FeaturePercent     float64 `json:"feature_percentage"`
	MaintenancePercent float64 `json:"maintenance_percentage"`
	HealthScore        float64 `json:"health_score"`
	ComplexityScore    float64 `json:"complexity_score"`
	Maintainability    float64 `json:"maintainability_index"`
}

// Health bands used for display coloring.
const (
	HealthGood = 75.0
	HealthWarn = 50.0
)

// HealthLabel returns a severity label for the health score.
func (d *DebtMetrics) HealthLabel() string {
	switch {
	case d.HealthScore >= HealthGood:
		return "good"
	case d.HealthScore >= HealthWarn:
		return "moderate"
	default:
		return "high"
	}
}
