package models

// FileMetrics holds per-file complexity measurements.
type FileMetrics struct {
	Path                  string  `json:"path"`
	Lines                 int     `json:"loc"`
	SourceLines           int     `json:"sloc"`
	CommentLines          int     `json:"comment_lines"`
	Functions             int     `json:"functions"`
	Classes               int     `json:"classes"`
	Complexity            int     `json:"complexity"`
	ComplexityPerFunction float64 `json:"complexity_per_function"`
	MaintainabilityIndex  float64 `json:"maintainability_index"`
}

// Maintainability bands used for display coloring.
const (
	MaintainabilityGood = 70.0
	MaintainabilityWarn = 40.0
)

// ComplexityReport aggregates file metrics across a scan.
type ComplexityReport struct {
	Files   []FileMetrics     `json:"files"`
	Summary ComplexitySummary `json:"summary"`
}

// ComplexitySummary holds scan-wide complexity aggregates.
type ComplexitySummary struct {
	TotalFiles         int     `json:"total_files"`
	TotalLines         int     `json:"total_lines"`
	AvgComplexity      float64 `json:"avg_complexity"`
	MaxComplexity      int     `json:"max_complexity"`
	AvgMaintainability float64 `json:"avg_maintainability"`
}

// CalculateSummary recomputes the summary from the file list.
func (r *ComplexityReport) CalculateSummary() {
	s := ComplexitySummary{TotalFiles: len(r.Files)}
	if len(r.Files) == 0 {
		r.Summary = s
		return
	}
	var totalCx int
	var totalMI float64
	for _, f := range r.Files {
		s.TotalLines += f.Lines
		totalCx += f.Complexity
		totalMI += f.MaintainabilityIndex
		if f.Complexity > s.MaxComplexity {
			s.MaxComplexity = f.Complexity
		}
	}
	s.AvgComplexity = float64(totalCx) / float64(len(r.Files))
	s.AvgMaintainability = totalMI / float64(len(r.Files))
	r.Summary = s
}
