// Package analysis orchestrates the full pipeline: repository checks, file
// scanning, structural extraction, complexity, dependency graphing,
// history mining, debt scoring, and churn ranking.
//
// Stages run sequentially. Per-stage failures degrade that section of the
// report to its zero value; only configuration errors abort the run.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lumenhq/lumen/internal/analyzer"
	"github.com/lumenhq/lumen/internal/scanner"
	"github.com/lumenhq/lumen/internal/vcs"
	"github.com/lumenhq/lumen/pkg/config"
	"github.com/lumenhq/lumen/pkg/lang"
	"github.com/lumenhq/lumen/pkg/models"
)

// ErrConfiguration marks fatal setup problems: missing target path, or git
// analysis requested on a directory that is not a repository.
var ErrConfiguration = errors.New("configuration error")

// Service runs analyses with a fixed configuration.
type Service struct {
	cfg *config.Config
}

// New creates a service. A nil config uses defaults.
func New(cfg *config.Config) *Service {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Service{cfg: cfg}
}

// Options controls one analysis run.
type Options struct {
	Since         string
	Until         string
	Author        string
	Days          int
	IncludeMerges bool
	NoGit         bool
	Top           int

	// OnStart is invoked once with the number of files selected for
	// analysis, before per-file processing begins.
	OnStart func(total int)

	// OnFile is invoked after each file is processed, for progress
	// reporting.
	OnFile func()
}

// defaults fills unset options from config.
func (s *Service) defaults(opts Options) Options {
	if opts.Days <= 0 {
		opts.Days = s.cfg.History.Days
	}
	if opts.Top <= 0 {
		opts.Top = s.cfg.Output.Top
	}
	if opts.Author == "" {
		opts.Author = s.cfg.History.Author
	}
	if !opts.IncludeMerges {
		opts.IncludeMerges = s.cfg.History.IncludeMerges
	}
	return opts
}

// checkPath validates the analysis target.
func checkPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%w: invalid path %q: %v", ErrConfiguration, path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("%w: path does not exist: %s", ErrConfiguration, abs)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: not a directory: %s", ErrConfiguration, abs)
	}
	return abs, nil
}

// AnalyzeRepo runs the whole pipeline and assembles the report.
func (s *Service) AnalyzeRepo(ctx context.Context, path string, opts Options) (*models.Report, error) {
	opts = s.defaults(opts)

	abs, err := checkPath(path)
	if err != nil {
		return nil, err
	}

	runner := vcs.NewRunner(abs)
	mode := models.ModeGit
	if opts.NoGit {
		mode = models.ModeFilesOnly
	} else if !runner.IsRepository(ctx) {
		return nil, fmt.Errorf("%w: %s is not a git repository (use files-only mode to skip history)", ErrConfiguration, abs)
	}

	report := &models.Report{
		Metadata: models.Metadata{
			Path:       abs,
			Since:      opts.Since,
			Until:      opts.Until,
			Author:     opts.Author,
			WindowDays: opts.Days,
			AnalyzedAt: time.Now(),
			Mode:       mode,
		},
	}
	if mode == models.ModeGit {
		if branch, err := runner.Head(); err == nil {
			report.Metadata.Branch = branch
		}
	}

	files := s.listFiles(ctx, runner, abs, mode)
	if opts.OnStart != nil {
		opts.OnStart(len(files))
	}
	report.Stats = scanner.Stats(abs, files)

	s.analyzeFiles(abs, files, opts.OnFile, report)

	if mode == models.ModeGit {
		s.analyzeHistory(ctx, runner, opts, report)
	}
	return report, nil
}

// listFiles prefers the tracked-file list in git mode and falls back to a
// filesystem walk.
func (s *Service) listFiles(ctx context.Context, runner *vcs.Runner, abs string, mode models.AnalysisMode) []string {
	if mode == models.ModeGit {
		if files, err := runner.ListFiles(ctx); err == nil && len(files) > 0 {
			kept := files[:0]
			for _, f := range files {
				if !s.cfg.ShouldExclude(f) {
					kept = append(kept, f)
				}
			}
			return kept
		}
	}
	files, err := scanner.New(s.cfg).ScanDir(abs)
	if err != nil {
		return nil
	}
	return files
}

// analyzeFiles runs the per-file passes sequentially: structure,
// complexity, and import extraction. Unreadable files are skipped.
func (s *Service) analyzeFiles(abs string, files []string, onFile func(), report *models.Report) {
	structOpts := analyzer.StructureOptions{SnippetLines: s.cfg.SnippetMaxLines()}
	complexity := &models.ComplexityReport{}
	var graphInputs []analyzer.GraphInput
	byFile := make(map[string]int)

	for _, rel := range files {
		if onFile != nil {
			onFile()
		}
		if !lang.IsCode(rel) {
			continue
		}
		content, err := os.ReadFile(filepath.Join(abs, rel))
		if err != nil {
			continue
		}
		lines := strings.Split(strings.ReplaceAll(string(content), "\r\n", "\n"), "\n")

		report.Entities = append(report.Entities, analyzer.ExtractStructure(rel, lines, structOpts)...)

		metrics := analyzer.AnalyzeComplexity(rel, lines)
		complexity.Files = append(complexity.Files, metrics)
		byFile[rel] = metrics.Complexity

		if language := lang.Detect(rel); language != lang.LangUnknown {
			graphInputs = append(graphInputs, analyzer.GraphInput{Path: rel, Lines: lines, Language: language})
		}
	}

	// Fill the per-entity complexity slot from the owning file's metrics.
	for i := range report.Entities {
		report.Entities[i].Complexity = byFile[report.Entities[i].File]
	}

	complexity.CalculateSummary()
	report.Complexity = complexity
	report.Graph = analyzer.BuildGraph(graphInputs)
}

// analyzeHistory mines and classifies commits, then derives breakdowns,
// debt, and churn. VCS failures leave the sections empty.
func (s *Service) analyzeHistory(ctx context.Context, runner *vcs.Runner, opts Options, report *models.Report) {
	since := opts.Since
	if since == "" && opts.Days > 0 {
		since = fmt.Sprintf("%d days ago", opts.Days)
	}

	commits, err := runner.Log(ctx, vcs.LogOptions{
		Since:         since,
		Until:         opts.Until,
		Author:        opts.Author,
		IncludeMerges: opts.IncludeMerges,
	})
	if err != nil {
		commits = nil
	}
	analyzer.ClassifyAll(commits)
	report.Commits = commits
	report.History = analyzer.SummarizeHistory(commits)

	var cxSummary *models.ComplexitySummary
	if report.Complexity != nil && len(report.Complexity.Files) > 0 {
		cxSummary = &report.Complexity.Summary
	}
	report.Debt = analyzer.ScoreDebt(commits, cxSummary)

	if stats, err := runner.Churn(ctx, since, opts.Until); err == nil {
		report.Churn = analyzer.RankChurn(stats, opts.Days, opts.Top)
	}
}

// AnalyzeChurn runs only the churn query and ranking.
func (s *Service) AnalyzeChurn(ctx context.Context, path string, opts Options) (*models.ChurnReport, error) {
	opts = s.defaults(opts)
	abs, err := checkPath(path)
	if err != nil {
		return nil, err
	}
	runner := vcs.NewRunner(abs)
	if !runner.IsRepository(ctx) {
		return nil, fmt.Errorf("%w: %s is not a git repository", ErrConfiguration, abs)
	}

	since := opts.Since
	if since == "" {
		since = fmt.Sprintf("%d days ago", opts.Days)
	}
	stats, err := runner.Churn(ctx, since, opts.Until)
	if err != nil {
		return nil, err
	}
	return analyzer.RankChurn(stats, opts.Days, opts.Top), nil
}

// AnalyzeHistory mines and classifies commits only.
func (s *Service) AnalyzeHistory(ctx context.Context, path string, opts Options) ([]models.Commit, models.HistorySummary, error) {
	opts = s.defaults(opts)
	abs, err := checkPath(path)
	if err != nil {
		return nil, models.HistorySummary{}, err
	}
	runner := vcs.NewRunner(abs)
	if !runner.IsRepository(ctx) {
		return nil, models.HistorySummary{}, fmt.Errorf("%w: %s is not a git repository", ErrConfiguration, abs)
	}

	since := opts.Since
	if since == "" && opts.Days > 0 {
		since = fmt.Sprintf("%d days ago", opts.Days)
	}
	commits, err := runner.Log(ctx, vcs.LogOptions{
		Since:         since,
		Until:         opts.Until,
		Author:        opts.Author,
		IncludeMerges: opts.IncludeMerges,
	})
	if err != nil {
		return nil, models.HistorySummary{}, err
	}
	analyzer.ClassifyAll(commits)
	return commits, analyzer.SummarizeHistory(commits), nil
}

// CompareBranches counts commits unique to each side of two refs.
func (s *Service) CompareBranches(ctx context.Context, path, base, head string) (*models.BranchComparison, error) {
	abs, err := checkPath(path)
	if err != nil {
		return nil, err
	}
	runner := vcs.NewRunner(abs)
	if !runner.IsRepository(ctx) {
		return nil, fmt.Errorf("%w: %s is not a git repository", ErrConfiguration, abs)
	}
	return runner.CompareBranches(ctx, base, head)
}

// Stats scans the tree without touching git.
func (s *Service) Stats(path string) (models.RepoStats, error) {
	abs, err := checkPath(path)
	if err != nil {
		return models.RepoStats{}, err
	}
	files, err := scanner.New(s.cfg).ScanDir(abs)
	if err != nil {
		return models.RepoStats{}, err
	}
	return scanner.Stats(abs, files), nil
}
