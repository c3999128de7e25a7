package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/lumenhq/lumen/internal/output"
	"github.com/lumenhq/lumen/internal/progress"
	"github.com/lumenhq/lumen/internal/service/analysis"
	"github.com/lumenhq/lumen/pkg/config"
	"github.com/lumenhq/lumen/pkg/models"
)

var (
	version = "dev"
	commit  = "none"    //nolint:unused // set via ldflags at build time
	date    = "unknown" //nolint:unused // set via ldflags at build time
)

func main() {
	app := &cli.App{
		Name:    "lumen",
		Usage:   "Repository intelligence CLI",
		Version: version,
		Description: `Lumen mines git history and scans source trees to report classified
commits, structural entities, complexity, dependency graphs, technical
debt, and file churn hotspots.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (TOML, YAML, or JSON)",
				EnvVars: []string{"LUMEN_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "text",
				Usage:   "Output format: text, json, markdown, toon",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write output to file",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable verbose output",
			},
		},
		Commands: []*cli.Command{
			analyzeCmd(),
			historyCmd(),
			structureCmd(),
			complexityCmd(),
			depsCmd(),
			debtCmd(),
			churnCmd(),
			compareCmd(),
			statsCmd(),
			initCmd(),
			configCmd(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	if path := c.String("config"); path != "" {
		return config.Load(path)
	}
	return config.LoadOrDefault(), nil
}

func newFormatter(c *cli.Context) (*output.Formatter, error) {
	return output.NewFormatter(output.ParseFormat(c.String("format")), c.String("output"), true)
}

func historyFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "days", Value: 30, Usage: "Days of history to analyze"},
		&cli.StringFlag{Name: "since", Usage: "Start date (ISO or relative like 7d, 2w, 3m, 1y)"},
		&cli.StringFlag{Name: "until", Usage: "End date (ISO or relative)"},
		&cli.StringFlag{Name: "author", Usage: "Filter commits by author"},
		&cli.BoolFlag{Name: "include-merges", Usage: "Include merge commits"},
	}
}

func historyOptions(c *cli.Context) analysis.Options {
	return analysis.Options{
		Days:          c.Int("days"),
		Since:         parseRelativeDate(c.String("since")),
		Until:         parseRelativeDate(c.String("until")),
		Author:        c.String("author"),
		IncludeMerges: c.Bool("include-merges"),
		Top:           c.Int("top"),
	}
}

func analyzeCmd() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Aliases:   []string{"a"},
		Usage:     "Run the full analysis pipeline",
		ArgsUsage: "[path]",
		Flags: append(historyFlags(),
			&cli.BoolFlag{Name: "no-git", Usage: "Skip git history, scan files only"},
			&cli.IntFlag{Name: "top", Value: 20, Usage: "Rows per section"},
		),
		Action: runAnalyze,
	}
}

func runAnalyze(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	opts := historyOptions(c)
	opts.NoGit = c.Bool("no-git")

	var tracker *progress.Tracker
	opts.OnStart = func(total int) {
		tracker = progress.NewTracker("Analyzing files", total)
	}
	opts.OnFile = func() {
		if tracker != nil {
			tracker.Tick()
		}
	}

	svc := analysis.New(cfg)
	report, err := svc.AnalyzeRepo(context.Background(), firstPath(c), opts)
	if err != nil {
		if tracker != nil {
			tracker.FinishError(err)
		}
		return err
	}
	if tracker != nil {
		tracker.FinishSuccess()
	}

	formatter, err := newFormatter(c)
	if err != nil {
		return err
	}
	defer formatter.Close()

	switch output.ParseFormat(c.String("format")) {
	case output.FormatJSON, output.FormatTOON:
		return formatter.Output(&output.Table{Data: report})
	default:
		return renderReport(formatter, report, c.Int("top"))
	}
}

// renderReport builds the text view: one table per populated section.
func renderReport(formatter *output.Formatter, report *models.Report, top int) error {
	out := &output.Report{
		Title: fmt.Sprintf("Repository Analysis: %s", report.Metadata.Path),
		Data:  report,
	}

	out.Sections = append(out.Sections, &output.Section{
		Title: "Overview",
		Content: fmt.Sprintf("Mode: %s\nBranch: %s\nFiles: %d\nLines: %d\nCommits: %d",
			report.Metadata.Mode, report.Metadata.Branch,
			report.Stats.TotalFiles, report.Stats.TotalLines,
			report.History.TotalCommits),
	})

	if len(report.History.Categories) > 0 {
		var rows [][]string
		for _, cat := range report.History.Categories {
			rows = append(rows, []string{cat.Category, fmt.Sprintf("%d", cat.Count), fmt.Sprintf("%.1f%%", cat.Percent)})
		}
		out.Sections = append(out.Sections, output.NewTable(
			"Commit Categories", []string{"Category", "Commits", "Share"}, rows, nil, nil))
	}

	if len(report.History.Authors) > 0 {
		var rows [][]string
		for _, a := range limitAuthors(report.History.Authors, top) {
			rows = append(rows, []string{
				a.Author,
				fmt.Sprintf("%d", a.Commits),
				fmt.Sprintf("+%d/-%d", a.Insertions, a.Deletions),
			})
		}
		out.Sections = append(out.Sections, output.NewTable(
			"Authors", []string{"Author", "Commits", "Lines"}, rows, nil, nil))
	}

	if report.Debt != nil && report.Debt.TotalCommits > 0 {
		out.Sections = append(out.Sections, &output.Section{
			Title: "Tech Debt",
			Content: fmt.Sprintf("Health: %s\nDebt commits: %d (%.1f%%)\nFeature commits: %d (%.1f%%)\nComplexity score: %.1f\nMaintainability: %.1f",
				output.SeverityColor(report.Debt.HealthLabel(), fmt.Sprintf("%.1f", report.Debt.HealthScore)),
				report.Debt.DebtCommits, report.Debt.DebtPercent,
				report.Debt.FeatureCommits, report.Debt.FeaturePercent,
				report.Debt.ComplexityScore, report.Debt.Maintainability),
		})
	}

	if report.Churn != nil && len(report.Churn.Files) > 0 {
		out.Sections = append(out.Sections, churnTable(report.Churn, top))
	}

	return formatter.Output(out)
}

func limitAuthors(authors []models.AuthorActivity, top int) []models.AuthorActivity {
	if top > 0 && len(authors) > top {
		return authors[:top]
	}
	return authors
}

func churnTable(churn *models.ChurnReport, top int) *output.Table {
	files := churn.Files
	if top > 0 && len(files) > top {
		files = files[:top]
	}
	var rows [][]string
	for _, fc := range files {
		changes := fmt.Sprintf("%d", fc.Changes)
		switch {
		case fc.Changes >= 500:
			changes = color.RedString(changes)
		case fc.Changes >= 100:
			changes = color.YellowString(changes)
		}
		rows = append(rows, []string{
			fc.Path,
			changes,
			fmt.Sprintf("%d", fc.Commits),
			fmt.Sprintf("+%d/-%d", fc.Insertions, fc.Deletions),
		})
	}
	return output.NewTable(
		fmt.Sprintf("File Churn (Last %d Days)", churn.Summary.WindowDays),
		[]string{"File", "Changes", "Commits", "Lines"},
		rows,
		[]string{
			fmt.Sprintf("Files: %d", churn.Summary.TotalFiles),
			fmt.Sprintf("Total Changes: %d", churn.Summary.TotalChanges),
			"", "",
		},
		churn,
	)
}

func historyCmd() *cli.Command {
	return &cli.Command{
		Name:      "history",
		Aliases:   []string{"h"},
		Usage:     "Mine and classify commit history",
		ArgsUsage: "[path]",
		Flags: append(historyFlags(),
			&cli.IntFlag{Name: "top", Value: 20, Usage: "Commits to show"},
		),
		Action: runHistory,
	}
}

func runHistory(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	spinner := progress.NewSpinner("Mining git history...")
	svc := analysis.New(cfg)
	commits, summary, err := svc.AnalyzeHistory(context.Background(), firstPath(c), historyOptions(c))
	spinner.FinishSuccess()
	if err != nil {
		return err
	}

	formatter, err := newFormatter(c)
	if err != nil {
		return err
	}
	defer formatter.Close()

	top := c.Int("top")
	shown := commits
	if top > 0 && len(shown) > top {
		shown = shown[:top]
	}

	var rows [][]string
	for _, cm := range shown {
		category := cm.Category
		if cm.Breaking {
			category = color.RedString(category + "!")
		}
		rows = append(rows, []string{
			cm.Hash[:min(8, len(cm.Hash))],
			cm.Date.Format("2006-01-02"),
			cm.Author,
			category,
			cm.Message,
		})
	}

	table := output.NewTable(
		"Commit History",
		[]string{"Hash", "Date", "Author", "Category", "Message"},
		rows,
		[]string{
			fmt.Sprintf("Commits: %d", summary.TotalCommits),
			"", "",
			fmt.Sprintf("Breaking: %d", summary.Breaking),
			"",
		},
		map[string]any{"commits": commits, "summary": summary},
	)
	return formatter.Output(table)
}

func structureCmd() *cli.Command {
	return &cli.Command{
		Name:      "structure",
		Usage:     "Extract structural entities (classes, functions, methods)",
		ArgsUsage: "[path]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "snippet", Value: "none", Usage: "Snippet capture: short, long, none"},
			&cli.BoolFlag{Name: "include-tests", Usage: "Include entities from test files"},
		},
		Action: runStructure,
	}
}

func runStructure(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	cfg.Structure.Snippet = c.String("snippet")

	spinner := progress.NewSpinner("Scanning source files...")
	svc := analysis.New(cfg)
	report, err := svc.AnalyzeRepo(context.Background(), firstPath(c), analysis.Options{
		NoGit:  true,
		OnFile: spinner.Tick,
	})
	spinner.FinishSuccess()
	if err != nil {
		return err
	}

	formatter, err := newFormatter(c)
	if err != nil {
		return err
	}
	defer formatter.Close()

	var rows [][]string
	count := 0
	for _, e := range report.Entities {
		if e.IsTest && !c.Bool("include-tests") {
			continue
		}
		count++
		rows = append(rows, []string{
			e.Name,
			string(e.Kind),
			e.Language,
			fmt.Sprintf("%s:%d", e.File, e.Line),
			fmt.Sprintf("%d", len(e.Methods)),
		})
	}

	table := output.NewTable(
		"Structural Entities",
		[]string{"Name", "Kind", "Language", "Location", "Methods"},
		rows,
		[]string{fmt.Sprintf("Entities: %d", count), "", "", "", ""},
		report.Entities,
	)
	return formatter.Output(table)
}

func complexityCmd() *cli.Command {
	return &cli.Command{
		Name:      "complexity",
		Aliases:   []string{"cx"},
		Usage:     "Compute cyclomatic complexity and maintainability",
		ArgsUsage: "[path]",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "top", Value: 20, Usage: "Files to show"},
		},
		Action: runComplexity,
	}
}

func runComplexity(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	spinner := progress.NewSpinner("Analyzing complexity...")
	svc := analysis.New(cfg)
	report, err := svc.AnalyzeRepo(context.Background(), firstPath(c), analysis.Options{
		NoGit:  true,
		OnFile: spinner.Tick,
	})
	spinner.FinishSuccess()
	if err != nil {
		return err
	}

	formatter, err := newFormatter(c)
	if err != nil {
		return err
	}
	defer formatter.Close()

	files := append([]models.FileMetrics(nil), report.Complexity.Files...)
	sort.Slice(files, func(i, j int) bool { return files[i].Complexity > files[j].Complexity })
	if top := c.Int("top"); top > 0 && len(files) > top {
		files = files[:top]
	}

	var rows [][]string
	for _, fm := range files {
		mi := fmt.Sprintf("%.1f", fm.MaintainabilityIndex)
		switch {
		case fm.MaintainabilityIndex < models.MaintainabilityWarn:
			mi = color.RedString(mi)
		case fm.MaintainabilityIndex < models.MaintainabilityGood:
			mi = color.YellowString(mi)
		}
		rows = append(rows, []string{
			fm.Path,
			fmt.Sprintf("%d", fm.Lines),
			fmt.Sprintf("%d", fm.Functions),
			fmt.Sprintf("%d", fm.Complexity),
			mi,
		})
	}

	table := output.NewTable(
		"Complexity",
		[]string{"File", "Lines", "Functions", "Complexity", "Maintainability"},
		rows,
		[]string{
			fmt.Sprintf("Files: %d", report.Complexity.Summary.TotalFiles),
			fmt.Sprintf("Lines: %d", report.Complexity.Summary.TotalLines),
			"",
			fmt.Sprintf("Avg: %.1f", report.Complexity.Summary.AvgComplexity),
			fmt.Sprintf("Avg: %.1f", report.Complexity.Summary.AvgMaintainability),
		},
		report.Complexity,
	)
	return formatter.Output(table)
}

func depsCmd() *cli.Command {
	return &cli.Command{
		Name:      "deps",
		Usage:     "Build the import dependency graph",
		ArgsUsage: "[path]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "mermaid", Usage: "Print the graph as a Mermaid diagram"},
			&cli.IntFlag{Name: "top", Value: 20, Usage: "Files to show"},
		},
		Action: runDeps,
	}
}

func runDeps(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	spinner := progress.NewSpinner("Extracting imports...")
	svc := analysis.New(cfg)
	report, err := svc.AnalyzeRepo(context.Background(), firstPath(c), analysis.Options{
		NoGit:  true,
		OnFile: spinner.Tick,
	})
	spinner.FinishSuccess()
	if err != nil {
		return err
	}
	graph := report.Graph

	formatter, err := newFormatter(c)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if c.Bool("mermaid") {
		_, err := fmt.Fprintln(formatter.Writer(), graph.ToMermaid())
		return err
	}

	nodes := append([]models.GraphNode(nil), graph.Nodes...)
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ImportCount > nodes[j].ImportCount })
	if top := c.Int("top"); top > 0 && len(nodes) > top {
		nodes = nodes[:top]
	}

	var rows [][]string
	for _, n := range nodes {
		rows = append(rows, []string{n.ID, n.Language, fmt.Sprintf("%d", n.ImportCount)})
	}

	table := output.NewTable(
		"Dependency Graph",
		[]string{"File", "Language", "Imports"},
		rows,
		[]string{
			fmt.Sprintf("Nodes: %d", graph.Summary.TotalNodes),
			fmt.Sprintf("External: %d", len(graph.ExternalModules)),
			fmt.Sprintf("Edges: %d", graph.Summary.TotalEdges),
		},
		graph,
	)
	return formatter.Output(table)
}

func debtCmd() *cli.Command {
	return &cli.Command{
		Name:      "debt",
		Usage:     "Score technical debt from commit history",
		ArgsUsage: "[path]",
		Flags:     historyFlags(),
		Action:    runDebt,
	}
}

func runDebt(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	spinner := progress.NewSpinner("Scoring technical debt...")
	svc := analysis.New(cfg)
	report, err := svc.AnalyzeRepo(context.Background(), firstPath(c), historyOptions(c))
	spinner.FinishSuccess()
	if err != nil {
		return err
	}
	debt := report.Debt

	formatter, err := newFormatter(c)
	if err != nil {
		return err
	}
	defer formatter.Close()

	health := output.SeverityColor(debt.HealthLabel(), fmt.Sprintf("%.1f", debt.HealthScore))
	rows := [][]string{
		{"Total commits", fmt.Sprintf("%d", debt.TotalCommits)},
		{"Debt commits", fmt.Sprintf("%d (%.1f%%)", debt.DebtCommits, debt.DebtPercent)},
		{"Feature commits", fmt.Sprintf("%d (%.1f%%)", debt.FeatureCommits, debt.FeaturePercent)},
		{"Maintenance commits", fmt.Sprintf("%d (%.1f%%)", debt.MaintenanceCommits, debt.MaintenancePercent)},
		{"Health score", health},
		{"Complexity score", fmt.Sprintf("%.1f", debt.ComplexityScore)},
		{"Maintainability", fmt.Sprintf("%.1f", debt.Maintainability)},
	}

	table := output.NewTable("Technical Debt", []string{"Metric", "Value"}, rows, nil, debt)
	return formatter.Output(table)
}

func churnCmd() *cli.Command {
	return &cli.Command{
		Name:      "churn",
		Usage:     "Rank files by change volume",
		ArgsUsage: "[path]",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "days", Value: 30, Usage: "Days of history to analyze"},
			&cli.IntFlag{Name: "top", Value: 20, Usage: "Files to show"},
		},
		Action: runChurn,
	}
}

func runChurn(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	spinner := progress.NewSpinner("Analyzing git history...")
	svc := analysis.New(cfg)
	churn, err := svc.AnalyzeChurn(context.Background(), firstPath(c), analysis.Options{
		Days: c.Int("days"),
		Top:  c.Int("top"),
	})
	spinner.FinishSuccess()
	if err != nil {
		return err
	}

	formatter, err := newFormatter(c)
	if err != nil {
		return err
	}
	defer formatter.Close()

	return formatter.Output(churnTable(churn, c.Int("top")))
}

func compareCmd() *cli.Command {
	return &cli.Command{
		Name:      "compare",
		Usage:     "Compare commits between two refs",
		ArgsUsage: "BASE HEAD [path]",
		Action:    runCompare,
	}
}

func runCompare(c *cli.Context) error {
	if c.Args().Len() < 2 {
		return fmt.Errorf("compare requires BASE and HEAD refs")
	}
	base, head := c.Args().Get(0), c.Args().Get(1)
	path := "."
	if c.Args().Len() > 2 {
		path = c.Args().Get(2)
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	svc := analysis.New(cfg)
	cmp, err := svc.CompareBranches(context.Background(), path, base, head)
	if err != nil {
		return err
	}

	formatter, err := newFormatter(c)
	if err != nil {
		return err
	}
	defer formatter.Close()

	rows := [][]string{
		{fmt.Sprintf("%s..%s", base, head), fmt.Sprintf("%d", cmp.AheadCount)},
		{fmt.Sprintf("%s..%s", head, base), fmt.Sprintf("%d", cmp.BehindCount)},
	}
	table := output.NewTable(
		fmt.Sprintf("Branch Comparison: %s vs %s", base, head),
		[]string{"Range", "Commits"}, rows, nil, cmp)
	return formatter.Output(table)
}

func statsCmd() *cli.Command {
	return &cli.Command{
		Name:      "stats",
		Usage:     "Show repository file statistics (no git required)",
		ArgsUsage: "[path]",
		Action:    runStats,
	}
}

func runStats(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	svc := analysis.New(cfg)
	stats, err := svc.Stats(firstPath(c))
	if err != nil {
		return err
	}

	formatter, err := newFormatter(c)
	if err != nil {
		return err
	}
	defer formatter.Close()

	exts := make([]string, 0, len(stats.Extensions))
	for ext := range stats.Extensions {
		exts = append(exts, ext)
	}
	sort.Slice(exts, func(i, j int) bool {
		if stats.Extensions[exts[i]] != stats.Extensions[exts[j]] {
			return stats.Extensions[exts[i]] > stats.Extensions[exts[j]]
		}
		return exts[i] < exts[j]
	})

	var rows [][]string
	for _, ext := range exts {
		rows = append(rows, []string{ext, fmt.Sprintf("%d", stats.Extensions[ext])})
	}

	table := output.NewTable(
		"Repository Stats",
		[]string{"Extension", "Files"},
		rows,
		[]string{
			fmt.Sprintf("Files: %d", stats.TotalFiles),
			fmt.Sprintf("Lines: %d", stats.TotalLines),
		},
		stats,
	)
	return formatter.Output(table)
}
