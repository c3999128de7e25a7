package analysis

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/lumenhq/lumen/pkg/models"
)

func initGitRepo(t *testing.T) (string, *git.Repository) {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("failed to init repo: %v", err)
	}
	return dir, repo
}

func writeFileAndCommit(t *testing.T, repo *git.Repository, dir, name, content, message string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	w, err := repo.Worktree()
	if err != nil {
		t.Fatalf("failed to get worktree: %v", err)
	}
	if _, err := w.Add(name); err != nil {
		t.Fatalf("failed to add file: %v", err)
	}
	_, err = w.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Test User",
			Email: "test@example.com",
			When:  time.Now(),
		},
	})
	if err != nil {
		t.Fatalf("failed to commit: %v", err)
	}
}

func TestAnalyzeRepo(t *testing.T) {
	dir, repo := initGitRepo(t)
	writeFileAndCommit(t, repo, dir, "app.py", "class App:\n    def run(self):\n        if True:\n            pass\n", "feat: add app")
	writeFileAndCommit(t, repo, dir, "util.py", "import os\n\ndef helper():\n    pass\n", "fix(core): handle missing path")

	svc := New(nil)
	report, err := svc.AnalyzeRepo(context.Background(), dir, Options{})
	if err != nil {
		t.Fatalf("AnalyzeRepo() error = %v", err)
	}

	if report.Metadata.Mode != models.ModeGit {
		t.Errorf("mode = %q, want git", report.Metadata.Mode)
	}
	if report.Metadata.Branch == "" {
		t.Error("branch not recorded")
	}
	if report.Stats.TotalFiles != 2 {
		t.Errorf("TotalFiles = %d, want 2", report.Stats.TotalFiles)
	}

	if len(report.Commits) != 2 {
		t.Fatalf("len(Commits) = %d, want 2", len(report.Commits))
	}
	counts := make(map[string]int)
	for _, stat := range report.History.Categories {
		counts[stat.Category] = stat.Count
	}
	if counts[models.CategoryFeatures] != 1 || counts[models.CategoryBugfixes] != 1 {
		t.Errorf("category breakdown = %v, want one feature and one bugfix", counts)
	}

	var classes, functions int
	for _, e := range report.Entities {
		switch e.Kind {
		case models.KindClass:
			classes++
		case models.KindFunction:
			functions++
		}
	}
	if classes != 1 || functions != 1 {
		t.Errorf("entities = %d classes %d functions, want 1 and 1", classes, functions)
	}

	if report.Complexity == nil || report.Complexity.Summary.TotalFiles != 2 {
		t.Errorf("complexity = %+v", report.Complexity)
	}
	if report.Graph == nil || len(report.Graph.Edges) == 0 {
		t.Error("graph missing the os import edge")
	}
	if report.Debt == nil || report.Debt.TotalCommits != 2 {
		t.Errorf("debt = %+v", report.Debt)
	}
	if report.Churn == nil || report.Churn.Summary.TotalFiles == 0 {
		t.Errorf("churn = %+v", report.Churn)
	}
}

func TestAnalyzeRepoFilesOnly(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "main.py"), []byte("x = 1\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	report, err := New(nil).AnalyzeRepo(context.Background(), dir, Options{NoGit: true})
	if err != nil {
		t.Fatalf("AnalyzeRepo() error = %v", err)
	}
	if report.Metadata.Mode != models.ModeFilesOnly {
		t.Errorf("mode = %q, want files-only", report.Metadata.Mode)
	}
	if report.Stats.TotalFiles != 1 {
		t.Errorf("TotalFiles = %d, want 1", report.Stats.TotalFiles)
	}
	if report.Commits != nil || report.Debt != nil {
		t.Error("history sections must stay empty in files-only mode")
	}
}

func TestAnalyzeRepoProgressCallbacks(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.py", "b.py"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x = 1\n"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	var total, ticks int
	_, err := New(nil).AnalyzeRepo(context.Background(), dir, Options{
		NoGit:   true,
		OnStart: func(n int) { total = n },
		OnFile:  func() { ticks++ },
	})
	if err != nil {
		t.Fatalf("AnalyzeRepo() error = %v", err)
	}
	if total != 2 {
		t.Errorf("OnStart total = %d, want 2", total)
	}
	if ticks != 2 {
		t.Errorf("OnFile ticks = %d, want 2", ticks)
	}
}

func TestAnalyzeRepoMissingPath(t *testing.T) {
	_, err := New(nil).AnalyzeRepo(context.Background(), filepath.Join(t.TempDir(), "nope"), Options{})
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("error = %v, want ErrConfiguration", err)
	}
}

func TestAnalyzeRepoNotRepository(t *testing.T) {
	_, err := New(nil).AnalyzeRepo(context.Background(), t.TempDir(), Options{})
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("error = %v, want ErrConfiguration", err)
	}
}

func TestAnalyzeRepoFileTarget(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.py")
	if err := os.WriteFile(path, []byte("x = 1\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := New(nil).AnalyzeRepo(context.Background(), path, Options{})
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("error = %v, want ErrConfiguration", err)
	}
}

func TestAnalyzeChurn(t *testing.T) {
	dir, repo := initGitRepo(t)
	writeFileAndCommit(t, repo, dir, "a.py", "x = 1\n", "feat: a")
	writeFileAndCommit(t, repo, dir, "a.py", "x = 1\ny = 2\n", "feat: grow a")

	report, err := New(nil).AnalyzeChurn(context.Background(), dir, Options{Days: 7})
	if err != nil {
		t.Fatalf("AnalyzeChurn() error = %v", err)
	}
	if report.Summary.WindowDays != 7 {
		t.Errorf("WindowDays = %d, want 7", report.Summary.WindowDays)
	}
	if len(report.Files) != 1 || report.Files[0].Commits != 2 {
		t.Errorf("files = %+v, want a.py with 2 commits", report.Files)
	}
}

func TestAnalyzeHistory(t *testing.T) {
	dir, repo := initGitRepo(t)
	writeFileAndCommit(t, repo, dir, "a.py", "x = 1\n", "feat: a")

	commits, summary, err := New(nil).AnalyzeHistory(context.Background(), dir, Options{})
	if err != nil {
		t.Fatalf("AnalyzeHistory() error = %v", err)
	}
	if len(commits) != 1 || commits[0].Category != models.CategoryFeatures {
		t.Errorf("commits = %+v", commits)
	}
	if summary.TotalCommits != 1 {
		t.Errorf("summary = %+v", summary)
	}
}

func TestStats(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.py"), []byte("x = 1\ny = 2\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	stats, err := New(nil).Stats(dir)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.TotalFiles != 1 || stats.TotalLines != 2 {
		t.Errorf("stats = %+v", stats)
	}
}
