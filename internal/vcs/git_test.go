package vcs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
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

func TestIsRepository(t *testing.T) {
	dir, _ := initGitRepo(t)
	if !NewRunner(dir).IsRepository(context.Background()) {
		t.Error("IsRepository() = false for initialized repo")
	}

	if NewRunner(t.TempDir()).IsRepository(context.Background()) {
		t.Error("IsRepository() = true for plain directory")
	}
}

func TestListFiles(t *testing.T) {
	dir, repo := initGitRepo(t)
	writeFileAndCommit(t, repo, dir, "main.py", "print('hi')\n", "feat: add main")
	writeFileAndCommit(t, repo, dir, "util.py", "pass\n", "feat: add util")

	files, err := NewRunner(dir).ListFiles(context.Background())
	if err != nil {
		t.Fatalf("ListFiles() error = %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("len(files) = %d, want 2: %v", len(files), files)
	}
}

func TestLog(t *testing.T) {
	dir, repo := initGitRepo(t)
	writeFileAndCommit(t, repo, dir, "main.py", "print('hi')\n", "feat: add main")
	writeFileAndCommit(t, repo, dir, "main.py", "print('hello')\n", "fix: greeting text")

	commits, err := NewRunner(dir).Log(context.Background(), LogOptions{})
	if err != nil {
		t.Fatalf("Log() error = %v", err)
	}
	if len(commits) != 2 {
		t.Fatalf("len(commits) = %d, want 2", len(commits))
	}

	// Newest first.
	if commits[0].Message != "fix: greeting text" {
		t.Errorf("subject = %q, want fix commit first", commits[0].Message)
	}
	if commits[0].Author != "Test User" {
		t.Errorf("author = %q", commits[0].Author)
	}
	if commits[0].Files != 1 {
		t.Errorf("Files = %d, want 1", commits[0].Files)
	}
	if commits[0].Date.IsZero() {
		t.Error("commit date not parsed")
	}
}

func TestLogAuthorFilter(t *testing.T) {
	dir, repo := initGitRepo(t)
	writeFileAndCommit(t, repo, dir, "main.py", "x = 1\n", "feat: start")

	commits, err := NewRunner(dir).Log(context.Background(), LogOptions{Author: "Nobody"})
	if err != nil {
		t.Fatalf("Log() error = %v", err)
	}
	if len(commits) != 0 {
		t.Errorf("len(commits) = %d, want 0 for unmatched author", len(commits))
	}
}

func TestHead(t *testing.T) {
	dir, repo := initGitRepo(t)
	writeFileAndCommit(t, repo, dir, "main.py", "x = 1\n", "feat: start")

	branch, err := NewRunner(dir).Head()
	if err != nil {
		t.Fatalf("Head() error = %v", err)
	}
	if branch == "" {
		t.Error("Head() returned empty branch name")
	}
}

func TestHeadNotRepository(t *testing.T) {
	// An isolated temp dir has no enclosing work tree to detect.
	if _, err := NewRunner(os.TempDir()).Head(); err == nil {
		t.Error("Head() error = nil for non-repository")
	}
}

func TestChurn(t *testing.T) {
	dir, repo := initGitRepo(t)
	writeFileAndCommit(t, repo, dir, "main.py", "a = 1\n", "feat: start")
	writeFileAndCommit(t, repo, dir, "main.py", "a = 1\nb = 2\n", "feat: grow")
	writeFileAndCommit(t, repo, dir, "other.py", "pass\n", "feat: other")

	stats, err := NewRunner(dir).Churn(context.Background(), "", "")
	if err != nil {
		t.Fatalf("Churn() error = %v", err)
	}

	main := stats["main.py"]
	if main == nil {
		t.Fatal("main.py missing from churn stats")
	}
	if main.Commits != 2 {
		t.Errorf("main.py commits = %d, want 2", main.Commits)
	}
	if main.Changes == 0 {
		t.Error("main.py changes = 0, want > 0")
	}
	if stats["other.py"] == nil || stats["other.py"].Commits != 1 {
		t.Errorf("other.py = %+v, want 1 commit", stats["other.py"])
	}
}

func TestCompareBranches(t *testing.T) {
	dir, repo := initGitRepo(t)
	writeFileAndCommit(t, repo, dir, "main.py", "x = 1\n", "feat: start")

	runner := NewRunner(dir)
	base, err := runner.Head()
	if err != nil {
		t.Fatalf("Head() error = %v", err)
	}

	w, err := repo.Worktree()
	if err != nil {
		t.Fatalf("failed to get worktree: %v", err)
	}
	err = w.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName("feature"),
		Create: true,
	})
	if err != nil {
		t.Fatalf("failed to create branch: %v", err)
	}
	writeFileAndCommit(t, repo, dir, "feature.py", "y = 2\n", "feat: new thing")

	cmp, err := runner.CompareBranches(context.Background(), base, "feature")
	if err != nil {
		t.Fatalf("CompareBranches() error = %v", err)
	}
	if cmp.AheadCount != 1 || cmp.BehindCount != 0 {
		t.Errorf("comparison = ahead %d behind %d, want ahead 1 behind 0",
			cmp.AheadCount, cmp.BehindCount)
	}
	if cmp.Base != base || cmp.Head != "feature" {
		t.Errorf("refs = %q..%q", cmp.Base, cmp.Head)
	}
}
