// Package vcs shells out to the git CLI for repository queries. Every call
// runs under a context deadline so a hung git never blocks analysis.
package vcs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	git "github.com/go-git/go-git/v5"
)

// ErrNotRepository is returned when the target directory is not inside a
// git work tree.
var ErrNotRepository = errors.New("not a git repository")

// Operation deadlines. Repository checks are cheap, log walks are not.
const (
	checkTimeout = 5 * time.Second
	listTimeout  = 30 * time.Second
	logTimeout   = 60 * time.Second
)

// Runner executes git commands in a fixed repository directory.
type Runner struct {
	dir string
}

// NewRunner creates a runner rooted at dir.
func NewRunner(dir string) *Runner {
	return &Runner{dir: dir}
}

// Dir returns the repository directory.
func (r *Runner) Dir() string {
	return r.dir
}

// run executes git with the given arguments and deadline, returning stdout.
func (r *Runner) run(ctx context.Context, timeout time.Duration, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("git %s timed out after %s", args[0], timeout)
		}
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("git %s: %s", args[0], msg)
		}
		return "", fmt.Errorf("git %s: %w", args[0], err)
	}
	return stdout.String(), nil
}

// IsRepository reports whether the directory is inside a git work tree.
func (r *Runner) IsRepository(ctx context.Context) bool {
	_, err := r.run(ctx, checkTimeout, "rev-parse", "--git-dir")
	return err == nil
}

// ListFiles returns the tracked files of the repository.
func (r *Runner) ListFiles(ctx context.Context) ([]string, error) {
	out, err := r.run(ctx, listTimeout, "ls-files")
	if err != nil {
		return nil, err
	}
	var files []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			files = append(files, line)
		}
	}
	return files, nil
}

// Head returns the current branch name, or the short commit hash when HEAD
// is detached. Uses go-git so it works without invoking the CLI.
func (r *Runner) Head() (string, error) {
	repo, err := git.PlainOpenWithOptions(r.dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return "", ErrNotRepository
		}
		return "", err
	}
	head, err := repo.Head()
	if err != nil {
		return "", err
	}
	if head.Name().IsBranch() {
		return head.Name().Short(), nil
	}
	return head.Hash().String()[:8], nil
}
