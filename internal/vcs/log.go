package vcs

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/lumenhq/lumen/pkg/models"
)

// Delimiter tokens keep commit fields unambiguous even when subjects
// contain pipes or newlines appear in the numstat block.
const (
	commitBoundary = "==COMMIT_BOUNDARY=="
	fieldBoundary  = "==FIELD_BOUNDARY=="
)

// LogOptions filters the mined history.
type LogOptions struct {
	Since         string
	Until         string
	Author        string
	IncludeMerges bool
}

// Log mines commit history. Each returned commit carries hash, author,
// date, subject, and numstat totals; classification fields are left empty
// for the caller to fill.
func (r *Runner) Log(ctx context.Context, opts LogOptions) ([]models.Commit, error) {
	format := commitBoundary + "%n%H" + fieldBoundary + "%an" + fieldBoundary + "%aI" + fieldBoundary + "%s"

	args := []string{"log", "--pretty=format:" + format, "--numstat"}
	if !opts.IncludeMerges {
		args = append(args, "--no-merges")
	}
	if opts.Since != "" {
		args = append(args, "--since", opts.Since)
	}
	if opts.Until != "" {
		args = append(args, "--until", opts.Until)
	}
	if opts.Author != "" {
		args = append(args, "--author", opts.Author)
	}

	out, err := r.run(ctx, logTimeout, args...)
	if err != nil {
		return nil, err
	}
	return parseLog(out), nil
}

// parseLog splits raw log output into commits. Malformed chunks are
// skipped rather than failing the whole mine.
func parseLog(raw string) []models.Commit {
	var commits []models.Commit

	for _, chunk := range strings.Split(raw, commitBoundary) {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		lines := strings.Split(chunk, "\n")
		meta := strings.Split(lines[0], fieldBoundary)
		if len(meta) < 4 {
			continue
		}

		date, err := time.Parse(time.RFC3339, meta[2])
		if err != nil {
			continue
		}

		c := models.Commit{
			Hash:       meta[0],
			Author:     meta[1],
			Date:       date,
			Message:    meta[3],
			RawMessage: meta[3],
		}

		for _, statLine := range lines[1:] {
			if !strings.Contains(statLine, "\t") {
				continue
			}
			parts := strings.Split(statLine, "\t")
			if len(parts) < 3 {
				continue
			}
			// The file counts even when the numbers do not parse,
			// matching binary-change numstat rows.
			c.Files++
			if n, err := strconv.Atoi(parts[0]); err == nil {
				c.Insertions += n
			}
			if n, err := strconv.Atoi(parts[1]); err == nil {
				c.Deletions += n
			}
		}

		commits = append(commits, c)
	}
	return commits
}
