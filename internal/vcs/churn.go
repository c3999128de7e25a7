package vcs

import (
	"context"
	"strconv"
	"strings"

	"github.com/lumenhq/lumen/pkg/models"
)

// Churn aggregates per-file change volume from git log numstat output.
// The combined --numstat --name-only stream alternates bare filenames with
// tab-separated stat rows; stats attach to the most recent filename.
func (r *Runner) Churn(ctx context.Context, since, until string) (map[string]*models.FileChurn, error) {
	args := []string{"log", "--pretty=format:", "--numstat", "--name-only"}
	if since != "" {
		args = append(args, "--since", since)
	}
	if until != "" {
		args = append(args, "--until", until)
	}

	out, err := r.run(ctx, logTimeout, args...)
	if err != nil {
		return nil, err
	}
	return parseChurn(out), nil
}

func parseChurn(raw string) map[string]*models.FileChurn {
	stats := make(map[string]*models.FileChurn)
	currentFile := ""

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if !strings.Contains(line, "\t") {
			currentFile = line
			continue
		}

		parts := strings.Split(line, "\t")
		if len(parts) < 2 || currentFile == "" {
			continue
		}
		ins, errIns := atoiDash(parts[0])
		del, errDel := atoiDash(parts[1])
		if errIns != nil || errDel != nil {
			continue
		}

		fc, ok := stats[currentFile]
		if !ok {
			fc = &models.FileChurn{Path: currentFile}
			stats[currentFile] = fc
		}
		fc.Changes += ins + del
		fc.Insertions += ins
		fc.Deletions += del
		fc.Commits++
	}
	return stats
}

// atoiDash parses a numstat count where "-" marks a binary file.
func atoiDash(s string) (int, error) {
	if s == "-" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
