package vcs

import (
	"context"
	"strings"

	"github.com/lumenhq/lumen/pkg/models"
)

// CompareBranches counts commits unique to each of two refs using two
// one-sided ranges. Merge commits are excluded from both sides.
func (r *Runner) CompareBranches(ctx context.Context, base, head string) (*models.BranchComparison, error) {
	ahead, err := r.hashList(ctx, base+".."+head)
	if err != nil {
		return nil, err
	}
	behind, err := r.hashList(ctx, head+".."+base)
	if err != nil {
		return nil, err
	}

	return &models.BranchComparison{
		Base:        base,
		Head:        head,
		AheadCount:  len(ahead),
		BehindCount: len(behind),
	}, nil
}

func (r *Runner) hashList(ctx context.Context, rangeSpec string) ([]string, error) {
	out, err := r.run(ctx, logTimeout, "log", rangeSpec, "--pretty=format:%H", "--no-merges")
	if err != nil {
		return nil, err
	}
	var hashes []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			hashes = append(hashes, line)
		}
	}
	return hashes, nil
}
