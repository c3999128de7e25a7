// Package scanner walks a source tree applying config and gitignore
// exclusions.
package scanner

import (
	"bufio"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"

	"github.com/lumenhq/lumen/pkg/config"
	"github.com/lumenhq/lumen/pkg/models"
)

// Scanner finds analyzable files in a directory.
type Scanner struct {
	config  *config.Config
	matcher gitignore.Matcher
}

// New creates a scanner with the given config.
func New(cfg *config.Config) *Scanner {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Scanner{config: cfg}
}

// loadGitignore reads .gitignore patterns under root when enabled.
func (s *Scanner) loadGitignore(root string) {
	if !s.config.Exclude.Gitignore {
		return
	}
	patterns, err := gitignore.ReadPatterns(osfs.New(root), nil)
	if err != nil || len(patterns) == 0 {
		return
	}
	s.matcher = gitignore.NewMatcher(patterns)
}

// ScanDir walks root and returns relative paths of files that survive the
// exclusion rules. Hidden directories are pruned like named excludes.
func (s *Scanner) ScanDir(root string) ([]string, error) {
	s.loadGitignore(root)

	excludedDirs := make(map[string]struct{}, len(s.config.Exclude.Dirs))
	for _, d := range s.config.Exclude.Dirs {
		excludedDirs[d] = struct{}{}
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are skipped, not fatal.
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil || rel == "." {
			return nil
		}

		if d.IsDir() {
			name := d.Name()
			if _, ok := excludedDirs[name]; ok || strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			if s.ignored(rel, true) {
				return filepath.SkipDir
			}
			return nil
		}

		if s.config.ShouldExclude(rel) || s.ignored(rel, false) {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func (s *Scanner) ignored(rel string, isDir bool) bool {
	if s.matcher == nil {
		return false
	}
	return s.matcher.Match(strings.Split(filepath.ToSlash(rel), "/"), isDir)
}

// Stats builds a git-free overview of the given files: counts by
// extension and total line count. Unreadable files are skipped.
func Stats(root string, files []string) models.RepoStats {
	stats := models.RepoStats{
		TotalFiles: len(files),
		Extensions: make(map[string]int),
	}
	for _, rel := range files {
		ext := strings.ToLower(filepath.Ext(rel))
		if ext == "" {
			ext = "(none)"
		}
		stats.Extensions[ext]++
		stats.TotalLines += countLines(filepath.Join(root, rel))
	}
	return stats
}

func countLines(path string) int {
	f, err := os.Open(path)
	if err != nil {
		return 0
	}
	defer f.Close()

	lines := 0
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		lines++
	}
	return lines
}
