package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lumenhq/lumen/pkg/config"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
}

func TestScanDir(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"main.py":                  "print('hi')\n",
		"src/app.py":               "x = 1\n",
		"node_modules/pkg/idx.js":  "module.exports = {}\n",
		"__pycache__/app.pyc":      "\x00",
		".hidden/secret.py":        "pass\n",
		"bundle.min.js":            "x\n",
	})

	files, err := New(config.DefaultConfig()).ScanDir(root)
	if err != nil {
		t.Fatalf("ScanDir() error = %v", err)
	}

	got := make(map[string]bool, len(files))
	for _, f := range files {
		got[filepath.ToSlash(f)] = true
	}
	for _, want := range []string{"main.py", "src/app.py"} {
		if !got[want] {
			t.Errorf("missing %s in %v", want, files)
		}
	}
	for _, excluded := range []string{"node_modules/pkg/idx.js", "__pycache__/app.pyc", ".hidden/secret.py", "bundle.min.js"} {
		if got[excluded] {
			t.Errorf("%s should be excluded", excluded)
		}
	}
}

func TestScanDirGitignore(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".gitignore":   "generated.py\n",
		"generated.py": "pass\n",
		"kept.py":      "pass\n",
	})

	files, err := New(config.DefaultConfig()).ScanDir(root)
	if err != nil {
		t.Fatalf("ScanDir() error = %v", err)
	}

	for _, f := range files {
		if filepath.Base(f) == "generated.py" {
			t.Errorf("gitignored file survived: %v", files)
		}
	}

	found := false
	for _, f := range files {
		if filepath.Base(f) == "kept.py" {
			found = true
		}
	}
	if !found {
		t.Errorf("kept.py missing from %v", files)
	}
}

func TestScanDirGitignoreDisabled(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"generated.py": "pass\n",
	})
	// A .gitignore outside the default file excludes would be needed to
	// observe the difference, so write one covering the source file.
	writeTree(t, root, map[string]string{".gitignore": "generated.py\n"})

	cfg := config.DefaultConfig()
	cfg.Exclude.Gitignore = false

	files, err := New(cfg).ScanDir(root)
	if err != nil {
		t.Fatalf("ScanDir() error = %v", err)
	}
	found := false
	for _, f := range files {
		if filepath.Base(f) == "generated.py" {
			found = true
		}
	}
	if !found {
		t.Errorf("generated.py should survive with gitignore disabled: %v", files)
	}
}

func TestStats(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.py":     "x = 1\ny = 2\n",
		"b.py":     "z = 3\n",
		"Makefile": "all:\n\ttrue\n",
	})

	stats := Stats(root, []string{"a.py", "b.py", "Makefile"})

	if stats.TotalFiles != 3 {
		t.Errorf("TotalFiles = %d, want 3", stats.TotalFiles)
	}
	if stats.TotalLines != 5 {
		t.Errorf("TotalLines = %d, want 5", stats.TotalLines)
	}
	if stats.Extensions[".py"] != 2 {
		t.Errorf("py count = %d, want 2", stats.Extensions[".py"])
	}
	if stats.Extensions["(none)"] != 1 {
		t.Errorf("(none) count = %d, want 1", stats.Extensions["(none)"])
	}
}

func TestStatsUnreadableFile(t *testing.T) {
	root := t.TempDir()
	stats := Stats(root, []string{"missing.py"})
	if stats.TotalFiles != 1 || stats.TotalLines != 0 {
		t.Errorf("stats = %+v, want counted file with zero lines", stats)
	}
}
