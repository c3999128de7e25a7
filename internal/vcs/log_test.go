package vcs

import (
	"testing"
)

func logChunk(hash, author, date, subject string, stats ...string) string {
	out := commitBoundary + "\n" + hash + fieldBoundary + author + fieldBoundary + date + fieldBoundary + subject + "\n"
	for _, s := range stats {
		out += s + "\n"
	}
	return out
}

func TestParseLog(t *testing.T) {
	raw := logChunk("abc123", "alice", "2024-05-01T10:00:00+00:00", "feat: add parser",
		"10\t2\ta.py",
		"5\t0\tb.py") +
		logChunk("def456", "bob", "2024-05-02T11:30:00+02:00", "fix(core): null check",
			"1\t1\tc.py")

	commits := parseLog(raw)
	if len(commits) != 2 {
		t.Fatalf("len(commits) = %d, want 2", len(commits))
	}

	first := commits[0]
	if first.Hash != "abc123" || first.Author != "alice" {
		t.Errorf("meta = %+v", first)
	}
	if first.Message != "feat: add parser" || first.RawMessage != "feat: add parser" {
		t.Errorf("message = %q / %q", first.Message, first.RawMessage)
	}
	if first.Date.Year() != 2024 || first.Date.Month() != 5 {
		t.Errorf("date = %v", first.Date)
	}
	if first.Insertions != 15 || first.Deletions != 2 || first.Files != 2 {
		t.Errorf("stats = +%d -%d files=%d, want +15 -2 files=2",
			first.Insertions, first.Deletions, first.Files)
	}

	if commits[1].Hash != "def456" || commits[1].Files != 1 {
		t.Errorf("second commit = %+v", commits[1])
	}
}

func TestParseLogMalformedChunkSkipped(t *testing.T) {
	raw := commitBoundary + "\nabc123" + fieldBoundary + "alice\n" +
		logChunk("def456", "bob", "2024-05-02T11:30:00Z", "fix: ok")

	commits := parseLog(raw)
	if len(commits) != 1 {
		t.Fatalf("len(commits) = %d, want 1 (malformed chunk dropped)", len(commits))
	}
	if commits[0].Hash != "def456" {
		t.Errorf("surviving commit = %+v", commits[0])
	}
}

func TestParseLogBadDateSkipped(t *testing.T) {
	raw := logChunk("abc123", "alice", "yesterday", "feat: nope")
	if commits := parseLog(raw); len(commits) != 0 {
		t.Errorf("commits = %+v, want none", commits)
	}
}

func TestParseLogBinaryStats(t *testing.T) {
	raw := logChunk("abc123", "alice", "2024-05-01T10:00:00Z", "chore: add logo",
		"-\t-\tlogo.png",
		"3\t1\treadme.md")

	commits := parseLog(raw)
	if len(commits) != 1 {
		t.Fatalf("len(commits) = %d, want 1", len(commits))
	}
	c := commits[0]
	if c.Files != 2 {
		t.Errorf("Files = %d, want 2 (binary rows still count)", c.Files)
	}
	if c.Insertions != 3 || c.Deletions != 1 {
		t.Errorf("stats = +%d -%d, want +3 -1", c.Insertions, c.Deletions)
	}
}

func TestParseLogEmpty(t *testing.T) {
	if commits := parseLog(""); len(commits) != 0 {
		t.Errorf("commits = %+v, want none", commits)
	}
}
