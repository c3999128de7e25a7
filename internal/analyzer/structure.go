package analyzer

import (
	"regexp"
	"strings"

	"github.com/lumenhq/lumen/pkg/lang"
	"github.com/lumenhq/lumen/pkg/models"
)

// familyScanner is the capability interface for one language family. It is
// a line-oriented heuristic, not a parser; a syntax-aware backend can be
// registered per family without changing callers.
type familyScanner interface {
	Scan(file string, lines []string, language lang.Language, opts StructureOptions) []models.Entity
}

// StructureOptions controls entity extraction.
type StructureOptions struct {
	// SnippetLines bounds the captured snippet window. Zero disables
	// snippet capture.
	SnippetLines int
}

// DefaultStructureOptions uses the short snippet window.
func DefaultStructureOptions() StructureOptions {
	return StructureOptions{SnippetLines: 20}
}

var familyScanners = map[lang.Family]familyScanner{
	lang.FamilyIndent: indentScanner{},
	lang.FamilyScript: scriptScanner{},
	lang.FamilyBrace:  braceScanner{},
}

// ExtractStructure scans one file's lines for declarations. Unsupported
// languages yield no entities.
func ExtractStructure(file string, lines []string, opts StructureOptions) []models.Entity {
	language := lang.Detect(file)
	scanner, ok := familyScanners[lang.FamilyOf(language)]
	if !ok {
		return nil
	}

	entities := scanner.Scan(file, lines, language, opts)

	isTest := lang.IsTestFile(file)
	for i := range entities {
		entities[i].IsTest = isTest
	}
	return entities
}

// isCommentLine reports whether a stripped line is comment-only.
func isCommentLine(stripped string) bool {
	return strings.HasPrefix(stripped, "#") ||
		strings.HasPrefix(stripped, "//") ||
		strings.HasPrefix(stripped, "*")
}

// indentOf counts leading whitespace columns.
func indentOf(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}

// snippet collects up to maxLines starting at the 1-based declaration
// line, stopping at the first blank or dedented non-comment non-decorator
// line after the declaration.
func snippet(lines []string, startLine, maxLines int) string {
	if maxLines <= 0 || startLine > len(lines) {
		return ""
	}

	var out []string
	end := startLine - 1 + maxLines
	if end > len(lines) {
		end = len(lines)
	}
	for i := startLine - 1; i < end; i++ {
		out = append(out, strings.TrimRight(lines[i], " \t\r"))
		if i == startLine-1 {
			continue
		}
		stripped := strings.TrimSpace(lines[i])
		dedented := !isCommentLine(stripped) &&
			!strings.HasPrefix(lines[i], "    ") &&
			!strings.HasPrefix(lines[i], "\t")
		if (stripped == "" || dedented) && !strings.HasPrefix(stripped, "@") {
			break
		}
	}
	return strings.Join(out, "\n")
}

var jsDocRe = regexp.MustCompile(`/\*\*(.*?)\*/`)

// jsDocstring extracts a one-line /** ... */ block from the declaration
// line itself.
func jsDocstring(lines []string, line int) string {
	if line > len(lines) {
		return ""
	}
	if m := jsDocRe.FindStringSubmatch(lines[line-1]); m != nil {
		return strings.TrimSpace(strings.ReplaceAll(m[1], "*", ""))
	}
	return ""
}

// pyDocstring extracts a same-line triple-quoted docstring from the line
// following the declaration.
func pyDocstring(lines []string, declLine int) string {
	if declLine >= len(lines) {
		return ""
	}
	next := strings.TrimSpace(lines[declLine])
	for _, marker := range []string{`"""`, `'''`} {
		if strings.HasPrefix(next, marker) && strings.HasSuffix(next, marker) && len(next) >= 2*len(marker) {
			return strings.TrimSpace(next[len(marker) : len(next)-len(marker)])
		}
	}
	return ""
}
