package analyzer

import (
	"regexp"
	"strings"

	"github.com/lumenhq/lumen/pkg/lang"
	"github.com/lumenhq/lumen/pkg/models"
)

var (
	pyClassRe  = regexp.MustCompile(`^class\s+(\w+)(?:\(([^)]+)\))?\s*:`)
	pyFuncRe   = regexp.MustCompile(`^def\s+(\w+)\s*\(`)
	pyMethodRe = regexp.MustCompile(`^\s{4}def\s+(\w+)`)
)

// Method scanning stops after this many lines past the class declaration.
const methodScanWindow = 100

// indentScanner handles indentation-delimited languages.
type indentScanner struct{}

func (indentScanner) Scan(file string, lines []string, language lang.Language, opts StructureOptions) []models.Entity {
	var entities []models.Entity

	for i, line := range lines {
		lineNo := i + 1
		stripped := strings.TrimSpace(line)
		if stripped == "" || isCommentLine(stripped) {
			continue
		}

		if m := pyClassRe.FindStringSubmatch(stripped); m != nil {
			var bases []string
			if m[2] != "" {
				for _, b := range strings.Split(m[2], ",") {
					bases = append(bases, strings.TrimSpace(b))
				}
			}
			entities = append(entities, models.Entity{
				Name:      m[1],
				Kind:      models.KindClass,
				File:      file,
				Line:      lineNo,
				Language:  string(language),
				Bases:     bases,
				Methods:   pythonMethods(lines, lineNo),
				Docstring: pyDocstring(lines, lineNo),
				Snippet:   snippet(lines, lineNo, opts.SnippetLines),
			})
			continue
		}

		if m := pyFuncRe.FindStringSubmatch(stripped); m != nil {
			if isIndentedMethod(lines, i, line) {
				continue
			}
			entities = append(entities, models.Entity{
				Name:      m[1],
				Kind:      models.KindFunction,
				File:      file,
				Line:      lineNo,
				Language:  string(language),
				Docstring: pyDocstring(lines, lineNo),
				Snippet:   snippet(lines, lineNo, opts.SnippetLines),
			})
		}
	}
	return entities
}

// isIndentedMethod reports whether a def belongs to an enclosing class. A
// def declared at a non-zero indent whose body lines indent further is a
// method and is picked up by the class's own method scan instead.
func isIndentedMethod(lines []string, declIdx int, declLine string) bool {
	base := indentOf(declLine)
	if base == 0 {
		return false
	}
	for j := declIdx + 1; j < len(lines) && j <= declIdx+5; j++ {
		stripped := strings.TrimSpace(lines[j])
		if stripped == "" || strings.HasPrefix(stripped, "#") {
			continue
		}
		return indentOf(lines[j]) > base && !strings.HasPrefix(stripped, "def")
	}
	return false
}

// pythonMethods lists def names one indent level inside a class, scanning
// until indentation returns to the class's level or the window runs out.
func pythonMethods(lines []string, classLine int) []string {
	var methods []string
	if classLine > len(lines) {
		return methods
	}
	base := indentOf(lines[classLine-1])

	end := classLine + methodScanWindow
	if end > len(lines) {
		end = len(lines)
	}
	for i := classLine; i < end; i++ {
		stripped := strings.TrimSpace(lines[i])
		if stripped == "" {
			continue
		}
		if indentOf(lines[i]) <= base && !strings.HasPrefix(stripped, "#") {
			break
		}
		if m := pyMethodRe.FindStringSubmatch(lines[i]); m != nil {
			methods = append(methods, m[1])
		}
	}
	return methods
}
