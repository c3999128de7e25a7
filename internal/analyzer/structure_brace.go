package analyzer

import (
	"regexp"
	"strings"

	"github.com/lumenhq/lumen/pkg/lang"
	"github.com/lumenhq/lumen/pkg/models"
)

var braceDeclRe = regexp.MustCompile(`^(?:public\s+)?(?:static\s+)?(?:abstract\s+)?(class|interface|struct|enum)\s+(\w+)`)

// Standalone function patterns tried in order when no type declaration
// matched on the line.
var braceFuncRes = []*regexp.Regexp{
	regexp.MustCompile(`^(?:public|private|protected|static|async)\s+.*?\s+(\w+)\s*\(`),
	regexp.MustCompile(`^fn\s+(\w+)`),
	regexp.MustCompile(`^func\s+(\w+)`),
}

// braceScanner handles C-family, JVM, Rust, and Go sources.
type braceScanner struct{}

func (braceScanner) Scan(file string, lines []string, language lang.Language, opts StructureOptions) []models.Entity {
	var entities []models.Entity

	for i, line := range lines {
		lineNo := i + 1
		stripped := strings.TrimSpace(line)
		if stripped == "" || isCommentLine(stripped) {
			continue
		}

		if m := braceDeclRe.FindStringSubmatch(stripped); m != nil {
			entities = append(entities, models.Entity{
				Name:      m[2],
				Kind:      declKind(m[1]),
				File:      file,
				Line:      lineNo,
				Language:  string(language),
				Docstring: jsDocstring(lines, lineNo),
				Snippet:   snippet(lines, lineNo, opts.SnippetLines),
			})
			continue
		}

		for _, re := range braceFuncRes {
			if m := re.FindStringSubmatch(stripped); m != nil {
				entities = append(entities, models.Entity{
					Name:     m[1],
					Kind:     models.KindMethod,
					File:     file,
					Line:     lineNo,
					Language: string(language),
					Snippet:  snippet(lines, lineNo, opts.SnippetLines),
				})
				break
			}
		}
	}
	return entities
}

func declKind(keyword string) models.EntityKind {
	switch keyword {
	case "interface":
		return models.KindInterface
	case "struct":
		return models.KindStruct
	case "enum":
		return models.KindEnum
	default:
		return models.KindClass
	}
}
