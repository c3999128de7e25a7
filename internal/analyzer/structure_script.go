package analyzer

import (
	"regexp"
	"strings"

	"github.com/lumenhq/lumen/pkg/lang"
	"github.com/lumenhq/lumen/pkg/models"
)

var (
	jsClassRe = regexp.MustCompile(`^(?:export\s+)?(?:abstract\s+)?class\s+(\w+)(?:\s+extends\s+(\w+))?`)
	jsArrowRe = regexp.MustCompile(`^(?:const|let|var|export\s+(?:const|let|var))?\s*(\w+)\s*=\s*(?:async\s*)?\([^)]*\)\s*=>`)
	jsFuncRe  = regexp.MustCompile(`^(?:export\s+)?(?:async\s+)?function\s+(\w+)`)
	tsIfaceRe = regexp.MustCompile(`^(?:export\s+)?interface\s+(\w+)`)
	tsEnumRe  = regexp.MustCompile(`^(?:export\s+)?(?:const\s+)?enum\s+(\w+)`)
)

// scriptScanner handles the JS/TS dialects.
type scriptScanner struct{}

func (scriptScanner) Scan(file string, lines []string, language lang.Language, opts StructureOptions) []models.Entity {
	var entities []models.Entity

	for i, line := range lines {
		lineNo := i + 1
		stripped := strings.TrimSpace(line)
		if stripped == "" || isCommentLine(stripped) {
			continue
		}

		if m := jsClassRe.FindStringSubmatch(stripped); m != nil {
			e := models.Entity{
				Name:      m[1],
				Kind:      models.KindClass,
				File:      file,
				Line:      lineNo,
				Language:  string(language),
				Docstring: jsDocstring(lines, lineNo),
				Snippet:   snippet(lines, lineNo, opts.SnippetLines),
			}
			if m[2] != "" {
				e.Bases = []string{m[2]}
			}
			entities = append(entities, e)
			continue
		}

		if language == lang.LangTypeScript {
			if m := tsIfaceRe.FindStringSubmatch(stripped); m != nil {
				entities = append(entities, models.Entity{
					Name:     m[1],
					Kind:     models.KindInterface,
					File:     file,
					Line:     lineNo,
					Language: string(language),
					Snippet:  snippet(lines, lineNo, opts.SnippetLines),
				})
				continue
			}
			if m := tsEnumRe.FindStringSubmatch(stripped); m != nil {
				entities = append(entities, models.Entity{
					Name:     m[1],
					Kind:     models.KindEnum,
					File:     file,
					Line:     lineNo,
					Language: string(language),
					Snippet:  snippet(lines, lineNo, opts.SnippetLines),
				})
				continue
			}
		}

		if m := jsArrowRe.FindStringSubmatch(stripped); m != nil {
			entities = append(entities, models.Entity{
				Name:     m[1],
				Kind:     models.KindArrowFunction,
				File:     file,
				Line:     lineNo,
				Language: string(language),
				Snippet:  snippet(lines, lineNo, opts.SnippetLines),
			})
			continue
		}

		if m := jsFuncRe.FindStringSubmatch(stripped); m != nil {
			entities = append(entities, models.Entity{
				Name:     m[1],
				Kind:     models.KindFunction,
				File:     file,
				Line:     lineNo,
				Language: string(language),
				Snippet:  snippet(lines, lineNo, opts.SnippetLines),
			})
		}
	}
	return entities
}
