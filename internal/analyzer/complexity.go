package analyzer

import (
	"regexp"
	"strings"

	"github.com/lumenhq/lumen/pkg/models"
)

// Decision-point patterns scanned case-insensitively over comment-stripped
// text. Each match adds one to the cyclomatic count.
var complexityRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bif\b`),
	regexp.MustCompile(`(?i)\belseif\b`),
	regexp.MustCompile(`(?i)\belse\b`),
	regexp.MustCompile(`(?i)\bfor\b`),
	regexp.MustCompile(`(?i)\bwhile\b`),
	regexp.MustCompile(`(?i)\bdo\b`),
	regexp.MustCompile(`(?i)\bswitch\b`),
	regexp.MustCompile(`(?i)\bcase\b`),
	regexp.MustCompile(`(?i)\bcatch\b`),
	regexp.MustCompile(`\b\?\s*.*\s*:`),
	regexp.MustCompile(`\b&&`),
	regexp.MustCompile(`\b\|\|`),
	regexp.MustCompile(`(?i)\band\b`),
	regexp.MustCompile(`(?i)\bor\b`),
}

var (
	hashCommentRe  = regexp.MustCompile(`(?m)#.*$`)
	slashCommentRe = regexp.MustCompile(`(?m)//.*$`)
	blockCommentRe = regexp.MustCompile(`(?s)/\*.*?\*/`)
	htmlCommentRe  = regexp.MustCompile(`(?s)<!--.*?-->`)

	funcCountRe  = regexp.MustCompile(`(?:function|def|func|fn|method|void|public|private|protected)\s+\w+`)
	classCountRe = regexp.MustCompile(`(?:class|interface|struct|enum)\s+\w+`)
)

// CyclomaticComplexity counts decision points in a code block, starting
// from a base of 1.
func CyclomaticComplexity(code string) int {
	complexity := 1
	for _, re := range complexityRes {
		complexity += len(re.FindAllStringIndex(code, -1))
	}
	return complexity
}

// MaintainabilityIndex computes a simplified 0-100 maintainability score.
// Higher is better; an empty file scores 100.
func MaintainabilityIndex(loc, complexity, comments int) float64 {
	if loc == 0 {
		return 100.0
	}
	sloc := loc - comments
	if sloc < 1 {
		sloc = 1
	}
	mi := 171 - 5.2*float64(complexity) - 0.23*float64(complexity) - 16.2*float64(sloc)/100
	if mi < 0 {
		mi = 0
	}
	scaled := mi * 100 / 171
	if scaled > 100 {
		scaled = 100
	}
	return scaled
}

// stripComments removes line, block, and markup comments.
func stripComments(code string) string {
	code = hashCommentRe.ReplaceAllString(code, "")
	code = slashCommentRe.ReplaceAllString(code, "")
	code = blockCommentRe.ReplaceAllString(code, "")
	return htmlCommentRe.ReplaceAllString(code, "")
}

// AnalyzeComplexity computes per-file metrics from raw lines.
func AnalyzeComplexity(path string, lines []string) models.FileMetrics {
	code := strings.Join(lines, "\n")

	commentLines := 0
	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		if isCommentLine(stripped) ||
			(strings.HasPrefix(stripped, "/*") && strings.HasSuffix(stripped, "*/")) {
			commentLines++
		}
	}

	totalLines := len(lines)
	sourceLines := totalLines - commentLines
	complexity := CyclomaticComplexity(stripComments(code))
	functions := len(funcCountRe.FindAllStringIndex(code, -1))

	m := models.FileMetrics{
		Path:                 path,
		Lines:                totalLines,
		SourceLines:          sourceLines,
		CommentLines:         commentLines,
		Functions:            functions,
		Classes:              len(classCountRe.FindAllStringIndex(code, -1)),
		Complexity:           complexity,
		MaintainabilityIndex: MaintainabilityIndex(totalLines, complexity, commentLines),
	}
	if functions > 0 {
		m.ComplexityPerFunction = float64(complexity) / float64(functions)
	}
	return m
}
