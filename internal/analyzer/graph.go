package analyzer

import (
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gonum.org/v1/gonum/graph/simple"

	"github.com/lumenhq/lumen/pkg/lang"
	"github.com/lumenhq/lumen/pkg/models"
)

// importPattern matches one import construct. moduleIdx/aliasIdx select
// capture groups; aliasIdx 0 means no alias group.
type importPattern struct {
	re        *regexp.Regexp
	kind      models.ImportKind
	moduleIdx int
	aliasIdx  int
}

var importPatterns = map[lang.Language][]importPattern{
	lang.LangPython: {
		{regexp.MustCompile(`^import\s+(\w+(?:\.\w+)*)\s+as\s+(\w+)`), models.ImportPlain, 1, 2},
		{regexp.MustCompile(`^from\s+(\w+(?:\.\w+)*)\s+import\s+.*\s+as\s+(\w+)`), models.ImportFrom, 1, 2},
		{regexp.MustCompile(`^import\s+(\w+(?:\.\w+)*)`), models.ImportPlain, 1, 0},
		{regexp.MustCompile(`^from\s+(\w+(?:\.\w+)*)\s+import`), models.ImportFrom, 1, 0},
	},
	lang.LangJavaScript: {
		{regexp.MustCompile(`^import\s+.*?\s+from\s+['"](\S+)['"]`), models.ImportPlain, 1, 0},
		{regexp.MustCompile(`^import\s+['"](\S+)['"]`), models.ImportPlain, 1, 0},
		{regexp.MustCompile(`^const\s+(\w+)\s*=\s*require\(['"](\S+)['"]`), models.ImportRequire, 2, 1},
		{regexp.MustCompile(`^require\(['"](\S+)['"]`), models.ImportRequire, 1, 0},
	},
	lang.LangTypeScript: {
		{regexp.MustCompile(`^import\s+.*?\s+from\s+['"](\S+)['"]`), models.ImportPlain, 1, 0},
		{regexp.MustCompile(`^import\s+['"](\S+)['"]`), models.ImportPlain, 1, 0},
		{regexp.MustCompile(`^require\(['"](\S+)['"]`), models.ImportRequire, 1, 0},
	},
	lang.LangRuby: {
		{regexp.MustCompile(`^\s*require(?:_relative)?\s+['"](\S+)['"]`), models.ImportRequire, 1, 0},
		{regexp.MustCompile(`^\s*include\s+(\w+)`), models.ImportInclude, 1, 0},
		{regexp.MustCompile(`^\s*extend\s+(\w+)`), models.ImportExtend, 1, 0},
	},
	lang.LangPHP: {
		{regexp.MustCompile(`^\s*require(?:_once)?\s*['"](\S+)['"]`), models.ImportRequire, 1, 0},
		{regexp.MustCompile(`^\s*include(?:_once)?\s*['"](\S+)['"]`), models.ImportInclude, 1, 0},
		{regexp.MustCompile(`^use\s+(\S+?)(?:\s+as\s+(\S+))?;`), models.ImportUse, 1, 2},
	},
	lang.LangCSharp: {
		{regexp.MustCompile(`^using\s+(\S+);`), models.ImportUsing, 1, 0},
	},
	lang.LangJava: {
		{regexp.MustCompile(`^import\s+static\s+(\S+);`), models.ImportPlain, 1, 0},
		{regexp.MustCompile(`^import\s+(\S+);`), models.ImportPlain, 1, 0},
	},
	lang.LangGo: {
		{regexp.MustCompile(`^\s*import\s*(?:\(\s*)?"([^"]+)"`), models.ImportPlain, 1, 0},
		{regexp.MustCompile(`^\s*"([^"]+)"$`), models.ImportPlain, 1, 0},
	},
	lang.LangRust: {
		{regexp.MustCompile(`^use\s+(\S+?)(?:\s+as\s+\S+)?;`), models.ImportUse, 1, 0},
		{regexp.MustCompile(`^extern\s+crate\s+(\S+)`), models.ImportExtern, 1, 0},
	},
	lang.LangKotlin: {
		{regexp.MustCompile(`^import\s+(\S+)`), models.ImportPlain, 1, 0},
	},
	lang.LangScala: {
		{regexp.MustCompile(`^import\s+(\S+)`), models.ImportPlain, 1, 0},
	},
}

// ExtractImports scans one file's lines for import statements. Comment
// lines are skipped; the first matching pattern per line wins.
func ExtractImports(file string, lines []string, language lang.Language) []models.Import {
	patterns, ok := importPatterns[language]
	if !ok {
		return nil
	}

	isTest := lang.IsTestFile(file)
	var imports []models.Import

	for i, line := range lines {
		stripped := strings.TrimSpace(line)
		if stripped == "" || isCommentLine(stripped) {
			continue
		}
		for _, p := range patterns {
			m := p.re.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			imp := models.Import{
				Module: m[p.moduleIdx],
				Line:   i + 1,
				Kind:   p.kind,
				IsTest: isTest,
			}
			if p.aliasIdx > 0 && p.aliasIdx < len(m) {
				imp.Alias = m[p.aliasIdx]
			}
			imports = append(imports, imp)
			break
		}
	}
	return imports
}

// GraphInput is one file handed to the graph builder.
type GraphInput struct {
	Path     string
	Lines    []string
	Language lang.Language
}

// BuildGraph assembles the file-level import graph. Edges point at raw
// module tokens; no resolution to in-tree files is attempted.
func BuildGraph(inputs []GraphInput) *models.DependencyGraph {
	g := models.NewDependencyGraph()
	external := make(map[string]struct{})

	for _, in := range inputs {
		imports := ExtractImports(in.Path, in.Lines, in.Language)
		g.AddNode(models.GraphNode{
			ID:          in.Path,
			Label:       filepath.Base(in.Path),
			Language:    string(in.Language),
			ImportCount: len(imports),
		})
		for _, imp := range imports {
			g.AddEdge(models.GraphEdge{
				From: in.Path,
				To:   imp.Module,
				Kind: imp.Kind,
				Line: imp.Line,
			})
			external[imp.Module] = struct{}{}
		}
	}

	for module := range external {
		g.ExternalModules = append(g.ExternalModules, module)
	}
	sort.Strings(g.ExternalModules)

	g.Summary = summarizeGraph(g)
	return g
}

// summarizeGraph computes aggregate statistics over the directed graph,
// counting module tokens as nodes alongside files.
func summarizeGraph(g *models.DependencyGraph) models.GraphSummary {
	dg := simple.NewDirectedGraph()
	ids := make(map[string]int64)

	nodeID := func(name string) int64 {
		if id, ok := ids[name]; ok {
			return id
		}
		n := dg.NewNode()
		dg.AddNode(n)
		ids[name] = n.ID()
		return n.ID()
	}

	for _, node := range g.Nodes {
		nodeID(node.ID)
	}
	edgeCount := 0
	for _, edge := range g.Edges {
		from, to := nodeID(edge.From), nodeID(edge.To)
		if from == to {
			continue
		}
		dg.SetEdge(dg.NewEdge(dg.Node(from), dg.Node(to)))
		edgeCount++
	}

	nodeCount := dg.Nodes().Len()
	summary := models.GraphSummary{
		TotalNodes: nodeCount,
		TotalEdges: len(g.Edges),
	}
	if nodeCount > 0 {
		summary.AvgDegree = float64(edgeCount) / float64(nodeCount)
	}
	if nodeCount > 1 {
		summary.Density = float64(edgeCount) / float64(nodeCount*(nodeCount-1))
	}
	return summary
}
