package models

// GraphNode is a file node in the dependency graph.
type GraphNode struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Language    string `json:"language"`
	ImportCount int    `json:"import_count"`
}

// ImportKind is the syntactic form of an import statement.
type ImportKind string

const (
	ImportPlain   ImportKind = "import"
	ImportFrom    ImportKind = "from"
	ImportRequire ImportKind = "require"
	ImportInclude ImportKind = "include"
	ImportExtend  ImportKind = "extend"
	ImportUse     ImportKind = "use"
	ImportUsing   ImportKind = "using"
	ImportExtern  ImportKind = "extern"
)

// GraphEdge records one import found in a file. To holds the raw module
// token as written in the source; no resolution is attempted.
type GraphEdge struct {
	From string     `json:"from"`
	To   string     `json:"to"`
	Kind ImportKind `json:"kind"`
	Line int        `json:"line"`
}

// Import is a single import statement found in one file.
type Import struct {
	Module string     `json:"module"`
	Alias  string     `json:"alias,omitempty"`
	Line   int        `json:"line"`
	Kind   ImportKind `json:"kind"`
	IsTest bool       `json:"is_test"`
}

// DependencyGraph is the file-level import graph plus the deduplicated set
// of external module tokens.
type DependencyGraph struct {
	Nodes           []GraphNode  `json:"nodes"`
	Edges           []GraphEdge  `json:"edges"`
	ExternalModules []string     `json:"external_modules"`
	Summary         GraphSummary `json:"summary"`
}

// GraphSummary holds aggregate graph statistics.
type GraphSummary struct {
	TotalNodes int     `json:"total_nodes"`
	TotalEdges int     `json:"total_edges"`
	AvgDegree  float64 `json:"avg_degree"`
	Density    float64 `json:"density"`
}

// NewDependencyGraph creates an empty graph.
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		Nodes:           make([]GraphNode, 0),
		Edges:           make([]GraphEdge, 0),
		ExternalModules: make([]string, 0),
	}
}

// AddNode appends a node to the graph.
func (g *DependencyGraph) AddNode(node GraphNode) {
	g.Nodes = append(g.Nodes, node)
}

// AddEdge appends an edge to the graph.
func (g *DependencyGraph) AddEdge(edge GraphEdge) {
	g.Edges = append(g.Edges, edge)
}

// ToMermaid renders the graph as Mermaid diagram syntax.
func (g *DependencyGraph) ToMermaid() string {
	result := "graph TD\n"
	for _, node := range g.Nodes {
		label := node.Label
		if label == "" {
			label = node.ID
		}
		result += "    " + sanitizeMermaidID(node.ID) + "[\"" + label + "\"]\n"
	}
	for _, edge := range g.Edges {
		result += "    " + sanitizeMermaidID(edge.From) + " --> " + sanitizeMermaidID(edge.To) + "\n"
	}
	return result
}

// sanitizeMermaidID makes an ID safe for Mermaid.
func sanitizeMermaidID(id string) string {
	out := make([]rune, 0, len(id))
	for _, c := range id {
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' {
			out = append(out, c)
		} else {
			out = append(out, '_')
		}
	}
	return string(out)
}
