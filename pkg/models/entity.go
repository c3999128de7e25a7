package models

// EntityKind classifies a structural declaration.
type EntityKind string

const (
	KindClass         EntityKind = "class"
	KindFunction      EntityKind = "function"
	KindMethod        EntityKind = "method"
	KindArrowFunction EntityKind = "arrow_function"
	KindInterface     EntityKind = "interface"
	KindStruct        EntityKind = "struct"
	KindEnum          EntityKind = "enum"
)

// Entity is a declaration found by the heuristic structural scan. Complexity
// defaults to 0 and is filled when complexity metrics are joined in.
type Entity struct {
	Name       string     `json:"name"`
	Kind       EntityKind `json:"kind"`
	File       string     `json:"file"`
	Line       int        `json:"line"`
	Language   string     `json:"language"`
	Bases      []string   `json:"bases,omitempty"`
	Methods    []string   `json:"methods,omitempty"`
	Docstring  string     `json:"docstring,omitempty"`
	Snippet    string     `json:"snippet,omitempty"`
	IsTest     bool       `json:"is_test"`
	Complexity int        `json:"complexity"`
}
