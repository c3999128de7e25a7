package analyzer

import (
	"reflect"
	"strings"
	"testing"

	"github.com/lumenhq/lumen/pkg/models"
)

func scanLines(src string) []string {
	return strings.Split(src, "\n")
}

func TestExtractStructurePythonClass(t *testing.T) {
	src := `class Greeter(Base):
    """Says hello."""

    def hello(self):
        return "hi"

    def goodbye(self):
        return "bye"
`
	entities := ExtractStructure("greeter.py", scanLines(src), DefaultStructureOptions())

	if len(entities) != 1 {
		t.Fatalf("len(entities) = %d, want 1", len(entities))
	}
	e := entities[0]
	if e.Kind != models.KindClass || e.Name != "Greeter" {
		t.Errorf("entity = %s %q, want class Greeter", e.Kind, e.Name)
	}
	if e.Line != 1 {
		t.Errorf("line = %d, want 1", e.Line)
	}
	if !reflect.DeepEqual(e.Bases, []string{"Base"}) {
		t.Errorf("bases = %v, want [Base]", e.Bases)
	}
	if !reflect.DeepEqual(e.Methods, []string{"hello", "goodbye"}) {
		t.Errorf("methods = %v, want [hello goodbye]", e.Methods)
	}
	if e.Docstring != "Says hello." {
		t.Errorf("docstring = %q", e.Docstring)
	}
}

func TestExtractStructurePythonFreeFunction(t *testing.T) {
	src := `def main():
    run()

class App:
    def run(self):
        pass
`
	entities := ExtractStructure("app.py", scanLines(src), DefaultStructureOptions())

	var names []string
	for _, e := range entities {
		names = append(names, string(e.Kind)+":"+e.Name)
	}
	want := []string{"function:main", "class:App"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("entities = %v, want %v", names, want)
	}

	// The method must appear only in the class's method list.
	if !reflect.DeepEqual(entities[1].Methods, []string{"run"}) {
		t.Errorf("App methods = %v, want [run]", entities[1].Methods)
	}
}

func TestExtractStructureIdempotent(t *testing.T) {
	src := `class A:
    def x(self):
        pass

def standalone():
    pass
`
	first := ExtractStructure("a.py", scanLines(src), DefaultStructureOptions())
	second := ExtractStructure("a.py", scanLines(src), DefaultStructureOptions())
	if !reflect.DeepEqual(first, second) {
		t.Errorf("extraction is not deterministic:\n%v\n%v", first, second)
	}
}

func TestExtractStructureScript(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		src      string
		wantKind models.EntityKind
		wantName string
	}{
		{
			name:     "es6 class",
			file:     "widget.js",
			src:      "export class Widget extends Base {\n}",
			wantKind: models.KindClass,
			wantName: "Widget",
		},
		{
			name:     "arrow function",
			file:     "handlers.js",
			src:      "const onClick = async (e) => {\n}",
			wantKind: models.KindArrowFunction,
			wantName: "onClick",
		},
		{
			name:     "function declaration",
			file:     "util.js",
			src:      "export async function fetchAll(page) {\n}",
			wantKind: models.KindFunction,
			wantName: "fetchAll",
		},
		{
			name:     "ts interface",
			file:     "types.ts",
			src:      "export interface Config {\n  name: string\n}",
			wantKind: models.KindInterface,
			wantName: "Config",
		},
		{
			name:     "ts enum",
			file:     "types.ts",
			src:      "export const enum Level {\n  Low,\n}",
			wantKind: models.KindEnum,
			wantName: "Level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entities := ExtractStructure(tt.file, scanLines(tt.src), DefaultStructureOptions())
			if len(entities) != 1 {
				t.Fatalf("len(entities) = %d, want 1", len(entities))
			}
			if entities[0].Kind != tt.wantKind || entities[0].Name != tt.wantName {
				t.Errorf("entity = %s %q, want %s %q",
					entities[0].Kind, entities[0].Name, tt.wantKind, tt.wantName)
			}
		})
	}
}

func TestExtractStructureBrace(t *testing.T) {
	src := `public abstract class Shape {
}

interface Drawable {
}

enum Color {
}
`
	entities := ExtractStructure("Shape.java", scanLines(src), DefaultStructureOptions())

	var got []string
	for _, e := range entities {
		got = append(got, string(e.Kind)+":"+e.Name)
	}
	want := []string{"class:Shape", "interface:Drawable", "enum:Color"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("entities = %v, want %v", got, want)
	}
}

func TestExtractStructureBraceFunctions(t *testing.T) {
	goSrc := "func Render(w io.Writer) error {\n\treturn nil\n}\n"
	entities := ExtractStructure("render.go", scanLines(goSrc), DefaultStructureOptions())
	if len(entities) != 1 || entities[0].Kind != models.KindMethod || entities[0].Name != "Render" {
		t.Fatalf("go entities = %+v, want method Render", entities)
	}

	rustSrc := "fn parse(input: &str) -> Token {\n}\n"
	entities = ExtractStructure("parse.rs", scanLines(rustSrc), DefaultStructureOptions())
	if len(entities) != 1 || entities[0].Kind != models.KindMethod || entities[0].Name != "parse" {
		t.Fatalf("rust entities = %+v, want method parse", entities)
	}
}

func TestExtractStructureTestFileFlag(t *testing.T) {
	src := "def test_thing():\n    pass\n"
	entities := ExtractStructure("test_thing.py", scanLines(src), DefaultStructureOptions())
	if len(entities) != 1 || !entities[0].IsTest {
		t.Fatalf("entities = %+v, want one test-flagged entity", entities)
	}
}

func TestExtractStructureUnsupportedLanguage(t *testing.T) {
	entities := ExtractStructure("notes.md", scanLines("# heading\n"), DefaultStructureOptions())
	if entities != nil {
		t.Errorf("entities = %v, want nil", entities)
	}
}

func TestSnippetTermination(t *testing.T) {
	src := `class A:
    def x(self):
        pass

def other():
    pass
`
	lines := scanLines(src)

	got := snippet(lines, 1, 20)
	want := "class A:\n    def x(self):\n        pass\n"
	if got != want {
		t.Errorf("snippet = %q, want %q", got, want)
	}

	if s := snippet(lines, 1, 0); s != "" {
		t.Errorf("disabled snippet = %q, want empty", s)
	}
}

func TestSnippetWindowBound(t *testing.T) {
	var b strings.Builder
	b.WriteString("def big():\n")
	for i := 0; i < 60; i++ {
		b.WriteString("    x = 1\n")
	}
	lines := scanLines(b.String())

	short := snippet(lines, 1, 20)
	if n := len(strings.Split(short, "\n")); n != 20 {
		t.Errorf("short snippet lines = %d, want 20", n)
	}
	long := snippet(lines, 1, 50)
	if n := len(strings.Split(long, "\n")); n != 50 {
		t.Errorf("long snippet lines = %d, want 50", n)
	}
}
