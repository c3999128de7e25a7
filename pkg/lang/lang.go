// Package lang maps file extensions to languages and groups languages into
// syntactic families used by the heuristic analyzers.
package lang

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Language identifies a programming or markup language.
type Language string

const (
	LangPython     Language = "python"
	LangRuby       Language = "ruby"
	LangPerl       Language = "perl"
	LangLua        Language = "lua"
	LangElixir     Language = "elixir"
	LangHaskell    Language = "haskell"
	LangErlang     Language = "erlang"
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
	LangVue        Language = "vue"
	LangSvelte     Language = "svelte"
	LangHTML       Language = "html"
	LangCSS        Language = "css"
	LangPHP        Language = "php"
	LangJava       Language = "java"
	LangKotlin     Language = "kotlin"
	LangScala      Language = "scala"
	LangGroovy     Language = "groovy"
	LangClojure    Language = "clojure"
	LangC          Language = "c"
	LangCPP        Language = "cpp"
	LangCSharp     Language = "csharp"
	LangSwift      Language = "swift"
	LangObjC       Language = "objective-c"
	LangGo         Language = "go"
	LangRust       Language = "rust"
	LangZig        Language = "zig"
	LangNim        Language = "nim"
	LangCrystal    Language = "crystal"
	LangOCaml      Language = "ocaml"
	LangFSharp     Language = "fsharp"
	LangShell      Language = "shell"
	LangYAML       Language = "yaml"
	LangJSON       Language = "json"
	LangXML        Language = "xml"
	LangTOML       Language = "toml"
	LangSQL        Language = "sql"
	LangMarkdown   Language = "markdown"
	LangTerraform  Language = "terraform"
	LangDockerfile Language = "dockerfile"
	LangGraphQL    Language = "graphql"
	LangProtobuf   Language = "protobuf"
	LangDart       Language = "dart"
	LangUnknown    Language = ""
)

// Family groups languages that share a block syntax. The structural
// extractor picks its scanning strategy by family.
type Family int

const (
	FamilyNone   Family = iota // data, markup, config
	FamilyIndent               // indentation-delimited blocks
	FamilyBrace                // brace-delimited blocks
	FamilyScript               // web scripting (JS/TS dialects)
)

// extensions maps a lowercase file extension to its language.
var extensions = map[string]Language{
	".py": LangPython, ".rb": LangRuby, ".pl": LangPerl, ".lua": LangLua,
	".ex": LangElixir, ".exs": LangElixir, ".hs": LangHaskell, ".lhs": LangHaskell,
	".erl": LangErlang,

	".js": LangJavaScript, ".jsx": LangJavaScript,
	".ts": LangTypeScript, ".tsx": LangTypeScript,
	".vue": LangVue, ".svelte": LangSvelte,
	".html": LangHTML, ".htm": LangHTML,
	".css": LangCSS, ".scss": LangCSS, ".sass": LangCSS, ".less": LangCSS,
	".php": LangPHP,

	".java": LangJava, ".kt": LangKotlin, ".kts": LangKotlin,
	".scala": LangScala, ".groovy": LangGroovy,
	".clj": LangClojure, ".cljs": LangClojure,

	".c": LangC, ".cpp": LangCPP, ".cxx": LangCPP, ".cc": LangCPP,
	".h": LangCPP, ".hpp": LangCPP, ".hxx": LangCPP,
	".cs": LangCSharp, ".swift": LangSwift,
	".m": LangObjC, ".mm": LangObjC,

	".go": LangGo, ".rs": LangRust, ".zig": LangZig, ".nim": LangNim,
	".cr": LangCrystal, ".ml": LangOCaml, ".mli": LangOCaml,
	".fs": LangFSharp, ".fsi": LangFSharp,

	".sh": LangShell, ".bash": LangShell, ".zsh": LangShell, ".fish": LangShell,
	".yaml": LangYAML, ".yml": LangYAML, ".json": LangJSON, ".xml": LangXML,
	".toml": LangTOML, ".hcl": LangTerraform, ".tf": LangTerraform,
	".dockerfile": LangDockerfile,

	".sql": LangSQL, ".md": LangMarkdown,
	".graphql": LangGraphQL, ".proto": LangProtobuf, ".dart": LangDart,
}

// families maps languages to their structural family. Languages absent here
// get FamilyNone and are skipped by the structural extractor.
var families = map[Language]Family{
	LangPython: FamilyIndent,

	LangJavaScript: FamilyScript,
	LangTypeScript: FamilyScript,

	LangJava:   FamilyBrace,
	LangCPP:    FamilyBrace,
	LangC:      FamilyBrace,
	LangCSharp: FamilyBrace,
	LangGo:     FamilyBrace,
	LangRust:   FamilyBrace,
	LangKotlin: FamilyBrace,
	LangScala:  FamilyBrace,
}

// Detect returns the language for a path based on its extension.
func Detect(path string) Language {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" && strings.EqualFold(filepath.Base(path), "dockerfile") {
		return LangDockerfile
	}
	return extensions[ext]
}

// FamilyOf returns the structural family for a language.
func FamilyOf(l Language) Family {
	return families[l]
}

// SupportsStructure reports whether the structural extractor has a scanning
// strategy for the language.
func SupportsStructure(l Language) bool {
	return families[l] != FamilyNone
}

// IsCode reports whether the extension maps to a known language.
func IsCode(path string) bool {
	return Detect(path) != LangUnknown
}

var testPatterns = []*regexp.Regexp{
	regexp.MustCompile(`test_.*\.py$`),
	regexp.MustCompile(`.*_test\.py$`),
	regexp.MustCompile(`.*_test\.go$`),
	regexp.MustCompile(`.*\.spec\.(js|ts|jsx|tsx)$`),
	regexp.MustCompile(`.*\.test\.(js|ts|jsx|tsx)$`),
	regexp.MustCompile(`__tests__/.*\.(js|ts|jsx|tsx|py|java)$`),
	regexp.MustCompile(`tests/.*\.(js|ts|jsx|tsx|py|java)$`),
	regexp.MustCompile(`.*_spec\.(rb|js|ts)$`),
	regexp.MustCompile(`.*_tests\.(php|rb)$`),
	regexp.MustCompile(`.*\.test\.py$`),
	regexp.MustCompile(`.*\.spec\.py$`),
}

// IsTestFile reports whether a path looks like a test file by naming
// convention.
func IsTestFile(path string) bool {
	normalized := filepath.ToSlash(path)
	for _, p := range testPatterns {
		if p.MatchString(normalized) {
			return true
		}
	}
	return false
}
