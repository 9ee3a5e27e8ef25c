// Package parser wraps tree-sitter for Python parsing and routes every
// scanned file to an analysis strategy and a frontend/backend role.
package parser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// Language represents a recognized source language.
type Language string

const (
	LangPython     Language = "python"
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
	LangJSX        Language = "jsx"
	LangTSX        Language = "tsx"
	LangVue        Language = "vue"
	LangUnknown    Language = "unknown"
)

// Strategy selects how a file's symbols are extracted. Python gets a real
// grammar; the JS family gets regex heuristics.
type Strategy string

const (
	StrategyPythonAST   Strategy = "python-ast"
	StrategyJSHeuristic Strategy = "js-heuristic"
	StrategyUnsupported Strategy = "unsupported"
)

// DetectLanguage determines the language from a file path.
func DetectLanguage(path string) Language {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".py", ".pyw", ".pyi":
		return LangPython
	case ".js", ".mjs", ".cjs":
		return LangJavaScript
	case ".ts":
		return LangTypeScript
	case ".jsx":
		return LangJSX
	case ".tsx":
		return LangTSX
	case ".vue":
		return LangVue
	default:
		return LangUnknown
	}
}

// StrategyFor maps a language to its extraction strategy.
func StrategyFor(lang Language) Strategy {
	switch lang {
	case LangPython:
		return StrategyPythonAST
	case LangJavaScript, LangTypeScript, LangJSX, LangTSX, LangVue:
		return StrategyJSHeuristic
	default:
		return StrategyUnsupported
	}
}

// frontendDirs are conventional UI-root directory names. A file under any
// of them is treated as frontend regardless of extension.
var frontendDirs = map[string]bool{
	"frontend": true,
	"client":   true,
	"web":      true,
	"ui":       true,
	"public":   true,
	"static":   true,
}

// frontendExts are UI-component-only extensions. Files with these are
// frontend regardless of directory.
var frontendExts = map[string]bool{
	".jsx": true,
	".tsx": true,
	".vue": true,
}

// RegisterFrontendDirs adds directory names to the frontend set. Call
// during startup, before any concurrent analysis begins.
func RegisterFrontendDirs(dirs ...string) {
	for _, d := range dirs {
		if d != "" {
			frontendDirs[strings.ToLower(d)] = true
		}
	}
}

// IsFrontend reports whether a relative posix path plays a frontend role.
// This axis drives tagging and chunking, not extractor choice.
func IsFrontend(relPath string) bool {
	if frontendExts[strings.ToLower(filepath.Ext(relPath))] {
		return true
	}
	parts := strings.Split(relPath, "/")
	for _, part := range parts[:max(len(parts)-1, 0)] {
		if frontendDirs[strings.ToLower(part)] {
			return true
		}
	}
	return false
}

// ModulePath converts a relative posix path to a dotted module path:
// "src/app/routes.py" becomes "src.app.routes".
func ModulePath(relPath string) string {
	ext := filepath.Ext(relPath)
	trimmed := strings.TrimSuffix(relPath, ext)
	return strings.ReplaceAll(trimmed, "/", ".")
}

// Parser wraps a tree-sitter parser configured for Python. Instances are
// not safe for concurrent use; create one per worker.
type Parser struct {
	parser *sitter.Parser
}

// ParseResult contains the parsed AST and its source.
type ParseResult struct {
	Tree   *sitter.Tree
	Source []byte
	Path   string
}

// New creates a Python parser instance.
func New() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(python.GetLanguage())
	return &Parser{parser: p}
}

// Parse parses Python source code.
func (p *Parser) Parse(source []byte, path string) (*ParseResult, error) {
	tree, err := p.parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &ParseResult{Tree: tree, Source: source, Path: path}, nil
}

// ParseFile reads and parses a Python file.
func (p *Parser) ParseFile(path string) (*ParseResult, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return p.Parse(source, path)
}

// Close releases parser resources.
func (p *Parser) Close() {
	p.parser.Close()
}

// NodeVisitor is a function that visits AST nodes. Returning false stops
// descent into the node's children.
type NodeVisitor func(node *sitter.Node, source []byte) bool

// Walk traverses the AST calling visitor for each node.
func Walk(node *sitter.Node, source []byte, visitor NodeVisitor) {
	if node == nil {
		return
	}
	if !visitor(node, source) {
		return
	}
	for i := range int(node.ChildCount()) {
		Walk(node.Child(i), source, visitor)
	}
}

// GetNodeText extracts the source text for a node.
func GetNodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	start := node.StartByte()
	end := node.EndByte()
	if start > end || end > uint32(len(source)) {
		return ""
	}
	return string(source[start:end])
}
