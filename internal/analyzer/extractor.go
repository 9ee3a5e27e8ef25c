// Package analyzer implements per-file symbol extraction, file tagging,
// manifest parsing, store hints, and full-project report assembly.
package analyzer

import (
	"github.com/hs979/mono2serverless/pkg/models"
	"github.com/hs979/mono2serverless/pkg/parser"
)

// Extraction is the structural result of analyzing one source file.
type Extraction struct {
	Symbols      []models.Symbol
	EntryPoints  []models.EntryPoint
	Dependencies []string
}

// Extractor turns one source file into symbols, entry points, and raw
// dependency specifiers. Implementations are pure over (path, source);
// extraction failures degrade to an empty Extraction, never an error.
type Extractor interface {
	Extract(relPath string, source []byte) Extraction
	Close()
}

// ForStrategy returns the extractor for a strategy, or nil for unsupported
// files. The appPrefix namespaces symbol ids across independently scanned
// applications.
func ForStrategy(s parser.Strategy, appPrefix string) Extractor {
	switch s {
	case parser.StrategyPythonAST:
		return NewPythonExtractor(appPrefix)
	case parser.StrategyJSHeuristic:
		return NewJSExtractor(appPrefix)
	default:
		return nil
	}
}

// symbolID builds a dotted symbol id from its parts, skipping empties.
func symbolID(parts ...string) string {
	id := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if id != "" {
			id += "."
		}
		id += p
	}
	return id
}
