package analyzer

import (
	"regexp"
	"sort"
	"strings"

	"github.com/hs979/mono2serverless/pkg/models"
	"github.com/hs979/mono2serverless/pkg/parser"
)

// jsSymbolPatterns is the ordered list of per-line regex families. The
// first match wins and a line yields at most one symbol.
var (
	jsFuncDecl     = regexp.MustCompile(`^\s*(?:export\s+)?(?:async\s+)?function\s+([A-Za-z0-9_$]+)\s*\(`)
	jsClassDecl    = regexp.MustCompile(`^\s*(?:export\s+)?class\s+([A-Za-z0-9_$]+)\b`)
	jsAssignedFunc = regexp.MustCompile(`^\s*(?:export\s+)?(?:const|let|var)\s+([A-Za-z0-9_$]+)\s*=\s*(?:async\s*)?(?:function\b|\([^)]*\)\s*=>|[A-Za-z0-9_$]+\s*=>)`)
	jsRouteCall    = regexp.MustCompile(`(?i)\b(?:app|router)\.(get|post|put|delete|patch)\s*\(\s*['"]([^'"]+)['"]`)
	jsEventCall    = regexp.MustCompile(`\b([A-Za-z0-9_$]+)\.on\s*\(\s*['"]([^'"]+)['"]`)
	jsExportAssign = regexp.MustCompile(`^\s*(?:module\.)?exports\.([A-Za-z0-9_$]+)\s*=\s*(?:async\s*)?(?:function\b|\()`)
	jsShorthand    = regexp.MustCompile(`^\s*(?:async\s+)?([A-Za-z_$][A-Za-z0-9_$]*)\s*\([^)]*\)\s*\{\s*$`)
)

// jsShorthandExclusions rejects control-flow shapes that the bare method
// shorthand regex would otherwise match. The heuristic can still misfire
// on call-argument shapes beyond this list; that tolerance is intentional.
var jsShorthandExclusions = map[string]bool{
	"if":       true,
	"else":     true,
	"for":      true,
	"while":    true,
	"switch":   true,
	"catch":    true,
	"do":       true,
	"try":      true,
	"function": true,
	"return":   true,
	"new":      true,
	"typeof":   true,
	"delete":   true,
	"void":     true,
	"await":    true,
	"yield":    true,
	"with":     true,
}

// jsDepPatterns union three independent families: require calls, from
// clauses, and side-effecting import statements.
var jsDepPatterns = []*regexp.Regexp{
	regexp.MustCompile(`require\(['"]([^'"]+)['"]\)`),
	regexp.MustCompile(`from\s+['"]([^'"]+)['"]`),
	regexp.MustCompile(`import\s+[^'"]+['"]([^'"]+)['"]`),
}

// jsEntryPointPattern is the simpler route regex used for EntryPoint
// records; it additionally captures the handler reference.
var jsEntryPointPattern = regexp.MustCompile(
	`(?i)\b(?:app|router)\.(get|post|put|delete|patch)\s*\(\s*['"]([^'"]+)['"]\s*,\s*([A-Za-z0-9_$.]+)`)

// JSExtractor extracts symbols, dependencies, and route entry points from
// JS-family sources with regex and brace-balance heuristics. No grammar
// is involved; spans are best-effort.
type JSExtractor struct {
	appPrefix    string
	maxBraceScan int
}

// NewJSExtractor creates a heuristic extractor for the JS family.
func NewJSExtractor(appPrefix string) *JSExtractor {
	return &JSExtractor{appPrefix: appPrefix, maxBraceScan: 1000}
}

// Close implements Extractor. The JS extractor holds no resources.
func (e *JSExtractor) Close() {}

// Extract implements Extractor.
func (e *JSExtractor) Extract(relPath string, source []byte) Extraction {
	text := string(source)
	module := symbolID(e.appPrefix, parser.ModulePath(relPath))
	lines := strings.Split(text, "\n")

	var symbols []models.Symbol
	for idx, line := range lines {
		name, kind := matchJSSymbol(line)
		if name == "" {
			continue
		}
		start := idx + 1
		symbols = append(symbols, models.Symbol{
			ID:        symbolID(module, name),
			FilePath:  relPath,
			StartLine: start,
			EndLine:   braceEndLine(lines, idx, e.maxBraceScan),
			Kind:      kind,
		})
	}

	deps := make(map[string]bool)
	for _, pat := range jsDepPatterns {
		for _, m := range pat.FindAllStringSubmatch(text, -1) {
			deps[m[1]] = true
		}
	}
	depList := make([]string, 0, len(deps))
	for d := range deps {
		depList = append(depList, d)
	}
	sort.Strings(depList)

	var entryPoints []models.EntryPoint
	for _, m := range jsEntryPointPattern.FindAllStringSubmatch(text, -1) {
		entryPoints = append(entryPoints, models.EntryPoint{
			File:    relPath,
			Method:  strings.ToUpper(m[1]),
			Path:    m[2],
			Handler: m[3],
		})
	}

	return Extraction{
		Symbols:      symbols,
		EntryPoints:  entryPoints,
		Dependencies: depList,
	}
}

// matchJSSymbol tries the ordered regex families against one line and
// returns the synthesized symbol name and kind, or empty on no match.
func matchJSSymbol(line string) (string, models.SymbolKind) {
	if m := jsFuncDecl.FindStringSubmatch(line); m != nil {
		return m[1], models.SymbolFunction
	}
	if m := jsClassDecl.FindStringSubmatch(line); m != nil {
		return m[1], models.SymbolClass
	}
	if m := jsAssignedFunc.FindStringSubmatch(line); m != nil {
		return m[1], models.SymbolFunction
	}
	if m := jsRouteCall.FindStringSubmatch(line); m != nil {
		return strings.ToUpper(m[1]) + "_" + sanitizeRoutePath(m[2]), models.SymbolRouteHandler
	}
	if m := jsEventCall.FindStringSubmatch(line); m != nil {
		return m[1] + "_on_" + m[2], models.SymbolEventHandler
	}
	if m := jsExportAssign.FindStringSubmatch(line); m != nil {
		return m[1], models.SymbolFunction
	}
	if m := jsShorthand.FindStringSubmatch(line); m != nil && !jsShorthandExclusions[m[1]] {
		return m[1], models.SymbolMethod
	}
	return "", ""
}

// sanitizeRoutePath turns a route path into an identifier fragment:
// slashes and colons become underscores.
func sanitizeRoutePath(path string) string {
	path = strings.TrimPrefix(path, "/")
	path = strings.ReplaceAll(path, "/", "_")
	path = strings.ReplaceAll(path, ":", "_")
	return path
}

// braceEndLine resolves a symbol's end line by counting braces from its
// start line, after stripping quoted and template-literal contents per
// line. The end line is where the running count first returns to zero
// after going positive. The opening brace may sit on a later line than
// the declaration. The scan is capped, defaulting to start+1 when
// unresolved. This is an explicitly approximate algorithm: regex literals
// containing braces can desynchronize it.
func braceEndLine(lines []string, startIdx, maxScan int) int {
	depth := 0
	opened := false

	limit := startIdx + maxScan
	if limit >= len(lines) {
		limit = len(lines) - 1
	}

	for i := startIdx; i <= limit; i++ {
		stripped := stripJSStrings(lines[i])
		for _, ch := range stripped {
			switch ch {
			case '{':
				depth++
				opened = true
			case '}':
				depth--
			}
		}
		if opened && depth <= 0 {
			return i + 1
		}
	}

	fallback := startIdx + 2
	if fallback > len(lines) {
		fallback = len(lines)
	}
	return fallback
}

// stripJSStrings removes the contents of single-quoted, double-quoted, and
// template-literal strings from one line so quoted braces do not skew the
// balance count.
func stripJSStrings(line string) string {
	var b strings.Builder
	var quote rune
	escaped := false

	for _, ch := range line {
		if quote != 0 {
			if escaped {
				escaped = false
				continue
			}
			switch ch {
			case '\\':
				escaped = true
			case quote:
				quote = 0
				b.WriteRune(ch)
			}
			continue
		}
		switch ch {
		case '\'', '"', '`':
			quote = ch
			b.WriteRune(ch)
		default:
			b.WriteRune(ch)
		}
	}
	return b.String()
}
