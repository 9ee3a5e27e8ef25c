package analyzer

import (
	"sort"
	"strings"

	"github.com/hs979/mono2serverless/pkg/models"
	"github.com/hs979/mono2serverless/pkg/parser"
	sitter "github.com/smacker/go-tree-sitter"
)

// pyRouteVerbs are the decorator attribute names recognized as direct
// HTTP verb registrations (FastAPI style).
var pyRouteVerbs = map[string]bool{
	"get":    true,
	"post":   true,
	"put":    true,
	"delete": true,
	"patch":  true,
}

// PythonExtractor extracts symbols, imports, and route entry points from
// Python sources using a real grammar. A file that fails to parse yields
// an empty Extraction; it is never dropped from the run.
type PythonExtractor struct {
	appPrefix string
	parser    *parser.Parser
}

// NewPythonExtractor creates a grammar-based Python extractor. Not safe
// for concurrent use; create one per worker.
func NewPythonExtractor(appPrefix string) *PythonExtractor {
	return &PythonExtractor{
		appPrefix: appPrefix,
		parser:    parser.New(),
	}
}

// Close releases the underlying parser.
func (e *PythonExtractor) Close() {
	e.parser.Close()
}

// Extract implements Extractor.
func (e *PythonExtractor) Extract(relPath string, source []byte) Extraction {
	result, err := e.parser.Parse(source, relPath)
	if err != nil || result.Tree == nil {
		return Extraction{}
	}

	root := result.Tree.RootNode()
	if root.HasError() {
		// Syntax error: no structural data, tags are still computed upstream.
		return Extraction{}
	}

	st := &pyWalk{
		relPath: relPath,
		module:  symbolID(e.appPrefix, parser.ModulePath(relPath)),
		source:  source,
		deps:    make(map[string]bool),
	}
	st.visit(root)

	deps := make([]string, 0, len(st.deps))
	for d := range st.deps {
		deps = append(deps, d)
	}
	sort.Strings(deps)

	return Extraction{
		Symbols:      st.symbols,
		EntryPoints:  st.entryPoints,
		Dependencies: deps,
	}
}

type pyWalk struct {
	relPath     string
	module      string
	source      []byte
	deps        map[string]bool
	symbols     []models.Symbol
	entryPoints []models.EntryPoint
}

func (st *pyWalk) visit(node *sitter.Node) {
	switch node.Type() {
	case "import_statement":
		st.importNames(node)
	case "import_from_statement":
		st.importFrom(node)
	case "decorated_definition":
		def := node.ChildByFieldName("definition")
		if def == nil {
			return
		}
		switch def.Type() {
		case "function_definition":
			st.function(def, st.decorators(node), "")
		case "class_definition":
			st.class(def)
		}
	case "function_definition":
		st.function(node, nil, "")
	case "class_definition":
		st.class(node)
	default:
		for i := range int(node.NamedChildCount()) {
			st.visit(node.NamedChild(i))
		}
	}
}

// importNames records plain imports: "import a.b, c" adds a.b and c.
func (st *pyWalk) importNames(node *sitter.Node) {
	for i := range int(node.NamedChildCount()) {
		child := node.NamedChild(i)
		switch child.Type() {
		case "dotted_name":
			st.deps[parser.GetNodeText(child, st.source)] = true
		case "aliased_import":
			if name := child.ChildByFieldName("name"); name != nil {
				st.deps[parser.GetNodeText(name, st.source)] = true
			}
		}
	}
}

// importFrom records only the module of a from-import, not the imported
// names. Relative imports with no module ("from . import x") are skipped.
func (st *pyWalk) importFrom(node *sitter.Node) {
	mod := node.ChildByFieldName("module_name")
	if mod == nil {
		return
	}
	name := strings.TrimLeft(parser.GetNodeText(mod, st.source), ".")
	if name != "" {
		st.deps[name] = true
	}
}

// decorators collects the decorator nodes of a decorated_definition.
func (st *pyWalk) decorators(node *sitter.Node) []*sitter.Node {
	var decs []*sitter.Node
	for i := range int(node.NamedChildCount()) {
		child := node.NamedChild(i)
		if child.Type() == "decorator" {
			decs = append(decs, child)
		}
	}
	return decs
}

// function records a function or method symbol, harvests route decorators,
// and descends into the body so nested definitions are recorded too.
func (st *pyWalk) function(def *sitter.Node, decorators []*sitter.Node, className string) {
	name := parser.GetNodeText(def.ChildByFieldName("name"), st.source)
	if name == "" {
		return
	}

	kind := models.SymbolFunction
	if className != "" {
		kind = models.SymbolMethod
	}
	st.symbols = append(st.symbols, models.Symbol{
		ID:        symbolID(st.module, className, name),
		FilePath:  st.relPath,
		StartLine: int(def.StartPoint().Row) + 1,
		EndLine:   int(def.EndPoint().Row) + 1,
		Kind:      kind,
	})

	st.routeDecorators(decorators, name)

	if body := def.ChildByFieldName("body"); body != nil {
		st.visit(body)
	}
}

// class records a class symbol plus one symbol per direct method. Nested
// classes get their own class symbol but their methods are not qualified
// against the outer class.
func (st *pyWalk) class(def *sitter.Node) {
	name := parser.GetNodeText(def.ChildByFieldName("name"), st.source)
	if name == "" {
		return
	}

	st.symbols = append(st.symbols, models.Symbol{
		ID:        symbolID(st.module, name),
		FilePath:  st.relPath,
		StartLine: int(def.StartPoint().Row) + 1,
		EndLine:   int(def.EndPoint().Row) + 1,
		Kind:      models.SymbolClass,
	})

	body := def.ChildByFieldName("body")
	if body == nil {
		return
	}
	for i := range int(body.NamedChildCount()) {
		child := body.NamedChild(i)
		switch child.Type() {
		case "function_definition":
			st.function(child, nil, name)
		case "class_definition":
			st.class(child)
		case "decorated_definition":
			inner := child.ChildByFieldName("definition")
			if inner == nil {
				continue
			}
			switch inner.Type() {
			case "function_definition":
				st.function(inner, st.decorators(child), name)
			case "class_definition":
				st.class(inner)
			}
		}
	}
}

// routeDecorators recognizes two decorator shapes on a handler function:
// obj.route("path", methods=[...]) defaulting to GET, and obj.<verb>("path")
// for the five standard verbs. Only literal string paths are recognized;
// dynamic paths are silently ignored.
func (st *pyWalk) routeDecorators(decorators []*sitter.Node, handler string) {
	for _, dec := range decorators {
		call := dec.NamedChild(0)
		if call == nil || call.Type() != "call" {
			continue
		}
		fn := call.ChildByFieldName("function")
		if fn == nil || fn.Type() != "attribute" {
			continue
		}
		obj := fn.ChildByFieldName("object")
		if obj == nil || obj.Type() != "identifier" {
			continue
		}
		attr := strings.ToLower(parser.GetNodeText(fn.ChildByFieldName("attribute"), st.source))

		args := call.ChildByFieldName("arguments")
		if args == nil {
			continue
		}

		var method, path string
		switch {
		case attr == "route":
			method = "GET"
			path = st.firstStringArg(args)
			if m := st.methodsKeyword(args); m != "" {
				method = m
			}
		case pyRouteVerbs[attr]:
			method = strings.ToUpper(attr)
			path = st.firstStringArg(args)
		default:
			continue
		}

		if path == "" {
			continue
		}
		st.entryPoints = append(st.entryPoints, models.EntryPoint{
			File:    st.relPath,
			Method:  method,
			Path:    path,
			Handler: handler,
		})
	}
}

// firstStringArg returns the literal value of the first positional argument
// when it is a plain string, empty otherwise.
func (st *pyWalk) firstStringArg(args *sitter.Node) string {
	first := args.NamedChild(0)
	if first == nil || first.Type() != "string" {
		return ""
	}
	return pyStringLiteral(parser.GetNodeText(first, st.source))
}

// methodsKeyword extracts methods=[...] from a route decorator. When the
// list holds several literals the last one wins.
func (st *pyWalk) methodsKeyword(args *sitter.Node) string {
	method := ""
	for i := range int(args.NamedChildCount()) {
		kw := args.NamedChild(i)
		if kw.Type() != "keyword_argument" {
			continue
		}
		if parser.GetNodeText(kw.ChildByFieldName("name"), st.source) != "methods" {
			continue
		}
		value := kw.ChildByFieldName("value")
		if value == nil || (value.Type() != "list" && value.Type() != "tuple") {
			continue
		}
		for j := range int(value.NamedChildCount()) {
			elt := value.NamedChild(j)
			if elt.Type() == "string" {
				if lit := pyStringLiteral(parser.GetNodeText(elt, st.source)); lit != "" {
					method = strings.ToUpper(lit)
				}
			}
		}
	}
	return method
}

// pyStringLiteral strips quotes and common prefixes from a Python string
// literal's source text.
func pyStringLiteral(text string) string {
	text = strings.TrimLeft(text, "rRbBuUfF")
	for _, q := range []string{`"""`, "'''", `"`, `'`} {
		if strings.HasPrefix(text, q) && strings.HasSuffix(text, q) && len(text) >= 2*len(q) {
			return text[len(q) : len(text)-len(q)]
		}
	}
	return text
}
