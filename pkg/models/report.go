// Package models defines the data types shared across analyzers, the
// chunker, and the CLI.
package models

// SymbolKind classifies entries in the symbol table.
type SymbolKind string

const (
	SymbolFunction     SymbolKind = "function"
	SymbolClass        SymbolKind = "class"
	SymbolMethod       SymbolKind = "method"
	SymbolRouteHandler SymbolKind = "route_handler"
	SymbolEventHandler SymbolKind = "event_handler"
)

// Symbol is a named, line-addressable code unit. IDs are dotted
// ([prefix.]module.[Class.]name) and unique within one report.
type Symbol struct {
	ID        string     `json:"id"`
	FilePath  string     `json:"file_path"`
	StartLine int        `json:"start_line"`
	EndLine   int        `json:"end_line"`
	Kind      SymbolKind `json:"kind,omitempty"`
}

// EntryPoint is a detected HTTP route binding.
type EntryPoint struct {
	File    string `json:"file"`
	Method  string `json:"method"`
	Path    string `json:"path"`
	Handler string `json:"handler,omitempty"`
}

// Dependency is a single manifest entry. Version is nil for unpinned
// requirement lines.
type Dependency struct {
	Name    string  `json:"name"`
	Version *string `json:"version"`
}

// NodeDependencies splits package.json entries into production and
// development lists.
type NodeDependencies struct {
	Dependencies    []Dependency `json:"dependencies,omitempty"`
	DevDependencies []Dependency `json:"devDependencies,omitempty"`
}

// ConfigInfo summarizes dependency manifests found at the scan root.
type ConfigInfo struct {
	PythonDependencies []Dependency      `json:"python_dependencies,omitempty"`
	NodeDependencies   *NodeDependencies `json:"nodejs_dependencies,omitempty"`
}

// StoreInfo carries persistent-store hints harvested from store-tagged files.
type StoreInfo struct {
	Used           bool     `json:"used"`
	ProbableTables []string `json:"probable_tables"`
	SchemaFiles    []string `json:"schema_files"`
}

// FileAnalysis is the per-file extraction result. It is the unit of work
// for the parallel analysis pass and the value stored in the cache.
type FileAnalysis struct {
	Path         string       `json:"path"`
	Tags         []string     `json:"tags"`
	Dependencies []string     `json:"dependencies"`
	EntryPoints  []EntryPoint `json:"entry_points"`
	Symbols      []Symbol     `json:"symbols"`
}

// AnalysisReport is the single hand-off artifact of a full analysis run.
// It is built once and never mutated afterwards.
type AnalysisReport struct {
	ProjectStructure string              `json:"project_structure"`
	EntryPoints      []EntryPoint        `json:"entry_points"`
	DependencyGraph  map[string][]string `json:"dependency_graph"`
	FileTags         map[string][]string `json:"file_tags"`
	SymbolTable      []Symbol            `json:"symbol_table"`
	ConfigInfo       *ConfigInfo         `json:"config_info,omitempty"`
	StoreInfo        *StoreInfo          `json:"store_info,omitempty"`
}

// NewAnalysisReport returns a report with all collections initialized so
// that serialization always emits [] and {} rather than null.
func NewAnalysisReport() *AnalysisReport {
	return &AnalysisReport{
		EntryPoints:     make([]EntryPoint, 0),
		DependencyGraph: make(map[string][]string),
		FileTags:        make(map[string][]string),
		SymbolTable:     make([]Symbol, 0),
	}
}
