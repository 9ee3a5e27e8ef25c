// Package locator resolves a focus string to a file or a symbol from a
// prior analysis report.
package locator

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hs979/mono2serverless/pkg/models"
)

// TargetType indicates whether the focus resolved to a file or symbol.
type TargetType string

const (
	TargetFile   TargetType = "file"
	TargetSymbol TargetType = "symbol"
)

// Candidate represents an ambiguous match option.
type Candidate struct {
	Path string
	ID   string
	File string
	Line int
	Kind string
}

// Result contains the resolved target or the ambiguous candidates.
type Result struct {
	Type       TargetType
	Path       string
	Symbol     *models.Symbol
	Candidates []Candidate
}

var (
	ErrNotFound       = errors.New("no file or symbol found")
	ErrAmbiguousMatch = errors.New("ambiguous match")
)

// Options configures the Locate behavior.
type Options struct {
	BaseDir string
}

// Option is a functional option for Locate.
type Option func(*Options)

// WithBaseDir sets the base directory for glob and basename searches.
func WithBaseDir(dir string) Option {
	return func(o *Options) {
		o.BaseDir = dir
	}
}

// Locate resolves a focus target to a file or a report symbol.
// Resolution order: exact path -> glob -> basename -> symbol id or name.
// The report may be nil, which disables symbol resolution.
func Locate(focus string, report *models.AnalysisReport, opts ...Option) (*Result, error) {
	options := &Options{
		BaseDir: ".",
	}
	for _, opt := range opts {
		opt(options)
	}

	// Try exact file path first
	if info, err := os.Stat(filepath.Join(options.BaseDir, focus)); err == nil && !info.IsDir() {
		return &Result{
			Type: TargetFile,
			Path: focus,
		}, nil
	}

	// Try glob pattern if contains glob characters
	if containsGlobChars(focus) {
		return locateByGlob(focus, options.BaseDir)
	}

	// Try basename search if looks like a filename (has extension)
	if looksLikeFilename(focus) {
		return locateByBasename(focus, options.BaseDir)
	}

	if report != nil {
		return locateBySymbol(focus, report)
	}

	return nil, ErrNotFound
}

func containsGlobChars(s string) bool {
	return strings.Contains(s, "*") || strings.Contains(s, "?") || strings.Contains(s, "[")
}

func locateByGlob(pattern, baseDir string) (*Result, error) {
	matches, err := doublestar.Glob(os.DirFS(baseDir), pattern)
	if err != nil {
		return nil, err
	}

	if len(matches) == 0 {
		return nil, ErrNotFound
	}

	if len(matches) == 1 {
		return &Result{
			Type: TargetFile,
			Path: matches[0],
		}, nil
	}

	// Multiple matches - return candidates
	candidates := make([]Candidate, len(matches))
	for i, m := range matches {
		candidates[i] = Candidate{Path: m}
	}
	return &Result{Candidates: candidates}, ErrAmbiguousMatch
}

func looksLikeFilename(s string) bool {
	ext := filepath.Ext(s)
	return ext != "" && !strings.Contains(s, "/")
}

func locateByBasename(filename, baseDir string) (*Result, error) {
	// Use glob to find all files with this basename
	pattern := "**/" + filename
	return locateByGlob(pattern, baseDir)
}

// locateBySymbol matches the focus against full symbol ids first, then
// against the last id segment (the bare function or class name).
func locateBySymbol(focus string, report *models.AnalysisReport) (*Result, error) {
	var matches []models.Symbol
	for _, sym := range report.SymbolTable {
		if sym.ID == focus {
			matches = []models.Symbol{sym}
			break
		}
		if lastSegment(sym.ID) == focus {
			matches = append(matches, sym)
		}
	}

	if len(matches) == 0 {
		return nil, ErrNotFound
	}

	if len(matches) == 1 {
		sym := matches[0]
		return &Result{
			Type:   TargetSymbol,
			Symbol: &sym,
		}, nil
	}

	// Multiple matches - return candidates
	candidates := make([]Candidate, len(matches))
	for i, m := range matches {
		candidates[i] = Candidate{
			ID:   m.ID,
			File: m.FilePath,
			Line: m.StartLine,
			Kind: string(m.Kind),
		}
	}
	return &Result{Candidates: candidates}, ErrAmbiguousMatch
}

func lastSegment(id string) string {
	if i := strings.LastIndex(id, "."); i >= 0 {
		return id[i+1:]
	}
	return id
}
