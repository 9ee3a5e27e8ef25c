package analyzer

import (
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/hs979/mono2serverless/internal/cache"
	"github.com/hs979/mono2serverless/internal/fileproc"
	"github.com/hs979/mono2serverless/internal/scanner"
	"github.com/hs979/mono2serverless/pkg/config"
	"github.com/hs979/mono2serverless/pkg/models"
	"github.com/hs979/mono2serverless/pkg/parser"
)

// ProjectAnalyzer runs per-file analysis over a source tree and assembles
// the final report. Per-file work runs in parallel; assembly is
// sequential and sorted so the report is byte-stable across runs.
type ProjectAnalyzer struct {
	cfg     *config.Config
	cache   *cache.Cache
	scanner *scanner.Scanner

	// Warn receives non-fatal diagnostics. Nil discards them.
	Warn func(format string, args ...any)

	pyExtractors sync.Pool
	jsExtractor  *JSExtractor
}

// New creates a project analyzer. The cache may be nil or disabled.
func New(cfg *config.Config, c *cache.Cache) *ProjectAnalyzer {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	a := &ProjectAnalyzer{
		cfg:         cfg,
		cache:       c,
		scanner:     scanner.NewScanner(cfg),
		jsExtractor: NewJSExtractor(cfg.Analysis.AppPrefix),
	}
	if cfg.Analysis.MaxBraceScan > 0 {
		a.jsExtractor.maxBraceScan = cfg.Analysis.MaxBraceScan
	}
	// Grammar parsers are not safe for concurrent use; pool one per worker.
	a.pyExtractors.New = func() any {
		return NewPythonExtractor(cfg.Analysis.AppPrefix)
	}
	return a
}

// ScanFiles enumerates the analyzable files under root. Exposed so callers
// can size progress reporting before analysis starts.
func (a *ProjectAnalyzer) ScanFiles(root string) ([]string, error) {
	return a.scanner.ScanDir(root)
}

// Analyze scans root and produces the full report.
func (a *ProjectAnalyzer) Analyze(root string) (*models.AnalysisReport, error) {
	files, err := a.ScanFiles(root)
	if err != nil {
		return nil, err
	}
	return a.AnalyzeFiles(root, files, nil)
}

// AnalyzeFiles analyzes an already-scanned file list and assembles the
// report. Per-file failures are reported through Warn and skipped; they
// never abort the run.
func (a *ProjectAnalyzer) AnalyzeFiles(root string, files []string, onProgress func()) (*models.AnalysisReport, error) {
	tree, err := a.scanner.RenderTree(root)
	if err != nil {
		return nil, err
	}

	results := fileproc.ForEachFileN(files, a.cfg.Analysis.Workers,
		func(rel string) (models.FileAnalysis, error) {
			return a.analyzeOne(root, rel)
		},
		onProgress,
		func(path string, err error) {
			a.warn("skipping %s: %v", path, err)
		})

	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })

	report := models.NewAnalysisReport()
	report.ProjectStructure = tree

	seenSymbols := make(map[string]bool)
	var storeFiles []string

	for _, fa := range results {
		report.DependencyGraph[fa.Path] = fa.Dependencies
		if len(fa.Tags) > 0 {
			report.FileTags[fa.Path] = fa.Tags
		}
		report.EntryPoints = append(report.EntryPoints, fa.EntryPoints...)

		for _, sym := range fa.Symbols {
			if seenSymbols[sym.ID] {
				a.warn("duplicate symbol id %s in %s, keeping first occurrence", sym.ID, sym.FilePath)
				continue
			}
			seenSymbols[sym.ID] = true
			report.SymbolTable = append(report.SymbolTable, sym)
		}

		for _, tag := range fa.Tags {
			if tag == TagDynamoDB {
				storeFiles = append(storeFiles, fa.Path)
				break
			}
		}
	}

	report.ConfigInfo = AnalyzeProjectConfig(root)

	if len(storeFiles) > 0 {
		report.StoreInfo = &models.StoreInfo{
			Used: true,
			ProbableTables: ExtractTableNames(root, storeFiles, func(path string, err error) {
				a.warn("table scan failed for %s: %v", path, err)
			}),
			SchemaFiles: RankSchemaFiles(storeFiles),
		}
	}

	return report, nil
}

// analyzeOne analyzes a single file, consulting the content-hash cache
// first. The returned analysis always carries tags even when structural
// extraction yields nothing.
func (a *ProjectAnalyzer) analyzeOne(root, rel string) (models.FileAnalysis, error) {
	source, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		return models.FileAnalysis{}, err
	}

	hash := cache.HashBytes(source)
	if a.cache != nil {
		if cached, ok := a.cache.Get(rel, hash); ok {
			return *cached, nil
		}
	}

	fa := models.FileAnalysis{
		Path: rel,
		Tags: TagFile(rel, source),
	}

	ext := a.extract(rel, source)
	fa.Dependencies = ext.Dependencies
	if fa.Dependencies == nil {
		fa.Dependencies = []string{}
	}
	fa.EntryPoints = ext.EntryPoints
	fa.Symbols = ext.Symbols

	if a.cache != nil {
		if err := a.cache.Put(rel, hash, &fa); err != nil {
			a.warn("cache write failed for %s: %v", rel, err)
		}
	}
	return fa, nil
}

func (a *ProjectAnalyzer) extract(rel string, source []byte) Extraction {
	switch parser.StrategyFor(parser.DetectLanguage(rel)) {
	case parser.StrategyPythonAST:
		e := a.pyExtractors.Get().(*PythonExtractor)
		defer a.pyExtractors.Put(e)
		return e.Extract(rel, source)
	case parser.StrategyJSHeuristic:
		return a.jsExtractor.Extract(rel, source)
	default:
		return Extraction{}
	}
}

func (a *ProjectAnalyzer) warn(format string, args ...any) {
	if a.Warn != nil {
		a.Warn(format, args...)
	}
}
