// Package chunker turns analyzed source files into retrieval chunks.
// Frontend files are indexed whole or not at all; backend files are cut
// at symbol boundaries for citable, function-level retrieval.
package chunker

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/hs979/mono2serverless/pkg/models"
	"github.com/hs979/mono2serverless/pkg/parser"
)

// mustIndexTags is the frontend relevance filter: a frontend file is
// indexed only when it carries at least one of these traits. Pure UI
// components are deliberately left out of the index.
var mustIndexTags = map[string]bool{
	"Frontend_API_Consumer":     true,
	"Frontend_Config":           true,
	"Frontend_Hardcoded_URL":    true,
	"Frontend_Auth_Integration": true,
}

// Stats are diagnostic counts for one build. They are printed, not
// persisted.
type Stats struct {
	Chunked   int
	WholeFile int
	Skipped   int
	Total     int
}

// Builder builds chunks for a scanned file list using a prior analysis
// report. A nil report degrades gracefully: every frontend file is
// skipped and every backend file becomes a single whole-file chunk.
type Builder struct {
	report *models.AnalysisReport

	symbolsByFile map[string][]models.Symbol
	tagsByFile    map[string][]string
}

// NewBuilder creates a chunk builder. report may be nil.
func NewBuilder(report *models.AnalysisReport) *Builder {
	b := &Builder{
		report:        report,
		symbolsByFile: make(map[string][]models.Symbol),
		tagsByFile:    make(map[string][]string),
	}
	if report != nil {
		for _, sym := range report.SymbolTable {
			b.symbolsByFile[sym.FilePath] = append(b.symbolsByFile[sym.FilePath], sym)
		}
		for path, tags := range report.FileTags {
			b.tagsByFile[path] = tags
		}
	}
	return b
}

// Build produces chunks for every file, in input order. A file that
// cannot be read is reported through warn, counted as skipped, and the
// build continues.
func (b *Builder) Build(root string, files []string, warn func(path string, err error)) ([]models.Chunk, Stats) {
	chunks := make([]models.Chunk, 0, len(files))
	stats := Stats{Total: len(files)}

	for _, rel := range files {
		if parser.IsFrontend(rel) {
			if !b.shouldIndexFrontend(rel) {
				stats.Skipped++
				continue
			}
			text, err := readFile(root, rel)
			if err != nil {
				warnf(warn, rel, err)
				stats.Skipped++
				continue
			}
			// Frontend context is consumed whole; no symbol addressing.
			chunks = append(chunks, models.Chunk{Text: text})
			stats.WholeFile++
			continue
		}

		text, err := readFile(root, rel)
		if err != nil {
			warnf(warn, rel, err)
			stats.Skipped++
			continue
		}

		symbols := b.symbolsByFile[rel]
		if len(symbols) == 0 {
			chunks = append(chunks, wholeFileChunk(rel, text))
			stats.WholeFile++
			continue
		}

		lines := strings.Split(text, "\n")
		for _, sym := range symbols {
			chunks = append(chunks, symbolChunk(lines, sym))
		}
		stats.Chunked++
	}

	return chunks, stats
}

// shouldIndexFrontend applies the relevance filter. Without a report no
// tags exist, so every frontend file is skipped.
func (b *Builder) shouldIndexFrontend(rel string) bool {
	for _, tag := range b.tagsByFile[rel] {
		if mustIndexTags[tag] {
			return true
		}
	}
	return false
}

// symbolChunk slices a symbol's line range from the file. Lines are
// 1-based inclusive; out-of-range bounds are clamped rather than failing.
func symbolChunk(lines []string, sym models.Symbol) models.Chunk {
	start := sym.StartLine - 1
	end := sym.EndLine
	if start < 0 {
		start = 0
	}
	if end > len(lines) {
		end = len(lines)
	}
	if end < start {
		end = start
	}

	return models.Chunk{
		Text: strings.Join(lines[start:end], "\n"),
		Metadata: models.ChunkMetadata{
			FilePath:     sym.FilePath,
			FunctionName: lastSegment(sym.ID),
			SymbolID:     sym.ID,
			Kind:         string(sym.Kind),
			Type:         "function",
			StartLine:    sym.StartLine,
			EndLine:      sym.EndLine,
		},
	}
}

// wholeFileChunk covers the entire file. Line bounds span the full
// split-line count, so a trailing newline counts as one more line.
func wholeFileChunk(rel, text string) models.Chunk {
	return models.Chunk{
		Text: text,
		Metadata: models.ChunkMetadata{
			FilePath:     rel,
			FunctionName: models.WholeFileName,
			Type:         "file",
			StartLine:    1,
			EndLine:      strings.Count(text, "\n") + 1,
		},
	}
}

func lastSegment(id string) string {
	if i := strings.LastIndex(id, "."); i >= 0 {
		return id[i+1:]
	}
	return id
}

func readFile(root, rel string) (string, error) {
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func warnf(warn func(path string, err error), path string, err error) {
	if warn != nil {
		warn(path, err)
	}
}
