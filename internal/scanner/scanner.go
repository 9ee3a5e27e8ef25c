// Package scanner enumerates analyzable source files and renders the
// project directory tree.
package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/hs979/mono2serverless/pkg/config"
	"github.com/hs979/mono2serverless/pkg/parser"
)

// Scanner finds source files in a directory tree.
type Scanner struct {
	config   *config.Config
	matchers []gitignore.Matcher
}

// NewScanner creates a new file scanner.
func NewScanner(cfg *config.Config) *Scanner {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Scanner{config: cfg}
}

// findGitRoot finds the root of the git repository by looking for a .git
// directory. Returns empty string if not in a git repository.
func findGitRoot(start string) string {
	dir := start
	for {
		gitDir := filepath.Join(dir, ".git")
		if info, err := os.Stat(gitDir); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// loadGitignorePatterns layers .gitignore exclusions over the fixed
// ignore-set when enabled in config.
func (s *Scanner) loadGitignorePatterns(root string) {
	if !s.config.Exclude.Gitignore {
		return
	}
	gitRoot := findGitRoot(root)
	if gitRoot == "" {
		return
	}
	fs := osfs.New(gitRoot)
	if patterns, err := gitignore.ReadPatterns(fs, nil); err == nil && len(patterns) > 0 {
		s.matchers = append(s.matchers, gitignore.NewMatcher(patterns))
	}
}

// isGitignored checks a relative path against the loaded matchers.
func (s *Scanner) isGitignored(relPath string, isDir bool) bool {
	if len(s.matchers) == 0 {
		return false
	}
	parts := strings.Split(relPath, "/")
	for _, m := range s.matchers {
		if m.Match(parts, isDir) {
			return true
		}
	}
	return false
}

// ScanDir recursively scans a directory for analyzable source files.
// Returned paths are relative to root, posix-separated, and sorted.
// A missing root is an error; unreadable entries below it are skipped.
func (s *Scanner) ScanDir(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scan root not found: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan root is not a directory: %s", root)
	}

	s.loadGitignorePatterns(root)

	files := make([]string, 0, 256)
	s.walk(root, "", &files)
	sort.Strings(files)
	return files, nil
}

func (s *Scanner) walk(root, rel string, files *[]string) {
	dir := root
	if rel != "" {
		dir = filepath.Join(root, filepath.FromSlash(rel))
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	for _, e := range entries {
		name := e.Name()
		childRel := name
		if rel != "" {
			childRel = rel + "/" + name
		}

		if e.IsDir() {
			if s.config.IsIgnoredDir(name) || s.isGitignored(childRel, true) {
				continue
			}
			s.walk(root, childRel, files)
			continue
		}

		if strings.HasPrefix(name, ".") || s.isGitignored(childRel, false) {
			continue
		}
		if parser.StrategyFor(parser.DetectLanguage(name)) == parser.StrategyUnsupported {
			continue
		}
		*files = append(*files, childRel)
	}
}

// RenderTree produces a deterministic depth-first rendering of the tree
// under root, using box-drawing connectors. The final child of a directory
// uses a distinct connector. Ignored and dot-prefixed entries are skipped,
// unreadable directories render without children.
func (s *Scanner) RenderTree(root string) (string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return "", fmt.Errorf("scan root not found: %s", root)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("scan root is not a directory: %s", root)
	}

	lines := []string{filepath.Base(root) + "/"}
	s.renderDir(root, "", &lines)
	return strings.Join(lines, "\n"), nil
}

func (s *Scanner) renderDir(dir, prefix string, lines *[]string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	kept := entries[:0]
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if e.IsDir() && s.config.IsIgnoredDir(e.Name()) {
			continue
		}
		kept = append(kept, e)
	}
	sort.Slice(kept, func(i, j int) bool { return kept[i].Name() < kept[j].Name() })

	for i, e := range kept {
		connector := "├── "
		extension := "│   "
		if i == len(kept)-1 {
			connector = "└── "
			extension = "    "
		}
		*lines = append(*lines, prefix+connector+e.Name())
		if e.IsDir() {
			s.renderDir(filepath.Join(dir, e.Name()), prefix+extension, lines)
		}
	}
}

// GroupByLanguage groups relative file paths by their detected language.
func (s *Scanner) GroupByLanguage(files []string) map[parser.Language][]string {
	groups := make(map[parser.Language][]string)
	for _, f := range files {
		lang := parser.DetectLanguage(f)
		if lang != parser.LangUnknown {
			groups[lang] = append(groups[lang], f)
		}
	}
	return groups
}
