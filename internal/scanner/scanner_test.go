package scanner

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/hs979/mono2serverless/pkg/config"
	"github.com/hs979/mono2serverless/pkg/parser"
)

func seed(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestScanDir(t *testing.T) {
	root := t.TempDir()
	seed(t, root, map[string]string{
		"app.py":                     "pass",
		"src/utils.py":               "pass",
		"frontend/main.vue":          "<template/>",
		"readme.md":                  "docs",
		".hidden.py":                 "pass",
		"node_modules/lib/index.js":  "x",
		"__pycache__/app.cpython.py": "x",
		"venv/lib/thing.py":          "x",
	})

	files, err := NewScanner(config.DefaultConfig()).ScanDir(root)
	if err != nil {
		t.Fatalf("ScanDir() error: %v", err)
	}

	want := []string{"app.py", "frontend/main.vue", "src/utils.py"}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("ScanDir() = %v, want %v", files, want)
	}
}

func TestScanDir_MissingRoot(t *testing.T) {
	_, err := NewScanner(nil).ScanDir(filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Fatal("ScanDir() should fail for a missing root")
	}
	if !strings.Contains(err.Error(), "scan root not found") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestScanDir_RootIsFile(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "file.py")
	if err := os.WriteFile(path, []byte("pass"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewScanner(nil).ScanDir(path); err == nil {
		t.Fatal("ScanDir() should fail when root is a file")
	}
}

func TestRenderTree(t *testing.T) {
	root := t.TempDir()
	seed(t, root, map[string]string{
		"app.py":       "pass",
		"src/utils.py": "pass",
		"src/db.py":    "pass",
		".git/config":  "x",
	})

	tree, err := NewScanner(config.DefaultConfig()).RenderTree(root)
	if err != nil {
		t.Fatalf("RenderTree() error: %v", err)
	}

	want := filepath.Base(root) + "/\n" +
		"├── app.py\n" +
		"└── src\n" +
		"    ├── db.py\n" +
		"    └── utils.py"
	if tree != want {
		t.Errorf("RenderTree() =\n%s\nwant\n%s", tree, want)
	}
}

func TestRenderTree_NestedPrefixes(t *testing.T) {
	root := t.TempDir()
	seed(t, root, map[string]string{
		"a/inner.py": "pass",
		"b.py":       "pass",
	})

	tree, err := NewScanner(config.DefaultConfig()).RenderTree(root)
	if err != nil {
		t.Fatalf("RenderTree() error: %v", err)
	}

	want := filepath.Base(root) + "/\n" +
		"├── a\n" +
		"│   └── inner.py\n" +
		"└── b.py"
	if tree != want {
		t.Errorf("RenderTree() =\n%s\nwant\n%s", tree, want)
	}
}

func TestGroupByLanguage(t *testing.T) {
	groups := NewScanner(nil).GroupByLanguage([]string{
		"app.py", "lib.js", "view.vue", "mod.ts",
	})

	if got := groups[parser.LangPython]; !reflect.DeepEqual(got, []string{"app.py"}) {
		t.Errorf("python group = %v", got)
	}
	if got := groups[parser.LangJavaScript]; !reflect.DeepEqual(got, []string{"lib.js"}) {
		t.Errorf("javascript group = %v", got)
	}
	if len(groups) != 4 {
		t.Errorf("expected 4 language groups, got %d", len(groups))
	}
}

func TestScanDir_GitignoreLayered(t *testing.T) {
	root := t.TempDir()
	seed(t, root, map[string]string{
		"app.py":          "pass",
		"generated/gen.py": "pass",
		".gitignore":      "generated/\n",
	})
	if err := os.MkdirAll(filepath.Join(root, ".git"), 0755); err != nil {
		t.Fatal(err)
	}

	cfg := config.DefaultConfig()
	cfg.Exclude.Gitignore = true

	files, err := NewScanner(cfg).ScanDir(root)
	if err != nil {
		t.Fatalf("ScanDir() error: %v", err)
	}

	want := []string{"app.py"}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("ScanDir() = %v, want %v", files, want)
	}
}
