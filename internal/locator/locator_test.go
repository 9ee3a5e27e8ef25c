package locator

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hs979/mono2serverless/pkg/models"
)

func reportWithSymbols(symbols ...models.Symbol) *models.AnalysisReport {
	report := models.NewAnalysisReport()
	report.SymbolTable = symbols
	return report
}

func TestLocate_ExactFilePath(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, "service.py"), []byte("pass"), 0644); err != nil {
		t.Fatal(err)
	}

	result, err := Locate("service.py", nil, WithBaseDir(tmpDir))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Type != TargetFile {
		t.Errorf("expected type %q, got %q", TargetFile, result.Type)
	}
	if result.Path != "service.py" {
		t.Errorf("expected path %q, got %q", "service.py", result.Path)
	}
}

func TestLocate_NotFound(t *testing.T) {
	result, err := Locate("nonexistent", nil, WithBaseDir(t.TempDir()))

	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if result != nil {
		t.Errorf("expected nil result, got %+v", result)
	}
}

func TestLocate_GlobPattern_SingleMatch(t *testing.T) {
	tmpDir := t.TempDir()
	subDir := filepath.Join(tmpDir, "services")
	if err := os.MkdirAll(subDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(subDir, "user.py"), []byte("pass"), 0644); err != nil {
		t.Fatal(err)
	}

	result, err := Locate("**/user.py", nil, WithBaseDir(tmpDir))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Type != TargetFile {
		t.Errorf("expected type %q, got %q", TargetFile, result.Type)
	}
	if result.Path != "services/user.py" {
		t.Errorf("expected path %q, got %q", "services/user.py", result.Path)
	}
}

func TestLocate_GlobPattern_Ambiguous(t *testing.T) {
	tmpDir := t.TempDir()
	for _, dir := range []string{"a", "b"} {
		if err := os.MkdirAll(filepath.Join(tmpDir, dir), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(tmpDir, dir, "user.py"), []byte("pass"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	result, err := Locate("**/user.py", nil, WithBaseDir(tmpDir))
	if !errors.Is(err, ErrAmbiguousMatch) {
		t.Fatalf("expected ErrAmbiguousMatch, got %v", err)
	}
	if len(result.Candidates) != 2 {
		t.Errorf("expected 2 candidates, got %d", len(result.Candidates))
	}
}

func TestLocate_Basename(t *testing.T) {
	tmpDir := t.TempDir()
	subDir := filepath.Join(tmpDir, "src")
	if err := os.MkdirAll(subDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(subDir, "cart.js"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	result, err := Locate("cart.js", nil, WithBaseDir(tmpDir))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Path != "src/cart.js" {
		t.Errorf("expected path %q, got %q", "src/cart.js", result.Path)
	}
}

func TestLocate_SymbolByID(t *testing.T) {
	report := reportWithSymbols(
		models.Symbol{ID: "app.users.create", FilePath: "users.py", StartLine: 10, EndLine: 20, Kind: models.SymbolFunction},
		models.Symbol{ID: "app.orders.create", FilePath: "orders.py", StartLine: 5, EndLine: 9, Kind: models.SymbolFunction},
	)

	result, err := Locate("app.users.create", report, WithBaseDir(t.TempDir()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Type != TargetSymbol {
		t.Fatalf("expected symbol target, got %q", result.Type)
	}
	if result.Symbol.FilePath != "users.py" {
		t.Errorf("expected users.py, got %q", result.Symbol.FilePath)
	}
}

func TestLocate_SymbolByName_Ambiguous(t *testing.T) {
	report := reportWithSymbols(
		models.Symbol{ID: "app.users.create", FilePath: "users.py", StartLine: 10, EndLine: 20},
		models.Symbol{ID: "app.orders.create", FilePath: "orders.py", StartLine: 5, EndLine: 9},
	)

	result, err := Locate("create", report, WithBaseDir(t.TempDir()))
	if !errors.Is(err, ErrAmbiguousMatch) {
		t.Fatalf("expected ErrAmbiguousMatch, got %v", err)
	}
	if len(result.Candidates) != 2 {
		t.Errorf("expected 2 candidates, got %d", len(result.Candidates))
	}
}

func TestLocate_SymbolByName_Unique(t *testing.T) {
	report := reportWithSymbols(
		models.Symbol{ID: "app.users.create", FilePath: "users.py", StartLine: 10, EndLine: 20},
		models.Symbol{ID: "app.orders.remove", FilePath: "orders.py", StartLine: 5, EndLine: 9},
	)

	result, err := Locate("remove", report, WithBaseDir(t.TempDir()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Symbol.ID != "app.orders.remove" {
		t.Errorf("expected app.orders.remove, got %q", result.Symbol.ID)
	}
}
