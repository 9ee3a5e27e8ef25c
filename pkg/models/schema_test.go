package models

import (
	"strings"
	"testing"
)

func validReport() *AnalysisReport {
	report := NewAnalysisReport()
	report.ProjectStructure = "shop/\n└── app.py"
	report.EntryPoints = []EntryPoint{
		{File: "app.py", Method: "GET", Path: "/users", Handler: "list_users"},
	}
	report.DependencyGraph["app.py"] = []string{"flask"}
	report.FileTags["app.py"] = []string{"DynamoDB"}
	report.SymbolTable = []Symbol{
		{ID: "app.list_users", FilePath: "app.py", StartLine: 4, EndLine: 6, Kind: SymbolFunction},
	}
	return report
}

func TestValidateReport_Valid(t *testing.T) {
	if err := ValidateReport(validReport()); err != nil {
		t.Fatalf("ValidateReport() error: %v", err)
	}
}

func TestValidateReport_MinimalEmpty(t *testing.T) {
	report := NewAnalysisReport()
	if err := ValidateReport(report); err != nil {
		t.Fatalf("ValidateReport() on empty report error: %v", err)
	}
}

func TestValidateReport_InvalidMethod(t *testing.T) {
	report := validReport()
	report.EntryPoints[0].Method = "FETCH"

	err := ValidateReport(report)
	if err == nil {
		t.Fatal("ValidateReport() should reject an unknown HTTP method")
	}
	if !strings.Contains(err.Error(), "schema") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateReport_InvalidSymbolKind(t *testing.T) {
	report := validReport()
	report.SymbolTable[0].Kind = "widget"

	if err := ValidateReport(report); err == nil {
		t.Fatal("ValidateReport() should reject an unknown symbol kind")
	}
}

func TestValidateReport_WithStoreAndConfig(t *testing.T) {
	version := "2.0.1"
	report := validReport()
	report.ConfigInfo = &ConfigInfo{
		PythonDependencies: []Dependency{
			{Name: "flask", Version: &version},
			{Name: "requests"},
		},
	}
	report.StoreInfo = &StoreInfo{
		Used:           true,
		ProbableTables: []string{"users-dev"},
		SchemaFiles:    []string{"app.py"},
	}

	if err := ValidateReport(report); err != nil {
		t.Fatalf("ValidateReport() error: %v", err)
	}
}

func TestValidateReport_TooManySchemaFiles(t *testing.T) {
	report := validReport()
	report.StoreInfo = &StoreInfo{
		Used:           true,
		ProbableTables: []string{},
		SchemaFiles:    []string{"a.py", "b.py", "c.py", "d.py"},
	}

	if err := ValidateReport(report); err == nil {
		t.Fatal("ValidateReport() should cap schema_files at three")
	}
}

func TestMarshalReport_Deterministic(t *testing.T) {
	a, err := MarshalReport(validReport())
	if err != nil {
		t.Fatalf("MarshalReport() error: %v", err)
	}
	b, err := MarshalReport(validReport())
	if err != nil {
		t.Fatalf("MarshalReport() error: %v", err)
	}
	if string(a) != string(b) {
		t.Error("MarshalReport() should be byte-identical for equal reports")
	}
}

func TestMarshalReport_EmptyCollections(t *testing.T) {
	data, err := MarshalReport(NewAnalysisReport())
	if err != nil {
		t.Fatalf("MarshalReport() error: %v", err)
	}

	out := string(data)
	for _, want := range []string{`"entry_points": []`, `"dependency_graph": {}`, `"file_tags": {}`, `"symbol_table": []`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "config_info") || strings.Contains(out, "store_info") {
		t.Error("optional sections should be omitted when absent")
	}
}
