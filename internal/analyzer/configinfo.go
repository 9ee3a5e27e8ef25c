package analyzer

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hs979/mono2serverless/pkg/models"
)

// AnalyzeProjectConfig reads the dependency manifests at the project root
// and normalizes them. Returns nil when neither manifest exists; a
// malformed structured manifest is omitted rather than failing the run.
func AnalyzeProjectConfig(root string) *models.ConfigInfo {
	info := &models.ConfigInfo{}

	if deps := parseRequirements(filepath.Join(root, "requirements.txt")); deps != nil {
		info.PythonDependencies = deps
	}
	if node := parsePackageJSON(filepath.Join(root, "package.json")); node != nil {
		info.NodeDependencies = node
	}

	if info.PythonDependencies == nil && info.NodeDependencies == nil {
		return nil
	}
	return info
}

// parseRequirements handles the line-oriented pinned format: name==version,
// name>=version, or a bare name with no pin. Comments and blanks are
// skipped; a manifest holding nothing else yields nil, not an empty list.
func parseRequirements(path string) []models.Dependency {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var deps []models.Dependency
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		switch {
		case strings.Contains(line, "=="):
			parts := strings.SplitN(line, "==", 2)
			version := strings.TrimSpace(parts[1])
			deps = append(deps, models.Dependency{Name: strings.TrimSpace(parts[0]), Version: &version})
		case strings.Contains(line, ">="):
			parts := strings.SplitN(line, ">=", 2)
			version := ">=" + strings.TrimSpace(parts[1])
			deps = append(deps, models.Dependency{Name: strings.TrimSpace(parts[0]), Version: &version})
		default:
			deps = append(deps, models.Dependency{Name: line})
		}
	}
	return deps
}

// parsePackageJSON normalizes the production and development dependency
// maps. Lists are sorted by name so output is stable across runs.
func parsePackageJSON(path string) *models.NodeDependencies {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var manifest struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil
	}

	node := &models.NodeDependencies{
		Dependencies:    depList(manifest.Dependencies),
		DevDependencies: depList(manifest.DevDependencies),
	}
	if node.Dependencies == nil && node.DevDependencies == nil {
		return nil
	}
	return node
}

func depList(m map[string]string) []models.Dependency {
	if len(m) == 0 {
		return nil
	}
	deps := make([]models.Dependency, 0, len(m))
	for name, version := range m {
		v := version
		deps = append(deps, models.Dependency{Name: name, Version: &v})
	}
	sort.Slice(deps, func(i, j int) bool { return deps[i].Name < deps[j].Name })
	return deps
}
