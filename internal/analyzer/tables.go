package analyzer

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
)

// tablePatterns are five independent families for harvesting probable
// table names. The environment-read families only fire for variable names
// containing TABLE, which keeps generic env lookups out of the result.
var tablePatterns = []*regexp.Regexp{
	// os.getenv("USERS_TABLE", "users-dev")
	regexp.MustCompile(`os\.getenv\(\s*['"][A-Za-z0-9_]*TABLE[A-Za-z0-9_]*['"]\s*,\s*['"]([^'"]+)['"]`),
	// os.environ.get("USERS_TABLE", "users-dev")
	regexp.MustCompile(`os\.environ\.get\(\s*['"][A-Za-z0-9_]*TABLE[A-Za-z0-9_]*['"]\s*,\s*['"]([^'"]+)['"]`),
	// process.env.USERS_TABLE || "users-dev"
	regexp.MustCompile(`process\.env\.[A-Za-z0-9_]*TABLE[A-Za-z0-9_]*\s*\|\|\s*['"]([^'"]+)['"]`),
	// tableName = "users" / TableName: "users"
	regexp.MustCompile(`(?i)\btable_?name\s*[:=]\s*['"]([A-Za-z0-9_.-]+)['"]`),
	// usersTable: "users-dev" for common entity prefixes
	regexp.MustCompile(`(?i)\b(?:users?|products?|orders?|carts?|items?|sessions?|accounts?|customers?|inventory)_?table\s*[:=]\s*['"]([A-Za-z0-9_.-]+)['"]`),
}

// ExtractTableNames harvests probable table names from every store-tagged
// file. All families run over all files for full recall; matches are
// unioned, deduplicated, and sorted. A file that cannot be read is
// reported through warn and skipped.
func ExtractTableNames(root string, files []string, warn func(path string, err error)) []string {
	names := make(map[string]bool)

	for _, rel := range files {
		data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			if warn != nil {
				warn(rel, err)
			}
			continue
		}
		for _, pat := range tablePatterns {
			for _, m := range pat.FindAllSubmatch(data, -1) {
				names[string(m[1])] = true
			}
		}
	}

	out := make([]string, 0, len(names))
	for n := range names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
