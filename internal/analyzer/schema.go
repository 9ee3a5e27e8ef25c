package analyzer

import (
	"path"
	"sort"
	"strings"
)

// Ranking priorities for candidate schema files. Lower ranks first.
const (
	schemaPriorityInit      = 1
	schemaPriorityCanonical = 2
	schemaPriorityDefault   = 50
	schemaPriorityExcluded  = 99
)

// notSchemaDirs are business-logic and UI directories whose files never
// define a store schema even when they talk to the store.
var notSchemaDirs = map[string]bool{
	"routes":      true,
	"views":       true,
	"components":  true,
	"pages":       true,
	"controllers": true,
	"middleware":  true,
	"static":      true,
	"templates":   true,
	"frontend":    true,
	"client":      true,
	"public":      true,
	"test":        true,
	"tests":       true,
}

// initFilenameMarkers flag table-provisioning scripts.
var initFilenameMarkers = []string{
	"init_db",
	"initdb",
	"init_dynamo",
	"setup",
	"create_table",
	"create-table",
	"createtable",
	"schema",
	"migrat",
}

// canonicalDataFiles are the conventional data-access module names. They
// only count when placed at the root, under a source-root directory, or
// anywhere inside a database directory.
var canonicalDataFiles = map[string]bool{
	"database.py": true,
	"db.py":       true,
	"models.py":   true,
	"dynamodb.py": true,
	"database.js": true,
	"db.js":       true,
	"models.js":   true,
	"dynamo.js":   true,
	"dynamodb.js": true,
}

var canonicalParentDirs = map[string]bool{
	"src":     true,
	"app":     true,
	"lib":     true,
	"server":  true,
	"backend": true,
	"api":     true,
}

var databaseDirs = map[string]bool{
	"database": true,
	"db":       true,
	"models":   true,
}

// RankSchemaFiles orders store-tagged files by how likely each is to
// define the store schema and returns at most three, best first. Files in
// business-logic directories are excluded outright.
func RankSchemaFiles(files []string) []string {
	type ranked struct {
		path     string
		base     string
		priority int
	}

	var candidates []ranked
	for _, f := range files {
		p := schemaPriority(f)
		if p >= schemaPriorityExcluded {
			continue
		}
		candidates = append(candidates, ranked{path: f, base: path.Base(f), priority: p})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].priority != candidates[j].priority {
			return candidates[i].priority < candidates[j].priority
		}
		return candidates[i].base < candidates[j].base
	})

	out := make([]string, 0, 3)
	for _, c := range candidates {
		out = append(out, c.path)
		if len(out) == 3 {
			break
		}
	}
	return out
}

func schemaPriority(relPath string) int {
	segments := strings.Split(relPath, "/")
	dirs := segments[:len(segments)-1]
	base := strings.ToLower(segments[len(segments)-1])

	for _, d := range dirs {
		if notSchemaDirs[strings.ToLower(d)] {
			return schemaPriorityExcluded
		}
	}

	for _, m := range initFilenameMarkers {
		if strings.Contains(base, m) {
			return schemaPriorityInit
		}
	}

	if canonicalDataFiles[base] {
		if len(dirs) == 0 {
			return schemaPriorityCanonical
		}
		if canonicalParentDirs[strings.ToLower(dirs[len(dirs)-1])] {
			return schemaPriorityCanonical
		}
		for _, d := range dirs {
			if databaseDirs[strings.ToLower(d)] {
				return schemaPriorityCanonical
			}
		}
	}

	return schemaPriorityDefault
}
