package analyzer

import (
	"testing"

	"github.com/hs979/mono2serverless/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func TestAnalyzeProjectConfig_Requirements(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "requirements.txt", `# web framework
flask==2.0.1
boto3>=1.26

requests
`)

	info := AnalyzeProjectConfig(root)
	require.NotNil(t, info)
	assert.Nil(t, info.NodeDependencies)
	assert.Equal(t, []models.Dependency{
		{Name: "flask", Version: strptr("2.0.1")},
		{Name: "boto3", Version: strptr(">=1.26")},
		{Name: "requests"},
	}, info.PythonDependencies)
}

func TestAnalyzeProjectConfig_PackageJSON(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{
  "name": "shop",
  "dependencies": {"express": "^4.18.0", "axios": "^1.4.0"},
  "devDependencies": {"jest": "^29.0.0"}
}`)

	info := AnalyzeProjectConfig(root)
	require.NotNil(t, info)
	require.NotNil(t, info.NodeDependencies)

	// Lists are sorted by name.
	assert.Equal(t, []models.Dependency{
		{Name: "axios", Version: strptr("^1.4.0")},
		{Name: "express", Version: strptr("^4.18.0")},
	}, info.NodeDependencies.Dependencies)
	assert.Equal(t, []models.Dependency{
		{Name: "jest", Version: strptr("^29.0.0")},
	}, info.NodeDependencies.DevDependencies)
}

func TestAnalyzeProjectConfig_MalformedPackageJSON(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{not json`)

	assert.Nil(t, AnalyzeProjectConfig(root))
}

func TestAnalyzeProjectConfig_NoManifests(t *testing.T) {
	assert.Nil(t, AnalyzeProjectConfig(t.TempDir()))
}

func TestAnalyzeProjectConfig_CommentsOnlyRequirements(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "requirements.txt", "# pinned elsewhere\n\n")

	// No parseable dependency means no config section at all.
	assert.Nil(t, AnalyzeProjectConfig(root))
}
