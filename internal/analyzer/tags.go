package analyzer

import (
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/hs979/mono2serverless/pkg/parser"
)

// Tag names assigned by the classifier. Tags are non-exclusive traits;
// a file may carry several.
const (
	TagAWSSDK   = "AWS_SDK"
	TagDynamoDB = "DynamoDB"
	TagDatabase = "Database"
	TagAuth     = "Auth"
	TagCognito  = "Cognito"

	TagFrontendAPIConsumer = "Frontend_API_Consumer"
	TagFrontendConfig      = "Frontend_Config"
	TagFrontendHardcoded   = "Frontend_Hardcoded_URL"
	TagFrontendAuth        = "Frontend_Auth_Integration"
	TagFrontendUIComponent = "Frontend_UI_Component"
)

var dynamoMarkers = []string{
	"dynamodb",
	"dynamo",
	"putitem",
	"getitem",
	"updateitem",
	"deleteitem",
	"scan(",
	"query(",
	".table(",
	"batchwriteitem",
	"batchgetitem",
}

var databaseMarkers = []string{
	"sqlite",
	"pymysql",
	"mysql",
	"postgresql",
	"postgres",
	"mongodb",
}

var awsSDKMarkers = []string{"boto3", "aws-sdk", "@aws-sdk"}

var authVendorMarkers = []string{"cognito", "userpool", "amplify", "auth0", "firebase"}

var explicitAuthCalls = []string{
	"currentauthenticateduser",
	"signin(",
	"signout(",
	"signup(",
	"getsession",
}

var clientCallMarkers = []string{
	"axios.",
	"$.ajax",
	"xmlhttprequest",
	"superagent",
	"api.get(",
	"api.post(",
	"api.put(",
	"api.del(",
	"api.patch(",
}

var configFilenames = map[string]bool{
	"config":               true,
	"settings":             true,
	"env":                  true,
	"constants":            true,
	"aws-exports":          true,
	"amplifyconfiguration": true,
}

var (
	bareFetchPattern    = regexp.MustCompile(`\bfetch\s*\(`)
	hardcodedURLPattern = regexp.MustCompile(`(?i)['"](?:https?://(?:localhost|127\.0\.0\.1)[^'"]*|/api/[^'"]*)['"]`)
	configObjectPattern = regexp.MustCompile(`(?i)\b(?:const|let|var)\s+(?:config|settings|awsconfig|awsmobile|apiconfig)\s*=`)
)

// TagFile classifies one file into a sorted set of trait tags. Frontend
// and backend files use disjoint rule sets; a frontend file with no
// matching trait falls back to the pure UI component tag.
func TagFile(relPath string, source []byte) []string {
	if parser.IsFrontend(relPath) {
		return tagFrontendFile(relPath, source)
	}
	return tagBackendFile(source)
}

// tagBackendFile runs lowercase substring checks, at most one tag per
// family. The generic database tag is suppressed when the key-value
// store tag already fired.
func tagBackendFile(source []byte) []string {
	content := strings.ToLower(string(source))
	tags := make(map[string]bool)

	for _, m := range awsSDKMarkers {
		if strings.Contains(content, m) {
			tags[TagAWSSDK] = true
			break
		}
	}
	for _, m := range dynamoMarkers {
		if strings.Contains(content, m) {
			tags[TagDynamoDB] = true
			break
		}
	}
	if !tags[TagDynamoDB] {
		for _, m := range databaseMarkers {
			if strings.Contains(content, m) {
				tags[TagDatabase] = true
				break
			}
		}
	}
	if strings.Contains(content, "jwt") || strings.Contains(content, "jsonwebtoken") {
		tags[TagAuth] = true
	}
	if strings.Contains(content, "cognito") || strings.Contains(content, "cognitoidentityserviceprovider") {
		tags[TagCognito] = true
	}

	return sortedTags(tags)
}

func tagFrontendFile(relPath string, source []byte) []string {
	content := strings.ToLower(string(source))
	base := strings.ToLower(path.Base(relPath))
	stem := strings.TrimSuffix(base, path.Ext(base))

	tags := make(map[string]bool)

	if configFilenames[stem] {
		tags[TagFrontendConfig] = true
	}
	if configObjectPattern.MatchString(content) {
		tags[TagFrontendConfig] = true
	}

	if hasAny(content, clientCallMarkers) || bareFetchPattern.MatchString(content) {
		tags[TagFrontendAPIConsumer] = true
	}

	if hardcodedURLPattern.MatchString(content) {
		tags[TagFrontendHardcoded] = true
	}

	authHit := strings.Contains(content, ".configure(") ||
		hasAny(content, authVendorMarkers) ||
		strings.Contains(content, "process.env") ||
		strings.Contains(content, "import.meta.env")
	if isRouterFile(stem) {
		// Router files often import auth modules just to guard navigation.
		// Require an explicit auth call before tagging them.
		authHit = hasAny(content, explicitAuthCalls)
	}
	if authHit {
		tags[TagFrontendAuth] = true
	}

	if isServiceWorkerFile(stem) {
		delete(tags, TagFrontendAPIConsumer)
		tags[TagFrontendConfig] = true
	}

	if len(tags) == 0 && parser.DetectLanguage(relPath) != parser.LangUnknown {
		tags[TagFrontendUIComponent] = true
	}

	return sortedTags(tags)
}

func isRouterFile(stem string) bool {
	return stem == "router" || stem == "routes" || strings.HasSuffix(stem, ".router") ||
		strings.HasSuffix(stem, "-router") || strings.HasSuffix(stem, "-routes")
}

func isServiceWorkerFile(stem string) bool {
	return stem == "sw" || strings.Contains(stem, "service-worker") || strings.Contains(stem, "serviceworker")
}

func hasAny(content string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(content, m) {
			return true
		}
	}
	return false
}

func sortedTags(tags map[string]bool) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, 0, len(tags))
	for t := range tags {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
