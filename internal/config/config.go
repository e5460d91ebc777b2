// Package config loads application configuration from the environment and
// an optional .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds configuration shared by both pipelines.
type Config struct {
	GithubToken       string
	OrganizationSlugs []string
	DaysBack          int

	LogPath     string
	LogLevel    string
	ResultsPath string

	ElasticsearchURL       string
	IndexUserMetrics       string
	IndexDeveloperActivity string

	Timezone string

	Mock MockConfig
}

// MockConfig holds the simulator knobs.
type MockConfig struct {
	OrganizationSlug string
	Developers       int
	DaysOfData       int
	AdoptionDaysAgo  int
	Seed             int64
}

// Load reads configuration from environment variables, loading .env first
// if one is present in the working directory.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		GithubToken:       getenv("GITHUB_PAT", ""),
		OrganizationSlugs: splitSlugs(getenv("ORGANIZATION_SLUGS", "")),
		DaysBack:          getenvInt("DAYS_BACK", 28),

		LogPath:     getenv("LOG_PATH", "logs"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
		ResultsPath: getenv("RESULTS_PATH", "results"),

		ElasticsearchURL:       getenv("ELASTICSEARCH_URL", "http://localhost:9200"),
		IndexUserMetrics:       getenv("INDEX_USER_METRICS", "copilot_user_metrics"),
		IndexDeveloperActivity: getenv("INDEX_DEVELOPER_ACTIVITY", "developer_activity"),

		Timezone: getenv("TZ", "GMT"),

		Mock: MockConfig{
			OrganizationSlug: getenv("MOCK_ORGANIZATION_SLUG", "acme-corp"),
			Developers:       getenvInt("MOCK_DEVELOPERS", 25),
			DaysOfData:       getenvInt("MOCK_DAYS_OF_DATA", 150),
			AdoptionDaysAgo:  getenvInt("MOCK_ADOPTION_DAYS_AGO", 70),
			Seed:             getenvInt64("MOCK_SEED", 0),
		},
	}
}

// ParseOrgSlug splits the optional "standalone:" prefix off an organization
// identifier. A standalone slug names an enterprise rather than an org.
func ParseOrgSlug(raw string) (slug string, standalone bool) {
	slug = strings.TrimSpace(raw)
	if strings.HasPrefix(slug, "standalone:") {
		return strings.TrimPrefix(slug, "standalone:"), true
	}
	return slug, false
}

// UTCOffset resolves the named timezone and formats its current UTC offset
// as +HH:MM / -HH:MM. Unknown names fall back to GMT.
func UTCOffset(tzName string) string {
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		loc = time.UTC
	}
	_, offsetSec := time.Now().In(loc).Zone()
	sign := "+"
	if offsetSec < 0 {
		sign = "-"
		offsetSec = -offsetSec
	}
	return fmt.Sprintf("%s%02d:%02d", sign, offsetSec/3600, (offsetSec%3600)/60)
}

func splitSlugs(raw string) []string {
	var slugs []string
	for _, part := range strings.Split(raw, ",") {
		if s := strings.TrimSpace(part); s != "" {
			slugs = append(slugs, s)
		}
	}
	return slugs
}

func lookup(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func getenv(key, def string) string {
	if v := lookup(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	v := lookup(key)
	if v == "" {
		return def
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return parsed
}

func getenvInt64(key string, def int64) int64 {
	v := lookup(key)
	if v == "" {
		return def
	}
	parsed, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return parsed
}
