package activity

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mikefelder/copilot-usage-advanced-dashboard/internal/record"
)

// WriteJSON dumps the fetched batch as an indented JSON array under dir,
// named by organization slug.
func WriteJSON(records []record.Activity, organizationSlug, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create results directory: %w", err)
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_developer_activity.json", organizationSlug))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
