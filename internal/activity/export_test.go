package activity

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mikefelder/copilot-usage-advanced-dashboard/internal/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSONNamesFileByOrganization(t *testing.T) {
	dir := t.TempDir()
	records := []record.Activity{{UserLogin: "alex-chen", OrganizationSlug: "acme-corp"}}

	path, err := WriteJSON(records, "acme-corp", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "acme-corp_developer_activity.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded []record.Activity
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "alex-chen", decoded[0].UserLogin)
}

func TestWriteJSONCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "results")
	_, err := WriteJSON(nil, "acme-corp", dir)
	require.NoError(t, err)
	_, err = os.Stat(dir)
	assert.NoError(t, err)
}
