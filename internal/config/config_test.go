package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFieldConfig(t *testing.T) {
	path := writeFile(t, "field_config.json", `{
		"fields": {
			"glucose": {"field_xref": "chk_glucose", "on_state": "On"},
			"other_tests1": {"field_xref": "txt_other1"}
		}
	}`)

	cfg, err := LoadFieldConfig(path)
	require.NoError(t, err)

	spec, err := cfg.Spec("glucose")
	require.NoError(t, err)
	assert.Equal(t, "chk_glucose", spec.Xref)
	assert.Equal(t, "On", spec.OnState)
}

func TestLoadFieldConfigEmpty(t *testing.T) {
	path := writeFile(t, "field_config.json", `{"fields": {}}`)
	_, err := LoadFieldConfig(path)
	assert.ErrorContains(t, err, "defines no fields")
}

func TestLoadFieldConfigMissing(t *testing.T) {
	_, err := LoadFieldConfig(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestLoadValidIDs(t *testing.T) {
	path := writeFile(t, "valid_ids.json", `{"patients": [7, 8], "doctors": [3]}`)

	ids, err := LoadValidIDs(path)
	require.NoError(t, err)
	assert.Equal(t, []int64{7, 8}, ids.Patients)
	assert.Equal(t, []int64{3}, ids.Doctors)
}

func TestLoadValidIDsMalformed(t *testing.T) {
	path := writeFile(t, "valid_ids.json", `{"patients": "not a list"}`)
	_, err := LoadValidIDs(path)
	assert.Error(t, err)
}
