package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestConfigShow_YAML(t *testing.T) {
	setupCLIEnv(t)

	out, err := executeRoot(t, "config", "show")
	require.NoError(t, err)

	var view map[string]map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &view), out)
	assert.Equal(t, "08:30", view["workday"]["start"])
	assert.Equal(t, "16:45", view["workday"]["end"])
	assert.Equal(t, "UTC", view["workday"]["timezone"])
	assert.Equal(t, "30s", view["api"]["timeout"])
	assert.Equal(t, "not set", view["api"]["token"])
	assert.Equal(t, "clamp", view["scheduler"]["hours_policy"])
}

func TestConfigShow_NeverPrintsToken(t *testing.T) {
	setupCLIEnv(t)

	deps := scheduleDeps{getenv: func(string) string { return "super-secret-value" }}
	var buf bytes.Buffer
	require.NoError(t, runConfigShow(context.Background(), &buf, &GlobalFlags{Output: OutputJSON}, deps))

	assert.NotContains(t, buf.String(), "super-secret-value")

	var view map[string]map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &view))
	assert.Equal(t, "set", view["api"]["token"])
	assert.Equal(t, "TEAMCAL_TOKEN", view["api"]["token_env_var"])
}

func TestConfigShow_InvalidConfig(t *testing.T) {
	setupCLIEnv(t)
	t.Setenv("TEAMCAL_WORKDAY_TIMEZONE", "Mars/Olympus")

	_, err := executeRoot(t, "config", "show")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")
}
