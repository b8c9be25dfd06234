package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mizman/internal/mind"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "mizman", cmd.Use)
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := [][]string{
		{"serve"}, {"spirit", "mark"}, {"body", "mark"}, {"markers"}, {"streak"},
		{"asset", "add"}, {"asset", "rm"}, {"asset", "ls"}, {"networth"},
	}

	for _, path := range commands {
		t.Run(path[len(path)-1], func(t *testing.T) {
			subCmd, _, err := cmd.Find(path)
			require.NoError(t, err)
			assert.Equal(t, path[len(path)-1], subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"db", "engine", "format"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
	assert.Equal(t, "text", cmd.PersistentFlags().Lookup("format").DefValue)
}

// run executes one command against a JSON store in dir.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	for _, k := range []string{"TG_TOKEN", "TG_CHAT_ID", "MIZMAN_CONFIG"} {
		t.Setenv(k, "")
	}
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--engine", "json", "--db", filepath.Join(dir, "store.json")}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestInvalidFormat(t *testing.T) {
	_, err := run(t, t.TempDir(), "--format", "xml", "streak")
	assert.ErrorContains(t, err, "invalid format")
}

func TestSpiritMarkAndMarkers(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "spirit", "mark", "2024-01-01", "Fajr", "Isha")
	require.NoError(t, err)
	assert.Contains(t, out, "2/5")

	_, err = run(t, dir, "spirit", "mark", "2024-01-02", "--tradition", "christian",
		"Morning Prayer", "Bible Reading", "Grace before Meals", "Evening Prayer", "Meditation")
	require.NoError(t, err)

	_, err = run(t, dir, "spirit", "mark", "2024-01-03", "Vespers")
	assert.Error(t, err)

	out, err = run(t, dir, "--format", "json", "markers", "spirit", "--month", "2024-01")
	require.NoError(t, err)
	var markers map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &markers))
	assert.Equal(t, map[string]string{"2024-01-01": "partial", "2024-01-02": "complete"}, markers)

	_, err = run(t, dir, "markers", "spirit", "--month", "Jan")
	assert.Error(t, err)
}

func TestBodyMark(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, dir, "body", "mark", "2024-01-05")
	require.NoError(t, err)
	_, err = run(t, dir, "body", "mark", "2024-01-06", "--done=false")
	require.NoError(t, err)
	_, err = run(t, dir, "body", "mark", "yesterday")
	assert.Error(t, err)

	out, err := run(t, dir, "markers", "body")
	require.NoError(t, err)
	assert.Contains(t, out, "2024-01-05")
	assert.NotContains(t, out, "2024-01-06")
}

func TestStreakResetNeedsYes(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "streak")
	require.NoError(t, err)
	assert.Contains(t, out, "current 0 days")

	_, err = run(t, dir, "streak", "--reset")
	assert.ErrorIs(t, err, mind.ErrResetNotConfirmed)

	_, err = run(t, dir, "streak", "--reset", "--yes")
	assert.NoError(t, err)
}

func TestAssetLifecycle(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "asset", "add", "gold", "1200", "--id", "g")
	require.NoError(t, err)
	assert.Contains(t, out, "$1,200")

	_, err = run(t, dir, "asset", "add", "real estate", "800")
	require.NoError(t, err)

	_, err = run(t, dir, "asset", "add", "gold", "-3")
	assert.Error(t, err)
	_, err = run(t, dir, "asset", "add", "tulips", "3")
	assert.Error(t, err)

	out, err = run(t, dir, "networth")
	require.NoError(t, err)
	assert.Contains(t, out, "net worth $2,000")
	assert.Contains(t, out, "Real Estate")

	out, err = run(t, dir, "asset", "rm", "g")
	require.NoError(t, err)
	assert.Contains(t, out, "removed g")

	out, err = run(t, dir, "--format", "json", "asset", "ls")
	require.NoError(t, err)
	var assets []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &assets))
	require.Len(t, assets, 1)
	assert.Equal(t, "real_estate", assets[0]["categoryId"])
}
