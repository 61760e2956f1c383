package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetRoot clears flag state left over from a previous Execute.
func resetRoot() {
	rootCmd.SetOut(nil)
	rootCmd.SetArgs(nil)
	versionShort, versionJSON = false, false
	if f := rootCmd.PersistentFlags().Lookup("timeout"); f != nil {
		_ = f.Value.Set("")
		f.Changed = false
	}
}

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetRoot()
	t.Cleanup(resetRoot)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs(args)
	err := Execute("1.2.3", "abc123", "2026-01-02")
	return buf.String(), err
}

func executeRoot(t *testing.T, args ...string) string {
	t.Helper()
	out, err := runRoot(t, args...)
	require.NoError(t, err)
	return out
}

func TestVersionCommand(t *testing.T) {
	assert.Equal(t, "kgscaffold version 1.2.3 (commit: abc123, built: 2026-01-02)\n", executeRoot(t, "version"))
	assert.Equal(t, "1.2.3\n", executeRoot(t, "version", "--short"))

	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(executeRoot(t, "version", "--json")), &info))
	assert.Equal(t, map[string]string{"version": "1.2.3", "commit": "abc123", "date": "2026-01-02"}, info)
}

func TestNamesCommand(t *testing.T) {
	out := executeRoot(t, "names", "Weather Adapter")
	assert.Contains(t, out, "AdapterClass: WeatherAdapter\n")
}

func TestConfigCommand(t *testing.T) {
	out := executeRoot(t, "config", "set", "fallback_version", "0.9.4")
	assert.Contains(t, out, "Set fallback_version = 0.9.4")
	assert.Equal(t, "0.9.4\n", executeRoot(t, "config", "get", "fallback_version"))
}

func TestRejectsBadTimeout(t *testing.T) {
	_, err := runRoot(t, "--timeout", "abc", "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lookup_timeout")

	assert.Equal(t, "1.2.3\n", executeRoot(t, "--timeout", "3s", "version", "--short"))
}
