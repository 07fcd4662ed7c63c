package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Feldar99/gw2-ap-yaml-generator/internal/buildinfo"
)

// resetVersionFlags resets the version command's local flag state so tests
// do not leak state between runs.
func resetVersionFlags(t *testing.T) {
	t.Helper()
	resetRootCmd(t)
	versionJSON = false
	versionCmd.Flags().VisitAll(func(f *pflag.Flag) {
		f.Changed = false
	})
}

// captureStdout runs fn with os.Stdout redirected to a pipe and returns
// everything fn wrote.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	t.Cleanup(func() {
		os.Stdout = oldStdout
	})

	fn()

	w.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	os.Stdout = oldStdout
	return buf.String()
}

func TestVersionCmd_HumanReadable(t *testing.T) {
	resetVersionFlags(t)
	rootCmd.SetArgs([]string{"version"})

	var code int
	output := captureStdout(t, func() {
		code = Execute()
	})

	assert.Equal(t, 0, code)
	assert.Contains(t, output, "gw2yaml v")
	assert.Contains(t, output, buildinfo.Version)
	assert.Contains(t, output, buildinfo.Commit)
}

func TestVersionCmd_JSON(t *testing.T) {
	resetVersionFlags(t)
	rootCmd.SetArgs([]string{"version", "--json"})

	var code int
	output := captureStdout(t, func() {
		code = Execute()
	})

	require.Equal(t, 0, code)
	var info buildinfo.Info
	require.NoError(t, json.Unmarshal([]byte(output), &info))
	assert.Equal(t, buildinfo.Version, info.Version)
	assert.Equal(t, buildinfo.Commit, info.Commit)
	assert.Equal(t, buildinfo.Date, info.Date)
}

func TestVersionCmd_RejectsArgs(t *testing.T) {
	resetVersionFlags(t)
	rootCmd.SetArgs([]string{"version", "extra"})

	code := Execute()
	assert.Equal(t, 1, code)
}
