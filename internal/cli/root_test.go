package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfig creates a config file so tests never read the user's home.
func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	return executeWithConfig(t, writeConfig(t, ""), stdin, args...)
}

func executeWithConfig(t *testing.T, configPath, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", configPath}, args...))
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestOutputFormats(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "text", args: []string{"Wait 2h 15min before retry"}, want: "2 hours 15 minutes\n"},
		{name: "joined args", args: []string{"Wait", "2h", "15min"}, want: "2 hours 15 minutes\n"},
		{name: "ticks", args: []string{"-o", "ticks", "Wait 2h 15min before retry"}, want: "81000000000\n"},
		{name: "go", args: []string{"-o", "go", "1h 30m"}, want: "1h30m0s\n"},
		{name: "german", args: []string{"-l", "de", "-o", "ticks", "2,5 Std. 10 Sek."}, want: "90100000000\n"},
		{name: "english ignores german", args: []string{"-o", "ticks", "5 Stunden"}, want: "0\n"},
		{name: "zero text", args: []string{"no time units here"}, want: "0 seconds\n"},
		{name: "glued without go syntax", args: []string{"-o", "ticks", "1h30m"}, want: "18000000000\n"},
		{name: "glued with go syntax", args: []string{"--go-syntax", "-o", "ticks", "1h30m"}, want: "54000000000\n"},
		{name: "go syntax falls back", args: []string{"--go-syntax", "-o", "ticks", "1,5h"}, want: "54000000000\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, "", tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestJSONOutput(t *testing.T) {
	out, _, err := execute(t, "", "-o", "json", "1,5h 99999999999999999999s")
	require.NoError(t, err)

	var res jsonResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "1,5h 99999999999999999999s", res.Input)
	assert.Equal(t, "english", res.Language)
	assert.Equal(t, syntaxHuman, res.Syntax)
	assert.Equal(t, int64(54_000_000_000), res.Ticks)
	assert.Equal(t, "1h30m0s", res.Duration)
	assert.Equal(t, "1 hour 30 minutes", res.Text)

	require.Len(t, res.Components, 2)
	assert.Equal(t, "second", res.Components[0].Unit)
	assert.NotEmpty(t, res.Components[0].Error)
	assert.Equal(t, "hour", res.Components[1].Unit)
	assert.Equal(t, "1,5", res.Components[1].Token)
	assert.Empty(t, res.Components[1].Error)
}

func TestJSONOutput_GoSyntax(t *testing.T) {
	out, _, err := execute(t, "", "-o", "json", "--go-syntax", "1w")
	require.NoError(t, err)

	var res jsonResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, syntaxGo, res.Syntax)
	assert.Equal(t, int64(7*864_000_000_000), res.Ticks)
	assert.Empty(t, res.Components)
}

func TestExplain(t *testing.T) {
	_, stderr, err := execute(t, "", "--explain", "2h 99999999999999999999m")
	require.NoError(t, err)

	assert.Contains(t, stderr, "72,000,000,000 ticks")
	assert.Contains(t, stderr, "no match")
	assert.Contains(t, stderr, "rejected")
	assert.Contains(t, stderr, "total")
}

func TestStdinBatch(t *testing.T) {
	out, _, err := execute(t, "5h\n\n   \n30m\r\n", "-o", "ticks")
	require.NoError(t, err)
	assert.Equal(t, "180000000000\n18000000000\n", out)
}

func TestFileBatch(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte("1 Stunde\n2 Tage\n"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	path := filepath.Join(t.TempDir(), "durations.gz")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

	out, _, err := execute(t, "", "--file", path, "--lang", "german", "-o", "go")
	require.NoError(t, err)
	assert.Equal(t, "1h0m0s\n48h0m0s\n", out)
}

func TestFileDashReadsStdin(t *testing.T) {
	out, _, err := execute(t, "1d\n", "-f", "-", "-o", "ticks")
	require.NoError(t, err)
	assert.Equal(t, "864000000000\n", out)
}

func TestFailOnZero(t *testing.T) {
	out, _, err := execute(t, "5h\nnothing\n", "--fail-on-zero", "-o", "ticks")
	require.ErrorIs(t, err, ErrZeroDuration)
	assert.Contains(t, err.Error(), "1 input(s)")
	assert.Equal(t, "180000000000\n0\n", out)

	_, _, err = execute(t, "", "--fail-on-zero", "5h")
	assert.NoError(t, err)
}

func TestConfigDefaults(t *testing.T) {
	cfg := writeConfig(t, "language: german\noutput: ticks\n")

	out, _, err := executeWithConfig(t, cfg, "", "5 Stunden")
	require.NoError(t, err)
	assert.Equal(t, "180000000000\n", out)

	// Flags win over the file
	out, _, err = executeWithConfig(t, cfg, "", "-l", "english", "-o", "go", "5 Stunden")
	require.NoError(t, err)
	assert.Equal(t, "0s\n", out)
}

func TestDebugLogging(t *testing.T) {
	_, stderr, err := execute(t, "", "--log-level", "debug", "--log-format", "json", "--go-syntax", "2h")
	require.NoError(t, err)
	assert.Contains(t, stderr, `"msg":"settings_resolved"`)
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "bad language", args: []string{"-l", "fr", "5h"}, want: "invalid --lang"},
		{name: "bad output", args: []string{"-o", "yaml", "5h"}, want: "invalid --output"},
		{name: "bad log format", args: []string{"--log-format", "xml", "5h"}, want: "unsupported log format"},
		{name: "file and args", args: []string{"-f", "x.txt", "5h"}, want: "cannot be combined"},
		{name: "missing file", args: []string{"-f", filepath.Join(os.TempDir(), "humanspan-missing.txt")}, want: "failed to open input file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestBadConfig(t *testing.T) {
	_, _, err := executeWithConfig(t, writeConfig(t, "output: yaml\n"), "", "5h")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config file")
}
