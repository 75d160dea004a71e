package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/f9-o/greet/api/v1"
	"github.com/f9-o/greet/internal/core/config"
)

// sandbox isolates GREET_HOME, the CWD and GREET_* overrides for one test.
func sandbox(t *testing.T) (home, cwd string) {
	t.Helper()
	home = t.TempDir()
	cwd = t.TempDir()
	t.Setenv("GREET_HOME", home)
	for _, key := range []string{"GREET_GREETER_NAME", "GREET_HISTORY_ENABLED", "GREET_HISTORY_MAX_RECORDS", "GREET_LOG_LEVEL", "GREET_LOG_FORMAT"} {
		unsetenv(t, key)
	}
	chdir(t, cwd)
	return home, cwd
}

// unsetenv removes key for the test and restores any previous value.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	old, ok := os.LookupEnv(key)
	require.NoError(t, os.Unsetenv(key))
	t.Cleanup(func() {
		if ok {
			_ = os.Setenv(key, old)
		} else {
			_ = os.Unsetenv(key)
		}
	})
}

func run(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = Run(context.Background(), args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func history(t *testing.T) []v1.GreetingRecord {
	t.Helper()
	code, out, stderr := run(t, "history", "--json")
	require.Equal(t, 0, code, stderr)
	var recs []v1.GreetingRecord
	require.NoError(t, json.Unmarshal([]byte(out), &recs))
	return recs
}

func TestDefaultRunPrintsTwoLines(t *testing.T) {
	sandbox(t)

	code, out, stderr := run(t)
	assert.Equal(t, 0, code)
	assert.Equal(t, "Hello from 4coder!\nHello, 4coder!\n", out)
	assert.Empty(t, stderr)
}

func TestHello(t *testing.T) {
	sandbox(t)

	code, out, _ := run(t, "hello")
	assert.Equal(t, 0, code)
	assert.Equal(t, "Hello from 4coder!\n", out)
}

func TestSay(t *testing.T) {
	sandbox(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"explicit", []string{"say", "4coder"}, "Hello, 4coder!\n"},
		{"empty", []string{"say", ""}, "Hello, !\n"},
		{"default name", []string{"say"}, "Hello, 4coder!\n"},
		{"unicode", []string{"say", "Zoë"}, "Hello, Zoë!\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, stderr := run(t, tt.args...)
			require.Equal(t, 0, code, stderr)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestSayJSON(t *testing.T) {
	sandbox(t)

	code, out, _ := run(t, "say", "--json", "Ada")
	require.Equal(t, 0, code)
	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, map[string]string{"name": "Ada", "greeting": "Hello, Ada!"}, got)
}

func TestConfiguredName(t *testing.T) {
	_, cwd := sandbox(t)
	require.NoError(t, os.WriteFile(filepath.Join(cwd, config.ProjectFile), []byte("greeter:\n  name: Ada\n"), 0o644))

	code, out, _ := run(t)
	require.Equal(t, 0, code)
	assert.Equal(t, "Hello from 4coder!\nHello, Ada!\n", out)

	t.Setenv("GREET_GREETER_NAME", "Grace")
	code, out, _ = run(t, "say")
	require.Equal(t, 0, code)
	assert.Equal(t, "Hello, Grace!\n", out)
}

func TestEmptyEnvNameGreetsEmpty(t *testing.T) {
	sandbox(t)
	t.Setenv("GREET_GREETER_NAME", "")

	code, out, _ := run(t)
	require.Equal(t, 0, code)
	assert.Equal(t, "Hello from 4coder!\nHello, !\n", out)
}

func TestHistoryRecordsNewestFirst(t *testing.T) {
	sandbox(t)

	for _, args := range [][]string{{}, {"say", "Ada"}, {"hello"}} {
		code, _, stderr := run(t, args...)
		require.Equal(t, 0, code, stderr)
	}

	recs := history(t)
	require.Len(t, recs, 3)
	assert.Equal(t, "Hello from 4coder!", recs[0].Greeting)
	assert.Equal(t, "Hello, Ada!", recs[1].Greeting)
	assert.Equal(t, "4coder", recs[2].Name)
	assert.Equal(t, uint64(1), recs[2].Seq)

	code, out, _ := run(t, "history", "--limit", "1")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Hello from 4coder!")
	assert.NotContains(t, out, "Hello, Ada!")

	code, _, _ = run(t, "history", "--clear")
	require.Equal(t, 0, code)
	assert.Empty(t, history(t))
}

func TestHistoryDisabled(t *testing.T) {
	sandbox(t)

	t.Setenv("GREET_HISTORY_ENABLED", "false")
	code, _, _ := run(t, "say", "Ada")
	require.Equal(t, 0, code)
	assert.Empty(t, history(t))

	code, out, _ := run(t, "--no-history")
	require.Equal(t, 0, code)
	assert.Equal(t, "Hello from 4coder!\nHello, 4coder!\n", out)

	code, _, stderr := run(t, "--no-history", "history")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "state store not opened")
}

func TestHistoryCap(t *testing.T) {
	sandbox(t)
	t.Setenv("GREET_HISTORY_MAX_RECORDS", "2")

	for _, n := range []string{"a", "b", "c"} {
		code, _, _ := run(t, "say", n)
		require.Equal(t, 0, code)
	}
	recs := history(t)
	require.Len(t, recs, 2)
	assert.Equal(t, "c", recs[0].Name)
	assert.Equal(t, "b", recs[1].Name)
}

func TestAuditLog(t *testing.T) {
	home, _ := sandbox(t)

	code, _, _ := run(t, "say", "Ada")
	require.Equal(t, 0, code)

	data, err := os.ReadFile(filepath.Join(home, "audit.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"op":"say"`)
	assert.Contains(t, string(data), `"name":"Ada"`)
}

func TestInvalidConfig(t *testing.T) {
	_, cwd := sandbox(t)
	require.NoError(t, os.WriteFile(filepath.Join(cwd, config.ProjectFile), []byte("log:\n  level: loud\n"), 0o644))

	code, out, stderr := run(t)
	assert.Equal(t, 1, code)
	assert.Empty(t, out)
	assert.Contains(t, stderr, "ERR-CFG-002")
	assert.Contains(t, stderr, "debug, info, warn, error")
}

func TestInit(t *testing.T) {
	_, cwd := sandbox(t)
	target := filepath.Join(cwd, "proj")

	code, out, stderr := run(t, "init", "--path", target)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, out, "Created")

	data, err := os.ReadFile(filepath.Join(target, config.ProjectFile))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfigTemplate, string(data))

	code, _, stderr = run(t, "init", "--path", target)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "ERR-CFG-003")

	// The scaffold loads cleanly and keeps the default output.
	chdir(t, target)
	code, out, _ = run(t)
	require.Equal(t, 0, code)
	assert.Equal(t, "Hello from 4coder!\nHello, 4coder!\n", out)
}

func TestVersionJSON(t *testing.T) {
	home, _ := sandbox(t)

	code, out, _ := run(t, "version", "--json")
	require.Equal(t, 0, code)
	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "dev", info["version"])
	assert.Contains(t, info, "go_version")

	// version skips runtime init, so no state file appears.
	_, err := os.Stat(filepath.Join(home, "state.db"))
	assert.True(t, os.IsNotExist(err))
}

func TestUnknownArgs(t *testing.T) {
	sandbox(t)

	code, out, _ := run(t, "say", "a", "b")
	assert.Equal(t, 1, code)
	assert.Empty(t, out)
}

func TestCompletionSkipsRuntime(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"completion script", []string{"completion", "bash"}},
		{"completion request", []string{"__complete", "say", ""}},
		{"completion request without descriptions", []string{"__completeNoDesc", "s"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home, _ := sandbox(t)

			code, _, stderr := run(t, tt.args...)
			require.Equal(t, 0, code, stderr)

			for _, f := range []string{"state.db", "audit.log", filepath.Join("logs", "greet.log")} {
				_, err := os.Stat(filepath.Join(home, f))
				assert.True(t, os.IsNotExist(err), "%s should not exist", f)
			}
		})
	}
}

func TestSkipsRuntime(t *testing.T) {
	var out bytes.Buffer
	root := (&app{stderr: &out}).rootCmd()
	root.InitDefaultCompletionCmd()

	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"completion", "zsh"}, true},
		{[]string{"version"}, true},
		{[]string{"init"}, true},
		{[]string{"say"}, false},
		{[]string{"history"}, false},
		{[]string{}, false},
	}
	for _, tt := range tests {
		cmd, _, err := root.Find(tt.args)
		require.NoError(t, err, "%v", tt.args)
		assert.Equal(t, tt.want, skipsRuntime(cmd), "%v", tt.args)
	}
}

// chdir changes the working directory for the test and restores it on
// cleanup (stand-in for testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
