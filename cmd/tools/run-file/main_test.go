//go:build unix

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"code-runner/internal/runner"
)

func setupFiles(t *testing.T, script string) (configPath, scriptPath string) {
	t.Helper()

	dir := t.TempDir()
	configPath = filepath.Join(dir, "config.json")
	scriptPath = filepath.Join(dir, "script.sh")

	require.NoError(t, os.WriteFile(configPath, []byte(`{"shell": "sh"}`), 0o600))
	require.NoError(t, os.WriteFile(scriptPath, []byte(script), 0o600))

	return configPath, scriptPath
}

func TestRun(t *testing.T) {
	tests := []struct {
		name       string
		script     string
		language   string
		extra      []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{{
		name:       "should relay output and exit with zero",
		script:     "echo hello\n",
		language:   "shell",
		wantCode:   0,
		wantStdout: "hello\n",
	}, {
		name:       "should exit with the child exit code",
		script:     "echo out\necho bad >&2\nexit 7\n",
		language:   "shell",
		wantCode:   7,
		wantStdout: "out\n",
		wantStderr: "Error: bad\n",
	}, {
		name:       "should report unsupported languages",
		script:     "echo never\n",
		language:   "brainfuck",
		wantCode:   exitUnsupportedLanguage,
		wantStdout: "language \"brainfuck\" is not supported\n",
	}, {
		name:       "should report timeouts",
		script:     "while :; do :; done\n",
		language:   "shell",
		extra:      []string{"-timeout", "200ms"},
		wantCode:   exitTimedOut,
		wantStdout: "execution timed out after 200ms\n",
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath, scriptPath := setupFiles(t, tt.script)

			var stdout, stderr bytes.Buffer
			arguments := append([]string{"-languages-config", configPath}, tt.extra...)
			arguments = append(arguments, scriptPath, tt.language)

			code := run(context.Background(), arguments, &stdout, &stderr)

			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantStdout, stdout.String())
			assert.Equal(t, tt.wantStderr, stderr.String())
		})
	}
}

func TestRunConfigurationErrors(t *testing.T) {
	_, scriptPath := setupFiles(t, "echo hello\n")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-languages-config", filepath.Join(t.TempDir(), "missing.json"), scriptPath, "shell"}, &stdout, &stderr)

	assert.Equal(t, exitConfiguration, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "invalid language configuration")
}

func TestRunReadsTableFromEnvironment(t *testing.T) {
	configPath, scriptPath := setupFiles(t, "echo from-env\n")
	t.Setenv("LANGUAGES_CONFIG", configPath)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{scriptPath, "shell"}, &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Equal(t, "from-env\n", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRunUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer

	assert.Equal(t, exitConfiguration, run(context.Background(), []string{"only-a-file"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "usage: run-file")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, exitCode(&runner.Result{Status: runner.Finished}))
	assert.Equal(t, 9, exitCode(&runner.Result{Status: runner.RunTimeError, ExitCode: 9}))
	assert.Equal(t, exitLaunchFailure, exitCode(&runner.Result{Status: runner.Killed, ExitCode: -1}))
	assert.Equal(t, exitLaunchFailure, exitCode(&runner.Result{Status: runner.NotRan, ExitCode: -1}))
}
