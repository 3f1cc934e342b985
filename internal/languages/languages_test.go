package languages

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTable(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	path := writeTable(t, `{"python": "python3", "javascript": "node"}`)

	table, err := Load(path)
	require.NoError(t, err)

	command, ok := table.Lookup("python")
	assert.True(t, ok)
	assert.Equal(t, "python3", command)

	_, ok = table.Lookup("Python")
	assert.False(t, ok, "lookups are case-sensitive")

	assert.Equal(t, []string{"javascript", "python"}, table.Languages())
}

func TestLoadFailures(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{{
		name:    "should fail on malformed json",
		content: `{"python": `,
	}, {
		name:    "should fail on a json array",
		content: `["python"]`,
	}, {
		name:    "should fail on null",
		content: `null`,
	}, {
		name:    "should fail on nested values",
		content: `{"python": {"command": "python3"}}`,
	}, {
		name:    "should fail on empty commands",
		content: `{"python": "  "}`,
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTable(t, tt.content)

			_, err := Load(path)

			var configErr *ConfigurationError
			require.True(t, errors.As(err, &configErr))
			assert.Equal(t, path, configErr.Path)
		})
	}

	t.Run("should fail when the file does not exist", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing.json")

		_, err := Load(path)

		var configErr *ConfigurationError
		require.True(t, errors.As(err, &configErr))
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})
}

func TestDefaultPath(t *testing.T) {
	path, err := DefaultPath()
	require.NoError(t, err)

	assert.Equal(t, ConfigFile, filepath.Base(path))
	assert.Equal(t, ConfigDirectory, filepath.Base(filepath.Dir(path)))
}

func TestLoadDefault(t *testing.T) {
	path := writeTable(t, `{"shell": "sh"}`)

	table, err := LoadDefault(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"shell"}, table.Languages())

	_, err = LoadDefault("")

	// the test binary has no runners directory next to it
	var configErr *ConfigurationError
	require.True(t, errors.As(err, &configErr))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
