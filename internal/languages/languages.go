package languages

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// ConfigDirectory and ConfigFile make up the location of the command table
// relative to the directory holding the running executable.
const (
	ConfigDirectory = "runners"
	ConfigFile      = "config.json"
)

// Table maps a language identifier to the command that interprets it. Keys are
// case-sensitive and the values are passed as-is to the process launcher.
type Table map[string]string

// ConfigurationError is returned when the command table cannot be loaded or
// parsed. It is fatal to the invocation that requested it.
type ConfigurationError struct {
	Path string
	Err  error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid language configuration %s: %v", e.Path, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// DefaultPath returns runners/config.json next to the running executable.
func DefaultPath() (string, error) {
	executable, err := os.Executable()

	if err != nil {
		return "", errors.Wrap(err, "failed to resolve executable path")
	}

	if resolved, evalErr := filepath.EvalSymlinks(executable); evalErr == nil {
		executable = resolved
	}

	return filepath.Join(filepath.Dir(executable), ConfigDirectory, ConfigFile), nil
}

// Load reads the flat JSON command table located at path.
func Load(path string) (Table, error) {
	fileBytes, err := os.ReadFile(path)

	if err != nil {
		return nil, &ConfigurationError{Path: path, Err: errors.Wrap(err, "failed to read command table")}
	}

	return Parse(path, fileBytes)
}

// LoadDefault loads the table at path, or at DefaultPath when path is empty.
func LoadDefault(path string) (Table, error) {
	if path == "" {
		defaultPath, err := DefaultPath()

		if err != nil {
			return nil, &ConfigurationError{Path: ConfigFile, Err: err}
		}

		path = defaultPath
	}

	return Load(path)
}

// Parse decodes the command table, the source is only used for error reporting.
func Parse(source string, data []byte) (Table, error) {
	var raw map[string]any

	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ConfigurationError{Path: source, Err: errors.Wrap(err, "failed to parse command table")}
	}

	if raw == nil {
		return nil, &ConfigurationError{Path: source, Err: errors.New("command table must be a JSON object")}
	}

	table := make(Table, len(raw))

	for language, value := range raw {
		command, ok := value.(string)

		if !ok {
			return nil, &ConfigurationError{
				Path: source,
				Err:  errors.Errorf("command for language %q must be a string", language),
			}
		}

		if strings.TrimSpace(command) == "" {
			return nil, &ConfigurationError{
				Path: source,
				Err:  errors.Errorf("command for language %q is empty", language),
			}
		}

		table[language] = command
	}

	return table, nil
}

// Lookup resolves the command for the given language.
func (t Table) Lookup(language string) (string, bool) {
	command, ok := t[language]
	return command, ok
}

// Languages returns the supported language identifiers in sorted order.
func (t Table) Languages() []string {
	keys := make([]string, 0, len(t))

	for language := range t {
		keys = append(keys, language)
	}

	sort.Strings(keys)
	return keys
}
