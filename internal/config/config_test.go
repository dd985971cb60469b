package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, t.TempDir(), "run.yaml", `
strict: true
buffered: true
max_iterations: 1000
color: Never
verbosity: 2
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Strict)
	assert.True(t, cfg.Buffered)
	assert.Equal(t, 1000, cfg.MaxIterations)
	assert.Equal(t, ColorNever, cfg.Color)
	assert.Equal(t, 2, cfg.Verbosity)
	assert.True(t, filepath.IsAbs(cfg.Path))

	opts := cfg.EngineOptions()
	assert.True(t, opts.Strict)
	assert.Equal(t, 1000, opts.MaxIterations)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), "run.yaml", "buffered: true\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Buffered)
	assert.False(t, cfg.Strict)
	assert.Equal(t, ColorAuto, cfg.Color)
	assert.Zero(t, cfg.MaxIterations)
}

func TestLoadEmptyFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "run.yaml", "")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ColorAuto, cfg.Color)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeFile(t, t.TempDir(), "run.yaml", "strikt: true\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "strikt")
}

func TestLoadValidation(t *testing.T) {
	path := writeFile(t, t.TempDir(), "run.yaml", "max_iterations: -1\ncolor: purple\n")
	_, err := Load(path)
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Issues, 2)
	assert.True(t, strings.Contains(err.Error(), "purple"))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)

	_, err = Load("")
	assert.Error(t, err)
}

func TestLoadDefault(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadDefault(dir)
	require.NoError(t, err)
	assert.Empty(t, cfg.Path)

	writeFile(t, dir, DefaultFile, "strict: true\n")
	cfg, err = LoadDefault(dir)
	require.NoError(t, err)
	assert.True(t, cfg.Strict)
	assert.NotEmpty(t, cfg.Path)
}

func TestDecodeTypeMismatch(t *testing.T) {
	_, err := Decode(strings.NewReader("max_iterations: lots\n"))
	assert.Error(t, err)
}
