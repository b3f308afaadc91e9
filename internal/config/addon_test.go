package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/addonkit/internal/addon"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644))
}

func TestLoadMissingUsesDefaults(t *testing.T) {
	root := filepath.Join(t.TempDir(), "my_addon")
	require.NoError(t, os.Mkdir(root, 0o755))

	cfg, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, "my_addon", cfg.Name)
	assert.Empty(t, cfg.Namespace)
	assert.False(t, cfg.Debug)
	assert.Equal(t, addon.DefaultCapabilities(), cfg.CapabilitySet())
	assert.Empty(t, cfg.TranslationsPath(root))
}

func TestLoad(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `
name = "tools"
category = "Tools"
debug = true
target_dirs = ["operators", "panels"]
translations = "i18n.yaml"
capabilities = ["Operator", "Panel"]
`)

	cfg, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, "tools", cfg.Name)
	assert.Equal(t, "tools", cfg.Namespace)
	assert.Equal(t, "Tools", cfg.Category)
	assert.True(t, cfg.Debug)
	assert.Equal(t, []string{"operators", "panels"}, cfg.TargetDirs)
	assert.Equal(t, []addon.Capability{addon.Operator, addon.Panel}, cfg.CapabilitySet())
	assert.Equal(t, filepath.Join(root, "i18n.yaml"), cfg.TranslationsPath(root))
}

func TestLoadParseError(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "name = \n")

	_, err := Load(root)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, filepath.Join(root, FileName), pe.Path)
	assert.Equal(t, 1, pe.Line)
	assert.Contains(t, pe.Error(), "line 1")
}

func TestLoadValidation(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `
target_dirs = ["ops/nested", ""]
capabilities = ["Operator", "Widget"]
`)

	_, err := Load(root)
	require.ErrorIs(t, err, ErrValidationFailed)
	require.ErrorIs(t, err, addon.ErrUnknownCapability)
	assert.Contains(t, err.Error(), "ops/nested")
}

func TestLoadWithoutNameHasNoNamespace(t *testing.T) {
	root := filepath.Join(t.TempDir(), "my_addon")
	require.NoError(t, os.Mkdir(root, 0o755))
	writeConfig(t, root, `category = "Tools"`)

	cfg, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, "my_addon", cfg.Name)
	assert.Empty(t, cfg.Namespace)

	writeConfig(t, root, `namespace = "tools"`)
	cfg, err = Load(root)
	require.NoError(t, err)
	assert.Equal(t, "my_addon", cfg.Name)
	assert.Equal(t, "tools", cfg.Namespace)
}
