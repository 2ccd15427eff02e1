package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}

func TestLoadDefaultsWhenNoFilePresent(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(LoadInput{WorkDirOverride: dir, Env: map[string]string{}})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "pictures.pictdb"), cfg.DBPathAbs)
}

func TestLoadFromProjectConfigFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ConfigFileName), `{"db_path": "my.pictdb"}`)

	cfg, err := Load(LoadInput{WorkDirOverride: dir, Env: map[string]string{}})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "my.pictdb"), cfg.DBPathAbs)
}

func TestLoadAcceptsJSONCWithComments(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ConfigFileName), `{
		// project picture store
		"db_path": "commented.pictdb",
		"jpeg_quality": 80,
	}`)

	cfg, err := Load(LoadInput{WorkDirOverride: dir, Env: map[string]string{}})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "commented.pictdb"), cfg.DBPathAbs)
	require.Equal(t, 80, cfg.JPEGQuality)
}

func TestLoadExplicitConfigFlag(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "custom.json"), `{"db_path": "custom.pictdb"}`)

	cfg, err := Load(LoadInput{WorkDirOverride: dir, ConfigPath: "custom.json", Env: map[string]string{}})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "custom.pictdb"), cfg.DBPathAbs)
}

func TestLoadExplicitConfigFlagMissingFileFails(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(LoadInput{WorkDirOverride: dir, ConfigPath: "nope.json", Env: map[string]string{}})
	require.ErrorIs(t, err, ErrConfigFileNotFound)
}

func TestLoadCLIOverrideWinsOverFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ConfigFileName), `{"db_path": "from-file.pictdb"}`)

	cfg, err := Load(LoadInput{
		WorkDirOverride: dir,
		DBPathOverride:  "from-cli.pictdb",
		Env:             map[string]string{},
	})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "from-cli.pictdb"), cfg.DBPathAbs)
}

func TestLoadRejectsInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ConfigFileName), `{not json`)

	_, err := Load(LoadInput{WorkDirOverride: dir, Env: map[string]string{}})
	require.ErrorIs(t, err, ErrConfigInvalid)
}

func TestLoadGlobalConfigFromXDG(t *testing.T) {
	xdg := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(xdg, "pictdb"), 0o755))
	writeFile(t, filepath.Join(xdg, "pictdb", "config.json"), `{"db_path": "global.pictdb"}`)

	dir := t.TempDir()

	cfg, err := Load(LoadInput{WorkDirOverride: dir, Env: map[string]string{"XDG_CONFIG_HOME": xdg}})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "global.pictdb"), cfg.DBPathAbs)
}
