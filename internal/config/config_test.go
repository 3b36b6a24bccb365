package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hamidzr/tmplstore/model"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

// isolateHome points HOME and XDG_CONFIG_HOME at a fresh temp dir and returns
// the tmplstore config dir inside it.
func isolateHome(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, ".config"))
	t.Setenv("TMPLSTORE_WORK_DIR", "")
	t.Setenv("TMPLSTORE_EXECUTABLE", "")
	t.Setenv("TMPLSTORE_LOG_LEVEL", "")
	return filepath.Join(tmpDir, ".config", "tmplstore")
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	configPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))
	return configPath
}

func newTestCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "tmplstore"}
	BindFlags(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestInitConfigDefaults(t *testing.T) {
	isolateHome(t)

	cfg, err := InitConfig(newTestCommand(t))
	require.NoError(t, err)
	assert.Equal(t, model.DefaultConfig(), cfg)
}

func TestInitConfigReadsFile(t *testing.T) {
	configDir := isolateHome(t)
	writeConfig(t, configDir, `
work_dir: /srv/app
executable: /srv/app/bin/app
log_level: debug
`)

	cfg, err := InitConfig(newTestCommand(t))
	require.NoError(t, err)
	assert.Equal(t, "/srv/app", cfg.WorkDir)
	assert.Equal(t, "/srv/app/bin/app", cfg.Executable)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestInitConfigAcceptsCamelCase(t *testing.T) {
	configDir := isolateHome(t)
	writeConfig(t, configDir, `
workDir: /camel/app
logLevel: info
`)

	cfg, err := InitConfig(newTestCommand(t))
	require.NoError(t, err)
	assert.Equal(t, "/camel/app", cfg.WorkDir)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestInitConfigRejectsMixedNamingStyles(t *testing.T) {
	configDir := isolateHome(t)
	writeConfig(t, configDir, `
work_dir: /snake
workDir: /camel
`)

	cfg, err := InitConfig(newTestCommand(t))
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "work_dir")
	assert.Contains(t, err.Error(), "workDir")
}

func TestInitConfigRejectsUnknownKeys(t *testing.T) {
	configDir := isolateHome(t)
	writeConfig(t, configDir, `
data_dir: /somewhere
`)

	_, err := InitConfig(newTestCommand(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid key "data_dir"`)
}

func TestInitConfigInvalidYAML(t *testing.T) {
	configDir := isolateHome(t)
	writeConfig(t, configDir, `
work_dir: [broken
`)

	_, err := InitConfig(newTestCommand(t))
	assert.Error(t, err)
}

func TestInitConfigPriority(t *testing.T) {
	configDir := isolateHome(t)
	writeConfig(t, configDir, `
work_dir: /from/file
executable: /from/file/bin/app
log_level: info
`)
	t.Setenv("TMPLSTORE_WORK_DIR", "/from/env")
	t.Setenv("TMPLSTORE_LOG_LEVEL", "error")

	cfg, err := InitConfig(newTestCommand(t, "--log-level", "trace"))
	require.NoError(t, err)

	assert.Equal(t, "trace", cfg.LogLevel, "flag beats env")
	assert.Equal(t, "/from/env", cfg.WorkDir, "env beats file")
	assert.Equal(t, "/from/file/bin/app", cfg.Executable, "file beats default")
}

func TestInitConfigExplicitFile(t *testing.T) {
	isolateHome(t)
	configPath := writeConfig(t, filepath.Join(t.TempDir(), "custom"), `
executable: /custom/bin/app
`)

	cfg, err := InitConfig(newTestCommand(t, "--config", configPath))
	require.NoError(t, err)
	assert.Equal(t, "/custom/bin/app", cfg.Executable)
}

func TestInitConfigExplicitFileMissing(t *testing.T) {
	isolateHome(t)

	_, err := InitConfig(newTestCommand(t, "--config", filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Error(t, err)
}

func TestInitConfigFile(t *testing.T) {
	configDir := isolateHome(t)

	configPath, err := InitConfigFile()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(configDir, "config.yaml"), configPath)
	assert.FileExists(t, configPath)

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# tmplstore configuration file")

	var written model.Config
	require.NoError(t, yaml.Unmarshal(data, &written))
	assert.Equal(t, *model.DefaultConfig(), written)

	// the generated file must load cleanly
	cfg, err := InitConfig(newTestCommand(t))
	require.NoError(t, err)
	assert.Equal(t, model.DefaultConfig(), cfg)

	_, err = InitConfigFile()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestConfigSearchPaths(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	paths := getConfigPaths()
	assert.Equal(t, []string{
		filepath.Join(tmpDir, ".config", "tmplstore"),
		filepath.Join(tmpDir, ".tmplstore"),
		filepath.Join(tmpDir, "xdg", "tmplstore"),
		".",
	}, paths)
}

func TestCanonicalKey(t *testing.T) {
	tests := []struct {
		key   string
		want  string
		known bool
		style string
	}{
		{key: "work_dir", want: "work_dir", known: true, style: "snake_case"},
		{key: "workDir", want: "work_dir", known: true, style: "camelCase"},
		{key: "executable", want: "executable", known: true, style: "snake_case"},
		{key: "log_level", want: "log_level", known: true, style: "snake_case"},
		{key: "logLevel", want: "log_level", known: true, style: "camelCase"},
		{key: "log-level"},
		{key: "data_dir"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := canonicalKey(tt.key)
			assert.Equal(t, tt.known, ok)
			assert.Equal(t, tt.want, got)
			if tt.known {
				assert.Equal(t, tt.style, keyStyle(tt.key))
			}
		})
	}
}

func TestInitConfigEmptyFile(t *testing.T) {
	configDir := isolateHome(t)
	writeConfig(t, configDir, "")

	cfg, err := InitConfig(newTestCommand(t))
	require.NoError(t, err)
	assert.Equal(t, model.DefaultConfig(), cfg)
}
