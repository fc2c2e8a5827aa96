package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME and the xdg dirs at fresh temp dirs and moves into
// another one, so no real config leaks into the test.
func isolate(t *testing.T) (home, data string) {
	t.Helper()
	home = t.TempDir()
	data = t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", data)
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	xdg.Reload()
	t.Cleanup(xdg.Reload)
	t.Chdir(t.TempDir())
	return home, data
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"tilde expands to home", "~/music", filepath.Join(home, "music")},
		{"tilde with nested path", "~/music/library/albums", filepath.Join(home, "music", "library", "albums")},
		{"absolute path unchanged", "/usr/local/music", "/usr/local/music"},
		{"relative path unchanged", "music/albums", "music/albums"},
		{"empty string unchanged", "", ""},
		{"tilde only", "~", home},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, expandPath(tt.input))
		})
	}
}

func TestGetConfigPaths(t *testing.T) {
	home, _ := isolate(t)
	paths := getConfigPaths()

	require.Len(t, paths, 2)
	assert.Equal(t, filepath.Join(home, ".config", "localplay", "config.toml"), paths[0])
	assert.Equal(t, "config.toml", paths[1], "local config comes last and wins")
}

func TestLoad_NoConfig(t *testing.T) {
	_, data := isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.LibrarySources)
	assert.Equal(t, filepath.Join(data, "localplay", "index.db"), cfg.IndexPath)
	assert.True(t, cfg.NotificationsEnabled())
	assert.True(t, cfg.ShouldAskPermission())
	assert.Equal(t, logrus.InfoLevel, cfg.Level())
}

func TestLoad_BasicConfig(t *testing.T) {
	home, _ := isolate(t)
	writeConfig(t, "config.toml", `
library_sources = ["/music", "~/library"]
index_path = "~/.cache/localplay.db"
log_level = "debug"
notifications = false
ask_permission = false
`)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"/music", filepath.Join(home, "library")}, cfg.LibrarySources)
	assert.Equal(t, filepath.Join(home, ".cache", "localplay.db"), cfg.IndexPath)
	assert.Equal(t, logrus.DebugLevel, cfg.Level())
	assert.False(t, cfg.NotificationsEnabled())
	assert.False(t, cfg.ShouldAskPermission())
}

func TestLoad_LocalOverridesHome(t *testing.T) {
	home, _ := isolate(t)
	writeConfig(t, filepath.Join(home, ".config", "localplay", "config.toml"), `
library_sources = ["/home-music"]
log_level = "warn"
`)
	writeConfig(t, "config.toml", `library_sources = ["/local-music"]`)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"/local-music"}, cfg.LibrarySources)
	assert.Equal(t, logrus.WarnLevel, cfg.Level(), "keys absent locally are kept from home")
}

func TestLoad_InvalidToml(t *testing.T) {
	isolate(t)
	writeConfig(t, "config.toml", "invalid = [[[")

	_, err := Load()
	assert.Error(t, err)
}

func TestLevel(t *testing.T) {
	tests := []struct {
		in   string
		want logrus.Level
	}{
		{"", logrus.InfoLevel},
		{"debug", logrus.DebugLevel},
		{"WARN", logrus.WarnLevel},
		{" error ", logrus.ErrorLevel},
		{"chatty", logrus.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, (&Config{LogLevel: tt.in}).Level())
		})
	}
}

func TestLogPath(t *testing.T) {
	isolate(t)
	state := os.Getenv("XDG_STATE_HOME")

	path, err := LogPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(state, "localplay", "localplay.log"), path)
}
