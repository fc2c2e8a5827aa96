package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/sirupsen/logrus"
)

const appName = "localplay"

type Config struct {
	LibrarySources []string `koanf:"library_sources"` // directories scanned for music
	IndexPath      string   `koanf:"index_path"`      // sqlite media index
	LogLevel       string   `koanf:"log_level"`       // logrus level name (default: "info")

	// Desktop notifications on track change (default: true)
	Notifications *bool `koanf:"notifications"`

	// Ask before reading the library (default: true)
	AskPermission *bool `koanf:"ask_permission"`
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	for i, src := range cfg.LibrarySources {
		cfg.LibrarySources[i] = expandPath(src)
	}

	if cfg.IndexPath == "" {
		path, err := defaultIndexPath()
		if err != nil {
			return nil, err
		}
		cfg.IndexPath = path
	} else {
		cfg.IndexPath = expandPath(cfg.IndexPath)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/localplay/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", appName, "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func defaultIndexPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, "index.db"))
}

// LogPath returns the file the TUI writes its log to.
func LogPath() (string, error) {
	return xdg.StateFile(filepath.Join(appName, appName+".log"))
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// NotificationsEnabled reports whether track changes raise desktop
// notifications.
func (c *Config) NotificationsEnabled() bool {
	return c.Notifications == nil || *c.Notifications
}

// ShouldAskPermission reports whether the user is asked before the library
// is read.
func (c *Config) ShouldAskPermission() bool {
	return c.AskPermission == nil || *c.AskPermission
}

// Level returns the configured log level, info when unset or unknown.
func (c *Config) Level() logrus.Level {
	if c.LogLevel == "" {
		return logrus.InfoLevel
	}
	lvl, err := logrus.ParseLevel(strings.TrimSpace(c.LogLevel))
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}
