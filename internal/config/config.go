// Package config loads the optional i3keep configuration file.
package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/i3keep/i3keep/internal/errdefs"
	"github.com/i3keep/i3keep/internal/layout"
)

// Save controls the save command and the save_layout MCP tool.
type Save struct {
	SwallowCriteria []string `toml:"swallow_criteria"`
}

// Archive controls where the layout archive database lives.
type Archive struct {
	Path string `toml:"path"`
}

// MCP controls the serve command.
type MCP struct {
	Transport  string `toml:"transport"`
	Port       int    `toml:"port"`
	CacheTTLMs int    `toml:"cache_ttl_ms"`
}

// CacheTTL returns the snapshot cache lifetime as a duration.
func (m MCP) CacheTTL() time.Duration {
	return time.Duration(m.CacheTTLMs) * time.Millisecond
}

// Preview controls PNG rendering.
type Preview struct {
	Scale float64 `toml:"scale"`
}

// Config is the full i3keep configuration.
type Config struct {
	Save    Save    `toml:"save"`
	Archive Archive `toml:"archive"`
	MCP     MCP     `toml:"mcp"`
	Preview Preview `toml:"preview"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Save:    Save{SwallowCriteria: append([]string(nil), layout.DefaultSwallowKeys...)},
		Archive: Archive{Path: defaultArchivePath()},
		MCP:     MCP{Transport: "stdio", Port: 8931, CacheTTLMs: 500},
		Preview: Preview{Scale: 0.15},
	}
}

// DefaultPath returns the conventional config file location:
// $XDG_CONFIG_HOME/i3keep/config.toml, falling back to ~/.config.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "i3keep", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "i3keep", "config.toml")
}

func defaultArchivePath() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "i3keep", "archive.db")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "archive.db"
	}
	return filepath.Join(home, ".local", "share", "i3keep", "archive.db")
}

// Load reads the configuration at path, or the default location when path is
// empty. A missing file at the default location yields the defaults; an
// explicitly named file must exist. Unknown keys are rejected so a typo does
// not silently fall back to a default.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, errdefs.Wrap(errdefs.CodeInvalidInput, err, "read config %s", path)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, errdefs.Wrap(errdefs.CodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errdefs.New(errdefs.CodeInvalidInput,
			"unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	for _, key := range c.Save.SwallowCriteria {
		if !slices.Contains(layout.DefaultSwallowKeys, key) {
			return errdefs.New(errdefs.CodeInvalidInput,
				"unknown swallow criterion %q (known: %s)",
				key, strings.Join(layout.DefaultSwallowKeys, ", "))
		}
	}
	switch c.MCP.Transport {
	case "stdio", "streamable-http":
	default:
		return errdefs.New(errdefs.CodeInvalidInput,
			"unknown mcp transport %q (expected stdio or streamable-http)", c.MCP.Transport)
	}
	if c.MCP.Port < 1 || c.MCP.Port > 65535 {
		return errdefs.New(errdefs.CodeInvalidInput, "mcp port %d out of range", c.MCP.Port)
	}
	if c.MCP.CacheTTLMs < 0 {
		return errdefs.New(errdefs.CodeInvalidInput, "mcp cache_ttl_ms must not be negative")
	}
	if c.Preview.Scale <= 0 || c.Preview.Scale > 1 {
		return errdefs.New(errdefs.CodeInvalidInput,
			"preview scale %v out of range (0, 1]", c.Preview.Scale)
	}
	return nil
}
