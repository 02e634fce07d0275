// Package settings loads the rovers TOML settings file.
//
// Values are layered: built-in defaults, then the TOML file, then command
// line flags and ROVERS_* environment variables applied by the caller.
package settings

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultFile is read when no settings path is given and the file exists
const DefaultFile = "rovers.toml"

// Settings holds every configurable value
type Settings struct {
	Run    RunSettings
	Server ServerSettings
	Log    LogSettings
}

// RunSettings configures the run command
type RunSettings struct {
	Input  string
	Output string
	Policy string
	Grid   bool
}

// ServerSettings configures the serve and mcp commands
type ServerSettings struct {
	Host        string
	Port        int
	MissionsDir string
}

// LogSettings configures logging
type LogSettings struct {
	Level  string
	Format string
}

type fileConfig struct {
	Run struct {
		Input  string `toml:"input"`
		Output string `toml:"output"`
		Policy string `toml:"policy"`
		Grid   bool   `toml:"grid"`
	} `toml:"run"`
	Server struct {
		Host        string `toml:"host"`
		Port        int    `toml:"port"`
		MissionsDir string `toml:"missions_dir"`
	} `toml:"server"`
	Log struct {
		Level  string `toml:"level"`
		Format string `toml:"format"`
	} `toml:"log"`
}

// Default returns the built-in settings
func Default() Settings {
	return Settings{
		Run: RunSettings{
			Input:  "data/input.txt",
			Output: "data/output.txt",
			Policy: "abort",
		},
		Server: ServerSettings{
			Host:        "localhost",
			Port:        8080,
			MissionsDir: "data/missions",
		},
		Log: LogSettings{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads path over the defaults. An empty path falls back to DefaultFile
// when it exists, and to the defaults alone otherwise.
func Load(path string) (Settings, error) {
	cfg := Default()

	if path == "" {
		if _, err := os.Stat(DefaultFile); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return cfg, nil
			}
			return Settings{}, fmt.Errorf("stat %s: %w", DefaultFile, err)
		}
		path = DefaultFile
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Settings{}, fmt.Errorf("load settings: %w", err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return Settings{}, fmt.Errorf("load settings: unknown keys %s", strings.Join(keys, ", "))
	}

	if meta.IsDefined("run", "input") {
		cfg.Run.Input = strings.TrimSpace(raw.Run.Input)
	}
	if meta.IsDefined("run", "output") {
		cfg.Run.Output = strings.TrimSpace(raw.Run.Output)
	}
	if meta.IsDefined("run", "policy") {
		cfg.Run.Policy = strings.TrimSpace(raw.Run.Policy)
	}
	if meta.IsDefined("run", "grid") {
		cfg.Run.Grid = raw.Run.Grid
	}

	if meta.IsDefined("server", "host") {
		cfg.Server.Host = strings.TrimSpace(raw.Server.Host)
	}
	if meta.IsDefined("server", "port") {
		if raw.Server.Port <= 0 || raw.Server.Port > 65535 {
			return Settings{}, fmt.Errorf("parse server.port: %d out of range", raw.Server.Port)
		}
		cfg.Server.Port = raw.Server.Port
	}
	if meta.IsDefined("server", "missions_dir") {
		cfg.Server.MissionsDir = strings.TrimSpace(raw.Server.MissionsDir)
	}

	if meta.IsDefined("log", "level") {
		cfg.Log.Level = strings.TrimSpace(raw.Log.Level)
	}
	if meta.IsDefined("log", "format") {
		cfg.Log.Format = strings.TrimSpace(raw.Log.Format)
	}

	return cfg, nil
}
