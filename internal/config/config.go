// Package config loads CLI-level configuration for the pictdb command,
// grounded on the teacher's ticket.Config/LoadConfig layering (global user
// config, then project config, then CLI overrides) and its JSONC parsing
// via hujson. None of this reaches the core database package: the engine
// (package pictdb) takes its parameters as plain Go values from its
// callers, never reads a config file itself.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"
)

// ErrDBPathEmpty is returned when a config file explicitly sets db_path to
// the empty string, which would otherwise silently fall back to the
// default and mask the user's mistake.
var ErrDBPathEmpty = errors.New("config: db_path must not be empty")

// ErrConfigFileNotFound is returned when an explicitly named config file
// (-c/--config) does not exist.
var ErrConfigFileNotFound = errors.New("config: file not found")

// ErrConfigInvalid wraps a JSONC/JSON parse failure with the offending path.
var ErrConfigInvalid = errors.New("config: invalid config file")

// ConfigFileName is the default project-level config file name.
const ConfigFileName = ".pictdb.json"

// Config holds resolved CLI configuration for a pictdb invocation.
type Config struct {
	DBPath      string `json:"db_path"`
	JPEGQuality int    `json:"jpeg_quality,omitempty"`
	MaxFiles    uint32 `json:"max_files,omitempty"`
	ThumbW      uint16 `json:"thumb_width,omitempty"`
	ThumbH      uint16 `json:"thumb_height,omitempty"`
	SmallW      uint16 `json:"small_width,omitempty"`
	SmallH      uint16 `json:"small_height,omitempty"`

	EffectiveCwd string `json:"-"`
	DBPathAbs    string `json:"-"`

	Sources Sources `json:"-"`
}

// Sources records which config files contributed to the final Config, for
// the "print-config" diagnostic command.
type Sources struct {
	Global  string
	Project string
}

// Default returns the built-in configuration defaults.
func Default() Config {
	return Config{DBPath: "pictures.pictdb"}
}

// LoadInput holds the inputs to Load.
type LoadInput struct {
	WorkDirOverride string
	ConfigPath      string
	DBPathOverride  string
	Env             map[string]string
}

// Load resolves configuration with precedence (highest wins): defaults,
// global user config, project config (or an explicit -c file), then CLI
// overrides. Paths in the result are absolute.
func Load(input LoadInput) (Config, error) {
	workDir := input.WorkDirOverride
	if workDir == "" {
		var err error

		workDir, err = os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("config: getwd: %w", err)
		}
	}

	cfg := Default()

	globalCfg, globalPath, err := loadGlobal(input.Env)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Global = globalPath
	cfg = merge(cfg, globalCfg)

	projectCfg, projectPath, err := loadProject(workDir, input.ConfigPath)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Project = projectPath
	cfg = merge(cfg, projectCfg)

	if input.DBPathOverride != "" {
		cfg.DBPath = input.DBPathOverride
	}

	if cfg.DBPath == "" {
		return Config{}, ErrDBPathEmpty
	}

	cfg.EffectiveCwd = workDir
	if filepath.IsAbs(cfg.DBPath) {
		cfg.DBPathAbs = cfg.DBPath
	} else {
		cfg.DBPathAbs = filepath.Join(workDir, cfg.DBPath)
	}

	return cfg, nil
}

func globalConfigPath(env map[string]string) string {
	if xdg := env["XDG_CONFIG_HOME"]; xdg != "" {
		return filepath.Join(xdg, "pictdb", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "pictdb", "config.json")
	}

	return ""
}

func loadGlobal(env map[string]string) (Config, string, error) {
	path := globalConfigPath(env)
	if path == "" {
		return Config{}, "", nil
	}

	cfg, loaded, err := loadFile(path, false)
	if err != nil || !loaded {
		return Config{}, "", err
	}

	return cfg, path, nil
}

func loadProject(workDir, explicitPath string) (Config, string, error) {
	path := explicitPath
	mustExist := explicitPath != ""

	if path == "" {
		path = filepath.Join(workDir, ConfigFileName)
	} else if !filepath.IsAbs(path) {
		path = filepath.Join(workDir, path)
	}

	if mustExist {
		if _, err := os.Stat(path); err != nil {
			return Config{}, "", fmt.Errorf("%w: %s", ErrConfigFileNotFound, explicitPath)
		}
	}

	cfg, loaded, err := loadFile(path, mustExist)
	if err != nil || !loaded {
		return Config{}, "", err
	}

	return cfg, path, nil
}

func loadFile(path string, mustExist bool) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return Config{}, false, nil
		}

		return Config{}, false, fmt.Errorf("%w: reading %s: %v", ErrConfigInvalid, path, err)
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, false, fmt.Errorf("%w %s: %v", ErrConfigInvalid, path, err)
	}

	var cfg Config
	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return Config{}, false, fmt.Errorf("%w %s: %v", ErrConfigInvalid, path, err)
	}

	// merge treats an empty db_path as absent, so an explicit "" is
	// rejected here before it can fall back to the default.
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(standardized, &raw); err == nil {
		if v, ok := raw["db_path"]; ok && string(v) == `""` {
			return Config{}, false, fmt.Errorf("%w: %s", ErrDBPathEmpty, path)
		}
	}

	return cfg, true, nil
}

func merge(base, overlay Config) Config {
	if overlay.DBPath != "" {
		base.DBPath = overlay.DBPath
	}

	if overlay.JPEGQuality != 0 {
		base.JPEGQuality = overlay.JPEGQuality
	}

	if overlay.MaxFiles != 0 {
		base.MaxFiles = overlay.MaxFiles
	}

	if overlay.ThumbW != 0 {
		base.ThumbW = overlay.ThumbW
	}

	if overlay.ThumbH != 0 {
		base.ThumbH = overlay.ThumbH
	}

	if overlay.SmallW != 0 {
		base.SmallW = overlay.SmallW
	}

	if overlay.SmallH != 0 {
		base.SmallH = overlay.SmallH
	}

	return base
}
