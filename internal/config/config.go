/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// AppConfig is the user-editable configuration persisted to a YAML file in the user scope.
// Environment variables are treated as read-only overrides at runtime.
//
// config_version: bump when the structure changes in a backward-incompatible way.
// Unknown fields are ignored on unmarshal, which keeps older builds tolerant of newer files.

type GeneralConfig struct {
	TelemetryOptIn bool   `yaml:"telemetry_opt_in"`
	Theme          string `yaml:"theme"` // "system" | "light" | "dark" (demo shell only)
}

type PositionConfig struct {
	// Profile names the preset applied to new surfaces in the demo shell.
	Profile string `yaml:"profile"`
	// SnapThreshold is the playground drag-snap distance in pixels.
	SnapThreshold float32 `yaml:"snap_threshold"`
	ShowGuides    bool    `yaml:"show_guides"`
}

type TraceConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"` // empty resolves next to the loaded corpus
	// KeepTicks bounds the flight recorder; older ticks are pruned.
	KeepTicks int `yaml:"keep_ticks"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int            `yaml:"config_version"`
	General       GeneralConfig  `yaml:"general"`
	Position      PositionConfig `yaml:"position"`
	Trace         TraceConfig    `yaml:"trace"`
	Logging       LoggingConfig  `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		General:       GeneralConfig{TelemetryOptIn: false, Theme: "system"},
		Position:      PositionConfig{Profile: "dropdown", SnapThreshold: 6, ShowGuides: true},
		Trace:         TraceConfig{Enabled: false, Dir: "", KeepTicks: 5000},
		Logging:       LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
	}
}

// Env var names used as overrides.
const (
	EnvTelemetryOptIn = "AK_TELEMETRY_OPT_IN"
	EnvProfile        = "AK_PROFILE"
	EnvTraceEnabled   = "AK_TRACE_ENABLED"
	EnvTraceDir       = "AK_TRACE_DIR"
	EnvTraceKeepTicks = "AK_TRACE_KEEP_TICKS"
	// EnvLogLevel Logging envs
	EnvLogLevel  = "AK_LOG_LEVEL"
	EnvLogFormat = "AK_LOG_FORMAT"
	EnvLogSource = "AK_LOG_SOURCE"
	EnvLogFile   = "AK_LOG_FILE"
)

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "AnchorKit")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "AnchorKit")
	default: // linux and others
		base = filepath.Join(os.Getenv("HOME"), ".config", "anchorkit")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults, and merges
// environment overrides.
func Load() (AppConfig, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err == nil {
			mergeInto(&cfg, &fileCfg)
		}
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Save writes the user config YAML.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if src.General.Theme != "" {
		dst.General.Theme = src.General.Theme
	}
	// booleans: copy directly from src (file) so user preferences persist
	dst.General.TelemetryOptIn = src.General.TelemetryOptIn
	if strings.TrimSpace(src.Position.Profile) != "" {
		dst.Position.Profile = strings.TrimSpace(src.Position.Profile)
	}
	if src.Position.SnapThreshold != 0 {
		dst.Position.SnapThreshold = src.Position.SnapThreshold
	}
	dst.Position.ShowGuides = src.Position.ShowGuides
	dst.Trace.Enabled = src.Trace.Enabled
	if strings.TrimSpace(src.Trace.Dir) != "" {
		dst.Trace.Dir = strings.TrimSpace(src.Trace.Dir)
	}
	if src.Trace.KeepTicks != 0 {
		dst.Trace.KeepTicks = src.Trace.KeepTicks
	}
	// logging
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvTelemetryOptIn)); v != "" {
		lv := strings.ToLower(v)
		cfg.General.TelemetryOptIn = lv == "1" || lv == "true" || lv == "on" || lv == "yes"
	}
	if v := strings.TrimSpace(os.Getenv(EnvProfile)); v != "" {
		cfg.Position.Profile = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTraceEnabled)); v != "" {
		lv := strings.ToLower(v)
		cfg.Trace.Enabled = lv == "1" || lv == "true" || lv == "on" || lv == "yes"
	}
	if v := strings.TrimSpace(os.Getenv(EnvTraceDir)); v != "" {
		cfg.Trace.Dir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTraceKeepTicks)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Trace.KeepTicks = n
		}
	}
	// logging overrides
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		lv := strings.ToLower(v)
		cfg.Logging.Source = lv == "1" || lv == "true" || lv == "on" || lv == "yes"
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	switch key {
	case "general.telemetry_opt_in":
		if os.Getenv(EnvTelemetryOptIn) != "" {
			return EnvTelemetryOptIn, true
		}
	case "position.profile":
		if os.Getenv(EnvProfile) != "" {
			return EnvProfile, true
		}
	case "trace.enabled":
		if os.Getenv(EnvTraceEnabled) != "" {
			return EnvTraceEnabled, true
		}
	case "trace.dir":
		if os.Getenv(EnvTraceDir) != "" {
			return EnvTraceDir, true
		}
	case "trace.keep_ticks":
		if os.Getenv(EnvTraceKeepTicks) != "" {
			return EnvTraceKeepTicks, true
		}
	case "logging.level":
		if os.Getenv(EnvLogLevel) != "" {
			return EnvLogLevel, true
		}
	case "logging.format":
		if os.Getenv(EnvLogFormat) != "" {
			return EnvLogFormat, true
		}
	case "logging.source":
		if os.Getenv(EnvLogSource) != "" {
			return EnvLogSource, true
		}
	case "logging.file":
		if os.Getenv(EnvLogFile) != "" {
			return EnvLogFile, true
		}
	}
	return "", false
}

// EffectiveKeepTicks returns the tick cap with the default applied for
// unset or nonsense values.
func (t TraceConfig) EffectiveKeepTicks() int {
	if t.KeepTicks <= 0 {
		return Defaults().Trace.KeepTicks
	}
	return t.KeepTicks
}
