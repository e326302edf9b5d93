// Package config handles configuration loading and GoMate home resolution.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the per-home configuration file.
const FileName = "config.yaml"

// ---------------------------------------------------------------------------
// Config types
// ---------------------------------------------------------------------------

// AuthConfig selects how passwords are stored.
type AuthConfig struct {
	PasswordScheme string `yaml:"password_scheme"` // "plaintext" | "bcrypt"
}

// NotificationsConfig controls the notification log.
type NotificationsConfig struct {
	Persist bool `yaml:"persist"`
}

// AppearanceConfig holds the theme and language used before the user picks one.
type AppearanceConfig struct {
	Theme    string `yaml:"theme"`    // "light" | "dark"
	Language string `yaml:"language"` // "English" | "Sinhala"
}

// RelatedConfig controls the related-destinations index.
type RelatedConfig struct {
	Provider   string `yaml:"provider"` // "hash" | "none"
	Dimensions int    `yaml:"dimensions"`
}

// LogConfig sets the minimum level written to stderr.
type LogConfig struct {
	Level string `yaml:"level"` // "debug" | "info" | "warn" | "error"
}

// Config is the root per-home configuration.
type Config struct {
	Auth          AuthConfig          `yaml:"auth"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Appearance    AppearanceConfig    `yaml:"appearance"`
	Related       RelatedConfig       `yaml:"related"`
	Log           LogConfig           `yaml:"log"`
}

// Default returns a Config populated with defaults.
func Default() *Config {
	return &Config{
		Auth:          AuthConfig{PasswordScheme: "plaintext"},
		Notifications: NotificationsConfig{Persist: true},
		Appearance:    AppearanceConfig{Theme: "light", Language: "English"},
		Related:       RelatedConfig{Provider: "hash", Dimensions: 64},
		Log:           LogConfig{Level: "warn"},
	}
}

// Load reads a per-home config.yaml from path.
// If the file does not exist it returns Default() with no error.
// Missing keys retain their default values.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	if auth, ok := raw["auth"].(map[string]any); ok {
		if v, ok := auth["password_scheme"].(string); ok && v != "" {
			cfg.Auth.PasswordScheme = v
		}
	}

	if n, ok := raw["notifications"].(map[string]any); ok {
		if v, ok := n["persist"].(bool); ok {
			cfg.Notifications.Persist = v
		}
	}

	if a, ok := raw["appearance"].(map[string]any); ok {
		if v, ok := a["theme"].(string); ok && v != "" {
			cfg.Appearance.Theme = v
		}
		if v, ok := a["language"].(string); ok && v != "" {
			cfg.Appearance.Language = v
		}
	}

	if r, ok := raw["related"].(map[string]any); ok {
		if v, ok := r["provider"].(string); ok && v != "" {
			cfg.Related.Provider = v
		}
		if v, ok := r["dimensions"].(int); ok && v > 0 {
			cfg.Related.Dimensions = v
		}
	}

	if l, ok := raw["log"].(map[string]any); ok {
		if v, ok := l["level"].(string); ok && v != "" {
			cfg.Log.Level = v
		}
	}

	return cfg, nil
}

// ---------------------------------------------------------------------------
// Home resolution
// ---------------------------------------------------------------------------

// globalConfigPath returns the path to the global gomate config file.
// It stores only gomate_home.
func globalConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "gomate", "config.yaml"), nil
}

// normalizePath expands ~ and makes the path absolute.
func normalizePath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[2:])
	}
	return filepath.Abs(os.ExpandEnv(path))
}

// ResolveHome returns the GoMate home path and the source of the resolution.
// Priority: GOMATE_HOME env → persisted global config → ~/.gomate
// source is one of "env", "config", or "default".
func ResolveHome() (path, source string) {
	if env := os.Getenv("GOMATE_HOME"); env != "" {
		p, err := normalizePath(env)
		if err == nil {
			return p, "env"
		}
	}

	if persisted, ok, _ := GetPersistedHome(); ok {
		return persisted, "config"
	}

	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".gomate"), "default"
}

// GetHome returns the resolved home path.
func GetHome() string {
	path, _ := ResolveHome()
	return path
}

// GetPersistedHome reads gomate_home from the global config.
// Returns ("", false, nil) if not set.
func GetPersistedHome() (string, bool, error) {
	raw, err := readGlobal()
	if err != nil || raw == nil {
		return "", false, err
	}

	val, _ := raw["gomate_home"].(string)
	val = strings.TrimSpace(val)
	if val == "" {
		return "", false, nil
	}

	p, err := normalizePath(val)
	if err != nil {
		return "", false, err
	}
	return p, true, nil
}

// SetPersistedHome normalizes path and persists it in the global config.
// Returns the normalized path.
func SetPersistedHome(path string) (string, error) {
	normalized, err := normalizePath(path)
	if err != nil {
		return "", err
	}

	cfgPath, err := globalConfigPath()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
		return "", err
	}

	raw, _ := readGlobal()
	if raw == nil {
		raw = make(map[string]any)
	}
	raw["gomate_home"] = normalized

	out, err := yaml.Marshal(raw)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(cfgPath, out, 0o600); err != nil {
		return "", err
	}
	return normalized, nil
}

// ClearPersistedHome removes gomate_home from the global config.
// Returns true if the key was present and removed.
// If the file becomes empty after removal it is deleted.
func ClearPersistedHome() (bool, error) {
	cfgPath, err := globalConfigPath()
	if err != nil {
		return false, err
	}
	raw, err := readGlobal()
	if err != nil || raw == nil {
		return false, err
	}
	if _, ok := raw["gomate_home"]; !ok {
		return false, nil
	}
	delete(raw, "gomate_home")

	if len(raw) == 0 {
		_ = os.Remove(cfgPath)
		return true, nil
	}

	out, err := yaml.Marshal(raw)
	if err != nil {
		return false, err
	}
	return true, os.WriteFile(cfgPath, out, 0o600)
}

// readGlobal returns the global config as a map, nil when the file is
// missing or unparsable.
func readGlobal() (map[string]any, error) {
	cfgPath, err := globalConfigPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(cfgPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, nil
	}
	return raw, nil
}
