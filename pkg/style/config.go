package style

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// UnknownClassPolicy controls what happens to classes that fail to
// resolve.
type UnknownClassPolicy int

const (
	// PolicyWarn keeps the diagnostic and drops the class.
	PolicyWarn UnknownClassPolicy = iota
	// PolicyError makes the caller fail the build on any diagnostic.
	PolicyError
	// PolicySilent drops the class and the diagnostic.
	PolicySilent
)

// DarkModeStrategy selects how dark: variants are emitted.
type DarkModeStrategy int

const (
	// DarkModeMedia wraps dark rules in a prefers-color-scheme query.
	DarkModeMedia DarkModeStrategy = iota
	// DarkModeClass scopes dark rules under a .dark ancestor.
	DarkModeClass
)

// Theme carries user overrides merged over the built-in scales.
type Theme struct {
	Screens map[string]string
	Colors  map[string]string
	Spacing map[string]string
}

// VariantOptions gates the less common variant syntaxes.
type VariantOptions struct {
	DataAria       bool
	Supports       bool
	GroupPeerNamed bool
}

// Config is the style compiler configuration.
type Config struct {
	UnknownClassPolicy UnknownClassPolicy
	DarkMode           DarkModeStrategy
	Safelist           []string
	Blocklist          []string
	Theme              Theme
	Variants           VariantOptions
}

// DefaultConfig returns the built-in screens and permissive variant
// gates.
func DefaultConfig() Config {
	return Config{
		UnknownClassPolicy: PolicyWarn,
		DarkMode:           DarkModeMedia,
		Theme: Theme{
			Screens: map[string]string{
				"sm":  "640px",
				"md":  "768px",
				"lg":  "1024px",
				"xl":  "1280px",
				"2xl": "1536px",
			},
			Colors:  map[string]string{},
			Spacing: map[string]string{},
		},
		Variants: VariantOptions{
			DataAria:       true,
			Supports:       true,
			GroupPeerNamed: true,
		},
	}
}

// tomlConfig is the on-disk shape under the [style] table of volki.toml.
type tomlConfig struct {
	Style struct {
		UnknownClassPolicy string   `toml:"unknown_class_policy"`
		DarkMode           string   `toml:"dark_mode"`
		Safelist           []string `toml:"safelist"`
		Blocklist          []string `toml:"blocklist"`
		Variants           struct {
			DataAria       *bool `toml:"data_aria"`
			Supports       *bool `toml:"supports"`
			GroupPeerNamed *bool `toml:"group_peer_named"`
		} `toml:"variants"`
		Theme struct {
			Screens map[string]string `toml:"screens"`
			Colors  map[string]string `toml:"colors"`
			Spacing map[string]string `toml:"spacing"`
		} `toml:"theme"`
	} `toml:"style"`
}

// LoadForSourceFile resolves the config for a source file by walking up
// to the nearest volki.toml. Missing or unreadable config falls back to
// defaults. Setting VOLKI_WEB_STRICT_CLASSES=1 escalates the unknown
// class policy to error.
func LoadForSourceFile(file string) Config {
	cfg := DefaultConfig()

	if path, ok := findVolkiToml(file); ok {
		if data, err := os.ReadFile(path); err == nil {
			var tc tomlConfig
			if err := toml.Unmarshal(data, &tc); err == nil {
				applyTomlConfig(&cfg, &tc)
			}
		}
	}

	if v := os.Getenv("VOLKI_WEB_STRICT_CLASSES"); v == "1" || strings.EqualFold(v, "true") {
		cfg.UnknownClassPolicy = PolicyError
	}

	return cfg
}

func findVolkiToml(file string) (string, bool) {
	dir := file
	if info, err := os.Stat(file); err != nil || !info.IsDir() {
		dir = filepath.Dir(file)
	}
	for {
		candidate := filepath.Join(dir, "volki.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func applyTomlConfig(cfg *Config, tc *tomlConfig) {
	switch tc.Style.UnknownClassPolicy {
	case "error":
		cfg.UnknownClassPolicy = PolicyError
	case "silent":
		cfg.UnknownClassPolicy = PolicySilent
	case "warn":
		cfg.UnknownClassPolicy = PolicyWarn
	}
	switch tc.Style.DarkMode {
	case "class":
		cfg.DarkMode = DarkModeClass
	case "media":
		cfg.DarkMode = DarkModeMedia
	}
	if tc.Style.Safelist != nil {
		cfg.Safelist = tc.Style.Safelist
	}
	if tc.Style.Blocklist != nil {
		cfg.Blocklist = tc.Style.Blocklist
	}
	if v := tc.Style.Variants.DataAria; v != nil {
		cfg.Variants.DataAria = *v
	}
	if v := tc.Style.Variants.Supports; v != nil {
		cfg.Variants.Supports = *v
	}
	if v := tc.Style.Variants.GroupPeerNamed; v != nil {
		cfg.Variants.GroupPeerNamed = *v
	}
	for k, v := range tc.Style.Theme.Screens {
		cfg.Theme.Screens[k] = v
	}
	for k, v := range tc.Style.Theme.Colors {
		cfg.Theme.Colors[k] = v
	}
	for k, v := range tc.Style.Theme.Spacing {
		cfg.Theme.Spacing[k] = v
	}
}
