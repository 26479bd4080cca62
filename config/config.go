// Package config loads persistent user preferences from a TOML file
// under the user's config directory. Every field is optional; the
// command line overrides anything set here.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config mirrors ~/.config/termflix/config.toml. Pointer fields
// distinguish "unset" from a zero value so CLI merging knows which
// keys the user actually wrote.
type Config struct {
	Animation    *string  `toml:"animation"`
	Render       *string  `toml:"render"`
	Color        *string  `toml:"color"`
	Fps          *int     `toml:"fps"`
	Scale        *float64 `toml:"scale"`
	Clean        *bool    `toml:"clean"`
	Cycle        *int     `toml:"cycle"`
	ColorQuant   *int     `toml:"color_quant"`
	UnlimitedFps *bool    `toml:"unlimited_fps"`
}

// DefaultConfigString is written by --init-config and shown by
// --show-config when no file exists. Every key is commented out so
// the defaults stay in one place (the CLI flag definitions).
const DefaultConfigString = `# termflix configuration
# Command-line flags override anything set here.

# animation = "fire"
# render = "halfblock"   # braille, halfblock, ascii
# color = "truecolor"    # truecolor, 256, 16, mono
# fps = 30               # 1-120
# scale = 1.0            # 0.5-2.0
# clean = false          # hide the status bar
# cycle = 0              # seconds between auto-advance, 0 = off
# color_quant = 0        # RGB quantization step, 0 = off
# unlimited_fps = false
`

// Path returns the config file location, honoring XDG conventions
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "termflix", "config.toml"), nil
}

// Load reads the config file. A missing file is not an error; it
// yields an empty Config so every field falls through to defaults.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return &Config{}, nil
	}
	return LoadFrom(path)
}

// LoadFrom reads and decodes a specific config file path
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// Init writes the commented default config, refusing to clobber an
// existing file
func Init() (string, error) {
	path, err := Path()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); err == nil {
		return path, fmt.Errorf("config already exists at %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(DefaultConfigString), 0o644); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return path, nil
}
