// Package config holds the YAML configuration of ssd1306ctl.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
	"periph.io/x/conn/v3/physic"
)

// Source kinds.
const (
	SourceFrame = "frame"
	SourceImage = "image"
	SourceText  = "text"
)

// SourceConfig describes what the refresh loop pushes to the display.
type SourceConfig struct {
	// Kind is one of "frame" (raw bytes passed through the write protocol),
	// "image" (any decodable image) or "text".
	Kind string `yaml:"kind"`
	// Path is the file read on every refresh for frame and image sources.
	Path string `yaml:"path,omitempty"`
	// Text lines; each is passed through time.Format on every refresh.
	Text []string `yaml:"text,omitempty"`
}

// Config is the top-level application configuration.
type Config struct {
	// Bus is the periph.io I²C bus name; empty selects the first bus.
	Bus string `yaml:"bus"`

	// Address of the display on the bus.
	Address uint16 `yaml:"address"`

	// BusSpeed is a frequency such as "400kHz".
	BusSpeed string `yaml:"bus_speed"`

	// Strict aborts the init/clear/cursor sequences on the first failed
	// transfer.
	Strict bool `yaml:"strict"`

	// Refresh is the cron schedule of the serve loop.
	Refresh string `yaml:"refresh"`

	Source SourceConfig `yaml:"source"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Bus:      "",
		Address:  0x3C,
		BusSpeed: "400kHz",
		Strict:   false,
		Refresh:  "* * * * *",
		Source: SourceConfig{
			Kind: SourceText,
			Text: []string{"15:04", "Mon Jan 2"},
		},
	}
}

// Normalize fills in missing/zero values with defaults.
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.Address == 0 {
		c.Address = def.Address
	}
	if c.BusSpeed == "" {
		c.BusSpeed = def.BusSpeed
	}
	if c.Refresh == "" {
		c.Refresh = def.Refresh
	}
	if c.Source.Kind == "" {
		c.Source.Kind = SourceText
	}
	if c.Source.Kind == SourceText && c.Source.Text == nil {
		c.Source.Text = def.Source.Text
	}
}

// Validate checks the fields that cannot be defaulted.
func (c *Config) Validate() error {
	if _, err := c.Speed(); err != nil {
		return err
	}
	if _, err := cron.ParseStandard(c.Refresh); err != nil {
		return fmt.Errorf("config: invalid refresh schedule %q: %w", c.Refresh, err)
	}
	switch c.Source.Kind {
	case SourceFrame, SourceImage:
		if c.Source.Path == "" {
			return fmt.Errorf("config: %s source needs a path", c.Source.Kind)
		}
	case SourceText:
	default:
		return fmt.Errorf("config: unknown source kind %q", c.Source.Kind)
	}
	return nil
}

// Speed parses BusSpeed.
func (c *Config) Speed() (physic.Frequency, error) {
	var f physic.Frequency
	if err := f.Set(c.BusSpeed); err != nil {
		return 0, fmt.Errorf("config: invalid bus_speed %q: %w", c.BusSpeed, err)
	}
	return f, nil
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - If the file does not exist, a default config is written with 0600
//     perms and returned.
//   - Otherwise the YAML is unmarshalled, normalized and validated.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				// Even if save fails, return cfg with error so caller can decide.
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes cfg to path atomically via a temp file + rename, with 0600
// permissions.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".ssd1306ctl-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// Save is a convenience method delegating to the package-level Save.
func (c *Config) Save(path string) error {
	return Save(path, c)
}
