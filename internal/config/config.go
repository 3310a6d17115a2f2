package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/Mavwarf/flavoricons/internal/density"
	"github.com/Mavwarf/flavoricons/internal/paths"
	"github.com/Mavwarf/flavoricons/internal/tint"
)

// DefaultIconName is the launcher icon file inside each mipmap directory.
const DefaultIconName = "ic_launcher.png"

// TintEnv overrides the configured tint color when set.
const TintEnv = "FLAVORICONS_TINT"

// Default resource roots, relative to the Android project root.
var (
	DefaultMainRes  = filepath.Join("android", "app", "src", "main", "res")
	DefaultStageRes = filepath.Join("android", "app", "src", "stage", "res")
	DefaultProdRes  = filepath.Join("android", "app", "src", "prod", "res")
)

// MQTT describes an optional broker that receives a run summary.
type MQTT struct {
	Broker   string `json:"broker,omitempty"`
	Topic    string `json:"topic,omitempty"`
	ClientID string `json:"client_id,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
}

// Enabled reports whether a broker is configured.
func (m MQTT) Enabled() bool { return m.Broker != "" }

// Config holds the tinter's file layout and options.
type Config struct {
	MainRes   string   `json:"main_res"`
	StageRes  string   `json:"stage_res"`
	ProdRes   string   `json:"prod_res"`
	IconName  string   `json:"icon_name,omitempty"`
	Densities []string `json:"densities,omitempty"`
	Tint      string   `json:"tint,omitempty"`
	Ledger    bool     `json:"ledger"`
	MQTT      MQTT     `json:"mqtt"`

	// Source is the file the config was read from, empty for defaults.
	Source string `json:"-"`
}

// Default returns the built-in layout used when no config file exists.
func Default() Config {
	return Config{
		MainRes:  DefaultMainRes,
		StageRes: DefaultStageRes,
		ProdRes:  DefaultProdRes,
		IconName: DefaultIconName,
		Tint:     tint.Hex(tint.DefaultColor),
		Ledger:   true,
	}
}

// UnmarshalJSON sets defaults then decodes the JSON structure.
// Go's json.Unmarshal merges into existing struct fields, so only
// values present in JSON override the defaults.
func (c *Config) UnmarshalJSON(data []byte) error {
	*c = Default()
	type Alias Config
	return json.Unmarshal(data, (*Alias)(c))
}

// Buckets returns the configured densities, or all of them when unset.
func (c Config) Buckets() ([]density.Bucket, error) {
	if len(c.Densities) == 0 {
		return density.All(), nil
	}
	return density.ParseList(c.Densities)
}

// TintColor returns the tint, preferring the FLAVORICONS_TINT environment
// variable over the config value.
func (c Config) TintColor() (color.RGBA, error) {
	if v := os.Getenv(TintEnv); v != "" {
		return tint.ParseHex(v)
	}
	if c.Tint == "" {
		return tint.DefaultColor, nil
	}
	return tint.ParseHex(c.Tint)
}

// Validate checks that every path is set and every value parses.
func (c Config) Validate() error {
	var errs []error
	if c.MainRes == "" {
		errs = append(errs, errors.New("main_res is empty"))
	}
	if c.StageRes == "" {
		errs = append(errs, errors.New("stage_res is empty"))
	}
	if c.ProdRes == "" {
		errs = append(errs, errors.New("prod_res is empty"))
	}
	if c.IconName == "" {
		errs = append(errs, errors.New("icon_name is empty"))
	}
	errs = append(errs, c.checkRoots()...)
	if _, err := c.Buckets(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.TintColor(); err != nil {
		errs = append(errs, err)
	}
	if c.MQTT.Enabled() && c.MQTT.Topic == "" {
		errs = append(errs, errors.New("mqtt.topic is required when mqtt.broker is set"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// checkRoots rejects any two resource roots that name the same directory,
// since writing one would overwrite the other.
func (c Config) checkRoots() []error {
	roots := []struct{ key, dir string }{
		{"main_res", c.MainRes},
		{"stage_res", c.StageRes},
		{"prod_res", c.ProdRes},
	}
	var errs []error
	for i := 0; i < len(roots); i++ {
		for j := i + 1; j < len(roots); j++ {
			a, b := roots[i], roots[j]
			if a.dir == "" || b.dir == "" {
				continue
			}
			if paths.SameDir(a.dir, b.dir) {
				errs = append(errs, fmt.Errorf("%s and %s point to the same directory", a.key, b.key))
			}
		}
	}
	return errs
}

// Load reads and parses a config file. It tries, in order:
//  1. explicitPath (if non-empty; it must exist)
//  2. flavoricons-config.json next to the running binary
//  3. flavoricons-config.json in paths.DataDir()
//
// When none exists, Default() is returned.
func Load(explicitPath string) (Config, error) {
	if explicitPath != "" {
		return readConfig(explicitPath)
	}

	// Next to binary
	exe, err := os.Executable()
	if err == nil {
		p := filepath.Join(filepath.Dir(exe), paths.ConfigFileName)
		if _, err := os.Stat(p); err == nil {
			return readConfig(p)
		}
	}

	// User config directory
	p := filepath.Join(paths.DataDir(), paths.ConfigFileName)
	if _, err := os.Stat(p); err == nil {
		return readConfig(p)
	}

	return Default(), nil
}

func readConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.Source = path
	return cfg, nil
}
