package config

import (
	"encoding/json"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Mavwarf/flavoricons/internal/density"
	"github.com/Mavwarf/flavoricons/internal/paths"
	"github.com/Mavwarf/flavoricons/internal/tint"
)

func TestUnmarshalKeepsDefaults(t *testing.T) {
	data := []byte(`{"main_res": "/src/main/res"}`)

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if cfg.MainRes != "/src/main/res" {
		t.Errorf("MainRes = %q", cfg.MainRes)
	}
	if cfg.StageRes != DefaultStageRes {
		t.Errorf("StageRes = %q, want default %q", cfg.StageRes, DefaultStageRes)
	}
	if cfg.IconName != DefaultIconName {
		t.Errorf("IconName = %q, want %q", cfg.IconName, DefaultIconName)
	}
	if !cfg.Ledger {
		t.Error("Ledger should default to true")
	}
}

func TestUnmarshalOverrides(t *testing.T) {
	data := []byte(`{
		"main_res": "a", "stage_res": "b", "prod_res": "c",
		"icon_name": "ic_launcher_round.png",
		"densities": ["xhdpi", "xxhdpi"],
		"tint": "#00AAFF",
		"ledger": false,
		"mqtt": {"broker": "tcp://localhost:1883", "topic": "builds/icons"}
	}`)

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Ledger {
		t.Error("Ledger = true, want false")
	}
	b, _ := cfg.Buckets()
	if len(b) != 2 || b[0] != density.XHDPI || b[1] != density.XXHDPI {
		t.Errorf("Buckets = %v", b)
	}
	c, _ := cfg.TintColor()
	if c != (color.RGBA{0, 170, 255, 255}) {
		t.Errorf("TintColor = %v", c)
	}
	if !cfg.MQTT.Enabled() || cfg.MQTT.Topic != "builds/icons" {
		t.Errorf("MQTT = %+v", cfg.MQTT)
	}
}

func TestBucketsDefaultAll(t *testing.T) {
	b, err := Default().Buckets()
	if err != nil {
		t.Fatal(err)
	}
	if len(b) != 5 {
		t.Errorf("len(Buckets) = %d, want 5", len(b))
	}
}

func TestTintColorEnvOverride(t *testing.T) {
	t.Setenv(TintEnv, "#112233")
	c, err := Default().TintColor()
	if err != nil {
		t.Fatal(err)
	}
	if c != (color.RGBA{0x11, 0x22, 0x33, 255}) {
		t.Errorf("TintColor = %v", c)
	}
}

func TestTintColorDefault(t *testing.T) {
	t.Setenv(TintEnv, "")
	cfg := Default()
	cfg.Tint = ""
	c, err := cfg.TintColor()
	if err != nil {
		t.Fatal(err)
	}
	if c != tint.DefaultColor {
		t.Errorf("TintColor = %v, want %v", c, tint.DefaultColor)
	}
}

func TestValidate(t *testing.T) {
	t.Setenv(TintEnv, "")
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"empty main", func(c *Config) { c.MainRes = "" }, "main_res is empty"},
		{"empty icon", func(c *Config) { c.IconName = "" }, "icon_name is empty"},
		{"same dirs", func(c *Config) { c.StageRes = c.MainRes }, "main_res and stage_res"},
		{"trailing slash", func(c *Config) { c.MainRes = "android/res"; c.StageRes = "android/res/" }, "main_res and stage_res"},
		{"dot prefix", func(c *Config) { c.MainRes = "android/res"; c.ProdRes = "./android/res" }, "main_res and prod_res"},
		{"dotdot", func(c *Config) { c.MainRes = "android/res"; c.StageRes = "android/x/../res" }, "main_res and stage_res"},
		{"stage is prod", func(c *Config) { c.StageRes = "out/res"; c.ProdRes = "out/res" }, "stage_res and prod_res"},
		{"bad density", func(c *Config) { c.Densities = []string{"ldpi"} }, "unknown density"},
		{"bad tint", func(c *Config) { c.Tint = "orange" }, "invalid color"},
		{"mqtt no topic", func(c *Config) { c.MQTT.Broker = "tcp://x:1883" }, "mqtt.topic"},
	}
	for _, tt := range tests {
		cfg := Default()
		tt.mutate(&cfg)
		err := cfg.Validate()
		if tt.wantErr == "" {
			if err != nil {
				t.Errorf("%s: unexpected error %v", tt.name, err)
			}
			continue
		}
		if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
			t.Errorf("%s: err = %v, want containing %q", tt.name, err, tt.wantErr)
		}
	}
}

func TestLoadExplicit(t *testing.T) {
	p := filepath.Join(t.TempDir(), "cfg.json")
	os.WriteFile(p, []byte(`{"main_res": "m", "stage_res": "s", "prod_res": "p"}`), 0644)

	cfg, err := Load(p)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MainRes != "m" || cfg.Source != p {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadExplicitMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestLoadExplicitBadJSON(t *testing.T) {
	p := filepath.Join(t.TempDir(), "cfg.json")
	os.WriteFile(p, []byte(`{not json`), 0644)
	_, err := Load(p)
	if err == nil || !strings.Contains(err.Error(), "parsing config") {
		t.Fatalf("err = %v, want parse error", err)
	}
}

func TestLoadFromDataDir(t *testing.T) {
	appdata := t.TempDir()
	t.Setenv("APPDATA", appdata)
	p := filepath.Join(appdata, paths.AppDirName, paths.ConfigFileName)
	os.MkdirAll(filepath.Dir(p), 0755)
	os.WriteFile(p, []byte(`{"icon_name": "round.png"}`), 0644)

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.IconName != "round.png" || cfg.Source != p {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadFallsBackToDefaults(t *testing.T) {
	t.Setenv("APPDATA", t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Source != "" || cfg.MainRes != DefaultMainRes {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}
