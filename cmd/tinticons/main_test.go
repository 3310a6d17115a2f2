package main

import (
	"bytes"
	"context"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Mavwarf/flavoricons/internal/config"
	"github.com/Mavwarf/flavoricons/internal/density"
	"github.com/Mavwarf/flavoricons/internal/eventlog"
	"github.com/Mavwarf/flavoricons/internal/flavor"
	"github.com/Mavwarf/flavoricons/internal/pngfile"
)

func TestParseFlags(t *testing.T) {
	opts, rest, err := parseFlags([]string{"-c", "cfg.json", "--tint", "#00FF00", "--no-ledger", "-q", "history", "--limit", "5"})
	if err != nil {
		t.Fatal(err)
	}
	if opts.configPath != "cfg.json" || opts.tint != "#00FF00" || !opts.noLedger || !opts.quiet || opts.limit != 5 {
		t.Errorf("opts = %+v", opts)
	}
	if len(rest) != 1 || rest[0] != "history" {
		t.Errorf("rest = %v, want [history]", rest)
	}
}

func TestParseFlagsErrors(t *testing.T) {
	for _, args := range [][]string{{"--config"}, {"--tint"}, {"--limit"}, {"--limit", "-1"}, {"--limit", "x"}} {
		if _, _, err := parseFlags(args); err == nil {
			t.Errorf("parseFlags(%v) expected error", args)
		}
	}
}

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	p := filepath.Join(dir, "flavoricons-config.json")
	if err := os.WriteFile(p, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv(config.TintEnv, "")
	p := writeConfig(t, t.TempDir(), `{"main_res": "m", "stage_res": "s", "prod_res": "p"}`)

	cfg, err := loadConfig(cliOpts{configPath: p, tint: "#010203", noLedger: true})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Tint != "#010203" || cfg.Ledger {
		t.Errorf("cfg = %+v", cfg)
	}

	if _, err := loadConfig(cliOpts{configPath: p, tint: "red"}); err == nil {
		t.Error("expected validation error for bad tint")
	}
}

func tempConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.MainRes = filepath.Join(dir, "main", "res")
	cfg.StageRes = filepath.Join(dir, "stage", "res")
	cfg.ProdRes = filepath.Join(dir, "prod", "res")
	cfg.Ledger = false
	return cfg
}

func TestExecute(t *testing.T) {
	t.Setenv(config.TintEnv, "")
	cfg := tempConfig(t)
	src := filepath.Join(cfg.MainRes, density.MDPI.Dir(), cfg.IconName)
	if err := pngfile.Save(src, image.NewNRGBA(image.Rect(0, 0, 48, 48))); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	rep, err := execute(context.Background(), cfg, zerolog.New(&buf), nil)
	if err != nil {
		t.Fatal(err)
	}
	s := summaryOf(rep)
	if s.Tinted != 1 || s.Copied != 1 || s.Skipped != 8 || s.Failed != 0 {
		t.Errorf("summary = %+v", s)
	}
	if _, err := os.Stat(filepath.Join(cfg.StageRes, "mipmap-mdpi", cfg.IconName)); err != nil {
		t.Errorf("stage icon missing: %v", err)
	}
}

func TestExecuteMQTTFailureIsWarning(t *testing.T) {
	t.Setenv(config.TintEnv, "")
	cfg := tempConfig(t)
	cfg.Densities = []string{"mdpi"}
	cfg.MQTT = config.MQTT{Broker: "tcp://127.0.0.1:19999", Topic: "builds/icons"}

	var buf bytes.Buffer
	rep, err := execute(context.Background(), cfg, zerolog.New(&buf), nil)
	if err != nil {
		t.Fatal(err)
	}
	if rep.Failed() {
		t.Error("publish failure must not fail the run")
	}
	if !strings.Contains(buf.String(), "run summary not published") {
		t.Errorf("missing warning:\n%s", buf.String())
	}
}

func TestExecuteInterrupted(t *testing.T) {
	t.Setenv(config.TintEnv, "")
	cfg := tempConfig(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := execute(ctx, cfg, zerolog.Nop(), nil)
	if err == nil || err.Error() != "interrupted" {
		t.Errorf("err = %v, want interrupted", err)
	}
}

func TestRenderSummary(t *testing.T) {
	rep := flavor.Report{Results: []flavor.Result{
		{Action: eventlog.ActionTinted},
		{Action: eventlog.ActionCopied},
		{Action: eventlog.ActionSkipped},
	}}
	out := renderSummary(rep)
	for _, want := range []string{"Done!", "1 tinted", "1 copied", "1 skipped"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q: %q", want, out)
		}
	}
	if strings.Contains(out, "failed") {
		t.Errorf("summary mentions failures: %q", out)
	}

	rep.Results = append(rep.Results, flavor.Result{Action: eventlog.ActionFailed})
	out = renderSummary(rep)
	if !strings.Contains(out, "Finished with errors.") || !strings.Contains(out, "1 failed") {
		t.Errorf("failure summary = %q", out)
	}
}

func TestRenderHistory(t *testing.T) {
	entries := []eventlog.Entry{
		{Time: time.Now(), Flavor: "stage", Density: "mdpi", Output: "stage/ic.png", Action: eventlog.ActionTinted, SHA256: "0123456789abcdef"},
		{Time: time.Now(), Flavor: "prod", Density: "hdpi", Source: "main/ic.png", Action: eventlog.ActionSkipped},
		{Time: time.Now(), Density: "", Output: "app_icon.png", Action: eventlog.ActionGenerated},
	}
	out := renderHistory(entries)
	for _, want := range []string{"FLAVOR", "stage/ic.png", "0123456789ab", "main/ic.png", "skipped", "app_icon.png"} {
		if !strings.Contains(out, want) {
			t.Errorf("history missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "0123456789abcdef") {
		t.Error("checksum not shortened")
	}
}

func TestHistoryMissingLedgerIsNotCreated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flavoricons", "ledger.db")
	var buf bytes.Buffer

	if err := showHistory(&buf, path, 20); err != nil {
		t.Fatalf("showHistory: %v", err)
	}
	if !strings.Contains(buf.String(), "No icons recorded yet.") {
		t.Errorf("output = %q", buf.String())
	}
	buf.Reset()
	if err := clearHistory(&buf, path); err != nil {
		t.Fatalf("clearHistory: %v", err)
	}
	if !strings.Contains(buf.String(), "Nothing to clear") {
		t.Errorf("output = %q", buf.String())
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("ledger created at %s (stat err %v)", path, err)
	}
	if _, err := os.Stat(filepath.Dir(path)); !os.IsNotExist(err) {
		t.Errorf("ledger directory created (stat err %v)", err)
	}
}

func TestHistoryExistingLedger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	s, err := eventlog.NewSQLiteStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Record(eventlog.Entry{Flavor: "stage", Density: "mdpi", Output: "out.png", Action: eventlog.ActionTinted}); err != nil {
		t.Fatal(err)
	}
	s.Close()

	var buf bytes.Buffer
	if err := showHistory(&buf, path, 20); err != nil {
		t.Fatalf("showHistory: %v", err)
	}
	if !strings.Contains(buf.String(), "out.png") {
		t.Errorf("history missing entry: %q", buf.String())
	}
	buf.Reset()
	if err := clearHistory(&buf, path); err != nil {
		t.Fatalf("clearHistory: %v", err)
	}
	if !strings.Contains(buf.String(), "Cleared "+path) {
		t.Errorf("output = %q", buf.String())
	}
	buf.Reset()
	if err := showHistory(&buf, path, 20); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "No icons recorded yet.") {
		t.Errorf("after clear: %q", buf.String())
	}
}
