package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/Mavwarf/flavoricons/internal/config"
	"github.com/Mavwarf/flavoricons/internal/eventlog"
	"github.com/Mavwarf/flavoricons/internal/flavor"
	"github.com/Mavwarf/flavoricons/internal/log"
	"github.com/Mavwarf/flavoricons/internal/mqtt"
	"github.com/Mavwarf/flavoricons/internal/paths"
	"github.com/Mavwarf/flavoricons/internal/tint"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// cliOpts holds global flags shared by all commands.
type cliOpts struct {
	configPath string
	tint       string
	noLedger   bool
	quiet      bool
	noColor    bool
	limit      int
}

func parseFlags(args []string) (cliOpts, []string, error) {
	opts := cliOpts{limit: 20}
	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--config", "-c":
			if i+1 >= len(args) {
				return opts, nil, fmt.Errorf("--config requires a file path")
			}
			opts.configPath = args[i+1]
			i++
		case "--tint", "-t":
			if i+1 >= len(args) {
				return opts, nil, fmt.Errorf("--tint requires a color (#RRGGBB)")
			}
			opts.tint = args[i+1]
			i++
		case "--limit", "-n":
			if i+1 >= len(args) {
				return opts, nil, fmt.Errorf("--limit requires a number")
			}
			n, err := strconv.Atoi(args[i+1])
			if err != nil || n < 0 {
				return opts, nil, fmt.Errorf("limit must be a non-negative number")
			}
			opts.limit = n
			i++
		case "--no-ledger":
			opts.noLedger = true
		case "--quiet", "-q":
			opts.quiet = true
		case "--no-color":
			opts.noColor = true
		default:
			filtered = append(filtered, args[i])
		}
	}
	return opts, filtered, nil
}

func main() {
	opts, args, err := parseFlags(os.Args[1:])
	if err != nil {
		fatal("%v", err)
	}

	cmd := "run"
	if len(args) > 0 {
		cmd = args[0]
	}

	switch cmd {
	case "help", "-h", "--help":
		printUsage()
	case "version", "-V", "--version":
		printVersion()
	case "run":
		os.Exit(runCmd(opts))
	case "history":
		historyCmd(opts)
	case "clear-history":
		clearHistoryCmd()
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n", cmd)
		fmt.Fprintf(os.Stderr, "Run 'tinticons help' for usage.\n")
		os.Exit(1)
	}
}

// loadConfig loads, applies CLI overrides and validates.
func loadConfig(opts cliOpts) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return cfg, err
	}
	if opts.tint != "" {
		cfg.Tint = opts.tint
	}
	if opts.noLedger {
		cfg.Ledger = false
	}
	return cfg, cfg.Validate()
}

func runCmd(opts cliOpts) int {
	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	logger := log.New(os.Stderr, log.Options{Quiet: opts.quiet, NoColor: opts.noColor})

	var rec flavor.Recorder
	if cfg.Ledger {
		s, err := eventlog.NewSQLiteStore(eventlog.DefaultPath())
		if err != nil {
			logger.Warn().Err(err).Msg("ledger unavailable")
		} else {
			defer s.Close()
			rec = s
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rep, err := execute(ctx, cfg, logger, rec)
	fmt.Println(renderSummary(rep))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if rep.Failed() {
		return 1
	}
	return 0
}

// execute runs the batch for a validated config and announces the result.
func execute(ctx context.Context, cfg config.Config, logger zerolog.Logger, rec flavor.Recorder) (flavor.Report, error) {
	if cfg.Source != "" {
		logger.Info().Msgf("Using config %s", cfg.Source)
	}
	buckets, err := cfg.Buckets()
	if err != nil {
		return flavor.Report{}, err
	}
	c, err := cfg.TintColor()
	if err != nil {
		return flavor.Report{}, err
	}

	layout := flavor.Layout{
		MainRes:  cfg.MainRes,
		StageRes: cfg.StageRes,
		ProdRes:  cfg.ProdRes,
		IconName: cfg.IconName,
	}
	rep, err := flavor.Run(ctx, layout, buckets, flavor.Options{Tint: c, Log: logger, Recorder: rec})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return rep, fmt.Errorf("interrupted")
		}
		return rep, err
	}

	if cfg.MQTT.Enabled() {
		b := mqtt.Broker{
			URL:      cfg.MQTT.Broker,
			ClientID: cfg.MQTT.ClientID,
			Username: cfg.MQTT.Username,
			Password: os.ExpandEnv(cfg.MQTT.Password),
		}
		if err := mqtt.Announce(b, cfg.MQTT.Topic, summaryOf(rep)); err != nil {
			logger.Warn().Err(err).Msg("run summary not published")
		}
	}
	return rep, nil
}

func summaryOf(rep flavor.Report) mqtt.Summary {
	return mqtt.Summary{
		Tinted:  rep.Count(eventlog.ActionTinted),
		Copied:  rep.Count(eventlog.ActionCopied),
		Skipped: rep.Count(eventlog.ActionSkipped),
		Failed:  rep.Count(eventlog.ActionFailed),
	}
}

func historyCmd(opts cliOpts) {
	if err := showHistory(os.Stdout, eventlog.DefaultPath(), opts.limit); err != nil {
		fatal("%v", err)
	}
}

// showHistory prints the newest ledger entries. A missing ledger is not
// created.
func showHistory(w io.Writer, path string, limit int) error {
	if !paths.Exists(path) {
		fmt.Fprintln(w, "No icons recorded yet.")
		return nil
	}
	s, err := eventlog.NewSQLiteStore(path)
	if err != nil {
		return err
	}
	defer s.Close()

	entries, err := s.Entries(limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(w, "No icons recorded yet.")
		return nil
	}
	fmt.Fprintln(w, renderHistory(entries))
	return nil
}

func clearHistoryCmd() {
	if err := clearHistory(os.Stdout, eventlog.DefaultPath()); err != nil {
		fatal("%v", err)
	}
}

func clearHistory(w io.Writer, path string) error {
	if !paths.Exists(path) {
		fmt.Fprintf(w, "Nothing to clear at %s\n", path)
		return nil
	}
	s, err := eventlog.NewSQLiteStore(path)
	if err != nil {
		return err
	}
	defer s.Close()
	if err := s.Clear(); err != nil {
		return err
	}
	fmt.Fprintf(w, "Cleared %s\n", s.Path())
	return nil
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func printVersion() {
	fmt.Printf("tinticons %s (%s) %s/%s\n", version, buildDate, runtime.GOOS, runtime.GOARCH)
}

func printUsage() {
	fmt.Printf("tinticons %s - Tint stage launcher icons and copy production ones\n", version)
	fmt.Printf(`
Usage:
  tinticons [options] [run]
  tinticons history [--limit N]
  tinticons clear-history

Options:
  --config, -c <path>    Path to flavoricons-config.json
  --tint, -t <#RRGGBB>   Stage tint color (default: %s)
  --no-ledger            Do not record produced icons (recorded by default)
  --quiet, -q            Only print warnings, errors and the summary
  --no-color             Disable colored log output

Commands:
  run                    Tint stage icons and copy prod icons (default)
  history                Show recently produced icons
  clear-history          Delete the icon ledger
  version, -V            Show version and build date
  help, -h, --help       Show this help message

Config resolution:
  1. --config <path>                               (explicit)
  2. flavoricons-config.json next to binary        (portable)
  3. ~/.config/flavoricons/flavoricons-config.json (user default)
  4. android/app/src/{main,stage,prod}/res         (built-in)

The %s environment variable overrides the tint color.
`, tint.Hex(tint.DefaultColor), config.TintEnv)
}
