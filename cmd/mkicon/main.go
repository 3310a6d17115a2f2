// mkicon draws the soccer-ball app icon and writes it as a PNG.
// Usage: mkicon [--size N] [--mipmaps <resDir>] [--name <file>] [--no-ledger] [output.png]
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/Mavwarf/flavoricons/internal/density"
	"github.com/Mavwarf/flavoricons/internal/eventlog"
	"github.com/Mavwarf/flavoricons/internal/icon"
	"github.com/Mavwarf/flavoricons/internal/log"
	"github.com/Mavwarf/flavoricons/internal/paths"
	"github.com/Mavwarf/flavoricons/internal/pngfile"
)

var version = "dev"

const defaultOutput = "assets/icons/app_icon.png"

type options struct {
	output     string
	size       int
	mipmapsDir string
	iconName   string
	ledger     bool
}

var errHelp = errors.New("help requested")

func parseArgs(args []string) (options, error) {
	opts := options{
		output:   filepath.FromSlash(defaultOutput),
		size:     icon.Size,
		iconName: "ic_launcher.png",
		ledger:   true,
	}
	var positional []string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--size", "-s":
			if i+1 >= len(args) {
				return opts, fmt.Errorf("--size requires a value")
			}
			n, err := strconv.Atoi(args[i+1])
			if err != nil || n < 16 || n > 4096 {
				return opts, fmt.Errorf("size must be a number between 16 and 4096")
			}
			opts.size = n
			i++
		case "--mipmaps", "-m":
			if i+1 >= len(args) {
				return opts, fmt.Errorf("--mipmaps requires a res directory")
			}
			opts.mipmapsDir = args[i+1]
			i++
		case "--name":
			if i+1 >= len(args) {
				return opts, fmt.Errorf("--name requires a file name")
			}
			opts.iconName = args[i+1]
			i++
		case "--no-ledger":
			opts.ledger = false
		case "help", "-h", "--help":
			return opts, errHelp
		default:
			positional = append(positional, args[i])
		}
	}
	switch len(positional) {
	case 0:
	case 1:
		opts.output = positional[0]
	default:
		return opts, fmt.Errorf("expected at most one output path, got %d", len(positional))
	}
	return opts, nil
}

// preflight fails fast when the output locations cannot be created, before
// any drawing work is done.
func preflight(opts options) error {
	dirs := []string{filepath.Dir(opts.output)}
	if opts.mipmapsDir != "" {
		dirs = append(dirs, opts.mipmapsDir)
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, paths.DirPerm); err != nil {
			return fmt.Errorf("cannot create output directory %s: %w", d, err)
		}
	}
	return nil
}

func run(opts options, logger zerolog.Logger, rec eventlog.Store) error {
	if err := preflight(opts); err != nil {
		return err
	}

	img := icon.Draw(opts.size)
	if err := pngfile.Save(opts.output, img); err != nil {
		return err
	}
	logger.Info().Msgf("Icon created successfully at %s", opts.output)
	recordGenerated(rec, logger, "", opts.output)

	if opts.mipmapsDir == "" {
		return nil
	}
	written, err := icon.WriteMipmaps(img, opts.mipmapsDir, opts.iconName, density.All())
	for i, p := range written {
		logger.Info().Msgf("Wrote %s (%dpx)", p, density.All()[i].LauncherEdge())
		recordGenerated(rec, logger, string(density.All()[i]), p)
	}
	return err
}

func recordGenerated(rec eventlog.Store, logger zerolog.Logger, bucket, path string) {
	if rec == nil {
		return
	}
	sum, err := eventlog.Checksum(path)
	if err != nil {
		logger.Warn().Err(err).Msg("ledger: checksum failed")
	}
	err = rec.Record(eventlog.Entry{Density: bucket, Output: path, Action: eventlog.ActionGenerated, SHA256: sum})
	if err != nil {
		logger.Warn().Err(err).Msg("ledger: record failed")
	}
}

func main() {
	opts, err := parseArgs(os.Args[1:])
	if errors.Is(err, errHelp) {
		printUsage()
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintf(os.Stderr, "Run 'mkicon help' for usage.\n")
		os.Exit(1)
	}

	logger := log.New(os.Stderr, log.Options{})

	var rec eventlog.Store
	if opts.ledger {
		s, err := eventlog.NewSQLiteStore(eventlog.DefaultPath())
		if err != nil {
			logger.Warn().Err(err).Msg("ledger unavailable")
		} else {
			defer s.Close()
			rec = s
		}
	}

	if err := run(opts, logger, rec); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf("mkicon %s - Draw the soccer-ball app icon\n", version)
	fmt.Println(`
Usage:
  mkicon [options] [output.png]

Options:
  --size, -s <16-4096>       Canvas edge in pixels (default: 1024)
  --mipmaps, -m <resDir>     Also write launcher icons to <resDir>/mipmap-*/
  --name <file>              Launcher icon file name (default: ic_launcher.png)
  --no-ledger                Do not record written files in the asset ledger

The default output is assets/icons/app_icon.png. Written files are recorded
in the asset ledger (see 'tinticons history') unless --no-ledger is given.`)
}
