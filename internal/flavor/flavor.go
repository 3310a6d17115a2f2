// Package flavor produces per-flavor launcher icons: tinted copies for the
// stage build and verbatim copies for the production build.
package flavor

import (
	"context"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/Mavwarf/flavoricons/internal/density"
	"github.com/Mavwarf/flavoricons/internal/eventlog"
	"github.com/Mavwarf/flavoricons/internal/paths"
	"github.com/Mavwarf/flavoricons/internal/tint"
)

// Flavor is an Android product flavor that receives icons.
type Flavor string

const (
	Stage Flavor = "stage"
	Prod  Flavor = "prod"
)

// Layout locates the launcher icons of each source set.
type Layout struct {
	MainRes  string
	StageRes string
	ProdRes  string
	IconName string
}

// Source returns the main source set icon for b.
func (l Layout) Source(b density.Bucket) string {
	return filepath.Join(l.MainRes, b.Dir(), l.IconName)
}

// Output returns the icon path for b in flavor f.
func (l Layout) Output(f Flavor, b density.Bucket) string {
	root := l.ProdRes
	if f == Stage {
		root = l.StageRes
	}
	return filepath.Join(root, b.Dir(), l.IconName)
}

// Check rejects layouts where two roots are the same directory. Tinting
// into the main source set would destroy the originals, and a shared
// stage/prod root lets the prod pass overwrite the stage icons.
func (l Layout) Check() error {
	switch {
	case paths.SameDir(l.MainRes, l.StageRes):
		return fmt.Errorf("flavor: stage root %s is the main source set", l.StageRes)
	case paths.SameDir(l.MainRes, l.ProdRes):
		return fmt.Errorf("flavor: prod root %s is the main source set", l.ProdRes)
	case paths.SameDir(l.StageRes, l.ProdRes):
		return fmt.Errorf("flavor: stage and prod share root %s", l.StageRes)
	}
	return nil
}

// Result is the outcome for one bucket of one flavor.
type Result struct {
	Flavor Flavor
	Bucket density.Bucket
	Source string
	Output string
	Action eventlog.Action
	Err    error
}

// Report collects every Result of a run in processing order.
type Report struct {
	Results []Result
}

// Count returns how many results have action a.
func (r Report) Count(a eventlog.Action) int {
	n := 0
	for _, res := range r.Results {
		if res.Action == a {
			n++
		}
	}
	return n
}

// Failed reports whether any item failed.
func (r Report) Failed() bool {
	return r.Count(eventlog.ActionFailed) > 0
}

// Recorder receives one ledger entry per result.
type Recorder interface {
	Record(e eventlog.Entry) error
}

// Options configures Run.
type Options struct {
	Tint     color.RGBA
	Log      zerolog.Logger
	Recorder Recorder // optional
}

// Run writes tinted stage icons and then verbatim production copies for
// every bucket. A missing source is logged and skipped; a failing bucket
// is recorded and the run goes on. Run returns an error only for a layout
// rejected by Check, before any file is touched, or for ctx being
// cancelled between items.
func Run(ctx context.Context, l Layout, buckets []density.Bucket, opts Options) (Report, error) {
	var rep Report
	if err := l.Check(); err != nil {
		return rep, err
	}
	log := opts.Log

	log.Info().Msgf("Generating stage icons with %s tint...", tint.Hex(opts.Tint))
	for _, b := range buckets {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		res := stageOne(l, b, opts.Tint)
		report(log, res)
		record(opts, res)
		rep.Results = append(rep.Results, res)
	}

	log.Info().Msg("Copying original icons to prod...")
	for _, b := range buckets {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		res := prodOne(l, b)
		report(log, res)
		record(opts, res)
		rep.Results = append(rep.Results, res)
	}

	return rep, nil
}

func stageOne(l Layout, b density.Bucket, c color.RGBA) Result {
	res := Result{Flavor: Stage, Bucket: b, Source: l.Source(b), Output: l.Output(Stage, b)}
	if !paths.Exists(res.Source) {
		res.Action = eventlog.ActionSkipped
		return res
	}
	if err := tint.File(res.Source, res.Output, c); err != nil {
		res.Action, res.Err = eventlog.ActionFailed, err
		return res
	}
	res.Action = eventlog.ActionTinted
	return res
}

func prodOne(l Layout, b density.Bucket) Result {
	res := Result{Flavor: Prod, Bucket: b, Source: l.Source(b), Output: l.Output(Prod, b)}
	if !paths.Exists(res.Source) {
		res.Action = eventlog.ActionSkipped
		return res
	}
	if err := CopyFile(res.Source, res.Output); err != nil {
		res.Action, res.Err = eventlog.ActionFailed, err
		return res
	}
	res.Action = eventlog.ActionCopied
	return res
}

func report(log zerolog.Logger, res Result) {
	switch res.Action {
	case eventlog.ActionTinted:
		log.Info().Msgf("Created tinted icon: %s", res.Output)
	case eventlog.ActionCopied:
		log.Info().Msgf("Copied: %s", res.Output)
	case eventlog.ActionSkipped:
		log.Warn().Msgf("%s not found", res.Source)
	case eventlog.ActionFailed:
		log.Error().Err(res.Err).Str("density", string(res.Bucket)).Msgf("%s icon failed", res.Flavor)
	}
}

func record(opts Options, res Result) {
	if opts.Recorder == nil {
		return
	}
	e := eventlog.Entry{
		Flavor:  string(res.Flavor),
		Density: string(res.Bucket),
		Source:  res.Source,
		Output:  res.Output,
		Action:  res.Action,
	}
	if res.Err != nil {
		e.Error = res.Err.Error()
	}
	if res.Action == eventlog.ActionTinted || res.Action == eventlog.ActionCopied {
		if sum, err := eventlog.Checksum(res.Output); err == nil {
			e.SHA256 = sum
		}
	}
	if err := opts.Recorder.Record(e); err != nil {
		opts.Log.Warn().Err(err).Msg("ledger: record failed")
	}
}

// CopyFile copies src to dst byte for byte, creating dst's directory.
func CopyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("flavor: copy: %w", err)
	}
	if err := paths.AtomicWrite(dst, data); err != nil {
		return fmt.Errorf("flavor: copy to %s: %w", dst, err)
	}
	return nil
}
