package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/urfave/cli/v2"
	"github.com/utilitywarehouse/slashstrip/strip"
	"github.com/utilitywarehouse/slashstrip/strip/journal"
)

func main() {
	log.SetFlags(0)

	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(formatError(err.Error()))
	}
}

func journalFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "journal",
		Value:   defaultJournalName(),
		Usage:   "Run history database (empty to disable)",
		EnvVars: []string{"SLASHSTRIP_JOURNAL"},
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "slashstrip",
		Usage: "Strip // comments from source files, in place",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "root",
				Usage:   "Root directory to walk",
				EnvVars: []string{"SLASHSTRIP_ROOT"},
			},
			&cli.StringFlag{
				Name:    "suffix",
				Value:   strip.DefaultSuffix,
				Usage:   "Only files whose name ends with this are processed",
				EnvVars: []string{"SLASHSTRIP_SUFFIX"},
			},
			&cli.StringFlag{
				Name:    "encoding",
				Value:   "utf-8",
				Usage:   "Text encoding of the source files (utf-8, windows-1252, ...)",
				EnvVars: []string{"SLASHSTRIP_ENCODING"},
			},
			&cli.StringSliceFlag{
				Name:    "exclude",
				Usage:   "Glob, relative to root, of files or directories to leave alone (e.g. .git). May be repeated",
				EnvVars: []string{"SLASHSTRIP_EXCLUDE"},
			},
			&cli.StringFlag{
				Name:    "on-error",
				Value:   strip.Continue.String(),
				Usage:   "What to do when a file cannot be read or written [continue|abort]",
				EnvVars: []string{"SLASHSTRIP_ON_ERROR"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "strip",
				Usage:  "Remove comments from the source files",
				Flags:  []cli.Flag{journalFlag()},
				Action: runStrip,
			},
			{
				Name:   "stats",
				Usage:  "Show what strip would remove, without writing anything",
				Action: runStats,
			},
			{
				Name:   "history",
				Usage:  "List previous strip runs",
				Flags:  []cli.Flag{journalFlag()},
				Action: runHistory,
			},
		},
	}
}

func configFromContext(ctx *cli.Context) (strip.Config, error) {
	policy, err := strip.ParseErrorPolicy(ctx.String("on-error"))
	if err != nil {
		return strip.Config{}, err
	}
	return strip.Config{
		Root:     ctx.String("root"),
		Suffix:   ctx.String("suffix"),
		Encoding: ctx.String("encoding"),
		Exclude:  ctx.StringSlice("exclude"),
		OnError:  policy,
		Logger:   log.Default(),
	}, nil
}

func runStrip(ctx *cli.Context) error {
	cfg, err := configFromContext(ctx)
	if err != nil {
		return err
	}

	started := time.Now()
	res, err := strip.StripComments(cfg)
	if res == nil {
		return err
	}

	fmt.Fprintln(ctx.App.Writer, formatResult(res))

	if filename := ctx.String("journal"); filename != "" {
		run := &journal.Run{
			Time:      started,
			Root:      cfg.Root,
			Suffix:    cfg.Suffix,
			Encoding:  cfg.Encoding,
			Files:     res.Files,
			Changed:   res.Changed,
			Failed:    len(res.Failures),
			Dropped:   res.Lines.Dropped,
			Truncated: res.Lines.Truncated,
		}
		if jerr := journal.New(filename).Record(run); jerr != nil {
			log.Println(formatWarning(fmt.Sprintf("journal %s not updated: %v", filename, jerr)))
		}
	}

	return exitError(cfg, err)
}

func runStats(ctx *cli.Context) error {
	cfg, err := configFromContext(ctx)
	if err != nil {
		return err
	}

	report, err := strip.Stats(cfg)
	if report == nil {
		return err
	}
	if rerr := report.Render(ctx.App.Writer); rerr != nil {
		return rerr
	}
	return exitError(cfg, err)
}

func runHistory(ctx *cli.Context) error {
	filename := ctx.String("journal")
	if filename == "" {
		return errors.New("no journal configured")
	}
	runs, err := journal.New(filename).Runs()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(ctx.App.Writer, formatMuted("no runs recorded in "+filename))
		return nil
	}
	return journal.WriteTable(ctx.App.Writer, runs)
}

// exitError turns per-file failures into a non-zero exit. Each failure has
// already been logged as it happened.
func exitError(cfg strip.Config, err error) error {
	if err == nil {
		return nil
	}
	var ferr *strip.FileError
	if cfg.OnError == strip.Abort && errors.As(err, &ferr) {
		return cli.Exit(formatError("aborted: "+ferr.Error()), 1)
	}
	if errors.As(err, &ferr) {
		return cli.Exit(formatError("some files could not be processed"), 1)
	}
	return err
}
