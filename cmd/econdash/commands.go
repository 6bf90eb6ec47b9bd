package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"

	"EconDash/internal/app"
	"EconDash/internal/exporter"
	"EconDash/internal/logx"
	"EconDash/internal/model"
	"EconDash/internal/report"
)

const shutdownTimeout = 10 * time.Second

// bootLogger reports failures that happen before the configured logger exists.
var bootLogger = logx.New("info", "console")

func initialize(ctx context.Context) (*app.App, func(), bool) {
	a, cleanup, err := InitializeApp(ctx, app.ConfigPath(*configPath))
	if err != nil {
		bootLogger.Error().Err(err).Str("config", *configPath).Msg("failed to initialize app")
		return nil, nil, false
	}
	return a, cleanup, true
}

// serveCmd runs the HTTP API and the background scheduler.
type serveCmd struct {
	runOnStart bool
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the dashboard API" }
func (*serveCmd) Usage() string {
	return "serve [-run-on-start]:\n  Serve /api/fred, /api/dashboard and friends until interrupted.\n"
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.runOnStart, "run-on-start", os.Getenv("RUN_ON_START") == "true", "probe upstream once at startup")
}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, cleanup, ok := initialize(ctx)
	if !ok {
		return subcommands.ExitFailure
	}
	defer cleanup()
	logger := a.Logger

	a.Scheduler.Start()
	defer a.Scheduler.Stop()

	if c.runOnStart {
		logger.Info().Msg("run-on-start enabled, probing upstream now")
		go a.Scheduler.RunProbeNow()
	}

	errCh := make(chan error, 1)
	go func() { errCh <- a.Server.Start() }()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server failed")
			return subcommands.ExitFailure
		}
	case <-ctx.Done():
		logger.Info().Msg("shutdown signal received, stopping...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.Server.Stop(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
	logger.Info().Msg("econdash stopped")
	return subcommands.ExitSuccess
}

// fetchCmd loads live data once and prints it.
type fetchCmd struct {
	asJSON       bool
	withFallback bool
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetch live data once and print a summary" }
func (*fetchCmd) Usage() string {
	return "fetch [-json] [-fallback]:\n  Fetch all series from FRED and print them.\n"
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.asJSON, "json", false, "print the dataset as JSON instead of a summary")
	f.BoolVar(&c.withFallback, "fallback", false, "print the fallback dataset when the live load fails")
}

func (c *fetchCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, cleanup, ok := initialize(ctx)
	if !ok {
		return subcommands.ExitFailure
	}
	defer cleanup()

	source := "live"
	ds, evt, err := a.Service.Live(ctx, model.TriggerCLI)
	asOf := evt.StartedAt
	if err != nil {
		if !c.withFallback {
			fmt.Fprintf(os.Stderr, "fetch failed: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(os.Stderr, "using fallback data: %v\n", err)
		source = "fallback (" + a.Service.Fallback.Source() + ")"
		ds = a.Service.Fallback.Dataset()
		asOf = a.Service.Fallback.LoadedAt()
	}

	if c.asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(ds); err != nil {
			fmt.Fprintf(os.Stderr, "encode: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	fmt.Print(report.FormatSummary(ds, source, asOf))
	return subcommands.ExitSuccess
}

// exportCmd writes a dataset to a file.
type exportCmd struct {
	format   string
	fallback bool
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write the dataset to a json, yaml, csv or parquet file" }
func (*exportCmd) Usage() string {
	return "export [-format yaml] [-fallback] <path>:\n  Export live data (or the fallback dataset). YAML output is a valid fallback asset.\n"
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", "", "output format: "+strings.Join(exporter.Formats(), ", ")+" (default: from the file extension)")
	f.BoolVar(&c.fallback, "fallback", false, "export the current fallback dataset instead of live data")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	path := f.Arg(0)
	format := c.format
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}
	saver := exporter.NewSaver(format)
	if saver == nil {
		fmt.Fprintf(os.Stderr, "unsupported format %q (use: %s)\n", format, strings.Join(exporter.Formats(), ", "))
		return subcommands.ExitUsageError
	}

	a, cleanup, ok := initialize(ctx)
	if !ok {
		return subcommands.ExitFailure
	}
	defer cleanup()

	ds := a.Service.Fallback.Dataset()
	if !c.fallback {
		live, _, err := a.Service.Live(ctx, model.TriggerCLI)
		if err != nil {
			fmt.Fprintf(os.Stderr, "fetch failed: %v\n", err)
			return subcommands.ExitFailure
		}
		ds = live
	}

	if err := saver.Save(ds, path); err != nil {
		a.Logger.Error().Err(err).Str("path", path).Msg("export failed")
		return subcommands.ExitFailure
	}
	logExport(a.Logger, path, saver.Extension(), ds)
	return subcommands.ExitSuccess
}

func logExport(logger zerolog.Logger, path, format string, ds *model.EconomicDataset) {
	evt := logger.Info().Str("path", path).Str("format", format).Interface("points", ds.Counts())
	if st, err := os.Stat(path); err == nil {
		evt = evt.Str("size", humanize.Bytes(uint64(st.Size())))
	}
	evt.Msg("dataset exported")
}

// historyCmd prints recent dashboard loads.
type historyCmd struct {
	limit int
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "list recent dashboard loads" }
func (*historyCmd) Usage() string {
	return "history [-limit 20]:\n  Print recorded loads, newest first. Requires database.sqlite_path.\n"
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.limit, "limit", 20, "number of loads to show")
}

func (c *historyCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, cleanup, ok := initialize(ctx)
	if !ok {
		return subcommands.ExitFailure
	}
	defer cleanup()

	events, err := a.Service.History(c.limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "history: %v\n", err)
		return subcommands.ExitFailure
	}
	if len(events) == 0 {
		fmt.Println("no loads recorded")
		return subcommands.ExitSuccess
	}
	for i := range events {
		fmt.Println(report.FormatLoad(&events[i]))
	}
	return subcommands.ExitSuccess
}
