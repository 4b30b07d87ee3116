/*
Command daytemps is an interactive console program for analysing a year of
daily temperature readings.

Readings are loaded from a CSV file and held in a segment tree. A menu offers
updates of single days and ranges of days, as well as reports on extremes,
averages, threshold alerts and moving averages.

Usage:

	daytemps [-data file.csv] [-column tmax] [-start 2024-01-01] [-trace Debug]

Settings may also be given as environment variables DAYTEMPS_DATA,
DAYTEMPS_COLUMN, DAYTEMPS_DATE_COLUMN, DAYTEMPS_START, DAYTEMPS_TRACE and
DAYTEMPS_HTML, or in a .env file.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the LICENSE file for details.
*/
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/segtree/feed"
	"github.com/npillmayer/segtree/readings"
	"github.com/npillmayer/segtree/report"
)

// tracer traces with key 'segtree'
func tracer() tracing.Trace {
	return tracing.Select("segtree")
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes daytemps and returns the exit code: 0 on success, 1 if readings
// cannot be loaded or the session fails, and 2 for invalid arguments.
func run(args []string, in io.Reader, out, errOut io.Writer) int {
	cfg, err := loadConfig(args, errOut)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	} else if err != nil {
		fmt.Fprintf(errOut, "daytemps: %v\n", err)
		return 2
	}
	setupTracing(cfg.TraceLevel)
	if cfg.envLoaded != nil {
		tracer().Infof("no .env file loaded: %v", cfg.envLoaded)
	}
	f, series, err := open(cfg)
	if err != nil {
		tracer().Errorf("cannot load readings: %v", err)
		fmt.Fprintf(errOut, "daytemps: cannot load readings from %q: %v\n", cfg.Data, err)
		return 1
	}
	defer f.Close()
	changes, cancel := f.Subscribe(16)
	defer cancel()
	go logChanges(changes)
	//
	console := report.ConfigFromTerminal()
	console.Start = series.Start
	s := newSession(f, series, cfg, in, out, console)
	fmt.Fprintf(out, "Loaded readings for %d days (%d missing) from %s\n",
		series.Len(), len(series.Missing), cfg.Data)
	if err := s.run(); err != nil {
		tracer().Errorf("session ended: %v", err)
		return 1
	}
	return 0
}

// setupTracing routes all tracing to a Go standard logger on stderr.
func setupTracing(level string) {
	tracing.SetTraceSelector(tracing.SelectorForAdapter(gologadapter.GetAdapter()))
	l := tracing.TraceLevelFromString(level)
	tracer().SetTraceLevel(l)
	gtrace.CommandTracer = gologadapter.New()
	gtrace.CommandTracer.SetTraceLevel(l)
}

// open loads the readings configured in cfg and wraps them in a feed.
func open(cfg *appConfig) (*feed.Feed, *readings.Series, error) {
	series, err := readings.Load(cfg.Data, cfg.readingsOptions())
	if err != nil {
		return nil, nil, err
	}
	tree, err := series.Tree()
	if err != nil {
		return nil, nil, err
	}
	f, err := feed.New(tree)
	if err != nil {
		return nil, nil, err
	}
	return f, series, nil
}

func logChanges(changes <-chan feed.Change) {
	for c := range changes {
		tracer().P("change", c.Kind).Infof("%v", c)
	}
}
