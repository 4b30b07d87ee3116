package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/npillmayer/segtree/readings"
)

// appConfig holds the settings of daytemps. Flags override environment
// variables, which may be set in a .env file.
type appConfig struct {
	Data       string    // CSV file with daily readings
	Column     string    // value column; empty for the first column
	DateColumn string    // optional date column
	Start      time.Time // date of day 0 if there is no date column
	TraceLevel string    // Error, Info or Debug
	HTML       string    // default file for HTML export
	envLoaded  error     // result of loading .env, for tracing after setup
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// loadConfig reads configuration from the environment and from args.
func loadConfig(args []string, errOut io.Writer) (*appConfig, error) {
	cfg := &appConfig{}
	cfg.envLoaded = godotenv.Load()
	fs := flag.NewFlagSet("daytemps", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.StringVar(&cfg.Data, "data", getenvDefault("DAYTEMPS_DATA", "yearly_weather_data.csv"),
		"CSV file with one reading per day")
	fs.StringVar(&cfg.Column, "column", os.Getenv("DAYTEMPS_COLUMN"),
		"name of the column holding readings (default: first column)")
	fs.StringVar(&cfg.DateColumn, "date-column", os.Getenv("DAYTEMPS_DATE_COLUMN"),
		"name of an optional column holding dates")
	start := fs.String("start", getenvDefault("DAYTEMPS_START", "2024-01-01"),
		"date of day 0, if there is no date column")
	fs.StringVar(&cfg.TraceLevel, "trace", getenvDefault("DAYTEMPS_TRACE", "Error"),
		"trace level: Error, Info or Debug")
	fs.StringVar(&cfg.HTML, "html", getenvDefault("DAYTEMPS_HTML", "daytemps.html"),
		"file for HTML export")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	t, err := time.Parse(readings.DateLayout, *start)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", *start, err)
	}
	cfg.Start = t
	return cfg, nil
}

func (cfg *appConfig) readingsOptions() *readings.Options {
	opts := readings.DefaultOptions()
	opts.Column = cfg.Column
	opts.DateColumn = cfg.DateColumn
	opts.Start = cfg.Start
	return opts
}
