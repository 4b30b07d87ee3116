package readings

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
this list of conditions and the following disclaimer in the documentation
and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/

// DateLayout is the default layout of dates in reading files and configuration.
const DateLayout = "2006-01-02"

// Options holds options for loading readings.
type Options struct {
	Column     string    // header of the value column; empty selects the first column
	DateColumn string    // header of an optional date column, setting Start from the first row
	HasHeader  bool      // whether the input starts with a header row
	Comma      rune      // field delimiter
	Start      time.Time // calendar date of day 0
}

// DefaultOptions returns default options for loading readings: a header row,
// comma-separated, values from the first column, day 0 at January 1st of the
// current year.
func DefaultOptions() *Options {
	now := time.Now()
	return &Options{
		HasHeader: true,
		Comma:     ',',
		Start:     time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Load reads a file, which must be a regular CSV file, and loads its readings
// as a series. opts may be nil, letting Load use DefaultOptions.
func Load(name string, opts *Options) (*Series, error) {
	fi, err := os.Stat(name)
	if err != nil {
		return nil, err
	} else if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("readings: %s is not a regular file", name)
	}
	file, err := os.Open(name) // just open for read access
	if err != nil {
		return nil, err
	}
	defer file.Close()
	tracer().Infof("loading readings from %s (%d bytes)", name, fi.Size())
	return LoadFrom(file, opts)
}

// LoadFrom loads readings from an io.Reader. opts may be nil.
func LoadFrom(r io.Reader, opts *Options) (*Series, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	reader := csv.NewReader(r)
	if opts.Comma != 0 {
		reader.Comma = opts.Comma
	}
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	valueIdx, dateIdx := 0, -1
	line := 0
	if opts.HasHeader {
		header, err := reader.Read()
		if err == io.EOF {
			return nil, ErrNoReadings
		} else if err != nil {
			return nil, err
		}
		line++
		if valueIdx, dateIdx, err = findColumns(header, opts); err != nil {
			return nil, err
		}
	} else if opts.Column != "" {
		return nil, fmt.Errorf("%w: %q requested, but input has no header", ErrNoColumn, opts.Column)
	}
	series := &Series{Start: dayOf(opts.Start)}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		line++
		if dateIdx >= 0 && len(series.Values) == 0 && dateIdx < len(record) {
			if start, err := time.Parse(DateLayout, strings.TrimSpace(record[dateIdx])); err == nil {
				series.Start = dayOf(start)
			}
		}
		cell := ""
		if valueIdx < len(record) {
			cell = strings.TrimSpace(strings.Trim(record[valueIdx], "\""))
		}
		if isMissing(cell) {
			series.Missing = append(series.Missing, len(series.Values))
			series.Values = append(series.Values, 0)
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil || !isFinite(v) {
			return nil, fmt.Errorf("%w: %q in line %d", ErrBadValue, cell, line)
		}
		series.Values = append(series.Values, v)
	}
	if len(series.Values) == 0 {
		return nil, ErrNoReadings
	}
	tracer().Debugf("loaded %d readings, %d missing", len(series.Values), len(series.Missing))
	return series, nil
}

func findColumns(header []string, opts *Options) (valueIdx, dateIdx int, err error) {
	valueIdx, dateIdx = -1, -1
	for i, h := range header {
		h = strings.TrimSpace(strings.Trim(h, "\""))
		switch {
		case opts.Column != "" && strings.EqualFold(h, opts.Column):
			valueIdx = i
		case opts.DateColumn != "" && strings.EqualFold(h, opts.DateColumn):
			dateIdx = i
		}
	}
	if opts.Column == "" {
		valueIdx = 0
		if dateIdx == 0 && len(header) > 1 {
			valueIdx = 1
		}
	}
	if valueIdx < 0 {
		return -1, -1, fmt.Errorf("%w: %q", ErrNoColumn, opts.Column)
	}
	return valueIdx, dateIdx, nil
}

func isMissing(cell string) bool {
	switch strings.ToLower(cell) {
	case "", "na", "nan", "null", "none", "-":
		return true
	}
	return false
}
