package report

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

import (
	"fmt"
	"io"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/npillmayer/segtree/analysis"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/uax11"
	"golang.org/x/term"
)

// ConsoleConfig represents a set of configuration parameters for console output.
type ConsoleConfig struct {
	LineWidth int            // width of the console in ‘en’s
	Context   *uax11.Context // context for display width of characters
	Colors    bool           // color hot and cold readings
	Unit      string         // unit appended to readings, e.g. "°C"
	Hot, Cold float64        // readings >= Hot (<= Cold) will be colored
	Start     time.Time      // date of day 0; zero means: do not print dates
}

// DefaultHot and DefaultCold are the coloring thresholds of ConfigFromTerminal.
const (
	DefaultHot  = 30.0
	DefaultCold = 0.0
)

// Console outputs reports to a console with a fixed width font.
type Console struct {
	w      io.Writer
	config ConsoleConfig
	hot    *color.Color
	cold   *color.Color
	head   *color.Color
}

var setupGraphemes sync.Once

// NewConsole creates a console report writer. If config is nil, a heuristic
// creates a config from the current terminal's properties.
func NewConsole(w io.Writer, config *ConsoleConfig) *Console {
	if config == nil {
		config = ConfigFromTerminal()
	}
	setupGraphemes.Do(func() { grapheme.SetupGraphemeClasses() })
	c := &Console{
		w:      w,
		config: *config,
		hot:    color.New(color.FgRed),
		cold:   color.New(color.FgBlue),
		head:   color.New(color.Bold),
	}
	if c.config.Context == nil {
		c.config.Context = uax11.LatinContext
	}
	if c.config.LineWidth <= 0 {
		c.config.LineWidth = 65
	}
	return c
}

// --- Reports ---------------------------------------------------------------

// Days prints a table of readings, one cell per day. values holds NaN for days
// without reading. Cells are arranged in as many columns as fit the line width.
func (c *Console) Days(values []float64) {
	c.heading(fmt.Sprintf("Readings for %d days", len(values)))
	labelW, valueW := 0, 0
	for day, v := range values {
		labelW = max(labelW, c.width(c.dayLabel(day)))
		valueW = max(valueW, c.width(c.reading(v)))
	}
	cols := max(1, c.config.LineWidth/(labelW+valueW+5))
	for day, v := range values {
		c.styled(c.pad(c.dayLabel(day), labelW+2), nil)
		c.value(v, valueW)
		if (day+1)%cols == 0 || day == len(values)-1 {
			c.styled("\n", nil)
		} else {
			c.styled("   ", nil)
		}
	}
}

// Extremes prints the hottest and the coldest day.
func (c *Console) Extremes(x analysis.Extremes) {
	c.heading("Extremes")
	c.field("hottest", x.Hottest.Value, c.dayLabel(x.Hottest.Day))
	c.field("coldest", x.Coldest.Value, c.dayLabel(x.Coldest.Day))
}

// Climate prints a climate summary.
func (c *Console) Climate(s analysis.ClimateSummary) {
	c.heading("Climate")
	c.field("average", s.Average, "")
	c.text("records", fmt.Sprintf("%d of %d days", s.Records, s.Days))
}

// Range prints the analytics for a range of days.
func (c *Console) Range(r analysis.RangeReport) {
	c.heading(fmt.Sprintf("Days %s … %s", c.dayLabel(r.Lo), c.dayLabel(r.Hi)))
	if r.Summary.IsEmpty() {
		c.text("records", "none")
		return
	}
	c.field("max", r.Summary.Max, c.dayLabel(r.Summary.MaxDay))
	c.field("min", r.Summary.Min, c.dayLabel(r.Summary.MinDay))
	c.field("average", r.Average(), "")
	c.text("records", fmt.Sprintf("%d", r.Summary.Count))
}

// Alerts prints the days found above or below a threshold.
func (c *Console) Alerts(alerts []analysis.Reading, threshold float64, dir analysis.Direction) {
	c.heading(fmt.Sprintf("Days %v %s", dir, c.reading(threshold)))
	if len(alerts) == 0 {
		c.text("alerts", "none")
		return
	}
	for _, a := range alerts {
		c.field(c.dayLabel(a.Day), a.Value, "")
	}
}

// MovingAverage prints the moving averages for window ±k.
func (c *Console) MovingAverage(averages []float64, k int) {
	c.heading(fmt.Sprintf("Moving average, window ±%d days", k))
	for day, avg := range averages {
		c.field(c.dayLabel(day), avg, "")
	}
}

// Message prints a line of text.
func (c *Console) Message(format string, args ...interface{}) {
	c.styled(fmt.Sprintf(format, args...)+"\n", nil)
}

// --- Output helpers --------------------------------------------------------

const labelWidth = 12

func (c *Console) heading(s string) {
	c.styled(s, c.head)
	c.styled("\n", nil)
	n := min(c.width(s), c.config.LineWidth)
	c.styled(strings.Repeat("─", n)+"\n", nil)
}

func (c *Console) field(label string, v float64, suffix string) {
	c.styled(c.pad(label, labelWidth), nil)
	c.value(v, 0)
	if suffix != "" {
		c.styled("  ("+suffix+")", nil)
	}
	c.styled("\n", nil)
}

func (c *Console) text(label, s string) {
	c.styled(c.pad(label, labelWidth)+s+"\n", nil)
}

// value prints a reading right-aligned to width, colored if hot or cold.
func (c *Console) value(v float64, width int) {
	s := c.reading(v)
	if n := width - c.width(s); n > 0 {
		c.styled(strings.Repeat(" ", n), nil)
	}
	switch {
	case math.IsNaN(v):
		c.styled(s, nil)
	case v >= c.config.Hot:
		c.styled(s, c.hot)
	case v <= c.config.Cold:
		c.styled(s, c.cold)
	default:
		c.styled(s, nil)
	}
}

func (c *Console) reading(v float64) string {
	if math.IsNaN(v) {
		return "–"
	}
	return fmt.Sprintf("%.1f%s", v, c.config.Unit)
}

func (c *Console) dayLabel(day int) string {
	if c.config.Start.IsZero() {
		return fmt.Sprintf("day %d", day)
	}
	return c.config.Start.AddDate(0, 0, day).Format("Mon 2006-01-02")
}

// width returns the display width of s in ‘en’s. Printable ASCII is one en
// wide; uax11 classifies ASCII digits as emoji candidates, so only runs of
// non-ASCII characters are measured with uax11.
func (c *Console) width(s string) int {
	w, run := 0, -1
	for i, r := range s {
		if r >= 0x20 && r < 0x7f {
			if run >= 0 {
				w += c.runWidth(s[run:i])
				run = -1
			}
			w++
		} else if run < 0 {
			run = i
		}
	}
	if run >= 0 {
		w += c.runWidth(s[run:])
	}
	return w
}

func (c *Console) runWidth(s string) int {
	return uax11.StringWidth(grapheme.StringFromString(s), c.config.Context)
}

// pad appends blanks to s up to a display width of n.
func (c *Console) pad(s string, n int) string {
	if w := c.width(s); w < n {
		return s + strings.Repeat(" ", n-w)
	}
	return s + " "
}

func (c *Console) styled(s string, col *color.Color) {
	if col != nil && c.config.Colors {
		col.Fprint(c.w, s)
		return
	}
	if _, err := io.WriteString(c.w, s); err != nil {
		tracer().Errorf("console output: %v", err)
	}
}

// --- Config for terminals --------------------------------------------------

// ConfigFromTerminal is a simple helper for creating a console configuration.
// It checks wether stdout is a terminal, and if so it reads the terminal's width
// and sets the LineWidth parameter accordingly. Colors are switched on for
// terminals only.
func ConfigFromTerminal() *ConsoleConfig {
	config := &ConsoleConfig{
		Unit: "°C",
		Hot:  DefaultHot,
		Cold: DefaultCold,
	}
	if term.IsTerminal(1) {
		config.Colors = !color.NoColor
		w, _, err := term.GetSize(1)
		if err != nil {
			config.LineWidth = 65
		} else if w > 30 {
			config.LineWidth = w - 5
		} else {
			config.LineWidth = max(w, 10)
		}
	} else {
		config.LineWidth = 65
	}
	config.Context = uax11.ContextFromEnvironment()
	tracer().P("format", "console").Infof("setting line length to %d en", config.LineWidth)
	return config
}
