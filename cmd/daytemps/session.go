package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/segtree"
	"github.com/npillmayer/segtree/analysis"
	"github.com/npillmayer/segtree/feed"
	"github.com/npillmayer/segtree/readings"
	"github.com/npillmayer/segtree/report"
)

// errEndOfInput signals that the user closed the input stream.
var errEndOfInput = errors.New("end of input")

// session is an interactive menu loop on a feed of readings.
type session struct {
	feed    *feed.Feed
	series  *readings.Series
	cfg     *appConfig
	in      *bufio.Scanner
	out     io.Writer
	console *report.Console
}

func newSession(f *feed.Feed, series *readings.Series, cfg *appConfig,
	in io.Reader, out io.Writer, cc *report.ConsoleConfig) *session {
	//
	return &session{
		feed:    f,
		series:  series,
		cfg:     cfg,
		in:      bufio.NewScanner(in),
		out:     out,
		console: report.NewConsole(out, cc),
	}
}

var menu = []string{
	"1. Record/update a day",
	"2. Remove a day",
	"3. Daily report",
	"4. Extremes",
	"5. Climate summary",
	"6. Range analytics",
	"7. Threshold alerts",
	"8. Moving average",
	"9. Add to range of days",
	"10. Assign to range of days",
	"11. Write tree as DOT",
	"12. Export HTML report",
	"0. Exit",
}

// run loops over menu commands until the user exits or input ends.
func (s *session) run() error {
	for {
		fmt.Fprintf(s.out, "\n%s MENU %s\n", strings.Repeat("=", 15), strings.Repeat("=", 15))
		for _, item := range menu {
			fmt.Fprintln(s.out, item)
		}
		choice, err := s.readInt(fmt.Sprintf("Enter your choice (0-%d): ", len(menu)-1))
		if errors.Is(err, errEndOfInput) {
			return s.in.Err()
		} else if err != nil {
			s.console.Message("Invalid input, please enter a number.")
			continue
		}
		if choice == 0 {
			s.console.Message("Goodbye!")
			return nil
		}
		gtrace.CommandTracer.P("cmd", choice).Debugf("menu command")
		err = s.command(choice)
		if errors.Is(err, errEndOfInput) {
			return s.in.Err()
		} else if errors.Is(err, segtree.ErrNoData) {
			s.console.Message("No data available.")
		} else if err != nil {
			tracer().Errorf("command %d: %v", choice, err)
			s.console.Message("Error: %v", err)
		}
	}
}

func (s *session) command(choice int) error {
	switch choice {
	case 1:
		day, err := s.readDay("Day to update")
		if err != nil {
			return err
		}
		v, err := s.readFloat("New reading: ")
		if err != nil {
			return err
		}
		if err := s.feed.SetValue(day, v); err != nil {
			return err
		}
		s.console.Message("Day %d updated to %g.", day, v)
	case 2:
		day, err := s.readDay("Day to remove")
		if err != nil {
			return err
		}
		if err := s.feed.Remove(day); err != nil {
			return err
		}
		s.console.Message("Reading of day %d removed.", day)
	case 3:
		return s.dailyReport()
	case 4:
		x, err := analysis.FindExtremes(s.feed)
		if err != nil {
			return err
		}
		s.console.Extremes(x)
	case 5:
		c, err := analysis.Climate(s.feed)
		if err != nil {
			return err
		}
		s.console.Climate(c)
	case 6:
		lo, hi, err := s.readRange()
		if err != nil {
			return err
		}
		r, err := analysis.Range(s.feed, lo, hi)
		if errors.Is(err, segtree.ErrNoData) {
			s.console.Message("No data in days %d…%d.", lo, hi)
			return nil
		} else if err != nil {
			return err
		}
		s.console.Range(r)
	case 7:
		threshold, err := s.readFloat("Threshold: ")
		if err != nil {
			return err
		}
		line, err := s.readLine("Find days [above] or [below] threshold? ")
		if err != nil {
			return err
		}
		dir, err := analysis.ParseDirection(line)
		if err != nil {
			return err
		}
		alerts, err := analysis.Alerts(s.feed, threshold, dir)
		if err != nil {
			return err
		}
		s.console.Alerts(alerts, threshold, dir)
	case 8:
		k, err := s.readInt("Window half-width k (e.g. 3 for a weekly window): ")
		if err != nil {
			return err
		}
		averages, err := analysis.MovingAverage(s.feed, k)
		if err != nil {
			return err
		}
		s.console.MovingAverage(averages, k)
	case 9, 10:
		lo, hi, err := s.readRange()
		if err != nil {
			return err
		}
		var op segtree.Update
		if choice == 9 {
			delta, err := s.readFloat("Add to every reading: ")
			if err != nil {
				return err
			}
			op = segtree.Add(delta)
		} else {
			v, err := s.readFloat("Assign to every reading: ")
			if err != nil {
				return err
			}
			op = segtree.Assign(v)
		}
		if err := s.feed.ApplyRange(lo, hi, op); err != nil {
			return err
		}
		s.console.Message("Applied %v to days %d…%d.", op, lo, hi)
	case 11:
		return s.writeFile("DOT file [segtree.dot]: ", "segtree.dot", func(w io.Writer) error {
			return s.feed.Dot(w, 5)
		})
	case 12:
		return s.writeFile(fmt.Sprintf("HTML file [%s]: ", s.cfg.HTML), s.cfg.HTML, func(w io.Writer) error {
			return report.HTML(w, "Daily readings from "+s.cfg.Data, s.feed.Values(), s.series.Start)
		})
	default:
		s.console.Message("Invalid choice, please enter a number between 0 and %d.", len(menu)-1)
	}
	return nil
}

func (s *session) dailyReport() error {
	line, err := s.readLine(fmt.Sprintf("Day to view (0-%d, or a date), or 'all': ", s.feed.Len()-1))
	if err != nil {
		return err
	}
	if strings.EqualFold(line, "all") {
		s.console.Days(s.feed.Values())
		return nil
	}
	day, err := s.parseDay(line)
	if err != nil {
		return err
	}
	v, ok, err := s.feed.Value(day)
	if err != nil {
		return err
	}
	date := s.series.Date(day).Format(readings.DateLayout)
	if ok {
		s.console.Message("Day %d (%s): %g", day, date, v)
	} else {
		s.console.Message("Day %d (%s): no reading recorded.", day, date)
	}
	return nil
}

func (s *session) writeFile(prompt, def string, write func(io.Writer) error) error {
	name, err := s.readLine(prompt)
	if err != nil {
		return err
	}
	if name == "" {
		name = def
	}
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	s.console.Message("Written to %s.", name)
	return nil
}

// --- Input -----------------------------------------------------------------

func (s *session) readLine(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	if !s.in.Scan() {
		fmt.Fprintln(s.out)
		return "", errEndOfInput
	}
	return strings.TrimSpace(s.in.Text()), nil
}

func (s *session) readInt(prompt string) (int, error) {
	line, err := s.readLine(prompt)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(line)
}

func (s *session) readFloat(prompt string) (float64, error) {
	line, err := s.readLine(prompt)
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(line, 64)
}

func (s *session) readDay(what string) (int, error) {
	line, err := s.readLine(fmt.Sprintf("%s (0-%d, or a date): ", what, s.feed.Len()-1))
	if err != nil {
		return 0, err
	}
	return s.parseDay(line)
}

func (s *session) readRange() (int, int, error) {
	lo, err := s.readDay("Start day")
	if err != nil {
		return 0, 0, err
	}
	hi, err := s.readDay("End day")
	if err != nil {
		return 0, 0, err
	}
	return lo, hi, nil
}

// parseDay accepts a day index or a calendar date.
func (s *session) parseDay(line string) (int, error) {
	if day, err := strconv.Atoi(line); err == nil {
		return day, nil
	}
	date, err := time.Parse(readings.DateLayout, line)
	if err != nil {
		return 0, fmt.Errorf("not a day or date: %q", line)
	}
	return s.series.Day(date)
}
