package report

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/segtree"
	"github.com/npillmayer/segtree/analysis"
	"github.com/npillmayer/uax/uax11"
	"golang.org/x/net/html"
)

func plainConsole(buf *bytes.Buffer) *Console {
	return NewConsole(buf, &ConsoleConfig{
		LineWidth: 40,
		Context:   uax11.LatinContext,
		Unit:      "°C",
		Hot:       30,
		Cold:      0,
	})
}

func TestConsoleReports(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "segtree")
	defer teardown()
	//
	tree, err := segtree.Build([]float64{30, 32, 29, 35, 31})
	if err != nil {
		t.Fatal(err)
	}
	buf := &bytes.Buffer{}
	console := plainConsole(buf)
	x, _ := analysis.FindExtremes(tree)
	console.Extremes(x)
	c, _ := analysis.Climate(tree)
	console.Climate(c)
	r, _ := analysis.Range(tree, 1, 3)
	console.Range(r)
	out := buf.String()
	t.Logf("\n%s", out)
	for _, want := range []string{"hottest", "35.0°C  (day 3)", "coldest", "29.0°C  (day 2)",
		"31.4°C", "5 of 5 days", "Days day 1 … day 3", "32.0°C"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("expected no escape sequences with colors switched off")
	}
}

func TestConsoleDays(t *testing.T) {
	buf := &bytes.Buffer{}
	console := plainConsole(buf)
	console.Days([]float64{1, math.NaN(), -12.5, 4})
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	// heading, rule, then 2 columns of cells fit into 40 en
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, have %d:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[2], "day 0") || !strings.Contains(lines[2], "day 1") || !strings.Contains(lines[2], "–") {
		t.Errorf("unexpected first row %q", lines[2])
	}
	if !strings.Contains(lines[3], "-12.5°C") {
		t.Errorf("unexpected second row %q", lines[3])
	}
}

func TestConsoleDates(t *testing.T) {
	buf := &bytes.Buffer{}
	console := NewConsole(buf, &ConsoleConfig{
		LineWidth: 40,
		Start:     time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	})
	console.Alerts([]analysis.Reading{{Day: 31, Value: 33}}, 30, analysis.Above)
	if !strings.Contains(buf.String(), "Thu 2024-02-01") {
		t.Errorf("expected date label for day 31, have\n%s", buf.String())
	}
	buf.Reset()
	console.Alerts(nil, 30, analysis.Below)
	if !strings.Contains(buf.String(), "none") {
		t.Errorf("expected no alerts, have\n%s", buf.String())
	}
}

func TestConsoleWidth(t *testing.T) {
	console := plainConsole(&bytes.Buffer{})
	if w := console.width("12.5°C"); w != 6 {
		t.Errorf("expected display width 6, is %d", w)
	}
	if p := console.pad("day 1", 8); p != "day 1   " {
		t.Errorf("unexpected padding %q", p)
	}
}

func TestConsoleWidthOfDigits(t *testing.T) {
	console := plainConsole(&bytes.Buffer{})
	cases := []struct {
		s    string
		want int
	}{
		{"7", 1},
		{"abc", 3},
		{"day 10", 6},
		{"-12.5°C", 7},
		{"Thu 2024-02-01", 14},
		{"東京 21°C", 9},
	}
	for _, c := range cases {
		if w := console.width(c.s); w != c.want {
			t.Errorf("width(%q): expected %d, is %d", c.s, c.want, w)
		}
	}
	if p := console.pad("day 10", 9); p != "day 10   " {
		t.Errorf("unexpected padding %q", p)
	}
}

func TestHTML(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "segtree")
	defer teardown()
	//
	buf := &bytes.Buffer{}
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	if err := HTML(buf, "Daily <temperatures>", []float64{21, math.NaN(), 23.5}, start); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "Daily &lt;temperatures&gt;") {
		t.Errorf("expected escaped title, have %s", out)
	}
	doc, err := html.Parse(strings.NewReader(out))
	if err != nil {
		t.Fatal(err)
	}
	rows, missing := 0, 0
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			rows++
			for _, a := range n.Attr {
				if a.Key == "class" && a.Val == "missing" {
					missing++
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	if rows != 4 || missing != 1 {
		t.Errorf("expected 4 rows with 1 missing, have %d with %d missing", rows, missing)
	}
	if !strings.Contains(out, "2024-01-03") || !strings.Contains(out, "23.5") {
		t.Errorf("expected date and reading of day 2 in output")
	}
}
