package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunExitCodes(t *testing.T) {
	name := filepath.Join(t.TempDir(), "temps.csv")
	if err := os.WriteFile(name, []byte("temp\n30\n32\n29\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	code := run([]string{"-data", name}, strings.NewReader("1\n0\n35\n4\n0\n"), out, errOut)
	if code != 0 {
		t.Fatalf("expected exit code 0, is %d: %s", code, errOut.String())
	}
	for _, want := range []string{"Loaded readings for 3 days (0 missing)", "Day 0 updated to 35.", "35.0"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
	//
	errOut.Reset()
	missing := filepath.Join(t.TempDir(), "nothing.csv")
	if code := run([]string{"-data", missing}, strings.NewReader(""), out, errOut); code != 1 {
		t.Errorf("expected exit code 1 for missing data file, is %d", code)
	}
	if !strings.Contains(errOut.String(), "cannot load readings") {
		t.Errorf("expected error message, have %q", errOut.String())
	}
	if code := run([]string{"-start", "yesterday"}, strings.NewReader(""), out, errOut); code != 2 {
		t.Errorf("expected exit code 2 for invalid start date, is %d", code)
	}
	if code := run([]string{"-h"}, strings.NewReader(""), out, errOut); code != 0 {
		t.Errorf("expected exit code 0 for help, is %d", code)
	}
}
