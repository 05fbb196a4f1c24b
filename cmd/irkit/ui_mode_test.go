package main

import (
	"bytes"
	"testing"
)

func TestParseUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, " ON ": uiModeOn, "off": uiModeOff, "auto": uiModeAuto} {
		got, err := parseUIMode(in)
		if err != nil || got != want {
			t.Fatalf("%q: got %q, %v", in, got, err)
		}
	}
	if _, err := parseUIMode("sometimes"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestProgressViewRespectsFormatAndQuiet(t *testing.T) {
	var buf bytes.Buffer
	cases := []struct {
		mode   uiMode
		format string
		quiet  bool
		want   bool
	}{
		{uiModeOn, "pretty", false, true},
		{uiModeOn, "json", false, false},
		{uiModeOn, "pretty", true, false},
		{uiModeOff, "pretty", false, false},
		{uiModeAuto, "pretty", false, false},
	}
	for _, tc := range cases {
		if got := progressView(tc.mode, tc.format, tc.quiet, &buf); got != tc.want {
			t.Fatalf("%+v: got %v", tc, got)
		}
	}
}
