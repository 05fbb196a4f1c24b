package main

import (
	"fmt"
	"io"
	"os"
	"strings"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func parseUIMode(value string) (uiMode, error) {
	switch m := uiMode(strings.ToLower(strings.TrimSpace(value))); m {
	case "":
		return uiModeAuto, nil
	case uiModeAuto, uiModeOn, uiModeOff:
		return m, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

// progressView decides whether inspect draws the progress view. JSON output
// and --quiet always suppress it, even with --ui=on; auto draws it only
// when out is a terminal.
func progressView(mode uiMode, format string, quiet bool, out io.Writer) bool {
	if format != "pretty" || quiet || mode == uiModeOff {
		return false
	}
	if mode == uiModeOn {
		return true
	}
	f, ok := out.(*os.File)
	return ok && isTerminal(f)
}
