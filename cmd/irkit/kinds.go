package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"irkit/internal/values"
)

var kindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "Print which concrete wrappers belong to each value set",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := cmd.Flags().GetString("format")
		if err != nil {
			return err
		}
		switch strings.ToLower(format) {
		case "pretty":
			return renderKindsTable(cmd.OutOrStdout())
		case "json":
			return renderKindsJSON(cmd.OutOrStdout())
		default:
			return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
		}
	},
}

func init() {
	kindsCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

// renderKindsTable prints one row per wrapper kind with a mark in each set
// that admits it.
func renderKindsTable(w io.Writer) error {
	sets := values.Sets()
	nameWidth := 0
	for _, k := range values.Kinds {
		nameWidth = max(nameWidth, runewidth.StringWidth(k.WrapperName()))
	}

	cells := []string{runewidth.FillRight("", nameWidth)}
	for _, s := range sets {
		cells = append(cells, s.Name)
	}
	lines := []string{strings.Join(cells, "  ")}
	for _, k := range values.Kinds {
		cells = cells[:0]
		cells = append(cells, runewidth.FillRight(k.WrapperName(), nameWidth))
		for _, s := range sets {
			mark := "-"
			if s.Members.Has(k) {
				mark = "x"
			}
			cells = append(cells, runewidth.FillRight(mark, runewidth.StringWidth(s.Name)))
		}
		lines = append(lines, strings.Join(cells, "  "))
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}

type kindsPayload struct {
	Set     string   `json:"set"`
	Members []string `json:"members"`
}

func renderKindsJSON(w io.Writer) error {
	sets := values.Sets()
	payload := make([]kindsPayload, 0, len(sets))
	for _, s := range sets {
		p := kindsPayload{Set: s.Name}
		for _, k := range s.Members.Kinds() {
			p.Members = append(p.Members, k.WrapperName())
		}
		payload = append(payload, p)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
