// Package report renders inspection results for people and for tools.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"irkit/internal/inspect"
	"irkit/internal/values"
)

// Options controls pretty rendering.
type Options struct {
	Color   bool
	Reasons bool // list why each rejected set refused a value
}

// setColumns are the short headers used for the four set columns.
var setColumns = map[string]string{
	"AnyValueEnum":           "any",
	"BasicValueEnum":         "basic",
	"AggregateValueEnum":     "aggregate",
	"BasicMetadataValueEnum": "basic+md",
}

func column(set string) string {
	if c, ok := setColumns[set]; ok {
		return c
	}
	return set
}

// WriteJSON writes rep as indented JSON.
func WriteJSON(w io.Writer, rep *inspect.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// WritePretty writes one aligned table per module.
func WritePretty(w io.Writer, rep *inspect.Report, opts Options) error {
	p := newPrinter(w, opts)
	for i, m := range rep.Modules {
		if i > 0 {
			p.line("")
		}
		p.module(m)
	}
	return p.err
}

type printer struct {
	w      io.Writer
	opts   Options
	header lipgloss.Style
	ok     *color.Color
	bad    *color.Color
	dim    *color.Color
	err    error
}

func newPrinter(w io.Writer, opts Options) *printer {
	p := &printer{
		w:      w,
		opts:   opts,
		header: lipgloss.NewRenderer(w).NewStyle().Bold(true),
		ok:     color.New(color.FgGreen),
		bad:    color.New(color.FgRed),
		dim:    color.New(color.Faint),
	}
	for _, c := range []*color.Color{p.ok, p.bad, p.dim} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p *printer) line(s string) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintln(p.w, s)
}

func (p *printer) module(m inspect.ModuleReport) {
	title := "module " + m.Module
	if m.Module == "" {
		title = "source"
	}
	title += "  " + m.Source
	if p.opts.Color {
		title = p.header.Render(title)
	}
	p.line(title)
	if m.Context != "" {
		p.line(p.dim.Sprint("context " + m.Context))
	}
	if m.Err != "" {
		p.line(p.bad.Sprint("error: " + m.Err))
		if len(m.Rows) == 0 {
			return
		}
	}

	sets := values.Sets()
	head := []string{"value", "type", "kind"}
	for _, s := range sets {
		head = append(head, column(s.Name))
	}
	cells := make([][]string, 0, len(m.Rows))
	for _, r := range m.Rows {
		row := []string{label(r), r.Type, r.TypeKind}
		for _, s := range sets {
			o, _ := r.Outcome(s.Name)
			row = append(row, member(o))
		}
		cells = append(cells, row)
	}
	widths := make([]int, len(head))
	for i, h := range head {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range cells {
		for i, c := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(c))
		}
	}

	p.line(p.dim.Sprint(strings.TrimRight(p.join(head, widths, nil), " ")))
	for ri, row := range cells {
		p.line(strings.TrimRight(p.join(row, widths, m.Rows[ri].Outcomes), " "))
		if p.opts.Reasons {
			for _, o := range m.Rows[ri].Outcomes {
				if !o.OK() {
					p.line(p.dim.Sprintf("    %s: %s", column(o.Set), o.Reason))
				}
			}
		}
	}

	counts := make([]string, 0, len(sets))
	for _, s := range sets {
		counts = append(counts, fmt.Sprintf("%s %d/%d", column(s.Name), m.Counts[s.Name], len(m.Rows)))
	}
	p.line(p.dim.Sprint(strings.Join(counts, "  ")))
}

// join pads every cell to its column width. Set cells are colored after
// padding so escape codes do not disturb alignment.
func (p *printer) join(cells []string, widths []int, outcomes []inspect.Outcome) string {
	var b strings.Builder
	for i, c := range cells {
		padded := runewidth.FillRight(c, widths[i])
		if k := i - 3; outcomes != nil && k >= 0 && k < len(outcomes) {
			if outcomes[k].OK() {
				padded = p.ok.Sprint(padded)
			} else {
				padded = p.bad.Sprint(padded)
			}
		}
		b.WriteString(padded)
		b.WriteString("  ")
	}
	return b.String()
}

func label(r inspect.Row) string {
	s := r.Handle
	if r.Opcode != "" {
		s += " " + r.Opcode
	}
	return s
}

func member(o inspect.Outcome) string {
	if !o.OK() {
		return "-"
	}
	return strings.TrimSuffix(o.Member, "Value")
}
