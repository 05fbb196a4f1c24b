// Package ui draws the interactive progress view of "irkit inspect".
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"irkit/internal/inspect"
)

type progressModel struct {
	title   string
	events  <-chan inspect.Event
	spinner spinner.Model
	prog    progress.Model
	items   []sourceItem
	index   map[string]int
	width   int
	done    bool
}

type sourceItem struct {
	path   string
	status string
	stage  inspect.Stage
	values int
}

type eventMsg inspect.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders inspection
// progress. The model quits once events is closed.
func NewProgressModel(title string, sources []string, events <-chan inspect.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]sourceItem, 0, len(sources))
	index := make(map[string]int, len(sources))
	for i, src := range sources {
		items = append(items, sourceItem{path: src, status: "queued"})
		index[src] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		index:   index,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(inspect.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	case progress.FrameMsg:
		pm, cmd := m.prog.Update(msg)
		m.prog = pm.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := m.title
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	const statusWidth = 12
	nameWidth := max(m.width-statusWidth-16, 20)
	for _, item := range m.items {
		status := styleStatus(item.status).Render(fmt.Sprintf("%12s", item.status))
		line := fmt.Sprintf("  %s %s", status, truncate(item.path, nameWidth))
		if item.values > 0 {
			line += fmt.Sprintf("  %d values", item.values)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	return b.String()
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev inspect.Event) tea.Cmd {
	idx, ok := m.index[ev.Source]
	if !ok {
		return nil
	}
	item := &m.items[idx]
	if label := statusLabel(ev.Stage, ev.Status); label != "" {
		item.status = label
		item.stage = ev.Stage
	}
	if ev.Values > 0 {
		item.values = ev.Values
	}
	total := 0.0
	for _, it := range m.items {
		total += itemProgress(it)
	}
	return m.prog.SetPercent(total / float64(len(m.items)))
}

func itemProgress(it sourceItem) float64 {
	switch {
	case it.status == "done" || it.status == "error":
		return 1
	case it.stage == inspect.StageClassify:
		return 0.5
	case it.stage == inspect.StageLoad && it.status == "loading":
		return 0.1
	default:
		return 0
	}
}

func statusLabel(stage inspect.Stage, status inspect.Status) string {
	switch status {
	case inspect.StatusQueued:
		return "queued"
	case inspect.StatusDone:
		return "done"
	case inspect.StatusError:
		return "error"
	case inspect.StatusWorking:
		switch stage {
		case inspect.StageLoad:
			return "loading"
		case inspect.StageClassify:
			return "classifying"
		}
	}
	return ""
}

func styleStatus(status string) lipgloss.Style {
	switch status {
	case "done":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case "error":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case "loading", "classifying":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
