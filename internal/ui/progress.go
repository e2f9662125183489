// Package ui renders directory runs as a live bubbletea progress view.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"typedjs/internal/driver"
)

type status uint8

const (
	statusQueued status = iota
	statusDone
	statusCached
	statusWarn  // вывод есть, но часть классов не сконвертирована
	statusError // вывода нет
)

func (s status) String() string {
	switch s {
	case statusDone:
		return "done"
	case statusCached:
		return "cached"
	case statusWarn:
		return "partial"
	case statusError:
		return "error"
	default:
		return "queued"
	}
}

type progressModel struct {
	title    string
	events   <-chan driver.FileEvent
	spinner  spinner.Model
	prog     progress.Model
	items    []fileItem
	finished int
	fields   int
	width    int
	done     bool
}

type fileItem struct {
	path   string
	status status
	note   string
}

type eventMsg driver.FileEvent
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders desugaring
// progress. files must be in the order driver.ListSources returns them;
// the model quits once events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.FileEvent) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]fileItem, len(files))
	for i, file := range files {
		items[i] = fileItem{path: file}
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(driver.FileEvent(msg))
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
	header := fmt.Sprintf("%s (%d/%d files, %d fields)", m.title, m.finished, len(m.items), m.fields)
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	const statusWidth = 8
	nameWidth := max(m.width-statusWidth-4, 20)
	for _, item := range m.items {
		line := fmt.Sprintf("  %s %s", styleStatus(item.status).Render(fmt.Sprintf("%*s", statusWidth, item.status)), truncate(item.path, nameWidth))
		if item.note != "" {
			line += "  " + lipgloss.NewStyle().Faint(true).Render(item.note)
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

func (m *progressModel) applyEvent(ev driver.FileEvent) tea.Cmd {
	if ev.Index < 0 || ev.Index >= len(m.items) || ev.Result == nil {
		return nil
	}
	item := &m.items[ev.Index]
	if item.status == statusQueued {
		m.finished++
	}
	item.status, item.note = classify(ev.Result)
	m.fields += ev.Result.Stats.Fields
	return m.prog.SetPercent(float64(m.finished) / float64(len(m.items)))
}

func classify(res *driver.Result) (status, string) {
	switch {
	case res.Output == nil:
		return statusError, fmt.Sprintf("%d diagnostics", res.Bag.Len())
	case res.Stats.Failed > 0:
		return statusWarn, fmt.Sprintf("%d classes not converted", res.Stats.Failed)
	case res.Cached:
		return statusCached, ""
	default:
		return statusDone, ""
	}
}

func styleStatus(s status) lipgloss.Style {
	switch s {
	case statusDone, statusCached:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case statusWarn:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	case statusError:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
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
