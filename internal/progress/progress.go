// Package progress displays simulation progress on stderr: an interactive
// bubbletea progress bar when stderr is a terminal (or --tui forces it),
// falling back to a plain percent/dot writer otherwise.
package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Reporter receives fractional completion updates in [0,1] and a final
// Done call.
type Reporter interface {
	Update(frac float64)
	Done()
}

// New picks a TUI reporter when w is a terminal or forceTUI is set,
// otherwise a plain dot writer that prints 40 dots in all, one per 2.5% of
// progress. total is stored on the plain writer but not read by it.
func New(w io.Writer, forceTUI bool, total int) Reporter {
	if forceTUI {
		return newTUI()
	}
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return newTUI()
	}
	return &plainWriter{w: w, total: total}
}

// plainWriter prints a dot every 2.5% of progress.
type plainWriter struct {
	w           io.Writer
	total       int
	dotsPrinted int
}

func (p *plainWriter) Update(frac float64) {
	wantDots := int(frac * 40)
	for p.dotsPrinted < wantDots {
		fmt.Fprint(p.w, ".")
		p.dotsPrinted++
	}
}

func (p *plainWriter) Done() {
	for p.dotsPrinted < 40 {
		fmt.Fprint(p.w, ".")
		p.dotsPrinted++
	}
	fmt.Fprintln(p.w)
}

var barStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#96CEB4")).Bold(true)

type fracMsg float64
type doneMsg struct{}

type model struct {
	bar  progress.Model
	frac float64
	done bool
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.bar.Width = msg.Width - 4
		return m, nil
	case fracMsg:
		m.frac = float64(msg)
		return m, nil
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m model) View() string {
	return barStyle.Render("freebj ") + m.bar.ViewAs(m.frac) + "\n"
}

// tuiReporter drives a bubbletea program from another goroutine via
// Program.Send.
type tuiReporter struct {
	program *tea.Program
	done    chan struct{}
}

func newTUI() *tuiReporter {
	m := model{bar: progress.New(progress.WithDefaultGradient())}
	p := tea.NewProgram(m, tea.WithOutput(os.Stderr))
	r := &tuiReporter{program: p, done: make(chan struct{})}
	go func() {
		_, _ = p.Run()
		close(r.done)
	}()
	return r
}

func (t *tuiReporter) Update(frac float64) { t.program.Send(fracMsg(frac)) }

func (t *tuiReporter) Done() {
	t.program.Send(doneMsg{})
	<-t.done
}
