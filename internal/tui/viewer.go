// Package tui implements the interactive timetable viewer: a scrollable,
// read-only view of a rendered table in the alternate screen buffer.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "bottom"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// row is one displayed table line: the time column plus its cells.
type row struct {
	time  string
	cells []string
}

// Model is the viewer state: parsed display rows plus scroll position.
type Model struct {
	title  string
	rows   []row
	cursor int
	top    int
	width  int
	height int
	keys   keyMap
}

// New builds a viewer model from rendered tab-delimited table text.
func New(title, rendered string) Model {
	var rows []row
	for _, line := range strings.Split(strings.TrimSuffix(rendered, "\n"), "\n") {
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		rows = append(rows, row{time: fields[0], cells: fields[1:]})
	}
	return Model{title: title, rows: rows, keys: defaultKeyMap()}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampScroll()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Top):
			m.cursor = 0
		case key.Matches(msg, m.keys.Bottom):
			m.cursor = len(m.rows) - 1
		}
		m.clampScroll()
	}
	return m, nil
}

// visibleRows is the number of table lines that fit between header and footer.
func (m Model) visibleRows() int {
	n := m.height - 2
	if n < 1 {
		n = 1
	}
	return n
}

func (m *Model) clampScroll() {
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor > len(m.rows)-1 {
		m.cursor = len(m.rows) - 1
	}
	vis := m.visibleRows()
	if m.cursor < m.top {
		m.top = m.cursor
	}
	if m.cursor >= m.top+vis {
		m.top = m.cursor - vis + 1
	}
}

func (m Model) View() string {
	var b strings.Builder

	header := fmt.Sprintf("%s — %d rows", m.title, len(m.rows))
	b.WriteString(styleHeader.Width(m.width).Render(header))
	b.WriteByte('\n')

	end := m.top + m.visibleRows()
	if end > len(m.rows) {
		end = len(m.rows)
	}
	for i := m.top; i < end; i++ {
		r := m.rows[i]

		indicator := " "
		timeStyle, cellStyle := styleTime, styleCell
		if i == m.cursor {
			indicator = styleSelection.Render(selectionIndicator)
			cellStyle = styleRowSelected
		}

		line := lipgloss.JoinHorizontal(lipgloss.Top,
			indicator,
			timeStyle.Render(r.time),
			cellStyle.Render("  "+strings.Join(r.cells, "  ")),
		)
		b.WriteString(line)
		b.WriteByte('\n')
	}

	b.WriteString(styleFooter.Render("↑/↓ scroll · g/G top/bottom · q quit"))
	return b.String()
}

// Run displays the viewer, blocking until the user quits.
func Run(title, rendered string) error {
	p := tea.NewProgram(New(title, rendered), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("viewer error: %w", err)
	}
	return nil
}
