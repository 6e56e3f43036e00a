package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/wippyai/clrmeta/metadata"
)

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4"))
)

type tableItem struct {
	id      metadata.TableID
	rows    int
	rowSize int
}

func (i tableItem) Title() string { return i.id.String() }
func (i tableItem) Description() string {
	return fmt.Sprintf("0x%02x  %s rows  %d B/row", uint8(i.id), humanize.Comma(int64(i.rows)), i.rowSize)
}
func (i tableItem) FilterValue() string { return i.id.String() }

type modelState int

const (
	stateSelectTable modelState = iota
	stateShowRows
)

type interactiveModel struct {
	tables   *metadata.Tables
	filename string
	list     list.Model
	viewport viewport.Model
	current  metadata.TableID
	width    int
	height   int
	state    modelState
}

func newInteractiveModel(filename string, t *metadata.Tables) *interactiveModel {
	var items []list.Item
	for _, id := range t.Header.Present() {
		if !id.Known() {
			continue
		}
		items = append(items, tableItem{id: id, rows: t.Len(id), rowSize: t.Header.RowSize(id)})
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedStyle
	l := list.New(items, delegate, 0, 0)
	l.Title = "Tables"
	l.Styles.Title = titleStyle

	return &interactiveModel{
		tables:   t,
		filename: filename,
		list:     l,
		viewport: viewport.New(0, 0),
		state:    stateSelectTable,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(msg.Width-2, msg.Height-4)
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = msg.Height - 6
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "enter":
			if m.state == stateSelectTable {
				if item, ok := m.list.SelectedItem().(tableItem); ok {
					m.showTable(item.id)
				}
				return m, nil
			}

		case "esc", "backspace":
			if m.state == stateShowRows {
				m.state = stateSelectTable
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case stateSelectTable:
		m.list, cmd = m.list.Update(msg)
	case stateShowRows:
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

func (m *interactiveModel) showTable(id metadata.TableID) {
	m.current = id
	m.state = stateShowRows
	m.viewport.SetContent(tableContent(m.tables, id))
	m.viewport.GotoTop()
}

// tableContent renders one table's rows for the viewport.
func tableContent(t *metadata.Tables, id metadata.TableID) string {
	var b strings.Builder
	b.WriteString(helpStyle.Render(columnLine(id)))
	b.WriteString("\n")
	for i, row := range t.Rows(id) {
		fmt.Fprintf(&b, "  %4d  %+v\n", i+1, row)
	}
	return b.String()
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("CLI Metadata Tables"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n")

	switch m.state {
	case stateSelectTable:
		b.WriteString(m.list.View())

	case stateShowRows:
		b.WriteString(tableStyle.Render(fmt.Sprintf("%s (%d rows)", m.current, m.tables.Len(m.current))))
		b.WriteString("\n")
		b.WriteString(frameStyle.Render(m.viewport.View()))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(fmt.Sprintf("%3.f%% • ↑/↓ scroll • esc back • q quit", m.viewport.ScrollPercent()*100)))
	}

	return b.String()
}

func runInteractive(filename string, t *metadata.Tables) error {
	p := tea.NewProgram(newInteractiveModel(filename, t), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
