package views

import (
	"fmt"

	"github.com/sovietmap/tileserve.git/internal/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// maxRows bounds the live table so a long-running server does not grow
// the dashboard without limit.
const maxRows = 200

type requestsModel struct {
	table table.Model
}

func (m requestsModel) GetKeyBinds() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "scroll")),
	}
}

func (m requestsModel) GetName() string {
	return "Live Requests"
}

func InitRequests(initial []models.RequestRecord) requestsModel {
	columns := []table.Column{
		{Title: "Time", Width: 8},
		{Title: "Status", Width: 6},
		{Title: "Method", Width: 6},
		{Title: "Path", Width: 36},
		{Title: "Range", Width: 20},
		{Title: "Bytes", Width: 10},
		{Title: "Duration", Width: 10},
	}

	var rows []table.Row
	for _, record := range initial {
		rows = append(rows, recordRow(record))
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(14),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return requestsModel{table: t}
}

func recordRow(record models.RequestRecord) table.Row {
	rangeCol := string(record.RangeKind)
	if record.RangeHeader != "" {
		rangeCol = record.RangeHeader
	}
	return table.Row{
		record.Time.Format("15:04:05"),
		fmt.Sprintf("%d", record.Status),
		record.Method,
		record.Path,
		rangeCol,
		fmt.Sprintf("%d", record.BytesWritten),
		record.Duration.String(),
	}
}

func (m requestsModel) Init() tea.Cmd {
	return nil
}

func (m requestsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case models.RecordMsg:
		// Newest first.
		rows := append([]table.Row{recordRow(msg.Record)}, m.table.Rows()...)
		if len(rows) > maxRows {
			rows = rows[:maxRows]
		}
		m.table.SetRows(rows)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			if m.table.Focused() {
				m.table.Blur()
			} else {
				m.table.Focus()
			}
		}
	}
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m requestsModel) View() string {
	baseStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240"))

	return baseStyle.Render(m.table.View()) + "\n"
}
