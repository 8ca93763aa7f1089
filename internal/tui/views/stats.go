package views

import (
	"fmt"
	"time"

	"github.com/sovietmap/tileserve.git/internal/models"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type statsModel struct {
	stats models.ServerStats
}

func (m statsModel) GetKeyBinds() []key.Binding {
	return []key.Binding{}
}

func (m statsModel) GetName() string {
	return "Stats"
}

func InitStats() statsModel {
	return statsModel{
		stats: models.ServerStats{StartedAt: time.Now()},
	}
}

func (m statsModel) Init() tea.Cmd {
	return nil
}

func (m statsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if record, ok := msg.(models.RecordMsg); ok {
		m.stats.Observe(record.Record)
	}
	return m, nil
}

var (
	statLabelStyle = lipgloss.NewStyle().Width(22).Foreground(lipgloss.Color("245"))
	statValueStyle = lipgloss.NewStyle().Bold(true)
)

func statLine(label string, value string) string {
	return statLabelStyle.Render(label) + statValueStyle.Render(value)
}

func (m statsModel) View() string {
	s := m.stats
	lines := []string{
		statLine("Uptime", time.Since(s.StartedAt).Round(time.Second).String()),
		statLine("Total requests", fmt.Sprintf("%d", s.TotalRequests)),
		statLine("Full responses", fmt.Sprintf("%d", s.FullResponses)),
		statLine("Partial responses", fmt.Sprintf("%d", s.PartialResponses)),
		statLine("Unsatisfiable ranges", fmt.Sprintf("%d", s.Unsatisfiable)),
		statLine("Not found", fmt.Sprintf("%d", s.NotFound)),
		statLine("Rejected methods", fmt.Sprintf("%d", s.MethodRejected)),
		statLine("Server errors", fmt.Sprintf("%d", s.ServerErrors)),
		statLine("Bytes served", formatBytes(s.BytesServed)),
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for b := n / unit; b >= unit; b /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
