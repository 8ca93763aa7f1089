package views

import (
	"fmt"

	"github.com/sovietmap/tileserve.git/internal/config"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type configModel struct {
	cfg config.Config
}

func (m configModel) GetKeyBinds() []key.Binding {
	return []key.Binding{}
}

func (m configModel) GetName() string {
	return "Config"
}

func InitConfigView(cfg config.Config) configModel {
	return configModel{cfg: cfg}
}

func (m configModel) Init() tea.Cmd {
	return nil
}

func (m configModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m, nil
}

func (m configModel) View() string {
	c := m.cfg
	logDB := c.LogDB
	if logDB == "" {
		logDB = "(disabled)"
	}
	lines := []string{
		statLine("Listen address", c.Addr()),
		statLine("Root directory", c.Root),
		statLine("CORS origin", c.CORSOrigin),
		statLine("Read timeout", fmt.Sprintf("%ds", c.ReadTimeoutSeconds)),
		statLine("Write timeout", fmt.Sprintf("%ds", c.WriteTimeoutSeconds)),
		statLine("Access log db", logDB),
		statLine("Log level", c.LogLevel),
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
