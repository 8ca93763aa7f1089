package tui

import (
	"strings"

	"github.com/sovietmap/tileserve.git/internal/config"
	"github.com/sovietmap/tileserve.git/internal/models"
	"github.com/sovietmap/tileserve.git/internal/tui/components"
	"github.com/sovietmap/tileserve.git/internal/tui/views"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type model struct {
	Tabs      []string
	children  []tea.Model
	help      components.HelpModel
	activeTab int
	width     int
	height    int
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case models.RecordMsg:
		// Request records go to every tab so counters stay current
		// while another tab is focused.
		var cmds []tea.Cmd
		for i := range m.children {
			m.children[i], cmd = m.children[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "right", "tab":
			m.activeTab = min(m.activeTab+1, len(m.Tabs)-1)
			return m, nil
		case "left", "shift+tab":
			m.activeTab = max(m.activeTab-1, 0)
			return m, nil
		case "1":
			m.activeTab = 0
			return m, nil
		case "2":
			m.activeTab = 1
			return m, nil
		case "3":
			m.activeTab = 2
			return m, nil
		case "?":
			var helpModel tea.Model
			helpModel, cmd = m.help.Update(msg)
			m.help = helpModel.(components.HelpModel)
			return m, cmd
		}
	}

	// Delegate update to the active view
	m.children[m.activeTab], cmd = m.children[m.activeTab].Update(msg)
	return m, cmd
}

func tabBorderWithBottom(left, middle, right string) lipgloss.Border {
	border := lipgloss.RoundedBorder()
	border.BottomLeft = left
	border.Bottom = middle
	border.BottomRight = right
	return border
}

var (
	inactiveTabBorder = tabBorderWithBottom("┴", "─", "┴")
	activeTabBorder   = tabBorderWithBottom("┘", " ", "└")
	docStyle          = lipgloss.NewStyle().Padding(1, 2, 1, 2)
	highlightColor    = lipgloss.Color("#7D56F4")
	inactiveTabStyle  = lipgloss.NewStyle().Border(inactiveTabBorder, true).BorderForeground(highlightColor).Padding(0, 1)
	activeTabStyle    = inactiveTabStyle.Border(activeTabBorder, true)
	windowStyle       = lipgloss.NewStyle().
				BorderForeground(highlightColor).
				Padding(1, 2).
				Align(lipgloss.Left).
				Border(lipgloss.NormalBorder()).
				UnsetBorderTop()
)

func (m model) View() string {
	doc := strings.Builder{}

	var renderedTabs []string

	tabBarWidth := m.width
	for i, t := range m.Tabs {
		var style lipgloss.Style
		isFirst, isLast, isActive := i == 0, i == len(m.Tabs)-1, i == m.activeTab
		if isActive {
			style = activeTabStyle
		} else {
			style = inactiveTabStyle
		}

		border, _, _, _, _ := style.GetBorder()
		if isFirst && isActive {
			border.BottomLeft = "│"
		} else if isFirst && !isActive {
			border.BottomLeft = "├"
		} else if isLast && isActive {
			border.BottomRight = "└"
		}

		style = style.Width(20).Border(border)
		renderedText := style.Render(t)

		renderedTabs = append(renderedTabs, renderedText)
		tabBarWidth = tabBarWidth - lipgloss.Width(renderedText)
	}

	blankBorder := lipgloss.HiddenBorder()
	blankBorder.Bottom = "─"
	blankBorder.BottomLeft = "─"
	blankBorder.BottomRight = "┐"
	blankTab := lipgloss.NewStyle().
		Width(tabBarWidth - windowStyle.GetHorizontalFrameSize()).
		Border(blankBorder).
		BorderForeground(highlightColor).
		Render("")

	renderedTabs = append(renderedTabs, blankTab)
	row := lipgloss.JoinHorizontal(lipgloss.Top, renderedTabs...)

	helpView := m.help.SetActiveTab(m.Tabs[m.activeTab]).View()

	tabContents := windowStyle.Width(
		m.width - windowStyle.GetHorizontalFrameSize()).
		Render(m.children[m.activeTab].View())

	doc.WriteString(row)
	doc.WriteString("\n")
	doc.WriteString(tabContents)
	doc.WriteString("\n")
	doc.WriteString(helpView)

	return docStyle.Render(doc.String())
}

func (m model) initializeChildren(cfg config.Config, initial []models.RequestRecord) model {
	children := []ChildModel{
		views.InitRequests(initial),
		views.InitStats(),
		views.InitConfigView(cfg),
	}

	keyMap := make(map[string]components.TabKeyMap)
	m.children = make([]tea.Model, len(children))
	for i, child := range children {
		m.children[i] = child
		keyMap[child.GetName()] = components.TabKeyMap{
			Name:     child.GetName(),
			Bindings: child.GetKeyBinds(),
		}
		m.children[i].Init()
	}
	m.help = m.help.SetKeyMap(keyMap)

	return m
}

// GetTui builds the dashboard program. Request records are delivered
// from the server goroutine with Program.Send wrapped in a RecordMsg.
func GetTui(cfg config.Config, initial []models.RequestRecord) *tea.Program {
	tabs := []string{"Live Requests", "Stats", "Config"}
	m := model{
		Tabs:      tabs,
		help:      components.InitHelp(),
		activeTab: 0,
	}.initializeChildren(cfg, initial)

	return tea.NewProgram(m)
}
