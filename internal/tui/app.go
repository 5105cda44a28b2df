package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ekinsu/dersplan/internal/export"
	"github.com/ekinsu/dersplan/internal/store"
	"github.com/ekinsu/dersplan/internal/timer"
)

const statusTTL = 3 // seconds a status line stays in the footer

// App is the root Bubble Tea model.
type App struct {
	store  *store.Store
	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	hub       hubModel
	planner   plannerModel
	timerView timerViewModel
	results   resultsModel
	chat      chatModel
	settings  settingsModel

	help      help.Model
	status    string
	statusAge int
}

func NewApp(s *store.Store) App {
	h := help.New()
	h.ShowAll = false

	return App{
		store:      s,
		activeView: viewHub,
		hub:        newHubModel(s),
		planner:    newPlannerModel(s),
		timerView:  newTimerViewModel(s),
		results:    newResultsModel(s),
		chat:       newChatModel(),
		settings:   newSettingsModel(s),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.hub.refresh(),
		tickCmd(),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.hub.setSize(a.width, contentHeight)
		a.planner.setSize(a.width, contentHeight)
		a.timerView.setSize(a.width, contentHeight)
		a.results.setSize(a.width, contentHeight)
		a.chat.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		// Export picker
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (form or chat box), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			return a.switchView(viewHub)
		case key.Matches(msg, keys.Tab2):
			return a.switchView(viewPlanner)
		case key.Matches(msg, keys.Tab3):
			return a.switchView(viewTimer)
		case key.Matches(msg, keys.Tab4):
			return a.switchView(viewResults)
		case key.Matches(msg, keys.Tab5):
			return a.switchView(viewChat)
		case key.Matches(msg, keys.Tab6):
			return a.switchView(viewSettings)
		case key.Matches(msg, keys.Tab):
			return a.switchView((a.activeView + 1) % 6)
		}

	case tickMsg:
		cmds = append(cmds, tickCmd())
		if a.status != "" {
			a.statusAge++
			if a.statusAge >= statusTTL {
				a.status = ""
				a.statusAge = 0
			}
		}
		// Timers tick regardless of which view is showing.
		var cmd tea.Cmd
		a.timerView, cmd = a.timerView.update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case statusMsg:
		a.status = msg.text
		a.statusAge = 0
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.statusAge = 0
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

// switchView changes the active tab. Leaving the timer tab stops whatever
// is running so a forgotten session does not keep counting.
func (a App) switchView(v viewState) (tea.Model, tea.Cmd) {
	if a.activeView == viewTimer && v != viewTimer {
		a.timerView = a.timerView.leave()
	}
	a.activeView = v
	return a, a.refreshCurrentView()
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewHub:
		a.hub, cmd = a.hub.update(msg)
	case viewPlanner:
		a.planner, cmd = a.planner.update(msg)
	case viewTimer:
		a.timerView, cmd = a.timerView.update(msg)
	case viewResults:
		a.results, cmd = a.results.update(msg)
	case viewChat:
		a.chat, cmd = a.chat.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewPlanner:
		return a.planner.formActive
	case viewTimer:
		return a.timerView.formActive
	case viewResults:
		return a.results.formStage > 0
	case viewChat:
		return a.chat.focused()
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewHub:
		return a.hub.refresh()
	case viewPlanner:
		return a.planner.refresh()
	case viewTimer:
		return a.timerView.refreshPicker()
	case viewResults:
		return a.results.refresh()
	case viewSettings:
		return a.settings.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewHub:
		content = a.hub.view()
	case viewPlanner:
		content = a.planner.view()
	case viewTimer:
		content = a.timerView.view()
	case viewResults:
		content = a.results.view()
	case viewChat:
		content = a.chat.view()
	case viewSettings:
		content = a.settings.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("dersplan")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		style := mutedStyle
		if a.statusAge == 0 {
			style = highlightStyle
		}
		status = style.Render(" " + a.status)
	}

	// Live timer indicator, visible from any tab.
	timerInfo := ""
	switch {
	case a.timerView.free.Running():
		timerInfo = successStyle.Render(" ● " + formatClock(a.timerView.free.Elapsed()))
	case a.timerView.plan.State() == timer.PlanRunning:
		timerInfo = successStyle.Render(" ● " + formatClock(a.timerView.plan.Remaining()))
	case a.timerView.plan.State() == timer.PlanPaused:
		timerInfo = warningStyle.Render(" ⏸ " + formatClock(a.timerView.plan.Remaining()))
	}

	left := footerStyle.Render(helpView)
	right := timerInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	formats := []string{"CSV", "JSON"}
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	return func() tea.Msg {
		lessons, err := a.store.ListLessons()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		results, err := a.store.ListExamResults()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}

		home, _ := os.UserHomeDir()
		dateStr := time.Now().Format(store.DateLayout)

		var path string
		if format == 0 {
			path = filepath.Join(home, fmt.Sprintf("dersplan-export-%s.csv", dateStr))
			if err := export.ToCSV(lessons, results, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		} else {
			path = filepath.Join(home, fmt.Sprintf("dersplan-export-%s.json", dateStr))
			if err := export.ToJSON(lessons, results, path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}

		return exportDoneMsg{path: path}
	}
}
